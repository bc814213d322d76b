package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func jsonReq(method, target, body string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, c
}

func TestBookRequiresMentorID(t *testing.T) {
	h := NewSessionHandler(nil, nil)
	rec, c := jsonReq(http.MethodPost, "/v1/sessions", `{"title":"Intro"}`)
	c.Set("user_id", uint64(42))
	if err := h.Book(c); err != nil {
		t.Fatalf("Book: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBookRejectsSelfBooking(t *testing.T) {
	h := NewSessionHandler(nil, nil)
	rec, c := jsonReq(http.MethodPost, "/v1/sessions", `{"mentor_id":42,"title":"Intro"}`)
	c.Set("user_id", uint64(42))
	if err := h.Book(c); err != nil {
		t.Fatalf("Book: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBookUnauthenticated(t *testing.T) {
	h := NewSessionHandler(nil, nil)
	rec, c := jsonReq(http.MethodPost, "/v1/sessions", `{"mentor_id":1}`)
	if err := h.Book(c); err != nil {
		t.Fatalf("Book: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestMySessionsRejectsUnknownStatus(t *testing.T) {
	h := NewSessionHandler(nil, nil)
	rec, c := jsonReq(http.MethodGet, "/v1/my-sessions?status=bogus", "")
	c.Set("user_id", uint64(7))
	if err := h.MySessions(c); err != nil {
		t.Fatalf("MySessions: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTransitionRejectsBadSessionID(t *testing.T) {
	h := NewSessionHandler(nil, nil)
	rec, c := jsonReq(http.MethodPost, "/v1/sessions/abc/confirm", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set("user_id", uint64(7))
	if err := h.Confirm(c); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// weekBody renders a full 7-rule set with one day overridden, so each
// case trips exactly the validation it names.
func weekBody(day int, start, end string) string {
	var b strings.Builder
	b.WriteString(`{"rules":[`)
	for d := 0; d < 7; d++ {
		if d > 0 {
			b.WriteString(",")
		}
		s, e := "09:00", "17:00"
		if d == day {
			s, e = start, end
		}
		fmt.Fprintf(&b, `{"day_of_week":%d,"start_time":%q,"end_time":%q,"is_available":true}`, d, s, e)
	}
	b.WriteString("]}")
	return b.String()
}

func TestAvailabilityReplaceValidation(t *testing.T) {
	h := NewAvailabilityHandler(nil)
	cases := []struct {
		name string
		body string
	}{
		{"too few rules", `{"rules":[{"day_of_week":1,"start_time":"09:00","end_time":"17:00","is_available":true}]}`},
		{"bad time", weekBody(1, "9am", "17:00")},
		{"off-grid time", weekBody(1, "09:10", "17:00")},
		{"inverted window", weekBody(1, "17:00", "09:00")},
		{"duplicate day", strings.Replace(weekBody(6, "09:00", "17:00"), `"day_of_week":6`, `"day_of_week":0`, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, c := jsonReq(http.MethodPut, "/v1/availability", tc.body)
			c.Set("user_id", uint64(5))
			if err := h.Replace(c); err != nil {
				t.Fatalf("Replace: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSlotsRequiresDate(t *testing.T) {
	h := NewBrowseHandler(nil, nil, nil)
	rec, c := jsonReq(http.MethodGet, "/v1/mentors/3/slots", "")
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Slots(c); err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSlotsRejectsBadDate(t *testing.T) {
	h := NewBrowseHandler(nil, nil, nil)
	rec, c := jsonReq(http.MethodGet, "/v1/mentors/3/slots?date=06-10-2024", "")
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Slots(c); err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSetMentorApprovalRequiresBody(t *testing.T) {
	h := NewAdminHandler(nil, nil)
	rec, c := jsonReq(http.MethodPatch, "/v1/admin/mentors/3/approval", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.SetMentorApproval(c); err != nil {
		t.Fatalf("SetMentorApproval: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCentsToDecimal(t *testing.T) {
	cases := map[uint32]string{
		0:     "0.00",
		5:     "0.05",
		1500:  "15.00",
		15000: "150.00",
		12345: "123.45",
	}
	for cents, want := range cases {
		if got := centsToDecimal(cents); got != want {
			t.Errorf("centsToDecimal(%d) = %q, want %q", cents, got, want)
		}
	}
}
