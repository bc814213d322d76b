package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/session"
)

func newMockRepo(t *testing.T) (*SessionRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSessionRepo(db), mock
}

func requestFixture() *model.Session {
	start := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	return &model.Session{
		Reference:        "11111111-2222-3333-4444-555555555555",
		MentorID:         10,
		MenteeID:         20,
		Title:            "Career chat",
		DurationMinutes:  60,
		ScheduledStart:   start,
		ScheduledEnd:     start.Add(60 * time.Minute),
		BasePriceCents:   10000,
		FinalPriceCents:  10000,
		CommissionRate:   0.10,
		PlatformFeeCents: 1000,
	}
}

func TestCreateRequestedRejectsOverlap(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM sessions").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(99))
	mock.ExpectRollback()

	err := repo.CreateRequested(context.Background(), requestFixture())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateRequestedDeadlockIsConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM sessions").
		WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"})
	mock.ExpectRollback()

	err := repo.CreateRequested(context.Background(), requestFixture())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateRequestedFreeWindowInserts(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM sessions").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO sessions").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM sessions").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))
	mock.ExpectCommit()

	s := requestFixture()
	if err := repo.CreateRequested(context.Background(), s); err != nil {
		t.Fatalf("CreateRequested: %v", err)
	}
	if s.ID != 7 {
		t.Fatalf("ID = %d, want 7", s.ID)
	}
	if s.Status != session.StatusRequested {
		t.Fatalf("Status = %q, want requested", s.Status)
	}
	if !s.CreatedAt.Equal(created) || !s.UpdatedAt.Equal(created) {
		t.Fatalf("timestamps not read back: %v / %v", s.CreatedAt, s.UpdatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func sessionRow(id uint64, status string, updated time.Time) *sqlmock.Rows {
	start := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "reference", "mentor_id", "mentee_id", "title", "description", "session_type",
		"scheduled_start", "scheduled_end", "duration_minutes",
		"base_price_cents", "final_price_cents", "commission_rate", "platform_fee_cents",
		"status", "created_at", "updated_at",
	}).AddRow(id, "ref-1", 10, 20, "Career chat", "", "video",
		start, start.Add(time.Hour), 60,
		10000, 10000, 0.10, 1000,
		status, updated, updated)
}

func TestTransitionReturnsFreshTimestamps(t *testing.T) {
	repo, mock := newMockRepo(t)
	before := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	after := before.Add(2 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sessionRow(5, session.StatusRequested, before))
	mock.ExpectExec("UPDATE sessions SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM sessions").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(before, after))
	mock.ExpectCommit()

	s, err := repo.Transition(context.Background(), 5, 10, session.StatusConfirmed)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if s.Status != session.StatusConfirmed {
		t.Fatalf("Status = %q, want confirmed", s.Status)
	}
	if !s.UpdatedAt.Equal(after) {
		t.Fatalf("UpdatedAt = %v, want the post-update value %v", s.UpdatedAt, after)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTransitionRejectsWrongParty(t *testing.T) {
	repo, mock := newMockRepo(t)
	ts := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sessionRow(5, session.StatusRequested, ts))
	mock.ExpectRollback()

	// The mentee may not confirm.
	if _, err := repo.Transition(context.Background(), 5, 20, session.StatusConfirmed); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTransitionRejectsStranger(t *testing.T) {
	repo, mock := newMockRepo(t)
	ts := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sessionRow(5, session.StatusRequested, ts))
	mock.ExpectRollback()

	if _, err := repo.Transition(context.Background(), 5, 777, session.StatusCancelled); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestIsLockConflict(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{&mysql.MySQLError{Number: 1213}, true},
		{&mysql.MySQLError{Number: 1205}, true},
		{&mysql.MySQLError{Number: 1062}, false},
		{sql.ErrNoRows, false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := isLockConflict(tc.err); got != tc.want {
			t.Errorf("isLockConflict(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
