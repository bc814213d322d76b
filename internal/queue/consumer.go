// Package queue contains the background consumer that listens to the
// session.lifecycle queue and turns each event into notification rows
// for the affected parties.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/logger"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/repository"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/session"
)

// StartSessionConsumer connects to RabbitMQ, declares the durable
// session.lifecycle queue and consumes events until ctx is cancelled.
// Each event is fanned out as notification rows via the repository.
// Inserts are at-least-once: a redelivered event inserts again, which
// the product accepts.  Broker connections are retried with capped
// exponential backoff; a failed message is rejected without requeue so
// a malformed payload cannot wedge the queue.
func StartSessionConsumer(ctx context.Context, brokerURL string, notifications *repository.NotificationRepo) error {
	backoff := retry.WithCappedDuration(30*time.Second, retry.NewExponential(time.Second))
	for {
		var conn *amqp.Connection
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			c, err := amqp.Dial(brokerURL)
			if err != nil {
				zap.L().Warn("session-consumer: dial failed", zap.Error(err))
				return retry.RetryableError(err)
			}
			conn = c
			return nil
		})
		if err != nil {
			return err // context cancelled
		}

		if err := consumeLoop(ctx, conn, notifications); err != nil {
			if ctx.Err() != nil {
				_ = conn.Close()
				return ctx.Err()
			}
			zap.L().Warn("session-consumer: consume loop ended, reconnecting", zap.Error(err))
			_ = conn.Close()
			continue
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, notifications *repository.NotificationRepo) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		zap.L().Warn("session-consumer: set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(SessionQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(SessionQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := handleMessage(ctx, d.Body, notifications); err != nil {
				zap.L().Error("session-consumer: handle message failed", zap.Error(err))
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func handleMessage(ctx context.Context, body []byte, notifications *repository.NotificationRepo) error {
	var ev SessionEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	rows := notificationsFor(ev)
	for _, n := range rows {
		n := n
		if err := notifications.Create(ctx, &n); err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}
	}
	zap.L().Info("session-consumer: event handled",
		zap.Uint64(logger.FieldSessionID, ev.SessionID),
		zap.Uint64(logger.FieldMentorID, ev.MentorID),
		zap.Uint64(logger.FieldMenteeID, ev.MenteeID),
		zap.String("status", ev.Status),
		zap.Int("notifications", len(rows)))
	return nil
}

// notificationsFor maps one lifecycle event to the inbox rows it
// produces.  A request notifies the mentor; a mentor's decision
// notifies the mentee; a cancellation notifies the party that did not
// cancel; the time-triggered transitions notify both parties.
func notificationsFor(ev SessionEvent) []model.Notification {
	build := func(userID uint64, title, message string) model.Notification {
		return model.Notification{
			UserID:    userID,
			Title:     title,
			Message:   message,
			Type:      "session_" + ev.Status,
			RelatedID: ev.SessionID,
		}
	}
	switch ev.Status {
	case session.StatusRequested:
		return []model.Notification{build(ev.MentorID,
			"New session request",
			fmt.Sprintf("%q was requested for %s.", ev.Title, ev.ScheduledStart))}
	case session.StatusConfirmed:
		return []model.Notification{build(ev.MenteeID,
			"Session confirmed",
			fmt.Sprintf("Your mentor confirmed %q for %s.", ev.Title, ev.ScheduledStart))}
	case session.StatusDeclined:
		return []model.Notification{build(ev.MenteeID,
			"Session declined",
			fmt.Sprintf("Your mentor declined %q.", ev.Title))}
	case session.StatusCancelled:
		out := make([]model.Notification, 0, 2)
		if ev.ActorUserID != ev.MentorID {
			out = append(out, build(ev.MentorID, "Session cancelled",
				fmt.Sprintf("%q scheduled for %s was cancelled.", ev.Title, ev.ScheduledStart)))
		}
		if ev.ActorUserID != ev.MenteeID {
			out = append(out, build(ev.MenteeID, "Session cancelled",
				fmt.Sprintf("%q scheduled for %s was cancelled.", ev.Title, ev.ScheduledStart)))
		}
		return out
	case session.StatusInProgress:
		msg := fmt.Sprintf("%q has started.", ev.Title)
		return []model.Notification{
			build(ev.MentorID, "Session started", msg),
			build(ev.MenteeID, "Session started", msg),
		}
	case session.StatusCompleted:
		msg := fmt.Sprintf("%q has ended.", ev.Title)
		return []model.Notification{
			build(ev.MentorID, "Session completed", msg),
			build(ev.MenteeID, "Session completed", msg),
		}
	}
	return nil
}
