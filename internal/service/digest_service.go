package service

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Notifier delivers the daily digest over one channel.
type Notifier interface {
	Name() string
	SendDigest(ctx context.Context, subject, body string) error
}

// DigestService fans the daily digest out to every configured notifier.
type DigestService struct {
	reminders *ReminderService
	notifiers []Notifier
}

func NewDigestService(reminders *ReminderService, notifiers ...Notifier) *DigestService {
	return &DigestService{reminders: reminders, notifiers: notifiers}
}

// Send builds the digest once and hands it to each notifier. Days with
// nothing due are skipped. A failing notifier does not stop the others.
func (s *DigestService) Send(ctx context.Context) error {
	if len(s.notifiers) == 0 {
		return nil
	}
	body, due, err := s.reminders.DailyDigest(ctx)
	if err != nil {
		return err
	}
	if !due {
		log.Println("[info] digest: nothing due, skipped")
		return nil
	}
	subject := fmt.Sprintf("Household reminders for %s", s.reminders.Now().Format("2 Jan 2006"))

	var errs []error
	for _, n := range s.notifiers {
		if err := n.SendDigest(ctx, subject, body); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
			continue
		}
		log.Printf("[info] digest sent via %s", n.Name())
	}
	return errors.Join(errs...)
}
