package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolbooks/internal/domain"
	"schoolbooks/internal/events"
	applog "schoolbooks/internal/log"
	"schoolbooks/internal/repos"
	"schoolbooks/internal/validate"
)

const EventContactCreated = "contact.created"

// ContactService is the cart-less checkout: enquiries land in the local inbox
// and are forwarded to Kafka when a broker is configured.
type ContactService struct {
	Inbox     *repos.ContactRepo
	Publisher events.Publisher
}

func (s *ContactService) Submit(ctx context.Context, f validate.ContactForm) (*domain.ContactMessage, error) {
	if errs := validate.Form(f); len(errs) > 0 {
		return nil, errs
	}
	m := &domain.ContactMessage{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Subject: f.Subject,
		Message: strings.TrimSpace(f.Message),
		BookID:  f.BookID,
		Status:  domain.MessageNew,
	}
	if err := s.Inbox.Create(m); err != nil {
		return nil, fmt.Errorf("store contact message: %w", err)
	}

	// The inbox row is the source of truth; a broker outage only loses the event.
	if s.Publisher != nil && s.Publisher.Enabled() {
		start := time.Now()
		err := s.Publisher.Publish(ctx, m.ID, events.NewEvent(EventContactCreated, m))
		if err != nil && !errors.Is(err, events.ErrDisabled) {
			applog.Upstream("contact.publish", time.Since(start), err, map[string]any{"id": m.ID})
		}
	}
	return m, nil
}

func (s *ContactService) List(status string) ([]domain.ContactMessage, error) {
	return s.Inbox.List(status)
}

// MarkHandled closes a message. Closing one that is already handled is a no-op.
func (s *ContactService) MarkHandled(id string) (*domain.ContactMessage, error) {
	m, err := s.Inbox.Get(id)
	if err != nil {
		return nil, err
	}
	if m.Status == domain.MessageHandled {
		return m, nil
	}
	if err := s.Inbox.MarkHandled(id); err != nil {
		return nil, err
	}
	m.Status = domain.MessageHandled
	return m, nil
}

// Subjects maps subject values to their labels for display.
func (s *ContactService) Subjects() map[string]string {
	out := make(map[string]string, len(domain.ContactSubjects))
	for _, sub := range domain.ContactSubjects {
		out[sub.Value] = sub.Label
	}
	return out
}
