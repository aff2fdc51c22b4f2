package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/avvvet/cardcraft-services/internal/cardsvc/models"
	"github.com/avvvet/cardcraft-services/internal/comm"
)

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactService struct {
	store  ContactStore
	events Publisher
}

func NewContactService(store ContactStore, events Publisher) *ContactService {
	return &ContactService{store: store, events: events}
}

// Submit validates and stores a message, then hands it to the mail service.
// The message stays stored even when forwarding fails.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*models.ContactMessage, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return nil, fmt.Errorf("%w: name, email and message are required", ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}

	m := &models.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
		Status:  models.ContactStatusNew,
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}

	if s.events != nil {
		err := s.events.PublishContact(comm.ContactData{
			ID:        m.ID.Hex(),
			Name:      m.Name,
			Email:     m.Email,
			Message:   m.Message,
			CreatedAt: m.CreatedAt,
		})
		if err != nil {
			return m, fmt.Errorf("forward contact message %s: %w", m.ID.Hex(), err)
		}
	}
	return m, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	return s.store.List(ctx)
}

func (s *ContactService) MarkRead(ctx context.Context, id string) (*models.ContactMessage, error) {
	m, err := s.store.SetStatus(ctx, id, models.ContactStatusRead)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: contact message %s", ErrNotFound, id)
	}
	return m, nil
}
