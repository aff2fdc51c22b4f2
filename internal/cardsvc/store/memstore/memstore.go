// Package memstore keeps cardsvc data in process memory. It backs tests and
// local runs without MongoDB or Postgres; nothing survives a restart.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avvvet/cardcraft-services/internal/cardsvc/models"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/store"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStore struct {
	mu    sync.Mutex
	users []models.User
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID.Hex() == id {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func (s *UserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return fmt.Errorf("could not create user %s: %w", u.Email, store.ErrDuplicate)
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	s.users = append(s.users, *u)
	return nil
}

type TemplateStore struct {
	mu    sync.Mutex
	items map[string]models.Template
}

// NewTemplateStore seeds the store; seeds without an id get a fresh one.
func NewTemplateStore(seed ...models.Template) *TemplateStore {
	s := &TemplateStore{items: map[string]models.Template{}}
	for _, t := range seed {
		if t.ID.IsZero() {
			t.ID = primitive.NewObjectID()
		}
		s.items[t.ID.Hex()] = t
	}
	return s
}

func (s *TemplateStore) List(_ context.Context, status string) ([]models.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Template{}
	for _, t := range s.items {
		if status == "" || t.Status == status {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *TemplateStore) Get(_ context.Context, id string) (*models.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *TemplateStore) Create(_ context.Context, t *models.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	s.items[t.ID.Hex()] = *t
	return nil
}

// Update understands the flat $set documents TemplateService builds.
func (s *TemplateStore) Update(_ context.Context, id string, set bson.M) (*models.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	for k, v := range set {
		switch k {
		case "name":
			t.Name, _ = v.(string)
		case "status":
			t.Status, _ = v.(string)
		case "config":
			t.Config, _ = v.(map[string]any)
		case "background_url":
			t.BackgroundURL, _ = v.(string)
		case "back_background_url":
			t.BackBackgroundURL, _ = v.(string)
		case "thumbnail_url":
			t.ThumbnailURL, _ = v.(string)
		}
	}
	t.UpdatedAt = time.Now().UTC()
	s.items[id] = t
	return &t, nil
}

func (s *TemplateStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

type ContactStore struct {
	mu   sync.Mutex
	msgs []models.ContactMessage
}

func NewContactStore() *ContactStore {
	return &ContactStore{}
}

func (s *ContactStore) Create(_ context.Context, m *models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt
	s.msgs = append(s.msgs, *m)
	return nil
}

// List is newest first.
func (s *ContactStore) List(context.Context) ([]models.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ContactMessage, 0, len(s.msgs))
	for i := len(s.msgs) - 1; i >= 0; i-- {
		out = append(out, s.msgs[i])
	}
	return out, nil
}

func (s *ContactStore) SetStatus(_ context.Context, id, status string) (*models.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.msgs {
		if s.msgs[i].ID.Hex() == id {
			s.msgs[i].Status = status
			s.msgs[i].UpdatedAt = time.Now().UTC()
			m := s.msgs[i]
			return &m, nil
		}
	}
	return nil, nil
}

type OrderStore struct {
	mu     sync.Mutex
	orders map[uuid.UUID]models.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: map[uuid.UUID]models.Order{}}
}

func (s *OrderStore) Create(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	s.orders[o.ID] = *o
	return nil
}

func (s *OrderStore) Get(_ context.Context, id uuid.UUID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *OrderStore) List(context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *OrderStore) SetStatus(_ context.Context, id uuid.UUID, status string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	s.orders[id] = o
	return &o, nil
}
