package service

import (
	"context"

	"github.com/avvvet/cardcraft-services/internal/cardsvc/models"
	"github.com/avvvet/cardcraft-services/internal/comm"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// The store methods return nil, nil for a missing record.

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, u *models.User) error
}

type TemplateStore interface {
	List(ctx context.Context, status string) ([]models.Template, error)
	Get(ctx context.Context, id string) (*models.Template, error)
	Create(ctx context.Context, t *models.Template) error
	Update(ctx context.Context, id string, set bson.M) (*models.Template, error)
	Delete(ctx context.Context, id string) error
}

type ContactStore interface {
	Create(ctx context.Context, m *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
	SetStatus(ctx context.Context, id, status string) (*models.ContactMessage, error)
}

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
}

// Publisher is the outbound event side; the NATS broker implements it.
type Publisher interface {
	PublishContact(c comm.ContactData) error
	PublishCatalogChange(c comm.CatalogChange) error
}
