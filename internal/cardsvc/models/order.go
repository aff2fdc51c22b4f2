package models

import (
	"time"

	"github.com/avvvet/cardcraft-services/internal/card"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
)

func ValidOrderStatus(s string) bool {
	return s == OrderPending || s == OrderPaid || s == OrderCancelled
}

// CartItem is one customized card in an order.
type CartItem struct {
	ID         string                `json:"id"`
	Kind       card.Origin           `json:"kind"` // classic or managed
	TemplateID string                `json:"templateId"`
	Name       string                `json:"name"`
	Data       card.BusinessCardData `json:"data"`
	Overrides  card.OverrideSet      `json:"overrides"`
	Price      decimal.Decimal       `json:"price"`
}

// Order represents the orders table in postgres.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	UserID    string          `json:"userId"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Covers reports whether the order paid for the managed template id.
func (o Order) Covers(templateID string) bool {
	if o.Status != OrderPaid {
		return false
	}
	for _, it := range o.Items {
		if it.Kind == card.OriginManaged && it.TemplateID == templateID {
			return true
		}
	}
	return false
}
