package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/avvvet/cardcraft-services/internal/card"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ClassicPrice is what a classic card costs in the cart.
var ClassicPrice = decimal.Zero

type CartItemInput struct {
	Kind       card.Origin           `json:"kind"`
	TemplateID string                `json:"templateId"`
	Data       card.BusinessCardData `json:"data"`
	Overrides  *card.OverrideSet     `json:"overrides"`
}

type OrderService struct {
	store     OrderStore
	templates TemplateStore
}

func NewOrderService(store OrderStore, templates TemplateStore) *OrderService {
	return &OrderService{store: store, templates: templates}
}

// Create prices every item on the server and stores a pending order.
func (s *OrderService) Create(ctx context.Context, userID string, items []CartItemInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	o := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Items:  make([]models.CartItem, 0, len(items)),
		Total:  decimal.Zero,
		Status: models.OrderPending,
	}
	for i, in := range items {
		item, err := s.price(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		item.ID = fmt.Sprintf("%s-%d", o.ID, i)
		o.Items = append(o.Items, item)
		o.Total = o.Total.Add(item.Price)
	}

	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	log.Infof("order %s created for user %s total %s", o.ID, userID, o.Total.StringFixed(2))
	return o, nil
}

func (s *OrderService) price(ctx context.Context, in CartItemInput) (models.CartItem, error) {
	overrides := card.DefaultOverrides()
	if in.Overrides != nil {
		overrides = in.Overrides.WithDefaults()
	}
	item := models.CartItem{
		Kind:       in.Kind,
		TemplateID: in.TemplateID,
		Data:       in.Data.Trimmed(),
		Overrides:  overrides,
	}

	switch in.Kind {
	case card.OriginClassic:
		c, ok := card.ClassicByID(in.TemplateID)
		if !ok {
			return item, fmt.Errorf("%w: classic template %s", ErrNotFound, in.TemplateID)
		}
		item.Name = c.Name
		item.Price = ClassicPrice
	case card.OriginManaged:
		t, err := s.templates.Get(ctx, in.TemplateID)
		if err != nil {
			return item, err
		}
		if t == nil || t.Status != string(card.StatusPublished) {
			return item, fmt.Errorf("%w: template %s", ErrNotFound, in.TemplateID)
		}
		d := card.FromManaged(t.Managed())
		item.Name = d.Name()
		item.Price = decimal.Zero
		if d.Premium() {
			p, err := ParsePrice(d.Price())
			if err != nil {
				return item, err
			}
			item.Price = p
		}
	default:
		return item, fmt.Errorf("%w: kind must be classic or managed", ErrValidation)
	}
	return item, nil
}

// ParsePrice reads display prices such as "$2.99" or "2.99".
func ParsePrice(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	d, err := decimal.NewFromString(clean)
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: invalid price %q", ErrValidation, s)
	}
	return d.Round(2), nil
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.store.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	o, err := s.store.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	return o, nil
}

func (s *OrderService) SetStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: status must be pending, paid or cancelled", ErrValidation)
	}
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	o, err := s.store.SetStatus(ctx, oid, status)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	log.Infof("order %s set to %s", id, status)
	return o, nil
}

// Unlocks reports whether orderID is a paid order that bought templateID.
func (s *OrderService) Unlocks(ctx context.Context, orderID, templateID string) (bool, error) {
	if orderID == "" {
		return false, nil
	}
	o, err := s.Get(ctx, orderID)
	if err != nil {
		return false, err
	}
	return o.Covers(templateID), nil
}
