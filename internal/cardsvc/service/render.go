package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/cardcraft-services/internal/card"
	log "github.com/sirupsen/logrus"
)

// RenderRequest carries either a full design or a catalog reference.
type RenderRequest struct {
	Data      card.BusinessCardData `json:"data"`
	Design    *card.DesignConfig    `json:"design,omitempty"`
	Ref       *card.Ref             `json:"ref,omitempty"`
	Overrides *card.OverrideSet     `json:"overrides,omitempty"`
	Side      card.Side             `json:"side"`
	Compact   bool                  `json:"compact"`
	QRSize    int                   `json:"qrSize"`
	Print     bool                  `json:"print"`
	OrderID   string                `json:"orderId,omitempty"`
}

// Preview is the result of /render. Back is set when both sides were asked for.
type Preview struct {
	Front *card.Layout `json:"front,omitempty"`
	Back  *card.Layout `json:"back,omitempty"`
}

type RenderService struct {
	templates TemplateStore
	orders    *OrderService
	exporter  Exporter
}

func NewRenderService(templates TemplateStore, orders *OrderService, exporter Exporter) *RenderService {
	return &RenderService{templates: templates, orders: orders, exporter: exporter}
}

// Preview renders the requested side, or both sides when none is given.
func (s *RenderService) Preview(ctx context.Context, req RenderRequest) (*Preview, error) {
	design, err := s.design(ctx, req, false)
	if err != nil {
		return nil, err
	}
	overrides := overridesOf(req)
	data := req.Data.Trimmed()
	opts := card.Options{Compact: req.Compact, QRSize: req.QRSize, Print: req.Print}

	p := &Preview{}
	switch req.Side {
	case card.SideFront:
		l := card.Render(data, design, overrides, card.SideFront, opts)
		p.Front = &l
	case card.SideBack:
		l := card.Render(data, design, overrides, card.SideBack, opts)
		p.Back = &l
	case "":
		front := card.Render(data, design, overrides, card.SideFront, opts)
		back := card.Render(data, design, overrides, card.SideBack, opts)
		p.Front, p.Back = &front, &back
	default:
		return nil, fmt.Errorf("%w: side must be front or back", ErrValidation)
	}
	return p, nil
}

// Export renders one side in print mode and rasterizes it to PNG. Premium
// managed templates need a paid order that includes them.
func (s *RenderService) Export(ctx context.Context, req RenderRequest) ([]byte, error) {
	side := req.Side
	if side == "" {
		side = card.SideFront
	}
	if !side.Valid() {
		return nil, fmt.Errorf("%w: side must be front or back", ErrValidation)
	}

	design, err := s.design(ctx, req, true)
	if err != nil {
		return nil, err
	}
	if design.Premium() {
		ok, err := s.orders.Unlocks(ctx, req.OrderID, design.ID())
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s costs %s", ErrPremiumLocked, design.Name(), design.Price())
		}
	}

	opts := card.Options{Compact: req.Compact, QRSize: req.QRSize, Print: true}
	l := card.Render(req.Data.Trimmed(), design, overridesOf(req), side, opts)
	l.Badge = ""

	html, err := PageHTML(l)
	if err != nil {
		return nil, err
	}
	png, err := s.exporter.Capture(ctx, html)
	if err != nil {
		log.Errorf("export of %s/%s failed: %v", design.Origin, design.ID(), err)
		return nil, fmt.Errorf("export failed: %w", err)
	}
	return png, nil
}

// design resolves the request to a validated design. With authoritative set,
// managed designs are always reloaded from the store so a client cannot
// clear the premium flag.
func (s *RenderService) design(ctx context.Context, req RenderRequest, authoritative bool) (card.DesignConfig, error) {
	ref := req.Ref
	if ref == nil && req.Design != nil && authoritative && req.Design.Origin == card.OriginManaged {
		r := req.Design.Ref()
		ref = &r
	}

	if ref != nil {
		switch ref.Origin {
		case card.OriginClassic:
			c, ok := card.ClassicByID(ref.ID)
			if !ok {
				return card.DesignConfig{}, fmt.Errorf("%w: classic template %s", ErrNotFound, ref.ID)
			}
			return card.FromClassic(c), nil
		case card.OriginManaged:
			t, err := s.templates.Get(ctx, ref.ID)
			if err != nil {
				return card.DesignConfig{}, err
			}
			if t == nil || t.Status != string(card.StatusPublished) {
				return card.DesignConfig{}, fmt.Errorf("%w: template %s", ErrNotFound, ref.ID)
			}
			return card.FromManaged(t.Managed()), nil
		default:
			return card.DesignConfig{}, fmt.Errorf("%w: %s designs cannot be referenced", ErrValidation, ref.Origin)
		}
	}

	if req.Design == nil {
		return card.DesignConfig{}, fmt.Errorf("%w: design or ref required", ErrValidation)
	}
	if err := req.Design.Validate(); err != nil {
		return card.DesignConfig{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return *req.Design, nil
}

func overridesOf(req RenderRequest) card.OverrideSet {
	if req.Overrides == nil {
		return card.DefaultOverrides()
	}
	return req.Overrides.WithDefaults()
}
