package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avvvet/cardcraft-services/internal/card"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/models"
	"github.com/avvvet/cardcraft-services/internal/comm"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

type TemplateService struct {
	store  TemplateStore
	events Publisher
}

func NewTemplateService(store TemplateStore, events Publisher) *TemplateService {
	return &TemplateService{store: store, events: events}
}

// ListPublished is the public listing, newest update first.
func (s *TemplateService) ListPublished(ctx context.Context) ([]models.Template, error) {
	return s.store.List(ctx, string(card.StatusPublished))
}

func (s *TemplateService) ListAll(ctx context.Context) ([]models.Template, error) {
	return s.store.List(ctx, "")
}

// Managed returns the published templates as renderer designs. It is the
// catalog fetcher.
func (s *TemplateService) Managed(ctx context.Context) ([]card.Managed, error) {
	items, err := s.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]card.Managed, 0, len(items))
	for _, t := range items {
		out = append(out, t.Managed())
	}
	return out, nil
}

func (s *TemplateService) Get(ctx context.Context, id string) (*models.Template, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: template %s", ErrNotFound, id)
	}
	return t, nil
}

func (s *TemplateService) Create(ctx context.Context, in models.TemplateInput, createdBy string) (*models.Template, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = string(card.StatusDraft)
	}
	if !card.Status(status).Valid() {
		return nil, fmt.Errorf("%w: status must be draft or published", ErrValidation)
	}
	config := in.Config
	if config == nil {
		config = map[string]any{}
	}

	t := &models.Template{
		Name:              name,
		Status:            status,
		Config:            config,
		BackgroundURL:     in.BackgroundURL,
		BackBackgroundURL: in.BackBackgroundURL,
		ThumbnailURL:      in.ThumbnailURL,
		CreatedBy:         createdBy,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}

	s.notify("created", t)
	return t, nil
}

func (s *TemplateService) Update(ctx context.Context, id string, in models.TemplateUpdate) (*models.Template, error) {
	set := bson.M{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name required", ErrValidation)
		}
		set["name"] = name
	}
	if in.Status != nil {
		if !card.Status(*in.Status).Valid() {
			return nil, fmt.Errorf("%w: status must be draft or published", ErrValidation)
		}
		set["status"] = *in.Status
	}
	if in.Config != nil {
		set["config"] = in.Config
	}
	if in.BackgroundURL != nil {
		set["background_url"] = *in.BackgroundURL
	}
	if in.BackBackgroundURL != nil {
		set["back_background_url"] = *in.BackBackgroundURL
	}
	if in.ThumbnailURL != nil {
		set["thumbnail_url"] = *in.ThumbnailURL
	}

	t, err := s.store.Update(ctx, id, set)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: template %s", ErrNotFound, id)
	}

	s.notify("updated", t)
	return t, nil
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if s.events != nil {
		if err := s.events.PublishCatalogChange(comm.CatalogChange{Action: "deleted", TemplateID: id, At: time.Now().UTC()}); err != nil {
			log.Warnf("catalog change for %s not published: %v", id, err)
		}
	}
	return nil
}

// notify is best effort.
func (s *TemplateService) notify(action string, t *models.Template) {
	if s.events == nil {
		return
	}
	err := s.events.PublishCatalogChange(comm.CatalogChange{
		Action:     action,
		TemplateID: t.ID.Hex(),
		Status:     t.Status,
		At:         time.Now().UTC(),
	})
	if err != nil {
		log.Warnf("catalog change for %s not published: %v", t.ID.Hex(), err)
	}
}
