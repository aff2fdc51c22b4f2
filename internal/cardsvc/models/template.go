package models

import (
	"time"

	"github.com/avvvet/cardcraft-services/internal/card"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Template is an admin-managed card design stored in the templates collection.
type Template struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Status            string             `bson:"status" json:"status"`
	Config            map[string]any     `bson:"config" json:"config"`
	BackgroundURL     string             `bson:"background_url,omitempty" json:"background_url,omitempty"`
	BackBackgroundURL string             `bson:"back_background_url,omitempty" json:"back_background_url,omitempty"`
	ThumbnailURL      string             `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
	CreatedBy         string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// Managed converts the stored document into the renderer's managed design.
func (t Template) Managed() card.Managed {
	return card.Managed{
		ID:                t.ID.Hex(),
		Name:              t.Name,
		Status:            card.Status(t.Status),
		Settings:          card.ParseSettings(t.Config),
		BackgroundURL:     t.BackgroundURL,
		BackBackgroundURL: t.BackBackgroundURL,
		ThumbnailURL:      t.ThumbnailURL,
		CreatedBy:         t.CreatedBy,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// TemplateInput is the body of a create request.
type TemplateInput struct {
	Name              string         `json:"name"`
	Status            string         `json:"status"`
	Config            map[string]any `json:"config"`
	BackgroundURL     string         `json:"background_url"`
	BackBackgroundURL string         `json:"back_background_url"`
	ThumbnailURL      string         `json:"thumbnail_url"`
}

// TemplateUpdate is a partial update; nil fields are left unchanged.
type TemplateUpdate struct {
	Name              *string        `json:"name"`
	Status            *string        `json:"status"`
	Config            map[string]any `json:"config"`
	BackgroundURL     *string        `json:"background_url"`
	BackBackgroundURL *string        `json:"back_background_url"`
	ThumbnailURL      *string        `json:"thumbnail_url"`
}
