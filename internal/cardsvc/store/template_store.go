package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avvvet/cardcraft-services/internal/cardsvc/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const TemplatesCollection = "templates"

type TemplateStore struct {
	coll *mongo.Collection
}

func NewTemplateStore(db *mongo.Database) *TemplateStore {
	return &TemplateStore{coll: db.Collection(TemplatesCollection)}
}

// List returns templates newest updated_at first. An empty status lists all.
func (s *TemplateStore) List(ctx context.Context, status string) ([]models.Template, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("could not list templates: %w", err)
	}
	defer cur.Close(ctx)

	items := []models.Template{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("could not decode templates: %w", err)
	}
	return items, nil
}

// Get returns nil, nil when no template has the id.
func (s *TemplateStore) Get(ctx context.Context, id string) (*models.Template, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	t := &models.Template{}
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get template %s: %w", id, err)
	}
	return t, nil
}

func (s *TemplateStore) Create(ctx context.Context, t *models.Template) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, t)
	if err != nil {
		return fmt.Errorf("could not create template: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return nil
}

// Update applies set and returns the updated document, or nil, nil when
// the template does not exist.
func (s *TemplateStore) Update(ctx context.Context, id string, set bson.M) (*models.Template, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	t := &models.Template{}
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not update template %s: %w", id, err)
	}
	return t, nil
}

// Delete is idempotent; deleting a missing template is not an error.
func (s *TemplateStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("could not delete template %s: %w", id, err)
	}
	return nil
}
