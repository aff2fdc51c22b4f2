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

const ContactCollection = "contactmessages"

type ContactStore struct {
	coll *mongo.Collection
}

func NewContactStore(db *mongo.Database) *ContactStore {
	return &ContactStore{coll: db.Collection(ContactCollection)}
}

func (s *ContactStore) Create(ctx context.Context, m *models.ContactMessage) error {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, m)
	if err != nil {
		return fmt.Errorf("could not save contact message: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return nil
}

// List returns messages newest first.
func (s *ContactStore) List(ctx context.Context) ([]models.ContactMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("could not list contact messages: %w", err)
	}
	defer cur.Close(ctx)

	items := []models.ContactMessage{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("could not decode contact messages: %w", err)
	}
	return items, nil
}

// SetStatus returns nil, nil when the message does not exist.
func (s *ContactStore) SetStatus(ctx context.Context, id, status string) (*models.ContactMessage, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	m := &models.ContactMessage{}
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not update contact message %s: %w", id, err)
	}
	return m, nil
}
