package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectToDB connects to the database named in the uri path, e.g.
// mongodb://localhost:27017/cards.
func ConnectToDB(mongoURI string) (*mongo.Database, error) {
	dbName, err := DatabaseName(mongoURI)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("error pinging MongoDB: %w", err)
	}

	return client.Database(dbName), nil
}

// DatabaseName extracts the database name from a mongodb uri.
func DatabaseName(mongoURI string) (string, error) {
	uri, err := url.Parse(mongoURI)
	if err != nil {
		return "", fmt.Errorf("error parsing MongoDB URI: %w", err)
	}
	name := strings.TrimPrefix(uri.Path, "/")
	if name == "" {
		return "", fmt.Errorf("MongoDB URI has no database name")
	}
	return name, nil
}

type Index struct {
	Collection string
	Model      mongo.IndexModel
}

// Indexes used by the card service collections.
func Indexes() []Index {
	return []Index{
		{"users", mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{"templates", mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}, {Key: "updated_at", Value: -1}}}},
		{"contactmessages", mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}},
	}
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, ix := range Indexes() {
		if _, err := db.Collection(ix.Collection).Indexes().CreateOne(ctx, ix.Model); err != nil {
			return fmt.Errorf("index on %s: %w", ix.Collection, err)
		}
		log.Debugf("index ensured on %s", ix.Collection)
	}
	return nil
}
