package database

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	DefaultDatabase = "pel_erp"
	connectTimeout  = 30 * time.Second
)

// IndexCreator is implemented by repositories that own collection indexes.
type IndexCreator interface {
	CreateIndexes(ctx context.Context) error
}

// DatabaseName returns the database named in uri, or DefaultDatabase.
func DatabaseName(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if cs.Database == "" {
		return DefaultDatabase, nil
	}
	return cs.Database, nil
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Database, error) {
	dbName, err := DatabaseName(uri)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.WithField("database", dbName).Info("Connected to MongoDB")
	return client.Database(dbName), nil
}

// EnsureIndexes runs every creator and logs failures without aborting;
// a missing index slows queries but the service can still start.
func EnsureIndexes(ctx context.Context, creators ...IndexCreator) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	failed := 0
	for _, c := range creators {
		if err := c.CreateIndexes(ctx); err != nil {
			failed++
			log.WithError(err).WithField("repository", fmt.Sprintf("%T", c)).Warn("Failed to create indexes")
		}
	}
	if failed == 0 {
		log.Info("Database indexes ensured")
	}
}

// Disconnect closes the MongoDB connection
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	log.Info("Disconnected from MongoDB")
	return nil
}

// Health pings the server behind db.
func Health(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return db.Client().Ping(ctx, nil)
}
