package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Mongo owns the client and the application database handle.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect dials uri and pings the primary. Both steps share one timeout, so an
// unreachable server fails within it.
func Connect(ctx context.Context, uri, dbName string, timeout time.Duration) (*Mongo, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(timeoutCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(timeoutCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	zap.L().Info("Connected to MongoDB", zap.String("database", dbName))
	return &Mongo{Client: client, DB: client.Database(dbName)}, nil
}

// Ping checks the primary is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB
func (m *Mongo) Close(ctx context.Context) error {
	disconnectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(disconnectCtx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	zap.L().Info("Disconnected from MongoDB")
	return nil
}
