package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hotelapi/internal/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Mongo   *mongo.Database
	mongoMu sync.Mutex
)

// ConnectMongo opens the shared MongoDB client and selects dbName (idempotent).
func ConnectMongo(uri, dbName string) (*mongo.Database, error) {
	mongoMu.Lock()
	defer mongoMu.Unlock()

	if Mongo != nil {
		return Mongo, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	Mongo = client.Database(dbName)
	utils.Log.WithField("database", dbName).Info("connected to MongoDB")
	return Mongo, nil
}

// PingMongo reports whether the shared client is alive.
func PingMongo(ctx context.Context) error {
	mongoMu.Lock()
	db := Mongo
	mongoMu.Unlock()

	if db == nil {
		return fmt.Errorf("mongo not connected")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.Client().Ping(ctx, nil)
}

func CloseMongo() {
	mongoMu.Lock()
	defer mongoMu.Unlock()

	if Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = Mongo.Client().Disconnect(ctx)
		Mongo = nil
	}
}
