package repositories

import (
	"context"
	"fmt"

	intconfig "hotelapi/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names match the ones the existing documents live in.
const (
	hotelsCollection   = "hotels"
	bookingsCollection = "bookings"
	usersCollection    = "users"
)

func mongoDB(db *mongo.Database) *mongo.Database {
	if db != nil {
		return db
	}
	return intconfig.Mongo
}

// objectIDs converts hex ids, silently dropping malformed ones.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range uniqueIDs(ids) {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

// hexOrEmpty renders an optional reference.
func hexOrEmpty(oid primitive.ObjectID) string {
	if oid.IsZero() {
		return ""
	}
	return oid.Hex()
}

// EnsureMongoIndexes creates the indexes the stores rely on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	db = mongoDB(db)
	if db == nil {
		return fmt.Errorf("mongo not available")
	}
	if _, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("users index: %w", err)
	}
	if _, err := db.Collection(bookingsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "hotel", Value: 1}, {Key: "room", Value: 1}, {Key: "checkInDate", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("bookings index: %w", err)
	}
	if _, err := db.Collection(hotelsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "cheapestPrice", Value: 1}},
	}); err != nil {
		return fmt.Errorf("hotels index: %w", err)
	}
	return nil
}
