package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Hotel        primitive.ObjectID `bson:"hotel"`
	User         primitive.ObjectID `bson:"user"`
	Room         string             `bson:"room"`
	CheckInDate  time.Time          `bson:"checkInDate"`
	CheckOutDate time.Time          `bson:"checkOutDate"`
	TotalPrice   float64            `bson:"totalPrice"`
	Status       string             `bson:"status"`
	Guests       int                `bson:"guests"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d bookingDoc) toModel() models.Booking {
	status := models.BookingStatus(d.Status)
	if status == "" {
		status = models.BookingConfirmed
	}
	return models.Booking{
		ID:           d.ID.Hex(),
		HotelID:      d.Hotel.Hex(),
		UserID:       d.User.Hex(),
		Room:         d.Room,
		CheckInDate:  d.CheckInDate.UTC(),
		CheckOutDate: d.CheckOutDate.UTC(),
		TotalPrice:   d.TotalPrice,
		Guests:       d.Guests,
		Status:       status,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// MongoBookingRepo is the document-store booking store.
type MongoBookingRepo struct {
	DB *mongo.Database
}

func (r MongoBookingRepo) coll() *mongo.Collection {
	return mongoDB(r.DB).Collection(bookingsCollection)
}

// Reserve inserts the booking and then looks for any other confirmed booking
// holding the same room on an overlapping night. If one exists the new document
// is removed again, so two racing reservations can both lose but never both win.
func (r MongoBookingRepo) Reserve(ctx context.Context, b models.Booking) (models.Booking, error) {
	hotelID, err := primitive.ObjectIDFromHex(b.HotelID)
	if err != nil {
		return models.Booking{}, domain.NotFoundError{Resource: "hotel", Err: err}
	}
	userID, err := primitive.ObjectIDFromHex(b.UserID)
	if err != nil {
		return models.Booking{}, domain.ValidationError{Field: "user", Msg: "invalid user id", Err: err}
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := bookingDoc{
		ID:           primitive.NewObjectID(),
		Hotel:        hotelID,
		User:         userID,
		Room:         b.Room,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		TotalPrice:   b.TotalPrice,
		Status:       string(b.Status),
		Guests:       b.Guests,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if doc.Status == "" {
		doc.Status = string(models.BookingConfirmed)
	}
	holds := doc.Status == string(models.BookingConfirmed) && doc.CheckOutDate.After(doc.CheckInDate)
	if holds {
		taken, err := r.coll().CountDocuments(ctx, roomHeldFilter(doc))
		if err != nil {
			return models.Booking{}, fmt.Errorf("check room: %w", err)
		}
		if taken > 0 {
			return models.Booking{}, domain.ErrRoomTaken
		}
	}

	if _, err := r.coll().InsertOne(ctx, doc); err != nil {
		return models.Booking{}, fmt.Errorf("insert booking: %w", err)
	}

	if holds {
		taken, err := r.coll().CountDocuments(ctx, roomHeldFilter(doc))
		if err == nil && taken == 0 {
			return doc.toModel(), nil
		}
		if _, delErr := r.coll().DeleteOne(ctx, bson.M{"_id": doc.ID}); delErr != nil {
			return models.Booking{}, fmt.Errorf("undo booking %s: %w", doc.ID.Hex(), delErr)
		}
		if err != nil {
			return models.Booking{}, fmt.Errorf("check room: %w", err)
		}
		return models.Booking{}, domain.ErrRoomTaken
	}
	return doc.toModel(), nil
}

// roomHeldFilter matches other confirmed bookings of doc's room whose stay
// overlaps doc's.
func roomHeldFilter(doc bookingDoc) bson.M {
	f := overlapFilter(doc.Hotel, doc.CheckInDate, doc.CheckOutDate)
	f["room"] = doc.Room
	f["_id"] = bson.M{"$ne": doc.ID}
	return f
}

func overlapFilter(hotel primitive.ObjectID, from, to time.Time) bson.M {
	return bson.M{
		"hotel":        hotel,
		"status":       string(models.BookingConfirmed),
		"checkInDate":  bson.M{"$lt": to},
		"checkOutDate": bson.M{"$gt": from},
		"$expr":        bson.M{"$gt": bson.A{"$checkOutDate", "$checkInDate"}},
	}
}

func (r MongoBookingRepo) GetByID(ctx context.Context, id string) (models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	var doc bookingDoc
	if err := r.coll().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	return doc.toModel(), nil
}

func (r MongoBookingRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NotFoundError{Resource: "booking", Err: err}
	}
	_, err = r.coll().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"status":    string(status),
			"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
		}},
	)
	return err
}

func (r MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []models.Booking{}, nil
	}
	return r.find(ctx, bson.M{"user": oid}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r MongoBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r MongoBookingRepo) ListOverlapping(ctx context.Context, hotelID string, from, to time.Time) ([]models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(hotelID)
	if err != nil {
		return []models.Booking{}, nil
	}
	return r.find(ctx, overlapFilter(oid, from, to))
}

func (r MongoBookingRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Booking, error) {
	cur, err := r.coll().Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var docs []bookingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Booking, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}
