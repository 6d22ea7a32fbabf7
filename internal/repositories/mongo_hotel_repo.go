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

type hotelDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Type              string             `bson:"type"`
	City              string             `bson:"city"`
	Address           string             `bson:"address"`
	Description       string             `bson:"description"`
	Rating            float64            `bson:"rating"`
	Rooms             []string           `bson:"rooms"`
	CheapestPrice     float64            `bson:"cheapestPrice"`
	Photos            string             `bson:"photos,omitempty"`
	User              primitive.ObjectID `bson:"user,omitempty"`
	ReservationStatus string             `bson:"reservationStatus"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func (d hotelDoc) toModel() models.Hotel {
	rooms := d.Rooms
	if rooms == nil {
		rooms = []string{}
	}
	status := models.ReservationStatus(d.ReservationStatus)
	if status == "" {
		status = models.ReservationAvailable
	}
	return models.Hotel{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Type:              d.Type,
		City:              d.City,
		Address:           d.Address,
		Description:       d.Description,
		Rating:            d.Rating,
		Rooms:             rooms,
		CheapestPrice:     d.CheapestPrice,
		Photos:            d.Photos,
		UserID:            hexOrEmpty(d.User),
		ReservationStatus: status,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// MongoHotelRepo is the document-store hotel store.
type MongoHotelRepo struct {
	DB *mongo.Database
}

func (r MongoHotelRepo) coll() *mongo.Collection {
	return mongoDB(r.DB).Collection(hotelsCollection)
}

func (r MongoHotelRepo) Create(ctx context.Context, h models.Hotel) (models.Hotel, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := hotelDoc{
		ID:                primitive.NewObjectID(),
		Name:              h.Name,
		Type:              h.Type,
		City:              h.City,
		Address:           h.Address,
		Description:       h.Description,
		Rating:            h.Rating,
		Rooms:             h.Rooms,
		CheapestPrice:     h.CheapestPrice,
		Photos:            h.Photos,
		ReservationStatus: string(h.ReservationStatus),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if doc.Rooms == nil {
		doc.Rooms = []string{}
	}
	if doc.ReservationStatus == "" {
		doc.ReservationStatus = string(models.ReservationAvailable)
	}
	if h.UserID != "" {
		uid, err := primitive.ObjectIDFromHex(h.UserID)
		if err != nil {
			return models.Hotel{}, domain.ValidationError{Field: "user", Msg: "invalid user id", Err: err}
		}
		doc.User = uid
	}
	if _, err := r.coll().InsertOne(ctx, doc); err != nil {
		return models.Hotel{}, fmt.Errorf("insert hotel: %w", err)
	}
	return doc.toModel(), nil
}

func (r MongoHotelRepo) GetByID(ctx context.Context, id string) (models.Hotel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Hotel{}, domain.NotFoundError{Resource: "hotel", Err: err}
	}
	var doc hotelDoc
	if err := r.coll().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Hotel{}, domain.NotFoundError{Resource: "hotel", Err: err}
		}
		return models.Hotel{}, err
	}
	return doc.toModel(), nil
}

// hotelListFilter translates a HotelQuery into a bson filter. ok is false when
// a reference filter can never match (malformed id).
func hotelListFilter(q models.HotelQuery) (bson.M, bool) {
	filter := bson.M{
		"cheapestPrice": bson.M{"$gt": q.MinPrice, "$lt": q.MaxPrice},
	}
	for k, v := range q.Filters {
		if _, known := hotelColumns[k]; !known {
			continue
		}
		if k == "user" {
			s, _ := v.(string)
			oid, err := primitive.ObjectIDFromHex(s)
			if err != nil {
				return nil, false
			}
			filter[k] = oid
			continue
		}
		filter[k] = v
	}
	return filter, true
}

func (r MongoHotelRepo) List(ctx context.Context, q models.HotelQuery) ([]models.Hotel, error) {
	filter, ok := hotelListFilter(q)
	if !ok {
		return []models.Hotel{}, nil
	}
	opts := options.Find()
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	cur, err := r.coll().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []hotelDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Hotel, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (r MongoHotelRepo) Update(ctx context.Context, id string, upd models.HotelUpdate) (models.Hotel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Hotel{}, domain.NotFoundError{Resource: "hotel", Err: err}
	}
	rooms := upd.Rooms
	if rooms == nil {
		rooms = []string{}
	}
	set := bson.M{
		"name":          upd.Name,
		"type":          upd.Type,
		"city":          upd.City,
		"address":       upd.Address,
		"description":   upd.Description,
		"rating":        upd.Rating,
		"rooms":         rooms,
		"cheapestPrice": upd.CheapestPrice,
		"updatedAt":     time.Now().UTC().Truncate(time.Millisecond),
	}
	if upd.Photos != nil {
		set["photos"] = *upd.Photos
	}
	if upd.ReservationStatus != nil {
		set["reservationStatus"] = string(*upd.ReservationStatus)
	}

	var doc hotelDoc
	err = r.coll().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Hotel{}, domain.NotFoundError{Resource: "hotel", Err: err}
		}
		return models.Hotel{}, fmt.Errorf("update hotel: %w", err)
	}
	return doc.toModel(), nil
}

func (r MongoHotelRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = r.coll().DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r MongoHotelRepo) SetReservationStatus(ctx context.Context, id string, status models.ReservationStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NotFoundError{Resource: "hotel", Err: err}
	}
	_, err = r.coll().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"reservationStatus": string(status),
			"updatedAt":         time.Now().UTC().Truncate(time.Millisecond),
		}},
	)
	return err
}

func (r MongoHotelRepo) Refs(ctx context.Context, ids []string) (map[string]models.HotelRef, error) {
	out := map[string]models.HotelRef{}
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return out, nil
	}
	cur, err := r.coll().Find(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		options.Find().SetProjection(bson.M{"name": 1, "address": 1, "photos": 1}),
	)
	if err != nil {
		return nil, err
	}
	var docs []hotelDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, d := range docs {
		out[d.ID.Hex()] = models.HotelRef{ID: d.ID.Hex(), Name: d.Name, Address: d.Address, Photos: d.Photos}
	}
	return out, nil
}
