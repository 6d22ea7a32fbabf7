package services

//go:generate mockgen -destination=mocks/mock_stores.go -package=mocks hotelapi/internal/services BookingStore,HotelStore,ImageStore,UserStore

import (
	"context"
	"mime/multipart"
	"time"

	"hotelapi/internal/domain/models"
)

// HotelStore is implemented by repositories.HotelRepo and repositories.MongoHotelRepo.
type HotelStore interface {
	Create(ctx context.Context, h models.Hotel) (models.Hotel, error)
	GetByID(ctx context.Context, id string) (models.Hotel, error)
	List(ctx context.Context, q models.HotelQuery) ([]models.Hotel, error)
	Update(ctx context.Context, id string, upd models.HotelUpdate) (models.Hotel, error)
	Delete(ctx context.Context, id string) error
	SetReservationStatus(ctx context.Context, id string, status models.ReservationStatus) error
	Refs(ctx context.Context, ids []string) (map[string]models.HotelRef, error)
}

// BookingStore holds room reservations. Reserve stores a booking only when no
// other confirmed booking holds the same room on an overlapping night, and
// returns domain.ConflictError otherwise.
type BookingStore interface {
	Reserve(ctx context.Context, b models.Booking) (models.Booking, error)
	GetByID(ctx context.Context, id string) (models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	// ListOverlapping returns confirmed bookings of the hotel that hold any
	// night in [from, to).
	ListOverlapping(ctx context.Context, hotelID string, from, to time.Time) ([]models.Booking, error)
}

type UserStore interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	Refs(ctx context.Context, ids []string) (map[string]models.UserRef, error)
}

// ImageStore persists an uploaded hotel image and returns the stored file name.
type ImageStore interface {
	Save(file *multipart.FileHeader) (string, error)
}
