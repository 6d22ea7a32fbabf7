package models

import "time"

// ReservationStatus is a single hotel-level flag, not per room or date.
type ReservationStatus string

const (
	ReservationAvailable ReservationStatus = "available"
	ReservationConfirmed ReservationStatus = "confirmed"
)

type Hotel struct {
	ID                string            `json:"_id"`
	Name              string            `json:"name"`
	Type              string            `json:"type"`
	City              string            `json:"city"`
	Address           string            `json:"address"`
	Description       string            `json:"description"`
	Rating            float64           `json:"rating"`
	Rooms             []string          `json:"rooms"`
	CheapestPrice     float64           `json:"cheapestPrice"`
	Photos            string            `json:"photos"`
	UserID            string            `json:"user"`
	ReservationStatus ReservationStatus `json:"reservationStatus"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// HotelFields are the fields an admin supplies on create and update.
type HotelFields struct {
	Name          string
	Type          string
	City          string
	Address       string
	Description   string
	Rating        float64
	Rooms         []string
	CheapestPrice float64
}

// HotelUpdate replaces the required fields; pointer fields are replaced only when set.
type HotelUpdate struct {
	HotelFields
	Photos            *string
	ReservationStatus *ReservationStatus
}

// HotelFilterFields are the hotel fields usable as equality filters when listing.
// "rating" filters carry a float64 value, every other field a string.
var HotelFilterFields = []string{
	"name",
	"type",
	"city",
	"address",
	"description",
	"rating",
	"reservationStatus",
	"user",
}

// HotelQuery drives the directory listing: cheapestPrice strictly between
// MinPrice and MaxPrice, plus equality on each Filters entry. Limit <= 0 means no limit.
type HotelQuery struct {
	MinPrice float64
	MaxPrice float64
	Filters  map[string]any
	Limit    int
}

// HotelRef is the slice of a hotel attached to bookings on read.
type HotelRef struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Photos  string `json:"photos,omitempty"`
}
