package models

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID           string        `json:"_id"`
	HotelID      string        `json:"hotel"`
	UserID       string        `json:"user"`
	Room         string        `json:"room"`
	CheckInDate  time.Time     `json:"checkInDate"`
	CheckOutDate time.Time     `json:"checkOutDate"`
	TotalPrice   float64       `json:"totalPrice"`
	Guests       int           `json:"guests"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// UserBooking is a booking as its owner sees it: hotel expanded, user left as id.
type UserBooking struct {
	Booking
	Hotel *HotelRef `json:"hotel"`
}

// AdminBooking expands both references.
type AdminBooking struct {
	Booking
	Hotel *HotelRef `json:"hotel"`
	User  *UserRef  `json:"user"`
}

// Holds reports whether the booking keeps its room on any night in [from, to).
// Cancelled bookings and stays without a positive night count hold nothing.
func (b Booking) Holds(from, to time.Time) bool {
	if b.Status != BookingConfirmed || !b.CheckOutDate.After(b.CheckInDate) {
		return false
	}
	return b.CheckInDate.Before(to) && b.CheckOutDate.After(from)
}

// RoomAvailability is one room of an availability answer.
type RoomAvailability struct {
	Room      string `json:"room"`
	Available bool   `json:"available"`
}

// Availability answers which of a hotel's rooms are free for a stay.
type Availability struct {
	HotelID      string             `json:"hotelId"`
	CheckInDate  time.Time          `json:"checkInDate"`
	CheckOutDate time.Time          `json:"checkOutDate"`
	Nights       int                `json:"nights"`
	Available    bool               `json:"available"`
	Rooms        []RoomAvailability `json:"rooms"`
}
