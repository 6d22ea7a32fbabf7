package services

import (
	"context"
	"errors"
	"testing"

	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingFixture() (BookingService, *memHotels, *memBookings) {
	hotels := newMemHotels(
		models.Hotel{ID: "h1", Name: "Sea View", Address: "1 Beach Rd", Photos: "sea.jpg", CheapestPrice: 100, Rooms: []string{"101", "102"}},
		models.Hotel{ID: "h2", Name: "Hill Top", Address: "2 Hill Rd", CheapestPrice: 80},
	)
	bookings := newMemBookings()
	users := newMemUsers(
		models.User{ID: "alice", Name: "Alice", Email: "alice@example.com"},
		models.User{ID: "bob", Name: "Bob", Email: "bob@example.com"},
	)
	return BookingService{Hotels: hotels, Bookings: bookings, Users: users}, hotels, bookings
}

var alice = domain.RequestContext{UserID: "alice", Role: domain.RoleUser}
var bob = domain.RequestContext{UserID: "bob", Role: domain.RoleUser}

func validBookingInput() CreateBookingInput {
	return CreateBookingInput{
		HotelID:      "h1",
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-04",
		Guests:       2,
		Room:         "101",
	}
}

func bookingInRoom(room string) CreateBookingInput {
	in := validBookingInput()
	in.Room = room
	return in
}

func TestCreateBookingPricesStayAndConfirmsHotel(t *testing.T) {
	svc, hotels, _ := newBookingFixture()

	b, err := svc.CreateBooking(context.Background(), alice, validBookingInput())
	require.NoError(t, err)

	assert.Equal(t, 300.0, b.TotalPrice)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Equal(t, "alice", b.UserID)
	assert.Equal(t, "h1", b.HotelID)
	assert.Equal(t, 2, b.Guests)
	assert.Equal(t, models.ReservationConfirmed, hotels.status("h1"))
}

func TestCreateBookingMissingFieldCreatesNothing(t *testing.T) {
	cases := map[string]func(*CreateBookingInput){
		"hotelId":      func(in *CreateBookingInput) { in.HotelID = "" },
		"checkInDate":  func(in *CreateBookingInput) { in.CheckInDate = "" },
		"checkOutDate": func(in *CreateBookingInput) { in.CheckOutDate = " " },
		"guests":       func(in *CreateBookingInput) { in.Guests = 0 },
		"room":         func(in *CreateBookingInput) { in.Room = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			svc, hotels, bookings := newBookingFixture()
			in := validBookingInput()
			mutate(&in)

			_, err := svc.CreateBooking(context.Background(), alice, in)

			var verr domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "All fields are required!", verr.Msg)
			assert.Contains(t, verr.Field, field)
			assert.Equal(t, 0, bookings.count())
			assert.Equal(t, models.ReservationAvailable, hotels.status("h1"))
		})
	}
}

func TestCreateBookingUnknownHotel(t *testing.T) {
	svc, _, bookings := newBookingFixture()
	in := validBookingInput()
	in.HotelID = "missing"

	_, err := svc.CreateBooking(context.Background(), alice, in)

	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, 0, bookings.count())
}

func TestCreateBookingInvalidDate(t *testing.T) {
	svc, _, bookings := newBookingFixture()
	in := validBookingInput()
	in.CheckOutDate = "next tuesday"

	_, err := svc.CreateBooking(context.Background(), alice, in)

	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, bookings.count())
}

func TestCreateBookingReversedDatesGiveNegativePrice(t *testing.T) {
	svc, _, _ := newBookingFixture()
	in := validBookingInput()
	in.CheckInDate = "2024-01-05"
	in.CheckOutDate = "2024-01-01"

	b, err := svc.CreateBooking(context.Background(), alice, in)
	require.NoError(t, err)
	assert.Equal(t, -400.0, b.TotalPrice)
}

func TestCreateBookingStoreFailureIsInternal(t *testing.T) {
	svc, _, bookings := newBookingFixture()
	bookings.err = errors.New("disk full")

	_, err := svc.CreateBooking(context.Background(), alice, validBookingInput())

	assert.True(t, domain.IsInternal(err))
}

func TestCreateBookingRoomAlreadyHeld(t *testing.T) {
	svc, hotels, bookings := newBookingFixture()
	ctx := context.Background()
	_, err := svc.CreateBooking(ctx, alice, validBookingInput())
	require.NoError(t, err)
	require.NoError(t, hotels.SetReservationStatus(ctx, "h1", models.ReservationAvailable))

	in := validBookingInput()
	in.CheckInDate = "2024-01-03"
	in.CheckOutDate = "2024-01-06"
	_, err = svc.CreateBooking(ctx, bob, in)

	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, 1, bookings.count())
	assert.Equal(t, models.ReservationAvailable, hotels.status("h1"), "a rejected booking must not flag the hotel")
}

func TestCreateBookingRoomRules(t *testing.T) {
	cases := []struct {
		name     string
		room     string
		checkIn  string
		checkOut string
	}{
		{"back to back", "101", "2024-01-04", "2024-01-06"},
		{"ends on arrival", "101", "2023-12-30", "2024-01-01"},
		{"other room", "102", "2024-01-02", "2024-01-03"},
		{"reversed stay holds nothing", "101", "2024-01-03", "2024-01-02"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, bookings := newBookingFixture()
			ctx := context.Background()
			_, err := svc.CreateBooking(ctx, alice, validBookingInput())
			require.NoError(t, err)

			in := bookingInRoom(tc.room)
			in.CheckInDate, in.CheckOutDate = tc.checkIn, tc.checkOut
			_, err = svc.CreateBooking(ctx, bob, in)

			require.NoError(t, err)
			assert.Equal(t, 2, bookings.count())
		})
	}
}

func TestCancelledBookingFreesRoom(t *testing.T) {
	svc, _, _ := newBookingFixture()
	ctx := context.Background()
	b, err := svc.CreateBooking(ctx, alice, validBookingInput())
	require.NoError(t, err)
	require.NoError(t, svc.CancelBooking(ctx, alice, b.ID, "h1"))

	_, err = svc.CreateBooking(ctx, bob, validBookingInput())
	assert.NoError(t, err)
}

func TestCheckAvailability(t *testing.T) {
	svc, _, _ := newBookingFixture()
	ctx := context.Background()
	_, err := svc.CreateBooking(ctx, alice, validBookingInput())
	require.NoError(t, err)

	got, err := svc.CheckAvailability(ctx, "h1", "2024-01-02", "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Nights)
	assert.True(t, got.Available)
	assert.Equal(t, []models.RoomAvailability{
		{Room: "101", Available: false},
		{Room: "102", Available: true},
	}, got.Rooms)

	got, err = svc.CheckAvailability(ctx, "h1", "2024-01-04", "2024-01-05")
	require.NoError(t, err)
	assert.True(t, got.Rooms[0].Available, "check-out day is free again")
}

func TestCheckAvailabilityRejects(t *testing.T) {
	svc, _, _ := newBookingFixture()
	ctx := context.Background()

	_, err := svc.CheckAvailability(ctx, "h1", "", "2024-01-03")
	var verr domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "checkInDate", verr.Field)

	_, err = svc.CheckAvailability(ctx, "h1", "2024-01-03", "2024-01-03")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.CheckAvailability(ctx, "h1", "2024-01-03", "soon")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.CheckAvailability(ctx, "missing", "2024-01-01", "2024-01-03")
	assert.True(t, domain.IsNotFound(err))
}

func TestCancelBookingByNonOwnerIsForbidden(t *testing.T) {
	svc, hotels, bookings := newBookingFixture()
	b, err := svc.CreateBooking(context.Background(), alice, validBookingInput())
	require.NoError(t, err)

	err = svc.CancelBooking(context.Background(), bob, b.ID, "h1")

	assert.True(t, domain.IsForbidden(err))
	assert.Equal(t, "You can only cancel your own bookings", err.Error())
	stored, _ := bookings.GetByID(context.Background(), b.ID)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
	assert.Equal(t, models.ReservationConfirmed, hotels.status("h1"))
}

func TestCancelBookingTwiceStaysCancelled(t *testing.T) {
	svc, hotels, bookings := newBookingFixture()
	b, err := svc.CreateBooking(context.Background(), alice, validBookingInput())
	require.NoError(t, err)

	require.NoError(t, svc.CancelBooking(context.Background(), alice, b.ID, "h1"))
	stored, _ := bookings.GetByID(context.Background(), b.ID)
	assert.Equal(t, models.BookingCancelled, stored.Status)
	assert.Equal(t, models.ReservationAvailable, hotels.status("h1"))

	// the hotel was re-confirmed by someone else in between; a repeat cancel frees it again
	require.NoError(t, hotels.SetReservationStatus(context.Background(), "h1", models.ReservationConfirmed))
	require.NoError(t, svc.CancelBooking(context.Background(), alice, b.ID, "h1"))
	stored, _ = bookings.GetByID(context.Background(), b.ID)
	assert.Equal(t, models.BookingCancelled, stored.Status)
	assert.Equal(t, models.ReservationAvailable, hotels.status("h1"))
}

func TestCancelBookingLookups(t *testing.T) {
	svc, _, _ := newBookingFixture()
	b, err := svc.CreateBooking(context.Background(), alice, validBookingInput())
	require.NoError(t, err)

	err = svc.CancelBooking(context.Background(), alice, "nope", "h1")
	var nf domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "booking", nf.Resource)

	err = svc.CancelBooking(context.Background(), alice, b.ID, "")
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "hotel", nf.Resource)

	err = svc.CancelBooking(context.Background(), alice, b.ID, "gone")
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "hotel", nf.Resource)
}

func TestGetUserBookingsOnlyCallerNewestFirst(t *testing.T) {
	svc, _, _ := newBookingFixture()
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, alice, validBookingInput())
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, bob, bookingInRoom("102"))
	require.NoError(t, err)
	in := validBookingInput()
	in.HotelID = "h2"
	second, err := svc.CreateBooking(ctx, alice, in)
	require.NoError(t, err)

	list, err := svc.GetUserBookings(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	for _, b := range list {
		assert.Equal(t, "alice", b.UserID)
	}
	require.NotNil(t, list[1].Hotel)
	assert.Equal(t, "Sea View", list[1].Hotel.Name)
	assert.Equal(t, "1 Beach Rd", list[1].Hotel.Address)
	assert.Equal(t, "sea.jpg", list[1].Hotel.Photos)
}

func TestGetUserBookingsDeletedHotelLeavesNilRef(t *testing.T) {
	svc, hotels, _ := newBookingFixture()
	ctx := context.Background()
	_, err := svc.CreateBooking(ctx, alice, validBookingInput())
	require.NoError(t, err)
	require.NoError(t, hotels.Delete(ctx, "h1"))

	list, err := svc.GetUserBookings(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Hotel)
}

func TestGetAllBookingsAttachesHotelNameAndUser(t *testing.T) {
	svc, _, _ := newBookingFixture()
	ctx := context.Background()
	_, err := svc.CreateBooking(ctx, alice, validBookingInput())
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, bob, bookingInRoom("102"))
	require.NoError(t, err)

	list, err := svc.GetAllBookings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, b := range list {
		require.NotNil(t, b.Hotel)
		assert.Equal(t, "Sea View", b.Hotel.Name)
		assert.Empty(t, b.Hotel.Address)
		require.NotNil(t, b.User)
		assert.Equal(t, b.UserID, b.User.ID)
	}
	assert.Equal(t, "alice@example.com", list[0].User.Email)
}
