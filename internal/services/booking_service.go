package services

import (
	"context"
	"fmt"
	"strings"

	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"
	"hotelapi/internal/utils"
)

// BookingService owns the booking lifecycle and room availability.
//
// A room is taken for a night when a confirmed booking for it covers that night;
// BookingStore.Reserve enforces that atomically. The hotel's reservationStatus
// flag is still written after each create and cancel, separately from the
// booking record, and a failure between the two writes is not reconciled.
type BookingService struct {
	Hotels    HotelStore
	Bookings  BookingStore
	Users     UserStore
	RequestID string
}

type CreateBookingInput struct {
	HotelID      string
	CheckInDate  string
	CheckOutDate string
	Guests       int
	Room         string
}

func (in CreateBookingInput) missing() []string {
	var out []string
	if strings.TrimSpace(in.HotelID) == "" {
		out = append(out, "hotelId")
	}
	if strings.TrimSpace(in.CheckInDate) == "" {
		out = append(out, "checkInDate")
	}
	if strings.TrimSpace(in.CheckOutDate) == "" {
		out = append(out, "checkOutDate")
	}
	if in.Guests == 0 {
		out = append(out, "guests")
	}
	if strings.TrimSpace(in.Room) == "" {
		out = append(out, "room")
	}
	return out
}

// CreateBooking prices the stay from the hotel's cheapest nightly rate, reserves
// the room for the caller, and then flags the hotel as confirmed.
// Check-out before check-in is not rejected; the price comes out zero or negative
// and such a stay holds no nights.
//
// Returns domain.ErrRoomTaken (HTTP 409) when a confirmed booking already holds
// the room on one of the requested nights; nothing is stored and the hotel flag
// is left as it was.
func (s BookingService) CreateBooking(ctx context.Context, actor domain.RequestContext, in CreateBookingInput) (models.Booking, error) {
	if missing := in.missing(); len(missing) > 0 {
		return models.Booking{}, domain.ValidationError{
			Field: strings.Join(missing, ","),
			Msg:   "All fields are required!",
		}
	}
	checkIn, err := utils.ParseStayDate(in.CheckInDate)
	if err != nil {
		return models.Booking{}, domain.ValidationError{Field: "checkInDate", Msg: "invalid date", Err: err}
	}
	checkOut, err := utils.ParseStayDate(in.CheckOutDate)
	if err != nil {
		return models.Booking{}, domain.ValidationError{Field: "checkOutDate", Msg: "invalid date", Err: err}
	}

	hotelID := strings.TrimSpace(in.HotelID)
	hotel, err := s.Hotels.GetByID(ctx, hotelID)
	if err != nil {
		return models.Booking{}, storeErr(err)
	}

	nights, total := utils.ComputeStayPrice(checkIn, checkOut, hotel.CheapestPrice)

	saved, err := s.Bookings.Reserve(ctx, models.Booking{
		HotelID:      hotel.ID,
		UserID:       actor.UserID,
		Room:         strings.TrimSpace(in.Room),
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalPrice:   total,
		Guests:       in.Guests,
		Status:       models.BookingConfirmed,
	})
	if err != nil {
		return models.Booking{}, storeErr(err)
	}

	if err := s.Hotels.SetReservationStatus(ctx, hotel.ID, models.ReservationConfirmed); err != nil {
		return models.Booking{}, storeErr(err)
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%s hotel_id=%s nights=%d total=%s", saved.ID, hotel.ID, nights, utils.FormatMoney(total)))
	return saved, nil
}

// CancelBooking flips the caller's booking to cancelled and marks the hotel available.
// Repeating it re-runs both writes; the booking stays cancelled.
func (s BookingService) CancelBooking(ctx context.Context, actor domain.RequestContext, bookingID, hotelID string) error {
	booking, err := s.Bookings.GetByID(ctx, strings.TrimSpace(bookingID))
	if err != nil {
		return storeErr(err)
	}

	hotelID = strings.TrimSpace(hotelID)
	if hotelID == "" {
		return domain.NotFoundError{Resource: "hotel"}
	}
	hotel, err := s.Hotels.GetByID(ctx, hotelID)
	if err != nil {
		return storeErr(err)
	}

	if booking.UserID != actor.UserID {
		return domain.ForbiddenError{Msg: "You can only cancel your own bookings"}
	}

	if err := s.Hotels.SetReservationStatus(ctx, hotel.ID, models.ReservationAvailable); err != nil {
		return storeErr(err)
	}
	if err := s.Bookings.UpdateStatus(ctx, booking.ID, models.BookingCancelled); err != nil {
		return storeErr(err)
	}

	utils.LogEvent(s.RequestID, "booking", "cancel",
		fmt.Sprintf("booking_id=%s hotel_id=%s", booking.ID, hotel.ID))
	return nil
}

// CheckAvailability reports which of the hotel's rooms are free for every night
// from checkIn up to checkOut.
func (s BookingService) CheckAvailability(ctx context.Context, hotelID, checkIn, checkOut string) (models.Availability, error) {
	var missing []string
	if strings.TrimSpace(checkIn) == "" {
		missing = append(missing, "checkInDate")
	}
	if strings.TrimSpace(checkOut) == "" {
		missing = append(missing, "checkOutDate")
	}
	if len(missing) > 0 {
		return models.Availability{}, domain.ValidationError{Field: strings.Join(missing, ","), Msg: "checkInDate and checkOutDate are required"}
	}
	from, err := utils.ParseStayDate(checkIn)
	if err != nil {
		return models.Availability{}, domain.ValidationError{Field: "checkInDate", Msg: "invalid date", Err: err}
	}
	to, err := utils.ParseStayDate(checkOut)
	if err != nil {
		return models.Availability{}, domain.ValidationError{Field: "checkOutDate", Msg: "invalid date", Err: err}
	}
	nights := utils.StayNights(from, to)
	if nights <= 0 {
		return models.Availability{}, domain.ValidationError{Field: "checkOutDate", Msg: "checkOutDate must be after checkInDate"}
	}

	hotel, err := s.Hotels.GetByID(ctx, strings.TrimSpace(hotelID))
	if err != nil {
		return models.Availability{}, storeErr(err)
	}
	held, err := s.Bookings.ListOverlapping(ctx, hotel.ID, from, to)
	if err != nil {
		return models.Availability{}, storeErr(err)
	}
	taken := make(map[string]bool, len(held))
	for _, b := range held {
		if b.Holds(from, to) {
			taken[b.Room] = true
		}
	}

	out := models.Availability{
		HotelID:      hotel.ID,
		CheckInDate:  from,
		CheckOutDate: to,
		Nights:       nights,
		Rooms:        make([]models.RoomAvailability, 0, len(hotel.Rooms)),
	}
	for _, room := range hotel.Rooms {
		free := !taken[room]
		out.Rooms = append(out.Rooms, models.RoomAvailability{Room: room, Available: free})
		out.Available = out.Available || free
	}
	return out, nil
}

// GetUserBookings lists the caller's bookings newest first with hotel name,
// address and photos attached.
func (s BookingService) GetUserBookings(ctx context.Context, actor domain.RequestContext) ([]models.UserBooking, error) {
	bookings, err := s.Bookings.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, storeErr(err)
	}
	hotels, err := s.Hotels.Refs(ctx, hotelIDs(bookings))
	if err != nil {
		return nil, storeErr(err)
	}

	out := make([]models.UserBooking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, models.UserBooking{Booking: b, Hotel: hotelRef(hotels, b.HotelID)})
	}
	return out, nil
}

// GetAllBookings lists every booking with hotel name and user name/email attached.
// Callers gate it to admins.
func (s BookingService) GetAllBookings(ctx context.Context) ([]models.AdminBooking, error) {
	bookings, err := s.Bookings.ListAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	hotels, err := s.Hotels.Refs(ctx, hotelIDs(bookings))
	if err != nil {
		return nil, storeErr(err)
	}
	userIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		userIDs = append(userIDs, b.UserID)
	}
	users, err := s.Users.Refs(ctx, userIDs)
	if err != nil {
		return nil, storeErr(err)
	}

	out := make([]models.AdminBooking, 0, len(bookings))
	for _, b := range bookings {
		item := models.AdminBooking{Booking: b}
		if ref := hotelRef(hotels, b.HotelID); ref != nil {
			// admin listing only carries the hotel name
			item.Hotel = &models.HotelRef{ID: ref.ID, Name: ref.Name}
		}
		if u, ok := users[b.UserID]; ok {
			u := u
			item.User = &u
		}
		out = append(out, item)
	}
	return out, nil
}

func hotelIDs(bookings []models.Booking) []string {
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.HotelID)
	}
	return ids
}

func hotelRef(refs map[string]models.HotelRef, id string) *models.HotelRef {
	ref, ok := refs[id]
	if !ok {
		return nil
	}
	return &ref
}

// storeErr passes typed domain errors through and wraps anything else as internal.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case domain.IsNotFound(err), domain.IsValidation(err), domain.IsConflict(err),
		domain.IsForbidden(err), domain.IsInternal(err):
		return err
	}
	return domain.InternalError{Err: err}
}
