package handlers

import (
	"net/http"

	"hotelapi/internal/domain/models"
	"hotelapi/internal/http/middleware"
	"hotelapi/internal/services"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	HotelID      string `json:"hotelId"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Guests       int    `json:"guests"`
	Room         string `json:"room"`
}

type cancelBookingRequest struct {
	HotelID string `json:"hotelId"`
}

// POST /api/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	booking, err := h.bookingService(c).CreateBooking(c.Request.Context(), middleware.GetRequestContext(c), services.CreateBookingInput{
		HotelID:      req.HotelID,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Guests:       req.Guests,
		Room:         req.Room,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "booking": booking})
}

// PUT /api/bookings/:id/cancel
func (h *Handler) CancelBooking(c *gin.Context) {
	var req cancelBookingRequest
	// an empty body leaves hotelId empty, which the service reports as hotel not found
	if !BindOptionalJSONOrError(c, &req) {
		return
	}
	if err := h.bookingService(c).CancelBooking(c.Request.Context(), middleware.GetRequestContext(c), c.Param("id"), req.HotelID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}

// GET /api/bookings/me
func (h *Handler) GetUserBookings(c *gin.Context) {
	bookings, err := h.bookingService(c).GetUserBookings(c.Request.Context(), middleware.GetRequestContext(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.UserBooking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/bookings (admin)
func (h *Handler) GetAllBookings(c *gin.Context) {
	bookings, err := h.bookingService(c).GetAllBookings(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.AdminBooking{}
	}
	c.JSON(http.StatusOK, bookings)
}
