package handlers

import (
	"context"

	"hotelapi/internal/http/middleware"
	"hotelapi/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler holds the store-backed dependencies shared by all endpoints.
// Services are built per request so each one carries that request's id.
type Handler struct {
	Hotels   services.HotelStore
	Bookings services.BookingStore
	Users    services.UserStore
	Images   services.ImageStore
	Auth     services.AuthService
	Ping     func(ctx context.Context) error
}

func (h *Handler) hotelService(c *gin.Context) services.HotelService {
	return services.HotelService{
		Hotels:    h.Hotels,
		Images:    h.Images,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Hotels:    h.Hotels,
		Bookings:  h.Bookings,
		Users:     h.Users,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		Bookings:  h.Bookings,
		Hotels:    h.Hotels,
		Users:     h.Users,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) authService(c *gin.Context) services.AuthService {
	svc := h.Auth
	svc.Users = h.Users
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}
