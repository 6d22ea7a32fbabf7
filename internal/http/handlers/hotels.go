package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"
	"hotelapi/internal/http/middleware"
	"hotelapi/internal/services"
	"hotelapi/internal/utils"

	"github.com/gin-gonic/gin"
)

// roomList accepts rooms as a JSON array or as one comma separated string.
type roomList []string

func (r *roomList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*r = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*r = utils.SplitRoomList(s)
	return nil
}

func (r roomList) normalized() []string {
	if len(r) == 1 {
		return utils.SplitRoomList(r[0])
	}
	out := make([]string, 0, len(r))
	for _, v := range r {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

type hotelUpdateRequest struct {
	ID                string   `json:"id" form:"id"`
	MongoID           string   `json:"_id" form:"_id"`
	Name              string   `json:"name" form:"name"`
	Type              string   `json:"type" form:"type"`
	City              string   `json:"city" form:"city"`
	Address           string   `json:"address" form:"address"`
	Description       string   `json:"description" form:"description"`
	Rating            float64  `json:"rating" form:"rating"`
	Rooms             roomList `json:"rooms" form:"rooms"`
	CheapestPrice     float64  `json:"cheapestPrice" form:"cheapestPrice"`
	Photos            *string  `json:"photos" form:"photos"`
	ReservationStatus *string  `json:"reservationStatus" form:"reservationStatus" binding:"omitempty,oneof=available confirmed"`
}

// GET /api/hotels
func (h *Handler) ListHotels(c *gin.Context) {
	hotels, err := h.hotelService(c).ListHotels(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if hotels == nil {
		hotels = []models.Hotel{}
	}
	c.JSON(http.StatusOK, hotels)
}

// GET /api/hotels/single/:id responds 200 with null when nothing matches.
func (h *Handler) GetHotel(c *gin.Context) {
	hotel, err := h.hotelService(c).GetHotel(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// GET /api/hotels/availability/:id?checkInDate=&checkOutDate=
func (h *Handler) GetHotelAvailability(c *gin.Context) {
	out, err := h.bookingService(c).CheckAvailability(c.Request.Context(),
		c.Param("id"), c.Query("checkInDate"), c.Query("checkOutDate"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/hotels/create-hotel (multipart/form-data, image in hotelImage)
func (h *Handler) CreateHotel(c *gin.Context) {
	in, err := hotelInputFromForm(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	file, err := c.FormFile("hotelImage")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		RespondDomainError(c, domain.UploadError{Msg: "An unknown error occurred while uploading the image!", Err: err})
		return
	}

	hotel, err := h.hotelService(c).CreateHotel(c.Request.Context(), middleware.GetRequestContext(c), in, file)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Hotel created!", "data": hotel})
}

// PUT /api/hotels/update-hotel and /api/hotels/update-hotel/:id
func (h *Handler) UpdateHotel(c *gin.Context) {
	var req hotelUpdateRequest
	if !BindOrError(c, &req) {
		return
	}

	id := firstNonEmpty(c.Param("id"), c.Query("id"), req.ID, req.MongoID)
	in := services.HotelUpdateInput{
		HotelInput: services.HotelInput{
			Name:          req.Name,
			Type:          req.Type,
			City:          req.City,
			Address:       req.Address,
			Description:   req.Description,
			Rating:        req.Rating,
			Rooms:         req.Rooms.normalized(),
			CheapestPrice: req.CheapestPrice,
		},
		Photos:            req.Photos,
		ReservationStatus: req.ReservationStatus,
	}

	hotel, err := h.hotelService(c).UpdateHotel(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// DELETE /api/hotels/:id
func (h *Handler) DeleteHotel(c *gin.Context) {
	if err := h.hotelService(c).DeleteHotel(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hotel has been deleted."})
}

func hotelInputFromForm(c *gin.Context) (services.HotelInput, error) {
	rating, err := parseFormFloat(c.PostForm("rating"), "rating")
	if err != nil {
		return services.HotelInput{}, err
	}
	price, err := parseFormFloat(c.PostForm("cheapestPrice"), "cheapestPrice")
	if err != nil {
		return services.HotelInput{}, err
	}
	rooms := c.PostFormArray("rooms")
	if len(rooms) == 0 {
		rooms = c.PostFormArray("rooms[]")
	}
	return services.HotelInput{
		Name:          c.PostForm("name"),
		Type:          c.PostForm("type"),
		City:          c.PostForm("city"),
		Address:       c.PostForm("address"),
		Description:   c.PostForm("description"),
		Rating:        rating,
		Rooms:         roomList(rooms).normalized(),
		CheapestPrice: price,
	}, nil
}

// parseFormFloat treats an empty value as absent (zero).
func parseFormFloat(raw, field string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.ValidationError{Field: field, Msg: "must be a number", Err: err}
	}
	return v, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
