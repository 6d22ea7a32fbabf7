package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"

	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"
	"hotelapi/internal/utils"
)

const (
	defaultMinPrice = 1
	defaultMaxPrice = 999999
)

// HotelService is the hotel directory: presence-checked CRUD plus filtered listing.
type HotelService struct {
	Hotels    HotelStore
	Images    ImageStore
	RequestID string
}

type HotelInput struct {
	Name          string
	Type          string
	City          string
	Address       string
	Description   string
	Rating        float64
	Rooms         []string
	CheapestPrice float64
}

func (in HotelInput) missing() []string {
	var out []string
	check := func(field, v string) {
		if strings.TrimSpace(v) == "" {
			out = append(out, field)
		}
	}
	check("name", in.Name)
	check("type", in.Type)
	check("city", in.City)
	check("address", in.Address)
	check("description", in.Description)
	if in.Rating == 0 {
		out = append(out, "rating")
	}
	if len(in.Rooms) == 0 {
		out = append(out, "rooms")
	}
	if in.CheapestPrice == 0 {
		out = append(out, "cheapestPrice")
	}
	return out
}

func (in HotelInput) fields() models.HotelFields {
	return models.HotelFields{
		Name:          strings.TrimSpace(in.Name),
		Type:          strings.TrimSpace(in.Type),
		City:          strings.TrimSpace(in.City),
		Address:       strings.TrimSpace(in.Address),
		Description:   strings.TrimSpace(in.Description),
		Rating:        in.Rating,
		Rooms:         in.Rooms,
		CheapestPrice: in.CheapestPrice,
	}
}

// CreateHotel validates the fields first, then requires and stores the image.
func (s HotelService) CreateHotel(ctx context.Context, actor domain.RequestContext, in HotelInput, image *multipart.FileHeader) (models.Hotel, error) {
	if missing := in.missing(); len(missing) > 0 {
		return models.Hotel{}, domain.ValidationError{Field: strings.Join(missing, ","), Msg: "All fields are required!"}
	}
	if image == nil {
		return models.Hotel{}, domain.UploadError{Msg: "You must upload a hotel image!"}
	}
	if s.Images == nil {
		return models.Hotel{}, domain.UploadError{Msg: "image storage is not configured"}
	}
	photo, err := s.Images.Save(image)
	if err != nil {
		return models.Hotel{}, domain.UploadError{Msg: "An unknown error occurred while uploading the image!", Err: err}
	}

	f := in.fields()
	saved, err := s.Hotels.Create(ctx, models.Hotel{
		Name:              f.Name,
		Type:              f.Type,
		City:              f.City,
		Address:           f.Address,
		Description:       f.Description,
		Rating:            f.Rating,
		Rooms:             f.Rooms,
		CheapestPrice:     f.CheapestPrice,
		Photos:            photo,
		UserID:            actor.UserID,
		ReservationStatus: models.ReservationAvailable,
	})
	if err != nil {
		return models.Hotel{}, storeErr(err)
	}
	utils.LogEvent(s.RequestID, "hotel", "create", fmt.Sprintf("hotel_id=%s photo=%s", saved.ID, photo))
	return saved, nil
}

// GetHotel returns nil, nil when the hotel does not exist.
func (s HotelService) GetHotel(ctx context.Context, id string) (*models.Hotel, error) {
	h, err := s.Hotels.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return &h, nil
}

// ParseHotelQuery reads min, max, limit and the equality filters from query parameters.
// Unknown parameters are ignored.
func ParseHotelQuery(params url.Values) (models.HotelQuery, error) {
	q := models.HotelQuery{
		MinPrice: defaultMinPrice,
		MaxPrice: defaultMaxPrice,
		Filters:  map[string]any{},
	}

	parseFloat := func(key string, dst *float64) error {
		raw := strings.TrimSpace(params.Get(key))
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.ValidationError{Field: key, Msg: "must be a number", Err: err}
		}
		*dst = v
		return nil
	}
	if err := parseFloat("min", &q.MinPrice); err != nil {
		return q, err
	}
	if err := parseFloat("max", &q.MaxPrice); err != nil {
		return q, err
	}

	if raw := strings.TrimSpace(params.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, domain.ValidationError{Field: "limit", Msg: "must be an integer", Err: err}
		}
		q.Limit = n
	}

	for _, field := range models.HotelFilterFields {
		if !params.Has(field) {
			continue
		}
		raw := strings.TrimSpace(params.Get(field))
		if field == "rating" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return q, domain.ValidationError{Field: field, Msg: "must be a number", Err: err}
			}
			q.Filters[field] = v
			continue
		}
		q.Filters[field] = raw
	}
	return q, nil
}

func (s HotelService) ListHotels(ctx context.Context, params url.Values) ([]models.Hotel, error) {
	q, err := ParseHotelQuery(params)
	if err != nil {
		return nil, err
	}
	hotels, err := s.Hotels.List(ctx, q)
	if err != nil {
		return nil, storeErr(err)
	}
	return hotels, nil
}

type HotelUpdateInput struct {
	HotelInput
	Photos            *string
	ReservationStatus *string
}

// UpdateHotel replaces every required field of the hotel; photos and
// reservationStatus are replaced only when supplied.
func (s HotelService) UpdateHotel(ctx context.Context, id string, in HotelUpdateInput) (models.Hotel, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Hotel{}, domain.ValidationError{Field: "id", Msg: "hotel id is required"}
	}
	if missing := in.missing(); len(missing) > 0 {
		return models.Hotel{}, domain.ValidationError{Field: strings.Join(missing, ","), Msg: "Missing required fields"}
	}

	upd := models.HotelUpdate{HotelFields: in.fields(), Photos: in.Photos}
	if in.ReservationStatus != nil {
		st := models.ReservationStatus(strings.TrimSpace(*in.ReservationStatus))
		if st != models.ReservationAvailable && st != models.ReservationConfirmed {
			return models.Hotel{}, domain.ValidationError{Field: "reservationStatus", Msg: "must be available or confirmed"}
		}
		upd.ReservationStatus = &st
	}

	updated, err := s.Hotels.Update(ctx, id, upd)
	if err != nil {
		return models.Hotel{}, storeErr(err)
	}
	utils.LogEvent(s.RequestID, "hotel", "update", "hotel_id="+updated.ID)
	return updated, nil
}

// DeleteHotel succeeds whether or not the hotel existed.
func (s HotelService) DeleteHotel(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ValidationError{Field: "id", Msg: "hotel id is required"}
	}
	if err := s.Hotels.Delete(ctx, id); err != nil {
		return storeErr(err)
	}
	utils.LogEvent(s.RequestID, "hotel", "delete", "hotel_id="+id)
	return nil
}
