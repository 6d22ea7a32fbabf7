package repositories

import (
	"context"
	"testing"
	"time"

	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var hotelCols = []string{
	"id", "name", "type", "city", "address", "description", "rating", "rooms",
	"cheapest_price", "photos", "user_id", "reservation_status", "created_at", "updated_at",
}

func TestHotelRepoListBuildsPriceRangeAndFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM hotels WHERE cheapest_price > \? AND cheapest_price < \? AND city = \? AND rating = \? LIMIT \?`).
		WithArgs(50.0, 300.0, "Paris", 4.5, 2).
		WillReturnRows(sqlmock.NewRows(hotelCols).
			AddRow("h1", "Ritz", "hotel", "Paris", "Place Vendome", "lux", 4.5, `["101","102"]`, 120.0, "a.jpg", "u1", "available", now, now))

	repo := HotelRepo{DB: db}
	hotels, err := repo.List(context.Background(), models.HotelQuery{
		MinPrice: 50,
		MaxPrice: 300,
		Filters:  map[string]any{"rating": 4.5, "city": "Paris", "bogus": "x"},
		Limit:    2,
	})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(hotels) != 1 {
		t.Fatalf("expected 1 hotel, got %d", len(hotels))
	}
	h := hotels[0]
	if h.ID != "h1" || h.UserID != "u1" || h.ReservationStatus != models.ReservationAvailable {
		t.Fatalf("unexpected hotel: %+v", h)
	}
	if len(h.Rooms) != 2 || h.Rooms[1] != "102" {
		t.Fatalf("rooms decoded incorrectly: %v", h.Rooms)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHotelRepoListWithoutLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`WHERE cheapest_price > \? AND cheapest_price < \?$`).
		WithArgs(1.0, 999999.0).
		WillReturnRows(sqlmock.NewRows(hotelCols))

	hotels, err := HotelRepo{DB: db}.List(context.Background(), models.HotelQuery{MinPrice: 1, MaxPrice: 999999})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if hotels == nil || len(hotels) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", hotels)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHotelRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM hotels WHERE id=\?`).WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(hotelCols))

	_, err = HotelRepo{DB: db}.GetByID(context.Background(), "missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestHotelRepoUpdateOptionalFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	photos := "new.jpg"
	status := models.ReservationConfirmed

	mock.ExpectExec(`UPDATE hotels SET name=\?,type=\?,city=\?,address=\?,description=\?,rating=\?,rooms=\?,cheapest_price=\?,photos=\?,reservation_status=\?,updated_at=\? WHERE id=\?`).
		WithArgs("Ritz", "hotel", "Paris", "addr", "desc", 5.0, `["1"]`, 100.0, "new.jpg", "confirmed", sqlmock.AnyArg(), "h1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM hotels WHERE id=\?`).WithArgs("h1").
		WillReturnRows(sqlmock.NewRows(hotelCols).
			AddRow("h1", "Ritz", "hotel", "Paris", "addr", "desc", 5.0, `["1"]`, 100.0, "new.jpg", nil, "confirmed", now, now))

	updated, err := HotelRepo{DB: db}.Update(context.Background(), "h1", models.HotelUpdate{
		HotelFields: models.HotelFields{
			Name: "Ritz", Type: "hotel", City: "Paris", Address: "addr", Description: "desc",
			Rating: 5, Rooms: []string{"1"}, CheapestPrice: 100,
		},
		Photos:            &photos,
		ReservationStatus: &status,
	})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.Photos != "new.jpg" || updated.ReservationStatus != models.ReservationConfirmed {
		t.Fatalf("unexpected updated hotel: %+v", updated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHotelRepoRefsSkipsQueryForNoIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	refs, err := HotelRepo{DB: db}.Refs(context.Background(), []string{"", ""})
	if err != nil {
		t.Fatalf("refs error: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("expected no refs, got %v", refs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestHotelRepoRefsDedupesIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, address, photos FROM hotels WHERE id IN \(\?,\?\)`).
		WithArgs("h1", "h2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "photos"}).
			AddRow("h1", "One", "Addr 1", nil).
			AddRow("h2", "Two", "Addr 2", "two.jpg"))

	refs, err := HotelRepo{DB: db}.Refs(context.Background(), []string{"h1", "h2", "h1"})
	if err != nil {
		t.Fatalf("refs error: %v", err)
	}
	if refs["h2"].Photos != "two.jpg" || refs["h1"].Name != "One" {
		t.Fatalf("unexpected refs: %+v", refs)
	}
}
