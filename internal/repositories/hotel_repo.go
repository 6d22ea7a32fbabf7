package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	intconfig "hotelapi/internal/config"
	intdb "hotelapi/internal/db"
	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"

	"github.com/google/uuid"
)

const hotelSelect = `SELECT id, name, type, city, address, description, rating, rooms,
	cheapest_price, photos, user_id, reservation_status, created_at, updated_at
	FROM hotels`

// HotelRepo is the MySQL hotel store.
type HotelRepo struct {
	DB *sql.DB
}

func (r HotelRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHotel(s rowScanner) (models.Hotel, error) {
	var (
		h       models.Hotel
		rooms   sql.NullString
		photos  sql.NullString
		userID  sql.NullString
		resStat string
	)
	if err := s.Scan(
		&h.ID,
		&h.Name,
		&h.Type,
		&h.City,
		&h.Address,
		&h.Description,
		&h.Rating,
		&rooms,
		&h.CheapestPrice,
		&photos,
		&userID,
		&resStat,
		&h.CreatedAt,
		&h.UpdatedAt,
	); err != nil {
		return models.Hotel{}, err
	}
	list, err := intdb.DecodeStrings(rooms)
	if err != nil {
		return models.Hotel{}, fmt.Errorf("decode rooms: %w", err)
	}
	h.Rooms = list
	h.Photos = photos.String
	h.UserID = userID.String
	h.ReservationStatus = models.ReservationStatus(resStat)
	return h, nil
}

func (r HotelRepo) Create(ctx context.Context, h models.Hotel) (models.Hotel, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.ReservationStatus == "" {
		h.ReservationStatus = models.ReservationAvailable
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	h.CreatedAt, h.UpdatedAt = now, now

	rooms, err := intdb.EncodeStrings(h.Rooms)
	if err != nil {
		return models.Hotel{}, err
	}
	if h.Rooms == nil {
		h.Rooms = []string{}
	}

	_, err = r.db().ExecContext(ctx, `
		INSERT INTO hotels (id, name, type, city, address, description, rating, rooms,
			cheapest_price, photos, user_id, reservation_status, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		h.ID, h.Name, h.Type, h.City, h.Address, h.Description, h.Rating, rooms,
		h.CheapestPrice, intdb.NullIfEmpty(h.Photos), intdb.NullIfEmpty(h.UserID),
		string(h.ReservationStatus), h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return models.Hotel{}, fmt.Errorf("insert hotel: %w", err)
	}
	return h, nil
}

func (r HotelRepo) GetByID(ctx context.Context, id string) (models.Hotel, error) {
	row := r.db().QueryRowContext(ctx, hotelSelect+` WHERE id=? LIMIT 1`, id)
	h, err := scanHotel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Hotel{}, domain.NotFoundError{Resource: "hotel", Err: err}
		}
		return models.Hotel{}, err
	}
	return h, nil
}

func (r HotelRepo) List(ctx context.Context, q models.HotelQuery) ([]models.Hotel, error) {
	where := []string{"cheapest_price > ?", "cheapest_price < ?"}
	args := []any{q.MinPrice, q.MaxPrice}

	// stable clause order keeps the generated SQL predictable
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		col, ok := hotelColumns[k]
		if !ok {
			continue
		}
		where = append(where, col+" = ?")
		args = append(args, q.Filters[k])
	}

	query := hotelSelect + ` WHERE ` + strings.Join(where, " AND ")
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r HotelRepo) Update(ctx context.Context, id string, upd models.HotelUpdate) (models.Hotel, error) {
	rooms, err := intdb.EncodeStrings(upd.Rooms)
	if err != nil {
		return models.Hotel{}, err
	}
	sets := []string{
		"name=?", "type=?", "city=?", "address=?", "description=?",
		"rating=?", "rooms=?", "cheapest_price=?",
	}
	args := []any{
		upd.Name, upd.Type, upd.City, upd.Address, upd.Description,
		upd.Rating, rooms, upd.CheapestPrice,
	}
	if upd.Photos != nil {
		sets = append(sets, "photos=?")
		args = append(args, intdb.NullIfEmpty(*upd.Photos))
	}
	if upd.ReservationStatus != nil {
		sets = append(sets, "reservation_status=?")
		args = append(args, string(*upd.ReservationStatus))
	}
	sets = append(sets, "updated_at=?")
	args = append(args, time.Now().UTC().Truncate(time.Millisecond), id)

	if _, err := r.db().ExecContext(ctx, `UPDATE hotels SET `+strings.Join(sets, ",")+` WHERE id=?`, args...); err != nil {
		return models.Hotel{}, fmt.Errorf("update hotel: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r HotelRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db().ExecContext(ctx, `DELETE FROM hotels WHERE id=?`, id)
	return err
}

func (r HotelRepo) SetReservationStatus(ctx context.Context, id string, status models.ReservationStatus) error {
	_, err := r.db().ExecContext(ctx,
		`UPDATE hotels SET reservation_status=?, updated_at=? WHERE id=?`,
		string(status), time.Now().UTC().Truncate(time.Millisecond), id,
	)
	return err
}

// Refs loads name/address/photos for the given hotels, keyed by id. Missing ids are absent from the map.
func (r HotelRepo) Refs(ctx context.Context, ids []string) (map[string]models.HotelRef, error) {
	out := map[string]models.HotelRef{}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.db().QueryContext(ctx,
		`SELECT id, name, address, photos FROM hotels WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ref models.HotelRef
		var photos sql.NullString
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Address, &photos); err != nil {
			return nil, err
		}
		ref.Photos = photos.String
		out[ref.ID] = ref
	}
	return out, rows.Err()
}
