package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "hotelapi/internal/config"
	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"

	"github.com/google/uuid"
)

const bookingSelect = `SELECT id, hotel_id, user_id, room, check_in_date, check_out_date,
	total_price, guests, status, created_at, updated_at
	FROM bookings`

// BookingRepo is the MySQL booking store.
type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanBooking(s rowScanner) (models.Booking, error) {
	var b models.Booking
	var status string
	if err := s.Scan(
		&b.ID,
		&b.HotelID,
		&b.UserID,
		&b.Room,
		&b.CheckInDate,
		&b.CheckOutDate,
		&b.TotalPrice,
		&b.Guests,
		&status,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return models.Booking{}, err
	}
	b.Status = models.BookingStatus(status)
	return b, nil
}

// Reserve inserts the booking inside a transaction that locks the hotel row,
// so concurrent reservations for one hotel are checked one at a time.
func (r BookingRepo) Reserve(ctx context.Context, b models.Booking) (models.Booking, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = models.BookingConfirmed
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	b.CreatedAt, b.UpdatedAt = now, now

	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, fmt.Errorf("begin reserve: %w", err)
	}
	defer tx.Rollback()

	var locked string
	if err := tx.QueryRowContext(ctx, `SELECT id FROM hotels WHERE id=? FOR UPDATE`, b.HotelID).Scan(&locked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "hotel", Err: err}
		}
		return models.Booking{}, fmt.Errorf("lock hotel: %w", err)
	}

	if b.CheckOutDate.After(b.CheckInDate) {
		var taken int
		err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM bookings
			WHERE hotel_id=? AND room=? AND status=? AND check_in_date < ? AND check_out_date > ?`,
			b.HotelID, b.Room, string(models.BookingConfirmed), b.CheckOutDate, b.CheckInDate,
		).Scan(&taken)
		if err != nil {
			return models.Booking{}, fmt.Errorf("check room: %w", err)
		}
		if taken > 0 {
			return models.Booking{}, domain.ErrRoomTaken
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookings (id, hotel_id, user_id, room, check_in_date, check_out_date,
			total_price, guests, status, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.HotelID, b.UserID, b.Room, b.CheckInDate, b.CheckOutDate,
		b.TotalPrice, b.Guests, string(b.Status), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return models.Booking{}, fmt.Errorf("insert booking: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, fmt.Errorf("commit reserve: %w", err)
	}
	return b, nil
}

func (r BookingRepo) GetByID(ctx context.Context, id string) (models.Booking, error) {
	b, err := scanBooking(r.db().QueryRowContext(ctx, bookingSelect+` WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	return b, nil
}

func (r BookingRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	_, err := r.db().ExecContext(ctx,
		`UPDATE bookings SET status=?, updated_at=? WHERE id=?`,
		string(status), time.Now().UTC().Truncate(time.Millisecond), id,
	)
	return err
}

// ListByUser returns the user's bookings, newest first.
func (r BookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.list(ctx, bookingSelect+` WHERE user_id=? ORDER BY created_at DESC`, userID)
}

func (r BookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	return r.list(ctx, bookingSelect)
}

func (r BookingRepo) ListOverlapping(ctx context.Context, hotelID string, from, to time.Time) ([]models.Booking, error) {
	return r.list(ctx, bookingSelect+`
		WHERE hotel_id=? AND status=? AND check_in_date < ? AND check_out_date > ? AND check_out_date > check_in_date`,
		hotelID, string(models.BookingConfirmed), to, from)
}

func (r BookingRepo) list(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
