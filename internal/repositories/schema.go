package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "hotelapi/internal/db"
)

var tableDDL = []struct {
	name string
	ddl  string
}{
	{"users", `
CREATE TABLE IF NOT EXISTS users (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'user',
	created_at DATETIME(3) NOT NULL,
	updated_at DATETIME(3) NOT NULL,
	UNIQUE KEY uniq_users_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
	{"hotels", `
CREATE TABLE IF NOT EXISTS hotels (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	type VARCHAR(100) NOT NULL,
	city VARCHAR(255) NOT NULL,
	address VARCHAR(255) NOT NULL,
	description TEXT NOT NULL,
	rating DOUBLE NOT NULL,
	rooms JSON NULL,
	cheapest_price DOUBLE NOT NULL,
	photos VARCHAR(255) NULL,
	user_id VARCHAR(36) NULL,
	reservation_status VARCHAR(20) NOT NULL DEFAULT 'available',
	created_at DATETIME(3) NOT NULL,
	updated_at DATETIME(3) NOT NULL,
	KEY idx_hotels_city (city),
	KEY idx_hotels_price (cheapest_price)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
	{"bookings", `
CREATE TABLE IF NOT EXISTS bookings (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	hotel_id VARCHAR(36) NOT NULL,
	user_id VARCHAR(36) NOT NULL,
	room VARCHAR(255) NOT NULL,
	check_in_date DATETIME(3) NOT NULL,
	check_out_date DATETIME(3) NOT NULL,
	total_price DOUBLE NOT NULL,
	guests INT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'confirmed',
	created_at DATETIME(3) NOT NULL,
	updated_at DATETIME(3) NOT NULL,
	KEY idx_bookings_user (user_id, created_at),
	KEY idx_bookings_room (hotel_id, room, check_in_date)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
}

// EnsureSchema creates any missing table. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db not available")
	}
	for _, t := range tableDDL {
		if intdb.HasTable(ctx, db, t.name) {
			continue
		}
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}
	return nil
}
