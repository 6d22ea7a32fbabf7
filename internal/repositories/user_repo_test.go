package repositories

import (
	"context"
	"testing"

	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestUserRepoCreateDuplicateEmailIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'uniq_users_email'"})

	_, err = UserRepo{DB: db}.Create(context.Background(), models.User{Name: "A", Email: "a@b.c", PasswordHash: "x"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserRepoCreateDefaultsRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "A", "a@b.c", "hash", "user", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u, err := UserRepo{DB: db}.Create(context.Background(), models.User{Name: "A", Email: "a@b.c", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if u.Role != domain.RoleUser || u.ID == "" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserRepoGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE email=\?`).WithArgs("x@y.z").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}))

	_, err = UserRepo{DB: db}.GetByEmail(context.Background(), "x@y.z")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
