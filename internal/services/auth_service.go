package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"
	"hotelapi/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

// Claims is the access token payload.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService registers users, checks passwords, and issues/verifies HS256 tokens.
type AuthService struct {
	Users     UserStore
	Secret    []byte
	TTL       time.Duration
	RequestID string
}

func (s AuthService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return defaultTokenTTL
}

func (s AuthService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	return s.createUser(ctx, name, email, password, domain.RoleUser)
}

func (s AuthService) createUser(ctx context.Context, name, email, password, role string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = utils.NormalizeEmail(email)
	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return models.User{}, domain.ValidationError{Field: strings.Join(missing, ","), Msg: "All fields are required!"}
	}

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	} else if !domain.IsNotFound(err) {
		return models.User{}, storeErr(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	u, err := s.Users.Create(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return models.User{}, storeErr(err)
	}
	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%s role=%s", u.ID, u.Role))
	return u, nil
}

// Login returns a signed token for valid credentials. Unknown email and wrong
// password give the same error.
func (s AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	invalid := domain.UnauthorizedError{Msg: "invalid email or password"}

	u, err := s.Users.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.User{}, invalid
		}
		return "", models.User{}, storeErr(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", models.User{}, invalid
	}

	token, err := s.IssueToken(u)
	if err != nil {
		return "", models.User{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "login", "user_id="+u.ID)
	return token, u, nil
}

// EnsureAdmin creates an admin account unless the email is already taken.
// It reports whether a user was created.
func (s AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !domain.IsNotFound(err) {
		return false, storeErr(err)
	}
	if _, err := s.createUser(ctx, "Administrator", email, password, domain.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}

// Profile returns the caller's own account.
func (s AuthService) Profile(ctx context.Context, actor domain.RequestContext) (models.User, error) {
	u, err := s.Users.GetByID(ctx, actor.UserID)
	if err != nil {
		return models.User{}, storeErr(err)
	}
	return u, nil
}

func (s AuthService) IssueToken(u models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl())),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Authenticate verifies a bearer token and returns the caller identity.
func (s AuthService) Authenticate(token string) (domain.RequestContext, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "missing token"}
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token", Err: err}
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token"}
	}
	role := claims.Role
	if role == "" {
		role = domain.RoleUser
	}
	return domain.RequestContext{UserID: claims.UserID, Role: role}, nil
}
