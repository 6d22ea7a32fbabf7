package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL = "mysql"
	DriverMongo = "mongo"
)

// DefaultJWTSecret signs tokens when JWT_SECRET is unset. Local development only.
const DefaultJWTSecret = "super-secret-key-change-me"

type Env struct {
	AppAddr string
	GinMode string

	StoreDriver string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	MongoURI string
	MongoDB  string

	JWTSecret string
	UploadDir string

	CORSAllowedOrigins []string

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int

	AdminEmail    string
	AdminPassword string

	LogLevel string
}

// LoadEnv reads configuration from the process environment. A .env file in the
// working directory is applied first when present; real env vars win.
func LoadEnv() Env {
	_ = godotenv.Load()

	driver := strings.ToLower(getEnv("STORE_DRIVER", DriverMySQL))
	if driver != DriverMongo {
		driver = DriverMySQL
	}

	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: getEnv("GIN_MODE", ""),

		StoreDriver: driver,

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnvInt("DB_PORT", 3306),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "hotel_booking"),

		MongoURI: getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:  getEnv("MONGO_DB", "hotel_booking"),

		JWTSecret: getEnv("JWT_SECRET", DefaultJWTSecret),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),

		AuthRateLimitRPS:   getEnvFloat("AUTH_RATE_LIMIT_RPS", 5),
		AuthRateLimitBurst: getEnvInt("AUTH_RATE_LIMIT_BURST", 10),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// InsecureJWTSecret reports whether tokens are signed with a secret anyone can know.
func (e Env) InsecureJWTSecret() bool {
	return strings.TrimSpace(e.JWTSecret) == "" || e.JWTSecret == DefaultJWTSecret
}

// ValidateSecrets refuses the development JWT secret in gin release mode.
func (e Env) ValidateSecrets() error {
	if e.InsecureJWTSecret() && e.GinMode == "release" {
		return fmt.Errorf("JWT_SECRET must be set to a private value when GIN_MODE=release")
	}
	return nil
}

// MySQLDSN builds the go-sql-driver DSN used by ConnectDB.
func (e Env) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=UTC&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		e.DBUser,
		e.DBPassword,
		e.DBHost,
		e.DBPort,
		e.DBName,
	)
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
