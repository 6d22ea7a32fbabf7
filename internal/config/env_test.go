package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "STORE_DRIVER", "DB_PORT", "UPLOAD_DIR", "CORS_ALLOWED_ORIGINS", "AUTH_RATE_LIMIT_RPS"} {
		t.Setenv(k, "")
	}

	env := LoadEnv()

	assert.Equal(t, DriverMySQL, env.StoreDriver)
	assert.Equal(t, "uploads", env.UploadDir)
	assert.Empty(t, env.CORSAllowedOrigins)
	assert.Equal(t, 5.0, env.AuthRateLimitRPS)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MONGO")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("AUTH_RATE_LIMIT_BURST", "3")

	env := LoadEnv()

	assert.Equal(t, DriverMongo, env.StoreDriver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, env.CORSAllowedOrigins)
	assert.Equal(t, 3, env.AuthRateLimitBurst)
	assert.NotZero(t, env.DBPort)
}

func TestMySQLDSN(t *testing.T) {
	env := Env{DBUser: "app", DBPassword: "pw", DBHost: "db", DBPort: 3307, DBName: "hotels"}
	dsn := env.MySQLDSN()
	assert.Contains(t, dsn, "app:pw@tcp(db:3307)/hotels?")
	assert.Contains(t, dsn, "parseTime=true")
}

func TestStorePingWithoutConnection(t *testing.T) {
	CloseDB()
	CloseMongo()
	assert.Error(t, PingDB(context.Background()))
	assert.Error(t, PingMongo(context.Background()))
}

func TestJWTSecretChecks(t *testing.T) {
	cases := []struct {
		name     string
		env      Env
		insecure bool
		refused  bool
	}{
		{"default in debug", Env{JWTSecret: DefaultJWTSecret}, true, false},
		{"default in release", Env{JWTSecret: DefaultJWTSecret, GinMode: "release"}, true, true},
		{"blank in release", Env{JWTSecret: "  ", GinMode: "release"}, true, true},
		{"private in release", Env{JWTSecret: "s3cr3t-from-vault", GinMode: "release"}, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.insecure, tc.env.InsecureJWTSecret())
			assert.Equal(t, tc.refused, tc.env.ValidateSecrets() != nil)
		})
	}
}

func TestLoadEnvFallsBackToDevelopmentSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	env := LoadEnv()

	assert.True(t, env.InsecureJWTSecret())
}
