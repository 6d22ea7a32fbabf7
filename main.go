package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "hotelapi/internal/config"
	router "hotelapi/internal/http"
	"hotelapi/internal/http/handlers"
	"hotelapi/internal/repositories"
	"hotelapi/internal/services"
	"hotelapi/internal/storage"
	"hotelapi/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	utils.SetLevel(env.LogLevel)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	if err := env.ValidateSecrets(); err != nil {
		utils.Log.WithError(err).Fatal("refusing to start")
	}
	if env.InsecureJWTSecret() {
		utils.Log.Warn("JWT_SECRET is unset or the development default; issued tokens can be forged")
	}

	deps, closeStore, err := openStore(env)
	if err != nil {
		utils.Log.WithError(err).Fatal("failed to open store")
	}
	defer closeStore()

	if err := os.MkdirAll(env.UploadDir, 0o755); err != nil {
		utils.Log.WithError(err).Fatal("failed to create upload dir")
	}
	deps.Images = storage.LocalImageStore{Dir: env.UploadDir}
	deps.Auth = services.AuthService{Users: deps.Users, Secret: []byte(env.JWTSecret)}

	if env.AdminEmail != "" && env.AdminPassword != "" {
		created, err := deps.Auth.EnsureAdmin(context.Background(), env.AdminEmail, env.AdminPassword)
		if err != nil {
			utils.Log.WithError(err).Fatal("failed to seed admin user")
		}
		if created {
			utils.Log.WithField("email", env.AdminEmail).Info("admin user created")
		}
	}

	// Router (Gin engine)
	r := router.NewRouter(env, deps)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.Log.WithField("addr", env.AppAddr).WithField("store", env.StoreDriver).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	utils.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Log.WithError(err).Error("server shutdown failed")
		return
	}

	utils.Log.Info("server stopped")
}

// openStore connects the backend chosen by STORE_DRIVER and returns handler
// dependencies wired to its repositories.
func openStore(env intconfig.Env) (*handlers.Handler, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch env.StoreDriver {
	case intconfig.DriverMongo:
		db, err := intconfig.ConnectMongo(env.MongoURI, env.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.EnsureMongoIndexes(ctx, db); err != nil {
			intconfig.CloseMongo()
			return nil, nil, err
		}
		return &handlers.Handler{
			Hotels:   repositories.MongoHotelRepo{DB: db},
			Bookings: repositories.MongoBookingRepo{DB: db},
			Users:    repositories.MongoUserRepo{DB: db},
			Ping:     intconfig.PingMongo,
		}, intconfig.CloseMongo, nil
	default:
		db, err := intconfig.ConnectDB(env.MySQLDSN())
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.EnsureSchema(ctx, db); err != nil {
			intconfig.CloseDB()
			return nil, nil, err
		}
		return &handlers.Handler{
			Hotels:   repositories.HotelRepo{DB: db},
			Bookings: repositories.BookingRepo{DB: db},
			Users:    repositories.UserRepo{DB: db},
			Ping:     intconfig.PingDB,
		}, intconfig.CloseDB, nil
	}
}
