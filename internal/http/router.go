package api

import (
	stdhttp "net/http"

	intconfig "hotelapi/internal/config"
	"hotelapi/internal/domain"
	h "hotelapi/internal/http/handlers"
	"hotelapi/internal/http/middleware"
	"hotelapi/internal/utils"

	"github.com/gin-gonic/gin"
)

// NewRouter mounts every endpoint under /api and serves uploaded images from /uploads.
func NewRouter(env intconfig.Env, deps *h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Log.WithError(err).Warn("failed to set trusted proxies")
	}

	r.Static("/uploads", env.UploadDir)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":      "route not found",
			"code":       "not_found",
			"message":    "route not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	requireAuth := middleware.RequireAuth(deps.Auth)
	requireAdmin := middleware.RequireRoles(domain.RoleAdmin)
	authLimiter := middleware.NewRateLimiter(env.AuthRateLimitRPS, env.AuthRateLimitBurst)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", deps.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth", authLimiter.Middleware())
		auth.POST("/register", deps.Register)
		auth.POST("/login", deps.Login)

		// Users
		users := api.Group("/users", requireAuth)
		users.GET("/me", deps.GetProfile)

		// Hotels
		hotels := api.Group("/hotels")
		hotels.GET("", deps.ListHotels)
		hotels.GET("/single/:id", deps.GetHotel)
		hotels.GET("/availability/:id", deps.GetHotelAvailability)
		hotels.POST("/create-hotel", requireAuth, requireAdmin, deps.CreateHotel)
		hotels.PUT("/update-hotel", requireAuth, requireAdmin, deps.UpdateHotel)
		hotels.PUT("/update-hotel/:id", requireAuth, requireAdmin, deps.UpdateHotel)
		hotels.DELETE("/:id", requireAuth, requireAdmin, deps.DeleteHotel)

		// Bookings
		bookings := api.Group("/bookings", requireAuth)
		bookings.POST("", deps.CreateBooking)
		bookings.GET("", requireAdmin, deps.GetAllBookings)
		bookings.GET("/me", deps.GetUserBookings)
		bookings.PUT("/:id/cancel", deps.CancelBooking)
		bookings.GET("/:id/invoice", deps.GetBookingInvoicePDF)
	}

	h.SetRouter(r)
	return r
}
