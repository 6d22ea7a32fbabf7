package handlers

import (
	"net/http"

	"hotelapi/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/users/me
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.authService(c).Profile(c.Request.Context(), middleware.GetRequestContext(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
