package handlers

import (
	"errors"
	"net/http"
	"strings"

	"hotelapi/internal/domain"
	"hotelapi/internal/http/middleware"
	"hotelapi/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error payload of every endpoint.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		Message:   message,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	var verr domain.ValidationError
	switch {
	case errors.As(err, &verr):
		msg := verr.Msg
		if msg == "" {
			msg = verr.Error()
		}
		var details any
		if verr.Field != "" {
			details = strings.Split(verr.Field, ",")
		}
		respondError(c, http.StatusBadRequest, "validation_error", msg, details)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsUpload(err):
		utils.LogError(middleware.GetRequestID(c), "http", "upload", err)
		respondError(c, http.StatusInternalServerError, "upload_error", uploadMessage(err), nil)
	default:
		utils.LogError(middleware.GetRequestID(c), "http", "internal", err)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

func uploadMessage(err error) string {
	var uerr domain.UploadError
	if errors.As(err, &uerr) && uerr.Msg != "" {
		return uerr.Msg
	}
	return "upload failed"
}
