package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable. Binding tag failures
// are reported per field in details.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

// BindOptionalJSONOrError binds a JSON body when one is sent and leaves dst
// untouched for an empty body. Chunked bodies report ContentLength -1, so
// emptiness is decided by reading, not by the header.
func BindOptionalJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		respondBindError(c, err)
		return false
	}
	return true
}

// BindOrError picks the binder from Content-Type (JSON or form).
func BindOrError[T any](c *gin.Context, dst *T) bool {
	if err := c.ShouldBind(dst); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}
