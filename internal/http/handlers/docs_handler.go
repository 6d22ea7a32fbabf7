package handlers

import (
	"net/http"

	"hotelapi/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:id/invoice returns the booking invoice inline.
func (h *Handler) GetBookingInvoicePDF(c *gin.Context) {
	pdfBytes, filename, err := h.docsService(c).GenerateInvoice(c.Request.Context(), middleware.GetRequestContext(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
