package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vetclinic/internal/domain"
)

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSlotOccupied), errors.Is(err, domain.ErrVeterinarianUnavailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Unexpected errors are attached to the context and logged by errorMiddleware.
func (h *Handler) serviceErrorResponse(c *gin.Context, err error, msg string) {
	switch status := statusFor(err); status {
	case http.StatusBadRequest:
		badRequestResponse(c, err.Error())
	case http.StatusNotFound:
		notFoundResponse(c, err.Error())
	case http.StatusConflict:
		conflictResponse(c, err.Error())
	default:
		_ = c.Error(fmt.Errorf("%s: %w", msg, err))
		internalServerErrorResponse(c)
	}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequestResponse(c, "invalid id format")
		return 0, false
	}
	return id, true
}
