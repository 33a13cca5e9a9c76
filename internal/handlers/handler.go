package handlers

import (
	"errors"
	"net/http"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/services"
	"github.com/gin-gonic/gin"
)

// statusFor maps the core's sentinel errors to HTTP status codes. Anything
// unmapped is treated as a validation error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnknownMember),
		errors.Is(err, services.ErrUnknownSlot),
		errors.Is(err, services.ErrUnknownWinner),
		errors.Is(err, services.ErrNoActiveRaffle):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrMemberAlreadyAssigned):
		return http.StatusConflict
	case errors.Is(err, services.ErrPassExpired):
		return http.StatusGone
	case errors.Is(err, services.ErrRosterUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
