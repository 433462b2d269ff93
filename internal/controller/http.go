package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skilltrek/backend/internal/apperr"
	"github.com/skilltrek/backend/internal/dto"
)

// UserIDHeader carries the authenticated user's id, set by the gateway
// in front of this service.
const UserIDHeader = "X-User-ID"

// CurrentUserID reads the user id from the request header. On a missing
// or malformed header it writes a 401 response and returns false.
func CurrentUserID(c *gin.Context) (uint, bool) {
	raw := c.GetHeader(UserIDHeader)
	if raw == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Missing " + UserIDHeader + " header"})
		return 0, false
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid " + UserIDHeader + " header"})
		return 0, false
	}
	return uint(val), true
}

// StatusForError maps service errors to HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrDependency):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
