package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shelfstats/shelfstats/internal/apperrors"
)

// ErrorResponse represents a standardized error response structure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// respondBadRequest sends a 400 Bad Request response with error details.
func respondBadRequest(c *gin.Context, message string, details ...string) {
	response := ErrorResponse{
		Error: message,
		Code:  "BAD_REQUEST",
	}
	if len(details) > 0 {
		response.Details = details[0]
	}
	c.JSON(http.StatusBadRequest, response)
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error: message,
		Code:  "NOT_FOUND",
	})
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{
		Error: message,
		Code:  "CONFLICT",
	})
}

// respondInternalError sends a 500 Internal Server Error response.
// The underlying error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, message string, err error) {
	if err != nil {
		log.Printf("Internal error: %s: %v", message, err)
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: message,
		Code:  "INTERNAL_ERROR",
	})
}

// respondError maps a domain error to the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperrors.KindValidation:
			respondBadRequest(c, appErr.Message)
			return
		case apperrors.KindNotFound:
			respondNotFound(c, appErr.Message)
			return
		case apperrors.KindConflict:
			respondConflict(c, appErr.Message)
			return
		}
	}
	respondInternalError(c, "An unexpected error occurred", err)
}

// parseIDParam extracts and validates an ID parameter from the request.
// Returns the parsed ID and true if valid, or 0 and false if invalid
// (in which case an error response has already been sent).
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "Invalid "+paramName+" format", "The "+paramName+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
