package http

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/samirrijal/venuehub/internal/pkg/errors"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}

// errFromDomain maps a VenueError code onto an HTTP status.
func errFromDomain(c *fiber.Ctx, err error) error {
	switch apperrors.Code(err) {
	case apperrors.ErrCodeVenueNotFound, apperrors.ErrCodeBuildingNotFound:
		return newError(c, 404, "not_found", err.Error())
	case apperrors.ErrCodeInvalidVenue:
		return newError(c, 422, "invalid_venue", err.Error())
	case apperrors.ErrCodeActivationSuperseded:
		return newError(c, 409, "conflict", err.Error())
	case apperrors.ErrCodeConfigUnavailable, apperrors.ErrCodeProviderError:
		return newError(c, 502, "upstream_error", err.Error())
	case apperrors.ErrCodeInvalidConfig:
		return newError(c, 502, "invalid_config", err.Error())
	default:
		return errInternal(c, err.Error())
	}
}
