package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes for the venue service.
const (
	// Lookup errors
	ErrCodeVenueNotFound    = "VENUE_NOT_FOUND"
	ErrCodeBuildingNotFound = "BUILDING_NOT_FOUND"

	// Validation errors
	ErrCodeInvalidVenue  = "INVALID_VENUE"
	ErrCodeInvalidConfig = "INVALID_CONFIG"

	// Provider errors
	ErrCodeConfigUnavailable = "CONFIG_UNAVAILABLE"
	ErrCodeProviderError     = "PROVIDER_ERROR"

	// Activation errors
	ErrCodeActivationSuperseded = "ACTIVATION_SUPERSEDED"
)

// VenueError represents an error in the venue service.
type VenueError struct {
	Code    string
	Message string
	Err     error
}

func (e *VenueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *VenueError) Unwrap() error {
	return e.Err
}

// Is matches any *VenueError carrying the same code.
func (e *VenueError) Is(target error) bool {
	t, ok := target.(*VenueError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewVenueError creates a new VenueError.
func NewVenueError(code, message string, err error) *VenueError {
	return &VenueError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Code returns the code of the first VenueError in err's chain, or "" if none.
func Code(err error) string {
	var ve *VenueError
	if stderrors.As(err, &ve) {
		return ve.Code
	}
	return ""
}

// HasCode reports whether err's chain carries a VenueError with the given code.
func HasCode(err error, code string) bool {
	return Code(err) == code
}

// ErrVenueNotFound returns an error when a venue is not found.
func ErrVenueNotFound(venueID string, err error) *VenueError {
	return &VenueError{
		Code:    ErrCodeVenueNotFound,
		Message: fmt.Sprintf("venue not found: %s", venueID),
		Err:     err,
	}
}

// ErrBuildingNotFound returns an error when a building is not found.
func ErrBuildingNotFound(buildingID string, err error) *VenueError {
	return &VenueError{
		Code:    ErrCodeBuildingNotFound,
		Message: fmt.Sprintf("building not found: %s", buildingID),
		Err:     err,
	}
}

// ErrInvalidVenue returns an error for a venue that violates a precondition.
func ErrInvalidVenue(venueID, reason string) *VenueError {
	return &VenueError{
		Code:    ErrCodeInvalidVenue,
		Message: fmt.Sprintf("invalid venue %s: %s", venueID, reason),
	}
}

// ErrInvalidConfig returns an error for an unparsable app configuration.
func ErrInvalidConfig(reason string, err error) *VenueError {
	return &VenueError{
		Code:    ErrCodeInvalidConfig,
		Message: fmt.Sprintf("invalid app config: %s", reason),
		Err:     err,
	}
}

// ErrConfigUnavailable wraps a failed configuration fetch.
func ErrConfigUnavailable(err error) *VenueError {
	return &VenueError{
		Code:    ErrCodeConfigUnavailable,
		Message: "app config could not be fetched",
		Err:     err,
	}
}

// ErrProvider wraps a failed call to the venue provider.
func ErrProvider(operation string, err error) *VenueError {
	return &VenueError{
		Code:    ErrCodeProviderError,
		Message: fmt.Sprintf("provider error during %s", operation),
		Err:     err,
	}
}

// ErrActivationSuperseded is returned to an activation that lost to a newer one.
func ErrActivationSuperseded(venueID string) *VenueError {
	return &VenueError{
		Code:    ErrCodeActivationSuperseded,
		Message: fmt.Sprintf("activation of venue %s superseded by a newer request", venueID),
	}
}
