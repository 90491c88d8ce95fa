package workflows

import (
	"context"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/samirrijal/venuehub/internal/core/domain"
	"github.com/samirrijal/venuehub/internal/core/usecases"
	apperrors "github.com/samirrijal/venuehub/internal/pkg/errors"
)

// Activity names as registered from ActivationActivities.
const (
	ActivityReloadAppConfig = "ReloadAppConfig"
	ActivityActivateVenue   = "ActivateVenue"
)

// ActivationResult is what the workflow reports back to its starter.
type ActivationResult struct {
	VenueID     string              `json:"venue_id"`
	OnlyVenue   bool                `json:"only_venue"`
	BoundingBox *domain.BoundingBox `json:"bounding_box,omitempty"`
	Superseded  bool                `json:"superseded"`
}

// ActivationActivities holds the activity implementations for the venue
// activation workflow.
type ActivationActivities struct {
	Venues  *usecases.VenueService
	Configs *usecases.AppConfigService
}

// ReloadAppConfig refetches and publishes the app config.
func (a *ActivationActivities) ReloadAppConfig(ctx context.Context) error {
	if err := a.Configs.SetAppConfig(ctx); err != nil {
		return classify(err)
	}
	return nil
}

// ActivateVenue makes venueID the current venue. Losing to a newer
// activation is reported in the result, not as an error.
func (a *ActivationActivities) ActivateVenue(ctx context.Context, venueID string) (*ActivationResult, error) {
	activity.GetLogger(ctx).Info("activating venue", "venue_id", venueID)

	v, err := a.Venues.ActivateByID(ctx, venueID)
	if apperrors.HasCode(err, apperrors.ErrCodeActivationSuperseded) {
		return &ActivationResult{VenueID: venueID, Superseded: true}, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &ActivationResult{VenueID: v.ID, OnlyVenue: v.OnlyVenue, BoundingBox: v.BoundingBox}, nil
}

// classify marks errors that a retry cannot fix as non-retryable.
func classify(err error) error {
	switch code := apperrors.Code(err); code {
	case apperrors.ErrCodeVenueNotFound, apperrors.ErrCodeInvalidVenue, apperrors.ErrCodeInvalidConfig:
		return temporal.NewNonRetryableApplicationError(err.Error(), code, err)
	default:
		return err
	}
}
