package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// ActivationWorkflowName is the registered name of VenueActivationWorkflow.
const ActivationWorkflowName = "VenueActivationWorkflow"

// ActivationInput is the input for the venue activation workflow.
type ActivationInput struct {
	VenueID      string
	ReloadConfig bool // fetch the app config before activating
}

// WorkflowID returns a unique workflow ID for one activation request.
func WorkflowID(venueID string, requestedAt time.Time) string {
	return fmt.Sprintf("venue-activation-%s-%d", venueID, requestedAt.UnixNano())
}

// VenueActivationWorkflow optionally reloads the app config, then activates
// the venue. A failed config reload does not block activation with the
// previous config.
func VenueActivationWorkflow(ctx workflow.Context, input ActivationInput) (*ActivationResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting venue activation workflow", "venueID", input.VenueID)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 3,
		},
	})

	if input.ReloadConfig {
		if err := workflow.ExecuteActivity(ctx, ActivityReloadAppConfig).Get(ctx, nil); err != nil {
			logger.Warn("app config reload failed, using previous config", "error", err)
		}
	}

	var result ActivationResult
	if err := workflow.ExecuteActivity(ctx, ActivityActivateVenue, input.VenueID).Get(ctx, &result); err != nil {
		return nil, err
	}

	if result.Superseded {
		logger.Info("Venue activation superseded", "venueID", input.VenueID)
	} else {
		logger.Info("Venue activated", "venueID", result.VenueID, "onlyVenue", result.OnlyVenue)
	}
	return &result, nil
}
