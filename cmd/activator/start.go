package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/samirrijal/venuehub/internal/workflows"
)

// startActivation starts one VenueActivationWorkflow for a queued request.
func startActivation(ctx context.Context, tc client.Client, taskQueue, venueID string, reloadConfig bool) error {
	opts := client.StartWorkflowOptions{
		ID:        workflows.WorkflowID(venueID, time.Now()),
		TaskQueue: taskQueue,
	}
	input := workflows.ActivationInput{VenueID: venueID, ReloadConfig: reloadConfig}

	run, err := tc.ExecuteWorkflow(ctx, opts, workflows.ActivationWorkflowName, input)
	if err != nil {
		return fmt.Errorf("start workflow: %w", err)
	}
	slog.Info("activation workflow started",
		"venue_id", venueID,
		"reload_config", reloadConfig,
		"workflow_id", run.GetID(),
		"run_id", run.GetRunID(),
	)
	return nil
}
