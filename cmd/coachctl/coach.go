package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"automation-coach/internal/bootstrap"
	"automation-coach/internal/shared/config"
	"automation-coach/internal/tasks"
)

// newCoachCmd regenerates coaching for tasks whose job was lost, for example
// after a failed enqueue. It uses the same env configuration as the worker.
func newCoachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coach TASK_ID...",
		Short: "Generate coaching documents for tasks in-process",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.BuildWorker(config.Load())
			if err != nil {
				return err
			}
			defer app.Close()

			for _, id := range args {
				ctx := tasks.WithRequestID(cmd.Context(), "coachctl")
				if err := app.Coaching.ProcessTask(ctx, id); err != nil {
					return fmt.Errorf("task %s: %w", id, err)
				}
				task, err := app.TasksRepo.GetByID(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, task.CoachingEngine)
			}
			return nil
		},
	}
}
