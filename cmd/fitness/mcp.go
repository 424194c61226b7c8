// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server and persists every change as it happens.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/harperreed/fitness/internal/mcp"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to log workouts and manage goals
through a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "fitness": {
        "command": "fitness",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_activity        Log a workout
  list_activities     List recent activities
  delete_activity     Delete an activity by ID
  add_goal            Create a goal
  list_goals          List goals with progress
  update_goal         Change a goal
  complete_goal       Mark a goal completed
  delete_goal         Delete a goal
  update_stats        Update weight and height
  get_stats           Get weight, height and BMI
  estimate_calories   Estimate calories for an activity

AVAILABLE RESOURCES:

  fitness://today     Today's calories and activities
  fitness://weekly    Calories per weekday
  fitness://summary   All-time totals and goals`,
	RunE: func(cmd *cobra.Command, args []string) error {
		persister := storage.NewPersister(repo, logger.Logger)
		trk.Subscribe(persister.Save)

		server, err := mcp.NewServer(trk, logger.Logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err = server.Serve(ctx)
		if persister.Err() == nil {
			dirty.Store(false)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
