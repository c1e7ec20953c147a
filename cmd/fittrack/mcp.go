// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server so AI assistants can use the workout log.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/fittrack/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and acts as the signed-in user,
so run 'fittrack login' first.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "fittrack": {
        "command": "fittrack",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_workout          Log a workout with exercises and sets
  list_workouts        List recent workouts
  get_workout          Get a workout with all its sets
  delete_workout       Delete a workout
  record_metric        Record body weight or muscle mass
  exercise_progress    Volume and heaviest set per workout for an exercise
  weekly_volume        Training volume per week
  activity_calendar    Active days in a trailing window
  list_catalog         Exercise catalog by body part
  recommend_routines   AI weekly routine plan
  estimate_calories    AI calorie estimate for a meal
  suggest_recipe       AI low-calorie recipe

AVAILABLE RESOURCES:

  fittrack://profile           Profile and body measurement history
  fittrack://workouts/recent   Ten most recent workouts
  fittrack://summary           Streak, weekly counts and volume`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(fitApp)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
