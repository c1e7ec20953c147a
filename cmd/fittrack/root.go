// ABOUTME: Root Cobra command for the fittrack CLI.
// ABOUTME: Opens the application via PersistentPreRunE and closes it after.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/fittrack/internal/app"
	"github.com/harperreed/fittrack/internal/config"
	"github.com/harperreed/fittrack/internal/session"
)

var (
	fitApp *app.App

	backendFlag string
	dataDirFlag string
)

// noAppCommands run without opening storage.
var noAppCommands = map[string]bool{
	"help":          true,
	"version":       true,
	"install-skill": true,
	"migrate":       true,
	"completion":    true,
}

// publicCommands work without a signed-in session.
var publicCommands = map[string]bool{
	"signup": true,
	"login":  true,
	"status": true,
}

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "Personal workout log with an AI coach",
	Long: `FitTrack is a CLI for logging strength workouts, tracking progress,
and asking an AI coach for routines, calorie estimates and recipes.

GETTING STARTED:

  $ fittrack signup --name 알렉스 --age 28 --weight 75 --height 180
  $ fittrack login                 # 4-digit PIN
  $ fittrack status

WORKOUTS:

  $ fittrack workout add "가슴 운동" --exercise "벤치프레스:60x12,65x10"
  $ fittrack workout list
  $ fittrack workout show w1a2b3

PROGRESS:

  $ fittrack progress exercise 벤치프레스
  $ fittrack progress weekly
  $ fittrack progress calendar --days 30

AI COACH:

  Set OPENAI_API_KEY (or FITTRACK_AI_API_KEY / FITTRACK_AI_BASE_URL for any
  OpenAI-compatible server), then:

  $ fittrack coach routines --level 초보자 --goal "근력 증가" --days 3
  $ fittrack coach calories "점심으로 김치찌개와 밥 한 공기"
  $ fittrack coach chat

MCP INTEGRATION:

  Run 'fittrack mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "fittrack": { "command": "fittrack", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data is stored in SQLite at ~/.local/share/fittrack/fittrack.db by default.
  Choose another backend (badger, charm, memory) in
  ~/.config/fittrack/config.json or with --backend.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noAppCommands[cmd.Name()] {
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fitApp, err = app.Open(cfg)
		if err != nil {
			return fmt.Errorf("failed to open fittrack: %w", err)
		}

		if publicCommands[cmd.Name()] || cmd.Name() == "fittrack" {
			return nil
		}
		return requireAuth()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if fitApp != nil {
			err := fitApp.Close()
			fitApp = nil
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: sqlite, badger, charm, memory")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default ~/.local/share/fittrack)")
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if backendFlag != "" {
		cfg.Backend = backendFlag
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	return cfg, nil
}

func requireAuth() error {
	err := fitApp.RequireAuth()
	if errors.Is(err, session.ErrNotAuthenticated) {
		if fitApp.Session.User() == nil {
			return fmt.Errorf("no account yet: run 'fittrack signup' first")
		}
		return fmt.Errorf("signed out: run 'fittrack login' first")
	}
	return err
}
