// ABOUTME: CLI commands for the local account: signup, login, logout, status.
// ABOUTME: PINs are read from a flag or prompted on stdin.
package main

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/session"
)

var (
	signupName   string
	signupAge    int
	signupWeight float64
	signupHeight float64
	pinFlag      string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create the local account",
	Long: `Create the single local account and sign in.

Examples:
  fittrack signup --name 알렉스 --age 28 --weight 75 --height 180
  fittrack signup --name Alex --age 28 --weight 75 --height 180 --pin 1234`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pin, err := pinFromFlagOrPrompt(cmd, "Choose a 4-digit PIN: ")
		if err != nil {
			return err
		}

		user, err := fitApp.Session.Signup(models.Profile{
			Name:   signupName,
			Age:    signupAge,
			Weight: signupWeight,
			Height: signupHeight,
		}, pin)
		if errors.Is(err, session.ErrUserExists) {
			return fmt.Errorf("an account already exists on this device: use 'fittrack login'")
		}
		if err != nil {
			return err
		}

		color.Green("✓ Welcome, %s!", user.Name)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with your PIN",
	RunE: func(cmd *cobra.Command, args []string) error {
		if fitApp.Session.User() == nil {
			return fmt.Errorf("no account yet: run 'fittrack signup' first")
		}
		pin, err := pinFromFlagOrPrompt(cmd, "PIN: ")
		if err != nil {
			return err
		}

		ok, err := fitApp.Session.Login(pin)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("incorrect PIN")
		}
		color.Green("✓ Signed in as %s", fitApp.Session.User().Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out (your data stays on this device)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := fitApp.Session.Logout(); err != nil {
			return err
		}
		color.Green("✓ Signed out")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show account and training summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)

		fmt.Fprintf(out, "Backend: %s\n", fitApp.Config.GetBackend())
		user := fitApp.Session.User()
		if user == nil {
			fmt.Fprintln(out, "Account: none (run 'fittrack signup')")
			return nil
		}
		if !fitApp.Session.IsAuthenticated() {
			fmt.Fprintf(out, "Account: %s (signed out)\n", user.Name)
			return nil
		}

		sum, err := fitApp.Summary()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Account: %s (signed in)\n", user.Name)
		fmt.Fprintf(out, "Workouts: %d total, %d this week\n", sum.WorkoutCount, sum.WorkoutsThisWeek)
		fmt.Fprintf(out, "Streak: %d days\n", sum.CurrentStreak)
		fmt.Fprintf(out, "Total volume: %.0f kg\n", sum.TotalVolume)
		if sum.LastWorkout != nil {
			fmt.Fprintf(out, "Last workout: %s\n", faint.Sprint(*sum.LastWorkout))
		}
		return nil
	},
}

// pinFromFlagOrPrompt returns --pin, or reads a PIN from stdin.
func pinFromFlagOrPrompt(cmd *cobra.Command, prompt string) (string, error) {
	if pinFlag != "" {
		return pinFlag, nil
	}
	pin, err := readLine(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read PIN: %w", err)
	}
	return pin, nil
}

func init() {
	signupCmd.Flags().StringVar(&signupName, "name", "", "your name")
	signupCmd.Flags().IntVar(&signupAge, "age", 0, "age in years")
	signupCmd.Flags().Float64Var(&signupWeight, "weight", 0, "weight in kg")
	signupCmd.Flags().Float64Var(&signupHeight, "height", 0, "height in cm")
	signupCmd.Flags().StringVar(&pinFlag, "pin", "", "4-digit PIN (prompted when omitted)")
	loginCmd.Flags().StringVar(&pinFlag, "pin", "", "4-digit PIN (prompted when omitted)")

	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd, statusCmd)
}
