// ABOUTME: CLI commands for viewing and editing the profile.
// ABOUTME: Supports show, update, metric and pin subcommands.
package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fittrack/internal/models"
)

var (
	profileName   string
	profileAge    int
	profileHeight float64
	metricDate    string
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"me"},
	Short:   "View and edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		u := fitApp.Session.User()

		fmt.Fprintf(out, "Name:        %s\n", u.Name)
		fmt.Fprintf(out, "Age:         %d\n", u.Age)
		fmt.Fprintf(out, "Height:      %.1f cm\n", u.Height)
		fmt.Fprintf(out, "Weight:      %.1f kg\n", u.Weight)
		fmt.Fprintf(out, "Muscle mass: %.1f kg\n", u.MuscleMass)
		fmt.Fprintf(out, "Streak:      %d days\n", u.WorkoutStreak)
		fmt.Fprintf(out, "Avatar:      %s\n", u.AvatarURL)

		if len(u.WeightHistory) > 0 {
			fmt.Fprintln(out, "\nWeight history:")
			for _, p := range u.WeightHistory {
				fmt.Fprintf(out, "  %s  %.1f kg\n", p.Date, p.Weight)
			}
		}
		if len(u.MuscleMassHistory) > 0 {
			fmt.Fprintln(out, "\nMuscle mass history:")
			for _, p := range u.MuscleMassHistory {
				fmt.Fprintf(out, "  %s  %.1f kg\n", p.Date, p.Mass)
			}
		}
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update name, age or height",
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch models.UserPatch
		if cmd.Flags().Changed("name") {
			profileName = strings.TrimSpace(profileName)
			if profileName == "" {
				return fmt.Errorf("name must not be blank")
			}
			patch.Name = &profileName
			avatar := models.AvatarURL(profileName)
			patch.AvatarURL = &avatar
		}
		if cmd.Flags().Changed("age") {
			if profileAge <= 0 {
				return fmt.Errorf("age must be positive")
			}
			patch.Age = &profileAge
		}
		if cmd.Flags().Changed("height") {
			if profileHeight <= 0 {
				return fmt.Errorf("height must be positive")
			}
			patch.Height = &profileHeight
		}
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to update: pass --name, --age or --height")
		}

		if _, err := fitApp.Session.UpdateUser(patch); err != nil {
			return err
		}
		color.Green("✓ Profile updated")
		return nil
	},
}

var profileMetricCmd = &cobra.Command{
	Use:   "metric <weight|muscle_mass> <kg>",
	Short: "Record body weight or muscle mass",
	Long: `Record a body measurement. Recording twice on the same day replaces the
earlier value.

Examples:
  fittrack profile metric weight 74.2
  fittrack profile metric muscle_mass 35.5 --date 2024-05-01`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidMetricType(args[0]) {
			return fmt.Errorf("unknown metric type: %s (use weight or muscle_mass)", args[0])
		}
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[1])
		}
		date, err := parseDateArg(metricDate)
		if err != nil {
			return err
		}

		mt := models.MetricType(args[0])
		if _, err := fitApp.Session.RecordMetric(models.NewMetric(mt, value).WithDate(date)); err != nil {
			return err
		}
		color.Green("✓ Recorded %s", mt)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %.1f %s\n", date, value, models.MetricUnits[mt])
		return nil
	},
}

var profilePinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Change your PIN",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := bufio.NewReader(cmd.InOrStdin())
		oldPIN, err := readLine(r, cmd.OutOrStdout(), "Current PIN: ")
		if err != nil {
			return err
		}
		newPIN, err := readLine(r, cmd.OutOrStdout(), "New PIN: ")
		if err != nil {
			return err
		}
		if err := fitApp.Session.ChangePIN(oldPIN, newPIN); err != nil {
			return err
		}
		color.Green("✓ PIN changed")
		return nil
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "new name")
	profileUpdateCmd.Flags().IntVar(&profileAge, "age", 0, "new age")
	profileUpdateCmd.Flags().Float64Var(&profileHeight, "height", 0, "new height in cm")
	profileMetricCmd.Flags().StringVar(&metricDate, "date", "", "date (YYYY-MM-DD, default today)")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd, profileMetricCmd, profilePinCmd)
	rootCmd.AddCommand(profileCmd)
}
