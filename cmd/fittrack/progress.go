// ABOUTME: CLI commands for training progress derived from the workout log.
// ABOUTME: Renders per-exercise series, weekly volume, frequency and a calendar.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fittrack/internal/stats"
)

var calendarDays int

const barWidth = 30

var progressCmd = &cobra.Command{
	Use:     "progress",
	Aliases: []string{"p"},
	Short:   "Show training progress",
}

var progressExerciseCmd = &cobra.Command{
	Use:   "exercise [name]",
	Short: "Volume and heaviest set per workout for one exercise",
	Long: `Show the volume and heaviest set of one exercise across workouts.
Without a name, list the exercises that have been logged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			names := fitApp.Workouts.ExerciseNames()
			if len(names) == 0 {
				fmt.Fprintln(out, "No exercises logged yet.")
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		}

		points := stats.ExerciseSeries(fitApp.Workouts.List(), args[0])
		if len(points) == 0 {
			fmt.Fprintf(out, "No data for %s.\n", args[0])
			return nil
		}

		var top float64
		for _, p := range points {
			if p.Volume > top {
				top = p.Volume
			}
		}
		color.New(color.Bold).Fprintf(out, "%s\n", args[0])
		for _, p := range points {
			fmt.Fprintf(out, "%s %s %6.0f kg  max %gkg\n", p.Date.MonthDay(), bar(p.Volume, top), p.Volume, p.MaxWeight)
		}
		return nil
	},
}

var progressWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Total volume per week",
	RunE: func(cmd *cobra.Command, args []string) error {
		weeks := stats.WeeklyVolume(fitApp.Workouts.List())
		out := cmd.OutOrStdout()
		if len(weeks) == 0 {
			fmt.Fprintln(out, "No workouts yet.")
			return nil
		}

		var top float64
		for _, w := range weeks {
			if w.Volume > top {
				top = w.Volume
			}
		}
		for _, w := range weeks {
			fmt.Fprintf(out, "%s %s %7.0f kg\n", w.WeekStart, bar(w.Volume, top), w.Volume)
		}
		return nil
	},
}

var progressFrequencyCmd = &cobra.Command{
	Use:   "frequency",
	Short: "Workouts per week (recent weeks)",
	RunE: func(cmd *cobra.Command, args []string) error {
		weeks := stats.WeeklyFrequency(fitApp.Workouts.List())
		out := cmd.OutOrStdout()
		if len(weeks) == 0 {
			fmt.Fprintln(out, "No workouts yet.")
			return nil
		}
		for _, w := range weeks {
			fmt.Fprintf(out, "%s %s %d\n", w.WeekStart, strings.Repeat("■", w.Count), w.Count)
		}
		return nil
	},
}

var progressCalendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Which recent days had a workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		days := stats.ActivityCalendar(fitApp.Workouts.List(), calendarDays, fitApp.Now())
		out := cmd.OutOrStdout()
		if len(days) == 0 {
			fmt.Fprintln(out, "No workouts yet.")
			return nil
		}
		renderCalendar(out, days)
		return nil
	},
}

var progressStreakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Current streak and this week's count",
	RunE: func(cmd *cobra.Command, args []string) error {
		list := fitApp.Workouts.List()
		now := fitApp.Now()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Current streak: %d days\n", stats.CurrentStreak(list, now))
		fmt.Fprintf(out, "This week: %d workouts\n", stats.WorkoutsThisWeek(list, now))
		return fitApp.SyncStreak()
	},
}

// bar renders v as a horizontal bar relative to top.
func bar(v, top float64) string {
	n := 0
	if top > 0 {
		n = int(v / top * barWidth)
	}
	return color.CyanString(strings.Repeat("█", n)) + strings.Repeat(" ", barWidth-n)
}

// renderCalendar prints days in rows of seven, oldest first.
func renderCalendar(w io.Writer, days []stats.CalendarDay) {
	active := color.New(color.FgGreen)
	for i, d := range days {
		if i%7 == 0 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s ", d.Date.MonthDay())
		}
		if d.Active {
			active.Fprint(w, "■ ")
		} else {
			fmt.Fprint(w, "· ")
		}
	}
	fmt.Fprintln(w)
}

func init() {
	progressCalendarCmd.Flags().IntVar(&calendarDays, "days", 91, "window length in days")
	progressCmd.AddCommand(progressExerciseCmd, progressWeeklyCmd, progressFrequencyCmd, progressCalendarCmd, progressStreakCmd)
	rootCmd.AddCommand(progressCmd)
}
