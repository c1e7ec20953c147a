// ABOUTME: CLI commands for managing workouts, their exercises and sets.
// ABOUTME: IDs may be abbreviated to any unique prefix.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/workouts"
)

var (
	workoutDate      string
	workoutExercises []string
	workoutLimit     int
	exerciseSave     bool
	setWeight        float64
	setReps          int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workouts",
	Long: `Log strength workouts made of exercises and sets.

A workout is a named session on a date. Each exercise holds sets of
weight (kg) and reps. Volume is weight x reps summed over sets.

WORKFLOW:

  1. Log a workout:      fittrack workout add "하체 운동" --exercise "스쿼트:80x10,85x8"
  2. Add an exercise:    fittrack workout exercise w1a2 "레그 프레스"
  3. Record a set:       fittrack workout set w1a2 e9f8 --weight 150 --reps 12
  4. Review it:          fittrack workout show w1a2

IDs may be shortened to any unique prefix.`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Log a new workout",
	Long: `Log a new workout.

Each --exercise takes NAME:WEIGHTxREPS,... Omit the weight for bodyweight
sets, or omit the sets to add the exercise with a single empty set.

Examples:
  fittrack workout add "가슴/삼두 운동" --exercise "벤치프레스:60x12,65x10" --exercise "딥스:x15,x12"
  fittrack workout add "등 운동" --date 2024-05-01 --exercise 데드리프트`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateArg(workoutDate)
		if err != nil {
			return err
		}

		w := models.NewWorkout(strings.TrimSpace(args[0]), date)
		for _, arg := range workoutExercises {
			name, sets, err := parseExerciseArg(arg)
			if err != nil {
				return err
			}
			if len(sets) == 0 {
				w.Exercises = append(w.Exercises, models.NewWorkoutExercise(name))
				continue
			}
			w.WithExercise(name, sets...)
		}

		saved, err := fitApp.Workouts.Upsert(w)
		if err != nil {
			return fmt.Errorf("failed to log workout: %w", err)
		}
		if err := fitApp.SyncStreak(); err != nil {
			return err
		}

		color.Green("✓ Logged %s", saved.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s  Date: %s  Volume: %.0f kg\n", shortID(saved.ID), saved.Date, saved.Volume())
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		var list []*models.Workout
		if workoutDate != "" {
			date, err := parseDateArg(workoutDate)
			if err != nil {
				return err
			}
			list = fitApp.Workouts.ListByDate(date)
		} else {
			list = fitApp.Workouts.List()
		}
		workouts.SortByDateDesc(list)
		if workoutLimit > 0 && len(list) > workoutLimit {
			list = list[:workoutLimit]
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range list {
			fmt.Fprintf(out, "%s %s %s %2d exercises  %6.0f kg\n",
				faint.Sprint(padRight(shortID(w.ID), 9)),
				faint.Sprint(w.Date),
				padRight(truncate(w.Name, 20), 20),
				len(w.Exercises),
				w.Volume())
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		fmt.Fprintf(out, "Workout: %s\n", w.ID)
		fmt.Fprintf(out, "Name: %s\n", w.Name)
		fmt.Fprintf(out, "Date: %s\n", w.Date)
		fmt.Fprintf(out, "Volume: %.0f kg\n", w.Volume())

		if len(w.Exercises) == 0 {
			fmt.Fprintln(out, "\nNo exercises yet.")
			return nil
		}
		fmt.Fprintln(out, "\nExercises:")
		for _, ex := range w.Exercises {
			fmt.Fprintf(out, "  %s %s\n", faint.Sprint(padRight(shortID(ex.ID), 9)), ex.Name)
			for i, s := range ex.Sets {
				fmt.Fprintf(out, "    %s %d. %s\n", faint.Sprint(padRight(shortID(s.ID), 9)), i+1, formatSet(s))
			}
		}
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}
		if err := fitApp.Workouts.Remove(w.ID); err != nil {
			return err
		}
		if err := fitApp.SyncStreak(); err != nil {
			return err
		}
		color.Green("✓ Deleted %s (%s)", w.Name, w.Date)
		return nil
	},
}

var workoutExerciseCmd = &cobra.Command{
	Use:   "exercise <workout-id> <name>",
	Short: "Add an exercise with one empty set",
	Long: `Add an exercise to a workout. Names outside the catalog are accepted;
pass --save to also add them to the catalog's custom category.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}
		name := strings.TrimSpace(args[1])
		if exerciseSave && !fitApp.Catalog.Contains(name) {
			if _, err := fitApp.Catalog.AddCustom(name); err != nil {
				return err
			}
		}

		ex, err := fitApp.Workouts.AddExercise(w.ID, name)
		if err != nil {
			return err
		}
		color.Green("✓ Added %s", ex.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  Exercise: %s  Set: %s\n", shortID(ex.ID), shortID(ex.Sets[0].ID))
		return nil
	},
}

var workoutRmExerciseCmd = &cobra.Command{
	Use:   "rmexercise <workout-id> <exercise-id>",
	Short: "Remove an exercise and its sets",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}
		ex, err := resolveExercise(w, args[1])
		if err != nil {
			return err
		}
		if err := fitApp.Workouts.RemoveExercise(w.ID, ex.ID); err != nil {
			return err
		}
		color.Green("✓ Removed %s", ex.Name)
		return nil
	},
}

var workoutSetCmd = &cobra.Command{
	Use:   "set <workout-id> <exercise-id> [set-id]",
	Short: "Add a set, or update an existing one",
	Long: `Record weight and reps. Without a set ID a new set is appended.

Examples:
  fittrack workout set w1 e1 --weight 70 --reps 8
  fittrack workout set w1 e1 s2 --reps 11`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if setWeight < 0 || setReps < 0 {
			return fmt.Errorf("weight and reps must not be negative")
		}
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}
		ex, err := resolveExercise(w, args[1])
		if err != nil {
			return err
		}

		var current models.SetDetail
		if len(args) == 3 {
			current, err = resolveSet(ex, args[2])
			if err != nil {
				return err
			}
		} else {
			added, err := fitApp.Workouts.AddSet(w.ID, ex.ID)
			if err != nil {
				return err
			}
			current = *added
		}

		weight, reps := current.Weight, current.Reps
		if cmd.Flags().Changed("weight") {
			weight = setWeight
		}
		if cmd.Flags().Changed("reps") {
			reps = setReps
		}
		if err := fitApp.Workouts.UpdateSet(w.ID, ex.ID, current.ID, weight, reps); err != nil {
			return err
		}
		color.Green("✓ %s: %s", ex.Name, formatSet(models.SetDetail{Weight: weight, Reps: reps}))
		return nil
	},
}

var workoutRmSetCmd = &cobra.Command{
	Use:   "rmset <workout-id> <exercise-id> <set-id>",
	Short: "Remove a set",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(args[0])
		if err != nil {
			return err
		}
		ex, err := resolveExercise(w, args[1])
		if err != nil {
			return err
		}
		set, err := resolveSet(ex, args[2])
		if err != nil {
			return err
		}
		if err := fitApp.Workouts.RemoveSet(w.ID, ex.ID, set.ID); err != nil {
			return err
		}
		color.Green("✓ Removed set %s", formatSet(set))
		return nil
	},
}

// resolveWorkout finds a workout by exact ID or unique prefix.
func resolveWorkout(ref string) (*models.Workout, error) {
	if w, err := fitApp.Workouts.Get(ref); err == nil {
		return w, nil
	}
	var match *models.Workout
	for _, w := range fitApp.Workouts.List() {
		if strings.HasPrefix(w.ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous workout ID: %s", ref)
			}
			match = w
		}
	}
	if match == nil {
		return nil, fmt.Errorf("workout not found: %s", ref)
	}
	return match, nil
}

func resolveExercise(w *models.Workout, ref string) (*models.WorkoutExercise, error) {
	if ex := w.Exercise(ref); ex != nil {
		return ex, nil
	}
	var match *models.WorkoutExercise
	for i := range w.Exercises {
		if strings.HasPrefix(w.Exercises[i].ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous exercise ID: %s", ref)
			}
			match = &w.Exercises[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("exercise not found: %s", ref)
	}
	return match, nil
}

func resolveSet(ex *models.WorkoutExercise, ref string) (models.SetDetail, error) {
	var match *models.SetDetail
	for i := range ex.Sets {
		if ex.Sets[i].ID == ref {
			return ex.Sets[i], nil
		}
		if strings.HasPrefix(ex.Sets[i].ID, ref) {
			if match != nil {
				return models.SetDetail{}, fmt.Errorf("ambiguous set ID: %s", ref)
			}
			match = &ex.Sets[i]
		}
	}
	if match == nil {
		return models.SetDetail{}, fmt.Errorf("set not found: %s", ref)
	}
	return *match, nil
}

func init() {
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "date (YYYY-MM-DD, default today)")
	workoutAddCmd.Flags().StringArrayVarP(&workoutExercises, "exercise", "e", nil, "exercise as NAME:WEIGHTxREPS,... (repeatable)")
	workoutListCmd.Flags().StringVar(&workoutDate, "date", "", "only workouts on this date")
	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max results (0 for all)")
	workoutExerciseCmd.Flags().BoolVar(&exerciseSave, "save", false, "also add the name to the catalog")
	workoutSetCmd.Flags().Float64Var(&setWeight, "weight", 0, "weight in kg")
	workoutSetCmd.Flags().IntVar(&setReps, "reps", 0, "repetitions")

	workoutCmd.AddCommand(workoutAddCmd, workoutListCmd, workoutShowCmd, workoutDeleteCmd,
		workoutExerciseCmd, workoutRmExerciseCmd, workoutSetCmd, workoutRmSetCmd)
	rootCmd.AddCommand(workoutCmd)
}
