// ABOUTME: CLI commands for the AI coach.
// ABOUTME: Routines, calorie estimates, recipes and an interactive chat.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fittrack/internal/coach"
)

var (
	coachLevel string
	coachGoal  string
	coachDays  int
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Ask the AI coach",
	Long: `Ask the AI coach for help. Requires OPENAI_API_KEY, FITTRACK_AI_API_KEY or
FITTRACK_AI_BASE_URL (for a local OpenAI-compatible server).`,
}

var coachRoutinesCmd = &cobra.Command{
	Use:   "routines",
	Short: "Recommend a weekly routine plan",
	Long: `Recommend one routine per workout day.

Examples:
  fittrack coach routines --level 초보자 --goal "체중 감량" --days 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		routines, err := fitApp.Coach.RecommendRoutines(cmd.Context(), coachLevel, coachGoal, coachDays)
		if err != nil {
			return coachError(err)
		}

		out := cmd.OutOrStdout()
		if len(routines) == 0 {
			fmt.Fprintln(out, "No routines returned.")
			return nil
		}
		bold := color.New(color.Bold)
		for i, r := range routines {
			bold.Fprintf(out, "Day %d: %s\n", i+1, r.RoutineName)
			fmt.Fprintf(out, "  %s\n", r.Description)
			for _, ex := range r.Exercises {
				fmt.Fprintf(out, "  • %s  %s세트 x %s  휴식 %s\n", ex.ExerciseName, ex.Sets, ex.Reps, ex.Rest)
				fmt.Fprintf(out, "    %s\n", color.New(color.Faint).Sprint(ex.Description))
				fmt.Fprintf(out, "    ▶ https://www.youtube.com/results?search_query=%s\n", url.QueryEscape(strings.TrimSpace(ex.YoutubeSearchQuery)))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var coachCaloriesCmd = &cobra.Command{
	Use:   "calories <meal description>",
	Short: "Estimate the calories of a meal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		est, err := fitApp.Coach.EstimateCalories(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return coachError(err)
		}
		out := cmd.OutOrStdout()
		for _, f := range est.Foods {
			fmt.Fprintf(out, "  %s %6.0f kcal\n", padRight(f.Food, 20), f.Calories)
		}
		color.New(color.Bold).Fprintf(out, "  %s %6.0f kcal\n", padRight("합계", 20), est.TotalCalories)
		return nil
	},
}

var coachRecipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Suggest a low-calorie recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := fitApp.Coach.SuggestRecipe(cmd.Context())
		if err != nil {
			return coachError(err)
		}
		out := cmd.OutOrStdout()
		color.New(color.Bold).Fprintln(out, r.RecipeName)
		fmt.Fprintf(out, "%s\n\n재료:\n", r.Description)
		for _, ing := range r.Ingredients {
			fmt.Fprintf(out, "  • %s\n", ing)
		}
		fmt.Fprintln(out, "\n만드는 법:")
		for i, step := range r.Instructions {
			fmt.Fprintf(out, "  %d. %s\n", i+1, step)
		}
		return nil
	},
}

var coachChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the coach (empty line or Ctrl-D to quit)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runChat(ctx, fitApp.Coach.NewChat(fitApp.Session.User().Name), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// runChat reads one message per line until EOF or an empty line.
func runChat(ctx context.Context, chat *coach.Chat, in io.Reader, out io.Writer) error {
	greeting := chat.Transcript()[0]
	fmt.Fprintf(out, "%s %s\n", color.CyanString("코치:"), greeting.Text)

	r := bufio.NewReader(in)
	for {
		line, err := readLine(r, out, color.GreenString("나: "))
		if errors.Is(err, io.EOF) || line == "" {
			return nil
		}
		if err != nil {
			return err
		}

		reply, err := chat.Send(ctx, line)
		if err != nil {
			var fe *coach.FeatureError
			if errors.As(err, &fe) {
				color.Red(fe.Message)
				continue
			}
			return err
		}
		fmt.Fprintf(out, "%s %s\n", color.CyanString("코치:"), reply)
	}
}

// coachError shows the user-facing message for coach failures.
func coachError(err error) error {
	var fe *coach.FeatureError
	if errors.As(err, &fe) {
		if errors.Is(err, coach.ErrNotConfigured) {
			return fmt.Errorf("%s\n(set OPENAI_API_KEY or FITTRACK_AI_BASE_URL)", fe.Message)
		}
		return errors.New(fe.Message)
	}
	return err
}

func init() {
	coachRoutinesCmd.Flags().StringVar(&coachLevel, "level", "초보자", "fitness level (초보자, 중급자, 상급자)")
	coachRoutinesCmd.Flags().StringVar(&coachGoal, "goal", "근력 증가", "main goal")
	coachRoutinesCmd.Flags().IntVar(&coachDays, "days", 3, "workout days per week (1-7)")

	coachCmd.AddCommand(coachRoutinesCmd, coachCaloriesCmd, coachRecipeCmd, coachChatCmd)
	rootCmd.AddCommand(coachCmd)
}
