// ABOUTME: CLI commands for the daily O/X fitness quiz.
// ABOUTME: Shows today's question, records an answer, and reviews past answers.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fittrack/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Daily O/X fitness quiz",
}

var quizTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's question",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, q, answered := fitApp.Quiz.Today(fitApp.Now())
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Q. %s\n", q.Statement)
		if answered == nil {
			fmt.Fprintln(out, "\nAnswer with: fittrack quiz answer O|X")
			return nil
		}
		printResult(out, *answered)
		return nil
	},
}

var quizAnswerCmd = &cobra.Command{
	Use:   "answer <O|X>",
	Short: "Answer today's question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		choice, err := quiz.ParseChoice(args[0])
		if err != nil {
			return err
		}
		r, err := fitApp.Quiz.Answer(fitApp.Now(), choice)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Q. %s\n", r.Question.Statement)
		printResult(out, r)
		return nil
	},
}

var quizArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Review answered questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		results := fitApp.Quiz.Archive()
		if len(results) == 0 {
			fmt.Fprintln(out, "아직 푼 퀴즈가 없습니다.")
			return nil
		}
		for _, r := range results {
			verdict := color.GreenString("(정답)")
			if !r.Correct {
				verdict = color.RedString("(오답 - 정답: %s)", r.Question.Answer)
			}
			fmt.Fprintf(out, "Q. %s\n   내 답변: %s %s\n   핵심: %s\n\n", r.Question.Statement, r.Given, verdict, r.Question.Takeaway)
		}
		return nil
	},
}

func printResult(w io.Writer, r quiz.Result) {
	if r.Correct {
		fmt.Fprintln(w, color.GreenString("\n정답입니다! (정답: %s)", r.Question.Answer))
	} else {
		fmt.Fprintln(w, color.RedString("\n오답입니다. (정답: %s)", r.Question.Answer))
	}
	fmt.Fprintf(w, "\n%s\n\n핵심 요약: %s\n", r.Question.Explanation, r.Question.Takeaway)
}

func init() {
	quizCmd.AddCommand(quizTodayCmd, quizAnswerCmd, quizArchiveCmd)
	rootCmd.AddCommand(quizCmd)
}
