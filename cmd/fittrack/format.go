// ABOUTME: Output and input helpers shared by the CLI commands.
// ABOUTME: Parses set notation and dates, and pads columns for tables.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/harperreed/fittrack/internal/models"
)

// parseDateArg parses YYYY-MM-DD, or returns today for an empty string.
func parseDateArg(s string) (models.Date, error) {
	if strings.TrimSpace(s) == "" {
		return models.DateOf(fitApp.Now()), nil
	}
	d, err := models.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", s)
	}
	return d, nil
}

// parseExerciseArg parses "name:60x12,65x10". Weight may be omitted for
// bodyweight sets ("딥스:x15,x12"), and a bare name adds no sets.
func parseExerciseArg(arg string) (string, []models.SetDetail, error) {
	name, rest, found := strings.Cut(arg, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("exercise name is required in %q", arg)
	}
	if !found || strings.TrimSpace(rest) == "" {
		return name, nil, nil
	}

	var sets []models.SetDetail
	for _, part := range strings.Split(rest, ",") {
		set, err := parseSet(part)
		if err != nil {
			return "", nil, fmt.Errorf("exercise %s: %w", name, err)
		}
		sets = append(sets, set)
	}
	return name, sets, nil
}

// parseSet parses "60x12" (kg x reps) or "x12".
func parseSet(s string) (models.SetDetail, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	w, r, found := strings.Cut(s, "x")
	if !found {
		return models.SetDetail{}, fmt.Errorf("invalid set %q (use WEIGHTxREPS)", s)
	}

	var weight float64
	if strings.TrimSpace(w) != "" {
		var err error
		weight, err = strconv.ParseFloat(strings.TrimSpace(w), 64)
		if err != nil || weight < 0 {
			return models.SetDetail{}, fmt.Errorf("invalid weight in %q", s)
		}
	}
	reps, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil || reps < 0 {
		return models.SetDetail{}, fmt.Errorf("invalid reps in %q", s)
	}
	return models.SetDetail{Weight: weight, Reps: reps}, nil
}

func formatSet(s models.SetDetail) string {
	return fmt.Sprintf("%gkg x %d", s.Weight, s.Reps)
}

// shortID trims generated IDs for display.
func shortID(id string) string {
	if len(id) > 9 {
		return id[:9]
	}
	return id
}

// padRight pads s to n display columns, counting runes.
func padRight(s string, n int) string {
	l := utf8.RuneCountInString(s)
	if l >= n {
		return s
	}
	return s + strings.Repeat(" ", n-l)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// readLine prompts on w and reads one trimmed line from r.
func readLine(r *bufio.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
