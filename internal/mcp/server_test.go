// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/crypto/bcrypt"

	"github.com/harperreed/fittrack/internal/app"
	"github.com/harperreed/fittrack/internal/coach"
	"github.com/harperreed/fittrack/internal/config"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/session"
	"github.com/harperreed/fittrack/internal/storage"
)

var testNow = time.Date(2024, time.May, 8, 10, 0, 0, 0, time.Local)

// setupTestApp opens an empty app over an in-memory store.
func setupTestApp(t *testing.T, signedIn bool) *app.App {
	t.Helper()

	store, err := storage.OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	seed := false
	a, err := app.New(&config.Config{Backend: "memory", SeedSampleData: &seed}, store)
	if err != nil {
		t.Fatalf("Failed to build app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	a.Now = func() time.Time { return testNow }
	a.Session.WithHashCost(bcrypt.MinCost)

	if signedIn {
		if _, err := a.Session.Signup(models.Profile{Name: "알렉스", Age: 28, Weight: 75, Height: 180}, "1234"); err != nil {
			t.Fatalf("Signup failed: %v", err)
		}
	}
	return a
}

func setupServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(setupTestApp(t, true))
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func logBench(t *testing.T, server *Server, date string, weight float64) workoutOutput {
	t.Helper()
	_, out, err := server.handleLogWorkout(context.Background(), &mcp.CallToolRequest{}, logWorkoutInput{
		Name: "가슴 운동",
		Date: date,
		Exercises: []exerciseInput{
			{Name: "벤치프레스", Sets: []setInput{{Weight: weight, Reps: 10}, {Weight: weight + 5, Reps: 8}}},
		},
	})
	if err != nil {
		t.Fatalf("log_workout failed: %v", err)
	}
	return out
}

func TestNewServer(t *testing.T) {
	server := setupServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.app == nil {
		t.Error("Expected non-nil app")
	}
}

func TestToolsRequireSignIn(t *testing.T) {
	server, err := NewServer(setupTestApp(t, false))
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	ctx := context.Background()

	_, _, err = server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{Name: "x"})
	if !errors.Is(err, session.ErrNotAuthenticated) {
		t.Errorf("log_workout error = %v, want ErrNotAuthenticated", err)
	}
	_, _, err = server.handleListWorkouts(ctx, &mcp.CallToolRequest{}, listWorkoutsInput{})
	if !errors.Is(err, session.ErrNotAuthenticated) {
		t.Errorf("list_workouts error = %v, want ErrNotAuthenticated", err)
	}
	_, err = server.handleSummaryResource(ctx, &mcp.ReadResourceRequest{})
	if !errors.Is(err, session.ErrNotAuthenticated) {
		t.Errorf("summary error = %v, want ErrNotAuthenticated", err)
	}
}

func TestToolsStopAfterLogoutElsewhere(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	if _, _, err := server.handleListWorkouts(ctx, &mcp.CallToolRequest{}, listWorkoutsInput{}); err != nil {
		t.Fatalf("list_workouts failed while signed in: %v", err)
	}

	// Another process signing out only removes the persisted flag.
	if err := server.app.Store.Delete(storage.KeySession); err != nil {
		t.Fatalf("Delete session failed: %v", err)
	}

	_, _, err := server.handleListWorkouts(ctx, &mcp.CallToolRequest{}, listWorkoutsInput{})
	if !errors.Is(err, session.ErrNotAuthenticated) {
		t.Errorf("list_workouts error = %v, want ErrNotAuthenticated", err)
	}
	_, err = server.handleProfileResource(ctx, &mcp.ReadResourceRequest{})
	if !errors.Is(err, session.ErrNotAuthenticated) {
		t.Errorf("profile error = %v, want ErrNotAuthenticated", err)
	}
}

func TestHandleLogWorkout(t *testing.T) {
	server := setupServer(t)

	out := logBench(t, server, "2024-05-08", 60)
	if out.ID == "" {
		t.Error("Expected generated ID")
	}
	if out.Volume != 60*10+65*8 {
		t.Errorf("Volume = %v, want %v", out.Volume, 60*10+65*8)
	}
	if !strings.Contains(out.Message, "가슴 운동") {
		t.Errorf("Message = %q, want workout name", out.Message)
	}
	if got := server.app.Session.User().WorkoutStreak; got != 1 {
		t.Errorf("WorkoutStreak = %d, want 1", got)
	}
}

func TestHandleLogWorkoutDefaultsToToday(t *testing.T) {
	server := setupServer(t)
	out := logBench(t, server, "", 50)
	if out.Date != "2024-05-08" {
		t.Errorf("Date = %s, want 2024-05-08", out.Date)
	}
}

func TestHandleLogWorkoutRejectsBadInput(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input logWorkoutInput
	}{
		{"blank name", logWorkoutInput{Name: "  "}},
		{"bad date", logWorkoutInput{Name: "a", Date: "05/08/2024"}},
		{"negative weight", logWorkoutInput{Name: "a", Exercises: []exerciseInput{{Name: "b", Sets: []setInput{{Weight: -1, Reps: 1}}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, tt.input); err == nil {
				t.Error("Expected error")
			}
		})
	}
	if n := len(server.app.Workouts.List()); n != 0 {
		t.Errorf("Stored %d workouts, want 0", n)
	}
}

func TestHandleListWorkouts(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	logBench(t, server, "2024-05-01", 60)
	logBench(t, server, "2024-05-08", 65)
	logBench(t, server, "2024-05-03", 62)

	_, out, err := server.handleListWorkouts(ctx, &mcp.CallToolRequest{}, listWorkoutsInput{Limit: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out.Workouts) != 2 {
		t.Fatalf("Got %d workouts, want 2", len(out.Workouts))
	}
	if out.Workouts[0].Date != "2024-05-08" || out.Workouts[1].Date != "2024-05-03" {
		t.Errorf("Order = %s, %s; want newest first", out.Workouts[0].Date, out.Workouts[1].Date)
	}

	_, out, err = server.handleListWorkouts(ctx, &mcp.CallToolRequest{}, listWorkoutsInput{Date: "2024-05-01"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out.Workouts) != 1 {
		t.Errorf("Got %d workouts for date, want 1", len(out.Workouts))
	}
}

func TestHandleListWorkoutsEmpty(t *testing.T) {
	server := setupServer(t)

	_, out, err := server.handleListWorkouts(context.Background(), &mcp.CallToolRequest{}, listWorkoutsInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Message != "No workouts found." {
		t.Errorf("Message = %q", out.Message)
	}
}

func TestHandleGetAndDeleteWorkout(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()
	logged := logBench(t, server, "2024-05-08", 60)

	_, w, err := server.handleGetWorkout(ctx, &mcp.CallToolRequest{}, workoutIDInput{ID: logged.ID})
	if err != nil {
		t.Fatalf("get_workout failed: %v", err)
	}
	if len(w.Exercises) != 1 || len(w.Exercises[0].Sets) != 2 {
		t.Errorf("Unexpected workout shape: %+v", w)
	}

	if _, _, err := server.handleDeleteWorkout(ctx, &mcp.CallToolRequest{}, workoutIDInput{ID: logged.ID}); err != nil {
		t.Fatalf("delete_workout failed: %v", err)
	}
	if _, _, err := server.handleGetWorkout(ctx, &mcp.CallToolRequest{}, workoutIDInput{ID: logged.ID}); err == nil {
		t.Error("Expected not found after delete")
	}
	if _, _, err := server.handleDeleteWorkout(ctx, &mcp.CallToolRequest{}, workoutIDInput{ID: logged.ID}); err == nil {
		t.Error("Expected error deleting missing workout")
	}
}

func TestHandleRecordMetric(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, out, err := server.handleRecordMetric(ctx, &mcp.CallToolRequest{}, recordMetricInput{MetricType: "muscle_mass", Value: 35.5})
	if err != nil {
		t.Fatalf("record_metric failed: %v", err)
	}
	if !strings.Contains(out.Message, "muscle_mass") {
		t.Errorf("Message = %q", out.Message)
	}
	if got := server.app.Session.User().MuscleMass; got != 35.5 {
		t.Errorf("MuscleMass = %v, want 35.5", got)
	}

	if _, _, err := server.handleRecordMetric(ctx, &mcp.CallToolRequest{}, recordMetricInput{MetricType: "hrv", Value: 40}); err == nil {
		t.Error("Expected error for unknown metric type")
	}
}

func TestHandleProgressTools(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()
	logBench(t, server, "2024-05-01", 60)
	logBench(t, server, "2024-05-08", 70)

	_, progress, err := server.handleExerciseProgress(ctx, &mcp.CallToolRequest{}, exerciseProgressInput{Exercise: "벤치프레스"})
	if err != nil {
		t.Fatalf("exercise_progress failed: %v", err)
	}
	if len(progress.Points) != 2 || progress.Points[1].MaxWeight != 75 {
		t.Errorf("Unexpected points: %+v", progress.Points)
	}

	_, missing, err := server.handleExerciseProgress(ctx, &mcp.CallToolRequest{}, exerciseProgressInput{Exercise: "스쿼트"})
	if err != nil || missing.Points == nil || len(missing.Points) != 0 {
		t.Errorf("Expected empty, non-nil points; got %+v, %v", missing.Points, err)
	}

	_, weekly, err := server.handleWeeklyVolume(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("weekly_volume failed: %v", err)
	}
	if len(weekly.Weeks) != 2 {
		t.Errorf("Got %d weeks, want 2", len(weekly.Weeks))
	}

	_, cal, err := server.handleActivityCalendar(ctx, &mcp.CallToolRequest{}, calendarInput{Days: 7})
	if err != nil {
		t.Fatalf("activity_calendar failed: %v", err)
	}
	if len(cal.Days) != 7 {
		t.Fatalf("Got %d days, want 7", len(cal.Days))
	}
	if !cal.Days[len(cal.Days)-1].Active {
		t.Error("Expected today to be active")
	}
}

func TestHandleListCatalog(t *testing.T) {
	server := setupServer(t)
	_, out, err := server.handleListCatalog(context.Background(), &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("list_catalog failed: %v", err)
	}
	if len(out.Categories) != 7 || out.Categories[0].Name != "가슴" {
		t.Errorf("Unexpected categories: %+v", out.Categories)
	}
}

func TestHandleCoachTools(t *testing.T) {
	server := setupServer(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		content := `{"recipeName":"두부 샐러드","description":"가벼운 점심","ingredients":["두부"],"instructions":["섞는다"],"imageSearchQuery":"tofu salad"}`
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "x", "object": "chat.completion", "created": 1, "model": "m",
			"choices": []map[string]any{{"index": 0, "finish_reason": "stop",
				"message": map[string]any{"role": "assistant", "content": content}}},
		})
	}))
	t.Cleanup(srv.Close)
	server.app.Coach = coach.New(coach.Options{APIKey: "k", BaseURL: srv.URL + "/", Model: "m"})
	ctx := context.Background()

	_, recipe, err := server.handleSuggestRecipe(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("suggest_recipe failed: %v", err)
	}
	if recipe.RecipeName != "두부 샐러드" {
		t.Errorf("RecipeName = %q", recipe.RecipeName)
	}

	_, _, err = server.handleEstimateCalories(ctx, &mcp.CallToolRequest{}, caloriesInput{Meal: "두부"})
	if !errors.Is(err, coach.ErrUnavailable) {
		t.Errorf("estimate_calories error = %v, want ErrUnavailable for mismatched reply", err)
	}

	_, _, err = server.handleRecommendRoutines(ctx, &mcp.CallToolRequest{}, routinesInput{Level: "초보자", Goal: "근력", DaysPerWeek: 9})
	if !errors.Is(err, coach.ErrInvalidInput) {
		t.Errorf("recommend_routines error = %v, want ErrInvalidInput", err)
	}
}

func TestHandleProfileResource(t *testing.T) {
	server := setupServer(t)

	result, err := server.handleProfileResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Contents[0].URI != profileURI {
		t.Errorf("URI = %s, want %s", result.Contents[0].URI, profileURI)
	}
	if strings.Contains(result.Contents[0].Text, `"pin"`) {
		t.Error("Profile must not expose the PIN")
	}
	var u models.User
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &u); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if u.Name != "알렉스" {
		t.Errorf("Name = %s, want 알렉스", u.Name)
	}
}

func TestHandleRecentWorkoutsResource(t *testing.T) {
	server := setupServer(t)
	for i := 1; i <= 12; i++ {
		logBench(t, server, models.Date("2024-04-01").AddDays(i).String(), 50)
	}

	result, err := server.handleRecentWorkoutsResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", result.Contents[0].MIMEType)
	}

	var body struct {
		Workouts []models.Workout `json:"workouts"`
		Count    int              `json:"count"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body.Count != recentWorkoutLimit || len(body.Workouts) != recentWorkoutLimit {
		t.Errorf("Count = %d, want %d", body.Count, recentWorkoutLimit)
	}
	if body.Workouts[0].Date != "2024-04-13" {
		t.Errorf("First = %s, want newest", body.Workouts[0].Date)
	}
}

func TestHandleSummaryResource(t *testing.T) {
	server := setupServer(t)
	logBench(t, server, "2024-05-07", 60)
	logBench(t, server, "2024-05-08", 60)

	result, err := server.handleSummaryResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	text := result.Contents[0].Text
	for _, want := range []string{`"currentStreak": 2`, `"workoutsThisWeek": 2`, `"weekly_volume"`} {
		if !strings.Contains(text, want) {
			t.Errorf("Summary missing %s:\n%s", want, text)
		}
	}
}
