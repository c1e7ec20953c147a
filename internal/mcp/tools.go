// ABOUTME: MCP tool implementations for the workout log, progress and coach.
// ABOUTME: Every tool requires a signed-in session.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/fittrack/internal/catalog"
	"github.com/harperreed/fittrack/internal/coach"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/stats"
	"github.com/harperreed/fittrack/internal/workouts"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Log a workout with its exercises and sets",
	}, s.handleLogWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workouts, newest first, optionally for one date",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with all its exercises and sets",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout",
	}, s.handleDeleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_metric",
		Description: "Record body weight or muscle mass for a day",
	}, s.handleRecordMetric)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "exercise_progress",
		Description: "Per-day volume and heaviest set for one exercise",
	}, s.handleExerciseProgress)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "weekly_volume",
		Description: "Total training volume per week (weeks start Monday)",
	}, s.handleWeeklyVolume)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "activity_calendar",
		Description: "Which days in a trailing window had a workout",
	}, s.handleActivityCalendar)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_catalog",
		Description: "List the exercise catalog grouped by body part",
	}, s.handleListCatalog)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recommend_routines",
		Description: "Ask the AI coach for a weekly routine plan",
	}, s.handleRecommendRoutines)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "estimate_calories",
		Description: "Ask the AI coach to estimate the calories of a meal",
	}, s.handleEstimateCalories)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "suggest_recipe",
		Description: "Ask the AI coach for a low-calorie recipe",
	}, s.handleSuggestRecipe)
}

// Tool input/output types

type setInput struct {
	Weight float64 `json:"weight" jsonschema:"Weight in kg (0 for bodyweight)"`
	Reps   int     `json:"reps" jsonschema:"Repetitions"`
}

type exerciseInput struct {
	Name string     `json:"name" jsonschema:"Exercise name, e.g. 벤치프레스"`
	Sets []setInput `json:"sets,omitempty" jsonschema:"Sets performed"`
}

type logWorkoutInput struct {
	Name      string          `json:"name" jsonschema:"Workout name, e.g. 가슴/삼두 운동"`
	Date      string          `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, defaults to today"`
	Exercises []exerciseInput `json:"exercises,omitempty" jsonschema:"Exercises in the order performed"`
}

type workoutOutput struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Name    string  `json:"name"`
	Volume  float64 `json:"volume"`
	Message string  `json:"message"`
}

type listWorkoutsInput struct {
	Date  string `json:"date,omitempty" jsonschema:"Only workouts on this date (YYYY-MM-DD)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type workoutsOutput struct {
	Workouts []*models.Workout `json:"workouts"`
	Message  string            `json:"message,omitempty"`
}

type workoutIDInput struct {
	ID string `json:"id" jsonschema:"Workout ID"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type recordMetricInput struct {
	MetricType string  `json:"metric_type" jsonschema:"Type of metric (weight, muscle_mass)"`
	Value      float64 `json:"value" jsonschema:"Value in kg"`
	Date       string  `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, defaults to today"`
}

type exerciseProgressInput struct {
	Exercise string `json:"exercise" jsonschema:"Exact exercise name"`
}

type exerciseProgressOutput struct {
	Exercise string                `json:"exercise"`
	Points   []stats.ExercisePoint `json:"points"`
}

type emptyInput struct{}

type weeklyVolumeOutput struct {
	Weeks []stats.WeekVolume `json:"weeks"`
}

type calendarInput struct {
	Days int `json:"days,omitempty" jsonschema:"Window length in days (default 90)"`
}

type calendarOutput struct {
	Days []stats.CalendarDay `json:"days"`
}

type catalogOutput struct {
	Categories []catalog.Category `json:"categories"`
}

type routinesInput struct {
	Level       string `json:"level" jsonschema:"Fitness level, e.g. 초보자, 중급자, 상급자"`
	Goal        string `json:"goal" jsonschema:"Main goal, e.g. 체중 감량, 근력 증가"`
	DaysPerWeek int    `json:"days_per_week" jsonschema:"Workout days per week (1-7)"`
}

type routinesOutput struct {
	Routines []coach.Routine `json:"routines"`
}

type caloriesInput struct {
	Meal string `json:"meal" jsonschema:"Free-text description of what was eaten"`
}

// Tool handlers

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	if err := s.app.RequireAuth(); err != nil {
		return nil, workoutOutput{}, err
	}

	date, err := s.parseDateOrToday(input.Date)
	if err != nil {
		return nil, workoutOutput{}, err
	}

	w := models.NewWorkout(strings.TrimSpace(input.Name), date)
	for _, ex := range input.Exercises {
		sets := make([]models.SetDetail, 0, len(ex.Sets))
		for _, set := range ex.Sets {
			sets = append(sets, models.SetDetail{Weight: set.Weight, Reps: set.Reps})
		}
		w.WithExercise(strings.TrimSpace(ex.Name), sets...)
	}

	saved, err := s.app.Workouts.Upsert(w)
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to log workout: %w", err)
	}
	if err := s.app.SyncStreak(); err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to update streak: %w", err)
	}

	return nil, workoutOutput{
		ID:      saved.ID,
		Date:    saved.Date.String(),
		Name:    saved.Name,
		Volume:  saved.Volume(),
		Message: fmt.Sprintf("Logged %s on %s with %d exercises (ID: %s)", saved.Name, saved.Date, len(saved.Exercises), saved.ID),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, workoutsOutput, error) {
	if err := s.app.RequireAuth(); err != nil {
		return nil, workoutsOutput{}, err
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var list []*models.Workout
	if input.Date != "" {
		date, err := models.ParseDate(input.Date)
		if err != nil {
			return nil, workoutsOutput{}, err
		}
		list = s.app.Workouts.ListByDate(date)
	} else {
		list = s.app.Workouts.List()
	}
	workouts.SortByDateDesc(list)
	if len(list) > input.Limit {
		list = list[:input.Limit]
	}

	if len(list) == 0 {
		return nil, workoutsOutput{Workouts: []*models.Workout{}, Message: "No workouts found."}, nil
	}
	return nil, workoutsOutput{Workouts: list}, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, models.Workout, error) {
	if err := s.app.RequireAuth(); err != nil {
		return nil, models.Workout{}, err
	}
	w, err := s.app.Workouts.Get(input.ID)
	if err != nil {
		return nil, models.Workout{}, fmt.Errorf("workout not found: %s", input.ID)
	}
	return nil, *w, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.app.RequireAuth(); err != nil {
		return nil, simpleOutput{}, err
	}
	if _, err := s.app.Workouts.Get(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("workout not found: %s", input.ID)
	}
	if err := s.app.Workouts.Remove(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}
	if err := s.app.SyncStreak(); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to update streak: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted workout: %s", input.ID)}, nil
}

func (s *Server) handleRecordMetric(ctx context.Context, req *mcp.CallToolRequest, input recordMetricInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.app.RequireAuth(); err != nil {
		return nil, simpleOutput{}, err
	}
	if !models.IsValidMetricType(input.MetricType) {
		return nil, simpleOutput{}, fmt.Errorf("unknown metric type: %s", input.MetricType)
	}
	date, err := s.parseDateOrToday(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	mt := models.MetricType(input.MetricType)
	if _, err := s.app.Session.RecordMetric(models.NewMetric(mt, input.Value).WithDate(date)); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to record metric: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Recorded %s: %.1f %s on %s", mt, input.Value, models.MetricUnits[mt], date),
	}, nil
}

func (s *Server) handleExerciseProgress(ctx context.Context, req *mcp.CallToolRequest, input exerciseProgressInput) (*mcp.CallToolResult, exerciseProgressOutput, error) {
	if err := s.app.RequireAuth(); err != nil {
		return nil, exerciseProgressOutput{}, err
	}
	points := stats.ExerciseSeries(s.app.Workouts.List(), input.Exercise)
	if points == nil {
		points = []stats.ExercisePoint{}
	}
	return nil, exerciseProgressOutput{Exercise: input.Exercise, Points: points}, nil
}

func (s *Server) handleWeeklyVolume(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, weeklyVolumeOutput, error) {
	if err := s.app.RequireAuth(); err != nil {
		return nil, weeklyVolumeOutput{}, err
	}
	weeks := stats.WeeklyVolume(s.app.Workouts.List())
	if weeks == nil {
		weeks = []stats.WeekVolume{}
	}
	return nil, weeklyVolumeOutput{Weeks: weeks}, nil
}

func (s *Server) handleActivityCalendar(ctx context.Context, req *mcp.CallToolRequest, input calendarInput) (*mcp.CallToolResult, calendarOutput, error) {
	if err := s.app.RequireAuth(); err != nil {
		return nil, calendarOutput{}, err
	}
	if input.Days <= 0 {
		input.Days = 90
	}
	days := stats.ActivityCalendar(s.app.Workouts.List(), input.Days, s.app.Now())
	if days == nil {
		days = []stats.CalendarDay{}
	}
	return nil, calendarOutput{Days: days}, nil
}

func (s *Server) handleListCatalog(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, catalogOutput, error) {
	if err := s.app.RequireAuth(); err != nil {
		return nil, catalogOutput{}, err
	}
	return nil, catalogOutput{Categories: s.app.Catalog.Categories()}, nil
}

func (s *Server) handleRecommendRoutines(ctx context.Context, req *mcp.CallToolRequest, input routinesInput) (*mcp.CallToolResult, routinesOutput, error) {
	if err := s.app.RequireAuth(); err != nil {
		return nil, routinesOutput{}, err
	}
	routines, err := s.app.Coach.RecommendRoutines(ctx, input.Level, input.Goal, input.DaysPerWeek)
	if err != nil {
		return nil, routinesOutput{}, err
	}
	if routines == nil {
		routines = []coach.Routine{}
	}
	return nil, routinesOutput{Routines: routines}, nil
}

func (s *Server) handleEstimateCalories(ctx context.Context, req *mcp.CallToolRequest, input caloriesInput) (*mcp.CallToolResult, coach.CalorieEstimate, error) {
	if err := s.app.RequireAuth(); err != nil {
		return nil, coach.CalorieEstimate{}, err
	}
	est, err := s.app.Coach.EstimateCalories(ctx, input.Meal)
	if err != nil {
		return nil, coach.CalorieEstimate{}, err
	}
	return nil, *est, nil
}

func (s *Server) handleSuggestRecipe(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, coach.Recipe, error) {
	if err := s.app.RequireAuth(); err != nil {
		return nil, coach.Recipe{}, err
	}
	r, err := s.app.Coach.SuggestRecipe(ctx)
	if err != nil {
		return nil, coach.Recipe{}, err
	}
	return nil, *r, nil
}

func (s *Server) parseDateOrToday(raw string) (models.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return models.DateOf(s.app.Now()), nil
	}
	return models.ParseDate(strings.TrimSpace(raw))
}
