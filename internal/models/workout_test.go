// ABOUTME: Tests for Workout, WorkoutExercise, SetDetail and Date models.
// ABOUTME: Validates constructors, builders, volume math and deep copies.
package models

import (
	"strings"
	"testing"
)

func TestNewWorkout(t *testing.T) {
	w := NewWorkout("하체 운동", "2024-03-04")

	if !strings.HasPrefix(w.ID, WorkoutIDPrefix) || len(w.ID) <= 1 {
		t.Errorf("ID = %q, want %q prefix", w.ID, WorkoutIDPrefix)
	}
	if w.Date != "2024-03-04" {
		t.Errorf("Date = %s, want 2024-03-04", w.Date)
	}
	if w.Exercises == nil {
		t.Error("expected Exercises to be initialized")
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID(SetIDPrefix)
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestNewWorkoutExercise(t *testing.T) {
	ex := NewWorkoutExercise("스쿼트")

	if len(ex.Sets) != 1 {
		t.Fatalf("len(Sets) = %d, want 1", len(ex.Sets))
	}
	if ex.Sets[0].Weight != 0 || ex.Sets[0].Reps != 0 {
		t.Error("expected zero-valued set")
	}
	if !strings.HasPrefix(ex.Sets[0].ID, SetIDPrefix) {
		t.Errorf("set ID = %q, want %q prefix", ex.Sets[0].ID, SetIDPrefix)
	}
}

func TestWorkoutVolumeAndMaxWeight(t *testing.T) {
	w := NewWorkout("leg day", "2024-03-04").
		WithExercise("스쿼트", SetDetail{Weight: 80, Reps: 10}, SetDetail{Weight: 85, Reps: 8})

	ex := w.FindExerciseByName("스쿼트")
	if ex == nil {
		t.Fatal("expected exercise to be found")
	}
	if got := ex.Volume(); got != 1480 {
		t.Errorf("Volume = %f, want 1480", got)
	}
	if got := ex.MaxWeight(); got != 85 {
		t.Errorf("MaxWeight = %f, want 85", got)
	}
	if got := w.Volume(); got != 1480 {
		t.Errorf("workout Volume = %f, want 1480", got)
	}
	for _, s := range ex.Sets {
		if s.ID == "" {
			t.Error("expected builder to assign set IDs")
		}
	}
}

func TestMaxWeightNoSets(t *testing.T) {
	ex := WorkoutExercise{Name: "empty"}
	if got := ex.MaxWeight(); got != 0 {
		t.Errorf("MaxWeight = %f, want 0", got)
	}
}

func TestWorkoutClone(t *testing.T) {
	w := NewWorkout("push", "2024-03-04").WithExercise("벤치프레스", SetDetail{Weight: 60, Reps: 10})
	c := w.Clone()

	c.Name = "changed"
	c.Exercises[0].Sets[0].Weight = 100

	if w.Name != "push" {
		t.Error("clone shares name with original")
	}
	if w.Exercises[0].Sets[0].Weight != 60 {
		t.Error("clone shares sets with original")
	}
}

func TestHasName(t *testing.T) {
	if NewWorkout("   ", "2024-03-04").HasName() {
		t.Error("expected blank name to be rejected")
	}
	if !NewWorkout("x", "2024-03-04").HasName() {
		t.Error("expected name to be accepted")
	}
}

func TestDateWeekStart(t *testing.T) {
	tests := []struct {
		date Date
		want Date
	}{
		{"2024-03-04", "2024-03-04"}, // Monday
		{"2024-03-06", "2024-03-04"},
		{"2024-03-10", "2024-03-04"}, // Sunday belongs to the prior Monday
		{"2024-03-11", "2024-03-11"},
	}

	for _, tt := range tests {
		t.Run(string(tt.date), func(t *testing.T) {
			got, err := tt.date.WeekStart()
			if err != nil {
				t.Fatalf("WeekStart failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("WeekStart(%s) = %s, want %s", tt.date, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-02-30"); err == nil {
		t.Error("expected error for impossible date")
	}
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.AddDays(1) != "2024-03-01" {
		t.Errorf("AddDays(1) = %s, want 2024-03-01", d.AddDays(1))
	}
	if d.MonthDay() != "02-29" {
		t.Errorf("MonthDay = %s, want 02-29", d.MonthDay())
	}
}

func TestSampleWorkoutsFresh(t *testing.T) {
	a := SampleWorkouts()
	b := SampleWorkouts()
	a[0].Name = "changed"

	if b[0].Name == "changed" {
		t.Error("expected each call to return a fresh copy")
	}
	if len(a) != 10 {
		t.Errorf("len(SampleWorkouts) = %d, want 10", len(a))
	}
}
