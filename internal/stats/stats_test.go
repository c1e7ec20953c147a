// ABOUTME: Tests for workout statistics folds.
// ABOUTME: Covers conservation of volume, week anchoring, windows and streaks.
package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/harperreed/fittrack/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func day(s string) time.Time {
	t, err := time.ParseInLocation(models.DateLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t.Add(15 * time.Hour)
}

func workout(date models.Date, exercises ...models.WorkoutExercise) *models.Workout {
	return &models.Workout{ID: models.NewID(models.WorkoutIDPrefix), Date: date, Name: "w", Exercises: exercises}
}

func exercise(name string, sets ...[2]float64) models.WorkoutExercise {
	ex := models.WorkoutExercise{Name: name}
	for _, s := range sets {
		ex.Sets = append(ex.Sets, models.SetDetail{Weight: s[0], Reps: int(s[1])})
	}
	return ex
}

func samples() []*models.Workout {
	ws := models.SampleWorkouts()
	out := make([]*models.Workout, len(ws))
	for i := range ws {
		out[i] = &ws[i]
	}
	return out
}

func TestEmptyInputs(t *testing.T) {
	now := day("2024-03-06")
	assert.Empty(t, ExerciseSeries(nil, "스쿼트"))
	assert.Empty(t, WeeklyVolume(nil))
	assert.Empty(t, WeeklyFrequency(nil))
	assert.Empty(t, ActivityCalendar(nil, 90, now))
	assert.Equal(t, 0, CurrentStreak(nil, now))
	assert.Equal(t, 0, WorkoutsThisWeek(nil, now))
	assert.Equal(t, 0.0, TotalVolume(nil))
}

func TestExerciseSeriesSingleWorkout(t *testing.T) {
	ws := []*models.Workout{
		workout("2024-03-06", exercise("스쿼트", [2]float64{80, 10}, [2]float64{85, 8})),
	}

	got := ExerciseSeries(ws, "스쿼트")
	require.Len(t, got, 1)
	assert.Equal(t, ExercisePoint{Date: "2024-03-06", Volume: 1480, MaxWeight: 85}, got[0])
}

func TestExerciseSeriesOrderingAndSkips(t *testing.T) {
	got := ExerciseSeries(samples(), "스쿼트")

	dates := make([]models.Date, len(got))
	for i, p := range got {
		dates[i] = p.Date
	}
	assert.Equal(t, []models.Date{"2023-09-28", "2023-10-05", "2023-10-15", "2023-10-22"}, dates)
	assert.Equal(t, 80.0*10+85*8+85*8, got[3].Volume)
	assert.Equal(t, 85.0, got[3].MaxWeight)

	assert.Empty(t, ExerciseSeries(samples(), "스쿼트 "), "match is exact")
}

func TestExerciseSeriesNoSets(t *testing.T) {
	got := ExerciseSeries([]*models.Workout{workout("2024-03-06", exercise("plank"))}, "plank")
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].MaxWeight)
	assert.Equal(t, 0.0, got[0].Volume)
}

func TestWeeklyVolumeConservation(t *testing.T) {
	ws := samples()
	var total float64
	for _, v := range WeeklyVolume(ws) {
		total += v.Volume
	}

	var want float64
	for _, w := range ws {
		for _, ex := range w.Exercises {
			for _, s := range ex.Sets {
				want += s.Weight * float64(s.Reps)
			}
		}
	}
	assert.InDelta(t, want, total, 1e-9)
	assert.InDelta(t, want, TotalVolume(ws), 1e-9)
}

func TestWeeklyVolumeAnchorsOnMonday(t *testing.T) {
	ws := []*models.Workout{
		workout("2024-03-04", exercise("a", [2]float64{10, 1})), // Monday
		workout("2024-03-10", exercise("a", [2]float64{20, 1})), // Sunday, same week
		workout("2024-03-11", exercise("a", [2]float64{40, 1})), // next Monday
		workout("not-a-date", exercise("a", [2]float64{1000, 1})),
	}

	got := WeeklyVolume(ws)
	assert.Equal(t, []WeekVolume{
		{WeekStart: "2024-03-04", Volume: 30},
		{WeekStart: "2024-03-11", Volume: 40},
	}, got)
}

func TestWeeklyFrequencyKeepsLastTwelve(t *testing.T) {
	var ws []*models.Workout
	start := day("2024-01-01") // Monday
	for week := 0; week < 15; week++ {
		d := models.DateOf(start.AddDate(0, 0, 7*week))
		ws = append(ws, workout(d), workout(d.AddDays(2)))
	}

	got := WeeklyFrequency(ws)
	require.Len(t, got, FrequencyWeeks)
	assert.Equal(t, models.Date("2024-01-22"), got[0].WeekStart)
	for _, wc := range got {
		assert.Equal(t, 2, wc.Count)
	}
}

func TestActivityCalendarSingleDay(t *testing.T) {
	today := day("2024-03-31")
	ws := []*models.Workout{workout(models.DateOf(today.AddDate(0, 0, -5)))}

	got := ActivityCalendar(ws, 90, today)
	require.Len(t, got, 90)

	activeCount := 0
	for _, d := range got {
		if d.Active {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
	assert.True(t, got[84].Active)
	assert.Equal(t, models.Date("2024-03-31"), got[89].Date)
	assert.Equal(t, models.Date("2024-01-02"), got[0].Date)
}

func TestActivityCalendarNonPositiveWindow(t *testing.T) {
	ws := []*models.Workout{workout("2024-03-31")}
	assert.Nil(t, ActivityCalendar(ws, 0, day("2024-03-31")))
}

func TestCurrentStreak(t *testing.T) {
	ws := []*models.Workout{
		workout("2024-03-04"),
		workout("2024-03-05"),
		workout("2024-03-06"),
		workout("2024-03-01"),
	}

	assert.Equal(t, 3, CurrentStreak(ws, day("2024-03-06")))
	assert.Equal(t, 3, CurrentStreak(ws, day("2024-03-07")), "streak survives until the day ends")
	assert.Equal(t, 0, CurrentStreak(ws, day("2024-03-08")))
}

func TestWorkoutsThisWeek(t *testing.T) {
	ws := []*models.Workout{
		workout("2024-03-04"),
		workout("2024-03-10"),
		workout("2024-03-11"),
		workout("2024-03-03"),
	}
	assert.Equal(t, 2, WorkoutsThisWeek(ws, day("2024-03-07")))
}
