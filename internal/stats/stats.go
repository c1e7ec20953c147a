// ABOUTME: Pure statistics over workout snapshots for progress charts.
// ABOUTME: Exercise series, weekly volume and frequency, activity calendar, streaks.
package stats

import (
	"sort"
	"time"

	"github.com/harperreed/fittrack/internal/models"
)

// ExercisePoint is one workout's totals for a single exercise.
type ExercisePoint struct {
	Date      models.Date `json:"date"`
	Volume    float64     `json:"volume"`
	MaxWeight float64     `json:"maxWeight"`
}

// WeekVolume is the summed volume of one Monday-anchored week.
type WeekVolume struct {
	WeekStart models.Date `json:"weekStart"`
	Volume    float64     `json:"volume"`
}

// WeekCount is the number of workouts in one Monday-anchored week.
type WeekCount struct {
	WeekStart models.Date `json:"weekStart"`
	Count     int         `json:"count"`
}

// CalendarDay reports whether any workout was logged on a day.
type CalendarDay struct {
	Date   models.Date `json:"date"`
	Active bool        `json:"active"`
}

// FrequencyWeeks is how many of the most recent weeks WeeklyFrequency keeps.
const FrequencyWeeks = 12

// ExerciseSeries returns one point per workout containing an exercise named
// exactly name, oldest first. Workouts with unparseable dates are skipped.
// A workout that repeats the exercise gets a
// single point covering every matching entry.
func ExerciseSeries(workouts []*models.Workout, name string) []ExercisePoint {
	var points []ExercisePoint
	for _, w := range workouts {
		if !w.Date.Valid() {
			continue
		}
		found := false
		var p ExercisePoint
		for _, ex := range w.Exercises {
			if ex.Name != name {
				continue
			}
			found = true
			p.Volume += ex.Volume()
			if mw := ex.MaxWeight(); mw > p.MaxWeight {
				p.MaxWeight = mw
			}
		}
		if !found {
			continue
		}
		p.Date = w.Date
		points = append(points, p)
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// WeeklyVolume sums set volume per week, oldest week first. Workouts with
// unparseable dates are skipped.
func WeeklyVolume(workouts []*models.Workout) []WeekVolume {
	totals := make(map[models.Date]float64)
	for _, w := range workouts {
		week, err := w.Date.WeekStart()
		if err != nil {
			continue
		}
		totals[week] += w.Volume()
	}
	if len(totals) == 0 {
		return nil
	}

	out := make([]WeekVolume, 0, len(totals))
	for week, volume := range totals {
		out = append(out, WeekVolume{WeekStart: week, Volume: volume})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart < out[j].WeekStart })
	return out
}

// WeeklyFrequency counts workouts per week, keeping the most recent
// FrequencyWeeks weeks that have any, oldest first.
func WeeklyFrequency(workouts []*models.Workout) []WeekCount {
	counts := make(map[models.Date]int)
	for _, w := range workouts {
		week, err := w.Date.WeekStart()
		if err != nil {
			continue
		}
		counts[week]++
	}
	if len(counts) == 0 {
		return nil
	}

	out := make([]WeekCount, 0, len(counts))
	for week, n := range counts {
		out = append(out, WeekCount{WeekStart: week, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart < out[j].WeekStart })
	if len(out) > FrequencyWeeks {
		out = out[len(out)-FrequencyWeeks:]
	}
	return out
}

// ActivityCalendar reports activity for the windowDays days ending at today
// inclusive, oldest first. It returns nil for an empty log or a
// non-positive window.
func ActivityCalendar(workouts []*models.Workout, windowDays int, today time.Time) []CalendarDay {
	if len(workouts) == 0 || windowDays <= 0 {
		return nil
	}

	active := activeDays(workouts)
	end := midnight(today)
	out := make([]CalendarDay, windowDays)
	for i := 0; i < windowDays; i++ {
		d := models.DateOf(end.AddDate(0, 0, i-windowDays+1))
		out[i] = CalendarDay{Date: d, Active: active[d]}
	}
	return out
}

// CurrentStreak counts consecutive active days ending today, or ending
// yesterday when nothing has been logged yet today.
func CurrentStreak(workouts []*models.Workout, today time.Time) int {
	active := activeDays(workouts)
	day := midnight(today)
	if !active[models.DateOf(day)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for active[models.DateOf(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// WorkoutsThisWeek counts workouts in the Monday-anchored week containing today.
func WorkoutsThisWeek(workouts []*models.Workout, today time.Time) int {
	week, err := models.DateOf(midnight(today)).WeekStart()
	if err != nil {
		return 0
	}
	n := 0
	for _, w := range workouts {
		if ws, err := w.Date.WeekStart(); err == nil && ws == week {
			n++
		}
	}
	return n
}

// TotalVolume sums the volume of every set in every workout.
func TotalVolume(workouts []*models.Workout) float64 {
	var total float64
	for _, w := range workouts {
		total += w.Volume()
	}
	return total
}

func activeDays(workouts []*models.Workout) map[models.Date]bool {
	active := make(map[models.Date]bool, len(workouts))
	for _, w := range workouts {
		active[w.Date] = true
	}
	return active
}

// midnight truncates t to the start of its local calendar day.
func midnight(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
