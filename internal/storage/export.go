// ABOUTME: Export and import functionality for FitTrack data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/fittrack/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for FitTrack data.
// The stored PIN hash is never part of an export.
type ExportData struct {
	Version     string            `json:"version" yaml:"version"`
	ExportedAt  time.Time         `json:"exported_at" yaml:"exported_at"`
	Tool        string            `json:"tool" yaml:"tool"`
	User        *models.User      `json:"user,omitempty" yaml:"user,omitempty"`
	Workouts    []*models.Workout `json:"workouts" yaml:"workouts"`
	QuizAnswers map[int]string    `json:"quiz_answers,omitempty" yaml:"quiz_answers,omitempty"`
}

// GetAllData retrieves all data for export. Workouts come newest first;
// blobs that fail to decode are left out.
func GetAllData(s BlobStore) (*ExportData, error) {
	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "fittrack",
		Workouts:   []*models.Workout{},
	}

	// The stored record carries a pin field that models.User has no slot for.
	if user, err := GetJSON[models.User](s, KeyUser); err == nil {
		data.User = user
	}

	keys, err := s.Keys(WorkoutPrefix)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	for _, key := range keys {
		w, err := GetJSON[models.Workout](s, key)
		if err != nil {
			continue
		}
		data.Workouts = append(data.Workouts, w)
	}
	sort.SliceStable(data.Workouts, func(i, j int) bool {
		return data.Workouts[i].Date > data.Workouts[j].Date
	})

	answers, err := GetJSON[map[int]string](s, KeyQuizAnswers)
	if err == nil {
		data.QuizAnswers = *answers
	}

	return data, nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(s BlobStore) ([]byte, error) {
	data, err := GetAllData(s)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(s BlobStore) ([]byte, error) {
	data, err := GetAllData(s)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string        `yaml:"version"`
		ExportedAt string        `yaml:"exported_at"`
		Tool       string        `yaml:"tool"`
		Profile    *yamlProfile  `yaml:"profile,omitempty"`
		Workouts   []yamlWorkout `yaml:"workouts"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Workouts:   make([]yamlWorkout, 0, len(data.Workouts)),
	}

	if u := data.User; u != nil {
		yamlData.Profile = &yamlProfile{
			Name:       u.Name,
			Age:        u.Age,
			Weight:     u.Weight,
			Height:     u.Height,
			MuscleMass: u.MuscleMass,
			Streak:     u.WorkoutStreak,
		}
	}

	for _, w := range data.Workouts {
		yw := yamlWorkout{
			ID:   w.ID,
			Date: string(w.Date),
			Name: w.Name,
		}
		for _, ex := range w.Exercises {
			ye := yamlExercise{Name: ex.Name}
			for _, s := range ex.Sets {
				ye.Sets = append(ye.Sets, fmt.Sprintf("%gkg x %d", s.Weight, s.Reps))
			}
			yw.Exercises = append(yw.Exercises, ye)
		}
		yamlData.Workouts = append(yamlData.Workouts, yw)
	}

	return yaml.Marshal(yamlData)
}

type yamlProfile struct {
	Name       string  `yaml:"name"`
	Age        int     `yaml:"age"`
	Weight     float64 `yaml:"weight_kg"`
	Height     float64 `yaml:"height_cm"`
	MuscleMass float64 `yaml:"muscle_mass_kg,omitempty"`
	Streak     int     `yaml:"workout_streak"`
}

type yamlWorkout struct {
	ID        string         `yaml:"id"`
	Date      string         `yaml:"date"`
	Name      string         `yaml:"name"`
	Exercises []yamlExercise `yaml:"exercises,omitempty"`
}

type yamlExercise struct {
	Name string   `yaml:"name"`
	Sets []string `yaml:"sets,omitempty"`
}

// ExportMarkdown exports workouts as Markdown, optionally only those on or after since.
func ExportMarkdown(s BlobStore, since *models.Date) (string, error) {
	data, err := GetAllData(s)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# FitTrack Export - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if u := data.User; u != nil {
		sb.WriteString("## Profile\n\n")
		sb.WriteString(fmt.Sprintf("- Name: %s\n", u.Name))
		sb.WriteString(fmt.Sprintf("- Weight: %.1f kg\n", u.Weight))
		sb.WriteString(fmt.Sprintf("- Height: %.1f cm\n\n", u.Height))
	}

	sb.WriteString("## Workouts\n\n")
	sb.WriteString("| Date | Name | Exercises | Volume |\n")
	sb.WriteString("|------|------|-----------|--------|\n")
	for _, w := range data.Workouts {
		if since != nil && w.Date < *since {
			continue
		}
		names := make([]string, 0, len(w.Exercises))
		for _, ex := range w.Exercises {
			names = append(names, ex.Name)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.0f kg |\n",
			w.Date, w.Name, strings.Join(names, ", "), w.Volume()))
	}

	return sb.String(), nil
}

// ParseImport decodes a JSON export produced by ExportJSON.
func ParseImport(raw []byte) (*ExportData, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return &data, nil
}
