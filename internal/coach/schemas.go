// ABOUTME: Structured response types for the coach features and their JSON schemas.
// ABOUTME: Replies are checked against the generated schema before they are used.
package coach

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// RoutineExercise is one prescribed exercise inside a routine.
type RoutineExercise struct {
	ExerciseKey        string `json:"exerciseKey" jsonschema_description:"A machine-readable key from this list: push_up, squat, plank, pull_up, lunge, bicep_curl, jumping_jack, running, deadlift, dumbbell_row, overhead_press, general_cardio, general_strength."`
	ExerciseName       string `json:"exerciseName" jsonschema_description:"The name of the exercise in Korean."`
	Description        string `json:"description" jsonschema_description:"A short description of how to perform the exercise, in Korean."`
	Sets               string `json:"sets" jsonschema_description:"The recommended number of sets (e.g., \"3\")."`
	Reps               string `json:"reps" jsonschema_description:"The recommended repetitions per set (e.g., \"10-12\" or \"30 seconds\")."`
	Rest               string `json:"rest" jsonschema_description:"The recommended rest time between sets (e.g., \"60초\")."`
	YoutubeSearchQuery string `json:"youtubeSearchQuery" jsonschema_description:"A Korean search query to find a video of this exercise on YouTube."`
}

// Routine is a single workout day.
type Routine struct {
	RoutineName string            `json:"routineName" jsonschema_description:"The name of the workout routine for a specific day."`
	Description string            `json:"description" jsonschema_description:"A brief description of this routine's focus."`
	Exercises   []RoutineExercise `json:"exercises" jsonschema_description:"5-7 exercises for the day."`
}

// RoutinePlan wraps the routines because structured output needs an object root.
type RoutinePlan struct {
	Routines []Routine `json:"routines" jsonschema_description:"One routine per workout day."`
}

// FoodCalories is the estimate for one identified food item.
type FoodCalories struct {
	Food     string  `json:"food" jsonschema_description:"The name of the identified food item."`
	Calories float64 `json:"calories" jsonschema_description:"The estimated calories for this specific food item."`
}

// CalorieEstimate is the breakdown of a described meal.
type CalorieEstimate struct {
	TotalCalories float64        `json:"totalCalories" jsonschema_description:"The total estimated calories for all food items."`
	Foods         []FoodCalories `json:"foods" jsonschema_description:"Per-food calorie breakdown."`
}

// Recipe is a single low-calorie recipe suggestion.
type Recipe struct {
	RecipeName       string   `json:"recipeName" jsonschema_description:"The name of the recipe."`
	Description      string   `json:"description" jsonschema_description:"A short, enticing description of the dish."`
	Ingredients      []string `json:"ingredients" jsonschema_description:"A list of ingredients."`
	Instructions     []string `json:"instructions" jsonschema_description:"Step-by-step cooking instructions."`
	ImageSearchQuery string   `json:"imageSearchQuery" jsonschema_description:"A simple query to find a photo of the dish (e.g., \"healthy chicken salad\")."`
}

func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

var (
	RoutinePlanSchema     = GenerateSchema[RoutinePlan]()
	CalorieEstimateSchema = GenerateSchema[CalorieEstimate]()
	RecipeSchema          = GenerateSchema[Recipe]()
)

// cleanJSON strips markdown code fences some compatible servers add.
func cleanJSON(s string) string {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// decodeStrict parses content and checks it against schema before filling out.
func decodeStrict[T any](content string, schema *jsonschema.Schema) (*T, error) {
	body := cleanJSON(content)
	if body == "" {
		return nil, fmt.Errorf("empty response")
	}

	var generic any
	if err := json.Unmarshal([]byte(body), &generic); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	if err := conforms(schema, generic, "$"); err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// conforms checks types and required properties of v against s.
func conforms(s *jsonschema.Schema, v any, path string) error {
	if s == nil {
		return nil
	}

	switch s.Type {
	case "object":
		obj, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected object", path)
		}
		for _, name := range s.Required {
			if _, ok := obj[name]; !ok {
				return fmt.Errorf("%s: missing required field %q", path, name)
			}
		}
		if s.Properties == nil {
			return nil
		}
		for name, val := range obj {
			prop, ok := s.Properties.Get(name)
			if !ok {
				continue
			}
			if err := conforms(prop, val, path+"."+name); err != nil {
				return err
			}
		}
	case "array":
		arr, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%s: expected array", path)
		}
		for i, item := range arr {
			if err := conforms(s.Items, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case "string":
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%s: expected string", path)
		}
	case "number", "integer":
		if _, ok := v.(float64); !ok {
			return fmt.Errorf("%s: expected number", path)
		}
	case "boolean":
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("%s: expected boolean", path)
		}
	}
	return nil
}
