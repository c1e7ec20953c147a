// ABOUTME: AI coach client for routines, calorie estimates, recipes and chat.
// ABOUTME: Talks to any OpenAI-compatible endpoint with strict JSON schema output.
package coach

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/sirupsen/logrus"
)

// Feature identifies an independent coach capability. Each feature allows
// one request in flight at a time.
type Feature string

const (
	FeatureRoutines Feature = "routines"
	FeatureCalories Feature = "calories"
	FeatureRecipe   Feature = "recipe"
	FeatureChat     Feature = "chat"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrBusy          = errors.New("a request for this feature is already in progress")
	ErrUnavailable   = errors.New("AI coach request failed")
	ErrNotConfigured = errors.New("no AI API key or base URL configured")
)

// userMessages are shown to the user when a feature fails.
var userMessages = map[Feature]string{
	FeatureRoutines: "AI로부터 추천 루틴을 받는 데 실패했습니다. 다시 시도해 주세요.",
	FeatureCalories: "칼로리 계산에 실패했습니다. 입력값을 확인하고 다시 시도해 주세요.",
	FeatureRecipe:   "레시피를 생성하는 데 실패했습니다. 잠시 후 다시 시도해주세요.",
	FeatureChat:     "메시지를 보내는 데 실패했습니다. 잠시 후 다시 시도해주세요.",
}

// FeatureError is the single failure outcome of a coach request. Message is
// safe to show to the user; Err holds the underlying cause.
type FeatureError struct {
	Feature Feature
	Message string
	Err     error
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Err)
}

// Unwrap exposes both ErrUnavailable and the cause to errors.Is.
func (e *FeatureError) Unwrap() []error {
	return []error{ErrUnavailable, e.Err}
}

func newFeatureError(f Feature, err error) *FeatureError {
	return &FeatureError{Feature: f, Message: userMessages[f], Err: err}
}

// Options configures the coach client.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// Client issues coach requests. It is safe for concurrent use.
type Client struct {
	api        openai.Client
	model      string
	configured bool

	mu   sync.Mutex
	busy map[Feature]bool
}

// New creates a client. Retries are disabled: the first failure is final.
func New(opts Options) *Client {
	reqOpts := []option.RequestOption{option.WithMaxRetries(0)}
	if opts.APIKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	return &Client{
		api:        openai.NewClient(reqOpts...),
		model:      opts.Model,
		configured: opts.APIKey != "" || opts.BaseURL != "",
		busy:       make(map[Feature]bool),
	}
}

// acquire marks f busy, failing if a request for f is already running.
func (c *Client) acquire(f Feature) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy[f] {
		return fmt.Errorf("%s: %w", f, ErrBusy)
	}
	c.busy[f] = true
	return nil
}

func (c *Client) release(f Feature) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.busy, f)
}

// Busy reports whether a request for f is in flight.
func (c *Client) Busy(f Feature) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy[f]
}

// complete sends messages and returns the first choice's text.
func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, format *openai.ResponseFormatJSONSchemaParam) (string, error) {
	if !c.configured {
		return "", ErrNotConfigured
	}

	params := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	}
	if format != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{OfJSONSchema: format}
	}

	chat, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("response has no choices")
	}
	content := strings.TrimSpace(chat.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty response")
	}
	return content, nil
}

func jsonFormat(name, description string, schema *jsonschema.Schema) *openai.ResponseFormatJSONSchemaParam {
	return &openai.ResponseFormatJSONSchemaParam{
		JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
			Name:        name,
			Description: openai.String(description),
			Schema:      schema,
			Strict:      openai.Bool(true),
		},
	}
}

// structured runs a single-prompt request for feature f and decodes the
// reply into T. Every failure becomes a *FeatureError.
func structured[T any](ctx context.Context, c *Client, f Feature, prompt, name, description string, schema *jsonschema.Schema) (*T, error) {
	if err := c.acquire(f); err != nil {
		return nil, err
	}
	defer c.release(f)

	log := logrus.WithField("feature", f)
	log.Debug("requesting completion")

	content, err := c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	}, jsonFormat(name, description, schema))
	if err != nil {
		log.WithError(err).Warn("coach request failed")
		return nil, newFeatureError(f, err)
	}

	out, err := decodeStrict[T](content, schema)
	if err != nil {
		log.WithError(err).Warn("coach reply rejected")
		return nil, newFeatureError(f, err)
	}
	return out, nil
}

// RecommendRoutines asks for a weekly plan. Whatever number of routines the
// model returns is passed through, including none.
func (c *Client) RecommendRoutines(ctx context.Context, level, goal string, daysPerWeek int) ([]Routine, error) {
	if strings.TrimSpace(level) == "" || strings.TrimSpace(goal) == "" {
		return nil, fmt.Errorf("%w: fitness level and goal are required", ErrInvalidInput)
	}
	if daysPerWeek < 1 || daysPerWeek > 7 {
		return nil, fmt.Errorf("%w: days per week must be between 1 and 7", ErrInvalidInput)
	}

	plan, err := structured[RoutinePlan](ctx, c, FeatureRoutines,
		routinesPrompt(level, goal, daysPerWeek),
		"routine_plan", "Weekly workout plan, one routine per workout day", RoutinePlanSchema)
	if err != nil {
		return nil, err
	}
	return plan.Routines, nil
}

// EstimateCalories estimates the calories of a free-text meal description.
func (c *Client) EstimateCalories(ctx context.Context, meal string) (*CalorieEstimate, error) {
	if strings.TrimSpace(meal) == "" {
		return nil, fmt.Errorf("%w: meal description is required", ErrInvalidInput)
	}
	return structured[CalorieEstimate](ctx, c, FeatureCalories,
		caloriesPrompt(meal),
		"calorie_estimate", "Calorie breakdown of a meal", CalorieEstimateSchema)
}

// SuggestRecipe returns a fresh low-calorie recipe on every call.
func (c *Client) SuggestRecipe(ctx context.Context) (*Recipe, error) {
	return structured[Recipe](ctx, c, FeatureRecipe,
		recipePrompt,
		"low_calorie_recipe", "A simple low-calorie recipe", RecipeSchema)
}
