// ABOUTME: Application state shared by the CLI and the MCP server.
// ABOUTME: Opens storage and builds every service over it from one config.
package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/harperreed/fittrack/internal/catalog"
	"github.com/harperreed/fittrack/internal/coach"
	"github.com/harperreed/fittrack/internal/config"
	"github.com/harperreed/fittrack/internal/logging"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/quiz"
	"github.com/harperreed/fittrack/internal/session"
	"github.com/harperreed/fittrack/internal/stats"
	"github.com/harperreed/fittrack/internal/storage"
	"github.com/harperreed/fittrack/internal/workouts"
)

// App holds one opened data directory and the services built on it.
type App struct {
	Config   *config.Config
	Store    storage.BlobStore
	Session  *session.Manager
	Workouts *workouts.Store
	Catalog  *catalog.Catalog
	Quiz     *quiz.Log
	Coach    *coach.Client

	// Now is the clock used for day-based features.
	Now func() time.Time

	state  session.State
	logger io.Closer
}

// Open builds an App from cfg. The caller must Close it.
func Open(cfg *config.Config) (*App, error) {
	logger := logging.Setup(logging.SetupParams{
		LogFileName: cfg.GetLogFile(),
		LogLevel:    cfg.GetLogLevel(),
	})

	store, err := cfg.OpenStorage()
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	a, err := New(cfg, store)
	if err != nil {
		_ = store.Close()
		_ = logger.Close()
		return nil, err
	}
	a.logger = logger
	return a, nil
}

// New builds an App over an already opened store. Close releases the store.
func New(cfg *config.Config, store storage.BlobStore) (*App, error) {
	sess := session.NewManager(store)
	state, err := sess.Initialize()
	if err != nil {
		return nil, fmt.Errorf("initialize session: %w", err)
	}

	ws, err := workouts.Open(store, cfg.ShouldSeedSampleData())
	if err != nil {
		return nil, fmt.Errorf("open workouts: %w", err)
	}

	cat, err := catalog.Open(store)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	q, err := quiz.Open(store)
	if err != nil {
		return nil, fmt.Errorf("open quiz: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"backend": cfg.GetBackend(),
		"state":   state.String(),
	}).Debug("fittrack opened")

	return &App{
		Config:   cfg,
		Store:    store,
		Session:  sess,
		Workouts: ws,
		Catalog:  cat,
		Quiz:     q,
		Coach: coach.New(coach.Options{
			APIKey:  cfg.AIAPIKey,
			BaseURL: cfg.AIBaseURL,
			Model:   cfg.GetAIModel(),
		}),
		Now:   time.Now,
		state: state,
	}, nil
}

// InitialState reports what Open found: no user, signed out or signed in.
func (a *App) InitialState() session.State {
	return a.state
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.logger != nil {
		errs = append(errs, a.logger.Close())
	}
	return errors.Join(errs...)
}

// RequireAuth returns session.ErrNotAuthenticated unless signed in.
func (a *App) RequireAuth() error {
	return a.Session.RequireAuth()
}

// Summary is the dashboard view of the signed-in user.
type Summary struct {
	User             *models.User `json:"user"`
	WorkoutCount     int          `json:"workoutCount"`
	WorkoutsThisWeek int          `json:"workoutsThisWeek"`
	CurrentStreak    int          `json:"currentStreak"`
	TotalVolume      float64      `json:"totalVolume"`
	LastWorkout      *models.Date `json:"lastWorkout,omitempty"`
}

// Summary computes dashboard figures from the workout log.
func (a *App) Summary() (*Summary, error) {
	if err := a.RequireAuth(); err != nil {
		return nil, err
	}
	now := a.Now()
	list := a.Workouts.List()
	workouts.SortByDateDesc(list)

	s := &Summary{
		User:             a.Session.User(),
		WorkoutCount:     len(list),
		WorkoutsThisWeek: stats.WorkoutsThisWeek(list, now),
		CurrentStreak:    stats.CurrentStreak(list, now),
		TotalVolume:      stats.TotalVolume(list),
	}
	if len(list) > 0 {
		last := list[0].Date
		s.LastWorkout = &last
	}
	return s, nil
}

// SyncStreak stores the current streak on the profile so it survives
// outside the workout log.
func (a *App) SyncStreak() error {
	user := a.Session.User()
	if user == nil {
		return session.ErrNoUser
	}
	streak := stats.CurrentStreak(a.Workouts.List(), a.Now())
	if user.WorkoutStreak == streak {
		return nil
	}
	_, err := a.Session.UpdateUser(models.UserPatch{WorkoutStreak: &streak})
	return err
}

// ImportSummary counts what Import stored.
type ImportSummary struct {
	Workouts    int
	QuizAnswers int
}

// Import loads workouts and quiz answers from a JSON export. The account in
// the export is ignored because exports never carry the PIN.
func (a *App) Import(raw []byte) (*ImportSummary, error) {
	if err := a.RequireAuth(); err != nil {
		return nil, err
	}
	data, err := storage.ParseImport(raw)
	if err != nil {
		return nil, err
	}

	var sum ImportSummary
	if sum.Workouts, err = a.Workouts.Import(data.Workouts); err != nil {
		return &sum, err
	}
	if sum.QuizAnswers, err = a.Quiz.Import(data.QuizAnswers); err != nil {
		return &sum, err
	}
	return &sum, nil
}
