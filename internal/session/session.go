// ABOUTME: Session/identity manager for the single local FitTrack account.
// ABOUTME: Owns the user record, the PIN hash, and the persisted session flag.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/storage"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUserExists       = errors.New("a user already exists on this device")
	ErrNoUser           = errors.New("no user registered")
	ErrNotAuthenticated = errors.New("not signed in")
	ErrWrongPIN         = errors.New("PIN does not match")
)

// State is the outcome of Initialize.
type State int

const (
	StateNoUser State = iota
	StateSignedOut
	StateSignedIn
)

func (s State) String() string {
	switch s {
	case StateNoUser:
		return "no user"
	case StateSignedOut:
		return "signed out"
	case StateSignedIn:
		return "signed in"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// sessionValue is the marker written under the session key.
var sessionValue = []byte("true")

// record is the persisted user blob: the profile plus the PIN hash.
type record struct {
	models.User
	PIN string `json:"pin"`
}

// Manager owns the account state. It is safe for concurrent use.
type Manager struct {
	store storage.BlobStore
	now   func() models.Date
	cost  int

	mu     sync.RWMutex
	user   *models.User
	authed bool
}

// NewManager creates a manager over store. Call Initialize before use.
func NewManager(store storage.BlobStore) *Manager {
	return &Manager{store: store, now: models.Today, cost: bcrypt.DefaultCost}
}

// WithClock replaces the source of "today" used for new weight history points.
func (m *Manager) WithClock(now func() models.Date) *Manager {
	m.now = now
	return m
}

// WithHashCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func (m *Manager) WithHashCost(cost int) *Manager {
	m.cost = cost
	return m
}

// Initialize loads the persisted account. A record that cannot be decoded is
// removed along with the session flag and reported as StateNoUser.
func (m *Manager) Initialize() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user, m.authed = nil, false

	rec, err := m.loadRecord()
	if errors.Is(err, storage.ErrNotFound) {
		// A session flag without an account is stale.
		if derr := m.store.Delete(storage.KeySession); derr != nil {
			return StateNoUser, fmt.Errorf("clear session: %w", derr)
		}
		return StateNoUser, nil
	}
	if errors.Is(err, errCorrupt) {
		logrus.WithError(err).Warn("discarding unreadable user record")
		if derr := m.store.Delete(storage.KeyUser); derr != nil {
			return StateNoUser, fmt.Errorf("clear corrupt user: %w", derr)
		}
		if derr := m.store.Delete(storage.KeySession); derr != nil {
			return StateNoUser, fmt.Errorf("clear session: %w", derr)
		}
		return StateNoUser, nil
	}
	if err != nil {
		return StateNoUser, err
	}

	m.user = rec.User.Clone()

	if _, err := m.store.Get(storage.KeySession); err == nil {
		m.authed = true
		return StateSignedIn, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return StateSignedOut, fmt.Errorf("read session: %w", err)
	}
	return StateSignedOut, nil
}

// Login checks pin against the stored hash and marks the session signed in.
// It returns false, nil when no user exists or the PIN does not match.
func (m *Manager) Login(pin string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.loadRecord()
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, errCorrupt) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.PIN), []byte(pin)) != nil {
		logrus.Info("login rejected")
		return false, nil
	}

	if err := m.store.Set(storage.KeySession, sessionValue); err != nil {
		return false, fmt.Errorf("persist session: %w", err)
	}
	m.user = rec.User.Clone()
	m.authed = true
	logrus.WithField("user", rec.Name).Info("signed in")
	return true, nil
}

// Signup creates the account and signs it in. Only one account may exist.
func (m *Manager) Signup(profile models.Profile, pin string) (*models.User, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !ValidPIN(pin) {
		return nil, fmt.Errorf("%w: PIN must be exactly 4 digits", ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.store.Get(storage.KeyUser)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), m.cost)
	if err != nil {
		return nil, fmt.Errorf("hash PIN: %w", err)
	}

	user := models.NewUser(profile, m.now())
	if err := m.saveRecord(&record{User: *user, PIN: string(hash)}); err != nil {
		return nil, err
	}
	if err := m.store.Set(storage.KeySession, sessionValue); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	m.user = user
	m.authed = true
	logrus.WithField("user", user.Name).Info("account created")
	return user.Clone(), nil
}

// Logout clears the session flag. The account and its history remain.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(storage.KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.authed = false
	return nil
}

// UpdateUser merges the non-nil fields of patch into the stored profile.
func (m *Manager) UpdateUser(patch models.UserPatch) (*models.User, error) {
	return m.updateRecord(func(*models.User) (models.UserPatch, error) {
		return patch, nil
	})
}

// RecordMetric stores a dated body measurement on the profile.
func (m *Manager) RecordMetric(metric *models.Metric) (*models.User, error) {
	return m.updateRecord(func(u *models.User) (models.UserPatch, error) {
		patch, err := metric.Patch(u)
		if err != nil {
			return models.UserPatch{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return patch, nil
	})
}

// updateRecord builds a patch from the stored profile and saves it, all
// under the write lock.
func (m *Manager) updateRecord(build func(u *models.User) (models.UserPatch, error)) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.loadRecord()
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, errCorrupt) {
		return nil, ErrNoUser
	}
	if err != nil {
		return nil, err
	}

	patch, err := build(&rec.User)
	if err != nil {
		return nil, err
	}
	patch.Apply(&rec.User)
	if err := m.saveRecord(rec); err != nil {
		return nil, err
	}
	m.user = rec.User.Clone()
	return rec.User.Clone(), nil
}

// ChangePIN replaces the PIN after verifying the old one.
func (m *Manager) ChangePIN(oldPIN, newPIN string) error {
	if !ValidPIN(newPIN) {
		return fmt.Errorf("%w: PIN must be exactly 4 digits", ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.loadRecord()
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, errCorrupt) {
		return ErrNoUser
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PIN), []byte(oldPIN)) != nil {
		return ErrWrongPIN
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPIN), m.cost)
	if err != nil {
		return fmt.Errorf("hash PIN: %w", err)
	}
	rec.PIN = string(hash)
	return m.saveRecord(rec)
}

// User returns a copy of the signed-in user's profile, or nil when no
// account is loaded.
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Clone()
}

// IsAuthenticated reports whether the session is signed in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authed && m.user != nil
}

// RequireAuth returns ErrNotAuthenticated unless the persisted session is
// signed in. The flag is re-read so a logout from another process takes
// effect in a long-running server.
func (m *Manager) RequireAuth() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return ErrNotAuthenticated
	}
	_, err := m.store.Get(storage.KeySession)
	if errors.Is(err, storage.ErrNotFound) {
		m.authed = false
		return ErrNotAuthenticated
	}
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	m.authed = true
	return nil
}

// ValidPIN reports whether pin is exactly four ASCII digits.
func ValidPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

var errCorrupt = errors.New("corrupt user record")

func (m *Manager) loadRecord() (*record, error) {
	data, err := m.store.Get(storage.KeyUser)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("read user: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	if rec.PIN == "" {
		return nil, fmt.Errorf("%w: missing PIN", errCorrupt)
	}
	return &rec, nil
}

func (m *Manager) saveRecord(rec *record) error {
	if err := storage.SetJSON(m.store, storage.KeyUser, rec); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}
