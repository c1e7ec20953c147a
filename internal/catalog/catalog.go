// ABOUTME: Exercise catalog offered when logging workouts, grouped by body part.
// ABOUTME: Built-in entries ship with the binary; user-added ones are persisted.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/harperreed/fittrack/internal/storage"
)

// CustomCategory holds every exercise the user adds.
const CustomCategory = "사용자 정의"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("exercise already exists")
)

// Entry is one selectable exercise.
type Entry struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Custom   bool   `json:"custom"`
}

// Category is a named group of entries in display order.
type Category struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

var builtins = []struct {
	category string
	names    []string
}{
	{"가슴", []string{"벤치프레스", "인클라인 벤치프레스", "덤벨 플라이", "딥스", "케이블 크로스오버", "푸시업"}},
	{"등", []string{"데드리프트", "풀업", "랫 풀다운", "바벨 로우", "시티드 로우"}},
	{"하체", []string{"스쿼트", "레그 프레스", "런지", "레그 익스텐션", "레그 컬"}},
	{"어깨", []string{"오버헤드 프레스", "사이드 레터럴 레이즈", "페이스 풀", "프론트 레이즈"}},
	{"팔", []string{"바벨 컬", "해머 컬", "트라이셉스 푸시다운", "라잉 트라이셉스 익스텐션"}},
	{"코어", []string{"플랭크", "크런치", "레그 레이즈", "러시안 트위스트"}},
	{"유산소", []string{"달리기", "사이클", "로잉 머신", "줄넘기"}},
}

// stored is the persisted shape: only the user's additions, in insertion order.
type stored struct {
	Custom []string `json:"custom"`
}

// Catalog is safe for concurrent use.
type Catalog struct {
	blobs storage.BlobStore

	mu     sync.RWMutex
	custom []string
}

// Open loads user additions from blobs. An unreadable blob is discarded and
// the catalog falls back to the built-in entries. Blank names and names that
// repeat an earlier entry, ignoring case, are dropped.
func Open(blobs storage.BlobStore) (*Catalog, error) {
	c := &Catalog{blobs: blobs}

	data, err := blobs.Get(storage.KeyCatalog)
	if errors.Is(err, storage.ErrNotFound) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var s stored
	if err := json.Unmarshal(data, &s); err != nil {
		logrus.WithError(err).Warn("discarding unreadable exercise catalog")
		if derr := blobs.Delete(storage.KeyCatalog); derr != nil {
			return nil, fmt.Errorf("clear catalog: %w", derr)
		}
		return c, nil
	}
	for _, name := range s.Custom {
		name = strings.TrimSpace(name)
		if name == "" || c.containsLocked(name) {
			logrus.WithField("exercise", name).Warn("skipping blank or duplicate custom exercise")
			continue
		}
		c.custom = append(c.custom, name)
	}
	return c, nil
}

// Categories returns every category in display order. The custom category
// appears last and only once something has been added.
func (c *Catalog) Categories() []Category {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Category, 0, len(builtins)+1)
	for _, b := range builtins {
		cat := Category{Name: b.category, Entries: make([]Entry, 0, len(b.names))}
		for _, n := range b.names {
			cat.Entries = append(cat.Entries, Entry{Name: n, Category: b.category})
		}
		out = append(out, cat)
	}
	if len(c.custom) > 0 {
		cat := Category{Name: CustomCategory, Entries: make([]Entry, 0, len(c.custom))}
		for _, n := range c.custom {
			cat.Entries = append(cat.Entries, Entry{Name: n, Category: CustomCategory, Custom: true})
		}
		out = append(out, cat)
	}
	return out
}

// Entries returns every entry, flattened in category order.
func (c *Catalog) Entries() []Entry {
	var out []Entry
	for _, cat := range c.Categories() {
		out = append(out, cat.Entries...)
	}
	return out
}

// Contains reports whether name matches an entry, ignoring case.
func (c *Catalog) Contains(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.containsLocked(strings.TrimSpace(name))
}

func (c *Catalog) containsLocked(name string) bool {
	for _, b := range builtins {
		for _, n := range b.names {
			if strings.EqualFold(n, name) {
				return true
			}
		}
	}
	for _, n := range c.custom {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// AddCustom adds name to the custom category and persists it.
func (c *Catalog) AddCustom(name string) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, fmt.Errorf("%w: exercise name is required", ErrInvalidInput)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.containsLocked(name) {
		return Entry{}, fmt.Errorf("%w: %s", ErrDuplicate, name)
	}

	next := append(append([]string{}, c.custom...), name)
	if err := storage.SetJSON(c.blobs, storage.KeyCatalog, stored{Custom: next}); err != nil {
		return Entry{}, fmt.Errorf("persist catalog: %w", err)
	}
	c.custom = next

	logrus.WithField("exercise", name).Debug("custom exercise added")
	return Entry{Name: name, Category: CustomCategory, Custom: true}, nil
}
