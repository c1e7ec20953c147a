// ABOUTME: Daily O/X quiz with persisted answers and a review archive.
// ABOUTME: Each calendar day maps to one bank question by day of year.
package quiz

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/harperreed/fittrack/internal/storage"
)

// Choice is an O (true) or X (false) answer.
type Choice string

const (
	ChoiceO Choice = "O"
	ChoiceX Choice = "X"
)

// ParseChoice accepts o/O/x/X.
func ParseChoice(s string) (Choice, error) {
	switch Choice(strings.ToUpper(strings.TrimSpace(s))) {
	case ChoiceO:
		return ChoiceO, nil
	case ChoiceX:
		return ChoiceX, nil
	}
	return "", fmt.Errorf("%w: answer must be O or X", ErrInvalidInput)
}

var ErrInvalidInput = errors.New("invalid input")

// Question is one myth statement with its verdict.
type Question struct {
	Statement   string `json:"statement"`
	Answer      Choice `json:"answer"`
	Explanation string `json:"explanation"`
	Takeaway    string `json:"takeaway"`
}

// Result is an answered question as shown in the archive.
type Result struct {
	Index    int      `json:"index"`
	Question Question `json:"question"`
	Given    Choice   `json:"given"`
	Correct  bool     `json:"correct"`
}

// DailyIndex returns the bank position for t's local calendar day.
func DailyIndex(t time.Time) int {
	return t.YearDay() % len(Bank)
}

// Log records answers keyed by bank position. It is safe for concurrent use.
type Log struct {
	blobs storage.BlobStore

	mu      sync.Mutex
	answers map[int]Choice
}

// Open loads saved answers. Unreadable data is discarded.
func Open(blobs storage.BlobStore) (*Log, error) {
	l := &Log{blobs: blobs, answers: make(map[int]Choice)}

	saved, err := storage.GetJSON[map[int]Choice](blobs, storage.KeyQuizAnswers)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return l, nil
	case errors.Is(err, storage.ErrCorrupt):
		logrus.WithError(err).Warn("discarding unreadable quiz answers")
		if derr := blobs.Delete(storage.KeyQuizAnswers); derr != nil {
			return nil, fmt.Errorf("clear quiz answers: %w", derr)
		}
		return l, nil
	case err != nil:
		return nil, fmt.Errorf("read quiz answers: %w", err)
	}

	for idx, c := range *saved {
		if idx >= 0 && idx < len(Bank) && (c == ChoiceO || c == ChoiceX) {
			l.answers[idx] = c
		}
	}
	return l, nil
}

// Today returns the question for t and the stored answer, if any.
func (l *Log) Today(t time.Time) (int, Question, *Result) {
	idx := DailyIndex(t)
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.answers[idx]; ok {
		r := result(idx, c)
		return idx, Bank[idx], &r
	}
	return idx, Bank[idx], nil
}

// Answer stores choice for t's question, replacing an earlier answer to the
// same question only.
func (l *Log) Answer(t time.Time, choice Choice) (Result, error) {
	if choice != ChoiceO && choice != ChoiceX {
		return Result{}, fmt.Errorf("%w: answer must be O or X", ErrInvalidInput)
	}
	idx := DailyIndex(t)

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make(map[int]Choice, len(l.answers)+1)
	for k, v := range l.answers {
		next[k] = v
	}
	next[idx] = choice
	if err := storage.SetJSON(l.blobs, storage.KeyQuizAnswers, next); err != nil {
		return Result{}, fmt.Errorf("persist quiz answers: %w", err)
	}
	l.answers = next
	return result(idx, choice), nil
}

// Archive lists answered questions, highest bank position first.
func (l *Log) Archive() []Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Result, 0, len(l.answers))
	for idx, c := range l.answers {
		out = append(out, result(idx, c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index > out[j].Index })
	return out
}

// Answers returns the raw answers as stored, for export.
func (l *Log) Answers() map[int]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[int]string, len(l.answers))
	for k, v := range l.answers {
		out[k] = string(v)
	}
	return out
}

func result(idx int, given Choice) Result {
	q := Bank[idx]
	return Result{Index: idx, Question: q, Given: given, Correct: given == q.Answer}
}

// Import merges answers from an export. Entries outside the bank or with
// unknown choices are skipped. It returns how many were stored.
func (l *Log) Import(answers map[int]string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make(map[int]Choice, len(l.answers)+len(answers))
	for k, v := range l.answers {
		next[k] = v
	}
	n := 0
	for idx, raw := range answers {
		c := Choice(raw)
		if idx < 0 || idx >= len(Bank) || (c != ChoiceO && c != ChoiceX) {
			continue
		}
		next[idx] = c
		n++
	}
	if n == 0 {
		return 0, nil
	}
	if err := storage.SetJSON(l.blobs, storage.KeyQuizAnswers, next); err != nil {
		return 0, fmt.Errorf("persist quiz answers: %w", err)
	}
	l.answers = next
	return n, nil
}
