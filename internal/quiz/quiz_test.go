// ABOUTME: Tests for the daily quiz log.
// ABOUTME: Covers day mapping, answer persistence and the archive order.
package quiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/fittrack/internal/storage"
)

func setupLog(t *testing.T) (*Log, storage.BlobStore) {
	t.Helper()
	s, err := storage.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	l, err := Open(s)
	require.NoError(t, err)
	return l, s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.Local)
}

func TestBankIsAllMyths(t *testing.T) {
	require.Len(t, Bank, 5)
	for _, q := range Bank {
		assert.Equal(t, ChoiceX, q.Answer)
		assert.NotEmpty(t, q.Explanation)
		assert.NotEmpty(t, q.Takeaway)
	}
}

func TestDailyIndex(t *testing.T) {
	assert.Equal(t, 1, DailyIndex(day(2024, time.January, 1)))
	assert.Equal(t, 0, DailyIndex(day(2024, time.January, 5)))
	assert.Equal(t, 1, DailyIndex(day(2024, time.January, 6)))
	// Day 366 of a leap year.
	assert.Equal(t, 1, DailyIndex(day(2024, time.December, 31)))
	assert.Equal(t, DailyIndex(day(2024, time.March, 3)), DailyIndex(time.Date(2024, time.March, 3, 23, 59, 0, 0, time.Local)))
}

func TestAnswerAndArchive(t *testing.T) {
	l, store := setupLog(t)

	_, _, answered := l.Today(day(2024, time.January, 1))
	assert.Nil(t, answered)

	r, err := l.Answer(day(2024, time.January, 1), ChoiceX)
	require.NoError(t, err)
	assert.True(t, r.Correct)
	assert.Equal(t, 1, r.Index)

	r, err = l.Answer(day(2024, time.January, 3), ChoiceO)
	require.NoError(t, err)
	assert.False(t, r.Correct)

	// Re-answering index 1 only replaces index 1.
	_, err = l.Answer(day(2024, time.January, 6), ChoiceO)
	require.NoError(t, err)

	archive := l.Archive()
	require.Len(t, archive, 2)
	assert.Equal(t, 3, archive[0].Index)
	assert.Equal(t, 1, archive[1].Index)
	assert.Equal(t, ChoiceO, archive[1].Given)

	reopened, err := Open(store)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "O", 3: "O"}, reopened.Answers())
}

func TestAnswerRejectsInvalidChoice(t *testing.T) {
	l, _ := setupLog(t)
	_, err := l.Answer(day(2024, time.May, 1), Choice("maybe"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, l.Archive())
}

func TestParseChoice(t *testing.T) {
	c, err := ParseChoice(" o ")
	require.NoError(t, err)
	assert.Equal(t, ChoiceO, c)
	_, err = ParseChoice("y")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOpenDiscardsCorruptAnswers(t *testing.T) {
	s, err := storage.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Set(storage.KeyQuizAnswers, []byte("[oops")))

	l, err := Open(s)
	require.NoError(t, err)
	assert.Empty(t, l.Archive())
	_, err = s.Get(storage.KeyQuizAnswers)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOpenIgnoresOutOfRangeAnswers(t *testing.T) {
	s, err := storage.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Set(storage.KeyQuizAnswers, []byte(`{"2":"X","9":"O","4":"?"}`)))

	l, err := Open(s)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{2: "X"}, l.Answers())
}
