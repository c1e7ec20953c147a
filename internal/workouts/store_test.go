// ABOUTME: Tests for the workout log store and its write-through persistence.
// ABOUTME: Covers CRUD, nested set edits, seeding and corrupt-blob recovery.
package workouts

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/storage"
)

func setupBlobs(t *testing.T) storage.BlobStore {
	t.Helper()
	s, err := storage.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func setupStore(t *testing.T) (*Store, storage.BlobStore) {
	t.Helper()
	blobs := setupBlobs(t)
	s, err := Open(blobs, false)
	require.NoError(t, err)
	return s, blobs
}

func squatWorkout() *models.Workout {
	return models.NewWorkout("하체 운동", "2024-03-06").
		WithExercise("스쿼트", models.SetDetail{Weight: 80, Reps: 10}, models.SetDetail{Weight: 85, Reps: 8})
}

func find(ws []*models.Workout, id string) *models.Workout {
	for _, w := range ws {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func TestUpsertListRemoveRoundTrip(t *testing.T) {
	s, _ := setupStore(t)
	w := squatWorkout()

	saved, err := s.Upsert(w)
	require.NoError(t, err)
	assert.Equal(t, w, saved)

	got := find(s.List(), w.ID)
	require.NotNil(t, got)
	assert.Equal(t, w, got)

	require.NoError(t, s.Remove(w.ID))
	assert.Nil(t, find(s.List(), w.ID))

	require.NoError(t, s.Remove("w-unknown"))
	assert.Empty(t, s.List())
}

func TestUpsertReplacesInPlace(t *testing.T) {
	s, _ := setupStore(t)
	w, err := s.Upsert(squatWorkout())
	require.NoError(t, err)

	w.Name = "다리"
	_, err = s.Upsert(w)
	require.NoError(t, err)

	all := s.List()
	require.Len(t, all, 1)
	assert.Equal(t, "다리", all[0].Name)
}

func TestUpsertRejectsBlankName(t *testing.T) {
	s, blobs := setupStore(t)
	w := models.NewWorkout("   ", "2024-03-06")

	_, err := s.Upsert(w)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, s.List())

	keys, err := blobs.Keys(storage.WorkoutPrefix)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestUpsertRejectsNegativeSets(t *testing.T) {
	s, _ := setupStore(t)
	w := models.NewWorkout("하체 운동", "2024-03-06").
		WithExercise("스쿼트", models.SetDetail{Weight: -5, Reps: 10})

	_, err := s.Upsert(w)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, s.List())
}

func TestUpsertRejectsInvalidDate(t *testing.T) {
	s, blobs := setupStore(t)

	for _, d := range []models.Date{"", "2024/05/01", "2024-02-30"} {
		w := models.NewWorkout("하체 운동", d).
			WithExercise("스쿼트", models.SetDetail{Weight: 80, Reps: 10})
		_, err := s.Upsert(w)
		assert.ErrorIs(t, err, ErrInvalidInput, "date %q", d)
	}
	assert.Empty(t, s.List())

	keys, err := blobs.Keys(storage.WorkoutPrefix)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestUpsertAssignsMissingIDs(t *testing.T) {
	s, _ := setupStore(t)
	w := &models.Workout{
		Date: "2024-03-06",
		Name: "push",
		Exercises: []models.WorkoutExercise{
			{Name: "벤치프레스", Sets: []models.SetDetail{{Weight: 60, Reps: 10}}},
		},
	}

	saved, err := s.Upsert(w)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.NotEmpty(t, saved.Exercises[0].ID)
	assert.NotEmpty(t, saved.Exercises[0].Sets[0].ID)
	assert.Empty(t, w.ID, "caller's workout must not be modified")
}

func TestListReturnsCopies(t *testing.T) {
	s, _ := setupStore(t)
	w, err := s.Upsert(squatWorkout())
	require.NoError(t, err)

	s.List()[0].Exercises[0].Sets[0].Weight = 999

	got, err := s.Get(w.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, got.Exercises[0].Sets[0].Weight)
}

func TestListByDate(t *testing.T) {
	s, _ := setupStore(t)
	_, _ = s.Upsert(models.NewWorkout("a", "2024-03-06"))
	_, _ = s.Upsert(models.NewWorkout("b", "2024-03-06"))
	_, _ = s.Upsert(models.NewWorkout("c", "2024-03-07"))

	assert.Len(t, s.ListByDate("2024-03-06"), 2)
	assert.Len(t, s.ListByDate("2024-03-07"), 1)
	assert.Empty(t, s.ListByDate("2024-03-08"))
}

func TestGetUnknown(t *testing.T) {
	s, _ := setupStore(t)
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExerciseAndSetEditing(t *testing.T) {
	s, _ := setupStore(t)
	w, err := s.Upsert(models.NewWorkout("push", "2024-03-06"))
	require.NoError(t, err)

	ex, err := s.AddExercise(w.ID, "벤치프레스")
	require.NoError(t, err)
	require.Len(t, ex.Sets, 1)
	assert.Equal(t, models.SetDetail{ID: ex.Sets[0].ID}, ex.Sets[0])

	set, err := s.AddSet(w.ID, ex.ID)
	require.NoError(t, err)
	require.NoError(t, s.UpdateSet(w.ID, ex.ID, set.ID, 62.5, 8))

	got, err := s.Get(w.ID)
	require.NoError(t, err)
	require.Len(t, got.Exercises[0].Sets, 2)
	assert.Equal(t, 62.5, got.Exercises[0].Sets[1].Weight)
	assert.Equal(t, 8, got.Exercises[0].Sets[1].Reps)

	require.NoError(t, s.RemoveSet(w.ID, ex.ID, set.ID))
	require.NoError(t, s.RemoveSet(w.ID, ex.ID, set.ID), "second removal is a no-op")

	got, _ = s.Get(w.ID)
	assert.Len(t, got.Exercises[0].Sets, 1)

	require.NoError(t, s.RemoveExercise(w.ID, ex.ID))
	got, _ = s.Get(w.ID)
	assert.Empty(t, got.Exercises)
}

func TestEditErrors(t *testing.T) {
	s, _ := setupStore(t)
	w, err := s.Upsert(squatWorkout())
	require.NoError(t, err)
	exID := w.Exercises[0].ID
	setID := w.Exercises[0].Sets[0].ID

	_, err = s.AddExercise("missing", "x")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.AddSet(w.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.RemoveSet(w.ID, "missing", setID), ErrNotFound)
	assert.ErrorIs(t, s.UpdateSet(w.ID, exID, "missing", 1, 1), ErrNotFound)
	assert.ErrorIs(t, s.UpdateSet(w.ID, exID, setID, -1, 1), ErrInvalidInput)
	assert.ErrorIs(t, s.UpdateSet(w.ID, exID, setID, 1, -1), ErrInvalidInput)

	got, _ := s.Get(w.ID)
	assert.Equal(t, w, got, "failed edits must leave the workout unchanged")
}

func TestPersistsAcrossReopen(t *testing.T) {
	blobs := setupBlobs(t)
	s, err := Open(blobs, false)
	require.NoError(t, err)

	w, err := s.Upsert(squatWorkout())
	require.NoError(t, err)
	_, err = s.AddExercise(w.ID, "런지")
	require.NoError(t, err)

	reopened, err := Open(blobs, false)
	require.NoError(t, err)
	got, err := reopened.Get(w.ID)
	require.NoError(t, err)
	assert.Len(t, got.Exercises, 2)
}

func TestOpenDropsCorruptBlobs(t *testing.T) {
	blobs := setupBlobs(t)
	require.NoError(t, blobs.Set(storage.WorkoutKey("bad"), []byte("{oops")))
	require.NoError(t, storage.SetJSON(blobs, storage.WorkoutKey("w1"), squatWorkout()))

	s, err := Open(blobs, false)
	require.NoError(t, err)
	assert.Len(t, s.List(), 1)

	_, err = blobs.Get(storage.WorkoutKey("bad"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSeedOnlyOnce(t *testing.T) {
	blobs := setupBlobs(t)
	s, err := Open(blobs, true)
	require.NoError(t, err)
	assert.Len(t, s.List(), len(models.SampleWorkouts()))

	for _, w := range s.List() {
		require.NoError(t, s.Remove(w.ID))
	}

	reopened, err := Open(blobs, true)
	require.NoError(t, err)
	assert.Empty(t, reopened.List(), "deleted samples must not come back")
}

func TestSeedSkipsExistingLog(t *testing.T) {
	blobs := setupBlobs(t)
	require.NoError(t, storage.SetJSON(blobs, storage.WorkoutKey("mine"), &models.Workout{ID: "mine", Name: "x", Date: "2024-01-01"}))

	s, err := Open(blobs, true)
	require.NoError(t, err)
	assert.Len(t, s.List(), 1)
}

func TestDatesAndExerciseNames(t *testing.T) {
	blobs := setupBlobs(t)
	s, err := Open(blobs, true)
	require.NoError(t, err)

	dates := s.Dates()
	assert.True(t, dates["2023-10-22"])
	assert.False(t, dates["2023-10-23"])

	names := s.ExerciseNames()
	assert.Contains(t, names, "스쿼트")
	assert.Contains(t, names, "벤치프레스")
	assert.IsIncreasing(t, names)
}

func TestSortByDateDesc(t *testing.T) {
	ws := []*models.Workout{
		{ID: "b", Date: "2024-01-01"},
		{ID: "c", Date: "2024-02-01"},
		{ID: "a", Date: "2024-01-01"},
	}
	SortByDateDesc(ws)
	assert.Equal(t, []string{"c", "a", "b"}, []string{ws[0].ID, ws[1].ID, ws[2].ID})
}

func TestImport(t *testing.T) {
	s, _ := setupStore(t)
	samples := models.SampleWorkouts()
	ptrs := make([]*models.Workout, len(samples))
	for i := range samples {
		ptrs[i] = &samples[i]
	}

	n, err := s.Import(ptrs)
	require.NoError(t, err)
	assert.Equal(t, len(samples), n)

	n, err = s.Import([]*models.Workout{{ID: "x", Name: ""}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, n)
}

func TestImportInvalidBatchStoresNothing(t *testing.T) {
	s, blobs := setupStore(t)
	existing, err := s.Upsert(squatWorkout())
	require.NoError(t, err)

	var data storage.ExportData
	require.NoError(t, json.Unmarshal([]byte(`{"workouts":[
		{"id":"w-ok","date":"2024-05-01","name":"등 운동","exercises":[]},
		null,
		{"id":"w-bad","date":"2024/05/02","name":"가슴 운동","exercises":[]}
	]}`), &data))

	tests := []struct {
		name  string
		batch []*models.Workout
	}{
		{"nil entry", data.Workouts[:2]},
		{"bad date after valid entry", []*models.Workout{data.Workouts[0], data.Workouts[2]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := s.Import(tt.batch)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, n)

			all := s.List()
			require.Len(t, all, 1)
			assert.Equal(t, existing.ID, all[0].ID)

			keys, err := blobs.Keys(storage.WorkoutPrefix)
			require.NoError(t, err)
			assert.Len(t, keys, 1)
		})
	}
}

type failingStore struct {
	storage.BlobStore
}

func (failingStore) Set(string, []byte) error { return errors.New("disk full") }

func TestWriteFailureLeavesMemoryUnchanged(t *testing.T) {
	blobs := setupBlobs(t)
	s, err := Open(blobs, false)
	require.NoError(t, err)
	w, err := s.Upsert(squatWorkout())
	require.NoError(t, err)

	s.blobs = failingStore{blobs}
	_, err = s.AddExercise(w.ID, "런지")
	require.Error(t, err)
	_, err = s.Upsert(models.NewWorkout("new", "2024-01-01"))
	require.Error(t, err)

	got, _ := s.Get(w.ID)
	assert.Len(t, got.Exercises, 1)
	assert.Len(t, s.List(), 1)
}

func TestConcurrentEdits(t *testing.T) {
	s, _ := setupStore(t)
	w, err := s.Upsert(models.NewWorkout("busy", "2024-03-06"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.AddExercise(w.ID, "x")
			_ = s.List()
		}()
	}
	wg.Wait()

	got, _ := s.Get(w.ID)
	assert.Len(t, got.Exercises, 20)
}
