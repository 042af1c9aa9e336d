package tracker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreLoadMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	state, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, state)
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	s := NewState()
	s.Call(7, TargetLoto)
	s.Call(12, TargetBingo)
	s.StartNewGame()
	require.NoError(t, store.Save(s))

	loaded, found, err := store.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, s, loaded)

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestFileStoreLoadRepairsPartialBlob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte(`{"currentGame":3}`), 0o644))

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	loaded, found, err := store.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 3, loaded.CurrentGame)
	assert.Equal(t, 3, loaded.TotalGames)
	require.Contains(t, loaded.Games, 3)
	assert.NotNil(t, loaded.Statistics)
}

type failingStore struct {
	loadState *State
}

func (f *failingStore) Load() (*State, bool, error) {
	if f.loadState == nil {
		return nil, false, nil
	}
	return f.loadState, true, nil
}

func (f *failingStore) Save(*State) error {
	return errors.New("disk full")
}

func TestServiceKeepsStateWhenSaveFails(t *testing.T) {
	svc, err := NewService(&failingStore{}, nil)
	require.NoError(t, err)

	// Save fails silently; the mutation survives in memory
	state := svc.Call(7, TargetLoto)
	assert.Equal(t, []int{7}, state.Games[1].Loto)
	assert.Equal(t, []int{7}, svc.Snapshot().Games[1].Loto)
}

func TestServicePersistsEveryMutation(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	svc, err := NewService(store, nil)
	require.NoError(t, err)

	svc.Call(5, TargetLoto)
	svc.Call(6, TargetBingo)
	svc.StartNewGame()

	reloaded, err := NewService(store, nil)
	require.NoError(t, err)
	state := reloaded.Snapshot()
	assert.Equal(t, 2, state.CurrentGame)
	assert.Equal(t, []int{5, 6}, state.Games[1].Loto)
	assert.Equal(t, []int{6}, state.Bingo)
}

func TestSnapshotIsACopy(t *testing.T) {
	svc, err := NewService(&failingStore{}, nil)
	require.NoError(t, err)
	svc.Call(5, TargetLoto)

	snap := svc.Snapshot()
	snap.Games[1].Loto[0] = 99
	snap.Statistics[5] = 42

	fresh := svc.Snapshot()
	assert.Equal(t, []int{5}, fresh.Games[1].Loto)
	assert.Equal(t, 1, fresh.Statistics[5])
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, time.March, 9, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "statistiques_loto_2025-03-09.csv", ExportFilename(now))
}
