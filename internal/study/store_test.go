package study

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DalPra0/MetodoCanvas/internal/model"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("tasks", []byte(`[{"id":"1"}]`)))

	data, err := store.Load("tasks")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(data))
}

func TestFileStore_MissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	data, err := store.Load("never-written")
	require.NoError(t, err, "a missing key is not an error")
	assert.Nil(t, data)
}

func TestState_RestoresFromStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	first := NewState(store, nil)
	due := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	task := model.NewTask("Essay", "desc", due, "History", model.PriorityHigh, time.Hour)
	first.AddTask(task)
	first.AddCourse(model.NewCourse("History", "HIS1", "Dr. A", "#fff"))

	second := NewState(store, nil)
	tasks := second.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.True(t, tasks[0].DueDate.Equal(due))
	assert.Len(t, second.Courses(), 1)
	assert.Len(t, second.Notifications(), 2, "notifications persist across restarts")
}

func TestState_CorruptBlobLeavesCollectionEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	first := NewState(store, nil)
	first.AddTask(model.NewTask("Essay", "", time.Now(), "History", model.PriorityLow, time.Hour))
	first.AddCourse(model.NewCourse("History", "HIS1", "Dr. A", "#fff"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{not json"), 0o644))

	second := NewState(store, nil)
	assert.Empty(t, second.Tasks(), "undecodable collection is left empty")
	assert.Len(t, second.Courses(), 1, "other collections still restore")
}
