package study

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DalPra0/MetodoCanvas/internal/model"
)

// fakeBackup records saved tasks and fails writes for configured titles.
type fakeBackup struct {
	mu         sync.Mutex
	saved      []model.Task
	failTitles map[string]bool
	remote     []model.Task
	fetchErr   error
}

func (f *fakeBackup) SaveTask(_ context.Context, t model.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTitles[t.Title] {
		return errors.New("write rejected")
	}
	f.saved = append(f.saved, t)
	return nil
}

func (f *fakeBackup) FetchTasks(_ context.Context) ([]model.Task, error) {
	return f.remote, f.fetchErr
}

func (f *fakeBackup) savedTitles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	titles := make([]string, 0, len(f.saved))
	for _, t := range f.saved {
		titles = append(titles, t.Title)
	}
	return titles
}

func TestNewSyncer_RequiresStore(t *testing.T) {
	_, err := NewSyncer(nil, SyncConfig{}, nil)
	require.Error(t, err)
}

func TestPushTasks(t *testing.T) {
	backup := &fakeBackup{}
	syncer, err := NewSyncer(backup, SyncConfig{Parallelism: 2}, nil)
	require.NoError(t, err)

	tasks := []model.Task{
		model.NewTask("a", "", time.Now(), "C", model.PriorityLow, time.Hour),
		model.NewTask("b", "", time.Now(), "C", model.PriorityLow, time.Hour),
		model.NewTask("c", "", time.Now(), "C", model.PriorityLow, time.Hour),
	}
	require.NoError(t, syncer.PushTasks(context.Background(), tasks))

	assert.ElementsMatch(t, []string{"a", "b", "c"}, backup.savedTitles())
	assert.Equal(t, "All tasks synced", syncer.Status())
}

func TestPushTasks_PartialFailureIsOverallFailure(t *testing.T) {
	backup := &fakeBackup{failTitles: map[string]bool{"t2": true}}
	syncer, err := NewSyncer(backup, SyncConfig{Parallelism: 1}, nil)
	require.NoError(t, err)

	t1 := model.NewTask("t1", "", time.Now(), "C", model.PriorityLow, time.Hour)
	t2 := model.NewTask("t2", "", time.Now(), "C", model.PriorityLow, time.Hour)

	err = syncer.PushTasks(context.Background(), []model.Task{t1, t2})
	require.Error(t, err)

	// The successful write is not rolled back.
	assert.ElementsMatch(t, []string{"t1"}, backup.savedTitles())
	assert.True(t, strings.HasPrefix(syncer.Status(), "Sync failed"))
}

func TestPushTasks_EmptyIsNoOp(t *testing.T) {
	backup := &fakeBackup{}
	syncer, err := NewSyncer(backup, SyncConfig{}, nil)
	require.NoError(t, err)

	require.NoError(t, syncer.PushTasks(context.Background(), nil))
	assert.Empty(t, backup.saved)
}

func TestPullTasks(t *testing.T) {
	remote := []model.Task{
		model.NewTask("remote", "", time.Now(), "C", model.PriorityHigh, time.Hour),
	}
	backup := &fakeBackup{remote: remote}
	syncer, err := NewSyncer(backup, SyncConfig{}, nil)
	require.NoError(t, err)

	tasks, err := syncer.PullTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "remote", tasks[0].Title)
	assert.Equal(t, "Loaded 1 tasks", syncer.Status())
}

func TestPullTasks_Error(t *testing.T) {
	backup := &fakeBackup{fetchErr: errors.New("backend down")}
	syncer, err := NewSyncer(backup, SyncConfig{}, nil)
	require.NoError(t, err)

	_, err = syncer.PullTasks(context.Background())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(syncer.Status(), "Load failed"))
}
