package study

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/DalPra0/MetodoCanvas/internal/model"
)

const defaultPushParallelism = 4

// BackupStore is the remote key-document store used for synchronization.
type BackupStore interface {
	SaveTask(ctx context.Context, t model.Task) error
	FetchTasks(ctx context.Context) ([]model.Task, error)
}

// SyncConfig configures the syncer.
type SyncConfig struct {
	// Parallelism caps concurrent writes during a push.
	Parallelism int
}

// Syncer pushes and pulls tasks against the backup store.
type Syncer struct {
	store       BackupStore
	maxParallel int
	logger      *zap.Logger

	mu     sync.Mutex
	status string
}

// NewSyncer creates a syncer over the given backup store.
func NewSyncer(store BackupStore, cfg SyncConfig, logger *zap.Logger) (*Syncer, error) {
	if store == nil {
		return nil, errors.New("backup store is required")
	}
	maxParallel := cfg.Parallelism
	if maxParallel <= 0 {
		maxParallel = defaultPushParallelism
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{store: store, maxParallel: maxParallel, logger: logger}, nil
}

// Status returns the human-readable state of the last operation.
func (s *Syncer) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Syncer) setStatus(format string, args ...any) {
	s.mu.Lock()
	s.status = fmt.Sprintf(format, args...)
	s.mu.Unlock()
}

// PushTasks issues one write per task and waits for all of them. The push
// succeeds only if every write succeeds; the first failure is reported.
// Writes already issued are not rolled back, so a failed push can leave the
// remote store partially updated (at-least-once, last-write-wins).
func (s *Syncer) PushTasks(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	s.setStatus("Syncing %d tasks...", len(tasks))

	sem := make(chan struct{}, s.maxParallel)
	var wg sync.WaitGroup

	var errMu sync.Mutex
	var firstErr error

	for _, t := range tasks {
		wg.Add(1)
		go func(t model.Task) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if err := s.store.SaveTask(ctx, t); err != nil {
				s.logger.Error("task push failed",
					zap.String("task_id", t.ID),
					zap.Error(err))
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
			}
		}(t)
	}
	wg.Wait()

	if firstErr != nil {
		s.setStatus("Sync failed: %v", firstErr)
		return firstErr
	}

	s.logger.Info("tasks pushed", zap.Int("count", len(tasks)))
	s.setStatus("All tasks synced")
	return nil
}

// PullTasks fetches all remote task documents. Undecodable documents are
// dropped by the store client, so a pull can return partial results.
func (s *Syncer) PullTasks(ctx context.Context) ([]model.Task, error) {
	s.setStatus("Loading tasks from backup...")

	tasks, err := s.store.FetchTasks(ctx)
	if err != nil {
		s.setStatus("Load failed: %v", err)
		return nil, err
	}

	s.setStatus("Loaded %d tasks", len(tasks))
	return tasks, nil
}
