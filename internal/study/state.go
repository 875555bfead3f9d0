// Package study owns the canonical local task, course, session, and
// notification collections, their persistence, and the notification
// delivery lifecycle. All mutation is serialized through State; other
// services return completed results for State to merge.
package study

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DalPra0/MetodoCanvas/internal/model"
)

const trailingWeek = 7 * 24 * time.Hour

// State is the in-memory source of truth for study data. Every mutation
// persists synchronously to the blob store.
type State struct {
	mu            sync.Mutex
	tasks         []model.Task
	courses       []model.Course
	sessions      []model.StudySession
	notifications []model.Notification

	store  BlobStore
	logger *zap.Logger
	now    func() time.Time
}

// NewState creates a state backed by the given store and restores any
// previously persisted collections. A nil store keeps the state in-memory
// only. Keys that fail to decode are left empty.
func NewState(store BlobStore, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &State{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	s.load()
	return s
}

// Task operations

// AddTask appends a task, schedules its two notifications, and persists.
func (s *State) AddTask(t model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addTaskLocked(t)
	s.persistLocked()
}

// UpdateTask replaces the task with the same ID. A missing ID is a silent
// no-op: absence is treated as already-consistent state.
func (s *State) UpdateTask(t model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			s.persistLocked()
			return
		}
	}
	s.logger.Debug("update for unknown task ignored", zap.String("task_id", t.ID))
}

// DeleteTask removes the task with the given ID. Its notifications are left
// untouched; delivered and pending alerts survive task deletion.
func (s *State) DeleteTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.persistLocked()
}

// CompleteTask marks a task done and stamps its completion time. A missing
// ID is a silent no-op.
func (s *State) CompleteTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			now := s.now()
			s.tasks[i].Completed = true
			s.tasks[i].CompletedAt = &now
			s.persistLocked()
			return
		}
	}
	s.logger.Debug("complete for unknown task ignored", zap.String("task_id", id))
}

// Course operations

// AddCourse appends a course and persists.
func (s *State) AddCourse(c model.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = append(s.courses, c)
	s.persistLocked()
}

// UpdateCourse replaces the course with the same ID. A missing ID is a
// silent no-op.
func (s *State) UpdateCourse(c model.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.courses {
		if s.courses[i].ID == c.ID {
			s.courses[i] = c
			s.persistLocked()
			return
		}
	}
	s.logger.Debug("update for unknown course ignored", zap.String("course_id", c.ID))
}

// DeleteCourse removes the course and cascades to every task whose course
// name matches the deleted course's name. The name, not the ID, is the join
// key between tasks and courses.
func (s *State) DeleteCourse(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var name string
	keptCourses := s.courses[:0]
	for _, c := range s.courses {
		if c.ID == id {
			name = c.Name
			continue
		}
		keptCourses = append(keptCourses, c)
	}
	s.courses = keptCourses

	if name != "" {
		keptTasks := s.tasks[:0]
		for _, t := range s.tasks {
			if t.Course != name {
				keptTasks = append(keptTasks, t)
			}
		}
		s.tasks = keptTasks
	}
	s.persistLocked()
}

// AddSession records a study session and persists.
func (s *State) AddSession(sess model.StudySession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, sess)
	s.persistLocked()
}

// Merge operations

// MergeImport folds import results into the state idempotently: courses
// dedupe by name, tasks by title plus course. Re-running the merge with the
// same input produces no duplicates. New tasks go through the normal add
// path, so they get notifications.
func (s *State) MergeImport(tasks []model.Task, courses []model.Course) (added int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range courses {
		if !s.hasCourseNamedLocked(c.Name) {
			s.courses = append(s.courses, c)
		}
	}
	for _, t := range tasks {
		if s.hasTaskLocked(t.Title, t.Course) {
			continue
		}
		s.addTaskLocked(t)
		added++
	}
	s.persistLocked()
	return added
}

// MergePulled folds tasks pulled from the backup store into the state,
// skipping any task whose ID is already present.
func (s *State) MergePulled(tasks []model.Task) (added int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	present := make(map[string]struct{}, len(s.tasks))
	for _, t := range s.tasks {
		present[t.ID] = struct{}{}
	}
	for _, t := range tasks {
		if _, ok := present[t.ID]; ok {
			continue
		}
		s.addTaskLocked(t)
		present[t.ID] = struct{}{}
		added++
	}
	s.persistLocked()
	return added
}

// Snapshots

// Tasks returns a copy of all tasks.
func (s *State) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task(nil), s.tasks...)
}

// Courses returns a copy of all courses.
func (s *State) Courses() []model.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Course(nil), s.courses...)
}

// Sessions returns a copy of all sessions.
func (s *State) Sessions() []model.StudySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.StudySession(nil), s.sessions...)
}

// Notifications returns a copy of all notifications.
func (s *State) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Notification(nil), s.notifications...)
}

// Derived views

// UpcomingTasks returns pending tasks due in the future, soonest first.
func (s *State) UpcomingTasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var upcoming []model.Task
	for _, t := range s.tasks {
		if !t.Completed && t.DueDate.After(now) {
			upcoming = append(upcoming, t)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})
	return upcoming
}

// OverdueTasks returns pending tasks whose due date has passed.
func (s *State) OverdueTasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var overdue []model.Task
	for _, t := range s.tasks {
		if !t.Completed && t.DueDate.Before(now) {
			overdue = append(overdue, t)
		}
	}
	return overdue
}

// CompletedTasksThisWeek returns tasks completed within the trailing seven
// days.
func (s *State) CompletedTasksThisWeek() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	weekAgo := s.now().Add(-trailingWeek)
	var completed []model.Task
	for _, t := range s.tasks {
		if t.Completed && t.CompletedAt != nil && t.CompletedAt.After(weekAgo) {
			completed = append(completed, t)
		}
	}
	return completed
}

// StudyTimeThisWeek sums the actual duration of sessions started within the
// trailing seven days.
func (s *State) StudyTimeThisWeek() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	weekAgo := s.now().Add(-trailingWeek)
	var total time.Duration
	for _, sess := range s.sessions {
		if sess.StartTime.After(weekAgo) {
			total += sess.ActualDuration()
		}
	}
	return total
}

// Notification lifecycle

// DeliverDue transitions every scheduled notification whose delivery time
// has arrived. Already-delivered notifications are skipped, so the
// transition is idempotent and terminal. Returns how many were delivered.
func (s *State) DeliverDue(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	delivered := 0
	for i := range s.notifications {
		n := &s.notifications[i]
		if n.Delivered || n.ScheduledAt.After(now) {
			continue
		}
		n.Delivered = true
		delivered++
		s.logger.Info("notification delivered",
			zap.String("notification_id", n.ID),
			zap.String("task_id", n.TaskID),
			zap.String("kind", string(n.Kind)))
	}
	if delivered > 0 {
		s.persistLocked()
	}
	return delivered
}

// internals

// addTaskLocked appends the task and schedules its notification pair:
// a reminder 24 hours before the due date carrying the task's priority, and
// a deadline alert one hour before forced to urgent.
func (s *State) addTaskLocked(t model.Task) {
	s.tasks = append(s.tasks, t)

	s.notifications = append(s.notifications,
		model.Notification{
			ID:          uuid.NewString(),
			TaskID:      t.ID,
			Title:       "Task Reminder",
			Message:     fmt.Sprintf("Task '%s' is due tomorrow!", t.Title),
			ScheduledAt: t.DueDate.Add(-24 * time.Hour),
			Kind:        model.NotificationReminder,
			Priority:    t.Priority,
		},
		model.Notification{
			ID:          uuid.NewString(),
			TaskID:      t.ID,
			Title:       "Deadline Approaching",
			Message:     fmt.Sprintf("Task '%s' is due in one hour!", t.Title),
			ScheduledAt: t.DueDate.Add(-time.Hour),
			Kind:        model.NotificationDeadline,
			Priority:    model.PriorityUrgent,
		},
	)
}

func (s *State) hasTaskLocked(title, course string) bool {
	for _, t := range s.tasks {
		if t.Title == title && t.Course == course {
			return true
		}
	}
	return false
}

func (s *State) hasCourseNamedLocked(name string) bool {
	for _, c := range s.courses {
		if c.Name == name {
			return true
		}
	}
	return false
}

// persistLocked writes all four collections. Persistence failures are
// logged, not surfaced; the in-memory state stays authoritative.
func (s *State) persistLocked() {
	if s.store == nil {
		return
	}
	s.saveBlob(blobTasks, s.tasks)
	s.saveBlob(blobCourses, s.courses)
	s.saveBlob(blobSessions, s.sessions)
	s.saveBlob(blobNotifications, s.notifications)
}

func (s *State) saveBlob(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode collection", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.Save(key, data); err != nil {
		s.logger.Error("failed to persist collection", zap.String("key", key), zap.Error(err))
	}
}

// load restores each collection independently; a key that is missing or
// fails to decode leaves that collection empty.
func (s *State) load() {
	if s.store == nil {
		return
	}
	loadBlob(s, blobTasks, &s.tasks)
	loadBlob(s, blobCourses, &s.courses)
	loadBlob(s, blobSessions, &s.sessions)
	loadBlob(s, blobNotifications, &s.notifications)
}

func loadBlob[T any](s *State, key string, into *[]T) {
	data, err := s.store.Load(key)
	if err != nil {
		s.logger.Warn("failed to load collection", zap.String("key", key), zap.Error(err))
		return
	}
	if len(data) == 0 {
		return
	}
	var decoded []T
	if err := json.Unmarshal(data, &decoded); err != nil {
		s.logger.Warn("failed to decode collection", zap.String("key", key), zap.Error(err))
		return
	}
	*into = decoded
}
