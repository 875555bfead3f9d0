// Package model defines the canonical study-planning entities shared by the
// import, analysis, sync, and scheduling services.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Priority ranks how soon a task needs attention.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority converts a stored string into a Priority.
// The second return value is false for unknown values.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return Priority(s), true
	default:
		return "", false
	}
}

// SessionKind classifies a study session.
type SessionKind string

const (
	SessionFocus    SessionKind = "focus"
	SessionReview   SessionKind = "review"
	SessionPomodoro SessionKind = "pomodoro"
	SessionReading  SessionKind = "reading"
)

// NotificationKind classifies a scheduled notification.
type NotificationKind string

const (
	NotificationDeadline   NotificationKind = "deadline"
	NotificationReminder   NotificationKind = "reminder"
	NotificationSuggestion NotificationKind = "suggestion"
	NotificationWarning    NotificationKind = "warning"
)

// Task is a unit of academic work. Tasks reference their course by name, not
// by course ID; the name is the join key for cascade operations.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id"`

	// Title is the short human-readable name.
	Title string `json:"title"`

	// Description explains what the task involves.
	Description string `json:"description"`

	// DueDate is when the task must be finished.
	DueDate time.Time `json:"due_date"`

	// Course is the name of the owning course.
	Course string `json:"course"`

	// Priority ranks the task. Inferred from the due date on import.
	Priority Priority `json:"priority"`

	// Completed marks the task as done. CompletedAt is set iff true.
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// EstimatedEffort is the expected time investment.
	EstimatedEffort time.Duration `json:"estimated_effort"`

	// CanvasID links back to the originating roster assignment, if any.
	CanvasID string `json:"canvas_id,omitempty"`

	// CreatedAt is when the task entered the local store.
	CreatedAt time.Time `json:"created_at"`
}

// NewTask creates a task with a fresh identity and creation timestamp.
func NewTask(title, description string, due time.Time, course string, priority Priority, effort time.Duration) Task {
	return Task{
		ID:              uuid.NewString(),
		Title:           title,
		Description:     description,
		DueDate:         due,
		Course:          course,
		Priority:        priority,
		EstimatedEffort: effort,
		CreatedAt:       time.Now(),
	}
}

// Course is a class the student is enrolled in.
type Course struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Instructor  string `json:"instructor"`
	ColorHex    string `json:"color_hex"`
	SyllabusURL string `json:"syllabus_url,omitempty"`

	// CanvasID links back to the originating roster course, if any.
	CanvasID string `json:"canvas_id,omitempty"`
}

// NewCourse creates a course with a fresh identity.
func NewCourse(name, code, instructor, colorHex string) Course {
	return Course{
		ID:         uuid.NewString(),
		Name:       name,
		Code:       code,
		Instructor: instructor,
		ColorHex:   colorHex,
	}
}

// StudySession records time spent on a task.
type StudySession struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"task_id"`
	CourseID  string     `json:"course_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// Duration is the planned estimate; sessions that have ended report
	// their actual length through ActualDuration.
	Duration time.Duration `json:"duration"`

	Kind  SessionKind `json:"kind"`
	Notes string      `json:"notes"`
}

// ActualDuration returns the elapsed time of a finished session, or zero for
// a session that has not ended yet.
func (s StudySession) ActualDuration() time.Duration {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// Notification is a scheduled alert for a task. Lifecycle is
// scheduled -> delivered; delivery is terminal and never re-scheduled.
type Notification struct {
	ID          string           `json:"id"`
	TaskID      string           `json:"task_id"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	ScheduledAt time.Time        `json:"scheduled_at"`
	Kind        NotificationKind `json:"kind"`
	Delivered   bool             `json:"delivered"`

	// Priority is a snapshot taken at scheduling time.
	Priority Priority `json:"priority"`
}
