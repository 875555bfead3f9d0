// Package importer orchestrates course and assignment imports from the
// roster API: it fans out one assignment fetch per selected course, joins
// completion, and converts results into local tasks and courses.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/DalPra0/MetodoCanvas/internal/canvas"
	"github.com/DalPra0/MetodoCanvas/internal/model"
)

const (
	defaultParallelism = 4

	importedDescription = "Imported from Canvas"
	defaultEffort       = time.Hour
	defaultDueOffset    = 24 * time.Hour
)

// coursePalette provides display colors for imported courses.
var coursePalette = []string{
	"#007AFF", "#34C759", "#FF9500", "#FF3B30",
	"#AF52DE", "#FF2D92", "#5AC8FA", "#FFCC00",
}

// RosterClient is the roster API surface the importer depends on.
type RosterClient interface {
	FetchCourses(ctx context.Context) ([]canvas.Course, error)
	FetchAssignments(ctx context.Context, courseID int) ([]canvas.Assignment, error)
}

// Config configures the importer.
type Config struct {
	// Parallelism caps concurrent assignment fetches during an import.
	Parallelism int
}

// Importer scans and imports roster courses.
type Importer struct {
	roster      RosterClient
	maxParallel int
	logger      *zap.Logger
	now         func() time.Time

	mu     sync.Mutex
	status string
}

// New creates an importer over the given roster client.
func New(roster RosterClient, cfg Config, logger *zap.Logger) (*Importer, error) {
	if roster == nil {
		return nil, errors.New("roster client is required")
	}
	maxParallel := cfg.Parallelism
	if maxParallel <= 0 {
		maxParallel = defaultParallelism
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		roster:      roster,
		maxParallel: maxParallel,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// Status returns the human-readable state of the last operation.
func (i *Importer) Status() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.status
}

func (i *Importer) setStatus(format string, args ...any) {
	i.mu.Lock()
	i.status = fmt.Sprintf(format, args...)
	i.mu.Unlock()
}

// ScanCourses fetches the roster and returns only courses that pass the
// validity predicate (named and not access-restricted). Roster errors
// propagate to the caller.
func (i *Importer) ScanCourses(ctx context.Context) ([]canvas.Course, error) {
	i.setStatus("Scanning Canvas courses...")

	courses, err := i.roster.FetchCourses(ctx)
	if err != nil {
		i.setStatus("Canvas scan failed: %v", err)
		return nil, err
	}

	valid := make([]canvas.Course, 0, len(courses))
	for _, c := range courses {
		if c.IsValid() {
			valid = append(valid, c)
		}
	}

	i.logger.Info("scanned canvas courses",
		zap.Int("total", len(courses)),
		zap.Int("valid", len(valid)))
	i.setStatus("Found %d courses", len(valid))
	return valid, nil
}

// ImportCourses fetches assignments for every selected course concurrently
// and converts the results into local tasks and courses. The join resolves
// only after every per-course fetch has completed; a failed course
// contributes zero tasks and does not fail the others. No fetch is retried.
func (i *Importer) ImportCourses(ctx context.Context, selected []canvas.Course) ([]model.Task, []model.Course) {
	if len(selected) == 0 {
		i.setStatus("No courses selected")
		return nil, nil
	}

	i.setStatus("Importing %d courses...", len(selected))

	courses := make([]model.Course, 0, len(selected))
	for idx, c := range selected {
		course := model.NewCourse(c.Name, c.CourseCode, "Instructor", coursePalette[idx%len(coursePalette)])
		course.CanvasID = strconv.Itoa(c.ID)
		courses = append(courses, course)
	}

	results := make(chan []model.Task, len(selected))
	sem := make(chan struct{}, i.maxParallel)
	var wg sync.WaitGroup

	for _, c := range selected {
		wg.Add(1)
		go func(c canvas.Course) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			assignments, err := i.roster.FetchAssignments(ctx, c.ID)
			if err != nil {
				i.logger.Warn("course import failed",
					zap.Int("course_id", c.ID),
					zap.String("course", c.Name),
					zap.Error(err))
				return
			}

			tasks := make([]model.Task, 0, len(assignments))
			for _, a := range assignments {
				tasks = append(tasks, i.convertAssignment(a, c.Name))
			}
			results <- tasks
		}(c)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var allTasks []model.Task
	for tasks := range results {
		allTasks = append(allTasks, tasks...)
	}

	i.logger.Info("import complete",
		zap.Int("tasks", len(allTasks)),
		zap.Int("courses", len(courses)))
	i.setStatus("Imported %d tasks and %d courses", len(allTasks), len(courses))
	return allTasks, courses
}

// convertAssignment maps a roster assignment to a local task. An absent due
// date defaults to 24 hours out with medium priority; an absent description
// gets a fixed placeholder; estimated effort defaults to one hour.
func (i *Importer) convertAssignment(a canvas.Assignment, courseName string) model.Task {
	now := i.now()

	due, hasDue := a.DueDate()
	priority := model.PriorityMedium
	if hasDue {
		priority = PriorityForDueDate(due, now)
	} else {
		due = now.Add(defaultDueOffset)
	}

	description := a.Description
	if description == "" {
		description = importedDescription
	}

	task := model.NewTask(a.Name, description, due, courseName, priority, defaultEffort)
	task.CanvasID = strconv.Itoa(a.ID)
	return task
}
