package firestore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DalPra0/MetodoCanvas/internal/model"
)

func TestTaskDocumentRoundTrip(t *testing.T) {
	completedAt := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	task := model.Task{
		ID:              "task-1",
		Title:           "Read chapter 4",
		Description:     "Pages 80-120",
		DueDate:         time.Date(2026, 9, 10, 23, 59, 0, 0, time.UTC),
		Course:          "Linear Algebra",
		Priority:        model.PriorityHigh,
		Completed:       true,
		CompletedAt:     &completedAt,
		EstimatedEffort: 90 * time.Minute,
		CreatedAt:       time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC),
	}

	doc := taskToDocument(task)

	// The wire form must survive JSON serialization unchanged.
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	var decodedDoc document
	require.NoError(t, json.Unmarshal(data, &decodedDoc))

	got, ok := documentToTask(decodedDoc)
	require.True(t, ok)

	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, task.Description, got.Description)
	assert.Equal(t, task.Course, got.Course)
	assert.Equal(t, task.Priority, got.Priority)
	assert.True(t, got.DueDate.Equal(task.DueDate))
	assert.Equal(t, task.Completed, got.Completed)
	assert.Equal(t, task.EstimatedEffort, got.EstimatedEffort)
	assert.True(t, got.CreatedAt.Equal(task.CreatedAt))
}

func TestDocumentToTask_RejectsMissingFields(t *testing.T) {
	base := func() document {
		return taskToDocument(model.Task{
			ID:              "task-1",
			Title:           "t",
			Description:     "d",
			DueDate:         time.Now(),
			Course:          "c",
			Priority:        model.PriorityLow,
			EstimatedEffort: time.Hour,
			CreatedAt:       time.Now(),
		})
	}

	for _, field := range []string{"title", "description", "course", "priority", "dueDate", "isCompleted", "estimatedTime"} {
		t.Run("missing "+field, func(t *testing.T) {
			doc := base()
			delete(doc.Fields, field)
			_, ok := documentToTask(doc)
			assert.False(t, ok)
		})
	}

	t.Run("unknown priority", func(t *testing.T) {
		doc := base()
		doc.Fields["priority"] = stringValue("immediately")
		_, ok := documentToTask(doc)
		assert.False(t, ok)
	})

	t.Run("wrongly typed field", func(t *testing.T) {
		doc := base()
		doc.Fields["isCompleted"] = stringValue("true")
		_, ok := documentToTask(doc)
		assert.False(t, ok)
	})
}

func TestDocumentToTask_GeneratesIDWhenAbsent(t *testing.T) {
	doc := taskToDocument(model.Task{
		Title:           "t",
		Description:     "d",
		DueDate:         time.Now(),
		Course:          "c",
		Priority:        model.PriorityLow,
		EstimatedEffort: time.Hour,
		CreatedAt:       time.Now(),
	})
	delete(doc.Fields, "id")

	got, ok := documentToTask(doc)
	require.True(t, ok)
	assert.NotEmpty(t, got.ID)
}

func TestCourseDocumentRoundTrip(t *testing.T) {
	course := model.Course{
		ID:         "course-1",
		Name:       "Linear Algebra",
		Code:       "MATH201",
		Instructor: "Dr. Rivera",
		ColorHex:   "#34C759",
	}

	got, ok := documentToCourse(courseToDocument(course))
	require.True(t, ok)
	assert.Equal(t, course, got)
}

func TestDocumentToCourse_RejectsMissingName(t *testing.T) {
	doc := courseToDocument(model.Course{Name: "X", Code: "C", Instructor: "I", ColorHex: "#fff"})
	delete(doc.Fields, "name")
	_, ok := documentToCourse(doc)
	assert.False(t, ok)
}
