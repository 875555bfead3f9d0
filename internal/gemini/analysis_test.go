package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DalPra0/MetodoCanvas/internal/model"
)

func TestAnalyzeSyllabus(t *testing.T) {
	analysisJSON := `{
		"topics": ["limits", "derivatives"],
		"importantDates": [{"event": "Midterm", "date": "2026-10-01", "weight": 30}],
		"studySchedule": [{"week": 1, "topics": ["limits"], "hours": 4}],
		"prerequisites": ["algebra"],
		"evaluation": {"exams": 60, "assignments": 40}
	}`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse(analysisJSON)))
	})

	analysis, err := client.AnalyzeSyllabus(context.Background(), "course syllabus text")
	require.NoError(t, err)

	assert.Equal(t, []string{"limits", "derivatives"}, analysis.Topics)
	require.Len(t, analysis.ImportantDates, 1)
	assert.Equal(t, "Midterm", analysis.ImportantDates[0].Event)
	assert.Equal(t, 30, analysis.ImportantDates[0].Weight)
	assert.Equal(t, 60, analysis.Evaluation["exams"])
}

func TestAnalyzeSyllabus_MalformedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse("I could not produce JSON, sorry")))
	})

	_, err := client.AnalyzeSyllabus(context.Background(), "text")
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGenerateStudyPlan(t *testing.T) {
	planJSON := `{
		"dailyPlans": [
			{"date": "2026-09-01", "totalHours": 4, "sessions": [
				{"task": "Study limits", "startTime": "09:00", "duration": 120, "type": "focus"}
			]}
		],
		"tips": ["start early"],
		"totalWeekHours": 20
	}`

	var seenPrompt string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req generateRequest
		require.NoError(t, json.Unmarshal(body, &req))
		seenPrompt = req.Contents[0].Parts[0].Text
		w.Write([]byte(candidateResponse(planJSON)))
	})

	due := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{
			Title:           "Problem set 3",
			Course:          "Calculus",
			DueDate:         due,
			Priority:        model.PriorityHigh,
			EstimatedEffort: 90 * time.Minute,
		},
	}

	plan, err := client.GenerateStudyPlan(context.Background(), tasks)
	require.NoError(t, err)

	require.Len(t, plan.DailyPlans, 1)
	assert.Equal(t, 20, plan.TotalWeekHours)
	assert.Equal(t, "focus", plan.DailyPlans[0].Sessions[0].Kind)

	// Every serialized task property must reach the prompt.
	assert.Contains(t, seenPrompt, "Problem set 3")
	assert.Contains(t, seenPrompt, "Calculus")
	assert.Contains(t, seenPrompt, "2026-09-02T12:00:00Z")
	assert.Contains(t, seenPrompt, "high")
	assert.Contains(t, seenPrompt, "90")
}

func TestGenerateStudyPlan_MalformedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse("not json at all")))
	})

	_, err := client.GenerateStudyPlan(context.Background(), []model.Task{{Title: "t"}})
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestChatWithDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req generateRequest
		require.NoError(t, json.Unmarshal(body, &req))
		prompt := req.Contents[0].Parts[0].Text
		assert.Contains(t, prompt, "the document body")
		assert.Contains(t, prompt, "what is this about?")
		w.Write([]byte(candidateResponse("it is about testing")))
	})

	answer, err := client.ChatWithDocument(context.Background(), "what is this about?", "the document body")
	require.NoError(t, err)
	assert.Equal(t, "it is about testing", answer)
}
