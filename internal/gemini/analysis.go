package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/DalPra0/MetodoCanvas/internal/model"
)

const syllabusPromptTemplate = `Analyze the following course syllabus and extract this information as JSON:
1. List of main topics
2. Important dates (exams, assignments, presentations)
3. Suggested study schedule
4. Prerequisites or required background
5. Evaluation scheme

Syllabus:
%s

Respond with valid JSON only, following this structure:
{
    "topics": ["topic1", "topic2"],
    "importantDates": [{"event": "Exam 1", "date": "2024-09-15", "weight": 30}],
    "studySchedule": [{"week": 1, "topics": ["intro"], "hours": 4}],
    "prerequisites": ["basic math"],
    "evaluation": {"exams": 60, "assignments": 40}
}`

const planPromptTemplate = `Based on the following pending tasks, build an optimized study plan for the next 7 days:

Tasks: [%s]

Consider:
1. Task priorities
2. Due dates
3. Estimated effort per task
4. Balanced distribution across the week
5. Rest breaks

Respond with JSON following this structure:
{
    "dailyPlans": [
        {
            "date": "2024-08-06",
            "totalHours": 6,
            "sessions": [
                {"task": "Study calculus", "startTime": "09:00", "duration": 120, "type": "focus"}
            ]
        }
    ],
    "tips": ["tip1", "tip2"],
    "totalWeekHours": 40
}`

const chatPromptTemplate = `Based on the following document, answer the user's question:

Document:
%s

Question: %s

Answer clearly and concisely, citing relevant parts of the document where needed.`

// AnalyzeSyllabus extracts structured information from syllabus text. The
// response must decode into SyllabusAnalysis or the call fails.
func (c *Client) AnalyzeSyllabus(ctx context.Context, syllabusText string) (SyllabusAnalysis, error) {
	prompt := fmt.Sprintf(syllabusPromptTemplate, syllabusText)

	text, err := c.GenerateContent(ctx, prompt)
	if err != nil {
		return SyllabusAnalysis{}, err
	}

	var analysis SyllabusAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return SyllabusAnalysis{}, fmt.Errorf("%w: syllabus analysis: %v", ErrInvalidResponse, err)
	}
	return analysis, nil
}

// GenerateStudyPlan builds a seven-day plan from pending tasks. Each task's
// title, course, due date, priority, and estimated effort go into the prompt.
// No partial plan is returned on parse failure.
func (c *Client) GenerateStudyPlan(ctx context.Context, tasks []model.Task) (WeeklyPlan, error) {
	entries := make([]string, 0, len(tasks))
	for _, t := range tasks {
		entries = append(entries, fmt.Sprintf(
			`{"title": %q, "course": %q, "dueDate": %q, "priority": %q, "estimatedMinutes": %d}`,
			t.Title, t.Course, t.DueDate.Format(time.RFC3339), t.Priority,
			int(t.EstimatedEffort.Minutes())))
	}
	prompt := fmt.Sprintf(planPromptTemplate, strings.Join(entries, ","))

	text, err := c.GenerateContent(ctx, prompt)
	if err != nil {
		return WeeklyPlan{}, err
	}

	var plan WeeklyPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return WeeklyPlan{}, fmt.Errorf("%w: weekly plan: %v", ErrInvalidResponse, err)
	}
	return plan, nil
}

// ChatWithDocument answers a free-form question grounded in document text.
func (c *Client) ChatWithDocument(ctx context.Context, question, documentText string) (string, error) {
	prompt := fmt.Sprintf(chatPromptTemplate, documentText, question)
	return c.GenerateContent(ctx, prompt)
}
