package firestore

import (
	"time"

	"github.com/google/uuid"

	"github.com/DalPra0/MetodoCanvas/internal/model"
)

// value is a Firestore typed field value. Exactly one member is set.
type value struct {
	StringValue    *string  `json:"stringValue,omitempty"`
	TimestampValue *string  `json:"timestampValue,omitempty"`
	BooleanValue   *bool    `json:"booleanValue,omitempty"`
	DoubleValue    *float64 `json:"doubleValue,omitempty"`
}

func stringValue(s string) value  { return value{StringValue: &s} }
func boolValue(b bool) value      { return value{BooleanValue: &b} }
func doubleValue(f float64) value { return value{DoubleValue: &f} }

func timestampValue(t time.Time) value {
	s := t.UTC().Format(time.RFC3339)
	return value{TimestampValue: &s}
}

func (v value) asString() (string, bool) {
	if v.StringValue == nil {
		return "", false
	}
	return *v.StringValue, true
}

func (v value) asBool() (bool, bool) {
	if v.BooleanValue == nil {
		return false, false
	}
	return *v.BooleanValue, true
}

func (v value) asDouble() (float64, bool) {
	if v.DoubleValue == nil {
		return 0, false
	}
	return *v.DoubleValue, true
}

func (v value) asTimestamp() (time.Time, bool) {
	if v.TimestampValue == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, *v.TimestampValue)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// document is a Firestore REST document.
type document struct {
	Name   string           `json:"name,omitempty"`
	Fields map[string]value `json:"fields"`
}

// documentList is the response body of a collection GET.
type documentList struct {
	Documents []document `json:"documents"`
}

func taskToDocument(t model.Task) document {
	return document{Fields: map[string]value{
		"id":            stringValue(t.ID),
		"title":         stringValue(t.Title),
		"description":   stringValue(t.Description),
		"course":        stringValue(t.Course),
		"priority":      stringValue(string(t.Priority)),
		"dueDate":       timestampValue(t.DueDate),
		"isCompleted":   boolValue(t.Completed),
		"estimatedTime": doubleValue(t.EstimatedEffort.Seconds()),
		"createdAt":     timestampValue(t.CreatedAt),
	}}
}

// documentToTask decodes one remote document. The second return value is
// false when any required field is missing or malformed; such documents are
// dropped from pull results.
func documentToTask(doc document) (model.Task, bool) {
	f := doc.Fields

	title, ok := f["title"].asString()
	if !ok {
		return model.Task{}, false
	}
	description, ok := f["description"].asString()
	if !ok {
		return model.Task{}, false
	}
	course, ok := f["course"].asString()
	if !ok {
		return model.Task{}, false
	}
	priorityRaw, ok := f["priority"].asString()
	if !ok {
		return model.Task{}, false
	}
	priority, ok := model.ParsePriority(priorityRaw)
	if !ok {
		return model.Task{}, false
	}
	dueDate, ok := f["dueDate"].asTimestamp()
	if !ok {
		return model.Task{}, false
	}
	completed, ok := f["isCompleted"].asBool()
	if !ok {
		return model.Task{}, false
	}
	estimatedSeconds, ok := f["estimatedTime"].asDouble()
	if !ok {
		return model.Task{}, false
	}

	id, ok := f["id"].asString()
	if !ok || id == "" {
		id = uuid.NewString()
	}
	createdAt, ok := f["createdAt"].asTimestamp()
	if !ok {
		createdAt = time.Now()
	}

	return model.Task{
		ID:              id,
		Title:           title,
		Description:     description,
		DueDate:         dueDate,
		Course:          course,
		Priority:        priority,
		Completed:       completed,
		EstimatedEffort: time.Duration(estimatedSeconds * float64(time.Second)),
		CreatedAt:       createdAt,
	}, true
}

func courseToDocument(c model.Course) document {
	return document{Fields: map[string]value{
		"id":         stringValue(c.ID),
		"name":       stringValue(c.Name),
		"code":       stringValue(c.Code),
		"instructor": stringValue(c.Instructor),
		"colorHex":   stringValue(c.ColorHex),
	}}
}

func documentToCourse(doc document) (model.Course, bool) {
	f := doc.Fields

	name, ok := f["name"].asString()
	if !ok {
		return model.Course{}, false
	}
	code, ok := f["code"].asString()
	if !ok {
		return model.Course{}, false
	}
	instructor, ok := f["instructor"].asString()
	if !ok {
		return model.Course{}, false
	}
	colorHex, ok := f["colorHex"].asString()
	if !ok {
		return model.Course{}, false
	}

	id, ok := f["id"].asString()
	if !ok || id == "" {
		id = uuid.NewString()
	}

	return model.Course{
		ID:         id,
		Name:       name,
		Code:       code,
		Instructor: instructor,
		ColorHex:   colorHex,
	}, true
}
