package canvas

import "time"

// Course is a read-only projection of a Canvas roster course.
type Course struct {
	ID                     int    `json:"id"`
	Name                   string `json:"name"`
	CourseCode             string `json:"course_code"`
	Term                   *Term  `json:"term,omitempty"`
	SyllabusBody           string `json:"syllabus_body,omitempty"`
	AccessRestrictedByDate bool   `json:"access_restricted_by_date"`
}

// IsValid reports whether the course is eligible for import: it must have a
// name and must not be access-restricted.
func (c Course) IsValid() bool {
	return c.Name != "" && !c.AccessRestrictedByDate
}

// Term is the academic term a course belongs to.
type Term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Assignment is a read-only projection of a Canvas assignment.
type Assignment struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	DueAt          string  `json:"due_at"`
	PointsPossible float64 `json:"points_possible"`
	CourseID       int     `json:"course_id"`
}

// DueDate parses the assignment's due timestamp. Canvas emits RFC 3339 with
// or without fractional seconds. The second return value is false when the
// timestamp is absent or unparsable.
func (a Assignment) DueDate() (time.Time, bool) {
	if a.DueAt == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, a.DueAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
