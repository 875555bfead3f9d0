package gemini

// generateRequest is the generateContent request envelope.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the generateContent response envelope. Only the text of
// the first candidate part is consumed.
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content *content `json:"content"`
}

// SyllabusAnalysis is the structured result of analyzing a syllabus document.
type SyllabusAnalysis struct {
	Topics         []string         `json:"topics"`
	ImportantDates []ImportantDate  `json:"importantDates"`
	StudySchedule  []WeeklySchedule `json:"studySchedule"`
	Prerequisites  []string         `json:"prerequisites"`

	// Evaluation maps assessment components to their grade weight.
	Evaluation map[string]int `json:"evaluation"`
}

// ImportantDate is a dated event extracted from a syllabus. Weight is the
// event's share of the final grade, in [0, 100].
type ImportantDate struct {
	Event  string `json:"event"`
	Date   string `json:"date"`
	Weight int    `json:"weight"`
}

// WeeklySchedule is one week of the suggested study cadence.
type WeeklySchedule struct {
	Week   int      `json:"week"`
	Topics []string `json:"topics"`
	Hours  int      `json:"hours"`
}

// WeeklyPlan is an AI-generated seven-day study plan.
type WeeklyPlan struct {
	DailyPlans     []DailyPlan `json:"dailyPlans"`
	Tips           []string    `json:"tips"`
	TotalWeekHours int         `json:"totalWeekHours"`
}

// DailyPlan is one day of a weekly plan.
type DailyPlan struct {
	Date       string        `json:"date"`
	TotalHours int           `json:"totalHours"`
	Sessions   []PlanSession `json:"sessions"`
}

// PlanSession is a single planned study block. Duration is in minutes and
// StartTime is a HH:MM clock string.
type PlanSession struct {
	Task      string `json:"task"`
	StartTime string `json:"startTime"`
	Duration  int    `json:"duration"`
	Kind      string `json:"type"`
}
