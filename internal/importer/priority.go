package importer

import (
	"time"

	"github.com/DalPra0/MetodoCanvas/internal/model"
)

// PriorityForDueDate infers a task's priority from how soon it is due.
// Brackets are inclusive on their upper bound: due within one day is urgent,
// within three days high, within seven days medium, and anything later low.
func PriorityForDueDate(due, now time.Time) model.Priority {
	days := due.Sub(now).Hours() / 24

	switch {
	case days <= 1:
		return model.PriorityUrgent
	case days <= 3:
		return model.PriorityHigh
	case days <= 7:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
