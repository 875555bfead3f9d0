// Package planner generates AI weekly study plans from pending tasks.
package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/DalPra0/MetodoCanvas/internal/gemini"
	"github.com/DalPra0/MetodoCanvas/internal/model"
)

// ErrNoPendingTasks indicates plan generation was requested with no input.
// Checked before any remote call.
var ErrNoPendingTasks = errors.New("no pending tasks to plan")

// PlanClient generates a weekly plan from a set of tasks.
type PlanClient interface {
	GenerateStudyPlan(ctx context.Context, tasks []model.Task) (gemini.WeeklyPlan, error)
}

// Planner wraps plan generation with input validation and status reporting.
type Planner struct {
	client PlanClient
	logger *zap.Logger

	mu     sync.Mutex
	status string
}

// New creates a planner.
func New(client PlanClient, logger *zap.Logger) (*Planner, error) {
	if client == nil {
		return nil, errors.New("plan client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{client: client, logger: logger}, nil
}

// Status returns the human-readable state of the last operation.
func (p *Planner) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Planner) setStatus(format string, args ...any) {
	p.mu.Lock()
	p.status = fmt.Sprintf(format, args...)
	p.mu.Unlock()
}

// GeneratePlan builds a weekly plan from the given pending tasks. An empty
// task list fails fast without a remote call, and a malformed AI response is
// a hard error; no partial plan is ever returned.
func (p *Planner) GeneratePlan(ctx context.Context, pending []model.Task) (gemini.WeeklyPlan, error) {
	if len(pending) == 0 {
		p.setStatus("Add some tasks first")
		return gemini.WeeklyPlan{}, ErrNoPendingTasks
	}

	p.setStatus("Generating study plan...")
	plan, err := p.client.GenerateStudyPlan(ctx, pending)
	if err != nil {
		p.setStatus("Plan generation failed: %v", err)
		return gemini.WeeklyPlan{}, err
	}

	p.logger.Info("study plan generated",
		zap.Int("days", len(plan.DailyPlans)),
		zap.Int("total_week_hours", plan.TotalWeekHours))
	p.setStatus("Study plan ready")
	return plan, nil
}
