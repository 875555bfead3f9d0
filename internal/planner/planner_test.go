package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DalPra0/MetodoCanvas/internal/gemini"
	"github.com/DalPra0/MetodoCanvas/internal/model"
)

type fakePlanClient struct {
	plan   gemini.WeeklyPlan
	err    error
	called bool
}

func (f *fakePlanClient) GenerateStudyPlan(ctx context.Context, tasks []model.Task) (gemini.WeeklyPlan, error) {
	f.called = true
	return f.plan, f.err
}

func TestNew_RequiresClient(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)
}

func TestGeneratePlan(t *testing.T) {
	client := &fakePlanClient{plan: gemini.WeeklyPlan{TotalWeekHours: 18}}
	p, err := New(client, nil)
	require.NoError(t, err)

	plan, err := p.GeneratePlan(context.Background(), []model.Task{{Title: "Essay"}})
	require.NoError(t, err)
	assert.Equal(t, 18, plan.TotalWeekHours)
	assert.Equal(t, "Study plan ready", p.Status())
}

func TestGeneratePlan_EmptyFailsFast(t *testing.T) {
	client := &fakePlanClient{}
	p, err := New(client, nil)
	require.NoError(t, err)

	_, err = p.GeneratePlan(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoPendingTasks)
	assert.False(t, client.called, "empty input must not reach the remote client")
}

func TestGeneratePlan_ParseFailureIsHard(t *testing.T) {
	client := &fakePlanClient{err: gemini.ErrInvalidResponse}
	p, err := New(client, nil)
	require.NoError(t, err)

	plan, err := p.GeneratePlan(context.Background(), []model.Task{{Title: "Essay"}})
	require.ErrorIs(t, err, gemini.ErrInvalidResponse)
	assert.Zero(t, plan.TotalWeekHours, "no partial plan on failure")
}
