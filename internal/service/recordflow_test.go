package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flowCalls struct {
	deactivated bool
	deleted     bool
	cascaded    bool
}

func testFlow(dependents int64, calls *flowCalls) DeleteFlow[int64] {
	return DeleteFlow[int64]{
		CountDependents: func(ctx context.Context, id int64) (int64, error) { return dependents, nil },
		Deactivate:      func(ctx context.Context, id int64) error { calls.deactivated = true; return nil },
		Delete:          func(ctx context.Context, id int64) error { calls.deleted = true; return nil },
		DeleteCascade:   func(ctx context.Context, id int64) error { calls.cascaded = true; return nil },
	}
}

func TestDeleteFlowUnconfirmedCancels(t *testing.T) {
	var calls flowCalls
	outcome, err := testFlow(0, &calls).Run(context.Background(), 1, DeleteRequest{})

	require.NoError(t, err)
	assert.Equal(t, Cancelled, outcome)
	assert.Equal(t, flowCalls{}, calls)
}

func TestDeleteFlowNoDependentsDeletes(t *testing.T) {
	var calls flowCalls
	outcome, err := testFlow(0, &calls).Run(context.Background(), 1, DeleteRequest{Confirmed: true})

	require.NoError(t, err)
	assert.Equal(t, Deleted, outcome)
	assert.True(t, calls.deleted)
	assert.False(t, calls.cascaded)
}

func TestDeleteFlowDependentsDeactivates(t *testing.T) {
	var calls flowCalls
	outcome, err := testFlow(3, &calls).Run(context.Background(), 1, DeleteRequest{
		Confirmed:  true,
		Deactivate: true,
	})

	require.NoError(t, err)
	assert.Equal(t, Deactivated, outcome)
	assert.True(t, calls.deactivated)
	assert.False(t, calls.deleted)
}

func TestDeleteFlowDependentsWithoutCascadeCancels(t *testing.T) {
	var calls flowCalls
	outcome, err := testFlow(3, &calls).Run(context.Background(), 1, DeleteRequest{Confirmed: true})

	require.NoError(t, err)
	assert.Equal(t, Cancelled, outcome)
	assert.Equal(t, flowCalls{}, calls)
}

func TestDeleteFlowCascadeConfirmed(t *testing.T) {
	var calls flowCalls
	outcome, err := testFlow(3, &calls).Run(context.Background(), 1, DeleteRequest{
		Confirmed:        true,
		CascadeConfirmed: true,
	})

	require.NoError(t, err)
	assert.Equal(t, Deleted, outcome)
	assert.True(t, calls.cascaded)
	assert.False(t, calls.deleted)
}

func TestDeleteFlowCountErrorCancels(t *testing.T) {
	flow := DeleteFlow[int64]{
		CountDependents: func(ctx context.Context, id int64) (int64, error) {
			return 0, errors.New("boom")
		},
	}
	outcome, err := flow.Run(context.Background(), 1, DeleteRequest{Confirmed: true})

	assert.Error(t, err)
	assert.Equal(t, Cancelled, outcome)
}

func TestDeleteFlowNilCounterTreatsAsNoDependents(t *testing.T) {
	var calls flowCalls
	flow := testFlow(0, &calls)
	flow.CountDependents = nil

	outcome, err := flow.Run(context.Background(), 1, DeleteRequest{Confirmed: true})

	require.NoError(t, err)
	assert.Equal(t, Deleted, outcome)
	assert.True(t, calls.deleted)
}
