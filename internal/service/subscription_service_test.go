package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelens/internal/model"
)

func TestSubscriptionCreate_ProvisionsPlan(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(repo)

	sub, err := svc.Create(context.Background(), "owner-1", "Team Plan", 25)
	require.NoError(t, err)
	assert.Equal(t, 25, sub.CreditsRemaining)
	assert.Equal(t, 25, sub.CreditsTotal)
	assert.Equal(t, model.SubscriptionActive, sub.Status)
}

func TestSubscriptionCreate_Validation(t *testing.T) {
	svc := NewSubscriptionService(newFakeSubscriptionRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "owner-1", "", 10)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "owner-1", "Plan", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubscriptionCreate_RetiresPreviousActivePlan(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, "owner-1", "Starter", 5)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "owner-1", "Growth", 20)
	require.NoError(t, err)

	active, err := svc.GetActive(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	old, err := svc.Get(ctx, "owner-1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionExpired, old.Status)
}

func TestSubscriptionGet_ScopedToOwner(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(repo)
	ctx := context.Background()

	sub, err := svc.Create(ctx, "owner-1", "Starter", 5)
	require.NoError(t, err)

	_, err = svc.Get(ctx, "owner-2", sub.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubscriptionGetActive_NotFound(t *testing.T) {
	svc := NewSubscriptionService(newFakeSubscriptionRepo())

	_, err := svc.GetActive(context.Background(), "owner-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
