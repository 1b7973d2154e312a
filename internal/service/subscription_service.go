package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"hirelens/internal/model"
	"hirelens/internal/repository"
)

// SubscriptionService manages interview credit plans. Credits themselves
// move only through the ledger.
type SubscriptionService struct {
	subscriptionRepo repository.SubscriptionRepo
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepo) *SubscriptionService {
	return &SubscriptionService{subscriptionRepo: subscriptionRepo}
}

// Create provisions a plan with the given number of interview credits.
func (s *SubscriptionService) Create(ctx context.Context, ownerID, planName string, credits int) (*model.Subscription, error) {
	if planName == "" || credits <= 0 {
		return nil, ErrValidation
	}

	existing, err := s.subscriptionRepo.GetActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load subscription: %w", err)
	}
	if existing != nil {
		// One active plan per owner; the old one is retired first.
		if err := s.subscriptionRepo.UpdateStatus(ctx, existing.ID, model.SubscriptionExpired); err != nil {
			return nil, fmt.Errorf("expire previous subscription: %w", err)
		}
	}

	sub := &model.Subscription{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		PlanName:         planName,
		CreditsRemaining: credits,
		CreditsTotal:     credits,
		Status:           model.SubscriptionActive,
	}
	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return sub, nil
}

// Get returns an owner's subscription by id.
func (s *SubscriptionService) Get(ctx context.Context, ownerID, id string) (*model.Subscription, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load subscription: %w", err)
	}
	if sub == nil || sub.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return sub, nil
}

// GetActive returns the owner's current active subscription.
func (s *SubscriptionService) GetActive(ctx context.Context, ownerID string) (*model.Subscription, error) {
	sub, err := s.subscriptionRepo.GetActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load subscription: %w", err)
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	return sub, nil
}
