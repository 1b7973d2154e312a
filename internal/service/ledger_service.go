package service

import (
	"context"
	"fmt"

	"hirelens/internal/repository"
)

// LedgerService owns interview credit consumption. Consume and Refund are
// the only code paths that mutate a subscription's remaining credits, and
// both delegate to single conditional updates in the repository so they
// are safe under arbitrary concurrent callers.
type LedgerService struct {
	subscriptionRepo repository.SubscriptionRepo
}

// NewLedgerService creates a new ledger service
func NewLedgerService(subscriptionRepo repository.SubscriptionRepo) *LedgerService {
	return &LedgerService{subscriptionRepo: subscriptionRepo}
}

// Consume spends one interview credit. Two simultaneous calls can never
// both succeed when only one credit remains.
func (s *LedgerService) Consume(ctx context.Context, subscriptionID string) error {
	ok, err := s.subscriptionRepo.ConsumeCredit(ctx, subscriptionID)
	if err != nil {
		return fmt.Errorf("consume credit: %w", err)
	}
	if ok {
		return nil
	}

	// Condition not met: distinguish a missing subscription from an
	// exhausted or inactive one.
	sub, err := s.subscriptionRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return fmt.Errorf("consume credit: %w", err)
	}
	if sub == nil {
		return ErrNotFound
	}
	return ErrQuotaExhausted
}

// Refund returns one credit. Used only when an interview that consumed
// quota is cancelled before any question was answered. The repository
// caps remaining at the plan total, so a stray double refund is a no-op.
func (s *LedgerService) Refund(ctx context.Context, subscriptionID string) error {
	_, err := s.subscriptionRepo.RefundCredit(ctx, subscriptionID)
	if err != nil {
		return fmt.Errorf("refund credit: %w", err)
	}
	return nil
}
