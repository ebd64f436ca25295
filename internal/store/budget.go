package store

import (
	"context"
	"fmt"
	"log/slog"

	"midas/internal/core"
	"midas/internal/kv"
)

// BudgetStore holds the monthly budget scalar. Unlike the list stores, a
// value that fails to parse is not fatal here: the budget defaults to
// zero and the bad value is logged, matching how an absent budget reads.
type BudgetStore struct {
	kv     kv.Store
	budget core.Money
}

func NewBudgetStore(ctx context.Context, store kv.Store) (*BudgetStore, error) {
	s := &BudgetStore{kv: store}

	raw, ok, err := store.Get(ctx, kv.KeyBudget)
	if err != nil {
		return nil, fmt.Errorf("load budget: %w", err)
	}
	if !ok {
		return s, nil
	}
	cents, err := core.ParseCents(raw)
	if err != nil {
		slog.WarnContext(ctx, "Stored budget is not a number, defaulting to zero", "value", raw)
		return s, nil
	}
	s.budget = core.Money{Cents: cents}
	return s, nil
}

// Current returns the budget loaded at construction or written last.
func (s *BudgetStore) Current() core.Money {
	return s.budget
}

// Set persists the budget as plain decimal text under its own key.
func (s *BudgetStore) Set(ctx context.Context, budget core.Money) error {
	if err := s.kv.Set(ctx, kv.KeyBudget, budget.String()); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	s.budget = budget
	return nil
}
