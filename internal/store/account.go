// Package store holds the session-lifetime stores for accounts,
// transactions and the budget scalar. Each store owns its in-memory list,
// loads it once at construction and writes every mutation through to the
// key-value store immediately. Corrupt persisted content is fatal at load:
// the stores never silently reset user data.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"midas/internal/core"
	"midas/internal/kv"
)

type AccountStore struct {
	kv       kv.Store
	accounts []core.Account
}

func NewAccountStore(ctx context.Context, store kv.Store) (*AccountStore, error) {
	s := &AccountStore{kv: store, accounts: []core.Account{}}

	raw, ok, err := store.Get(ctx, kv.KeyAccounts)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	if !ok {
		return s, nil
	}
	if err := json.Unmarshal([]byte(raw), &s.accounts); err != nil {
		return nil, fmt.Errorf("parse stored accounts: %w", err)
	}
	if s.accounts == nil {
		s.accounts = []core.Account{}
	}
	return s, nil
}

func (s *AccountStore) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	if err := s.kv.Set(ctx, kv.KeyAccounts, string(raw)); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}

// List returns the current accounts in insertion order.
func (s *AccountStore) List() []core.Account {
	return append([]core.Account(nil), s.accounts...)
}

// Get looks an account up by exact name.
func (s *AccountStore) Get(name string) (core.Account, error) {
	for _, a := range s.accounts {
		if a.Name == name {
			return a, nil
		}
	}
	return core.Account{}, core.ErrAccountNotFound
}

// Add appends the account and persists. The duplicate-name check is
// case-insensitive even though lookups are exact.
func (s *AccountStore) Add(ctx context.Context, a core.Account) error {
	for _, existing := range s.accounts {
		if strings.EqualFold(existing.Name, a.Name) {
			return core.ErrAccountExists
		}
	}
	s.accounts = append(s.accounts, a)
	if err := s.persist(ctx); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Account added", "name", a.Name, "balance_cents", a.Balance.Cents)
	return nil
}

// Remove drops every account with an exactly matching name. A missing
// name is not an error; the list is persisted either way.
func (s *AccountStore) Remove(ctx context.Context, name string) error {
	kept := s.accounts[:0]
	for _, a := range s.accounts {
		if a.Name != name {
			kept = append(kept, a)
		}
	}
	s.accounts = kept
	return s.persist(ctx)
}

// UpdateBalance replaces the balance of the exactly named account.
func (s *AccountStore) UpdateBalance(ctx context.Context, name string, balance core.Money) error {
	for i := range s.accounts {
		if s.accounts[i].Name == name {
			s.accounts[i].Balance = balance
			return s.persist(ctx)
		}
	}
	return core.ErrAccountNotFound
}

// TotalBalance sums every balance, recomputed on each call.
func (s *AccountStore) TotalBalance() core.Money {
	var cents int64
	for _, a := range s.accounts {
		cents += a.Balance.Cents
	}
	return core.Money{Cents: cents}
}
