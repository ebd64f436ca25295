package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"midas/internal/core"
	"midas/internal/kv"
)

type TransactionStore struct {
	kv           kv.Store
	transactions []core.Transaction
	lastID       int64
}

// YearGroups buckets one year's transactions by English month name.
// Months holds the names in first-seen order, so callers can iterate
// deterministically; months without transactions are absent entirely.
type YearGroups struct {
	Months  []string
	ByMonth map[string][]core.Transaction
}

func NewTransactionStore(ctx context.Context, store kv.Store) (*TransactionStore, error) {
	s := &TransactionStore{kv: store, transactions: []core.Transaction{}}

	raw, ok, err := store.Get(ctx, kv.KeyTransactions)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if !ok {
		return s, nil
	}
	// Date and amount fields come back as real calendar dates and cents
	// here: the core JSON codecs re-parse them on every load.
	if err := json.Unmarshal([]byte(raw), &s.transactions); err != nil {
		return nil, fmt.Errorf("parse stored transactions: %w", err)
	}
	if s.transactions == nil {
		s.transactions = []core.Transaction{}
	}
	for _, t := range s.transactions {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return s, nil
}

func (s *TransactionStore) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.transactions)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := s.kv.Set(ctx, kv.KeyTransactions, string(raw)); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}

// nextID hands out wall-clock millisecond IDs made strictly monotonic, so
// rapid successive adds (or a clock step backwards) cannot collide.
func (s *TransactionStore) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// List returns the current transactions in insertion order.
func (s *TransactionStore) List() []core.Transaction {
	return append([]core.Transaction(nil), s.transactions...)
}

// Add appends the transaction and persists, assigning an ID from the
// store's generator when the caller left it zero.
func (s *TransactionStore) Add(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if t.ID == 0 {
		t.ID = s.nextID(time.Now())
	} else if t.ID > s.lastID {
		s.lastID = t.ID
	}
	s.transactions = append(s.transactions, t)
	if err := s.persist(ctx); err != nil {
		return core.Transaction{}, err
	}
	slog.InfoContext(ctx, "Transaction added",
		"id", t.ID,
		"date", t.Date.String(),
		"amount_cents", t.Amount.Cents)
	return t, nil
}

// ReplaceAll swaps the whole list and persists. Edit and delete flows
// that mutate a local copy push it back through here.
func (s *TransactionStore) ReplaceAll(ctx context.Context, transactions []core.Transaction) error {
	s.transactions = append([]core.Transaction{}, transactions...)
	for _, t := range s.transactions {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return s.persist(ctx)
}

// Update replaces the transaction with a matching ID.
func (s *TransactionStore) Update(ctx context.Context, t core.Transaction) error {
	for i := range s.transactions {
		if s.transactions[i].ID == t.ID {
			s.transactions[i] = t
			return s.persist(ctx)
		}
	}
	return core.ErrTransactionNotFound
}

// Delete drops the transaction with the given ID. A missing ID leaves the
// list unchanged but still persists, so the write stays idempotent.
func (s *TransactionStore) Delete(ctx context.Context, id int64) error {
	kept := s.transactions[:0]
	for _, t := range s.transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.transactions = kept
	return s.persist(ctx)
}

// Save persists the current list without structural change, for flows
// that edited elements in place.
func (s *TransactionStore) Save(ctx context.Context) error {
	return s.persist(ctx)
}

// GroupByYear filters to the given calendar year and buckets by month
// name. A year with no transactions yields an empty group set.
func (s *TransactionStore) GroupByYear(year int) YearGroups {
	groups := YearGroups{ByMonth: make(map[string][]core.Transaction)}
	for _, t := range s.transactions {
		if t.Date.Year() != year {
			continue
		}
		month := t.Date.MonthName()
		if _, seen := groups.ByMonth[month]; !seen {
			groups.Months = append(groups.Months, month)
		}
		groups.ByMonth[month] = append(groups.ByMonth[month], t)
	}
	return groups
}
