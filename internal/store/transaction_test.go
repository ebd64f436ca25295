package store

import (
	"context"
	"errors"
	"testing"

	"midas/internal/core"
	"midas/internal/kv"
)

// countingStore wraps a kv.Store and counts writes, so tests can assert
// that an operation persisted even when it changed nothing.
type countingStore struct {
	kv.Store
	sets int
}

func (c *countingStore) Set(ctx context.Context, key, value string) error {
	c.sets++
	return c.Store.Set(ctx, key, value)
}

func newTransactionStore(t *testing.T, backing kv.Store) *TransactionStore {
	t.Helper()
	s, err := NewTransactionStore(context.Background(), backing)
	if err != nil {
		t.Fatalf("new transaction store: %v", err)
	}
	return s
}

func TestTransactionAddAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	s := newTransactionStore(t, kv.NewMemory())

	tx := core.Transaction{
		Date:        core.NewDate(2025, 1, 15),
		Description: "Groceries",
		Amount:      core.Money{Cents: 4250},
	}

	var last int64
	for i := 0; i < 10; i++ {
		added, err := s.Add(ctx, tx)
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if added.ID <= last {
			t.Fatalf("ID %d not strictly greater than previous %d", added.ID, last)
		}
		last = added.ID
	}
}

func TestTransactionAddKeepsCallerID(t *testing.T) {
	ctx := context.Background()
	s := newTransactionStore(t, kv.NewMemory())

	added, err := s.Add(ctx, core.Transaction{
		ID:          42,
		Date:        core.NewDate(2025, 1, 15),
		Description: "Imported",
		Amount:      core.Money{Cents: 100},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID != 42 {
		t.Fatalf("caller-assigned ID must survive, got %d", added.ID)
	}
}

func TestTransactionPersistRehydratesDates(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemory()

	s := newTransactionStore(t, backing)
	want := []core.Date{
		core.NewDate(2024, 1, 15),
		core.NewDate(2024, 7, 20),
		core.NewDate(2025, 1, 10),
	}
	for i, d := range want {
		if _, err := s.Add(ctx, core.Transaction{
			Date:        d,
			Description: "tx",
			Amount:      core.Money{Cents: int64(100 * (i + 1))},
		}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	reloaded := newTransactionStore(t, backing)
	got := reloaded.List()
	if len(got) != len(want) {
		t.Fatalf("expected %d transactions, got %d", len(want), len(got))
	}
	for i, tx := range got {
		if !tx.Date.Equal(want[i].Time) {
			t.Fatalf("transaction %d: expected date %s, got %s", i, want[i], tx.Date)
		}
	}
}

func TestTransactionLoadLegacyTimestampDates(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemory()
	legacy := `[{"id":1736899200000,"date":"2025-01-15T00:00:00.000Z","description":"Old format","amount":100}]`
	if err := backing.Set(ctx, kv.KeyTransactions, legacy); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := newTransactionStore(t, backing)
	got := s.List()
	if len(got) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(got))
	}
	if !got[0].Date.Equal(core.NewDate(2025, 1, 15).Time) {
		t.Fatalf("expected rehydrated calendar date, got %s", got[0].Date)
	}
	if got[0].Amount.Cents != 10000 {
		t.Fatalf("expected 10000 cents, got %d", got[0].Amount.Cents)
	}
}

func TestTransactionCorruptContentIsFatal(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemory()
	if err := backing.Set(ctx, kv.KeyTransactions, "not json at all"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := NewTransactionStore(ctx, backing); err == nil {
		t.Fatalf("corrupt stored transactions must fail the load")
	}
}

func TestTransactionGroupByYear(t *testing.T) {
	ctx := context.Background()
	s := newTransactionStore(t, kv.NewMemory())

	dates := []core.Date{
		core.NewDate(2025, 1, 15),
		core.NewDate(2025, 3, 20),
		core.NewDate(2025, 1, 25),
		core.NewDate(2024, 6, 1),
	}
	for _, d := range dates {
		if _, err := s.Add(ctx, core.Transaction{Date: d, Description: "tx", Amount: core.Money{Cents: 100}}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	groups := s.GroupByYear(2025)
	if len(groups.ByMonth) != 2 {
		t.Fatalf("expected 2 months, got %d", len(groups.ByMonth))
	}
	if len(groups.ByMonth["January"]) != 2 {
		t.Fatalf("expected 2 January transactions, got %d", len(groups.ByMonth["January"]))
	}
	if len(groups.ByMonth["March"]) != 1 {
		t.Fatalf("expected 1 March transaction, got %d", len(groups.ByMonth["March"]))
	}
	if _, ok := groups.ByMonth["June"]; ok {
		t.Fatalf("other years must not leak into the grouping")
	}
	// First-seen order, not calendar order
	if len(groups.Months) != 2 || groups.Months[0] != "January" || groups.Months[1] != "March" {
		t.Fatalf("unexpected month order %v", groups.Months)
	}

	empty := s.GroupByYear(1999)
	if len(empty.ByMonth) != 0 || len(empty.Months) != 0 {
		t.Fatalf("year without transactions must yield an empty grouping, got %+v", empty)
	}
}

func TestTransactionDeleteMissingIDStillPersists(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{Store: kv.NewMemory()}

	s := newTransactionStore(t, backing)
	if _, err := s.Add(ctx, core.Transaction{Date: core.NewDate(2025, 1, 1), Description: "tx", Amount: core.Money{Cents: 100}}); err != nil {
		t.Fatalf("add: %v", err)
	}

	before := backing.sets
	if err := s.Delete(ctx, 999999); err != nil {
		t.Fatalf("delete of missing ID must not error: %v", err)
	}
	if len(s.List()) != 1 {
		t.Fatalf("delete of missing ID must not change the list")
	}
	if backing.sets != before+1 {
		t.Fatalf("delete must persist even when nothing changed, sets %d -> %d", before, backing.sets)
	}
}

func TestTransactionDelete(t *testing.T) {
	ctx := context.Background()
	s := newTransactionStore(t, kv.NewMemory())

	added, _ := s.Add(ctx, core.Transaction{Date: core.NewDate(2025, 1, 1), Description: "drop me", Amount: core.Money{Cents: 100}})
	s.Add(ctx, core.Transaction{Date: core.NewDate(2025, 1, 2), Description: "keep me", Amount: core.Money{Cents: 200}})

	if err := s.Delete(ctx, added.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got := s.List()
	if len(got) != 1 || got[0].Description != "keep me" {
		t.Fatalf("unexpected list after delete: %+v", got)
	}
}

func TestTransactionUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTransactionStore(t, kv.NewMemory())

	added, _ := s.Add(ctx, core.Transaction{Date: core.NewDate(2025, 1, 1), Description: "before", Amount: core.Money{Cents: 100}})

	added.Description = "after"
	added.Amount = core.Money{Cents: 250}
	if err := s.Update(ctx, added); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := s.List()
	if got[0].Description != "after" || got[0].Amount.Cents != 250 {
		t.Fatalf("update did not stick: %+v", got[0])
	}

	missing := core.Transaction{ID: 123, Date: core.NewDate(2025, 1, 1), Description: "x", Amount: core.Money{Cents: 1}}
	if err := s.Update(ctx, missing); !errors.Is(err, core.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionReplaceAllAndSave(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{Store: kv.NewMemory()}
	s := newTransactionStore(t, backing)

	replacement := []core.Transaction{
		{ID: 10, Date: core.NewDate(2025, 2, 1), Description: "a", Amount: core.Money{Cents: 100}},
		{ID: 20, Date: core.NewDate(2025, 2, 2), Description: "b", Amount: core.Money{Cents: 200}},
	}
	if err := s.ReplaceAll(ctx, replacement); err != nil {
		t.Fatalf("replace all: %v", err)
	}
	if len(s.List()) != 2 {
		t.Fatalf("expected 2 transactions after replace")
	}

	// IDs handed out afterwards must stay above the replaced ones
	added, err := s.Add(ctx, core.Transaction{Date: core.NewDate(2025, 2, 3), Description: "c", Amount: core.Money{Cents: 300}})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID <= 20 {
		t.Fatalf("ID generator must account for replaced IDs, got %d", added.ID)
	}

	before := backing.sets
	if err := s.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if backing.sets != before+1 {
		t.Fatalf("save must write through")
	}
}
