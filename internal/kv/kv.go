// Package kv is the string-keyed persistence boundary of the tracker.
//
// The stores treat it as an opaque mapping from fixed keys to serialized
// text. Backends differ only in durability: memory (tests, throwaway
// sessions), file (one file per key under a data directory) and sqlite.
package kv

import "context"

// Keys the stores persist under. The layout is part of the on-disk
// contract: "accounts" and "transactions" hold JSON arrays, the budget is
// plain decimal text.
const (
	KeyAccounts     = "accounts"
	KeyTransactions = "transactions"
	KeyBudget       = "currentBudget"
)

// Store is a synchronous key-value mapping. Get reports absence through
// the second return value rather than an error; errors mean the backend
// itself failed and callers are expected to propagate them, not recover.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}
