// Package report derives the dashboard figures from the transaction and
// budget stores. Every value is recomputed on each call; nothing is
// cached between reads.
package report

import (
	"sort"
	"time"

	"midas/internal/core"
	"midas/internal/store"
)

// DefaultRecentLimit is how many transactions the dashboard shows.
const DefaultRecentLimit = 5

type Calculator struct {
	transactions *store.TransactionStore
	budget       *store.BudgetStore
}

// Overview is the dashboard snapshot for one month.
type Overview struct {
	TotalSpend   core.Money
	Count        int
	AverageDaily core.Money
	Budget       core.Money
	Remaining    core.Money
	ProgressPct  float64
	Recent       []core.Transaction
}

func NewCalculator(transactions *store.TransactionStore, budget *store.BudgetStore) *Calculator {
	return &Calculator{transactions: transactions, budget: budget}
}

func sameMonth(d core.Date, now time.Time) bool {
	return d.Time.Year() == now.Year() && d.Time.Month() == now.Month()
}

// MonthlySpend sums the amounts of transactions in now's calendar month.
func (c *Calculator) MonthlySpend(now time.Time) core.Money {
	var cents int64
	for _, t := range c.transactions.List() {
		if sameMonth(t.Date, now) {
			cents += t.Amount.Cents
		}
	}
	return core.Money{Cents: cents}
}

// MonthlyTransactionCount counts the transactions in now's calendar month.
func (c *Calculator) MonthlyTransactionCount(now time.Time) int {
	count := 0
	for _, t := range c.transactions.List() {
		if sameMonth(t.Date, now) {
			count++
		}
	}
	return count
}

// RecentTransactions returns the newest transactions first, at most limit
// of them. Equal dates keep their original order (stable sort). A limit
// of zero or below falls back to DefaultRecentLimit.
func (c *Calculator) RecentTransactions(limit int) []core.Transaction {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	transactions := c.transactions.List()
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date.Time)
	})
	if len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions
}

// AverageDailySpend divides the month's spend by the day of the month.
// The day guard never fires with real clock values but keeps arbitrary
// inputs from dividing by zero.
func (c *Calculator) AverageDailySpend(now time.Time) core.Money {
	day := now.Day()
	if day <= 0 {
		return core.Money{}
	}
	return core.Money{Cents: c.MonthlySpend(now).Cents / int64(day)}
}

// BudgetRemaining is budget minus spend. Negative means over budget; the
// caller decides how to present that.
func (c *Calculator) BudgetRemaining(budget, spend core.Money) core.Money {
	return core.Money{Cents: budget.Cents - spend.Cents}
}

// BudgetProgressPercent reports spend against budget clamped to [0,100].
// A zero budget reads as 0 percent, not an error.
func (c *Calculator) BudgetProgressPercent(budget, spend core.Money) float64 {
	if budget.Cents == 0 {
		return 0
	}
	pct := float64(spend.Cents) / float64(budget.Cents) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Overview assembles the full dashboard snapshot for now's month.
func (c *Calculator) Overview(now time.Time) Overview {
	spend := c.MonthlySpend(now)
	budget := c.budget.Current()
	return Overview{
		TotalSpend:   spend,
		Count:        c.MonthlyTransactionCount(now),
		AverageDaily: c.AverageDailySpend(now),
		Budget:       budget,
		Remaining:    c.BudgetRemaining(budget, spend),
		ProgressPct:  c.BudgetProgressPercent(budget, spend),
		Recent:       c.RecentTransactions(DefaultRecentLimit),
	}
}
