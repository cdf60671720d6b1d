// Package summary computes balances and monthly breakdowns over an in-memory
// transaction list. It performs no I/O; callers fetch the rows first.
package summary

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grana-app/grana/internal/transaction"
)

// CategoryAmount is an expense total for one category label.
type CategoryAmount struct {
	Category string          `json:"categoria"`
	Amount   decimal.Decimal `json:"valor"`
}

// Totals holds the gross income and expense sums for a month, without netting.
type Totals struct {
	Income  decimal.Decimal `json:"receitas"`
	Expense decimal.Decimal `json:"despesas"`
}

// TotalBalance sums every transaction, income positive and expense negative.
func TotalBalance(transactions []transaction.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(signed(t))
	}
	return total
}

// MonthTransactions returns the subset of transactions dated in the same
// calendar month and year as ref. Rows with an unparsable date are skipped
// with a warning rather than failing the whole computation.
func MonthTransactions(transactions []transaction.Transaction, ref time.Time, logger *slog.Logger) []transaction.Transaction {
	month := make([]transaction.Transaction, 0)
	for _, t := range transactions {
		parsed, err := parseDate(t.Date)
		if err != nil {
			if logger != nil {
				logger.Warn("transação com data inválida ignorada", "id", t.ID, "data", t.Date)
			}
			continue
		}
		if parsed.Year() == ref.Year() && parsed.Month() == ref.Month() {
			month = append(month, t)
		}
	}
	return month
}

// MonthlyBalance nets income against expense for the reference month.
func MonthlyBalance(transactions []transaction.Transaction, ref time.Time, logger *slog.Logger) decimal.Decimal {
	return TotalBalance(MonthTransactions(transactions, ref, logger))
}

// MonthlyTotals sums income and expense separately for the reference month.
func MonthlyTotals(transactions []transaction.Transaction, ref time.Time, logger *slog.Logger) Totals {
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range MonthTransactions(transactions, ref, logger) {
		switch t.Kind {
		case transaction.KindIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case transaction.KindExpense:
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}
	return totals
}

// ExpenseByCategory groups the month's expenses by category label, summing
// amounts. Labels are case-sensitive and keep first-encounter order.
func ExpenseByCategory(transactions []transaction.Transaction, ref time.Time, logger *slog.Logger) []CategoryAmount {
	index := make(map[string]int)
	grouped := make([]CategoryAmount, 0)
	for _, t := range MonthTransactions(transactions, ref, logger) {
		if t.Kind != transaction.KindExpense {
			continue
		}
		i, seen := index[t.Category]
		if !seen {
			index[t.Category] = len(grouped)
			grouped = append(grouped, CategoryAmount{Category: t.Category, Amount: t.Amount})
			continue
		}
		grouped[i].Amount = grouped[i].Amount.Add(t.Amount)
	}
	return grouped
}

func signed(t transaction.Transaction) decimal.Decimal {
	if t.Kind == transaction.KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// parseDate accepts a plain ISO date or anything with one as prefix, such as
// a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, nil
	}
	if len(s) > 10 {
		if d, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", s)
}
