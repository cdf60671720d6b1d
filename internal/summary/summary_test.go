package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grana-app/grana/internal/logging"
	"github.com/grana-app/grana/internal/transaction"
)

func tx(kind transaction.Kind, amount, category, date string) transaction.Transaction {
	return transaction.Transaction{
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     date,
		Kind:     kind,
	}
}

func TestTotalBalance(t *testing.T) {
	transactions := []transaction.Transaction{
		tx(transaction.KindIncome, "100", "Salário", "2025-02-01"),
		tx(transaction.KindExpense, "40", "Mercado", "2025-02-03"),
	}

	got := TotalBalance(transactions)
	if !got.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected 60, got %s", got)
	}
}

func TestTotalBalanceEmpty(t *testing.T) {
	if got := TotalBalance(nil); !got.IsZero() {
		t.Fatalf("expected zero, got %s", got)
	}
}

func TestMonthlyBalanceFiltersMonth(t *testing.T) {
	transactions := []transaction.Transaction{
		tx(transaction.KindIncome, "100", "Salário", "2025-01-15"),
		tx(transaction.KindIncome, "200", "Salário", "2025-02-05"),
		tx(transaction.KindExpense, "50", "Mercado", "2025-02-20"),
		tx(transaction.KindExpense, "999", "Aluguel", "2024-02-10"), // same month, other year
	}
	feb := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	got := MonthlyBalance(transactions, feb, logging.Discard())
	if !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected 150, got %s", got)
	}
}

func TestMonthlyBalanceSkipsUnparsableDates(t *testing.T) {
	transactions := []transaction.Transaction{
		tx(transaction.KindIncome, "100", "Salário", "2025-02-05"),
		tx(transaction.KindIncome, "500", "Salário", "not-a-date"),
	}
	feb := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	got := MonthlyBalance(transactions, feb, logging.Discard())
	if !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected unparsable row skipped, got %s", got)
	}
}

func TestMonthTransactionsAcceptsTimestampDates(t *testing.T) {
	transactions := []transaction.Transaction{
		tx(transaction.KindIncome, "10", "x", "2025-02-05T13:45:00Z"),
	}
	feb := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	if got := MonthTransactions(transactions, feb, logging.Discard()); len(got) != 1 {
		t.Fatalf("expected timestamp-dated row included, got %d rows", len(got))
	}
}

func TestMonthlyTotalsNoNetting(t *testing.T) {
	transactions := []transaction.Transaction{
		tx(transaction.KindIncome, "300", "Salário", "2025-02-01"),
		tx(transaction.KindExpense, "120", "Mercado", "2025-02-02"),
		tx(transaction.KindExpense, "30", "Transporte", "2025-02-03"),
	}
	feb := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	totals := MonthlyTotals(transactions, feb, logging.Discard())
	if !totals.Income.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected income 300, got %s", totals.Income)
	}
	if !totals.Expense.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected expense 150, got %s", totals.Expense)
	}
}

func TestExpenseByCategoryCaseSensitive(t *testing.T) {
	transactions := []transaction.Transaction{
		tx(transaction.KindExpense, "10", "Food", "2025-02-01"),
		tx(transaction.KindExpense, "20", "food", "2025-02-02"),
		tx(transaction.KindExpense, "5", "Food", "2025-02-03"),
	}
	feb := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	got := ExpenseByCategory(transactions, feb, logging.Discard())
	if len(got) != 2 {
		t.Fatalf("expected two distinct categories, got %+v", got)
	}
	if got[0].Category != "Food" || !got[0].Amount.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("unexpected first group %+v", got[0])
	}
	if got[1].Category != "food" || !got[1].Amount.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("unexpected second group %+v", got[1])
	}
}

func TestExpenseByCategoryFirstEncounterOrder(t *testing.T) {
	transactions := []transaction.Transaction{
		tx(transaction.KindExpense, "10", "Transporte", "2025-02-01"),
		tx(transaction.KindExpense, "20", "Mercado", "2025-02-02"),
		tx(transaction.KindExpense, "30", "Transporte", "2025-02-03"),
		tx(transaction.KindIncome, "999", "Salário", "2025-02-04"), // income never grouped
	}
	feb := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	got := ExpenseByCategory(transactions, feb, logging.Discard())
	if len(got) != 2 {
		t.Fatalf("expected two groups, got %+v", got)
	}
	if got[0].Category != "Transporte" || got[1].Category != "Mercado" {
		t.Fatalf("expected first-encounter order, got %+v", got)
	}
	if !got[0].Amount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected Transporte total 40, got %s", got[0].Amount)
	}
}
