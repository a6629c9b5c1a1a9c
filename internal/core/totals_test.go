package core

import "testing"

func TestSum(t *testing.T) {
	txs := []Transaction{
		{Amount: Money{Cents: -6500}, Category: "Food", Type: Expense},
		{Amount: Money{Cents: 850000}, Category: "Salary", Type: Income},
	}
	got := Sum(txs)
	if got.Income.Cents != 850000 {
		t.Fatalf("income: got %d, want 850000", got.Income.Cents)
	}
	if got.Expense.Cents != 6500 {
		t.Fatalf("expense: got %d, want 6500", got.Expense.Cents)
	}
	if got.Balance.Cents != 843500 {
		t.Fatalf("balance: got %d, want 843500", got.Balance.Cents)
	}
}

func TestSumSignConventionIndependent(t *testing.T) {
	// However the sign convention stores amounts, abs on both sides must
	// yield the same totals.
	positive := []Transaction{
		{Amount: Money{Cents: 6500}, Category: "Food", Type: Expense},
		{Amount: Money{Cents: 850000}, Category: "Salary", Type: Income},
	}
	negative := []Transaction{
		{Amount: Money{Cents: -6500}, Category: "Food", Type: Expense},
		{Amount: Money{Cents: 850000}, Category: "Salary", Type: Income},
	}
	if Sum(positive) != Sum(negative) {
		t.Fatalf("totals differ across sign conventions: %+v vs %+v", Sum(positive), Sum(negative))
	}
}

func TestSumEmpty(t *testing.T) {
	got := Sum(nil)
	if got.Income.Cents != 0 || got.Expense.Cents != 0 || got.Balance.Cents != 0 {
		t.Fatalf("expected zero totals, got %+v", got)
	}
}
