package core

// Sum aggregates a transaction sequence into income, expense and balance.
// Both sides sum absolute magnitudes, which keeps the aggregator independent
// of the amount-sign convention enforced by Normalize.
func Sum(txs []Transaction) Totals {
	var income, expense int64
	for _, tx := range txs {
		switch tx.Type {
		case Income:
			income += tx.Amount.Abs()
		case Expense:
			expense += tx.Amount.Abs()
		}
	}
	return Totals{
		Income:  Money{Cents: income},
		Expense: Money{Cents: expense},
		Balance: Money{Cents: income - expense},
	}
}
