package wallet

import "github.com/shopspring/decimal"

// Quote is the result of a price lookup. A zero Quote is unavailable.
type Quote struct {
	Value     float64
	Available bool
}

// NewQuote returns an available quote for the given price.
func NewQuote(price float64) Quote {
	return Quote{Value: price, Available: true}
}

// Unavailable returns a quote that carries no price.
func Unavailable() Quote {
	return Quote{}
}

// Fiat converts a coin amount into the quote currency, or 0 when no price is known.
func (q Quote) Fiat(amount float64) float64 {
	if !q.Available {
		return 0
	}
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(q.Value)).InexactFloat64()
}

// Price returns the quoted price, or nil when unavailable.
func (q Quote) Price() *float64 {
	if !q.Available {
		return nil
	}
	v := q.Value
	return &v
}

// SumAmounts adds coin amounts without accumulating binary rounding error.
func SumAmounts(users []User) float64 {
	total := decimal.Zero
	for _, u := range users {
		total = total.Add(decimal.NewFromFloat(u.CoinAmount))
	}
	return total.InexactFloat64()
}
