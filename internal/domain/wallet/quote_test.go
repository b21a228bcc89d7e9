package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_Fiat(t *testing.T) {
	q := NewQuote(50000)

	assert.Equal(t, 50.0, q.Fiat(0.001))
	assert.Equal(t, 225.0, q.Fiat(0.0045))
	assert.Equal(t, 0.0, q.Fiat(0))
}

func TestQuote_Unavailable(t *testing.T) {
	q := Unavailable()

	assert.False(t, q.Available)
	assert.Equal(t, 0.0, q.Fiat(0.0045))
	assert.Nil(t, q.Price())
}

func TestQuote_ZeroValueIsUnavailable(t *testing.T) {
	var q Quote
	assert.False(t, q.Available)
	assert.Nil(t, q.Price())
}

func TestQuote_Price(t *testing.T) {
	q := NewQuote(50000)

	p := q.Price()
	require.NotNil(t, p)
	assert.Equal(t, 50000.0, *p)
}

func TestSumAmounts(t *testing.T) {
	assert.Equal(t, 0.0, SumAmounts(nil))
	assert.Equal(t, 0.0065, SumAmounts(SeedUsers()))
}

func TestSeedUsers(t *testing.T) {
	seed := SeedUsers()
	require.Len(t, seed, 3)

	assert.Equal(t, "Alessandro", seed[0].Username)
	assert.Equal(t, 0.001, seed[0].CoinAmount)
	assert.False(t, seed[0].IsAdmin)

	assert.Equal(t, "Andrea", seed[1].Username)
	assert.Equal(t, 0.001, seed[1].CoinAmount)
	assert.False(t, seed[1].IsAdmin)

	assert.Equal(t, "Admin", seed[2].Username)
	assert.Equal(t, 0.0045, seed[2].CoinAmount)
	assert.True(t, seed[2].IsAdmin)
}
