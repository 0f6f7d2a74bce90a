package money_test

import (
	"testing"

	"agora/internal/money"

	"github.com/stretchr/testify/assert"
)

func TestAmountArithmetic(t *testing.T) {
	a := money.Amount(10)
	b := money.Amount(4)

	assert.Equal(t, money.Amount(14), a.Add(b))
	assert.Equal(t, money.Amount(6), a.Sub(b))
	assert.Equal(t, money.Amount(40), a.Mul(4))
	assert.Equal(t, money.Amount(0), money.Amount(0).Mul(100))
}

func TestAmountZeroValue(t *testing.T) {
	var a money.Amount
	assert.Equal(t, money.Amount(0), a)
}
