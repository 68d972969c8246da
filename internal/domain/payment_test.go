package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBalance(t *testing.T) {
	paid := SumPayments([]*PaymentRecord{{Amount: 400}, {Amount: 599}})
	b := Balance{FinalPrice: 1000, AmountPaid: paid}

	assert.InDelta(t, 1.0, b.Remaining(), 1e-9)
	assert.False(t, IsFullyPaid(b.Remaining()))
	assert.False(t, b.IsOverpaid())

	b.AmountPaid += 1
	assert.True(t, IsFullyPaid(b.Remaining()))

	b.AmountPaid += 5
	assert.True(t, b.IsOverpaid())
}
