package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0190b3a2-7c1e-7b5a-8f34-1f2e3d4c5b6a"))
	assert.True(t, IsValidUUID("D9428888-122B-11E1-B85C-61CD3CBB3210"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("0190b3a27c1e7b5a8f341f2e3d4c5b6a"))
}

func TestIsBoundedAmount(t *testing.T) {
	assert.True(t, IsBoundedAmount(decimal.Zero))
	assert.True(t, IsBoundedAmount(decimal.NewFromInt(5000)))
	assert.True(t, IsBoundedAmount(MaxAmount))
	assert.False(t, IsBoundedAmount(decimal.NewFromInt(-1)))
	assert.False(t, IsBoundedAmount(MaxAmount.Add(decimal.NewFromInt(1))))
}

func TestIsPositiveAmount(t *testing.T) {
	assert.False(t, IsPositiveAmount(decimal.Zero))
	assert.False(t, IsPositiveAmount(decimal.NewFromInt(-10)))
	assert.True(t, IsPositiveAmount(decimal.NewFromFloat(0.01)))
	assert.True(t, IsPositiveAmount(MaxAmount))
	assert.False(t, IsPositiveAmount(MaxAmount.Mul(decimal.NewFromInt(2))))
}

func TestIsValidDate(t *testing.T) {
	d, ok := IsValidDate("2024-03-15")
	assert.True(t, ok)
	assert.Equal(t, 2024, d.Year())

	_, ok = IsValidDate("15-03-2024")
	assert.False(t, ok)
}
