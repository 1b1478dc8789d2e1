package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	p, err := Parse("2024-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, p.Year)
	assert.Equal(t, 1, p.Month)
	assert.Equal(t, "2024-01", p.String())
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "2024", "2024-1", "2024-13", "2024-00", "1999-05", "24-01", "2024/01", "2024-01-15"} {
		_, err := Parse(s)
		assert.ErrorIs(t, err, ErrInvalidPeriod, "input %q", s)
	}
}

func TestBefore_After(t *testing.T) {
	jan := New(2024, 1)
	feb := New(2024, 2)
	decPrev := New(2023, 12)

	assert.True(t, jan.Before(feb))
	assert.False(t, feb.Before(jan))
	assert.True(t, decPrev.Before(jan))
	assert.True(t, feb.After(jan))
	assert.False(t, jan.Before(jan))
	assert.False(t, jan.After(jan))
}

func TestString_ZeroPadding(t *testing.T) {
	assert.Equal(t, "2024-09", New(2024, 9).String())
	assert.Equal(t, "2024-12", New(2024, 12).String())
}

func TestString_OrdersLexicographically(t *testing.T) {
	// Storage relies on text comparison of the canonical form.
	a := New(2024, 9).String()
	b := New(2024, 10).String()
	c := New(2025, 1).String()
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}
