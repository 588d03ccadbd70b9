package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(100), INR)
	require.NoError(t, err)
	assert.Equal(t, INR, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))

	_, err = NewMoney(decimal.NewFromInt(100), "")
	assert.Error(t, err)
}

func TestMoney_AddSubtract(t *testing.T) {
	a := NewMoneyINRFromFloat(100.50)
	b := NewMoneyINRFromFloat(49.50)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(150)))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(51)))
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	inr := NewMoneyINRFromFloat(100)
	usd, err := NewMoneyFromFloat(100, USD)
	require.NoError(t, err)

	_, err = inr.Add(usd)
	assert.Error(t, err)

	_, err = inr.Subtract(usd)
	assert.Error(t, err)

	_, err = inr.LessThan(usd)
	assert.Error(t, err)

	assert.Panics(t, func() { inr.MustAdd(usd) })
}

func TestMoney_Multiply(t *testing.T) {
	m := NewMoneyINRFromFloat(99.99)
	result := m.MultiplyByInt(3)
	assert.True(t, result.Amount().Equal(decimal.NewFromFloat(299.97)))
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroINR().IsZero())
	assert.True(t, NewMoneyINRFromFloat(1).IsPositive())
	assert.True(t, NewMoneyINRFromFloat(-1).IsNegative())
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "99.90 INR", NewMoneyINRFromFloat(99.9).String())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyINRFromFloat(249.99)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"249.99","currency":"INR"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_UnmarshalDefaultsCurrency(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"10"}`), &m))
	assert.Equal(t, DefaultCurrency, m.Currency())
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("123.45"))
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}
