package validation

import (
	"strings"
	"testing"

	"github.com/hance08/dealflow/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	v := NewDealValidator()

	assert.NoError(t, v.ValidateName("12 Elm St"))
	assert.Error(t, v.ValidateName("   "))
	assert.Error(t, v.ValidateName(42))
	assert.Error(t, v.ValidateName(strings.Repeat("x", 101)))

	// limits count characters, not bytes
	assert.NoError(t, v.ValidateName(strings.Repeat("é", 100)))
	assert.Error(t, v.ValidateName(strings.Repeat("é", 101)))
	assert.NoError(t, v.ValidateAddress(strings.Repeat("ü", 200)))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"450000", "450000"},
		{"450,000.50", "450000.5"},
		{"$ 1 200.99", "1200.99"},
		{"450.500", "450.5"},
		{"", "0"},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.String(), tt.in)
	}

	_, err := ParsePrice("-5")
	assert.Error(t, err)
	_, err = ParsePrice("abc")
	assert.Error(t, err)
	_, err = ParsePrice("1200.999")
	assert.Error(t, err)
}

func TestSplitParties(t *testing.T) {
	assert.Equal(t, []string{"Alice", "Bob"}, SplitParties(" Alice, ,Bob ,"))
	assert.Nil(t, SplitParties(""))
}

func TestValidateTransaction(t *testing.T) {
	v := NewDealValidator()
	ok := model.Transaction{Name: "a", Status: model.StatusFirm, Price: decimal.NewFromInt(1)}
	assert.NoError(t, v.ValidateTransaction(ok))

	bad := ok
	bad.Price = decimal.NewFromInt(-1)
	assert.Error(t, v.ValidateTransaction(bad))

	bad = ok
	bad.Status = "sold"
	assert.ErrorIs(t, v.ValidateTransaction(bad), model.ErrUnknownStatus)

	bad = ok
	bad.Parties = []string{"x", " "}
	assert.Error(t, v.ValidateTransaction(bad))

	assert.NoError(t, v.ValidateStatus("in progress"))
	assert.Error(t, v.ValidateStatus("nope"))
}
