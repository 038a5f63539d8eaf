package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hance08/dealflow/internal/constants"
	"github.com/hance08/dealflow/internal/model"
	"github.com/shopspring/decimal"
)

// DealValidator checks user input for new transactions. The func(any) error
// and func(string) error shapes plug straight into survey and huh prompts.
type DealValidator struct{}

func NewDealValidator() *DealValidator {
	return &DealValidator{}
}

func (v *DealValidator) ValidateName(val any) error {
	name, ok := val.(string)
	if !ok {
		return fmt.Errorf("deal name must be a string")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("deal name can't be empty")
	}
	if utf8.RuneCountInString(name) > constants.MaxNameLen {
		return fmt.Errorf("deal name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

func (v *DealValidator) ValidateAddress(val string) error {
	if utf8.RuneCountInString(strings.TrimSpace(val)) > constants.MaxAddressLen {
		return fmt.Errorf("address too long (max %d characters)", constants.MaxAddressLen)
	}
	return nil
}

// ValidatePrice accepts an empty string (price unknown yet) or a
// non-negative decimal amount.
func (v *DealValidator) ValidatePrice(val string) error {
	_, err := ParsePrice(val)
	return err
}

func (v *DealValidator) ValidateStatus(val string) error {
	_, err := model.ParseStatus(val)
	return err
}

// ValidateParties checks an already split list of parties.
func (v *DealValidator) ValidateParties(parties []string) error {
	if len(parties) > constants.MaxParties {
		return fmt.Errorf("too many parties (max %d)", constants.MaxParties)
	}
	for i, p := range parties {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("party #%d is empty", i+1)
		}
	}
	return nil
}

// ValidateTransaction runs every field check on tx.
func (v *DealValidator) ValidateTransaction(tx model.Transaction) error {
	if err := v.ValidateName(tx.Name); err != nil {
		return err
	}
	if err := v.ValidateAddress(tx.Address); err != nil {
		return err
	}
	if tx.Price.IsNegative() {
		return fmt.Errorf("price can't be negative")
	}
	if !tx.Status.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownStatus, tx.Status)
	}
	return v.ValidateParties(tx.Parties)
}

// ParsePrice parses "450000", "450,000.50" or "$450000". Empty means zero.
func ParsePrice(raw string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")

	if clean == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price: %s", raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("price can't be negative")
	}
	if !d.Equal(d.Round(2)) {
		return decimal.Zero, fmt.Errorf("price can have at most 2 decimal places: %s", raw)
	}
	return d.Round(2), nil
}

// SplitParties turns "Alice, Bob" into ["Alice", "Bob"].
func SplitParties(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
