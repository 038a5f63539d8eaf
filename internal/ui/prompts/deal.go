package prompts

import (
	"fmt"

	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/service"
	"github.com/hance08/dealflow/internal/utils"
	"github.com/hance08/dealflow/internal/validation"
)

// PromptDealSelection lets the user pick the card to drag.
func PromptDealSelection(txs []model.Transaction) (int64, error) {
	if len(txs) == 0 {
		return 0, fmt.Errorf("no transactions to choose from")
	}

	choices := make([]Choice[int64], 0, len(txs))
	for _, tx := range txs {
		choices = append(choices, Choice[int64]{
			Label: fmt.Sprintf("#%d  %s  [%s]", tx.ID, utils.Truncate(tx.Name, 40), tx.Status.Label()),
			Value: tx.ID,
		})
	}

	return PromptChoice("Which transaction do you want to move?", choices, txs[0].ID)
}

// PromptColumn lets the user pick the column to drop onto. The current
// column is listed but not preselected.
func PromptColumn(current model.Status) (model.Status, error) {
	var def model.Status
	choices := make([]Choice[model.Status], 0, len(model.Statuses()))
	for _, s := range model.Statuses() {
		label := s.Label()
		if s == current {
			label += " (current)"
		} else if def == "" {
			def = s
		}
		choices = append(choices, Choice[model.Status]{Label: label, Value: s})
	}

	return PromptChoice("Move to which column?", choices, def)
}

// PromptNewDeal walks through the fields of a new transaction.
func PromptNewDeal(v *validation.DealValidator) (service.TransactionInput, error) {
	var input service.TransactionInput

	name, err := PromptInput("Deal name:", "", func(s string) error { return v.ValidateName(s) })
	if err != nil {
		return input, err
	}

	address, err := PromptInput("Property address (optional):", "", v.ValidateAddress)
	if err != nil {
		return input, err
	}

	priceStr, err := PromptInput("Price (optional):", "", v.ValidatePrice)
	if err != nil {
		return input, err
	}
	price, err := validation.ParsePrice(priceStr)
	if err != nil {
		return input, err
	}

	partiesStr, err := PromptInput("Parties, comma separated (optional):", "", func(s string) error {
		return v.ValidateParties(validation.SplitParties(s))
	})
	if err != nil {
		return input, err
	}

	statusChoices := make([]Choice[model.Status], 0, len(model.Statuses()))
	for _, s := range model.Statuses() {
		statusChoices = append(statusChoices, Choice[model.Status]{Label: s.Label(), Value: s})
	}
	status, err := PromptChoice("Pipeline stage:", statusChoices, model.StatusInProgress)
	if err != nil {
		return input, err
	}

	input = service.TransactionInput{
		Name:    name,
		Address: address,
		Price:   price,
		Parties: validation.SplitParties(partiesStr),
		Status:  status,
	}
	return input, nil
}
