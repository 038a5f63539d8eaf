package service

import (
	"errors"

	"github.com/hance08/dealflow/internal/model"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidInput      = errors.New("invalid transaction input")
)

// TransactionInput represents user input for creating a transaction
type TransactionInput struct {
	Name    string
	Address string
	Price   decimal.Decimal
	Parties []string
	Status  model.Status
}

// TransactionDetail is a transaction together with its status history.
type TransactionDetail struct {
	model.Transaction
	History []*model.StatusChange
}
