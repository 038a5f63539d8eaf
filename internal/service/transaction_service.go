package service

import (
	"fmt"
	"strings"

	"github.com/hance08/dealflow/internal/config"
	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/store"
	"github.com/hance08/dealflow/internal/validation"
)

type TransactionService struct {
	repo      store.Repository
	config    *config.Config
	validator *validation.DealValidator
}

func NewTransactionService(repo store.Repository, cfg *config.Config) *TransactionService {
	return &TransactionService{
		repo:      repo,
		config:    cfg,
		validator: validation.NewDealValidator(),
	}
}

// ListTransactions returns transactions in board order. A limit of zero
// or less returns all of them.
func (ts *TransactionService) ListTransactions(limit int) ([]*model.Transaction, error) {
	if limit < 0 {
		limit = 0
	}
	transactions, err := ts.repo.GetAllTransactions(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (ts *TransactionService) GetTransaction(id int64) (*model.Transaction, error) {
	return ts.repo.GetTransactionByID(id)
}

// GetTransactionDetail retrieves a transaction with its status history
func (ts *TransactionService) GetTransactionDetail(id int64) (*TransactionDetail, error) {
	tx, err := ts.repo.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	history, err := ts.repo.GetStatusChanges(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get status history: %w", err)
	}

	return &TransactionDetail{Transaction: *tx, History: history}, nil
}

func (ts *TransactionService) History(id int64) ([]*model.StatusChange, error) {
	if _, err := ts.repo.GetTransactionByID(id); err != nil {
		return nil, err
	}
	return ts.repo.GetStatusChanges(id)
}

// CreateTransaction validates the input and stores a new deal. A missing
// status defaults to the first pipeline stage.
func (ts *TransactionService) CreateTransaction(input TransactionInput) (*model.Transaction, error) {
	tx := model.Transaction{
		Name:    strings.TrimSpace(input.Name),
		Address: strings.TrimSpace(input.Address),
		Price:   input.Price,
		Parties: input.Parties,
		Status:  input.Status,
	}
	if tx.Status == "" {
		tx.Status = model.StatusInProgress
	}

	if err := ts.validator.ValidateTransaction(tx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := ts.repo.CreateTransaction(tx)
	if err != nil {
		return nil, err
	}
	return ts.repo.GetTransactionByID(id)
}

// UpdateStatus moves a deal to another pipeline stage and records the
// change. Setting the current status again is a successful no-op.
func (ts *TransactionService) UpdateStatus(id int64, status model.Status) (*model.Transaction, error) {
	err := ts.repo.ExecTx(func(r store.Repository) error {
		current, err := r.GetTransactionByID(id)
		if err != nil {
			return err
		}

		if err := ValidateTransition(current.Status, status); err != nil {
			return err
		}
		if current.Status == status {
			return nil
		}

		if err := r.UpdateTransactionStatus(id, status); err != nil {
			return err
		}

		_, err = r.CreateStatusChange(model.StatusChange{
			TransactionID: id,
			From:          current.Status,
			To:            status,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return ts.repo.GetTransactionByID(id)
}

func (ts *TransactionService) DeleteTransaction(id int64) error {
	return ts.repo.DeleteTransaction(id)
}
