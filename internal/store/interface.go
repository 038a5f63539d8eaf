package store

import "github.com/hance08/dealflow/internal/model"

type Repository interface {
	// Transaction Operations
	CreateTransaction(tx model.Transaction) (int64, error)
	GetTransactionByID(txID int64) (*model.Transaction, error)
	GetAllTransactions(limit int) ([]*model.Transaction, error)
	UpdateTransactionStatus(txID int64, status model.Status) error
	DeleteTransaction(txID int64) error

	// Status history
	CreateStatusChange(change model.StatusChange) (int64, error)
	GetStatusChanges(txID int64) ([]*model.StatusChange, error)

	ExecTx(fn func(Repository) error) error
	Close() error
}
