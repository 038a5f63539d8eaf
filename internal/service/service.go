package service

import (
	"github.com/hance08/dealflow/internal/config"
	"github.com/hance08/dealflow/internal/store"
)

type Service struct {
	Transaction *TransactionService
	Config      *config.Config
}

func NewService(repo store.Repository, cfg *config.Config) *Service {
	return &Service{
		Transaction: NewTransactionService(repo, cfg),
		Config:      cfg,
	}
}
