package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hance08/dealflow/internal/config"
	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := store.NewStore(filepath.Join(t.TempDir(), "dealflow.db"), os.DirFS("../.."))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewService(s, config.NewDefault())
}

func TestValidateTransition(t *testing.T) {
	assert.NoError(t, ValidateTransition(model.StatusInProgress, model.StatusFirm))
	assert.NoError(t, ValidateTransition(model.StatusFirm, model.StatusInProgress))
	assert.NoError(t, ValidateTransition(model.StatusClosed, model.StatusClosed))
	assert.ErrorIs(t, ValidateTransition(model.StatusClosed, model.StatusFirm), ErrInvalidTransition)
	assert.ErrorIs(t, ValidateTransition(model.StatusFirm, "sold"), model.ErrUnknownStatus)
}

func TestCreateTransaction(t *testing.T) {
	svc := newTestService(t)

	tx, err := svc.Transaction.CreateTransaction(TransactionInput{
		Name:    "  12 Elm St ",
		Price:   decimal.NewFromInt(450000),
		Parties: []string{"Roy", "Chen"},
	})
	require.NoError(t, err)
	assert.Equal(t, "12 Elm St", tx.Name)
	assert.Equal(t, model.StatusInProgress, tx.Status)

	_, err = svc.Transaction.CreateTransaction(TransactionInput{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_RecordsHistory(t *testing.T) {
	svc := newTestService(t)
	tx, err := svc.Transaction.CreateTransaction(TransactionInput{Name: "a"})
	require.NoError(t, err)

	updated, err := svc.Transaction.UpdateStatus(tx.ID, model.StatusConditional)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConditional, updated.Status)

	_, err = svc.Transaction.UpdateStatus(tx.ID, model.StatusConditional)
	require.NoError(t, err)

	_, err = svc.Transaction.UpdateStatus(tx.ID, model.StatusFirm)
	require.NoError(t, err)

	history, err := svc.Transaction.History(tx.ID)
	require.NoError(t, err)
	require.Len(t, history, 2, "same-status update must not be recorded")
	assert.Equal(t, model.StatusConditional, history[0].To)
	assert.Equal(t, model.StatusFirm, history[1].To)

	detail, err := svc.Transaction.GetTransactionDetail(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFirm, detail.Status)
	assert.Len(t, detail.History, 2)
}

func TestUpdateStatus_ClosedIsFinal(t *testing.T) {
	svc := newTestService(t)
	tx, err := svc.Transaction.CreateTransaction(TransactionInput{Name: "a", Status: model.StatusClosed})
	require.NoError(t, err)

	_, err = svc.Transaction.UpdateStatus(tx.ID, model.StatusFirm)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	got, err := svc.Transaction.GetTransaction(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusClosed, got.Status)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Transaction.UpdateStatus(404, model.StatusFirm)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	_, err = svc.Transaction.History(404)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestListTransactions(t *testing.T) {
	svc := newTestService(t)
	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.Transaction.CreateTransaction(TransactionInput{Name: name})
		require.NoError(t, err)
	}

	txs, err := svc.Transaction.ListTransactions(0)
	require.NoError(t, err)
	assert.Len(t, txs, 3)

	require.NoError(t, svc.Transaction.DeleteTransaction(txs[0].ID))
	txs, err = svc.Transaction.ListTransactions(10)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}
