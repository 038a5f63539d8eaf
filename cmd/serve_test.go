package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hance08/dealflow/internal/config"
	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/service"
	"github.com/hance08/dealflow/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedTransactions(t *testing.T) {
	st, err := store.NewStore(filepath.Join(t.TempDir(), "seed.db"), os.DirFS(".."))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	svc := service.NewTransactionService(st, config.NewDefault())

	n, err := seedTransactions(svc)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	txs, err := svc.ListTransactions(0)
	require.NoError(t, err)
	require.Len(t, txs, 5)

	seen := map[model.Status]bool{}
	for _, tx := range txs {
		seen[tx.Status] = true
	}
	for _, s := range model.Statuses() {
		assert.True(t, seen[s], "no sample in %s", s)
	}

	// a second run leaves existing data alone
	n, err = seedTransactions(svc)
	require.NoError(t, err)
	assert.Zero(t, n)
}
