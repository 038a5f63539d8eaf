package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/hance08/dealflow/internal/app"
	"github.com/hance08/dealflow/internal/config"
	"github.com/hance08/dealflow/internal/logging"
	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/server"
	"github.com/hance08/dealflow/internal/service"
	"github.com/hance08/dealflow/internal/store"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moveFixture struct {
	app *app.App
	svc *service.TransactionService
	out *bytes.Buffer
}

// newMoveFixture serves a fresh SQLite store over HTTP and builds an App
// pointed at it.
func newMoveFixture(t *testing.T) *moveFixture {
	t.Helper()

	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	st, err := store.NewStore(filepath.Join(t.TempDir(), "server.db"), os.DirFS(".."))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := config.NewDefault()
	svc := service.NewTransactionService(st, cfg)

	logger := logging.Discard()
	srv := httptest.NewServer(server.NewRouter(logger, server.RouterDependencies{
		API: server.NewAPIHandlers(logger, svc),
	}))
	t.Cleanup(srv.Close)

	cfg.API.BaseURL = srv.URL
	cfg.Database.Path = filepath.Join(t.TempDir(), "client.db")
	a, cleanup, err := app.NewApp(cfg, os.DirFS(".."))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return &moveFixture{app: a, svc: svc, out: &bytes.Buffer{}}
}

func (f *moveFixture) seed(t *testing.T, name string, status model.Status) int64 {
	t.Helper()
	tx, err := f.svc.CreateTransaction(service.TransactionInput{Name: name, Status: status})
	require.NoError(t, err)
	return tx.ID
}

func (f *moveFixture) runner(flags *moveFlags) *moveRunner {
	return &moveRunner{
		provide: func() (*app.App, error) { return f.app, nil },
		flags:   flags,
		out:     f.out,
		confirm: func(string, bool) (bool, error) { return true, nil },
	}
}

func (f *moveFixture) status(t *testing.T, id int64) model.Status {
	t.Helper()
	tx, err := f.svc.GetTransaction(id)
	require.NoError(t, err)
	return tx.Status
}

func TestMoveRunner_ReportsEveryOutcome(t *testing.T) {
	f := newMoveFixture(t)
	open := f.seed(t, "Maple Ave Condo", model.StatusInProgress)
	closed := f.seed(t, "Queen St Duplex", model.StatusClosed)

	r := f.runner(&moveFlags{Yes: true, Quiet: true})
	err := r.Run(context.Background(), []string{
		fmt.Sprintf("%d:firm", open),
		fmt.Sprintf("%d:conditional", closed),
		"999:firm",
	})

	require.Error(t, err)
	assert.Equal(t, "1 of 2 moves failed", err.Error())

	out := f.out.String()
	assert.Contains(t, out, "Maple Ave Condo moved to Firm")
	assert.Contains(t, out, "Queen St Duplex snapped back to Closed")
	assert.Contains(t, out, "closed transactions cannot be reopened")
	assert.Contains(t, out, "Transaction #999 is not on the board")

	assert.Equal(t, model.StatusFirm, f.status(t, open))
	assert.Equal(t, model.StatusClosed, f.status(t, closed))

	failed := r.failures()
	require.Len(t, failed, 1)
	assert.Equal(t, closed, failed[0].ID)
	assert.True(t, failed[0].RolledBack)
}

func TestMoveRunner_AllConfirmedExitsCleanly(t *testing.T) {
	f := newMoveFixture(t)
	id := f.seed(t, "Elm Street Bungalow", model.StatusConditional)

	err := f.runner(&moveFlags{Yes: true, Quiet: true}).
		Run(context.Background(), []string{fmt.Sprint(id), "firm"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusFirm, f.status(t, id))
}

func TestMoveRunner_RejectedMoveSnapsBackInMirror(t *testing.T) {
	f := newMoveFixture(t)
	closed := f.seed(t, "Lakeside Lot", model.StatusClosed)

	r := f.runner(&moveFlags{Yes: true, Quiet: true})
	ctrl := f.app.NewBoard(r.recordFailure)
	require.NoError(t, loadBoard(context.Background(), f.app, ctrl.Mirror()))

	err := r.apply(context.Background(), ctrl, []moveRequest{{ID: closed, Status: model.StatusFirm}})
	require.Error(t, err)

	tx, ok := ctrl.Mirror().Get(closed)
	require.True(t, ok)
	assert.Equal(t, model.StatusClosed, tx.Status)
}

func TestMoveRunner_DropErrorStillReportsEarlierMoves(t *testing.T) {
	f := newMoveFixture(t)
	first := f.seed(t, "Harbour View Townhouse", model.StatusInProgress)
	second := f.seed(t, "Maple Ave Condo", model.StatusInProgress)

	r := f.runner(&moveFlags{Yes: true, Quiet: true})
	ctrl := f.app.NewBoard(r.recordFailure)
	require.NoError(t, loadBoard(context.Background(), f.app, ctrl.Mirror()))

	err := r.apply(context.Background(), ctrl, []moveRequest{
		{ID: first, Status: model.StatusFirm},
		{ID: second, Status: model.Status("archived")},
	})
	require.ErrorIs(t, err, model.ErrUnknownStatus)

	assert.Contains(t, f.out.String(), "Harbour View Townhouse moved to Firm")
	assert.Equal(t, model.StatusFirm, f.status(t, first))
	assert.Equal(t, model.StatusInProgress, f.status(t, second))
}

func TestMoveRunner_AbortedPromptMovesNothing(t *testing.T) {
	f := newMoveFixture(t)
	first := f.seed(t, "Maple Ave Condo", model.StatusInProgress)
	second := f.seed(t, "Queen St Duplex", model.StatusFirm)

	r := f.runner(&moveFlags{Quiet: true})
	r.confirm = func(string, bool) (bool, error) { return false, terminal.InterruptErr }

	err := r.Run(context.Background(), []string{
		fmt.Sprintf("%d:conditional", first),
		fmt.Sprintf("%d:closed", second),
	})

	require.ErrorIs(t, err, terminal.InterruptErr)
	assert.Empty(t, f.out.String())
	assert.Equal(t, model.StatusInProgress, f.status(t, first))
	assert.Equal(t, model.StatusFirm, f.status(t, second))
}

func TestMoveRunner_DeclinedCloseIsSkipped(t *testing.T) {
	f := newMoveFixture(t)
	id := f.seed(t, "Queen St Duplex", model.StatusFirm)

	r := f.runner(&moveFlags{Quiet: true})
	r.confirm = func(string, bool) (bool, error) { return false, nil }

	err := r.Run(context.Background(), []string{fmt.Sprint(id), "closed"})

	require.NoError(t, err)
	assert.Contains(t, f.out.String(), fmt.Sprintf("Skipped #%d", id))
	assert.Equal(t, model.StatusFirm, f.status(t, id))
}

func TestMoveRunner_UnreachableStoreRollsBack(t *testing.T) {
	f := newMoveFixture(t)

	dead := httptest.NewServer(nil)
	dead.Close()
	cfg := *f.app.Config
	cfg.API.BaseURL = dead.URL
	a, cleanup, err := app.NewApp(&cfg, os.DirFS(".."))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	r := f.runner(&moveFlags{Yes: true, Quiet: true})
	ctrl := a.NewBoard(r.recordFailure)
	ctrl.Mirror().Load([]model.Transaction{{ID: 7, Name: "Offline Deal", Status: model.StatusInProgress}})

	err = r.apply(context.Background(), ctrl, []moveRequest{{ID: 7, Status: model.StatusFirm}})
	require.Error(t, err)

	assert.Contains(t, f.out.String(), "could not reach the transaction store")
	tx, _ := ctrl.Mirror().Get(7)
	assert.Equal(t, model.StatusInProgress, tx.Status)
}
