package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/hance08/dealflow/internal/app"
	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/pipeline"
	"github.com/hance08/dealflow/internal/ui"
	"github.com/hance08/dealflow/internal/ui/prompts"
	"github.com/hance08/dealflow/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type moveFlags struct {
	Interactive bool
	Yes         bool
	Quiet       bool
}

type moveRunner struct {
	provide app.Provider
	flags   *moveFlags
	out     io.Writer
	confirm func(message string, def bool) (bool, error)

	mu     sync.Mutex
	failed []pipeline.Outcome
}

// moveRequest is one card dropped onto one column.
type moveRequest struct {
	ID     int64
	Status model.Status
}

func NewMoveCmd(provide app.Provider) *cobra.Command {
	flags := &moveFlags{}

	cmd := &cobra.Command{
		Use:     "move [<transaction-id> <status> | <id>:<status>...]",
		Aliases: []string{"mv"},
		Short:   "Move transactions to another pipeline column",
		Long: `Move one or more transactions to another pipeline column.

The board is updated as soon as the move is made and the change is then
confirmed with the transaction store. If the store rejects it, the card
snaps back to its previous column.

Examples:
  dealflow move 12 firm
  dealflow move 12:firm 15:conditional
  dealflow move -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &moveRunner{
				provide: provide,
				flags:   flags,
				out:     cmd.OutOrStdout(),
				confirm: ui.Confirm,
			}
			return runner.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "Pick the transaction and column interactively")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Do not ask before moving a transaction to Closed")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Do not print the board after the move")

	return cmd
}

// parseMoveArgs accepts "<id> <status>" or any number of "<id>:<status>".
func parseMoveArgs(args []string) ([]moveRequest, error) {
	if len(args) == 2 && !strings.Contains(args[0], ":") {
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		status, err := model.ParseStatus(args[1])
		if err != nil {
			return nil, err
		}
		return []moveRequest{{ID: id, Status: status}}, nil
	}

	reqs := make([]moveRequest, 0, len(args))
	for _, arg := range args {
		rawID, rawStatus, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("expected <id>:<status>, got %q", arg)
		}
		id, err := parseID(rawID)
		if err != nil {
			return nil, err
		}
		status, err := model.ParseStatus(rawStatus)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, moveRequest{ID: id, Status: status})
	}
	return reqs, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(raw), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid transaction ID: %s", raw)
	}
	return id, nil
}

func (r *moveRunner) Run(ctx context.Context, args []string) error {
	if len(args) == 0 && !r.flags.Interactive {
		return fmt.Errorf("nothing to move, pass <transaction-id> <status> or use --interactive")
	}

	var reqs []moveRequest
	if len(args) > 0 {
		var err error
		if reqs, err = parseMoveArgs(args); err != nil {
			return err
		}
	}

	a, err := r.provide()
	if err != nil {
		return err
	}

	ctrl := a.NewBoard(r.recordFailure)
	if err := loadBoard(ctx, a, ctrl.Mirror()); err != nil {
		return err
	}

	if len(reqs) == 0 {
		req, err := r.pickMove(ctrl.Mirror())
		if err != nil {
			return err
		}
		reqs = []moveRequest{req}
	}

	// All questions come before the first drop.
	reqs, err = r.confirmClosed(reqs)
	if err != nil {
		return err
	}

	return r.apply(ctx, ctrl, reqs)
}

func (r *moveRunner) confirmClosed(reqs []moveRequest) ([]moveRequest, error) {
	if r.flags.Yes {
		return reqs, nil
	}

	kept := make([]moveRequest, 0, len(reqs))
	for _, req := range reqs {
		if req.Status != model.StatusClosed {
			kept = append(kept, req)
			continue
		}
		ok, err := r.confirm(fmt.Sprintf("Closed transactions cannot be reopened. Move #%d to Closed?", req.ID), false)
		if err != nil {
			return nil, err
		}
		if !ok {
			pterm.Info.WithWriter(r.out).Printf("Skipped #%d\n", req.ID)
			continue
		}
		kept = append(kept, req)
	}
	return kept, nil
}

// apply drops every request, then waits for all confirmations and reports
// them, even when a later drop failed.
func (r *moveRunner) apply(ctx context.Context, ctrl *pipeline.Controller, reqs []moveRequest) error {
	mirror := ctrl.Mirror()

	var (
		pending  []*pipeline.Pending
		firstErr error
	)
	for _, req := range reqs {
		p, err := r.drop(ctx, ctrl, req)
		if errors.Is(err, pipeline.ErrNotInMirror) {
			pterm.Warning.WithWriter(r.out).Printf("Transaction #%d is not on the board, nothing to move\n", req.ID)
			continue
		}
		if err != nil {
			firstErr = err
			break
		}
		pending = append(pending, p)
	}

	if len(pending) == 0 {
		return firstErr
	}

	if !r.flags.Quiet {
		board := views.NewBoardView()
		if len(pending) == 1 {
			board.Highlight = pending[0].ID
		}
		if err := board.Render(mirror.Columns(), ""); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	spinner, _ := pterm.DefaultSpinner.
		WithRemoveWhenDone(true).
		Start("Confirming with the transaction store...")
	ctrl.Wait()
	if spinner != nil {
		_ = spinner.Stop()
	}

	for _, p := range pending {
		name := fmt.Sprintf("#%d", p.ID)
		if tx, ok := mirror.Get(p.ID); ok {
			name = fmt.Sprintf("#%d %s", tx.ID, tx.Name)
		}
		views.RenderMoveOutcome(r.out, p.Outcome(), name)
	}
	ui.PrintSeparator()

	if firstErr != nil {
		return firstErr
	}
	if n := len(r.failures()); n > 0 {
		return fmt.Errorf("%d of %d moves failed", n, len(pending))
	}
	return nil
}

func (r *moveRunner) recordFailure(out pipeline.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, out)
}

func (r *moveRunner) failures() []pipeline.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]pipeline.Outcome(nil), r.failed...)
}

// drop plays the gesture the board would: pick up, hover, drop.
func (r *moveRunner) drop(ctx context.Context, ctrl *pipeline.Controller, req moveRequest) (*pipeline.Pending, error) {
	if err := ctrl.DragStart(req.ID); err != nil {
		return nil, err
	}
	ctrl.DragOver(req.Status)
	return ctrl.Drop(ctx, req.Status)
}

func (r *moveRunner) pickMove(mirror *pipeline.Mirror) (moveRequest, error) {
	id, err := prompts.PromptDealSelection(mirror.Snapshot())
	if err != nil {
		return moveRequest{}, err
	}

	tx, ok := mirror.Get(id)
	if !ok {
		return moveRequest{}, fmt.Errorf("transaction #%d is not on the board", id)
	}

	status, err := prompts.PromptColumn(tx.Status)
	if err != nil {
		return moveRequest{}, err
	}
	return moveRequest{ID: id, Status: status}, nil
}
