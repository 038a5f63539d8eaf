package pipeline

import (
	"context"
	"sync"

	"github.com/hance08/dealflow/internal/logging"
	"github.com/hance08/dealflow/internal/model"
	"github.com/pterm/pterm"
)

// Outcome describes how one background confirmation ended.
type Outcome struct {
	ID   int64
	From model.Status
	To   model.Status
	Err  error

	// RolledBack is set when the failure restored From in the mirror.
	RolledBack bool
	// Skipped is set when the failure was not rolled back because a newer
	// write (another move or a reload) already replaced the optimistic one.
	Skipped bool
}

func (o Outcome) Confirmed() bool {
	return o.Err == nil
}

// Pending is the handle of one optimistic move awaiting confirmation.
type Pending struct {
	ID   int64
	From model.Status
	To   model.Status

	version uint64
	done    chan struct{}
	once    sync.Once
	outcome Outcome
}

func newPending(id int64, from, to model.Status, version uint64) *Pending {
	return &Pending{
		ID:      id,
		From:    from,
		To:      to,
		version: version,
		done:    make(chan struct{}),
	}
}

// Done is closed once the confirmation has been reconciled.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Outcome is only meaningful after Done is closed.
func (p *Pending) Outcome() Outcome {
	<-p.done
	return p.outcome
}

// Wait blocks until the move is reconciled or ctx ends. It returns the
// confirmation error, if any.
func (p *Pending) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-p.done:
		return p.outcome, p.outcome.Err
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

func (p *Pending) resolve(out Outcome) {
	p.once.Do(func() {
		p.outcome = out
		close(p.done)
	})
}

// Reconciler settles confirmations against the mirror.
type Reconciler struct {
	mirror *Mirror
	logger *pterm.Logger
}

func NewReconciler(mirror *Mirror, logger *pterm.Logger) *Reconciler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Reconciler{mirror: mirror, logger: logger}
}

// Resolve records the result of the remote call for p. On success the
// mirror already holds the right value. On failure the previous status is
// restored unless the optimistic write has been superseded.
func (r *Reconciler) Resolve(p *Pending, err error) Outcome {
	out := Outcome{ID: p.ID, From: p.From, To: p.To, Err: err}

	if err == nil {
		r.logger.Debug("status change confirmed",
			r.logger.Args("transaction_id", p.ID, "status", p.To))
		p.resolve(out)
		return out
	}

	if r.mirror.Revert(p.ID, p.From, p.version) {
		out.RolledBack = true
		r.logger.Warn("status change rejected, rolled back",
			r.logger.Args("transaction_id", p.ID, "from", p.To, "to", p.From, "error", err.Error()))
	} else {
		out.Skipped = true
		r.logger.Warn("status change rejected, newer write kept",
			r.logger.Args("transaction_id", p.ID, "status", p.To, "error", err.Error()))
	}

	p.resolve(out)
	return out
}
