package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hance08/dealflow/internal/logging"
	"github.com/hance08/dealflow/internal/model"
	"github.com/pterm/pterm"
)

var (
	ErrNotInMirror    = errors.New("transaction is not on the board")
	ErrNotDragging    = errors.New("no drag in progress")
	ErrDragInProgress = errors.New("a drag is already in progress")
)

// StatusUpdater is the remote side of a move.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
}

type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Controller turns drag gestures into optimistic moves. A drop updates
// the mirror right away and confirms it with the remote store in the
// background. Further drags are never blocked by outstanding confirmations.
type Controller struct {
	mirror     *Mirror
	remote     StatusUpdater
	reconciler *Reconciler
	logger     *pterm.Logger
	onError    func(Outcome)

	mu        sync.Mutex
	state     State
	draggedID int64
	hover     model.Status

	inflight sync.WaitGroup
}

type Option func(*Controller)

func WithLogger(logger *pterm.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithErrorHandler registers fn to be called for every failed
// confirmation, after the reconciler has run.
func WithErrorHandler(fn func(Outcome)) Option {
	return func(c *Controller) {
		c.onError = fn
	}
}

func NewController(mirror *Mirror, remote StatusUpdater, opts ...Option) *Controller {
	c := &Controller{
		mirror: mirror,
		remote: remote,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reconciler = NewReconciler(mirror, c.logger)
	return c
}

func (c *Controller) Mirror() *Mirror {
	return c.mirror
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HoverColumn is the column last dragged over, empty when idle.
func (c *Controller) HoverColumn() model.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hover
}

func (c *Controller) DragStart(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDragging {
		return ErrDragInProgress
	}
	c.state = StateDragging
	c.draggedID = id
	c.hover = ""
	return nil
}

func (c *Controller) DragOver(status model.Status) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDragging {
		c.hover = status
	}
}

// Cancel abandons the current drag without touching the mirror.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Drop finishes the drag onto the column for status. The mirror is updated
// before Drop returns; the returned Pending resolves once the remote store
// has answered and the reconciler has run.
func (c *Controller) Drop(ctx context.Context, status model.Status) (*Pending, error) {
	c.mu.Lock()
	if c.state != StateDragging {
		c.mu.Unlock()
		return nil, ErrNotDragging
	}
	id := c.draggedID
	c.reset()
	c.mu.Unlock()

	if !status.Valid() {
		return nil, fmt.Errorf("drop transaction %d: %w: %q", id, model.ErrUnknownStatus, status)
	}

	prev, version, ok := c.mirror.ApplyStatus(id, status)
	if !ok {
		c.logger.Debug("drop ignored, transaction not mirrored",
			c.logger.Args("transaction_id", id))
		return nil, fmt.Errorf("drop transaction %d: %w", id, ErrNotInMirror)
	}

	p := newPending(id, prev, status, version)

	c.inflight.Add(1)
	go c.confirm(ctx, p)

	return p, nil
}

// Move is a complete drag of transaction id onto status.
func (c *Controller) Move(ctx context.Context, id int64, status model.Status) (*Pending, error) {
	if err := c.DragStart(id); err != nil {
		return nil, err
	}
	return c.Drop(ctx, status)
}

// Wait blocks until every confirmation started so far has been reconciled.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) confirm(ctx context.Context, p *Pending) {
	defer c.inflight.Done()

	err := c.remote.UpdateStatus(ctx, p.ID, p.To)
	out := c.reconciler.Resolve(p, err)

	if out.Err != nil && c.onError != nil {
		c.onError(out)
	}
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.draggedID = 0
	c.hover = ""
}
