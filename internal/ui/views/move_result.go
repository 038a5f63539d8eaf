package views

import (
	"io"

	"github.com/hance08/dealflow/internal/pipeline"
	"github.com/hance08/dealflow/internal/remote"
	"github.com/pterm/pterm"
)

// RenderMoveOutcome reports how a background confirmation ended.
func RenderMoveOutcome(w io.Writer, out pipeline.Outcome, name string) {
	if out.Confirmed() {
		pterm.Success.WithWriter(w).Printf("%s moved to %s\n", name, ColoredStatus(out.To))
		return
	}

	reason := out.Err.Error()
	if !remote.IsRejected(out.Err) {
		reason = "could not reach the transaction store: " + reason
	}

	switch {
	case out.RolledBack:
		pterm.Error.WithWriter(w).Printf("%s snapped back to %s: %s\n", name, ColoredStatus(out.From), reason)
	case out.Skipped:
		pterm.Warning.WithWriter(w).Printf("Move of %s to %s failed (%s); a newer change was kept\n",
			name, ColoredStatus(out.To), reason)
	default:
		pterm.Error.WithWriter(w).Printf("Move of %s failed: %s\n", name, reason)
	}
}
