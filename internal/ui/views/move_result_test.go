package views

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/pipeline"
	"github.com/hance08/dealflow/internal/remote"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestRenderMoveOutcome(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	rejected := &remote.APIError{StatusCode: 409, Detail: "closed transactions cannot be reopened"}
	offline := fmt.Errorf("%w: dial tcp: connection refused", remote.ErrUnavailable)

	tests := []struct {
		name string
		out  pipeline.Outcome
		want []string
		not  []string
	}{
		{
			name: "confirmed",
			out:  pipeline.Outcome{ID: 1, From: model.StatusInProgress, To: model.StatusFirm},
			want: []string{"#1 Elm moved to Firm"},
		},
		{
			name: "rejected and rolled back",
			out:  pipeline.Outcome{ID: 1, From: model.StatusClosed, To: model.StatusFirm, Err: rejected, RolledBack: true},
			want: []string{"snapped back to Closed", "closed transactions cannot be reopened"},
			not:  []string{"could not reach"},
		},
		{
			name: "store unreachable",
			out:  pipeline.Outcome{ID: 1, From: model.StatusInProgress, To: model.StatusFirm, Err: offline, RolledBack: true},
			want: []string{"snapped back to In Progress", "could not reach the transaction store", "connection refused"},
		},
		{
			name: "superseded",
			out:  pipeline.Outcome{ID: 1, From: model.StatusInProgress, To: model.StatusFirm, Err: rejected, Skipped: true},
			want: []string{"Move of #1 Elm to Firm failed", "a newer change was kept"},
		},
		{
			name: "other failure",
			out:  pipeline.Outcome{ID: 1, To: model.StatusFirm, Err: errors.New("boom")},
			want: []string{"Move of #1 Elm failed", "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			RenderMoveOutcome(&buf, tt.out, "#1 Elm")

			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.not {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}
