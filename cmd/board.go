package cmd

import (
	"context"
	"fmt"

	"github.com/hance08/dealflow/internal/app"
	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/pipeline"
	"github.com/hance08/dealflow/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type boardFlags struct {
	Status string
}

type boardRunner struct {
	provide app.Provider
	flags   *boardFlags
}

func NewBoardCmd(provide app.Provider) *cobra.Command {
	flags := &boardFlags{}

	cmd := &cobra.Command{
		Use:     "board",
		Aliases: []string{"b", "pipeline"},
		Short:   "Show the transaction pipeline",
		Long: `Fetch every transaction from the transaction store and show them
grouped by pipeline column.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &boardRunner{
				provide: provide,
				flags:   flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Status, "status", "s", "", "Only show one column (in_progress, conditional, firm, closed)")

	return cmd
}

func (r *boardRunner) Run(ctx context.Context) error {
	var only model.Status
	if r.flags.Status != "" {
		s, err := model.ParseStatus(r.flags.Status)
		if err != nil {
			return err
		}
		only = s
	}

	a, err := r.provide()
	if err != nil {
		return err
	}

	ctrl := a.NewBoard(nil)
	if err := loadBoard(ctx, a, ctrl.Mirror()); err != nil {
		return err
	}

	return views.NewBoardView().Render(ctrl.Mirror().Columns(), only)
}

// loadBoard fetches the current list into mirror behind a spinner.
func loadBoard(ctx context.Context, a *app.App, mirror *pipeline.Mirror) error {
	spinner, _ := pterm.DefaultSpinner.
		WithRemoveWhenDone(true).
		Start("Loading pipeline...")

	txs, err := a.Remote.List(ctx)
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		return fmt.Errorf("could not load the pipeline: %w", err)
	}

	mirror.Load(txs)
	return nil
}
