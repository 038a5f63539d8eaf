package deal

import (
	"github.com/hance08/dealflow/internal/app"
	"github.com/hance08/dealflow/internal/ui"
	"github.com/hance08/dealflow/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type deleteFlags struct {
	Yes bool
}

type deleteRunner struct {
	provide app.Provider
	flags   *deleteFlags
}

func NewDeleteCmd(provide app.Provider) *cobra.Command {
	flags := &deleteFlags{}

	cmd := &cobra.Command{
		Use:     "delete <transaction-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Long:    `Delete a transaction and its status history. This action cannot be undone.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &deleteRunner{
				provide: provide,
				flags:   flags,
			}
			return runner.Run(args)
		},
	}

	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Delete without asking")

	return cmd
}

func (r *deleteRunner) Run(args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := r.provide()
	if err != nil {
		return err
	}
	svc, err := a.Service()
	if err != nil {
		return err
	}

	tx, err := svc.Transaction.GetTransaction(id)
	if err != nil {
		pterm.Error.Printf("Failed to delete transaction: %v\n", err)
		return nil
	}

	if !r.flags.Yes {
		pterm.Warning.Printf("About to delete transaction #%d:\n", tx.ID)
		if err := views.RenderDealDetail(tx); err != nil {
			return err
		}
		pterm.Warning.Println("This action cannot be undone!")

		ok, err := ui.Confirm("Do you want to delete this transaction?", false)
		if err != nil {
			return err
		}
		if !ok {
			pterm.Info.Println("Deletion cancelled")
			return nil
		}
	}

	if err := svc.Transaction.DeleteTransaction(id); err != nil {
		pterm.Error.Printf("Failed to delete transaction: %v\n", err)
		return nil
	}

	pterm.Success.Printf("Transaction #%d deleted successfully\n", id)
	ui.PrintSeparator()
	return nil
}
