package deal

import (
	"github.com/hance08/dealflow/internal/app"
	"github.com/hance08/dealflow/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type showRunner struct {
	provide app.Provider
}

func NewShowCmd(provide app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction-id>",
		Short: "Show transaction details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &showRunner{
				provide: provide,
			}
			return runner.Run(args)
		},
	}
}

func (r *showRunner) Run(args []string) error {
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

	detail, err := svc.Transaction.GetTransactionDetail(id)
	if err != nil {
		pterm.Error.Printf("Failed to get transaction: %v\n", err)
		return nil
	}

	if err := views.RenderDealDetail(&detail.Transaction); err != nil {
		return err
	}
	return views.RenderStatusHistory(detail.History)
}
