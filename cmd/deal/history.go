package deal

import (
	"github.com/hance08/dealflow/internal/app"
	"github.com/hance08/dealflow/internal/ui/views"
	"github.com/spf13/cobra"
)

type historyRunner struct {
	provide app.Provider
}

func NewHistoryCmd(provide app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:     "history <transaction-id>",
		Aliases: []string{"h"},
		Short:   "Show the status changes of a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &historyRunner{
				provide: provide,
			}
			return runner.Run(args)
		},
	}
}

func (r *historyRunner) Run(args []string) error {
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

	changes, err := svc.Transaction.History(id)
	if err != nil {
		return err
	}
	return views.RenderStatusHistory(changes)
}
