package deal

import (
	"fmt"

	"github.com/hance08/dealflow/internal/app"
	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/ui/views"
	"github.com/spf13/cobra"
)

type listFlags struct {
	Status string
	Limit  int
}

type listRunner struct {
	provide app.Provider
	flags   *listFlags
}

func NewListCmd(provide app.Provider) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List transactions in the local database",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &listRunner{
				provide: provide,
				flags:   flags,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.Status, "status", "s", "", "Filter by pipeline stage")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 50, "Maximum number of transactions to display")

	return cmd
}

func (r *listRunner) Run() error {
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
	svc, err := a.Service()
	if err != nil {
		return err
	}

	transactions, err := svc.Transaction.ListTransactions(r.flags.Limit)
	if err != nil {
		return fmt.Errorf("failed to get transactions: %w", err)
	}

	if only != "" {
		filtered := transactions[:0]
		for _, tx := range transactions {
			if tx.Status == only {
				filtered = append(filtered, tx)
			}
		}
		transactions = filtered
	}

	return views.NewDealListView().Render(transactions, r.flags.Limit)
}
