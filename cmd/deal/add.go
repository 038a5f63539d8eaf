package deal

import (
	"fmt"

	"github.com/hance08/dealflow/internal/app"
	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/service"
	"github.com/hance08/dealflow/internal/ui/prompts"
	"github.com/hance08/dealflow/internal/ui/views"
	"github.com/hance08/dealflow/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type addFlags struct {
	Name    string
	Address string
	Price   string
	Parties string
	Status  string
}

type addRunner struct {
	provide   app.Provider
	flags     *addFlags
	validator *validation.DealValidator
}

func NewAddCmd(provide app.Provider) *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"a", "new"},
		Short:   "Add a transaction",
		Long: `Add a transaction to the local database.

Without --name the fields are asked for interactively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &addRunner{
				provide:   provide,
				flags:     flags,
				validator: validation.NewDealValidator(),
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Deal name")
	cmd.Flags().StringVarP(&flags.Address, "address", "a", "", "Property address")
	cmd.Flags().StringVarP(&flags.Price, "price", "p", "", "Price, e.g. 450000 or 450,000.50")
	cmd.Flags().StringVar(&flags.Parties, "parties", "", "Comma separated list of parties")
	cmd.Flags().StringVarP(&flags.Status, "status", "s", string(model.StatusInProgress), "Pipeline stage")

	return cmd
}

func (r *addRunner) Run() error {
	var (
		input service.TransactionInput
		err   error
	)
	if r.flags.Name == "" {
		input, err = prompts.PromptNewDeal(r.validator)
	} else {
		input, err = r.inputFromFlags()
	}
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

	tx, err := svc.Transaction.CreateTransaction(input)
	if err != nil {
		return err
	}

	pterm.Success.Printf("Transaction #%d created\n", tx.ID)
	return views.RenderDealDetail(tx)
}

func (r *addRunner) inputFromFlags() (service.TransactionInput, error) {
	var input service.TransactionInput

	if err := r.validator.ValidateName(r.flags.Name); err != nil {
		return input, err
	}
	if err := r.validator.ValidateAddress(r.flags.Address); err != nil {
		return input, err
	}

	price, err := validation.ParsePrice(r.flags.Price)
	if err != nil {
		return input, err
	}

	status, err := model.ParseStatus(r.flags.Status)
	if err != nil {
		return input, fmt.Errorf("invalid --status: %w", err)
	}

	parties := validation.SplitParties(r.flags.Parties)
	if err := r.validator.ValidateParties(parties); err != nil {
		return input, err
	}

	input = service.TransactionInput{
		Name:    r.flags.Name,
		Address: r.flags.Address,
		Price:   price,
		Parties: parties,
		Status:  status,
	}
	return input, nil
}
