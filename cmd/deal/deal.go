package deal

import (
	"fmt"

	"github.com/hance08/dealflow/internal/app"
	"github.com/spf13/cobra"
)

// NewDealCmd groups the commands that work on the local database directly.
func NewDealCmd(provide app.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deal",
		Aliases: []string{"d"},
		Short:   "Manage transactions in the local database",
		Long: `Manage the transactions kept in the local database, the one
served by "dealflow serve": add, list, show, inspect history, or delete.`,
	}

	cmd.AddCommand(NewAddCmd(provide))
	cmd.AddCommand(NewListCmd(provide))
	cmd.AddCommand(NewShowCmd(provide))
	cmd.AddCommand(NewHistoryCmd(provide))
	cmd.AddCommand(NewDeleteCmd(provide))

	return cmd
}

func parseID(raw string) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid transaction ID: %s", raw)
	}
	return id, nil
}
