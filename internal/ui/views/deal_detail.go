package views

import (
	"fmt"
	"strings"

	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/ui"
	"github.com/hance08/dealflow/internal/utils"
	"github.com/pterm/pterm"
)

const timeFormat = "2006-01-02 15:04"

func RenderDealDetail(tx *model.Transaction) error {
	address := tx.Address
	if address == "" {
		address = "-"
	}
	parties := strings.Join(tx.Parties, ", ")
	if parties == "" {
		parties = "-"
	}

	pterm.Println()
	ui.PrintL2Title("Transaction Info")
	infoData := pterm.TableData{
		{"Field", "Value"},
		{"ID", fmt.Sprintf("%d", tx.ID)},
		{"Name", tx.Name},
		{"Address", address},
		{"Price", utils.FormatPrice(tx.Price)},
		{"Parties", parties},
		{"Status", ColoredStatus(tx.Status)},
		{"Updated", tx.UpdatedAt.Local().Format(timeFormat)},
	}
	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(infoData).
		Render()
}

func RenderStatusHistory(changes []*model.StatusChange) error {
	pterm.Println()
	ui.PrintL2Title("Status History")

	if len(changes) == 0 {
		pterm.FgGray.Println("  (no status changes yet)")
		return nil
	}

	data := pterm.TableData{
		{"When", "From", "To"},
	}
	for _, c := range changes {
		data = append(data, []string{
			c.ChangedAt.Local().Format(timeFormat),
			ColoredStatus(c.From),
			ColoredStatus(c.To),
		})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(data).
		Render()
}
