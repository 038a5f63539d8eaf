package views

import (
	"fmt"

	"github.com/hance08/dealflow/internal/constants"
	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/utils"
	"github.com/pterm/pterm"
)

type DealListView struct{}

func NewDealListView() *DealListView {
	return &DealListView{}
}

func (v *DealListView) Render(items []*model.Transaction, limit int) error {
	if len(items) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	pterm.DefaultSection.Printf("Showing transactions (limit: %d)", limit)

	tableData := pterm.TableData{
		{"ID", "Name", "Address", "Price", "Status", "Updated"},
	}

	for _, item := range items {
		tableData = append(tableData, []string{
			fmt.Sprintf("%d", item.ID),
			item.Name,
			utils.Truncate(item.Address, 40),
			utils.FormatPrice(item.Price),
			ColoredStatus(item.Status),
			item.UpdatedAt.Local().Format(constants.DateFormat),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(items))
	return nil
}
