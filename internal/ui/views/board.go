package views

import (
	"fmt"

	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/pipeline"
	"github.com/hance08/dealflow/internal/ui"
	"github.com/hance08/dealflow/internal/utils"
	"github.com/pterm/pterm"
)

const boardNameWidth = 28

type BoardView struct {
	// Highlight marks one card, e.g. the one that was just moved.
	Highlight int64
}

func NewBoardView() *BoardView {
	return &BoardView{}
}

// StatusColor returns the color used for a pipeline column.
func StatusColor(s model.Status) pterm.Color {
	switch s {
	case model.StatusInProgress:
		return pterm.FgYellow
	case model.StatusConditional:
		return pterm.FgCyan
	case model.StatusFirm:
		return pterm.FgGreen
	case model.StatusClosed:
		return pterm.FgGray
	default:
		return pterm.FgDefault
	}
}

func ColoredStatus(s model.Status) string {
	return StatusColor(s).Sprint(s.Label())
}

// Render prints one section per column. An empty only filter shows all
// columns.
func (v *BoardView) Render(cols []pipeline.Column, only model.Status) error {
	total := 0
	for _, col := range cols {
		total += len(col.Items)
	}
	if total == 0 {
		pterm.Warning.Println("No transactions in the pipeline")
		return nil
	}

	ui.PrintL1Title("Pipeline")

	for _, col := range cols {
		if only != "" && col.Status != only {
			continue
		}

		pterm.Println()
		ui.PrintL2Title("%s (%d)", StatusColor(col.Status).Sprint(col.Status.Label()), len(col.Items))

		if len(col.Items) == 0 {
			pterm.FgGray.Println("  (empty)")
			continue
		}

		tableData := pterm.TableData{
			{"ID", "Name", "Price", "Parties"},
		}
		for _, tx := range col.Items {
			id := fmt.Sprintf("%d", tx.ID)
			name := utils.Truncate(tx.Name, boardNameWidth)
			if tx.ID == v.Highlight {
				id = pterm.Bold.Sprint("> " + id)
				name = pterm.Bold.Sprint(name)
			}
			tableData = append(tableData, []string{
				id,
				name,
				utils.FormatPrice(tx.Price),
				fmt.Sprintf("%d", len(tx.Parties)),
			})
		}

		if err := pterm.DefaultTable.
			WithHasHeader().
			WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
			WithData(tableData).
			Render(); err != nil {
			return err
		}
	}

	pterm.Println()
	pterm.Info.Printf("Total: %d transactions\n", total)
	return nil
}
