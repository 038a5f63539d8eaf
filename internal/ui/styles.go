package ui

import (
	"fmt"

	"github.com/pterm/pterm"
)

var (
	l1Style = pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)
	l2Style = pterm.NewStyle(pterm.FgCyan, pterm.Bold)
)

// PrintL1Title prints a page heading, e.g. the board title.
func PrintL1Title(format string, a ...any) {
	l1Style.Println(fmt.Sprintf(" %s   ", fmt.Sprintf(format, a...)))
}

// PrintL2Title prints a section heading such as a board column.
func PrintL2Title(format string, a ...any) {
	l2Style.Println(fmt.Sprintf("# %s   ", fmt.Sprintf(format, a...)))
}

func PrintSeparator() {
	pterm.Println(pterm.Green("----------------------------------------"))
}
