// Package display renders the banner, the rename preview table, and the
// end-of-run summary boxes. Layout and styling go through lipgloss so the
// output degrades cleanly when colors are disabled.
package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/renum/internal/term"
)

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

// PrintBanner prints the ASCII art banner; styled when colors are enabled.
func PrintBanner() {
	art := ` ____
|  _ \ ___ _ __  _   _ _ __ ___
| |_) / _ \ '_ \| | | | '_ ` + "`" + ` _ \
|  _ <  __/ | | | |_| | | | | | |
|_| \_\___|_| |_|\__,_|_| |_| |_|
`
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, bannerStyle.Render(art))
		return
	}
	fmt.Fprintln(os.Stdout, art)
}
