package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	arrowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// RenamePair is one old → new row of a rename preview.
type RenamePair struct {
	Old string
	New string
}

// RenderPreview builds the preview-of-changes table for a set of planned
// renames.
func RenderPreview(pairs []RenamePair) string {
	if len(pairs) == 0 {
		return dimStyle.Render("(no files to rename)")
	}

	width := 0
	for _, p := range pairs {
		if len(p.Old) > width {
			width = len(p.Old)
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Preview of changes") + "\n")
	for _, p := range pairs {
		b.WriteString(fmt.Sprintf("%-*s %s %s\n", width, p.Old, arrowStyle.Render("->"), p.New))
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// PrintPreview writes the preview table to stdout.
func PrintPreview(pairs []RenamePair) {
	fmt.Fprintln(os.Stdout, RenderPreview(pairs))
}

// RenderSummary builds the end-of-run box from labeled counters, e.g.
// ("Operation completed", [["Files renamed", "3"], ["Files skipped", "1"]]).
func RenderSummary(title string, rows [][2]string) string {
	width := 0
	for _, r := range rows {
		if len(r[0]) > width {
			width = len(r[0])
		}
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(title) + "\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-*s  %s\n", width, r[0], r[1]))
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// PrintSummary writes the summary box to stdout.
func PrintSummary(title string, rows [][2]string) {
	fmt.Fprintln(os.Stdout, RenderSummary(title, rows))
}
