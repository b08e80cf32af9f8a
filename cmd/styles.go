package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	styleHeader  = lipgloss.NewStyle().Bold(true)
	styleGood    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleCaution = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleBad     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// scoreStyle picks a color band for a 0-100 quality score.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 90:
		return styleGood
	case score >= 70:
		return styleCaution
	default:
		return styleBad
	}
}

func renderScore(score float64) string {
	return scoreStyle(score).Render(fmt.Sprintf("%.1f", score))
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}
