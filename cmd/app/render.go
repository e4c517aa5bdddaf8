package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/starford/quicknote/internal/noteservice"
)

var (
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Width(5).Align(lipgloss.Right)
	textStyle  = lipgloss.NewStyle().Bold(true)
	dateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	emptyStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("243"))
)

// preview flattens text to one line and fits it into width cells.
func preview(text string, width int) string {
	line := strings.Join(strings.Fields(text), " ")
	if width <= 1 {
		return line
	}
	return runewidth.Truncate(line, width, "…")
}

func renderList(w io.Writer, sc noteservice.Screen, width int) error {
	if sc.Empty {
		_, err := fmt.Fprintln(w, emptyStyle.Render("No notes yet"))
		return err
	}
	for _, it := range sc.Items {
		p := preview(it.Text, width)
		pad := ""
		if width > 1 {
			pad = strings.Repeat(" ", max(0, width-runewidth.StringWidth(p)))
		}
		if _, err := fmt.Fprintf(w, "%s  %s%s  %s\n",
			idStyle.Render(fmt.Sprint(it.ID)),
			textStyle.Render(p), pad,
			dateStyle.Render(it.Date)); err != nil {
			return err
		}
	}
	return nil
}
