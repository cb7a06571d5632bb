package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/keyloom/pkg/core"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			MarginRight(1)
)

// renderView lays the documents out side by side, one column each, in load
// order. Documents absent from view get no column.
func renderView(names []string, view core.View) string {
	cols := make([]string, 0, len(names))
	for _, name := range names {
		rows, ok := view[name]
		if !ok {
			continue
		}
		lines := []string{titleStyle.Render(name)}
		if len(rows) == 0 {
			lines = append(lines, faintStyle.Render("(no entries)"))
		}
		for _, r := range rows {
			lines = append(lines, keyStyle.Render(r.Key)+": "+r.Text())
		}
		cols = append(cols, columnStyle.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// viewRows is the JSON shape of a view: documents in load order.
type viewRows struct {
	Document string     `json:"document"`
	Rows     []core.Row `json:"rows"`
}

func writeView(w io.Writer, names []string, view core.View, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, renderView(names, view))
		return err
	}

	out := make([]viewRows, 0, len(names))
	for _, name := range names {
		rows, ok := view[name]
		if !ok {
			continue
		}
		if rows == nil {
			rows = []core.Row{}
		}
		out = append(out, viewRows{Document: name, Rows: rows})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
