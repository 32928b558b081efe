package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"econdash/internal/core"
	"econdash/internal/dashboard"
)

// Palette follows the web dashboard: blue header, yellow accent.
var (
	colorBlue   = lipgloss.Color("#2563eb")
	colorYellow = lipgloss.Color("#facc15")
	colorMuted  = lipgloss.Color("#6b7280")
	colorUp     = lipgloss.Color("#22c55e")
	colorDown   = lipgloss.Color("#ef4444")
)

type styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Chip    lipgloss.Style
	Active  lipgloss.Style
	Up      lipgloss.Style
	Down    lipgloss.Style
	Cell    lipgloss.Style
}

// newStyles binds the palette to a renderer for w, so colors are dropped
// when w is not a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		Title:   r.NewStyle().Bold(true).Foreground(colorBlue).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(colorYellow),
		Section: r.NewStyle().Bold(true).MarginTop(1),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(colorMuted),
		Chip:    r.NewStyle().Padding(0, 1),
		Active:  r.NewStyle().Padding(0, 1).Bold(true).Reverse(true),
		Up:      r.NewStyle().Foreground(colorUp),
		Down:    r.NewStyle().Foreground(colorDown),
		Cell:    r.NewStyle().PaddingRight(2),
	}
}

func (s styles) trend(t core.Trend, text string) string {
	switch t {
	case core.TrendUp:
		return s.Up.Render(text)
	case core.TrendDown:
		return s.Down.Render(text)
	default:
		return text
	}
}

// renderView writes the dashboard for v as plain terminal text.
func renderView(w io.Writer, title string, v dashboard.View) error {
	s := newStyles(w)
	var b strings.Builder

	b.WriteString(s.Title.Render(title + " Economic Dashboard"))
	b.WriteString("\n")

	b.WriteString(s.Section.Render("Key Economic Indicators"))
	b.WriteString("\n")
	rows := make([][]string, 0, len(v.Headlines))
	for _, h := range v.Headlines {
		value := h.Value
		if h.ShowTrend {
			value += " " + s.trend(h.Trend, dashboard.Arrow(h.Trend))
		}
		updated := ""
		if h.Found {
			updated = s.Muted.Render("Updated: " + h.Updated)
		}
		rows = append(rows, []string{s.Bold.Render(h.Name), value, updated})
	}
	b.WriteString(table(s, rows))

	chips := make([]string, 0, len(v.Chips))
	for _, c := range v.Chips {
		if c.Active {
			chips = append(chips, s.Active.Render(c.Name))
		} else {
			chips = append(chips, s.Chip.Render(c.Name))
		}
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	b.WriteString("\n")

	b.WriteString(s.Section.Render(fmt.Sprintf("Indicators (%d of %d matching)", len(v.Cards), v.Matches)))
	b.WriteString("\n")
	if len(v.Cards) == 0 {
		b.WriteString(s.Muted.Render("No indicators match the current filter."))
		b.WriteString("\n")
	} else {
		rows = rows[:0]
		for _, c := range v.Cards {
			prev := ""
			if c.HasPrevious {
				prev = s.trend(c.Trend, c.Arrow+c.Previous)
			}
			rows = append(rows, []string{
				c.Icon.Glyph() + " " + c.Title,
				s.Bold.Render(c.Value),
				prev,
				c.CategoryGroup,
				s.Muted.Render(c.Updated),
			})
		}
		b.WriteString(table(s, rows))
	}

	for _, sec := range v.Sections {
		b.WriteString(s.Section.Render(sec.Icon.Glyph() + " " + sec.Group + " Indicators"))
		b.WriteString("\n")
		rows = rows[:0]
		for _, c := range sec.Cards {
			change := ""
			if c.HasChange {
				change = s.trend(c.Trend, c.Arrow+" "+c.Change)
			}
			rows = append(rows, []string{c.Title, s.Bold.Render(c.Value), change, s.Muted.Render(c.Updated)})
		}
		b.WriteString(table(s, rows))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// table left-aligns rows into columns sized by their widest cell.
func table(s styles, rows [][]string) string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = s.Cell.Width(widths[i] + 2).Render(cell)
		}
		b.WriteString(strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
		b.WriteString("\n")
	}
	return b.String()
}
