// Package tui is a read-only terminal browser over a completed
// ValuationResult: a comparable list with a per-comparable adjustment detail
// view. It never recomputes anything.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/danish-msa/summitly-sub001/internal/property"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	weakRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	detailStyle  = lipgloss.NewStyle().PaddingLeft(2)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model browses one valuation result.
type Model struct {
	result     *property.ValuationResult
	cursor     int
	showDetail bool
}

// New builds a browser over res.
func New(res *property.ValuationResult) Model {
	return Model{result: res}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		if m.showDetail {
			m.showDetail = false
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
	case "enter":
		m.showDetail = !m.showDetail
	}
	return m, nil
}

// rows returns the breakdown entries in display order.
func (m Model) rows() []property.ComparableBreakdown {
	return m.result.MarketAnalysis.ComparableData
}

func (m Model) View() string {
	var b strings.Builder
	res := m.result

	b.WriteString(headerStyle.Render(fmt.Sprintf("Valuation — %s, %s", res.Subject.Address, res.Subject.City)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Estimated %s  (range %s – %s, confidence %.0f/100)\n\n",
		res.EstimatedValue, res.ValueRange.Low, res.ValueRange.High, res.ConfidenceScore))

	for i, row := range m.rows() {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		flags := ""
		if row.Selected {
			flags += " [used]"
		}
		if row.Weak {
			flags += " [weak]"
		}
		line := fmt.Sprintf("%s%-28s %14s → %14s%s", prefix, row.Address, row.SalePrice, row.AdjustedPrice, flags)
		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case row.Weak:
			line = weakRowStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if m.showDetail {
		b.WriteString("\n" + m.detailView())
	}

	b.WriteString("\n" + footerStyle.Render("↑/↓ move · enter adjustments · q quit"))
	return b.String()
}

// detailView lists the adjustment items for the comparable under the cursor.
// Only selected comparables carry their adjustment lists on the result, so the
// others fall back to the breakdown summary.
func (m Model) detailView() string {
	row := m.rows()[m.cursor]
	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Adjustments — %s (gross %.1f%%, net %+.1f%%)",
		row.Address, row.GrossAdjustmentPct, row.NetAdjustmentPct)))
	b.WriteString("\n")

	for _, comp := range m.result.Comparables {
		if comp.ID != row.ID {
			continue
		}
		for _, a := range comp.Adjustments {
			b.WriteString(detailStyle.Render(fmt.Sprintf("%-14s %12s  %s", a.Category, a.Amount, a.Reasoning)))
			b.WriteString("\n")
		}
		return b.String()
	}
	b.WriteString(detailStyle.Render(fmt.Sprintf("total adjustment %s; not selected for reconciliation", row.TotalAdjustment)))
	b.WriteString("\n")
	return b.String()
}
