// Package report renders a ValuationResult for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danish-msa/summitly-sub001/internal/property"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	weakStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	strongStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type styler func(s string) string

func plain(s string) string { return s }

// Renderer formats results using the configured presentation settings
// (ui.currency_symbol, ui.date_format).
type Renderer struct {
	currency string
	dateFmt  string
}

// NewRenderer builds a renderer; empty settings fall back to "$" and ISO
// dates.
func NewRenderer(currencySymbol, dateFormat string) Renderer {
	if currencySymbol == "" {
		currencySymbol = "$"
	}
	if dateFormat == "" {
		dateFormat = "2006-01-02"
	}
	return Renderer{currency: currencySymbol, dateFmt: dateFormat}
}

func (r Renderer) money(c property.Cents) string {
	return c.Format(r.currency)
}

// Render returns the styled terminal report.
func (r Renderer) Render(res *property.ValuationResult) string {
	return r.render(res,
		func(s string) string { return titleStyle.Render(s) },
		func(s string) string { return sectionStyle.Render(s) },
		func(s string) string { return labelStyle.Render(s) },
		func(s string) string { return valueStyle.Render(s) },
		func(s string) string { return weakStyle.Render(s) },
		func(s string) string { return strongStyle.Render(s) },
	)
}

// RenderPlain returns the report without any styling, for logs and tests.
func (r Renderer) RenderPlain(res *property.ValuationResult) string {
	return r.render(res, plain, plain, plain, plain, plain, plain)
}

func (r Renderer) render(res *property.ValuationResult, title, section, label, value, weak, strong styler) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", title(fmt.Sprintf("Valuation — %s, %s", res.Subject.Address, res.Subject.City)))
	fmt.Fprintf(&b, "%s %s\n", label("Valuation date:"), res.ValuationDate.Format(r.dateFmt))
	fmt.Fprintf(&b, "%s %s\n", label("Methodology:"), res.Methodology)
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %s\n", label("Estimated value:"), value(r.money(res.EstimatedValue)))
	fmt.Fprintf(&b, "%s %s – %s\n", label("Value range:"), r.money(res.ValueRange.Low), r.money(res.ValueRange.High))
	fmt.Fprintf(&b, "%s %.0f/100\n", label("Confidence:"), res.ConfidenceScore)
	if res.MarketAnalysis.PricePerSqftEstimate > 0 {
		fmt.Fprintf(&b, "%s %s%.2f\n", label("Price per sqft:"), r.currency, res.MarketAnalysis.PricePerSqftEstimate)
	}
	fmt.Fprintf(&b, "%s %s\n", label("Market trend:"), res.MarketAnalysis.TrendLabel)
	if res.MarketAnalysis.AbsorptionDays > 0 {
		fmt.Fprintf(&b, "%s %.0f days\n", label("Estimated absorption:"), res.MarketAnalysis.AbsorptionDays)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n", section("Comparables"))
	fmt.Fprintf(&b, "  %-28s %14s %14s %8s %8s %s\n", "address", "sale price", "adjusted", "gross%", "relev.", "use")
	for _, c := range res.MarketAnalysis.ComparableData {
		use := "-"
		if c.Selected {
			use = "yes"
		}
		line := fmt.Sprintf("  %-28s %14s %14s %7.1f%% %8.1f %s",
			truncate(c.Address, 28), r.money(c.SalePrice), r.money(c.AdjustedPrice), c.GrossAdjustmentPct, c.RelevanceScore, use)
		if c.Weak {
			line = weak(line + "  (weak)")
		} else {
			line = strong(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n", section("Confidence breakdown"))
	for _, f := range res.MarketAnalysis.ConfidenceBreakdown {
		fmt.Fprintf(&b, "  %-20s %+0.2f  %s\n", f.Name, f.Delta, f.Detail)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n%s\n", section("Notes"), res.Notes)
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
