package report

import (
	"io"
	"log"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/danish-msa/summitly-sub001/internal/property"
	"github.com/danish-msa/summitly-sub001/internal/testdata"
	"github.com/danish-msa/summitly-sub001/internal/valuation"
)

func fixtureResult(t *testing.T) *property.ValuationResult {
	t.Helper()
	asOf := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	est := valuation.NewEstimator(valuation.DefaultTables(), asOf, log.New(io.Discard, "", 0))

	comps := testdata.Comparables(asOf)
	weak := testdata.Comparables(asOf)[0]
	weak.ID = "comp-weak"
	weak.Address = "55 Birchmount Rd"
	weak.PropertyType = "Condo"
	comps = append(comps, weak)

	res, err := est.EstimateMarketValue(testdata.Subject(), comps, testdata.Market())
	require.NoError(t, err)
	return res
}

func TestRenderPlain(t *testing.T) {
	t.Parallel()
	res := fixtureResult(t)
	out := NewRenderer("", "").RenderPlain(res)

	require.Contains(t, out, res.Subject.Address)
	require.Contains(t, out, "Estimated value: "+res.EstimatedValue.String())
	require.Contains(t, out, res.ValueRange.Low.String())
	require.Contains(t, out, res.ValueRange.High.String())
	require.Contains(t, out, "Confidence:")
	require.Contains(t, out, "rising")
	require.Contains(t, out, "Comparables")
	require.Contains(t, out, "Confidence breakdown")
	require.Contains(t, out, "Notes")
	require.Contains(t, out, res.Notes)

	for _, c := range res.MarketAnalysis.ComparableData {
		require.Contains(t, out, c.Address)
	}
	require.Contains(t, out, "(weak)")
}

func TestRenderCarriesContent(t *testing.T) {
	t.Parallel()
	res := fixtureResult(t)
	out := NewRenderer("$", "2006-01-02").Render(res)

	require.Contains(t, out, res.Subject.Address)
	require.Contains(t, out, res.EstimatedValue.String())
}

func TestRendererUsesUISettings(t *testing.T) {
	t.Parallel()
	res := fixtureResult(t)
	out := NewRenderer("C$", "02 Jan 2006").RenderPlain(res)

	require.Contains(t, out, "Estimated value: "+res.EstimatedValue.Format("C$"))
	require.Contains(t, out, "Valuation date: "+res.ValuationDate.Format("02 Jan 2006"))
	require.NotContains(t, out, res.ValuationDate.Format("2006-01-02"))
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	require.Equal(t, "short", truncate("short", 28))

	got := truncate("an address well over the column width limit", 12)
	require.Len(t, []rune(got), 12)
	require.Equal(t, "an address …", got)

	// multi-byte runes must not be split mid-sequence
	got = truncate("123 Château-Richer Boulevard", 12)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, "123 Château…", got)
}
