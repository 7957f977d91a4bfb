package tui

import (
	"io"
	"log"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/danish-msa/summitly-sub001/internal/property"
	"github.com/danish-msa/summitly-sub001/internal/testdata"
	"github.com/danish-msa/summitly-sub001/internal/valuation"
)

func fixtureResult(t *testing.T) *property.ValuationResult {
	t.Helper()
	asOf := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	est := valuation.NewEstimator(valuation.DefaultTables(), asOf, log.New(io.Discard, "", 0))
	res, err := est.EstimateMarketValue(testdata.Subject(), testdata.Comparables(asOf), testdata.Market())
	require.NoError(t, err)
	return res
}

func press(t *testing.T, m Model, key tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestCursorNavigation(t *testing.T) {
	t.Parallel()
	m := New(fixtureResult(t))
	require.Equal(t, 0, m.cursor)

	m, _ = press(t, m, runeKey('k'))
	require.Equal(t, 0, m.cursor)

	m, _ = press(t, m, runeKey('j'))
	m, _ = press(t, m, runeKey('j'))
	require.Equal(t, 2, m.cursor)

	// bottom row; further presses stay put
	m, _ = press(t, m, runeKey('j'))
	require.Equal(t, 2, m.cursor)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 1, m.cursor)
}

func TestDetailToggle(t *testing.T) {
	t.Parallel()
	m := New(fixtureResult(t))
	require.NotContains(t, m.View(), "Adjustments")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	require.Contains(t, view, "Adjustments")
	require.Contains(t, view, "date")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Nil(t, cmd)
	require.NotContains(t, m.View(), "Adjustments")

	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestQuitKeys(t *testing.T) {
	t.Parallel()
	m := New(fixtureResult(t))

	_, cmd := press(t, m, runeKey('q'))
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsValuation(t *testing.T) {
	t.Parallel()
	res := fixtureResult(t)
	m := New(res)
	view := m.View()

	require.Contains(t, view, res.Subject.Address)
	require.Contains(t, view, res.EstimatedValue.String())
	require.Contains(t, view, "[used]")
	for _, row := range res.MarketAnalysis.ComparableData {
		require.Contains(t, view, row.Address)
	}
}
