package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// lookupFactor scans a table case-insensitively; config loading lowercases
// map keys.
func lookupFactor(m map[string]float64, key string) (float64, bool) {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return 0, false
}

func isolateConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("SUMMITLY_CONFIG", filepath.Join(dir, "missing.toml"))
}

func TestLoadDefaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.InDelta(t, 400, cfg.Engine.DefaultPricePerSqft, 1e-9)
	require.InDelta(t, 15.0, cfg.Engine.WeakGrossPctThreshold, 1e-9)
	require.InDelta(t, 40000, cfg.Engine.BedroomValue, 1e-9)
	require.InDelta(t, 2, cfg.Engine.RoomDiffCap, 1e-9)

	f, ok := lookupFactor(cfg.Engine.PropertyTypeFactors, "Detached")
	require.True(t, ok)
	require.InDelta(t, 1.0, f, 1e-9)

	rate, ok := lookupFactor(cfg.Engine.PricePerSqftByMarket, "Toronto")
	require.True(t, ok)
	require.InDelta(t, 600, rate, 1e-9)

	require.Equal(t, "$", cfg.UI.CurrencySymbol)
	require.Equal(t, "2006-01-02", cfg.UI.DateFormat)
}

func TestLoadFileOverride(t *testing.T) {
	isolateConfig(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[engine]
default_price_per_sqft = 425.0
weak_gross_pct_threshold = 12.5

[engine.property_type_factors]
loft = 0.65

[ui]
currency_symbol = "C$"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("SUMMITLY_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	require.InDelta(t, 425, cfg.Engine.DefaultPricePerSqft, 1e-9)
	require.InDelta(t, 12.5, cfg.Engine.WeakGrossPctThreshold, 1e-9)

	f, ok := lookupFactor(cfg.Engine.PropertyTypeFactors, "loft")
	require.True(t, ok)
	require.InDelta(t, 0.65, f, 1e-9)

	require.Equal(t, "C$", cfg.UI.CurrencySymbol)
	require.Equal(t, "2006-01-02", cfg.UI.DateFormat)
}

func TestLoadEnvOverride(t *testing.T) {
	isolateConfig(t)
	t.Setenv("SUMMITLY_ENGINE_BEDROOM_VALUE", "45000")

	cfg, err := Load()
	require.NoError(t, err)
	require.InDelta(t, 45000, cfg.Engine.BedroomValue, 1e-9)
}
