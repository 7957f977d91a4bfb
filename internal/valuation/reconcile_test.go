package valuation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danish-msa/summitly-sub001/internal/property"
)

func item(category string, dollars float64) property.AdjustmentItem {
	return property.AdjustmentItem{Category: category, Amount: property.CentsFromDollars(dollars), Reasoning: "test"}
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	sale := property.CentsFromDollars(500000)
	rec := Reconcile(sale, []property.AdjustmentItem{item("size", 40000), item("condition", -36000)}, 15.0)

	require.Equal(t, property.CentsFromDollars(504000), rec.AdjustedPrice)
	require.InDelta(t, 0.8, rec.NetAdjustmentPct, 1e-9)
	require.InDelta(t, 15.2, rec.GrossAdjustmentPct, 1e-9)
	require.True(t, rec.Weak)
}

func TestReconcileWeakThresholdIsExclusive(t *testing.T) {
	t.Parallel()

	sale := property.CentsFromDollars(500000)

	// gross of exactly 15.0% is not weak
	rec := Reconcile(sale, []property.AdjustmentItem{item("size", 75000)}, 15.0)
	require.InDelta(t, 15.0, rec.GrossAdjustmentPct, 1e-9)
	require.False(t, rec.Weak)

	// one cent over the line is
	rec = Reconcile(sale, []property.AdjustmentItem{item("size", 75000.01)}, 15.0)
	require.True(t, rec.Weak)
}

func TestReconcileNoAdjustments(t *testing.T) {
	t.Parallel()

	sale := property.CentsFromDollars(750000)
	rec := Reconcile(sale, nil, 15.0)
	require.Equal(t, sale, rec.AdjustedPrice)
	require.Zero(t, rec.GrossAdjustmentPct)
	require.Zero(t, rec.NetAdjustmentPct)
	require.False(t, rec.Weak)
}

func TestReconcileOpposingAdjustments(t *testing.T) {
	t.Parallel()

	// net cancels out but gross still counts both legs
	sale := property.CentsFromDollars(400000)
	rec := Reconcile(sale, []property.AdjustmentItem{item("rooms", 40000), item("location", -40000)}, 15.0)
	require.Equal(t, sale, rec.AdjustedPrice)
	require.Zero(t, rec.NetAdjustmentPct)
	require.InDelta(t, 20.0, rec.GrossAdjustmentPct, 1e-9)
	require.True(t, rec.Weak)
}
