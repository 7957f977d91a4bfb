package valuation

import "github.com/danish-msa/summitly-sub001/internal/property"

// Reconciliation aggregates a comparable's adjustment list into its adjusted
// price and quality signals.
type Reconciliation struct {
	AdjustedPrice      property.Cents
	GrossAdjustmentPct float64
	NetAdjustmentPct   float64
	Weak               bool
}

// Reconcile sums a comparable's adjustments. A comparable whose gross
// adjustment percentage exceeds the weak threshold (15% of sale price) is
// flagged weak; the threshold comparison runs on the unrounded figure.
func Reconcile(salePrice property.Cents, items []property.AdjustmentItem, weakThresholdPct float64) Reconciliation {
	var net, gross property.Cents
	for _, item := range items {
		net += item.Amount
		gross += item.Amount.Abs()
	}
	grossPct := gross.Dollars() / salePrice.Dollars() * 100
	return Reconciliation{
		AdjustedPrice:      salePrice + net,
		GrossAdjustmentPct: grossPct,
		NetAdjustmentPct:   net.Dollars() / salePrice.Dollars() * 100,
		Weak:               grossPct > weakThresholdPct,
	}
}
