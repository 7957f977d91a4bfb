package valuation

// MarketData carries the optional market context supplied alongside a
// valuation request. Every field may be absent; calculators fall back to
// documented defaults when one is.
type MarketData struct {
	AveragePrice      *float64 `json:"average_price,omitempty"`
	MedianPrice       *float64 `json:"median_price,omitempty"`
	PricePerSqft      *float64 `json:"price_per_sqft,omitempty"`
	PriceTrend3Month  *float64 `json:"price_trend_3month,omitempty"`
	PriceTrend6Month  *float64 `json:"price_trend_6month,omitempty"`
	PriceTrend12Month *float64 `json:"price_trend_12month,omitempty"`
	AvgDaysOnMarket   *float64 `json:"avg_days_on_market,omitempty"`
	InventoryLevel    *float64 `json:"inventory_level,omitempty"`
	SaleToListRatio   *float64 `json:"sale_to_list_ratio,omitempty"`
	MarketStatus      string   `json:"market_status,omitempty"`
}

// annualTrendPct resolves the annual price trend to use for time adjustments:
// the 6-month trend doubled when present, else the 12-month trend, else the
// configured default.
func (m MarketData) annualTrendPct(fallback float64) float64 {
	if m.PriceTrend6Month != nil {
		return *m.PriceTrend6Month * 2
	}
	if m.PriceTrend12Month != nil {
		return *m.PriceTrend12Month
	}
	return fallback
}

// TrendLabel classifies the market direction from whichever trend figure is
// available, preferring the 6-month view.
func (m MarketData) TrendLabel() string {
	var t *float64
	switch {
	case m.PriceTrend6Month != nil:
		t = m.PriceTrend6Month
	case m.PriceTrend12Month != nil:
		t = m.PriceTrend12Month
	case m.PriceTrend3Month != nil:
		t = m.PriceTrend3Month
	default:
		return "unknown"
	}
	switch {
	case *t >= 2:
		return "rising"
	case *t <= -2:
		return "declining"
	default:
		return "stable"
	}
}
