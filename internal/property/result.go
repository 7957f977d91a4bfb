package property

import (
	"fmt"
	"time"
)

// Methodology labels carried on a ValuationResult.
const (
	MethodologyDirectComparison        = "direct_comparison"
	MethodologyDirectComparisonLimited = "direct_comparison_limited"
)

// ValueRange brackets the estimated value.
type ValueRange struct {
	Low  Cents `json:"low"`
	High Cents `json:"high"`
}

// ConfidenceFactor is one additive component of the confidence score. Factors
// are kept as an ordered slice so serialized results are reproducible.
type ConfidenceFactor struct {
	Name   string  `json:"name"`
	Delta  float64 `json:"delta"`
	Detail string  `json:"detail"`
}

// ComparableBreakdown is the per-comparable view inside MarketAnalysis,
// covering every comparable supplied to the run, selected or not.
type ComparableBreakdown struct {
	ID                 string  `json:"id"`
	Address            string  `json:"address"`
	SalePrice          Cents   `json:"sale_price"`
	TotalAdjustment    Cents   `json:"total_adjustment"`
	AdjustedPrice      Cents   `json:"adjusted_price"`
	GrossAdjustmentPct float64 `json:"gross_adjustment_pct"`
	NetAdjustmentPct   float64 `json:"net_adjustment_pct"`
	Weak               bool    `json:"weak"`
	RecencyScore       float64 `json:"recency_score"`
	SimilarityScore    float64 `json:"similarity_score"`
	RelevanceScore     float64 `json:"relevance_score"`
	Selected           bool    `json:"selected"`
}

// ValuationSummary counts how the comparable set was used.
type ValuationSummary struct {
	ComparablesProvided  int  `json:"comparables_provided"`
	ComparablesStrong    int  `json:"comparables_strong"`
	ComparablesWeak      int  `json:"comparables_weak"`
	ComparablesUsedFinal int  `json:"comparables_used_final"`
	Degraded             bool `json:"degraded"`
}

// MarketAnalysis is the explainability payload attached to a result. The
// narrative generator downstream renders it; nothing here feeds back into the
// numbers.
type MarketAnalysis struct {
	TrendLabel           string                `json:"trend_label"`
	PricePerSqftEstimate float64               `json:"price_per_sqft_estimate,omitempty"`
	AbsorptionDays       float64               `json:"absorption_days,omitempty"`
	ComparableData       []ComparableBreakdown `json:"comparable_data"`
	ConfidenceBreakdown  []ConfidenceFactor    `json:"confidence_breakdown"`
	ValuationSummary     ValuationSummary      `json:"valuation_summary"`
}

// ValuationResult is the outcome of one valuation run. It is assembled once,
// validated, and safe to serialize as-is.
type ValuationResult struct {
	ID              string         `json:"id"`
	Subject         Details        `json:"subject"`
	Comparables     []Comparable   `json:"comparables"`
	EstimatedValue  Cents          `json:"estimated_value"`
	ValueRange      ValueRange     `json:"value_range"`
	ConfidenceScore float64        `json:"confidence_score"`
	MarketAnalysis  MarketAnalysis `json:"market_analysis"`
	ValuationDate   time.Time      `json:"valuation_date"`
	Methodology     string         `json:"methodology"`
	Notes           string         `json:"notes"`
}

// Validate checks the result's invariants.
func (r ValuationResult) Validate() error {
	if r.ValueRange.Low <= 0 || r.ValueRange.High <= 0 {
		return &ValidationError{Field: "value_range", Reason: "bounds must be positive"}
	}
	if r.ValueRange.Low > r.ValueRange.High {
		return &ValidationError{Field: "value_range", Reason: "low exceeds high"}
	}
	if r.EstimatedValue < r.ValueRange.Low || r.EstimatedValue > r.ValueRange.High {
		return &ValidationError{Field: "estimated_value", Reason: fmt.Sprintf("%s outside range [%s, %s]",
			r.EstimatedValue, r.ValueRange.Low, r.ValueRange.High)}
	}
	if r.ConfidenceScore < 0 || r.ConfidenceScore > 100 {
		return &ValidationError{Field: "confidence_score", Reason: "outside [0, 100]"}
	}
	if len(r.Comparables) == 0 {
		return &ValidationError{Field: "comparables", Reason: "must not be empty"}
	}
	if len(r.Comparables) < 3 && r.Methodology != MethodologyDirectComparisonLimited {
		return &ValidationError{Field: "comparables", Reason: "fewer than 3 requires the limited methodology"}
	}
	return nil
}
