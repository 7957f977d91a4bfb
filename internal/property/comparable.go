package property

import (
	"fmt"
	"time"
)

// AdjustmentItem is one named correction applied to a comparable's sale price.
// Percent is relative to the comparable's sale price.
type AdjustmentItem struct {
	Category  string  `json:"category"`
	Amount    Cents   `json:"amount"`
	Percent   float64 `json:"percent"`
	Reasoning string  `json:"reasoning"`
}

// Validate checks the item's invariants.
func (a AdjustmentItem) Validate() error {
	if a.Category == "" {
		return &ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if a.Reasoning == "" {
		return &ValidationError{Field: "reasoning", Reason: "must not be empty"}
	}
	if a.Percent < -100 || a.Percent > 100 {
		return &ValidationError{Field: "percent", Reason: fmt.Sprintf("%.2f outside [-100, 100]", a.Percent)}
	}
	return nil
}

// Comparable is a sold (or listed) property used as a valuation evidence
// point. The sourcing service delivers it with SalePrice and SaleDate resolved
// from sold-price history and an empty Adjustments slice; the engine fills in
// Adjustments and leaves everything else alone.
type Comparable struct {
	Details

	SalePrice       Cents            `json:"sale_price"`
	SaleDate        time.Time        `json:"sale_date"`
	DaysOnMarket    *int             `json:"days_on_market,omitempty"`
	Adjustments     []AdjustmentItem `json:"adjustments"`
	DistanceKm      *float64         `json:"distance_km,omitempty"`
	SimilarityScore *float64         `json:"similarity_score,omitempty"`
}

// Validate checks the record's invariants against the valuation date.
func (c Comparable) Validate(asOf time.Time) error {
	if err := c.Details.Validate(asOf); err != nil {
		return err
	}
	if c.SalePrice <= 0 {
		return &ValidationError{Field: "sale_price", Reason: "must be positive"}
	}
	if c.SaleDate.IsZero() {
		return &ValidationError{Field: "sale_date", Reason: "must be set"}
	}
	if c.SaleDate.After(asOf) {
		return &ValidationError{Field: "sale_date", Reason: "must not be in the future"}
	}
	if c.DaysOnMarket != nil && *c.DaysOnMarket < 0 {
		return &ValidationError{Field: "days_on_market", Reason: "must not be negative"}
	}
	if c.DistanceKm != nil && *c.DistanceKm < 0 {
		return &ValidationError{Field: "distance_km", Reason: "must not be negative"}
	}
	if c.SimilarityScore != nil && (*c.SimilarityScore < 0 || *c.SimilarityScore > 100) {
		return &ValidationError{Field: "similarity_score", Reason: "outside [0, 100]"}
	}
	for _, a := range c.Adjustments {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TotalAdjustment is the signed sum of all adjustment amounts.
func (c Comparable) TotalAdjustment() Cents {
	var total Cents
	for _, a := range c.Adjustments {
		total += a.Amount
	}
	return total
}

// AdjustedPrice is the sale price corrected by all adjustments.
func (c Comparable) AdjustedPrice() Cents {
	return c.SalePrice + c.TotalAdjustment()
}

// AdjustedPricePerSqft returns the adjusted price per above-grade square foot,
// or 0 when square footage is unknown.
func (c Comparable) AdjustedPricePerSqft() float64 {
	if c.SquareFeet <= 0 {
		return 0
	}
	return c.AdjustedPrice().Dollars() / float64(c.SquareFeet)
}
