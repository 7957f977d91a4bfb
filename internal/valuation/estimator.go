// Package valuation implements the direct-comparison valuation engine:
// per-comparable adjustment calculators, reconciliation, and the market value
// estimator that turns a subject plus comparables into a ValuationResult.
//
// The engine is purely functional over its inputs. The only clock it ever
// reads is the injected as-of date, so identical inputs produce identical
// results.
package valuation

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danish-msa/summitly-sub001/internal/property"
)

// ErrInsufficientComparables is returned when fewer than two comparables are
// supplied. This is the engine's only fatal precondition.
var ErrInsufficientComparables = errors.New("insufficient comparables")

// CalculationWarning records a calculator failure that was downgraded to a
// zero-amount adjustment. One failing factor never fails the valuation.
type CalculationWarning struct {
	ComparableID string
	Category     string
	Err          error
}

func (w CalculationWarning) Error() string {
	return fmt.Sprintf("%s adjustment for comparable %s: %v", w.Category, w.ComparableID, w.Err)
}

// Selection caps for the reconciliation set.
const (
	minUsableComparables = 3
	maxUsableComparables = 5
)

// Estimator runs the valuation pipeline with a fixed constant set and a fixed
// as-of date.
type Estimator struct {
	tables Tables
	asOf   time.Time
	logger *log.Logger
}

// NewEstimator builds an estimator. A zero asOf falls back to the current
// time; a nil logger falls back to the process default.
func NewEstimator(t Tables, asOf time.Time, logger *log.Logger) *Estimator {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Estimator{tables: t, asOf: asOf, logger: logger}
}

// AsOf returns the valuation date the estimator is pinned to.
func (e *Estimator) AsOf() time.Time { return e.asOf }

type scoredComparable struct {
	comp       property.Comparable
	rec        Reconciliation
	recency    float64
	similarity float64
	relevance  float64
	index      int
	selected   bool
}

// EstimateMarketValue values the subject from the comparable set, following
// the direct comparison approach: adjust each comparable, reconcile, rank by
// relevance, and take the median adjusted price of the selected set.
func (e *Estimator) EstimateMarketValue(subject property.Details, comps []property.Comparable, market MarketData) (*property.ValuationResult, error) {
	if len(comps) < 2 {
		return nil, fmt.Errorf("%w: got %d, need at least 2", ErrInsufficientComparables, len(comps))
	}
	if err := subject.Validate(e.asOf); err != nil {
		return nil, fmt.Errorf("subject property: %w", err)
	}
	for i, c := range comps {
		if err := c.Validate(e.asOf); err != nil {
			return nil, fmt.Errorf("comparable %d (%s): %w", i, c.ID, err)
		}
	}

	// Adjust and score every comparable.
	var warnings []CalculationWarning
	scored := make([]*scoredComparable, len(comps))
	for i, c := range comps {
		sc := e.adjustComparable(c, subject, market, &warnings)
		sc.index = i
		scored[i] = sc
	}

	// Partition by adjustment quality and pick the usable set.
	var strong, weak []*scoredComparable
	for _, sc := range scored {
		if sc.rec.Weak {
			weak = append(weak, sc)
		} else {
			strong = append(strong, sc)
		}
	}
	usable, degraded := e.selectUsable(scored, strong, weak)

	// Rank by relevance, ties broken by input order, and cap the set.
	sort.SliceStable(usable, func(i, j int) bool { return usable[i].relevance > usable[j].relevance })
	selected := usable
	if len(selected) > maxUsableComparables {
		selected = selected[:maxUsableComparables]
	}
	for _, sc := range selected {
		sc.selected = true
	}

	// Reconcile the selected set to a point estimate and range.
	prices := make([]property.Cents, len(selected))
	for i, sc := range selected {
		prices[i] = sc.rec.AdjustedPrice
	}
	estimate, low, high := medianAndRange(prices)

	confidence, factors := e.confidence(strong, selected, market)

	result := e.assemble(subject, comps, market, scored, selected, estimate, low, high,
		confidence, factors, len(strong), len(weak), degraded, len(warnings))
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("valuation result: %w", err)
	}
	return result, nil
}

// adjustComparable runs every calculator against one comparable, downgrading
// failures and invariant-violating items to zero-amount adjustments, then
// reconciles and scores it.
func (e *Estimator) adjustComparable(comp property.Comparable, subject property.Details, market MarketData, warnings *[]CalculationWarning) *scoredComparable {
	comp.Adjustments = make([]property.AdjustmentItem, 0, len(calculators()))
	for _, calc := range calculators() {
		item, err := calc.fn(comp, subject, market, e.tables, e.asOf)
		if err == nil {
			err = item.Validate()
		}
		if err != nil {
			w := CalculationWarning{ComparableID: comp.ID, Category: calc.category, Err: err}
			*warnings = append(*warnings, w)
			e.logger.Printf("warn: %v; substituting zero adjustment", w)
			item = zeroItem(calc.category, fmt.Sprintf("adjustment unavailable (%v); no correction applied", err))
		}
		comp.Adjustments = append(comp.Adjustments, item)
	}

	rec := Reconcile(comp.SalePrice, comp.Adjustments, e.tables.WeakGrossPctThreshold)
	days := e.asOf.Sub(comp.SaleDate).Hours() / 24
	recency := math.Max(0, 100-days/3.65)
	similarity := clamp(100-rec.GrossAdjustmentPct, 0, 100)
	return &scoredComparable{
		comp:       comp,
		rec:        rec,
		recency:    recency,
		similarity: similarity,
		relevance:  0.4*recency + 0.6*similarity,
	}
}

// selectUsable applies the strong/weak filter: three or more strong
// comparables stand alone, two strong are topped up with the most relevant
// weak ones, and anything less uses everything available in degraded mode.
func (e *Estimator) selectUsable(scored, strong, weak []*scoredComparable) (usable []*scoredComparable, degraded bool) {
	switch {
	case len(strong) >= minUsableComparables:
		return append(usable, strong...), false
	case len(strong) == 2:
		usable = append(usable, strong...)
		topUp := append([]*scoredComparable(nil), weak...)
		sort.SliceStable(topUp, func(i, j int) bool { return topUp[i].relevance > topUp[j].relevance })
		for _, sc := range topUp {
			if len(usable) >= minUsableComparables {
				break
			}
			usable = append(usable, sc)
		}
		return usable, false
	default:
		e.logger.Printf("warn: degraded valuation quality: %d strong comparables of %d total", len(strong), len(scored))
		return append(usable, scored...), true
	}
}

// medianAndRange returns the median, minimum and maximum of the prices, with
// the median clamped into the range.
func medianAndRange(prices []property.Cents) (median, low, high property.Cents) {
	sorted := append([]property.Cents(nil), prices...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	low, high = sorted[0], sorted[len(sorted)-1]
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		median = sorted[mid]
	} else {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}
	if median < low {
		median = low
	}
	if median > high {
		median = high
	}
	return median, low, high
}

// confidence builds the multi-factor confidence score: a 0.70 base adjusted
// by strong-comparable count, adjusted-price consistency, short-term trend
// stability, and recency, clamped to [0.50, 0.95] and reported on a 0-100
// scale with the full factor breakdown.
func (e *Estimator) confidence(strong, selected []*scoredComparable, market MarketData) (float64, []property.ConfidenceFactor) {
	factors := []property.ConfidenceFactor{{
		Name: "base", Delta: 0.70, Detail: "direct comparison baseline",
	}}
	score := 0.70

	var d float64
	switch {
	case len(strong) >= 3:
		d = 0.15
	case len(strong) == 2:
		d = 0.10
	default:
		d = 0.05
	}
	score += d
	factors = append(factors, property.ConfidenceFactor{
		Name: "comparable_count", Delta: d,
		Detail: fmt.Sprintf("%d strong comparables", len(strong)),
	})

	cov := coefficientOfVariationPct(selected)
	switch {
	case cov < 5:
		d = 0.10
	case cov < 10:
		d = 0.05
	case cov < 15:
		d = 0
	default:
		d = -0.10
	}
	score += d
	factors = append(factors, property.ConfidenceFactor{
		Name: "price_consistency", Delta: d,
		Detail: fmt.Sprintf("adjusted price variation %.1f%%", cov),
	})

	if market.PriceTrend3Month != nil {
		t := math.Abs(*market.PriceTrend3Month)
		switch {
		case t <= 2:
			d = 0.05
		case t <= 5:
			d = 0
		default:
			d = -0.05
		}
		score += d
		factors = append(factors, property.ConfidenceFactor{
			Name: "trend_stability", Delta: d,
			Detail: fmt.Sprintf("3-month trend magnitude %.1f%%", t),
		})
	}

	var recencySum float64
	for _, sc := range selected {
		recencySum += sc.recency
	}
	avgRecency := recencySum / float64(len(selected))
	switch {
	case avgRecency >= 80:
		d = 0.05
	case avgRecency >= 50:
		d = 0
	default:
		d = -0.05
	}
	score += d
	factors = append(factors, property.ConfidenceFactor{
		Name: "recency", Delta: d,
		Detail: fmt.Sprintf("average recency score %.1f", avgRecency),
	})

	return round2(clamp(score, 0.50, 0.95) * 100), factors
}

// coefficientOfVariationPct is the population standard deviation of the
// selected adjusted prices as a percentage of their mean.
func coefficientOfVariationPct(selected []*scoredComparable) float64 {
	if len(selected) == 0 {
		return 0
	}
	var sum float64
	for _, sc := range selected {
		sum += sc.rec.AdjustedPrice.Dollars()
	}
	mean := sum / float64(len(selected))
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, sc := range selected {
		dev := sc.rec.AdjustedPrice.Dollars() - mean
		variance += dev * dev
	}
	variance /= float64(len(selected))
	return math.Sqrt(variance) / math.Abs(mean) * 100
}

// absorptionDays estimates days to sell: market average days on market scaled
// by the subject's condition.
func (e *Estimator) absorptionDays(subject property.Details, market MarketData) float64 {
	if market.AvgDaysOnMarket == nil {
		return 0
	}
	factor := 1.0
	switch NormalizeCondition(subject.Condition) {
	case "Excellent":
		factor = 0.8
	case "Poor":
		factor = 1.5
	}
	return round2(*market.AvgDaysOnMarket * factor)
}

func (e *Estimator) assemble(subject property.Details, comps []property.Comparable, market MarketData,
	scored, selected []*scoredComparable, estimate, low, high property.Cents,
	confidence float64, factors []property.ConfidenceFactor,
	strongCount, weakCount int, degraded bool, warningCount int) *property.ValuationResult {

	breakdowns := make([]property.ComparableBreakdown, len(scored))
	for i, sc := range scored {
		breakdowns[i] = property.ComparableBreakdown{
			ID:                 sc.comp.ID,
			Address:            sc.comp.Address,
			SalePrice:          sc.comp.SalePrice,
			TotalAdjustment:    sc.comp.TotalAdjustment(),
			AdjustedPrice:      sc.rec.AdjustedPrice,
			GrossAdjustmentPct: round2(sc.rec.GrossAdjustmentPct),
			NetAdjustmentPct:   round2(sc.rec.NetAdjustmentPct),
			Weak:               sc.rec.Weak,
			RecencyScore:       round2(sc.recency),
			SimilarityScore:    round2(sc.similarity),
			RelevanceScore:     round2(sc.relevance),
			Selected:           sc.selected,
		}
	}

	used := make([]property.Comparable, len(selected))
	for i, sc := range selected {
		used[i] = sc.comp
	}

	methodology := property.MethodologyDirectComparison
	if len(used) < minUsableComparables {
		methodology = property.MethodologyDirectComparisonLimited
	}

	var pricePerSqft float64
	if subject.SquareFeet > 0 {
		pricePerSqft = round2(estimate.Dollars() / float64(subject.SquareFeet))
	}

	notes := fmt.Sprintf(
		"Direct comparison approach over %d comparables (%d strong, %d weak); %d selected for reconciliation. Estimated value %s within range %s to %s at confidence %.0f/100.",
		len(scored), strongCount, weakCount, len(used), estimate, low, high, confidence)
	if degraded {
		notes += " Quality degraded: fewer than 2 strong comparables were available."
	}
	if warningCount > 0 {
		notes += fmt.Sprintf(" %d adjustment factor(s) could not be computed and were applied as zero.", warningCount)
	}

	return &property.ValuationResult{
		ID:              resultID(subject, comps, e.asOf),
		Subject:         subject,
		Comparables:     used,
		EstimatedValue:  estimate,
		ValueRange:      property.ValueRange{Low: low, High: high},
		ConfidenceScore: confidence,
		MarketAnalysis: property.MarketAnalysis{
			TrendLabel:           market.TrendLabel(),
			PricePerSqftEstimate: pricePerSqft,
			AbsorptionDays:       e.absorptionDays(subject, market),
			ComparableData:       breakdowns,
			ConfidenceBreakdown:  factors,
			ValuationSummary: property.ValuationSummary{
				ComparablesProvided:  len(scored),
				ComparablesStrong:    strongCount,
				ComparablesWeak:      weakCount,
				ComparablesUsedFinal: len(used),
				Degraded:             degraded,
			},
		},
		ValuationDate: e.asOf,
		Methodology:   methodology,
		Notes:         notes,
	}
}

// resultID derives a stable UUID from the run's identity so repeated runs
// over identical inputs serialize byte-for-byte identically.
func resultID(subject property.Details, comps []property.Comparable, asOf time.Time) string {
	parts := make([]string, 0, len(comps)+2)
	parts = append(parts, "summitly:valuation:"+subject.ID, asOf.UTC().Format(time.RFC3339))
	for _, c := range comps {
		parts = append(parts, c.ID)
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(parts, "|"))).String()
}
