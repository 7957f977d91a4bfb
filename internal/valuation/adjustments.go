package valuation

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/danish-msa/summitly-sub001/internal/property"
)

// Adjustment category tags, in the order the calculators run.
const (
	CategoryDate         = "date"
	CategoryLocation     = "location"
	CategoryPropertyType = "property_type"
	CategoryCondition    = "condition"
	CategorySize         = "size"
	CategoryRooms        = "rooms"
	CategoryLotSize      = "lot_size"
	CategoryBasement     = "basement"
	CategoryGarage       = "garage"
)

// adjustmentFunc computes one adjustment for a comparable against the subject.
// Missing optional data yields a zero-amount item, never an error; an error is
// reserved for inputs the calculator cannot reason about at all and is
// downgraded to a zero-amount item by the estimator.
type adjustmentFunc func(comp property.Comparable, subject property.Details, market MarketData, t Tables, asOf time.Time) (property.AdjustmentItem, error)

// calculators returns the fixed calculator pipeline. Order matters only for
// reproducibility of the adjustment list; the amounts are independent.
func calculators() []struct {
	category string
	fn       adjustmentFunc
} {
	return []struct {
		category string
		fn       adjustmentFunc
	}{
		{CategoryDate, dateAdjustment},
		{CategoryLocation, locationAdjustment},
		{CategoryPropertyType, propertyTypeAdjustment},
		{CategoryCondition, conditionAdjustment},
		{CategorySize, sizeAdjustment},
		{CategoryRooms, roomCountAdjustment},
		{CategoryLotSize, lotSizeAdjustment},
		{CategoryBasement, basementAdjustment},
		{CategoryGarage, garageAdjustment},
	}
}

func zeroItem(category, reasoning string) property.AdjustmentItem {
	return property.AdjustmentItem{Category: category, Reasoning: reasoning}
}

func amountItem(category string, salePrice, amount property.Cents, reasoning string) property.AdjustmentItem {
	return property.AdjustmentItem{
		Category:  category,
		Amount:    amount,
		Percent:   round2(amount.Dollars() / salePrice.Dollars() * 100),
		Reasoning: reasoning,
	}
}

func pctOf(salePrice property.Cents, pct float64) property.Cents {
	return property.CentsFromDollars(salePrice.Dollars() * pct / 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// dateAdjustment corrects the sale price for market movement between the sale
// date and the valuation date. The annual trend comes from market data (6-month
// doubled, else 12-month) or a 3% fallback; the total correction is clamped to
// the configured cap.
func dateAdjustment(comp property.Comparable, _ property.Details, market MarketData, t Tables, asOf time.Time) (property.AdjustmentItem, error) {
	months := asOf.Sub(comp.SaleDate).Hours() / 24 / 30.44
	if months <= 0 {
		return zeroItem(CategoryDate, "sale is current; no time adjustment needed"), nil
	}
	annual := market.annualTrendPct(t.DefaultAnnualTrendPct)
	pct := clamp(annual/12*months, -t.DateAdjustmentCapPct, t.DateAdjustmentCapPct)
	amount := pctOf(comp.SalePrice, pct)
	reason := fmt.Sprintf("sold %.1f months ago; %.1f%% annual trend applied as %.2f%%", months, annual, pct)
	return amountItem(CategoryDate, comp.SalePrice, amount, reason), nil
}

// locationAdjustment applies a base correction by address granularity, less a
// distance penalty. The base always treats the subject as the better-located
// party; a true bidirectional neighborhood-quality comparison needs external
// scoring data this engine does not receive, so the asymmetry is kept as a
// documented simplification rather than guessed at.
func locationAdjustment(comp property.Comparable, subject property.Details, _ MarketData, t Tables, _ time.Time) (property.AdjustmentItem, error) {
	if comp.DistanceKm != nil && *comp.DistanceKm < 0 {
		return property.AdjustmentItem{}, fmt.Errorf("negative distance %.2f km", *comp.DistanceKm)
	}

	var base float64
	var where string
	switch {
	case foldKey(comp.City) != foldKey(subject.City):
		base, where = t.DifferentCityBase, fmt.Sprintf("different city (%s vs %s)", comp.City, subject.City)
	case streetKey(comp.Address) == streetKey(subject.Address):
		base, where = 0, "same street as subject"
	default:
		base, where = t.SameCityBase, "same city, different street"
	}

	km, known := resolveDistanceKm(comp, subject)
	var penalty float64
	if known && km > t.DistanceFreeKm {
		penalty = (km - t.DistanceFreeKm) / t.DistanceFreeKm * t.DistancePenaltyStep
		penalty = math.Min(penalty, t.DistancePenaltyCap)
	}

	amount := property.CentsFromDollars(base - penalty)
	if amount == 0 {
		return zeroItem(CategoryLocation, where+"; no location adjustment"), nil
	}
	reason := where
	if penalty > 0 {
		reason = fmt.Sprintf("%s; %.1f km away (penalty %s)", where, km, property.CentsFromDollars(penalty))
	}
	return amountItem(CategoryLocation, comp.SalePrice, amount, reason), nil
}

// streetKey folds an address and drops digits so two house numbers on the
// same street compare equal.
func streetKey(address string) string {
	var b strings.Builder
	for _, r := range foldKey(address) {
		if r < '0' || r > '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// resolveDistanceKm prefers the pre-resolved distance on the comparable, then
// great-circle distance when both records carry coordinates.
func resolveDistanceKm(comp property.Comparable, subject property.Details) (float64, bool) {
	if comp.DistanceKm != nil {
		return *comp.DistanceKm, true
	}
	if comp.Latitude != nil && comp.Longitude != nil && subject.Latitude != nil && subject.Longitude != nil {
		return haversineKm(*comp.Latitude, *comp.Longitude, *subject.Latitude, *subject.Longitude), true
	}
	return 0, false
}

// propertyTypeAdjustment corrects for structural type using relative value
// factors; the percentage is the ratio of subject factor to comparable factor.
func propertyTypeAdjustment(comp property.Comparable, subject property.Details, _ MarketData, t Tables, _ time.Time) (property.AdjustmentItem, error) {
	sf := typeFactor(subject.PropertyType, t)
	cf := typeFactor(comp.PropertyType, t)
	if cf == 0 {
		return property.AdjustmentItem{}, fmt.Errorf("zero value factor for comparable type %q", comp.PropertyType)
	}
	if NormalizePropertyType(comp.PropertyType) == NormalizePropertyType(subject.PropertyType) || sf == cf {
		return zeroItem(CategoryPropertyType, "same property type; no adjustment"), nil
	}
	pct := (sf/cf - 1) * 100
	amount := pctOf(comp.SalePrice, pct)
	reason := fmt.Sprintf("%s (factor %.2f) vs %s (factor %.2f)", subject.PropertyType, sf, comp.PropertyType, cf)
	return amountItem(CategoryPropertyType, comp.SalePrice, amount, reason), nil
}

func typeFactor(rawType string, t Tables) float64 {
	if canonical := NormalizePropertyType(rawType); canonical != "" {
		if f, ok := lookupFold(t.PropertyTypeFactors, canonical); ok {
			return f
		}
	}
	return t.DefaultTypeFactor
}

// lookupFold reads a table with fold-insensitive keys. Config loading
// lowercases map keys, so tables cannot be read by exact string.
func lookupFold(m map[string]float64, key string) (float64, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	fk := foldKey(key)
	for k, v := range m {
		if foldKey(k) == fk {
			return v, true
		}
	}
	return 0, false
}

// conditionAdjustment corrects for the ordinal condition gap, scaled by the
// market's average price when known.
func conditionAdjustment(comp property.Comparable, subject property.Details, market MarketData, t Tables, _ time.Time) (property.AdjustmentItem, error) {
	sr := conditionRating(subject.Condition, t)
	cr := conditionRating(comp.Condition, t)
	diff := sr - cr
	if math.Abs(diff) < 0.5 {
		return zeroItem(CategoryCondition, "comparable condition; no adjustment"), nil
	}
	base := t.ConditionLevelValue
	if market.AveragePrice != nil && *market.AveragePrice > 0 {
		base *= clamp(*market.AveragePrice/500000, 0.5, 2.0)
	}
	amount := property.CentsFromDollars(diff * base)
	reason := fmt.Sprintf("subject condition %s (%.0f) vs comparable %s (%.0f)",
		orDefault(subject.Condition, "Average"), sr, orDefault(comp.Condition, "Average"), cr)
	return amountItem(CategoryCondition, comp.SalePrice, amount, reason), nil
}

func conditionRating(raw string, t Tables) float64 {
	if canonical := NormalizeCondition(raw); canonical != "" {
		if r, ok := lookupFold(t.ConditionRatings, canonical); ok {
			return r
		}
	}
	return t.DefaultConditionRating
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// sizeAdjustment corrects for above-grade floor area at a market-specific
// dollar rate. Differences under 5% of the comparable's area are noise.
func sizeAdjustment(comp property.Comparable, subject property.Details, market MarketData, t Tables, _ time.Time) (property.AdjustmentItem, error) {
	if subject.SquareFeet == 0 || comp.SquareFeet == 0 {
		return zeroItem(CategorySize, "square footage unavailable; no size adjustment"), nil
	}
	diff := subject.SquareFeet - comp.SquareFeet
	if math.Abs(float64(diff)) < 0.05*float64(comp.SquareFeet) {
		return zeroItem(CategorySize, "similar size; difference under 5%"), nil
	}
	rate := marketPricePerSqft(subject.City, market, t)
	if rate <= 0 {
		return property.AdjustmentItem{}, fmt.Errorf("non-positive price per sqft %.2f", rate)
	}
	amount := property.CentsFromDollars(float64(diff) * rate)
	reason := fmt.Sprintf("%d sqft vs %d sqft at $%.0f/sqft", subject.SquareFeet, comp.SquareFeet, rate)
	return amountItem(CategorySize, comp.SalePrice, amount, reason), nil
}

// marketPricePerSqft resolves the $/sqft rate: explicit market data first,
// then the market table by city substring (keys checked in sorted order so
// lookups are deterministic), then the default.
func marketPricePerSqft(city string, market MarketData, t Tables) float64 {
	if market.PricePerSqft != nil && *market.PricePerSqft > 0 {
		return *market.PricePerSqft
	}
	key := foldKey(city)
	names := make([]string, 0, len(t.PricePerSqftByMarket))
	for name := range t.PricePerSqftByMarket {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.Contains(key, foldKey(name)) {
			return t.PricePerSqftByMarket[name]
		}
	}
	return t.DefaultPricePerSqft
}

// roomCountAdjustment corrects for bedroom and bathroom count differences.
// Each difference is capped at RoomDiffCap rooms so a badly mismatched
// comparable cannot produce a runaway correction, and sub-whole-room
// differences are ignored.
func roomCountAdjustment(comp property.Comparable, subject property.Details, _ MarketData, t Tables, _ time.Time) (property.AdjustmentItem, error) {
	bedDiff := cappedRoomDiff(float64(subject.Bedrooms-comp.Bedrooms), t.RoomDiffCap)
	bathDiff := cappedRoomDiff(subject.Bathrooms-comp.Bathrooms, t.RoomDiffCap)
	if bedDiff == 0 && bathDiff == 0 {
		return zeroItem(CategoryRooms, "comparable room count; no adjustment"), nil
	}
	amount := property.CentsFromDollars(bedDiff*t.BedroomValue + bathDiff*t.BathroomValue)
	reason := fmt.Sprintf("bedroom difference %+.0f, bathroom difference %+.1f (each capped at %.0f)",
		bedDiff, bathDiff, t.RoomDiffCap)
	return amountItem(CategoryRooms, comp.SalePrice, amount, reason), nil
}

func cappedRoomDiff(diff, limit float64) float64 {
	if math.Abs(diff) < 1 {
		return 0
	}
	return clamp(diff, -limit, limit)
}

// lotSizeAdjustment corrects for lot area when both records report one and
// the gap exceeds 10% of the comparable's lot.
func lotSizeAdjustment(comp property.Comparable, subject property.Details, _ MarketData, t Tables, _ time.Time) (property.AdjustmentItem, error) {
	if subject.LotSizeSqft == nil || comp.LotSizeSqft == nil || *subject.LotSizeSqft <= 0 || *comp.LotSizeSqft <= 0 {
		return zeroItem(CategoryLotSize, "lot size unavailable; no adjustment"), nil
	}
	diff := *subject.LotSizeSqft - *comp.LotSizeSqft
	if math.Abs(diff) < 0.10**comp.LotSizeSqft {
		return zeroItem(CategoryLotSize, "similar lot size; difference under 10%"), nil
	}
	amount := property.CentsFromDollars(diff / 1000 * t.LotValuePer1000Sqft)
	reason := fmt.Sprintf("%.0f sqft lot vs %.0f sqft lot", *subject.LotSizeSqft, *comp.LotSizeSqft)
	return amountItem(CategoryLotSize, comp.SalePrice, amount, reason), nil
}

// basementAdjustment corrects for the contributory value gap between basement
// finish states. Unknown finishes are treated as unfinished.
func basementAdjustment(comp property.Comparable, subject property.Details, _ MarketData, t Tables, _ time.Time) (property.AdjustmentItem, error) {
	sv := basementValue(subject.Basement, t)
	cv := basementValue(comp.Basement, t)
	if sv == cv {
		return zeroItem(CategoryBasement, "equivalent basement finish; no adjustment"), nil
	}
	amount := property.CentsFromDollars(sv - cv)
	reason := fmt.Sprintf("subject basement %q vs comparable %q",
		orDefault(subject.Basement, "Unfinished"), orDefault(comp.Basement, "Unfinished"))
	return amountItem(CategoryBasement, comp.SalePrice, amount, reason), nil
}

func basementValue(raw string, t Tables) float64 {
	if canonical := NormalizeBasement(raw); canonical != "" {
		if v, ok := lookupFold(t.BasementValues, canonical); ok {
			return v
		}
	}
	return 0
}

// garageAdjustment corrects for parking space count, with a small bonus or
// penalty when counts match but one garage is attached and the other is not.
func garageAdjustment(comp property.Comparable, subject property.Details, _ MarketData, t Tables, _ time.Time) (property.AdjustmentItem, error) {
	spaceDiff := subject.ParkingSpaces - comp.ParkingSpaces
	if spaceDiff != 0 {
		amount := property.CentsFromDollars(float64(spaceDiff) * t.GarageSpaceValue)
		reason := fmt.Sprintf("%d parking spaces vs %d", subject.ParkingSpaces, comp.ParkingSpaces)
		return amountItem(CategoryGarage, comp.SalePrice, amount, reason), nil
	}

	sg := NormalizeGarage(subject.GarageType)
	cg := NormalizeGarage(comp.GarageType)
	if sg == "" || cg == "" || garageAttachedLike(sg) == garageAttachedLike(cg) {
		return zeroItem(CategoryGarage, "equivalent garage and parking; no adjustment"), nil
	}
	bonus := t.GarageTypeBonus
	if !garageAttachedLike(sg) {
		bonus = -bonus
	}
	amount := property.CentsFromDollars(bonus)
	reason := fmt.Sprintf("subject garage %s vs comparable %s", sg, cg)
	return amountItem(CategoryGarage, comp.SalePrice, amount, reason), nil
}
