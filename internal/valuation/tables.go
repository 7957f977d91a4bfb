package valuation

// Tables holds every tunable constant the adjustment calculators consume.
// They are injected (normally from config) rather than read from globals so a
// market can be re-tuned without a code change and tests can pin fixtures.
type Tables struct {
	// Relative value factors by canonical property type; a missing type falls
	// back to DefaultTypeFactor.
	PropertyTypeFactors map[string]float64 `mapstructure:"property_type_factors"`
	DefaultTypeFactor   float64            `mapstructure:"default_type_factor"`

	// Ordinal condition ratings (Poor=1 .. Excellent=5) and the dollar value
	// of one full condition level.
	ConditionRatings       map[string]float64 `mapstructure:"condition_ratings"`
	DefaultConditionRating float64            `mapstructure:"default_condition_rating"`
	ConditionLevelValue    float64            `mapstructure:"condition_level_value"`

	// Contributory value of a finished basement, by finish state.
	BasementValues map[string]float64 `mapstructure:"basement_values"`

	// Price per square foot by market, matched by substring against the
	// subject's city; DefaultPricePerSqft applies when no market matches.
	PricePerSqftByMarket map[string]float64 `mapstructure:"price_per_sqft_by_market"`
	DefaultPricePerSqft  float64            `mapstructure:"default_price_per_sqft"`

	// Room-count adjustment values and the per-category cap on counted rooms.
	BedroomValue  float64 `mapstructure:"bedroom_value"`
	BathroomValue float64 `mapstructure:"bathroom_value"`
	RoomDiffCap   float64 `mapstructure:"room_diff_cap"`

	// Lot size: dollars per 1,000 sqft of difference.
	LotValuePer1000Sqft float64 `mapstructure:"lot_value_per_1000_sqft"`

	// Garage: dollars per parking space, and the bonus applied when space
	// counts match but one garage is attached and the other detached.
	GarageSpaceValue float64 `mapstructure:"garage_space_value"`
	GarageTypeBonus  float64 `mapstructure:"garage_type_bonus"`

	// Location bases and the distance penalty schedule.
	SameCityBase        float64 `mapstructure:"same_city_base"`
	DifferentCityBase   float64 `mapstructure:"different_city_base"`
	DistancePenaltyStep float64 `mapstructure:"distance_penalty_step"`
	DistanceFreeKm      float64 `mapstructure:"distance_free_km"`
	DistancePenaltyCap  float64 `mapstructure:"distance_penalty_cap"`

	// Time adjustment: fallback annual trend and the clamp on the total
	// percentage correction.
	DefaultAnnualTrendPct float64 `mapstructure:"default_annual_trend_pct"`
	DateAdjustmentCapPct  float64 `mapstructure:"date_adjustment_cap_pct"`

	// Gross adjustment percentage above which a comparable is weak. Hard
	// business rule; changing it changes which comparables are trusted.
	WeakGrossPctThreshold float64 `mapstructure:"weak_gross_pct_threshold"`
}

// DefaultTables returns the stock CUSPAP-style constants.
func DefaultTables() Tables {
	return Tables{
		PropertyTypeFactors: map[string]float64{
			"Detached":      1.00,
			"Semi-Detached": 0.85,
			"Townhouse":     0.75,
			"Condo":         0.70,
			"Duplex":        0.80,
			"Bungalow":      0.95,
		},
		DefaultTypeFactor: 0.85,
		ConditionRatings: map[string]float64{
			"Poor":      1,
			"Fair":      2,
			"Average":   3,
			"Good":      4,
			"Excellent": 5,
		},
		DefaultConditionRating: 3,
		ConditionLevelValue:    35000,
		BasementValues: map[string]float64{
			"Unfinished":          0,
			"Partially Finished":  5000,
			"Fully Finished":      15000,
			"Finished With Suite": 25000,
		},
		PricePerSqftByMarket: map[string]float64{
			"toronto":     600,
			"vancouver":   750,
			"mississauga": 520,
			"ottawa":      450,
			"montreal":    400,
			"calgary":     350,
			"edmonton":    300,
		},
		DefaultPricePerSqft: 400,

		BedroomValue:  40000,
		BathroomValue: 25000,
		RoomDiffCap:   2,

		LotValuePer1000Sqft: 5000,

		GarageSpaceValue: 15000,
		GarageTypeBonus:  2000,

		SameCityBase:        10000,
		DifferentCityBase:   20000,
		DistancePenaltyStep: 500,
		DistanceFreeKm:      0.5,
		DistancePenaltyCap:  10000,

		DefaultAnnualTrendPct: 3.0,
		DateAdjustmentCapPct:  20.0,

		WeakGrossPctThreshold: 15.0,
	}
}
