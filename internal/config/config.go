// Package config loads engine configuration. Every adjustment constant the
// valuation engine uses is configurable per deployment; defaults match the
// stock CUSPAP-style tables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/danish-msa/summitly-sub001/internal/valuation"
)

// Config holds application configuration.
type Config struct {
	Engine valuation.Tables `mapstructure:"engine"`
	UI     UIConfig         `mapstructure:"ui"`
}

// UIConfig holds presentation settings for the CLI.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	DateFormat     string `mapstructure:"date_format"`
}

// Load reads configuration from file and env. The config file is located via
// SUMMITLY_CONFIG or ~/.config/summitly/config.toml; env var overrides use
// prefix SUMMITLY_.
func Load() (Config, error) {
	v := viper.New()

	setEngineDefaults(v, valuation.DefaultTables())
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.date_format", "2006-01-02")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SUMMITLY_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "summitly"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SUMMITLY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func setEngineDefaults(v *viper.Viper, t valuation.Tables) {
	v.SetDefault("engine.property_type_factors", t.PropertyTypeFactors)
	v.SetDefault("engine.default_type_factor", t.DefaultTypeFactor)
	v.SetDefault("engine.condition_ratings", t.ConditionRatings)
	v.SetDefault("engine.default_condition_rating", t.DefaultConditionRating)
	v.SetDefault("engine.condition_level_value", t.ConditionLevelValue)
	v.SetDefault("engine.basement_values", t.BasementValues)
	v.SetDefault("engine.price_per_sqft_by_market", t.PricePerSqftByMarket)
	v.SetDefault("engine.default_price_per_sqft", t.DefaultPricePerSqft)
	v.SetDefault("engine.bedroom_value", t.BedroomValue)
	v.SetDefault("engine.bathroom_value", t.BathroomValue)
	v.SetDefault("engine.room_diff_cap", t.RoomDiffCap)
	v.SetDefault("engine.lot_value_per_1000_sqft", t.LotValuePer1000Sqft)
	v.SetDefault("engine.garage_space_value", t.GarageSpaceValue)
	v.SetDefault("engine.garage_type_bonus", t.GarageTypeBonus)
	v.SetDefault("engine.same_city_base", t.SameCityBase)
	v.SetDefault("engine.different_city_base", t.DifferentCityBase)
	v.SetDefault("engine.distance_penalty_step", t.DistancePenaltyStep)
	v.SetDefault("engine.distance_free_km", t.DistanceFreeKm)
	v.SetDefault("engine.distance_penalty_cap", t.DistancePenaltyCap)
	v.SetDefault("engine.default_annual_trend_pct", t.DefaultAnnualTrendPct)
	v.SetDefault("engine.date_adjustment_cap_pct", t.DateAdjustmentCapPct)
	v.SetDefault("engine.weak_gross_pct_threshold", t.WeakGrossPctThreshold)
}
