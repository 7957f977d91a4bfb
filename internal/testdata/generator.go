// Package testdata builds deterministic valuation fixtures shared by tests
// and the CLI demo mode.
package testdata

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/danish-msa/summitly-sub001/internal/property"
	"github.com/danish-msa/summitly-sub001/internal/valuation"
)

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Subject returns a Toronto detached subject property.
func Subject() property.Details {
	return property.Details{
		ID:            "subject-001",
		Address:       "18 Maplewood Ave",
		City:          "Toronto",
		Province:      "ON",
		PostalCode:    "M4C 1N2",
		PropertyType:  "Detached",
		Bedrooms:      4,
		Bathrooms:     3,
		SquareFeet:    2500,
		LotSizeSqft:   Float(4800),
		YearBuilt:     Int(1998),
		Condition:     "Good",
		Style:         "2-Storey",
		Basement:      "Fully Finished",
		GarageType:    "Attached",
		ParkingSpaces: 2,
		Latitude:      Float(43.6895),
		Longitude:     Float(-79.3087),
	}
}

// Comparables returns three strong Toronto comparables sold within 90 days of
// asOf, closely matching the Subject.
func Comparables(asOf time.Time) []property.Comparable {
	mk := func(n int, addr string, price float64, daysAgo, sqft int, dom int) property.Comparable {
		return property.Comparable{
			Details: property.Details{
				ID:            fmt.Sprintf("comp-%03d", n),
				Address:       addr,
				City:          "Toronto",
				Province:      "ON",
				PropertyType:  "Detached",
				Bedrooms:      4,
				Bathrooms:     3,
				SquareFeet:    sqft,
				LotSizeSqft:   Float(4700),
				Condition:     "Good",
				Basement:      "Fully Finished",
				GarageType:    "Attached",
				ParkingSpaces: 2,
			},
			SalePrice:    property.CentsFromDollars(price),
			SaleDate:     asOf.AddDate(0, 0, -daysAgo),
			DaysOnMarket: Int(dom),
			Adjustments:  []property.AdjustmentItem{},
			DistanceKm:   Float(0.4),
		}
	}
	return []property.Comparable{
		mk(1, "22 Maplewood Ave", 900000, 30, 2480, 14),
		mk(2, "31 Maplewood Ave", 905000, 60, 2520, 21),
		mk(3, "9 Maplewood Ave", 870000, 90, 2450, 17),
	}
}

// Market returns market context consistent with the Comparables fixture.
func Market() valuation.MarketData {
	return valuation.MarketData{
		AveragePrice:     Float(915000),
		MedianPrice:      Float(895000),
		PriceTrend3Month: Float(1.2),
		PriceTrend6Month: Float(2.4),
		AvgDaysOnMarket:  Float(18),
		SaleToListRatio:  Float(1.01),
		MarketStatus:     "seller",
	}
}

// RandomComparables generates n comparables around the Subject with seeded
// noise, for volume and ranking tests.
func RandomComparables(asOf time.Time, n int, seed int64) []property.Comparable {
	rng := rand.New(rand.NewSource(seed))
	types := []string{"Detached", "Detached", "Semi-Detached", "Townhouse"}
	conditions := []string{"Fair", "Average", "Good", "Excellent"}
	comps := make([]property.Comparable, 0, n)
	for i := 0; i < n; i++ {
		price := 780000 + rng.Float64()*300000
		comps = append(comps, property.Comparable{
			Details: property.Details{
				ID:            uuid.NewString(),
				Address:       fmt.Sprintf("%d Birchmount Rd", 10+i),
				City:          "Toronto",
				Province:      "ON",
				PropertyType:  types[rng.Intn(len(types))],
				Bedrooms:      3 + rng.Intn(3),
				Bathrooms:     float64(2 + rng.Intn(2)),
				SquareFeet:    2100 + rng.Intn(800),
				Condition:     conditions[rng.Intn(len(conditions))],
				ParkingSpaces: rng.Intn(3),
			},
			SalePrice:   property.CentsFromDollars(price),
			SaleDate:    asOf.AddDate(0, 0, -(15 + rng.Intn(300))),
			Adjustments: []property.AdjustmentItem{},
			DistanceKm:  Float(rng.Float64() * 6),
		})
	}
	return comps
}
