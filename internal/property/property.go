// Package property holds the entities the valuation engine operates on.
// Records are validated at the boundary and treated as read-only afterwards.
package property

import (
	"fmt"
	"time"
)

// ValidationError reports an entity field that violates an invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Details describes one physical property's static attributes. Instances
// arrive from the property-resolution service already populated; the engine
// never mutates them.
type Details struct {
	ID            string   `json:"id"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	Province      string   `json:"province,omitempty"`
	PostalCode    string   `json:"postal_code,omitempty"`
	PropertyType  string   `json:"property_type"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     float64  `json:"bathrooms"`
	SquareFeet    int      `json:"square_feet"`
	LotSizeSqft   *float64 `json:"lot_size_sqft,omitempty"`
	YearBuilt     *int     `json:"year_built,omitempty"`
	Condition     string   `json:"condition,omitempty"`
	Style         string   `json:"style,omitempty"`
	Basement      string   `json:"basement,omitempty"`
	GarageType    string   `json:"garage_type,omitempty"`
	ParkingSpaces int      `json:"parking_spaces"`
	Features      []string `json:"features,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// Validate checks the record's invariants. asOf anchors the year-built upper
// bound so validation stays deterministic under an injected clock.
func (d Details) Validate(asOf time.Time) error {
	if d.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if d.Address == "" {
		return &ValidationError{Field: "address", Reason: "must not be empty"}
	}
	if d.City == "" {
		return &ValidationError{Field: "city", Reason: "must not be empty"}
	}
	if d.PropertyType == "" {
		return &ValidationError{Field: "property_type", Reason: "must not be empty"}
	}
	if d.Bedrooms < 0 {
		return &ValidationError{Field: "bedrooms", Reason: "must not be negative"}
	}
	if d.Bathrooms < 0 {
		return &ValidationError{Field: "bathrooms", Reason: "must not be negative"}
	}
	if d.SquareFeet < 0 {
		return &ValidationError{Field: "square_feet", Reason: "must not be negative"}
	}
	if d.ParkingSpaces < 0 {
		return &ValidationError{Field: "parking_spaces", Reason: "must not be negative"}
	}
	if d.LotSizeSqft != nil && *d.LotSizeSqft < 0 {
		return &ValidationError{Field: "lot_size_sqft", Reason: "must not be negative"}
	}
	if d.YearBuilt != nil {
		if y, ceiling := *d.YearBuilt, asOf.Year()+2; y < 1700 || y > ceiling {
			return &ValidationError{Field: "year_built", Reason: fmt.Sprintf("%d outside [1700, %d]", y, ceiling)}
		}
	}
	if d.Latitude != nil && (*d.Latitude < -90 || *d.Latitude > 90) {
		return &ValidationError{Field: "latitude", Reason: "outside [-90, 90]"}
	}
	if d.Longitude != nil && (*d.Longitude < -180 || *d.Longitude > 180) {
		return &ValidationError{Field: "longitude", Reason: "outside [-180, 180]"}
	}
	return nil
}
