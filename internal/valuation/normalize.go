package valuation

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// Canonical garage types. Built-In counts as attached for the type bonus.
const (
	GarageAttached = "Attached"
	GarageDetached = "Detached"
	GarageBuiltIn  = "Built-In"
	GarageCarport  = "Carport"
	GarageNone     = "None"
)

var (
	canonicalPropertyTypes = []string{"Detached", "Semi-Detached", "Townhouse", "Condo", "Duplex", "Bungalow"}
	canonicalConditions    = []string{"Poor", "Fair", "Average", "Good", "Excellent"}
	canonicalBasements     = []string{"Unfinished", "Partially Finished", "Fully Finished", "Finished With Suite"}
	canonicalGarages       = []string{GarageAttached, GarageDetached, GarageBuiltIn, GarageCarport, GarageNone}
)

// foldKey lowercases and strips everything but letters and digits, so
// "Semi Detached", "semi-detached" and "SemiDetached" all compare equal.
func foldKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// canonicalize maps free-text MLS descriptors onto a canonical list: exact
// fold match first, then smallest levenshtein distance within a tolerance of
// 2 edits. Returns ok=false when nothing is close enough.
func canonicalize(raw string, canon []string) (string, bool) {
	key := foldKey(raw)
	if key == "" {
		return "", false
	}
	for _, c := range canon {
		if foldKey(c) == key {
			return c, true
		}
	}
	best, bestDist := "", 3
	for _, c := range canon {
		if d := levenshtein.ComputeDistance(key, foldKey(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// NormalizePropertyType returns the canonical property type, or "" when the
// input is unrecognized. Substring checks run first ("Condo Apt", "Att/Row
// Townhouse"); the edit-distance match catches typos. "semi" must be checked
// before "detach".
func NormalizePropertyType(raw string) string {
	key := foldKey(raw)
	switch {
	case key == "":
		return ""
	case strings.Contains(key, "semi"):
		return "Semi-Detached"
	case strings.Contains(key, "town") || strings.Contains(key, "row"):
		return "Townhouse"
	case strings.Contains(key, "condo") || strings.Contains(key, "apartment"):
		return "Condo"
	case strings.Contains(key, "duplex"):
		return "Duplex"
	case strings.Contains(key, "bungalow"):
		return "Bungalow"
	case strings.Contains(key, "detach"):
		return "Detached"
	}
	c, _ := canonicalize(raw, canonicalPropertyTypes)
	return c
}

// NormalizeCondition returns the canonical condition label, or "" when the
// input is unrecognized.
func NormalizeCondition(raw string) string {
	c, _ := canonicalize(raw, canonicalConditions)
	return c
}

// NormalizeBasement returns the canonical basement finish state, or "" when
// the input is unrecognized. MLS feeds are loose here ("Finished", "Part Fin",
// "Bsmt Apartment"), so substring checks run before the edit-distance match.
func NormalizeBasement(raw string) string {
	key := foldKey(raw)
	switch {
	case strings.Contains(key, "suite") || strings.Contains(key, "apartment") || strings.Contains(key, "inlaw"):
		return "Finished With Suite"
	case strings.Contains(key, "part"):
		return "Partially Finished"
	case strings.Contains(key, "unfinished") || key == "none":
		return "Unfinished"
	case strings.Contains(key, "finish"):
		return "Fully Finished"
	}
	c, _ := canonicalize(raw, canonicalBasements)
	return c
}

// NormalizeGarage returns the canonical garage type, or "" when the input is
// unrecognized. "detach" must be checked before "attach".
func NormalizeGarage(raw string) string {
	key := foldKey(raw)
	switch {
	case key == "":
		return ""
	case strings.Contains(key, "built"):
		return GarageBuiltIn
	case strings.Contains(key, "detach"):
		return GarageDetached
	case strings.Contains(key, "attach"):
		return GarageAttached
	case strings.Contains(key, "carport"):
		return GarageCarport
	case strings.Contains(key, "none") || strings.Contains(key, "nogarage"):
		return GarageNone
	}
	c, _ := canonicalize(raw, canonicalGarages)
	return c
}

// garageAttachedLike reports whether a canonical garage type is structurally
// part of the house.
func garageAttachedLike(canonical string) bool {
	return canonical == GarageAttached || canonical == GarageBuiltIn
}
