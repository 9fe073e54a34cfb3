package domain

import "time"

// Vehicle data limits shared by validation and valuation.
const (
	// MinModelYear is the earliest model year accepted.
	MinModelYear = 1990

	// ModelYearLead is how many years past the current year a model year
	// may be (next-year models go on sale early).
	ModelYearLead = 2

	// MaxMileage is the highest odometer reading accepted.
	MaxMileage = 500000
)

// MaxModelYear returns the latest model year accepted at t.
func MaxModelYear(t time.Time) int {
	return t.Year() + ModelYearLead
}

// ValidModelYear reports whether year is within [MinModelYear, MaxModelYear(t)].
func ValidModelYear(year int, t time.Time) bool {
	return year >= MinModelYear && year <= MaxModelYear(t)
}

// ValidMileage reports whether miles is within [0, MaxMileage].
func ValidMileage(miles int) bool {
	return miles >= 0 && miles <= MaxMileage
}
