// Package validate screens comparables for data-quality problems before
// they are trusted by scoring and adjustment. Findings are returned as
// values; nothing here fails.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// Error codes.
const (
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	CodeInvalidYear          = "INVALID_YEAR"
	CodeInvalidMileage       = "INVALID_MILEAGE"
	CodeInvalidPrice         = "INVALID_PRICE"
	CodeInvalidLocation      = "INVALID_LOCATION"
)

// Warning codes.
const (
	CodeHighMileage       = "HIGH_MILEAGE"
	CodeLowPrice          = "LOW_PRICE"
	CodeHighPrice         = "HIGH_PRICE"
	CodeOlderVehicle      = "OLDER_VEHICLE"
	CodeUnknownMake       = "UNKNOWN_MAKE"
	CodeSuspiciousMake    = "SUSPICIOUS_MAKE"
	CodeMileageHighForAge = "MILEAGE_HIGH_FOR_AGE"
	CodeMileageLowForAge  = "MILEAGE_LOW_FOR_AGE"
	CodeYearMismatch      = "YEAR_MISMATCH"
	CodeMakeMismatch      = "MAKE_MISMATCH"
	CodeModelMismatch     = "MODEL_MISMATCH"
	CodeMileageMismatch   = "MILEAGE_MISMATCH"
	CodePriceOutlier      = "PRICE_OUTLIER"
)

// Thresholds.
const (
	MinPrice = 500.0
	MaxPrice = 500000.0

	LowPriceWarning     = 2000.0
	HighPriceWarning    = 100000.0
	HighMileageWarning  = 200000
	OlderVehicleYear    = 2000
	MilesPerYear        = 25000
	NewVehicleMaxMiles  = 5000
	LowMileage          = 1000
	LowMileageMinAge    = 5
	MaxYearDifference   = 3
	MaxMileageDiffRatio = 0.5
	OutlierZScore       = 2.0
	MinOutlierPeers     = 3
	MinOutlierDeviation = 0.10
)

// locationPattern requires a trailing ", ST" style region code.
var locationPattern = regexp.MustCompile(`,\s*[A-Za-z]{2}$`)

var requiredSuggestions = map[string]string{
	"source":     "Record where the listing was found (dealer site, marketplace, auction)",
	"year":       "Enter the model year from the listing",
	"make":       "Enter the manufacturer, e.g. Honda or Ford",
	"model":      "Enter the model name, e.g. Accord or F-150",
	"mileage":    "Enter the odometer reading shown on the listing",
	"list_price": "Enter the advertised price in dollars",
	"location":   "Enter the listing location as City, ST",
	"condition":  "Select Excellent, Good, Fair or Poor",
}

type options struct {
	peers []domain.Comparable
	self  int
	loss  *domain.LossVehicle
	now   func() time.Time
}

// Option configures a validation run.
type Option func(*options)

// WithPeers supplies the full comparable set for outlier detection. The
// candidate is excluded from the peer statistics when it is found in the
// set by ID.
func WithPeers(peers []domain.Comparable) Option {
	return func(o *options) { o.peers = peers }
}

// WithLossVehicle enables the cross-vehicle consistency warnings.
func WithLossVehicle(loss *domain.LossVehicle) Option {
	return func(o *options) { o.loss = loss }
}

// WithNow sets the clock used for year and age checks.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func withPeerIndex(i int) Option {
	return func(o *options) { o.self = i }
}

// Validate checks a single comparable. IsValid is true iff no errors were
// found; warnings never affect validity.
func Validate(c *domain.Comparable, opts ...Option) domain.ValidationResult {
	if c == nil {
		c = &domain.Comparable{}
	}

	o := options{self: -1, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	r := &report{result: domain.ValidationResult{
		ComparableID: c.ID,
		Errors:       []domain.ValidationFinding{},
		Warnings:     []domain.ValidationFinding{},
	}}

	present := checkRequired(r, c)
	now := o.now()

	yearOK := present["year"] && checkYear(r, c.Year, now)
	mileageOK := present["mileage"] && checkMileage(r, c.Miles())
	if present["list_price"] {
		checkPrice(r, c.ListPrice)
	}
	if present["make"] {
		checkMake(r, c.Make)
	}
	if present["location"] {
		checkLocation(r, c.Location)
	}
	if yearOK && mileageOK {
		checkMileageForAge(r, c.Year, c.Miles(), now)
	}
	if o.loss != nil {
		checkAgainstLoss(r, c, o.loss)
	}
	if present["list_price"] {
		checkOutlier(r, c, o.peers, o.self)
	}

	r.result.IsValid = len(r.result.Errors) == 0
	return r.result
}

// ValidateMultiple validates every comparable against the others as peers.
func ValidateMultiple(
	comps []domain.Comparable,
	loss *domain.LossVehicle,
	opts ...Option,
) []domain.ValidationResult {
	results := make([]domain.ValidationResult, 0, len(comps))
	for i := range comps {
		all := append([]Option{WithPeers(comps), WithLossVehicle(loss), withPeerIndex(i)}, opts...)
		results = append(results, Validate(&comps[i], all...))
	}
	return results
}

// Summarize counts results and findings for display.
func Summarize(results []domain.ValidationResult) domain.ValidationSummary {
	s := domain.ValidationSummary{Total: len(results)}
	for i := range results {
		if results[i].IsValid {
			s.Valid++
		} else {
			s.Invalid++
		}
		s.Errors += len(results[i].Errors)
		s.Warnings += len(results[i].Warnings)
	}
	return s
}

type report struct {
	result domain.ValidationResult
}

func (r *report) fail(field, code, msg, suggestion string) {
	r.result.Errors = append(r.result.Errors, domain.ValidationFinding{
		Field:      field,
		Code:       code,
		Message:    msg,
		Suggestion: suggestion,
		Severity:   domain.SeverityError,
	})
}

func (r *report) warn(field, code, msg, suggestion string) {
	r.result.Warnings = append(r.result.Warnings, domain.ValidationFinding{
		Field:      field,
		Code:       code,
		Message:    msg,
		Suggestion: suggestion,
		Severity:   domain.SeverityWarning,
	})
}

func checkRequired(r *report, c *domain.Comparable) map[string]bool {
	present := map[string]bool{
		"source":     strings.TrimSpace(c.Source) != "",
		"year":       c.Year != 0,
		"make":       strings.TrimSpace(c.Make) != "",
		"model":      strings.TrimSpace(c.Model) != "",
		"mileage":    c.Mileage != nil,
		"list_price": c.ListPrice != 0 && !math.IsNaN(c.ListPrice),
		"location":   strings.TrimSpace(c.Location) != "",
		"condition":  strings.TrimSpace(string(c.Condition)) != "",
	}

	for _, field := range []string{
		"source", "year", "make", "model", "mileage", "list_price", "location", "condition",
	} {
		if !present[field] {
			r.fail(field, CodeMissingRequiredField,
				fmt.Sprintf("%s is required", field), requiredSuggestions[field])
		}
	}
	return present
}

func checkYear(r *report, year int, now time.Time) bool {
	if !domain.ValidModelYear(year, now) {
		r.fail("year", CodeInvalidYear,
			fmt.Sprintf("Year %d is outside the valid range %d-%d",
				year, domain.MinModelYear, domain.MaxModelYear(now)),
			"Check the model year on the listing")
		return false
	}
	if year < OlderVehicleYear {
		r.warn("year", CodeOlderVehicle,
			fmt.Sprintf("Vehicle is from %d; older vehicles have thinner markets", year),
			"Confirm the comparable is a reasonable match for the loss vehicle")
	}
	return true
}

func checkMileage(r *report, miles int) bool {
	if !domain.ValidMileage(miles) {
		r.fail("mileage", CodeInvalidMileage,
			fmt.Sprintf("Mileage %d is outside the valid range 0-%d", miles, domain.MaxMileage),
			"Check the odometer reading for a typo")
		return false
	}
	if miles > HighMileageWarning {
		r.warn("mileage", CodeHighMileage,
			fmt.Sprintf("Mileage %d is unusually high", miles),
			"Verify the odometer reading")
	}
	return true
}

func checkPrice(r *report, price float64) {
	switch {
	case math.IsInf(price, 0) || price < MinPrice || price > MaxPrice:
		r.fail("list_price", CodeInvalidPrice,
			fmt.Sprintf("Price $%.0f is outside the valid range $%.0f-$%.0f", price, MinPrice, MaxPrice),
			"Check the advertised price for a missing or extra digit")
	case price < LowPriceWarning:
		r.warn("list_price", CodeLowPrice,
			fmt.Sprintf("Price $%.0f is unusually low", price),
			"Check whether the listing is a salvage, parts or down-payment price")
	case price > HighPriceWarning:
		r.warn("list_price", CodeHighPrice,
			fmt.Sprintf("Price $%.0f is unusually high", price),
			"Verify the listing price and trim level")
	}
}

func checkMake(r *report, name string) {
	if !KnownMake(name) {
		r.warn("make", CodeUnknownMake,
			fmt.Sprintf("Make %q is not a recognized manufacturer", name),
			"Check the spelling of the manufacturer name")
	}
	if strings.ContainsFunc(name, unicode.IsDigit) {
		r.warn("make", CodeSuspiciousMake,
			fmt.Sprintf("Make %q contains numbers", name),
			"The model name may have been entered as the make")
	}
}

func checkLocation(r *report, location string) {
	if !locationPattern.MatchString(strings.TrimSpace(location)) {
		r.fail("location", CodeInvalidLocation,
			fmt.Sprintf("Location %q is not in City, ST format", location),
			"Enter the location as City, ST (e.g. Austin, TX)")
	}
}

func checkMileageForAge(r *report, year, miles int, now time.Time) {
	age := now.Year() - year

	if age <= 0 {
		if miles > NewVehicleMaxMiles {
			r.warn("mileage", CodeMileageHighForAge,
				fmt.Sprintf("Mileage %d is high for a current model year vehicle (expected under %d)",
					miles, NewVehicleMaxMiles),
				"Verify the model year and odometer reading")
		}
		return
	}

	expectedMax := age * MilesPerYear
	if miles > expectedMax {
		r.warn("mileage", CodeMileageHighForAge,
			fmt.Sprintf("Mileage %d averages %d miles/year over %d year(s), above %d miles/year",
				miles, miles/age, age, MilesPerYear),
			"Verify the odometer reading")
	}
	if miles < LowMileage && age > LowMileageMinAge {
		r.warn("mileage", CodeMileageLowForAge,
			fmt.Sprintf("Mileage %d is suspiciously low for a %d-year-old vehicle", miles, age),
			"Check whether the odometer reading is in thousands or was replaced")
	}
}

func checkAgainstLoss(r *report, c *domain.Comparable, loss *domain.LossVehicle) {
	if c.Year != 0 && loss.Year != 0 {
		diff := c.Year - loss.Year
		if diff < 0 {
			diff = -diff
		}
		if diff > MaxYearDifference {
			r.warn("year", CodeYearMismatch,
				fmt.Sprintf("Comparable year %d differs from loss vehicle year %d by %d years",
					c.Year, loss.Year, diff),
				"Prefer comparables within three model years")
		}
	}

	if c.Make != "" && loss.Make != "" && normalizeMake(c.Make) != normalizeMake(loss.Make) {
		r.warn("make", CodeMakeMismatch,
			fmt.Sprintf("Comparable make %q differs from loss vehicle make %q", c.Make, loss.Make),
			"Prefer comparables of the same make")
	}

	if c.Model != "" && loss.Model != "" && normalizeMake(c.Model) != normalizeMake(loss.Model) {
		r.warn("model", CodeModelMismatch,
			fmt.Sprintf("Comparable model %q differs from loss vehicle model %q", c.Model, loss.Model),
			"Prefer comparables of the same model")
	}

	if c.Mileage != nil && loss.Miles() > 0 {
		diff := c.Miles() - loss.Miles()
		if diff < 0 {
			diff = -diff
		}
		ratio := float64(diff) / float64(loss.Miles())
		if ratio > MaxMileageDiffRatio {
			r.warn("mileage", CodeMileageMismatch,
				fmt.Sprintf("Comparable mileage %d differs from loss vehicle mileage %d by %.0f%%",
					c.Miles(), loss.Miles(), ratio*100),
				"Prefer comparables with similar mileage")
		}
	}
}

// checkOutlier flags a price more than OutlierZScore population standard
// deviations from the mean price of all comparables, the candidate
// included. Deviations under MinOutlierDeviation of the mean are never
// flagged, so a tight cluster does not produce outliers.
func checkOutlier(r *report, c *domain.Comparable, peers []domain.Comparable, self int) {
	if !validPrice(c.ListPrice) {
		return
	}
	if self < 0 && c.ID != "" {
		for i := range peers {
			if peers[i].ID == c.ID {
				self = i
				break
			}
		}
	}

	prices := make([]float64, 0, len(peers)+1)
	for i := range peers {
		if i == self || !validPrice(peers[i].ListPrice) {
			continue
		}
		prices = append(prices, peers[i].ListPrice)
	}
	prices = append(prices, c.ListPrice)
	if len(prices) < MinOutlierPeers {
		return
	}

	mean, stdDev := meanStdDev(prices)
	if stdDev == 0 || mean == 0 {
		return
	}

	z := (c.ListPrice - mean) / stdDev
	if math.Abs(z) <= OutlierZScore {
		return
	}

	deviation := math.Abs(c.ListPrice-mean) / mean
	if deviation < MinOutlierDeviation {
		return
	}

	direction := "above"
	if z < 0 {
		direction = "below"
	}

	r.warn("list_price", CodePriceOutlier,
		fmt.Sprintf("Price $%.0f is %.1f%% %s the peer average of $%.0f (z-score %.1f)",
			c.ListPrice, deviation*100, direction, mean, z),
		"Check the listing for damage, missing options or a pricing error")
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsNaN(p) && !math.IsInf(p, 0)
}

func meanStdDev(values []float64) (mean, stdDev float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}
