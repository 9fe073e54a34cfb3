package domain

// Severity distinguishes blocking findings from informational ones.
type Severity string

// Severity constants.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationFinding describes one data-quality problem on a comparable.
type ValidationFinding struct {
	Field      string   `json:"field"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	Severity   Severity `json:"severity"`
}

// ValidationResult is the outcome of validating a single comparable.
// IsValid is true iff Errors is empty; warnings never affect validity.
type ValidationResult struct {
	ComparableID string              `json:"comparable_id,omitempty"`
	IsValid      bool                `json:"is_valid"`
	Errors       []ValidationFinding `json:"errors"`
	Warnings     []ValidationFinding `json:"warnings"`
}

// HasWarning reports whether the result carries a warning with the given code.
func (r *ValidationResult) HasWarning(code string) bool {
	for i := range r.Warnings {
		if r.Warnings[i].Code == code {
			return true
		}
	}
	return false
}

// HasError reports whether the result carries an error with the given code.
func (r *ValidationResult) HasError(code string) bool {
	for i := range r.Errors {
		if r.Errors[i].Code == code {
			return true
		}
	}
	return false
}

// ValidationSummary aggregates validation results for display.
type ValidationSummary struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Invalid  int `json:"invalid"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}
