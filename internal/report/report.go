// Package report renders valuation results for terminals.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/donaldgifford/loss-valuation/internal/notify"
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// Valuation writes the market value, confidence, per-comparable breakdown
// and review reasons.
func Valuation(w io.Writer, v *domain.Valuation) error {
	tw := newTabWriter(w)
	if v.AppraisalID != "" {
		tw.writef("Appraisal:\t%s\n", v.AppraisalID)
	}
	tw.writef("Market value:\t$%.2f\n", v.MarketValue)
	tw.writef("Confidence:\t%d%%\n", v.Confidence.Level)

	st := v.Calculation.Statistics
	tw.writef("Price range:\t$%.2f - $%.2f (median $%.2f, std dev $%.2f)\n",
		st.Min, st.Max, st.Median, st.StdDev)

	if ic := v.InsuranceComparison; ic != nil {
		tw.writef("Insurance value:\t$%.2f (%+.2f, %+.1f%%)\n",
			ic.InsuranceValue, ic.Difference, ic.DifferencePct)
	}
	if v.NeedsReview {
		tw.writef("Needs review:\t%s\n", strings.Join(v.ReviewReasons, "; "))
	}
	if len(v.Excluded) > 0 {
		tw.writef("Excluded:\t%s\n", strings.Join(v.Excluded, ", "))
	}
	if err := tw.finish(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return comparableCalculations(w, v.Calculation.Comparables)
}

func comparableCalculations(w io.Writer, comps []domain.ComparableCalculation) error {
	tw := newTabWriter(w)
	tw.writef("COMPARABLE\tLIST PRICE\tADJUSTED\tSCORE\tWEIGHTED\n")
	for i := range comps {
		c := &comps[i]
		tw.writef("%s\t$%.2f\t$%.2f\t%.1f\t$%.2f\n",
			truncate(c.ID, 36), c.ListPrice, c.AdjustedPrice, c.QualityScore, c.WeightedValue)
	}
	return tw.finish()
}

// Validation writes one line per finding, errors first.
func Validation(w io.Writer, results []domain.ValidationResult, summary domain.ValidationSummary) error {
	tw := newTabWriter(w)
	tw.writef("COMPARABLE\tSEVERITY\tFIELD\tCODE\tMESSAGE\n")
	for i := range results {
		r := &results[i]
		id := r.ComparableID
		if id == "" {
			id = fmt.Sprintf("#%d", i)
		}
		for _, f := range slices.Concat(r.Errors, r.Warnings) {
			tw.writef("%s\t%s\t%s\t%s\t%s\n", id, f.Severity, f.Field, f.Code, truncate(f.Message, 60))
		}
	}
	tw.writef("\nTotal: %d\tValid: %d\tInvalid: %d\tErrors: %d\tWarnings: %d\n",
		summary.Total, summary.Valid, summary.Invalid, summary.Errors, summary.Warnings)
	return tw.finish()
}

// Appraisals writes a one-line-per-appraisal table.
func Appraisals(w io.Writer, appraisals []domain.Appraisal) error {
	tw := newTabWriter(w)
	tw.writef("ID\tCLAIM\tVEHICLE\tSTATUS\tSTALE\tVALUED\n")
	for i := range appraisals {
		a := &appraisals[i]
		valued := "-"
		if a.ValuedAt != nil {
			valued = a.ValuedAt.Format(timeLayout)
		}
		tw.writef("%s\t%s\t%s\t%s\t%v\t%s\n",
			a.ID, a.ClaimNumber, vehicle(&a.LossVehicle), a.Status, a.Stale, valued)
	}
	return tw.finish()
}

// Appraisal writes an appraisal's details followed by its comparables.
func Appraisal(w io.Writer, a *domain.Appraisal) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", a.ID)
	tw.writef("Claim:\t%s\n", a.ClaimNumber)
	tw.writef("Status:\t%s\n", a.Status)
	tw.writef("Stale:\t%v\n", a.Stale)
	tw.writef("Vehicle:\t%s\n", vehicle(&a.LossVehicle))
	if a.LossVehicle.Mileage != nil {
		tw.writef("Mileage:\t%d\n", *a.LossVehicle.Mileage)
	}
	tw.writef("Condition:\t%s\n", a.LossVehicle.EffectiveCondition())
	if len(a.LossVehicle.Equipment) > 0 {
		tw.writef("Equipment:\t%s\n", strings.Join(a.LossVehicle.Equipment, ", "))
	}
	if a.ValuedAt != nil {
		tw.writef("Valued:\t%s\n", a.ValuedAt.Format(timeLayout))
	}
	if a.Notes != "" {
		tw.writef("Notes:\t%s\n", a.Notes)
	}
	if err := tw.finish(); err != nil {
		return err
	}

	if len(a.Comparables) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return Comparables(w, a.Comparables)
}

// Comparables writes a one-line-per-comparable table.
func Comparables(w io.Writer, comps []domain.Comparable) error {
	tw := newTabWriter(w)
	tw.writef("ID\tSOURCE\tVEHICLE\tMILES\tPRICE\tSCORE\tADJUSTED\n")
	for i := range comps {
		c := &comps[i]
		score, adjusted := "-", "-"
		if c.QualityScore != nil {
			score = fmt.Sprintf("%.1f", *c.QualityScore)
		}
		if c.Adjustments != nil {
			adjusted = fmt.Sprintf("$%.2f", c.Adjustments.AdjustedPrice)
		}
		miles := "-"
		if c.Mileage != nil {
			miles = fmt.Sprintf("%d", *c.Mileage)
		}
		tw.writef("%s\t%s\t%s\t%s\t$%.2f\t%s\t%s\n",
			truncate(c.ID, 36), c.Source, notify.VehicleLabel(c.Year, c.Make, c.Model, c.Trim),
			miles, c.ListPrice, score, adjusted)
	}
	return tw.finish()
}

// JobRuns writes scheduler job runs.
func JobRuns(w io.Writer, runs []domain.JobRun) error {
	tw := newTabWriter(w)
	tw.writef("JOB\tSTATUS\tSTARTED\tCOMPLETED\tROWS\tERROR\n")
	for i := range runs {
		r := &runs[i]
		completed := "-"
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format(timeLayout)
		}
		rows := "-"
		if r.RowsAffected != nil {
			rows = fmt.Sprintf("%d", *r.RowsAffected)
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			r.JobName,
			r.Status,
			r.StartedAt.Format(timeLayout),
			completed,
			rows,
			truncate(r.ErrorText, 40),
		)
	}
	return tw.finish()
}

func vehicle(lv *domain.LossVehicle) string {
	return notify.VehicleLabel(lv.Year, lv.Make, lv.Model, lv.Trim)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
