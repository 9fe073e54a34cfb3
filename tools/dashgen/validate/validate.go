// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and every series it selects must be a known metric.
package validate

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/loss-valuation/tools/dashgen/rules"
)

// Result collects validation problems. Errors fail generation, warnings
// are reported only.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether there were no errors.
func (r *Result) Ok() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge appends other's findings to r.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// histogramSuffixes are stripped before looking a series up in known.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Expr parses expr and checks the metric names it selects against known.
func Expr(expr string, known map[string]bool) error {
	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", expr, err)
	}

	var unknown []string
	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !isKnown(vs.Name, known) {
			unknown = append(unknown, vs.Name)
		}
		return nil
	})

	if len(unknown) > 0 {
		return fmt.Errorf("unknown metrics %s in %q", strings.Join(unknown, ", "), expr)
	}
	return nil
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// Dashboard checks every Prometheus target of every panel, including
// panels nested in rows.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result
	for _, p := range dash.Panels {
		if p.Panel != nil {
			checkPanel(&res, p.Panel, known)
		}
		if p.RowPanel != nil {
			for i := range p.RowPanel.Panels {
				checkPanel(&res, &p.RowPanel.Panels[i], known)
			}
		}
	}
	return res
}

func checkPanel(res *Result, p *dashboard.Panel, known map[string]bool) {
	title := "<untitled>"
	if p.Title != nil {
		title = *p.Title
	} else {
		res.warnf("panel without title")
	}
	if len(p.Targets) == 0 {
		res.warnf("panel %q has no targets", title)
	}

	for _, t := range p.Targets {
		q, ok := t.(*prometheus.Dataquery)
		if !ok {
			res.warnf("panel %q has a non-Prometheus target", title)
			continue
		}
		if err := Expr(q.Expr, known); err != nil {
			res.errorf("panel %q: %v", title, err)
		}
	}
}

// Rules checks every rule expression. Recorded series referenced by other
// rules must already be in known.
func Rules(pr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	seen := make(map[string]bool)
	for _, r := range pr.Rules() {
		name := r.Name()
		if name == "" {
			res.errorf("rule with expr %q has neither record nor alert", r.Expr)
			continue
		}
		if seen[name] {
			res.errorf("duplicate rule %q", name)
		}
		seen[name] = true

		if err := Expr(r.Expr, known); err != nil {
			res.errorf("rule %q: %v", name, err)
		}
		if r.Alert != "" && r.Labels["severity"] == "" {
			res.warnf("alert %q has no severity label", name)
		}
	}
	return res
}
