package domain

import (
	"strings"
)

// conditionMap maps lowercase condition strings from listings and estimates
// to normalized conditions.
var conditionMap = map[string]Condition{
	// identity
	"excellent": ConditionExcellent,
	"good":      ConditionGood,
	"fair":      ConditionFair,
	"poor":      ConditionPoor,
	// listing / estimate variants
	"like new":      ConditionExcellent,
	"outstanding":   ConditionExcellent,
	"clean":         ConditionGood,
	"very good":     ConditionGood,
	"above average": ConditionGood,
	"average":       ConditionFair,
	"below average": ConditionFair,
	"rough":         ConditionPoor,
	"damaged":       ConditionPoor,
}

// ParseCondition maps a raw condition string to a normalized Condition.
// Unrecognized input is returned trimmed but otherwise unchanged so callers
// can report it; an empty string stays empty.
func ParseCondition(raw string) Condition {
	normalized := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if normalized == "" {
		return ""
	}

	if c, ok := conditionMap[normalized]; ok {
		return c
	}

	return Condition(strings.TrimSpace(raw))
}

// Known reports whether c is one of the four normalized conditions.
func (c Condition) Known() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return true
	default:
		return false
	}
}
