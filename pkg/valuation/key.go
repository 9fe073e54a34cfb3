package valuation

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"

	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// Cache key kinds.
const (
	KindMarketValue = "market_value"
	KindConfidence  = "confidence"
)

type keyComparable struct {
	ID            string   `json:"id"`
	ListPrice     float64  `json:"listPrice"`
	AdjustedPrice *float64 `json:"adjustedPrice"`
	Mileage       *int     `json:"mileage"`
	QualityScore  *float64 `json:"qualityScore"`
}

type keyLoss struct {
	VIN       string           `json:"vin"`
	Year      int              `json:"year"`
	Make      string           `json:"make"`
	Model     string           `json:"model"`
	Mileage   *int             `json:"mileage"`
	Condition domain.Condition `json:"condition"`
}

type keyPayload struct {
	Kind        string          `json:"kind"`
	Loss        *keyLoss        `json:"loss,omitempty"`
	Comparables []keyComparable `json:"comparables"`
}

// Key returns the cache key for a computation of the given kind: the hex
// SHA-256 of a canonical JSON encoding of every field the result depends
// on. Comparable order is part of the key because it is reflected in the
// result's per-comparable table.
func Key(kind string, comps []domain.Comparable, loss *domain.LossVehicle) (string, error) {
	p := keyPayload{
		Kind:        kind,
		Comparables: make([]keyComparable, 0, len(comps)),
	}

	if loss != nil {
		p.Loss = &keyLoss{
			VIN:       loss.VIN,
			Year:      loss.Year,
			Make:      loss.Make,
			Model:     loss.Model,
			Mileage:   loss.Mileage,
			Condition: loss.EffectiveCondition(),
		}
	}

	for i := range comps {
		c := &comps[i]
		kc := keyComparable{
			ID:           c.ID,
			ListPrice:    c.ListPrice,
			Mileage:      c.Mileage,
			QualityScore: c.QualityScore,
		}
		if c.Adjustments != nil {
			adjusted := c.Adjustments.AdjustedPrice
			kc.AdjustedPrice = &adjusted
		}
		p.Comparables = append(p.Comparables, kc)
	}

	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}

	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
