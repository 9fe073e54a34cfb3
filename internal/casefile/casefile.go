// Package casefile reads valuation cases (a loss vehicle plus its
// comparables) from JSON or YAML files for the command-line tools.
package casefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrNoLossVehicle is returned when a case file has no loss_vehicle section.
var ErrNoLossVehicle = errors.New("case file has no loss_vehicle")

// Case is one valuation input. Field names match the API request bodies.
type Case struct {
	ClaimNumber string              `json:"claim_number,omitempty"`
	LossVehicle *domain.LossVehicle `json:"loss_vehicle,omitempty"`
	Comparables []domain.Comparable `json:"comparables"`
}

// Load reads a case from path. The format follows the file extension;
// anything other than .yaml or .yml is read as JSON.
func Load(path string) (*Case, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path from trusted CLI argument
	if err != nil {
		return nil, fmt.Errorf("reading case file: %w", err)
	}

	format := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}

	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a case. YAML is converted to JSON first so both formats
// share the snake_case field names of the JSON tags. Conditions are
// normalized the same way the API normalizes them.
func Parse(data []byte, format string) (*Case, error) {
	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("converting YAML: %w", err)
		}
		data = converted
	}

	var c Case
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if c.LossVehicle != nil {
		c.LossVehicle.Condition = domain.ParseCondition(string(c.LossVehicle.Condition))
	}
	for i := range c.Comparables {
		c.Comparables[i].Condition = domain.ParseCondition(string(c.Comparables[i].Condition))
		// Derived fields are always recomputed.
		c.Comparables[i].ClearDerived()
	}
	return &c, nil
}

// RequireLossVehicle returns the loss vehicle or ErrNoLossVehicle.
func (c *Case) RequireLossVehicle() (*domain.LossVehicle, error) {
	if c.LossVehicle == nil {
		return nil, ErrNoLossVehicle
	}
	return c.LossVehicle, nil
}
