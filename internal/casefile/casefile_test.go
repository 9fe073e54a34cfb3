package casefile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		file      string
		wantComps int
		wantCond  domain.Condition
	}{
		{name: "yaml", file: "accord.yaml", wantComps: 2, wantCond: domain.ConditionGood},
		{name: "json", file: "accord.json", wantComps: 1, wantCond: domain.ConditionGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := Load(filepath.Join("testdata", tt.file))
			require.NoError(t, err)

			lv, err := c.RequireLossVehicle()
			require.NoError(t, err)
			assert.Equal(t, "Honda", lv.Make)
			require.NotNil(t, lv.Mileage)
			assert.Equal(t, 30000, *lv.Mileage)
			assert.Equal(t, tt.wantCond, lv.Condition)

			require.Len(t, c.Comparables, tt.wantComps)
			assert.Equal(t, "c1", c.Comparables[0].ID)
			assert.Equal(t, domain.ConditionGood, c.Comparables[0].Condition)
			assert.InDelta(t, 21000, c.Comparables[0].ListPrice, 0)
		})
	}
}

func TestLoad_YAMLDetails(t *testing.T) {
	t.Parallel()

	c, err := Load(filepath.Join("testdata", "accord.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "CLM-1001", c.ClaimNumber)
	assert.Equal(t, []string{"Navigation", "Sunroof"}, c.LossVehicle.Equipment)
	require.NotNil(t, c.LossVehicle.InsuranceValue)
	assert.InDelta(t, 20500, *c.LossVehicle.InsuranceValue, 0)

	c2 := c.Comparables[1]
	assert.Equal(t, domain.ConditionFair, c2.Condition)
	assert.InDelta(t, 20, c2.DistanceFromLoss, 0)
	assert.Nil(t, c2.QualityScore, "derived fields from the file are dropped")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join("testdata", "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading case file")
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		format  string
		wantErr string
	}{
		{name: "bad json", data: `{"loss_vehicle":`, format: FormatJSON, wantErr: "parsing JSON"},
		{name: "bad yaml", data: "loss_vehicle: [", format: FormatYAML, wantErr: "parsing YAML"},
		{name: "comparables only", data: `{"comparables":[{"id":"c1"}]}`, format: FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := Parse([]byte(tt.data), tt.format)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			_, err = c.RequireLossVehicle()
			require.ErrorIs(t, err, ErrNoLossVehicle)
		})
	}
}
