package handlers

import (
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// LossVehicleBody is the request shape of a loss vehicle. Range checks are
// left to the valuation so failures name the offending field.
type LossVehicleBody struct {
	VIN            string   `json:"vin,omitempty"             doc:"Vehicle identification number"`
	Year           int      `json:"year"                      doc:"Model year"`
	Make           string   `json:"make"                      doc:"Manufacturer"`
	Model          string   `json:"model"                     doc:"Model name"`
	Trim           string   `json:"trim,omitempty"`
	Mileage        *int     `json:"mileage,omitempty"         doc:"Odometer reading"`
	Location       string   `json:"location,omitempty"        doc:"City, ST"`
	Condition      string   `json:"condition,omitempty"       doc:"Excellent, Good, Fair or Poor; common synonyms are accepted"`
	Equipment      []string `json:"equipment,omitempty"`
	InsuranceValue *float64 `json:"insurance_value,omitempty" doc:"Insurer's estimate, compared against the market value"`
}

// ToDomain converts the body to a domain loss vehicle.
func (b *LossVehicleBody) ToDomain() domain.LossVehicle {
	return domain.LossVehicle{
		VIN:            b.VIN,
		Year:           b.Year,
		Make:           b.Make,
		Model:          b.Model,
		Trim:           b.Trim,
		Mileage:        b.Mileage,
		Location:       b.Location,
		Condition:      domain.ParseCondition(b.Condition),
		Equipment:      b.Equipment,
		InsuranceValue: b.InsuranceValue,
	}
}

// ComparableBody is the request shape of a comparable listing. Every field
// is optional here; missing data is reported by validation.
type ComparableBody struct {
	ID               string   `json:"id,omitempty"                 doc:"Caller-assigned ID; generated when empty on stored appraisals"`
	Source           string   `json:"source,omitempty"             doc:"Where the listing was found"`
	ListingURL       string   `json:"listing_url,omitempty"`
	VIN              string   `json:"vin,omitempty"`
	Year             int      `json:"year,omitempty"`
	Make             string   `json:"make,omitempty"`
	Model            string   `json:"model,omitempty"`
	Trim             string   `json:"trim,omitempty"`
	Mileage          *int     `json:"mileage,omitempty"`
	Condition        string   `json:"condition,omitempty"`
	Equipment        []string `json:"equipment,omitempty"`
	Location         string   `json:"location,omitempty"           doc:"City, ST"`
	DistanceFromLoss float64  `json:"distance_from_loss,omitempty" doc:"Miles from the loss location"`
	ListPrice        float64  `json:"list_price,omitempty"         doc:"Advertised price in dollars"`
}

// ToDomain converts the body to a domain comparable.
func (b *ComparableBody) ToDomain() domain.Comparable {
	return domain.Comparable{
		ID:               b.ID,
		Source:           b.Source,
		ListingURL:       b.ListingURL,
		VIN:              b.VIN,
		Year:             b.Year,
		Make:             b.Make,
		Model:            b.Model,
		Trim:             b.Trim,
		Mileage:          b.Mileage,
		Condition:        domain.ParseCondition(b.Condition),
		Equipment:        b.Equipment,
		Location:         b.Location,
		DistanceFromLoss: b.DistanceFromLoss,
		ListPrice:        b.ListPrice,
	}
}

func comparablesToDomain(bodies []ComparableBody) []domain.Comparable {
	out := make([]domain.Comparable, len(bodies))
	for i := range bodies {
		out[i] = bodies[i].ToDomain()
	}
	return out
}
