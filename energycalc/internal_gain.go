package energycalc

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Metabolic gain per occupant, W
const metabolicGainPerOccupant = 20.0

// Cooking gain, W = cookingGainBase + cookingGainPerOccupant x occupants
const (
	cookingGainBase        = 35.0
	cookingGainPerOccupant = 7.0
)

// Share of lighting energy released as heat
const lightingHeatFraction = 0.85

const daysPerYear = 365

/*
LightingEnergy returns the lighting energy of a month with seasonal modulation.

Args

	totalWattage installed lighting wattage, W
	month calendar month

Returns

	E = W x (1 + 0.5 cos(30 (m - 0.2) deg)) x nd / 365, kWh
*/
func LightingEnergy(totalWattage float64, month time.Month) float64 {
	nd := float64(DaysInMonth(month))
	m := float64(month)
	return totalWattage * (1 + 0.5*math.Cos(deg2rad(30*(m-0.2)))) * nd / daysPerYear
}

// LightingGain returns E x 0.85 x 1000 / (24 x nd), W.
func LightingGain(energyKWh float64, month time.Month) float64 {
	nd := float64(DaysInMonth(month))
	return energyKWh * lightingHeatFraction * 1000 / (24 * nd)
}

// MetabolicGain returns 20 W per occupant.
func MetabolicGain(occupants float64) float64 {
	return metabolicGainPerOccupant * occupants
}

// CookingGain returns 35 + 7 x occupants, W.
func CookingGain(occupants float64) float64 {
	return cookingGainBase + cookingGainPerOccupant*occupants
}

//---------------------------------------------------------------------------------------------------//

// LightingFixture is one line of the lighting schedule.
type LightingFixture struct {
	Name        string  `json:"name"`
	Wattage     float64 `json:"wattage"` // W per lamp
	Quantity    int     `json:"quantity"`
	HoursPerDay float64 `json:"hours_per_day"`
	DaysPerYear int     `json:"days_per_year"` // 0 means every day
}

func (f LightingFixture) days() int {
	if f.DaysPerYear == 0 {
		return daysPerYear
	}
	return f.DaysPerYear
}

// TotalWattage returns W x quantity.
func (f LightingFixture) TotalWattage() float64 {
	return f.Wattage * float64(f.Quantity)
}

// AnnualEnergy returns W x quantity x hours x days / 1000, kWh.
func (f LightingFixture) AnnualEnergy() float64 {
	return f.TotalWattage() * f.HoursPerDay * float64(f.days()) / 1000
}

// LightingLoad is the summed lighting schedule.
type LightingLoad struct {
	TotalWattage float64 `json:"total_wattage"` // W
	AnnualEnergy float64 `json:"annual_energy"` // kWh
}

// ComputeLighting sums the fixtures.
func ComputeLighting(fixtures []LightingFixture) (LightingLoad, error) {
	var l LightingLoad
	for i, f := range fixtures {
		field := fmt.Sprintf("fixtures[%d]", i)
		if f.Wattage < 0 || f.Quantity < 0 || f.HoursPerDay < 0 || f.HoursPerDay > 24 {
			return LightingLoad{}, paramError("lighting", field,
				fmt.Errorf("wattage, quantity and hours must be non-negative, hours at most 24: %w", ErrOutOfRange))
		}
		if d := f.days(); d < 1 || d > daysPerYear {
			return LightingLoad{}, paramError("lighting", field,
				fmt.Errorf("days %d not in [1, %d]: %w", d, daysPerYear, ErrOutOfRange))
		}
		l.TotalWattage += f.TotalWattage()
		l.AnnualEnergy += f.AnnualEnergy()
	}
	return l, nil
}

//---------------------------------------------------------------------------------------------------//

// Refrigerator energy label
type RefrigeratorRating int

// Refrigerator energy label
const (
	RefrigeratorStar         RefrigeratorRating = iota + 1 // star rated, 360 kWh/year
	RefrigeratorConventional                               // conventional, 420 kWh/year
)

func (r RefrigeratorRating) String() string {
	switch r {
	case RefrigeratorStar:
		return "star"
	case RefrigeratorConventional:
		return "conventional"
	default:
		return ""
	}
}

func RefrigeratorRatingFromString(s string) (RefrigeratorRating, error) {
	r, ok := map[string]RefrigeratorRating{
		"star":         RefrigeratorStar,
		"360":          RefrigeratorStar,
		"conventional": RefrigeratorConventional,
		"420":          RefrigeratorConventional,
	}[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("refrigerator rating %q: %w", s, ErrInvalidParameter)
	}
	return r, nil
}

func (r RefrigeratorRating) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RefrigeratorRating) UnmarshalText(b []byte) error {
	parsed, err := RefrigeratorRatingFromString(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// AnnualEnergy returns the rated consumption, kWh/year.
func (r RefrigeratorRating) AnnualEnergy() float64 {
	switch r {
	case RefrigeratorStar:
		return 360
	case RefrigeratorConventional:
		return 420
	default:
		return 0
	}
}

// ApplianceRefrigerator is the appliance kind rated by label instead of wattage.
const ApplianceRefrigerator = "Refrigerator"

// Appliance is one line of the appliance schedule.
type Appliance struct {
	Kind        string             `json:"kind"`
	Quantity    int                `json:"quantity"`
	Wattage     float64            `json:"wattage,omitempty"`       // W
	HoursPerDay float64            `json:"hours_per_day,omitempty"` // decimal hours
	DaysPerYear int                `json:"days_per_year"`
	Rating      RefrigeratorRating `json:"rating,omitempty"`
}

// IsRefrigerator reports whether the appliance is rated by label.
func (a Appliance) IsRefrigerator() bool {
	return strings.EqualFold(a.Kind, ApplianceRefrigerator)
}

/*
AnnualEnergy returns the consumption of the appliance line, kWh/year.

	refrigerator : quantity x rated kWh x days / 365
	other        : quantity x W x hours x days / 1000
*/
func (a Appliance) AnnualEnergy() (float64, error) {
	if a.Quantity <= 0 {
		return 0, fmt.Errorf("quantity %d: %w", a.Quantity, ErrOutOfRange)
	}
	if a.DaysPerYear < 1 || a.DaysPerYear > daysPerYear {
		return 0, fmt.Errorf("days %d not in [1, %d]: %w", a.DaysPerYear, daysPerYear, ErrOutOfRange)
	}
	q := float64(a.Quantity)
	days := float64(a.DaysPerYear)
	if a.IsRefrigerator() {
		rated := a.Rating.AnnualEnergy()
		if rated == 0 {
			return 0, fmt.Errorf("refrigerator rating %d: %w", int(a.Rating), ErrInvalidParameter)
		}
		return q * rated * days / daysPerYear, nil
	}
	if a.Wattage <= 0 {
		return 0, fmt.Errorf("wattage %v: %w", a.Wattage, ErrOutOfRange)
	}
	if a.HoursPerDay < 0 || a.HoursPerDay > 24 {
		return 0, fmt.Errorf("hours %v not in [0, 24]: %w", a.HoursPerDay, ErrOutOfRange)
	}
	return q * a.Wattage * a.HoursPerDay * days / 1000, nil
}

// ApplianceEnergy sums the appliance schedule, kWh/year.
func ApplianceEnergy(appliances []Appliance) (float64, error) {
	energy := make([]float64, len(appliances))
	for i, a := range appliances {
		e, err := a.AnnualEnergy()
		if err != nil {
			return 0, paramError("appliances", fmt.Sprintf("appliances[%d]", i), err)
		}
		energy[i] = e
	}
	return floats.Sum(energy), nil
}

// MinutesToHours converts a daily usage in minutes to decimal hours.
func MinutesToHours(minutes float64) float64 {
	return minutes / 60
}
