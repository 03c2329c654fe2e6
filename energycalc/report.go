package energycalc

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// EUI rating band
type Rating int

// EUI rating band
const (
	RatingNotRated  Rating = iota // no EUI yet
	RatingExcellent               // below 100 kWh/m2/year
	RatingGood                    // below 150
	RatingAverage                 // below 200
	RatingPoor                    // 200 and above
)

func (r Rating) String() string {
	switch r {
	case RatingNotRated:
		return "Not rated"
	case RatingExcellent:
		return "Excellent"
	case RatingGood:
		return "Good"
	case RatingAverage:
		return "Average"
	case RatingPoor:
		return "Poor"
	default:
		return ""
	}
}

func RatingFromString(s string) (Rating, error) {
	for r := RatingNotRated; r <= RatingPoor; r++ {
		if strings.EqualFold(strings.TrimSpace(s), r.String()) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("rating %q: %w", s, ErrInvalidParameter)
}

func (r Rating) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rating) UnmarshalText(b []byte) error {
	parsed, err := RatingFromString(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// RateEUI returns the rating band of an EUI, kWh/m2/year.
func RateEUI(eui float64) Rating {
	switch {
	case eui <= 0 || math.IsNaN(eui):
		return RatingNotRated
	case eui < 100:
		return RatingExcellent
	case eui < 150:
		return RatingGood
	case eui < 200:
		return RatingAverage
	default:
		return RatingPoor
	}
}

// Emissions is the CO2 released by the heating and cooling energy.
type Emissions struct {
	Monthly Monthly `json:"monthly"` // kg CO2
	Annual  float64 `json:"annual"`  // kg CO2
}

// ComputeEmissions returns (cooling + heating) x 0.478 kg/kWh per month.
func ComputeEmissions(e EnergyResult) Emissions {
	var em Emissions
	floats.AddTo(em.Monthly[:], e.MonthlyCooling[:], e.MonthlyHeating[:])
	floats.Scale(CO2PerKWh, em.Monthly[:])
	em.Annual = floats.Sum(em.Monthly[:])
	return em
}

// Bill is the cost of the heating and cooling energy at a flat tariff.
type Bill struct {
	Tariff         float64 `json:"tariff"` // currency/kWh
	MonthlyCooling Monthly `json:"monthly_cooling"`
	MonthlyHeating Monthly `json:"monthly_heating"`
	AnnualCooling  float64 `json:"annual_cooling"`
	AnnualHeating  float64 `json:"annual_heating"`
	AnnualTotal    float64 `json:"annual_total"`
}

// ComputeBill prices the monthly energy at tariff.
func ComputeBill(e EnergyResult, tariff float64) Bill {
	b := Bill{Tariff: tariff}
	floats.ScaleTo(b.MonthlyCooling[:], tariff, e.MonthlyCooling[:])
	floats.ScaleTo(b.MonthlyHeating[:], tariff, e.MonthlyHeating[:])
	b.AnnualCooling = floats.Sum(b.MonthlyCooling[:])
	b.AnnualHeating = floats.Sum(b.MonthlyHeating[:])
	b.AnnualTotal = b.AnnualCooling + b.AnnualHeating
	return b
}

// Report is the presentation summary of one case.
type Report struct {
	Rating    Rating    `json:"rating"`
	Emissions Emissions `json:"emissions"`
	Bill      Bill      `json:"bill"`
}

// Comparison contrasts a base and a proposed result.
type Comparison struct {
	Base     *Result `json:"base"`
	Proposed *Result `json:"proposed"`

	CoolingSavings       Monthly `json:"cooling_savings"` // kWh, never negative
	HeatingSavings       Monthly `json:"heating_savings"` // kWh, never negative
	AnnualCoolingSavings float64 `json:"annual_cooling_savings"`
	AnnualHeatingSavings float64 `json:"annual_heating_savings"`
	EUISavingsPercent    float64 `json:"eui_savings_percent"`
	EmissionsSavings     float64 `json:"emissions_savings"` // kg CO2
	BillSavings          float64 `json:"bill_savings"`
}

// Compare builds the comparison of two evaluated cases.
func Compare(base, proposed *Result) Comparison {
	c := Comparison{Base: base, Proposed: proposed}
	be, pe := base.Energy, proposed.Energy
	for i := range c.CoolingSavings {
		c.CoolingSavings[i] = math.Max(0, be.MonthlyCooling[i]-pe.MonthlyCooling[i])
		c.HeatingSavings[i] = math.Max(0, be.MonthlyHeating[i]-pe.MonthlyHeating[i])
	}
	c.AnnualCoolingSavings = floats.Sum(c.CoolingSavings[:])
	c.AnnualHeatingSavings = floats.Sum(c.HeatingSavings[:])
	c.EUISavingsPercent = SavingsPercent(be.EUI, pe.EUI)
	c.EmissionsSavings = base.Report.Emissions.Annual - proposed.Report.Emissions.Annual
	c.BillSavings = base.Report.Bill.AnnualTotal - proposed.Report.Bill.AnnualTotal
	return c
}

// SavingsPercent returns (base - proposed) / base x 100, or 0 when base <= 0.
func SavingsPercent(base, proposed float64) float64 {
	if base <= 0 {
		return 0
	}
	return (base - proposed) / base * 100
}
