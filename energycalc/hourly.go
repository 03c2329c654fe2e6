package energycalc

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// WeatherRecord is one hour of the annual outdoor temperature series.
type WeatherRecord struct {
	Month       int     `csv:"MO" json:"month"`        // 1-12
	Day         int     `csv:"DY" json:"day"`
	Hour        int     `csv:"HR" json:"hour"`         // 0-23
	Temperature float64 `csv:"T2M" json:"temperature"` // degree C
}

// HourSet is a selection of operating hours, index = hour of day.
type HourSet [24]bool

// AllHours selects every hour of the day.
func AllHours() HourSet {
	var hs HourSet
	for i := range hs {
		hs[i] = true
	}
	return hs
}

// HoursFromIndices selects the given hours; values outside 0-23 are ignored.
func HoursFromIndices(hours []int) HourSet {
	var hs HourSet
	for _, h := range hours {
		if h >= 0 && h < len(hs) {
			hs[h] = true
		}
	}
	return hs
}

// HoursFromLabels selects the hours of slot labels such as "7pm - 8pm".
// Unknown labels are ignored.
func HoursFromLabels(labels []string) HourSet {
	var hs HourSet
	for _, l := range labels {
		if h, ok := HourFromSlotLabel(l); ok {
			hs[h] = true
		}
	}
	return hs
}

// Contains reports whether hour is selected.
func (hs HourSet) Contains(hour int) bool {
	return hour >= 0 && hour < len(hs) && hs[hour]
}

// Indices returns the selected hours in ascending order.
func (hs HourSet) Indices() []int {
	var out []int
	for h, ok := range hs {
		if ok {
			out = append(out, h)
		}
	}
	return out
}

/*
UtilisationFactors returns the cooling and heating utilisation factors.

Args

	y gain to loss ratio
	a month exponent

Returns

	y == 1 : a / (a + 1) for both
	y > 0  : cooling (1 - y^-a) / (1 - y^-(a+1)), heating (1 - y^a) / (1 - y^(a+1))
	else   : 1 for both
*/
func UtilisationFactors(y, a float64) (nCool, nHeat float64) {
	switch {
	case y == 1:
		return a / (a + 1), a / (a + 1)
	case y > 0:
		nCool = (1 - math.Pow(y, -a)) / (1 - math.Pow(y, -(a+1)))
		nHeat = (1 - math.Pow(y, a)) / (1 - math.Pow(y, a+1))
		return nCool, nHeat
	default:
		return 1, 1
	}
}

/*
HourlyLoads evaluates one weather hour.

Args

	temperature outdoor temperature, degree C
	htc heat transfer coefficient of the month, W/K
	totalGain total gains of the month, W
	a month exponent

Returns

	cooling load and heating load, W
*/
func HourlyLoads(temperature, htc, totalGain, a float64) (cooling, heating float64) {
	calc := (baseTemperature - temperature) * htc
	var y float64
	if calc != 0 {
		y = totalGain / calc
	}
	nCool, nHeat := UtilisationFactors(y, a)
	cooling = totalGain - nCool*calc
	heating = calc - totalGain*nHeat
	return cooling, heating
}

// HourlyInput is what the hourly model reads.
type HourlyInput struct {
	Records                 []WeatherRecord
	HeatTransferCoefficient Monthly // W/K
	TotalGains              Monthly // W
	CoolingHours            HourSet
	HeatingHours            HourSet
}

// EnergyResult is the monthly and annual heating and cooling energy.
type EnergyResult struct {
	MonthlyCooling         Monthly `json:"monthly_cooling"`  // kWh
	MonthlyHeating         Monthly `json:"monthly_heating"`  // kWh
	AnnualCooling          float64 `json:"annual_cooling"`   // kWh
	AnnualHeating          float64 `json:"annual_heating"`   // kWh
	AnnualAppliance        float64 `json:"annual_appliance"` // kWh
	AnnualLighting         float64 `json:"annual_lighting"`  // kWh
	AnnualTotal            float64 `json:"annual_total"`     // kWh
	ConditionedFloorAreaM2 float64 `json:"conditioned_floor_area_m2"`
	EUI                    float64 `json:"eui"` // kWh/m2/year
}

/*
ComputeHourlyEnergy runs the degree-time procedure over the weather series.

Notes

	Cooling loads are summed over the hours in CoolingHours and heating loads
	over the hours in HeatingHours. Each monthly sum is clamped at zero and
	divided by 3000. The gains of the month are used for every hour of it.
	Records with a month outside 1-12 are skipped.
*/
func ComputeHourlyEnergy(in HourlyInput) EnergyResult {
	var coolSum, heatSum Monthly
	for _, r := range in.Records {
		if r.Month < 1 || r.Month > monthsPerYear {
			continue
		}
		month := time.Month(r.Month)
		cooling, heating := HourlyLoads(
			r.Temperature,
			in.HeatTransferCoefficient.Month(month),
			in.TotalGains.Month(month),
			MonthExponent(month),
		)
		if in.CoolingHours.Contains(r.Hour) {
			coolSum[r.Month-1] += cooling
		}
		if in.HeatingHours.Contains(r.Hour) {
			heatSum[r.Month-1] += heating
		}
	}

	var res EnergyResult
	for i := range coolSum {
		res.MonthlyCooling[i] = math.Max(coolSum[i], 0) / kWhDivisor
		res.MonthlyHeating[i] = math.Max(heatSum[i], 0) / kWhDivisor
	}
	res.AnnualCooling = floats.Sum(res.MonthlyCooling[:])
	res.AnnualHeating = floats.Sum(res.MonthlyHeating[:])
	return res
}

// EUI returns (appliance + heating + cooling + lighting) / (floor area x floors),
// or 0 when the denominator is 0.
func EUI(applianceKWh, heatingKWh, coolingKWh, lightingKWh, floorAreaM2 float64, floors int) float64 {
	area := floorAreaM2 * float64(floors)
	if area == 0 {
		return 0
	}
	return (applianceKWh + heatingKWh + coolingKWh + lightingKWh) / area
}

// WithEUI fills the annual totals and the EUI of an hourly result.
func (r EnergyResult) WithEUI(applianceKWh, lightingKWh, floorAreaM2 float64, floors int) EnergyResult {
	r.AnnualAppliance = applianceKWh
	r.AnnualLighting = lightingKWh
	r.AnnualTotal = applianceKWh + r.AnnualHeating + r.AnnualCooling + lightingKWh
	r.ConditionedFloorAreaM2 = floorAreaM2 * float64(floors)
	r.EUI = EUI(applianceKWh, r.AnnualHeating, r.AnnualCooling, lightingKWh, floorAreaM2, floors)
	return r
}
