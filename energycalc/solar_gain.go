package energycalc

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Reference tilt of the solar flux polynomial, rad (45 degrees)
const referenceAngle = 0.785398163

// Access factor applied to every glazed opening
const solarAccessFactor = 0.9

/*
SolarCoefficients returns the polynomial coefficients A, B and C of an orientation.

Args

	k k1..k9 of the orientation

Returns

	A = k1 s^3 + k2 s^2 + k3 s
	B = k4 s^3 + k5 s^2 + k6 s
	C = k7 s^3 + k8 s^2 + k9 s + 1
	where s = sin(45 deg)
*/
func SolarCoefficients(k [9]float64) (a, b, c float64) {
	s := math.Sin(referenceAngle)
	s2 := s * s
	s3 := s2 * s
	a = k[0]*s3 + k[1]*s2 + k[2]*s
	b = k[3]*s3 + k[4]*s2 + k[5]*s
	c = k[6]*s3 + k[7]*s2 + k[8]*s + 1
	return a, b, c
}

// SolarPosition returns latitude - declination of the month, rad.
func SolarPosition(latitudeDeg float64, month time.Month) float64 {
	return deg2rad(latitudeDeg - SolarDeclination(month))
}

// RHNIC returns the ratio of vertical to horizontal irradiance, A cos^2(pos) + B cos(pos) + C.
func RHNIC(a, b, c, positionRad float64) float64 {
	cp := math.Cos(positionRad)
	return a*cp*cp + b*cp + c
}

// SolarInput is what the solar gain model needs from geometry, glazing and climate.
type SolarInput struct {
	WindowAreaM2 map[Orientation]float64
	Window       *WindowType
	Frame        *FrameType
	Shading      *ShadingCover
	LatitudeDeg  float64 // degree
	Irradiance   Monthly // horizontal irradiance, W/m2
}

// SolarGainTable is the monthly solar gain per orientation.
type SolarGainTable struct {
	// Orientation x month gains, W; rows follow Orientations.
	Table *mat.Dense `json:"-"`

	ByOrientation map[Orientation]Monthly `json:"by_orientation"`
	Total         Monthly                 `json:"total"`
}

/*
ComputeSolarGains evaluates the gain of every orientation for every month.

Notes

	gain = 0.9 x area x shading(month) x SHGC x frame factor x irradiance x rhnic
	Without a window, frame or shading selection the gains are all zero.
*/
func ComputeSolarGains(in SolarInput) SolarGainTable {
	table := mat.NewDense(len(Orientations), monthsPerYear, nil)
	out := SolarGainTable{
		Table:         table,
		ByOrientation: make(map[Orientation]Monthly, len(Orientations)),
	}
	if in.Window == nil || in.Frame == nil || in.Shading == nil {
		for _, o := range Orientations {
			out.ByOrientation[o] = Monthly{}
		}
		return out
	}

	glazing := solarAccessFactor * in.Window.SHGC * in.Frame.FrameFactor
	for i, o := range Orientations {
		k, _ := OrientationK(o)
		a, b, c := SolarCoefficients(k)
		area := in.WindowAreaM2[o]
		for j, month := range Months() {
			rhnic := RHNIC(a, b, c, SolarPosition(in.LatitudeDeg, month))
			sorient := in.Irradiance.Month(month) * rhnic
			shading := in.Shading.Factor(IsWinterMonth(month))
			table.Set(i, j, glazing*area*shading*sorient)
		}
		var row Monthly
		mat.Row(row[:], i, table)
		out.ByOrientation[o] = row
	}
	for j := 0; j < monthsPerYear; j++ {
		out.Total[j] = mat.Sum(table.ColView(j))
	}
	return out
}

// GainsSchedule is the monthly gains result.
type GainsSchedule struct {
	Solar          SolarGainTable `json:"solar"`
	LightingEnergy Monthly        `json:"lighting_energy"` // kWh
	Lighting       Monthly        `json:"lighting"`        // W
	Metabolic      float64        `json:"metabolic"`       // W
	Cooking        float64        `json:"cooking"`         // W
	Internal       Monthly        `json:"internal"`        // W
	Total          Monthly        `json:"total"`           // W
}

// ComputeGains combines the solar and internal gains.
func ComputeGains(solar SolarInput, totalLightingWattage float64, occupants float64) GainsSchedule {
	g := GainsSchedule{
		Solar:     ComputeSolarGains(solar),
		Metabolic: MetabolicGain(occupants),
		Cooking:   CookingGain(occupants),
	}
	for i, month := range Months() {
		g.LightingEnergy[i] = LightingEnergy(totalLightingWattage, month)
		g.Lighting[i] = LightingGain(g.LightingEnergy[i], month)
	}
	g.Internal = g.Lighting
	floats.AddConst(g.Metabolic+g.Cooking, g.Internal[:])
	floats.AddTo(g.Total[:], g.Solar.Total[:], g.Internal[:])
	return g
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180
}
