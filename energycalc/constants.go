package energycalc

// ft2 -> m2
const sqFtToSqM = 0.092903

// ft3 -> m3
const cuFtToCuM = 0.0283168

// inch -> m
const inchToM = 0.0254

// Inside surface heat transfer coefficient, W/m2K
const DefaultHi = 2.5

// Outside surface heat transfer coefficient, W/m2K
const DefaultHo = 11.54

// Added to the nominal glazing resistance to obtain the effective window U-value, m2K/W
const windowCurtainResistance = 0.04

// Volumetric heat capacity of air used for ventilation heat loss, Wh/m3K
const airHeatCapacity = 0.33

// Thermal bridging allowance per unit of exposed area, W/m2K
const thermalBridgeFactor = 0.2

// Indoor base temperature of the degree-time procedure, degree C
const baseTemperature = 24.0

// Divisor turning summed hourly loads into kWh
const kWhDivisor = 3000.0

// Carbon intensity of delivered electricity, kg CO2/kWh
const CO2PerKWh = 0.478

// SqFtToSqM converts an area from square feet to square metres.
func SqFtToSqM(areaFt2 float64) float64 {
	return areaFt2 * sqFtToSqM
}

// CuFtToCuM converts a volume from cubic feet to cubic metres.
func CuFtToCuM(volumeFt3 float64) float64 {
	return volumeFt3 * cuFtToCuM
}

// InchToM converts a thickness from inches to metres.
func InchToM(thicknessIn float64) float64 {
	return thicknessIn * inchToM
}
