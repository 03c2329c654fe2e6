package energycalc

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HLPSchedule is the result of the heat loss parameter model.
type HLPSchedule struct {
	HeatCapacity             float64 `json:"heat_capacity"`                  // kJ/K
	ThermalMassParameter     float64 `json:"thermal_mass_parameter"`         // kJ/m2K
	ThermalBridges           float64 `json:"thermal_bridges"`                // W/K
	FabricHeatLoss           float64 `json:"fabric_heat_loss"`               // W/K
	FabricHeatLossBridging   float64 `json:"fabric_heat_loss_with_bridging"` // W/K
	VentilationHeatLoss      Monthly `json:"ventilation_heat_loss"`          // W/K
	HeatTransferCoefficient  Monthly `json:"heat_transfer_coefficient"`      // W/K
	HeatLossParameter        Monthly `json:"heat_loss_parameter"`            // W/m2K
	AverageHeatTransferCoeff float64 `json:"average_heat_transfer_coeff"`    // W/K
	AverageHeatLossParameter float64 `json:"average_heat_loss_parameter"`    // W/m2K
}

// HLPInput collects what the heat loss parameter model reads from upstream.
type HLPInput struct {
	Fabric           FabricHeatLoss
	FloorAreaM2      float64
	NetWallAreaM2    float64
	TotalAreaM2      float64
	DwellingVolumeM3 float64
	InfiltrationRate Monthly // 1/h
}

/*
ComputeHLP derives the monthly heat transfer coefficient and heat loss parameter.

Notes

	heatCapacity = netWall x kappa(wall) + floor x kappa(roof)
	TMP          = heatCapacity / floor
	bridges      = 0.2 x totalArea
	vent[m]      = 0.33 x volume x rate[m]
	HTC[m]       = fabric + bridges + vent[m]
	HLP[m]       = HTC[m] / floor
	A floor area of zero gives TMP and HLP of zero.
*/
func ComputeHLP(in HLPInput) HLPSchedule {
	h := HLPSchedule{
		HeatCapacity:   in.NetWallAreaM2*in.Fabric.Wall.Kappa + in.FloorAreaM2*in.Fabric.Roof.Kappa,
		ThermalBridges: thermalBridgeFactor * in.TotalAreaM2,
		FabricHeatLoss: in.Fabric.Total(),
	}
	if in.FloorAreaM2 != 0 {
		h.ThermalMassParameter = h.HeatCapacity / in.FloorAreaM2
	}
	h.FabricHeatLossBridging = h.FabricHeatLoss + h.ThermalBridges

	floats.ScaleTo(h.VentilationHeatLoss[:], airHeatCapacity*in.DwellingVolumeM3, in.InfiltrationRate[:])
	h.HeatTransferCoefficient = h.VentilationHeatLoss
	floats.AddConst(h.FabricHeatLossBridging, h.HeatTransferCoefficient[:])
	if in.FloorAreaM2 != 0 {
		floats.ScaleTo(h.HeatLossParameter[:], 1/in.FloorAreaM2, h.HeatTransferCoefficient[:])
	}

	h.AverageHeatTransferCoeff = stat.Mean(h.HeatTransferCoefficient[:], nil)
	h.AverageHeatLossParameter = stat.Mean(h.HeatLossParameter[:], nil)
	return h
}
