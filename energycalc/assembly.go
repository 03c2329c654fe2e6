package energycalc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Element names one part of the envelope.
type Element string

const (
	ElementRoof   Element = "roof"
	ElementWall   Element = "wall"
	ElementSlab   Element = "slab"
	ElementWindow Element = "window"
	ElementDoor   Element = "door"
)

// Elements lists the envelope elements in the order they are reported.
var Elements = []Element{ElementRoof, ElementWall, ElementSlab, ElementWindow, ElementDoor}

// Material is one entry of the material property table.
type Material struct {
	Name string  `json:"name"`
	K    float64 `json:"k"`  // conductivity, W/mK
	SH   float64 `json:"sh"` // specific heat, J/kgK
	D    float64 `json:"d"`  // density, kg/m3
}

// SlabType is a pre-characterised ground floor construction.
type SlabType struct {
	Name   string  `json:"name"`
	UValue float64 `json:"u_value"`
}

// WindowType is a glazing product with its nominal U-value and solar heat gain coefficient.
type WindowType struct {
	Name   string  `json:"name"`
	UValue float64 `json:"u_value"`
	SHGC   float64 `json:"shgc"`
}

// FrameType gives the glazed fraction of a window opening.
type FrameType struct {
	Name        string  `json:"name"`
	FrameFactor float64 `json:"frame_factor"`
}

// ShadingCover is a seasonal solar access factor for curtains, blinds or overhangs.
type ShadingCover struct {
	Name   string  `json:"name"`
	Winter float64 `json:"winter"`
	Summer float64 `json:"summer"`
}

// Factor returns the winter or the summer coefficient.
func (s ShadingCover) Factor(winter bool) float64 {
	if winter {
		return s.Winter
	}
	return s.Summer
}

// Layer is one layer of an assembly, listed outer to inner. A layer without a
// material or without a thickness has not been entered and is skipped.
type Layer struct {
	Material  *Material `json:"material,omitempty"`
	Thickness *float64  `json:"thickness,omitempty"` // inches
}

func (l Layer) present() bool {
	return l.Material != nil && l.Thickness != nil
}

// SurfaceCoefficients are the inside (Hi) and outside (Ho) surface heat transfer coefficients, W/m2K.
type SurfaceCoefficients struct {
	Hi float64 `json:"hi"`
	Ho float64 `json:"ho"`
}

// DefaultSurface returns hi = 2.5 and ho = 11.54.
func DefaultSurface() SurfaceCoefficients {
	return SurfaceCoefficients{Hi: DefaultHi, Ho: DefaultHo}
}

// LayerResult is the per-layer breakdown of an assembly.
type LayerResult struct {
	Material    string  `json:"material"`
	ThicknessIn float64 `json:"thickness_in"`
	RValue      float64 `json:"r_value"`
	Kappa       float64 `json:"kappa"`
}

// ThermalResult is the thermal performance of one envelope element.
// HeatLoss is the UA-value itself; it is not multiplied by a temperature difference.
type ThermalResult struct {
	Element  Element       `json:"element"`
	Layers   []LayerResult `json:"layers,omitempty"`
	RTotal   float64       `json:"r_total"`
	UValue   float64       `json:"u_value"`
	AreaM2   float64       `json:"area_m2"`
	UAValue  float64       `json:"ua_value"`
	HeatLoss float64       `json:"heat_loss"`
	Kappa    float64       `json:"kappa"`
}

/*
LayerRValue returns the thermal resistance of a layer.

Args

	thicknessIn layer thickness, inch
	k conductivity, W/mK

Returns

	R-value, m2K/W
*/
func LayerRValue(thicknessIn, k float64) (float64, error) {
	if k <= 0 || math.IsNaN(k) {
		return 0, fmt.Errorf("conductivity %v: %w", k, ErrInvalidParameter)
	}
	return InchToM(thicknessIn) / k, nil
}

/*
LayerKappa returns the areal heat capacity (kappa) of a layer.

Args

	thicknessIn layer thickness, inch
	sh specific heat, J/kgK
	d density, kg/m3

Returns

	kappa, kJ/m2K
*/
func LayerKappa(thicknessIn, sh, d float64) float64 {
	return InchToM(thicknessIn) * sh * d / 1000.0
}

// TotalKappa sums the layer kappa values.
func TotalKappa(kappas []float64) float64 {
	return floats.Sum(kappas)
}

// RTotal returns the sum of the layer resistances plus both surface resistances.
func RTotal(rValues []float64, hi, ho float64) (float64, error) {
	if hi <= 0 || math.IsNaN(hi) {
		return 0, fmt.Errorf("hi %v: %w", hi, ErrInvalidSurfaceResistance)
	}
	if ho <= 0 || math.IsNaN(ho) {
		return 0, fmt.Errorf("ho %v: %w", ho, ErrInvalidSurfaceResistance)
	}
	return floats.Sum(rValues) + 1/hi + 1/ho, nil
}

// UValue returns 1/rTotal.
func UValue(rTotal float64) (float64, error) {
	if rTotal == 0 {
		return 0, fmt.Errorf("R-total is zero: %w", ErrZeroDivision)
	}
	return 1 / rTotal, nil
}

// EffectiveUValue adds the curtain/blind resistance of 0.04 m2K/W to the
// nominal window resistance.
func EffectiveUValue(u float64) (float64, error) {
	if u == 0 {
		return 0, fmt.Errorf("window U-value is zero: %w", ErrZeroDivision)
	}
	return 1 / ((1 / u) + windowCurtainResistance), nil
}

/*
LayeredElement computes a layered construction (roof, wall or door).

Args

	element which element the layers belong to
	layers layers outer to inner
	areaM2 element area, m2
	sc surface coefficients

Returns

	the element result; a zero result when no layer has been entered
*/
func LayeredElement(element Element, layers []Layer, areaM2 float64, sc SurfaceCoefficients) (ThermalResult, error) {
	res := ThermalResult{Element: element, AreaM2: areaM2}

	var rValues, kappas []float64
	for i, l := range layers {
		if !l.present() {
			continue
		}
		r, err := LayerRValue(*l.Thickness, l.Material.K)
		if err != nil {
			return ThermalResult{}, paramError(string(element), fmt.Sprintf("layers[%d]", i), err)
		}
		kappa := LayerKappa(*l.Thickness, l.Material.SH, l.Material.D)
		rValues = append(rValues, r)
		kappas = append(kappas, kappa)
		res.Layers = append(res.Layers, LayerResult{
			Material:    l.Material.Name,
			ThicknessIn: *l.Thickness,
			RValue:      r,
			Kappa:       kappa,
		})
	}
	if len(rValues) == 0 {
		return res, nil
	}

	rTotal, err := RTotal(rValues, sc.Hi, sc.Ho)
	if err != nil {
		return ThermalResult{}, paramError(string(element), "surface", err)
	}
	u, err := UValue(rTotal)
	if err != nil {
		return ThermalResult{}, paramError(string(element), "u_value", err)
	}

	res.RTotal = rTotal
	res.UValue = u
	res.UAValue = u * areaM2
	res.HeatLoss = res.UAValue
	if element == ElementRoof || element == ElementWall {
		res.Kappa = TotalKappa(kappas)
	}
	return res, nil
}

// SlabElement uses the U-value of the selected slab type. No selection gives a zero result.
func SlabElement(slab *SlabType, areaM2 float64) ThermalResult {
	res := ThermalResult{Element: ElementSlab, AreaM2: areaM2}
	if slab == nil {
		return res
	}
	res.UValue = slab.UValue
	res.UAValue = slab.UValue * areaM2
	res.HeatLoss = res.UAValue
	return res
}

// WindowElement uses the effective U-value of the selected window type.
// No selection gives a zero result.
func WindowElement(window *WindowType, areaM2 float64) (ThermalResult, error) {
	res := ThermalResult{Element: ElementWindow, AreaM2: areaM2}
	if window == nil {
		return res, nil
	}
	u, err := EffectiveUValue(window.UValue)
	if err != nil {
		return ThermalResult{}, paramError(string(ElementWindow), "u_value", err)
	}
	res.UValue = u
	res.UAValue = u * areaM2
	res.HeatLoss = res.UAValue
	return res, nil
}

// FabricHeatLoss holds the five element results. Its total is always derived
// from the elements it currently holds.
type FabricHeatLoss struct {
	Roof   ThermalResult `json:"roof"`
	Wall   ThermalResult `json:"wall"`
	Slab   ThermalResult `json:"slab"`
	Window ThermalResult `json:"window"`
	Door   ThermalResult `json:"door"`
}

// Total returns the sum of the five element heat losses, W/K.
func (f FabricHeatLoss) Total() float64 {
	return floats.Sum([]float64{
		f.Roof.HeatLoss,
		f.Wall.HeatLoss,
		f.Slab.HeatLoss,
		f.Window.HeatLoss,
		f.Door.HeatLoss,
	})
}

// With returns a copy with one element replaced.
func (f FabricHeatLoss) With(e Element, r ThermalResult) FabricHeatLoss {
	r.Element = e
	switch e {
	case ElementRoof:
		f.Roof = r
	case ElementWall:
		f.Wall = r
	case ElementSlab:
		f.Slab = r
	case ElementWindow:
		f.Window = r
	case ElementDoor:
		f.Door = r
	}
	return f
}

// Element returns the result for one element.
func (f FabricHeatLoss) Element(e Element) ThermalResult {
	switch e {
	case ElementRoof:
		return f.Roof
	case ElementWall:
		return f.Wall
	case ElementSlab:
		return f.Slab
	case ElementWindow:
		return f.Window
	default:
		return f.Door
	}
}

// EnvelopeInput is the construction selected for each element. A nil
// Surface uses DefaultSurface.
type EnvelopeInput struct {
	Roof    []Layer              `json:"roof"`
	Wall    []Layer              `json:"wall"`
	Slab    *SlabType            `json:"slab,omitempty"`
	Window  *WindowType          `json:"window,omitempty"`
	Frame   *FrameType           `json:"frame,omitempty"`
	Shading *ShadingCover        `json:"shading,omitempty"`
	Door    []Layer              `json:"door"`
	Surface *SurfaceCoefficients `json:"surface,omitempty"`
}

/*
ComputeFabric evaluates every element against the floor plan areas.

	roof   : floor area
	wall   : net wall area
	slab   : floor area
	window : total window area
	door   : total door area
*/
func ComputeFabric(env EnvelopeInput, fp FloorPlan) (FabricHeatLoss, error) {
	sc := DefaultSurface()
	if env.Surface != nil {
		sc = *env.Surface
	}

	roof, err := LayeredElement(ElementRoof, env.Roof, fp.FloorAreaM2(), sc)
	if err != nil {
		return FabricHeatLoss{}, err
	}
	wall, err := LayeredElement(ElementWall, env.Wall, fp.NetWallAreaM2(), sc)
	if err != nil {
		return FabricHeatLoss{}, err
	}
	window, err := WindowElement(env.Window, fp.WindowAreaM2())
	if err != nil {
		return FabricHeatLoss{}, err
	}
	door, err := LayeredElement(ElementDoor, env.Door, fp.DoorAreaM2(), sc)
	if err != nil {
		return FabricHeatLoss{}, err
	}

	return FabricHeatLoss{
		Roof:   roof,
		Wall:   wall,
		Slab:   SlabElement(env.Slab, fp.FloorAreaM2()),
		Window: window,
		Door:   door,
	}, nil
}
