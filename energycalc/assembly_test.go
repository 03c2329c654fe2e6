package energycalc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

var (
	materialNone  = &Material{Name: "None", K: 1, SH: 0, D: 0}
	materialBrick = &Material{Name: "Brick", K: 0.72, SH: 840, D: 1920}
	materialEPS   = &Material{Name: "Expanded Polystyrene", K: 0.035, SH: 1400, D: 25}
)

func TestRTotalAndUValue(t *testing.T) {
	r, err := RTotal([]float64{0.1, 0.2}, 2.5, 11.54)
	require.NoError(t, err)
	assert.InDelta(t, 0.3+1/2.5+1/11.54, r, 1e-12)

	u, err := UValue(r)
	require.NoError(t, err)
	assert.InDelta(t, 1/r, u, 1e-12)
}

func TestRTotalRejectsSurfaceCoefficients(t *testing.T) {
	for _, tc := range []struct {
		name   string
		hi, ho float64
	}{
		{"hi zero", 0, 11.54},
		{"hi negative", -2.5, 11.54},
		{"ho zero", 2.5, 0},
		{"hi NaN", math.NaN(), 11.54},
		{"ho NaN", 2.5, math.NaN()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RTotal(nil, tc.hi, tc.ho)
			assert.ErrorIs(t, err, ErrInvalidSurfaceResistance)
		})
	}
}

func TestUValueZeroDivision(t *testing.T) {
	_, err := UValue(0)
	assert.ErrorIs(t, err, ErrZeroDivision)
}

func TestEffectiveUValue(t *testing.T) {
	_, err := EffectiveUValue(0)
	assert.ErrorIs(t, err, ErrZeroDivision)

	for _, u := range []float64{5.7, 2.8, 1.4} {
		got, err := EffectiveUValue(u)
		require.NoError(t, err)
		assert.InDelta(t, 1/((1/u)+0.04), got, 1e-12)
		assert.Less(t, got, u)
	}
}

func TestLayerValues(t *testing.T) {
	r, err := LayerRValue(4.5, 0.72)
	require.NoError(t, err)
	assert.InDelta(t, 0.1143/0.72, r, 1e-12)

	assert.InDelta(t, 0.1143*840*1920/1000, LayerKappa(4.5, 840, 1920), 1e-9)

	_, err = LayerRValue(1, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestLayeredElementAllNone(t *testing.T) {
	layers := []Layer{
		{Material: materialNone, Thickness: ptr(0)},
		{Material: materialNone, Thickness: ptr(0)},
	}
	res, err := LayeredElement(ElementWall, layers, 10, DefaultSurface())
	require.NoError(t, err)

	assert.InDelta(t, 0.4866, res.RTotal, 1e-4)
	assert.InDelta(t, 2.0549, res.UValue, 1e-4)
	assert.InDelta(t, res.UValue*10, res.UAValue, 1e-12)
	assert.Equal(t, res.UAValue, res.HeatLoss)
	assert.Equal(t, 0.0, res.Kappa)
}

func TestLayeredElementSkipsAbsentLayers(t *testing.T) {
	full := []Layer{{Material: materialBrick, Thickness: ptr(9)}}
	withGaps := []Layer{
		{Material: materialBrick, Thickness: ptr(9)},
		{Material: materialEPS},
		{Thickness: ptr(2)},
		{},
	}
	a, err := LayeredElement(ElementRoof, full, 50, DefaultSurface())
	require.NoError(t, err)
	b, err := LayeredElement(ElementRoof, withGaps, 50, DefaultSurface())
	require.NoError(t, err)

	assert.Equal(t, a.RTotal, b.RTotal)
	assert.Len(t, b.Layers, 1)
}

func TestLayeredElementNoLayersIsZero(t *testing.T) {
	res, err := LayeredElement(ElementDoor, []Layer{{}}, 2, DefaultSurface())
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.UValue)
	assert.Equal(t, 0.0, res.HeatLoss)
	assert.Equal(t, ElementDoor, res.Element)
}

func TestLayeredElementKappaOnlyRoofAndWall(t *testing.T) {
	layers := []Layer{{Material: materialBrick, Thickness: ptr(4.5)}}
	want := LayerKappa(4.5, 840, 1920)

	for _, e := range []Element{ElementRoof, ElementWall} {
		res, err := LayeredElement(e, layers, 1, DefaultSurface())
		require.NoError(t, err)
		assert.InDelta(t, want, res.Kappa, 1e-9, string(e))
	}
	door, err := LayeredElement(ElementDoor, layers, 1, DefaultSurface())
	require.NoError(t, err)
	assert.Equal(t, 0.0, door.Kappa)
}

func TestLayeredElementSurfaceError(t *testing.T) {
	layers := []Layer{{Material: materialBrick, Thickness: ptr(4.5)}}
	_, err := LayeredElement(ElementRoof, layers, 1, SurfaceCoefficients{Hi: 0, Ho: 11.54})
	require.ErrorIs(t, err, ErrInvalidSurfaceResistance)

	var pe *ParamError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "roof", pe.Element)
}

func TestSlabAndWindowElements(t *testing.T) {
	slab := SlabElement(&SlabType{Name: "Concrete slab", UValue: 0.9}, 100)
	assert.InDelta(t, 90, slab.HeatLoss, 1e-12)
	assert.Equal(t, 0.0, SlabElement(nil, 100).HeatLoss)

	win, err := WindowElement(&WindowType{UValue: 5.7, SHGC: 0.85}, 4)
	require.NoError(t, err)
	assert.InDelta(t, 4/((1/5.7)+0.04), win.HeatLoss, 1e-12)

	_, err = WindowElement(&WindowType{UValue: 0}, 4)
	assert.ErrorIs(t, err, ErrZeroDivision)

	none, err := WindowElement(nil, 4)
	require.NoError(t, err)
	assert.Equal(t, 0.0, none.HeatLoss)
}

func TestFabricHeatLossTotalIsLive(t *testing.T) {
	var f FabricHeatLoss
	assert.Equal(t, 0.0, f.Total())

	f = f.With(ElementRoof, ThermalResult{HeatLoss: 10})
	f = f.With(ElementWall, ThermalResult{HeatLoss: 20})
	f = f.With(ElementSlab, ThermalResult{HeatLoss: 5})
	f = f.With(ElementWindow, ThermalResult{HeatLoss: 7})
	f = f.With(ElementDoor, ThermalResult{HeatLoss: 3})
	assert.Equal(t, 45.0, f.Total())

	g := f.With(ElementWall, ThermalResult{HeatLoss: 2})
	assert.Equal(t, 27.0, g.Total())
	assert.Equal(t, 45.0, f.Total(), "With must not modify the receiver")
	assert.Equal(t, ElementWall, g.Element(ElementWall).Element)

	sum := 0.0
	for _, e := range Elements {
		sum += g.Element(e).HeatLoss
	}
	assert.Equal(t, sum, g.Total())
}

func TestComputeFabricUsesFloorPlanAreas(t *testing.T) {
	fp, err := ComputeGeometry(sampleFloorPlan())
	require.NoError(t, err)

	env := EnvelopeInput{
		Roof:   []Layer{{Material: materialBrick, Thickness: ptr(6)}},
		Wall:   []Layer{{Material: materialBrick, Thickness: ptr(9)}},
		Slab:   &SlabType{UValue: 1},
		Window: &WindowType{UValue: 5.7, SHGC: 0.8},
		Door:   []Layer{{Material: &Material{Name: "Wood", K: 0.14, SH: 1200, D: 650}, Thickness: ptr(1.5)}},
	}
	f, err := ComputeFabric(env, fp)
	require.NoError(t, err)

	assert.Equal(t, fp.FloorAreaM2(), f.Roof.AreaM2)
	assert.Equal(t, fp.NetWallAreaM2(), f.Wall.AreaM2)
	assert.Equal(t, fp.FloorAreaM2(), f.Slab.AreaM2)
	assert.Equal(t, fp.WindowAreaM2(), f.Window.AreaM2)
	assert.Equal(t, fp.DoorAreaM2(), f.Door.AreaM2)
	assert.InDelta(t, fp.FloorAreaM2(), f.Slab.HeatLoss, 1e-9)
	assert.InDelta(t,
		f.Roof.HeatLoss+f.Wall.HeatLoss+f.Slab.HeatLoss+f.Window.HeatLoss+f.Door.HeatLoss,
		f.Total(), 1e-9)
}

func TestComputeFabricCustomSurface(t *testing.T) {
	fp, err := ComputeGeometry(sampleFloorPlan())
	require.NoError(t, err)

	env := EnvelopeInput{
		Wall:    []Layer{{Material: materialBrick, Thickness: ptr(9)}},
		Surface: &SurfaceCoefficients{Hi: -1, Ho: 11.54},
	}
	_, err = ComputeFabric(env, fp)
	assert.ErrorIs(t, err, ErrInvalidSurfaceResistance)
}

func TestComputeFabricIsDeterministic(t *testing.T) {
	fp, err := ComputeGeometry(sampleFloorPlan())
	require.NoError(t, err)
	env := EnvelopeInput{Roof: []Layer{{Material: materialEPS, Thickness: ptr(2)}}}

	a, err := ComputeFabric(env, fp)
	require.NoError(t, err)
	b, err := ComputeFabric(env, fp)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
