package casefile

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/satoh-er/eui_calc_go/energycalc"
)

// Catalog resolves the product names used in a case file.
type Catalog interface {
	Material(assembly, layer, name string) (energycalc.Material, error)
	Slab(name string) (energycalc.SlabType, error)
	Window(name string) (energycalc.WindowType, error)
	Frame(name string) (energycalc.FrameType, error)
	Shading(name string) (energycalc.ShadingCover, error)
}

func fieldError(element, field string, err error) error {
	return &energycalc.ParamError{Element: element, Field: field, Err: err}
}

// converter collects the first error so the conversion reads top to bottom.
type converter struct {
	cat Catalog
	err error
}

func (c *converter) number(element, field string, v Value) float64 {
	if c.err != nil {
		return 0
	}
	f, err := energycalc.ParseNumeric(string(v))
	if err != nil {
		c.err = fieldError(element, field, err)
	}
	return f
}

func (c *converter) integer(element, field string, v Value) int {
	if c.err != nil {
		return 0
	}
	i, err := energycalc.ParseInt(string(v))
	if err != nil {
		c.err = fieldError(element, field, err)
	}
	return i
}

func (c *converter) orientation(element, field, s string) energycalc.Orientation {
	if c.err != nil || strings.TrimSpace(s) == "" {
		return ""
	}
	o, err := energycalc.ParseOrientation(s)
	if err != nil {
		c.err = fieldError(element, field, err)
	}
	return o
}

func (c *converter) openings(element string, in []Opening) []energycalc.Opening {
	out := make([]energycalc.Opening, 0, len(in))
	for i, o := range in {
		field := fmt.Sprintf("%s[%d]", element, i)
		out = append(out, energycalc.Opening{
			Orientation: c.orientation(element, field+".orientation", o.Orientation),
			Length:      c.number(element, field+".length", o.Length),
			Height:      c.number(element, field+".height", o.Height),
		})
	}
	return out
}

func (c *converter) floorPlan(in FloorPlan) energycalc.FloorPlanInput {
	const element = "floor_plan"
	fp := energycalc.FloorPlanInput{
		Orientation:    c.orientation(element, "orientation", in.Orientation),
		WallLengths:    make(map[energycalc.Orientation]float64, len(in.WallLengths)),
		WallHeight:     c.number(element, "wall_height", in.WallHeight),
		Floors:         c.integer(element, "floors", in.Floors),
		SidesConnected: c.integer(element, "sides_connected", in.SidesConnected),
		Windows:        c.openings("windows", in.Windows),
		Doors:          c.openings("doors", in.Doors),
	}
	// sorted so the reported error does not depend on map order
	seen := make(map[energycalc.Orientation]string, len(in.WallLengths))
	for _, label := range slices.Sorted(maps.Keys(in.WallLengths)) {
		o := c.orientation(element, "wall_lengths."+label, label)
		if c.err != nil {
			break
		}
		if prev, ok := seen[o]; ok {
			c.err = fieldError(element, "wall_lengths",
				fmt.Errorf("%q and %q are both %s: %w", prev, label, o, energycalc.ErrInvalidParameter))
			break
		}
		seen[o] = label
		fp.WallLengths[o] = c.number(element, "wall_lengths."+label, in.WallLengths[label])
	}
	return fp
}

// layer resolves one layer. A layer without a material name or without a
// thickness is left absent.
func (c *converter) layer(assembly, slot string, in Layer) (energycalc.Layer, bool) {
	if c.err != nil || strings.TrimSpace(in.Material) == "" {
		return energycalc.Layer{}, false
	}
	t, ok, err := energycalc.ParseOptional(string(in.Thickness))
	if err != nil {
		c.err = fieldError(assembly, slot+".thickness", err)
		return energycalc.Layer{}, false
	}
	if !ok {
		return energycalc.Layer{}, false
	}
	m, err := c.cat.Material(assembly, slot, in.Material)
	if err != nil {
		c.err = fieldError(assembly, slot+".material", err)
		return energycalc.Layer{}, false
	}
	return energycalc.Layer{Material: &m, Thickness: &t}, true
}

func (c *converter) assembly(name string, in Assembly) []energycalc.Layer {
	var layers []energycalc.Layer
	for _, s := range []struct {
		slot  string
		layer Layer
	}{
		{"outer", in.Outer},
		{"core", in.Core},
		{"insulation", in.Insulation},
		{"inner", in.Inner},
	} {
		if l, ok := c.layer(name, s.slot, s.layer); ok {
			layers = append(layers, l)
		}
	}
	return layers
}

// lookup resolves an optional catalogue selection; an empty name gives nil.
func lookup[T any](c *converter, element, name string, find func(string) (T, error)) *T {
	if c.err != nil || strings.TrimSpace(name) == "" {
		return nil
	}
	v, err := find(name)
	if err != nil {
		c.err = fieldError(element, "type", err)
		return nil
	}
	return &v
}

func (c *converter) envelope(in Envelope) energycalc.EnvelopeInput {
	env := energycalc.EnvelopeInput{
		Roof:    c.assembly("roof", in.Roof),
		Wall:    c.assembly("wall", in.Wall),
		Slab:    lookup(c, "slab", in.Slab, c.cat.Slab),
		Window:  lookup(c, "window", in.Window, c.cat.Window),
		Frame:   lookup(c, "frame", in.Frame, c.cat.Frame),
		Shading: lookup(c, "shading", in.Shading, c.cat.Shading),
	}
	if l, ok := c.layer("door", "door", in.Door); ok {
		env.Door = []energycalc.Layer{l}
	}
	if in.Surface != nil {
		env.Surface = &energycalc.SurfaceCoefficients{
			Hi: c.number("surface", "hi", in.Surface.Hi),
			Ho: c.number("surface", "ho", in.Surface.Ho),
		}
	}
	return env
}

func (c *converter) ventilation(in Ventilation) energycalc.VentilationInput {
	const element = "ventilation"
	v := energycalc.VentilationInput{
		PctDraughtProofed: c.number(element, "draught_proofed", in.DraughtProofed),
		Fans:              c.integer(element, "fans", in.Fans),
	}
	if c.err != nil {
		return v
	}
	var err error
	if strings.TrimSpace(in.Mode) != "" {
		if v.Mode, err = energycalc.VentilationModeFromString(in.Mode); err != nil {
			c.err = fieldError(element, "mode", err)
			return v
		}
	}
	if strings.TrimSpace(in.Construction) != "" {
		if v.Construction, err = energycalc.ConstructionTypeFromString(in.Construction); err != nil {
			c.err = fieldError(element, "construction", err)
			return v
		}
	}
	if strings.TrimSpace(in.Lobby) != "" {
		if v.Lobby, err = energycalc.LobbyTypeFromString(in.Lobby); err != nil {
			c.err = fieldError(element, "lobby", err)
		}
	}
	return v
}

func (c *converter) lighting(in []Fixture) []energycalc.LightingFixture {
	out := make([]energycalc.LightingFixture, 0, len(in))
	for i, f := range in {
		field := fmt.Sprintf("fixtures[%d]", i)
		out = append(out, energycalc.LightingFixture{
			Name:        f.Name,
			Wattage:     c.number("lighting", field+".wattage", f.Wattage),
			Quantity:    c.integer("lighting", field+".quantity", f.Quantity),
			HoursPerDay: c.number("lighting", field+".hours_per_day", f.HoursPerDay),
			DaysPerYear: c.integer("lighting", field+".days_per_year", f.DaysPerYear),
		})
	}
	return out
}

func (c *converter) appliances(in []Appliance) []energycalc.Appliance {
	out := make([]energycalc.Appliance, 0, len(in))
	for i, a := range in {
		field := fmt.Sprintf("appliances[%d]", i)
		app := energycalc.Appliance{
			Kind:     strings.TrimSpace(a.Kind),
			Quantity: c.integer("appliances", field+".quantity", a.Quantity),
			Wattage:  c.number("appliances", field+".wattage", a.Wattage),
			HoursPerDay: c.number("appliances", field+".hours", a.Hours) +
				energycalc.MinutesToHours(c.number("appliances", field+".minutes", a.Minutes)),
			DaysPerYear: c.integer("appliances", field+".days_per_year", a.DaysPerYear),
		}
		if c.err == nil && strings.TrimSpace(a.Rating) != "" {
			r, err := energycalc.RefrigeratorRatingFromString(a.Rating)
			if err != nil {
				c.err = fieldError("appliances", field+".rating", err)
			}
			app.Rating = r
		}
		out = append(out, app)
	}
	return out
}

func (c *converter) hours(field string, in []string) energycalc.HourSet {
	var (
		hs     energycalc.HourSet
		labels []string
	)
	for _, s := range in {
		s = strings.TrimSpace(s)
		if strings.EqualFold(s, "all") {
			return energycalc.AllHours()
		}
		h, err := strconv.Atoi(s)
		if err != nil {
			labels = append(labels, s)
			continue
		}
		if h < 0 || h > 23 {
			if c.err == nil {
				c.err = fieldError("operating_hours", field,
					fmt.Errorf("hour %d not in [0, 23]: %w", h, energycalc.ErrOutOfRange))
			}
			continue
		}
		hs[h] = true
	}
	for _, h := range energycalc.HoursFromLabels(labels).Indices() {
		hs[h] = true
	}
	return hs
}

/*
Params converts the case to engine parameters.

Args

	cat catalogue that resolves material and product names

Returns

	the parameters; a *energycalc.ParamError naming the offending input otherwise

Notes

	Empty numbers are zero and empty selections are absent. Text that is not
	a number and names missing from the catalogue fail.
*/
func (f File) Params(cat Catalog) (energycalc.Params, error) {
	c := &converter{cat: cat}

	p := energycalc.Params{
		Case:         energycalc.Case(strings.ToLower(strings.TrimSpace(f.Case))),
		City:         strings.TrimSpace(f.City),
		FloorPlan:    c.floorPlan(f.FloorPlan),
		Envelope:     c.envelope(f.Envelope),
		Ventilation:  c.ventilation(f.Ventilation),
		Occupants:    c.number("occupancy", "occupants", f.Occupants),
		Lighting:     c.lighting(f.Lighting),
		Appliances:   c.appliances(f.Appliances),
		CoolingHours: c.hours("cooling_hours", f.CoolingHours),
		HeatingHours: c.hours("heating_hours", f.HeatingHours),
		Tariff:       c.number("bill", "tariff", f.Tariff),
	}
	if c.err != nil {
		return energycalc.Params{}, c.err
	}
	if p.Case == "" {
		p.Case = energycalc.CaseBase
	}
	return p, nil
}
