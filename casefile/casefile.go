// Package casefile reads the user-facing description of a building case.
// Numbers are kept as text, the way they are typed into a form, and are
// parsed only when the case is converted to engine parameters.
package casefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Value is a number as typed by the user. An empty Value has not been entered.
type Value string

// UnmarshalJSON accepts both JSON strings and bare numbers.
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(s)
	default:
		*v = Value(b)
	}
	return nil
}

type Opening struct {
	Orientation string `yaml:"orientation" json:"orientation"`
	Length      Value  `yaml:"length" json:"length"` // ft
	Height      Value  `yaml:"height" json:"height"` // ft
}

type FloorPlan struct {
	Orientation    string           `yaml:"orientation" json:"orientation"`
	WallLengths    map[string]Value `yaml:"wall_lengths" json:"wall_lengths"` // ft, keyed by orientation
	WallHeight     Value            `yaml:"wall_height" json:"wall_height"`   // ft
	Floors         Value            `yaml:"floors" json:"floors"`
	SidesConnected Value            `yaml:"sides_connected" json:"sides_connected"`
	Windows        []Opening        `yaml:"windows" json:"windows"`
	Doors          []Opening        `yaml:"doors" json:"doors"`
}

// Layer names a catalogue material and its thickness in inches.
type Layer struct {
	Material  string `yaml:"material" json:"material"`
	Thickness Value  `yaml:"thickness" json:"thickness"`
}

// Assembly is a roof or wall build-up, outer to inner.
type Assembly struct {
	Outer      Layer `yaml:"outer" json:"outer"`
	Core       Layer `yaml:"core" json:"core"`
	Insulation Layer `yaml:"insulation" json:"insulation"`
	Inner      Layer `yaml:"inner" json:"inner"`
}

type Surface struct {
	Hi Value `yaml:"hi" json:"hi"`
	Ho Value `yaml:"ho" json:"ho"`
}

type Envelope struct {
	Roof    Assembly `yaml:"roof" json:"roof"`
	Wall    Assembly `yaml:"wall" json:"wall"`
	Slab    string   `yaml:"slab" json:"slab"`
	Window  string   `yaml:"window" json:"window"`
	Frame   string   `yaml:"frame" json:"frame"`
	Shading string   `yaml:"shading" json:"shading"`
	Door    Layer    `yaml:"door" json:"door"`
	Surface *Surface `yaml:"surface,omitempty" json:"surface,omitempty"`
}

type Ventilation struct {
	Mode           string `yaml:"mode" json:"mode"`
	Construction   string `yaml:"construction" json:"construction"`
	Lobby          string `yaml:"lobby" json:"lobby"`
	DraughtProofed Value  `yaml:"draught_proofed" json:"draught_proofed"` // %
	Fans           Value  `yaml:"fans" json:"fans"`
}

type Fixture struct {
	Name        string `yaml:"name" json:"name"`
	Wattage     Value  `yaml:"wattage" json:"wattage"`
	Quantity    Value  `yaml:"quantity" json:"quantity"`
	HoursPerDay Value  `yaml:"hours_per_day" json:"hours_per_day"`
	DaysPerYear Value  `yaml:"days_per_year" json:"days_per_year"`
}

// Appliance usage is hours plus minutes per day.
type Appliance struct {
	Kind        string `yaml:"kind" json:"kind"`
	Quantity    Value  `yaml:"quantity" json:"quantity"`
	Wattage     Value  `yaml:"wattage" json:"wattage"`
	Hours       Value  `yaml:"hours" json:"hours"`
	Minutes     Value  `yaml:"minutes" json:"minutes"`
	DaysPerYear Value  `yaml:"days_per_year" json:"days_per_year"`
	Rating      string `yaml:"rating" json:"rating"` // refrigerators only
}

/*
File is one building case.

Notes

	CoolingHours and HeatingHours list hour indices ("0"-"23"), slot labels
	("7pm - 8pm") or "all". An omitted or empty list selects no hour, so
	nothing is heated or cooled.
*/
type File struct {
	Case         string      `yaml:"case" json:"case"`
	City         string      `yaml:"city" json:"city"`
	FloorPlan    FloorPlan   `yaml:"floor_plan" json:"floor_plan"`
	Envelope     Envelope    `yaml:"envelope" json:"envelope"`
	Ventilation  Ventilation `yaml:"ventilation" json:"ventilation"`
	Occupants    Value       `yaml:"occupants" json:"occupants"`
	Lighting     []Fixture   `yaml:"lighting" json:"lighting"`
	Appliances   []Appliance `yaml:"appliances" json:"appliances"`
	CoolingHours []string    `yaml:"cooling_hours" json:"cooling_hours"`
	HeatingHours []string    `yaml:"heating_hours" json:"heating_hours"`
	Tariff       Value       `yaml:"tariff" json:"tariff"` // currency/kWh
}

// Pair is a base and a proposed case evaluated together.
type Pair struct {
	Base     File `yaml:"base" json:"base"`
	Proposed File `yaml:"proposed" json:"proposed"`
}

// Parse decodes a YAML case. JSON input is accepted as well.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}
	return f, nil
}

// Load reads a case from a .yaml, .yml or .json file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read case: %w", err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return Parse(data)
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("parse json: %w", err)
		}
		return f, nil
	default:
		return File{}, fmt.Errorf("unsupported case extension %q", ext)
	}
}
