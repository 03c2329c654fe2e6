// Package refdata holds the reference tables of the engine: construction
// materials, slab, window, frame and shading catalogues, and the climate of
// each supported city.
package refdata

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"

	"github.com/satoh-er/eui_calc_go/energycalc"
)

// Version identifies the embedded tables. Bump it whenever a CSV changes.
const Version = "2024.1"

//go:embed data/*.csv data/weather/*.csv
var files embed.FS

var ErrInvalidWeather = errors.New("invalid weather data")

// Assembly layer slots
const (
	LayerOuter      = "outer"
	LayerCore       = "core"
	LayerInsulation = "insulation"
	LayerInner      = "inner"
	LayerDoor       = "door"
)

type materialRow struct {
	Assembly string  `csv:"assembly"`
	Layer    string  `csv:"layer"`
	Name     string  `csv:"name"`
	K        float64 `csv:"k"`
	SH       float64 `csv:"sh"`
	D        float64 `csv:"d"`
}

type slabRow struct {
	Name   string  `csv:"name"`
	UValue float64 `csv:"u_value"`
}

type windowRow struct {
	Name   string  `csv:"name"`
	UValue float64 `csv:"u_value"`
	SHGC   float64 `csv:"shgc"`
}

type frameRow struct {
	Name        string  `csv:"name"`
	FrameFactor float64 `csv:"frame_factor"`
}

type shadingRow struct {
	Name   string  `csv:"name"`
	Winter float64 `csv:"winter"`
	Summer float64 `csv:"summer"`
}

type cityRow struct {
	Name     string  `csv:"name"`
	Latitude float64 `csv:"latitude"`
	Irr1     float64 `csv:"irr_1"`
	Irr2     float64 `csv:"irr_2"`
	Irr3     float64 `csv:"irr_3"`
	Irr4     float64 `csv:"irr_4"`
	Irr5     float64 `csv:"irr_5"`
	Irr6     float64 `csv:"irr_6"`
	Irr7     float64 `csv:"irr_7"`
	Irr8     float64 `csv:"irr_8"`
	Irr9     float64 `csv:"irr_9"`
	Irr10    float64 `csv:"irr_10"`
	Irr11    float64 `csv:"irr_11"`
	Irr12    float64 `csv:"irr_12"`
	Wind1    float64 `csv:"wind_1"`
	Wind2    float64 `csv:"wind_2"`
	Wind3    float64 `csv:"wind_3"`
	Wind4    float64 `csv:"wind_4"`
	Wind5    float64 `csv:"wind_5"`
	Wind6    float64 `csv:"wind_6"`
	Wind7    float64 `csv:"wind_7"`
	Wind8    float64 `csv:"wind_8"`
	Wind9    float64 `csv:"wind_9"`
	Wind10   float64 `csv:"wind_10"`
	Wind11   float64 `csv:"wind_11"`
	Wind12   float64 `csv:"wind_12"`
}

func (r cityRow) irradiance() energycalc.Monthly {
	return energycalc.Monthly{r.Irr1, r.Irr2, r.Irr3, r.Irr4, r.Irr5, r.Irr6, r.Irr7, r.Irr8, r.Irr9, r.Irr10, r.Irr11, r.Irr12}
}

func (r cityRow) wind() energycalc.Monthly {
	return energycalc.Monthly{r.Wind1, r.Wind2, r.Wind3, r.Wind4, r.Wind5, r.Wind6, r.Wind7, r.Wind8, r.Wind9, r.Wind10, r.Wind11, r.Wind12}
}

//---------------------------------------------------------------------------------------------------//

// MaterialEntry is a material together with the assembly slot it is offered for.
type MaterialEntry struct {
	Assembly string `json:"assembly"`
	Layer    string `json:"layer"`
	energycalc.Material
}

// City is the listing form of a city.
type City struct {
	Name        string             `json:"name"`
	LatitudeDeg float64            `json:"latitude"`
	Irradiance  energycalc.Monthly `json:"irradiance"`
	Wind        energycalc.Monthly `json:"wind"`
}

// Catalogue is every selectable construction product.
type Catalogue struct {
	Version   string                    `json:"version"`
	Materials []MaterialEntry           `json:"materials"`
	Slabs     []energycalc.SlabType     `json:"slabs"`
	Windows   []energycalc.WindowType   `json:"windows"`
	Frames    []energycalc.FrameType    `json:"frames"`
	Shading   []energycalc.ShadingCover `json:"shading"`
}

// Tables is the loaded reference data. It is read-only after Load and safe
// for concurrent use.
type Tables struct {
	catalogue Catalogue
	materials map[string]energycalc.Material
	slabs     map[string]energycalc.SlabType
	windows   map[string]energycalc.WindowType
	frames    map[string]energycalc.FrameType
	shading   map[string]energycalc.ShadingCover
	cities    map[string]City
	weather   map[string][]energycalc.WeatherRecord
}

func key(parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "/")
}

func readCSV[T any](name string) ([]T, error) {
	b, err := files.ReadFile("data/" + name)
	if err != nil {
		return nil, err
	}
	var rows []T
	if err := gocsv.UnmarshalBytes(b, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rows, nil
}

/*
Load reads the embedded tables.

Returns

	the tables; an error when a CSV is malformed or a city has no weather series
*/
func Load() (*Tables, error) {
	t := &Tables{
		catalogue: Catalogue{Version: Version},
		materials: map[string]energycalc.Material{},
		slabs:     map[string]energycalc.SlabType{},
		windows:   map[string]energycalc.WindowType{},
		frames:    map[string]energycalc.FrameType{},
		shading:   map[string]energycalc.ShadingCover{},
		cities:    map[string]City{},
	}

	materials, err := readCSV[materialRow]("materials.csv")
	if err != nil {
		return nil, err
	}
	for _, r := range materials {
		m := energycalc.Material{Name: strings.TrimSpace(r.Name), K: r.K, SH: r.SH, D: r.D}
		t.materials[key(r.Assembly, r.Layer, r.Name)] = m
		t.catalogue.Materials = append(t.catalogue.Materials, MaterialEntry{
			Assembly: strings.TrimSpace(r.Assembly),
			Layer:    strings.TrimSpace(r.Layer),
			Material: m,
		})
	}

	slabs, err := readCSV[slabRow]("slabs.csv")
	if err != nil {
		return nil, err
	}
	for _, r := range slabs {
		s := energycalc.SlabType{Name: strings.TrimSpace(r.Name), UValue: r.UValue}
		t.slabs[key(r.Name)] = s
		t.catalogue.Slabs = append(t.catalogue.Slabs, s)
	}

	windows, err := readCSV[windowRow]("windows.csv")
	if err != nil {
		return nil, err
	}
	for _, r := range windows {
		w := energycalc.WindowType{Name: strings.TrimSpace(r.Name), UValue: r.UValue, SHGC: r.SHGC}
		t.windows[key(r.Name)] = w
		t.catalogue.Windows = append(t.catalogue.Windows, w)
	}

	frames, err := readCSV[frameRow]("frames.csv")
	if err != nil {
		return nil, err
	}
	for _, r := range frames {
		f := energycalc.FrameType{Name: strings.TrimSpace(r.Name), FrameFactor: r.FrameFactor}
		t.frames[key(r.Name)] = f
		t.catalogue.Frames = append(t.catalogue.Frames, f)
	}

	shading, err := readCSV[shadingRow]("shading.csv")
	if err != nil {
		return nil, err
	}
	for _, r := range shading {
		s := energycalc.ShadingCover{Name: strings.TrimSpace(r.Name), Winter: r.Winter, Summer: r.Summer}
		t.shading[key(r.Name)] = s
		t.catalogue.Shading = append(t.catalogue.Shading, s)
	}

	cities, err := readCSV[cityRow]("cities.csv")
	if err != nil {
		return nil, err
	}
	for _, r := range cities {
		t.cities[key(r.Name)] = City{
			Name:        strings.TrimSpace(r.Name),
			LatitudeDeg: r.Latitude,
			Irradiance:  r.irradiance(),
			Wind:        r.wind(),
		}
	}

	if t.weather, err = loadWeatherFS(files, "data/weather"); err != nil {
		return nil, err
	}
	for _, c := range t.cities {
		if _, ok := t.weather[key(c.Name)]; !ok {
			return nil, fmt.Errorf("%s: no hourly series: %w", c.Name, ErrInvalidWeather)
		}
	}
	return t, nil
}

var loadDefault = sync.OnceValues(Load)

// Default returns the embedded tables, loaded on first use.
func Default() (*Tables, error) {
	return loadDefault()
}

// WithWeather returns a copy whose hourly series are replaced by the given
// ones, keyed by city name. Cities absent from weather keep their series.
func (t *Tables) WithWeather(weather map[string][]energycalc.WeatherRecord) *Tables {
	cp := *t
	cp.weather = make(map[string][]energycalc.WeatherRecord, len(t.weather))
	for k, v := range t.weather {
		cp.weather[k] = v
	}
	for name, v := range weather {
		cp.weather[key(name)] = v
	}
	return &cp
}

//---------------------------------------------------------------------------------------------------//

// Material looks up a material offered for one layer slot of an assembly
// (roof, wall or door). Names are matched ignoring case and surrounding blanks.
func (t *Tables) Material(assembly, layer, name string) (energycalc.Material, error) {
	m, ok := t.materials[key(assembly, layer, name)]
	if !ok {
		return energycalc.Material{}, fmt.Errorf("%s %s %q: %w", assembly, layer, name, energycalc.ErrUnknownMaterial)
	}
	return m, nil
}

func (t *Tables) Slab(name string) (energycalc.SlabType, error) {
	s, ok := t.slabs[key(name)]
	if !ok {
		return energycalc.SlabType{}, fmt.Errorf("slab %q: %w", name, energycalc.ErrUnknownMaterial)
	}
	return s, nil
}

func (t *Tables) Window(name string) (energycalc.WindowType, error) {
	w, ok := t.windows[key(name)]
	if !ok {
		return energycalc.WindowType{}, fmt.Errorf("window %q: %w", name, energycalc.ErrUnknownMaterial)
	}
	return w, nil
}

func (t *Tables) Frame(name string) (energycalc.FrameType, error) {
	f, ok := t.frames[key(name)]
	if !ok {
		return energycalc.FrameType{}, fmt.Errorf("frame %q: %w", name, energycalc.ErrUnknownMaterial)
	}
	return f, nil
}

func (t *Tables) Shading(name string) (energycalc.ShadingCover, error) {
	s, ok := t.shading[key(name)]
	if !ok {
		return energycalc.ShadingCover{}, fmt.Errorf("shading %q: %w", name, energycalc.ErrUnknownMaterial)
	}
	return s, nil
}

// Catalogue returns every selectable product in file order.
func (t *Tables) Catalogue() Catalogue {
	return t.catalogue
}

// Cities returns the cities sorted by name.
func (t *Tables) Cities() []City {
	out := make([]City, 0, len(t.cities))
	for _, c := range t.cities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// City implements energycalc.Climate.
func (t *Tables) City(name string) (energycalc.CityClimate, error) {
	c, ok := t.cities[key(name)]
	if !ok {
		return energycalc.CityClimate{}, fmt.Errorf("%q: %w", name, energycalc.ErrUnknownCity)
	}
	return energycalc.CityClimate{
		Name:        c.Name,
		LatitudeDeg: c.LatitudeDeg,
		Irradiance:  c.Irradiance,
		Wind:        c.Wind,
		Hourly:      t.weather[key(c.Name)],
	}, nil
}
