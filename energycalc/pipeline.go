package energycalc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/satoh-er/eui_calc_go/internal/cache"
)

// Case tags which design a parameter set describes.
type Case string

const (
	CaseBase     Case = "base"
	CaseProposed Case = "proposed"
)

// CityClimate is the climate data of one city.
type CityClimate struct {
	Name        string
	LatitudeDeg float64         // degree
	Irradiance  Monthly         // W/m2
	Wind        Monthly         // m/s
	Hourly      []WeatherRecord // annual outdoor temperature series
}

// Climate looks up the climate of a city.
type Climate interface {
	City(name string) (CityClimate, error)
}

// Params is the complete input of one evaluation.
type Params struct {
	Case         Case              `json:"case"`
	City         string            `json:"city"`
	FloorPlan    FloorPlanInput    `json:"floor_plan"`
	Envelope     EnvelopeInput     `json:"envelope"`
	Ventilation  VentilationInput  `json:"ventilation"`
	Occupants    float64           `json:"occupants"`
	Lighting     []LightingFixture `json:"lighting"`
	Appliances   []Appliance       `json:"appliances"`
	CoolingHours HourSet           `json:"cooling_hours"`
	HeatingHours HourSet           `json:"heating_hours"`
	Tariff       float64           `json:"tariff"` // currency/kWh
}

// Result is the output of every model for one case.
type Result struct {
	ID            string              `json:"id,omitempty"`
	Case          Case                `json:"case"`
	City          string              `json:"city"`
	TablesVersion string              `json:"tables_version"`
	Geometry      FloorPlan           `json:"geometry"`
	Fabric        FabricHeatLoss      `json:"fabric"`
	FabricTotal   float64             `json:"fabric_total"` // W/K
	Ventilation   VentilationSchedule `json:"ventilation"`
	Lighting      LightingLoad        `json:"lighting"`
	Gains         GainsSchedule       `json:"gains"`
	HLP           HLPSchedule         `json:"hlp"`
	Energy        EnergyResult        `json:"energy"`
	Report        Report              `json:"report"`
}

/*
Evaluate runs the whole chain for one parameter set.

Args

	p case parameters
	climate climate lookup

Returns

	the result of every model; the first validation error otherwise

Notes

	geometry -> fabric -> ventilation, gains -> HLP -> hourly energy -> EUI.
	Evaluate has no state; the same input always gives the same result.
*/
func Evaluate(p Params, climate Climate) (*Result, error) {
	if climate == nil {
		return nil, fmt.Errorf("climate: %w", ErrInvalidParameter)
	}
	cc, err := climate.City(p.City)
	if err != nil {
		return nil, paramError("city", "name", err)
	}
	if p.Occupants < 0 {
		return nil, paramError("occupancy", "occupants",
			fmt.Errorf("%v occupants: %w", p.Occupants, ErrOutOfRange))
	}
	if p.Tariff < 0 {
		return nil, paramError("bill", "tariff", fmt.Errorf("%v: %w", p.Tariff, ErrOutOfRange))
	}

	fp, err := ComputeGeometry(p.FloorPlan)
	if err != nil {
		return nil, err
	}
	fabric, err := ComputeFabric(p.Envelope, fp)
	if err != nil {
		return nil, err
	}
	vent, err := ComputeVentilation(p.Ventilation, fp.Floors, fp.SidesConnected, fp.DwellingVolumeM3(), cc.Wind)
	if err != nil {
		return nil, err
	}
	lighting, err := ComputeLighting(p.Lighting)
	if err != nil {
		return nil, err
	}
	appliance, err := ApplianceEnergy(p.Appliances)
	if err != nil {
		return nil, err
	}

	gains := ComputeGains(SolarInput{
		WindowAreaM2: fp.WindowAreaM2By(),
		Window:       p.Envelope.Window,
		Frame:        p.Envelope.Frame,
		Shading:      p.Envelope.Shading,
		LatitudeDeg:  cc.LatitudeDeg,
		Irradiance:   cc.Irradiance,
	}, lighting.TotalWattage, p.Occupants)

	hlp := ComputeHLP(HLPInput{
		Fabric:           fabric,
		FloorAreaM2:      fp.FloorAreaM2(),
		NetWallAreaM2:    fp.NetWallAreaM2(),
		TotalAreaM2:      fp.TotalAreaM2(),
		DwellingVolumeM3: fp.DwellingVolumeM3(),
		InfiltrationRate: vent.Rate,
	})

	energy := ComputeHourlyEnergy(HourlyInput{
		Records:                 cc.Hourly,
		HeatTransferCoefficient: hlp.HeatTransferCoefficient,
		TotalGains:              gains.Total,
		CoolingHours:            p.CoolingHours,
		HeatingHours:            p.HeatingHours,
	}).WithEUI(appliance, lighting.AnnualEnergy, fp.FloorAreaM2(), fp.Floors)

	return &Result{
		Case:          p.Case,
		City:          cc.Name,
		TablesVersion: TablesVersion,
		Geometry:      fp,
		Fabric:        fabric,
		FabricTotal:   fabric.Total(),
		Ventilation:   vent,
		Lighting:      lighting,
		Gains:         gains,
		HLP:           hlp,
		Energy:        energy,
		Report: Report{
			Rating:    RateEUI(energy.EUI),
			Emissions: ComputeEmissions(energy),
			Bill:      ComputeBill(energy, p.Tariff),
		},
	}, nil
}

//---------------------------------------------------------------------------------------------------//

// Observer receives evaluation and cache events.
type Observer interface {
	cache.Observer
	ObserveEvaluation(c Case, d time.Duration, err error)
}

// EngineOptions configures an Engine. Zero values give a 10 minute TTL,
// 256 cached results, slog.Default and no observer.
type EngineOptions struct {
	Logger        *slog.Logger
	Observer      Observer
	CacheTTL      time.Duration
	CacheCapacity int
}

// Engine memoizes Evaluate by the hash of its parameters. It is safe for
// concurrent use. Returned results are shared between callers and must not
// be modified.
type Engine struct {
	climate Climate
	cache   *cache.Cache[*Result]
	logger  *slog.Logger
	obs     Observer
}

func NewEngine(climate Climate, opts EngineOptions) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	if opts.CacheCapacity <= 0 {
		opts.CacheCapacity = 256
	}
	var cacheObs cache.Observer
	if opts.Observer != nil {
		cacheObs = opts.Observer
	}
	return &Engine{
		climate: climate,
		cache:   cache.New[*Result](opts.CacheTTL, opts.CacheCapacity, cacheObs),
		logger:  opts.Logger,
		obs:     opts.Observer,
	}
}

// Evaluate returns the cached result for p or computes it.
func (e *Engine) Evaluate(p Params) (*Result, error) {
	key, err := cache.Key("evaluate", p)
	if err != nil {
		return nil, paramError("params", "", fmt.Errorf("%v: %w", err, ErrInvalidNumber))
	}
	if r, ok := e.cache.Get(key); ok {
		e.logger.Debug("evaluation cache hit", "case", p.Case, "id", r.ID)
		return r, nil
	}

	start := time.Now()
	r, err := Evaluate(p, e.climate)
	elapsed := time.Since(start)
	if e.obs != nil {
		e.obs.ObserveEvaluation(p.Case, elapsed, err)
	}
	if err != nil {
		e.logger.Debug("evaluation failed", "case", p.Case, "error", err)
		return nil, err
	}
	r.ID = uuid.NewString()
	e.cache.Set(key, r)
	e.logger.Debug("evaluation done", "case", p.Case, "id", r.ID, "city", r.City,
		"eui", r.Energy.EUI, "elapsed", elapsed)
	return r, nil
}

// Compare evaluates the base and the proposed parameter sets concurrently.
// The two sets share nothing; each runs its own pipeline.
func (e *Engine) Compare(ctx context.Context, base, proposed Params) (*Comparison, error) {
	base.Case = CaseBase
	proposed.Case = CaseProposed

	var br, pr *Result
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		br, err = e.Evaluate(base)
		if err != nil {
			return fmt.Errorf("%s: %w", CaseBase, err)
		}
		return ctx.Err()
	})
	g.Go(func() error {
		var err error
		pr, err = e.Evaluate(proposed)
		if err != nil {
			return fmt.Errorf("%s: %w", CaseProposed, err)
		}
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	c := Compare(br, pr)
	return &c, nil
}
