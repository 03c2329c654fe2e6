package energycalc

import (
	"bytes"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Construction type of the external walls
type ConstructionType int

// Construction type of the external walls
const (
	ConstructionMasonry ConstructionType = iota + 1 // masonry
	ConstructionSteel                               // steel frame
	ConstructionTimber                              // timber frame
)

func (c ConstructionType) String() string {
	switch c {
	case ConstructionMasonry:
		return "masonry"
	case ConstructionSteel:
		return "steel"
	case ConstructionTimber:
		return "timber"
	default:
		return ""
	}
}

func ConstructionTypeFromString(s string) (ConstructionType, error) {
	c, ok := map[string]ConstructionType{
		"masonry": ConstructionMasonry,
		"steel":   ConstructionSteel,
		"timber":  ConstructionTimber,
	}[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidConstructionType)
	}
	return c, nil
}

func (c ConstructionType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ConstructionType) UnmarshalText(b []byte) error {
	if len(bytes.TrimSpace(b)) == 0 {
		*c = 0
		return nil
	}
	parsed, err := ConstructionTypeFromString(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

//---------------------------------------------------------------------------------------------------//

// Entrance lobby
type LobbyType int

// Entrance lobby
const (
	LobbyDraught   LobbyType = iota + 1 // draught lobby present
	LobbyNoDraught                      // no draught lobby
)

func (l LobbyType) String() string {
	switch l {
	case LobbyDraught:
		return "draught"
	case LobbyNoDraught:
		return "no-draught"
	default:
		return ""
	}
}

func LobbyTypeFromString(s string) (LobbyType, error) {
	l, ok := map[string]LobbyType{
		"draught":    LobbyDraught,
		"no-draught": LobbyNoDraught,
		"no draught": LobbyNoDraught,
	}[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidLobbyType)
	}
	return l, nil
}

func (l LobbyType) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *LobbyType) UnmarshalText(b []byte) error {
	if len(bytes.TrimSpace(b)) == 0 {
		*l = 0
		return nil
	}
	parsed, err := LobbyTypeFromString(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

//---------------------------------------------------------------------------------------------------//

// Ventilation mode
type VentilationMode int

// Ventilation mode
const (
	VentilationNatural    VentilationMode = iota + 1 // natural ventilation
	VentilationMechanical                            // intermittent extract fans
)

func (v VentilationMode) String() string {
	switch v {
	case VentilationNatural:
		return "Natural Ventilation"
	case VentilationMechanical:
		return "Mechanical Ventilation"
	default:
		return ""
	}
}

func VentilationModeFromString(s string) (VentilationMode, error) {
	v, ok := map[string]VentilationMode{
		"natural":                VentilationNatural,
		"natural ventilation":    VentilationNatural,
		"mechanical":             VentilationMechanical,
		"mechanical ventilation": VentilationMechanical,
	}[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidVentilationType)
	}
	return v, nil
}

func (v VentilationMode) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *VentilationMode) UnmarshalText(b []byte) error {
	parsed, err := VentilationModeFromString(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

//---------------------------------------------------------------------------------------------------//

// Air change rate of a naturally ventilated dwelling, 1/h
const naturalACH = 0.55

// Extract rate of one intermittent fan, m3/h
const fanFlowRate = 10.0

// Minimum number of intermittent fans in mechanical mode
const MinFans = 2

// Infiltration added per storey above the first, 1/h
const additionalFloorInfiltration = 0.1

// Mechanical mode terminal term (0.5 x 0.5), 1/h
const mechanicalFinalTerm = 0.5 * 0.5

// ConstructionValue returns the structural infiltration of the wall construction, 1/h.
// An unset construction contributes nothing.
func ConstructionValue(c ConstructionType) (float64, error) {
	switch c {
	case 0:
		return 0, nil
	case ConstructionMasonry:
		return 0.35, nil
	case ConstructionSteel, ConstructionTimber:
		return 0.25, nil
	default:
		return 0, fmt.Errorf("construction type %d: %w", int(c), ErrInvalidConstructionType)
	}
}

// LobbyValue returns the infiltration added by the entrance lobby, 1/h.
// An unset lobby contributes nothing.
func LobbyValue(l LobbyType) (float64, error) {
	switch l {
	case 0, LobbyDraught:
		return 0, nil
	case LobbyNoDraught:
		return 0.05, nil
	default:
		return 0, fmt.Errorf("lobby type %d: %w", int(l), ErrInvalidLobbyType)
	}
}

/*
WindowInfiltration returns the infiltration through windows and doors.

Args

	pctDraughtProofed share of openings that are draught-proofed, %

Returns

	infiltration, 1/h

Notes

	0% draught-proofing contributes nothing at all, not the 0.25 of the formula.
*/
func WindowInfiltration(pctDraughtProofed float64) (float64, error) {
	if pctDraughtProofed < 0 || pctDraughtProofed > 100 {
		return 0, fmt.Errorf("draught-proofed %v%% not in [0, 100]: %w", pctDraughtProofed, ErrOutOfRange)
	}
	if pctDraughtProofed == 0 {
		return 0, nil
	}
	return 0.25 - 0.2*pctDraughtProofed/100, nil
}

// ShelterFactor returns 1 - 0.075 x sidesConnected for sidesConnected in [0, 4].
func ShelterFactor(sidesConnected int) (float64, error) {
	if sidesConnected < 0 || sidesConnected > 4 {
		return 0, fmt.Errorf("sides connected %d not in [0, 4]: %w", sidesConnected, ErrOutOfRange)
	}
	return 1 - 0.075*float64(sidesConnected), nil
}

// FanFlow returns the extract flow of the fans, m3/h.
func FanFlow(fans int) (float64, error) {
	if fans < MinFans {
		return 0, fmt.Errorf("%d fans, at least %d: %w", fans, MinFans, ErrOutOfRange)
	}
	return float64(fans) * fanFlowRate, nil
}

// ACH returns flow / dwelling volume.
func ACH(flowM3PerHour, dwellingVolumeM3 float64) (float64, error) {
	if dwellingVolumeM3 == 0 {
		return 0, fmt.Errorf("dwelling volume is zero: %w", ErrZeroDivision)
	}
	return flowM3PerHour / dwellingVolumeM3, nil
}

// AdditionalInfiltration returns (floors - 1) x 0.1.
func AdditionalInfiltration(floors int) float64 {
	return float64(floors-1) * additionalFloorInfiltration
}

// WindFactor returns wind speed / 4 for each month.
func WindFactor(wind Monthly) Monthly {
	var wf Monthly
	floats.ScaleTo(wf[:], 0.25, wind[:])
	return wf
}

// AdjustedInfiltration returns windFactor[m] x rate x shelter for each month.
func AdjustedInfiltration(windFactor Monthly, rate, shelter float64) Monthly {
	var adj Monthly
	floats.ScaleTo(adj[:], rate*shelter, windFactor[:])
	return adj
}

/*
FinalInfiltration applies the terminal transform of the ventilation mode.

	mechanical : adjusted + 0.25
	natural    : 0.5 + adjusted^2 x 0.5
*/
func FinalInfiltration(adjusted Monthly, mode VentilationMode) (Monthly, error) {
	final := adjusted
	switch mode {
	case VentilationMechanical:
		floats.AddConst(mechanicalFinalTerm, final[:])
	case VentilationNatural:
		for i, v := range adjusted {
			final[i] = 0.5 + v*v*0.5
		}
	default:
		return Monthly{}, fmt.Errorf("ventilation mode %d: %w", int(mode), ErrInvalidVentilationType)
	}
	return final, nil
}

// VentilationInput is the ventilation configuration of a case.
type VentilationInput struct {
	Mode              VentilationMode  `json:"mode"`
	Construction      ConstructionType `json:"construction"`
	Lobby             LobbyType        `json:"lobby"`
	PctDraughtProofed float64          `json:"pct_draught_proofed"`
	Fans              int              `json:"fans"`
}

// VentilationSchedule is the result of the ventilation model.
type VentilationSchedule struct {
	Mode                   VentilationMode `json:"mode"`
	ConstructionValue      float64         `json:"construction_value"`
	LobbyValue             float64         `json:"lobby_value"`
	WindowInfiltration     float64         `json:"window_infiltration"`
	AdditionalInfiltration float64         `json:"additional_infiltration"`
	FlowM3PerHour          float64         `json:"flow_m3_per_hour"`
	ACH                    float64         `json:"ach"`
	InfiltrationRate       float64         `json:"infiltration_rate"`
	ShelterFactor          float64         `json:"shelter_factor"`
	WindFactor             Monthly         `json:"wind_factor"`
	Adjusted               Monthly         `json:"adjusted"`
	Rate                   Monthly         `json:"rate"` // final monthly infiltration rate, 1/h
}

/*
ComputeVentilation computes the monthly infiltration rate.

Args

	in ventilation configuration
	floors number of storeys
	sidesConnected sides attached to neighbouring buildings
	dwellingVolumeM3 dwelling volume, m3
	wind monthly wind speed of the city, m/s

Returns

	ventilation schedule

Notes

	Mechanical mode adds the fan ACH, the additional floor infiltration, the
	construction, window and lobby values. Natural mode uses a fixed ACH of
	0.55 and nothing else. Construction and lobby are validated in both modes;
	left unset they count as zero.
*/
func ComputeVentilation(in VentilationInput, floors, sidesConnected int, dwellingVolumeM3 float64, wind Monthly) (VentilationSchedule, error) {
	const element = "ventilation"

	vs := VentilationSchedule{Mode: in.Mode}

	var err error
	if vs.ConstructionValue, err = ConstructionValue(in.Construction); err != nil {
		return VentilationSchedule{}, paramError(element, "construction", err)
	}
	if vs.LobbyValue, err = LobbyValue(in.Lobby); err != nil {
		return VentilationSchedule{}, paramError(element, "lobby", err)
	}
	if vs.WindowInfiltration, err = WindowInfiltration(in.PctDraughtProofed); err != nil {
		return VentilationSchedule{}, paramError(element, "pct_draught_proofed", err)
	}
	if vs.ShelterFactor, err = ShelterFactor(sidesConnected); err != nil {
		return VentilationSchedule{}, paramError(element, "sides_connected", err)
	}
	vs.AdditionalInfiltration = AdditionalInfiltration(floors)

	switch in.Mode {
	case VentilationMechanical:
		if vs.FlowM3PerHour, err = FanFlow(in.Fans); err != nil {
			return VentilationSchedule{}, paramError(element, "fans", err)
		}
		if vs.ACH, err = ACH(vs.FlowM3PerHour, dwellingVolumeM3); err != nil {
			return VentilationSchedule{}, paramError(element, "dwelling_volume", err)
		}
		vs.InfiltrationRate = vs.ACH + vs.AdditionalInfiltration + vs.ConstructionValue + vs.WindowInfiltration + vs.LobbyValue
	case VentilationNatural:
		vs.ACH = naturalACH
		vs.InfiltrationRate = vs.ACH
	default:
		return VentilationSchedule{}, paramError(element, "mode",
			fmt.Errorf("ventilation mode %d: %w", int(in.Mode), ErrInvalidVentilationType))
	}

	vs.WindFactor = WindFactor(wind)
	vs.Adjusted = AdjustedInfiltration(vs.WindFactor, vs.InfiltrationRate, vs.ShelterFactor)
	if vs.Rate, err = FinalInfiltration(vs.Adjusted, in.Mode); err != nil {
		return VentilationSchedule{}, paramError(element, "mode", err)
	}
	return vs, nil
}
