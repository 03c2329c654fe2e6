package energycalc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flatWind = Monthly{4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4}

func TestConstructionAndLobbyValues(t *testing.T) {
	v, err := ConstructionValue(ConstructionMasonry)
	require.NoError(t, err)
	assert.Equal(t, 0.35, v)

	for _, c := range []ConstructionType{ConstructionSteel, ConstructionTimber} {
		v, err := ConstructionValue(c)
		require.NoError(t, err)
		assert.Equal(t, 0.25, v)
	}
	v, err = ConstructionValue(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
	_, err = ConstructionValue(ConstructionType(42))
	assert.ErrorIs(t, err, ErrInvalidConstructionType)

	_, err = ConstructionTypeFromString("adobe")
	assert.ErrorIs(t, err, ErrInvalidConstructionType)

	v, err = LobbyValue(LobbyDraught)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
	v, err = LobbyValue(LobbyNoDraught)
	require.NoError(t, err)
	assert.Equal(t, 0.05, v)
	v, err = LobbyValue(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
	_, err = LobbyValue(LobbyType(7))
	assert.ErrorIs(t, err, ErrInvalidLobbyType)

	_, err = LobbyTypeFromString("revolving")
	assert.ErrorIs(t, err, ErrInvalidLobbyType)
}

func TestWindowInfiltration(t *testing.T) {
	v, err := WindowInfiltration(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = WindowInfiltration(100)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, v, 1e-12)

	v, err = WindowInfiltration(50)
	require.NoError(t, err)
	assert.InDelta(t, 0.15, v, 1e-12)

	for _, pct := range []float64{-1, 100.5} {
		_, err := WindowInfiltration(pct)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
}

func TestShelterFactor(t *testing.T) {
	for s := 0; s <= 4; s++ {
		v, err := ShelterFactor(s)
		require.NoError(t, err)
		assert.InDelta(t, 1-0.075*float64(s), v, 1e-12)
	}
	for _, s := range []int{-1, 5} {
		_, err := ShelterFactor(s)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
}

func TestFanFlowAndACH(t *testing.T) {
	_, err := FanFlow(1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	flow, err := FanFlow(2)
	require.NoError(t, err)
	assert.Equal(t, 20.0, flow)

	ach, err := ACH(flow, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0.20, ach, 1e-12)

	_, err = ACH(flow, 0)
	assert.ErrorIs(t, err, ErrZeroDivision)
}

func TestFinalInfiltration(t *testing.T) {
	adj := Monthly{0, 1, 2}

	mech, err := FinalInfiltration(adj, VentilationMechanical)
	require.NoError(t, err)
	assert.Equal(t, 0.25, mech[0])
	assert.Equal(t, 1.25, mech[1])
	assert.Equal(t, 2.25, mech[2])

	nat, err := FinalInfiltration(adj, VentilationNatural)
	require.NoError(t, err)
	assert.Equal(t, 0.5, nat[0])
	assert.Equal(t, 1.0, nat[1])
	assert.Equal(t, 2.5, nat[2])

	_, err = FinalInfiltration(adj, 0)
	assert.ErrorIs(t, err, ErrInvalidVentilationType)
	assert.Equal(t, 1.0, adj[1], "input must not be modified")
}

func TestComputeVentilationMechanical(t *testing.T) {
	in := VentilationInput{
		Mode:              VentilationMechanical,
		Construction:      ConstructionMasonry,
		Lobby:             LobbyNoDraught,
		PctDraughtProofed: 100,
		Fans:              2,
	}
	vs, err := ComputeVentilation(in, 1, 0, 100, flatWind)
	require.NoError(t, err)

	assert.Equal(t, 0.35, vs.ConstructionValue)
	assert.InDelta(t, 0.05, vs.WindowInfiltration, 1e-12)
	assert.Equal(t, 0.05, vs.LobbyValue)
	assert.Equal(t, 1.0, vs.ShelterFactor)
	assert.Equal(t, 20.0, vs.FlowM3PerHour)
	assert.InDelta(t, 0.20, vs.ACH, 1e-12)
	assert.InDelta(t, 0.65, vs.InfiltrationRate, 1e-12)
	for m := range vs.Rate {
		assert.InDelta(t, 1.0, vs.WindFactor[m], 1e-12)
		assert.InDelta(t, 0.65, vs.Adjusted[m], 1e-12)
		assert.InDelta(t, 0.90, vs.Rate[m], 1e-12)
	}
}

func TestComputeVentilationNatural(t *testing.T) {
	in := VentilationInput{
		Mode:         VentilationNatural,
		Construction: ConstructionTimber,
		Lobby:        LobbyDraught,
	}
	vs, err := ComputeVentilation(in, 3, 2, 0, flatWind)
	require.NoError(t, err)

	assert.Equal(t, 0.55, vs.ACH)
	assert.Equal(t, 0.55, vs.InfiltrationRate)
	adjusted := 0.55 * 0.85
	assert.InDelta(t, adjusted, vs.Adjusted[0], 1e-12)
	assert.InDelta(t, 0.5+adjusted*adjusted*0.5, vs.Rate[0], 1e-12)
}

func TestComputeVentilationErrors(t *testing.T) {
	base := VentilationInput{
		Mode:         VentilationMechanical,
		Construction: ConstructionMasonry,
		Lobby:        LobbyDraught,
		Fans:         2,
	}
	tests := []struct {
		name   string
		mutate func(*VentilationInput)
		volume float64
		sides  int
		want   error
	}{
		{"one fan", func(in *VentilationInput) { in.Fans = 1 }, 100, 0, ErrOutOfRange},
		{"zero volume", func(in *VentilationInput) {}, 0, 0, ErrZeroDivision},
		{"sides", func(in *VentilationInput) {}, 100, 5, ErrOutOfRange},
		{"construction", func(in *VentilationInput) { in.Construction = 42 }, 100, 0, ErrInvalidConstructionType},
		{"lobby", func(in *VentilationInput) { in.Lobby = 9 }, 100, 0, ErrInvalidLobbyType},
		{"mode", func(in *VentilationInput) { in.Mode = 0 }, 100, 0, ErrInvalidVentilationType},
		{"draught proofing", func(in *VentilationInput) { in.PctDraughtProofed = 120 }, 100, 0, ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			_, err := ComputeVentilation(in, 1, tt.sides, tt.volume, flatWind)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestComputeVentilationUnsetConstructionAndLobby(t *testing.T) {
	t.Run("natural", func(t *testing.T) {
		vs, err := ComputeVentilation(VentilationInput{Mode: VentilationNatural}, 2, 0, 100, flatWind)
		require.NoError(t, err)
		assert.Equal(t, 0.0, vs.ConstructionValue)
		assert.Equal(t, 0.0, vs.LobbyValue)
		assert.Equal(t, 0.55, vs.InfiltrationRate)
	})
	t.Run("mechanical", func(t *testing.T) {
		in := VentilationInput{Mode: VentilationMechanical, Fans: 2}
		vs, err := ComputeVentilation(in, 1, 0, 100, flatWind)
		require.NoError(t, err)
		assert.Equal(t, 0.0, vs.ConstructionValue)
		assert.Equal(t, 0.0, vs.LobbyValue)
		// fan ACH only
		assert.InDelta(t, 0.20, vs.InfiltrationRate, 1e-12)
		assert.InDelta(t, 0.45, vs.Rate[0], 1e-12)
	})
}

func TestVentilationEnumsText(t *testing.T) {
	in := VentilationInput{
		Mode:         VentilationMechanical,
		Construction: ConstructionSteel,
		Lobby:        LobbyNoDraught,
	}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"mode":"Mechanical Ventilation"`)
	assert.Contains(t, string(b), `"lobby":"no-draught"`)

	var out VentilationInput
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)

	var unset VentilationInput
	b, err = json.Marshal(VentilationInput{Mode: VentilationNatural})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &unset))
	assert.Equal(t, ConstructionType(0), unset.Construction)
	assert.Equal(t, LobbyType(0), unset.Lobby)

	m, err := VentilationModeFromString("natural")
	require.NoError(t, err)
	assert.Equal(t, VentilationNatural, m)
}
