package energycalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"   ", 0, false},
		{"12.5", 12.5, false},
		{" -3 ", -3, false},
		{"1e3", 1000, false},
		{"abc", 0, true},
		{"12ft", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNumeric(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOptionalAndInt(t *testing.T) {
	v, ok, err := ParseOptional("")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0.0, v)

	v, ok, err = ParseOptional("0")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)

	_, _, err = ParseOptional("x")
	assert.ErrorIs(t, err, ErrInvalidNumber)

	n, err := ParseInt("3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = ParseInt("")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = ParseInt("2.5")
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 2.0548, Round(2.054843, 4))
	assert.Equal(t, 0.487, Round(0.486655, 3))
	assert.Equal(t, 3.0, Round(2.5, 0))
}

func TestParseOrientation(t *testing.T) {
	for in, want := range map[string]Orientation{
		"North":      North,
		"north-east": NorthEast,
		"NE":         NorthEast,
		"south_west": SouthWest,
		"northwest":  NorthWest,
		" e ":        East,
	} {
		got, err := ParseOrientation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseOrientation("up")
	assert.ErrorIs(t, err, ErrInvalidOrientation)

	assert.True(t, SouthEast.IsDiagonal())
	assert.False(t, South.IsDiagonal())
	assert.Len(t, Orientations, 8)
}

func TestMonthTables(t *testing.T) {
	total := 0
	for _, m := range Months() {
		total += DaysInMonth(m)
	}
	assert.Equal(t, 365, total)

	winter := 0
	for _, m := range Months() {
		if IsWinterMonth(m) {
			winter++
		}
	}
	assert.Equal(t, 6, winter)
	assert.True(t, IsWinterMonth(time.December))
	assert.False(t, IsWinterMonth(time.June))

	assert.Equal(t, 2.17486, MonthExponent(time.January))
	assert.Equal(t, 2.17111, MonthExponent(time.May))
	assert.Equal(t, 23.1, SolarDeclination(time.June))

	for _, o := range Orientations {
		_, ok := OrientationK(o)
		assert.True(t, ok, string(o))
	}
}

func TestParamErrorFormatting(t *testing.T) {
	err := paramError("roof", "layers[0]", ErrInvalidParameter)
	assert.Equal(t, "roof.layers[0]: invalid parameter", err.Error())
	assert.ErrorIs(t, err, ErrInvalidParameter)

	assert.Nil(t, paramError("roof", "x", nil))
	assert.Same(t, err, paramError("wall", "y", err))
	assert.Equal(t, "city: unknown city", (&ParamError{Element: "city", Err: ErrUnknownCity}).Error())
}
