package energycalc

import (
	"fmt"
	"strings"
)

type Orientation string

const (
	North     Orientation = "North"
	NorthEast Orientation = "North-East"
	East      Orientation = "East"
	SouthEast Orientation = "South-East"
	South     Orientation = "South"
	SouthWest Orientation = "South-West"
	West      Orientation = "West"
	NorthWest Orientation = "North-West"
)

// Orientations lists the eight facade orientations in compass order.
var Orientations = []Orientation{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

func (o Orientation) String() string {
	return string(o)
}

// IsDiagonal reports whether the orientation lies between two cardinal points.
func (o Orientation) IsDiagonal() bool {
	switch o {
	case NorthEast, SouthEast, SouthWest, NorthWest:
		return true
	default:
		return false
	}
}

// ParseOrientation accepts the display label ("North-East") as well as
// the short forms "ne", "north_east" and "northeast".
func ParseOrientation(s string) (Orientation, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "n", "north":
		return North, nil
	case "ne", "northeast":
		return NorthEast, nil
	case "e", "east":
		return East, nil
	case "se", "southeast":
		return SouthEast, nil
	case "s", "south":
		return South, nil
	case "sw", "southwest":
		return SouthWest, nil
	case "w", "west":
		return West, nil
	case "nw", "northwest":
		return NorthWest, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrInvalidOrientation)
	}
}
