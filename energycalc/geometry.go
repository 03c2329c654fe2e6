package energycalc

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MaxDoors is the number of doors a floor plan can hold.
const MaxDoors = 4

// Opening is a window or a door. Dimensions are in feet.
type Opening struct {
	Orientation Orientation `json:"orientation"`
	Length      float64     `json:"length"`
	Height      float64     `json:"height"`
}

// Area returns the opening area, ft2.
func (o Opening) Area() float64 {
	return o.Length * o.Height
}

// FloorPlanInput is the user-entered building geometry. Lengths are in feet.
type FloorPlanInput struct {
	Orientation    Orientation             `json:"orientation"`
	WallLengths    map[Orientation]float64 `json:"wall_lengths"`
	WallHeight     float64                 `json:"wall_height"`
	Floors         int                     `json:"floors"`
	SidesConnected int                     `json:"sides_connected"`
	Windows        []Opening               `json:"windows"`
	Doors          []Opening               `json:"doors"`
}

// FloorPlan is the derived geometry. Areas are ft2 and the volume is ft3;
// the *M2 / *M3 helpers convert them for the thermal models.
type FloorPlan struct {
	Orientation    Orientation
	Floors         int
	SidesConnected int
	Windows        []Opening
	Doors          []Opening

	FloorArea      float64 // ft2, equal to the roof area
	WallArea       float64 // ft2, gross
	WindowArea     float64 // ft2
	DoorArea       float64 // ft2
	NetWallArea    float64 // ft2, gross wall minus openings; may be negative
	TotalArea      float64 // ft2, floor + roof + net wall + openings
	DwellingVolume float64 // ft3
}

func (fp FloorPlan) FloorAreaM2() float64      { return SqFtToSqM(fp.FloorArea) }
func (fp FloorPlan) NetWallAreaM2() float64    { return SqFtToSqM(fp.NetWallArea) }
func (fp FloorPlan) WindowAreaM2() float64     { return SqFtToSqM(fp.WindowArea) }
func (fp FloorPlan) DoorAreaM2() float64       { return SqFtToSqM(fp.DoorArea) }
func (fp FloorPlan) TotalAreaM2() float64      { return SqFtToSqM(fp.TotalArea) }
func (fp FloorPlan) DwellingVolumeM3() float64 { return CuFtToCuM(fp.DwellingVolume) }

// WindowAreaM2By returns the window area facing each orientation, m2.
func (fp FloorPlan) WindowAreaM2By() map[Orientation]float64 {
	areas := make(map[Orientation]float64, len(Orientations))
	for _, o := range Orientations {
		areas[o] = 0
	}
	for _, w := range fp.Windows {
		if _, ok := areas[w.Orientation]; ok {
			areas[w.Orientation] += SqFtToSqM(w.Area())
		}
	}
	return areas
}

/*
WallInputs returns the walls whose lengths describe the footprint for a
building orientation.

Args

	orientation building orientation

Returns

	the two wall orientations to be measured; nil for an unknown orientation

Notes

	A cardinal orientation is measured along its own wall and the adjacent
	east or north wall. A diagonal orientation is measured along its own wall
	and the diagonal wall next to it.
*/
func WallInputs(orientation Orientation) []Orientation {
	switch orientation {
	case North:
		return []Orientation{North, East}
	case South:
		return []Orientation{South, East}
	case East:
		return []Orientation{East, North}
	case West:
		return []Orientation{West, North}
	case NorthEast:
		return []Orientation{NorthEast, SouthEast}
	case NorthWest:
		return []Orientation{NorthWest, SouthWest}
	case SouthEast:
		return []Orientation{SouthEast, NorthEast}
	case SouthWest:
		return []Orientation{SouthWest, NorthWest}
	default:
		return nil
	}
}

// FloorArea returns length1 x length2 (ft2) when exactly two walls are given, else 0.
func FloorArea(wallLengths map[Orientation]float64, walls []Orientation) float64 {
	if len(walls) != 2 {
		return 0
	}
	return wallLengths[walls[0]] * wallLengths[walls[1]]
}

// TotalWallArea returns perimeter x height x floors (ft2). Floors below one count as one.
func TotalWallArea(wallLengths map[Orientation]float64, walls []Orientation, wallHeight float64, floors int) float64 {
	if len(walls) != 2 {
		return 0
	}
	perimeter := 2 * (wallLengths[walls[0]] + wallLengths[walls[1]])
	return perimeter * wallHeight * float64(effectiveFloors(floors))
}

// TotalOpeningArea sums the opening areas, ft2.
func TotalOpeningArea(openings []Opening) float64 {
	areas := make([]float64, len(openings))
	for i, o := range openings {
		areas[i] = o.Area()
	}
	return floats.Sum(areas)
}

// NetWallArea is not clamped at zero; callers that need a physical area must guard.
func NetWallArea(totalWallArea, totalWindowArea, totalDoorArea float64) float64 {
	return totalWallArea - totalWindowArea - totalDoorArea
}

// DwellingVolume returns floor area x wall height x floors, ft3.
func DwellingVolume(floorArea, wallHeight float64, floors int) float64 {
	return floorArea * wallHeight * float64(effectiveFloors(floors))
}

// TotalArea is the whole exposed envelope; the roof area equals the floor area.
func TotalArea(floorArea, netWallArea, totalWindowArea, totalDoorArea float64) float64 {
	roofArea := floorArea
	return floorArea + roofArea + netWallArea + totalWindowArea + totalDoorArea
}

// MaxAllowedWindows returns how many windows fit on the unconnected sides.
func MaxAllowedWindows(sidesConnected int) int {
	switch sidesConnected {
	case 1:
		return 3
	case 2:
		return 2
	case 3:
		return 1
	case 4:
		return 0
	default:
		return 4
	}
}

// TruncateWindows keeps the first windows that fit the cap for sidesConnected.
// The input slice is not modified.
func TruncateWindows(windows []Opening, sidesConnected int) []Opening {
	limit := MaxAllowedWindows(sidesConnected)
	if len(windows) < limit {
		limit = len(windows)
	}
	kept := make([]Opening, limit)
	copy(kept, windows[:limit])
	return kept
}

func effectiveFloors(floors int) int {
	if floors < 1 {
		return 1
	}
	return floors
}

// ComputeGeometry derives the floor plan areas and volume. Negative floors fail;
// zero floors (not entered) count as one storey for areas and volume.
func ComputeGeometry(in FloorPlanInput) (FloorPlan, error) {
	if in.SidesConnected < 0 || in.SidesConnected > 4 {
		return FloorPlan{}, paramError("floor_plan", "sides_connected",
			fmt.Errorf("%d not in [0, 4]: %w", in.SidesConnected, ErrOutOfRange))
	}
	if in.Floors < 0 {
		return FloorPlan{}, paramError("floor_plan", "floors",
			fmt.Errorf("%d floors: %w", in.Floors, ErrOutOfRange))
	}
	if len(in.Doors) > MaxDoors {
		return FloorPlan{}, paramError("floor_plan", "doors",
			fmt.Errorf("%d doors, at most %d: %w", len(in.Doors), MaxDoors, ErrOutOfRange))
	}

	walls := WallInputs(in.Orientation)
	windows := TruncateWindows(in.Windows, in.SidesConnected)
	doors := make([]Opening, len(in.Doors))
	copy(doors, in.Doors)

	fp := FloorPlan{
		Orientation:    in.Orientation,
		Floors:         in.Floors,
		SidesConnected: in.SidesConnected,
		Windows:        windows,
		Doors:          doors,
	}
	fp.FloorArea = FloorArea(in.WallLengths, walls)
	fp.WallArea = TotalWallArea(in.WallLengths, walls, in.WallHeight, in.Floors)
	fp.WindowArea = TotalOpeningArea(windows)
	fp.DoorArea = TotalOpeningArea(doors)
	fp.NetWallArea = NetWallArea(fp.WallArea, fp.WindowArea, fp.DoorArea)
	fp.TotalArea = TotalArea(fp.FloorArea, fp.NetWallArea, fp.WindowArea, fp.DoorArea)
	fp.DwellingVolume = DwellingVolume(fp.FloorArea, in.WallHeight, in.Floors)
	return fp, nil
}
