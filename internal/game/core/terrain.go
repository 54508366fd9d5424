package core

// TerrainClass is the static ground classification of a cell.
type TerrainClass int

const (
	Water TerrainClass = iota
	Sand
	Soil
	Forest
)

func (t TerrainClass) String() string {
	switch t {
	case Water:
		return "water"
	case Sand:
		return "sand"
	case Soil:
		return "soil"
	case Forest:
		return "forest"
	default:
		return "unknown"
	}
}

// Thresholds are the height cut-offs derived from the grid's height
// distribution. A height equal to a threshold falls to the lower class.
type Thresholds struct {
	Sand   float64
	Soil   float64
	Forest float64
}

// Classify maps a height to its terrain class.
func (th Thresholds) Classify(height float64) TerrainClass {
	switch {
	case height > th.Forest:
		return Forest
	case height > th.Soil:
		return Soil
	case height > th.Sand:
		return Sand
	default:
		return Water
	}
}
