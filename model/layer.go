package model

// Layer identifies one of the three stacked color planes
type Layer int

const (
	Red Layer = iota
	Green
	Blue

	// NumLayers is the fixed number of color planes in a grid
	NumLayers = 3
)

// Layers lists every layer in cyclic order red -> green -> blue
var Layers = [NumLayers]Layer{Red, Green, Blue}

// Before returns the next layer in cyclic order, the one that parasitizes l
func (l Layer) Before() Layer {
	return (l + 1) % NumLayers
}

// Behind returns the previous layer in cyclic order, the one that feeds l
func (l Layer) Behind() Layer {
	return (l + NumLayers - 1) % NumLayers
}

// Valid reports whether l is one of the three color planes
func (l Layer) Valid() bool {
	return l >= Red && l <= Blue
}

func (l Layer) String() string {
	switch l {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}
