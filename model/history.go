package model

const (
	// stagnationDepth is how many recent generations a board is compared against
	stagnationDepth = 3
	// defaultHistorySize keeps enough hashes to spot period 1-3 cycles
	defaultHistorySize = 5
)

// History remembers the hashes of recent generations to detect stagnation
type History struct {
	size   int
	hashes []string
}

// NewHistory keeps the last size hashes. A non-positive size picks the
// default; anything smaller than the stagnation depth is raised to it.
func NewHistory(size int) *History {
	switch {
	case size <= 0:
		size = defaultHistorySize
	case size < stagnationDepth:
		size = stagnationDepth
	}
	return &History{size: size}
}

// Record adds a generation to the history, dropping the oldest beyond the size limit
func (h *History) Record(g *Grid) {
	h.hashes = append(h.hashes, g.Hash())

	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
}

// Reset forgets every recorded generation
func (h *History) Reset() {
	h.hashes = nil
}

// Len returns the number of recorded generations
func (h *History) Len() int {
	return len(h.hashes)
}

// IsStagnant reports whether g repeats one of the last three recorded
// generations, i.e. the board is static or in a cycle of period 1-3
func (h *History) IsStagnant(g *Grid) bool {
	if len(h.hashes) < stagnationDepth {
		return false
	}

	currentHash := g.Hash()
	for _, hash := range h.hashes[len(h.hashes)-stagnationDepth:] {
		if hash == currentHash {
			return true
		}
	}
	return false
}
