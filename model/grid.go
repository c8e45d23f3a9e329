package model

import (
	"crypto/md5"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-rgb-gol/rules"
	"github.com/sheikhrachel/go-rgb-gol/utils"
)

// Cell is the state of a single cell in one layer
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

const (
	gridPosAlive = '*'
	gridPosDead  = ' '
)

var (
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	ErrOutOfBounds       = errors.New("cell index out of bounds")
	ErrInvalidState      = errors.New("cell state must be 0 or 1")
)

// Grid is one generation of a three layer toroidal board.
//
// Cells are stored layer by layer, each layer in row-major order. A Grid owns
// its buffer; Evolve and Clone always hand back a grid with a fresh one.
type Grid struct {
	rows  int
	cols  int
	cells []uint8
}

// NewGrid creates a grid with every cell dead
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 || rows > math.MaxInt/NumLayers/cols {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] rows: %d, cols: %d", rows, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]uint8, rows*cols*NumLayers),
	}, nil
}

// NewRandomGrid creates a grid where each cell of each layer is alive with
// probability 1/4, drawn from a generator seeded deterministically with seed
func NewRandomGrid(rows, cols int, seed int64) (*Grid, error) {
	return newRandomGrid(rows, cols, rand.New(rand.NewPCG(uint64(seed), 0)))
}

// NewUnseededRandomGrid is NewRandomGrid with a seed drawn from the runtime's entropy source
func NewUnseededRandomGrid(rows, cols int) (*Grid, error) {
	return newRandomGrid(rows, cols, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

func newRandomGrid(rows, cols int, rng *rand.Rand) (*Grid, error) {
	g, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	// a draw of 1 out of {0,1,2,3} is alive, anything else is dead
	for i := range g.cells {
		if rng.IntN(4) == 1 {
			g.cells[i] = uint8(Alive)
		}
	}
	return g, nil
}

// Rows returns the number of rows in each layer
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in each layer
func (g *Grid) Cols() int {
	return g.cols
}

func (g *Grid) index(row, col int, layer Layer) int {
	return (int(layer)*g.rows+row)*g.cols + col
}

func (g *Grid) checkBounds(row, col int, layer Layer) error {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols || !layer.Valid() {
		return errors.Wrapf(ErrOutOfBounds, "(%d, %d, %s) on a %dx%d grid", row, col, layer, g.rows, g.cols)
	}
	return nil
}

// Get returns the state of a cell. Indices are not wrapped: anything outside
// [0, rows) x [0, cols) or an unknown layer is ErrOutOfBounds.
func (g *Grid) Get(row, col int, layer Layer) (Cell, error) {
	if err := g.checkBounds(row, col, layer); err != nil {
		return Dead, errors.Wrap(err, "[Grid.Get]")
	}
	return Cell(g.cells[g.index(row, col, layer)]), nil
}

// Set stores the state of a cell. Only Dead and Alive may be stored; on any
// error the grid is left untouched.
func (g *Grid) Set(row, col int, layer Layer, state Cell) error {
	if err := g.checkBounds(row, col, layer); err != nil {
		return errors.Wrap(err, "[Grid.Set]")
	}
	if state != Dead && state != Alive {
		return errors.Wrapf(ErrInvalidState, "[Grid.Set] got %d", state)
	}
	g.cells[g.index(row, col, layer)] = uint8(state)
	return nil
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	return &Grid{
		rows:  g.rows,
		cols:  g.cols,
		cells: slices.Clone(g.cells),
	}
}

// Equal reports whether both grids have the same dimensions and cell states
func (g *Grid) Equal(other *Grid) bool {
	if other == nil {
		return false
	}
	return g.rows == other.rows && g.cols == other.cols && slices.Equal(g.cells, other.cells)
}

// clear kills every cell, keeping the dimensions
func (g *Grid) clear() {
	clear(g.cells)
}

// reset resizes the grid and kills every cell, reusing the buffer when it is big enough
func (g *Grid) reset(rows, cols int) {
	g.rows = rows
	g.cols = cols
	size := rows * cols * NumLayers
	if cap(g.cells) < size {
		g.cells = make([]uint8, size)
		return
	}
	g.cells = g.cells[:size]
	clear(g.cells)
}

// wrap is a true modulo: negative indices land in [0, n)
func wrap(i, n int) int {
	return (i%n + n) % n
}

// countNeighbors sums the 8 Moore neighbors of (rows[1], cols[1]) in one layer.
// The center is skipped by position, not coordinates, so on a 1-wide torus a
// cell counts itself through its wrapped neighbors.
func (g *Grid) countNeighbors(rows, cols [3]int, layer Layer) (count int) {
	for i, row := range rows {
		base := g.index(row, 0, layer)
		for j, col := range cols {
			if i == 1 && j == 1 {
				continue
			}
			count += int(g.cells[base+col])
		}
	}
	return
}

// evolveRow writes the next state of every cell of one row, in all layers, into next
func (g *Grid) evolveRow(next *Grid, row int) {
	rows := [3]int{wrap(row-1, g.rows), row, wrap(row+1, g.rows)}
	for col := 0; col < g.cols; col++ {
		cols := [3]int{wrap(col-1, g.cols), col, wrap(col+1, g.cols)}
		for _, layer := range Layers {
			var (
				before    = layer.Before()
				behind    = layer.Behind()
				parasites = g.countNeighbors(rows, cols, before) + int(g.cells[g.index(row, col, before)])
				symbionts = g.countNeighbors(rows, cols, behind) + int(g.cells[g.index(row, col, behind)])
				score     = rules.Score(g.countNeighbors(rows, cols, layer), symbionts, parasites)
				idx       = g.index(row, col, layer)
			)
			if rules.ApplyRGBRules(score, g.cells[idx] == uint8(Alive)) {
				next.cells[idx] = uint8(Alive)
			}
		}
	}
}

// Evolve computes the next generation using one worker per CPU
func (g *Grid) Evolve() *Grid {
	return g.EvolveParallel(runtime.NumCPU(), nil)
}

// EvolveParallel computes the next generation, splitting the rows into
// contiguous bands, one per worker. g is only read; every worker writes a
// disjoint set of rows of the returned grid. The output buffer comes from
// pool when one is given.
func (g *Grid) EvolveParallel(workers int, pool *GridPool) *Grid {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.rows, g.cols)
	} else {
		next = &Grid{rows: g.rows, cols: g.cols, cells: make([]uint8, len(g.cells))}
	}

	workers = max(1, workers)
	var (
		eg            errgroup.Group
		rowsPerWorker = (g.rows + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.rows)
		)
		if startRow >= g.rows {
			break
		}

		eg.Go(func() error {
			for row := startRow; row < endRow; row++ {
				g.evolveRow(next, row)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		panic(errors.Wrap(err, "[Grid.EvolveParallel] row worker failed"))
	}

	return next
}

// NextGeneration calculates the next generation based on configuration
func (g *Grid) NextGeneration(config utils.Config, pool *GridPool) *Grid {
	if !config.UseMemoryPool {
		pool = nil
	}
	return g.EvolveParallel(config.Workers, pool)
}

// Population returns the number of living cells in one layer
func (g *Grid) Population(layer Layer) (count int) {
	if !layer.Valid() {
		return 0
	}
	start := g.index(0, 0, layer)
	for _, c := range g.cells[start : start+g.rows*g.cols] {
		count += int(c)
	}
	return
}

// CountLivingCells returns the total number of living cells across all layers
func (g *Grid) CountLivingCells() (count int) {
	for _, c := range g.cells {
		count += int(c)
	}
	return
}

// Hash returns an MD5 hash of the current grid state
func (g *Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.rows, g.cols)
	h.Write(g.cells)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// String dumps each layer as rows lines of cols characters, '*' for alive
// and ' ' for dead, with a blank line after every layer
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.rows*(g.cols+1) + 1) * NumLayers)
	for _, layer := range Layers {
		for row := range g.rows {
			base := g.index(row, 0, layer)
			for col := range g.cols {
				if g.cells[base+col] == uint8(Alive) {
					sb.WriteByte(gridPosAlive)
				} else {
					sb.WriteByte(gridPosDead)
				}
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
