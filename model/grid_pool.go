package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles cell buffers of generations the driver has discarded
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Grid{}
			},
		},
	}
}

// Get retrieves an all-dead grid from the pool, resizing it to the given dimensions
func (p *GridPool) Get(rows, cols int) *Grid {
	g := p.pool.Get().(*Grid)
	g.reset(rows, cols)
	return g
}

// Put returns a grid to the pool. The caller must not use g afterwards.
func (p *GridPool) Put(g *Grid) {
	// Clear the grid before returning to pool
	g.clear()
	p.pool.Put(g)
}
