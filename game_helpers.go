package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-rgb-gol/model"
	"github.com/sheikhrachel/go-rgb-gol/utils"
)

// statusLines is the number of screen rows above the grid
const statusLines = 3

// Game drives one grid: it evolves it on every tick and reacts to key events
type Game struct {
	config   utils.Config
	renderer *model.TerminalRenderer
	pool     *model.GridPool
	history  *model.History
	stats    *utils.Stats

	grid           *model.Grid
	generation     int
	lastRestartGen int
	stagnantCount  int
	restarts       int
	paused         bool
	lastFrameTime  time.Time
}

// newGame sets up the initial game state
func newGame(config utils.Config, screen tcell.Screen) (*Game, error) {
	game := &Game{
		config:   config,
		renderer: model.NewTerminalRenderer(screen),
		history:  model.NewHistory(config.HistorySize),
		stats:    utils.NewStats(config.StatsWindow),
	}
	if config.UseMemoryPool {
		game.pool = model.NewGridPool()
	}
	if err := game.restart(); err != nil {
		return nil, errors.Wrap(err, "[newGame]")
	}
	return game, nil
}

// newGrid builds a fresh random board. A configured seed is offset by the
// restart count so that every new game differs but the sequence is reproducible.
func (g *Game) newGrid() (*model.Grid, error) {
	if g.config.Seed != 0 {
		return model.NewRandomGrid(g.config.Rows, g.config.Cols, g.config.Seed+int64(g.restarts))
	}
	return model.NewUnseededRandomGrid(g.config.Rows, g.config.Cols)
}

// restart discards the current board and starts a new game
func (g *Game) restart() error {
	grid, err := g.newGrid()
	if err != nil {
		return errors.Wrapf(err, "[Game.restart] %dx%d", g.config.Rows, g.config.Cols)
	}
	model.GridToPool(g.grid, g.pool)
	g.grid = grid
	g.restarts++
	g.lastRestartGen = g.generation
	g.stagnantCount = 0
	g.history.Reset()
	return nil
}

// checkRestartConditions determines if the game should restart
func (g *Game) checkRestartConditions(livingCells int) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if g.config.StagnationThreshold > 0 && g.stagnantCount >= g.config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// step advances the game by one generation, restarting it first when it died out or stagnated
func (g *Game) step() error {
	now := time.Now()
	if !g.lastFrameTime.IsZero() {
		g.stats.Update(g.grid.CountLivingCells(), now.Sub(g.lastFrameTime))
	}
	g.lastFrameTime = now

	if g.history.IsStagnant(g.grid) {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}
	g.history.Record(g.grid)

	if g.config.AutoRestart {
		if shouldRestart, _ := g.checkRestartConditions(g.grid.CountLivingCells()); shouldRestart {
			return g.restart()
		}
	}

	next := g.grid.NextGeneration(g.config, g.pool)
	model.GridToPool(g.grid, g.pool)
	g.grid = next
	g.generation++
	return nil
}

func (g *Game) layerPopulations() (layers [model.NumLayers]int) {
	for _, layer := range model.Layers {
		layers[layer] = g.grid.Population(layer)
	}
	return
}

// status returns the text shown above the grid
func (g *Game) status() []string {
	state := "Running"
	switch {
	case g.paused:
		state = "Paused"
	case g.stagnantCount > 0:
		state = fmt.Sprintf("Stagnant (%d)", g.stagnantCount)
	}

	layers := g.layerPopulations()
	mean, stdDev := g.stats.PopulationSpread()
	return []string{
		fmt.Sprintf("Gen: %d | R: %d G: %d B: %d | Status: %s | Since restart: %d",
			g.generation, layers[model.Red], layers[model.Green], layers[model.Blue], state,
			g.generation-g.lastRestartGen),
		fmt.Sprintf("Performance: %.1f gen/sec | Avg Pop: %.1f | Pop: %.1f ± %.1f | Runtime: %.1fs",
			g.stats.GenerationsPerSecond, g.stats.AveragePopulation, mean, stdDev, g.stats.Runtime().Seconds()),
		"[n] new game  [p/space] pause  [s] step  [q/esc] quit",
	}
}

// draw renders the status lines and the grid
func (g *Game) draw() {
	g.renderer.Clear()
	for i, line := range g.status() {
		g.renderer.Text(i, line)
	}
	g.renderer.Display(g.grid, statusLines)
	g.renderer.Show()
}

// handleEvent applies a terminal event and reports whether the game should quit
func (g *Game) handleEvent(ev tcell.Event) (quit bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true, nil
			case 'n':
				err = g.restart()
			case 'p', ' ':
				g.paused = !g.paused
				g.lastFrameTime = time.Time{}
			case 's':
				if g.paused {
					err = g.step()
				}
			}
		}
	case *tcell.EventResize:
		g.renderer.Sync()
	}
	g.draw()
	return false, err
}

// reachedMaxGenerations reports whether the configured generation limit is hit
func (g *Game) reachedMaxGenerations() bool {
	return g.config.MaxGenerations > 0 && g.generation >= g.config.MaxGenerations
}

// run is the event loop: one generation per frame until quit, the
// generation limit, or the events channel closing
func (g *Game) run(events <-chan tcell.Event) error {
	ticker := time.NewTicker(g.config.FrameRate)
	defer ticker.Stop()

	g.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			quit, err := g.handleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case <-ticker.C:
			if g.paused {
				continue
			}
			if err := g.step(); err != nil {
				return err
			}
			g.draw()
			if g.reachedMaxGenerations() {
				return nil
			}
		}
	}
}
