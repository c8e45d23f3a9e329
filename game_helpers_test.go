package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/go-rgb-gol/model"
	"github.com/sheikhrachel/go-rgb-gol/utils"
)

func testConfig() utils.Config {
	config := utils.DefaultConfig()
	config.Rows = 12
	config.Cols = 16
	config.Seed = 21
	config.Workers = 2
	config.FrameRate = time.Millisecond
	return config
}

func newTestGame(t *testing.T, config utils.Config) *Game {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 40)
	t.Cleanup(screen.Fini)

	game, err := newGame(config, screen)
	require.NoError(t, err)
	return game
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestNewGame_SeededBoard(t *testing.T) {
	config := testConfig()
	game := newTestGame(t, config)

	want, err := model.NewRandomGrid(config.Rows, config.Cols, config.Seed)
	require.NoError(t, err)
	assert.True(t, want.Equal(game.grid))
	assert.Zero(t, game.generation)
}

func TestNewGame_InvalidDimensions(t *testing.T) {
	config := testConfig()
	config.Rows = 0

	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	_, err := newGame(config, screen)
	assert.ErrorIs(t, err, model.ErrInvalidDimensions)
}

func TestGame_StepEvolvesGrid(t *testing.T) {
	config := testConfig()
	config.AutoRestart = false
	game := newTestGame(t, config)

	want := game.grid.Evolve()
	require.NoError(t, game.step())
	assert.Equal(t, 1, game.generation)
	assert.True(t, want.Equal(game.grid))
}

func TestGame_RestartsOnExtinction(t *testing.T) {
	config := testConfig()
	game := newTestGame(t, config)

	empty, err := model.NewGrid(config.Rows, config.Cols)
	require.NoError(t, err)
	game.grid = empty

	require.NoError(t, game.step())
	assert.Positive(t, game.grid.CountLivingCells())
	assert.Equal(t, game.generation, game.lastRestartGen)

	// the second game is seeded differently from the first
	first, err := model.NewRandomGrid(config.Rows, config.Cols, config.Seed)
	require.NoError(t, err)
	assert.False(t, first.Equal(game.grid))
}

func TestGame_CheckRestartConditions(t *testing.T) {
	game := newTestGame(t, testConfig())

	restart, reason := game.checkRestartConditions(0)
	assert.True(t, restart)
	assert.Equal(t, "extinction", reason)

	game.stagnantCount = game.config.StagnationThreshold
	restart, reason = game.checkRestartConditions(10)
	assert.True(t, restart)
	assert.Equal(t, "stagnation detected", reason)

	game.stagnantCount = 0
	restart, _ = game.checkRestartConditions(10)
	assert.False(t, restart)
}

func TestGame_HandleEvent(t *testing.T) {
	game := newTestGame(t, testConfig())

	quit, err := game.handleEvent(key('p'))
	require.NoError(t, err)
	assert.False(t, quit)
	assert.True(t, game.paused)

	// single step only while paused
	quit, err = game.handleEvent(key('s'))
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, 1, game.generation)

	_, err = game.handleEvent(key(' '))
	require.NoError(t, err)
	assert.False(t, game.paused)

	_, err = game.handleEvent(key('s'))
	require.NoError(t, err)
	assert.Equal(t, 1, game.generation)

	before := game.grid.Clone()
	_, err = game.handleEvent(key('n'))
	require.NoError(t, err)
	assert.False(t, before.Equal(game.grid))
	assert.Equal(t, game.generation, game.lastRestartGen)

	quit, err = game.handleEvent(key('q'))
	require.NoError(t, err)
	assert.True(t, quit)

	quit, err = game.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestGame_RunStopsAtMaxGenerations(t *testing.T) {
	config := testConfig()
	config.AutoRestart = false
	config.MaxGenerations = 3
	game := newTestGame(t, config)

	require.NoError(t, game.run(make(chan tcell.Event)))
	assert.Equal(t, 3, game.generation)
}

func TestGame_RunQuitsOnKey(t *testing.T) {
	game := newTestGame(t, testConfig())

	events := make(chan tcell.Event, 1)
	events <- key('q')
	close(events)

	done := make(chan error, 1)
	go func() { done <- game.run(events) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after quit")
	}
}

func TestGame_Status(t *testing.T) {
	game := newTestGame(t, testConfig())
	game.paused = true

	lines := game.status()
	require.Len(t, lines, statusLines)
	assert.Contains(t, lines[0], "Gen: 0")
	assert.Contains(t, lines[0], "Status: Paused")
}
