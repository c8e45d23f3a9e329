package main

import (
	"flag"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-rgb-gol/utils"
)

func main() {
	configPath := flag.String("config", "config.json", "path to a JSON config file")
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("Using default configuration (%s not found)", *configPath)
		config = utils.DefaultConfig()
	case err != nil:
		log.Fatalf("loading config: %+v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err = screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}

	game, err := newGame(config, screen)
	if err != nil {
		screen.Fini()
		log.Fatalf("starting game: %+v", err)
	}

	var (
		events = make(chan tcell.Event)
		quit   = make(chan struct{})
	)
	go screen.ChannelEvents(events, quit)

	err = game.run(events)
	close(quit)
	screen.Fini()
	if err != nil {
		log.Fatalf("running game: %+v", err)
	}

	log.Printf("Final stats: %d generations in %.1f seconds", game.generation, game.stats.Runtime().Seconds())
	log.Printf("Average: %.1f gen/sec, %.1f avg population", game.stats.GenerationsPerSecond, game.stats.AveragePopulation)
}
