package utils

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	StartTime            time.Time

	// rolling window of recent populations
	window  int
	samples []float64
}

func NewStats(window int) *Stats {
	if window <= 0 {
		window = 1
	}
	return &Stats{StartTime: time.Now(), window: window}
}

// Update records the population of one generation and the time it took
func (s *Stats) Update(population int, duration time.Duration) {
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if len(s.samples) == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}

	s.samples = append(s.samples, float64(population))
	if len(s.samples) > s.window {
		s.samples = s.samples[1:]
	}
}

// PopulationSpread returns the mean and standard deviation of the population
// over the rolling window
func (s *Stats) PopulationSpread() (mean, stdDev float64) {
	switch len(s.samples) {
	case 0:
		return 0, 0
	case 1:
		return s.samples[0], 0
	}
	return stat.MeanStdDev(s.samples, nil)
}

// Runtime returns the time elapsed since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
