package engine

import (
	"fmt"
	"math"

	"github.com/mcpseud/coop-evolution-LLMs/internal/game"
)

// Config is the experiment contract the engine consumes. Loaders normalize
// and default it; Validate rejects anything that would make the run
// statistically unsound before a single pairing executes.
type Config struct {
	TotalPairings          int
	AvgRounds              float64
	RoundsFixed            bool
	GameProportions        map[game.Type]float64
	VariesWithinPairing    bool
	AllowGossip            bool
	MemoryLimit            int
	MaxCommunicationRounds int
	AllowThinking          bool
}

// proportionTolerance allows for float error in normalized proportions.
const proportionTolerance = 1e-6

// Validate checks the configuration invariants. Any error here is fatal:
// the engine refuses to start rather than produce a corrupted experiment.
func (c Config) Validate() error {
	if c.TotalPairings <= 0 {
		return fmt.Errorf("total_pairings must be positive, got %d", c.TotalPairings)
	}
	if c.AvgRounds <= 0 {
		return fmt.Errorf("avg_rounds must be positive, got %v", c.AvgRounds)
	}
	if c.RoundsFixed && c.AvgRounds != math.Trunc(c.AvgRounds) {
		return fmt.Errorf("avg_rounds must be a whole number when rounds are fixed, got %v", c.AvgRounds)
	}
	if c.MemoryLimit <= 0 {
		return fmt.Errorf("memory_limit must be positive, got %d", c.MemoryLimit)
	}
	if c.MaxCommunicationRounds < 0 {
		return fmt.Errorf("max_communication_rounds must be non-negative, got %d", c.MaxCommunicationRounds)
	}

	if len(c.GameProportions) == 0 {
		return fmt.Errorf("game_proportions must not be empty")
	}
	sum := 0.0
	for t, w := range c.GameProportions {
		if !game.Known(t) {
			return fmt.Errorf("unknown game type in proportions: %q", t)
		}
		if w < 0 {
			return fmt.Errorf("negative proportion for game type %q: %v", t, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > proportionTolerance {
		return fmt.Errorf("game_proportions must sum to 1.0, got %v", sum)
	}
	return nil
}
