// Package engine orchestrates the pairing loop: agent selection, game-type
// and round-count sampling, round execution, memory propagation, and gossip.
// One Engine instance owns one run's aggregate state, with an explicit
// Idle -> Running -> Finalizing -> Done lifecycle.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mcpseud/coop-evolution-LLMs/internal/agent"
	"github.com/mcpseud/coop-evolution-LLMs/internal/entropy"
	"github.com/mcpseud/coop-evolution-LLMs/internal/game"
	"github.com/mcpseud/coop-evolution-LLMs/internal/scenario"
)

// State is the engine lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFinalizing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Engine drives a single simulation run. The baseline flow is strictly
// sequential per pairing; the only concurrency is the pair of decision-phase
// oracle calls, which are logically simultaneous anyway.
type Engine struct {
	cfg       Config
	pool      []*agent.Agent
	scenarios *scenario.Provider
	rec       Recorder
	src       *entropy.Source

	// Game-type sampling tables, built once from the proportions map so
	// weighted draws follow a fixed order regardless of map iteration.
	gameTypes   []game.Type
	gameWeights []float64

	runID       string
	seed        int64
	state       State
	pairingsRun int
	stats       runStats
}

// New creates an engine for one run. The configuration is validated here so
// that configuration errors surface before any pairing executes.
func New(cfg Config, pool []*agent.Agent, scenarios *scenario.Provider, rec Recorder, src *entropy.Source, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if rec == nil {
		rec = NopRecorder{}
	}

	var gameTypes []game.Type
	var gameWeights []float64
	for _, t := range game.Types() {
		if w, ok := cfg.GameProportions[t]; ok && w > 0 {
			gameTypes = append(gameTypes, t)
			gameWeights = append(gameWeights, w)
		}
	}

	return &Engine{
		cfg:       cfg,
		pool:      pool,
		scenarios: scenarios,
		rec:       rec,
		src:       src,

		gameTypes:   gameTypes,
		gameWeights: gameWeights,

		runID:     uuid.NewString(),
		seed:      seed,
		state:     StateIdle,
		stats:     newRunStats(),
	}, nil
}

// RunID returns this run's unique identifier.
func (e *Engine) RunID() string { return e.runID }

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// PairingsRun returns how many pairings have completed so far.
func (e *Engine) PairingsRun() int { return e.pairingsRun }

// Start transitions the engine from Idle to Running.
func (e *Engine) Start() error {
	if e.state != StateIdle {
		return fmt.Errorf("cannot start engine in state %s", e.state)
	}
	e.state = StateRunning

	slog.Info("simulation started",
		"run_id", e.runID,
		"agents", len(e.pool),
		"total_pairings", e.cfg.TotalPairings,
		"allow_gossip", e.cfg.AllowGossip,
		"rounds_fixed", e.cfg.RoundsFixed,
		"avg_rounds", e.cfg.AvgRounds,
	)
	return nil
}

// Step runs exactly one pairing iteration: scheduler, game-type selection,
// rounds, memory update, gossip, and the archived Pairing handed to the
// recorder. A pool too small to pair is a skipped occurrence, not an error.
func (e *Engine) Step(ctx context.Context) (*Pairing, error) {
	if e.state != StateRunning {
		return nil, fmt.Errorf("cannot step engine in state %s", e.state)
	}
	if e.pairingsRun >= e.cfg.TotalPairings {
		return nil, fmt.Errorf("all %d pairings already run", e.cfg.TotalPairings)
	}

	idx := e.pairingsRun
	e.pairingsRun++

	if len(e.pool) < 2 {
		slog.Warn("pool too small to pair, skipping", "pairing", idx, "pool_size", len(e.pool))
		return nil, nil
	}

	p := e.runPairing(ctx, idx)

	if err := e.rec.RecordPairing(*p); err != nil {
		slog.Warn("record pairing failed", "pairing", idx, "error", err)
	}
	return p, nil
}

// Finalize transitions to Done and produces the run summary, handing it to
// the recorder on the way.
func (e *Engine) Finalize() RunSummary {
	e.state = StateFinalizing

	summary := e.stats.summary(e.runID, e.seed, e.pool)
	if err := e.rec.RecordSummary(summary); err != nil {
		slog.Warn("record summary failed", "error", err)
	}

	e.state = StateDone
	slog.Info("simulation finished",
		"run_id", e.runID,
		"pairings", summary.Pairings,
		"rounds", summary.Rounds,
		"oracle_calls", summary.OracleCalls,
		"defaulted_moves", summary.DefaultedMoves,
		"degraded_events", summary.DegradedEvents,
		"cooperation_rate", fmt.Sprintf("%.3f", summary.CooperationRate),
	)
	return summary
}

// Run drives a complete run: Start, TotalPairings steps, Finalize. Context
// cancellation stops between pairings; completed pairings stay recorded.
func (e *Engine) Run(ctx context.Context) (RunSummary, error) {
	if err := e.Start(); err != nil {
		return RunSummary{}, err
	}

	for i := 0; i < e.cfg.TotalPairings; i++ {
		select {
		case <-ctx.Done():
			slog.Warn("run interrupted", "completed_pairings", e.pairingsRun, "error", ctx.Err())
			return e.Finalize(), ctx.Err()
		default:
		}

		if _, err := e.Step(ctx); err != nil {
			return e.Finalize(), err
		}
	}

	return e.Finalize(), nil
}
