// Package agent implements the LLM-backed players. Strategies are data, not
// code: one Agent type carries a strategy prompt that differentiates behavior
// through the decision oracle, never through subclassing.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcpseud/coop-evolution-LLMs/internal/game"
	"github.com/mcpseud/coop-evolution-LLMs/internal/scenario"
)

// maxResponseTokens bounds every oracle completion.
const maxResponseTokens = 4096

// Oracle converts a system/user prompt pair into a natural-language response.
// The LLM client satisfies this; tests inject scripted implementations.
type Oracle interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// Agent is one decision-making participant in the pool. All mutable state
// (memories, statistics) is guarded by the mutex so that pairings running
// concurrently over a shared pool serialize their writes per agent.
type Agent struct {
	ID            string
	Strategy      string
	SystemPrompt  string
	MemoryLimit   int
	AllowThinking bool

	oracle Oracle

	mu       sync.Mutex
	memories map[string]string
	stats    Stats
}

// Stats tracks an agent's running statistics across the whole run.
type Stats struct {
	GamesPlayed    int
	TotalPayoff    int
	MovesUsed      map[game.Move]int
	OracleCalls    int
	DefaultedMoves int
}

// New creates an agent bound to a decision oracle.
func New(id, strategy, systemPrompt string, oracle Oracle, memoryLimit int, allowThinking bool) *Agent {
	return &Agent{
		ID:            id,
		Strategy:      strategy,
		SystemPrompt:  systemPrompt,
		MemoryLimit:   memoryLimit,
		AllowThinking: allowThinking,
		oracle:        oracle,
		memories:      make(map[string]string),
		stats:         Stats{MovesUsed: make(map[game.Move]int)},
	}
}

// RoundContext is what an agent sees when asked to act in a round: who it
// faces, the scenario narrative, prior rounds of this pairing from its own
// perspective, and its memory of the opponent.
type RoundContext struct {
	OpponentID  string
	Scenario    scenario.Scenario
	History     []RoundResult
	Memory      string
	RoundNumber int
}

// RoundResult is one completed round seen from this agent's side.
type RoundResult struct {
	Round          int
	GameType       game.Type
	ScenarioName   string
	OwnMove        game.Move
	OpponentMove   game.Move
	OwnPayoff      int
	OpponentPayoff int
}

// Message is one utterance in a round's communication transcript.
type Message struct {
	Sender string
	Text   string
}

// MoveResult is the outcome of a decision-phase oracle call.
type MoveResult struct {
	Move      game.Move
	Raw       string
	Thinking  string
	Defaulted bool
}

// Communicate asks the oracle for a message to the opponent given the
// transcript so far. An empty return means the agent stays silent this turn.
// Oracle failures surface as errors; the caller degrades to a skipped message.
func (a *Agent) Communicate(ctx context.Context, rc RoundContext, transcript []Message) (string, string, error) {
	prompt := a.buildCommunicationPrompt(rc, transcript)

	clean, thinking, err := a.invoke(ctx, prompt)
	if err != nil {
		return "", "", err
	}
	return clean, thinking, nil
}

// Move asks the oracle for a decision and canonicalizes the response through
// the game model. It never fails to produce a valid move: an oracle error or
// unrecognizable response degrades to the game's default move, flagged as
// Defaulted so the run's degradation stays observable.
func (a *Agent) Move(ctx context.Context, rc RoundContext, transcript []Message) (MoveResult, error) {
	gt := rc.Scenario.GameType
	prompt := a.buildMovePrompt(rc, transcript)

	clean, thinking, err := a.invoke(ctx, prompt)
	if err != nil {
		mv := game.Default(gt)
		a.recordMove(mv, true)
		return MoveResult{Move: mv, Thinking: thinking, Defaulted: true},
			fmt.Errorf("move oracle: %w", err)
	}

	mv, recognized := game.Recognize(gt, clean, rc.Scenario.MoveMapping)
	if !recognized {
		mv = game.Default(gt)
		slog.Warn("unrecognized move response, using default",
			"agent", a.ID, "game_type", gt, "response", truncateRunes(clean, 100))
	}
	a.recordMove(mv, !recognized)

	return MoveResult{Move: mv, Raw: clean, Thinking: thinking, Defaulted: !recognized}, nil
}

// UpdateMemory runs the memory-update oracle after a pairing and overwrites
// the stored memory of the opponent with the response, hard-truncated to the
// memory limit. This is the only point where pairing outcomes mutate memory.
// On oracle failure the prior memory is kept unchanged.
func (a *Agent) UpdateMemory(ctx context.Context, opponentID string, history []RoundResult) (string, string, error) {
	prompt := a.buildMemoryPrompt(opponentID, history)

	clean, thinking, err := a.invoke(ctx, prompt)
	if err != nil {
		return a.MemoryOf(opponentID), thinking, fmt.Errorf("memory oracle: %w", err)
	}

	memory := truncateRunes(clean, a.MemoryLimit)
	a.mu.Lock()
	a.memories[opponentID] = memory
	a.mu.Unlock()

	return memory, thinking, nil
}

// Gossip asks the oracle for a reputation message about a former opponent,
// addressed to a third agent. Returns an empty message when the agent has no
// memory of the subject to share.
func (a *Agent) Gossip(ctx context.Context, aboutID, toID string) (string, string, error) {
	a.mu.Lock()
	memory, ok := a.memories[aboutID]
	a.mu.Unlock()
	if !ok {
		return "", "", nil
	}

	prompt := a.buildGossipPrompt(aboutID, toID, memory)

	clean, thinking, err := a.invoke(ctx, prompt)
	if err != nil {
		return "", thinking, fmt.Errorf("gossip oracle: %w", err)
	}
	return clean, thinking, nil
}

// ReceiveGossip lets the agent weigh a reputation message against its own
// memory of the subject, instructed to account for the sender's motives. A
// substantive response overwrites the stored memory; a trivial one leaves it
// untouched.
func (a *Agent) ReceiveGossip(ctx context.Context, fromID, aboutID, gossip string) (string, error) {
	a.mu.Lock()
	prior := a.memories[aboutID]
	a.mu.Unlock()

	prompt := a.buildGossipReceiptPrompt(fromID, aboutID, gossip, prior)

	clean, thinking, err := a.invoke(ctx, prompt)
	if err != nil {
		return thinking, fmt.Errorf("gossip receipt oracle: %w", err)
	}

	// A minimal length gate filters "nothing to update" responses.
	if len(clean) > 10 {
		a.mu.Lock()
		a.memories[aboutID] = truncateRunes(clean, a.MemoryLimit)
		a.mu.Unlock()
	}
	return thinking, nil
}

// MemoryOf returns the stored memory about an opponent, empty if none.
func (a *Agent) MemoryOf(opponentID string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.memories[opponentID]
}

// Memories returns a copy of all stored memories keyed by opponent id.
func (a *Agent) Memories() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]string, len(a.memories))
	for k, v := range a.memories {
		out[k] = v
	}
	return out
}

// AddPayoff credits a round payoff to the agent's running total.
func (a *Agent) AddPayoff(p int) {
	a.mu.Lock()
	a.stats.TotalPayoff += p
	a.mu.Unlock()
}

// Stats returns a copy of the agent's statistics.
func (a *Agent) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	copied := a.stats
	copied.MovesUsed = make(map[game.Move]int, len(a.stats.MovesUsed))
	for m, n := range a.stats.MovesUsed {
		copied.MovesUsed[m] = n
	}
	return copied
}

func (a *Agent) recordMove(mv game.Move, defaulted bool) {
	a.mu.Lock()
	a.stats.GamesPlayed++
	a.stats.MovesUsed[mv]++
	if defaulted {
		a.stats.DefaultedMoves++
	}
	a.mu.Unlock()
}

// invoke runs one oracle call and splits out any private thinking block.
func (a *Agent) invoke(ctx context.Context, prompt string) (string, string, error) {
	a.mu.Lock()
	a.stats.OracleCalls++
	a.mu.Unlock()

	resp, err := a.oracle.Complete(ctx, a.SystemPrompt, prompt, maxResponseTokens)
	if err != nil {
		return "", "", err
	}

	thinking, clean := splitThinking(resp)
	if thinking != "" {
		slog.Debug("agent thinking", "agent", a.ID, "thinking", truncateRunes(thinking, 200))
	}
	return clean, thinking, nil
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
