package engine

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mcpseud/coop-evolution-LLMs/internal/agent"
	"github.com/mcpseud/coop-evolution-LLMs/internal/game"
	"github.com/mcpseud/coop-evolution-LLMs/internal/scenario"
)

// gossipProbability is the per-agent chance of gossiping after a pairing.
const gossipProbability = 0.5

// runPairing executes one full pairing: scheduling, rounds, memory updates,
// and gossip dispatch.
func (e *Engine) runPairing(ctx context.Context, idx int) *Pairing {
	i, j := e.src.PickPair(len(e.pool))
	a1, a2 := e.pool[i], e.pool[j]

	n := e.roundCount()
	games := e.gamesForRounds(n)

	slog.Info("pairing started",
		"pairing", idx, "agent1", a1.ID, "agent2", a2.ID, "rounds", n)

	p := &Pairing{
		RunID:      e.runID,
		Index:      idx,
		AgentIDs:   [2]string{a1.ID, a2.ID},
		Strategies: [2]string{a1.Strategy, a2.Strategy},
		RoundCount: n,
	}

	// Per-agent perspectives of the pairing so far, fed back into prompts.
	var hist1, hist2 []agent.RoundResult

	for r := 0; r < n; r++ {
		round := e.runRound(ctx, r, games[r], a1, a2, hist1, hist2)
		p.Rounds = append(p.Rounds, round)

		hist1 = append(hist1, perspective(round, 0))
		hist2 = append(hist2, perspective(round, 1))

		if err := e.rec.RecordRound(idx, p.AgentIDs, round); err != nil {
			slog.Warn("record round failed", "pairing", idx, "round", r+1, "error", err)
		}
	}

	e.updateMemories(ctx, idx, a1, a2, hist1, hist2)

	if e.cfg.AllowGossip {
		e.dispatchGossip(ctx, idx, a1, a2)
		e.dispatchGossip(ctx, idx, a2, a1)
	}

	e.stats.pairings++
	return p
}

// perspective converts an archived round into one agent's view of it.
func perspective(r Round, side int) agent.RoundResult {
	other := 1 - side
	return agent.RoundResult{
		Round:          r.Number,
		GameType:       r.GameType,
		ScenarioName:   r.Scenario,
		OwnMove:        r.Moves[side],
		OpponentMove:   r.Moves[other],
		OwnPayoff:      r.Payoffs[side],
		OpponentPayoff: r.Payoffs[other],
	}
}

// roundCount samples how many rounds this pairing plays: the configured
// average under fixed mode, otherwise a Poisson draw floored at 1 so no
// pairing degenerates to zero rounds.
func (e *Engine) roundCount() int {
	if e.cfg.RoundsFixed {
		return int(e.cfg.AvgRounds)
	}
	n := e.src.Poisson(e.cfg.AvgRounds)
	if n < 1 {
		n = 1
	}
	return n
}

// gamesForRounds assigns a game type per round: one independent weighted
// sample per round when game type varies within a pairing, otherwise a
// single sample reused for every round.
func (e *Engine) gamesForRounds(n int) []game.Type {
	games := make([]game.Type, n)
	if e.cfg.VariesWithinPairing {
		for i := range games {
			games[i] = e.sampleGameType()
		}
		return games
	}

	gt := e.sampleGameType()
	for i := range games {
		games[i] = gt
	}
	return games
}

func (e *Engine) sampleGameType() game.Type {
	return e.gameTypes[e.src.WeightedIndex(e.gameWeights)]
}

// runRound drives one round to completion: scenario, communication phase,
// simultaneous decision phase, payoffs, and statistics.
func (e *Engine) runRound(ctx context.Context, roundIdx int, gt game.Type, a1, a2 *agent.Agent, hist1, hist2 []agent.RoundResult) Round {
	sc, err := e.scenarios.Pick(gt)
	if err != nil {
		// Should not happen once config is validated; degrade to a bare
		// framing built from the game model rather than aborting.
		slog.Error("scenario lookup failed", "game_type", gt, "error", err)
		sc = fallbackScenario(gt)
	}

	rc1 := agent.RoundContext{
		OpponentID:  a2.ID,
		Scenario:    sc,
		History:     hist1,
		Memory:      a1.MemoryOf(a2.ID),
		RoundNumber: roundIdx + 1,
	}
	rc2 := agent.RoundContext{
		OpponentID:  a1.ID,
		Scenario:    sc,
		History:     hist2,
		Memory:      a2.MemoryOf(a1.ID),
		RoundNumber: roundIdx + 1,
	}

	transcript, recorded := e.runCommunication(ctx, rc1, rc2, a1, a2)

	// Decision phase: both oracle calls are logically simultaneous. They are
	// issued concurrently, and neither is given the other's same-round answer.
	var res1, res2 agent.MoveResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var mvErr error
		res1, mvErr = a1.Move(gctx, rc1, transcript)
		if mvErr != nil {
			slog.Warn("move oracle degraded to default", "agent", a1.ID, "error", mvErr)
		}
		return nil
	})
	g.Go(func() error {
		var mvErr error
		res2, mvErr = a2.Move(gctx, rc2, transcript)
		if mvErr != nil {
			slog.Warn("move oracle degraded to default", "agent", a2.ID, "error", mvErr)
		}
		return nil
	})
	_ = g.Wait()

	payoff := game.Payoffs(gt, res1.Move, res2.Move)
	a1.AddPayoff(payoff.P1)
	a2.AddPayoff(payoff.P2)

	e.stats.recordRound(gt, a1.Strategy, a2.Strategy, res1.Move, res2.Move, payoff)

	slog.Info("round complete",
		"round", roundIdx+1,
		"game_type", gt,
		"scenario", sc.Name,
		"moves", string(res1.Move)+"/"+string(res2.Move),
		"payoffs", payoff,
	)

	return Round{
		Number:     roundIdx + 1,
		GameType:   gt,
		Scenario:   sc.Name,
		Transcript: recorded,
		RawMoves:   [2]string{res1.Raw, res2.Raw},
		Moves:      [2]game.Move{res1.Move, res2.Move},
		Thinking:   [2]string{res1.Thinking, res2.Thinking},
		Payoffs:    [2]int{payoff.P1, payoff.P2},
		Defaulted:  [2]bool{res1.Defaulted, res2.Defaulted},
	}
}

// runCommunication alternates message exchanges for up to the configured
// number of rounds. Each message joins the transcript both agents see on
// their next turn. A failed or silent oracle skips that turn only.
func (e *Engine) runCommunication(ctx context.Context, rc1, rc2 agent.RoundContext, a1, a2 *agent.Agent) ([]agent.Message, []Message) {
	var transcript []agent.Message
	var recorded []Message

	speak := func(speaker, listener *agent.Agent, rc agent.RoundContext) {
		text, thinking, err := speaker.Communicate(ctx, rc, transcript)
		if err != nil {
			slog.Warn("communication oracle failed, skipping turn", "agent", speaker.ID, "error", err)
			e.stats.degradedEvents++
			return
		}
		if text == "" {
			return
		}
		transcript = append(transcript, agent.Message{Sender: speaker.ID, Text: text})
		recorded = append(recorded, Message{
			Sender: speaker.ID, Receiver: listener.ID, Text: text, Thinking: thinking,
		})
	}

	for c := 0; c < e.cfg.MaxCommunicationRounds; c++ {
		speak(a1, a2, rc1)
		speak(a2, a1, rc2)
	}
	return transcript, recorded
}

// updateMemories runs the post-pairing memory-update oracle for both agents
// and records the overwritten memories.
func (e *Engine) updateMemories(ctx context.Context, idx int, a1, a2 *agent.Agent, hist1, hist2 []agent.RoundResult) {
	update := func(owner *agent.Agent, aboutID string, hist []agent.RoundResult) {
		memory, _, err := owner.UpdateMemory(ctx, aboutID, hist)
		if err != nil {
			slog.Warn("memory update degraded, keeping prior memory",
				"agent", owner.ID, "about", aboutID, "error", err)
			e.stats.degradedEvents++
		}
		rec := MemoryUpdate{PairingIndex: idx, AgentID: owner.ID, AboutID: aboutID, Memory: memory}
		if recErr := e.rec.RecordMemoryUpdate(rec); recErr != nil {
			slog.Warn("record memory update failed", "agent", owner.ID, "error", recErr)
		}
	}

	update(a1, a2.ID, hist1)
	update(a2, a1.ID, hist2)
}

// dispatchGossip gives one just-paired agent its independent 50% chance to
// gossip about the finished opponent to a uniformly chosen third agent.
// Skipped outright when no third agent exists.
func (e *Engine) dispatchGossip(ctx context.Context, idx int, sender, opponent *agent.Agent) {
	if len(e.pool) < 3 {
		return
	}
	if e.src.Float64() >= gossipProbability {
		return
	}

	candidates := make([]*agent.Agent, 0, len(e.pool)-2)
	for _, a := range e.pool {
		if a.ID != sender.ID && a.ID != opponent.ID {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return
	}
	target := candidates[e.src.Intn(len(candidates))]

	text, _, err := sender.Gossip(ctx, opponent.ID, target.ID)
	if err != nil {
		slog.Warn("gossip generation failed, skipping", "sender", sender.ID, "error", err)
		e.stats.degradedEvents++
		return
	}
	if text == "" {
		return
	}

	if _, err := target.ReceiveGossip(ctx, sender.ID, opponent.ID, text); err != nil {
		slog.Warn("gossip receipt failed", "receiver", target.ID, "error", err)
		e.stats.degradedEvents++
	}

	e.stats.gossipEvents++
	ev := GossipEvent{
		PairingIndex: idx,
		SenderID:     sender.ID,
		ReceiverID:   target.ID,
		SubjectID:    opponent.ID,
		Text:         text,
	}
	if recErr := e.rec.RecordGossip(ev); recErr != nil {
		slog.Warn("record gossip failed", "sender", sender.ID, "error", recErr)
	}

	slog.Info("gossip dispatched",
		"sender", sender.ID, "receiver", target.ID, "subject", opponent.ID)
}

// fallbackScenario frames a game type directly from the game model when no
// narrative scenario is available.
func fallbackScenario(gt game.Type) scenario.Scenario {
	moves := game.Moves(gt)
	options := make([]string, len(moves))
	mapping := make(map[string]game.Move, len(moves))
	for i, m := range moves {
		options[i] = string(m)
		mapping[string(m)] = m
	}
	return scenario.Scenario{
		GameType:    gt,
		Name:        string(gt),
		Description: game.Description(gt),
		Options:     options,
		MoveMapping: mapping,
	}
}
