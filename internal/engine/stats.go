package engine

import (
	"github.com/mcpseud/coop-evolution-LLMs/internal/agent"
	"github.com/mcpseud/coop-evolution-LLMs/internal/game"
)

// cooperativeMoves classifies which canonical moves count as cooperative per
// game type for the aggregate cooperation rate. Coordination has no
// defection analogue, so both options count.
var cooperativeMoves = map[game.Type]map[game.Move]bool{
	game.PrisonersDilemma: {game.Cooperate: true},
	game.StagHunt:         {game.Stag: true},
	game.HawkDove:         {game.Dove: true},
	game.Coordination:     {game.OptionA: true, game.OptionB: true},
}

// runStats accumulates per-run aggregates. Owned exclusively by the engine;
// the sequential pairing loop is the only writer.
type runStats struct {
	pairings         int
	rounds           int
	gossipEvents     int
	degradedEvents   int
	cooperativeMoves int
	totalMoves       int
	movesByGame      map[game.Type]map[game.Move]int
	payoffByStrategy map[string]int
}

func newRunStats() runStats {
	return runStats{
		movesByGame:      make(map[game.Type]map[game.Move]int),
		payoffByStrategy: make(map[string]int),
	}
}

func (s *runStats) recordRound(gt game.Type, strat1, strat2 string, m1, m2 game.Move, p game.Payoff) {
	s.rounds++

	byMove := s.movesByGame[gt]
	if byMove == nil {
		byMove = make(map[game.Move]int)
		s.movesByGame[gt] = byMove
	}
	byMove[m1]++
	byMove[m2]++

	s.payoffByStrategy[strat1] += p.P1
	s.payoffByStrategy[strat2] += p.P2

	s.totalMoves += 2
	if cooperativeMoves[gt][m1] {
		s.cooperativeMoves++
	}
	if cooperativeMoves[gt][m2] {
		s.cooperativeMoves++
	}
}

// summary folds the engine aggregates together with per-agent statistics
// into the terminal run summary.
func (s *runStats) summary(runID string, seed int64, pool []*agent.Agent) RunSummary {
	sum := RunSummary{
		RunID:            runID,
		Seed:             seed,
		Pairings:         s.pairings,
		Rounds:           s.rounds,
		DegradedEvents:   s.degradedEvents,
		GossipEvents:     s.gossipEvents,
		MovesByGame:      s.movesByGame,
		PayoffByStrategy: s.payoffByStrategy,
	}

	if s.totalMoves > 0 {
		sum.CooperationRate = float64(s.cooperativeMoves) / float64(s.totalMoves)
	}

	for _, a := range pool {
		stats := a.Stats()
		sum.OracleCalls += stats.OracleCalls
		sum.DefaultedMoves += stats.DefaultedMoves
		sum.Agents = append(sum.Agents, AgentSummary{
			AgentID:     a.ID,
			Strategy:    a.Strategy,
			GamesPlayed: stats.GamesPlayed,
			TotalPayoff: stats.TotalPayoff,
			MovesUsed:   stats.MovesUsed,
			Memories:    a.Memories(),
		})
	}
	return sum
}
