package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/mcpseud/coop-evolution-LLMs/internal/engine"
	"github.com/mcpseud/coop-evolution-LLMs/internal/game"
)

// LatestRunID returns the id of the most recently started run.
func (s *Store) LatestRunID() (string, error) {
	var id string
	err := s.conn.Get(&id, "SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1")
	if err != nil {
		return "", fmt.Errorf("no runs found: %w", err)
	}
	return id, nil
}

// LoadSummary returns the stored run summary, if the run finished.
func (s *Store) LoadSummary(runID string) (engine.RunSummary, error) {
	var raw *string
	err := s.conn.Get(&raw, "SELECT summary_json FROM runs WHERE id = ?", runID)
	if err != nil {
		return engine.RunSummary{}, fmt.Errorf("load run %s: %w", runID, err)
	}
	if raw == nil {
		return engine.RunSummary{}, fmt.Errorf("run %s has no summary (did it finish?)", runID)
	}

	var sum engine.RunSummary
	if err := json.Unmarshal([]byte(*raw), &sum); err != nil {
		return engine.RunSummary{}, fmt.Errorf("parse summary: %w", err)
	}
	return sum, nil
}

// MoveCounts aggregates recorded moves per game type for a run, counting
// both sides of every round.
func (s *Store) MoveCounts(runID string) (map[game.Type]map[game.Move]int, error) {
	rows, err := s.conn.Queryx(
		`SELECT game_type, move, COUNT(*) AS n FROM (
			SELECT game_type, agent1_move AS move FROM rounds WHERE run_id = ?
			UNION ALL
			SELECT game_type, agent2_move AS move FROM rounds WHERE run_id = ?
		) GROUP BY game_type, move`,
		runID, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query move counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[game.Type]map[game.Move]int)
	for rows.Next() {
		var gt, mv string
		var n int
		if err := rows.Scan(&gt, &mv, &n); err != nil {
			return nil, fmt.Errorf("scan move counts: %w", err)
		}
		t := game.Type(gt)
		if counts[t] == nil {
			counts[t] = make(map[game.Move]int)
		}
		counts[t][game.Move(mv)] = n
	}
	return counts, rows.Err()
}

// StrategyRow is one strategy's aggregate over a run.
type StrategyRow struct {
	Strategy    string `db:"strategy"`
	Rounds      int    `db:"rounds"`
	TotalPayoff int    `db:"total_payoff"`
}

// StrategyPayoffs aggregates payoff totals per strategy for a run, folding
// in both sides of every round.
func (s *Store) StrategyPayoffs(runID string) ([]StrategyRow, error) {
	var out []StrategyRow
	err := s.conn.Select(&out,
		`SELECT strategy, COUNT(*) AS rounds, SUM(payoff) AS total_payoff FROM (
			SELECT p.strategy1 AS strategy, r.agent1_payoff AS payoff
			FROM rounds r JOIN pairings p ON p.run_id = r.run_id AND p.idx = r.pairing_idx
			WHERE r.run_id = ?
			UNION ALL
			SELECT p.strategy2, r.agent2_payoff
			FROM rounds r JOIN pairings p ON p.run_id = r.run_id AND p.idx = r.pairing_idx
			WHERE r.run_id = ?
		) GROUP BY strategy ORDER BY total_payoff DESC`,
		runID, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query strategy payoffs: %w", err)
	}
	return out, nil
}

// DefaultedMoveCount counts how many recorded moves fell back to the
// default, the per-run measure of oracle degradation.
func (s *Store) DefaultedMoveCount(runID string) (int, error) {
	var n int
	err := s.conn.Get(&n,
		"SELECT COALESCE(SUM(agent1_defaulted + agent2_defaulted), 0) FROM rounds WHERE run_id = ?",
		runID,
	)
	if err != nil {
		return 0, fmt.Errorf("query defaulted moves: %w", err)
	}
	return n, nil
}

// GossipCount counts delivered gossip events for a run.
func (s *Store) GossipCount(runID string) (int, error) {
	var n int
	err := s.conn.Get(&n, "SELECT COUNT(*) FROM gossip WHERE run_id = ?", runID)
	if err != nil {
		return 0, fmt.Errorf("query gossip count: %w", err)
	}
	return n, nil
}
