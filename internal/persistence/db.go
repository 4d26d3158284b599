// Package persistence provides the SQLite sink for run records. The engine
// only sees the Recorder interface; everything about tables and formats
// lives here.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mcpseud/coop-evolution-LLMs/internal/engine"
)

// Store wraps a SQLite connection and implements engine.Recorder for one
// run at a time.
type Store struct {
	conn  *sqlx.DB
	runID string
}

// Open opens or creates a SQLite database at the given path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if path == ":memory:" {
		// In-memory databases exist per connection; pin the pool to one so
		// the schema stays visible.
		conn.SetMaxOpenConns(1)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		seed INTEGER NOT NULL,
		config_json TEXT NOT NULL,
		summary_json TEXT
	);

	CREATE TABLE IF NOT EXISTS pairings (
		run_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		agent1 TEXT NOT NULL,
		agent2 TEXT NOT NULL,
		strategy1 TEXT NOT NULL,
		strategy2 TEXT NOT NULL,
		round_count INTEGER NOT NULL,
		PRIMARY KEY (run_id, idx)
	);

	CREATE TABLE IF NOT EXISTS rounds (
		run_id TEXT NOT NULL,
		pairing_idx INTEGER NOT NULL,
		round INTEGER NOT NULL,
		game_type TEXT NOT NULL,
		scenario TEXT NOT NULL,
		agent1_move TEXT NOT NULL,
		agent2_move TEXT NOT NULL,
		agent1_raw TEXT NOT NULL,
		agent2_raw TEXT NOT NULL,
		agent1_payoff INTEGER NOT NULL,
		agent2_payoff INTEGER NOT NULL,
		agent1_defaulted INTEGER NOT NULL,
		agent2_defaulted INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		pairing_idx INTEGER NOT NULL,
		round INTEGER NOT NULL,
		sender TEXT NOT NULL,
		receiver TEXT NOT NULL,
		message TEXT NOT NULL,
		thinking TEXT
	);

	CREATE TABLE IF NOT EXISTS memories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		pairing_idx INTEGER NOT NULL,
		agent_id TEXT NOT NULL,
		about_id TEXT NOT NULL,
		memory TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS gossip (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		pairing_idx INTEGER NOT NULL,
		sender TEXT NOT NULL,
		receiver TEXT NOT NULL,
		subject TEXT NOT NULL,
		gossip TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rounds_run ON rounds(run_id, pairing_idx);
	CREATE INDEX IF NOT EXISTS idx_messages_run ON messages(run_id, pairing_idx);
	CREATE INDEX IF NOT EXISTS idx_memories_run ON memories(run_id);
	CREATE INDEX IF NOT EXISTS idx_gossip_run ON gossip(run_id);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// BeginRun registers a run and makes the store record against it.
func (s *Store) BeginRun(runID string, seed int64, cfg engine.Config) error {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	_, err = s.conn.Exec(
		"INSERT INTO runs (id, started_at, seed, config_json) VALUES (?, ?, ?, ?)",
		runID, time.Now().UTC().Format(time.RFC3339), seed, string(cfgJSON),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	s.runID = runID
	slog.Info("run registered", "run_id", runID, "seed", seed)
	return nil
}

// RecordPairing archives a completed pairing.
func (s *Store) RecordPairing(p engine.Pairing) error {
	_, err := s.conn.Exec(
		`INSERT INTO pairings (run_id, idx, agent1, agent2, strategy1, strategy2, round_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.runID, p.Index, p.AgentIDs[0], p.AgentIDs[1],
		p.Strategies[0], p.Strategies[1], p.RoundCount,
	)
	if err != nil {
		return fmt.Errorf("insert pairing %d: %w", p.Index, err)
	}
	return nil
}

// RecordRound archives one round and its communication transcript.
func (s *Store) RecordRound(pairingIdx int, agentIDs [2]string, r engine.Round) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO rounds
		 (run_id, pairing_idx, round, game_type, scenario,
		  agent1_move, agent2_move, agent1_raw, agent2_raw,
		  agent1_payoff, agent2_payoff, agent1_defaulted, agent2_defaulted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.runID, pairingIdx, r.Number, r.GameType, r.Scenario,
		r.Moves[0], r.Moves[1], r.RawMoves[0], r.RawMoves[1],
		r.Payoffs[0], r.Payoffs[1], boolInt(r.Defaulted[0]), boolInt(r.Defaulted[1]),
	)
	if err != nil {
		return fmt.Errorf("insert round %d: %w", r.Number, err)
	}

	for _, m := range r.Transcript {
		_, err = tx.Exec(
			`INSERT INTO messages (run_id, pairing_idx, round, sender, receiver, message, thinking)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.runID, pairingIdx, r.Number, m.Sender, m.Receiver, m.Text, m.Thinking,
		)
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
	}

	return tx.Commit()
}

// RecordMemoryUpdate archives a post-pairing memory overwrite.
func (s *Store) RecordMemoryUpdate(m engine.MemoryUpdate) error {
	_, err := s.conn.Exec(
		`INSERT INTO memories (run_id, pairing_idx, agent_id, about_id, memory)
		 VALUES (?, ?, ?, ?, ?)`,
		s.runID, m.PairingIndex, m.AgentID, m.AboutID, m.Memory,
	)
	if err != nil {
		return fmt.Errorf("insert memory update: %w", err)
	}
	return nil
}

// RecordGossip archives a delivered gossip event.
func (s *Store) RecordGossip(g engine.GossipEvent) error {
	_, err := s.conn.Exec(
		`INSERT INTO gossip (run_id, pairing_idx, sender, receiver, subject, gossip)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.runID, g.PairingIndex, g.SenderID, g.ReceiverID, g.SubjectID, g.Text,
	)
	if err != nil {
		return fmt.Errorf("insert gossip: %w", err)
	}
	return nil
}

// RecordSummary closes out the run row with the final aggregates.
func (s *Store) RecordSummary(sum engine.RunSummary) error {
	sumJSON, err := json.Marshal(sum)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	_, err = s.conn.Exec(
		"UPDATE runs SET finished_at = ?, summary_json = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339), string(sumJSON), sum.RunID,
	)
	if err != nil {
		return fmt.Errorf("update run summary: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
