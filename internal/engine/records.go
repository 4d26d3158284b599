package engine

import "github.com/mcpseud/coop-evolution-LLMs/internal/game"

// Message is one utterance of a round's communication transcript, with the
// private thinking captured alongside for the audit trail.
type Message struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Text     string `json:"text"`
	Thinking string `json:"thinking,omitempty"`
}

// Round is the immutable record of one completed game instance. Index 0
// holds the first agent of the pairing, index 1 the second.
type Round struct {
	Number     int         `json:"round"`
	GameType   game.Type   `json:"game_type"`
	Scenario   string      `json:"scenario"`
	Transcript []Message   `json:"transcript,omitempty"`
	RawMoves   [2]string   `json:"raw_moves"`
	Moves      [2]game.Move `json:"moves"`
	Thinking   [2]string   `json:"thinking,omitempty"`
	Payoffs    [2]int      `json:"payoffs"`
	Defaulted  [2]bool     `json:"defaulted"`
}

// Pairing is the archived record of one multi-round engagement. Immutable
// once yielded to the recorder.
type Pairing struct {
	RunID      string    `json:"run_id"`
	Index      int       `json:"pairing"`
	AgentIDs   [2]string `json:"agents"`
	Strategies [2]string `json:"strategies"`
	RoundCount int       `json:"round_count"`
	Rounds     []Round   `json:"rounds"`
}

// MemoryUpdate records a post-pairing memory overwrite.
type MemoryUpdate struct {
	PairingIndex int    `json:"pairing"`
	AgentID      string `json:"agent_id"`
	AboutID      string `json:"about_id"`
	Memory       string `json:"memory"`
}

// GossipEvent records one reputation message delivered to a third agent.
// Ephemeral as run state: it influences the receiver's memory and is then
// discarded, surviving only in the recorder's sink.
type GossipEvent struct {
	PairingIndex int    `json:"pairing"`
	SenderID     string `json:"sender_id"`
	ReceiverID   string `json:"receiver_id"`
	SubjectID    string `json:"subject_id"`
	Text         string `json:"gossip"`
}

// AgentSummary is one agent's final line in the run summary.
type AgentSummary struct {
	AgentID     string            `json:"agent_id"`
	Strategy    string            `json:"strategy"`
	GamesPlayed int               `json:"games_played"`
	TotalPayoff int               `json:"total_payoff"`
	MovesUsed   map[game.Move]int `json:"moves_used"`
	Memories    map[string]string `json:"memories"`
}

// RunSummary is the terminal-state aggregate exposed once the run is Done.
type RunSummary struct {
	RunID            string                         `json:"run_id"`
	Seed             int64                          `json:"seed"`
	Pairings         int                            `json:"total_pairings"`
	Rounds           int                            `json:"total_rounds"`
	OracleCalls      int                            `json:"total_oracle_calls"`
	DefaultedMoves   int                            `json:"defaulted_moves"`
	DegradedEvents   int                            `json:"degraded_events"`
	GossipEvents     int                            `json:"gossip_events"`
	CooperationRate  float64                        `json:"cooperation_rate"`
	MovesByGame      map[game.Type]map[game.Move]int `json:"moves_by_game"`
	PayoffByStrategy map[string]int                 `json:"payoff_by_strategy"`
	Agents           []AgentSummary                 `json:"agents"`
}

// Recorder receives structured records as the run produces them. The engine
// does not depend on the persisted format; recorder errors are logged and
// never abort the run.
type Recorder interface {
	RecordPairing(p Pairing) error
	RecordRound(pairingIndex int, agentIDs [2]string, r Round) error
	RecordMemoryUpdate(m MemoryUpdate) error
	RecordGossip(g GossipEvent) error
	RecordSummary(s RunSummary) error
}

// NopRecorder discards everything; useful for tests and dry runs without a sink.
type NopRecorder struct{}

func (NopRecorder) RecordPairing(Pairing) error                      { return nil }
func (NopRecorder) RecordRound(int, [2]string, Round) error          { return nil }
func (NopRecorder) RecordMemoryUpdate(MemoryUpdate) error            { return nil }
func (NopRecorder) RecordGossip(GossipEvent) error                   { return nil }
func (NopRecorder) RecordSummary(RunSummary) error                   { return nil }
