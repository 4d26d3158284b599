// Package game defines the abstract 2x2 games the agents play: canonical
// move sets, payoff matrices, and the keyword tables that normalize free-text
// oracle responses into canonical moves.
package game

import (
	"sort"
	"strings"
)

// Type identifies one of the supported abstract game types.
type Type string

const (
	PrisonersDilemma Type = "prisoners_dilemma"
	StagHunt         Type = "stag_hunt"
	HawkDove         Type = "hawk_dove"
	Coordination     Type = "coordination"
)

// Move is a canonical decision within a game type.
type Move string

const (
	Cooperate Move = "cooperate"
	Defect    Move = "defect"
	Stag      Move = "stag"
	Hare      Move = "hare"
	Hawk      Move = "hawk"
	Dove      Move = "dove"
	OptionA   Move = "option_a"
	OptionB   Move = "option_b"
)

// Payoff is the ordered payoff pair for (player 1, player 2).
type Payoff struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

// outcome keys the payoff matrices by the ordered canonical-move pair.
type outcome struct {
	M1, M2 Move
}

var matrices = map[Type]map[outcome]Payoff{
	PrisonersDilemma: {
		{Cooperate, Cooperate}: {3, 3},
		{Cooperate, Defect}:    {0, 5},
		{Defect, Cooperate}:    {5, 0},
		{Defect, Defect}:       {1, 1},
	},
	StagHunt: {
		{Stag, Stag}: {4, 4},
		{Stag, Hare}: {0, 3},
		{Hare, Stag}: {3, 0},
		{Hare, Hare}: {2, 2},
	},
	HawkDove: {
		{Hawk, Hawk}: {-1, -1},
		{Hawk, Dove}: {3, 1},
		{Dove, Hawk}: {1, 3},
		{Dove, Dove}: {2, 2},
	},
	Coordination: {
		{OptionA, OptionA}: {3, 3},
		{OptionA, OptionB}: {0, 0},
		{OptionB, OptionA}: {0, 0},
		{OptionB, OptionB}: {3, 3},
	},
}

// validMoves lists each game's canonical moves in fixed order. The first
// entry doubles as the deterministic fallback when canonicalization fails
// to recognize anything, matching the safe defaults below.
var validMoves = map[Type][]Move{
	PrisonersDilemma: {Cooperate, Defect},
	StagHunt:         {Stag, Hare},
	HawkDove:         {Dove, Hawk},
	Coordination:     {OptionA, OptionB},
}

// keywordRule maps trigger substrings in a lowered response to a move.
// Rules are checked in order; the first match wins.
type keywordRule struct {
	words []string
	move  Move
}

var keywords = map[Type][]keywordRule{
	PrisonersDilemma: {
		{[]string{"cooperate", "collaborate", "trust", "share"}, Cooperate},
		{[]string{"defect", "betray", "compete", "take"}, Defect},
	},
	StagHunt: {
		{[]string{"stag", "collaborate", "team", "together", "big"}, Stag},
		{[]string{"hare", "solo", "individual", "safe", "small"}, Hare},
	},
	HawkDove: {
		{[]string{"hawk", "aggressive", "fight", "attack"}, Hawk},
		{[]string{"dove", "peaceful", "yield", "peace"}, Dove},
	},
	Coordination: {
		{[]string{"option a", "a", "first"}, OptionA},
		{[]string{"option b", "b", "second"}, OptionB},
	},
}

// Types returns all supported game types in fixed order.
func Types() []Type {
	return []Type{PrisonersDilemma, StagHunt, HawkDove, Coordination}
}

// Known reports whether t is a supported game type.
func Known(t Type) bool {
	_, ok := matrices[t]
	return ok
}

// Moves returns the canonical move set for a game type in fixed order.
func Moves(t Type) []Move {
	moves := validMoves[t]
	out := make([]Move, len(moves))
	copy(out, moves)
	return out
}

// Valid reports whether m is a canonical move of game type t.
func Valid(t Type, m Move) bool {
	for _, v := range validMoves[t] {
		if v == m {
			return true
		}
	}
	return false
}

// Default returns the designated fallback move for a game type: the move
// canonicalization degrades to when nothing in the response is recognizable.
func Default(t Type) Move {
	moves := validMoves[t]
	if len(moves) == 0 {
		return Cooperate
	}
	return moves[0]
}

// Payoffs returns the ordered payoff pair for two canonical moves. Inputs
// that are not canonical are normalized through Canonicalize first, so the
// lookup always lands on a matrix cell.
func Payoffs(t Type, m1, m2 Move) Payoff {
	if !Valid(t, m1) {
		m1 = Canonicalize(t, string(m1), nil)
	}
	if !Valid(t, m2) {
		m2 = Canonicalize(t, string(m2), nil)
	}
	return matrices[t][outcome{m1, m2}]
}

// Canonicalize maps arbitrary free text to a canonical move for game type t.
// The scenario's option-to-move mapping is consulted first (most reliable,
// since agents are shown option text rather than canonical move names), then
// the game's keyword table, then the designated default move. It never fails:
// the same input always yields the same valid move.
func Canonicalize(t Type, raw string, moveMapping map[string]Move) Move {
	if m, ok := Recognize(t, raw, moveMapping); ok {
		return m
	}
	return Default(t)
}

// Recognize attempts to map free text to a canonical move without applying
// the default fallback. The second return value is false when nothing in the
// text was recognizable, which callers count as a degraded event.
func Recognize(t Type, raw string, moveMapping map[string]Move) (Move, bool) {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	if m, ok := matchMapping(t, lowered, moveMapping); ok {
		return m, true
	}

	for _, rule := range keywords[t] {
		for _, w := range rule.words {
			if strings.Contains(lowered, w) {
				return rule.move, true
			}
		}
	}

	return "", false
}

// matchMapping checks scenario option text against the response. Options are
// tried longest-first so that "option a and b" style overlaps resolve to the
// most specific match, and ties break lexicographically for determinism.
func matchMapping(t Type, lowered string, moveMapping map[string]Move) (Move, bool) {
	if len(moveMapping) == 0 {
		return "", false
	}

	options := make([]string, 0, len(moveMapping))
	for opt := range moveMapping {
		options = append(options, opt)
	}
	sort.Slice(options, func(i, j int) bool {
		if len(options[i]) != len(options[j]) {
			return len(options[i]) > len(options[j])
		}
		return options[i] < options[j]
	})

	for _, opt := range options {
		if strings.Contains(lowered, strings.ToLower(opt)) {
			if m := moveMapping[opt]; Valid(t, m) {
				return m, true
			}
		}
	}
	return "", false
}

// Description returns a short plain-language summary of the game type's
// strategic structure.
func Description(t Type) string {
	switch t {
	case PrisonersDilemma:
		return "A classic game where mutual cooperation yields good outcomes for both, " +
			"but each player has an incentive to defect for personal gain."
	case StagHunt:
		return "A coordination game where the best outcome requires mutual trust and cooperation, " +
			"but a safe individual option is always available."
	case HawkDove:
		return "A game modeling conflict where aggressive behavior pays off against peaceful opponents, " +
			"but mutual aggression is costly for both."
	case Coordination:
		return "A pure coordination game where players must choose the same option to succeed, " +
			"with no inherent advantage to either choice."
	}
	return "Unknown game type"
}
