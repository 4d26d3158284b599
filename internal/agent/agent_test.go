package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpseud/coop-evolution-LLMs/internal/game"
	"github.com/mcpseud/coop-evolution-LLMs/internal/scenario"
)

func pdContext() RoundContext {
	return RoundContext{
		OpponentID: "rival_0_0",
		Scenario: scenario.Scenario{
			GameType:    game.PrisonersDilemma,
			Name:        "Price Competition",
			Description: "Two firms set prices in a shared market.",
			Options:     []string{"Maintain High Prices", "Cut Prices"},
			MoveMapping: map[string]game.Move{
				"Maintain High Prices": game.Cooperate,
				"Cut Prices":           game.Defect,
			},
		},
		RoundNumber: 1,
	}
}

func TestMoveCanonicalizesResponse(t *testing.T) {
	t.Parallel()

	a := New("a1", "Tester", "You are a test agent.", StaticOracle{Text: "I will Cut Prices this round."}, 500, false)

	res, err := a.Move(context.Background(), pdContext(), nil)
	require.NoError(t, err)
	assert.Equal(t, game.Defect, res.Move)
	assert.False(t, res.Defaulted)

	st := a.Stats()
	assert.Equal(t, 1, st.GamesPlayed)
	assert.Equal(t, 1, st.OracleCalls)
	assert.Equal(t, 1, st.MovesUsed[game.Defect])
	assert.Equal(t, 0, st.DefaultedMoves)
}

func TestMoveOracleFailureDefaults(t *testing.T) {
	t.Parallel()

	a := New("a1", "Tester", "", StaticOracle{Err: errors.New("api down")}, 500, false)

	res, err := a.Move(context.Background(), pdContext(), nil)
	assert.Error(t, err)
	assert.Equal(t, game.Cooperate, res.Move, "degrades to the game default")
	assert.True(t, res.Defaulted)
	assert.Equal(t, 1, a.Stats().DefaultedMoves)
}

func TestMoveUnrecognizedResponseDefaults(t *testing.T) {
	t.Parallel()

	a := New("a1", "Tester", "", StaticOracle{Text: "hmm, let me think about this more"}, 500, false)

	res, err := a.Move(context.Background(), pdContext(), nil)
	require.NoError(t, err, "unrecognized text is a degraded event, not an error")
	assert.Equal(t, game.Cooperate, res.Move)
	assert.True(t, res.Defaulted)
}

func TestMoveStripsThinking(t *testing.T) {
	t.Parallel()

	a := New("a1", "Tester", "", StaticOracle{
		Text: "<thinking>They defected last time, I should retaliate.</thinking>Cut Prices",
	}, 500, true)

	res, err := a.Move(context.Background(), pdContext(), nil)
	require.NoError(t, err)
	assert.Equal(t, game.Defect, res.Move)
	assert.Equal(t, "They defected last time, I should retaliate.", res.Thinking)
	assert.NotContains(t, res.Raw, "<thinking>")
}

func TestUpdateMemoryOverwritesAndTruncates(t *testing.T) {
	t.Parallel()

	oracle := &ScriptOracle{Responses: []string{
		"First impression: cooperative.",
		strings.Repeat("x", 100),
	}}
	a := New("a1", "Tester", "", oracle, 20, false)

	mem, _, err := a.UpdateMemory(context.Background(), "opp", nil)
	require.NoError(t, err)
	assert.Equal(t, "First impression: co", mem, "truncated to the memory limit")
	assert.Equal(t, mem, a.MemoryOf("opp"))

	mem, _, err = a.UpdateMemory(context.Background(), "opp", nil)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 20), mem, "overwrite, not append")
	assert.Equal(t, mem, a.MemoryOf("opp"))
}

func TestUpdateMemoryKeepsPriorOnFailure(t *testing.T) {
	t.Parallel()

	a := New("a1", "Tester", "", StaticOracle{Text: "they seem trustworthy"}, 500, false)
	_, _, err := a.UpdateMemory(context.Background(), "opp", nil)
	require.NoError(t, err)

	b := New("a1", "Tester", "", StaticOracle{Err: errors.New("api down")}, 500, false)
	b.mu.Lock()
	b.memories["opp"] = "prior memory"
	b.mu.Unlock()

	mem, _, err := b.UpdateMemory(context.Background(), "opp", nil)
	assert.Error(t, err)
	assert.Equal(t, "prior memory", mem)
	assert.Equal(t, "prior memory", b.MemoryOf("opp"))
}

func TestGossipRequiresMemory(t *testing.T) {
	t.Parallel()

	a := New("a1", "Tester", "", StaticOracle{Text: "watch out for them"}, 500, false)

	// No memory of the subject: nothing to gossip about, no oracle call.
	text, _, err := a.Gossip(context.Background(), "stranger", "friend")
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Equal(t, 0, a.Stats().OracleCalls)

	_, _, err = a.UpdateMemory(context.Background(), "stranger", nil)
	require.NoError(t, err)

	text, _, err = a.Gossip(context.Background(), "stranger", "friend")
	require.NoError(t, err)
	assert.Equal(t, "watch out for them", text)
}

func TestReceiveGossipLengthGate(t *testing.T) {
	t.Parallel()

	// A substantive response overwrites the memory.
	a := New("a1", "Tester", "", StaticOracle{Text: "Updated view: they exploit cooperators."}, 500, false)
	_, err := a.ReceiveGossip(context.Background(), "peer", "subject", "they always defect")
	require.NoError(t, err)
	assert.Equal(t, "Updated view: they exploit cooperators.", a.MemoryOf("subject"))

	// A trivial response leaves the memory untouched.
	b := New("b1", "Tester", "", StaticOracle{Text: "ok"}, 500, false)
	b.mu.Lock()
	b.memories["subject"] = "prior"
	b.mu.Unlock()
	_, err = b.ReceiveGossip(context.Background(), "peer", "subject", "they always defect")
	require.NoError(t, err)
	assert.Equal(t, "prior", b.MemoryOf("subject"))
}

func TestCommunicate(t *testing.T) {
	t.Parallel()

	a := New("a1", "Tester", "", StaticOracle{Text: "Let's both keep prices high."}, 500, false)
	msg, _, err := a.Communicate(context.Background(), pdContext(), []Message{
		{Sender: "rival_0_0", Text: "What do you propose?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Let's both keep prices high.", msg)

	b := New("b1", "Tester", "", StaticOracle{Err: errors.New("api down")}, 500, false)
	_, _, err = b.Communicate(context.Background(), pdContext(), nil)
	assert.Error(t, err)
}

func TestMemoriesReturnsCopy(t *testing.T) {
	t.Parallel()

	a := New("a1", "Tester", "", StaticOracle{Text: "note"}, 500, false)
	_, _, err := a.UpdateMemory(context.Background(), "opp", nil)
	require.NoError(t, err)

	snap := a.Memories()
	snap["opp"] = "mutated"
	assert.Equal(t, "note", a.MemoryOf("opp"))
}
