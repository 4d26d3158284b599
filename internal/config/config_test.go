package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpseud/coop-evolution-LLMs/internal/agent"
	"github.com/mcpseud/coop-evolution-LLMs/internal/engine"
	"github.com/mcpseud/coop-evolution-LLMs/internal/game"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAgents(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "agents.csv",
		"strategy_name,system_prompt,model,frequency\n"+
			"Tit-for-Tat,Mirror your opponent.,claude-haiku-4-5-20251001,2\n"+
			"Always Defect,Maximize your own payoff.,,1\n")

	specs, err := LoadAgents(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, "Tit-for-Tat", specs[0].Strategy)
	assert.Equal(t, "Mirror your opponent.", specs[0].SystemPrompt)
	assert.Equal(t, "claude-haiku-4-5-20251001", specs[0].Model)
	assert.Equal(t, 2, specs[0].Frequency)

	assert.Equal(t, "Always Defect", specs[1].Strategy)
	assert.Empty(t, specs[1].Model)
	assert.Equal(t, 1, specs[1].Frequency)
}

func TestLoadAgentsClampsFrequency(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "agents.csv",
		"strategy_name,system_prompt,frequency\n"+
			"Zero,prompt,0\n"+
			"Negative,prompt,-3\n"+
			"Garbage,prompt,lots\n")

	specs, err := LoadAgents(path)
	require.NoError(t, err)
	require.Len(t, specs, 3)
	for _, s := range specs {
		assert.Equal(t, 1, s.Frequency, "%s", s.Strategy)
	}
}

func TestLoadAgentsErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadAgents(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})

	t.Run("missing required column", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "agents.csv", "strategy_name,frequency\nX,1\n")
		_, err := LoadAgents(path)
		assert.Error(t, err)
	})

	t.Run("no rows", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "agents.csv", "strategy_name,system_prompt,frequency\n")
		_, err := LoadAgents(path)
		assert.Error(t, err)
	})

	t.Run("malformed row", func(t *testing.T) {
		t.Parallel()
		// A broken row mid-file must fail the load, not silently drop the
		// rows after it.
		path := writeFile(t, "agents.csv",
			"strategy_name,system_prompt,frequency\n"+
				"First,prompt,1\n"+
				"\"Broken,unterminated quote,1\n"+
				"Third,prompt,1\n")
		_, err := LoadAgents(path)
		assert.Error(t, err)
	})
}

func TestLoadExperimentDefaults(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "experiment.yaml", "total_pairings: 25\n")

	cfg, err := LoadExperiment(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.TotalPairings)
	assert.Equal(t, 5.0, cfg.AvgRounds)
	assert.True(t, cfg.RoundsFixed)
	assert.True(t, cfg.AllowGossip)
	assert.Equal(t, 500, cfg.MemoryLimit)
	assert.Equal(t, 3, cfg.MaxCommunicationRounds)
	assert.False(t, cfg.VariesWithinPairing)
	assert.True(t, cfg.AllowThinking)

	// Absent proportions default to equal across all game types.
	require.Len(t, cfg.GameProportions, 4)
	for _, gt := range game.Types() {
		assert.InDelta(t, 0.25, cfg.GameProportions[gt], 1e-9)
	}
}

func TestLoadExperimentProportions(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "experiment.yaml", `
total_pairings: 10
game_proportions:
  pd: 40
  sh: 30
  hawk_dove: 20
  coord: 10
`)

	cfg, err := LoadExperiment(path)
	require.NoError(t, err)

	// Weights are normalized, and shorthand aliases resolve.
	assert.InDelta(t, 0.4, cfg.GameProportions[game.PrisonersDilemma], 1e-9)
	assert.InDelta(t, 0.3, cfg.GameProportions[game.StagHunt], 1e-9)
	assert.InDelta(t, 0.2, cfg.GameProportions[game.HawkDove], 1e-9)
	assert.InDelta(t, 0.1, cfg.GameProportions[game.Coordination], 1e-9)
}

func TestLoadExperimentRejectsBadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"unknown game type", "game_proportions:\n  chess: 1\n"},
		{"fractional fixed rounds", "avg_rounds: 2.5\nrounds_fixed: true\n"},
		{"zero pairings", "total_pairings: 0\n"},
		{"negative proportion", "game_proportions:\n  pd: -1\n  sh: 2\n"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, "experiment.yaml", tc.yaml)
			_, err := LoadExperiment(path)
			assert.Error(t, err)
		})
	}
}

func TestBuildPool(t *testing.T) {
	t.Parallel()

	specs := []AgentSpec{
		{Strategy: "Tit for Tat", SystemPrompt: "Mirror.", Frequency: 2},
		{Strategy: "Always Defect", SystemPrompt: "Defect.", Frequency: 1},
	}
	cfg := engine.Config{MemoryLimit: 500, AllowThinking: true}

	pool := BuildPool(specs, func(string) agent.Oracle {
		return agent.StaticOracle{Text: "cooperate"}
	}, cfg)

	require.Len(t, pool, 3)
	assert.Equal(t, "Tit_for_Tat_0_0", pool[0].ID)
	assert.Equal(t, "Tit_for_Tat_0_1", pool[1].ID)
	assert.Equal(t, "Always_Defect_1_0", pool[2].ID)

	// Replicas share the strategy but are distinct agents.
	assert.Equal(t, pool[0].Strategy, pool[1].Strategy)
	assert.NotEqual(t, pool[0].ID, pool[1].ID)
	assert.Equal(t, 500, pool[0].MemoryLimit)
	assert.True(t, pool[0].AllowThinking)
}

func TestTemplatesRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	agentsPath := filepath.Join(dir, "agents.csv")
	experimentPath := filepath.Join(dir, "experiment.yaml")

	require.NoError(t, WriteAgentTemplate(agentsPath))
	require.NoError(t, WriteExperimentTemplate(experimentPath))

	specs, err := LoadAgents(agentsPath)
	require.NoError(t, err)
	assert.NotEmpty(t, specs)

	cfg, err := LoadExperiment(experimentPath)
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}
