// Package config loads experiment and agent-pool configuration from flat
// files: a YAML file of experiment parameters and a CSV table of
// frequency-weighted strategy specs.
package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/mcpseud/coop-evolution-LLMs/internal/agent"
	"github.com/mcpseud/coop-evolution-LLMs/internal/engine"
	"github.com/mcpseud/coop-evolution-LLMs/internal/game"
)

// AgentSpec is one row of the agents CSV: a strategy defined entirely by
// its prompt, replicated into the pool frequency times.
type AgentSpec struct {
	Strategy     string
	SystemPrompt string
	Model        string
	Frequency    int
}

// gameAliases maps the shorthand game keys accepted in proportion configs.
var gameAliases = map[string]game.Type{
	"pd":    game.PrisonersDilemma,
	"sh":    game.StagHunt,
	"hd":    game.HawkDove,
	"coord": game.Coordination,
}

// LoadAgents reads agent specs from a CSV file with columns strategy_name,
// system_prompt, frequency, and optionally model.
func LoadAgents(path string) ([]AgentSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open agents file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read agents header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"strategy_name", "system_prompt", "frequency"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("agents file missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var specs []AgentSpec
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read agents file: %w", err)
		}

		spec := AgentSpec{
			Strategy:     field(row, "strategy_name"),
			SystemPrompt: field(row, "system_prompt"),
			Model:        field(row, "model"),
		}
		if spec.Strategy == "" {
			continue
		}

		spec.Frequency, _ = strconv.Atoi(field(row, "frequency"))
		if spec.Frequency < 1 {
			slog.Warn("invalid frequency, setting to 1", "strategy", spec.Strategy)
			spec.Frequency = 1
		}

		specs = append(specs, spec)
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("agents file %s contains no agent specs", path)
	}

	slog.Info("loaded agent configurations", "count", len(specs), "path", path)
	return specs, nil
}

// LoadExperiment reads the experiment configuration from a YAML file,
// applying the standard defaults for missing parameters and normalizing
// game-type proportions to sum to 1.
func LoadExperiment(path string) (engine.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("avg_rounds", 5.0)
	v.SetDefault("rounds_fixed", true)
	v.SetDefault("total_pairings", 100)
	v.SetDefault("allow_gossip", true)
	v.SetDefault("memory_limit", 500)
	v.SetDefault("max_communication_rounds", 3)
	v.SetDefault("varies_within_pairing", false)
	v.SetDefault("allow_thinking", true)

	if err := v.ReadInConfig(); err != nil {
		return engine.Config{}, fmt.Errorf("read experiment config: %w", err)
	}

	cfg := engine.Config{
		TotalPairings:          v.GetInt("total_pairings"),
		AvgRounds:              v.GetFloat64("avg_rounds"),
		RoundsFixed:            v.GetBool("rounds_fixed"),
		VariesWithinPairing:    v.GetBool("varies_within_pairing"),
		AllowGossip:            v.GetBool("allow_gossip"),
		MemoryLimit:            v.GetInt("memory_limit"),
		MaxCommunicationRounds: v.GetInt("max_communication_rounds"),
		AllowThinking:          v.GetBool("allow_thinking"),
	}

	proportions, err := parseProportions(v.GetStringMapString("game_proportions"))
	if err != nil {
		return engine.Config{}, err
	}
	cfg.GameProportions = proportions

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("experiment config %s: %w", path, err)
	}

	slog.Info("loaded experiment configuration", "path", path,
		"total_pairings", cfg.TotalPairings,
		"avg_rounds", cfg.AvgRounds,
		"rounds_fixed", cfg.RoundsFixed,
		"allow_gossip", cfg.AllowGossip,
	)
	return cfg, nil
}

// parseProportions resolves shorthand game keys, parses weights, and
// normalizes them to sum to 1. An absent map defaults to equal proportions
// across all game types.
func parseProportions(raw map[string]string) (map[game.Type]float64, error) {
	if len(raw) == 0 {
		equal := make(map[game.Type]float64)
		for _, t := range game.Types() {
			equal[t] = 1.0 / float64(len(game.Types()))
		}
		slog.Info("using default equal game proportions")
		return equal, nil
	}

	proportions := make(map[game.Type]float64, len(raw))
	total := 0.0
	for key, val := range raw {
		t, ok := gameAliases[strings.ToLower(key)]
		if !ok {
			t = game.Type(strings.ToLower(key))
		}
		if !game.Known(t) {
			return nil, fmt.Errorf("unknown game type in proportions: %q", key)
		}

		w, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid proportion for %q: %w", key, err)
		}
		if w < 0 {
			return nil, fmt.Errorf("negative proportion for %q: %v", key, w)
		}

		proportions[t] = w
		total += w
	}

	if total <= 0 {
		return nil, fmt.Errorf("game proportions sum to zero")
	}
	for t := range proportions {
		proportions[t] /= total
	}
	return proportions, nil
}

// BuildPool expands frequency-weighted specs into the agent pool, binding
// each agent to the oracle for its model. Agent ids follow the
// strategy_index_replica convention so identities stay stable across runs.
func BuildPool(specs []AgentSpec, oracleFor func(model string) agent.Oracle, cfg engine.Config) []*agent.Agent {
	var pool []*agent.Agent
	for idx, spec := range specs {
		for i := 0; i < spec.Frequency; i++ {
			id := fmt.Sprintf("%s_%d_%d", sanitizeID(spec.Strategy), idx, i)
			pool = append(pool, agent.New(
				id,
				spec.Strategy,
				spec.SystemPrompt,
				oracleFor(spec.Model),
				cfg.MemoryLimit,
				cfg.AllowThinking,
			))
		}
	}
	slog.Info("created agent pool", "agents", len(pool))
	return pool
}

func sanitizeID(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, s)
}
