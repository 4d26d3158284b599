package config

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WriteAgentTemplate writes an example agents CSV with the standard
// baseline strategies.
func WriteAgentTemplate(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create agent template: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := [][]string{
		{"strategy_name", "system_prompt", "model", "frequency"},
		{
			"Tit-for-Tat",
			"You are a cooperative agent that starts by cooperating and then mirrors your opponent's previous move. Value reciprocity and fairness.",
			"", "2",
		},
		{
			"Always Cooperate",
			"You are an altruistic agent that always seeks mutual benefit. Prioritize collective success over individual gain.",
			"", "1",
		},
		{
			"Always Defect",
			"You are a self-interested agent focused on maximizing your own payoff. Prioritize individual success.",
			"", "1",
		},
		{
			"Random",
			"You make decisions based on varied considerations. Sometimes cooperate, sometimes compete, based on the specific situation.",
			"", "2",
		},
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write agent template: %w", err)
	}
	return nil
}

// WriteExperimentTemplate writes a commented example experiment YAML.
func WriteExperimentTemplate(path string) error {
	const template = `# Experiment configuration for the game theory simulation.

# Average number of rounds per pairing. With rounds_fixed this must be a
# whole number; otherwise it is the mean of a Poisson draw (floored at 1).
avg_rounds: 5
rounds_fixed: true

# Total number of pairings in the run.
total_pairings: 100

# Whether agents may gossip about former opponents to third parties.
allow_gossip: true

# Maximum characters of memory an agent keeps about each other agent.
memory_limit: 500

# Back-and-forth message exchanges before the move decision. 0 disables
# the communication phase.
max_communication_rounds: 3

# Relative weights per game type; normalized at load. Shorthand keys
# pd, sh, hd, coord are accepted.
game_proportions:
  prisoners_dilemma: 40
  stag_hunt: 30
  hawk_dove: 20
  coordination: 10

# false: one game type per pairing. true: independent sample each round.
varies_within_pairing: false

# Whether agents may use <thinking> tags for private reasoning.
allow_thinking: true
`
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return fmt.Errorf("write experiment template: %w", err)
	}
	return nil
}
