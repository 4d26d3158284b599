package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcpseud/coop-evolution-LLMs/internal/agent"
	"github.com/mcpseud/coop-evolution-LLMs/internal/config"
	"github.com/mcpseud/coop-evolution-LLMs/internal/engine"
	"github.com/mcpseud/coop-evolution-LLMs/internal/entropy"
	"github.com/mcpseud/coop-evolution-LLMs/internal/llm"
	"github.com/mcpseud/coop-evolution-LLMs/internal/persistence"
	"github.com/mcpseud/coop-evolution-LLMs/internal/scenario"
)

func newRunCmd() *cobra.Command {
	var (
		agentsPath string
		configPath string
		dbPath     string
		seed       int64
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation from agent and experiment config files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			specs, err := config.LoadAgents(agentsPath)
			if err != nil {
				return err
			}
			cfg, err := config.LoadExperiment(configPath)
			if err != nil {
				return err
			}

			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			src := entropy.NewSource(seed)

			oracleFor, err := buildOracleFactory(dryRun)
			if err != nil {
				return err
			}
			pool := config.BuildPool(specs, oracleFor, cfg)

			if dir := filepath.Dir(dbPath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create results dir: %w", err)
				}
			}
			store, err := persistence.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			eng, err := engine.New(cfg, pool, scenario.NewProvider(src), store, src, seed)
			if err != nil {
				return err
			}
			if err := store.BeginRun(eng.RunID(), seed, cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, runErr := eng.Run(ctx)
			printSummary(summary)
			return runErr
		},
	}

	cmd.Flags().StringVar(&agentsPath, "agents", "configs/agents.csv", "path to the agents CSV file")
	cmd.Flags().StringVar(&configPath, "config", "configs/experiment.yaml", "path to the experiment config file")
	cmd.Flags().StringVar(&dbPath, "db", "results/gametheory.db", "path to the results database")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "run without API calls, using canned oracle responses")
	return cmd
}

// buildOracleFactory returns the per-model oracle binding. Clients are
// shared across agents using the same model so rate limiting applies
// per model, not per agent.
func buildOracleFactory(dryRun bool) (func(model string) agent.Oracle, error) {
	if dryRun {
		return func(string) agent.Oracle {
			return agent.StaticOracle{Text: "cooperate"}
		}, nil
	}

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set (use --dry-run to run without API calls)")
	}

	clients := make(map[string]*llm.Client)
	return func(model string) agent.Oracle {
		if model == "" {
			model = llm.DefaultModel
		}
		c, ok := clients[model]
		if !ok {
			c = llm.NewClient(apiKey, model)
			clients[model] = c
		}
		return c
	}, nil
}

func printSummary(s engine.RunSummary) {
	fmt.Printf("\n=== Simulation Summary ===\n")
	fmt.Printf("Run ID:           %s\n", s.RunID)
	fmt.Printf("Seed:             %d\n", s.Seed)
	fmt.Printf("Total pairings:   %d\n", s.Pairings)
	fmt.Printf("Total rounds:     %d\n", s.Rounds)
	fmt.Printf("Oracle calls:     %d\n", s.OracleCalls)
	fmt.Printf("Defaulted moves:  %d\n", s.DefaultedMoves)
	fmt.Printf("Degraded events:  %d\n", s.DegradedEvents)
	fmt.Printf("Gossip events:    %d\n", s.GossipEvents)
	fmt.Printf("Cooperation rate: %.2f%%\n", s.CooperationRate*100)

	if len(s.PayoffByStrategy) > 0 {
		fmt.Printf("\nPayoff by strategy:\n")
		for strategy, payoff := range s.PayoffByStrategy {
			fmt.Printf("  %-24s %d\n", strategy, payoff)
		}
	}
}
