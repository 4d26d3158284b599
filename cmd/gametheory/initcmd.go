package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mcpseud/coop-evolution-LLMs/internal/config"
)

func newInitCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write template agent and experiment config files",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}

			agentsPath := filepath.Join(dir, "agents.csv")
			configPath := filepath.Join(dir, "experiment.yaml")
			for _, p := range []string{agentsPath, configPath} {
				if _, err := os.Stat(p); err == nil {
					return fmt.Errorf("%s already exists, refusing to overwrite", p)
				}
			}

			if err := config.WriteAgentTemplate(agentsPath); err != nil {
				return err
			}
			if err := config.WriteExperimentTemplate(configPath); err != nil {
				return err
			}

			fmt.Printf("Wrote %s and %s\n", agentsPath, configPath)
			fmt.Println("Edit them, then run: gametheory run --agents", agentsPath, "--config", configPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "configs", "directory to write the templates into")
	return cmd
}
