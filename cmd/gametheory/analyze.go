package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mcpseud/coop-evolution-LLMs/internal/game"
	"github.com/mcpseud/coop-evolution-LLMs/internal/persistence"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		dbPath string
		runID  string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Summarize a recorded run from the results database",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := persistence.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if runID == "" {
				runID, err = store.LatestRunID()
				if err != nil {
					return err
				}
			}

			if sum, err := store.LoadSummary(runID); err == nil {
				printSummary(sum)
			} else {
				fmt.Printf("Run %s: %v\n", runID, err)
			}

			counts, err := store.MoveCounts(runID)
			if err != nil {
				return err
			}
			printMoveBreakdown(counts)

			rows, err := store.StrategyPayoffs(runID)
			if err != nil {
				return err
			}
			if len(rows) > 0 {
				fmt.Printf("\nStrategy standings:\n")
				for _, row := range rows {
					avg := 0.0
					if row.Rounds > 0 {
						avg = float64(row.TotalPayoff) / float64(row.Rounds)
					}
					fmt.Printf("  %-24s rounds=%-5d total=%-6d avg=%.2f\n",
						row.Strategy, row.Rounds, row.TotalPayoff, avg)
				}
			}

			defaulted, err := store.DefaultedMoveCount(runID)
			if err != nil {
				return err
			}
			gossip, err := store.GossipCount(runID)
			if err != nil {
				return err
			}
			fmt.Printf("\nDefaulted moves: %d\nGossip events:   %d\n", defaulted, gossip)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "results/gametheory.db", "path to the results database")
	cmd.Flags().StringVar(&runID, "run", "", "run id to analyze (defaults to the latest run)")
	return cmd
}

func printMoveBreakdown(counts map[game.Type]map[game.Move]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Printf("\nMoves by game type:\n")
	for _, gt := range game.Types() {
		byMove, ok := counts[gt]
		if !ok {
			continue
		}
		total := 0
		moves := make([]game.Move, 0, len(byMove))
		for mv, n := range byMove {
			total += n
			moves = append(moves, mv)
		}
		sort.Slice(moves, func(i, j int) bool { return moves[i] < moves[j] })

		fmt.Printf("  %s (%d moves)\n", gt, total)
		for _, mv := range moves {
			n := byMove[mv]
			fmt.Printf("    %-12s %d (%.1f%%)\n", mv, n, 100*float64(n)/float64(total))
		}

		if eq := game.NashEquilibria(gt); len(eq) > 0 {
			fmt.Printf("    nash:")
			for _, o := range eq {
				fmt.Printf(" (%s, %s)", o.M1, o.M2)
			}
			fmt.Println()
		}
	}
}
