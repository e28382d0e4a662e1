package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/replay"
)

// #region main

var (
	jsonOut  bool
	diverged bool
)

var rootCmd = &cobra.Command{
	Use:          "replay fixture.json [fixture.json...]",
	Short:        "Replay recorded protocol sessions and compare against expected results",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			code, err := runFixture(path)
			if err != nil {
				return err
			}
			if code != 0 {
				diverged = true
			}
		}
		return nil
	},
}

func main() {
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "print the replay summary as JSON")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
	if diverged {
		os.Exit(1)
	}
}

// #endregion main

// #region output

func runFixture(path string) (int, error) {
	f, err := replay.LoadFixture(path)
	if err != nil {
		return 2, fmt.Errorf("load fixture: %w", err)
	}

	results, final, err := replay.Replay(f.StartProgress, f.ToTurns())
	if err != nil {
		return 2, err
	}
	summary := replay.Summarize(results, final)

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return 2, err
		}
	} else {
		fmt.Printf("== %s\n", path)
		if f.Description != "" {
			fmt.Printf("   %s\n", f.Description)
		}
	}
	code := printComparison(results, f.ExpectedResults, summary)
	finalDiffs := replay.CompareFinal(f.ExpectedFinal, summary)
	for _, d := range finalDiffs {
		fmt.Printf("FINAL DIFF %s\n", d)
	}
	if len(finalDiffs) > 0 {
		code = 1
	}
	return code, nil
}

// printComparison outputs a comparison table and returns exit code.
func printComparison(results []replay.ReplayResult, expected []replay.FixtureExpectedResult, summary replay.ReplaySummary) int {
	fmt.Printf("%-8s| %-24s| %-24s| %s\n", "Turn", "Expected", "Replayed", "Match")
	fmt.Printf("%-8s+%-25s+%-25s+%s\n",
		"--------", "-------------------------", "-------------------------", "------")

	mismatched := map[string]bool{}
	for _, m := range replay.Compare(results, expected) {
		mismatched[m.TurnID] = true
	}

	total := len(results)
	if len(expected) > total {
		total = len(expected)
	}
	for i := 0; i < total; i++ {
		var turnID, exp, got string
		if i < len(expected) {
			turnID, exp = expected[i].TurnID, expected[i].Action
		}
		if i < len(results) {
			turnID, got = results[i].TurnID, results[i].Action()
		}
		match := "OK"
		if mismatched[turnID] {
			match = "DIFF"
		}
		fmt.Printf("%-8s| %-24s| %-24s| %s\n", turnID, exp, got, match)
	}

	diverge := len(replay.Compare(results, expected))
	fmt.Printf("\nSummary: %d turns, %d match, %d diverge | %d ok, %d errors, %d child actas | nivel %d, xp %d\n\n",
		total, total-diverge, diverge, summary.Successes, summary.Errors, summary.Children,
		summary.Final.Level, summary.Final.XP)

	if diverge > 0 {
		return 1
	}
	return 0
}

// #endregion output
