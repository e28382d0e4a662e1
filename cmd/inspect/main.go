package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/config"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/engine"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/progress"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/protocol"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/wire"
)

// #region flags
var (
	configPath string
	backend    string
	dbPath     string
	jsonOut    bool
	remoteAddr string
	timeout    time.Duration
)
// #endregion flags

// #region main

var rootCmd = &cobra.Command{
	Use:          "inspect",
	Short:        "Show stored Testiateria progress",
	SilenceUsage: true,
	RunE:         runLocal,
}

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Show the status of a running gRPC controller",
	RunE:  runRemote,
}

func main() {
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON instead of table")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "hecatestia.yaml", "path to YAML config")
	rootCmd.Flags().StringVar(&backend, "backend", "", "progress backend (overrides config)")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "progress store path (overrides config)")
	remoteCmd.Flags().StringVar(&remoteAddr, "addr", "localhost:50061", "controller gRPC address")
	remoteCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "RPC timeout")
	rootCmd.AddCommand(remoteCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// #endregion main

// #region local-mode

type progressRow struct {
	Backend   string `json:"backend"`
	Path      string `json:"path"`
	Level     int    `json:"nivel"`
	XP        int    `json:"xp"`
	NextLevel int    `json:"xp_siguiente_nivel"` // 0 at the level cap
	UpdatedAt string `json:"updated_at,omitempty"`
}

func runLocal(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if backend != "" {
		cfg.Progress.Backend = backend
	}
	if dbPath != "" {
		cfg.Progress.Path = dbPath
	}

	store, err := progress.Open(cfg.Progress.Backend, cfg.Progress.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	level, xp, err := store.Load()
	if err != nil {
		return err
	}
	row := progressRow{
		Backend:   cfg.Progress.Backend,
		Path:      cfg.Progress.Path,
		Level:     engine.ClampLevel(level),
		XP:        xp,
		NextLevel: engine.NextLevelXP(level, xp),
	}
	if s, ok := store.(*progress.SQLiteStore); ok {
		if ts, err := s.UpdatedAt(progress.SlotXP); err == nil && !ts.IsZero() {
			row.UpdatedAt = ts.Format("2006-01-02T15:04:05Z")
		}
	}

	if jsonOut {
		return printJSON(row)
	}
	fmt.Printf("%-10s  %-28s  %6s  %8s  %8s  %s\n", "Backend", "Path", "Nivel", "XP", "Next", "Updated")
	fmt.Printf("%-10s+-%-28s+-%6s+-%8s+-%8s+-%s\n",
		"----------", "----------------------------", "------", "--------", "--------", "--------------------")
	next := "max"
	if row.NextLevel > 0 {
		next = strconv.Itoa(row.NextLevel)
	}
	fmt.Printf("%-10s  %-28s  %6d  %8d  %8s  %s\n",
		row.Backend, truncate(row.Path, 28), row.Level, row.XP, next, row.UpdatedAt)
	return nil
}

// #endregion local-mode

// #region remote-mode

func runRemote(cmd *cobra.Command, args []string) error {
	client, err := wire.NewClient(remoteAddr)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	sum, err := client.Status(ctx)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(sum)
	}
	fmt.Printf("Acta:          %s (%s)\n", sum.ActaID, sum.Status)
	fmt.Printf("Hash:          %s\n", sum.Hash)
	if sum.ParentHash != "" {
		fmt.Printf("Hash padre:    %s\n", sum.ParentHash)
	}
	fmt.Printf("Trazabilidad:  %d ancestros\n", len(sum.Trace))
	fmt.Printf("Entradas ARC:  %d\n", sum.Entries)
	fmt.Printf("Historial:     %d actas cerradas\n", sum.History)
	fmt.Printf("Nodos activos: %d | Contradicciones: %d | Transmisión: %t\n",
		sum.ActiveNodes, sum.OpenTensions, sum.TransmissionMode)
	fmt.Printf("Nivel %d · XP %d\n\n", sum.Level, sum.XP)

	fmt.Printf("%-6s  %s\n", "Cmd", "Count")
	fmt.Printf("%-6s+-%s\n", "------", "-----")
	for _, c := range protocol.Commands() {
		fmt.Printf("%-6s  %d\n", c, sum.Stats.Frequency[c])
	}
	return nil
}

// #endregion remote-mode

// #region helpers

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "…" + s[len(s)-n+1:]
}

// #endregion helpers
