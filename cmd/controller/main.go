package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/config"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/engine"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/httpapi"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/logging"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/mcptool"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/oracle"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/progress"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/protocol"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/terminal"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/wire"
)

// #region flags
var (
	configPath string
	logLevel   string
	logJSON    bool
	listenAddr string

	cfg    *config.Config
	logger *zap.Logger
)
// #endregion flags

// #region commands
var rootCmd = &cobra.Command{
	Use:   "controller",
	Short: "HECATESTIAELEUTERIA protocol controller",
	Long: `Runs the HECATESTIAELEUTERIA protocol engine.

Without a subcommand it starts the interactive terminal. Type RA for the menu,
a command (HEC, 01, 1...) to activate it, or IA <pregunta> to talk to Testiateria.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") || cfg.Log.Level == "" {
			cfg.Log.Level = logLevel
		}
		if logJSON {
			cfg.Log.JSON = true
		}
		logger, err = logging.New(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), runTerminal)
	},
}

var serveGRPCCmd = &cobra.Command{
	Use:   "serve-grpc",
	Short: "Serve the protocol over gRPC",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			addr := cfg.GRPC.Addr
			if listenAddr != "" {
				addr = listenAddr
			}
			lis, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			return wire.Serve(ctx, lis, wire.NewServer(a.queue, logger))
		})
	},
}

var serveHTTPCmd = &cobra.Command{
	Use:   "serve-http",
	Short: "Serve the JSON API and Prometheus metrics over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			addr := cfg.HTTP.Addr
			if listenAddr != "" {
				addr = listenAddr
			}
			srv := httpapi.New(a.queue, a.responder, logger).HTTPServer(addr)
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
			logger.Info("http listening", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the protocol as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			return mcptool.ServeStdio(mcptool.NewServer(a.queue, a.responder))
		})
	},
}

var configCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write the effective configuration as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Save(args[0]); err != nil {
			return err
		}
		fmt.Printf("config written to %s\n", args[0])
		return nil
	},
}
// #endregion commands

// #region main
func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "hecatestia.yaml", "path to YAML config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit JSON logs")
	serveGRPCCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides config)")
	serveHTTPCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(serveGRPCCmd, serveHTTPCmd, mcpCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
// #endregion main

// #region app
// app is the wired runtime shared by every subcommand.
type app struct {
	queue     *engine.Queue
	responder engine.Responder
}

func withApp(ctx context.Context, fn func(context.Context, *app) error) error {
	store, err := progress.Open(cfg.Progress.Backend, cfg.Progress.Path)
	if err != nil {
		return fmt.Errorf("open progress store: %w", err)
	}
	defer store.Close()

	e, err := engine.New(engine.WithStore(store), engine.WithLogger(logger))
	if err != nil {
		return err
	}
	queue := engine.NewQueue(e, cfg.Queue.Buffer)
	defer queue.Close()

	responder, err := newResponder(ctx)
	if err != nil {
		return err
	}

	logger.Debug("controller ready",
		zap.String("backend", cfg.Progress.Backend),
		zap.String("path", cfg.Progress.Path),
		zap.String("oracle", cfg.Oracle.Provider),
	)
	return fn(ctx, &app{queue: queue, responder: responder})
}

func newResponder(ctx context.Context) (engine.Responder, error) {
	switch cfg.Oracle.Provider {
	case "gemini":
		g, err := oracle.NewGemini(ctx, cfg.Oracle.APIKey, cfg.Oracle.Model, logger)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return oracle.Offline{}, nil
	}
}
// #endregion app

// #region terminal
func runTerminal(ctx context.Context, a *app) error {
	shell := terminal.NewShell(a.queue, a.responder)
	renderer := terminal.NewRenderer()

	for _, m := range shell.Transcript().Messages() {
		printMessage(renderer, m, 0)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		level, xp, err := shell.Progress(ctx)
		if err != nil {
			return err
		}
		fmt.Println(renderer.Status(level, xp))
		fmt.Print("> ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = l
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "quit", "exit":
			return nil
		}

		msgs, err := shell.Submit(ctx, line)
		if err != nil {
			logger.Error("submit failed", zap.Error(err))
			continue
		}
		level, _, _ = shell.Progress(ctx)
		// the input line is already on screen
		for _, m := range msgs {
			if m.Kind == terminal.KindInput {
				continue
			}
			printMessage(renderer, m, level)
		}
	}
}

func printMessage(r *terminal.Renderer, m terminal.Message, level int) {
	out, err := r.Render(m, level)
	if err != nil {
		logger.Warn("render failed", zap.Error(err))
		out = m.Content
	}
	fmt.Printf("\n%s\n\n", out)
}
// #endregion terminal

// #region helpers
func versionString() string {
	return fmt.Sprintf("HECATESTIAELEUTERIA v%s (%s)", protocol.Version, protocol.License)
}

func init() {
	rootCmd.Version = versionString()
}
// #endregion helpers
