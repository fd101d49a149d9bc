package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/good-yellow-bee/innohub/internal/api"
	"github.com/good-yellow-bee/innohub/internal/assist"
	"github.com/good-yellow-bee/innohub/internal/logger"
	"github.com/good-yellow-bee/innohub/internal/metrics"
	"github.com/good-yellow-bee/innohub/internal/storage"
	"github.com/good-yellow-bee/innohub/pkg/config"
)

var (
	configFile string
	port       string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "innohub-server",
	Short: "innohub API server",
	Long: `innohub-server serves the student innovation platform API: projects,
workspaces, mentors, launches, grants and the AI assistant.`,
	RunE:          runServer,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("innohub-server %s\n", config.Version)
		fmt.Printf("  commit: %s\n", config.Commit)
		fmt.Printf("  built:  %s\n", config.BuildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (optional)")
	rootCmd.PersistentFlags().StringVarP(&port, "port", "p", "", "HTTP listen port (overrides PORT)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every request")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port != "" {
		cfg.Server.Port = port
	}
	cfg.Verbose = verbose

	if _, err := logger.Setup(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}); err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	metrics.SetBuildInfo(config.Version, config.Commit, runtime.Version())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(storage.Options{DSN: cfg.Database.URL, Database: cfg.Database.Name})
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	if err := store.Open(ctx); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.Info().Str("backend", store.Backend()).Msg("database initialized")

	gateway := assist.NewFromConfig(assist.RemoteConfig{
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		BaseURL: cfg.AI.BaseURL,
		Timeout: cfg.AITimeout(),
	})

	ttl, _ := cfg.TokenTTL()
	srv, err := api.New(&api.Config{
		Address:          cfg.Address(),
		JWTSecret:        []byte(cfg.Auth.JWTSecret),
		Issuer:           cfg.Auth.Issuer,
		TokenTTL:         ttl,
		CORSOrigins:      cfg.Server.CORSOrigins,
		AIRateLimitPerIP: cfg.Server.AIRateLimitPerIP,
		Verbose:          cfg.Verbose,
	}, store, gateway)
	if err != nil {
		return fmt.Errorf("create api server: %w", err)
	}

	log.Info().Str("version", config.Version).Msg("starting innohub-server")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if cfg.Metrics.Enabled {
		metricsSrv := metrics.NewServer(cfg.Metrics.Address)
		g.Go(func() error {
			return metricsSrv.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run server: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
