package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/listmonk-mcp/internal/cliconfig"
	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
	"github.com/bft-labs/listmonk-mcp/pkg/listmonkmcp"
	"github.com/bft-labs/listmonk-mcp/pkg/log"
	"github.com/bft-labs/listmonk-mcp/plugins/configwatcher"
	metricsplugin "github.com/bft-labs/listmonk-mcp/plugins/metrics"
)

const helpDescription = `
Expose a listmonk newsletter server to MCP clients over stdio.

Highlights:
  - Tools for subscribers, mailing lists, campaigns, templates and
    transactional email, plus markdown resources under listmonk://.
  - Connectivity failures are retried with exponential backoff.
  - Configure via TOML file, .env file, LISTMONK_MCP_* variables, or flags.
  - Logs go to stderr; stdout carries the MCP protocol.
`

var exampleUsage = strings.TrimSpace(`
  LISTMONK_MCP_URL=http://localhost:9000 LISTMONK_MCP_USERNAME=api LISTMONK_MCP_PASSWORD=token listmonk-mcp
  listmonk-mcp --config $HOME/.listmonk-mcp/config.toml --watch-config
  listmonk-mcp health --url http://localhost:9000 --username api --password token
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return listmonkmcp.Version
}

// cli holds flag-bound values shared by every subcommand.
type cli struct {
	cfg        cliconfig.Config
	configPath string
	boot       zerolog.Logger
}

func main() {
	c := &cli{
		cfg: cliconfig.DefaultConfig(),
		boot: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger(),
	}

	root := &cobra.Command{
		Use:           "listmonk-mcp",
		Short:         "MCP server for the listmonk newsletter and mailing list manager",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.serve,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to config file (default: $HOME/.listmonk-mcp/config.toml)")
	flags.StringVar(&c.cfg.EnvFile, "env-file", c.cfg.EnvFile, "path to a .env file with LISTMONK_MCP_* overrides")
	flags.StringVar(&c.cfg.URL, "url", "", "listmonk base URL, e.g. http://localhost:9000")
	flags.StringVar(&c.cfg.Username, "username", "", "listmonk API user")
	flags.StringVar(&c.cfg.Password, "password", "", "listmonk API token")
	flags.DurationVar(&c.cfg.Timeout, "timeout", c.cfg.Timeout, "per-request timeout")
	flags.IntVar(&c.cfg.MaxRetries, "max-retries", c.cfg.MaxRetries, "retries after a connectivity failure")
	flags.DurationVar(&c.cfg.MaxElapsed, "max-elapsed", c.cfg.MaxElapsed, "wall-clock ceiling for one call including retries (0 disables)")
	flags.BoolVar(&c.cfg.Debug, "debug", c.cfg.Debug, "enable debug logging")
	flags.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "DEBUG, INFO, WARNING, ERROR or CRITICAL")

	serveFlags := func(fs *pflag.FlagSet) {
		fs.StringVar(&c.cfg.ServerName, "server-name", c.cfg.ServerName, "server name announced to MCP clients")
		fs.StringVar(&c.cfg.MetricsAddr, "metrics-addr", c.cfg.MetricsAddr, "serve Prometheus metrics on this address (disabled when empty)")
		fs.BoolVar(&c.cfg.WatchConfig, "watch-config", c.cfg.WatchConfig, "reload the listmonk session when the config or env file changes")
	}
	serveFlags(root.Flags())

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdio (default)",
		Args:  cobra.NoArgs,
		RunE:  c.serve,
	}
	serveFlags(serve.Flags())

	health := &cobra.Command{
		Use:   "health",
		Short: "Check that listmonk is reachable with the configured credentials",
		Args:  cobra.NoArgs,
		RunE:  c.health,
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), root.Version)
		},
	}

	root.AddCommand(serve, health, version)

	if err := root.Execute(); err != nil {
		c.boot.Error().Err(err).Msg("listmonk-mcp")
		os.Exit(1)
	}
}

// resolve layers file, env file and environment under the flags that were
// set explicitly on cmd.
func (c *cli) resolve(cmd *cobra.Command) (cliconfig.Config, string, func() (cliconfig.Config, error), error) {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	path := c.configPath
	if path == "" {
		path = cliconfig.DefaultConfigPath()
	}

	base := c.cfg
	load := func() (cliconfig.Config, error) {
		return cliconfig.Resolve(base, changed, path)
	}
	cfg, err := load()
	if err != nil {
		return cliconfig.Config{}, "", nil, err
	}
	return cfg, path, load, nil
}

func (c *cli) logger(cfg cliconfig.Config) (log.Logger, error) {
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return log.NewZerologAdapterWithLogger(c.boot.Level(lvl)), nil
}

func (c *cli) serve(cmd *cobra.Command, _ []string) error {
	cfg, path, load, err := c.resolve(cmd)
	if err != nil {
		return err
	}
	logger, err := c.logger(cfg)
	if err != nil {
		return err
	}

	logCfg := cfg
	if logCfg.Password != "" {
		logCfg.Password = "*****"
	}
	logger.Info("configuration", log.Any("config", logCfg))

	lcfg, err := listmonk.NewConfig(cfg.ListmonkParams())
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := listmonk.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	opts := []listmonkmcp.Option{
		listmonkmcp.WithLogger(logger),
		listmonkmcp.WithMetrics(m),
		listmonkmcp.WithGatherer(reg),
		listmonkmcp.WithConfigLoader(func(context.Context) (*listmonk.Config, error) {
			next, err := load()
			if err != nil {
				return nil, err
			}
			return listmonk.NewConfig(next.ListmonkParams())
		}),
	}

	var watch []string
	if cfg.WatchConfig {
		if path != "" {
			watch = append(watch, path)
		}
		if cfg.EnvFile != "" {
			watch = append(watch, cfg.EnvFile)
		}
		opts = append(opts, configwatcher.WithDefaultConfigWatcher())
	}
	if cfg.MetricsAddr != "" {
		opts = append(opts, metricsplugin.WithMetricsServer(cfg.MetricsAddr))
	}

	srv, err := listmonkmcp.New(listmonkmcp.Config{
		Listmonk:   lcfg,
		ServerName: cfg.ServerName,
		WatchPaths: watch,
	}, opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Stdin EOF ends the session just like a signal.
		defer stop()
		return srv.Serve(gctx, os.Stdin, os.Stdout)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("stopping server")
		if err := srv.Stop(); err != nil && !errors.Is(err, listmonkmcp.ErrNotRunning) {
			return fmt.Errorf("stop server: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (c *cli) health(cmd *cobra.Command, _ []string) error {
	cfg, _, _, err := c.resolve(cmd)
	if err != nil {
		return err
	}
	logger, err := c.logger(cfg)
	if err != nil {
		return err
	}

	lcfg, err := listmonk.NewConfig(cfg.ListmonkParams())
	if err != nil {
		return err
	}
	client, err := listmonk.New(lcfg, listmonk.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer client.Close()

	payload, err := client.HealthCheck(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"status":          "healthy",
		"listmonk_url":    lcfg.BaseURL(),
		"health_response": payload.Data(),
	})
}
