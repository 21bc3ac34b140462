// Package cmd provides the CLI commands for docsearch-mcp.
package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/aman-cerp/docsearch-mcp/internal/config"
	"github.com/aman-cerp/docsearch-mcp/internal/fetch"
	"github.com/aman-cerp/docsearch-mcp/internal/logging"
	"github.com/aman-cerp/docsearch-mcp/internal/reposvc"
	"github.com/aman-cerp/docsearch-mcp/internal/ui"
	"github.com/aman-cerp/docsearch-mcp/pkg/version"
)

// Persistent root flags, shared by every subcommand's RunE.
var (
	configPath     string
	debugMode      bool
	noColor        bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the docsearch-mcp CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docsearch-mcp",
		Short: "Documentation search MCP server",
		Long: `docsearch-mcp indexes one or more llms.txt-described documentation
sites and exposes BM25-ranked keyword search over them, both as an MCP
stdio server for AI coding assistants and as a one-shot CLI.

Configure libraries in a YAML file (see configs/docsearch.example.yaml)
and point --config at it, or rely on ./docsearch.yaml in the current
directory.`,
		Version:           version.Version,
		SilenceUsage:      true,
		PersistentPreRunE: startLogging,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if loggingCleanup != nil {
				loggingCleanup()
				loggingCleanup = nil
			}
			return nil
		},
	}

	cmd.SetVersionTemplate("docsearch-mcp version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "docsearch.yaml", "Path to the library configuration YAML file")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to the default log file")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable styled CLI output")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// startLogging wires slog to the rotating file writer when --debug is set.
// Rotation size/count and the log file path come from the library config
// file at --config when it loads successfully, whatever the subcommand;
// otherwise logging.DefaultConfig's hardcoded values apply. The level is
// always debug and stderr teeing is always off, whatever the file says.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}

	cfg := logging.DefaultConfig()
	if fileCfg, err := config.Load(configPath); err == nil {
		cfg = loggingConfigFrom(fileCfg.Logging)
	}
	cfg.Level = "debug"
	cfg.WriteToStderr = false

	logger, cleanup, err := logging.Setup(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("debug logging enabled", slog.String("log_file", cfg.FilePath))
	return nil
}

// loggingConfigFrom overlays a non-empty internal/config.LoggingConfig's
// fields onto logging.DefaultConfig, the same field-by-field merge
// internal/config.Config itself uses for its own sections.
func loggingConfigFrom(lc config.LoggingConfig) logging.Config {
	cfg := logging.DefaultConfig()
	if lc.Level != "" {
		cfg.Level = lc.Level
	}
	if lc.FilePath != "" {
		cfg.FilePath = lc.FilePath
	}
	if lc.MaxSizeMB != 0 {
		cfg.MaxSizeMB = lc.MaxSizeMB
	}
	if lc.MaxFiles != 0 {
		cfg.MaxFiles = lc.MaxFiles
	}
	if lc.WriteToStderr != nil {
		cfg.WriteToStderr = *lc.WriteToStderr
	}
	return cfg
}

// loadManager reads the configured library set from configPath and builds
// a reposvc.Manager over it, for use by every subcommand that needs live
// search (serve, search, get, status).
func loadManager() (*config.Config, *reposvc.Manager, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	client := &fetch.Client{
		HTTP:  &http.Client{Timeout: time.Duration(cfg.Server.FetchTimeoutSeconds) * time.Second},
		Retry: fetch.DefaultRetryConfig(),
	}
	manager := reposvc.NewManager(cfg.ReposvcLibraries(), client, cfg.Server.FetchConcurrency)
	return cfg, manager, nil
}

func styles() ui.Styles {
	return ui.GetStyles(noColor)
}
