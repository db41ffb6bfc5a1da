package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maskforge/coco-mask-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "mask-mcp",
	Short: "MCP server converting binary object masks into COCO annotation geometry",
	Long: `mask-mcp exposes a mask-to-geometry codec over the MCP protocol:
run-length encoding for crowd regions, boundary polygons for ordinary
instances, connected-component decomposition, and full COCO annotation
records. It communicates via JSON-RPC over stdin/stdout; configure it in
your MCP client.`,
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	level := logLevel
	if level == "" {
		level = os.Getenv("MASK_MCP_LOG_LEVEL")
	}

	// stdout carries the MCP protocol, so all logging goes to stderr
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if level == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	server.SetLogger(logger)

	logger.Debug("starting mask-mcp",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit))

	return server.New().Run()
}

func main() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug enables verbose logging; also via MASK_MCP_LOG_LEVEL)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
