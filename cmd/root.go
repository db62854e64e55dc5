// Package cmd implements the demo CLI for coreu.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"coreu/ini"
	"coreu/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// Global flags.
var (
	globalConfig    string
	globalLog       string
	globalLogFormat string
	globalDebug     bool
)

// config holds the values coreu's own ini format can supply as defaults
// for the demo subcommands, the way the teacher's root command reads
// --root/--log from global flags.
var config *ini.Document

// rootCmd is the base command for the coreu demo binary.
var rootCmd = &cobra.Command{
	Use:   "coreu",
	Short: "Demo CLI over the coreu systems-programming primitives",
	Long: `coreu is a demo CLI exercising the named-semaphore, shared-memory,
ring-buffer, socket, dynamic-loader, and INI-parser primitives of the coreu
library directly from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		loadConfig()
		return nil
	},
}

// Execute runs the root command, bracketed by the one-time process
// sequencing spec.md's excluded library-init entry point would have done.
func Execute() error {
	shutdown := coreuInit()
	defer shutdown()
	return rootCmd.Execute()
}

// GetContext returns a context that cancels on SIGINT/SIGTERM.
func GetContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return ctx
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalConfig, "config", "", "path to a coreu.ini config file (default: none)")
	rootCmd.PersistentFlags().StringVar(&globalLog, "log", "", "set the log file path")
	rootCmd.PersistentFlags().StringVar(&globalLogFormat, "log-format", "text", "set the format for log output (text or json)")
	rootCmd.PersistentFlags().BoolVar(&globalDebug, "debug", false, "enable debug logging")
}

func setupLogging() {
	logOutput := os.Stderr
	if globalLog != "" {
		f, err := os.OpenFile(globalLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err == nil {
			logOutput = f
		}
	}

	logLevel := slog.LevelInfo
	if globalDebug {
		logLevel = slog.LevelDebug
	}

	if globalLogFormat == "json" || globalLog != "" || globalDebug {
		logger := logging.NewLogger(logging.Config{
			Level:  logLevel,
			Format: globalLogFormat,
			Output: logOutput,
		})
		logging.SetDefault(logger)
	}
}

// loadConfig reads globalConfig as an ini.Document, or leaves config as an
// empty, ready-to-query document if no path was given or the file can't be
// read — subcommands fall back to their own flag defaults either way.
func loadConfig() {
	config = ini.New()
	if globalConfig == "" {
		return
	}
	data, err := os.ReadFile(globalConfig)
	if err != nil {
		logging.Default().Warn("could not read config file", "path", globalConfig, "error", err)
		return
	}
	doc, err := ini.Parse(data)
	if err != nil {
		logging.Default().Warn("could not parse config file", "path", globalConfig, "error", err)
		return
	}
	config = doc
}
