// Package main is the chatlist command: an interactive roster of chats backed by a
// remote collection, plus one-shot commands for scripting the same operations.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	baseURL     string
	metricsAddr string

	// Logger
	logger *zap.Logger
	// logLevel gates logger; the loaded config settles it once known.
	logLevel = zap.NewAtomicLevel()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chatlist",
	Short: "chatlist - a roster of chats mirrored from a remote collection",
	Long: `chatlist keeps a list of chats in sync with a REST collection
(GET/POST /users, PUT/DELETE /users/{id}) and opens a local, throwaway
message thread for any chat.

Run without arguments to start the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it logs to files instead)
		if cmd == cmd.Root() {
			return nil
		}

		// Initialize logger
		cfg := zap.NewProductionConfig()
		if verbose {
			logLevel.SetLevel(zapcore.DebugLevel)
		}
		cfg.Level = logLevel
		var err error
		logger, err = cfg.Build()
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
	RunE: runInteractive,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/chatlist/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Collection base URL (overrides config and CHATLIST_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")

	listCmd.Flags().String("search", "", "Only show chats whose name contains this text")
	failuresCmd.Flags().Int("limit", 20, "Number of failures to show")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(failuresCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
