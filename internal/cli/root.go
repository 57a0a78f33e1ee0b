// Package cli provides the Cobra commands for the Firelens console.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wayli-app/firelens/internal/config"
	"github.com/wayli-app/firelens/internal/output"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"

	// Global flags
	collectionFlag string
	limitFlag      int
	outputFmt      string
	debug          bool

	// Shared across commands
	cfg       *config.Config
	formatter *output.Formatter
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "firelens",
	Short: "Firelens console - query expressions for document databases",
	Long: `Firelens parses fluent query expressions, builds the wire-format
structured query for the remote document query protocol, ranks
completion candidates for an editor cursor position, and decodes
wire-tagged result rows.

Examples:
  firelens build "db.collection('users').where('age', '>=', 21).limit(10).get()"
  firelens complete --cursor 18 "db.collection('use"
  firelens decode rows.json`,
	SilenceUsage:      true,
	PersistentPreRunE: initialize,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&collectionFlag, "collection", "",
		"default collection when the expression names none")
	rootCmd.PersistentFlags().IntVar(&limitFlag, "limit", 0,
		"default result limit when the expression names none")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "",
		"output format: table, json, yaml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"enable debug output")

	viper.SetEnvPrefix("FIRELENS")
	_ = viper.BindEnv("debug") // FIRELENS_DEBUG

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(versionCmd)
}

func initialize(cmd *cobra.Command, args []string) error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	if debug || viper.GetBool("debug") || cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Flags override config
	if collectionFlag != "" {
		cfg.Query.DefaultCollection = collectionFlag
	}
	if limitFlag > 0 {
		cfg.Query.DefaultLimit = limitFlag
	}
	if outputFmt != "" {
		cfg.Output = outputFmt
	}

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	formatter = output.NewFormatter(format, os.Stdout)

	return nil
}

// readInput returns the first positional argument, or stdin when absent
// or "-".
func readInput(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	return string(data), nil
}
