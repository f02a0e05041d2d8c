package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aretw0/stoat"
	"github.com/aretw0/stoat/internal/config"
	"github.com/aretw0/stoat/internal/platform"
	"github.com/aretw0/stoat/pkg/loader"
)

var (
	verbose    bool
	strict     bool
	configPath string
	pattern    string

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stoat",
	Short: "Parse markdown notes into structured trees",
	Long: `Stoat reads notes made of an optional YAML or TOML preamble and a markdown body.
It checks that they parse, renders them back as markdown or plain text, and
extracts their text content.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		handler := log.NewWithOptions(os.Stderr, log.Options{
			Level:           level,
			ReportTimestamp: verbose,
		})
		slog.SetDefault(slog.New(handler))

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("strict") {
			cfg.Strict = strict
		}
		if cmd.Flags().Changed("pattern") {
			cfg.Pattern = pattern
		}
		return cfg.Validate()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Fail on unknown inline constructs instead of dropping them")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/stoat/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&pattern, "pattern", "", "Glob selecting note files below the directory (default \"**/*.md\")")
}

// newParser builds a parser from the loaded configuration.
func newParser(opts ...stoat.Option) *stoat.Parser {
	base := []stoat.Option{
		stoat.WithStrict(cfg.Strict),
		stoat.WithMetadataKeys(cfg.MetadataKeys),
		stoat.WithLogger(slog.Default()),
	}
	return stoat.New(append(base, opts...)...)
}

// newLoader opens the notes below dir, or below the enclosing project root
// when dir is empty.
func newLoader(dir string, opts ...loader.Option) (*loader.Loader, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir, err = platform.FindRoot(wd)
		if err != nil {
			dir = wd
		}
	}

	base := []loader.Option{
		loader.WithPattern(cfg.Pattern),
		loader.WithLogger(slog.Default()),
	}
	return loader.New(dir, append(base, opts...)...)
}

func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
