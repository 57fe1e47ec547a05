/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/ssargent/cohbin/pkg/catalog"
	"github.com/ssargent/cohbin/pkg/config"
	"github.com/ssargent/cohbin/pkg/di"
	"github.com/ssargent/cohbin/pkg/logging"
	"github.com/ssargent/cohbin/pkg/metrics"
	"github.com/ssargent/cohbin/pkg/parse7"
)

type contextKey struct{}

// runtime is what PersistentPreRunE prepares for every command
type runtime struct {
	config     *config.Config
	configPath string
	logger     zerolog.Logger
}

var container *di.Container

// SetContainer injects the dependency container
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cohbin",
	Short: "cohbin - game data file decoder",
	Long: `cohbin reads pigg archives and decodes the Parse7 bin files inside them
into typed records, printed as JSON or YAML, stored as exports, or served
over a REST API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		explicit := configPath != ""
		if !explicit {
			configPath = config.GetDefaultConfigPath()
		}

		cfg := config.DefaultConfig()
		if config.ConfigExists(configPath) {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		} else if explicit && cmd.Name() != "init" {
			return fmt.Errorf("config file %s does not exist", configPath)
		}

		if cmd.Flags().Changed("archive") {
			cfg.Archive, _ = cmd.Flags().GetString("archive")
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("log-format") {
			cfg.Logging.Format, _ = cmd.Flags().GetString("log-format")
		}

		logger, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if container == nil {
			container = di.NewContainer(logger)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(context.WithValue(ctx, contextKey{}, &runtime{
			config:     cfg,
			configPath: configPath,
			logger:     logger,
		}))
		return nil
	},
}

func runtimeFrom(cmd *cobra.Command) (*runtime, error) {
	rt, ok := cmd.Context().Value(contextKey{}).(*runtime)
	if !ok {
		return nil, errors.New("runtime not found in context")
	}
	return rt, nil
}

// openCatalog opens the configured archive, and the messages archive when it
// is separate. m may be nil.
func openCatalog(rt *runtime, m *metrics.Metrics) (*catalog.Catalog, error) {
	open := container.GetArchiveOpener()

	archive, err := open(rt.config.Archive)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	opts := catalog.Options{Config: rt.config, Logger: rt.logger, Metrics: m}
	if path := rt.config.MessagesArchivePath(); path != rt.config.Archive {
		texts, err := open(path)
		if err != nil {
			rt.logger.Warn().Err(err).Str("path", path).Msg("messages archive unavailable")
			opts.Messages = emptySource{}
		} else {
			opts.Messages = texts
		}
	}
	return catalog.New(archive, opts), nil
}

// emptySource stands in for a messages archive that could not be opened
type emptySource struct{}

func (emptySource) Bytes(name string) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s", catalog.ErrNoMessages, name)
}

var _ parse7.Source = emptySource{}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default ~/.config/cohbin/config.yaml)")
	rootCmd.PersistentFlags().StringP("archive", "a", "", "Pigg archive to read")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format (console, json)")
}
