package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/hippique/internal/config"
	"github.com/yourusername/hippique/internal/datasource"
	"github.com/yourusername/hippique/internal/logger"
	"github.com/yourusername/hippique/internal/service"
)

// app carries what every subcommand needs once the config is loaded.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	session *service.Session
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "hippique",
		Short:         "Horse racing actor rankings, predictive scores and stake plans",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cfgFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath,
		"config file; environment variables prefixed "+config.EnvPrefix+"_ override it")

	rootCmd.AddCommand(newRankCmd(a))
	rootCmd.AddCommand(newStakeCmd(a))
	rootCmd.AddCommand(newExportCmd(a))

	return rootCmd
}

func (a *app) init(cfgFile string) error {
	cfg, err := config.LoadWithDefaults(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.ValidateEnvironment(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.NewLogger(cfg.App.LogLevel)
	// stdout carries command output
	log.SetOutput(os.Stderr)

	provider, err := datasource.NewFactory(cfg.Data, log).Create()
	if err != nil {
		return fmt.Errorf("failed to create data provider: %w", err)
	}

	a.cfg = cfg
	a.log = log
	a.session = service.NewSessionFromConfig(cfg, provider, log)

	log.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"provider":    provider.Name(),
	}).Debug("Configuration loaded")
	return nil
}
