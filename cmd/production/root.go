package main

import (
	"os"

	"github.com/spf13/cobra"

	"bakery-production/internal/config"
)

type rootOptions struct {
	configPath string
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.Load(o.configPath)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "production",
		Short:         "Bakery production scheduling service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = config.DefaultPath
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", path, "path to the YAML config (env CONFIG_PATH)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newTokenCommand(opts))
	cmd.AddCommand(newCapacityCommand())

	return cmd
}
