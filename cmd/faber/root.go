package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/faber/logger"
)

const serviceName = "faber"

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   serviceName,
		Short: "A lazy-initialization service container",
		Long: `faber stores properties and factories in named containers.
Factories are invoked on first use and their results cached per argument set.

Examples:
  faber inspect defs.yml .env       Print the snapshot of a container
  faber serve --config config.yml   Serve containers over HTTP
  faber version                     Print build information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg := logger.Config{ServiceName: serviceName, Level: "warn", Output: "stderr"}
			if verbose {
				cfg.Level = "debug"
			}
			cfg.ApplyDefaults()
			logger.Init(cfg)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newInspectCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())
	return root
}
