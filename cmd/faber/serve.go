package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/faber/bootstrap"
	"github.com/kbukum/faber/config"
)

func newServeCmd() *cobra.Command {
	var configFile, envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the configured containers over HTTP",
		Long: `Load the service configuration, build the primary container from
container.files and container.env_file, freeze container.freeze and serve
the registry until SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []config.LoaderOption
			if configFile != "" {
				opts = append(opts, config.WithConfigFile(configFile))
			}
			if envFile != "" {
				opts = append(opts, config.WithEnvFile(envFile))
			}

			var cfg config.Config
			if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
				return err
			}
			if cfg.Name == "" {
				cfg.Name = serviceName
			}

			app, err := bootstrap.NewApp(cmd.Context(), &cfg)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file (default: config.yml lookup)")
	cmd.Flags().StringVar(&envFile, "env-file", "", ".env file applied to the environment")
	return cmd
}
