package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/faber/container"
	"github.com/kbukum/faber/humanize"
	"github.com/kbukum/faber/loader"
	"github.com/kbukum/faber/logger"
)

func newInspectCmd() *cobra.Command {
	var (
		id     string
		freeze []string
	)

	cmd := &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Load definition files into a container and print its snapshot",
		Long: `Load YAML, JSON, TOML or .env files into a fresh container, in order,
and print the container as JSON. Earlier files win on duplicate names.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, files []string) error {
			c, err := container.New(
				container.WithID(id),
				container.WithLogger(logger.GetGlobalLogger()),
			)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := loader.LoadFiles(c, files...); err != nil {
				return err
			}
			for _, name := range freeze {
				if err := c.Freeze(name); err != nil {
					return err
				}
			}

			out, err := humanize.Humanize(c).JSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "container id (default: generated)")
	cmd.Flags().StringSliceVar(&freeze, "freeze", nil, "entries to freeze after loading")
	return cmd
}
