package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/vimcore/internal/config"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the configuration in effect",
		Long: `config loads the configuration file and environment overrides, checks
them and prints the result. Without --config it prints the defaults, which
makes a starting point for a new file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg, config.Format(format))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatTOML), "output format (toml, yaml)")
	return cmd
}
