package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/consoleapi/version"
)

func (c *cli) versionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			info := version.Get()
			if short {
				_, err := fmt.Fprintln(c.out, info.Short())
				return err
			}
			return c.print(info)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version string")
	return cmd
}
