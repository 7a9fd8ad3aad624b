/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suparena/attrdao"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// No configuration is needed to print the version.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateOutput(a.output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := attrdao.GetVersionInfo()
			if cmd.Flags().Changed("output") {
				return a.render(cmd.OutOrStdout(), info)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "attrdao version %s\n", info.Version)
			fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
			return nil
		},
	}
}
