/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import "github.com/spf13/cobra"

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Print the item stored under id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.dao.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), rec)
		},
	}
}
