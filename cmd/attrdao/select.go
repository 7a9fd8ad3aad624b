/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import "github.com/spf13/cobra"

func newSelectCmd(a *app) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "select [statement]",
		Short: "Run a store-native select statement and print the matching items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.dao.Select(cmd.Context(), args[0], token)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), page)
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "continuation token from a previous run")
	return cmd
}
