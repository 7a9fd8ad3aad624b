/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import "github.com/spf13/cobra"

func newPageCmd(a *app) *cobra.Command {
	var (
		count int
		token string
	)

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Print one batch of items and the token for the next batch",
		Long: `Print one batch of at most --count items (250 when unset or out of range).
Pass the printed nextToken back with --token to continue.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var countPtr *int
			if cmd.Flags().Changed("count") {
				countPtr = &count
			} else if a.cfg.PageSize > 0 {
				countPtr = &a.cfg.PageSize
			}

			page, err := a.dao.GetPortion(cmd.Context(), countPtr, token)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), page)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "maximum number of items")
	cmd.Flags().StringVarP(&token, "token", "t", "", "continuation token from a previous page")
	return cmd
}
