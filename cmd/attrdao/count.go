/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCountCmd(a *app) *cobra.Command {
	var where string

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print the number of items, optionally matching a predicate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				n   int64
				err error
			)
			if where == "" {
				n, err = a.dao.CountRows(cmd.Context())
			} else {
				n, err = a.dao.CountRowsWhere(cmd.Context(), where)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	}

	cmd.Flags().StringVarP(&where, "where", "w", "", "predicate appended as the where clause (not escaped)")
	return cmd
}
