/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"

	"github.com/suparena/attrdao/paging"
)

func newAllCmd(a *app) *cobra.Command {
	var stream bool

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Print every item of the domain",
		Long: `Print every item of the domain. With --stream items are printed one by one
as batches arrive instead of after the whole domain has been read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !stream {
				records, err := a.dao.GetAll(cmd.Context())
				if err != nil {
					return err
				}
				return a.render(cmd.OutOrStdout(), records)
			}

			progress := paging.WithProgressHandler(func(p paging.StreamProgress) {
				a.logger.Debug().
					Int64("items", p.ItemsProcessed).
					Int("pages", p.PagesProcessed).
					Float64("rate", p.CurrentRate).
					Msg("stream progress")
			})
			for res := range a.dao.Stream(cmd.Context(), progress) {
				if res.Error != nil {
					return res.Error
				}
				if err := a.render(cmd.OutOrStdout(), res.Item); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stream, "stream", false, "print items as they arrive")
	return cmd
}
