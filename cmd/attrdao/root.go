/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/suparena/attrdao"
	"github.com/suparena/attrdao/config"
	"github.com/suparena/attrdao/logging"
	"github.com/suparena/attrdao/mapper"
)

// recordDAO builds the DAO used by every subcommand. Tests replace it.
var recordDAO = func(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*attrdao.DAO[mapper.Record], error) {
	return attrdao.NewFromConfig[mapper.Record](ctx, cfg, mapper.RecordMapper(), attrdao.WithLogger(logger))
}

// app carries the state shared by the subcommands of one invocation.
type app struct {
	configFile string
	domain     string
	region     string
	endpoint   string
	logLevel   string
	output     string

	cfg    *config.Config
	logger zerolog.Logger
	dao    *attrdao.DAO[mapper.Record]
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "attrdao",
		Short: "Read-only access to a schemaless attribute store",
		Long: `attrdao reads items from one domain of an attribute store.
Items are printed as records: the item key plus every attribute value.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "TOML configuration file")
	flags.StringVarP(&a.domain, "domain", "d", "", "domain (table) to read")
	flags.StringVar(&a.region, "region", "", "store region")
	flags.StringVar(&a.endpoint, "endpoint", "", "store endpoint override, e.g. http://localhost:8000")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVarP(&a.output, "output", "o", "json", "output format: json or yaml")

	rootCmd.AddCommand(
		newGetCmd(a),
		newPageCmd(a),
		newAllCmd(a),
		newCountCmd(a),
		newSelectCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// setup loads the configuration and opens the DAO before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := validateOutput(a.output); err != nil {
		return err
	}

	flags := make(map[string]any)
	set := func(name, key, value string) {
		if cmd.Flags().Changed(name) {
			flags[key] = value
		}
	}
	set("domain", "domain", a.domain)
	set("region", "store.region", a.region)
	set("endpoint", "store.endpoint", a.endpoint)
	set("log-level", "logging.level", a.logLevel)

	cfg, err := config.Load(cmd.Context(), a.configFile, flags)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.Configure(cfg.Logging)
	a.logger.Debug().Str("config", a.configFile).Msg("configuration loaded")

	a.dao, err = recordDAO(cmd.Context(), cfg, a.logger)
	return err
}
