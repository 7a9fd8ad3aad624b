/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/suparena/attrdao/datastore"
	"github.com/suparena/attrdao/errors"
)

// EnvPrefix prefixes the environment variables read by Load.
// ATTRDAO_STORE__REGION sets store.region, ATTRDAO_PAGE_SIZE sets page_size.
const EnvPrefix = "ATTRDAO_"

// DotEnvFile is loaded into the process environment when present.
const DotEnvFile = ".env"

// Store holds the credentials and location of the attribute store.
type Store struct {
	AccessKey    string `koanf:"access_key" validate:"required"`
	SecretKey    string `koanf:"secret_key" validate:"required"`
	SessionToken string `koanf:"session_token"`
	Region       string `koanf:"region" validate:"required"`
	Endpoint     string `koanf:"endpoint" validate:"omitempty,url"`
}

// Logging configures the logger built by the logging package.
type Logging struct {
	Enabled bool   `koanf:"enabled"`
	Level   string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format  string `koanf:"format" validate:"omitempty,oneof=json console"`
}

// Config is the complete runtime configuration.
type Config struct {
	Store    Store   `koanf:"store"`
	Domain   string  `koanf:"domain"`
	PageSize int     `koanf:"page_size" validate:"gte=0,lte=250"`
	Logging  Logging `koanf:"logging"`
}

var defaults = map[string]any{
	"logging.enabled": true,
	"logging.level":   "info",
	"logging.format":  "json",
}

// Load builds a Config from, in increasing precedence: defaults, the standard
// AWS environment variables, a TOML file, ATTRDAO_ environment variables and
// the flags map. A .env file in the working directory is read first.
func Load(_ context.Context, configFile string, flags map[string]any) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", DotEnvFile, err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}
	if err := k.Load(confmap.Provider(awsEnv(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading AWS environment: %w", err)
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("error loading config from env: %w", err)
	}

	if len(flags) > 0 {
		if err := k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, fmt.Errorf("error loading flags: %w", err)
		}
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return nil, fmt.Errorf("error building config: %w", err)
	}
	return &c, nil
}

// awsEnv picks up the variables understood by the AWS tooling.
func awsEnv() map[string]any {
	vars := map[string]string{
		"store.access_key":    "AWS_ACCESS_KEY_ID",
		"store.secret_key":    "AWS_SECRET_ACCESS_KEY",
		"store.session_token": "AWS_SESSION_TOKEN",
		"store.region":        "AWS_REGION",
	}
	m := make(map[string]any, len(vars))
	for key, name := range vars {
		if v := os.Getenv(name); v != "" {
			m[key] = v
		}
	}
	return m
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks the configuration and reports the first offending field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			return errors.NewValidationError(field, fmt.Sprintf("failed on %q (%s)", fe.Tag(), fe.Param()))
		}
		return errors.NewValidationError(field, fmt.Sprintf("failed on %q", fe.Tag()))
	}
	return errors.NewValidationError("", err.Error())
}

// Credentials returns the store settings in the form expected by a Connector.
func (c *Config) Credentials() datastore.Credentials {
	return datastore.Credentials{
		AccessKey:    c.Store.AccessKey,
		SecretKey:    c.Store.SecretKey,
		SessionToken: c.Store.SessionToken,
		Region:       c.Store.Region,
		Endpoint:     c.Store.Endpoint,
	}
}

func (c *Config) String() string {
	var result string
	result += fmt.Sprintf("Domain: %v\n", c.Domain)
	result += fmt.Sprintf("Region: %v\n", c.Store.Region)
	if c.Store.Endpoint != "" {
		result += fmt.Sprintf("Endpoint: %v\n", c.Store.Endpoint)
	}
	result += fmt.Sprintf("AccessKey: %v\n", redact(c.Store.AccessKey))
	result += fmt.Sprintf("SecretKey: %v\n", mask(c.Store.SecretKey))
	if c.PageSize > 0 {
		result += fmt.Sprintf("PageSize: %v\n", c.PageSize)
	}
	result += fmt.Sprintf("Logging: enabled=%v level=%v format=%v\n", c.Logging.Enabled, c.Logging.Level, c.Logging.Format)
	return result
}

func mask(secret string) string {
	if secret == "" {
		return "<unset>"
	}
	return "****"
}

func redact(secret string) string {
	switch {
	case secret == "":
		return "<unset>"
	case len(secret) <= 4:
		return "****"
	default:
		return secret[:4] + "****"
	}
}
