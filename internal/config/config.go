// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

// Package config loads credkit configuration from an optional YAML file with
// command-line flag overrides.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/credkit/credkit/internal/auth"
	"github.com/credkit/credkit/internal/xdg"
)

// Config keys, also usable as flag names.
const (
	KeySecret      = "auth.secret"
	KeyTokenTTL    = "auth.token_ttl"
	KeyBcryptCost  = "auth.bcrypt_cost"
	KeyDatabaseURL = "database.url"
	KeySessionPath = "session.path"
	KeyLogFormat   = "log.format"
)

// Config holds the resolved configuration.
type Config struct {
	Auth struct {
		// Secret signs and verifies session tokens. Read once at startup,
		// never logged, never hot-reloaded.
		Secret     string
		TokenTTL   time.Duration
		BcryptCost int
	}
	Database struct {
		URL string
	}
	Session struct {
		Path string
	}
	Log struct {
		Format string
	}
}

// DefaultFile returns the default config file location.
func DefaultFile() string {
	return filepath.Join(xdg.ConfigDir(), "config.yaml")
}

// Load resolves configuration in precedence order: defaults, then the YAML
// file, then explicitly set flags. An empty path selects DefaultFile, which
// may be absent; a path given explicitly must exist.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		KeyTokenTTL:   auth.DefaultTokenTTL.String(),
		KeyBcryptCost: auth.DefaultBcryptCost,
		KeyLogFormat:  "json",
	}
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, oops.Code("CONFIG_DEFAULT_FAILED").With("key", key).Wrap(err)
		}
	}

	required := path != ""
	if path == "" {
		path = DefaultFile()
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		missing := errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist)
		if required || !missing {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := &Config{}
	cfg.Auth.Secret = k.String(KeySecret)
	cfg.Auth.TokenTTL = k.Duration(KeyTokenTTL)
	cfg.Auth.BcryptCost = k.Int(KeyBcryptCost)
	cfg.Database.URL = k.String(KeyDatabaseURL)
	cfg.Session.Path = k.String(KeySessionPath)
	cfg.Log.Format = k.String(KeyLogFormat)

	if cfg.Auth.TokenTTL <= 0 {
		return nil, oops.Code("CONFIG_INVALID").
			With("key", KeyTokenTTL).
			Errorf("token ttl must be positive")
	}

	return cfg, nil
}

// RegisterFlags declares the config override flags on the given flag set.
// Flag names match config keys so posflag can map them directly.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(KeySecret, "", "token signing secret")
	flags.Duration(KeyTokenTTL, auth.DefaultTokenTTL, "session token validity")
	flags.Int(KeyBcryptCost, auth.DefaultBcryptCost, "bcrypt work factor")
	flags.String(KeyDatabaseURL, "", "postgres connection url")
	flags.String(KeySessionPath, "", "client session file path")
	flags.String(KeyLogFormat, "json", "log format (json or text)")
}
