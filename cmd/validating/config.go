// Copyright 2026 The Validating Base Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package main

import (
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultConfigFile is read when --config is not given and the file
// exists in the working directory.
const DefaultConfigFile = ".validating.yaml"

// envPrefix namespaces the environment variables read by the CLI.
const envPrefix = "VALIDATING_"

// Config collects everything the CLI can be told. Values load in
// order: built-in defaults, then the config file, then environment
// variables, then explicit flags.
type Config struct {
	Check CheckConfig `koanf:"check"`
	Log   LogConfig   `koanf:"log"`
}

// CheckConfig configures the check and contracts commands.
type CheckConfig struct {
	// The directory to resolve package patterns in.
	Dir string `koanf:"dir"`
	// Output format: text, json or yaml.
	Format string `koanf:"format"`
	// The package patterns to check.
	Packages []string `koanf:"packages"`
	// Exit non-zero when broken contracts are reported.
	SetExitStatus bool `koanf:"set_exit_status"`
	// Include test sources in the analysis.
	Tests bool `koanf:"tests"`
}

// LogConfig configures the diagnostic logger.
type LogConfig struct {
	// Log format: console or json.
	Format string `koanf:"format"`
	// Minimum level to emit.
	Level string `koanf:"level"`
}

// defaultConfig returns the built-in settings.
func defaultConfig() Config {
	return Config{
		Check: CheckConfig{
			Dir:      ".",
			Format:   "text",
			Packages: []string{"./..."},
		},
		Log: LogConfig{
			Format: "console",
			Level:  "info",
		},
	}
}

// loadConfig merges the file at path and the VALIDATING_* environment
// over the defaults. A missing file is only an error when it was named
// explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()

	k := koanf.New(".")
	if path != "" {
		err := k.Load(file.Provider(path), yaml.Parser())
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// The default config file is optional.
		default:
			return cfg, errors.Wrapf(err, "loading %s", path)
		}
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return cfg, errors.Wrap(err, "reading environment")
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing configuration")
	}
	return cfg, nil
}

// envKey maps VALIDATING_CHECK_SET_EXIT_STATUS to check.set_exit_status.
// Only the first underscore separates the section from the key, so key
// names keep their own underscores.
func envKey(name string) string {
	name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
	section, key, found := strings.Cut(name, "_")
	if !found {
		return name
	}
	return section + "." + key
}

// Validate rejects values the commands cannot act on.
func (c *Config) Validate() error {
	switch c.Check.Format {
	case "text", "json", "yaml":
	default:
		return errors.Errorf("unknown output format %q", c.Check.Format)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.Errorf("unknown log format %q", c.Log.Format)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log level")
	}
	return nil
}

// logger builds the diagnostic logger described by the Log section.
// Verbose wins over the configured level.
func (c *Config) logger(verbose bool) zerolog.Logger {
	var out io.Writer = os.Stderr
	if c.Log.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
