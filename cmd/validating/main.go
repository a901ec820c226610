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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alex-flnx/validating-base/pkg/lint"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	exec, err := os.Executable()
	if err == nil {
		exec = filepath.Base(exec)
	} else {
		exec = "validating"
	}

	var (
		cfg           Config
		configPath    string
		dir           string
		format        string
		setExitStatus bool
		tests         bool
		verbose       bool
	)

	root := &cobra.Command{
		Use:           exec,
		Short:         "Checks declared method contracts in Go source",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path, explicit := configPath, configPath != ""
			if !explicit {
				path = DefaultConfigFile
			}
			loaded, err := loadConfig(path, explicit)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "",
		"read settings from this file (default "+DefaultConfigFile+" if present)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v",
		false, "enable additional diagnostic messages")

	// Explicit flags win over whatever loadConfig produced.
	override := func(cmd *cobra.Command) error {
		f := cmd.Flags()
		if f.Changed("dir") {
			cfg.Check.Dir = dir
		}
		if f.Changed("format") {
			cfg.Check.Format = format
		}
		if f.Changed("set_exit_status") {
			cfg.Check.SetExitStatus = setExitStatus
		}
		if f.Changed("tests") {
			cfg.Check.Tests = tests
		}
		return cfg.Validate()
	}

	newChecker := func() *lint.Checker {
		return &lint.Checker{
			Dir:      cfg.Check.Dir,
			Logger:   cfg.logger(verbose),
			Packages: cfg.Check.Packages,
			Tests:    cfg.Check.Tests,
		}
	}

	check := &cobra.Command{
		Use:   "check [packages]",
		Short: "Verify the contract declarations in the given packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cleanup := withInterrupt(cmd)
			defer cleanup()

			if err := override(cmd); err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Check.Packages = args
			}

			c := newChecker()
			results, err := c.Execute(ctx)
			if err != nil {
				return err
			}
			if err := printResults(cmd, c.Dir, cfg.Check.Format, results); err != nil {
				return err
			}
			if cfg.Check.SetExitStatus && results.HasErrors() {
				return errors.New("broken contracts reported")
			}
			return nil
		},
	}

	contracts := &cobra.Command{
		Use:   "contracts [packages]",
		Short: "List the contract declarations in the given packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cleanup := withInterrupt(cmd)
			defer cleanup()

			if err := override(cmd); err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Check.Packages = args
			}

			decls, err := newChecker().Declarations(ctx)
			if err != nil {
				return err
			}
			return printDeclarations(cmd, cfg.Check.Format, decls)
		},
	}

	for _, cmd := range []*cobra.Command{check, contracts} {
		cmd.Flags().StringVarP(&dir, "dir", "d",
			".", "override the current working directory")
		cmd.Flags().StringVarP(&format, "format", "f",
			"text", "output format: text, json or yaml")
		cmd.Flags().BoolVarP(&tests, "tests", "t",
			false, "include test sources in the analysis")
	}
	check.Flags().BoolVar(&setExitStatus, "set_exit_status",
		false, "return a non-zero exit code if broken contracts are reported")

	root.AddCommand(check, contracts)

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	os.Exit(0)
}

// withInterrupt derives a context that is canceled by SIGINT. The
// returned cleanup must be deferred.
func withInterrupt(cmd *cobra.Command) (context.Context, func()) {
	ctx, cancel := context.WithCancel(cmd.Context())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT)

	go func() {
		if _, open := <-sig; open {
			cmd.Println("Interrupted")
			cancel()
		}
	}()

	return ctx, func() {
		signal.Stop(sig)
		close(sig)
		cancel()
	}
}

// printResults renders check findings in the requested format.
func printResults(cmd *cobra.Command, dir, format string, results lint.Results) error {
	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, res := range results {
			cmd.Println(res.StringRelative(dir))
		}
		return nil
	}
}

// printDeclarations renders found declarations in the requested format.
func printDeclarations(cmd *cobra.Command, format string, decls lint.Declarations) error {
	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(decls)
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		if err := enc.Encode(decls); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, decl := range decls {
			cmd.Println(decl.String())
		}
		return nil
	}
}
