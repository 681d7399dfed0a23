// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/aibor/vfstree/internal/bind"
	"github.com/spf13/pflag"
)

// options are the flags shared by all commands.
type options struct {
	rootFS       string
	binds        bind.List
	configFile   string
	allowMissing bool
	debug        bool
	metrics      bool
}

func (o *options) addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(
		&o.rootFS,
		"rootfs",
		"r",
		o.rootFS,
		"host directory used as guest root (default is the host root)",
	)

	flags.VarP(
		&o.binds,
		"bind",
		"b",
		"make host path visible at guest path. Guest path defaults to the "+
			"host path. Flag may be used more than once.",
	)

	flags.StringVarP(
		&o.configFile,
		"config",
		"c",
		o.configFile,
		"YAML file with rootfs and bindings. Flags are applied on top.",
	)

	flags.BoolVar(
		&o.allowMissing,
		"allow-missing",
		o.allowMissing,
		"do not fail for host paths that do not exist",
	)

	flags.BoolVar(
		&o.debug,
		"debug",
		o.debug,
		"enable debug output",
	)

	flags.BoolVar(
		&o.metrics,
		"metrics",
		o.metrics,
		"print tree metrics to stderr when done",
	)
}

// config merges the config file with the flags and validates the result.
func (o *options) config() (bind.Config, error) {
	var cfg bind.Config

	if o.configFile != "" {
		var err error

		cfg, err = bind.LoadFile(o.configFile)
		if err != nil {
			return bind.Config{}, fmt.Errorf("config file: %w", err)
		}
	}

	if o.rootFS != "" {
		rootFS, err := filepath.Abs(o.rootFS)
		if err != nil {
			return bind.Config{}, fmt.Errorf("rootfs: %w", err)
		}

		cfg.RootFS = rootFS
	}

	cfg.Binds = append(cfg.Binds, o.binds...)
	cfg.AllowMissing = cfg.AllowMissing || o.allowMissing

	err := cfg.Validate()
	if err != nil {
		//nolint:wrapcheck
		return bind.Config{}, err
	}

	return cfg, nil
}
