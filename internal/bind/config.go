// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bind

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aibor/vfstree/internal/vfs"
	"gopkg.in/yaml.v3"
)

// Config is the complete set of bindings for a tree.
type Config struct {
	// RootFS is the host directory used as guest root. Empty means the host
	// root.
	RootFS string `yaml:"rootfs,omitempty"`

	// Binds are applied in order after the RootFS.
	Binds List `yaml:"binds,omitempty"`

	// AllowMissing skips the existence check of host paths.
	AllowMissing bool `yaml:"allowMissing,omitempty"`
}

// Load reads a YAML configuration. Unknown fields are rejected.
func Load(reader io.Reader) (Config, error) {
	var cfg Config

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	err := decoder.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	for idx := range cfg.Binds {
		err := cfg.Binds[idx].normalize()
		if err != nil {
			return Config{}, err
		}
	}

	if cfg.RootFS != "" {
		rootFS, err := filepath.Abs(cfg.RootFS)
		if err != nil {
			return Config{}, fmt.Errorf("rootfs: %w", err)
		}

		cfg.RootFS = rootFS
	}

	return cfg, nil
}

// LoadFile reads the YAML configuration file at the given path.
func LoadFile(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	return Load(file)
}

// Bindings returns all bindings including the rootfs as binding for "/".
func (c *Config) Bindings() []Binding {
	bindings := make([]Binding, 0, len(c.Binds)+1)

	if c.RootFS != "" {
		bindings = append(bindings, Binding{Host: c.RootFS, Guest: "/"})
	}

	return append(bindings, c.Binds...)
}

// Validate checks that all host paths exist, unless [Config.AllowMissing]
// is set.
func (c *Config) Validate() error {
	if c.AllowMissing {
		return nil
	}

	for _, binding := range c.Bindings() {
		_, err := os.Lstat(binding.Host)
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrHostPathMissing
		}

		if err != nil {
			return &Error{Op: "validate", Binding: binding, Err: err}
		}
	}

	return nil
}

// Apply binds all bindings into the tree. The rootfs is bound first, so it
// does not hide the other bindings.
func (c *Config) Apply(tree *vfs.Tree) error {
	for _, binding := range c.Bindings() {
		_, err := tree.Bind(binding.Guest, binding.Host)
		if err != nil {
			return &Error{Op: "apply", Binding: binding, Err: err}
		}

		slog.Debug("Applied binding",
			slog.String("host", binding.Host),
			slog.String("guest", binding.Guest),
		)
	}

	return nil
}
