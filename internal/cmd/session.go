// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aibor/vfstree/internal/bind"
	"github.com/aibor/vfstree/internal/vfs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// session is the tree a command works on.
type session struct {
	tree     *vfs.Tree
	registry *prometheus.Registry
}

func newSession(host vfs.Host, cfg bind.Config, logger *slog.Logger) (*session, error) {
	metrics := vfs.NewMetrics()
	registry := prometheus.NewRegistry()

	err := metrics.Register(registry)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	tree := vfs.NewTree(host,
		vfs.WithLogger(logger),
		vfs.WithMetrics(metrics),
	)

	err = cfg.Apply(tree)
	if err != nil {
		//nolint:wrapcheck
		return nil, err
	}

	return &session{
		tree:     tree,
		registry: registry,
	}, nil
}

// resolve resolves path from the root of the tree.
func (s *session) resolve(path string, flags vfs.Flag) (*vfs.Node, error) {
	root := s.tree.Root()

	//nolint:wrapcheck
	return s.tree.Resolve(root, root, path, flags)
}

// writeMetrics writes all metrics in text exposition format.
func (s *session) writeMetrics(w io.Writer) error {
	families, err := s.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	encoder := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))

	for _, family := range families {
		err := encoder.Encode(family)
		if err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}

	if closer, ok := encoder.(expfmt.Closer); ok {
		err := closer.Close()
		if err != nil {
			return fmt.Errorf("close metrics encoder: %w", err)
		}
	}

	return nil
}
