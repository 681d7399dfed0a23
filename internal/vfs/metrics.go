// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts tree operations. A nil *Metrics is valid and counts nothing.
type Metrics struct {
	Resolutions      prometheus.Counter
	SymlinksFollowed prometheus.Counter
	DirectoryFills   prometheus.Counter
	FillAnomalies    prometheus.Counter
	ReclaimedNodes   prometheus.Counter
	DeletedNodes     prometheus.Counter
	ResolveFailures  *prometheus.CounterVec
}

// NewMetrics creates a new set of unregistered counters.
func NewMetrics() *Metrics {
	return &Metrics{
		Resolutions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vfstree_resolutions_total",
			Help: "Number of path resolutions",
		}),
		SymlinksFollowed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vfstree_symlinks_followed_total",
			Help: "Number of symbolic links followed during path resolution",
		}),
		DirectoryFills: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vfstree_directory_fills_total",
			Help: "Number of host directories read into the tree",
		}),
		FillAnomalies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vfstree_fill_anomalies_total",
			Help: "Number of directory entries that were already present as non-special nodes",
		}),
		ReclaimedNodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vfstree_reclaimed_nodes_total",
			Help: "Number of nodes removed by flushing children",
		}),
		DeletedNodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vfstree_deleted_nodes_total",
			Help: "Number of nodes removed by subtree deletion",
		}),
		ResolveFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vfstree_resolve_failures_total",
			Help: "Number of failed path resolutions by error",
		}, []string{"error"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Resolutions,
		m.SymlinksFollowed,
		m.DirectoryFills,
		m.FillAnomalies,
		m.ReclaimedNodes,
		m.DeletedNodes,
		m.ResolveFailures,
	}
}

// Register registers all counters with the given registerer.
func (m *Metrics) Register(registerer prometheus.Registerer) error {
	for _, collector := range m.collectors() {
		err := registerer.Register(collector)
		if err != nil {
			return fmt.Errorf("register: %w", err)
		}
	}

	return nil
}

// Unregister removes all counters from the given registerer.
func (m *Metrics) Unregister(registerer prometheus.Registerer) {
	for _, collector := range m.collectors() {
		registerer.Unregister(collector)
	}
}

func (m *Metrics) resolution() {
	if m != nil {
		m.Resolutions.Inc()
	}
}

func (m *Metrics) resolveFailure(err error) {
	if m == nil {
		return
	}

	label := "other"

	for _, known := range []error{
		ErrNotFound,
		ErrNotDir,
		ErrTooManyLinks,
		ErrInvalid,
	} {
		if errors.Is(err, known) {
			label = known.Error()
			break
		}
	}

	m.ResolveFailures.WithLabelValues(label).Inc()
}

func (m *Metrics) symlinkFollowed() {
	if m != nil {
		m.SymlinksFollowed.Inc()
	}
}

func (m *Metrics) fill() {
	if m != nil {
		m.DirectoryFills.Inc()
	}
}

func (m *Metrics) anomaly() {
	if m != nil {
		m.FillAnomalies.Inc()
	}
}

func (m *Metrics) reclaim(count int) {
	if m != nil {
		m.ReclaimedNodes.Add(float64(count))
	}
}

func (m *Metrics) deleted(count int) {
	if m != nil {
		m.DeletedNodes.Add(float64(count))
	}
}
