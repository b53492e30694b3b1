// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Credkit Contributors

package auth

import "github.com/prometheus/client_golang/prometheus"

// Metrics contains Prometheus counters for auth operation outcomes.
// Outcome labels are coarse on purpose; no usernames or token material ever
// reach the metric labels.
type Metrics struct {
	RegistrationsTotal *prometheus.CounterVec
	LoginsTotal        *prometheus.CounterVec
	IdentifiesTotal    *prometheus.CounterVec
}

// NewMetrics creates and registers auth metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RegistrationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credkit_registrations_total",
				Help: "Total number of registration attempts by outcome",
			},
			[]string{"outcome"},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credkit_logins_total",
				Help: "Total number of login attempts by outcome",
			},
			[]string{"outcome"},
		),
		IdentifiesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credkit_identifies_total",
				Help: "Total number of token identifications by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.RegistrationsTotal)
	reg.MustRegister(m.LoginsTotal)
	reg.MustRegister(m.IdentifiesTotal)

	return m
}

// The record helpers are nil-safe so an uninstrumented Service pays only a
// nil check.

func (m *Metrics) recordRegister(outcome string) {
	if m == nil {
		return
	}
	m.RegistrationsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) recordLogin(outcome string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) recordIdentify(outcome string) {
	if m == nil {
		return
	}
	m.IdentifiesTotal.WithLabelValues(outcome).Inc()
}
