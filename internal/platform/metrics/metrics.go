// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

// Package metrics registers the Prometheus instruments exposed on /metrics.
//
// # Usage
//
// A single [Set] is constructed in main and injected into the services that
// record events. Counters only — the core has no background work or queues
// worth gauging.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Set groups the application-level counters.
type Set struct {
	// ArticlesUploaded counts documents accepted by the admin gateway.
	ArticlesUploaded prometheus.Counter

	// ArticlesRemoved counts documents deleted by the admin gateway.
	ArticlesRemoved prometheus.Counter

	// ArticleRenders counts annotated-document render requests.
	ArticleRenders prometheus.Counter

	// AuthFailures counts rejected HAWK signatures on admin endpoints.
	AuthFailures prometheus.Counter
}

// New constructs and registers the counter set on the given registerer.
func New(registerer prometheus.Registerer) *Set {
	set := &Set{
		ArticlesUploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fieldpress_articles_uploaded_total",
			Help: "Number of article documents accepted by the admin upload endpoint.",
		}),
		ArticlesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fieldpress_articles_removed_total",
			Help: "Number of article documents deleted by the admin remove endpoint.",
		}),
		ArticleRenders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fieldpress_article_renders_total",
			Help: "Number of annotated article documents rendered for readers.",
		}),
		AuthFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fieldpress_auth_failures_total",
			Help: "Number of admin requests rejected by HAWK verification.",
		}),
	}

	registerer.MustRegister(
		set.ArticlesUploaded,
		set.ArticlesRemoved,
		set.ArticleRenders,
		set.AuthFailures,
	)

	return set
}

// NewNop constructs an unregistered set for tests.
func NewNop() *Set {
	return New(prometheus.NewRegistry())
}
