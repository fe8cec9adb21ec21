// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: HAWK authentication scheme parameters.
  - Storage: Store directory defaults and file naming.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "fieldpress-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication (HAWK)

const (
	// HawkScheme is the Authorization header scheme for signed admin requests.
	HawkScheme = "Hawk"

	// HawkAlgorithm is the keyed-hash algorithm advertised to clients.
	HawkAlgorithm = "sha256"

	// HawkClockSkew is the allowed absolute difference between the request
	// timestamp and server time before a signature is rejected as expired.
	HawkClockSkew = 60 * time.Second

	// MaxAdminBodyBytes caps the admin request body read for MAC verification.
	MaxAdminBodyBytes = 4 << 20
)

// # Storage

const (
	// ArticleFileExtension is the suffix of every stored article document.
	ArticleFileExtension = ".json"

	// BookManifestFile is the catalogue file inside the book store directory.
	BookManifestFile = "books.json"

	// CanonicalDateLayout is the display date format in article headers,
	// e.g. "October 03, 2025".
	CanonicalDateLayout = "January 2, 2006"

	// StoreFileMode is the permission set for newly written documents.
	StoreFileMode = 0o644
)

// # Rendering

const (
	// ContentColumnWidth is the desktop content column in characters. The
	// line-numbering engine wraps paragraph text to this width so field
	// notes can reference stable per-paragraph line numbers.
	ContentColumnWidth = 80
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)
