// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/mbillard/fieldpress/internal/platform/apperr"
	"github.com/mbillard/fieldpress/internal/platform/constants"
	"github.com/mbillard/fieldpress/internal/platform/ctxutil"
	"github.com/mbillard/fieldpress/internal/platform/hawk"
	"github.com/mbillard/fieldpress/internal/platform/metrics"
	"github.com/mbillard/fieldpress/internal/platform/respond"
)

// HawkAuth verifies the HAWK signature on every request passing through it.
//
// # Flow
//
//  1. Read the request body (the MAC covers a SHA-256 payload hash).
//  2. Verify scheme, credential id, timestamp skew, payload hash, and MAC.
//  3. On success, inject the credential id into the context and restore the
//     body for the downstream handler.
//  4. On failure, reject with a generic 401 before any filesystem access.
//
// # Security
//
// The response never distinguishes between an unknown id, a stale timestamp,
// or a bad MAC; the precise reason is only logged server-side.
func HawkAuth(verifier *hawk.Verifier, instruments *metrics.Set) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Payload Capture ────────────────────────────────────────────
			payload, err := io.ReadAll(io.LimitReader(request.Body, constants.MaxAdminBodyBytes))
			if err != nil {
				respond.Error(writer, request, apperr.Internal(err))
				return
			}
			_ = request.Body.Close()

			// ── 2. Signature Verification ─────────────────────────────────────
			adminID, err := verifier.Verify(request, payload)
			if err != nil {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(),
					"hawk_verification_failed",
					slog.String("reason", err.Error()),
					slog.String("ip", RealIP(request)),
				)
				if instruments != nil {
					instruments.AuthFailures.Inc()
				}
				respond.Error(writer, request, apperr.Unauthorized("Invalid or missing HAWK signature"))
				return
			}

			// ── 3. Context Injection & Body Restore ───────────────────────────
			ctx := ctxutil.WithAdminID(request.Context(), adminID)
			request.Body = io.NopCloser(bytes.NewReader(payload))

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
