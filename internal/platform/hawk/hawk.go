// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

// Package hawk implements HAWK shared-secret request authentication.
//
// # Architecture
//
// This package isolates security-sensitive code (MAC computation, header
// parsing) from the domain logic. It acts as an Infrastructure service
// injected into the admin gateway via the [CredentialStore] interface, so
// tests can swap in fake credentials.
//
// # Scheme
//
// A HAWK client sends an Authorization header of the form
//
//	Hawk id="billard", ts="1700000000", nonce="dh37fgj4", hash="...", mac="..."
//
// where mac is an HMAC-SHA256 over a normalized string covering the request
// method, resource, host, port, timestamp, nonce, and the SHA-256 hash of the
// payload. The server recomputes both digests and rejects the request when
// the MAC does not match or the timestamp falls outside the allowed
// clock-skew window. Nonce replay tracking is intentionally not performed.
package hawk

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// # Wire Format

const (
	// headerVersion is the HAWK normalized-string version tag.
	headerVersion = "hawk.1.header"

	// payloadVersion is the HAWK payload-hash version tag.
	payloadVersion = "hawk.1.payload"
)

// Verification failure reasons. All of them surface to clients as a single
// generic 401 to avoid acting as a signing oracle.
var (
	ErrMissingHeader   = errors.New("hawk: missing Authorization header")
	ErrMalformedHeader = errors.New("hawk: malformed Authorization header")
	ErrUnknownID       = errors.New("hawk: unknown credential id")
	ErrStaleTimestamp  = errors.New("hawk: timestamp outside allowed skew window")
	ErrPayloadMismatch = errors.New("hawk: payload hash mismatch")
	ErrBadMac          = errors.New("hawk: MAC mismatch")
)

// attributePattern matches one key="value" pair inside the header.
var attributePattern = regexp.MustCompile(`(\w+)="([^"]*)"`)

// # Credentials

// Credentials is a shared id/secret pair used on both sides of the exchange.
type Credentials struct {
	ID  string
	Key string
}

// CredentialStore resolves a credential id presented by a client.
//
// # Why an interface?
//
// The production store holds the single operator credential from the
// environment; tests inject fakes with known secrets.
type CredentialStore interface {
	// Lookup returns the credentials for id, or false when the id is unknown.
	Lookup(id string) (Credentials, bool)
}

// StaticStore is a [CredentialStore] holding exactly one credential pair.
type StaticStore struct {
	credentials Credentials
}

// NewStaticStore constructs a single-credential store.
func NewStaticStore(id, key string) *StaticStore {
	return &StaticStore{credentials: Credentials{ID: id, Key: key}}
}

// Lookup implements [CredentialStore].
func (store *StaticStore) Lookup(id string) (Credentials, bool) {
	if id != store.credentials.ID {
		return Credentials{}, false
	}
	return store.credentials, true
}

// # Request Description

// RequestParams captures the request attributes covered by the MAC.
type RequestParams struct {
	// Method is the uppercase HTTP method.
	Method string
	// Resource is the request path including any query string.
	Resource string
	// Host is the lowercase server host without port.
	Host string
	// Port is the numeric server port as a string.
	Port string
	// ContentType is the media type of the payload (parameters stripped).
	ContentType string
	// Payload is the full request body.
	Payload []byte
}

// paramsFromRequest derives [RequestParams] from an inbound server request.
func paramsFromRequest(request *http.Request, payload []byte) RequestParams {
	host := request.Host
	port := ""
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		port = host[idx+1:]
		host = host[:idx]
	}
	if port == "" {
		if request.TLS != nil {
			port = "443"
		} else {
			port = "80"
		}
	}

	resource := request.URL.EscapedPath()
	if request.URL.RawQuery != "" {
		resource += "?" + request.URL.RawQuery
	}

	return RequestParams{
		Method:      strings.ToUpper(request.Method),
		Resource:    resource,
		Host:        strings.ToLower(host),
		Port:        port,
		ContentType: normalizeContentType(request.Header.Get("Content-Type")),
		Payload:     payload,
	}
}

// normalizeContentType strips media-type parameters ("; charset=...") and
// lowercases the result, matching the canonical HAWK payload string.
func normalizeContentType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// # Digest Computation

// PayloadHash computes the base64 SHA-256 payload digest covered by the MAC.
func PayloadHash(contentType string, payload []byte) string {
	digest := sha256.New()
	digest.Write([]byte(payloadVersion + "\n"))
	digest.Write([]byte(normalizeContentType(contentType) + "\n"))
	digest.Write(payload)
	digest.Write([]byte("\n"))
	return base64.StdEncoding.EncodeToString(digest.Sum(nil))
}

// computeMac produces the base64 HMAC-SHA256 over the normalized request string.
func computeMac(key string, params RequestParams, ts, nonce, payloadHash, ext string) string {
	normalized := strings.Join([]string{
		headerVersion,
		ts,
		nonce,
		params.Method,
		params.Resource,
		params.Host,
		params.Port,
		payloadHash,
		ext,
	}, "\n") + "\n"

	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(normalized))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// # Client Side

// Sign produces a complete Authorization header value for the given request.
//
// Used by the publish CLI and by tests constructing signed requests.
func Sign(credentials Credentials, params RequestParams, now time.Time, nonce string) string {
	ts := strconv.FormatInt(now.Unix(), 10)
	payloadHash := PayloadHash(params.ContentType, params.Payload)
	mac := computeMac(credentials.Key, params, ts, nonce, payloadHash, "")

	return fmt.Sprintf(`Hawk id="%s", ts="%s", nonce="%s", hash="%s", mac="%s"`,
		credentials.ID, ts, nonce, payloadHash, mac)
}

// # Server Side

// Verifier checks inbound Authorization headers against a credential store.
type Verifier struct {
	store CredentialStore
	skew  time.Duration

	// Clock returns the current time. Overridable in tests to exercise the
	// skew window deterministically.
	Clock func() time.Time
}

// NewVerifier constructs a [Verifier] with the given clock-skew tolerance.
func NewVerifier(store CredentialStore, skew time.Duration) *Verifier {
	return &Verifier{
		store: store,
		skew:  skew,
		Clock: time.Now,
	}
}

// Verify authenticates a server request whose body has already been read.
//
// It returns the verified credential id on success. Every failure mode maps
// to one of the package sentinel errors; callers translate them into a
// generic 401 without filesystem access.
func (verifier *Verifier) Verify(request *http.Request, payload []byte) (string, error) {
	headerValue := request.Header.Get("Authorization")
	if headerValue == "" {
		return "", ErrMissingHeader
	}

	attributes, err := parseHeader(headerValue)
	if err != nil {
		return "", err
	}

	credentials, found := verifier.store.Lookup(attributes["id"])
	if !found {
		return "", ErrUnknownID
	}

	// Timestamp freshness before any expensive digest work.
	ts, err := strconv.ParseInt(attributes["ts"], 10, 64)
	if err != nil {
		return "", ErrMalformedHeader
	}
	now := verifier.Clock()
	if delta := now.Unix() - ts; delta > int64(verifier.skew.Seconds()) || -delta > int64(verifier.skew.Seconds()) {
		return "", ErrStaleTimestamp
	}

	params := paramsFromRequest(request, payload)

	// The payload hash binds the MAC to the body content.
	expectedHash := PayloadHash(request.Header.Get("Content-Type"), payload)
	if !hmac.Equal([]byte(expectedHash), []byte(attributes["hash"])) {
		return "", ErrPayloadMismatch
	}

	expectedMac := computeMac(credentials.Key, params, attributes["ts"], attributes["nonce"], attributes["hash"], attributes["ext"])
	if !hmac.Equal([]byte(expectedMac), []byte(attributes["mac"])) {
		return "", ErrBadMac
	}

	return credentials.ID, nil
}

// parseHeader splits `Hawk id="..", ts="..", ...` into an attribute map.
func parseHeader(value string) (map[string]string, error) {
	scheme, rest, found := strings.Cut(value, " ")
	if !found || !strings.EqualFold(scheme, "Hawk") {
		return nil, ErrMalformedHeader
	}

	attributes := map[string]string{}
	for _, match := range attributePattern.FindAllStringSubmatch(rest, -1) {
		attributes[match[1]] = match[2]
	}

	// id, ts, nonce, and mac are mandatory; hash is mandatory here because
	// every admin operation carries a payload.
	for _, required := range []string{"id", "ts", "nonce", "hash", "mac"} {
		if attributes[required] == "" {
			return nil, ErrMalformedHeader
		}
	}

	return attributes, nil
}
