// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package hawk

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCredentials = Credentials{ID: "billard", Key: "werxhqb98rpaxn39848xrunpaw3489ruxnpa98w4rxn"}

func newSignedRequest(t *testing.T, credentials Credentials, body string, at time.Time) *http.Request {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, "http://localhost:8080/admin/upload", bytes.NewReader([]byte(body)))
	request.Header.Set("Content-Type", "application/json")

	params := RequestParams{
		Method:      http.MethodPost,
		Resource:    "/admin/upload",
		Host:        "localhost",
		Port:        "8080",
		ContentType: "application/json",
		Payload:     []byte(body),
	}
	request.Header.Set("Authorization", Sign(credentials, params, at, "dh37fgj4"))

	return request
}

func newTestVerifier(at time.Time) *Verifier {
	verifier := NewVerifier(NewStaticStore(testCredentials.ID, testCredentials.Key), 60*time.Second)
	verifier.Clock = func() time.Time { return at }
	return verifier
}

func TestVerify_RoundTrip(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := `{"header": {"name": "etude"}}`

	request := newSignedRequest(t, testCredentials, body, now)

	id, err := newTestVerifier(now).Verify(request, []byte(body))
	require.NoError(t, err)
	assert.Equal(t, "billard", id)
}

func TestVerify_QueryStringCovered(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := `{}`

	request := httptest.NewRequest(http.MethodPost, "http://localhost:8080/admin/remove?dry=1", bytes.NewReader([]byte(body)))
	request.Header.Set("Content-Type", "application/json")

	params := RequestParams{
		Method:      http.MethodPost,
		Resource:    "/admin/remove?dry=1",
		Host:        "localhost",
		Port:        "8080",
		ContentType: "application/json",
		Payload:     []byte(body),
	}
	request.Header.Set("Authorization", Sign(testCredentials, params, now, "dh37fgj4"))

	_, err := newTestVerifier(now).Verify(request, []byte(body))
	assert.NoError(t, err)
}

func TestVerify_WrongKey(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := `{}`

	forged := Credentials{ID: testCredentials.ID, Key: "guessed-secret"}
	request := newSignedRequest(t, forged, body, now)

	_, err := newTestVerifier(now).Verify(request, []byte(body))
	assert.ErrorIs(t, err, ErrBadMac)
}

func TestVerify_UnknownID(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := `{}`

	stranger := Credentials{ID: "intruder", Key: testCredentials.Key}
	request := newSignedRequest(t, stranger, body, now)

	_, err := newTestVerifier(now).Verify(request, []byte(body))
	assert.ErrorIs(t, err, ErrUnknownID)
}

func TestVerify_StaleTimestamp(t *testing.T) {
	signedAt := time.Unix(1700000000, 0)
	body := `{}`

	request := newSignedRequest(t, testCredentials, body, signedAt)

	cases := []struct {
		name    string
		serverT time.Time
		wantErr error
	}{
		{name: "within_skew", serverT: signedAt.Add(59 * time.Second), wantErr: nil},
		{name: "too_old", serverT: signedAt.Add(61 * time.Second), wantErr: ErrStaleTimestamp},
		{name: "from_the_future", serverT: signedAt.Add(-61 * time.Second), wantErr: ErrStaleTimestamp},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := newTestVerifier(testCase.serverT).Verify(request, []byte(body))
			if testCase.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, testCase.wantErr)
			}
		})
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	now := time.Unix(1700000000, 0)

	request := newSignedRequest(t, testCredentials, `{"filename": "a_1-1.json"}`, now)

	// Same header, different body: the payload hash no longer matches.
	_, err := newTestVerifier(now).Verify(request, []byte(`{"filename": "b_1-1.json"}`))
	assert.ErrorIs(t, err, ErrPayloadMismatch)
}

func TestVerify_MissingHeader(t *testing.T) {
	now := time.Unix(1700000000, 0)
	request := httptest.NewRequest(http.MethodPost, "http://localhost:8080/admin/upload", nil)

	_, err := newTestVerifier(now).Verify(request, nil)
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestVerify_MalformedHeader(t *testing.T) {
	now := time.Unix(1700000000, 0)

	cases := []struct {
		name   string
		header string
	}{
		{name: "wrong_scheme", header: `Bearer abcdef`},
		{name: "missing_nonce", header: `Hawk id="billard", ts="1700000000", hash="x", mac="y"`},
		{name: "missing_mac", header: `Hawk id="billard", ts="1700000000", nonce="n", hash="x"`},
		{name: "empty_id", header: `Hawk id="", ts="1700000000", nonce="n", hash="x", mac="y"`},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "http://localhost:8080/admin/upload", nil)
			request.Header.Set("Authorization", testCase.header)

			_, err := newTestVerifier(now).Verify(request, nil)
			assert.ErrorIs(t, err, ErrMalformedHeader)
		})
	}
}

func TestPayloadHash_NormalizesContentType(t *testing.T) {
	plain := PayloadHash("application/json", []byte(`{}`))
	withCharset := PayloadHash("application/json; charset=utf-8", []byte(`{}`))
	upperCase := PayloadHash("Application/JSON", []byte(`{}`))

	assert.Equal(t, plain, withCharset)
	assert.Equal(t, plain, upperCase)
	assert.NotEqual(t, plain, PayloadHash("text/plain", []byte(`{}`)))
}

func TestSign_HeaderShape(t *testing.T) {
	params := RequestParams{
		Method:      http.MethodPost,
		Resource:    "/admin/upload",
		Host:        "localhost",
		Port:        "8080",
		ContentType: "application/json",
		Payload:     []byte(`{}`),
	}

	header := Sign(testCredentials, params, time.Unix(1700000000, 0), "dh37fgj4")

	assert.True(t, strings.HasPrefix(header, "Hawk "))
	assert.Contains(t, header, `id="billard"`)
	assert.Contains(t, header, `ts="1700000000"`)
	assert.Contains(t, header, `nonce="dh37fgj4"`)
	assert.Contains(t, header, `hash="`)
	assert.Contains(t, header, `mac="`)
}
