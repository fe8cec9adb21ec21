// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

// Command publish is the operator CLI for the admin gateway.
//
// # Usage
//
//	publish -server http://localhost:8080 upload article.json
//	publish -server http://localhost:8080 remove digital_monolith_10-3.json
//
// The HAWK credential pair is taken from the -id/-key flags, falling back to
// the HAWK_ID/HAWK_KEY environment variables. Requests are signed with the
// same scheme the server verifies; a fresh UUID nonce is generated per call.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mbillard/fieldpress/internal/platform/hawk"
)

func main() {
	server := flag.String("server", envOr("FIELDPRESS_SERVER", "http://localhost:8080"), "base URL of the API server")
	id := flag.String("id", envOr("HAWK_ID", "billard"), "HAWK credential id")
	key := flag.String("key", envOr("HAWK_KEY", "CHANGE_ME"), "HAWK credential key")
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "usage: publish [flags] upload <file.json> | remove <filename>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	credentials := hawk.Credentials{ID: *id, Key: *key}

	var err error
	switch flag.Arg(0) {
	case "upload":
		err = upload(*server, credentials, flag.Arg(1))
	case "remove":
		err = remove(*server, credentials, flag.Arg(1))
	default:
		err = fmt.Errorf("unknown command %q", flag.Arg(0))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "publish:", err)
		os.Exit(1)
	}
}

// upload POSTs a local article document to /admin/upload.
func upload(server string, credentials hawk.Credentials, path string) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return post(server, credentials, "/admin/upload", body)
}

// remove POSTs a deletion request to /admin/remove.
func remove(server string, credentials hawk.Credentials, filename string) error {
	body, err := json.Marshal(map[string]string{"filename": filename})
	if err != nil {
		return err
	}

	return post(server, credentials, "/admin/remove", body)
}

// post signs and sends one admin request, printing the response envelope.
func post(server string, credentials hawk.Credentials, path string, body []byte) error {
	base, err := url.Parse(server)
	if err != nil {
		return fmt.Errorf("parsing server URL: %w", err)
	}

	host := base.Hostname()
	port := base.Port()
	if port == "" {
		if base.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	params := hawk.RequestParams{
		Method:      http.MethodPost,
		Resource:    path,
		Host:        strings.ToLower(host),
		Port:        port,
		ContentType: "application/json",
		Payload:     body,
	}

	request, err := http.NewRequest(http.MethodPost, strings.TrimRight(server, "/")+path, strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", hawk.Sign(credentials, params, time.Now(), uuid.NewString()))

	client := &http.Client{Timeout: 30 * time.Second}
	response, err := client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n%s\n", response.Status, path, strings.TrimSpace(string(payload)))
	if response.StatusCode >= 400 {
		return fmt.Errorf("server rejected the request with status %d", response.StatusCode)
	}

	return nil
}

// envOr returns the environment value for name, or fallback when unset.
func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
