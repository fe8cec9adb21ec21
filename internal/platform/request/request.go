// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mbillard/fieldpress/internal/platform/apperr"
	"github.com/mbillard/fieldpress/internal/platform/ctxutil"
	"github.com/mbillard/fieldpress/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter (slug, filename) from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
AdminID extracts the verified HAWK credential id from the request context.

Returns an empty string if the request did not pass the HAWK gate.
*/
func AdminID(request *http.Request) string {
	return ctxutil.GetAdminID(request.Context())
}

/*
RequiredAdminID ensures the request passed HAWK verification and returns the
credential id.

Returns:
  - string: The verified credential id
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredAdminID(request *http.Request) (string, error) {
	id := ctxutil.GetAdminID(request.Context())
	if id == "" {
		return "", apperr.Unauthorized("Authentication required")
	}
	return id, nil
}
