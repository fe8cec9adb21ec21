// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/mbillard/fieldpress/internal/platform/request"
	"github.com/mbillard/fieldpress/internal/platform/respond"
)

// # HTTP Handler

// Handler serves the public catalogue endpoints.
type Handler struct {
	service *Service
}

// NewHandler wires a catalogue handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the catalogue routes:
//
//	GET /        — list the manifest
//	GET /{slug}  — merged book view
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.ListBooks)
	router.Get("/{slug}", handler.GetBook)

	return router
}

/*
ListBooks handles GET /api/v1/books.

Returns the manifest entries in manifest order.
*/
func (handler *Handler) ListBooks(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

/*
GetBook handles GET /api/v1/books/{slug}.

Returns the merged view, synthesizing and persisting a default detail
document when none exists yet.
*/
func (handler *Handler) GetBook(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	view, err := handler.service.Get(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}
