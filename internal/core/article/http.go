// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/mbillard/fieldpress/internal/platform/request"
	"github.com/mbillard/fieldpress/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the public read-only HTTP surface for articles.
//
// Mutations never pass through here; they belong to the HAWK-gated admin
// gateway.
type Handler struct {
	service *Service
}

// NewHandler constructs a new article [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the article route group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.ListArchive)
	router.Get("/latest", handler.GetLatest)
	router.Get("/{slug}", handler.GetArticle)
	return router
}

/*
GET /api/v1/articles.

Description: Returns the full archive grouped by calendar year for the
chronological browse view.

Response:
  - 200: []YearGroup: Years descending, entries most recent first
*/
func (handler *Handler) ListArchive(writer http.ResponseWriter, request *http.Request) {
	groups, err := handler.service.Archive(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, groups)
}

/*
GET /api/v1/articles/latest.

Description: Returns the single most recent article for the homepage.

Response:
  - 200: Entry: The latest article
  - 404: 404: ErrNotFound: The store is empty
*/
func (handler *Handler) GetLatest(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.Latest(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
GET /api/v1/articles/{slug}.

Description: Returns the annotated document for one article: wrapped
paragraph lines and attached field notes, ready for the template renderer.

Request:
  - slug: string (Article name, without the month-day fragment)

Response:
  - 200: AnnotatedDocument
  - 404: 404: ErrNotFound: No article with that slug
  - 422: 422: MalformedDocument: Stored document violates the schema
*/
func (handler *Handler) GetArticle(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, "slug")

	annotated, err := handler.service.Render(request.Context(), name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, annotated)
}
