// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package admin

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mbillard/fieldpress/internal/platform/apperr"
	requestutil "github.com/mbillard/fieldpress/internal/platform/request"
	"github.com/mbillard/fieldpress/internal/platform/respond"
)

// # HTTP Handler

// Handler serves the HAWK-gated publishing endpoints. The router mounting
// these routes must wrap them in the HAWK middleware; the handlers only
// confirm the context carries a verified credential id.
type Handler struct {
	service *Service
}

// NewHandler wires a publishing handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the admin routes:
//
//	POST /upload  — store a new article document
//	POST /remove  — delete a stored document by filename
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/upload", handler.UploadArticle)
	router.Post("/remove", handler.RemoveArticle)

	return router
}

/*
UploadArticle handles POST /admin/upload.

The body is the raw article document; the HAWK middleware has already
verified the signature covering it.
*/
func (handler *Handler) UploadArticle(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredAdminID(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	raw, err := io.ReadAll(request.Body)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	result, err := handler.service.Upload(request.Context(), raw)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

// removeInput is the POST /admin/remove request body.
type removeInput struct {
	Filename string `json:"filename"`
}

/*
RemoveArticle handles POST /admin/remove.

Accepts {"filename": "..."} and deletes the matching stored document.
*/
func (handler *Handler) RemoveArticle(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredAdminID(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input removeInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), input.Filename); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"removed": input.Filename})
}
