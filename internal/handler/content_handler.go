package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sarif-mia/agency-website-sub000/internal/client"
	"github.com/sarif-mia/agency-website-sub000/internal/model"
	"github.com/sarif-mia/agency-website-sub000/internal/service"
)

type ContentHandler struct {
	ContentService service.ContentServiceInterface
}

func NewContentHandler(svc service.ContentServiceInterface) *ContentHandler {
	return &ContentHandler{ContentService: svc}
}

// HandleList serves GET /content/{resource}. The query string is forwarded in order.
func (h *ContentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params, err := client.ParseParams(r.URL.RawQuery)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Malformed query string")
		return
	}
	page, err := h.ContentService.List(r.Context(), chi.URLParam(r, "resource"), params)
	h.writePage(w, page, err)
}

// HandleListBy serves the filtered lists, reading the filter value from {value}.
func (h *ContentHandler) HandleListBy(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.ContentService.ListBy(r.Context(), resource, chi.URLParam(r, "value"))
		h.writePage(w, page, err)
	}
}

// HandleDetail serves GET /content/{resource}/{slug}.
func (h *ContentHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	page, err := h.ContentService.Get(r.Context(), chi.URLParam(r, "resource"), chi.URLParam(r, "slug"))
	h.writePage(w, page, err)
}

func (h *ContentHandler) writePage(w http.ResponseWriter, page *model.Page, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownResource):
		writeError(w, http.StatusNotFound, "Unknown content resource")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "Content not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to load content")
	default:
		writeJSONResponse(w, http.StatusOK, model.Response{
			Data:    page,
			Message: "Success",
		})
	}
}
