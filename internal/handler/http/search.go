package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/barkeep-app/search/pkg/httputil"

	"github.com/barkeep-app/search/internal/domain"
	"github.com/barkeep-app/search/internal/service"
)

// Default page sizes per caller context. Interactive search-as-you-type
// requests page small; admin listings page wider.
const (
	defaultSearchPageSize = 10
	defaultListPageSize   = 20
)

// maxSearchBodyBytes caps the POST search request body.
const maxSearchBodyBytes = 1 << 20 // 1 MB

// SearchHandler handles HTTP requests for cocktail search endpoints.
type SearchHandler struct {
	search    *service.SearchService
	reindexer *service.Reindexer
	logger    *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(search *service.SearchService, reindexer *service.Reindexer, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		search:    search,
		reindexer: reindexer,
		logger:    logger,
	}
}

// Search handles POST /api/v1/cocktails/search: the interactive search
// surface, taking a structured JSON request.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSearchBodyBytes)

	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidParam(w, "invalid request body: "+err.Error())
		return
	}

	h.serveSearch(w, r, &req, defaultSearchPageSize)
}

// List handles GET /api/v1/cocktails/search: the admin listing surface,
// taking the same request as query parameters.
func (h *SearchHandler) List(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseSearchRequest(w, r)
	if !ok {
		return
	}

	h.serveSearch(w, r, req, defaultListPageSize)
}

func (h *SearchHandler) serveSearch(w http.ResponseWriter, r *http.Request, req *domain.SearchRequest, defaultPageSize int) {
	page, err := h.search.Search(r.Context(), req, defaultPageSize)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// parseSearchRequest builds a search request from query parameters. It
// reports false after writing an error response for unparseable values;
// semantic validation happens in the service.
func (h *SearchHandler) parseSearchRequest(w http.ResponseWriter, r *http.Request) (*domain.SearchRequest, bool) {
	q := r.URL.Query()

	req := &domain.SearchRequest{
		Query:         strings.TrimSpace(q.Get("q")),
		Categories:    splitParam(q.Get("categories")),
		IngredientIDs: splitParam(q.Get("ingredients")),
		EquipmentIDs:  splitParam(q.Get("equipments")),
	}

	if v := q.Get("min_abv"); v != "" {
		abv, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeInvalidParam(w, "min_abv must be a valid number")
			return nil, false
		}
		req.MinABV = &abv
	}
	if v := q.Get("max_abv"); v != "" {
		abv, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeInvalidParam(w, "max_abv must be a valid number")
			return nil, false
		}
		req.MaxABV = &abv
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			writeInvalidParam(w, "page must be a valid integer")
			return nil, false
		}
		req.Page = page
	}
	if v := q.Get("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			writeInvalidParam(w, "page_size must be a valid integer")
			return nil, false
		}
		req.PageSize = size
	}

	return req, true
}

// Reindex handles POST /api/v1/cocktails/reindex. The rebuild runs
// synchronously and the final counts are the response body: it is an
// operator recovery tool, and the operator wants the outcome.
func (h *SearchHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	result, err := h.reindexer.ReindexAll(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// splitParam splits a comma-separated query parameter, dropping blanks.
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func writeInvalidParam(w http.ResponseWriter, message string) {
	httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
		Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: message},
	})
}
