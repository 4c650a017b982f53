package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/barkeep-app/search/pkg/errors"
	"github.com/barkeep-app/search/pkg/pagination"

	"github.com/barkeep-app/search/internal/domain"
	"github.com/barkeep-app/search/internal/engine"
)

// SearchPage is the paginated result envelope returned to callers.
type SearchPage struct {
	Items       []domain.CocktailDocument `json:"items"`
	Total       int                       `json:"total"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNextPage bool                      `json:"has_next_page"`
	HasPrevPage bool                      `json:"has_prev_page"`
	TookMs      int64                     `json:"took_ms"`
}

// SearchService is the public search facade: it validates and normalizes the
// request, delegates to the engine, and reshapes the raw result into the
// paginated envelope. No caching; every call round-trips to the engine.
type SearchService struct {
	engine engine.SearchEngine
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(eng engine.SearchEngine, logger *slog.Logger) *SearchService {
	return &SearchService{
		engine: eng,
		logger: logger,
	}
}

// Search executes a cocktail search. Different call sites use different
// default page sizes (search-as-you-type vs admin listings), so the default
// is a parameter rather than a constant.
func (s *SearchService) Search(ctx context.Context, req *domain.SearchRequest, defaultPageSize int) (*SearchPage, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// Normalize into a copy; the caller's request stays untouched. A
	// whitespace-only query is a blank query, whoever the caller is.
	eff := *req
	eff.Query = strings.TrimSpace(eff.Query)
	if eff.Page == 0 {
		eff.Page = 1
	}
	if eff.PageSize == 0 {
		eff.PageSize = defaultPageSize
	}

	result, err := s.engine.Search(ctx, domain.CollectionCocktails, &eff)
	if err != nil {
		return nil, fmt.Errorf("search cocktails: %w", err)
	}

	s.logger.DebugContext(ctx, "search executed",
		slog.String("query", eff.Query),
		slog.Int("total", result.Total),
		slog.Int64("took_ms", result.TookMs),
	)

	paged := pagination.NewResult(result.Items, result.Total, pagination.Params{
		Page:    result.Page,
		PerPage: result.PageSize,
	})

	return &SearchPage{
		Items:       paged.Data,
		Total:       paged.TotalCount,
		Page:        paged.Page,
		PageSize:    paged.PerPage,
		TotalPages:  paged.TotalPages,
		HasNextPage: paged.HasNext,
		HasPrevPage: paged.HasPrev,
		TookMs:      result.TookMs,
	}, nil
}

// validateRequest rejects malformed requests before query construction.
func validateRequest(req *domain.SearchRequest) error {
	if req.Page < 0 {
		return apperrors.InvalidInput("page must not be negative")
	}
	if req.PageSize < 0 {
		return apperrors.InvalidInput("page_size must not be negative")
	}
	for _, c := range req.Categories {
		if !domain.IsValidCategory(c) {
			return apperrors.InvalidInput(fmt.Sprintf("unknown category: %s", c))
		}
	}
	if req.MinABV != nil && (*req.MinABV < 0 || *req.MinABV > 100) {
		return apperrors.InvalidInput("min_abv must be between 0 and 100")
	}
	if req.MaxABV != nil && (*req.MaxABV < 0 || *req.MaxABV > 100) {
		return apperrors.InvalidInput("max_abv must be between 0 and 100")
	}
	if req.MinABV != nil && req.MaxABV != nil && *req.MinABV > *req.MaxABV {
		return apperrors.InvalidInput("min_abv must not exceed max_abv")
	}
	return nil
}
