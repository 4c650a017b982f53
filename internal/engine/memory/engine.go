package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/barkeep-app/search/internal/domain"
	"github.com/barkeep-app/search/internal/engine/elasticsearch"
)

// Relative match scores mirroring the field weights of the Elasticsearch
// query: own title above description, relation titles below both.
const (
	scoreTitle       = 4
	scoreDescription = 2
	scoreRelation    = 1
)

// Engine is an in-memory implementation of the SearchEngine interface,
// used for local development and tests. Matching is simple substring
// containment over all locales. Thread-safe via sync.RWMutex.
type Engine struct {
	mu      sync.RWMutex
	indices map[string]map[string]domain.CocktailDocument
}

// New creates a new in-memory search engine.
func New() *Engine {
	return &Engine{
		indices: make(map[string]map[string]domain.CocktailDocument),
	}
}

// Index adds or fully replaces a document in the collection's index.
func (e *Engine) Index(_ context.Context, collection string, doc *domain.CocktailDocument) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.indices[collection]
	if !ok {
		idx = make(map[string]domain.CocktailDocument)
		e.indices[collection] = idx
	}
	idx[doc.ID] = *doc
	return nil
}

// Delete removes a document by ID. Unknown IDs are a no-op.
func (e *Engine) Delete(_ context.Context, collection, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if idx, ok := e.indices[collection]; ok {
		delete(idx, id)
	}
	return nil
}

// DeleteIndex drops the collection's entire index. Safe when absent.
func (e *Engine) DeleteIndex(_ context.Context, collection string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.indices, collection)
	return nil
}

// Search executes a search request against the in-memory index.
func (e *Engine) Search(_ context.Context, collection string, req *domain.SearchRequest) (*domain.SearchResult, error) {
	start := time.Now()

	e.mu.RLock()
	defer e.mu.RUnlock()

	type scored struct {
		doc   domain.CocktailDocument
		score int
	}

	queryLower := strings.ToLower(req.Query)
	var matched []scored

	for _, doc := range e.indices[collection] {
		if !matchesFilters(doc, req) {
			continue
		}
		score := 0
		if queryLower != "" {
			score = textScore(doc, queryLower)
			if score == 0 {
				continue
			}
		}
		matched = append(matched, scored{doc: doc, score: score})
	}

	// Relevance-first with a text query, recency-first without.
	if queryLower != "" {
		sort.Slice(matched, func(i, j int) bool {
			if matched[i].score != matched[j].score {
				return matched[i].score > matched[j].score
			}
			return matched[i].doc.UpdatedAt.After(matched[j].doc.UpdatedAt)
		})
	} else {
		sort.Slice(matched, func(i, j int) bool {
			return matched[i].doc.UpdatedAt.After(matched[j].doc.UpdatedAt)
		})
	}

	total := len(matched)

	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size < 1 {
		size = 1
	}
	if size > elasticsearch.MaxPageSize {
		size = elasticsearch.MaxPageSize
	}

	offset := (page - 1) * size
	if offset > total {
		offset = total
	}
	end := offset + size
	if end > total {
		end = total
	}

	items := make([]domain.CocktailDocument, 0, end-offset)
	for _, m := range matched[offset:end] {
		items = append(items, m.doc)
	}

	return &domain.SearchResult{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: size,
		TookMs:   time.Since(start).Milliseconds(),
	}, nil
}

// textScore returns how strongly the document matches the lowercased query,
// zero when it does not match at all.
func textScore(doc domain.CocktailDocument, queryLower string) int {
	score := 0
	for _, title := range doc.Title {
		if strings.Contains(strings.ToLower(title), queryLower) {
			score += scoreTitle
		}
	}
	for _, description := range doc.Description {
		if strings.Contains(strings.ToLower(description), queryLower) {
			score += scoreDescription
		}
	}
	for _, ing := range doc.Ingredients {
		for _, title := range ing.Title {
			if strings.Contains(strings.ToLower(title), queryLower) {
				score += scoreRelation
			}
		}
	}
	for _, eq := range doc.Equipments {
		for _, title := range eq.Title {
			if strings.Contains(strings.ToLower(title), queryLower) {
				score += scoreRelation
			}
		}
	}
	return score
}

// matchesFilters applies the non-scoring hard constraints.
func matchesFilters(doc domain.CocktailDocument, req *domain.SearchRequest) bool {
	if len(req.Categories) > 0 {
		found := false
		for _, want := range req.Categories {
			for _, have := range doc.Categories {
				if want == have {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}

	// Every required ingredient must be present.
	for _, want := range req.IngredientIDs {
		found := false
		for _, ing := range doc.Ingredients {
			if ing.ID == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// Every required piece of equipment must be present.
	for _, want := range req.EquipmentIDs {
		found := false
		for _, eq := range doc.Equipments {
			if eq.ID == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if req.MinABV != nil && doc.ABV < *req.MinABV {
		return false
	}
	if req.MaxABV != nil && doc.ABV > *req.MaxABV {
		return false
	}

	return true
}
