package elasticsearch

// Query construction for cocktail search. All values flow into the
// Elasticsearch query DSL as a plain map so tests can assert on structure.

import (
	"fmt"

	"github.com/barkeep-app/search/internal/domain"
)

// MaxPageSize is the hard cap on page size sent to the engine.
const MaxPageSize = 100

// Relative field weights for text matching. Titles outweigh descriptions,
// and relation titles are weighted below the cocktail's own fields. The
// phrase clause is boosted above the fuzzy clause so exact phrase hits
// rank first. Exact values are tunable; the ordering is what matters.
const (
	boostTitle         = 4.0
	boostDescription   = 2.0
	boostRelationTitle = 1.0
	boostPhrase        = 2.0
)

// fuzzyFields lists the fields searched by the fuzzy multi_match clause,
// with per-field boosts.
func fuzzyFields() []string {
	return []string{
		fmt.Sprintf("title.en^%g", boostTitle),
		fmt.Sprintf("title.uk^%g", boostTitle),
		fmt.Sprintf("description.en^%g", boostDescription),
		fmt.Sprintf("description.uk^%g", boostDescription),
		fmt.Sprintf("ingredients.title.en^%g", boostRelationTitle),
		fmt.Sprintf("ingredients.title.uk^%g", boostRelationTitle),
		fmt.Sprintf("equipments.title.en^%g", boostRelationTitle),
		fmt.Sprintf("equipments.title.uk^%g", boostRelationTitle),
	}
}

// phraseFields lists the fields searched by the phrase multi_match clause.
func phraseFields() []string {
	return []string{
		fmt.Sprintf("title.en^%g", boostTitle),
		fmt.Sprintf("title.uk^%g", boostTitle),
		fmt.Sprintf("description.en^%g", boostDescription),
		fmt.Sprintf("description.uk^%g", boostDescription),
	}
}

// BuildSearchBody translates a search request into the Elasticsearch
// request body.
//
// With a text query, two should clauses score documents: a fuzzy
// multi_match across titles, descriptions and relation titles, and a
// higher-boosted phrase multi_match across the cocktail's own fields.
// A document matching either clause qualifies. Results sort by relevance
// with recency as tiebreak. Without a text query the body is a match_all
// sorted by recency.
//
// Filters never score: they go into the bool filter context. Each required
// ingredient or equipment ID becomes its own term clause, so distinct
// required relations combine with AND semantics.
func BuildSearchBody(req *domain.SearchRequest) map[string]interface{} {
	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size < 1 {
		size = 1
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	boolQuery := map[string]interface{}{}

	if req.HasTextQuery() {
		boolQuery["should"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":         req.Query,
					"fields":        fuzzyFields(),
					"type":          "best_fields",
					"fuzziness":     "AUTO",
					"prefix_length": 1,
				},
			},
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  req.Query,
					"fields": phraseFields(),
					"type":   "phrase",
					"boost":  boostPhrase,
				},
			},
		}
		boolQuery["minimum_should_match"] = 1
	} else {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}

	if filters := buildFilters(req); len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"sort":             buildSort(req.HasTextQuery()),
		"from":             (page - 1) * size,
		"size":             size,
		"track_total_hits": true,
	}
}

// buildFilters constructs the non-scoring filter clauses.
func buildFilters(req *domain.SearchRequest) []interface{} {
	var filters []interface{}

	if len(req.Categories) > 0 {
		filters = append(filters, map[string]interface{}{
			"terms": map[string]interface{}{
				"categories": req.Categories,
			},
		})
	}

	// One term clause per required relation ID: all must match.
	for _, id := range req.IngredientIDs {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{
				"ingredients.id": id,
			},
		})
	}
	for _, id := range req.EquipmentIDs {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{
				"equipments.id": id,
			},
		})
	}

	if req.MinABV != nil || req.MaxABV != nil {
		rangeFilter := map[string]interface{}{}
		if req.MinABV != nil {
			rangeFilter["gte"] = *req.MinABV
		}
		if req.MaxABV != nil {
			rangeFilter["lte"] = *req.MaxABV
		}
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{
				"abv": rangeFilter,
			},
		})
	}

	return filters
}

// buildSort orders results relevance-first when a text query is present,
// recency-first otherwise.
func buildSort(hasQuery bool) []interface{} {
	if hasQuery {
		return []interface{}{
			map[string]interface{}{"_score": "desc"},
			map[string]interface{}{"updated_at": "desc"},
		}
	}
	return []interface{}{
		map[string]interface{}{"updated_at": "desc"},
		map[string]interface{}{"_score": "desc"},
	}
}
