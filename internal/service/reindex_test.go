package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barkeep-app/search/internal/domain"
	"github.com/barkeep-app/search/internal/engine/memory"
	"github.com/barkeep-app/search/internal/indexer"
	"github.com/barkeep-app/search/internal/relation"
	"github.com/barkeep-app/search/internal/store"
)

// fakeCocktailStore serves a fixed slice through the cursor-paginated List
// contract and records how many batches were fetched.
type fakeCocktailStore struct {
	cocktails []domain.Cocktail
	fetches   int
	failAfter int // fail the Nth fetch (1-based); 0 disables
}

func (f *fakeCocktailStore) GetByID(_ context.Context, id string) (*domain.Cocktail, error) {
	for i := range f.cocktails {
		if f.cocktails[i].ID == id {
			return &f.cocktails[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeCocktailStore) List(_ context.Context, batchSize int, after *store.Cursor) (*store.CocktailPage, error) {
	f.fetches++
	if f.failAfter > 0 && f.fetches >= f.failAfter {
		return nil, errors.New("primary store unavailable")
	}

	start := 0
	if after != nil {
		for i := range f.cocktails {
			if f.cocktails[i].ID == after.ID {
				start = i + 1
				break
			}
		}
	}

	end := start + batchSize
	if end > len(f.cocktails) {
		end = len(f.cocktails)
	}

	page := &store.CocktailPage{
		Cocktails: f.cocktails[start:end],
		HasMore:   end-start == batchSize,
	}
	if end > start {
		last := f.cocktails[end-1]
		page.Next = &store.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return page, nil
}

// flakyIngredientStore fails resolution for one specific ingredient ID.
type flakyIngredientStore struct {
	failFor string
}

func (f *flakyIngredientStore) GetByIDs(_ context.Context, ids []string) ([]domain.Ingredient, error) {
	var out []domain.Ingredient
	for _, id := range ids {
		if id == f.failFor {
			return nil, errors.New("resolve blew up")
		}
		out = append(out, domain.Ingredient{ID: id, Title: domain.I18nString{"en": id}})
	}
	return out, nil
}

type noopEquipmentStore struct{}

func (noopEquipmentStore) GetByIDs(context.Context, []string) ([]domain.Equipment, error) {
	return nil, nil
}

func fixtureCocktails(n int) []domain.Cocktail {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cocktails := make([]domain.Cocktail, 0, n)
	for i := 0; i < n; i++ {
		cocktails = append(cocktails, domain.Cocktail{
			ID:          fmt.Sprintf("cocktail-%02d", i+1),
			Title:       domain.I18nString{"en": fmt.Sprintf("Cocktail %02d", i+1)},
			Ingredients: []string{fmt.Sprintf("ingredients/ing-%02d", i+1)},
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}
	return cocktails
}

func newTestReindexer(cocktails *fakeCocktailStore, ingredients store.IngredientStore, eng *memory.Engine) *Reindexer {
	resolver := relation.NewResolver(ingredients, noopEquipmentStore{})
	ix := indexer.New(resolver, eng, newTestLogger())
	return NewReindexer(cocktails, ix, eng, newTestLogger(),
		WithBatchSize(10),
		WithBatchPause(0),
	)
}

func TestReindexAll_AllSucceed(t *testing.T) {
	cocktails := &fakeCocktailStore{cocktails: fixtureCocktails(12)}
	eng := memory.New()
	r := newTestReindexer(cocktails, &flakyIngredientStore{}, eng)

	result, err := r.ReindexAll(t.Context())
	require.NoError(t, err)
	assert.Equal(t, &ReindexResult{Processed: 12, Errors: 0}, result)

	searched, err := eng.Search(t.Context(), domain.CollectionCocktails, &domain.SearchRequest{Page: 1, PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, 12, searched.Total)
}

func TestReindexAll_PerDocumentFailureTolerated(t *testing.T) {
	cocktails := &fakeCocktailStore{cocktails: fixtureCocktails(12)}
	eng := memory.New()
	// Cocktail #7 references ing-07; resolving it fails.
	r := newTestReindexer(cocktails, &flakyIngredientStore{failFor: "ing-07"}, eng)

	result, err := r.ReindexAll(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 11, result.Processed)
	assert.Equal(t, 1, result.Errors)

	searched, err := eng.Search(t.Context(), domain.CollectionCocktails, &domain.SearchRequest{Page: 1, PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, 11, searched.Total, "the 11 succeeding documents are all present")

	missing, err := eng.Search(t.Context(), domain.CollectionCocktails, &domain.SearchRequest{Query: "cocktail 07", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, missing.Total)
}

func TestReindexAll_BatchFetchFailureFatal(t *testing.T) {
	cocktails := &fakeCocktailStore{cocktails: fixtureCocktails(25), failAfter: 2}
	eng := memory.New()
	r := newTestReindexer(cocktails, &flakyIngredientStore{}, eng)

	_, err := r.ReindexAll(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch batch")
}

func TestReindexAll_DropsExistingIndexFirst(t *testing.T) {
	eng := memory.New()
	stale := &domain.CocktailDocument{
		ID:    "stale",
		Title: domain.I18nString{"en": "Stale Leftover"},
	}
	require.NoError(t, eng.Index(t.Context(), domain.CollectionCocktails, stale))

	cocktails := &fakeCocktailStore{cocktails: fixtureCocktails(3)}
	r := newTestReindexer(cocktails, &flakyIngredientStore{}, eng)

	result, err := r.ReindexAll(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Processed)

	leftover, err := eng.Search(t.Context(), domain.CollectionCocktails, &domain.SearchRequest{Query: "stale", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, leftover.Total, "documents absent from the primary store must not survive a reindex")
}

func TestReindexAll_PaginatesInBatches(t *testing.T) {
	cocktails := &fakeCocktailStore{cocktails: fixtureCocktails(25)}
	eng := memory.New()
	r := newTestReindexer(cocktails, &flakyIngredientStore{}, eng)

	result, err := r.ReindexAll(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 25, result.Processed)
	// 10 + 10 + 5: the short batch ends the run without another fetch.
	assert.Equal(t, 3, cocktails.fetches)
}

func TestReindexAll_ExactMultipleOfBatchSize(t *testing.T) {
	cocktails := &fakeCocktailStore{cocktails: fixtureCocktails(20)}
	eng := memory.New()
	r := newTestReindexer(cocktails, &flakyIngredientStore{}, eng)

	result, err := r.ReindexAll(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 20, result.Processed)
	// The second batch is full, so one more fetch observes the empty page.
	assert.Equal(t, 3, cocktails.fetches)
}

func TestReindexAll_EmptyCollection(t *testing.T) {
	cocktails := &fakeCocktailStore{}
	eng := memory.New()
	r := newTestReindexer(cocktails, &flakyIngredientStore{}, eng)

	result, err := r.ReindexAll(t.Context())
	require.NoError(t, err)
	assert.Equal(t, &ReindexResult{}, result)
}

func TestReindexAll_CanceledContext(t *testing.T) {
	cocktails := &fakeCocktailStore{cocktails: fixtureCocktails(25)}
	eng := memory.New()
	resolver := relation.NewResolver(&flakyIngredientStore{}, noopEquipmentStore{})
	ix := indexer.New(resolver, eng, newTestLogger())
	r := NewReindexer(cocktails, ix, eng, newTestLogger(),
		WithBatchSize(10),
		WithBatchPause(50*time.Millisecond),
	)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := r.ReindexAll(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
