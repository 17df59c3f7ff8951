package testutil

import (
	"context"

	"github.com/resolvarr/resolvarr/internal/models"
	"github.com/resolvarr/resolvarr/internal/providers"
)

// IntPtr is a helper for creating *int values in tests
func IntPtr(v int) *int {
	return &v
}

// FakeProvider is a configurable in-memory ContentProvider for tests.
// Unset function fields return empty results.
type FakeProvider struct {
	ProviderID providers.ProviderID
	Types      []models.MediaType

	SearchFunc   func(ctx context.Context, query string, mediaType models.MediaType) ([]models.MediaCandidate, error)
	DetailsFunc  func(ctx context.Context, mediaID string) (*models.MediaDetails, error)
	EpisodesFunc func(ctx context.Context, mediaID string) ([]models.Episode, error)
}

func (f *FakeProvider) ID() providers.ProviderID { return f.ProviderID }

func (f *FakeProvider) SupportedTypes() []models.MediaType { return f.Types }

func (f *FakeProvider) Search(ctx context.Context, query string, mediaType models.MediaType) ([]models.MediaCandidate, error) {
	if f.SearchFunc == nil {
		return nil, nil
	}
	return f.SearchFunc(ctx, query, mediaType)
}

func (f *FakeProvider) GetDetails(ctx context.Context, mediaID string) (*models.MediaDetails, error) {
	if f.DetailsFunc == nil {
		return nil, nil
	}
	return f.DetailsFunc(ctx, mediaID)
}

func (f *FakeProvider) GetEpisodes(ctx context.Context, mediaID string) ([]models.Episode, error) {
	if f.EpisodesFunc == nil {
		return nil, nil
	}
	return f.EpisodesFunc(ctx, mediaID)
}

// NewAnimeProvider returns a fake anime tracker that answers every search
// with the given candidates.
func NewAnimeProvider(id providers.ProviderID, candidates ...models.MediaCandidate) *FakeProvider {
	return &FakeProvider{
		ProviderID: id,
		Types:      []models.MediaType{models.TypeAnime, models.TypeManga},
		SearchFunc: func(_ context.Context, _ string, _ models.MediaType) ([]models.MediaCandidate, error) {
			return candidates, nil
		},
	}
}

// NewVideoProvider returns a fake movie/TV database that answers every
// search with the given candidates.
func NewVideoProvider(id providers.ProviderID, candidates ...models.MediaCandidate) *FakeProvider {
	return &FakeProvider{
		ProviderID: id,
		Types:      []models.MediaType{models.TypeMovie, models.TypeTvShow},
		SearchFunc: func(_ context.Context, _ string, _ models.MediaType) ([]models.MediaCandidate, error) {
			return candidates, nil
		},
	}
}

// NumberedEpisodes generates count sequential episodes; season is applied to
// each when non-nil.
func NumberedEpisodes(count int, season *int) []models.Episode {
	episodes := make([]models.Episode, 0, count)
	for n := 1; n <= count; n++ {
		episodes = append(episodes, models.Episode{Number: n, Season: season})
	}
	return episodes
}
