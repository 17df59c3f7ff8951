package resolver

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/resolvarr/resolvarr/internal/aggregator"
	"github.com/resolvarr/resolvarr/internal/apperrors"
	"github.com/resolvarr/resolvarr/internal/cache"
	"github.com/resolvarr/resolvarr/internal/config"
	"github.com/resolvarr/resolvarr/internal/matcher"
	"github.com/resolvarr/resolvarr/internal/models"
	"github.com/resolvarr/resolvarr/internal/providers"
)

// Service is the composition root for cross-provider identity resolution. It
// owns the match cache and adapts registered providers into the callback
// boundaries the matcher and aggregator consume.
type Service struct {
	registry   *providers.Registry
	matcher    *matcher.Matcher
	aggregator *aggregator.Aggregator
	store      cache.Cache
	logger     zerolog.Logger
}

// New creates a resolution service over the given registry and match cache.
func New(registry *providers.Registry, m *matcher.Matcher, a *aggregator.Aggregator, store cache.Cache) *Service {
	if m == nil {
		m = matcher.New(registry, nil, matcher.DefaultOptions())
	}
	if a == nil {
		a = aggregator.New(aggregator.DefaultOptions())
	}
	return &Service{
		registry:   registry,
		matcher:    m,
		aggregator: a,
		store:      store,
		logger:     config.GetLogger(),
	}
}

// searchFunc adapts the registry into the matcher's search boundary.
func (s *Service) searchFunc(ctx context.Context, query string, providerID string, mediaType models.MediaType) ([]models.MediaCandidate, error) {
	p := s.registry.Get(providers.ProviderID(providerID))
	if p == nil {
		return nil, &apperrors.ErrUnknownProvider{Provider: providerID}
	}
	return p.Search(ctx, query, mediaType)
}

// detailsFunc adapts the registry into the aggregator's details boundary.
func (s *Service) detailsFunc(ctx context.Context, mediaID string, providerID string) (*models.MediaDetails, error) {
	p := s.registry.Get(providers.ProviderID(providerID))
	if p == nil {
		return nil, &apperrors.ErrUnknownProvider{Provider: providerID}
	}
	details, err := p.GetDetails(ctx, mediaID)
	if err != nil {
		return nil, apperrors.NewProviderUnavailableError(providerID, "details", err)
	}
	return details, nil
}

// episodesFunc adapts the registry into the aggregator's episode boundary.
func (s *Service) episodesFunc(ctx context.Context, mediaID string, providerID string) ([]models.Episode, error) {
	p := s.registry.Get(providers.ProviderID(providerID))
	if p == nil {
		return nil, &apperrors.ErrUnknownProvider{Provider: providerID}
	}
	episodes, err := p.GetEpisodes(ctx, mediaID)
	if err != nil {
		return nil, apperrors.NewProviderUnavailableError(providerID, "episodes", err)
	}
	return episodes, nil
}

// FindMatches resolves the identity across all alternate providers,
// consulting the match cache first.
func (s *Service) FindMatches(ctx context.Context, identity models.MediaIdentity) models.MatchSet {
	return s.matcher.FindMatches(ctx, identity, s.searchFunc, s.store)
}

// AggregateMediaDetails merges the primary details record with data fetched
// from every matched provider.
func (s *Service) AggregateMediaDetails(ctx context.Context, primary models.MediaDetails, matches models.MatchSet) models.AggregatedMediaDetails {
	return s.aggregator.AggregateMediaDetails(ctx, primary, matches, s.detailsFunc)
}

// AggregateEpisodes merges episode lists from the primary and every matched
// provider. The only failure that surfaces is the primary provider's own
// episode fetch failing.
func (s *Service) AggregateEpisodes(ctx context.Context, primary models.MediaDetails, matches models.MatchSet) ([]models.Episode, error) {
	return s.aggregator.AggregateEpisodes(ctx, primary, matches, s.episodesFunc)
}

// GroupEpisodes partitions an aggregated episode sequence for display.
func (s *Service) GroupEpisodes(episodes []models.Episode) aggregator.EpisodeGrouping {
	return s.aggregator.GroupEpisodes(episodes)
}

// Resolution is the full output of a single end-to-end resolution attempt.
type Resolution struct {
	ID       string                        `json:"id"`
	Details  models.AggregatedMediaDetails `json:"details"`
	Episodes []models.Episode              `json:"episodes"`
	Grouping aggregator.EpisodeGrouping    `json:"grouping"`
	Matches  models.MatchSet               `json:"matches"`
}

// Resolve runs the whole pipeline for a media record on its primary
// provider: fetch the primary details, match alternates, aggregate details
// and episodes, and group the episode sequence. The primary provider's own
// fetches are the only hard failures.
func (s *Service) Resolve(ctx context.Context, primaryProvider, mediaID string) (*Resolution, error) {
	resolutionID := uuid.NewString()
	logger := s.logger.With().
		Str("resolution", resolutionID).
		Str("provider", primaryProvider).
		Str("mediaId", mediaID).
		Logger()

	p := s.registry.Get(providers.ProviderID(primaryProvider))
	if p == nil {
		return nil, &apperrors.ErrUnknownProvider{Provider: primaryProvider}
	}

	primary, err := p.GetDetails(ctx, mediaID)
	if err != nil {
		logger.Error().Err(err).Msg("Primary details fetch failed")
		return nil, apperrors.NewPrimarySourceFailureError(primaryProvider, mediaID, err)
	}
	if primary == nil || primary.Title == "" {
		return nil, &apperrors.ErrMalformedCandidate{Provider: primaryProvider, Reason: "details record missing title"}
	}
	if primary.Provider == "" {
		primary.Provider = primaryProvider
	}
	if primary.ID == "" {
		primary.ID = mediaID
	}

	matches := s.FindMatches(ctx, primary.Identity())
	details := s.AggregateMediaDetails(ctx, *primary, matches)

	episodes, err := s.AggregateEpisodes(ctx, *primary, matches)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("matches", len(matches)).
		Int("episodes", len(episodes)).
		Msg("Resolution completed")

	return &Resolution{
		ID:       resolutionID,
		Details:  details,
		Episodes: episodes,
		Grouping: s.GroupEpisodes(episodes),
		Matches:  matches,
	}, nil
}

// CacheStats is a point-in-time snapshot of the match cache, surfaced for
// operator inspection.
type CacheStats struct {
	EntryCount int   `json:"entryCount"`
	SizeBytes  int64 `json:"sizeBytes"`
}

// CacheStats reports the match cache's entry count and approximate size.
func (s *Service) CacheStats() CacheStats {
	if s.store == nil {
		return CacheStats{}
	}
	return CacheStats{
		EntryCount: s.store.Len(),
		SizeBytes:  s.store.SizeBytes(),
	}
}

// ClearCache drops every cached match set. The next FindMatches call for any
// identity performs a full search fan-out again.
func (s *Service) ClearCache() {
	if s.store == nil {
		return
	}
	s.store.Purge()
	s.logger.Info().Msg("Match cache cleared")
}
