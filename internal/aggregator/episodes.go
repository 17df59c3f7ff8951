package aggregator

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/resolvarr/resolvarr/internal/apperrors"
	"github.com/resolvarr/resolvarr/internal/metrics"
	"github.com/resolvarr/resolvarr/internal/models"
	"github.com/resolvarr/resolvarr/internal/providers"
)

// episodeFetch pairs one provider's contribution with its fetch outcome.
type episodeFetch struct {
	provider string
	episodes []models.Episode
	err      error
}

// AggregateEpisodes fetches episode lists from the primary provider and
// every matched provider concurrently and merges them into one ordered
// sequence, de-duplicated by (season, number). The first contributor of an
// episode supplies the canonical record; later providers only fill its
// alternative-data side-table for fields the canonical record lacks.
//
// A failing alternate provider contributes an empty list. A failing primary
// fetch is the one hard error: that data is mandatory.
func (a *Aggregator) AggregateEpisodes(ctx context.Context, primary models.MediaDetails, matches models.MatchSet, fetch providers.EpisodesFunc) ([]models.Episode, error) {
	start := time.Now()
	defer func() {
		metrics.AggregationDuration.WithLabelValues("episodes").Observe(time.Since(start).Seconds())
	}()

	ranked := rankMatches(matches)

	// Primary first so it wins the canonical slot for every episode it has.
	sources := make([]episodeFetch, 0, len(ranked)+1)
	sources = append(sources, episodeFetch{provider: primary.Provider})
	mediaIDs := []string{primary.ID}
	for _, match := range ranked {
		sources = append(sources, episodeFetch{provider: match.Provider})
		mediaIDs = append(mediaIDs, match.MediaID)
	}

	var wg sync.WaitGroup
	wg.Add(len(sources))
	for i := range sources {
		i := i
		go func() {
			defer wg.Done()
			episodes, err := a.fetchEpisodesWithTimeout(ctx, fetch, mediaIDs[i], sources[i].provider)
			if err != nil {
				metrics.ProviderCallsTotal.WithLabelValues(sources[i].provider, "episodes", "error").Inc()
				sources[i].err = err
				return
			}
			metrics.ProviderCallsTotal.WithLabelValues(sources[i].provider, "episodes", "ok").Inc()
			sources[i].episodes = episodes
		}()
	}
	wg.Wait()

	if err := sources[0].err; err != nil {
		a.logger.Error().
			Err(err).
			Str("provider", primary.Provider).
			Str("mediaId", primary.ID).
			Msg("Primary provider episode fetch failed")
		return nil, apperrors.NewPrimarySourceFailureError(primary.Provider, primary.ID, err)
	}

	merged := mergeEpisodes(sources)

	a.logger.Info().
		Str("title", primary.Title).
		Int("sources", len(sources)).
		Int("episodes", len(merged)).
		Msg("Episode aggregation completed")

	return merged, nil
}

// mergeEpisodes folds the per-provider episode lists, in contribution order,
// into one de-duplicated sequence sorted by (season, number). Absent seasons
// sort as season 0.
func mergeEpisodes(sources []episodeFetch) []models.Episode {
	byKey := make(map[models.EpisodeKey]int)
	var merged []models.Episode

	for _, src := range sources {
		if src.err != nil {
			// Alternate provider failure degrades to fewer sources.
			continue
		}
		for _, ep := range src.episodes {
			if ep.Provider == "" {
				ep.Provider = src.provider
			}
			key := ep.Key()
			idx, exists := byKey[key]
			if !exists {
				byKey[key] = len(merged)
				merged = append(merged, ep)
				continue
			}
			mergeEpisodeExtras(&merged[idx], ep, src.provider)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].SortSeason() != merged[j].SortSeason() {
			return merged[i].SortSeason() < merged[j].SortSeason()
		}
		return merged[i].Number < merged[j].Number
	})
	return merged
}

// mergeEpisodeExtras records a duplicate episode's supplemental fields in
// the canonical record's side-table. Only fields the canonical record lacks
// are kept; a present value is never overwritten.
func mergeEpisodeExtras(canonical *models.Episode, dup models.Episode, provider string) {
	var extras models.EpisodeExtras
	if canonical.ThumbnailURL == "" && dup.ThumbnailURL != "" {
		extras.ThumbnailURL = dup.ThumbnailURL
	}
	if canonical.Description == "" && dup.Description != "" {
		extras.Description = dup.Description
	}
	if canonical.AirDate == "" && dup.AirDate != "" {
		extras.AirDate = dup.AirDate
	}
	if extras.Empty() {
		return
	}
	if canonical.AlternativeData == nil {
		canonical.AlternativeData = make(map[string]models.EpisodeExtras)
	}
	if _, taken := canonical.AlternativeData[provider]; !taken {
		canonical.AlternativeData[provider] = extras
	}
}
