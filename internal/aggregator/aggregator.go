package aggregator

import (
	"context"
	"sort"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/timeout"
	"github.com/rs/zerolog"

	"github.com/resolvarr/resolvarr/internal/config"
	"github.com/resolvarr/resolvarr/internal/models"
	"github.com/resolvarr/resolvarr/internal/providers"
)

// Options tunes the aggregator's timeouts and season grouping behavior.
type Options struct {
	// FetchTimeout bounds each individual details or episode fetch.
	FetchTimeout time.Duration

	// SeasonThreshold is the fraction of episodes that must carry a season
	// number before season-based grouping is adopted.
	SeasonThreshold float64

	// PageSize is the fixed page size used when season grouping is rejected.
	PageSize int
}

// DefaultOptions returns the aggregator defaults.
func DefaultOptions() Options {
	return Options{
		FetchTimeout:    config.DefaultFetchTimeout,
		SeasonThreshold: config.DefaultSeasonThreshold,
		PageSize:        config.DefaultPageSize,
	}
}

// Aggregator merges details and episode lists fetched from matched alternate
// providers into one coherent record. Fetches run concurrently; a failing
// alternate provider degrades the result to fewer contributing providers,
// never to an aggregate failure.
type Aggregator struct {
	opts   Options
	logger zerolog.Logger
}

// New creates an Aggregator.
func New(opts Options) *Aggregator {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = config.DefaultFetchTimeout
	}
	if opts.SeasonThreshold <= 0 {
		opts.SeasonThreshold = config.DefaultSeasonThreshold
	}
	if opts.PageSize <= 0 {
		opts.PageSize = config.DefaultPageSize
	}
	return &Aggregator{
		opts:   opts,
		logger: config.GetLogger(),
	}
}

// rankMatches returns the matches ordered by descending confidence, ties
// broken by provider ID. The ordering fixes the merge precedence, so it must
// be deterministic across calls for identical match sets.
func rankMatches(matches models.MatchSet) []models.ProviderMatch {
	ranked := make([]models.ProviderMatch, 0, len(matches))
	for _, match := range matches {
		ranked = append(ranked, match)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		return ranked[i].Provider < ranked[j].Provider
	})
	return ranked
}

// fetchDetailsWithTimeout bounds one provider's details fetch.
func (a *Aggregator) fetchDetailsWithTimeout(ctx context.Context, fetch providers.DetailsFunc, mediaID, providerID string) (*models.MediaDetails, error) {
	executor := failsafe.With[*models.MediaDetails](
		timeout.New[*models.MediaDetails](a.opts.FetchTimeout),
	).WithContext(ctx)

	return executor.GetWithExecution(func(exec failsafe.Execution[*models.MediaDetails]) (*models.MediaDetails, error) {
		return fetch(exec.Context(), mediaID, providerID)
	})
}

// fetchEpisodesWithTimeout bounds one provider's episode fetch.
func (a *Aggregator) fetchEpisodesWithTimeout(ctx context.Context, fetch providers.EpisodesFunc, mediaID, providerID string) ([]models.Episode, error) {
	executor := failsafe.With[[]models.Episode](
		timeout.New[[]models.Episode](a.opts.FetchTimeout),
	).WithContext(ctx)

	return executor.GetWithExecution(func(exec failsafe.Execution[[]models.Episode]) ([]models.Episode, error) {
		return fetch(exec.Context(), mediaID, providerID)
	})
}
