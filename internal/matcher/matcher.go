package matcher

import (
	"context"
	"sync"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/timeout"

	"github.com/resolvarr/resolvarr/internal/cache"
	"github.com/resolvarr/resolvarr/internal/config"
	"github.com/resolvarr/resolvarr/internal/metrics"
	"github.com/resolvarr/resolvarr/internal/models"
	"github.com/resolvarr/resolvarr/internal/providers"
	"github.com/resolvarr/resolvarr/internal/scoring"
	"github.com/rs/zerolog"
)

// Options tunes the matcher's acceptance and timeout behavior.
type Options struct {
	// AcceptThreshold is the minimum confidence for a candidate to be
	// retained as a match.
	AcceptThreshold float64

	// SearchTimeout bounds each individual provider search call.
	SearchTimeout time.Duration
}

// DefaultOptions returns the matcher defaults.
func DefaultOptions() Options {
	return Options{
		AcceptThreshold: config.DefaultAcceptThreshold,
		SearchTimeout:   config.DefaultSearchTimeout,
	}
}

// Matcher finds the same title across alternate content providers by fuzzy
// title matching. Provider searches run concurrently; a slow or failing
// provider never blocks or aborts the others.
type Matcher struct {
	registry *providers.Registry
	scorer   scoring.Scorer
	opts     Options
	logger   zerolog.Logger
}

// New creates a Matcher over the given provider registry.
func New(registry *providers.Registry, scorer scoring.Scorer, opts Options) *Matcher {
	if scorer == nil {
		scorer = scoring.NewTitleScorer()
	}
	if opts.AcceptThreshold <= 0 {
		opts.AcceptThreshold = config.DefaultAcceptThreshold
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = config.DefaultSearchTimeout
	}
	return &Matcher{
		registry: registry,
		scorer:   scorer,
		opts:     opts,
		logger:   config.GetLogger(),
	}
}

// FindMatches resolves the identity against every alternate provider
// appropriate to its media category and returns the confidence-ranked match
// set, at most one match per provider. The cache is consulted first; on a
// hit no search calls are issued at all. Providers yielding no acceptable
// candidate are simply absent from the result — that is not an error.
func (m *Matcher) FindMatches(ctx context.Context, identity models.MediaIdentity, search providers.SearchFunc, store cache.Cache) models.MatchSet {
	key := CacheKey(identity)

	if store != nil {
		if data, ok := store.Get(key); ok {
			if matches, valid := decodeMatchSet(data); valid {
				m.logger.Debug().
					Str("title", identity.Title).
					Int("matches", len(matches)).
					Msg("Match set served from cache")
				metrics.MatchOperationsTotal.WithLabelValues("cache_hit").Inc()
				return matches
			}
			// Undecodable snapshot: treat as a miss and overwrite below.
		}
	}

	alternates := m.registry.AlternatesFor(identity.Type, providers.ProviderID(identity.PrimaryProvider))
	matches := m.fanOut(ctx, identity, alternates, search)

	if store != nil {
		if data, err := encodeMatchSet(matches); err == nil {
			store.Set(key, data)
		}
	}

	outcome := "fanout"
	if len(matches) == 0 {
		outcome = "empty"
	}
	metrics.MatchOperationsTotal.WithLabelValues(outcome).Inc()

	m.logger.Info().
		Str("title", identity.Title).
		Str("type", identity.Type.String()).
		Str("primary", identity.PrimaryProvider).
		Int("providers", len(alternates)).
		Int("matches", len(matches)).
		Msg("Cross-provider matching completed")

	return matches
}

// fanOut searches all alternate providers concurrently and keeps the best
// acceptable candidate from each.
func (m *Matcher) fanOut(ctx context.Context, identity models.MediaIdentity, alternates []providers.ContentProvider, search providers.SearchFunc) models.MatchSet {
	results := make([]*models.ProviderMatch, len(alternates))
	var wg sync.WaitGroup
	wg.Add(len(alternates))

	for i, p := range alternates {
		i, p := i, p
		go func() {
			defer wg.Done()
			results[i] = m.matchProvider(ctx, identity, p, search)
		}()
	}

	wg.Wait()

	matches := make(models.MatchSet)
	for _, match := range results {
		if match != nil {
			matches[match.Provider] = *match
		}
	}
	return matches
}

// matchProvider queries one provider and scores its candidates. Returns nil
// when the provider fails, times out, or has no candidate at or above the
// acceptance threshold.
func (m *Matcher) matchProvider(ctx context.Context, identity models.MediaIdentity, p providers.ContentProvider, search providers.SearchFunc) *models.ProviderMatch {
	providerID := string(p.ID())
	queryType := providers.QueryType(p, identity.Type)

	candidates, err := m.searchWithTimeout(ctx, search, identity.Title, providerID, queryType)
	if err != nil {
		// A failing provider contributes nothing for this pass only.
		m.logger.Warn().
			Err(err).
			Str("provider", providerID).
			Str("title", identity.Title).
			Msg("Provider search failed, skipping")
		metrics.ProviderCallsTotal.WithLabelValues(providerID, "search", "error").Inc()
		return nil
	}
	metrics.ProviderCallsTotal.WithLabelValues(providerID, "search", "ok").Inc()

	var best *models.ProviderMatch
	for _, candidate := range candidates {
		if candidate.Title == "" || candidate.ID == "" {
			// Malformed candidate, skip during scoring
			m.logger.Debug().
				Str("provider", providerID).
				Str("candidateId", candidate.ID).
				Msg("Skipping candidate with missing required fields")
			continue
		}

		confidence := m.scorer.Score(identity, candidate)
		if best == nil || confidence > best.Confidence {
			best = &models.ProviderMatch{
				Provider:     providerID,
				MediaID:      candidate.ID,
				Confidence:   confidence,
				MatchedTitle: candidate.Title,
			}
		}
	}

	if best == nil || best.Confidence < m.opts.AcceptThreshold {
		return nil
	}

	metrics.MatchConfidence.WithLabelValues(providerID).Observe(best.Confidence)
	m.logger.Debug().
		Str("provider", providerID).
		Str("matchedTitle", best.MatchedTitle).
		Float64("confidence", best.Confidence).
		Msg("Accepted cross-provider match")
	return best
}

// searchWithTimeout bounds a single provider search call so a hung provider
// stalls only its own contribution.
func (m *Matcher) searchWithTimeout(ctx context.Context, search providers.SearchFunc, query, providerID string, mediaType models.MediaType) ([]models.MediaCandidate, error) {
	executor := failsafe.With[[]models.MediaCandidate](
		timeout.New[[]models.MediaCandidate](m.opts.SearchTimeout),
	).WithContext(ctx)

	return executor.GetWithExecution(func(exec failsafe.Execution[[]models.MediaCandidate]) ([]models.MediaCandidate, error) {
		return search(exec.Context(), query, providerID, mediaType)
	})
}
