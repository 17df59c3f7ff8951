package aggregator

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/resolvarr/resolvarr/internal/metrics"
	"github.com/resolvarr/resolvarr/internal/models"
	"github.com/resolvarr/resolvarr/internal/providers"
)

// AggregateMediaDetails enriches the primary provider's details record with
// data fetched from every matched provider. Fetches run concurrently; a
// failing fetch contributes nothing to the merge but never aborts it. The
// result is always usable, in the worst case identical to the primary's own
// data with only the primary listed as contributing.
func (a *Aggregator) AggregateMediaDetails(ctx context.Context, primary models.MediaDetails, matches models.MatchSet, fetch providers.DetailsFunc) models.AggregatedMediaDetails {
	start := time.Now()
	defer func() {
		metrics.AggregationDuration.WithLabelValues("details").Observe(time.Since(start).Seconds())
	}()

	ranked := rankMatches(matches)
	fetched := make([]*models.MediaDetails, len(ranked))

	var wg sync.WaitGroup
	wg.Add(len(ranked))
	for i, match := range ranked {
		i, match := i, match
		go func() {
			defer wg.Done()
			details, err := a.fetchDetailsWithTimeout(ctx, fetch, match.MediaID, match.Provider)
			if err != nil {
				// Degrades to one fewer contributing provider.
				a.logger.Warn().
					Err(err).
					Str("provider", match.Provider).
					Str("mediaId", match.MediaID).
					Msg("Details fetch failed, provider excluded from merge")
				metrics.ProviderCallsTotal.WithLabelValues(match.Provider, "details", "error").Inc()
				return
			}
			metrics.ProviderCallsTotal.WithLabelValues(match.Provider, "details", "ok").Inc()
			fetched[i] = details
		}()
	}
	wg.Wait()

	result := models.AggregatedMediaDetails{
		MediaDetails:          primary,
		ContributingProviders: []string{primary.Provider},
		DataSourceAttribution: make(map[string]string),
		MatchConfidences:      make(map[string]float64, len(matches)),
	}
	for provider, match := range matches {
		result.MatchConfidences[provider] = match.Confidence
	}

	for i, match := range ranked {
		details := fetched[i]
		if details == nil {
			continue
		}
		if a.mergeDetails(&result, details, match.Provider) {
			result.ContributingProviders = append(result.ContributingProviders, match.Provider)
		}
	}

	a.logger.Info().
		Str("title", primary.Title).
		Str("primary", primary.Provider).
		Int("matched", len(ranked)).
		Int("contributing", len(result.ContributingProviders)).
		Msg("Media details aggregation completed")

	return result
}

// mergeDetails folds one provider's record into the aggregate. Reports
// whether the provider contributed at least one field; every field it filled
// or overwrote is recorded in the attribution map under its logical name.
func (a *Aggregator) mergeDetails(out *models.AggregatedMediaDetails, src *models.MediaDetails, provider string) bool {
	contributed := false
	won := func(field string) {
		out.DataSourceAttribution[field] = provider
		contributed = true
	}

	// More complete wins for descriptive text.
	if len(src.Description) > len(out.Description) {
		out.Description = src.Description
		won("description")
	}

	// Optimistic union for ratings and popularity.
	if src.Rating > out.Rating {
		out.Rating = src.Rating
		won("rating")
	}
	if src.Popularity > out.Popularity {
		out.Popularity = src.Popularity
		won("popularity")
	}

	// Under-counting providers truncate legitimate series, so the higher
	// count wins.
	if src.EpisodeCount > out.EpisodeCount {
		out.EpisodeCount = src.EpisodeCount
		won("episodeCount")
	}
	if src.ChapterCount > out.ChapterCount {
		out.ChapterCount = src.ChapterCount
		won("chapterCount")
	}

	// Fill-if-empty scalars.
	if out.Status == "" && src.Status != "" {
		out.Status = src.Status
		won("status")
	}
	if out.CoverURL == "" && src.CoverURL != "" {
		out.CoverURL = src.CoverURL
		won("coverUrl")
	}
	if out.BannerURL == "" && src.BannerURL != "" {
		out.BannerURL = src.BannerURL
		won("bannerUrl")
	}
	if out.Year == 0 && src.Year != 0 {
		out.Year = src.Year
		won("year")
	}

	if mergeGenres(&out.Genres, src.Genres) {
		won("genres")
	}
	if mergeCharacters(&out.Characters, src.Characters) {
		won("characters")
	}
	if mergeStaff(&out.Staff, src.Staff) {
		won("staff")
	}
	if mergeRecommendations(&out.Recommendations, src.Recommendations) {
		won("recommendations")
	}

	return contributed
}

// mergeGenres unions genre lists, de-duplicated case-insensitively. First
// occurrence's ordering and spelling are preserved.
func mergeGenres(dst *[]string, src []string) bool {
	seen := make(map[string]bool, len(*dst))
	for _, g := range *dst {
		seen[strings.ToLower(strings.TrimSpace(g))] = true
	}
	added := false
	for _, g := range src {
		key := strings.ToLower(strings.TrimSpace(g))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		*dst = append(*dst, g)
		added = true
	}
	return added
}

// mergeCharacters unions character credits by name.
func mergeCharacters(dst *[]models.Character, src []models.Character) bool {
	seen := make(map[string]bool, len(*dst))
	for _, c := range *dst {
		seen[strings.ToLower(c.Name)] = true
	}
	added := false
	for _, c := range src {
		key := strings.ToLower(c.Name)
		if c.Name == "" || seen[key] {
			continue
		}
		seen[key] = true
		*dst = append(*dst, c)
		added = true
	}
	return added
}

// mergeStaff unions staff credits by name.
func mergeStaff(dst *[]models.StaffMember, src []models.StaffMember) bool {
	seen := make(map[string]bool, len(*dst))
	for _, s := range *dst {
		seen[strings.ToLower(s.Name)] = true
	}
	added := false
	for _, s := range src {
		key := strings.ToLower(s.Name)
		if s.Name == "" || seen[key] {
			continue
		}
		seen[key] = true
		*dst = append(*dst, s)
		added = true
	}
	return added
}

// mergeRecommendations unions recommendations, keyed by ID when available
// and by title otherwise.
func mergeRecommendations(dst *[]models.Recommendation, src []models.Recommendation) bool {
	seen := make(map[string]bool, len(*dst))
	for _, r := range *dst {
		seen[recommendationKey(r)] = true
	}
	added := false
	for _, r := range src {
		key := recommendationKey(r)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		*dst = append(*dst, r)
		added = true
	}
	return added
}

func recommendationKey(r models.Recommendation) string {
	if r.ID != "" {
		return "id:" + r.ID
	}
	if r.Title == "" {
		return ""
	}
	return "title:" + strings.ToLower(r.Title)
}
