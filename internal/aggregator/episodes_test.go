package aggregator

import (
	"context"
	"errors"
	"testing"

	"github.com/resolvarr/resolvarr/internal/apperrors"
	"github.com/resolvarr/resolvarr/internal/models"
)

func intPtr(i int) *int { return &i }

func TestAggregateEpisodes_DeduplicatesAcrossProviders(t *testing.T) {
	a := New(DefaultOptions())

	fetch := func(_ context.Context, _ string, providerID string) ([]models.Episode, error) {
		switch providerID {
		case "tmdb":
			return []models.Episode{
				{Number: 1, Title: "To You, in 2000 Years", ThumbnailURL: "https://tmdb/ep1.jpg"},
				{Number: 2, Title: "That Day"},
			}, nil
		case "anilist":
			return []models.Episode{
				{Number: 1, Description: "The colossal titan appears.", ThumbnailURL: "https://anilist/ep1.jpg"},
				{Number: 3, Title: "A Dim Light Amid Despair"},
			}, nil
		default:
			return nil, nil
		}
	}

	primary := primaryDetails()
	matches := models.MatchSet{
		"anilist": {Provider: "anilist", MediaID: "16498", Confidence: 0.95},
	}

	episodes, err := a.AggregateEpisodes(context.Background(), primary, matches, fetch)
	if err != nil {
		t.Fatalf("AggregateEpisodes: %v", err)
	}

	if len(episodes) != 3 {
		t.Fatalf("Expected 3 merged episodes, got %d", len(episodes))
	}

	seen := make(map[models.EpisodeKey]bool)
	for _, ep := range episodes {
		if seen[ep.Key()] {
			t.Errorf("Duplicate episode key %+v", ep.Key())
		}
		seen[ep.Key()] = true
	}

	ep1 := episodes[0]
	if ep1.Number != 1 || ep1.Title != "To You, in 2000 Years" {
		t.Fatalf("Expected primary's episode 1 canonical, got %+v", ep1)
	}
	// Canonical thumbnail untouched; anilist fills only the missing description
	if ep1.ThumbnailURL != "https://tmdb/ep1.jpg" {
		t.Errorf("Canonical thumbnail overwritten: %s", ep1.ThumbnailURL)
	}
	extras, ok := ep1.AlternativeData["anilist"]
	if !ok {
		t.Fatal("Expected anilist extras on episode 1")
	}
	if extras.Description != "The colossal titan appears." {
		t.Errorf("Expected anilist description in side-table, got %q", extras.Description)
	}
	if extras.ThumbnailURL != "" {
		t.Errorf("Side-table must not carry fields the canonical record has, got thumbnail %q", extras.ThumbnailURL)
	}
}

func TestAggregateEpisodes_FirstContributorSuppliesThumbnail(t *testing.T) {
	a := New(DefaultOptions())

	// Both providers return episode 1 without season numbers; neither the
	// primary's thumbnail exists, so the first alternate's value lands in
	// the side-table only.
	fetch := func(_ context.Context, _ string, providerID string) ([]models.Episode, error) {
		switch providerID {
		case "tmdb":
			return []models.Episode{{Number: 1, Title: "Pilot"}}, nil
		case "anilist":
			return []models.Episode{{Number: 1, ThumbnailURL: "https://anilist/ep1.jpg"}}, nil
		default:
			return nil, nil
		}
	}

	matches := models.MatchSet{"anilist": {Provider: "anilist", MediaID: "16498", Confidence: 0.9}}
	episodes, err := a.AggregateEpisodes(context.Background(), primaryDetails(), matches, fetch)
	if err != nil {
		t.Fatalf("AggregateEpisodes: %v", err)
	}

	if len(episodes) != 1 {
		t.Fatalf("Expected exactly one episode numbered 1, got %d", len(episodes))
	}
	if episodes[0].ThumbnailURL != "" {
		t.Error("Canonical record must stay as the first contributor supplied it")
	}
	if episodes[0].AlternativeData["anilist"].ThumbnailURL != "https://anilist/ep1.jpg" {
		t.Error("Expected the alternate's thumbnail retained in the side-table")
	}
}

func TestAggregateEpisodes_SortedBySeasonThenNumber(t *testing.T) {
	a := New(DefaultOptions())

	fetch := func(_ context.Context, _ string, providerID string) ([]models.Episode, error) {
		if providerID != "tmdb" {
			return nil, nil
		}
		return []models.Episode{
			{Number: 2, Season: intPtr(2)},
			{Number: 5}, // no season, sorts as season 0
			{Number: 1, Season: intPtr(2)},
			{Number: 3, Season: intPtr(1)},
		}, nil
	}

	episodes, err := a.AggregateEpisodes(context.Background(), primaryDetails(), nil, fetch)
	if err != nil {
		t.Fatalf("AggregateEpisodes: %v", err)
	}

	type pos struct{ season, number int }
	want := []pos{{0, 5}, {1, 3}, {2, 1}, {2, 2}}
	for i, ep := range episodes {
		if ep.SortSeason() != want[i].season || ep.Number != want[i].number {
			t.Errorf("Position %d: want S%dE%d, got S%dE%d", i, want[i].season, want[i].number, ep.SortSeason(), ep.Number)
		}
	}
}

func TestAggregateEpisodes_PrimaryFailureSurfaces(t *testing.T) {
	a := New(DefaultOptions())

	fetch := func(_ context.Context, _ string, providerID string) ([]models.Episode, error) {
		if providerID == "tmdb" {
			return nil, errors.New("timeout")
		}
		return []models.Episode{{Number: 1}}, nil
	}

	matches := models.MatchSet{"anilist": {Provider: "anilist", MediaID: "16498", Confidence: 0.9}}
	_, err := a.AggregateEpisodes(context.Background(), primaryDetails(), matches, fetch)
	if err == nil {
		t.Fatal("Expected primary fetch failure to surface")
	}
	if !errors.Is(err, &apperrors.ErrPrimarySourceFailure{}) {
		t.Errorf("Expected ErrPrimarySourceFailure, got %T", err)
	}
}

func TestAggregateEpisodes_AlternateFailureTolerated(t *testing.T) {
	a := New(DefaultOptions())

	fetch := func(_ context.Context, _ string, providerID string) ([]models.Episode, error) {
		if providerID == "anilist" {
			return nil, errors.New("rate limited")
		}
		return []models.Episode{{Number: 1}, {Number: 2}}, nil
	}

	matches := models.MatchSet{"anilist": {Provider: "anilist", MediaID: "16498", Confidence: 0.9}}
	episodes, err := a.AggregateEpisodes(context.Background(), primaryDetails(), matches, fetch)
	if err != nil {
		t.Fatalf("Alternate failure must not surface, got %v", err)
	}
	if len(episodes) != 2 {
		t.Errorf("Expected primary's episodes to survive, got %d", len(episodes))
	}
}
