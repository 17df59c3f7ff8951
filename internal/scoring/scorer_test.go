package scoring

import (
	"testing"

	"github.com/resolvarr/resolvarr/internal/models"
)

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases", input: "Attack On Titan", expected: "attack on titan"},
		{name: "strips apostrophes", input: "Bob's Burgers", expected: "bobs burgers"},
		{name: "strips colons", input: "Re:Zero", expected: "rezero"},
		{name: "hyphens become spaces", input: "Spider-Man", expected: "spider man"},
		{name: "dots become spaces", input: "Shingeki.no.Kyojin", expected: "shingeki no kyojin"},
		{name: "collapses whitespace", input: "  My   Hero    Academia ", expected: "my hero academia"},
		{name: "drops brackets", input: "Steins;Gate (2011)", expected: "steinsgate 2011"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeTitle(tt.input); got != tt.expected {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSimilarity_Identical(t *testing.T) {
	t.Parallel()
	if got := Similarity("attack on titan", "attack on titan"); got != 1.0 {
		t.Errorf("Similarity(identical) = %v, want 1.0", got)
	}
}

func TestSimilarity_Empty(t *testing.T) {
	t.Parallel()
	if got := Similarity("attack on titan", ""); got != 0 {
		t.Errorf("Similarity(x, empty) = %v, want 0", got)
	}
}

func TestSimilarity_SmallEdit(t *testing.T) {
	t.Parallel()
	got := Similarity("attack on titan", "attack on titans")
	if got < 0.9 {
		t.Errorf("Similarity for one-character edit = %v, want >= 0.9", got)
	}
}

func TestSimilarity_WordReorder(t *testing.T) {
	t.Parallel()
	got := Similarity("fullmetal alchemist brotherhood", "brotherhood fullmetal alchemist")
	if got != 1.0 {
		t.Errorf("Similarity for reordered words = %v, want 1.0 via token overlap", got)
	}
}

func TestSimilarity_Unrelated(t *testing.T) {
	t.Parallel()
	got := Similarity("attack on titan", "one piece")
	if got >= 0.5 {
		t.Errorf("Similarity for unrelated titles = %v, want < 0.5", got)
	}
}

func TestTitleScorer_ExactMatchShortCircuits(t *testing.T) {
	t.Parallel()
	scorer := NewTitleScorer()

	identity := models.MediaIdentity{Title: "Attack on Titan", Type: models.TypeAnime, Year: 2013}
	// Candidate year differs wildly but exact title match must still win outright
	candidate := models.MediaCandidate{ID: "16498", Title: "ATTACK ON TITAN", Year: 1999}

	if got := scorer.Score(identity, candidate); got != 1.0 {
		t.Errorf("Score for exact normalized match = %v, want 1.0", got)
	}
}

func TestTitleScorer_MatchesViaAlternateTitles(t *testing.T) {
	t.Parallel()
	scorer := NewTitleScorer()

	identity := models.MediaIdentity{Title: "Attack on Titan", Type: models.TypeAnime, Year: 2013, PrimaryProvider: "tmdb"}
	candidate := models.MediaCandidate{
		ID:    "16498",
		Title: "Shingeki no Kyojin",
		AlternateTitles: models.AlternateTitles{
			English: "Attack on Titan",
			Romaji:  "Shingeki no Kyojin",
			Native:  "進撃の巨人",
		},
		Year: 2013,
	}

	got := scorer.Score(identity, candidate)
	if got < 0.75 {
		t.Errorf("Score via english alternate title = %v, want >= 0.75", got)
	}
}

func TestTitleScorer_YearProximity(t *testing.T) {
	t.Parallel()
	scorer := NewTitleScorer()

	identity := models.MediaIdentity{Title: "Hunter x Hunter", Year: 2011}
	sameYear := models.MediaCandidate{ID: "a", Title: "Hunter x Hunterz", Year: 2011}
	farYear := models.MediaCandidate{ID: "b", Title: "Hunter x Hunterz", Year: 1999}

	near := scorer.Score(identity, sameYear)
	far := scorer.Score(identity, farYear)
	if near <= far {
		t.Errorf("expected same-year candidate to outscore far-year candidate: near=%v far=%v", near, far)
	}
}

func TestTitleScorer_NoTitles(t *testing.T) {
	t.Parallel()
	scorer := NewTitleScorer()

	identity := models.MediaIdentity{Title: "Attack on Titan"}
	candidate := models.MediaCandidate{ID: "x"}

	if got := scorer.Score(identity, candidate); got != 0 {
		t.Errorf("Score for titleless candidate = %v, want 0", got)
	}
}

func TestTitleScorer_ClampsToUnitInterval(t *testing.T) {
	t.Parallel()
	scorer := &TitleScorer{YearBonus: 2.0, YearPenalty: 5.0}

	identity := models.MediaIdentity{Title: "Hunter x Hunter", Year: 2011}
	boosted := scorer.Score(identity, models.MediaCandidate{ID: "a", Title: "Hunter x Hunterz", Year: 2011})
	if boosted > 1.0 {
		t.Errorf("Score = %v, want <= 1.0", boosted)
	}
	penalized := scorer.Score(identity, models.MediaCandidate{ID: "b", Title: "Hunter x Hunterz", Year: 1980})
	if penalized < 0 {
		t.Errorf("Score = %v, want >= 0", penalized)
	}
}
