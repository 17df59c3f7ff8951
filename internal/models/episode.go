package models

// Episode represents a single episode or chapter of a media record
type Episode struct {
	Number       int    `json:"number"`
	Season       *int   `json:"season,omitempty"` // nil when the provider supplies no season metadata
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	AirDate      string `json:"airDate,omitempty"` // ISO 8601 date, provider-dependent precision
	Provider     string `json:"provider,omitempty"`

	// AlternativeData carries supplemental fields from non-canonical
	// providers, keyed by provider ID. Populated only for fields the
	// canonical record lacks.
	AlternativeData map[string]EpisodeExtras `json:"alternativeData,omitempty"`
}

// EpisodeExtras holds the supplemental fields one provider contributed
type EpisodeExtras struct {
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Description  string `json:"description,omitempty"`
	AirDate      string `json:"airDate,omitempty"`
}

// Empty reports whether the extras carry no data at all
func (e EpisodeExtras) Empty() bool {
	return e.ThumbnailURL == "" && e.Description == "" && e.AirDate == ""
}

// EpisodeKey is the de-duplication key for episodes across providers.
// The same (season, number) pair from two providers is merged, never
// duplicated.
type EpisodeKey struct {
	Season    int
	HasSeason bool
	Number    int
}

// Key returns the de-duplication key for the episode
func (e Episode) Key() EpisodeKey {
	k := EpisodeKey{Number: e.Number}
	if e.Season != nil {
		k.Season = *e.Season
		k.HasSeason = true
	}
	return k
}

// SortSeason returns the season used for ordering, with absent seasons
// treated as season 0
func (e Episode) SortSeason() int {
	if e.Season == nil {
		return 0
	}
	return *e.Season
}
