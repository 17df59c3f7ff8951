package models

// AlternateTitles holds the known alternate renderings of a title
type AlternateTitles struct {
	English  string   `json:"english,omitempty"`  // Official english title
	Romaji   string   `json:"romaji,omitempty"`   // Romanized title
	Native   string   `json:"native,omitempty"`   // Title in the original script
	Synonyms []string `json:"synonyms,omitempty"` // Other titles the release is known under
}

// All returns the primary title followed by every non-empty alternate title
func All(primary string, alt AlternateTitles) []string {
	titles := make([]string, 0, 4+len(alt.Synonyms))
	if primary != "" {
		titles = append(titles, primary)
	}
	if alt.English != "" {
		titles = append(titles, alt.English)
	}
	if alt.Romaji != "" {
		titles = append(titles, alt.Romaji)
	}
	if alt.Native != "" {
		titles = append(titles, alt.Native)
	}
	for _, s := range alt.Synonyms {
		if s != "" {
			titles = append(titles, s)
		}
	}
	return titles
}

// MediaIdentity is the immutable snapshot used as the matching query.
// It is created once per resolution attempt and never mutated.
type MediaIdentity struct {
	Title           string          `json:"title"`
	AlternateTitles AlternateTitles `json:"alternateTitles,omitempty"`
	Type            MediaType       `json:"type"`
	Year            int             `json:"year,omitempty"` // 0 when unknown
	PrimaryProvider string          `json:"primaryProvider"`
}

// Titles returns every known title of the identity, primary first
func (m MediaIdentity) Titles() []string {
	return All(m.Title, m.AlternateTitles)
}

// MediaCandidate is a single search hit returned by a provider
type MediaCandidate struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	AlternateTitles AlternateTitles `json:"alternateTitles,omitempty"`
	Type            MediaType       `json:"type,omitempty"`
	Year            int             `json:"year,omitempty"`
}

// Titles returns every known title of the candidate, primary first
func (c MediaCandidate) Titles() []string {
	return All(c.Title, c.AlternateTitles)
}

// ProviderMatch records the best acceptable candidate one provider returned
// for a media identity. Confidence is always within [0,1].
type ProviderMatch struct {
	Provider     string  `json:"provider"`
	MediaID      string  `json:"mediaId"`
	Confidence   float64 `json:"confidence"`
	MatchedTitle string  `json:"matchedTitle"`
}

// MatchSet maps provider IDs to their best-candidate match.
// At most one entry exists per provider.
type MatchSet map[string]ProviderMatch

// Character represents a character credit on a media record
type Character struct {
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// StaffMember represents a staff credit on a media record
type StaffMember struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Recommendation points at a related title a provider suggests
type Recommendation struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	CoverURL string `json:"coverUrl,omitempty"`
}

// MediaDetails is the full metadata a provider returns for a single title
type MediaDetails struct {
	ID              string           `json:"id"`
	Provider        string           `json:"provider"`
	Title           string           `json:"title"`
	AlternateTitles AlternateTitles  `json:"alternateTitles,omitempty"`
	Type            MediaType        `json:"type,omitempty"`
	Description     string           `json:"description,omitempty"`
	Year            int              `json:"year,omitempty"`
	Status          string           `json:"status,omitempty"`
	CoverURL        string           `json:"coverUrl,omitempty"`
	BannerURL       string           `json:"bannerUrl,omitempty"`
	Rating          float64          `json:"rating,omitempty"`     // 0-100 scale
	Popularity      int              `json:"popularity,omitempty"` // Provider-reported user count
	EpisodeCount    int              `json:"episodeCount,omitempty"`
	ChapterCount    int              `json:"chapterCount,omitempty"`
	Genres          []string         `json:"genres,omitempty"`
	Characters      []Character      `json:"characters,omitempty"`
	Staff           []StaffMember    `json:"staff,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// Identity derives the matching query snapshot for a details record
func (d MediaDetails) Identity() MediaIdentity {
	return MediaIdentity{
		Title:           d.Title,
		AlternateTitles: d.AlternateTitles,
		Type:            d.Type,
		Year:            d.Year,
		PrimaryProvider: d.Provider,
	}
}
