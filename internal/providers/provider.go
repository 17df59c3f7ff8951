package providers

import (
	"context"

	"github.com/resolvarr/resolvarr/internal/models"
)

// ProviderID uniquely identifies a content provider.
type ProviderID string

// Known provider IDs. Extension-based sources register under their own IDs
// at runtime; these constants cover the built-in tracker and database
// providers the matcher fans out to.
const (
	IDAniList      ProviderID = "anilist"
	IDMyAnimeList  ProviderID = "myanimelist"
	IDKitsu        ProviderID = "kitsu"
	IDTMDB         ProviderID = "tmdb"
	IDSimkl        ProviderID = "simkl"
	IDMangaDex     ProviderID = "mangadex"
	IDMangaUpdates ProviderID = "mangaupdates"
)

// DisplayName returns a human-readable name for the provider.
func (p ProviderID) DisplayName() string {
	switch p {
	case IDAniList:
		return "AniList"
	case IDMyAnimeList:
		return "MyAnimeList"
	case IDKitsu:
		return "Kitsu"
	case IDTMDB:
		return "TMDB"
	case IDSimkl:
		return "Simkl"
	case IDMangaDex:
		return "MangaDex"
	case IDMangaUpdates:
		return "MangaUpdates"
	default:
		return string(p)
	}
}

// SearchFunc queries one provider for candidates matching a title.
// Implementations may fail; the matcher treats any error as an empty result.
type SearchFunc func(ctx context.Context, query string, providerID string, mediaType models.MediaType) ([]models.MediaCandidate, error)

// DetailsFunc fetches the full details record for a media ID on a provider.
type DetailsFunc func(ctx context.Context, mediaID string, providerID string) (*models.MediaDetails, error)

// EpisodesFunc fetches the episode list for a media ID on a provider.
type EpisodesFunc func(ctx context.Context, mediaID string, providerID string) ([]models.Episode, error)

// ContentProvider is the interface all content source adapters must implement.
// A provider declares the media types it can serve; the matcher only fans
// out to providers whose declared types cover the query's category.
type ContentProvider interface {
	// ID returns the unique provider identifier.
	ID() ProviderID

	// SupportedTypes returns the media types this provider can answer
	// queries for.
	SupportedTypes() []models.MediaType

	// Search queries the provider by title. Returns zero or more candidates.
	Search(ctx context.Context, query string, mediaType models.MediaType) ([]models.MediaCandidate, error)

	// GetDetails fetches full metadata for a media record by the provider's own ID.
	GetDetails(ctx context.Context, mediaID string) (*models.MediaDetails, error)

	// GetEpisodes fetches the episode or chapter list for a media record.
	// Providers without episode data return nil, nil.
	GetEpisodes(ctx context.Context, mediaID string) ([]models.Episode, error)
}

// Supports reports whether the provider declares the given media type.
func Supports(p ContentProvider, t models.MediaType) bool {
	for _, st := range p.SupportedTypes() {
		if st == t {
			return true
		}
	}
	return false
}
