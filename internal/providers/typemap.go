package providers

import (
	"github.com/resolvarr/resolvarr/internal/models"
)

// QueryType maps the query's media type onto the type the target provider
// understands. Anime searched against a general movie/TV database must be
// retyped as tvShow for that provider's query semantics; conversely a movie
// searched against an anime tracker queries as anime.
func QueryType(p ContentProvider, t models.MediaType) models.MediaType {
	if Supports(p, t) {
		return t
	}

	switch {
	case t == models.TypeAnime && Supports(p, models.TypeTvShow):
		return models.TypeTvShow
	case t == models.TypeAnime && Supports(p, models.TypeMovie):
		return models.TypeMovie
	case (t == models.TypeMovie || t == models.TypeTvShow || t == models.TypeCartoon || t == models.TypeDocumentary) &&
		Supports(p, models.TypeAnime):
		return models.TypeAnime
	case t == models.TypeNovel && Supports(p, models.TypeManga):
		return models.TypeManga
	case t == models.TypeManga && Supports(p, models.TypeNovel):
		return models.TypeNovel
	}

	// No sensible mapping; let the provider interpret the original type.
	return t
}
