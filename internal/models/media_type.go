package models

import "strings"

// MediaType classifies the kind of media a record describes
type MediaType string

const (
	TypeAnime       MediaType = "anime"
	TypeManga       MediaType = "manga"
	TypeNovel       MediaType = "novel"
	TypeMovie       MediaType = "movie"
	TypeTvShow      MediaType = "tvShow"
	TypeCartoon     MediaType = "cartoon"
	TypeDocumentary MediaType = "documentary"
	TypeLivestream  MediaType = "livestream"
	TypeNsfw        MediaType = "nsfw"
)

// ParseMediaType converts a media type string to MediaType, defaulting to anime
func ParseMediaType(s string) MediaType {
	switch strings.ToLower(s) {
	case "anime":
		return TypeAnime
	case "manga":
		return TypeManga
	case "novel":
		return TypeNovel
	case "movie":
		return TypeMovie
	case "tvshow", "tv", "series":
		return TypeTvShow
	case "cartoon":
		return TypeCartoon
	case "documentary":
		return TypeDocumentary
	case "livestream":
		return TypeLivestream
	case "nsfw":
		return TypeNsfw
	default:
		return TypeAnime
	}
}

// IsVideo reports whether the type is watched rather than read
func (t MediaType) IsVideo() bool {
	switch t {
	case TypeAnime, TypeMovie, TypeTvShow, TypeCartoon, TypeDocumentary, TypeLivestream, TypeNsfw:
		return true
	default:
		return false
	}
}

// IsReading reports whether the type is read rather than watched
func (t MediaType) IsReading() bool {
	switch t {
	case TypeManga, TypeNovel:
		return true
	default:
		return false
	}
}

// String returns the string representation of the media type
func (t MediaType) String() string {
	return string(t)
}
