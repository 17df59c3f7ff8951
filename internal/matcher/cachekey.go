package matcher

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/resolvarr/resolvarr/internal/models"
	"github.com/resolvarr/resolvarr/internal/scoring"
)

// CacheKey derives the deterministic cache key for a matching query from
// the normalized primary title, media type, and primary provider. Two
// lookups for the same title on the same provider always coincide; distinct
// titles practically never do after normalization.
func CacheKey(identity models.MediaIdentity) string {
	return fmt.Sprintf("match|%s|%s|%s",
		scoring.NormalizeTitle(identity.Title),
		identity.Type,
		identity.PrimaryProvider,
	)
}

// cachedMatchSet is the serialized form of a match set stored in the cache.
// The insertion timestamp rides along for operator inspection; expiry itself
// is enforced by the cache backend's TTL.
type cachedMatchSet struct {
	Matches  models.MatchSet `json:"matches"`
	CachedAt time.Time       `json:"cachedAt"`
}

// encodeMatchSet serializes a match set snapshot for cache storage.
func encodeMatchSet(matches models.MatchSet) ([]byte, error) {
	return json.Marshal(cachedMatchSet{
		Matches:  matches,
		CachedAt: time.Now().UTC(),
	})
}

// decodeMatchSet deserializes a cached snapshot. Returns false when the
// payload is not a valid snapshot (e.g., written by an older version), in
// which case the caller falls back to a fresh fan-out.
func decodeMatchSet(data []byte) (models.MatchSet, bool) {
	var snap cachedMatchSet
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	if snap.Matches == nil {
		return models.MatchSet{}, true
	}
	return snap.Matches, true
}
