package aggregator

import (
	"sort"

	"github.com/resolvarr/resolvarr/internal/models"
)

// SeasonGroup is one season's episodes, sorted by episode number.
type SeasonGroup struct {
	Season   int              `json:"season"`
	Episodes []models.Episode `json:"episodes"`
}

// EpisodePage is one fixed-size page of episodes, used when season metadata
// is too sparse for grouping.
type EpisodePage struct {
	Number   int              `json:"number"` // 1-based
	Episodes []models.Episode `json:"episodes"`
}

// EpisodeGrouping is the display partitioning of an aggregated episode
// sequence: either season groups or sequential pages, never both.
type EpisodeGrouping struct {
	BySeason bool          `json:"bySeason"`
	Seasons  []SeasonGroup `json:"seasons,omitempty"`
	Pages    []EpisodePage `json:"pages,omitempty"`
}

// GroupEpisodes partitions episodes by season when enough of them carry
// season numbers, and falls back to fixed-size pages otherwise. Partial
// season data looks broken to the consumer, so grouping is all or nothing:
// unless the seasoned share reaches the threshold, seasons are ignored
// entirely.
func (a *Aggregator) GroupEpisodes(episodes []models.Episode) EpisodeGrouping {
	if len(episodes) == 0 {
		return EpisodeGrouping{}
	}

	seasoned := 0
	for _, ep := range episodes {
		if ep.Season != nil {
			seasoned++
		}
	}

	if float64(seasoned) >= a.opts.SeasonThreshold*float64(len(episodes)) {
		return EpisodeGrouping{BySeason: true, Seasons: groupBySeason(episodes)}
	}
	return EpisodeGrouping{Pages: paginate(episodes, a.opts.PageSize)}
}

// groupBySeason buckets the seasoned episodes, sorted by season and by
// number within each season. Episodes without a season are excluded rather
// than grouped under a sentinel.
func groupBySeason(episodes []models.Episode) []SeasonGroup {
	buckets := make(map[int][]models.Episode)
	for _, ep := range episodes {
		if ep.Season == nil {
			continue
		}
		buckets[*ep.Season] = append(buckets[*ep.Season], ep)
	}

	seasons := make([]int, 0, len(buckets))
	for season := range buckets {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)

	groups := make([]SeasonGroup, 0, len(seasons))
	for _, season := range seasons {
		eps := buckets[season]
		sort.SliceStable(eps, func(i, j int) bool { return eps[i].Number < eps[j].Number })
		groups = append(groups, SeasonGroup{Season: season, Episodes: eps})
	}
	return groups
}

// paginate splits episodes into sequential fixed-size pages, preserving the
// input order.
func paginate(episodes []models.Episode, pageSize int) []EpisodePage {
	pages := make([]EpisodePage, 0, (len(episodes)+pageSize-1)/pageSize)
	for start := 0; start < len(episodes); start += pageSize {
		end := start + pageSize
		if end > len(episodes) {
			end = len(episodes)
		}
		pages = append(pages, EpisodePage{Number: len(pages) + 1, Episodes: episodes[start:end]})
	}
	return pages
}
