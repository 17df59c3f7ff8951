package scoring

import (
	"github.com/resolvarr/resolvarr/internal/models"
)

// Scorer computes a [0,1] confidence that a search candidate is the same
// real-world title as a media identity. Implementations must be safe for
// concurrent use.
type Scorer interface {
	Score(identity models.MediaIdentity, candidate models.MediaCandidate) float64
}

// TitleScorer scores candidates by title similarity with a year-proximity
// adjustment. Every known title of the identity is compared against every
// known title of the candidate and the best pair wins. Exact
// normalized-string equality short-circuits to maximum confidence.
type TitleScorer struct {
	// YearBonus is added when both years are known and equal.
	YearBonus float64
	// YearPenalty is subtracted when both years are known and differ by
	// more than one year.
	YearPenalty float64
}

// NewTitleScorer creates a TitleScorer with the default year weighting.
func NewTitleScorer() *TitleScorer {
	return &TitleScorer{
		YearBonus:   0.05,
		YearPenalty: 0.1,
	}
}

// Score implements Scorer.
func (s *TitleScorer) Score(identity models.MediaIdentity, candidate models.MediaCandidate) float64 {
	best := 0.0
	for _, a := range identity.Titles() {
		na := NormalizeTitle(a)
		if na == "" {
			continue
		}
		for _, b := range candidate.Titles() {
			nb := NormalizeTitle(b)
			if nb == "" {
				continue
			}
			if na == nb {
				// Exact normalized match wins outright, no year adjustment
				return 1.0
			}
			if sim := Similarity(na, nb); sim > best {
				best = sim
			}
		}
	}

	if best == 0 {
		return 0
	}

	if identity.Year > 0 && candidate.Year > 0 {
		diff := identity.Year - candidate.Year
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff == 0:
			best += s.YearBonus
		case diff > 1:
			best -= s.YearPenalty
		}
	}

	return clamp01(best)
}

// Similarity compares two already-normalized titles and returns the better
// of a normalized edit-distance ratio and a token-set overlap ratio. The
// former catches small spelling variations, the latter word reordering and
// subtitle decorations.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0
	}

	lev := levenshteinRatio(a, b)
	tok := tokenOverlap(a, b)
	if tok > lev {
		return tok
	}
	return lev
}

// levenshteinRatio converts edit distance into a [0,1] similarity.
func levenshteinRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes edit distance with a single rolling row.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d := row[j] + 1
			if row[j-1]+1 < d {
				d = row[j-1] + 1
			}
			if prev+cost < d {
				d = prev + cost
			}
			prev, row[j] = row[j], d
		}
	}

	return row[len(b)]
}

// tokenOverlap computes the Jaccard similarity of the word sets of two
// normalized titles.
func tokenOverlap(a, b string) float64 {
	sa, sb := tokenSet(a), tokenSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	intersection := 0
	for tok := range sa {
		if _, ok := sb[tok]; ok {
			intersection++
		}
	}
	union := len(sa) + len(sb) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
