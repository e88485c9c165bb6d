package selection

import (
	"sort"

	"github.com/goldwen/matching-backend/internal/domain"
)

type scoredCandidate struct {
	user  *domain.User
	score float64
}

// sortByScore orders candidates by score descending, breaking ties by
// ascending user id so the ranking is deterministic.
func sortByScore(cands []scoredCandidate) {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].user.ID < cands[j].user.ID
	})
}

// pickTop applies the threshold and size rules to an already-sorted list:
// take up to maxN candidates at or above the threshold; if that yields fewer
// than minN but the full scored list has at least minN, fall back to the top
// minN of the full list, sub-threshold entries included. The minimum-size
// guarantee deliberately outranks the compatibility threshold.
func pickTop(scored []scoredCandidate, threshold float64, maxN, minN int) []scoredCandidate {
	qualifying := make([]scoredCandidate, 0, len(scored))
	for _, c := range scored {
		if c.score >= threshold {
			qualifying = append(qualifying, c)
		}
	}

	top := qualifying
	if len(top) > maxN {
		top = top[:maxN]
	}

	if len(top) < minN && len(scored) >= minN {
		top = scored[:minN]
	}

	return top
}

// toRanked converts a picked list into ranked candidates, 1-based.
func toRanked(top []scoredCandidate) []domain.SelectionCandidate {
	ranked := make([]domain.SelectionCandidate, 0, len(top))
	for i, c := range top {
		ranked = append(ranked, domain.SelectionCandidate{
			UserID:             c.user.ID,
			FirstName:          c.user.FirstName,
			Age:                c.user.Age,
			LocationCity:       c.user.LocationCity,
			CompatibilityScore: c.score,
			RankPosition:       i + 1,
		})
	}
	return ranked
}
