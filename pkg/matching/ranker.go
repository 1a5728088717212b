package matching

import (
	"sort"

	"github.com/Ramsey-B/clover/pkg/models"
)

// assignTier buckets a match by score perfection and listing ownership.
// Own inventory always precedes external, perfect always precedes partial.
func assignTier(m *models.MatchResult) {
	switch {
	case m.IsPerfect() && !m.IsExternal:
		m.Tier = models.TierOwnPerfect
	case m.IsPerfect():
		m.Tier = models.TierExternalPerfect
	case !m.IsExternal:
		m.Tier = models.TierOwnPartial
	default:
		m.Tier = models.TierExternalPartial
	}
}

// rankForSeeker orders one client's or call's listing matches: tier
// ascending, then score descending. The sort is stable so equal pairs keep
// discovery order.
func rankForSeeker(matches []models.MatchResult) {
	for i := range matches {
		assignTier(&matches[i])
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Tier != matches[j].Tier {
			return matches[i].Tier < matches[j].Tier
		}
		return matches[i].Score > matches[j].Score
	})
}

// sortByScore orders matches by score descending with stable ties. Used for
// single-listing queries, where ownership tiers do not apply.
func sortByScore(matches []models.MatchResult) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}
