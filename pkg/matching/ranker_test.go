package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/clover/pkg/models"
)

func match(id string, score, total int, external bool) models.MatchResult {
	return models.MatchResult{
		Listing:       &models.Listing{ID: id},
		Score:         score,
		TotalCriteria: total,
		IsMatch:       true,
		IsExternal:    external,
	}
}

func TestRankForSeeker_TierOrdering(t *testing.T) {
	matches := []models.MatchResult{
		match("own-partial", 3, 5, false),
		match("external-perfect", 5, 5, true),
		match("external-partial", 4, 5, true),
		match("own-perfect", 4, 4, false),
	}

	rankForSeeker(matches)

	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.Listing.ID
	}
	assert.Equal(t, []string{"own-perfect", "external-perfect", "own-partial", "external-partial"}, ids)

	assert.Equal(t, models.TierOwnPerfect, matches[0].Tier)
	assert.Equal(t, models.TierExternalPerfect, matches[1].Tier)
	assert.Equal(t, models.TierOwnPartial, matches[2].Tier)
	assert.Equal(t, models.TierExternalPartial, matches[3].Tier)
}

func TestRankForSeeker_ExternalPerfectBeatsOwnPartial(t *testing.T) {
	matches := []models.MatchResult{
		match("own-partial", 3, 5, false),
		match("external-perfect", 5, 5, true),
	}

	rankForSeeker(matches)

	assert.Equal(t, "external-perfect", matches[0].Listing.ID)
	assert.Equal(t, "own-partial", matches[1].Listing.ID)
}

func TestRankForSeeker_ScoreDescendingWithinTier(t *testing.T) {
	matches := []models.MatchResult{
		match("low", 4, 6, false),
		match("high", 5, 6, false),
		match("low-first", 4, 6, false),
	}

	rankForSeeker(matches)

	assert.Equal(t, "high", matches[0].Listing.ID)
	// ties keep discovery order
	assert.Equal(t, "low", matches[1].Listing.ID)
	assert.Equal(t, "low-first", matches[2].Listing.ID)
}

func TestSortByScore(t *testing.T) {
	matches := []models.MatchResult{
		match("b", 3, 5, false),
		match("a", 5, 5, true),
		match("c", 3, 5, true),
	}

	sortByScore(matches)

	assert.Equal(t, "a", matches[0].Listing.ID)
	assert.Equal(t, "b", matches[1].Listing.ID)
	assert.Equal(t, "c", matches[2].Listing.ID)
}
