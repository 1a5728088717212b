package matching

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

func f(v float64) *float64 { return &v }

func saleListing() *models.Listing {
	return &models.Listing{
		ID:           "listing-1",
		AgentID:      "agent-1",
		Title:        "3 room apartment near the beach",
		Country:      "Israel",
		Category:     "residential",
		PropertyType: "apartment",
		Status:       "For Sale",
		Location:     "תל אביב",
		Price:        f(1_000_000),
		Bedrooms:     f(3),
		Area:         f(80),
	}
}

func buyerClient() *models.ClientProfile {
	return &models.ClientProfile{
		ID:                     "client-1",
		AgentID:                "agent-1",
		ClientName:             "Dana",
		Intent:                 "buyer",
		PreferredLocation:      "תל אביב",
		PreferredPropertyTypes: json.RawMessage(`"apartment"`),
		MaxPrice:               f(1_050_000),
		MinRooms:               f(3),
		MinArea:                f(70),
	}
}

func TestScoreListingClient_FullMatch(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	result := scorer.ScoreListingClient(saleListing(), buyerClient(), false)

	assert.Equal(t, 5, result.Score)
	assert.Equal(t, 5, result.TotalCriteria)
	assert.True(t, result.IsMatch)
	assert.Equal(t, models.BudgetStatusWithin, result.BudgetStatus)
	assert.InDelta(t, 95.24, result.BudgetPercentage, 0.01)
	assert.False(t, result.IsExternal)
}

func TestScoreListingClient_IntentGateRejects(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	client := buyerClient()
	client.Intent = "renter"

	result := scorer.ScoreListingClient(saleListing(), client, false)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.TotalCriteria)
	assert.False(t, result.IsMatch)
	assert.Empty(t, result.MatchDetails)
}

func TestScoreListingClient_GateShortCircuit(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	tests := []struct {
		name   string
		mutate func(*models.ClientProfile)
	}{
		{"country mismatch", func(c *models.ClientProfile) { c.PreferredCountry = "Spain" }},
		{"category mismatch", func(c *models.ClientProfile) { c.PreferredCategory = "commercial" }},
		{"location mismatch", func(c *models.ClientProfile) { c.PreferredLocation = "חיפה" }},
		{"property type mismatch", func(c *models.ClientProfile) {
			c.PreferredPropertyTypes = json.RawMessage(`["villa","penthouse"]`)
		}},
		{"price above ceiling", func(c *models.ClientProfile) { c.MaxPrice = f(800_000) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := buyerClient()
			tt.mutate(client)

			result := scorer.ScoreListingClient(saleListing(), client, false)

			assert.Equal(t, 0, result.Score)
			assert.Equal(t, 0, result.TotalCriteria)
			assert.False(t, result.IsMatch)
		})
	}
}

func TestScoreListingClient_AbsenceIsSatisfied(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	empty := &models.ClientProfile{ID: "client-2", AgentID: "agent-1", ClientName: "Noa"}
	result := scorer.ScoreListingClient(saleListing(), empty, false)
	assert.Equal(t, 0, result.TotalCriteria)
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.IsMatch)

	empty.Intent = "buyer"
	result = scorer.ScoreListingClient(saleListing(), empty, false)
	assert.Equal(t, 1, result.TotalCriteria)
	assert.Equal(t, 1, result.Score)
}

func TestScoreListingClient_RenterStretchBudget(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	listing := saleListing()
	listing.Status = "for_rent"
	client := buyerClient()
	client.Intent = "renter"
	client.MaxPrice = f(10_000)

	t.Run("within stretch earns the point", func(t *testing.T) {
		listing.Price = f(10_500)
		result := scorer.ScoreListingClient(listing, client, false)
		require.True(t, result.TotalCriteria > 0)
		assert.Equal(t, models.BudgetStatusAbove, result.BudgetStatus)
		assert.True(t, findDetail(t, result.MatchDetails, "price").Matched)
	})

	t.Run("past stretch fails the criterion", func(t *testing.T) {
		listing.Price = f(11_200)
		result := scorer.ScoreListingClient(listing, client, false)
		assert.Equal(t, models.BudgetStatusWayAbove, result.BudgetStatus)
		assert.False(t, findDetail(t, result.MatchDetails, "price").Matched)
	})

	t.Run("exactly at ceiling rejects outright", func(t *testing.T) {
		listing.Price = f(11_500)
		result := scorer.ScoreListingClient(listing, client, false)
		assert.Equal(t, 0, result.Score)
		assert.Equal(t, 0, result.TotalCriteria)
		assert.False(t, result.IsMatch)
		assert.Empty(t, result.MatchDetails)
		assert.Equal(t, models.BudgetStatusWayAbove, result.BudgetStatus)
	})

	t.Run("past ceiling rejects outright", func(t *testing.T) {
		listing.Price = f(12_000)
		result := scorer.ScoreListingClient(listing, client, false)
		assert.Equal(t, 0, result.Score)
		assert.Equal(t, 0, result.TotalCriteria)
		assert.False(t, result.IsMatch)
		assert.Equal(t, models.BudgetStatusWayAbove, result.BudgetStatus)
	})
}

func TestScoreListingClient_BuyerOverBudgetNeverEarnsPoint(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	listing := saleListing()
	listing.Price = f(1_100_000)
	client := buyerClient()
	client.MaxPrice = f(1_000_000)

	result := scorer.ScoreListingClient(listing, client, false)

	// 1.10x the budget is inside the 15% tolerance band but still over
	// budget, so the price point is withheld while the other four criteria
	// can carry the match.
	assert.Equal(t, models.BudgetStatusAbove, result.BudgetStatus)
	assert.False(t, findDetail(t, result.MatchDetails, "price").Matched)
	assert.Equal(t, 4, result.Score)
	assert.Equal(t, 5, result.TotalCriteria)
	assert.True(t, result.IsMatch)
	assert.InDelta(t, 110, result.BudgetPercentage, 0.01)
}

func TestScoreListingClient_CountryComparisonIgnoresCase(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	client := buyerClient()
	client.PreferredCountry = " israel "
	client.PreferredCategory = "Residential"

	result := scorer.ScoreListingClient(saleListing(), client, false)

	assert.True(t, result.IsMatch)
	assert.Equal(t, 5, result.Score)
}

func TestScoreListingClient_Idempotent(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	listing := saleListing()
	client := buyerClient()

	first := scorer.ScoreListingClient(listing, client, false)
	second := scorer.ScoreListingClient(listing, client, false)

	assert.True(t, reflect.DeepEqual(first, second))
}

func TestScoreListingClient_FastModeEquivalence(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	clients := []*models.ClientProfile{
		buyerClient(),
		{ID: "c", AgentID: "a", ClientName: "n", Intent: "renter", MaxPrice: f(9_000)},
		{ID: "c", AgentID: "a", ClientName: "n", PreferredLocation: "חיפה"},
	}
	for _, client := range clients {
		detailed := scorer.ScoreListingClient(saleListing(), client, false)
		fast := scorer.ScoreListingClient(saleListing(), client, true)

		assert.Equal(t, detailed.Score, fast.Score)
		assert.Equal(t, detailed.TotalCriteria, fast.TotalCriteria)
		assert.Equal(t, detailed.IsMatch, fast.IsMatch)
		assert.Nil(t, fast.MatchDetails)
	}
}

func TestScoreListingClient_RoomsFloorHasNoTolerance(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	listing := saleListing()
	listing.Bedrooms = f(2.5)
	client := buyerClient()

	result := scorer.ScoreListingClient(listing, client, false)

	assert.False(t, findDetail(t, result.MatchDetails, "rooms").Matched)
	assert.Equal(t, 4, result.Score)
}

func TestScoreListingClient_AreaFloorTolerance(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	client := buyerClient()

	listing := saleListing()
	listing.Area = f(57)
	result := scorer.ScoreListingClient(listing, client, false)
	assert.True(t, findDetail(t, result.MatchDetails, "area").Matched, "20 percent under the floor still passes")

	listing.Area = f(55)
	result = scorer.ScoreListingClient(listing, client, false)
	assert.False(t, findDetail(t, result.MatchDetails, "area").Matched)
}

func TestScoreListingCall(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	listing := saleListing()

	call := &models.CallLead{
		ID:         "call-1",
		AgentID:    "agent-1",
		ClientName: "Yossi",
		Location:   "tel aviv",
		Rooms:      f(4),
		Area:       f(95),
		Price:      f(900_000),
	}

	result := scorer.ScoreListingCall(listing, call, false)

	// Rooms differ by exactly 1, area by 15, price by ~11% of the call's
	// figure; every criterion is inside its allowance.
	assert.Equal(t, 4, result.Score)
	assert.Equal(t, 4, result.TotalCriteria)
	assert.True(t, result.IsMatch)
}

func TestScoreListingCall_RequiresFourCriteria(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	call := &models.CallLead{
		ID:         "call-2",
		AgentID:    "agent-1",
		ClientName: "Yossi",
		Location:   "תל אביב",
		Rooms:      f(3),
		Area:       f(80),
	}

	result := scorer.ScoreListingCall(saleListing(), call, false)

	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 3, result.TotalCriteria)
	assert.False(t, result.IsMatch, "three mentioned criteria can never reach the threshold")
}

func TestScoreListingCall_Allowances(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	tests := []struct {
		name    string
		mutate  func(*models.CallLead)
		crit    string
		matched bool
	}{
		{"rooms off by more than one", func(c *models.CallLead) { c.Rooms = f(5) }, "rooms", false},
		{"area off by more than twenty", func(c *models.CallLead) { c.Area = f(101) }, "area", false},
		{"price outside fifteen percent", func(c *models.CallLead) { c.Price = f(850_000) }, "price", false},
		{"price inside fifteen percent", func(c *models.CallLead) { c.Price = f(900_000) }, "price", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := &models.CallLead{
				ID:         "call-3",
				AgentID:    "agent-1",
				ClientName: "Yossi",
				Location:   "תל אביב",
				Rooms:      f(3),
				Area:       f(80),
				Price:      f(1_000_000),
			}
			tt.mutate(call)

			result := scorer.ScoreListingCall(saleListing(), call, false)
			assert.Equal(t, tt.matched, findDetail(t, result.MatchDetails, tt.crit).Matched)
		})
	}
}

func findDetail(t *testing.T, details []models.CriterionDetail, criterion string) models.CriterionDetail {
	t.Helper()
	for _, d := range details {
		if d.Criterion == criterion {
			return d
		}
	}
	t.Fatalf("criterion %q not found in details", criterion)
	return models.CriterionDetail{}
}
