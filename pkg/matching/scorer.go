package matching

import (
	"strings"

	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/normalizers"
)

const (
	// callRoomsSlack and callAreaSlack are absolute allowances for call
	// leads, whose extracted numbers are approximate by nature.
	callRoomsSlack = 1.0
	callAreaSlack  = 20.0
	// callPriceTolerance allows a 15% deviation from the price mentioned
	// on the call.
	callPriceTolerance = 0.15
)

// Config holds the scoring thresholds.
type Config struct {
	// MinCriteria is the minimum score for a listing/client pair to count
	// as a match. The threshold is absolute, not relative to totalCriteria,
	// so a client with fewer specified preferences than this can never
	// match. Kept that way for compatibility with existing behavior.
	MinCriteria int
	// CallMinCriteria is the minimum score AND minimum applicable-criteria
	// count for a listing/call pair to count as a match.
	CallMinCriteria int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MinCriteria:     4,
		CallMinCriteria: 4,
	}
}

// Scorer computes per-criterion match results for listing/client and
// listing/call pairs. It is stateless and safe for concurrent use.
type Scorer struct {
	cfg Config
}

// NewScorer returns a Scorer. Non-positive thresholds fall back to the
// defaults.
func NewScorer(cfg Config) *Scorer {
	defaults := DefaultConfig()
	if cfg.MinCriteria <= 0 {
		cfg.MinCriteria = defaults.MinCriteria
	}
	if cfg.CallMinCriteria <= 0 {
		cfg.CallMinCriteria = defaults.CallMinCriteria
	}
	return &Scorer{cfg: cfg}
}

// ScoreListingClient evaluates one listing against one client profile.
// Hard gates run first; any gate failure zeroes the result. Soft criteria
// are counted into TotalCriteria only when the client specified the
// preference and into Score only when satisfied. With fast set, the
// MatchDetails explanation list is skipped; Score, TotalCriteria, and
// IsMatch are identical either way.
func (s *Scorer) ScoreListingClient(listing *models.Listing, client *models.ClientProfile, fast bool) models.MatchResult {
	result := models.MatchResult{
		Listing:    listing,
		Client:     client,
		IsExternal: listing.AgentID != client.AgentID,
	}

	if gate := evaluateGates(listing, client); !gate.passed {
		result.BudgetStatus = gate.budgetStatus
		return result
	}

	intent := normalizers.NormalizeIntent(client.Intent)
	status := normalizers.NormalizeStatus(listing.Status)

	var details []models.CriterionDetail
	addDetail := func(criterion, label string, matched bool, wanted, actual any) {
		if fast {
			return
		}
		details = append(details, models.CriterionDetail{
			Criterion: criterion,
			Label:     label,
			Matched:   matched,
			Wanted:    wanted,
			Actual:    actual,
		})
	}

	// Intent. Redundant with the gate, which already rejected hard
	// mismatches, but still recorded and counted for the explanation UI.
	if intent != string(models.ClientIntentUnknown) {
		result.TotalCriteria++
		matched := intentCompatible(intent, status)
		if matched {
			result.Score++
		}
		addDetail("intent", "Intent vs. listing status", matched, intent, status)
	}

	// Location. Also redundant with the gate; counted.
	if client.PreferredLocation != "" {
		wanted := normalizers.NormalizeLocation(client.PreferredLocation)
		actual := normalizers.NormalizeLocation(listing.Location)
		result.TotalCriteria++
		matched := wanted == actual
		if matched {
			result.Score++
		}
		addDetail("location", "Location", matched, wanted, actual)
	}

	// Property type. The gate already enforced membership; this is
	// recorded for the explanation UI only and never counted.
	if wantedTypes := normalizers.NormalizeTypeList(client.PreferredPropertyTypes); len(wantedTypes) > 0 {
		actual := normalizers.NormalizePropertyType(listing.PropertyType)
		addDetail("property_type", "Property type", containsToken(wantedTypes, actual), strings.Join(wantedTypes, ", "), actual)
	}

	if client.MaxPrice != nil {
		s.scorePrice(listing, client, intent, &result, addDetail)
	}

	// Rooms. A floor with zero tolerance.
	if client.MinRooms != nil {
		result.TotalCriteria++
		matched := withinRange(listing.Bedrooms, client.MinRooms, nil, 0)
		if matched {
			result.Score++
		}
		addDetail("rooms", "Minimum rooms", matched, *client.MinRooms, deref(listing.Bedrooms))
	}

	// Area. A floor with a 20% downward allowance.
	if client.MinArea != nil {
		result.TotalCriteria++
		matched := withinRange(listing.Area, client.MinArea, nil, areaTolerance)
		if matched {
			result.Score++
		}
		addDetail("area", "Minimum area", matched, *client.MinArea, deref(listing.Area))
	}

	result.IsMatch = result.Score >= s.cfg.MinCriteria
	result.MatchDetails = details
	return result
}

// scorePrice applies the asymmetric price semantics. Renters get a stretch
// allowance: up to 110% of budget still earns the point, flagged "above".
// Buyers never earn the point while over budget, even inside the 15%
// tolerance band. BudgetPercentage is always filled in for display.
func (s *Scorer) scorePrice(listing *models.Listing, client *models.ClientProfile, intent string, result *models.MatchResult, addDetail func(string, string, bool, any, any)) {
	result.TotalCriteria++
	result.BudgetStatus = models.BudgetStatusWithin
	if listing.Price != nil && *client.MaxPrice > 0 {
		result.BudgetPercentage = *listing.Price / *client.MaxPrice * 100
	}

	var matched, pointAwarded bool
	if intent == string(models.ClientIntentRenter) {
		switch {
		case listing.Price == nil:
			matched = true
		case *listing.Price <= *client.MaxPrice:
			matched = true
		case *listing.Price <= *client.MaxPrice*renterStretchFactor:
			matched = true
			result.BudgetStatus = models.BudgetStatusAbove
		default:
			result.BudgetStatus = models.BudgetStatusWayAbove
		}
		pointAwarded = matched
	} else {
		matched = withinRange(listing.Price, client.MinPrice, client.MaxPrice, buyerPriceTolerance)
		if listing.Price != nil && *listing.Price > *client.MaxPrice {
			result.BudgetStatus = models.BudgetStatusAbove
		}
		pointAwarded = matched && result.BudgetStatus != models.BudgetStatusAbove
	}

	if pointAwarded {
		result.Score++
	}
	addDetail("price", "Price within budget", pointAwarded, *client.MaxPrice, deref(listing.Price))
}

// ScoreListingCall evaluates one listing against one call-derived lead.
// Call leads carry no country, category, or intent, so no hard gates apply;
// every criterion the call mentions is compared with an absolute allowance.
func (s *Scorer) ScoreListingCall(listing *models.Listing, call *models.CallLead, fast bool) models.MatchResult {
	result := models.MatchResult{
		Listing:    listing,
		Call:       call,
		IsExternal: listing.AgentID != call.AgentID,
	}

	var details []models.CriterionDetail
	addDetail := func(criterion, label string, matched bool, wanted, actual any) {
		if fast {
			return
		}
		details = append(details, models.CriterionDetail{
			Criterion: criterion,
			Label:     label,
			Matched:   matched,
			Wanted:    wanted,
			Actual:    actual,
		})
	}

	if call.Location != "" {
		wanted := normalizers.NormalizeLocation(call.Location)
		actual := normalizers.NormalizeLocation(listing.Location)
		result.TotalCriteria++
		matched := wanted == actual
		if matched {
			result.Score++
		}
		addDetail("location", "Location", matched, wanted, actual)
	}

	if call.Rooms != nil {
		result.TotalCriteria++
		matched := withinSlack(listing.Bedrooms, *call.Rooms, callRoomsSlack)
		if matched {
			result.Score++
		}
		addDetail("rooms", "Rooms", matched, *call.Rooms, deref(listing.Bedrooms))
	}

	if call.Area != nil {
		result.TotalCriteria++
		matched := withinSlack(listing.Area, *call.Area, callAreaSlack)
		if matched {
			result.Score++
		}
		addDetail("area", "Area", matched, *call.Area, deref(listing.Area))
	}

	if call.Price != nil {
		result.TotalCriteria++
		matched := withinSlack(listing.Price, *call.Price, *call.Price*callPriceTolerance)
		if matched {
			result.Score++
		}
		addDetail("price", "Price", matched, *call.Price, deref(listing.Price))
	}

	result.IsMatch = result.Score >= s.cfg.CallMinCriteria && result.TotalCriteria >= s.cfg.CallMinCriteria
	result.MatchDetails = details
	return result
}

// withinSlack reports whether value is within an absolute distance of
// target. A listing missing the value is treated as unconstrained.
func withinSlack(value *float64, target, slack float64) bool {
	if value == nil {
		return true
	}
	diff := *value - target
	if diff < 0 {
		diff = -diff
	}
	return diff <= slack
}

func deref(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
