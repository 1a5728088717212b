package matching

import (
	"strings"

	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/normalizers"
)

const (
	// priceCeilingFactor is the hard ceiling applied before scoring: a
	// listing priced at or above 115% of the client's max is rejected
	// outright, so the renter stretch band never reaches the ceiling.
	priceCeilingFactor = 1.15
	// renterStretchFactor is the softer allowance used only when scoring
	// renter pairs: up to 110% of budget still earns the price point.
	renterStretchFactor = 1.10
	// buyerPriceTolerance widens the buyer price range check by 15%.
	buyerPriceTolerance = 0.15
	// areaTolerance lets a listing fall up to 20% short of the area floor.
	areaTolerance = 0.20
)

// gateResult is the outcome of the hard pre-filters. A failed gate zeroes
// the whole match (score 0, totalCriteria 0) before soft scoring runs.
type gateResult struct {
	passed       bool
	reason       string
	budgetStatus models.BudgetStatus
}

// evaluateGates runs the hard gates in a fixed order: country, category,
// location, property type, price ceiling, intent/status. The first failure
// wins; later gates are not evaluated.
func evaluateGates(listing *models.Listing, client *models.ClientProfile) gateResult {
	clientCountry := strings.TrimSpace(client.PreferredCountry)
	listingCountry := strings.TrimSpace(listing.Country)
	if clientCountry != "" && listingCountry != "" && !strings.EqualFold(clientCountry, listingCountry) {
		return gateResult{reason: "country_mismatch"}
	}

	if client.PreferredCategory != "" && listing.Category != "" &&
		!strings.EqualFold(strings.TrimSpace(client.PreferredCategory), strings.TrimSpace(listing.Category)) {
		return gateResult{reason: "category_mismatch"}
	}

	if client.PreferredLocation != "" && listing.Location != "" &&
		normalizers.NormalizeLocation(client.PreferredLocation) != normalizers.NormalizeLocation(listing.Location) {
		return gateResult{reason: "location_mismatch"}
	}

	if wantedTypes := normalizers.NormalizeTypeList(client.PreferredPropertyTypes); len(wantedTypes) > 0 {
		if !containsToken(wantedTypes, normalizers.NormalizePropertyType(listing.PropertyType)) {
			return gateResult{reason: "property_type_mismatch"}
		}
	}

	if client.MaxPrice != nil && listing.Price != nil && *listing.Price >= *client.MaxPrice*priceCeilingFactor {
		return gateResult{reason: "price_above_ceiling", budgetStatus: models.BudgetStatusWayAbove}
	}

	intent := normalizers.NormalizeIntent(client.Intent)
	status := normalizers.NormalizeStatus(listing.Status)
	if !intentCompatible(intent, status) {
		return gateResult{reason: "intent_status_mismatch"}
	}

	return gateResult{passed: true}
}

// intentCompatible is the O(1) check shared by the intent gate and the
// summary-path prefilter. A strict buyer only accepts for-sale listings and
// a strict renter only for-rent ones; "both" and "unknown" accept either.
func intentCompatible(intent, status string) bool {
	switch intent {
	case string(models.ClientIntentBuyer):
		return status == string(models.ListingStatusForSale)
	case string(models.ClientIntentRenter):
		return status == string(models.ListingStatusForRent)
	default:
		return true
	}
}

func containsToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}
