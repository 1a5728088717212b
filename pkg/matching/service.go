// Package matching implements the lead-matching and ranking engine: hard
// gates, per-criterion scoring with asymmetric tolerance bands, a fixed
// match threshold, priority-tiered ranking, and a count-only summary path.
//
// Scoring is pure and request-scoped. All collections are fetched once per
// operation and treated as read-only snapshots; nothing is persisted and
// every call recomputes matches from the current data.
package matching

import (
	"context"
	"time"

	"github.com/Ramsey-B/clover/pkg/logger"
	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/normalizers"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// ListingStore provides the read-only listing snapshots the engine consumes.
type ListingStore interface {
	GetOwned(ctx context.Context, id, agentID string) (*models.Listing, error)
	ListByAgent(ctx context.Context, agentID string) ([]models.Listing, error)
	List(ctx context.Context) ([]models.Listing, error)
}

// ClientProfileStore provides read-only client profile snapshots.
type ClientProfileStore interface {
	GetOwned(ctx context.Context, id, agentID string) (*models.ClientProfile, error)
	ListByAgent(ctx context.Context, agentID string) ([]models.ClientProfile, error)
}

// CallLeadStore provides read-only call lead snapshots.
type CallLeadStore interface {
	GetOwned(ctx context.Context, id, agentID string) (*models.CallLead, error)
	ListByAgent(ctx context.Context, agentID string) ([]models.CallLead, error)
}

// Service runs match computations over the stored snapshots. Listing
// queries match against the agent's own clients and calls; client and call
// queries match against the full listing inventory so external inventory
// can be surfaced behind the agent's own.
type Service struct {
	listings ListingStore
	clients  ClientProfileStore
	calls    CallLeadStore
	scorer   *Scorer
	log      logger.Logger
}

// NewService creates the matching service.
func NewService(listings ListingStore, clients ClientProfileStore, calls CallLeadStore, cfg Config, log logger.Logger) *Service {
	return &Service{
		listings: listings,
		clients:  clients,
		calls:    calls,
		scorer:   NewScorer(cfg),
		log:      log,
	}
}

// MatchListing matches one listing against all of the agent's clients and
// calls, sorted by score descending within each group. The queried listing
// is always returned, even with zero matches, so callers can render an
// empty state.
func (s *Service) MatchListing(ctx context.Context, agentID, listingID string) (*models.ListingMatchSet, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Service.MatchListing")
	defer span.End()
	defer s.observe("match_listing", "detailed", time.Now())

	listing, err := s.listings.GetOwned(ctx, listingID, agentID)
	if err != nil {
		return nil, err
	}

	clients, err := s.clients.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	calls, err := s.calls.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	set := models.ListingMatchSet{
		Listing:       *listing,
		ClientMatches: []models.MatchResult{},
		CallMatches:   []models.MatchResult{},
	}
	for i := range clients {
		if !s.validClient(&clients[i]) {
			continue
		}
		if result := s.scorer.ScoreListingClient(listing, &clients[i], false); result.IsMatch {
			set.ClientMatches = append(set.ClientMatches, result)
		}
	}
	for i := range calls {
		if !s.validCall(&calls[i]) {
			continue
		}
		if result := s.scorer.ScoreListingCall(listing, &calls[i], false); result.IsMatch {
			set.CallMatches = append(set.CallMatches, result)
		}
	}
	metrics.PairsScoredTotal.WithLabelValues("listing_client").Add(float64(len(clients)))
	metrics.PairsScoredTotal.WithLabelValues("listing_call").Add(float64(len(calls)))

	sortByScore(set.ClientMatches)
	sortByScore(set.CallMatches)

	s.log.WithContext(ctx).WithFields(map[string]any{
		"listing_id":     listingID,
		"client_matches": len(set.ClientMatches),
		"call_matches":   len(set.CallMatches),
	}).Debug("matched listing against leads")

	return &set, nil
}

// MatchListings matches every listing of the agent against the agent's
// clients and calls. Listings without any match are omitted; matches keep
// discovery order.
func (s *Service) MatchListings(ctx context.Context, agentID string) ([]models.ListingMatchSet, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Service.MatchListings")
	defer span.End()
	defer s.observe("match_listings", "detailed", time.Now())

	listings, clients, calls, err := s.fetchAgentSnapshots(ctx, agentID)
	if err != nil {
		return nil, err
	}

	sets := make([]models.ListingMatchSet, 0, len(listings))
	for i := range listings {
		if !s.validListing(&listings[i]) {
			continue
		}
		set := models.ListingMatchSet{
			Listing:       listings[i],
			ClientMatches: []models.MatchResult{},
			CallMatches:   []models.MatchResult{},
		}
		for j := range clients {
			if !s.validClient(&clients[j]) {
				continue
			}
			if result := s.scorer.ScoreListingClient(&listings[i], &clients[j], false); result.IsMatch {
				set.ClientMatches = append(set.ClientMatches, result)
			}
		}
		for j := range calls {
			if !s.validCall(&calls[j]) {
				continue
			}
			if result := s.scorer.ScoreListingCall(&listings[i], &calls[j], false); result.IsMatch {
				set.CallMatches = append(set.CallMatches, result)
			}
		}
		if len(set.ClientMatches) > 0 || len(set.CallMatches) > 0 {
			sets = append(sets, set)
		}
	}

	s.log.WithContext(ctx).WithFields(map[string]any{
		"listings":          len(listings),
		"listings_matched":  len(sets),
		"candidate_clients": len(clients),
		"candidate_calls":   len(calls),
	}).Debug("matched agent listings against leads")

	return sets, nil
}

// CountListingMatches is the summary path for the listings dashboard: for
// each of the agent's listings, the number of matching clients plus calls.
// Pairs are prefiltered by intent/status compatibility and scored in fast
// mode, so no explanation objects are ever built.
func (s *Service) CountListingMatches(ctx context.Context, agentID string) (models.CountMap, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Service.CountListingMatches")
	defer span.End()
	defer s.observe("match_listings", "summary", time.Now())

	listings, clients, calls, err := s.fetchAgentSnapshots(ctx, agentID)
	if err != nil {
		return nil, err
	}

	counts := models.CountMap{}
	for i := range listings {
		if !s.validListing(&listings[i]) {
			continue
		}
		status := normalizedStatus(&listings[i])
		count := 0
		for j := range clients {
			if !s.validClient(&clients[j]) {
				continue
			}
			if !intentCompatible(normalizedIntent(&clients[j]), status) {
				continue
			}
			if s.scorer.ScoreListingClient(&listings[i], &clients[j], true).IsMatch {
				count++
			}
		}
		for j := range calls {
			if !s.validCall(&calls[j]) {
				continue
			}
			if s.scorer.ScoreListingCall(&listings[i], &calls[j], true).IsMatch {
				count++
			}
		}
		counts[listings[i].ID] = count
	}

	return counts, nil
}

// MatchClient matches one client profile against the full listing
// inventory, ranked into the four priority tiers. The queried client is
// always returned, even with zero matches.
func (s *Service) MatchClient(ctx context.Context, agentID, clientID string) (*models.ClientMatchSet, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Service.MatchClient")
	defer span.End()
	defer s.observe("match_client", "detailed", time.Now())

	client, err := s.clients.GetOwned(ctx, clientID, agentID)
	if err != nil {
		return nil, err
	}
	listings, err := s.listings.List(ctx)
	if err != nil {
		return nil, err
	}

	set := models.ClientMatchSet{
		Client:  *client,
		Matches: s.matchClientAgainst(client, listings),
	}
	rankForSeeker(set.Matches)

	s.log.WithContext(ctx).WithFields(map[string]any{
		"client_id": clientID,
		"matches":   len(set.Matches),
	}).Debug("matched client against listings")

	return &set, nil
}

// MatchClients matches every client of the agent against the full listing
// inventory. Only matching pairs are kept; no cross-client tiering.
func (s *Service) MatchClients(ctx context.Context, agentID string) ([]models.ClientMatchSet, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Service.MatchClients")
	defer span.End()
	defer s.observe("match_clients", "detailed", time.Now())

	clients, err := s.clients.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	listings, err := s.listings.List(ctx)
	if err != nil {
		return nil, err
	}

	sets := make([]models.ClientMatchSet, 0, len(clients))
	for i := range clients {
		if !s.validClient(&clients[i]) {
			continue
		}
		matches := s.matchClientAgainst(&clients[i], listings)
		if len(matches) > 0 {
			sets = append(sets, models.ClientMatchSet{Client: clients[i], Matches: matches})
		}
	}

	return sets, nil
}

// CountClientMatches is the summary path for the clients dashboard: for
// each of the agent's clients, the number of matching listings.
func (s *Service) CountClientMatches(ctx context.Context, agentID string) (models.CountMap, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Service.CountClientMatches")
	defer span.End()
	defer s.observe("match_clients", "summary", time.Now())

	clients, err := s.clients.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	listings, err := s.listings.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := models.CountMap{}
	for i := range clients {
		if !s.validClient(&clients[i]) {
			continue
		}
		intent := normalizedIntent(&clients[i])
		count := 0
		for j := range listings {
			if !s.validListing(&listings[j]) {
				continue
			}
			if !intentCompatible(intent, normalizedStatus(&listings[j])) {
				continue
			}
			if s.scorer.ScoreListingClient(&listings[j], &clients[i], true).IsMatch {
				count++
			}
		}
		counts[clients[i].ID] = count
	}

	return counts, nil
}

// MatchCall matches one call lead against the full listing inventory,
// ranked into the four priority tiers.
func (s *Service) MatchCall(ctx context.Context, agentID, callID string) (*models.CallMatchSet, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Service.MatchCall")
	defer span.End()
	defer s.observe("match_call", "detailed", time.Now())

	call, err := s.calls.GetOwned(ctx, callID, agentID)
	if err != nil {
		return nil, err
	}
	listings, err := s.listings.List(ctx)
	if err != nil {
		return nil, err
	}

	set := models.CallMatchSet{
		Call:    *call,
		Matches: s.matchCallAgainst(call, listings),
	}
	rankForSeeker(set.Matches)

	s.log.WithContext(ctx).WithFields(map[string]any{
		"call_id": callID,
		"matches": len(set.Matches),
	}).Debug("matched call against listings")

	return &set, nil
}

// MatchCalls matches every call lead of the agent against the full listing
// inventory. Only leads with at least one match are returned.
func (s *Service) MatchCalls(ctx context.Context, agentID string) ([]models.CallMatchSet, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Service.MatchCalls")
	defer span.End()
	defer s.observe("match_calls", "detailed", time.Now())

	calls, err := s.calls.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	listings, err := s.listings.List(ctx)
	if err != nil {
		return nil, err
	}

	sets := make([]models.CallMatchSet, 0, len(calls))
	for i := range calls {
		if !s.validCall(&calls[i]) {
			continue
		}
		matches := s.matchCallAgainst(&calls[i], listings)
		if len(matches) > 0 {
			sets = append(sets, models.CallMatchSet{Call: calls[i], Matches: matches})
		}
	}

	return sets, nil
}

func (s *Service) matchClientAgainst(client *models.ClientProfile, listings []models.Listing) []models.MatchResult {
	matches := []models.MatchResult{}
	for i := range listings {
		if !s.validListing(&listings[i]) {
			continue
		}
		if result := s.scorer.ScoreListingClient(&listings[i], client, false); result.IsMatch {
			matches = append(matches, result)
		}
	}
	metrics.PairsScoredTotal.WithLabelValues("listing_client").Add(float64(len(listings)))
	return matches
}

func (s *Service) matchCallAgainst(call *models.CallLead, listings []models.Listing) []models.MatchResult {
	matches := []models.MatchResult{}
	for i := range listings {
		if !s.validListing(&listings[i]) {
			continue
		}
		if result := s.scorer.ScoreListingCall(&listings[i], call, false); result.IsMatch {
			matches = append(matches, result)
		}
	}
	metrics.PairsScoredTotal.WithLabelValues("listing_call").Add(float64(len(listings)))
	return matches
}

func (s *Service) fetchAgentSnapshots(ctx context.Context, agentID string) ([]models.Listing, []models.ClientProfile, []models.CallLead, error) {
	listings, err := s.listings.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, nil, nil, err
	}
	clients, err := s.clients.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, nil, nil, err
	}
	calls, err := s.calls.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, nil, nil, err
	}
	return listings, clients, calls, nil
}

// validListing reports whether a listing is well-formed enough to match.
// Records missing a title are skipped rather than rejected with an error.
func (s *Service) validListing(listing *models.Listing) bool {
	if listing.Title == "" {
		metrics.RecordsSkippedTotal.WithLabelValues("listing").Inc()
		return false
	}
	return true
}

func (s *Service) validClient(client *models.ClientProfile) bool {
	if client.ClientName == "" {
		metrics.RecordsSkippedTotal.WithLabelValues("client").Inc()
		return false
	}
	return true
}

func (s *Service) validCall(call *models.CallLead) bool {
	if call.ClientName == "" {
		metrics.RecordsSkippedTotal.WithLabelValues("call").Inc()
		return false
	}
	return true
}

func (s *Service) observe(operation, mode string, start time.Time) {
	metrics.RecordMatchComputation(operation, mode, time.Since(start).Seconds())
}

func normalizedStatus(listing *models.Listing) string {
	return normalizers.NormalizeStatus(listing.Status)
}

func normalizedIntent(client *models.ClientProfile) string {
	return normalizers.NormalizeIntent(client.Intent)
}
