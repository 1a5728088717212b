package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/logger"
	"github.com/Ramsey-B/clover/pkg/models"
)

type fakeMatcher struct {
	listingSet  *models.ListingMatchSet
	listingSets []models.ListingMatchSet
	clientSet   *models.ClientMatchSet
	clientSets  []models.ClientMatchSet
	callSet     *models.CallMatchSet
	callSets    []models.CallMatchSet
	counts      models.CountMap

	lastAgentID string
	lastID      string
}

func (f *fakeMatcher) MatchListing(_ context.Context, agentID, listingID string) (*models.ListingMatchSet, error) {
	f.lastAgentID, f.lastID = agentID, listingID
	return f.listingSet, nil
}

func (f *fakeMatcher) MatchListings(_ context.Context, agentID string) ([]models.ListingMatchSet, error) {
	f.lastAgentID = agentID
	return f.listingSets, nil
}

func (f *fakeMatcher) CountListingMatches(_ context.Context, agentID string) (models.CountMap, error) {
	f.lastAgentID = agentID
	return f.counts, nil
}

func (f *fakeMatcher) MatchClient(_ context.Context, agentID, clientID string) (*models.ClientMatchSet, error) {
	f.lastAgentID, f.lastID = agentID, clientID
	return f.clientSet, nil
}

func (f *fakeMatcher) MatchClients(_ context.Context, agentID string) ([]models.ClientMatchSet, error) {
	f.lastAgentID = agentID
	return f.clientSets, nil
}

func (f *fakeMatcher) CountClientMatches(_ context.Context, agentID string) (models.CountMap, error) {
	f.lastAgentID = agentID
	return f.counts, nil
}

func (f *fakeMatcher) MatchCall(_ context.Context, agentID, callID string) (*models.CallMatchSet, error) {
	f.lastAgentID, f.lastID = agentID, callID
	return f.callSet, nil
}

func (f *fakeMatcher) MatchCalls(_ context.Context, agentID string) ([]models.CallMatchSet, error) {
	f.lastAgentID = agentID
	return f.callSets, nil
}

func newMatchRequest(t *testing.T, target, agentID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if agentID != "" {
		req = req.WithContext(appctx.SetAgentID(req.Context(), agentID))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMatchHandler_ListingsSingle(t *testing.T) {
	fake := &fakeMatcher{listingSet: &models.ListingMatchSet{Listing: models.Listing{ID: "listing-1"}}}
	h := NewMatchHandler(fake, logger.NewNop())

	c, rec := newMatchRequest(t, "/api/v1/matches/listings?listing_id=listing-1", "agent-1")
	require.NoError(t, h.Listings(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "agent-1", fake.lastAgentID)
	assert.Equal(t, "listing-1", fake.lastID)

	var set models.ListingMatchSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))
	assert.Equal(t, "listing-1", set.Listing.ID)
}

func TestMatchHandler_ListingsSummary(t *testing.T) {
	fake := &fakeMatcher{counts: models.CountMap{"listing-1": 3}}
	h := NewMatchHandler(fake, logger.NewNop())

	c, rec := newMatchRequest(t, "/api/v1/matches/listings?summary=true", "agent-1")
	require.NoError(t, h.Listings(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var counts models.CountMap
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
	assert.Equal(t, models.CountMap{"listing-1": 3}, counts)
}

func TestMatchHandler_ClientsBulk(t *testing.T) {
	fake := &fakeMatcher{clientSets: []models.ClientMatchSet{{Client: models.ClientProfile{ID: "client-1"}}}}
	h := NewMatchHandler(fake, logger.NewNop())

	c, rec := newMatchRequest(t, "/api/v1/matches/clients", "agent-1")
	require.NoError(t, h.Clients(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "agent-1", fake.lastAgentID)
}

func TestMatchHandler_CallsSingle(t *testing.T) {
	fake := &fakeMatcher{callSet: &models.CallMatchSet{Call: models.CallLead{ID: "call-1"}}}
	h := NewMatchHandler(fake, logger.NewNop())

	c, rec := newMatchRequest(t, "/api/v1/matches/calls?call_id=call-1", "agent-1")
	require.NoError(t, h.Calls(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "call-1", fake.lastID)
}

func TestMatchHandler_RequiresAgentIdentity(t *testing.T) {
	h := NewMatchHandler(&fakeMatcher{}, logger.NewNop())

	c, _ := newMatchRequest(t, "/api/v1/matches/listings", "")
	err := h.Listings(c)
	require.Error(t, err)
}
