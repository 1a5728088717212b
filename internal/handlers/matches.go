package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/pkg/logger"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// Matcher is the match computation surface the HTTP layer depends on.
type Matcher interface {
	MatchListing(ctx context.Context, agentID, listingID string) (*models.ListingMatchSet, error)
	MatchListings(ctx context.Context, agentID string) ([]models.ListingMatchSet, error)
	CountListingMatches(ctx context.Context, agentID string) (models.CountMap, error)
	MatchClient(ctx context.Context, agentID, clientID string) (*models.ClientMatchSet, error)
	MatchClients(ctx context.Context, agentID string) ([]models.ClientMatchSet, error)
	CountClientMatches(ctx context.Context, agentID string) (models.CountMap, error)
	MatchCall(ctx context.Context, agentID, callID string) (*models.CallMatchSet, error)
	MatchCalls(ctx context.Context, agentID string) ([]models.CallMatchSet, error)
}

// MatchHandler handles match query endpoints
type MatchHandler struct {
	matcher Matcher
	logger  logger.Logger
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matcher Matcher, logger logger.Logger) *MatchHandler {
	return &MatchHandler{
		matcher: matcher,
		logger:  logger,
	}
}

// Register registers match routes
func (h *MatchHandler) Register(g *echo.Group) {
	g.GET("/listings", h.Listings)
	g.GET("/clients", h.Clients)
	g.GET("/calls", h.Calls)
}

// Listings matches listings against the agent's clients and calls. With
// listing_id set, one listing is matched in detail; otherwise all of the
// agent's listings are. summary=true returns counts only.
func (h *MatchHandler) Listings(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "MatchHandler.Listings")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	agentID, err := GetAgentID(c)
	if err != nil {
		return err
	}

	listingID := c.QueryParam("listing_id")
	if listingID != "" {
		set, err := h.matcher.MatchListing(ctx, agentID, listingID)
		if err != nil {
			return err
		}
		return SuccessResponse(c, set)
	}

	if c.QueryParam("summary") == "true" {
		counts, err := h.matcher.CountListingMatches(ctx, agentID)
		if err != nil {
			return err
		}
		return SuccessResponse(c, counts)
	}

	sets, err := h.matcher.MatchListings(ctx, agentID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, sets)
}

// Clients matches client profiles against the full listing inventory.
func (h *MatchHandler) Clients(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "MatchHandler.Clients")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	agentID, err := GetAgentID(c)
	if err != nil {
		return err
	}

	clientID := c.QueryParam("client_id")
	if clientID != "" {
		set, err := h.matcher.MatchClient(ctx, agentID, clientID)
		if err != nil {
			return err
		}
		return SuccessResponse(c, set)
	}

	if c.QueryParam("summary") == "true" {
		counts, err := h.matcher.CountClientMatches(ctx, agentID)
		if err != nil {
			return err
		}
		return SuccessResponse(c, counts)
	}

	sets, err := h.matcher.MatchClients(ctx, agentID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, sets)
}

// Calls matches call leads against the full listing inventory.
func (h *MatchHandler) Calls(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "MatchHandler.Calls")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	agentID, err := GetAgentID(c)
	if err != nil {
		return err
	}

	callID := c.QueryParam("call_id")
	if callID != "" {
		set, err := h.matcher.MatchCall(ctx, agentID, callID)
		if err != nil {
			return err
		}
		return SuccessResponse(c, set)
	}

	sets, err := h.matcher.MatchCalls(ctx, agentID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, sets)
}
