package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/internal/repositories/listing"
	"github.com/Ramsey-B/clover/pkg/logger"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// ListingHandler handles listing CRUD endpoints
type ListingHandler struct {
	repo   *listing.Repository
	logger logger.Logger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(repo *listing.Repository, logger logger.Logger) *ListingHandler {
	return &ListingHandler{
		repo:   repo,
		logger: logger,
	}
}

// Register registers listing routes
func (h *ListingHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
}

// Create creates a listing owned by the calling agent
func (h *ListingHandler) Create(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "ListingHandler.Create")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	agentID, err := GetAgentID(c)
	if err != nil {
		return err
	}

	var req models.CreateListingRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := h.repo.Create(ctx, &models.Listing{
		AgentID:      agentID,
		Title:        req.Title,
		Country:      req.Country,
		Category:     req.Category,
		PropertyType: req.PropertyType,
		Status:       req.Status,
		Location:     req.Location,
		Price:        req.Price,
		Bedrooms:     req.Bedrooms,
		Area:         req.Area,
	})
	if err != nil {
		return err
	}

	h.logger.WithContext(ctx).WithFields(map[string]any{"listing_id": created.ID}).Info("Created listing")
	return CreatedResponse(c, created)
}

// List returns the agent's listings
func (h *ListingHandler) List(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "ListingHandler.List")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	agentID, err := GetAgentID(c)
	if err != nil {
		return err
	}

	listings, err := h.repo.ListByAgent(ctx, agentID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.ListingListResponse{Items: listings, TotalCount: len(listings)})
}

// Get returns one of the agent's listings by ID
func (h *ListingHandler) Get(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "ListingHandler.Get")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	agentID, err := GetAgentID(c)
	if err != nil {
		return err
	}

	found, err := h.repo.GetOwned(ctx, c.Param("id"), agentID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, found)
}

// Delete soft-deletes one of the agent's listings
func (h *ListingHandler) Delete(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "ListingHandler.Delete")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	agentID, err := GetAgentID(c)
	if err != nil {
		return err
	}

	if err := h.repo.Delete(ctx, c.Param("id"), agentID); err != nil {
		return err
	}
	return NoContentResponse(c)
}
