package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/internal/repositories/clientprofile"
	"github.com/Ramsey-B/clover/pkg/logger"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// ClientHandler handles client profile CRUD endpoints
type ClientHandler struct {
	repo   *clientprofile.Repository
	logger logger.Logger
}

// NewClientHandler creates a new client profile handler
func NewClientHandler(repo *clientprofile.Repository, logger logger.Logger) *ClientHandler {
	return &ClientHandler{
		repo:   repo,
		logger: logger,
	}
}

// Register registers client profile routes
func (h *ClientHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
}

// Create creates a client profile owned by the calling agent
func (h *ClientHandler) Create(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "ClientHandler.Create")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	agentID, err := GetAgentID(c)
	if err != nil {
		return err
	}

	var req models.CreateClientProfileRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := h.repo.Create(ctx, &models.ClientProfile{
		AgentID:                agentID,
		ClientName:             req.ClientName,
		Phone:                  req.Phone,
		Intent:                 req.Intent,
		PreferredCountry:       req.PreferredCountry,
		PreferredCategory:      req.PreferredCategory,
		PreferredLocation:      req.PreferredLocation,
		PreferredPropertyTypes: req.PreferredPropertyTypes,
		MinRooms:               req.MinRooms,
		MaxRooms:               req.MaxRooms,
		MinArea:                req.MinArea,
		MaxArea:                req.MaxArea,
		MinPrice:               req.MinPrice,
		MaxPrice:               req.MaxPrice,
	})
	if err != nil {
		return err
	}

	h.logger.WithContext(ctx).WithFields(map[string]any{"client_id": created.ID}).Info("Created client profile")
	return CreatedResponse(c, created)
}

// List returns the agent's client profiles
func (h *ClientHandler) List(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "ClientHandler.List")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	agentID, err := GetAgentID(c)
	if err != nil {
		return err
	}

	clients, err := h.repo.ListByAgent(ctx, agentID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.ClientProfileListResponse{Items: clients, TotalCount: len(clients)})
}

// Get returns one of the agent's client profiles by ID
func (h *ClientHandler) Get(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "ClientHandler.Get")
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

// Delete soft-deletes one of the agent's client profiles
func (h *ClientHandler) Delete(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "ClientHandler.Delete")
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
