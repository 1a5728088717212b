package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/internal/repositories/calllead"
	"github.com/Ramsey-B/clover/internal/repositories/clientprofile"
	"github.com/Ramsey-B/clover/pkg/logger"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// CallHandler handles call lead endpoints. Call leads normally arrive via
// the call-insights consumer; these endpoints let agents review them and
// promote one into a full client profile.
type CallHandler struct {
	repo    *calllead.Repository
	clients *clientprofile.Repository
	logger  logger.Logger
}

// NewCallHandler creates a new call lead handler
func NewCallHandler(repo *calllead.Repository, clients *clientprofile.Repository, logger logger.Logger) *CallHandler {
	return &CallHandler{
		repo:    repo,
		clients: clients,
		logger:  logger,
	}
}

// Register registers call lead routes
func (h *CallHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/promote", h.Promote)
}

// List returns the agent's call leads
func (h *CallHandler) List(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "CallHandler.List")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	agentID, err := GetAgentID(c)
	if err != nil {
		return err
	}

	calls, err := h.repo.ListByAgent(ctx, agentID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.CallLeadListResponse{Items: calls, TotalCount: len(calls)})
}

// Get returns one of the agent's call leads by ID
func (h *CallHandler) Get(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "CallHandler.Get")
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

// Delete soft-deletes one of the agent's call leads
func (h *CallHandler) Delete(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "CallHandler.Delete")
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

// PromoteCallRequest carries the fields the agent adds when turning a call
// lead into a client profile.
type PromoteCallRequest struct {
	Intent            string `json:"intent" validate:"omitempty,oneof=buyer renter both unknown"`
	PreferredCountry  string `json:"preferred_country"`
	PreferredCategory string `json:"preferred_category"`
}

// Promote converts one of the agent's call leads into a client profile.
// The call's extracted location, rooms, area, and price become preferences;
// rooms and area map to floors and price to a budget ceiling.
func (h *CallHandler) Promote(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "CallHandler.Promote")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	agentID, err := GetAgentID(c)
	if err != nil {
		return err
	}

	var req PromoteCallRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	call, err := h.repo.GetOwned(ctx, c.Param("id"), agentID)
	if err != nil {
		return err
	}

	created, err := h.clients.Create(ctx, &models.ClientProfile{
		AgentID:           agentID,
		ClientName:        call.ClientName,
		Phone:             call.Phone,
		Intent:            req.Intent,
		PreferredCountry:  req.PreferredCountry,
		PreferredCategory: req.PreferredCategory,
		PreferredLocation: call.Location,
		MinRooms:          call.Rooms,
		MinArea:           call.Area,
		MaxPrice:          call.Price,
		FromCall:          true,
	})
	if err != nil {
		return err
	}

	h.logger.WithContext(ctx).WithFields(map[string]any{
		"call_id":   call.ID,
		"client_id": created.ID,
	}).Info("Promoted call lead to client profile")
	return CreatedResponse(c, created)
}
