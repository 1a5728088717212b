package calllead

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/logger"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

var columns = []string{"id", "agent_id", "client_name", "phone", "location", "rooms", "area", "price", "summary", "called_at", "created_at", "updated_at", "deleted_at"}

// Repository handles call lead persistence
type Repository struct {
	db     database.DB
	logger logger.Logger
}

// NewRepository creates a new call lead repository
func NewRepository(db database.DB, logger logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new call lead
func (r *Repository) Create(ctx context.Context, call *models.CallLead) (*models.CallLead, error) {
	ctx, span := tracing.StartSpan(ctx, "calllead.Repository.Create")
	defer span.End()

	if call.ID == "" {
		call.ID = uuid.New().String()
	}
	call.CreatedAt = time.Now().UTC()
	call.UpdatedAt = call.CreatedAt

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("call_leads")
	sb.Cols("id", "agent_id", "client_name", "phone", "location", "rooms", "area", "price", "summary", "called_at", "created_at", "updated_at")
	sb.Values(call.ID, call.AgentID, call.ClientName, call.Phone, call.Location, call.Rooms, call.Area, call.Price, call.Summary, call.CalledAt, call.CreatedAt, call.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"call_id": call.ID}).Error("Failed to create call lead")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create call lead")
	}

	return call, nil
}

// GetOwned retrieves a call lead by ID, scoped to the owning agent
func (r *Repository) GetOwned(ctx context.Context, id, agentID string) (*models.CallLead, error) {
	ctx, span := tracing.StartSpan(ctx, "calllead.Repository.GetOwned")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("call_leads")
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agent_id", agentID),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	var call models.CallLead
	if err := r.db.GetContext(ctx, &call, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("call lead %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get call lead")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get call lead")
	}

	return &call, nil
}

// ListByAgent retrieves all live call leads owned by an agent
func (r *Repository) ListByAgent(ctx context.Context, agentID string) ([]models.CallLead, error) {
	ctx, span := tracing.StartSpan(ctx, "calllead.Repository.ListByAgent")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("call_leads")
	sb.Where(
		sb.Equal("agent_id", agentID),
		sb.IsNull("deleted_at"),
	)
	sb.OrderBy("called_at DESC NULLS LAST", "created_at DESC")

	query, args := sb.Build()
	var calls []models.CallLead
	if err := r.db.SelectContext(ctx, &calls, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list call leads by agent")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list call leads")
	}

	return calls, nil
}

// Delete soft-deletes a call lead, scoped to the owning agent
func (r *Repository) Delete(ctx context.Context, id, agentID string) error {
	ctx, span := tracing.StartSpan(ctx, "calllead.Repository.Delete")
	defer span.End()

	now := time.Now().UTC()
	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("call_leads")
	sb.Set(
		sb.Assign("deleted_at", now),
		sb.Assign("updated_at", now),
	)
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agent_id", agentID),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"call_id": id}).Error("Failed to delete call lead")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete call lead")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("call lead %s not found", id))
	}

	return nil
}
