package clientprofile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/logger"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/normalizers"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

var columns = []string{"id", "agent_id", "client_name", "phone", "intent", "preferred_country", "preferred_category", "preferred_location", "preferred_property_types", "min_rooms", "max_rooms", "min_area", "max_area", "min_price", "max_price", "from_call", "created_at", "updated_at", "deleted_at"}

// propertyTypesParam renders the raw preference as a jsonb parameter.
// lib/pq encodes a []byte parameter as bytea, which the jsonb column
// rejects, so the value goes over the wire as text. Empty stays NULL.
func propertyTypesParam(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

// Repository handles client profile persistence
type Repository struct {
	db     database.DB
	logger logger.Logger
}

// NewRepository creates a new client profile repository
func NewRepository(db database.DB, logger logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new client profile. Intent is canonicalized on the way
// in; preferred property types stay raw (scalar or array) and are
// normalized at scoring time.
func (r *Repository) Create(ctx context.Context, client *models.ClientProfile) (*models.ClientProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "clientprofile.Repository.Create")
	defer span.End()

	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	client.Intent = normalizers.NormalizeIntent(client.Intent)
	client.CreatedAt = time.Now().UTC()
	client.UpdatedAt = client.CreatedAt

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("client_profiles")
	sb.Cols("id", "agent_id", "client_name", "phone", "intent", "preferred_country", "preferred_category", "preferred_location", "preferred_property_types", "min_rooms", "max_rooms", "min_area", "max_area", "min_price", "max_price", "from_call", "created_at", "updated_at")
	sb.Values(client.ID, client.AgentID, client.ClientName, client.Phone, client.Intent, client.PreferredCountry, client.PreferredCategory, client.PreferredLocation, propertyTypesParam(client.PreferredPropertyTypes), client.MinRooms, client.MaxRooms, client.MinArea, client.MaxArea, client.MinPrice, client.MaxPrice, client.FromCall, client.CreatedAt, client.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"client_id": client.ID}).Error("Failed to create client profile")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create client profile")
	}

	return client, nil
}

// GetOwned retrieves a client profile by ID, scoped to the owning agent
func (r *Repository) GetOwned(ctx context.Context, id, agentID string) (*models.ClientProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "clientprofile.Repository.GetOwned")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("client_profiles")
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agent_id", agentID),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	var client models.ClientProfile
	if err := r.db.GetContext(ctx, &client, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("client profile %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get client profile")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get client profile")
	}

	return &client, nil
}

// ListByAgent retrieves all live client profiles owned by an agent
func (r *Repository) ListByAgent(ctx context.Context, agentID string) ([]models.ClientProfile, error) {
	ctx, span := tracing.StartSpan(ctx, "clientprofile.Repository.ListByAgent")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("client_profiles")
	sb.Where(
		sb.Equal("agent_id", agentID),
		sb.IsNull("deleted_at"),
	)
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	var clients []models.ClientProfile
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list client profiles by agent")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list client profiles")
	}

	return clients, nil
}

// Delete soft-deletes a client profile, scoped to the owning agent
func (r *Repository) Delete(ctx context.Context, id, agentID string) error {
	ctx, span := tracing.StartSpan(ctx, "clientprofile.Repository.Delete")
	defer span.End()

	now := time.Now().UTC()
	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("client_profiles")
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
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"client_id": id}).Error("Failed to delete client profile")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete client profile")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("client profile %s not found", id))
	}

	return nil
}
