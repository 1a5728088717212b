package listing

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
	"github.com/Ramsey-B/clover/pkg/normalizers"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

var columns = []string{"id", "agent_id", "title", "country", "category", "property_type", "status", "location", "price", "bedrooms", "area", "created_at", "updated_at", "deleted_at"}

// Repository handles listing persistence
type Repository struct {
	db     database.DB
	logger logger.Logger
}

// NewRepository creates a new listing repository
func NewRepository(db database.DB, logger logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new listing. Status is canonicalized on the way in so
// matching never sees raw free-text offer statuses.
func (r *Repository) Create(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	ctx, span := tracing.StartSpan(ctx, "listing.Repository.Create")
	defer span.End()

	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	listing.Status = normalizers.NormalizeStatus(listing.Status)
	listing.CreatedAt = time.Now().UTC()
	listing.UpdatedAt = listing.CreatedAt

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("listings")
	sb.Cols("id", "agent_id", "title", "country", "category", "property_type", "status", "location", "price", "bedrooms", "area", "created_at", "updated_at")
	sb.Values(listing.ID, listing.AgentID, listing.Title, listing.Country, listing.Category, listing.PropertyType, listing.Status, listing.Location, listing.Price, listing.Bedrooms, listing.Area, listing.CreatedAt, listing.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"listing_id": listing.ID}).Error("Failed to create listing")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create listing")
	}

	return listing, nil
}

// GetOwned retrieves a listing by ID, scoped to the owning agent
func (r *Repository) GetOwned(ctx context.Context, id, agentID string) (*models.Listing, error) {
	ctx, span := tracing.StartSpan(ctx, "listing.Repository.GetOwned")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("listings")
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agent_id", agentID),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	var listing models.Listing
	if err := r.db.GetContext(ctx, &listing, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("listing %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get listing")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get listing")
	}

	return &listing, nil
}

// ListByAgent retrieves all live listings owned by an agent
func (r *Repository) ListByAgent(ctx context.Context, agentID string) ([]models.Listing, error) {
	ctx, span := tracing.StartSpan(ctx, "listing.Repository.ListByAgent")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("listings")
	sb.Where(
		sb.Equal("agent_id", agentID),
		sb.IsNull("deleted_at"),
	)
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	var listings []models.Listing
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list listings by agent")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list listings")
	}

	return listings, nil
}

// List retrieves all live listings across agents. Matching uses this as the
// full inventory when ranking a client's or call's matches.
func (r *Repository) List(ctx context.Context) ([]models.Listing, error) {
	ctx, span := tracing.StartSpan(ctx, "listing.Repository.List")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("listings")
	sb.Where(sb.IsNull("deleted_at"))
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	var listings []models.Listing
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list listings")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list listings")
	}

	return listings, nil
}

// Delete soft-deletes a listing, scoped to the owning agent
func (r *Repository) Delete(ctx context.Context, id, agentID string) error {
	ctx, span := tracing.StartSpan(ctx, "listing.Repository.Delete")
	defer span.End()

	now := time.Now().UTC()
	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("listings")
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
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"listing_id": id}).Error("Failed to delete listing")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete listing")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("listing %s not found", id))
	}

	return nil
}
