package clientprofile

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/logger"
	"github.com/Ramsey-B/clover/pkg/models"
)

type captureDB struct {
	query string
	args  []any
}

type execResult struct{}

func (execResult) LastInsertId() (int64, error) { return 0, nil }
func (execResult) RowsAffected() (int64, error) { return 1, nil }

func (c *captureDB) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	c.query = query
	c.args = args
	return execResult{}, nil
}

func (c *captureDB) GetContext(context.Context, any, string, ...any) error { return nil }

func (c *captureDB) SelectContext(context.Context, any, string, ...any) error { return nil }

func (c *captureDB) QueryxContext(context.Context, string, ...any) (*sqlx.Rows, error) {
	return nil, nil
}

func (c *captureDB) PingContext(context.Context) error { return nil }

func (c *captureDB) Close() error { return nil }

func TestCreate_PropertyTypesSentAsText(t *testing.T) {
	db := &captureDB{}
	repo := NewRepository(db, logger.NewNop())

	_, err := repo.Create(context.Background(), &models.ClientProfile{
		AgentID:                "agent-1",
		ClientName:             "Dana",
		PreferredPropertyTypes: json.RawMessage(`["apartment","penthouse"]`),
	})
	require.NoError(t, err)

	// preferred_property_types is the ninth insert column; a raw []byte
	// parameter would reach Postgres as bytea and fail the jsonb cast.
	assert.Contains(t, db.query, "client_profiles")
	require.Len(t, db.args, 18)
	assert.Equal(t, `["apartment","penthouse"]`, db.args[8])
}

func TestCreate_NoPropertyTypesStaysNull(t *testing.T) {
	db := &captureDB{}
	repo := NewRepository(db, logger.NewNop())

	_, err := repo.Create(context.Background(), &models.ClientProfile{
		AgentID:    "agent-1",
		ClientName: "Dana",
	})
	require.NoError(t, err)

	require.Len(t, db.args, 18)
	assert.Nil(t, db.args[8])
}
