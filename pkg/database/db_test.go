package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/logger"
	"github.com/Ramsey-B/clover/pkg/metrics"
)

type fakeDB struct {
	calls   []string
	execErr error
}

func (f *fakeDB) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	f.calls = append(f.calls, "exec:"+query)
	return nil, f.execErr
}

func (f *fakeDB) GetContext(_ context.Context, _ any, query string, _ ...any) error {
	f.calls = append(f.calls, "get:"+query)
	return nil
}

func (f *fakeDB) SelectContext(_ context.Context, _ any, query string, _ ...any) error {
	f.calls = append(f.calls, "select:"+query)
	return nil
}

func (f *fakeDB) QueryxContext(_ context.Context, query string, _ ...any) (*sqlx.Rows, error) {
	f.calls = append(f.calls, "queryx:"+query)
	return nil, nil
}

func (f *fakeDB) PingContext(context.Context) error { return nil }

func (f *fakeDB) Close() error { return nil }

func TestDatabaseInstance_DelegatesAndTimesQueries(t *testing.T) {
	inner := &fakeDB{}
	db := NewDatabaseInstance(inner, logger.NewNop())
	ctx := context.Background()

	_, err := db.ExecContext(ctx, "UPDATE listings SET title = $1", "t")
	require.NoError(t, err)
	require.NoError(t, db.GetContext(ctx, nil, "SELECT 1"))
	require.NoError(t, db.SelectContext(ctx, nil, "SELECT 2"))
	_, err = db.QueryxContext(ctx, "SELECT 3")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"exec:UPDATE listings SET title = $1",
		"get:SELECT 1",
		"select:SELECT 2",
		"queryx:SELECT 3",
	}, inner.calls)

	// one histogram series per operation label
	assert.Equal(t, 4, testutil.CollectAndCount(metrics.DatabaseQueryDuration))
}

func TestDatabaseInstance_PropagatesErrors(t *testing.T) {
	inner := &fakeDB{execErr: errors.New("boom")}
	db := NewDatabaseInstance(inner, logger.NewNop())

	_, err := db.ExecContext(context.Background(), "INSERT")
	assert.Error(t, err)
}
