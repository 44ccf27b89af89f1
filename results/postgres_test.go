package results

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/klejdi94/simscore/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCall struct {
	query string
	args  []driver.Value
	inTx  bool
}

// fakeDB is a database/sql driver that records statements instead of running them.
type fakeDB struct {
	mu     sync.Mutex
	calls  []execCall
	events []string
	inTx   bool
	failOn string
}

func (f *fakeDB) Connect(ctx context.Context) (driver.Conn, error) {
	return &fakeConn{db: f}, nil
}

func (f *fakeDB) Driver() driver.Driver {
	return fakeDriver{db: f}
}

type fakeDriver struct{ db *fakeDB }

func (d fakeDriver) Open(name string) (driver.Conn, error) {
	return &fakeConn{db: d.db}, nil
}

func (f *fakeDB) record(event string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	f.inTx = event == "BEGIN"
}

type fakeConn struct{ db *fakeDB }

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	c.db.record("BEGIN")
	return fakeTx{db: c.db}, nil
}

func (c *fakeConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	f := c.db
	f.mu.Lock()
	defer f.mu.Unlock()
	vals := make([]driver.Value, len(args))
	for i, a := range args {
		vals[i] = a.Value
	}
	f.calls = append(f.calls, execCall{query: query, args: vals, inTx: f.inTx})
	if f.failOn != "" && strings.Contains(query, f.failOn) {
		return nil, errors.New("relation is read-only")
	}
	return driver.RowsAffected(1), nil
}

type fakeTx struct{ db *fakeDB }

func (t fakeTx) Commit() error {
	t.db.record("COMMIT")
	return nil
}

func (t fakeTx) Rollback() error {
	t.db.record("ROLLBACK")
	return nil
}

func newFakePostgres(t *testing.T, f *fakeDB) *PostgresWriter {
	t.Helper()
	db := sql.OpenDB(f)
	t.Cleanup(func() { db.Close() })
	w, err := NewPostgresWriter(context.Background(), db, "")
	require.NoError(t, err)
	return w
}

func TestNewPostgresWriter_Migrates(t *testing.T) {
	f := &fakeDB{}
	w := newFakePostgres(t, f)
	assert.Equal(t, "postgres table similarity_results", w.Location())
	require.Len(t, f.calls, 1)
	assert.Contains(t, f.calls[0].query, "CREATE TABLE IF NOT EXISTS similarity_results")
	assert.False(t, f.calls[0].inTx)
}

func TestPostgresWriter_Write(t *testing.T) {
	f := &fakeDB{}
	w := newFakePostgres(t, f)
	rs := sampleResults()
	require.NoError(t, w.Write(context.Background(), rs))

	assert.Equal(t, []string{"BEGIN", "COMMIT"}, f.events)
	calls := f.calls[1:]
	require.Len(t, calls, 3)

	for i, id := range rs.Keys() {
		c := calls[i]
		assert.True(t, c.inTx)
		assert.Contains(t, c.query, "INSERT INTO similarity_results")
		assert.Contains(t, c.query, "ON CONFLICT (item_id) DO UPDATE")
		require.Len(t, c.args, 4)
		assert.Equal(t, id, c.args[0])
		assert.Equal(t, int64(i), c.args[1])

		res, _ := rs.Get(id)
		assert.Equal(t, res.SourceText, c.args[2])
		data, ok := c.args[3].([]byte)
		require.True(t, ok)
		assert.True(t, json.Valid(data))
		var decoded core.ItemResult
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, res.Translations.Keys(), decoded.Translations.Keys())
	}

	prune := calls[2]
	assert.True(t, prune.inTx)
	assert.Contains(t, prune.query, "DELETE FROM similarity_results WHERE NOT (item_id = ANY($1))")
	require.Len(t, prune.args, 1)
	arr, ok := prune.args[0].(string)
	require.True(t, ok)
	assert.Contains(t, arr, `"Genesis 1:1"`)
	assert.Contains(t, arr, `"John 1:1"`)
}

func TestPostgresWriter_EmptyResultSetPrunesAll(t *testing.T) {
	f := &fakeDB{}
	w := newFakePostgres(t, f)
	require.NoError(t, w.Write(context.Background(), core.ResultSet{}))

	calls := f.calls[1:]
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].query, "DELETE FROM")
	assert.Equal(t, []driver.Value{"{}"}, calls[0].args)
	assert.Equal(t, []string{"BEGIN", "COMMIT"}, f.events)
}

func TestPostgresWriter_ExecErrorRollsBack(t *testing.T) {
	f := &fakeDB{}
	w := newFakePostgres(t, f)
	f.failOn = "INSERT INTO"

	err := w.Write(context.Background(), sampleResults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Genesis 1:1")
	assert.Equal(t, []string{"BEGIN", "ROLLBACK"}, f.events)
}
