package fluentdb_test

import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fluentdb "github.com/biyonik/go-fluent-db"
	"github.com/biyonik/go-fluent-db/dialect"
)

func TestBackendByName(t *testing.T) {
	tests := []struct {
		name    string
		want    fluentdb.Backend
		wantErr bool
	}{
		{"", fluentdb.BackendBound, false},
		{"bound", fluentdb.BackendBound, false},
		{"PDO", fluentdb.BackendBound, false},
		{"literal", fluentdb.BackendLiteral, false},
		{" mysql ", fluentdb.BackendLiteral, false},
		{"odbc", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fluentdb.BackendByName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLiteralBackend(t *testing.T) {
	db := fluentdb.New(fluentdb.WithBackend(fluentdb.BackendLiteral))

	query, args, err := db.Query("SELECT * FROM t WHERE name = :name AND id = :id_2 AND x = :id AND y IN :ids").
		With(":name", "O'Brien").
		With(":id_2", 2).
		With(":id", nil).
		With(":ids", []string{"a", "b"}).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM t WHERE name = 'O\'Brien' AND id = 2 AND x = NULL AND y IN ('a', 'b')`, query)
	assert.Nil(t, args)
}

func TestLiteralBackendAcceptsAnyToken(t *testing.T) {
	db := fluentdb.New(fluentdb.WithBackend(fluentdb.BackendLiteral))

	query, _, err := db.Query("SELECT * FROM t WHERE a = {a} AND b = ?b").
		WithParams(fluentdb.Params{"{a}": 1, "?b": true}).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = 1 AND b = 1", query)
}

func TestLiteralBackendDoesNotRescanValues(t *testing.T) {
	db := fluentdb.New(fluentdb.WithBackend(fluentdb.BackendLiteral))

	query, _, err := db.Query("SELECT :a, :b").
		With(":a", ":b").
		With(":b", "x").
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT ':b', 'x'", query)
}

func TestLiteralBackendDialects(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)

	tests := []struct {
		dialect dialect.Dialect
		want    string
	}{
		{dialect.MySQL(), `SELECT * FROM ` + "`t`" + ` WHERE (` + "`a`" + ` = 'it\'s') AND (` + "`b`" + ` = '2024-03-09 14:05:00')`},
		{dialect.Postgres(), `SELECT * FROM "t" WHERE ("a" = 'it''s') AND ("b" = '2024-03-09 14:05:00')`},
		{dialect.SQLite(), `SELECT * FROM "t" WHERE ("a" = 'it''s') AND ("b" = '2024-03-09 14:05:00')`},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.Name(), func(t *testing.T) {
			db := fluentdb.New(fluentdb.WithDialect(tt.dialect), fluentdb.WithBackend(fluentdb.BackendLiteral))
			query, _, err := db.Select().From("t").WhereEquals("a", "it's").WhereEquals("b", ts).ToSQL()
			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
		})
	}
}

func TestBoundBackend(t *testing.T) {
	db := fluentdb.New()

	query, args, err := db.Query("SELECT * FROM t WHERE id = :id AND id2 = :id_2 AND tag IN :tags AND again = :id").
		With(":id", 1).
		With(":id_2", 2).
		With(":tags", []string{"a", "b", "c"}).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE id = ? AND id2 = ? AND tag IN (?, ?, ?) AND again = ?", query)
	assert.Equal(t, []any{1, 2, "a", "b", "c", 1}, args)
}

func TestBoundBackendErrors(t *testing.T) {
	db := fluentdb.New()

	_, _, err := db.Query("SELECT ?x").With("?x", 1).ToSQL()
	assert.ErrorIs(t, err, fluentdb.ErrInvalidPlaceholder)

	_, _, err = db.Query("SELECT * FROM t WHERE id IN :ids").With(":ids", []int{}).ToSQL()
	assert.ErrorIs(t, err, fluentdb.ErrEmptyList)
}

func TestBoundBackendWithoutParams(t *testing.T) {
	query, args, err := fluentdb.New().Query("SELECT 1").ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", query)
	assert.Nil(t, args)
}

func TestBoundBackendSkipsQuotedText(t *testing.T) {
	db := fluentdb.New()

	query, args, err := db.Select().From("events").
		Where("created_at > '2024-01-01 10:00:00'").
		WhereEquals("user_id", 7).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `events` WHERE (created_at > '2024-01-01 10:00:00') AND (`user_id` = ?)", query)
	assert.Equal(t, []any{7}, args)

	query, args, err = db.Query(`SELECT ':id', "a:id", ` + "`:id`" + `, 'it\'s :id' -- :id
/* :id */ FROM t WHERE id = :id AND at = '10:30'`).
		With(":id", 1).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, `SELECT ':id', "a:id", `+"`:id`"+`, 'it\'s :id' -- :id
/* :id */ FROM t WHERE id = ? AND at = '10:30'`, query)
	assert.Equal(t, []any{1}, args)
}

func TestBoundBackendPostgres(t *testing.T) {
	db := fluentdb.New(fluentdb.WithDialect(dialect.Postgres()))

	query, args, err := db.Query("SELECT id::text FROM t WHERE a = :a AND b IN :b AND note <> 'why?' AND c = :a").
		With(":a", "x").
		With(":b", []int{1, 2}).
		With(":unused", 3).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id::text FROM t WHERE a = $1 AND b IN ($2, $3) AND note <> 'why?' AND c = $4", query)
	assert.Equal(t, []any{"x", 1, 2, "x"}, args)
}

func TestBoundBackendLeavesUnknownNames(t *testing.T) {
	query, args, err := fluentdb.New().Query("SELECT :a, :b").With(":a", 1).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT ?, :b", query)
	assert.Equal(t, []any{1}, args)
}

// TestLiteralBackendSQLiteRoundTrip runs escaped literals through SQLite's
// own parser and reads them back.
func TestLiteralBackendSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := fluentdb.Connect("sqlite3", ":memory:", fluentdb.WithBackend(fluentdb.BackendLiteral))
	require.NoError(t, err)
	defer db.Close()

	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"quote", "O'Brien", "O'Brien"},
		{"double quote", `say "hi"`, `say "hi"`},
		{"backslash", `a\b\'c`, `a\b\'c`},
		{"newline", "line1\nline2\r\t", "line1\nline2\r\t"},
		{"placeholder text", ":v :w", ":v :w"},
		{"unicode", "çğıöşü", "çğıöşü"},
		{"negative int", -5, int64(-5)},
		{"float", 1.5, 1.5},
		{"null", nil, nil},
		{"true", true, int64(1)},
		{"false", false, int64(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.Query("SELECT :v").With(":v", tt.value).FetchValue(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("in list", func(t *testing.T) {
		got, err := db.Query("SELECT 'b' IN :v").With(":v", []string{"a", "b'", "b"}).FetchValue(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got)
	})

	t.Run("nul", func(t *testing.T) {
		_, err := db.Query("SELECT :v").With(":v", "a\x00b").FetchValue(ctx)
		assert.ErrorIs(t, err, fluentdb.ErrUnsupportedValue)
	})
}
