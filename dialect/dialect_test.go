package dialect_test

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/go-fluent-db/dialect"
)

type status string

func TestMySQLEscape(t *testing.T) {
	d := dialect.MySQL()
	var nilInt *int
	seven := 7

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "NULL"},
		{"nil pointer", nilInt, "NULL"},
		{"pointer", &seven, "7"},
		{"true", true, "1"},
		{"false", false, "0"},
		{"int", 42, "42"},
		{"negative int64", int64(-9), "-9"},
		{"uint8", uint8(255), "255"},
		{"float", 3.5, "3.5"},
		{"float32", float32(0.25), "0.25"},
		{"plain string", "abc", "'abc'"},
		{"named string kind", status("active"), "'active'"},
		{"single quote", "it's", `'it\'s'`},
		{"double quote", `say "hi"`, `'say \"hi\"'`},
		{"backslash", `a\b`, `'a\\b'`},
		{"newline and cr", "a\nb\rc", `'a\nb\rc'`},
		{"nul and ctrl-z", "a\x00b\x1a", `'a\0b\Z'`},
		{"bytes", []byte("raw"), "'raw'"},
		{"time", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "'2024-01-02 03:04:05'"},
		{"int list", []int{1, 2, 3}, "(1, 2, 3)"},
		{"string list", []string{"a", "b'c"}, `('a', 'b\'c')`},
		{"mixed list", []any{1, "x", nil, true}, "(1, 'x', NULL, 1)"},
		{"array", [2]int{4, 5}, "(4, 5)"},
		{"null valuer", sql.NullString{}, "NULL"},
		{"valid valuer", sql.NullInt64{Int64: 5, Valid: true}, "5"},
		{"valuer string", sql.NullString{String: "o'k", Valid: true}, `'o\'k'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Escape(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEscapeErrors(t *testing.T) {
	d := dialect.MySQL()

	tests := []struct {
		name  string
		input any
		want  error
	}{
		{"empty list", []int{}, dialect.ErrEmptyList},
		{"nested empty list", []any{1, []string{}}, dialect.ErrEmptyList},
		{"map", map[string]int{"a": 1}, dialect.ErrUnsupportedValue},
		{"func", func() {}, dialect.ErrUnsupportedValue},
		{"struct", struct{ A int }{1}, dialect.ErrUnsupportedValue},
		{"nan", math.NaN(), dialect.ErrUnsupportedValue},
		{"inf", math.Inf(1), dialect.ErrUnsupportedValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Escape(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStandardEscape(t *testing.T) {
	for _, d := range []dialect.Dialect{dialect.Postgres(), dialect.SQLite()} {
		t.Run(d.Name(), func(t *testing.T) {
			got, err := d.Escape("it's a\\b")
			require.NoError(t, err)
			assert.Equal(t, `'it''s a\b'`, got)

			got, err = d.Escape([]string{"x", "y"})
			require.NoError(t, err)
			assert.Equal(t, "('x', 'y')", got)

			_, err = d.Escape("a\x00b")
			assert.ErrorIs(t, err, dialect.ErrUnsupportedValue)

			_, err = d.Escape([]any{"ok", []byte("a\x00")})
			assert.ErrorIs(t, err, dialect.ErrUnsupportedValue)
		})
	}
}

func TestQuoteField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		mysql string
		pg    string
	}{
		{"simple", "name", "`name`", `"name"`},
		{"qualified", "users.name", "`users`.`name`", `"users"."name"`},
		{"table star", "u.*", "`u`.*", `"u".*`},
		{"star", "*", "*", "*"},
		{"hyphen", "first-name", "`first-name`", `"first-name"`},
		{"alias", "name AS n", "`name` AS `n`", `"name" AS "n"`},
		{"lowercase alias", "u.id as user_id", "`u`.`id` AS `user_id`", `"u"."id" AS "user_id"`},
		{"function", "COUNT(*)", "COUNT(*)", "COUNT(*)"},
		{"function alias", "COUNT(*) AS total", "COUNT(*) AS `total`", `COUNT(*) AS "total"`},
		{"arithmetic", "price * qty", "price * qty", "price * qty"},
	}

	my, pg := dialect.MySQL(), dialect.Postgres()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.mysql, my.QuoteField(tt.input))
			assert.Equal(t, tt.pg, pg.QuoteField(tt.input))
		})
	}
}

func TestQuoteFieldLeavesQuotedText(t *testing.T) {
	assert.Equal(t, "`a`.`b`", dialect.MySQL().QuoteField("`a`.`b`"))
	assert.Equal(t, `"x"`, dialect.Postgres().QuoteField(`"x"`))
}

func TestQuoteTable(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"users", "`users`"},
		{"users u", "`users` `u`"},
		{"users AS u", "`users` `u`"},
		{"users as u", "`users` `u`"},
		{"shop.orders", "`shop`.`orders`"},
		{"shop.orders o", "`shop`.`orders` `o`"},
		{"`done`", "`done`"},
	}

	d := dialect.MySQL()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, d.QuoteTable(tt.input))
		})
	}
}

func TestQuoteIdentDoublesQuote(t *testing.T) {
	assert.Equal(t, "`we``ird`", dialect.MySQL().QuoteIdent("we`ird"))
	assert.Equal(t, `"we""ird"`, dialect.Postgres().QuoteIdent(`we"ird`))
}

func TestLimit(t *testing.T) {
	tests := []struct {
		limit, offset int
		mysql         string
		pg            string
		sqlite        string
	}{
		{0, 0, "", "", ""},
		{10, 0, " LIMIT 0, 10", " LIMIT 10", " LIMIT 10"},
		{10, 5, " LIMIT 5, 10", " LIMIT 10 OFFSET 5", " LIMIT 10 OFFSET 5"},
		{0, 5, " LIMIT 5, 18446744073709551615", " LIMIT ALL OFFSET 5", " LIMIT -1 OFFSET 5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.mysql, dialect.MySQL().Limit(tt.limit, tt.offset))
		assert.Equal(t, tt.pg, dialect.Postgres().Limit(tt.limit, tt.offset))
		assert.Equal(t, tt.sqlite, dialect.SQLite().Limit(tt.limit, tt.offset))
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		bindvar int
	}{
		{"mysql", "mysql", sqlx.QUESTION},
		{"", "mysql", sqlx.QUESTION},
		{"pgx", "postgres", sqlx.DOLLAR},
		{"PostgreSQL", "postgres", sqlx.DOLLAR},
		{"sqlite3", "sqlite", sqlx.QUESTION},
	}

	for _, tt := range tests {
		d, err := dialect.ByName(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, d.Name())
		assert.Equal(t, tt.bindvar, d.Bindvar())
	}

	_, err := dialect.ByName("oracle")
	assert.Error(t, err)
}

func TestBegin(t *testing.T) {
	assert.Equal(t, "START TRANSACTION", dialect.MySQL().Begin())
	assert.Equal(t, "BEGIN", dialect.Postgres().Begin())
	assert.Equal(t, "BEGIN", dialect.SQLite().Begin())
}
