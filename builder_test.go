package fluentdb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fluentdb "github.com/biyonik/go-fluent-db"
	"github.com/biyonik/go-fluent-db/dialect"
)

func TestSelectSQL(t *testing.T) {
	db := fluentdb.New()

	tests := []struct {
		name  string
		build func() *fluentdb.SelectBuilder
		want  string
	}{
		{
			name:  "star",
			build: func() *fluentdb.SelectBuilder { return db.Select().From("users") },
			want:  "SELECT * FROM `users`",
		},
		{
			name: "fields and alias",
			build: func() *fluentdb.SelectBuilder {
				return db.Select("u.id", "u.name AS label", "COUNT(*) AS total").From("users AS u")
			},
			want: "SELECT `u`.`id`, `u`.`name` AS `label`, COUNT(*) AS `total` FROM `users` `u`",
		},
		{
			name: "add fields starts from star",
			build: func() *fluentdb.SelectBuilder {
				return db.Select().AddFields("r.name AS role").From("users")
			},
			want: "SELECT *, `r`.`name` AS `role` FROM `users`",
		},
		{
			name: "full chain",
			build: func() *fluentdb.SelectBuilder {
				return db.Select("id", "name").
					From("users u").
					LeftJoin("roles r", "r.id = u.role_id").
					InnerJoin("teams t", "t.id = u.team_id", "t.active = 1").
					Where("u.age > 18").
					GroupBy("u.id", "COUNT(*) > 1").
					OrderBy("name", "desc").
					Limit(10, 20)
			},
			want: "SELECT `id`, `name` FROM `users` `u` " +
				"LEFT JOIN `roles` `r` ON r.id = u.role_id " +
				"INNER JOIN `teams` `t` ON t.id = u.team_id AND t.active = 1 " +
				"WHERE (u.age > 18) GROUP BY `u`.`id` HAVING (COUNT(*) > 1) " +
				"ORDER BY `name` DESC LIMIT 20, 10",
		},
		{
			name: "having without group by is dropped",
			build: func() *fluentdb.SelectBuilder {
				return db.Select().From("t").Having("COUNT(*) > 1")
			},
			want: "SELECT * FROM `t`",
		},
		{
			name: "order by replaces in place",
			build: func() *fluentdb.SelectBuilder {
				return db.Select().From("t").OrderBy("a", "asc").OrderBy("b", "").OrderBy("a", "DESC")
			},
			want: "SELECT * FROM `t` ORDER BY `a` DESC, `b` ASC",
		},
		{
			name: "offset only",
			build: func() *fluentdb.SelectBuilder {
				return db.Select().From("t").Limit(0, 5)
			},
			want: "SELECT * FROM `t` LIMIT 5, 18446744073709551615",
		},
		{
			name: "when",
			build: func() *fluentdb.SelectBuilder {
				return db.Select().From("t").
					When(true, func(b *fluentdb.SelectBuilder) { b.Where("a = 1") }).
					When(false, func(b *fluentdb.SelectBuilder) { b.Where("b = 2") })
			},
			want: "SELECT * FROM `t` WHERE (a = 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.build().SQL()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectWithoutTable(t *testing.T) {
	_, err := fluentdb.New().Select("id").SQL()
	assert.ErrorIs(t, err, fluentdb.ErrNoTable)
}

func TestWhereEqualsTokensDoNotCollide(t *testing.T) {
	b := fluentdb.New().Select().From("t").
		WhereEquals("a", 1).
		WhereEquals("a", 2)

	sql, err := b.SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `t` WHERE (`a` = :eq_a_1) AND (`a` = :eq_a_2)", sql)
	assert.Equal(t, fluentdb.Params{":eq_a_1": 1, ":eq_a_2": 2}, b.Params())
}

func TestWhereEqualsValueForms(t *testing.T) {
	b := fluentdb.New().Select().From("t").
		WhereEquals("deleted_at", nil).
		WhereEquals("id", []int{1, 2}).
		WhereEqualsMap(map[string]any{"b": "x", "a": true}).
		WhereNotEmpty("name")

	sql, err := b.SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `t` WHERE (`deleted_at` IS NULL) AND (`id` IN :in_id_1) "+
		"AND (`a` = :eq_a_2) AND (`b` = :eq_b_3) AND (`name` != '')", sql)

	query, args, err := b.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `t` WHERE (`deleted_at` IS NULL) AND (`id` IN (?, ?)) "+
		"AND (`a` = ?) AND (`b` = ?) AND (`name` != '')", query)
	assert.Equal(t, []any{1, 2, true, "x"}, args)
}

func TestWhereCompare(t *testing.T) {
	b := fluentdb.New().Select().From("t").
		WhereCompare("age", ">=", 18).
		WhereCompare("deleted_at", "is", nil).
		WhereCompare("role", "not  in", []string{"a", "b"})

	sql, err := b.SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `t` WHERE (`age` >= :cmp_age_1) AND (`deleted_at` IS NULL) "+
		"AND (`role` NOT IN :cmp_role_2)", sql)

	query, args, err := b.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `t` WHERE (`age` >= ?) AND (`deleted_at` IS NULL) AND (`role` NOT IN (?, ?))", query)
	assert.Equal(t, []any{18, "a", "b"}, args)
}

func TestBuilderErrorsSurfaceOnResolve(t *testing.T) {
	tests := []struct {
		name string
		b    *fluentdb.SelectBuilder
		want error
	}{
		{"unknown operator", fluentdb.New().Select().From("t").WhereCompare("a", "; DROP", 1), fluentdb.ErrInvalidOperator},
		{"in without list", fluentdb.New().Select().From("t").WhereCompare("a", "IN", 1), fluentdb.ErrInvalidOperator},
		{"bad direction", fluentdb.New().Select().From("t").OrderBy("a", "sideways"), fluentdb.ErrInvalidDirection},
		{"empty list", fluentdb.New().Select().From("t").WhereEquals("a", []int{}), fluentdb.ErrEmptyList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.b.ToSQL()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	base := fluentdb.New().Select().From("t").WhereEquals("a", 1)
	clone := base.Clone().WhereEquals("b", 2).Limit(5, 0)

	baseSQL, err := base.SQL()
	require.NoError(t, err)
	cloneSQL, err := clone.SQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT * FROM `t` WHERE (`a` = :eq_a_1)", baseSQL)
	assert.Equal(t, "SELECT * FROM `t` WHERE (`a` = :eq_a_1) AND (`b` = :eq_b_2) LIMIT 0, 5", cloneSQL)
	assert.Len(t, base.Params(), 1)
	assert.Len(t, clone.Params(), 2)
}

func TestPostgresRebind(t *testing.T) {
	db := fluentdb.New(fluentdb.WithDialect(dialect.Postgres()))

	query, args, err := db.Select("id").From("users").
		WhereEquals("a", 1).
		WhereEquals("b", "x").
		Limit(10, 0).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id" FROM "users" WHERE ("a" = $1) AND ("b" = $2) LIMIT 10`, query)
	assert.Equal(t, []any{1, "x"}, args)
}

func TestTablePrefix(t *testing.T) {
	db := fluentdb.New(fluentdb.WithTablePrefix("app_"))

	sql, err := db.Select().From("users u").LeftJoin("roles", "roles.id = u.role_id").SQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `app_users` `u` LEFT JOIN `app_roles` ON roles.id = u.role_id", sql)

	sql, err = db.Update("users").Set(map[string]any{"a": 1}).SQL()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `app_users` SET `a` = :v_a_1", sql)
}

func TestInsertSQL(t *testing.T) {
	db := fluentdb.New()

	sql, err := db.Insert(map[string]any{"name": "a", "age": 3}).Into("users").SQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `users` (`age`, `name`) VALUES (:v_age_1, :v_name_2)", sql)

	multi := db.Insert(
		map[string]any{"a": 1, "b": 2},
		map[string]any{"b": 4, "a": 3},
	).Into("t")
	query, args, err := multi.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `t` (`a`, `b`) VALUES (?, ?), (?, ?)", query)
	assert.Equal(t, []any{1, 2, 3, 4}, args)

	set := db.Insert().Into("t").Set(map[string]any{"a": 1}).Set(map[string]any{"b": 2})
	sql, err = set.SQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `t` (`a`, `b`) VALUES (:v_a_1, :v_b_2)", sql)
}

func TestInsertErrors(t *testing.T) {
	db := fluentdb.New()

	_, err := db.Insert().Into("t").SQL()
	assert.ErrorIs(t, err, fluentdb.ErrNoColumns)

	_, err = db.Insert(map[string]any{"a": 1}).SQL()
	assert.ErrorIs(t, err, fluentdb.ErrNoTable)

	_, err = db.Insert(map[string]any{"a": 1}, map[string]any{"b": 2}).Into("t").SQL()
	assert.ErrorIs(t, err, fluentdb.ErrInconsistentRows)
}

func TestUpdateSQL(t *testing.T) {
	b := fluentdb.New().Update("users").
		Set(map[string]any{"name": "b", "age": 4}).
		Set(map[string]any{"name": "c"}).
		SetRaw("hits", "hits + 1").
		WhereEquals("id", 1)

	sql, err := b.SQL()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `users` SET `age` = :v_age_1, `name` = :v_name_3, `hits` = hits + 1 WHERE (`id` = :eq_id_4)", sql)

	query, args, err := b.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `users` SET `age` = ?, `name` = ?, `hits` = hits + 1 WHERE (`id` = ?)", query)
	assert.Equal(t, []any{4, "c", 1}, args)
}

func TestUpdateWithoutWhereTouchesAllRows(t *testing.T) {
	sql, err := fluentdb.New().Update("t").Set(map[string]any{"a": 1}).SQL()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `t` SET `a` = :v_a_1", sql)
}

func TestDeleteSQL(t *testing.T) {
	db := fluentdb.New()

	sql, err := db.Delete().From("t").SQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `t`", sql)

	sql, err = db.Delete().From("t").WhereEquals("id", 1).Where("age > 3").SQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `t` WHERE (`id` = :eq_id_1) AND (age > 3)", sql)
}
