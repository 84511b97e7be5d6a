package fluentdb

import (
	"context"

	"github.com/biyonik/go-fluent-db/dialect"
)

// DeleteBuilder, DELETE komutlarını kurar.
//
// Koşulsuz bir DELETE "DELETE FROM `t`" olarak üretilebilir, fakat
// AllRows çağrılmadıkça Execute ErrUnconditionalDelete döner.
type DeleteBuilder struct {
	statement
	table   string
	wheres  []string
	allRows bool
}

func newDelete(db *DB) *DeleteBuilder {
	b := &DeleteBuilder{}
	b.db = db
	return b
}

// From, silinecek tabloyu belirler.
func (b *DeleteBuilder) From(table string) *DeleteBuilder {
	b.table = b.db.table(table)
	return b
}

// AllRows, koşulsuz silmeye izin verir.
func (b *DeleteBuilder) AllRows() *DeleteBuilder {
	b.allRows = true
	return b
}

// Where, ham koşullar ekler.
func (b *DeleteBuilder) Where(conds ...string) *DeleteBuilder {
	b.wheres = appendConds(b.wheres, conds...)
	return b
}

// WhereEquals, "alan = değer" koşulu ekler.
func (b *DeleteBuilder) WhereEquals(field string, value any) *DeleteBuilder {
	b.wheres = append(b.wheres, b.equals(field, value))
	return b
}

// WhereEqualsMap, haritadaki her alan için WhereEquals uygular.
func (b *DeleteBuilder) WhereEqualsMap(values map[string]any) *DeleteBuilder {
	b.wheres = append(b.wheres, b.equalsMap(values)...)
	return b
}

// WhereNotEmpty, "alan != ''" koşulu ekler.
func (b *DeleteBuilder) WhereNotEmpty(field string) *DeleteBuilder {
	b.wheres = append(b.wheres, b.notEmpty(field))
	return b
}

// WhereCompare, beyaz listedeki bir operatörle koşul ekler.
func (b *DeleteBuilder) WhereCompare(field, op string, value any) *DeleteBuilder {
	b.wheres = appendConds(b.wheres, b.compare(field, op, value))
	return b
}

// With, bir token'a değer bağlar.
func (b *DeleteBuilder) With(token string, value any) *DeleteBuilder {
	b.bind(token, value)
	return b
}

// WithParams, haritadaki bütün token'ları bağlar.
func (b *DeleteBuilder) WithParams(params Params) *DeleteBuilder {
	b.bindAll(params)
	return b
}

// SQL, çözülmemiş DELETE şablonunu döndürür.
func (b *DeleteBuilder) SQL() (string, error) {
	return dialect.CompileDelete(b.db.dialect, dialect.DeleteQuery{
		Table:  b.table,
		Wheres: b.wheres,
	})
}

// ToSQL, şablonu çözülmüş SQL'e ve sürücü argümanlarına çevirir.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	template, err := b.SQL()
	if err != nil {
		return "", nil, err
	}
	return b.resolve(template, nil)
}

// Execute, DELETE komutunu çalıştırır.
func (b *DeleteBuilder) Execute(ctx context.Context, params ...Params) (*QueryResult, error) {
	if len(b.wheres) == 0 && !b.allRows {
		return nil, ErrUnconditionalDelete
	}

	template, err := b.SQL()
	if err != nil {
		return nil, err
	}
	return b.execute(ctx, "delete", template, params)
}
