package fluentdb

import (
	"context"
	"sort"

	"github.com/biyonik/go-fluent-db/dialect"
)

// UpdateBuilder, UPDATE komutlarını kurar. Koşul verilmezse bütün satırlar
// güncellenir.
//
//	_, err := db.Update("users").
//	    Set(map[string]any{"active": false}).
//	    WhereEquals("id", 7).
//	    Execute(ctx)
type UpdateBuilder struct {
	statement
	table  string
	sets   []dialect.Assignment
	wheres []string
}

func newUpdate(db *DB) *UpdateBuilder {
	b := &UpdateBuilder{}
	b.db = db
	return b
}

// Table, güncellenecek tabloyu belirler.
func (b *UpdateBuilder) Table(table string) *UpdateBuilder {
	b.table = b.db.table(table)
	return b
}

// Set, kolon değerleri ekler. Daha önce verilmiş bir kolon yerinde güncellenir.
func (b *UpdateBuilder) Set(values map[string]any) *UpdateBuilder {
	columns := make([]string, 0, len(values))
	for col := range values {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	for _, col := range columns {
		token := b.token("v", col)
		b.bind(token, values[col])
		b.assign(col, token)
	}
	return b
}

// SetRaw, kolona ham bir SQL ifadesi atar ("hits", "hits + 1").
func (b *UpdateBuilder) SetRaw(column, expr string) *UpdateBuilder {
	b.assign(column, expr)
	return b
}

func (b *UpdateBuilder) assign(column, value string) {
	for i := range b.sets {
		if b.sets[i].Column == column {
			b.sets[i].Value = value
			return
		}
	}
	b.sets = append(b.sets, dialect.Assignment{Column: column, Value: value})
}

// Where, ham koşullar ekler.
func (b *UpdateBuilder) Where(conds ...string) *UpdateBuilder {
	b.wheres = appendConds(b.wheres, conds...)
	return b
}

// WhereEquals, "alan = değer" koşulu ekler.
func (b *UpdateBuilder) WhereEquals(field string, value any) *UpdateBuilder {
	b.wheres = append(b.wheres, b.equals(field, value))
	return b
}

// WhereEqualsMap, haritadaki her alan için WhereEquals uygular.
func (b *UpdateBuilder) WhereEqualsMap(values map[string]any) *UpdateBuilder {
	b.wheres = append(b.wheres, b.equalsMap(values)...)
	return b
}

// WhereNotEmpty, "alan != ''" koşulu ekler.
func (b *UpdateBuilder) WhereNotEmpty(field string) *UpdateBuilder {
	b.wheres = append(b.wheres, b.notEmpty(field))
	return b
}

// WhereCompare, beyaz listedeki bir operatörle koşul ekler.
func (b *UpdateBuilder) WhereCompare(field, op string, value any) *UpdateBuilder {
	b.wheres = appendConds(b.wheres, b.compare(field, op, value))
	return b
}

// With, bir token'a değer bağlar.
func (b *UpdateBuilder) With(token string, value any) *UpdateBuilder {
	b.bind(token, value)
	return b
}

// WithParams, haritadaki bütün token'ları bağlar.
func (b *UpdateBuilder) WithParams(params Params) *UpdateBuilder {
	b.bindAll(params)
	return b
}

// SQL, çözülmemiş UPDATE şablonunu döndürür.
func (b *UpdateBuilder) SQL() (string, error) {
	return dialect.CompileUpdate(b.db.dialect, dialect.UpdateQuery{
		Table:  b.table,
		Set:    b.sets,
		Wheres: b.wheres,
	})
}

// ToSQL, şablonu çözülmüş SQL'e ve sürücü argümanlarına çevirir.
func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	template, err := b.SQL()
	if err != nil {
		return "", nil, err
	}
	return b.resolve(template, nil)
}

// Execute, UPDATE komutunu çalıştırır.
func (b *UpdateBuilder) Execute(ctx context.Context, params ...Params) (*QueryResult, error) {
	template, err := b.SQL()
	if err != nil {
		return nil, err
	}
	return b.execute(ctx, "update", template, params)
}
