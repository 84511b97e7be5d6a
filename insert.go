package fluentdb

import (
	"context"
	"slices"
	"sort"

	"github.com/biyonik/go-fluent-db/dialect"
)

// InsertBuilder, INSERT komutlarını kurar. Her değer builder'a özel bir
// token'a bağlanır; kolonlar alfabetik sırayla yazılır.
//
//	id, err := db.Insert().
//	    Into("users").
//	    Set(map[string]any{"name": "Ada", "email": "ada@example.com"}).
//	    ExecuteAndGetInsertedID(ctx)
type InsertBuilder struct {
	statement
	table string
	rows  []map[string]string
}

func newInsert(db *DB) *InsertBuilder {
	b := &InsertBuilder{}
	b.db = db
	return b
}

// Into, hedef tabloyu belirler.
func (b *InsertBuilder) Into(table string) *InsertBuilder {
	b.table = b.db.table(table)
	return b
}

// Set, ilk satıra kolon değerleri ekler; aynı kolon tekrar verilirse son değer geçerlidir.
func (b *InsertBuilder) Set(values map[string]any) *InsertBuilder {
	if len(b.rows) == 0 {
		b.rows = append(b.rows, make(map[string]string, len(values)))
	}
	b.fill(b.rows[0], values)
	return b
}

// SetRows, her harita için ayrı bir VALUES satırı ekler. Bütün satırlar
// aynı kolon kümesine sahip olmalıdır.
func (b *InsertBuilder) SetRows(rows ...map[string]any) *InsertBuilder {
	for _, values := range rows {
		if len(values) == 0 {
			continue
		}
		row := make(map[string]string, len(values))
		b.fill(row, values)
		b.rows = append(b.rows, row)
	}
	return b
}

func (b *InsertBuilder) fill(row map[string]string, values map[string]any) {
	columns := make([]string, 0, len(values))
	for col := range values {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	for _, col := range columns {
		token := b.token("v", col)
		b.bind(token, values[col])
		row[col] = token
	}
}

// With, bir token'a değer bağlar.
func (b *InsertBuilder) With(token string, value any) *InsertBuilder {
	b.bind(token, value)
	return b
}

// WithParams, haritadaki bütün token'ları bağlar.
func (b *InsertBuilder) WithParams(params Params) *InsertBuilder {
	b.bindAll(params)
	return b
}

// SQL, çözülmemiş INSERT şablonunu döndürür.
func (b *InsertBuilder) SQL() (string, error) {
	q := dialect.InsertQuery{Table: b.table}
	if len(b.rows) > 0 {
		for col := range b.rows[0] {
			q.Columns = append(q.Columns, col)
		}
		slices.Sort(q.Columns)
	}

	for _, row := range b.rows {
		if len(row) != len(q.Columns) {
			return "", ErrInconsistentRows
		}
		values := make([]string, len(q.Columns))
		for i, col := range q.Columns {
			token, ok := row[col]
			if !ok {
				return "", ErrInconsistentRows
			}
			values[i] = token
		}
		q.Rows = append(q.Rows, values)
	}

	return dialect.CompileInsert(b.db.dialect, q)
}

// ToSQL, şablonu çözülmüş SQL'e ve sürücü argümanlarına çevirir.
func (b *InsertBuilder) ToSQL() (string, []any, error) {
	template, err := b.SQL()
	if err != nil {
		return "", nil, err
	}
	return b.resolve(template, nil)
}

// Execute, INSERT komutunu çalıştırır.
func (b *InsertBuilder) Execute(ctx context.Context, params ...Params) (*QueryResult, error) {
	template, err := b.SQL()
	if err != nil {
		return nil, err
	}
	return b.execute(ctx, "insert", template, params)
}

// ExecuteAndGetInsertedID, INSERT'i çalıştırır ve aynı bağlantıdaki son
// eklenen kimliği döndürür. Komut ayrı bir transaction'a alınmaz.
func (b *InsertBuilder) ExecuteAndGetInsertedID(ctx context.Context, params ...Params) (int64, error) {
	result, err := b.Execute(ctx, params...)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertID()
	if err != nil {
		return 0, WrapError("last insert id", err)
	}
	return id, nil
}
