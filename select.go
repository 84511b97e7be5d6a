package fluentdb

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/biyonik/go-fluent-db/dialect"
)

// SelectBuilder, SELECT sorgularını zincirleme çağrılarla kurar. Koşullar
// çağrı sırasıyla yazılır; SQL her çalıştırmada güncel durumdan yeniden üretilir.
//
//	users, err := db.Select("id", "name").
//	    From("users").
//	    WhereEquals("active", true).
//	    OrderBy("name", "asc").
//	    Limit(10, 0).
//	    FetchArrayByKey(ctx, "id")
type SelectBuilder struct {
	selectable
	fields []string
	table  string
	joins  []dialect.JoinClause
	wheres []string
	groups []string
	having []string
	orders []dialect.OrderClause
	limit  int
	offset int
}

func newSelect(db *DB) *SelectBuilder {
	b := &SelectBuilder{}
	b.db = db
	b.bindCompilers()
	return b
}

func (b *SelectBuilder) bindCompilers() {
	b.compile = b.SQL
	b.first = func() (string, error) {
		q := b.query()
		q.Limit, q.Offset = 1, b.offset
		return dialect.CompileSelect(b.db.dialect, q)
	}
}

// Fields, seçilecek alanları değiştirir. Alan verilmezse "*" seçilir.
func (b *SelectBuilder) Fields(fields ...string) *SelectBuilder {
	b.fields = appendConds(nil, fields...)
	return b
}

// AddFields, seçilecek alanlara ekleme yapar. Hiç alan yoksa "*" ile başlar.
func (b *SelectBuilder) AddFields(fields ...string) *SelectBuilder {
	if len(b.fields) == 0 {
		b.fields = []string{"*"}
	}
	b.fields = appendConds(b.fields, fields...)
	return b
}

// From, sorgulanacak tabloyu belirler: "users", "users u" veya "users AS u".
func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = b.db.table(table)
	return b
}

// LeftJoin, LEFT JOIN ekler. Koşullar AND ile birleştirilir.
func (b *SelectBuilder) LeftJoin(table string, conds ...string) *SelectBuilder {
	return b.join(dialect.JoinLeft, table, conds)
}

// InnerJoin, INNER JOIN ekler.
func (b *SelectBuilder) InnerJoin(table string, conds ...string) *SelectBuilder {
	return b.join(dialect.JoinInner, table, conds)
}

// RightJoin, RIGHT JOIN ekler.
func (b *SelectBuilder) RightJoin(table string, conds ...string) *SelectBuilder {
	return b.join(dialect.JoinRight, table, conds)
}

func (b *SelectBuilder) join(kind dialect.JoinType, table string, conds []string) *SelectBuilder {
	b.joins = append(b.joins, dialect.JoinClause{
		Type:       kind,
		Table:      b.db.table(table),
		Conditions: appendConds(nil, conds...),
	})
	return b
}

// Where, ham koşullar ekler. Her koşul parantez içinde AND ile birleştirilir.
func (b *SelectBuilder) Where(conds ...string) *SelectBuilder {
	b.wheres = appendConds(b.wheres, conds...)
	return b
}

// WhereEquals, "alan = değer" koşulu ekler. Değer builder'a özel bir
// token'a bağlanır; nil "IS NULL", slice "IN (...)" üretir.
func (b *SelectBuilder) WhereEquals(field string, value any) *SelectBuilder {
	b.wheres = append(b.wheres, b.equals(field, value))
	return b
}

// WhereEqualsMap, haritadaki her alan için WhereEquals uygular.
func (b *SelectBuilder) WhereEqualsMap(values map[string]any) *SelectBuilder {
	b.wheres = append(b.wheres, b.equalsMap(values)...)
	return b
}

// WhereNotEmpty, "alan != ''" koşulu ekler.
func (b *SelectBuilder) WhereNotEmpty(field string) *SelectBuilder {
	b.wheres = append(b.wheres, b.notEmpty(field))
	return b
}

// WhereCompare, beyaz listedeki bir operatörle koşul ekler ("age", ">=", 18).
func (b *SelectBuilder) WhereCompare(field, op string, value any) *SelectBuilder {
	b.wheres = appendConds(b.wheres, b.compare(field, op, value))
	return b
}

// OrderBy, sıralama ekler. Aynı alan tekrar verilirse yeri korunur, yönü değişir.
// Yön "ASC" veya "DESC" olmalıdır (büyük/küçük harf duyarsız; boş ASC).
func (b *SelectBuilder) OrderBy(field, direction string) *SelectBuilder {
	dir, ok := dialect.ParseDirection(direction)
	if !ok {
		b.setErr(fmt.Errorf("%w: %q", ErrInvalidDirection, direction))
		return b
	}

	for i := range b.orders {
		if b.orders[i].Field == field {
			b.orders[i].Direction = dir
			return b
		}
	}
	b.orders = append(b.orders, dialect.OrderClause{Field: field, Direction: dir})
	return b
}

// GroupBy, GROUP BY alanı ve isteğe bağlı HAVING koşulları ekler.
func (b *SelectBuilder) GroupBy(field string, having ...string) *SelectBuilder {
	b.groups = appendConds(b.groups, field)
	b.having = appendConds(b.having, having...)
	return b
}

// Having, HAVING koşulları ekler. GROUP BY yoksa yazılmaz.
func (b *SelectBuilder) Having(conds ...string) *SelectBuilder {
	b.having = appendConds(b.having, conds...)
	return b
}

// Limit, en fazla n satır döndürür; offset kadar satırı atlar.
// İkisi de sıfırsa LIMIT yazılmaz.
func (b *SelectBuilder) Limit(n, offset int) *SelectBuilder {
	b.limit, b.offset = max(n, 0), max(offset, 0)
	return b
}

// With, bir token'a değer bağlar.
func (b *SelectBuilder) With(token string, value any) *SelectBuilder {
	b.bind(token, value)
	return b
}

// WithParams, haritadaki bütün token'ları bağlar.
func (b *SelectBuilder) WithParams(params Params) *SelectBuilder {
	b.bindAll(params)
	return b
}

// Cache, FetchX sonuçlarını ttl süresince DB önbelleğinde tutar.
// DB'de WithCache ile bir store yoksa etkisizdir.
func (b *SelectBuilder) Cache(ttl time.Duration) *SelectBuilder {
	b.cacheTTL = ttl
	return b
}

// When, condition doğruysa fn'i builder üzerinde çalıştırır.
func (b *SelectBuilder) When(condition bool, fn func(*SelectBuilder)) *SelectBuilder {
	if condition {
		fn(b)
	}
	return b
}

// Clone, builder'ın bağımsız bir kopyasını döndürür.
func (b *SelectBuilder) Clone() *SelectBuilder {
	clone := &SelectBuilder{
		fields: slices.Clone(b.fields),
		table:  b.table,
		joins:  make([]dialect.JoinClause, len(b.joins)),
		wheres: slices.Clone(b.wheres),
		groups: slices.Clone(b.groups),
		having: slices.Clone(b.having),
		orders: slices.Clone(b.orders),
		limit:  b.limit,
		offset: b.offset,
	}
	for i, j := range b.joins {
		j.Conditions = slices.Clone(j.Conditions)
		clone.joins[i] = j
	}

	clone.db = b.db
	clone.params = maps.Clone(b.params)
	clone.err = b.err
	clone.seq = b.seq
	clone.cacheTTL = b.cacheTTL
	clone.bindCompilers()
	return clone
}

// SQL, çözülmemiş SELECT şablonunu döndürür.
func (b *SelectBuilder) SQL() (string, error) {
	return dialect.CompileSelect(b.db.dialect, b.query())
}

// Paginate, toplam satır sayısını hesaplar ve istenen sayfanın satırlarını döndürür.
// Builder'ın kendi Limit ayarı bu çağrı için yok sayılır.
func (b *SelectBuilder) Paginate(ctx context.Context, page, perPage int, params ...Params) ([]Row, *Pagination, error) {
	paged := b.Clone().Limit(0, 0)
	total, err := paged.Count(ctx, params...)
	if err != nil {
		return nil, nil, err
	}

	p := NewPagination(page, perPage, total)
	rows, err := paged.Limit(p.PerPage, p.Offset()).FetchArray(ctx, params...)
	if err != nil {
		return nil, nil, err
	}
	return rows, p, nil
}

func (b *SelectBuilder) query() dialect.SelectQuery {
	return dialect.SelectQuery{
		Fields:  b.fields,
		Table:   b.table,
		Joins:   b.joins,
		Wheres:  b.wheres,
		GroupBy: b.groups,
		Having:  b.having,
		Orders:  b.orders,
		Limit:   b.limit,
		Offset:  b.offset,
	}
}
