package fluentdb

import (
	"context"
	"time"
)

// Query, ham bir SQL şablonu ve ona bağlı parametrelerdir. Şablondaki
// token'lar çağıranın seçtiği metinlerdir; bound backend yalnızca ":isim"
// biçimini kabul eder.
//
//	rows, err := db.Query("SELECT * FROM users WHERE id = :id").
//	    With(":id", 5).
//	    FetchArray(ctx)
type Query struct {
	selectable
	template string
}

func newQuery(db *DB, template string) *Query {
	q := &Query{template: template}
	q.db = db
	q.compile = q.SQL
	return q
}

// SetSQL, şablonu değiştirir. Bağlı parametreler korunur.
func (q *Query) SetSQL(template string) *Query {
	q.template = template
	return q
}

// SQL, çözülmemiş şablonu döndürür.
func (q *Query) SQL() (string, error) {
	return q.template, nil
}

// With, bir token'a değer bağlar. Aynı token tekrar bağlanırsa son değer geçerlidir.
func (q *Query) With(token string, value any) *Query {
	q.bind(token, value)
	return q
}

// WithParams, haritadaki bütün token'ları bağlar.
func (q *Query) WithParams(params Params) *Query {
	q.bindAll(params)
	return q
}

// Cache, FetchX sonuçlarını ttl süresince DB önbelleğinde tutar.
func (q *Query) Cache(ttl time.Duration) *Query {
	q.cacheTTL = ttl
	return q
}

// Execute, şablonu satır döndürmeyen bir komut olarak çalıştırır.
func (q *Query) Execute(ctx context.Context, params ...Params) (*QueryResult, error) {
	return q.execute(ctx, "execute", q.template, params)
}
