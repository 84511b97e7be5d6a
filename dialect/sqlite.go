package dialect

import "github.com/jmoiron/sqlx"

// SQLiteDialect, Dialect arayüzünü SQLite için implemente eder.
type SQLiteDialect struct {
	BaseDialect
}

// SQLite, yeni bir SQLite dialect örneği oluşturur.
func SQLite() *SQLiteDialect {
	return &SQLiteDialect{
		BaseDialect: BaseDialect{
			name:       "sqlite",
			quote:      `"`,
			dateFormat: "2006-01-02 15:04:05",
			escapeStr:  standardEscaper.Replace,
		},
	}
}

// Limit, "LIMIT n OFFSET o" üretir; SQLite sınırsız için -1 kabul eder.
func (d *SQLiteDialect) Limit(limit, offset int) string {
	return limitOffset(limit, offset, "-1")
}

// Begin, SQLite transaction başlatma komutunu döndürür.
func (d *SQLiteDialect) Begin() string {
	return "BEGIN"
}

// Bindvar, SQLite'ın soru işareti (?) yer tutucusunu kullandığını bildirir.
func (d *SQLiteDialect) Bindvar() int {
	return sqlx.QUESTION
}
