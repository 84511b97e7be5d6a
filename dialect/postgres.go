package dialect

import (
	"strconv"

	"github.com/jmoiron/sqlx"
)

// PostgresDialect, Dialect arayüzünü PostgreSQL için implemente eder.
// Tanımlayıcılar çift tırnakla sarılır, yer tutucular $1, $2 biçimindedir.
type PostgresDialect struct {
	BaseDialect
}

// Postgres, yeni bir PostgreSQL dialect örneği oluşturur.
func Postgres() *PostgresDialect {
	return &PostgresDialect{
		BaseDialect: BaseDialect{
			name:       "postgres",
			quote:      `"`,
			dateFormat: "2006-01-02 15:04:05",
			escapeStr:  standardEscaper.Replace,
		},
	}
}

// Limit, "LIMIT n OFFSET o" biçiminde cümle üretir.
func (d *PostgresDialect) Limit(limit, offset int) string {
	return limitOffset(limit, offset, "ALL")
}

// Begin, PostgreSQL transaction başlatma komutunu döndürür.
func (d *PostgresDialect) Begin() string {
	return "BEGIN"
}

// Bindvar, PostgreSQL'in $n yer tutucusunu kullandığını bildirir.
func (d *PostgresDialect) Bindvar() int {
	return sqlx.DOLLAR
}

// limitOffset, standart LIMIT/OFFSET sözdizimini üretir. Yalnızca offset
// verildiğinde limit yerine unlimited yazılır.
func limitOffset(limit, offset int, unlimited string) string {
	if limit <= 0 && offset <= 0 {
		return ""
	}

	count := unlimited
	if limit > 0 {
		count = strconv.Itoa(limit)
	}

	clause := " LIMIT " + count
	if offset > 0 {
		clause += " OFFSET " + strconv.Itoa(offset)
	}
	return clause
}
