package dialect

import (
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

/*
 * ----------------------------------------------------------------------------
 * MYSQL DIALECT
 * ----------------------------------------------------------------------------
 *
 * MySQL/MariaDB tanımlayıcıları backtick (`) ile tırnaklar, string literal'leri
 * mysql_real_escape_string ile aynı karakter kümesini ters bölü ile kaçışlayarak
 * üretir ve "LIMIT offset, count" sözdizimini kullanır.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// mysqlMaxRows, yalnızca OFFSET verildiğinde LIMIT yerine kullanılan değerdir.
// MySQL "LIMIT offset" tek başına kabul etmez.
const mysqlMaxRows = "18446744073709551615"

// mysqlEscaper, \0 \n \r \ ' " ve Ctrl+Z karakterlerini kaçışlar.
var mysqlEscaper = strings.NewReplacer(
	"\x00", `\0`,
	"\n", `\n`,
	"\r", `\r`,
	`\`, `\\`,
	"'", `\'`,
	`"`, `\"`,
	"\x1a", `\Z`,
)

// MySQLDialect, Dialect arayüzünü MySQL ve MariaDB için implemente eder.
type MySQLDialect struct {
	BaseDialect
}

// MySQL, yeni bir MySQL dialect örneği oluşturur.
func MySQL() *MySQLDialect {
	return &MySQLDialect{
		BaseDialect: BaseDialect{
			name:       "mysql",
			quote:      "`",
			dateFormat: "2006-01-02 15:04:05",
			escapeStr:  mysqlEscaper.Replace,
			escapesNUL: true,
		},
	}
}

// Limit, "LIMIT offset, count" biçiminde cümle üretir.
//
// Örnek: Limit(10, 5) -> " LIMIT 5, 10"
func (d *MySQLDialect) Limit(limit, offset int) string {
	if limit <= 0 && offset <= 0 {
		return ""
	}
	if offset < 0 {
		offset = 0
	}

	count := mysqlMaxRows
	if limit > 0 {
		count = strconv.Itoa(limit)
	}
	return " LIMIT " + strconv.Itoa(offset) + ", " + count
}

// Begin, MySQL transaction başlatma komutunu döndürür.
func (d *MySQLDialect) Begin() string {
	return "START TRANSACTION"
}

// Bindvar, MySQL'in soru işareti (?) yer tutucusunu kullandığını bildirir.
func (d *MySQLDialect) Bindvar() int {
	return sqlx.QUESTION
}
