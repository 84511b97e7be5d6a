// Package dialect, desteklenen veritabanları (MySQL, PostgreSQL, SQLite) için
// tanımlayıcı tırnaklama, değer kaçışlama ve SQL şablonu derleme kurallarını sağlar.
//
// Derleyiciler (CompileSelect, CompileInsert, ...) değer üretmez; yalnızca yer
// tutucu içeren bir şablon üretir. Yer tutucuların çözümlenmesi ana paketteki
// backend katmanının işidir.
//
// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com
package dialect

import (
	"strings"

	"github.com/biyonik/go-fluent-db/internal/validation"
)

// ----------------------------------------------------------------------------
// Dialect Interface
// ----------------------------------------------------------------------------

// Dialect, bir veritabanı motorunun SQL metni üzerindeki farklılıklarını soyutlar.
type Dialect interface {
	// Name, dialect'in kimliğini döndürür ("mysql", "postgres", "sqlite").
	Name() string

	// QuoteIdent, tek parçalı bir tanımlayıcıyı koşulsuz tırnaklar.
	QuoteIdent(name string) string

	// QuoteField, kolon ifadesini tırnaklar. Fonksiyon çağrıları ve
	// aritmetik ifadeler olduğu gibi bırakılır, alias her zaman tırnaklanır.
	QuoteField(field string) string

	// QuoteTable, tablo adını ve varsa alias'ını tırnaklar.
	QuoteTable(table string) string

	// Escape, bir Go değerini SQL metnine gömülebilecek bir literal'e çevirir.
	Escape(v any) (string, error)

	// Limit, LIMIT/OFFSET cümlesini baştaki boşlukla birlikte döndürür.
	// İkisi de sıfırsa boş string döner.
	Limit(limit, offset int) string

	// Begin, bağlantı üzerinde transaction başlatan komutu döndürür.
	Begin() string

	// Bindvar, sqlx bindvar tipini döndürür (sqlx.QUESTION, sqlx.DOLLAR).
	Bindvar() int

	// DateFormat, time.Time değerlerinin literal formatını döndürür.
	DateFormat() string
}

// ----------------------------------------------------------------------------
// Base Dialect (ortak fonksiyonlar)
// ----------------------------------------------------------------------------

// BaseDialect, tüm dialect implementasyonları için ortak fonksiyonellik sağlar.
// Tırnak karakteri ve string kaçışlama fonksiyonu her dialect tarafından doldurulur.
type BaseDialect struct {
	name       string
	quote      string
	dateFormat string
	escapeStr  func(string) string
	escapesNUL bool
}

// Name, dialect'in adını döndürür.
func (d *BaseDialect) Name() string {
	return d.name
}

// DateFormat, dialect'in tarih formatını döndürür.
// Format belirtilmemişse varsayılan "2006-01-02 15:04:05" kullanılır.
func (d *BaseDialect) DateFormat() string {
	if d.dateFormat == "" {
		return "2006-01-02 15:04:05"
	}
	return d.dateFormat
}

// QuoteIdent, adı tırnak karakteriyle sarar; içerdeki tırnaklar ikilenir.
func (d *BaseDialect) QuoteIdent(name string) string {
	return d.quote + strings.ReplaceAll(name, d.quote, d.quote+d.quote) + d.quote
}

// QuoteField, kolon ifadesini tırnaklar.
//
// Örnek (MySQL):
//
//	"users.name"          -> "`users`.`name`"
//	"u.*"                 -> "`u`.*"
//	"COUNT(*) AS total"   -> "COUNT(*) AS `total`"
//	"`already` quoted"    -> değişmeden
func (d *BaseDialect) QuoteField(field string) string {
	if strings.Contains(field, d.quote) {
		return field
	}

	expr, alias := validation.SplitAlias(field)
	if validation.IsFieldReference(expr) {
		expr = d.quoteParts(expr)
	}

	if alias != "" {
		return expr + " AS " + d.QuoteIdent(alias)
	}
	return expr
}

// QuoteTable, "tablo", "tablo alias" ve "tablo AS alias" biçimlerini tırnaklar.
//
// Örnek (MySQL): "users u" -> "`users` `u`"
func (d *BaseDialect) QuoteTable(table string) string {
	if strings.Contains(table, d.quote) {
		return table
	}

	name, alias := validation.SplitTableAlias(table)
	if validation.IsTableReference(name) {
		name = d.quoteParts(name)
	}

	if alias != "" {
		return name + " " + d.QuoteIdent(alias)
	}
	return name
}

func (d *BaseDialect) quoteParts(ref string) string {
	parts := strings.Split(ref, ".")
	for i, part := range parts {
		if part != "*" {
			parts[i] = d.QuoteIdent(part)
		}
	}
	return strings.Join(parts, ".")
}

// ----------------------------------------------------------------------------
// Registry
// ----------------------------------------------------------------------------

// ByName, sürücü veya dialect adından ilgili dialect'i döndürür.
// "pgx" ve "sqlite3" gibi sürücü adları da kabul edilir.
func ByName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mysql", "mariadb":
		return MySQL(), nil
	case "postgres", "postgresql", "pgx":
		return Postgres(), nil
	case "sqlite", "sqlite3":
		return SQLite(), nil
	default:
		return nil, &DialectError{Message: "unknown dialect '" + name + "'"}
	}
}

// ----------------------------------------------------------------------------
// Sentinel Errors (dialect-specific)
// ----------------------------------------------------------------------------

// Dialect implementasyonları için ortak hatalar.
// Ana paket ile import döngüsünü önlemek için burada tanımlanmıştır.
var (
	ErrNoTable          = &DialectError{Message: "no table specified"}
	ErrNoColumns        = &DialectError{Message: "no columns specified"}
	ErrEmptyList        = &DialectError{Message: "cannot escape an empty list"}
	ErrUnsupportedValue = &DialectError{Message: "unsupported value type"}
	ErrInconsistentRows = &DialectError{Message: "inconsistent columns in rows"}
)

// DialectError, dialect'e özgü hataları temsil eder.
type DialectError struct {
	Message string
}

// Error, hatayı string olarak döndürür.
func (e *DialectError) Error() string {
	return "dialect: " + e.Message
}
