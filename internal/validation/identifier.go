// Package validation, SQL metninde kullanılan tablo, kolon, alias ve yer tutucu
// isimlerini doğrulayan ve ayrıştıran dahili yardımcıları içerir.
//
// Dialect paketi bu fonksiyonlarla bir ifadenin tırnaklanabilir sade bir
// tanımlayıcı mı (örn. "users.id") yoksa olduğu gibi bırakılması gereken bir
// ifade mi (örn. "COUNT(*)") olduğuna karar verir.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
package validation

import (
	"regexp"
	"strings"
)

// identifierRegex, savepoint ve tablo öneki gibi katı tanımlayıcıları doğrular.
var identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// fieldRegex, tırnaklanabilecek kolon referanslarını eşler: "name", "t.name", "t.*".
// MySQL tırnaklı isimlerde tireye izin verdiği için tire de kabul edilir.
var fieldRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_\-]*(\.([a-zA-Z_][a-zA-Z0-9_\-]*|\*))?$`)

// tableRegex, "db.table" biçimine kadar tablo adlarını eşler.
var tableRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_\-]*(\.[a-zA-Z_][a-zA-Z0-9_\-]*)?$`)

// aliasRegex, "expr AS alias" biçimini büyük/küçük harf duyarsız ayırır.
var aliasRegex = regexp.MustCompile(`(?is)^(.*?)\s+AS\s+(\S+)$`)

// tableAliasRegex, "table alias" veya "table AS alias" biçimini ayırır.
var tableAliasRegex = regexp.MustCompile(`(?i)^(\S+)\s+(?:AS\s+)?(\S+)$`)

// placeholderRegex, bağlı parametre modunda kabul edilen ":isim" yer tutucularını eşler.
var placeholderRegex = regexp.MustCompile(`^:[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidateIdentifier, verilen identifier'ın geçerli bir SQL identifier olup olmadığını kontrol eder.
// Başarılıysa nil döner, geçersizse açıklayıcı bir hata döner.
func ValidateIdentifier(id string) error {
	if id == "" {
		return &IdentifierError{
			Identifier: id,
			Reason:     "identifier cannot be empty",
		}
	}

	if len(id) > 128 {
		return &IdentifierError{
			Identifier: id,
			Reason:     "identifier exceeds maximum length of 128 characters",
		}
	}

	if !identifierRegex.MatchString(id) {
		return &IdentifierError{
			Identifier: id,
			Reason:     "identifier contains invalid characters; only letters, numbers, underscores, and dots are allowed",
		}
	}

	return nil
}

// IsFieldReference, ifadenin tırnaklanabilir sade bir kolon referansı olup olmadığını döndürür.
func IsFieldReference(expr string) bool {
	return fieldRegex.MatchString(expr)
}

// IsTableReference, ifadenin tırnaklanabilir sade bir tablo adı olup olmadığını döndürür.
func IsTableReference(expr string) bool {
	return tableRegex.MatchString(expr)
}

// SplitAlias, "expr AS alias" ifadesini parçalarına ayırır. Alias yoksa boş döner.
func SplitAlias(field string) (expr, alias string) {
	field = strings.TrimSpace(field)
	if m := aliasRegex.FindStringSubmatch(field); m != nil {
		return strings.TrimSpace(m[1]), m[2]
	}
	return field, ""
}

// SplitTableAlias, "table alias" ve "table AS alias" biçimlerini ayırır.
func SplitTableAlias(table string) (name, alias string) {
	table = strings.TrimSpace(table)
	if m := tableAliasRegex.FindStringSubmatch(table); m != nil {
		return m[1], m[2]
	}
	return table, ""
}

// IsPlaceholderName, yer tutucunun sürücüye bağlanabilir ":isim" biçiminde olup olmadığını döndürür.
func IsPlaceholderName(token string) bool {
	return placeholderRegex.MatchString(token)
}

// SanitizeName, bir alan adını yer tutucu içinde kullanılabilecek hale getirir.
// Harf, rakam ve alt çizgi dışındaki her karakter alt çizgiye çevrilir.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

// IdentifierError, identifier doğrulama hatalarını temsil eder.
type IdentifierError struct {
	Identifier string
	Reason     string
}

// Error, error arayüzünü uygular.
func (e *IdentifierError) Error() string {
	if e.Identifier == "" {
		return "fluentdb: invalid identifier: " + e.Reason
	}
	return "fluentdb: invalid identifier '" + e.Identifier + "': " + e.Reason
}
