package fluentdb

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/biyonik/go-fluent-db/dialect"
	"github.com/biyonik/go-fluent-db/internal/validation"
)

// Backend, bir şablondaki yer tutucuların nasıl çözümleneceğini belirler.
//
// İki uygulama vardır ve birbirinin yerine geçmez:
//   - BackendLiteral: her token dialect'e göre kaçışlanmış literal ile
//     değiştirilir, sürücüye argüman gönderilmez.
//   - BackendBound: ":isim" token'ları gerçek bind parametrelerine
//     dönüştürülür ve değerler sürücüye ayrı gönderilir.
type Backend interface {
	Name() string
	Resolve(d dialect.Dialect, template string, params Params) (string, []any, error)
}

var (
	BackendLiteral Backend = literalBackend{}
	BackendBound   Backend = boundBackend{}
)

// BackendByName, "literal" veya "bound" adından backend döndürür.
// Boş ad BackendBound demektir.
func BackendByName(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bound", "pdo":
		return BackendBound, nil
	case "literal", "mysql":
		return BackendLiteral, nil
	default:
		return nil, fmt.Errorf("fluentdb: unknown backend %q", name)
	}
}

// ----------------------------------------------------------------------------
// Literal substitution
// ----------------------------------------------------------------------------

type literalBackend struct{}

func (literalBackend) Name() string { return "literal" }

// Resolve, bütün token'ları tek geçişte değiştirir. Uzun token'lar önce
// denendiği için ":id" token'ı ":id_2" içinde eşleşmez ve değiştirilen
// değerin içindeki metin yeniden taranmaz.
func (literalBackend) Resolve(d dialect.Dialect, template string, params Params) (string, []any, error) {
	if len(params) == 0 {
		return template, nil, nil
	}

	tokens := make([]string, 0, len(params))
	for token := range params {
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	pairs := make([]string, 0, len(tokens)*2)
	for _, token := range tokens {
		literal, err := d.Escape(params[token])
		if err != nil {
			return "", nil, fmt.Errorf("fluentdb: escape %s: %w", token, err)
		}
		pairs = append(pairs, token, literal)
	}

	return strings.NewReplacer(pairs...).Replace(template), nil, nil
}

// ----------------------------------------------------------------------------
// Bound parameters
// ----------------------------------------------------------------------------

type boundBackend struct{}

func (boundBackend) Name() string { return "bound" }

// Resolve, params içinde bulunan ":isim" token'larını dialect'in bindvar
// biçimine (? veya $n) çevirir ve değerleri sırasıyla args'a ekler. Liste
// değerleri "(?, ?, ?)" olarak açılır.
//
// Tırnak içindeki metin ('...', "...", `...`) ve yorumlar taranmaz; bu
// yüzden '10:00' gibi literal'ler veya Postgres "::" cast'leri olduğu gibi
// kalır. params'ta olmayan ":isim" dizileri de değiştirilmez.
func (boundBackend) Resolve(d dialect.Dialect, template string, params Params) (string, []any, error) {
	if len(params) == 0 {
		return template, nil, nil
	}

	tokens := make([]string, 0, len(params))
	for token, value := range params {
		if !validation.IsPlaceholderName(token) {
			return "", nil, fmt.Errorf("%w: %q (expected :name)", ErrInvalidPlaceholder, token)
		}
		if isList(value) && reflect.ValueOf(value).Len() == 0 {
			return "", nil, fmt.Errorf("fluentdb: bind %s: %w", token, ErrEmptyList)
		}
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	b := binder{bindType: d.Bindvar(), backslash: d.Name() == "mysql"}
	for i := 0; i < len(template); {
		c := template[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			i = b.copyQuoted(template, i)
		case c == '-' && strings.HasPrefix(template[i:], "--"):
			i = b.copyUntil(template, i, "\n")
		case c == '/' && strings.HasPrefix(template[i:], "/*"):
			i = b.copyUntil(template, i, "*/")
		case c == ':' && strings.HasPrefix(template[i:], "::"):
			b.sql.WriteString("::")
			i += 2
		case c == ':':
			token := matchToken(template[i:], tokens)
			if token == "" {
				b.sql.WriteByte(c)
				i++
				continue
			}
			b.bind(params[token])
			i += len(token)
		default:
			b.sql.WriteByte(c)
			i++
		}
	}

	return b.sql.String(), b.args, nil
}

// binder, Resolve'un çıktısını ve sıralı argümanlarını biriktirir.
type binder struct {
	sql       strings.Builder
	args      []any
	bindType  int
	backslash bool
}

func (b *binder) bind(value any) {
	if !isList(value) {
		b.placeholder(value)
		return
	}
	rv := reflect.ValueOf(value)
	b.sql.WriteByte('(')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			b.sql.WriteString(", ")
		}
		b.placeholder(rv.Index(i).Interface())
	}
	b.sql.WriteByte(')')
}

func (b *binder) placeholder(value any) {
	b.args = append(b.args, value)
	n := strconv.Itoa(len(b.args))
	switch b.bindType {
	case sqlx.DOLLAR:
		b.sql.WriteString("$" + n)
	case sqlx.NAMED:
		b.sql.WriteString(":arg" + n)
	case sqlx.AT:
		b.sql.WriteString("@p" + n)
	default:
		b.sql.WriteByte('?')
	}
}

// copyQuoted, i'deki tırnakla başlayan bölümü kapanış tırnağına kadar
// olduğu gibi yazar. İkilenmiş tırnak ('') bir kapanış ve yeni bir açılış
// olarak okunur, sonuç aynıdır.
func (b *binder) copyQuoted(s string, i int) int {
	quote := s[i]
	j := i + 1
	for j < len(s) && s[j] != quote {
		if b.backslash && s[j] == '\\' && quote != '`' {
			j++
		}
		j++
	}
	if j < len(s) {
		j++
	} else {
		j = len(s)
	}
	b.sql.WriteString(s[i:j])
	return j
}

// copyUntil, yorumu end dizisi dahil olmak üzere olduğu gibi yazar.
func (b *binder) copyUntil(s string, i int, end string) int {
	j := strings.Index(s[i+2:], end)
	if j < 0 {
		b.sql.WriteString(s[i:])
		return len(s)
	}
	j = i + 2 + j + len(end)
	b.sql.WriteString(s[i:j])
	return j
}

// matchToken, s'nin başındaki en uzun token'ı döndürür. Token'ın devamı bir
// isim karakteriyse (":id_2" içindeki ":id" gibi) eşleşme sayılmaz.
func matchToken(s string, tokens []string) string {
	for _, token := range tokens {
		if !strings.HasPrefix(s, token) {
			continue
		}
		if len(s) > len(token) && isNameByte(s[len(token)]) {
			continue
		}
		return token
	}
	return ""
}

// isList, değerin IN listesi olarak açılması gereken bir slice/array olup
// olmadığını döndürür. []byte ve driver.Valuer tek değerdir.
func isList(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(driver.Valuer); ok {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func isNameByte(c byte) bool {
	return c == '_' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
