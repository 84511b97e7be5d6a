package fluentdb

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/biyonik/go-fluent-db/internal/validation"
)

// statement, bütün builder'ların ortak durumudur: bağlı DB, parametre
// haritası, token sayacı ve zincir boyunca biriken ilk hata.
type statement struct {
	db     *DB
	params Params
	err    error
	seq    int
}

func (s *statement) bind(token string, value any) {
	if s.params == nil {
		s.params = make(Params)
	}
	s.params[token] = value
}

func (s *statement) bindAll(p Params) {
	for token, value := range p {
		s.bind(token, value)
	}
}

// token, builder içinde benzersiz bir yer tutucu üretir: ":<prefix>_<alan>_<n>".
// Sayaç builder başına artar, aynı alan için iki çağrı çakışmaz.
func (s *statement) token(prefix, field string) string {
	s.seq++
	return ":" + prefix + "_" + validation.SanitizeName(field) + "_" + strconv.Itoa(s.seq)
}

func (s *statement) setErr(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

// Err, zincir boyunca biriken ilk hatayı döndürür.
func (s *statement) Err() error {
	return s.err
}

// Params, builder'a bağlanmış parametrelerin kopyasını döndürür.
func (s *statement) Params() Params {
	return mergeParams(s.params)
}

// resolve, şablonu builder parametreleri ve tek seferlik parametrelerle
// backend üzerinden çözer. Tek seferlik parametreler builder'a yazılmaz.
func (s *statement) resolve(template string, extra []Params) (string, []any, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	params := s.params
	if len(extra) > 0 {
		params = mergeParams(s.params, extra...)
	}
	return s.db.backend.Resolve(s.db.dialect, template, params)
}

// execute, şablonu çözer ve satır döndürmeyen komut olarak çalıştırır.
func (s *statement) execute(ctx context.Context, op string, template string, extra []Params) (*QueryResult, error) {
	query, args, err := s.resolve(template, extra)
	if err != nil {
		return nil, err
	}
	result, err := s.db.exec(ctx, op, query, args)
	if err != nil {
		return nil, err
	}
	return NewQueryResult(result), nil
}

// ----------------------------------------------------------------------------
// Conditions
// ----------------------------------------------------------------------------

// equals, "alan = :token" koşulunu üretir. nil için "IS NULL", liste için
// "IN :token" yazılır; liste backend tarafından "(a, b)" olarak açılır.
func (s *statement) equals(field string, value any) string {
	quoted := s.db.dialect.QuoteField(field)
	switch {
	case value == nil:
		return quoted + " IS NULL"
	case isList(value):
		token := s.token("in", field)
		s.bind(token, value)
		return quoted + " IN " + token
	default:
		token := s.token("eq", field)
		s.bind(token, value)
		return quoted + " = " + token
	}
}

// equalsMap, haritanın her anahtarı için equals koşulu üretir; anahtarlar
// sıralanır ki üretilen SQL kararlı olsun.
func (s *statement) equalsMap(m map[string]any) []string {
	fields := make([]string, 0, len(m))
	for field := range m {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	conds := make([]string, len(fields))
	for i, field := range fields {
		conds[i] = s.equals(field, m[field])
	}
	return conds
}

func (s *statement) notEmpty(field string) string {
	return s.db.dialect.QuoteField(field) + " != ''"
}

// compare, beyaz listedeki bir operatörle koşul üretir. Geçersiz kullanım
// builder hatası olarak saklanır ve boş koşul döner.
func (s *statement) compare(field, op string, value any) string {
	normalized, err := validation.NormalizeOperator(op)
	if err != nil {
		s.setErr(fmt.Errorf("%w: %w", ErrInvalidOperator, err))
		return ""
	}

	quoted := s.db.dialect.QuoteField(field)
	switch {
	case validation.IsNullOperator(normalized) && value == nil:
		return quoted + " " + normalized + " NULL"
	case validation.IsListOperator(normalized) && !isList(value):
		s.setErr(fmt.Errorf("%w: %s requires a list value", ErrInvalidOperator, normalized))
		return ""
	}

	token := s.token("cmp", field)
	s.bind(token, value)
	return quoted + " " + normalized + " " + token
}

// appendConds, boş olmayan koşulları ekler.
func appendConds(dst []string, conds ...string) []string {
	for _, c := range conds {
		if c != "" {
			dst = append(dst, c)
		}
	}
	return dst
}
