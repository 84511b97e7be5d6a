package fluentdb

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/biyonik/go-fluent-db/dialect"
	"github.com/biyonik/go-fluent-db/shape"
)

// selectable, satır döndüren builder'ların (Query, SelectBuilder) fetch
// metodlarını taşır. compile o anki durumdan şablonu üretir; first varsa
// FetchFirst ve FetchValue için tek satırlık şablonu üretir.
type selectable struct {
	statement
	compile  func() (string, error)
	first    func() (string, error)
	cacheTTL time.Duration
}

// FetchSet, sonuç kümesini kolon sırası korunmuş ham haliyle döndürür.
func (s *selectable) FetchSet(ctx context.Context, params ...Params) (*shape.Set, error) {
	return s.run(ctx, s.compile, params)
}

// FetchArray, bütün satırları map listesi olarak döndürür.
func (s *selectable) FetchArray(ctx context.Context, params ...Params) ([]Row, error) {
	set, err := s.run(ctx, s.compile, params)
	if err != nil {
		return nil, err
	}
	return set.Rows(), nil
}

// FetchFirst, ilk satırı döndürür. Sonuç boşsa nil, nil döner.
func (s *selectable) FetchFirst(ctx context.Context, params ...Params) (Row, error) {
	set, err := s.run(ctx, s.firstCompiler(), params)
	if err != nil {
		return nil, err
	}
	return set.First(), nil
}

// FetchLists, satırları kolon sırasıyla değer listeleri olarak döndürür.
func (s *selectable) FetchLists(ctx context.Context, params ...Params) ([][]any, error) {
	set, err := s.run(ctx, s.compile, params)
	if err != nil {
		return nil, err
	}
	return set.Lists(), nil
}

// FetchArrayByKey, satırları key alanının değerine göre indeksler.
// key seçilen kolonlarda yoksa bütün satırlar "" anahtarında üst üste yazılır.
func (s *selectable) FetchArrayByKey(ctx context.Context, key string, params ...Params) (map[string]Row, error) {
	set, err := s.run(ctx, s.compile, params)
	if err != nil {
		return nil, err
	}
	return set.ByKey(key), nil
}

// FetchBy, FetchArrayByKey'in kısa adıdır.
func (s *selectable) FetchBy(ctx context.Context, key string, params ...Params) (map[string]Row, error) {
	return s.FetchArrayByKey(ctx, key, params...)
}

// FetchKeyValue, birinci kolonu anahtar, ikinci kolonu değer yapar.
func (s *selectable) FetchKeyValue(ctx context.Context, params ...Params) (map[string]any, error) {
	set, err := s.run(ctx, s.compile, params)
	if err != nil {
		return nil, err
	}
	return set.KeyValue(), nil
}

// FetchArrayOf, tek bir kolonun değerlerini satır sırasıyla döndürür.
func (s *selectable) FetchArrayOf(ctx context.Context, field string, params ...Params) ([]any, error) {
	set, err := s.run(ctx, s.compile, params)
	if err != nil {
		return nil, err
	}
	return set.ArrayOf(field), nil
}

// FetchByGroup, satırları key alanına göre gruplar.
func (s *selectable) FetchByGroup(ctx context.Context, key string, params ...Params) (map[string][]Row, error) {
	set, err := s.run(ctx, s.compile, params)
	if err != nil {
		return nil, err
	}
	return set.ByGroup(key), nil
}

// FetchValue, ilk satırın ilk kolonunu döndürür. Sonuç boşsa nil, nil döner.
func (s *selectable) FetchValue(ctx context.Context, params ...Params) (any, error) {
	set, err := s.run(ctx, s.firstCompiler(), params)
	if err != nil {
		return nil, err
	}
	return set.Value(), nil
}

// FetchInto, sonucu dest'e tarar. dest bir struct, struct slice'ı veya tek
// kolonluk skaler slice'ı gösteren pointer olmalıdır. Önbellek kullanılmaz.
func (s *selectable) FetchInto(ctx context.Context, dest any, params ...Params) error {
	template, err := s.compile()
	if err != nil {
		return err
	}
	query, args, err := s.resolve(template, params)
	if err != nil {
		return err
	}
	return s.db.rows(ctx, "query", query, args, func(rows *sql.Rows) error {
		return s.db.scanner.ScanRows(rows, dest)
	})
}

// Count, sorgunun döndüreceği satır sayısını COUNT(*) alt sorgusuyla hesaplar.
func (s *selectable) Count(ctx context.Context, params ...Params) (int64, error) {
	countSQL := func() (string, error) {
		template, err := s.compile()
		if err != nil {
			return "", err
		}
		return dialect.CompileCount(s.db.dialect, template), nil
	}

	set, err := s.run(ctx, countSQL, params)
	if err != nil {
		return 0, err
	}
	return toInt64(set.Value())
}

// ToSQL, şablonu çözülmüş SQL'e ve sürücü argümanlarına çevirir.
func (s *selectable) ToSQL() (string, []any, error) {
	template, err := s.compile()
	if err != nil {
		return "", nil, err
	}
	return s.resolve(template, nil)
}

func (s *selectable) firstCompiler() func() (string, error) {
	if s.first != nil {
		return s.first
	}
	return s.compile
}

// run, şablonu derler, parametreleri çözer, önbelleğe bakar ve sorguyu çalıştırır.
func (s *selectable) run(ctx context.Context, compile func() (string, error), params []Params) (*shape.Set, error) {
	template, err := compile()
	if err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}

	query, args, err := s.resolve(template, params)
	if err != nil {
		return nil, err
	}

	if s.cacheTTL > 0 && s.db.cache != nil {
		return s.db.cached(ctx, query, args, s.cacheTTL)
	}
	return s.db.fetch(ctx, query, args)
}

// toInt64, COUNT sonucunu sürücüden bağımsız olarak int64'e çevirir.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	default:
		return 0, fmt.Errorf("fluentdb: unexpected count type %T", v)
	}
}
