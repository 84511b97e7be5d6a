// Package shape, sorgu sonucundan okunan düz satır dizisini farklı veri
// yapılarına dönüştüren saf fonksiyonları içerir: satır listesi, ilk satır,
// tek değer, anahtarlı map, anahtar/değer map'i ve gruplanmış map.
//
// Anahtar alanı seçilen kolonlarda yoksa dönüşüm hata vermez; anahtar boş
// string ("") olur.
//
// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com
package shape

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

// Row, kolon adından değere eşlenmiş tek bir sonuç satırıdır.
type Row = map[string]any

// Set, bir sonuç kümesinin kolon sırası korunmuş ham halidir.
// JSON ile serileştirilebilir; sonuç önbelleği bu biçimi saklar.
type Set struct {
	Columns []string `json:"columns"`
	Values  [][]any  `json:"values"`
}

// Len, satır sayısını döndürür.
func (s *Set) Len() int {
	return len(s.Values)
}

// Rows, Read'in okuyabildiği satır kaynağıdır; *sql.Rows ve *sqlx.Rows uyar.
type Rows interface {
	sqlx.ColScanner
	Next() bool
}

// Read, bir satır kaynağındaki bütün satırları okur.
// []byte değerler string'e çevrilir. Rows kapatılmaz; bu çağıranın işidir.
func Read(rows Rows) (*Set, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	set := &Set{Columns: columns, Values: make([][]any, 0)}
	for rows.Next() {
		values, err := sqlx.SliceScan(rows)
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		set.Values = append(set.Values, values)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

// row, i. satırı Row'a çevirir. Aynı isimli kolonlarda son kolon kazanır.
func (s *Set) row(i int) Row {
	r := make(Row, len(s.Columns))
	for j, col := range s.Columns {
		r[col] = s.Values[i][j]
	}
	return r
}

// Rows, bütün satırları map listesi olarak döndürür.
func (s *Set) Rows() []Row {
	out := make([]Row, len(s.Values))
	for i := range s.Values {
		out[i] = s.row(i)
	}
	return out
}

// Lists, bütün satırları kolon sırasıyla değer listesi olarak döndürür.
func (s *Set) Lists() [][]any {
	out := make([][]any, len(s.Values))
	for i, values := range s.Values {
		out[i] = append([]any(nil), values...)
	}
	return out
}

// First, ilk satırı döndürür. Küme boşsa nil döner.
func (s *Set) First() Row {
	if len(s.Values) == 0 {
		return nil
	}
	return s.row(0)
}

// Value, ilk satırın ilk kolonunu döndürür. Küme boşsa nil döner.
func (s *Set) Value() any {
	if len(s.Values) == 0 || len(s.Columns) == 0 {
		return nil
	}
	return s.Values[0][0]
}

// ByKey, satırları key alanının değerine göre indeksler.
// Aynı anahtara sahip satırlarda sonuncusu kazanır.
//
// Örnek: [{id:1,name:a},{id:2,name:b}] -> {"1":{id:1,name:a},"2":{id:2,name:b}}
func (s *Set) ByKey(key string) map[string]Row {
	idx := s.column(key)
	out := make(map[string]Row, len(s.Values))
	for i := range s.Values {
		out[s.keyAt(i, idx)] = s.row(i)
	}
	return out
}

// KeyValue, ilk kolonu anahtar, ikinci kolonu değer olarak kullanır.
// Tek kolonlu kümelerde değerler nil olur.
func (s *Set) KeyValue() map[string]any {
	out := make(map[string]any, len(s.Values))
	for i, values := range s.Values {
		var value any
		if len(values) > 1 {
			value = values[1]
		}
		out[s.keyAt(i, 0)] = value
	}
	return out
}

// ArrayOf, field kolonunun değerlerini satır sırasıyla döndürür.
// Kolon yoksa her eleman nil olur.
func (s *Set) ArrayOf(field string) []any {
	idx := s.column(field)
	out := make([]any, len(s.Values))
	for i, values := range s.Values {
		if idx >= 0 {
			out[i] = values[idx]
		}
	}
	return out
}

// ByGroup, satırları key alanının değerine göre gruplar; grup içi sıra korunur.
func (s *Set) ByGroup(key string) map[string][]Row {
	idx := s.column(key)
	out := make(map[string][]Row)
	for i := range s.Values {
		k := s.keyAt(i, idx)
		out[k] = append(out[k], s.row(i))
	}
	return out
}

// column, adı verilen kolonun indeksini döndürür. Tekrarlanan isimlerde
// Row ile tutarlı olması için son kolon seçilir.
func (s *Set) column(name string) int {
	for i := len(s.Columns) - 1; i >= 0; i-- {
		if s.Columns[i] == name {
			return i
		}
	}
	return -1
}

func (s *Set) keyAt(row, col int) string {
	if col < 0 || col >= len(s.Values[row]) {
		return ""
	}
	return Key(s.Values[row][col])
}

// Key, bir kolon değerini map anahtarına çevirir.
// nil -> "", true -> "1", false -> "0"; sayılar ondalık gösterimiyle yazılır.
func Key(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(val)
	}
}
