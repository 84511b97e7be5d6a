package fluentdb

import (
	"database/sql"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/iancoleman/strcase"
)

//
// =====================================================================================
// SCANNER
// -------------------------------------------------------------------------------------
// FetchInto sonuçlarını Go değerlerine aktaran tarayıcı.
//
//   1. Struct alanları reflection ile taranır
//   2. `db:"kolon"` tag'i varsa o ad, yoksa alan adının snake_case hali kullanılır
//   3. Tip bilgisi sync.Map içinde saklanır, aynı tip tekrar taranmaz
//
// Desteklenen hedefler:
//   *[]T, *[]*T  → her satır bir struct
//   *[]V         → V skaler ise ilk kolonun değerleri
//   *T           → ilk satır (yoksa ErrNoRows)
//   *V           → ilk satırın ilk kolonu (yoksa ErrNoRows)
//
// @author    Ahmet ALTUN
// @github    github.com/biyonik
// @linkedin  linkedin.com/in/biyonik
// @email     ahmet.altun60@gmail.com
// =====================================================================================
//

// Scanner, sorgu satırlarını dest'e aktaran sözleşmedir. rows'u kapatmak
// çağıranın sorumluluğudur.
type Scanner interface {
	ScanRows(rows *sql.Rows, dest any) error
}

// DefaultScanner, tag tabanlı varsayılan tarayıcıdır.
type DefaultScanner struct {
	cache sync.Map // reflect.Type -> *structInfo
}

// NewDefaultScanner, varsayılan tarayıcıyı oluşturur.
func NewDefaultScanner() *DefaultScanner {
	return &DefaultScanner{}
}

type structInfo struct {
	fields  []fieldInfo
	columns map[string]int
}

type fieldInfo struct {
	index []int
	name  string
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
)

// ScanRows, dest'in türüne göre satırları okur.
func (s *DefaultScanner) ScanRows(rows *sql.Rows, dest any) error {
	if dest == nil {
		return ErrNilDestination
	}
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer {
		return ErrInvalidDestination
	}
	if v.IsNil() {
		return ErrNilDestination
	}

	target := v.Elem()
	if target.Kind() == reflect.Slice && target.Type().Elem().Kind() != reflect.Uint8 {
		return s.scanSlice(rows, target)
	}
	return s.scanOne(rows, target)
}

func (s *DefaultScanner) scanSlice(rows *sql.Rows, slice reflect.Value) error {
	elemType := slice.Type().Elem()
	isPtr := elemType.Kind() == reflect.Pointer
	base := elemType
	if isPtr {
		base = elemType.Elem()
	}

	columns, err := rows.Columns()
	if err != nil {
		return WrapError("get columns", err)
	}

	for rows.Next() {
		elem := reflect.New(base)
		var dests []any
		if isStruct(base) {
			dests = s.structDests(elem.Elem(), columns)
		} else {
			dests = scalarDests(elem, len(columns))
		}
		if err := rows.Scan(dests...); err != nil {
			return WrapError("scan row", err)
		}

		if isPtr {
			slice.Set(reflect.Append(slice, elem))
		} else {
			slice.Set(reflect.Append(slice, elem.Elem()))
		}
	}

	if err := rows.Err(); err != nil {
		return WrapError("rows iteration", err)
	}
	return nil
}

func (s *DefaultScanner) scanOne(rows *sql.Rows, target reflect.Value) error {
	columns, err := rows.Columns()
	if err != nil {
		return WrapError("get columns", err)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return WrapError("rows iteration", err)
		}
		return ErrNoRows
	}

	var dests []any
	if isStruct(target.Type()) {
		dests = s.structDests(target, columns)
	} else {
		dests = scalarDests(target.Addr(), len(columns))
	}
	if err := rows.Scan(dests...); err != nil {
		return WrapError("scan row", err)
	}
	return nil
}

// structDests, kolonları struct alanlarına eşler; karşılığı olmayan kolonlar atlanır.
func (s *DefaultScanner) structDests(elem reflect.Value, columns []string) []any {
	info := s.structInfo(elem.Type())
	dests := make([]any, len(columns))
	for i, col := range columns {
		idx, ok := info.columns[strings.ToLower(col)]
		if !ok {
			dests[i] = new(any)
			continue
		}
		dests[i] = fieldByIndex(elem, info.fields[idx].index).Addr().Interface()
	}
	return dests
}

func scalarDests(ptr reflect.Value, n int) []any {
	if n == 0 {
		return nil
	}
	dests := make([]any, n)
	dests[0] = ptr.Interface()
	for i := 1; i < n; i++ {
		dests[i] = new(any)
	}
	return dests
}

// isStruct, satır olarak doldurulacak struct tiplerini ayırır. time.Time ve
// sql.Scanner uygulayan tipler tek kolon değeri sayılır.
func isStruct(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || t == timeType {
		return false
	}
	return !reflect.PointerTo(t).Implements(scannerType)
}

// fieldByIndex, gömülü nil pointer'ları ayırarak alana ulaşır.
func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}

func (s *DefaultScanner) structInfo(t reflect.Type) *structInfo {
	if cached, ok := s.cache.Load(t); ok {
		return cached.(*structInfo)
	}

	info := &structInfo{columns: make(map[string]int)}
	parseStruct(t, nil, info)
	actual, _ := s.cache.LoadOrStore(t, info)
	return actual.(*structInfo)
}

func parseStruct(t reflect.Type, index []int, info *structInfo) {
	for i := range t.NumField() {
		field := t.Field(i)
		fieldIndex := append(append([]int{}, index...), i)

		tag := field.Tag.Get("db")
		if tag == "-" {
			continue
		}

		if field.Anonymous && tag == "" {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if isStruct(ft) {
				parseStruct(ft, fieldIndex, info)
				continue
			}
		}

		if !field.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = strcase.ToSnake(field.Name)
		}
		name = strings.ToLower(name)

		// Dış struct'taki alan gömülü olanı ezer.
		if _, exists := info.columns[name]; exists && len(fieldIndex) > 1 {
			continue
		}

		info.columns[name] = len(info.fields)
		info.fields = append(info.fields, fieldInfo{index: fieldIndex, name: name})
	}
}
