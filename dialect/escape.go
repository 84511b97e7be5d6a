package dialect

import (
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Escape, bir Go değerini SQL literal'ine çevirir.
//
// Kurallar:
//   - nil ve nil pointer -> NULL
//   - slice / array ([]byte hariç) -> "(a, b, c)", elemanlar ayrı ayrı kaçışlanır
//   - bool -> 1 / 0
//   - tamsayı ve ondalık tipler -> tırnaksız sayı
//   - time.Time -> tırnaklı "2006-01-02 15:04:05"
//   - driver.Valuer -> Value() sonucu kaçışlanır
//   - string ve []byte -> tırnaklı, dialect kurallarına göre kaçışlanmış metin
func (d *BaseDialect) Escape(v any) (string, error) {
	if v == nil {
		return "NULL", nil
	}

	switch val := v.(type) {
	case string:
		return d.quoteString(val)
	case []byte:
		return d.quoteString(string(val))
	case bool:
		if val {
			return "1", nil
		}
		return "0", nil
	case time.Time:
		return d.quoteString(val.Format(d.DateFormat()))
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "NULL", nil
		}
		if valuer, ok := v.(driver.Valuer); ok {
			return d.escapeValuer(valuer)
		}
		return d.Escape(rv.Elem().Interface())
	}

	if valuer, ok := v.(driver.Valuer); ok {
		return d.escapeValuer(valuer)
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("%w: %v", ErrUnsupportedValue, f)
		}
		bits := 64
		if rv.Kind() == reflect.Float32 {
			bits = 32
		}
		return strconv.FormatFloat(f, 'g', -1, bits), nil
	case reflect.String:
		return d.quoteString(rv.String())
	case reflect.Bool:
		if rv.Bool() {
			return "1", nil
		}
		return "0", nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return d.quoteString(string(rv.Bytes()))
		}
		return d.escapeList(rv)
	}

	return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

func (d *BaseDialect) escapeValuer(valuer driver.Valuer) (string, error) {
	value, err := valuer.Value()
	if err != nil {
		return "", err
	}
	if _, again := value.(driver.Valuer); again {
		return "", fmt.Errorf("%w: nested driver.Valuer %T", ErrUnsupportedValue, value)
	}
	return d.Escape(value)
}

func (d *BaseDialect) escapeList(rv reflect.Value) (string, error) {
	if rv.Len() == 0 {
		return "", ErrEmptyList
	}

	parts := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		s, err := d.Escape(rv.Index(i).Interface())
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}

// quoteString, metni tek tırnakla sarar. NUL karakteri kaçışlanamayan
// dialect'lerde literal'i böleceği için hata döner.
func (d *BaseDialect) quoteString(s string) (string, error) {
	if !d.escapesNUL && strings.IndexByte(s, 0) >= 0 {
		return "", fmt.Errorf("%w: NUL byte in %s string literal", ErrUnsupportedValue, d.name)
	}
	return "'" + d.escapeStr(s) + "'", nil
}

// standardEscaper, SQL standardına uygun olarak yalnızca tek tırnağı ikiler.
// PostgreSQL (standard_conforming_strings=on) ve SQLite bu kuralı kullanır.
var standardEscaper = strings.NewReplacer("'", "''")
