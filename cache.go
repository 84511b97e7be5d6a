package fluentdb

import (
	"bytes"
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/biyonik/go-fluent-db/shape"
)

// cacheKey, çözülmüş SQL ve argümanlardan önbellek anahtarı üretir.
// Argümanlar sürücüye gidecek değerlerine çevrilerek hash'lenir; pointer
// adresleri değil gösterdikleri değer anahtara girer.
func cacheKey(query string, args []any) string {
	h := xxhash.New()
	_, _ = h.WriteString(query)
	for _, arg := range args {
		if v, err := driver.DefaultParameterConverter.ConvertValue(arg); err == nil {
			arg = v
		}
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(fmt.Sprintf("%T:%v", arg, arg))
	}
	return "q:" + strconv.FormatUint(h.Sum64(), 16)
}

// cached, sonuç kümesini önce önbellekte arar, yoksa sorguyu çalıştırıp
// JSON olarak saklar. Önbellek hataları loglanır, sorguyu durdurmaz.
//
// JSON gidiş dönüşü nedeniyle önbellekten gelen sayılar int64 veya float64,
// zaman değerleri ise string olarak döner.
func (d *DB) cached(ctx context.Context, query string, args []any, ttl time.Duration) (*shape.Set, error) {
	key := cacheKey(query, args)

	data, ok, err := d.cache.Get(ctx, key)
	if err != nil {
		d.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		set, err := decodeSet(data)
		if err == nil {
			if d.debug {
				d.logger.Debug("cache hit", zap.String("key", key), zap.String("sql", query))
			}
			return set, nil
		}
		d.logger.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
	}

	set, err := d.fetch(ctx, query, args)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(set)
	if err != nil {
		d.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return set, nil
	}
	if err := d.cache.Set(ctx, key, data, ttl); err != nil {
		d.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return set, nil
}

func decodeSet(data []byte) (*shape.Set, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var set shape.Set
	if err := dec.Decode(&set); err != nil {
		return nil, err
	}

	for _, values := range set.Values {
		for i, v := range values {
			if n, ok := v.(json.Number); ok {
				values[i] = numberValue(n)
			}
		}
	}
	return &set, nil
}

func numberValue(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
