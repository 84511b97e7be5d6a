package fluentdb

import (
	"go.uber.org/zap"

	"github.com/biyonik/go-fluent-db/cache"
	"github.com/biyonik/go-fluent-db/dialect"
)

// -----------------------------------------------------------------------------
//  DB yapılandırma seçenekleri.
//
//  Her With* fonksiyonu NewDB, Connect, Open veya New çağrısına eklenebilir:
//
//	db := fluentdb.NewDB(sqlDB,
//	    fluentdb.WithDialect(dialect.Postgres()),
//	    fluentdb.WithBackend(fluentdb.BackendLiteral),
//	    fluentdb.WithLogger(logger),
//	)
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// Option, bir *DB örneği üzerinde çalışan yapılandırma fonksiyonudur.
type Option func(*DB)

// WithDialect, tırnaklama, kaçışlama ve LIMIT sözdizimini belirleyen dialect'i
// değiştirir. Varsayılan, sürücü adından türetilir (Connect) veya MySQL'dir.
func WithDialect(d dialect.Dialect) Option {
	return func(db *DB) {
		if d != nil {
			db.dialect = d
		}
	}
}

// WithBackend, yer tutucu çözümleme stratejisini seçer.
// Varsayılan BackendBound'dur.
func WithBackend(b Backend) Option {
	return func(db *DB) {
		if b != nil {
			db.backend = b
		}
	}
}

// WithScanner, FetchInto tarafından kullanılan struct tarayıcısını değiştirir.
func WithScanner(s Scanner) Option {
	return func(db *DB) {
		if s != nil {
			db.scanner = s
		}
	}
}

// WithDebug, debug modunu açar. Debug açıkken her sorgu; metni,
// argümanları ve süresiyle birlikte Debug seviyesinde loglanır.
func WithDebug(enabled bool) Option {
	return func(db *DB) {
		db.debug = enabled
	}
}

// WithLogger, zap logger'ı ayarlar. nil verilirse sessiz logger kullanılır.
// SQL hataları her zaman Warn seviyesinde yazılır.
func WithLogger(logger *zap.Logger) Option {
	return func(db *DB) {
		if logger == nil {
			logger = zap.NewNop()
		}
		db.logger = logger
	}
}

// WithTablePrefix, builder'lara verilen bütün tablo adlarına önek ekler.
//
//	db := fluentdb.NewDB(sqlDB, fluentdb.WithTablePrefix("app_"))
//	// db.Select().From("users")  ->  FROM `app_users`
func WithTablePrefix(prefix string) Option {
	return func(db *DB) {
		db.prefix = prefix
	}
}

// WithCache, SelectBuilder.Cache ile işaretlenen sorguların sonuçlarını
// saklayacak önbelleği ayarlar.
func WithCache(store cache.Store) Option {
	return func(db *DB) {
		db.cache = store
	}
}

// applyOptions, verilen Option'ları sırayla uygular; nil olanlar atlanır.
func applyOptions(db *DB, opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(db)
		}
	}
}
