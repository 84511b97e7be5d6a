package fluentdb

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" sürücüsü

	"github.com/biyonik/go-fluent-db/dialect"
	"github.com/biyonik/go-fluent-db/internal/validation"
)

// Version, go-fluent-db kütüphanesinin mevcut sürümünü belirtir.
const Version = "0.2.0"

// Connect, verilen sürücü ve DSN ile bir DB oluşturur. Bağlantı ilk sorguda
// alınır; hemen doğrulamak için Ping kullanın. Dialect sürücü adından
// türetilir, WithDialect ile değiştirilebilir.
//
// Örnek:
//
//	db, err := fluentdb.Connect("mysql", "user:pass@tcp(localhost:3306)/dbname")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
func Connect(driverName, dataSourceName string, opts ...Option) (*DB, error) {
	d, err := dialect.ByName(driverName)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, WrapError("connect", err)
	}
	// Tek bağlantı modeli; havuzda fazladan boşta bağlantı tutulmaz.
	sqlDB.SetMaxIdleConns(1)

	return NewDB(sqlDB, append([]Option{WithDialect(d)}, opts...)...), nil
}

// Open, Config'ten DSN, dialect, backend, önek ve debug ayarlarını okuyarak
// bir DB oluşturur. opts, Config'ten gelen ayarları ezer.
//
// Örnek:
//
//	cfg, _ := fluentdb.LoadConfig("database.yaml")
//	db, err := fluentdb.Open(cfg, fluentdb.WithLogger(logger))
func Open(cfg *Config, opts ...Option) (*DB, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	backend, err := BackendByName(cfg.Backend)
	if err != nil {
		return nil, err
	}

	if cfg.Prefix != "" {
		if err := validation.ValidateIdentifier(cfg.Prefix); err != nil {
			return nil, NewValidationError(cfg.Prefix, "table prefix", err.Error())
		}
	}

	base := []Option{
		WithBackend(backend),
		WithTablePrefix(cfg.Prefix),
		WithDebug(cfg.Debug),
	}
	return Connect(cfg.DriverName(), dsn, append(base, opts...)...)
}

// New, bağlantısı olmayan bir DB döndürür. Builder'lar SQL üretebilir
// (SQL, ToSQL) ancak çalıştırma ErrNoConnection döner.
//
// Örnek:
//
//	query, args, err := fluentdb.New().
//	    Select("id", "name").
//	    From("users").
//	    WhereEquals("status", "active").
//	    ToSQL()
func New(opts ...Option) *DB {
	return NewDB(nil, opts...)
}
