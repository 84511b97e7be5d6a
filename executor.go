package fluentdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/biyonik/go-fluent-db/cache"
	"github.com/biyonik/go-fluent-db/dialect"
	"github.com/biyonik/go-fluent-db/internal/validation"
	"github.com/biyonik/go-fluent-db/shape"
)

/*
=======================================================================================================================
  DB, bir *sql.DB üzerinde tek bir bağlantı (*sql.Conn) tutan veritabanı cephesidir.

  - Bağlantı ilk sorguda alınır ve DB kapanana kadar bütün builder'lar onu paylaşır.
  - Bağlantı alınamazsa hata saklanır; sonraki her çağrı aynı ErrConnectionFailed hatasını alır.
  - Transaction komutları da bu bağlantı üzerinde çalıştığı için builder'lar
    transaction'ın içinde kalır.

  @author    Ahmet ALTUN
  @github    github.com/biyonik
  @linkedin  linkedin.com/in/biyonik
  @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// QueryExecutor, DB'nin tuttuğu bağlantının sağladığı işlemleri soyutlar.
type QueryExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	_ QueryExecutor = (*sql.Conn)(nil)
	_ QueryExecutor = (*sql.DB)(nil)
)

// DB, builder fabrikalarını ve tek bağlantının yaşam döngüsünü yönetir.
// Builder'lar eşzamanlı kullanım için güvenli değildir; DB'nin kendisi
// yalnızca bağlantı edinimi ve transaction durumu için kilit tutar.
type DB struct {
	sqlDB   *sql.DB
	dialect dialect.Dialect
	backend Backend
	scanner Scanner
	logger  *zap.Logger
	cache   cache.Store
	debug   bool
	prefix  string

	mu      sync.Mutex
	conn    *sql.Conn
	connErr error
	closed  bool

	txMu     sync.Mutex
	activeTx *Transaction
}

// NewDB, mevcut bir *sql.DB'yi sarar. Bağlantı ilk sorguda alınır.
func NewDB(db *sql.DB, opts ...Option) *DB {
	d := &DB{
		sqlDB:   db,
		dialect: dialect.MySQL(),
		backend: BackendBound,
		logger:  zap.NewNop(),
	}

	applyOptions(d, opts)

	if d.scanner == nil {
		d.scanner = NewDefaultScanner()
	}

	return d
}

// Dialect, aktif SQL dialect'ini döndürür.
func (d *DB) Dialect() dialect.Dialect {
	return d.dialect
}

// Backend, aktif yer tutucu çözümleme stratejisini döndürür.
func (d *DB) Backend() Backend {
	return d.backend
}

// Logger, DB'nin zap logger'ını döndürür.
func (d *DB) Logger() *zap.Logger {
	return d.logger
}

// TablePrefix, tablo adlarına eklenen öneki döndürür.
func (d *DB) TablePrefix() string {
	return d.prefix
}

// IsDebug, debug modunun açık olup olmadığını bildirir.
func (d *DB) IsDebug() bool {
	return d.debug
}

// Ping, bağlantıyı alır (gerekirse) ve sunucuya ping atar.
func (d *DB) Ping(ctx context.Context) error {
	conn, err := d.acquire(ctx)
	if err != nil {
		return err
	}
	return conn.PingContext(ctx)
}

// Close, tutulan bağlantıyı havuza bırakır ve *sql.DB'yi kapatır.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	var errs []error
	if d.conn != nil {
		errs = append(errs, d.conn.Close())
		d.conn = nil
	}
	if d.sqlDB != nil {
		errs = append(errs, d.sqlDB.Close())
	}
	return errors.Join(errs...)
}

// ----------------------------------------------------------------------------
// Builder factories
// ----------------------------------------------------------------------------

// Query, ham bir SQL şablonu için builder döndürür.
func (d *DB) Query(template string) *Query {
	return newQuery(d, template)
}

// Select, verilen alanlarla bir SELECT builder'ı döndürür. Alan yoksa "*".
func (d *DB) Select(fields ...string) *SelectBuilder {
	return newSelect(d).Fields(fields...)
}

// Insert, INSERT builder'ı döndürür. Verilen satırlar SetRows ile eklenir.
func (d *DB) Insert(rows ...map[string]any) *InsertBuilder {
	return newInsert(d).SetRows(rows...)
}

// Update, UPDATE builder'ı döndürür.
func (d *DB) Update(table string) *UpdateBuilder {
	return newUpdate(d).Table(table)
}

// Delete, DELETE builder'ı döndürür.
func (d *DB) Delete() *DeleteBuilder {
	return newDelete(d)
}

// Transaction, bu DB'nin bağlantısı üzerinde çalışan boşta bir transaction döndürür.
func (d *DB) Transaction() *Transaction {
	return &Transaction{db: d}
}

// InTransaction, fn'i bir transaction içinde çalıştırır. fn hata döndürürse
// veya panic olursa rollback, aksi halde commit yapılır.
func (d *DB) InTransaction(ctx context.Context, fn func(*Transaction) error) error {
	tx := d.Transaction()
	if err := tx.Start(ctx); err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return errors.Join(err, WrapError("rollback after error", rbErr))
		}
		return err
	}

	return tx.Commit(ctx)
}

// ----------------------------------------------------------------------------
// Connection & execution
// ----------------------------------------------------------------------------

// acquire, tek bağlantıyı döndürür; yoksa alır. Bağlam iptali dışındaki
// hatalar saklanır ve sonraki çağrılarda tekrar denenmez.
func (d *DB) acquire(ctx context.Context) (*sql.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrConnectionClosed
	}
	if d.connErr != nil {
		return nil, d.connErr
	}
	if d.conn != nil {
		return d.conn, nil
	}
	if d.sqlDB == nil {
		return nil, ErrNoConnection
	}

	conn, err := d.sqlDB.Conn(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		d.connErr = fmt.Errorf("%w: %w", ErrConnectionFailed, err)
		d.logger.Error("database connection failed", zap.Error(err))
		return nil, d.connErr
	}

	d.conn = conn
	return conn, nil
}

// exec, satır döndürmeyen bir komutu çalıştırır.
func (d *DB) exec(ctx context.Context, op, query string, args []any) (sql.Result, error) {
	conn, err := d.acquire(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := conn.ExecContext(ctx, query, args...)
	d.trace(query, args, start)
	if err != nil {
		return nil, d.fail(op, query, err)
	}
	return result, nil
}

// rows, sorguyu çalıştırır ve satırları fn'e verir; satırlar fn döndükten
// sonra kapatılır. fn'in hatası olduğu gibi döner.
func (d *DB) rows(ctx context.Context, op, query string, args []any, fn func(*sql.Rows) error) error {
	conn, err := d.acquire(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		d.trace(query, args, start)
		return d.fail(op, query, err)
	}
	defer rows.Close()

	err = fn(rows)
	d.trace(query, args, start)
	return err
}

// fetch, sorgunun bütün sonuç kümesini okur.
func (d *DB) fetch(ctx context.Context, query string, args []any) (*shape.Set, error) {
	var set *shape.Set
	var readErr error
	err := d.rows(ctx, "query", query, args, func(rows *sql.Rows) error {
		set, readErr = shape.Read(rows)
		return readErr
	})
	if readErr != nil {
		return nil, d.fail("read rows", query, readErr)
	}
	return set, err
}

func (d *DB) fail(op, query string, err error) error {
	d.logger.Warn("sql error", zap.String("op", op), zap.String("sql", query), zap.Error(err))
	return &QueryError{Op: op, SQL: query, Err: err}
}

func (d *DB) trace(query string, args []any, start time.Time) {
	if !d.debug {
		return
	}
	d.logger.Debug("executing sql",
		zap.String("sql", query),
		zap.Any("args", args),
		zap.Duration("duration", time.Since(start)),
	)
}

// table, tablo adına DB önekini ekler. Alias korunur; alt sorgular ve
// "db.table" biçimleri değiştirilmez.
func (d *DB) table(name string) string {
	if d.prefix == "" || name == "" {
		return name
	}

	base, alias := validation.SplitTableAlias(name)
	if !validation.IsTableReference(base) || strings.Contains(base, ".") {
		return name
	}

	base = d.prefix + base
	if alias != "" {
		return base + " " + alias
	}
	return base
}
