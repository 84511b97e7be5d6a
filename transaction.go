package fluentdb

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/biyonik/go-fluent-db/internal/validation"
)

// -----------------------------------------------------------------------------
//  Transaction
//
//  Transaction, DB'nin tek bağlantısı üzerinde BEGIN/COMMIT/ROLLBACK
//  komutlarını çalıştıran küçük bir durum makinesidir: Idle → Active → Idle.
//
//   • Start, dialect'in başlangıç komutunu (MySQL: START TRANSACTION) yürütür
//   • Commit ve Rollback yalnızca Active durumdayken çalışır
//   • Builder'lar aynı bağlantıyı kullandığı için transaction'ın içindedir
//
//  Bir DB üzerinde aynı anda tek bir transaction aktif olabilir.
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// Transaction, tek bir veritabanı transaction'ının yaşam döngüsünü yönetir.
// Commit veya Rollback sonrası tekrar Start edilebilir.
type Transaction struct {
	db *DB

	mu      sync.Mutex
	id      string
	started bool
}

// Start, transaction'ı başlatır. Bu transaction veya aynı DB üzerindeki
// başka bir transaction zaten aktifse ErrTransactionActive döner.
func (t *Transaction) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return ErrTransactionActive
	}

	db := t.db
	db.txMu.Lock()
	if db.activeTx != nil {
		db.txMu.Unlock()
		return ErrTransactionActive
	}
	db.activeTx = t
	db.txMu.Unlock()

	if _, err := db.exec(ctx, "begin", db.dialect.Begin(), nil); err != nil {
		db.releaseTx(t)
		return err
	}

	t.started = true
	t.id = uuid.NewString()
	db.logger.Debug("transaction started", zap.String("tx", t.id))
	return nil
}

// Commit, değişiklikleri kalıcı hale getirir ve transaction'ı boşa alır.
func (t *Transaction) Commit(ctx context.Context) error {
	return t.finish(ctx, "commit", "COMMIT")
}

// Rollback, değişiklikleri geri alır ve transaction'ı boşa alır.
func (t *Transaction) Rollback(ctx context.Context) error {
	return t.finish(ctx, "rollback", "ROLLBACK")
}

func (t *Transaction) finish(ctx context.Context, op, stmt string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return ErrTransactionNotStarted
	}

	_, err := t.db.exec(ctx, op, stmt, nil)

	// Hata olsa da durum Idle'a döner.
	t.started = false
	t.db.releaseTx(t)
	t.db.logger.Debug("transaction finished", zap.String("tx", t.id), zap.String("op", op), zap.Error(err))
	return err
}

// Savepoint, aktif transaction içinde isimli bir geri dönüş noktası oluşturur.
func (t *Transaction) Savepoint(ctx context.Context, name string) error {
	return t.savepoint(ctx, "savepoint", "SAVEPOINT ", name)
}

// RollbackTo, transaction'ı bitirmeden name noktasına geri döner.
func (t *Transaction) RollbackTo(ctx context.Context, name string) error {
	return t.savepoint(ctx, "rollback to savepoint", "ROLLBACK TO SAVEPOINT ", name)
}

// Release, savepoint'i serbest bırakır.
func (t *Transaction) Release(ctx context.Context, name string) error {
	return t.savepoint(ctx, "release savepoint", "RELEASE SAVEPOINT ", name)
}

func (t *Transaction) savepoint(ctx context.Context, op, prefix, name string) error {
	if err := validation.ValidateIdentifier(name); err != nil {
		return NewValidationError(name, "savepoint", err.Error())
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return ErrTransactionNotStarted
	}

	_, err := t.db.exec(ctx, op, prefix+t.db.dialect.QuoteIdent(name), nil)
	return err
}

// IsActive, transaction'ın başlatılmış ve henüz bitirilmemiş olduğunu bildirir.
func (t *Transaction) IsActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

// ID, son Start çağrısında üretilen kimliği döndürür. Loglarda
// transaction'a ait satırları ilişkilendirmek için kullanılır.
func (t *Transaction) ID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.id
}

// Query, transaction'ın bağlantısında çalışan bir Query döndürür.
func (t *Transaction) Query(template string) *Query {
	return t.db.Query(template)
}

// Select, transaction'ın bağlantısında çalışan bir SelectBuilder döndürür.
func (t *Transaction) Select(fields ...string) *SelectBuilder {
	return t.db.Select(fields...)
}

// Insert, transaction'ın bağlantısında çalışan bir InsertBuilder döndürür.
func (t *Transaction) Insert(rows ...map[string]any) *InsertBuilder {
	return t.db.Insert(rows...)
}

// Update, transaction'ın bağlantısında çalışan bir UpdateBuilder döndürür.
func (t *Transaction) Update(table string) *UpdateBuilder {
	return t.db.Update(table)
}

// Delete, transaction'ın bağlantısında çalışan bir DeleteBuilder döndürür.
func (t *Transaction) Delete() *DeleteBuilder {
	return t.db.Delete()
}

// releaseTx, tx hâlâ aktif transaction ise kaydı temizler.
func (d *DB) releaseTx(tx *Transaction) {
	d.txMu.Lock()
	if d.activeTx == tx {
		d.activeTx = nil
	}
	d.txMu.Unlock()
}
