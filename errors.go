package fluentdb

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/biyonik/go-fluent-db/dialect"
)

// Sentinel errors for go-fluent-db.
// These errors can be checked using errors.Is().
var (
	// ErrConnectionFailed is returned when the lazy connection could not be
	// acquired. Once set it is returned by every later call on the same DB.
	ErrConnectionFailed = errors.New("fluentdb: connection failed")

	// ErrNoConnection is returned when a detached DB (see New) is asked to execute.
	ErrNoConnection = errors.New("fluentdb: no database connection")

	// ErrConnectionClosed is returned when trying to use a closed DB.
	ErrConnectionClosed = errors.New("fluentdb: connection closed")

	// ErrInvalidIdentifier is returned when a savepoint name or the table
	// prefix read by Open contains invalid characters.
	ErrInvalidIdentifier = errors.New("fluentdb: invalid SQL identifier")

	// ErrInvalidOperator is returned when an unsupported SQL operator is used.
	ErrInvalidOperator = errors.New("fluentdb: invalid SQL operator")

	// ErrInvalidDirection is returned when OrderBy receives something other than ASC/DESC.
	ErrInvalidDirection = errors.New("fluentdb: invalid order direction")

	// ErrInvalidPlaceholder is returned by the bound backend for tokens that
	// are not of the form ":name".
	ErrInvalidPlaceholder = errors.New("fluentdb: invalid placeholder")

	// ErrUnconditionalDelete is returned when a DELETE without WHERE is
	// executed without calling AllRows first.
	ErrUnconditionalDelete = errors.New("fluentdb: refusing to delete without a where clause")

	// ErrTransactionNotStarted is returned by Commit/Rollback on an idle transaction.
	ErrTransactionNotStarted = errors.New("fluentdb: transaction not started")

	// ErrTransactionActive is returned by Start while a transaction is already running.
	ErrTransactionActive = errors.New("fluentdb: transaction already active")

	// ErrNoRows is returned when a struct destination has no row to scan.
	ErrNoRows = errors.New("fluentdb: no rows in result set")

	// ErrNilDestination is returned when a nil pointer is passed as scan destination.
	ErrNilDestination = errors.New("fluentdb: nil destination pointer")

	// ErrInvalidDestination is returned when the destination is not a pointer.
	ErrInvalidDestination = errors.New("fluentdb: destination must be a pointer")

	// Errors raised while compiling or escaping, shared with the dialect package.
	ErrNoTable          = dialect.ErrNoTable
	ErrNoColumns        = dialect.ErrNoColumns
	ErrEmptyList        = dialect.ErrEmptyList
	ErrUnsupportedValue = dialect.ErrUnsupportedValue
	ErrInconsistentRows = dialect.ErrInconsistentRows
)

// QueryError wraps a driver error with the statement that caused it.
type QueryError struct {
	Op  string
	SQL string
	Err error
}

func (e *QueryError) Error() string {
	msg := "fluentdb: " + e.Op + ": " + e.Err.Error()
	if e.SQL != "" {
		msg += " (" + e.SQL + ")"
	}
	return msg
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// WrapError attaches an operation name to err. It returns nil for a nil err.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Op: op, Err: err}
}

// ValidationError represents an identifier validation error.
type ValidationError struct {
	Identifier string
	Context    string
	Reason     string
}

func (e *ValidationError) Error() string {
	return "fluentdb: invalid " + e.Context + " '" + e.Identifier + "': " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

// NewValidationError creates a new ValidationError.
func NewValidationError(identifier, context, reason string) *ValidationError {
	return &ValidationError{
		Identifier: identifier,
		Context:    context,
		Reason:     reason,
	}
}

// IsDuplicateKey reports whether err is a unique constraint violation from
// MySQL (1062), pgx or lib/pq (SQLSTATE 23505).
func IsDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgerrcode.UniqueViolation
	}

	return false
}
