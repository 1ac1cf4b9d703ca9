package catalog

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrorKind buckets every failure the engine can surface. Handlers map the
// kinds to HTTP statuses; callers inside the engine only ever see one
// categorized error per save, never a partial-success status.
type ErrorKind int

const (
	// KindValidation covers client-fixable input problems caught before
	// commit: empty unit lists, bad conversion factors, duplicate SKUs in a
	// batch, price ordering violations and the like.
	KindValidation ErrorKind = iota
	// KindConflict covers unique-constraint violations and stale-version
	// saves, i.e. races with other writers.
	KindConflict
	// KindNotFound covers dangling references: unknown item, unit,
	// attribute or attribute value ids.
	KindNotFound
	// KindIntegrity covers states that should be impossible with valid
	// input, such as a non-empty unit batch where no unit id resolves.
	KindIntegrity
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "integrity"
	}
}

// Error is the single error type the engine returns.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func validationf(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func integrityf(format string, args ...interface{}) error {
	return &Error{Kind: KindIntegrity, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an engine error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// MySQL server error numbers the engine translates. Reference:
// https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrNoReferencedRow = 1452
)

// translateDBError converts raw driver errors into the engine taxonomy so
// handlers never have to pattern-match on database internals. Unknown
// errors pass through untouched and roll back the transaction as usual.
func translateDBError(err error, context string) error {
	if err == nil {
		return nil
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrDuplicateEntry:
			return &Error{Kind: KindConflict, Msg: "duplicate entry: " + context, Err: err}
		case mysqlErrNoReferencedRow:
			return &Error{Kind: KindNotFound, Msg: "referenced record does not exist: " + context, Err: err}
		}
	}
	return fmt.Errorf("%s: %w", context, err)
}
