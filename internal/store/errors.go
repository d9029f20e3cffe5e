package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known sync
// failure conditions. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrFarmNotFound is returned when a sync operation targets a farm that
	// does not exist. The whole call fails; there are no partial results.
	ErrFarmNotFound = errors.New("farm was not found")

	// ErrRecordNotFound is returned when an update or soft-delete targets a
	// row that does not exist in the store.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrVersionConflict is returned when an optimistic check fails: the
	// updated_at value observed by the client does not match the current
	// value in the store, meaning another client has modified the record
	// since this client last synchronized.
	ErrVersionConflict = errors.New("record version conflict occurred")

	// ErrForeignFarm is returned when a mutation's implied farm (directly or
	// through a referenced parent row) differs from the farm the call is
	// scoped to.
	ErrForeignFarm = errors.New("record belongs to another farm")

	// ErrParentNotFound is returned when a mutation references a parent row
	// that does not exist.
	ErrParentNotFound = errors.New("referenced parent record was not found")

	// ErrSnapshotClosed is returned when a page is requested from a snapshot
	// reader whose transaction has already been released.
	ErrSnapshotClosed = errors.New("snapshot is already closed")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan record row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan record rows")
)
