package ports

import "errors"

// Sentinel errors shared across adapter boundaries.
// Check with errors.Is; adapters wrap them with fmt.Errorf("...: %w", ...).

var (
	// ErrAuthentication indicates the bearer-token exchange was rejected or
	// produced a malformed response.
	ErrAuthentication = errors.New("authentication failed")

	// ErrRemote indicates a transport or HTTP failure talking to the remote
	// store (network error or non-2xx status).
	ErrRemote = errors.New("remote store request failed")

	// ErrBadRow indicates a sheet row that does not decode into its record
	// shape. The sheets adapter returns it inside a DecodeError carrying the
	// table, row, and reason.
	ErrBadRow = errors.New("malformed row")

	// ErrDuplicateOrderID indicates an order create would reuse an existing
	// order id.
	ErrDuplicateOrderID = errors.New("order id already exists")

	// ErrOrderNotFound indicates an operation addressed an order id absent
	// from the live order table.
	ErrOrderNotFound = errors.New("order not found")

	// ErrPartialSubmit indicates the order header was written but appending
	// its line items failed, leaving a headless order in the store.
	ErrPartialSubmit = errors.New("order created but line items not written")

	// ErrJournal indicates the archive journal could not record or replay a
	// state transition.
	ErrJournal = errors.New("archive journal failure")
)
