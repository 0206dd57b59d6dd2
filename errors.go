package costsheet

import "errors"

var (
	// ErrOutOfRange is returned when a row index does not address a row of the ledger.
	ErrOutOfRange = errors.New("row index out of range")

	// ErrUnknownField is returned when a field name is neither a field name nor a field label.
	ErrUnknownField = errors.New("unknown field")

	// ErrParse is returned when a stored or shared document cannot be read as a state record.
	ErrParse = errors.New("malformed state record")

	// ErrImportInProgress is returned when an import is triggered while another one is running.
	ErrImportInProgress = errors.New("an import is already in progress")
)
