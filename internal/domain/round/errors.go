package round

import "errors"

var (
	// ErrEmptySelection indicates an advance with nothing kept in the
	// current round; the next round would have no candidates.
	ErrEmptySelection = errors.New("no selections in current round")
	// ErrConfirmRequired indicates the next round already holds selections
	// that would be invalidated; the caller must re-invoke with force.
	ErrConfirmRequired = errors.New("next round already has selections, confirmation required")
	// ErrInvalidInput indicates invalid round input.
	ErrInvalidInput = errors.New("invalid round input")
	// ErrExportFailed indicates a round snapshot could not be written.
	ErrExportFailed = errors.New("snapshot export failed")
)
