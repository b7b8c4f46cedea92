package upgrade

import "fmt"

// MigrationError reports a failed migration step with its version context
type MigrationError struct {
	From  string
	To    string
	Cause error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("upgrade from version %s to version %s failed: %v", e.From, e.To, e.Cause)
}

func (e *MigrationError) Unwrap() error {
	return e.Cause
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(from, to string, cause error) *MigrationError {
	return &MigrationError{From: from, To: to, Cause: cause}
}

// StructuralInconsistencyError reports the mixed state left behind when
// the irreversible structural change succeeded but the subsequent
// migration transaction did not commit: legacy storage is already gone
// while the version marker still names the old version.
type StructuralInconsistencyError struct {
	From  string
	To    string
	Cause error
}

func (e *StructuralInconsistencyError) Error() string {
	return fmt.Sprintf("legacy storage already dropped but the %s -> %s migration rolled back, manual repair required: %v", e.From, e.To, e.Cause)
}

func (e *StructuralInconsistencyError) Unwrap() error {
	return e.Cause
}

// ChunkError reports a failed chunk during a bulk backfill. Chunks before
// Chunk are committed and stay committed; Resume is the index of the
// first record whose update did not persist.
type ChunkError struct {
	Chunk  int
	Resume int
	Cause  error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d failed, first uncommitted record at index %d: %v", e.Chunk, e.Resume, e.Cause)
}

func (e *ChunkError) Unwrap() error {
	return e.Cause
}
