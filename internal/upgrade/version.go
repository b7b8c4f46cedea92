package upgrade

// A build supports exactly one direct transition. Installations on any
// other version are either already current or have skipped a release and
// must be migrated by hand.
const (
	// FromVersion is the one data version this build can migrate from.
	FromVersion = "1.2.0"

	// ToVersion is the data version this build writes and expects.
	ToVersion = "1.2.1"
)

// DefaultChunkSize is the number of records committed per transaction
// during bulk backfills.
const DefaultChunkSize = 50

// legacyLineBreakToken is the sentinel older builds stored in comment
// content in place of a line break.
const legacyLineBreakToken = "_esc_enter_88250_"
