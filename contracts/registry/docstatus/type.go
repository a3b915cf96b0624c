package docstatus

// Type is an enumeration for document lifecycle statuses.
type Type int

// Various document statuses.
const (
	// Pending is the initial status of every notarized document and
	// of every document created for a new version.
	Pending Type = iota

	// Signed stands for documents signed by all of their required
	// signers.
	Signed

	// Approved stands for signed documents that have received an
	// approval.
	Approved

	// Rejected is the terminal status set by a required signer for a
	// pending document.
	Rejected

	// Archived is reserved for a future lifecycle stage, no operation
	// produces it.
	Archived
)
