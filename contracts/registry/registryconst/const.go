package registryconst

const (
	// NotFoundError is returned if the referenced document is missing.
	NotFoundError = "document does not exist"

	// AlreadyExistsError is returned on attempt to notarize a content hash
	// that is already taken by a document or one of its versions.
	AlreadyExistsError = "document already notarized"

	// NotNotaryError is returned if the notarizing account is neither the
	// service owner nor an authorized notary.
	NotNotaryError = "not an authorized notary"

	// NotSignerError is returned if the acting account is not listed among
	// the document's required signers.
	NotSignerError = "not a required signer"

	// AlreadySignedError is returned on repeated signing by the same account.
	AlreadySignedError = "already signed"

	// AlreadyApprovedError is returned on repeated approval by the same account.
	AlreadyApprovedError = "already approved"

	// StatusError is returned if the operation is not allowed for the
	// current document status.
	StatusError = "invalid document status"

	// LineageError is returned if no version lineage is rooted at the
	// referenced hash. Only notarized hashes root lineages.
	LineageError = "version lineage does not exist"

	// VersionExistsError is returned on attempt to reuse a content hash as
	// a new version hash.
	VersionExistsError = "version hash already in use"

	// HashSizeError is returned on malformed content hash input.
	HashSizeError = "invalid content hash length"

	// AddressSizeError is returned on malformed account address input.
	AddressSizeError = "invalid account address length"
)
