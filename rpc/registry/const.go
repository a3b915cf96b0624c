package registry

import (
	"github.com/nspcc-dev/docproof-contract/contracts/registry/registryconst"
)

const (
	// NotFoundError is returned if document is missing.
	NotFoundError = registryconst.NotFoundError
	// AlreadyExistsError is returned on repeated notarization of the same hash.
	AlreadyExistsError = registryconst.AlreadyExistsError

	// NotNotaryError is returned if notarization is attempted by an account
	// missing from the roster.
	NotNotaryError = registryconst.NotNotaryError
	// NotSignerError is returned if the account is not in the document signer list.
	NotSignerError = registryconst.NotSignerError

	// AlreadySignedError is returned on repeated signing by the same account.
	AlreadySignedError = registryconst.AlreadySignedError
	// AlreadyApprovedError is returned on repeated approval by the same account.
	AlreadyApprovedError = registryconst.AlreadyApprovedError
	// StatusError is returned if document status does not allow the operation.
	StatusError = registryconst.StatusError

	// LineageError is returned if version lineage is missing.
	LineageError = registryconst.LineageError
	// VersionExistsError is returned if version hash is already taken.
	VersionExistsError = registryconst.VersionExistsError
)
