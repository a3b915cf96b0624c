package registry

import (
	"github.com/nspcc-dev/docproof-contract/common"
	"github.com/nspcc-dev/docproof-contract/contracts/registry/docstatus"
	cst "github.com/nspcc-dev/docproof-contract/contracts/registry/registryconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Document is a notarized content hash record. Signers keeps the
	// required-signer list exactly as it was submitted, duplicates
	// included, so SignCount may never reach its length for malformed
	// lists.
	Document struct {
		Notary       interop.Hash160
		CreatedAt    int
		Metadata     string
		Signers      []interop.Hash160
		Status       docstatus.Type
		SignCount    int
		ApproveCount int
	}

	// ChainVersion is a single entry of a document version chain. PrevHash
	// of the first entry is a zero-filled sentinel.
	ChainVersion struct {
		Hash        interop.Hash256
		Number      int
		PrevHash    interop.Hash256
		Creator     interop.Hash160
		CreatedAt   int
		Description string
		Latest      bool
	}

	// VerificationResult is returned by Verify. For unknown hashes Exists
	// is false, Notary is a zero address and the counters are zero.
	VerificationResult struct {
		Exists       bool
		Notary       interop.Hash160
		CreatedAt    int
		Status       docstatus.Type
		SignCount    int
		ApproveCount int
	}
)

const (
	// prefixCounter contains the total number of notarized documents.
	prefixCounter byte = 0x00
	// prefixDocument contains document records by their content hash.
	prefixDocument byte = 0x01
	// prefixSigned marks required signers that have signed, by document
	// hash and signer address.
	prefixSigned byte = 0x02
	// prefixApproved marks accounts that have approved, by document hash
	// and approver address.
	prefixApproved byte = 0x03
	// prefixApprovers contains the ordered approver list per document.
	prefixApprovers byte = 0x04
	// prefixVersions contains the version chain per lineage root hash.
	prefixVersions byte = 0x05
	// prefixLatest contains the latest version hash per lineage root hash.
	prefixLatest byte = 0x06
)

const (
	rosterContractKey = "rosterScriptHash"

	documentHashSize = interop.Hash256Len // SHA256 size
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	args := data.([]any)
	if isUpdate {
		version := args[len(args)-1].(int)
		common.CheckVersion(version)
		return
	}

	rosterContract := args[0].(interop.Hash160)
	if len(rosterContract) != interop.Hash160Len {
		panic("roster contract address is missing")
	}
	storage.Put(ctx, rosterContractKey, rosterContract)

	runtime.Log("registry contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// by committee only.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("registry contract updated")
}

// Notarize creates a document record for the given content hash. The notary
// account must witness the invocation and be authorized by the Roster
// contract. Content hash must not be taken by another document or version.
// The required-signer list is stored verbatim and fixed forever. Notarize
// also roots the document's version chain with entry number 1.
//
// Notarize produces Notarized notification.
func Notarize(notary interop.Hash160, hash interop.Hash256, metadata string, signers []interop.Hash160) {
	ctx := storage.GetContext()

	checkHash(hash)
	checkAccount(notary)
	for i := range signers {
		checkAccount(signers[i])
	}

	common.CheckWitness(notary)

	roster := rosterAddress(ctx)
	authorized := contract.Call(roster, "isAuthorizedNotary", contract.ReadOnly, notary).(bool)
	if !authorized {
		panic(cst.NotNotaryError)
	}

	docKey := documentKey(hash)
	if storage.Get(ctx, docKey) != nil {
		panic(cst.AlreadyExistsError)
	}

	now := runtime.GetTime()
	doc := Document{
		Notary:       notary,
		CreatedAt:    now,
		Metadata:     metadata,
		Signers:      signers,
		Status:       docstatus.Pending,
		SignCount:    0,
		ApproveCount: 0,
	}
	common.SetSerialized(ctx, docKey, doc)

	chain := []ChainVersion{{
		Hash:        hash,
		Number:      1,
		PrevHash:    sentinelHash(),
		Creator:     notary,
		CreatedAt:   now,
		Description: "",
		Latest:      true,
	}}
	common.SetSerialized(ctx, versionsKey(hash), chain)
	storage.Put(ctx, latestKey(hash), hash)

	total := TotalDocuments() + 1
	storage.Put(ctx, []byte{prefixCounter}, total)

	runtime.Notify("Notarized", hash, notary)
}

// Sign records the signature of a required signer on a pending document.
// When the last distinct required signer signs, document status becomes
// Signed. Each signer may sign at most once.
//
// Sign produces Signed notification.
func Sign(signer interop.Hash160, hash interop.Hash256) {
	ctx := storage.GetContext()

	checkHash(hash)
	checkAccount(signer)

	doc := getDocument(ctx, hash)
	common.CheckWitness(signer)

	if !isRequiredSigner(doc, signer) {
		panic(cst.NotSignerError)
	}

	markKey := signedKey(hash, signer)
	if storage.Get(ctx, markKey) != nil {
		panic(cst.AlreadySignedError)
	}

	if doc.Status != docstatus.Pending {
		panic(cst.StatusError)
	}

	storage.Put(ctx, markKey, []byte{1})

	doc.SignCount = doc.SignCount + 1 // neo-go#953
	if doc.SignCount == len(doc.Signers) {
		doc.Status = docstatus.Signed
	}
	common.SetSerialized(ctx, documentKey(hash), doc)

	runtime.Notify("Signed", hash, signer)
}

// Approve records an approval of the document by any account, no
// required-signer membership is needed. Approving a signed document makes it
// Approved; approving a pending one is recorded without a status change.
// Each account may approve at most once.
//
// Approve produces Approved notification.
func Approve(approver interop.Hash160, hash interop.Hash256) {
	ctx := storage.GetContext()

	checkHash(hash)
	checkAccount(approver)

	doc := getDocument(ctx, hash)
	common.CheckWitness(approver)

	markKey := approvedKey(hash, approver)
	if storage.Get(ctx, markKey) != nil {
		panic(cst.AlreadyApprovedError)
	}

	if doc.Status != docstatus.Pending && doc.Status != docstatus.Signed {
		panic(cst.StatusError)
	}

	storage.Put(ctx, markKey, []byte{1})

	listKey := approversKey(hash)
	approvers := common.GetHashList(ctx, listKey)
	approvers = append(approvers, approver)
	common.SetSerialized(ctx, listKey, approvers)

	doc.ApproveCount = doc.ApproveCount + 1 // neo-go#953
	if doc.Status == docstatus.Signed {
		doc.Status = docstatus.Approved
	}
	common.SetSerialized(ctx, documentKey(hash), doc)

	runtime.Notify("Approved", hash, approver)
}

// Reject terminally rejects a pending document. Only a required signer of
// the document may reject it. Signed and later documents cannot be rejected.
//
// Reject produces Rejected notification carrying the reason.
func Reject(signer interop.Hash160, hash interop.Hash256, reason string) {
	ctx := storage.GetContext()

	checkHash(hash)
	checkAccount(signer)

	doc := getDocument(ctx, hash)
	common.CheckWitness(signer)

	if !isRequiredSigner(doc, signer) {
		panic(cst.NotSignerError)
	}

	if doc.Status != docstatus.Pending {
		panic(cst.StatusError)
	}

	doc.Status = docstatus.Rejected
	common.SetSerialized(ctx, documentKey(hash), doc)

	runtime.Notify("Rejected", hash, signer, reason)
}

// CreateVersion appends a new version to the lineage rooted at the original
// hash and creates a document record for the new version hash. The new
// document inherits notary and required signers from the lineage root and
// starts as a pending document with empty metadata. Version hashes do not
// root lineages of their own. The new version hash must not be taken by any
// document.
//
// CreateVersion produces VersionCreated notification carrying the new
// version number.
func CreateVersion(creator interop.Hash160, original interop.Hash256, version interop.Hash256, description string) {
	ctx := storage.GetContext()

	checkHash(original)
	checkHash(version)
	checkAccount(creator)

	common.CheckWitness(creator)

	chain := lineageVersions(ctx, original)
	if len(chain) == 0 {
		panic(cst.LineageError)
	}

	newKey := documentKey(version)
	if storage.Get(ctx, newKey) != nil {
		panic(cst.VersionExistsError)
	}

	for i := range chain {
		if chain[i].Latest {
			chain[i].Latest = false
			break
		}
	}

	now := runtime.GetTime()
	prev := storage.Get(ctx, latestKey(original)).(interop.Hash256)
	chain = append(chain, ChainVersion{
		Hash:        version,
		Number:      len(chain) + 1,
		PrevHash:    prev,
		Creator:     creator,
		CreatedAt:   now,
		Description: description,
		Latest:      true,
	})
	common.SetSerialized(ctx, versionsKey(original), chain)
	storage.Put(ctx, latestKey(original), version)

	root := getDocument(ctx, original)
	doc := Document{
		Notary:       root.Notary,
		CreatedAt:    now,
		Metadata:     "",
		Signers:      root.Signers,
		Status:       docstatus.Pending,
		SignCount:    0,
		ApproveCount: 0,
	}
	common.SetSerialized(ctx, newKey, doc)

	runtime.Notify("VersionCreated", original, version, creator, len(chain))
}

// Verify returns the existence flag and lifecycle summary of the document.
// Unknown hashes produce a zero result with Exists set to false instead of
// an error.
func Verify(hash interop.Hash256) VerificationResult {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, documentKey(hash))
	if data == nil {
		return VerificationResult{
			Notary: make([]byte, interop.Hash160Len),
		}
	}

	doc := std.Deserialize(data.([]byte)).(Document)
	return VerificationResult{
		Exists:       true,
		Notary:       doc.Notary,
		CreatedAt:    doc.CreatedAt,
		Status:       doc.Status,
		SignCount:    doc.SignCount,
		ApproveCount: doc.ApproveCount,
	}
}

// GetMetadata returns the metadata string of the document.
func GetMetadata(hash interop.Hash256) string {
	ctx := storage.GetReadOnlyContext()
	return getDocument(ctx, hash).Metadata
}

// GetRequiredSigners returns the required-signer list of the document
// exactly as it was submitted to Notarize.
func GetRequiredSigners(hash interop.Hash256) []interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getDocument(ctx, hash).Signers
}

// HasSigned returns true if the account has already signed the document.
func HasSigned(hash interop.Hash256, account interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	getDocument(ctx, hash)
	return storage.Get(ctx, signedKey(hash, account)) != nil
}

// GetApprovers returns accounts that have approved the document in approval
// order.
func GetApprovers(hash interop.Hash256) []interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	getDocument(ctx, hash)
	return common.GetHashList(ctx, approversKey(hash))
}

// GetVersions returns the full ordered version chain rooted at the original
// hash. The list is empty if no lineage is rooted at the hash.
func GetVersions(original interop.Hash256) []ChainVersion {
	ctx := storage.GetReadOnlyContext()
	return lineageVersions(ctx, original)
}

// GetLatestVersion returns the hash of the latest version of the lineage
// rooted at the original hash, or a zero-filled sentinel if no lineage is
// rooted there.
func GetLatestVersion(original interop.Hash256) interop.Hash256 {
	ctx := storage.GetReadOnlyContext()
	data := storage.Get(ctx, latestKey(original))
	if data == nil {
		return sentinelHash()
	}
	return data.(interop.Hash256)
}

// TotalDocuments returns the number of documents created by Notarize.
// Version documents are not counted.
func TotalDocuments() int {
	ctx := storage.GetReadOnlyContext()
	data := storage.Get(ctx, []byte{prefixCounter})
	if data == nil {
		return 0
	}
	return data.(int)
}

// Documents returns an iterator over all known document content hashes,
// version hashes included.
func Documents() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{prefixDocument}, storage.KeysOnly|storage.RemovePrefix)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getDocument(ctx storage.Context, hash interop.Hash256) Document {
	data := storage.Get(ctx, documentKey(hash))
	if data == nil {
		panic(cst.NotFoundError)
	}
	return std.Deserialize(data.([]byte)).(Document)
}

func lineageVersions(ctx storage.Context, original interop.Hash256) []ChainVersion {
	data := storage.Get(ctx, versionsKey(original))
	if data == nil {
		return []ChainVersion{}
	}
	return std.Deserialize(data.([]byte)).([]ChainVersion)
}

func isRequiredSigner(doc Document, account interop.Hash160) bool {
	for i := range doc.Signers {
		if common.BytesEqual(doc.Signers[i], account) {
			return true
		}
	}
	return false
}

func rosterAddress(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, rosterContractKey).(interop.Hash160)
}

func documentKey(hash interop.Hash256) []byte {
	return append([]byte{prefixDocument}, hash...)
}

func signedKey(hash interop.Hash256, account interop.Hash160) []byte {
	return append(append([]byte{prefixSigned}, hash...), account...)
}

func approvedKey(hash interop.Hash256, account interop.Hash160) []byte {
	return append(append([]byte{prefixApproved}, hash...), account...)
}

func approversKey(hash interop.Hash256) []byte {
	return append([]byte{prefixApprovers}, hash...)
}

func versionsKey(original interop.Hash256) []byte {
	return append([]byte{prefixVersions}, original...)
}

func latestKey(original interop.Hash256) []byte {
	return append([]byte{prefixLatest}, original...)
}

func sentinelHash() interop.Hash256 {
	return make([]byte, documentHashSize)
}

func checkHash(hash interop.Hash256) {
	if len(hash) != documentHashSize {
		panic(cst.HashSizeError)
	}
}

func checkAccount(account interop.Hash160) {
	if len(account) != interop.Hash160Len {
		panic(cst.AddressSizeError)
	}
}
