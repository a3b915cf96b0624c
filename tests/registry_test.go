package tests

import (
	"crypto/sha256"
	"path"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/docproof-contract/common"
	"github.com/nspcc-dev/docproof-contract/contracts/registry/docstatus"
	"github.com/nspcc-dev/docproof-contract/contracts/registry/registryconst"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const registryPath = "../contracts/registry"

func deployRegistryContract(t *testing.T, e *neotest.Executor, rosterHash util.Uint160) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, registryPath, path.Join(registryPath, "config.yml"))

	args := make([]any, 1)
	args[0] = rosterHash

	e.DeployContract(t, c, args)
	return c.Hash
}

// newRegistryInvoker deploys the Roster contract with the committee as the
// service owner and the Registry contract bound to it. Both invokers sign
// with the committee.
func newRegistryInvoker(t *testing.T) (*neotest.ContractInvoker, *neotest.ContractInvoker) {
	e := newExecutor(t)
	rosterHash := deployRosterContract(t, e)
	registryHash := deployRegistryContract(t, e, rosterHash)
	return e.CommitteeInvoker(registryHash), e.CommitteeInvoker(rosterHash)
}

// newNotary authorizes a fresh account in the Roster contract and returns
// the registry invoker signing with it.
func newNotary(t *testing.T, c, roster *neotest.ContractInvoker) (*neotest.ContractInvoker, util.Uint160) {
	acc := c.NewAccount(t)
	roster.Invoke(t, stackitem.Null{}, "addNotary", acc.ScriptHash())
	return c.WithSigners(acc), acc.ScriptHash()
}

type testDocument struct {
	hash     []byte
	metadata string
}

func dummyDocument() testDocument {
	content := randomBytes(100)
	id := sha256.Sum256(content)

	return testDocument{
		hash:     id[:],
		metadata: "pdf:" + base58.Encode(id[:8]),
	}
}

// notarizeDocument creates a fresh pending document with the given required
// signers, notarized by a freshly authorized notary.
func notarizeDocument(t *testing.T, c, roster *neotest.ContractInvoker, signers ...neotest.Signer) (testDocument, util.Uint160) {
	cNotary, notary := newNotary(t, c, roster)
	doc := dummyDocument()

	list := make([]any, len(signers))
	for i := range signers {
		list[i] = signers[i].ScriptHash()
	}

	cNotary.Invoke(t, stackitem.Null{}, "notarize", notary, doc.hash, doc.metadata, list)
	return doc, notary
}

func expectedVerification(notary []byte, createdAt uint64, status docstatus.Type, signCount, approveCount int) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewBool(true),
		stackitem.NewByteArray(notary),
		stackitem.Make(int64(createdAt)),
		stackitem.Make(int64(status)),
		stackitem.Make(signCount),
		stackitem.Make(approveCount),
	})
}

func expectedVersion(hash []byte, number int64, prevHash stackitem.Item, creator []byte, createdAt uint64, description string, latest bool) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(hash),
		stackitem.Make(number),
		prevHash,
		stackitem.NewByteArray(creator),
		stackitem.Make(int64(createdAt)),
		stackitem.Make(description),
		stackitem.NewBool(latest),
	})
}

func TestRegistryDeploy(t *testing.T) {
	e := newExecutor(t)
	c := neotest.CompileFile(t, e.CommitteeHash, registryPath, path.Join(registryPath, "config.yml"))

	e.DeployContractCheckFAULT(t, c, []any{[]byte{1, 2}},
		"roster contract address is missing")
}

func TestNotarize(t *testing.T) {
	c, roster := newRegistryInvoker(t)

	cNotary, notary := newNotary(t, c, roster)
	s1, s2 := c.NewAccount(t), c.NewAccount(t)
	doc := dummyDocument()
	signers := []any{s1.ScriptHash(), s2.ScriptHash()}

	cNotary.InvokeFail(t, registryconst.HashSizeError, "notarize",
		notary, randomBytes(31), doc.metadata, signers)
	cNotary.InvokeFail(t, registryconst.AddressSizeError, "notarize",
		notary, doc.hash, doc.metadata, []any{randomBytes(19)})

	stranger := c.NewAccount(t)
	cNotary.InvokeFail(t, common.ErrWitnessFailed, "notarize",
		stranger.ScriptHash(), doc.hash, doc.metadata, signers)

	cStranger := c.WithSigners(stranger)
	cStranger.InvokeFail(t, registryconst.NotNotaryError, "notarize",
		stranger.ScriptHash(), doc.hash, doc.metadata, signers)

	h := cNotary.Invoke(t, stackitem.Null{}, "notarize", notary, doc.hash, doc.metadata, signers)
	createdAt := c.TopBlock(t).Timestamp

	aer := cNotary.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "Notarized", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(doc.hash),
		stackitem.NewByteArray(notary.BytesBE()),
	}), aer.Events[0].Item)

	c.Invoke(t, expectedVerification(notary.BytesBE(), createdAt, docstatus.Pending, 0, 0),
		"verify", doc.hash)
	c.Invoke(t, doc.metadata, "getMetadata", doc.hash)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(s1.ScriptHash().BytesBE()),
		stackitem.NewByteArray(s2.ScriptHash().BytesBE()),
	}), "getRequiredSigners", doc.hash)
	c.Invoke(t, 1, "totalDocuments")

	// Notarize roots the version chain with the document itself.
	c.Invoke(t, stackitem.NewBuffer(doc.hash), "getLatestVersion", doc.hash)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		expectedVersion(doc.hash, 1, stackitem.NewBuffer(make([]byte, 32)),
			notary.BytesBE(), createdAt, "", true),
	}), "getVersions", doc.hash)

	cNotary.InvokeFail(t, registryconst.AlreadyExistsError, "notarize",
		notary, doc.hash, doc.metadata, signers)

	// The service owner is an implicit notary.
	other := dummyDocument()
	c.Invoke(t, stackitem.Null{}, "notarize", c.CommitteeHash, other.hash, other.metadata, signers)
	c.Invoke(t, 2, "totalDocuments")
}

func TestVerifyUnknown(t *testing.T) {
	c, _ := newRegistryInvoker(t)

	unknown := randomBytes(32)

	c.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.NewBool(false),
		stackitem.NewBuffer(make([]byte, 20)),
		stackitem.Make(0),
		stackitem.Make(0),
		stackitem.Make(0),
		stackitem.Make(0),
	}), "verify", unknown)

	c.InvokeFail(t, registryconst.NotFoundError, "getMetadata", unknown)
	c.InvokeFail(t, registryconst.NotFoundError, "getRequiredSigners", unknown)
	c.InvokeFail(t, registryconst.NotFoundError, "hasSigned", unknown, c.CommitteeHash)
	c.InvokeFail(t, registryconst.NotFoundError, "getApprovers", unknown)

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{}), "getVersions", unknown)
	c.Invoke(t, stackitem.NewBuffer(make([]byte, 32)), "getLatestVersion", unknown)
}

func TestSign(t *testing.T) {
	c, roster := newRegistryInvoker(t)

	s1, s2 := c.NewAccount(t), c.NewAccount(t)
	doc, notary := notarizeDocument(t, c, roster, s1, s2)
	createdAt := c.TopBlock(t).Timestamp

	c.InvokeFail(t, registryconst.NotFoundError, "sign", s1.ScriptHash(), randomBytes(32))

	cS1 := c.WithSigners(s1)
	cS1.InvokeFail(t, common.ErrWitnessFailed, "sign", s2.ScriptHash(), doc.hash)

	stranger := c.NewAccount(t)
	cStranger := c.WithSigners(stranger)
	cStranger.InvokeFail(t, registryconst.NotSignerError, "sign", stranger.ScriptHash(), doc.hash)

	h := cS1.Invoke(t, stackitem.Null{}, "sign", s1.ScriptHash(), doc.hash)
	aer := cS1.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "Signed", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(doc.hash),
		stackitem.NewByteArray(s1.ScriptHash().BytesBE()),
	}), aer.Events[0].Item)

	c.Invoke(t, true, "hasSigned", doc.hash, s1.ScriptHash())
	c.Invoke(t, false, "hasSigned", doc.hash, s2.ScriptHash())
	c.Invoke(t, expectedVerification(notary.BytesBE(), createdAt, docstatus.Pending, 1, 0),
		"verify", doc.hash)

	cS1.InvokeFail(t, registryconst.AlreadySignedError, "sign", s1.ScriptHash(), doc.hash)

	cS2 := c.WithSigners(s2)
	cS2.Invoke(t, stackitem.Null{}, "sign", s2.ScriptHash(), doc.hash)

	c.Invoke(t, expectedVerification(notary.BytesBE(), createdAt, docstatus.Signed, 2, 0),
		"verify", doc.hash)

	// Repeated attempts still report the duplicate, not the status.
	cS1.InvokeFail(t, registryconst.AlreadySignedError, "sign", s1.ScriptHash(), doc.hash)
}

// An identity listed twice among required signers still signs only once but
// counts towards the list length twice, so such documents never collect
// enough signatures to leave Pending. The list is stored verbatim.
func TestSignDuplicateSigners(t *testing.T) {
	c, roster := newRegistryInvoker(t)

	s1, s2 := c.NewAccount(t), c.NewAccount(t)
	doc, notary := notarizeDocument(t, c, roster, s1, s1, s2)
	createdAt := c.TopBlock(t).Timestamp

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(s1.ScriptHash().BytesBE()),
		stackitem.NewByteArray(s1.ScriptHash().BytesBE()),
		stackitem.NewByteArray(s2.ScriptHash().BytesBE()),
	}), "getRequiredSigners", doc.hash)

	cS1 := c.WithSigners(s1)
	cS1.Invoke(t, stackitem.Null{}, "sign", s1.ScriptHash(), doc.hash)
	cS1.InvokeFail(t, registryconst.AlreadySignedError, "sign", s1.ScriptHash(), doc.hash)

	cS2 := c.WithSigners(s2)
	cS2.Invoke(t, stackitem.Null{}, "sign", s2.ScriptHash(), doc.hash)

	c.Invoke(t, expectedVerification(notary.BytesBE(), createdAt, docstatus.Pending, 2, 0),
		"verify", doc.hash)
}

func TestApprove(t *testing.T) {
	c, roster := newRegistryInvoker(t)

	s1 := c.NewAccount(t)
	doc, notary := notarizeDocument(t, c, roster, s1)
	createdAt := c.TopBlock(t).Timestamp

	c.InvokeFail(t, registryconst.NotFoundError, "approve", s1.ScriptHash(), randomBytes(32))

	a1 := c.NewAccount(t)
	cA1 := c.WithSigners(a1)
	cA1.InvokeFail(t, common.ErrWitnessFailed, "approve", s1.ScriptHash(), doc.hash)

	// Approving a pending document is recorded without a status change.
	cA1.Invoke(t, stackitem.Null{}, "approve", a1.ScriptHash(), doc.hash)
	c.Invoke(t, expectedVerification(notary.BytesBE(), createdAt, docstatus.Pending, 0, 1),
		"verify", doc.hash)

	cA1.InvokeFail(t, registryconst.AlreadyApprovedError, "approve", a1.ScriptHash(), doc.hash)

	cS1 := c.WithSigners(s1)
	cS1.Invoke(t, stackitem.Null{}, "sign", s1.ScriptHash(), doc.hash)

	a2 := c.NewAccount(t)
	cA2 := c.WithSigners(a2)
	h := cA2.Invoke(t, stackitem.Null{}, "approve", a2.ScriptHash(), doc.hash)
	aer := cA2.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "Approved", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(doc.hash),
		stackitem.NewByteArray(a2.ScriptHash().BytesBE()),
	}), aer.Events[0].Item)

	c.Invoke(t, expectedVerification(notary.BytesBE(), createdAt, docstatus.Approved, 1, 2),
		"verify", doc.hash)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(a1.ScriptHash().BytesBE()),
		stackitem.NewByteArray(a2.ScriptHash().BytesBE()),
	}), "getApprovers", doc.hash)

	// No transitions out of Approved.
	a3 := c.NewAccount(t)
	cA3 := c.WithSigners(a3)
	cA3.InvokeFail(t, registryconst.StatusError, "approve", a3.ScriptHash(), doc.hash)
	cA2.InvokeFail(t, registryconst.AlreadyApprovedError, "approve", a2.ScriptHash(), doc.hash)
}

// Documents with no required signers accumulate approvals but never leave
// Pending: the Signed transition happens only inside sign and nobody can
// sign such documents.
func TestApproveWithoutSigners(t *testing.T) {
	c, roster := newRegistryInvoker(t)

	doc, notary := notarizeDocument(t, c, roster)
	createdAt := c.TopBlock(t).Timestamp

	a1 := c.NewAccount(t)
	cA1 := c.WithSigners(a1)
	cA1.Invoke(t, stackitem.Null{}, "approve", a1.ScriptHash(), doc.hash)

	c.Invoke(t, expectedVerification(notary.BytesBE(), createdAt, docstatus.Pending, 0, 1),
		"verify", doc.hash)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(a1.ScriptHash().BytesBE()),
	}), "getApprovers", doc.hash)

	cA1.InvokeFail(t, registryconst.NotSignerError, "sign", a1.ScriptHash(), doc.hash)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{}), "getRequiredSigners", doc.hash)
}

func TestReject(t *testing.T) {
	c, roster := newRegistryInvoker(t)

	s1, s2 := c.NewAccount(t), c.NewAccount(t)
	doc, notary := notarizeDocument(t, c, roster, s1, s2)
	createdAt := c.TopBlock(t).Timestamp

	const reason = "bad terms"

	c.InvokeFail(t, registryconst.NotFoundError, "reject", s1.ScriptHash(), randomBytes(32), reason)

	stranger := c.NewAccount(t)
	cStranger := c.WithSigners(stranger)
	cStranger.InvokeFail(t, registryconst.NotSignerError, "reject", stranger.ScriptHash(), doc.hash, reason)

	cS1 := c.WithSigners(s1)
	cS1.InvokeFail(t, common.ErrWitnessFailed, "reject", s2.ScriptHash(), doc.hash, reason)

	h := cS1.Invoke(t, stackitem.Null{}, "reject", s1.ScriptHash(), doc.hash, reason)
	aer := cS1.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "Rejected", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(doc.hash),
		stackitem.NewByteArray(s1.ScriptHash().BytesBE()),
		stackitem.NewByteArray([]byte(reason)),
	}), aer.Events[0].Item)

	c.Invoke(t, expectedVerification(notary.BytesBE(), createdAt, docstatus.Rejected, 0, 0),
		"verify", doc.hash)

	// Rejection is terminal.
	cS2 := c.WithSigners(s2)
	cS2.InvokeFail(t, registryconst.StatusError, "sign", s2.ScriptHash(), doc.hash)
	cS2.InvokeFail(t, registryconst.StatusError, "reject", s2.ScriptHash(), doc.hash, reason)
	cS2.InvokeFail(t, registryconst.StatusError, "approve", s2.ScriptHash(), doc.hash)

	// Signed documents cannot be rejected either.
	other, _ := notarizeDocument(t, c, roster, s1)
	cS1.Invoke(t, stackitem.Null{}, "sign", s1.ScriptHash(), other.hash)
	cS1.InvokeFail(t, registryconst.StatusError, "reject", s1.ScriptHash(), other.hash, reason)
}

func TestCreateVersion(t *testing.T) {
	c, roster := newRegistryInvoker(t)

	s1 := c.NewAccount(t)
	doc, notary := notarizeDocument(t, c, roster, s1)
	notarizedAt := c.TopBlock(t).Timestamp

	creator := c.NewAccount(t)
	cCreator := c.WithSigners(creator)
	v2 := dummyDocument()

	cCreator.InvokeFail(t, registryconst.LineageError, "createVersion",
		creator.ScriptHash(), randomBytes(32), v2.hash, "v2")
	cCreator.InvokeFail(t, common.ErrWitnessFailed, "createVersion",
		s1.ScriptHash(), doc.hash, v2.hash, "v2")
	cCreator.InvokeFail(t, registryconst.HashSizeError, "createVersion",
		creator.ScriptHash(), doc.hash, randomBytes(31), "v2")
	cCreator.InvokeFail(t, registryconst.VersionExistsError, "createVersion",
		creator.ScriptHash(), doc.hash, doc.hash, "v2")

	h := cCreator.Invoke(t, stackitem.Null{}, "createVersion",
		creator.ScriptHash(), doc.hash, v2.hash, "v2")
	versionedAt := c.TopBlock(t).Timestamp

	aer := cCreator.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "VersionCreated", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(doc.hash),
		stackitem.NewByteArray(v2.hash),
		stackitem.NewByteArray(creator.ScriptHash().BytesBE()),
		stackitem.Make(2),
	}), aer.Events[0].Item)

	c.Invoke(t, stackitem.NewBuffer(v2.hash), "getLatestVersion", doc.hash)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		expectedVersion(doc.hash, 1, stackitem.NewBuffer(make([]byte, 32)),
			notary.BytesBE(), notarizedAt, "", false),
		expectedVersion(v2.hash, 2, stackitem.NewBuffer(doc.hash),
			creator.ScriptHash().BytesBE(), versionedAt, "v2", true),
	}), "getVersions", doc.hash)

	// The new version is a pending document inheriting notary and signers.
	c.Invoke(t, expectedVerification(notary.BytesBE(), versionedAt, docstatus.Pending, 0, 0),
		"verify", v2.hash)
	c.Invoke(t, "", "getMetadata", v2.hash)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(s1.ScriptHash().BytesBE()),
	}), "getRequiredSigners", v2.hash)

	// Version hashes do not root lineages of their own.
	v3 := dummyDocument()
	cCreator.InvokeFail(t, registryconst.LineageError, "createVersion",
		creator.ScriptHash(), v2.hash, v3.hash, "v3")
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{}), "getVersions", v2.hash)
	c.Invoke(t, stackitem.NewBuffer(make([]byte, 32)), "getLatestVersion", v2.hash)

	cCreator.Invoke(t, stackitem.Null{}, "createVersion",
		creator.ScriptHash(), doc.hash, v3.hash, "v3")
	thirdAt := c.TopBlock(t).Timestamp

	c.Invoke(t, stackitem.NewBuffer(v3.hash), "getLatestVersion", doc.hash)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		expectedVersion(doc.hash, 1, stackitem.NewBuffer(make([]byte, 32)),
			notary.BytesBE(), notarizedAt, "", false),
		expectedVersion(v2.hash, 2, stackitem.NewBuffer(doc.hash),
			creator.ScriptHash().BytesBE(), versionedAt, "v2", false),
		expectedVersion(v3.hash, 3, stackitem.NewBuffer(v2.hash),
			creator.ScriptHash().BytesBE(), thirdAt, "v3", true),
	}), "getVersions", doc.hash)

	// Versions do not bump the document counter.
	c.Invoke(t, 1, "totalDocuments")

	// The signing flow operates on each version independently.
	cS1 := c.WithSigners(s1)
	cS1.Invoke(t, stackitem.Null{}, "sign", s1.ScriptHash(), v2.hash)
	c.Invoke(t, expectedVerification(notary.BytesBE(), versionedAt, docstatus.Signed, 1, 0),
		"verify", v2.hash)
	c.Invoke(t, expectedVerification(notary.BytesBE(), notarizedAt, docstatus.Pending, 0, 0),
		"verify", doc.hash)
}

func TestDocumentsIterator(t *testing.T) {
	c, roster := newRegistryInvoker(t)

	s1 := c.NewAccount(t)
	first, _ := notarizeDocument(t, c, roster, s1)
	second, _ := notarizeDocument(t, c, roster, s1)

	creator := c.NewAccount(t)
	cCreator := c.WithSigners(creator)
	v2 := dummyDocument()
	cCreator.Invoke(t, stackitem.Null{}, "createVersion",
		creator.ScriptHash(), first.hash, v2.hash, "v2")

	s, err := c.TestInvoke(t, "documents")
	require.NoError(t, err)

	iter := s.Pop().Value().(*storage.Iterator)

	var actual [][]byte
	for _, item := range iteratorToArray(iter) {
		b, err := item.TryBytes()
		require.NoError(t, err)
		actual = append(actual, b)
	}

	require.ElementsMatch(t, [][]byte{first.hash, second.hash, v2.hash}, actual)
	c.Invoke(t, 2, "totalDocuments")
}

func TestRegistryUpdate(t *testing.T) {
	c, _ := newRegistryInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	cAcc.InvokeFail(t, "only committee can update contract", "update",
		[]byte{1, 2, 3}, []byte{4, 5, 6}, nil)
}

func TestRegistryContractVersion(t *testing.T) {
	c, _ := newRegistryInvoker(t)
	c.Invoke(t, common.Version, "version")
}
