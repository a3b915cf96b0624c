package roster

import (
	"github.com/nspcc-dev/docproof-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	// prefixNotary marks authorized notary accounts.
	prefixNotary byte = 0x01
)

const ownerKey = "owner"

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	args := data.([]any)
	if isUpdate {
		version := args[len(args)-1].(int)
		common.CheckVersion(version)
		return
	}

	owner := args[0].(interop.Hash160)
	if len(owner) != interop.Hash160Len {
		panic("service owner address is missing")
	}
	storage.Put(ctx, ownerKey, owner)

	runtime.Log("roster contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// by committee only.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("roster contract updated")
}

// AddNotary authorizes the account to notarize documents. It can be invoked
// by the service owner only. Adding an already authorized notary is not an
// error.
//
// AddNotary produces NotaryAdded notification.
func AddNotary(notary interop.Hash160) {
	ctx := storage.GetContext()

	if len(notary) != interop.Hash160Len {
		panic("invalid notary address length")
	}
	common.CheckOwnerWitness(serviceOwner(ctx))

	storage.Put(ctx, notaryKey(notary), []byte{1})

	runtime.Notify("NotaryAdded", notary)
}

// RemoveNotary revokes notary authorization of the account. It can be
// invoked by the service owner only. Removing an unknown notary is not an
// error. The owner itself cannot be revoked, it is authorized implicitly.
//
// RemoveNotary produces NotaryRemoved notification.
func RemoveNotary(notary interop.Hash160) {
	ctx := storage.GetContext()

	if len(notary) != interop.Hash160Len {
		panic("invalid notary address length")
	}
	common.CheckOwnerWitness(serviceOwner(ctx))

	storage.Delete(ctx, notaryKey(notary))

	runtime.Notify("NotaryRemoved", notary)
}

// IsAuthorizedNotary returns true if the account is the service owner or an
// authorized notary.
func IsAuthorizedNotary(account interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()

	if common.BytesEqual(serviceOwner(ctx), account) {
		return true
	}
	return storage.Get(ctx, notaryKey(account)) != nil
}

// Owner returns the service owner account set at deployment.
func Owner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return serviceOwner(ctx)
}

// Notaries returns an iterator over authorized notary accounts. The owner is
// not listed.
func Notaries() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{prefixNotary}, storage.KeysOnly|storage.RemovePrefix)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func serviceOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

func notaryKey(account interop.Hash160) []byte {
	return append([]byte{prefixNotary}, account...)
}
