// Package registry contains RPC wrappers for DocProof Registry contract.
package registry

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)

// RegistryVersion is a contract-specific registry.Version type used by its methods.
type RegistryVersion struct {
	Hash        util.Uint256
	Number      *big.Int
	PrevHash    util.Uint256
	Creator     util.Uint160
	CreatedAt   *big.Int
	Description string
	Latest      bool
}

// RegistryVerificationResult is a contract-specific registry.VerificationResult type used by its methods.
type RegistryVerificationResult struct {
	Exists       bool
	Notary       util.Uint160
	CreatedAt    *big.Int
	Status       *big.Int
	SignCount    *big.Int
	ApproveCount *big.Int
}

// NotarizedEvent represents "Notarized" event emitted by the contract.
type NotarizedEvent struct {
	DocumentHash util.Uint256
	Notary       util.Uint160
}

// SignedEvent represents "Signed" event emitted by the contract.
type SignedEvent struct {
	DocumentHash util.Uint256
	Signer       util.Uint160
}

// ApprovedEvent represents "Approved" event emitted by the contract.
type ApprovedEvent struct {
	DocumentHash util.Uint256
	Approver     util.Uint160
}

// RejectedEvent represents "Rejected" event emitted by the contract.
type RejectedEvent struct {
	DocumentHash util.Uint256
	Signer       util.Uint160
	Reason       string
}

// VersionCreatedEvent represents "VersionCreated" event emitted by the contract.
type VersionCreatedEvent struct {
	OriginalHash util.Uint256
	VersionHash  util.Uint256
	Creator      util.Uint160
	Number       *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Documents invokes `documents` method of contract.
func (c *ContractReader) Documents() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "documents"))
}

// DocumentsExpanded is similar to Documents (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) DocumentsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "documents", _numOfIteratorItems))
}

// GetApprovers invokes `getApprovers` method of contract.
func (c *ContractReader) GetApprovers(hash util.Uint256) ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "getApprovers", hash))
}

// GetLatestVersion invokes `getLatestVersion` method of contract.
func (c *ContractReader) GetLatestVersion(original util.Uint256) (util.Uint256, error) {
	return unwrap.Uint256(c.invoker.Call(c.hash, "getLatestVersion", original))
}

// GetMetadata invokes `getMetadata` method of contract.
func (c *ContractReader) GetMetadata(hash util.Uint256) (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "getMetadata", hash))
}

// GetRequiredSigners invokes `getRequiredSigners` method of contract.
func (c *ContractReader) GetRequiredSigners(hash util.Uint256) ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "getRequiredSigners", hash))
}

// GetVersions invokes `getVersions` method of contract.
func (c *ContractReader) GetVersions(original util.Uint256) ([]*RegistryVersion, error) {
	return itemsToRegistryVersions(unwrap.Array(c.invoker.Call(c.hash, "getVersions", original)))
}

// HasSigned invokes `hasSigned` method of contract.
func (c *ContractReader) HasSigned(hash util.Uint256, account util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "hasSigned", hash, account))
}

// TotalDocuments invokes `totalDocuments` method of contract.
func (c *ContractReader) TotalDocuments() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalDocuments"))
}

// Verify invokes `verify` method of contract.
func (c *ContractReader) Verify(hash util.Uint256) (*RegistryVerificationResult, error) {
	return itemToRegistryVerificationResult(unwrap.Item(c.invoker.Call(c.hash, "verify", hash)))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Approve creates a transaction invoking `approve` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Approve(approver util.Uint160, hash util.Uint256) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "approve", approver, hash)
}

// ApproveTransaction creates a transaction invoking `approve` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ApproveTransaction(approver util.Uint160, hash util.Uint256) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "approve", approver, hash)
}

// ApproveUnsigned creates a transaction invoking `approve` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ApproveUnsigned(approver util.Uint160, hash util.Uint256) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "approve", nil, approver, hash)
}

// CreateVersion creates a transaction invoking `createVersion` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateVersion(creator util.Uint160, original util.Uint256, version util.Uint256, description string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createVersion", creator, original, version, description)
}

// CreateVersionTransaction creates a transaction invoking `createVersion` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateVersionTransaction(creator util.Uint160, original util.Uint256, version util.Uint256, description string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createVersion", creator, original, version, description)
}

// CreateVersionUnsigned creates a transaction invoking `createVersion` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateVersionUnsigned(creator util.Uint160, original util.Uint256, version util.Uint256, description string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createVersion", nil, creator, original, version, description)
}

// Notarize creates a transaction invoking `notarize` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Notarize(notary util.Uint160, hash util.Uint256, metadata string, signers []util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "notarize", notary, hash, metadata, signers)
}

// NotarizeTransaction creates a transaction invoking `notarize` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) NotarizeTransaction(notary util.Uint160, hash util.Uint256, metadata string, signers []util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "notarize", notary, hash, metadata, signers)
}

// NotarizeUnsigned creates a transaction invoking `notarize` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) NotarizeUnsigned(notary util.Uint160, hash util.Uint256, metadata string, signers []util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "notarize", nil, notary, hash, metadata, signers)
}

// Reject creates a transaction invoking `reject` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Reject(signer util.Uint160, hash util.Uint256, reason string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "reject", signer, hash, reason)
}

// RejectTransaction creates a transaction invoking `reject` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RejectTransaction(signer util.Uint160, hash util.Uint256, reason string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "reject", signer, hash, reason)
}

// RejectUnsigned creates a transaction invoking `reject` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RejectUnsigned(signer util.Uint160, hash util.Uint256, reason string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "reject", nil, signer, hash, reason)
}

// Sign creates a transaction invoking `sign` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Sign(signer util.Uint160, hash util.Uint256) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "sign", signer, hash)
}

// SignTransaction creates a transaction invoking `sign` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SignTransaction(signer util.Uint160, hash util.Uint256) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "sign", signer, hash)
}

// SignUnsigned creates a transaction invoking `sign` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SignUnsigned(signer util.Uint160, hash util.Uint256) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "sign", nil, signer, hash)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemsToRegistryVersions converts stack items into a slice of *RegistryVersion.
func itemsToRegistryVersions(items []stackitem.Item, err error) ([]*RegistryVersion, error) {
	if err != nil {
		return nil, err
	}
	res := make([]*RegistryVersion, len(items))
	for i := range items {
		res[i] = new(RegistryVersion)
		err = res[i].FromStackItem(items[i])
		if err != nil {
			return nil, fmt.Errorf("item #%d: %w", i, err)
		}
	}
	return res, nil
}

// FromStackItem retrieves fields of RegistryVersion from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *RegistryVersion) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 7 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Hash, err = func(item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Hash: %w", err)
	}

	index++
	res.Number, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Number: %w", err)
	}

	index++
	res.PrevHash, err = func(item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field PrevHash: %w", err)
	}

	index++
	res.Creator, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Creator: %w", err)
	}

	index++
	res.CreatedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreatedAt: %w", err)
	}

	index++
	res.Description, err = func(item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Description: %w", err)
	}

	index++
	res.Latest, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Latest: %w", err)
	}

	return nil
}

// itemToRegistryVerificationResult converts stack item into *RegistryVerificationResult.
func itemToRegistryVerificationResult(item stackitem.Item, err error) (*RegistryVerificationResult, error) {
	if err != nil {
		return nil, err
	}
	var res = new(RegistryVerificationResult)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of RegistryVerificationResult from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *RegistryVerificationResult) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 6 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Exists, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Exists: %w", err)
	}

	index++
	res.Notary, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Notary: %w", err)
	}

	index++
	res.CreatedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreatedAt: %w", err)
	}

	index++
	res.Status, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}

	index++
	res.SignCount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field SignCount: %w", err)
	}

	index++
	res.ApproveCount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ApproveCount: %w", err)
	}

	return nil
}

// NotarizedEventsFromApplicationLog retrieves a set of all emitted events
// with "Notarized" name from the provided [result.ApplicationLog].
func NotarizedEventsFromApplicationLog(log *result.ApplicationLog) ([]*NotarizedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*NotarizedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Notarized" {
				continue
			}
			event := new(NotarizedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize NotarizedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to NotarizedEvent or
// returns an error if it's not possible to do to so.
func (e *NotarizedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.DocumentHash, err = func(item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field DocumentHash: %w", err)
	}

	index++
	e.Notary, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Notary: %w", err)
	}

	return nil
}

// SignedEventsFromApplicationLog retrieves a set of all emitted events
// with "Signed" name from the provided [result.ApplicationLog].
func SignedEventsFromApplicationLog(log *result.ApplicationLog) ([]*SignedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*SignedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Signed" {
				continue
			}
			event := new(SignedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize SignedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to SignedEvent or
// returns an error if it's not possible to do to so.
func (e *SignedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.DocumentHash, err = func(item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field DocumentHash: %w", err)
	}

	index++
	e.Signer, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Signer: %w", err)
	}

	return nil
}

// ApprovedEventsFromApplicationLog retrieves a set of all emitted events
// with "Approved" name from the provided [result.ApplicationLog].
func ApprovedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ApprovedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ApprovedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Approved" {
				continue
			}
			event := new(ApprovedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ApprovedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ApprovedEvent or
// returns an error if it's not possible to do to so.
func (e *ApprovedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.DocumentHash, err = func(item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field DocumentHash: %w", err)
	}

	index++
	e.Approver, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Approver: %w", err)
	}

	return nil
}

// RejectedEventsFromApplicationLog retrieves a set of all emitted events
// with "Rejected" name from the provided [result.ApplicationLog].
func RejectedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RejectedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RejectedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Rejected" {
				continue
			}
			event := new(RejectedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RejectedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RejectedEvent or
// returns an error if it's not possible to do to so.
func (e *RejectedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.DocumentHash, err = func(item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field DocumentHash: %w", err)
	}

	index++
	e.Signer, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Signer: %w", err)
	}

	index++
	e.Reason, err = func(item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Reason: %w", err)
	}

	return nil
}

// VersionCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "VersionCreated" name from the provided [result.ApplicationLog].
func VersionCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*VersionCreatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*VersionCreatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "VersionCreated" {
				continue
			}
			event := new(VersionCreatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize VersionCreatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to VersionCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *VersionCreatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.OriginalHash, err = func(item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field OriginalHash: %w", err)
	}

	index++
	e.VersionHash, err = func(item stackitem.Item) (util.Uint256, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint256{}, err
		}
		u, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return util.Uint256{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field VersionHash: %w", err)
	}

	index++
	e.Creator, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Creator: %w", err)
	}

	index++
	e.Number, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Number: %w", err)
	}

	return nil
}
