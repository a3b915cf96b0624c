package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/docproof-contract/rpc/registry"
	"github.com/nspcc-dev/docproof-contract/rpc/roster"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// iteratorBatchSize is the number of iterator items requested from the RPC
// server at once.
const iteratorBatchSize = 100

// wrapper over the Neo RPC client providing DocProof services needed for the
// current command.
type remoteBlockchain struct {
	rpc *rpcclient.Client
	inv *invoker.Invoker

	registry *registry.ContractReader
	roster   *roster.ContractReader
}

// newRemoteBlockchain dials Neo RPC server and returns remoteBlockchain based
// on the opened connection. Connection and all requests are done within 15s
// timeout.
func newRemoteBlockchain(endpoint, registryAddress, rosterAddress string) (*remoteBlockchain, error) {
	registryHash, err := util.Uint160DecodeStringLE(registryAddress)
	if err != nil {
		return nil, fmt.Errorf("decode Registry contract address: %w", err)
	}

	rosterHash, err := util.Uint160DecodeStringLE(rosterAddress)
	if err != nil {
		return nil, fmt.Errorf("decode Roster contract address: %w", err)
	}

	c, err := rpcclient.New(context.Background(), endpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	inv := invoker.New(c, nil)

	return &remoteBlockchain{
		rpc:      c,
		inv:      inv,
		registry: registry.NewReader(inv, registryHash),
		roster:   roster.NewReader(inv, rosterHash),
	}, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

// listDocuments collects content hashes of all notarized documents from the
// contract iterator.
func (x *remoteBlockchain) listDocuments() ([]util.Uint256, error) {
	sessionID, iter, err := x.registry.Documents()
	if err != nil {
		return nil, fmt.Errorf("open iterator over notarized documents: %w", err)
	}

	defer x.terminateSession(sessionID)

	var res []util.Uint256

	err = x.traverse(sessionID, &iter, func(item stackitem.Item) error {
		b, err := item.TryBytes()
		if err != nil {
			return fmt.Errorf("unexpected iterator item: %w", err)
		}

		h, err := util.Uint256DecodeBytesBE(b)
		if err != nil {
			return fmt.Errorf("decode document hash: %w", err)
		}

		res = append(res, h)
		return nil
	})

	return res, err
}

// listNotaries collects addresses of all explicitly authorized notaries from
// the contract iterator.
func (x *remoteBlockchain) listNotaries() ([]util.Uint160, error) {
	sessionID, iter, err := x.roster.Notaries()
	if err != nil {
		return nil, fmt.Errorf("open iterator over notaries: %w", err)
	}

	defer x.terminateSession(sessionID)

	var res []util.Uint160

	err = x.traverse(sessionID, &iter, func(item stackitem.Item) error {
		b, err := item.TryBytes()
		if err != nil {
			return fmt.Errorf("unexpected iterator item: %w", err)
		}

		h, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return fmt.Errorf("decode notary address: %w", err)
		}

		res = append(res, h)
		return nil
	})

	return res, err
}

// traverse reads the iterator to the end passing every item into f.
// traverse breaks on any f's error and returns it.
func (x *remoteBlockchain) traverse(sessionID uuid.UUID, iter *result.Iterator, f func(stackitem.Item) error) error {
	for {
		items, err := x.inv.TraverseIterator(sessionID, iter, iteratorBatchSize)
		if err != nil {
			return fmt.Errorf("traverse iterator: %w", err)
		}

		if len(items) == 0 {
			return nil
		}

		for i := range items {
			if err := f(items[i]); err != nil {
				return err
			}
		}
	}
}

func (x *remoteBlockchain) terminateSession(sessionID uuid.UUID) {
	if sessionID != (uuid.UUID{}) {
		_ = x.inv.TerminateSession(sessionID)
	}
}
