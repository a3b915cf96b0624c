// Package deploy provides DocProof contracts deployment routine.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for DocProof contracts deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	// GetContractStateByHash may return non-nil state.Contract along with an error.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// ContractPrm groups deployment parameters of a single DocProof contract.
type ContractPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Prm groups all parameters of the DocProof deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy the contracts to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	// Account authorized to manage the notary roster.
	ServiceOwner util.Uint160

	Roster   ContractPrm
	Registry ContractPrm
}

// Contracts groups addresses of the deployed DocProof contracts.
type Contracts struct {
	Roster   util.Uint160
	Registry util.Uint160
}

// Deploy initializes DocProof contracts on the Neo network represented by
// given Prm.Blockchain. Deployment progress is logged. The procedure is
// idempotent: contracts already present on the chain are left as-is, so
// Deploy may be safely re-run after a failure.
//
// Summary of stages:
//  1. Roster contract deployment
//  2. Registry contract deployment bound to the Roster contract address
func Deploy(ctx context.Context, prm Prm) (Contracts, error) {
	var res Contracts

	if prm.ServiceOwner.Equals(util.Uint160{}) {
		return res, errors.New("zero service owner address")
	}

	localActor, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return res, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	deployer := management.New(localActor)

	prm.Logger.Info("initializing Roster contract on the chain...")

	res.Roster, err = syncContract(ctx, syncContractPrm{
		logger:        prm.Logger,
		blockchain:    prm.Blockchain,
		localActor:    localActor,
		deployer:      deployer,
		localNEF:      prm.Roster.NEF,
		localManifest: prm.Roster.Manifest,
		deployArgs:    []any{prm.ServiceOwner},
	})
	if err != nil {
		return res, fmt.Errorf("init Roster contract on the chain: %w", err)
	}

	prm.Logger.Info("Roster contract successfully initialized on the chain",
		zap.Stringer("address", res.Roster))

	prm.Logger.Info("initializing Registry contract on the chain...")

	res.Registry, err = syncContract(ctx, syncContractPrm{
		logger:        prm.Logger,
		blockchain:    prm.Blockchain,
		localActor:    localActor,
		deployer:      deployer,
		localNEF:      prm.Registry.NEF,
		localManifest: prm.Registry.Manifest,
		deployArgs:    []any{res.Roster},
	})
	if err != nil {
		return res, fmt.Errorf("init Registry contract on the chain: %w", err)
	}

	prm.Logger.Info("Registry contract successfully initialized on the chain",
		zap.Stringer("address", res.Registry))

	return res, nil
}

// syncContractPrm groups parameters of syncContract.
type syncContractPrm struct {
	logger        *zap.Logger
	blockchain    Blockchain
	localActor    *actor.Actor
	deployer      *management.Contract
	localNEF      nef.File
	localManifest manifest.Manifest
	deployArgs    []any
}

// syncContract deploys the contract unless it is already on the chain. The
// resulting address is deterministic: it depends on the deployer account and
// the local contract name/code only, so repeated runs converge to the same
// contract.
func syncContract(ctx context.Context, prm syncContractPrm) (util.Uint160, error) {
	select {
	case <-ctx.Done():
		return util.Uint160{}, fmt.Errorf("wait for contract synchronization: %w", ctx.Err())
	default:
	}

	onChainAddress := state.CreateContractHash(prm.localActor.Sender(), prm.localNEF.Checksum, prm.localManifest.Name)

	ctrState, err := prm.blockchain.GetContractStateByHash(onChainAddress)
	if err == nil && ctrState != nil {
		prm.logger.Info("contract is already on the chain",
			zap.String("name", prm.localManifest.Name), zap.Stringer("address", onChainAddress))
		return onChainAddress, nil
	} else if err != nil && !strings.Contains(err.Error(), "Unknown contract") {
		return util.Uint160{}, fmt.Errorf("read on-chain state of the contract by address: %w", err)
	}

	txHash, vub, err := prm.deployer.Deploy(&prm.localNEF, &prm.localManifest, prm.deployArgs)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("send transaction deploying the contract: %w", err)
	}

	prm.logger.Info("transaction deploying the contract has been sent, waiting for the outcome...",
		zap.String("name", prm.localManifest.Name), zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	txRes, err := prm.localActor.Wait(txHash, vub, nil)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("wait for deploy transaction outcome: %w", err)
	} else if txRes.VMState != vmstate.Halt {
		return util.Uint160{}, fmt.Errorf("deploy transaction failed: %s", txRes.FaultException)
	}

	return onChainAddress, nil
}
