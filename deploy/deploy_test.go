package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/docproof-contract/tests"
	"github.com/nspcc-dev/neo-go/pkg/config/netmode"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// testChain implements [Blockchain] interface locally, without a live
// network. Transactions are accepted unconditionally and execute with HALT
// state on the first poll.
type testChain struct {
	onChain map[util.Uint160]*state.Contract
	sent    []*transaction.Transaction
}

func newTestChain() *testChain {
	return &testChain{onChain: make(map[util.Uint160]*state.Contract)}
}

func (c *testChain) Context() context.Context { return context.Background() }

func (c *testChain) GetVersion() (*result.Version, error) {
	v := new(result.Version)
	v.Protocol.Network = netmode.UnitTestNet
	v.Protocol.MillisecondsPerBlock = 10
	v.Protocol.MaxValidUntilBlockIncrement = 100
	return v, nil
}

func (c *testChain) GetBlockCount() (uint32, error) { return 1, nil }

func (c *testChain) GetContractStateByHash(h util.Uint160) (*state.Contract, error) {
	ctr, ok := c.onChain[h]
	if !ok {
		return nil, errors.New("Unknown contract")
	}
	return ctr, nil
}

func (c *testChain) GetApplicationLog(hash util.Uint256, trig *trigger.Type) (*result.ApplicationLog, error) {
	for i := range c.sent {
		if c.sent[i].Hash() == hash {
			return &result.ApplicationLog{
				Container:     hash,
				IsTransaction: true,
				Executions: []state.Execution{{
					Trigger:     trigger.Application,
					VMState:     vmstate.Halt,
					GasConsumed: 100,
					Stack:       []stackitem.Item{stackitem.Null{}},
				}},
			}, nil
		}
	}
	return nil, errors.New("Unknown transaction")
}

func (c *testChain) InvokeContractVerify(contract util.Uint160, params []smartcontract.Parameter, signers []transaction.Signer, witnesses ...transaction.Witness) (*result.Invoke, error) {
	return &result.Invoke{State: "HALT", GasConsumed: 100}, nil
}

func (c *testChain) InvokeFunction(contract util.Uint160, operation string, params []smartcontract.Parameter, signers []transaction.Signer) (*result.Invoke, error) {
	return &result.Invoke{State: "HALT", GasConsumed: 100}, nil
}

func (c *testChain) InvokeScript(script []byte, signers []transaction.Signer) (*result.Invoke, error) {
	// Transactions are built from the script echoed by the test invocation.
	return &result.Invoke{State: "HALT", GasConsumed: 100, Script: script, Stack: []stackitem.Item{stackitem.Null{}}}, nil
}

func (c *testChain) TerminateSession(sessionID uuid.UUID) (bool, error) { return true, nil }

func (c *testChain) TraverseIterator(sessionID, iteratorID uuid.UUID, maxItemsCount int) ([]stackitem.Item, error) {
	return nil, nil
}

func (c *testChain) CalculateNetworkFee(tx *transaction.Transaction) (int64, error) {
	return 100, nil
}

func (c *testChain) SendRawTransaction(tx *transaction.Transaction) (util.Uint256, error) {
	c.sent = append(c.sent, tx)
	return tx.Hash(), nil
}

func testContractPrm(t *testing.T, sender util.Uint160, ctrPath string) ContractPrm {
	c, err := tests.ContractInfo(sender, ctrPath)
	require.NoError(t, err)

	return ContractPrm{
		NEF:      *c.NEF,
		Manifest: *c.Manifest,
	}
}

func TestDeployZeroOwner(t *testing.T) {
	acc, err := wallet.NewAccount()
	require.NoError(t, err)

	_, err = Deploy(context.Background(), Prm{
		Logger:       zaptest.NewLogger(t),
		Blockchain:   newTestChain(),
		LocalAccount: acc,
	})
	require.ErrorContains(t, err, "zero service owner")
}

func TestDeploy(t *testing.T) {
	acc, err := wallet.NewAccount()
	require.NoError(t, err)

	owner, err := wallet.NewAccount()
	require.NoError(t, err)

	var (
		bc  = newTestChain()
		prm = Prm{
			Logger:       zaptest.NewLogger(t),
			Blockchain:   bc,
			LocalAccount: acc,
			ServiceOwner: owner.ScriptHash(),
			Roster:       testContractPrm(t, acc.ScriptHash(), "../contracts/roster"),
			Registry:     testContractPrm(t, acc.ScriptHash(), "../contracts/registry"),
		}
	)

	res, err := Deploy(context.Background(), prm)
	require.NoError(t, err)
	require.Len(t, bc.sent, 2)

	expectedRoster := state.CreateContractHash(acc.ScriptHash(), prm.Roster.NEF.Checksum, prm.Roster.Manifest.Name)
	expectedRegistry := state.CreateContractHash(acc.ScriptHash(), prm.Registry.NEF.Checksum, prm.Registry.Manifest.Name)
	require.Equal(t, expectedRoster, res.Roster)
	require.Equal(t, expectedRegistry, res.Registry)

	// Repeated run must not send any new transactions.
	bc.onChain[expectedRoster] = &state.Contract{}
	bc.onChain[expectedRegistry] = &state.Contract{}

	resAgain, err := Deploy(context.Background(), prm)
	require.NoError(t, err)
	require.Equal(t, res, resAgain)
	require.Len(t, bc.sent, 2)
}

func TestDeployCancelledContext(t *testing.T) {
	acc, err := wallet.NewAccount()
	require.NoError(t, err)

	owner, err := wallet.NewAccount()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Deploy(ctx, Prm{
		Logger:       zaptest.NewLogger(t),
		Blockchain:   newTestChain(),
		LocalAccount: acc,
		ServiceOwner: owner.ScriptHash(),
		Roster:       testContractPrm(t, acc.ScriptHash(), "../contracts/roster"),
		Registry:     testContractPrm(t, acc.ScriptHash(), "../contracts/registry"),
	})
	require.ErrorIs(t, err, context.Canceled)
}
