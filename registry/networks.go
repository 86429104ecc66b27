package registry

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/ocn-tools/ocn-registry/interfaces"
)

// Environment bundles the connection parameters for one registry
// deployment. It is passed explicitly at construction; there is no global
// network lookup table.
type Environment struct {
	// Name is a human-readable label used in logs.
	Name string

	// RPC is the JSON-RPC endpoint of a node on the target chain.
	RPC string

	// ChainID is the EIP-155 chain id used when signing transactions.
	ChainID int64

	// Contract is the address of the deployed registry contract.
	Contract common.Address
}

// Local is a convenience environment for a development chain on the
// default RPC port. The contract address must still be filled in.
var Local = Environment{
	Name:    "local",
	RPC:     "http://127.0.0.1:8545",
	ChainID: 1337,
}

// Validate checks the environment is complete enough to dial.
func (e Environment) Validate() error {
	if e.RPC == "" {
		return fmt.Errorf("environment %q has no RPC endpoint: %w", e.Name, interfaces.ErrInvalidArgument)
	}
	if e.ChainID == 0 {
		return fmt.Errorf("environment %q has no chain id: %w", e.Name, interfaces.ErrInvalidArgument)
	}
	if e.Contract == (common.Address{}) {
		return fmt.Errorf("environment %q has no contract address: %w", e.Name, interfaces.ErrInvalidArgument)
	}
	return nil
}

// Dial connects to the environment's RPC endpoint and returns a registry
// client bound to its contract. With a nil signer key the client is
// read-only; otherwise transaction options for the key are installed.
func Dial(ctx context.Context, env Environment, signerKey *ecdsa.PrivateKey) (*Client, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}

	rpc, err := ethclient.DialContext(ctx, env.RPC)
	if err != nil {
		return nil, fmt.Errorf("could not dial %s RPC at %s: %w", env.Name, env.RPC, err)
	}

	client, err := NewClient(rpc, rpc, env.Contract)
	if err != nil {
		return nil, err
	}

	if signerKey != nil {
		auth, err := bind.NewKeyedTransactorWithChainID(signerKey, big.NewInt(env.ChainID))
		if err != nil {
			return nil, fmt.Errorf("could not create transactor: %w", err)
		}
		client.SetTransactOpts(auth)
	}
	return client, nil
}
