package interfaces

import (
	"context"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// RegistryReader exposes the read-only registry surface. Absent listings are
// reported as nil results, never as errors; zero-operator sentinel entries
// returned by the contract are filtered out.
type RegistryReader interface {
	// GetNode returns the node listed for the operator, or nil if the
	// operator has no listing.
	GetNode(ctx context.Context, operator common.Address) (*Node, error)

	// GetAllNodes returns every listed node.
	GetAllNodes(ctx context.Context) ([]Node, error)

	// GetPartyByAddress returns the party registered under the given
	// wallet address, or nil if none is registered.
	GetPartyByAddress(ctx context.Context, party common.Address) (*PartyDetails, error)

	// GetPartyByOcpi returns the party registered under the given OCPI
	// (countryCode, partyID) pair, or nil if none is registered.
	GetPartyByOcpi(ctx context.Context, countryCode, partyID string) (*PartyDetails, error)

	// GetAllParties returns every registered party.
	GetAllParties(ctx context.Context) ([]PartyDetails, error)
}

// RegistryWriter exposes the state-modifying registry surface. Direct
// methods change the listing owned by the transactor's own address. Raw
// methods implement the delegated protocol: the supplied signer key
// authorizes the change off-chain while the transactor submits and pays for
// the transaction. Signer keys are used for the duration of the call only
// and never retained.
type RegistryWriter interface {
	SetNode(ctx context.Context, rawURL string) (*types.Transaction, error)
	DeleteNode(ctx context.Context) (*types.Transaction, error)
	SetParty(ctx context.Context, countryCode, partyID string, roles []Role, operator common.Address) (*types.Transaction, error)
	DeleteParty(ctx context.Context) (*types.Transaction, error)
	SetPartyModules(ctx context.Context, sender, receiver []Module) (*types.Transaction, error)

	SetNodeRaw(ctx context.Context, rawURL string, signer *ecdsa.PrivateKey) (*types.Transaction, error)
	DeleteNodeRaw(ctx context.Context, signer *ecdsa.PrivateKey) (*types.Transaction, error)
	SetPartyRaw(ctx context.Context, countryCode, partyID string, roles []Role, operator common.Address, signer *ecdsa.PrivateKey) (*types.Transaction, error)
	DeletePartyRaw(ctx context.Context, signer *ecdsa.PrivateKey) (*types.Transaction, error)
	SetPartyModulesRaw(ctx context.Context, sender, receiver []Module, signer *ecdsa.PrivateKey) (*types.Transaction, error)
}

// Registry combines the full read/write registry surface.
type Registry interface {
	RegistryReader
	RegistryWriter
}
