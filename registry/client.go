// Package registry implements the OCN registry client facade. It composes
// the contract binding with the delegated-operation builders, translating
// raw contract tuples into the interfaces data model and gating writes on
// the presence of transaction options.
package registry

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	bindings "github.com/ocn-tools/ocn-registry/bindings/registry"
	"github.com/ocn-tools/ocn-registry/delegated"
	"github.com/ocn-tools/ocn-registry/interfaces"
)

// Client interacts with an OCN registry contract deployed on an
// Ethereum-compatible chain. Reads work on any client; writes require
// transaction options set via SetTransactOpts and fail with ErrNotWritable
// otherwise, before any network interaction.
type Client struct {
	contract *bindings.Registry
	backend  bind.DeployBackend
	address  common.Address
	auth     *bind.TransactOpts
}

var _ interfaces.Registry = (*Client)(nil)

// NewClient creates a registry client for the contract at the given
// address. The ContractBackend serves reads and transaction submission; the
// DeployBackend serves inclusion waits.
func NewClient(client bind.ContractBackend, backend bind.DeployBackend, address common.Address) (*Client, error) {
	contract, err := bindings.NewRegistry(address, client)
	if err != nil {
		return nil, err
	}

	return &Client{
		contract: contract,
		backend:  backend,
		address:  address,
	}, nil
}

// SetTransactOpts sets the transaction options used to sign and pay for
// state-modifying calls. Without them the client is read-only.
func (c *Client) SetTransactOpts(auth *bind.TransactOpts) {
	c.auth = auth
}

// TransactorAddress returns the address paying for transactions, or the
// zero address for a read-only client.
func (c *Client) TransactorAddress() common.Address {
	if c.auth == nil {
		return common.Address{}
	}
	return c.auth.From
}

// WaitMined blocks until the transaction is included in a block, returning
// its receipt. Cancellation is caller-driven through the context.
func (c *Client) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return bind.WaitMined(ctx, c.backend, tx)
}

func (c *Client) callOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx}
}

func (c *Client) transactOpts(ctx context.Context) *bind.TransactOpts {
	opts := *c.auth
	opts.Context = ctx
	return &opts
}

// GetNode returns the node listed for the operator, or nil if the operator
// has no listing.
func (c *Client) GetNode(ctx context.Context, operator common.Address) (*interfaces.Node, error) {
	url, err := c.contract.GetNode(c.callOpts(ctx), operator)
	if err != nil {
		return nil, err
	}
	if url == "" {
		return nil, nil
	}
	return &interfaces.Node{Operator: operator, URL: url}, nil
}

// GetAllNodes returns every listed node.
func (c *Client) GetAllNodes(ctx context.Context) ([]interfaces.Node, error) {
	operators, err := c.contract.GetNodeOperators(c.callOpts(ctx))
	if err != nil {
		return nil, err
	}

	nodes := make([]interfaces.Node, 0, len(operators))
	for _, operator := range operators {
		node, err := c.GetNode(ctx, operator)
		if err != nil {
			return nil, err
		}
		if node == nil {
			continue
		}
		nodes = append(nodes, *node)
	}
	return nodes, nil
}

// GetPartyByAddress returns the party registered under the given wallet
// address, or nil if the listing is absent.
func (c *Client) GetPartyByAddress(ctx context.Context, party common.Address) (*interfaces.PartyDetails, error) {
	details, err := c.contract.GetPartyDetailsByAddress(c.callOpts(ctx), party)
	if err != nil {
		return nil, err
	}
	if details.OperatorAddress == (common.Address{}) {
		return nil, nil
	}

	decoded, err := decodeParty(party, details.CountryCode, details.PartyId, details.Roles, details.ModulesSender, details.ModulesReceiver, details.OperatorAddress)
	if err != nil {
		return nil, err
	}
	return c.attachNode(ctx, decoded)
}

// GetPartyByOcpi returns the party registered under the given OCPI
// (countryCode, partyID) pair, or nil if the listing is absent.
func (c *Client) GetPartyByOcpi(ctx context.Context, countryCode, partyID string) (*interfaces.PartyDetails, error) {
	cc, pid, err := ocpiIdentifiers(countryCode, partyID)
	if err != nil {
		return nil, err
	}

	details, err := c.contract.GetPartyDetailsByOcpi(c.callOpts(ctx), cc, pid)
	if err != nil {
		return nil, err
	}
	if details.OperatorAddress == (common.Address{}) || details.PartyAddress == (common.Address{}) {
		return nil, nil
	}

	decoded, err := decodeParty(details.PartyAddress, cc, pid, details.Roles, details.ModulesSender, details.ModulesReceiver, details.OperatorAddress)
	if err != nil {
		return nil, err
	}
	return c.attachNode(ctx, decoded)
}

// GetAllParties returns every registered party.
func (c *Client) GetAllParties(ctx context.Context) ([]interfaces.PartyDetails, error) {
	addresses, err := c.contract.GetParties(c.callOpts(ctx))
	if err != nil {
		return nil, err
	}

	parties := make([]interfaces.PartyDetails, 0, len(addresses))
	for _, address := range addresses {
		party, err := c.GetPartyByAddress(ctx, address)
		if err != nil {
			return nil, err
		}
		if party == nil {
			continue
		}
		parties = append(parties, *party)
	}
	return parties, nil
}

func (c *Client) attachNode(ctx context.Context, party *interfaces.PartyDetails) (*interfaces.PartyDetails, error) {
	node, err := c.GetNode(ctx, party.Node.Operator)
	if err != nil {
		return nil, err
	}
	if node != nil {
		party.Node.URL = node.URL
	}
	return party, nil
}

// SetNode lists the transactor's node under the given URL, normalized to
// its origin form.
func (c *Client) SetNode(ctx context.Context, rawURL string) (*types.Transaction, error) {
	if c.auth == nil {
		return nil, interfaces.ErrNotWritable
	}
	origin, err := interfaces.NormalizeOrigin(rawURL)
	if err != nil {
		return nil, err
	}
	return c.contract.SetNode(c.transactOpts(ctx), origin)
}

// DeleteNode removes the transactor's node listing.
func (c *Client) DeleteNode(ctx context.Context) (*types.Transaction, error) {
	if c.auth == nil {
		return nil, interfaces.ErrNotWritable
	}
	return c.contract.DeleteNode(c.transactOpts(ctx))
}

// SetParty registers the transactor as the party identified by the OCPI
// pair, linked to the node of the given operator.
func (c *Client) SetParty(ctx context.Context, countryCode, partyID string, roles []interfaces.Role, operator common.Address) (*types.Transaction, error) {
	if c.auth == nil {
		return nil, interfaces.ErrNotWritable
	}
	cc, pid, err := ocpiIdentifiers(countryCode, partyID)
	if err != nil {
		return nil, err
	}
	roleIndices, err := roleIndices(roles)
	if err != nil {
		return nil, err
	}
	return c.contract.SetParty(c.transactOpts(ctx), cc, pid, roleIndices, operator)
}

// DeleteParty removes the transactor's party listing.
func (c *Client) DeleteParty(ctx context.Context) (*types.Transaction, error) {
	if c.auth == nil {
		return nil, interfaces.ErrNotWritable
	}
	return c.contract.DeleteParty(c.transactOpts(ctx))
}

// SetPartyModules updates the transactor party's module lists.
func (c *Client) SetPartyModules(ctx context.Context, sender, receiver []interfaces.Module) (*types.Transaction, error) {
	if c.auth == nil {
		return nil, interfaces.ErrNotWritable
	}
	senderIndices, err := moduleIndices(sender)
	if err != nil {
		return nil, err
	}
	receiverIndices, err := moduleIndices(receiver)
	if err != nil {
		return nil, err
	}
	return c.contract.SetPartyModules(c.transactOpts(ctx), senderIndices, receiverIndices)
}

// SetNodeRaw lists a node on behalf of the signer. The signer key
// authorizes the operation off-chain; the transactor submits and pays.
func (c *Client) SetNodeRaw(ctx context.Context, rawURL string, signer *ecdsa.PrivateKey) (*types.Transaction, error) {
	if c.auth == nil {
		return nil, interfaces.ErrNotWritable
	}
	op, err := delegated.BuildSetNode(rawURL, signer)
	if err != nil {
		return nil, err
	}
	return c.contract.SetNodeRaw(c.transactOpts(ctx), op.Signer, op.URL, op.Signature.V, op.Signature.R, op.Signature.S)
}

// DeleteNodeRaw removes a node listing on behalf of the signer.
func (c *Client) DeleteNodeRaw(ctx context.Context, signer *ecdsa.PrivateKey) (*types.Transaction, error) {
	if c.auth == nil {
		return nil, interfaces.ErrNotWritable
	}
	op, err := delegated.BuildDeleteNode(signer)
	if err != nil {
		return nil, err
	}
	return c.contract.DeleteNodeRaw(c.transactOpts(ctx), op.Signer, op.Signature.V, op.Signature.R, op.Signature.S)
}

// SetPartyRaw registers a party on behalf of the signer.
func (c *Client) SetPartyRaw(ctx context.Context, countryCode, partyID string, roles []interfaces.Role, operator common.Address, signer *ecdsa.PrivateKey) (*types.Transaction, error) {
	if c.auth == nil {
		return nil, interfaces.ErrNotWritable
	}
	op, err := delegated.BuildSetParty(countryCode, partyID, roles, operator, signer)
	if err != nil {
		return nil, err
	}

	cc, pid, err := ocpiIdentifiers(op.CountryCode, op.PartyID)
	if err != nil {
		return nil, err
	}
	roleIdx, err := roleIndices(op.Roles)
	if err != nil {
		return nil, err
	}
	return c.contract.SetPartyRaw(c.transactOpts(ctx), op.Signer, cc, pid, roleIdx, op.Operator, op.Signature.V, op.Signature.R, op.Signature.S)
}

// DeletePartyRaw removes a party listing on behalf of the signer.
func (c *Client) DeletePartyRaw(ctx context.Context, signer *ecdsa.PrivateKey) (*types.Transaction, error) {
	if c.auth == nil {
		return nil, interfaces.ErrNotWritable
	}
	op, err := delegated.BuildDeleteParty(signer)
	if err != nil {
		return nil, err
	}
	return c.contract.DeletePartyRaw(c.transactOpts(ctx), op.Signer, op.Signature.V, op.Signature.R, op.Signature.S)
}

// SetPartyModulesRaw updates module lists on behalf of the signer.
func (c *Client) SetPartyModulesRaw(ctx context.Context, sender, receiver []interfaces.Module, signer *ecdsa.PrivateKey) (*types.Transaction, error) {
	if c.auth == nil {
		return nil, interfaces.ErrNotWritable
	}
	op, err := delegated.BuildSetPartyModules(sender, receiver, signer)
	if err != nil {
		return nil, err
	}

	senderIdx, err := moduleIndices(op.Sender)
	if err != nil {
		return nil, err
	}
	receiverIdx, err := moduleIndices(op.Receiver)
	if err != nil {
		return nil, err
	}
	return c.contract.SetPartyModulesRaw(c.transactOpts(ctx), op.Signer, senderIdx, receiverIdx, op.Signature.V, op.Signature.R, op.Signature.S)
}

// ocpiIdentifiers validates and upper-cases an OCPI (countryCode, partyID)
// pair into the fixed-width forms the contract stores.
func ocpiIdentifiers(countryCode, partyID string) ([2]byte, [3]byte, error) {
	var cc [2]byte
	var pid [3]byte

	if len(countryCode) != 2 {
		return cc, pid, fmt.Errorf("country code %q must be exactly 2 characters: %w", countryCode, interfaces.ErrInvalidArgument)
	}
	if len(partyID) != 3 {
		return cc, pid, fmt.Errorf("party id %q must be exactly 3 characters: %w", partyID, interfaces.ErrInvalidArgument)
	}

	copy(cc[:], strings.ToUpper(countryCode))
	copy(pid[:], strings.ToUpper(partyID))
	return cc, pid, nil
}

func roleIndices(roles []interfaces.Role) ([]uint8, error) {
	out := make([]uint8, 0, len(roles))
	for _, r := range roles {
		if _, err := interfaces.RoleFromIndex(uint8(r)); err != nil {
			return nil, err
		}
		out = append(out, uint8(r))
	}
	return out, nil
}

func moduleIndices(modules []interfaces.Module) ([]uint8, error) {
	out := make([]uint8, 0, len(modules))
	for _, m := range modules {
		if _, err := interfaces.ModuleFromIndex(uint8(m)); err != nil {
			return nil, err
		}
		out = append(out, uint8(m))
	}
	return out, nil
}

// decodeParty translates a raw contract tuple into the interfaces data
// model, rejecting out-of-range role or module indices. The node URL is
// attached separately by the caller.
func decodeParty(party common.Address, countryCode [2]byte, partyID [3]byte, roles, sender, receiver []uint8, operator common.Address) (*interfaces.PartyDetails, error) {
	decodedRoles := make([]interfaces.Role, 0, len(roles))
	for _, index := range roles {
		role, err := interfaces.RoleFromIndex(index)
		if err != nil {
			return nil, err
		}
		decodedRoles = append(decodedRoles, role)
	}

	decodeModules := func(indices []uint8) ([]interfaces.Module, error) {
		out := make([]interfaces.Module, 0, len(indices))
		for _, index := range indices {
			module, err := interfaces.ModuleFromIndex(index)
			if err != nil {
				return nil, err
			}
			out = append(out, module)
		}
		return out, nil
	}

	senderModules, err := decodeModules(sender)
	if err != nil {
		return nil, err
	}
	receiverModules, err := decodeModules(receiver)
	if err != nil {
		return nil, err
	}

	return &interfaces.PartyDetails{
		CountryCode: string(countryCode[:]),
		PartyID:     string(partyID[:]),
		Address:     party,
		Roles:       decodedRoles,
		Modules: interfaces.PartyModules{
			Sender:   senderModules,
			Receiver: receiverModules,
		},
		Node: interfaces.Node{Operator: operator},
	}, nil
}
