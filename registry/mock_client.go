package registry

import (
	"context"
	"crypto/ecdsa"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/ocn-tools/ocn-registry/cryptoutils"
	"github.com/ocn-tools/ocn-registry/delegated"
	"github.com/ocn-tools/ocn-registry/interfaces"
)

// MockRegistryClient is an in-memory implementation of the registry for
// testing without a chain. It reproduces the contract-side behavior that
// matters to clients: raw operations re-derive the signer from the
// signature and reject mismatches, and absent listings are zero-value
// sentinels.
type MockRegistryClient struct {
	mutex            sync.RWMutex
	nodes            map[common.Address]string
	parties          map[common.Address]interfaces.PartyDetails
	owner            common.Address
	allowTransacting bool
}

var _ interfaces.Registry = (*MockRegistryClient)(nil)

// NewMockRegistryClient creates an empty mock registry in read-only state.
// Call SetTransactOpts to enable writes.
func NewMockRegistryClient() *MockRegistryClient {
	return &MockRegistryClient{
		nodes:   make(map[common.Address]string),
		parties: make(map[common.Address]interfaces.PartyDetails),
	}
}

// SetTransactOpts enables write operations, acting as the given owner
// address for direct (non-delegated) calls.
func (m *MockRegistryClient) SetTransactOpts(owner common.Address) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.owner = owner
	m.allowTransacting = true
}

func mockTx() *types.Transaction {
	return types.NewTx(&types.LegacyTx{})
}

// GetNode returns the node listed for the operator, or nil if absent.
func (m *MockRegistryClient) GetNode(ctx context.Context, operator common.Address) (*interfaces.Node, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	url, ok := m.nodes[operator]
	if !ok {
		return nil, nil
	}
	return &interfaces.Node{Operator: operator, URL: url}, nil
}

// GetAllNodes returns every listed node.
func (m *MockRegistryClient) GetAllNodes(ctx context.Context) ([]interfaces.Node, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	nodes := make([]interfaces.Node, 0, len(m.nodes))
	for operator, url := range m.nodes {
		nodes = append(nodes, interfaces.Node{Operator: operator, URL: url})
	}
	return nodes, nil
}

func (m *MockRegistryClient) partyWithNode(party interfaces.PartyDetails) interfaces.PartyDetails {
	if url, ok := m.nodes[party.Node.Operator]; ok {
		party.Node.URL = url
	}
	return party
}

// GetPartyByAddress returns the party registered under the address, or nil
// if absent. A stored party whose operator is the zero address counts as
// absent, matching the contract sentinel.
func (m *MockRegistryClient) GetPartyByAddress(ctx context.Context, party common.Address) (*interfaces.PartyDetails, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	details, ok := m.parties[party]
	if !ok || details.Node.Operator == (common.Address{}) {
		return nil, nil
	}
	details = m.partyWithNode(details)
	return &details, nil
}

// GetPartyByOcpi returns the party registered under the OCPI pair, or nil
// if absent.
func (m *MockRegistryClient) GetPartyByOcpi(ctx context.Context, countryCode, partyID string) (*interfaces.PartyDetails, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	cc := strings.ToUpper(countryCode)
	pid := strings.ToUpper(partyID)
	for _, details := range m.parties {
		if details.CountryCode != cc || details.PartyID != pid {
			continue
		}
		if details.Node.Operator == (common.Address{}) {
			return nil, nil
		}
		details = m.partyWithNode(details)
		return &details, nil
	}
	return nil, nil
}

// GetAllParties returns every registered party, excluding zero-operator
// sentinels.
func (m *MockRegistryClient) GetAllParties(ctx context.Context) ([]interfaces.PartyDetails, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	parties := make([]interfaces.PartyDetails, 0, len(m.parties))
	for _, details := range m.parties {
		if details.Node.Operator == (common.Address{}) {
			continue
		}
		parties = append(parties, m.partyWithNode(details))
	}
	return parties, nil
}

// InsertParty stores a party listing verbatim, bypassing validation. Test
// helper for exercising sentinel filtering.
func (m *MockRegistryClient) InsertParty(details interfaces.PartyDetails) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.parties[details.Address] = details
}

func (m *MockRegistryClient) setNode(operator common.Address, rawURL string) (*types.Transaction, error) {
	origin, err := interfaces.NormalizeOrigin(rawURL)
	if err != nil {
		return nil, err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.nodes[operator] = origin
	return mockTx(), nil
}

func (m *MockRegistryClient) deleteNode(operator common.Address) (*types.Transaction, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.nodes, operator)
	return mockTx(), nil
}

func (m *MockRegistryClient) setParty(party common.Address, countryCode, partyID string, roles []interfaces.Role, operator common.Address) (*types.Transaction, error) {
	if _, _, err := ocpiIdentifiers(countryCode, partyID); err != nil {
		return nil, err
	}
	if _, err := roleIndices(roles); err != nil {
		return nil, err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	existing := m.parties[party]
	m.parties[party] = interfaces.PartyDetails{
		CountryCode: strings.ToUpper(countryCode),
		PartyID:     strings.ToUpper(partyID),
		Address:     party,
		Roles:       roles,
		Modules:     existing.Modules,
		Node:        interfaces.Node{Operator: operator},
	}
	return mockTx(), nil
}

func (m *MockRegistryClient) deleteParty(party common.Address) (*types.Transaction, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.parties, party)
	return mockTx(), nil
}

func (m *MockRegistryClient) setPartyModules(party common.Address, sender, receiver []interfaces.Module) (*types.Transaction, error) {
	if _, err := moduleIndices(sender); err != nil {
		return nil, err
	}
	if _, err := moduleIndices(receiver); err != nil {
		return nil, err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	details, ok := m.parties[party]
	if !ok {
		return nil, interfaces.ErrInvalidArgument
	}
	details.Modules = interfaces.PartyModules{Sender: sender, Receiver: receiver}
	m.parties[party] = details
	return mockTx(), nil
}

func (m *MockRegistryClient) writable() error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if !m.allowTransacting {
		return interfaces.ErrNotWritable
	}
	return nil
}

// SetNode lists the owner's node.
func (m *MockRegistryClient) SetNode(ctx context.Context, rawURL string) (*types.Transaction, error) {
	if err := m.writable(); err != nil {
		return nil, err
	}
	return m.setNode(m.owner, rawURL)
}

// DeleteNode removes the owner's node listing.
func (m *MockRegistryClient) DeleteNode(ctx context.Context) (*types.Transaction, error) {
	if err := m.writable(); err != nil {
		return nil, err
	}
	return m.deleteNode(m.owner)
}

// SetParty registers the owner as an OCPI party.
func (m *MockRegistryClient) SetParty(ctx context.Context, countryCode, partyID string, roles []interfaces.Role, operator common.Address) (*types.Transaction, error) {
	if err := m.writable(); err != nil {
		return nil, err
	}
	return m.setParty(m.owner, countryCode, partyID, roles, operator)
}

// DeleteParty removes the owner's party listing.
func (m *MockRegistryClient) DeleteParty(ctx context.Context) (*types.Transaction, error) {
	if err := m.writable(); err != nil {
		return nil, err
	}
	return m.deleteParty(m.owner)
}

// SetPartyModules updates the owner party's module lists.
func (m *MockRegistryClient) SetPartyModules(ctx context.Context, sender, receiver []interfaces.Module) (*types.Transaction, error) {
	if err := m.writable(); err != nil {
		return nil, err
	}
	return m.setPartyModules(m.owner, sender, receiver)
}

// SetNodeRaw lists a node on behalf of the signer, verifying the signature
// the way the contract would before applying the change.
func (m *MockRegistryClient) SetNodeRaw(ctx context.Context, rawURL string, signer *ecdsa.PrivateKey) (*types.Transaction, error) {
	if err := m.writable(); err != nil {
		return nil, err
	}
	op, err := delegated.BuildSetNode(rawURL, signer)
	if err != nil {
		return nil, err
	}
	if err := cryptoutils.VerifySigner(op.Digest, op.Signature, op.Signer); err != nil {
		return nil, err
	}
	return m.setNode(op.Signer, op.URL)
}

// DeleteNodeRaw removes a node listing on behalf of the signer.
func (m *MockRegistryClient) DeleteNodeRaw(ctx context.Context, signer *ecdsa.PrivateKey) (*types.Transaction, error) {
	if err := m.writable(); err != nil {
		return nil, err
	}
	op, err := delegated.BuildDeleteNode(signer)
	if err != nil {
		return nil, err
	}
	if err := cryptoutils.VerifySigner(op.Digest, op.Signature, op.Signer); err != nil {
		return nil, err
	}
	return m.deleteNode(op.Signer)
}

// SetPartyRaw registers a party on behalf of the signer.
func (m *MockRegistryClient) SetPartyRaw(ctx context.Context, countryCode, partyID string, roles []interfaces.Role, operator common.Address, signer *ecdsa.PrivateKey) (*types.Transaction, error) {
	if err := m.writable(); err != nil {
		return nil, err
	}
	op, err := delegated.BuildSetParty(countryCode, partyID, roles, operator, signer)
	if err != nil {
		return nil, err
	}
	if err := cryptoutils.VerifySigner(op.Digest, op.Signature, op.Signer); err != nil {
		return nil, err
	}
	return m.setParty(op.Signer, op.CountryCode, op.PartyID, op.Roles, op.Operator)
}

// DeletePartyRaw removes a party listing on behalf of the signer.
func (m *MockRegistryClient) DeletePartyRaw(ctx context.Context, signer *ecdsa.PrivateKey) (*types.Transaction, error) {
	if err := m.writable(); err != nil {
		return nil, err
	}
	op, err := delegated.BuildDeleteParty(signer)
	if err != nil {
		return nil, err
	}
	if err := cryptoutils.VerifySigner(op.Digest, op.Signature, op.Signer); err != nil {
		return nil, err
	}
	return m.deleteParty(op.Signer)
}

// SetPartyModulesRaw updates module lists on behalf of the signer.
func (m *MockRegistryClient) SetPartyModulesRaw(ctx context.Context, sender, receiver []interfaces.Module, signer *ecdsa.PrivateKey) (*types.Transaction, error) {
	if err := m.writable(); err != nil {
		return nil, err
	}
	op, err := delegated.BuildSetPartyModules(sender, receiver, signer)
	if err != nil {
		return nil, err
	}
	if err := cryptoutils.VerifySigner(op.Digest, op.Signature, op.Signer); err != nil {
		return nil, err
	}
	return m.setPartyModules(op.Signer, op.Sender, op.Receiver)
}
