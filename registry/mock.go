package registry

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"

	"github.com/ocn-tools/ocn-registry/interfaces"
)

// MockRegistryReader mocks the interfaces.RegistryReader interface for
// expectation-based tests.
type MockRegistryReader struct {
	mock.Mock
}

var _ interfaces.RegistryReader = (*MockRegistryReader)(nil)

// GetNode mocks the GetNode method.
func (m *MockRegistryReader) GetNode(ctx context.Context, operator common.Address) (*interfaces.Node, error) {
	args := m.Called(ctx, operator)
	node, _ := args.Get(0).(*interfaces.Node)
	return node, args.Error(1)
}

// GetAllNodes mocks the GetAllNodes method.
func (m *MockRegistryReader) GetAllNodes(ctx context.Context) ([]interfaces.Node, error) {
	args := m.Called(ctx)
	nodes, _ := args.Get(0).([]interfaces.Node)
	return nodes, args.Error(1)
}

// GetPartyByAddress mocks the GetPartyByAddress method.
func (m *MockRegistryReader) GetPartyByAddress(ctx context.Context, party common.Address) (*interfaces.PartyDetails, error) {
	args := m.Called(ctx, party)
	details, _ := args.Get(0).(*interfaces.PartyDetails)
	return details, args.Error(1)
}

// GetPartyByOcpi mocks the GetPartyByOcpi method.
func (m *MockRegistryReader) GetPartyByOcpi(ctx context.Context, countryCode, partyID string) (*interfaces.PartyDetails, error) {
	args := m.Called(ctx, countryCode, partyID)
	details, _ := args.Get(0).(*interfaces.PartyDetails)
	return details, args.Error(1)
}

// GetAllParties mocks the GetAllParties method.
func (m *MockRegistryReader) GetAllParties(ctx context.Context) ([]interfaces.PartyDetails, error) {
	args := m.Called(ctx)
	parties, _ := args.Get(0).([]interfaces.PartyDetails)
	return parties, args.Error(1)
}
