package registry

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocn-tools/ocn-registry/cryptoutils"
	"github.com/ocn-tools/ocn-registry/interfaces"
)

func TestMockRegistry_ReadOnlyByDefault(t *testing.T) {
	reg := NewMockRegistryClient()

	_, err := reg.SetNode(context.Background(), "https://node.example.org")
	assert.ErrorIs(t, err, interfaces.ErrNotWritable)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	_, err = reg.SetNodeRaw(context.Background(), "https://node.example.org", key)
	assert.ErrorIs(t, err, interfaces.ErrNotWritable)
}

func TestMockRegistry_DirectNodeLifecycle(t *testing.T) {
	ctx := context.Background()
	owner := common.HexToAddress("0x1111111111111111111111111111111111111111")

	reg := NewMockRegistryClient()
	reg.SetTransactOpts(owner)

	_, err := reg.SetNode(ctx, "https://node.example.org/path?x=1")
	require.NoError(t, err)

	node, err := reg.GetNode(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, "https://node.example.org", node.URL, "stored URL is the normalized origin")

	nodes, err := reg.GetAllNodes(ctx)
	require.NoError(t, err)
	assert.Len(t, nodes, 1)

	_, err = reg.DeleteNode(ctx)
	require.NoError(t, err)

	node, err = reg.GetNode(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, node, "unlisted operator reads as absent, not as an error")
}

func TestMockRegistry_DelegatedLifecycle(t *testing.T) {
	ctx := context.Background()

	// The spender enables writes; the party key only ever signs.
	spender := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	partyKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	partyAddr := cryptoutils.AddressOf(partyKey)

	reg := NewMockRegistryClient()
	reg.SetTransactOpts(spender)

	_, err = reg.SetNodeRaw(ctx, "https://node.example.org", partyKey)
	require.NoError(t, err)

	node, err := reg.GetNode(ctx, partyAddr)
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, partyAddr, node.Operator, "listing belongs to the signer, not the spender")

	_, err = reg.SetPartyRaw(ctx, "de", "abc", []interfaces.Role{interfaces.RoleCPO}, partyAddr, partyKey)
	require.NoError(t, err)

	party, err := reg.GetPartyByAddress(ctx, partyAddr)
	require.NoError(t, err)
	require.NotNil(t, party)
	assert.Equal(t, "DE", party.CountryCode)
	assert.Equal(t, "ABC", party.PartyID)
	assert.Equal(t, "https://node.example.org", party.Node.URL)

	_, err = reg.SetPartyModulesRaw(ctx,
		[]interfaces.Module{interfaces.ModuleCdrs},
		[]interfaces.Module{interfaces.ModuleCommands},
		partyKey,
	)
	require.NoError(t, err)

	party, err = reg.GetPartyByOcpi(ctx, "DE", "ABC")
	require.NoError(t, err)
	require.NotNil(t, party)
	assert.Equal(t, []interfaces.Module{interfaces.ModuleCdrs}, party.Modules.Sender)
	assert.Equal(t, []interfaces.Module{interfaces.ModuleCommands}, party.Modules.Receiver)

	_, err = reg.DeletePartyRaw(ctx, partyKey)
	require.NoError(t, err)
	party, err = reg.GetPartyByAddress(ctx, partyAddr)
	require.NoError(t, err)
	assert.Nil(t, party)

	_, err = reg.DeleteNodeRaw(ctx, partyKey)
	require.NoError(t, err)
	node, err = reg.GetNode(ctx, partyAddr)
	require.NoError(t, err)
	assert.Nil(t, node)
}

func TestMockRegistry_ZeroOperatorIsAbsent(t *testing.T) {
	ctx := context.Background()
	partyAddr := common.HexToAddress("0x3333333333333333333333333333333333333333")

	reg := NewMockRegistryClient()
	reg.InsertParty(interfaces.PartyDetails{
		CountryCode: "DE",
		PartyID:     "ABC",
		Address:     partyAddr,
		Roles:       []interfaces.Role{interfaces.RoleCPO},
		// Zero operator: the contract's absence sentinel.
		Node: interfaces.Node{},
	})

	party, err := reg.GetPartyByAddress(ctx, partyAddr)
	require.NoError(t, err)
	assert.Nil(t, party, "zero-operator listing reads as not found")

	party, err = reg.GetPartyByOcpi(ctx, "DE", "ABC")
	require.NoError(t, err)
	assert.Nil(t, party)

	parties, err := reg.GetAllParties(ctx)
	require.NoError(t, err)
	assert.Empty(t, parties, "zero-operator listings are filtered from listings")
}
