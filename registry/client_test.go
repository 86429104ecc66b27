package registry

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocn-tools/ocn-registry/interfaces"
)

func TestClient_ReadOnlyRejectsWrites(t *testing.T) {
	// A nil backend proves ErrNotWritable is raised before any network
	// interaction: touching the backend would panic.
	client, err := NewClient(nil, nil, common.HexToAddress("0x0102030405060708090a0b0c0d0e0f1011121314"))
	require.NoError(t, err)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	ctx := context.Background()

	_, err = client.SetNode(ctx, "https://node.example.org")
	assert.ErrorIs(t, err, interfaces.ErrNotWritable)
	_, err = client.DeleteNode(ctx)
	assert.ErrorIs(t, err, interfaces.ErrNotWritable)
	_, err = client.SetParty(ctx, "DE", "ABC", nil, common.Address{})
	assert.ErrorIs(t, err, interfaces.ErrNotWritable)
	_, err = client.DeleteParty(ctx)
	assert.ErrorIs(t, err, interfaces.ErrNotWritable)
	_, err = client.SetPartyModules(ctx, nil, nil)
	assert.ErrorIs(t, err, interfaces.ErrNotWritable)

	_, err = client.SetNodeRaw(ctx, "https://node.example.org", key)
	assert.ErrorIs(t, err, interfaces.ErrNotWritable)
	_, err = client.DeleteNodeRaw(ctx, key)
	assert.ErrorIs(t, err, interfaces.ErrNotWritable)
	_, err = client.SetPartyRaw(ctx, "DE", "ABC", nil, common.Address{}, key)
	assert.ErrorIs(t, err, interfaces.ErrNotWritable)
	_, err = client.DeletePartyRaw(ctx, key)
	assert.ErrorIs(t, err, interfaces.ErrNotWritable)
	_, err = client.SetPartyModulesRaw(ctx, nil, nil, key)
	assert.ErrorIs(t, err, interfaces.ErrNotWritable)

	assert.Equal(t, common.Address{}, client.TransactorAddress())
}

func TestOcpiIdentifiers(t *testing.T) {
	cc, pid, err := ocpiIdentifiers("de", "abc")
	require.NoError(t, err)
	assert.Equal(t, [2]byte{'D', 'E'}, cc)
	assert.Equal(t, [3]byte{'A', 'B', 'C'}, pid)

	_, _, err = ocpiIdentifiers("DEU", "ABC")
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument)
	_, _, err = ocpiIdentifiers("DE", "AB")
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument)
}

func TestDecodeParty(t *testing.T) {
	party := common.HexToAddress("0x1111111111111111111111111111111111111111")
	operator := common.HexToAddress("0x2222222222222222222222222222222222222222")

	decoded, err := decodeParty(
		party,
		[2]byte{'D', 'E'},
		[3]byte{'A', 'B', 'C'},
		[]uint8{uint8(interfaces.RoleCPO), uint8(interfaces.RoleEMSP)},
		[]uint8{uint8(interfaces.ModuleCdrs)},
		[]uint8{uint8(interfaces.ModuleCommands)},
		operator,
	)
	require.NoError(t, err)

	assert.Equal(t, "DE", decoded.CountryCode)
	assert.Equal(t, "ABC", decoded.PartyID)
	assert.Equal(t, party, decoded.Address)
	assert.Equal(t, []interfaces.Role{interfaces.RoleCPO, interfaces.RoleEMSP}, decoded.Roles)
	assert.Equal(t, []interfaces.Module{interfaces.ModuleCdrs}, decoded.Modules.Sender)
	assert.Equal(t, []interfaces.Module{interfaces.ModuleCommands}, decoded.Modules.Receiver)
	assert.Equal(t, operator, decoded.Node.Operator)
}

func TestDecodeParty_RejectsOutOfRangeIndices(t *testing.T) {
	_, err := decodeParty(common.Address{}, [2]byte{'D', 'E'}, [3]byte{'A', 'B', 'C'}, []uint8{200}, nil, nil, common.Address{})
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument)

	_, err = decodeParty(common.Address{}, [2]byte{'D', 'E'}, [3]byte{'A', 'B', 'C'}, nil, []uint8{200}, nil, common.Address{})
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument)
}

func TestEnvironmentValidate(t *testing.T) {
	env := Environment{
		Name:     "test",
		RPC:      "http://127.0.0.1:8545",
		ChainID:  1337,
		Contract: common.HexToAddress("0x0102030405060708090a0b0c0d0e0f1011121314"),
	}
	assert.NoError(t, env.Validate())

	incomplete := env
	incomplete.Contract = common.Address{}
	assert.ErrorIs(t, incomplete.Validate(), interfaces.ErrInvalidArgument)

	incomplete = env
	incomplete.RPC = ""
	assert.ErrorIs(t, incomplete.Validate(), interfaces.ErrInvalidArgument)

	incomplete = env
	incomplete.ChainID = 0
	assert.ErrorIs(t, incomplete.Validate(), interfaces.ErrInvalidArgument)
}
