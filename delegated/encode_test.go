package delegated

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocn-tools/ocn-registry/interfaces"
)

func TestKindTagsAreDistinct(t *testing.T) {
	kinds := []Kind{KindSetNode, KindDeleteNode, KindSetParty, KindDeleteParty, KindSetPartyModules}
	seen := map[byte]Kind{}
	for _, k := range kinds {
		prev, dup := seen[byte(k)]
		require.False(t, dup, "kinds %s and %s share tag %d", prev, k, byte(k))
		seen[byte(k)] = k
	}
}

func TestEncodingLeadsWithKindTag(t *testing.T) {
	operator := common.HexToAddress("0x0102030405060708090a0b0c0d0e0f1011121314")

	setNode, err := EncodeSetNode("https://node.example.org")
	require.NoError(t, err)
	assert.Equal(t, byte(KindSetNode), setNode[0])

	assert.Equal(t, byte(KindDeleteNode), EncodeDeleteNode()[0])
	assert.Equal(t, byte(KindDeleteParty), EncodeDeleteParty()[0])

	setParty, err := EncodeSetParty("DE", "ABC", []interfaces.Role{interfaces.RoleCPO}, operator)
	require.NoError(t, err)
	assert.Equal(t, byte(KindSetParty), setParty[0])

	setModules, err := EncodeSetPartyModules(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, byte(KindSetPartyModules), setModules[0])
}

func TestDiscriminantSeparation(t *testing.T) {
	// deleteNode and deleteParty have structurally identical (empty)
	// argument lists; only the kind tag separates their encodings.
	assert.NotEqual(t, EncodeDeleteNode(), EncodeDeleteParty())
}

func TestEncodeSetNode_NormalizesOrigin(t *testing.T) {
	encoded, err := EncodeSetNode("https://node.example.org/path?x=1")
	require.NoError(t, err)
	assert.Equal(t, append([]byte{byte(KindSetNode)}, "https://node.example.org"...), encoded)
}

func TestEncodeSetNode_RejectsInvalidURL(t *testing.T) {
	_, err := EncodeSetNode("not a url")
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument)
}

func TestEncodeSetParty_Uppercases(t *testing.T) {
	operator := common.HexToAddress("0x0102030405060708090a0b0c0d0e0f1011121314")

	encoded, err := EncodeSetParty("de", "abc", []interfaces.Role{interfaces.RoleCPO, interfaces.RoleEMSP}, operator)
	require.NoError(t, err)

	assert.Equal(t, []byte("DE"), encoded[1:3])
	assert.Equal(t, []byte("ABC"), encoded[3:6])
	// Two roles: length byte then indices.
	assert.Equal(t, []byte{2, byte(interfaces.RoleCPO), byte(interfaces.RoleEMSP)}, encoded[6:9])
	assert.Equal(t, operator.Bytes(), encoded[9:])
}

func TestEncodeSetParty_FixedLengths(t *testing.T) {
	operator := common.Address{}

	_, err := EncodeSetParty("DEU", "ABC", nil, operator)
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument, "3-char country code")

	_, err = EncodeSetParty("D", "ABC", nil, operator)
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument, "1-char country code")

	_, err = EncodeSetParty("DE", "AB", nil, operator)
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument, "2-char party id")

	_, err = EncodeSetParty("DE", "ABCD", nil, operator)
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument, "4-char party id")

	// Exact lengths are accepted even with non-alphabetic bytes.
	_, err = EncodeSetParty("D1", "0!X", nil, operator)
	assert.NoError(t, err)
}

func TestEncodeSetParty_RejectsOutOfRangeRole(t *testing.T) {
	_, err := EncodeSetParty("DE", "ABC", []interfaces.Role{interfaces.Role(99)}, common.Address{})
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument)
}

func TestEncodeSetPartyModules_ListBoundary(t *testing.T) {
	// The length prefix must disambiguate where the sender list ends and
	// the receiver list begins.
	a, err := EncodeSetPartyModules(
		[]interfaces.Module{interfaces.ModuleCdrs, interfaces.ModuleCommands},
		[]interfaces.Module{interfaces.ModuleLocations},
	)
	require.NoError(t, err)

	b, err := EncodeSetPartyModules(
		[]interfaces.Module{interfaces.ModuleCdrs},
		[]interfaces.Module{interfaces.ModuleCommands, interfaces.ModuleLocations},
	)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestEncodeSetPartyModules_RejectsOutOfRangeModule(t *testing.T) {
	_, err := EncodeSetPartyModules([]interfaces.Module{interfaces.Module(42)}, nil)
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument)
}

func TestEncodingIsDeterministic(t *testing.T) {
	operator := common.HexToAddress("0x0102030405060708090a0b0c0d0e0f1011121314")

	first, err := EncodeSetParty("DE", "ABC", []interfaces.Role{interfaces.RoleCPO}, operator)
	require.NoError(t, err)
	second, err := EncodeSetParty("DE", "ABC", []interfaces.Role{interfaces.RoleCPO}, operator)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
