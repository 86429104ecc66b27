package delegated

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocn-tools/ocn-registry/cryptoutils"
	"github.com/ocn-tools/ocn-registry/interfaces"
)

func TestBuilders_SignerRecoverable(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	operator := common.HexToAddress("0x0102030405060708090a0b0c0d0e0f1011121314")

	ops := []SignedOperation{}

	setNode, err := BuildSetNode("https://node.example.org", key)
	require.NoError(t, err)
	ops = append(ops, setNode.SignedOperation)

	deleteNode, err := BuildDeleteNode(key)
	require.NoError(t, err)
	ops = append(ops, deleteNode.SignedOperation)

	setParty, err := BuildSetParty("DE", "ABC", []interfaces.Role{interfaces.RoleCPO}, operator, key)
	require.NoError(t, err)
	ops = append(ops, setParty.SignedOperation)

	deleteParty, err := BuildDeleteParty(key)
	require.NoError(t, err)
	ops = append(ops, deleteParty.SignedOperation)

	setModules, err := BuildSetPartyModules(
		[]interfaces.Module{interfaces.ModuleCdrs},
		[]interfaces.Module{interfaces.ModuleCommands},
		key,
	)
	require.NoError(t, err)
	ops = append(ops, setModules.SignedOperation)

	for _, op := range ops {
		assert.Equal(t, cryptoutils.AddressOf(key), op.Signer, "%s signer", op.Kind)

		recovered, err := cryptoutils.RecoverSigner(op.Digest, op.Signature)
		require.NoError(t, err, "%s recovery", op.Kind)
		assert.Equal(t, op.Signer, recovered, "%s recovered address", op.Kind)

		require.NoError(t, cryptoutils.VerifySigner(op.Digest, op.Signature, op.Signer))
	}
}

func TestBuildSetNode_NormalizesURL(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	op, err := BuildSetNode("https://node.example.org/path?x=1", key)
	require.NoError(t, err)
	assert.Equal(t, "https://node.example.org", op.URL)

	// The digest must cover the normalized origin, not the raw input.
	payload, err := EncodeSetNode("https://node.example.org")
	require.NoError(t, err)
	assert.Equal(t, cryptoutils.Digest(payload), op.Digest)
}

func TestBuildSetParty_Uppercases(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	operator := common.HexToAddress("0x0102030405060708090a0b0c0d0e0f1011121314")

	op, err := BuildSetParty("de", "abc", []interfaces.Role{interfaces.RoleEMSP}, operator, key)
	require.NoError(t, err)
	assert.Equal(t, "DE", op.CountryCode)
	assert.Equal(t, "ABC", op.PartyID)

	upper, err := BuildSetParty("DE", "ABC", []interfaces.Role{interfaces.RoleEMSP}, operator, key)
	require.NoError(t, err)
	assert.Equal(t, op.Digest, upper.Digest)
}

func TestBuilders_CrossKindReplayFails(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	deleteNode, err := BuildDeleteNode(key)
	require.NoError(t, err)

	// A deleteNode signature must not verify against the deleteParty
	// digest, even though both operations carry no arguments.
	deletePartyDigest := cryptoutils.Digest(EncodeDeleteParty())
	err = cryptoutils.VerifySigner(deletePartyDigest, deleteNode.Signature, deleteNode.Signer)
	assert.Error(t, err)
}

func TestBuilders_DeterministicDigest(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	first, err := BuildSetNode("https://node.example.org", key)
	require.NoError(t, err)
	second, err := BuildSetNode("https://node.example.org", key)
	require.NoError(t, err)

	assert.Equal(t, first.Digest, second.Digest)

	// Signatures may differ between runs; the recovered address must not.
	firstSigner, err := cryptoutils.RecoverSigner(first.Digest, first.Signature)
	require.NoError(t, err)
	secondSigner, err := cryptoutils.RecoverSigner(second.Digest, second.Signature)
	require.NoError(t, err)
	assert.Equal(t, firstSigner, secondSigner)
}

func TestBuilders_ErrorPaths(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	_, err = BuildSetNode("ftp://node.example.org", key)
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument)

	_, err = BuildSetParty("DEU", "ABC", nil, common.Address{}, key)
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument)

	_, err = BuildDeleteNode(nil)
	assert.ErrorIs(t, err, interfaces.ErrSigningFailure)
}
