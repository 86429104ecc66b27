package cryptoutils

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocn-tools/ocn-registry/interfaces"
)

func TestSignAndRecover(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	digest := Digest([]byte("delegated operation payload"))

	sig, err := SignDigest(digest, key)
	require.NoError(t, err)
	assert.Contains(t, []uint8{27, 28}, sig.V)

	recovered, err := RecoverSigner(digest, sig)
	require.NoError(t, err)
	assert.Equal(t, AddressOf(key), recovered)

	require.NoError(t, VerifySigner(digest, sig, AddressOf(key)))
}

func TestVerifySigner_Mismatch(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	otherKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	digest := Digest([]byte("payload"))
	sig, err := SignDigest(digest, key)
	require.NoError(t, err)

	err = VerifySigner(digest, sig, AddressOf(otherKey))
	assert.ErrorIs(t, err, interfaces.ErrSignatureMismatch)
}

func TestVerifySigner_DigestBinding(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig, err := SignDigest(Digest([]byte("payload one")), key)
	require.NoError(t, err)

	// The same signature over a different digest must not verify for the
	// original signer.
	err = VerifySigner(Digest([]byte("payload two")), sig, AddressOf(key))
	assert.Error(t, err)
}

func TestSignDigest_BadKey(t *testing.T) {
	_, err := SignDigest(Digest([]byte("payload")), nil)
	assert.ErrorIs(t, err, interfaces.ErrSigningFailure)
}

func TestSplitJoinSignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	digest := Digest([]byte("payload"))
	sig, err := SignDigest(digest, key)
	require.NoError(t, err)

	raw, err := JoinSignature(sig)
	require.NoError(t, err)
	require.Len(t, raw, crypto.SignatureLength)
	assert.Contains(t, []byte{0, 1}, raw[64])

	roundTripped, err := SplitSignature(raw)
	require.NoError(t, err)
	assert.Equal(t, sig, roundTripped)

	_, err = SplitSignature(raw[:64])
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument)

	_, err = JoinSignature(interfaces.Signature{V: 35})
	assert.ErrorIs(t, err, interfaces.ErrInvalidArgument)
}

func TestPrivateKeyFromHex(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	hexKey := common.Bytes2Hex(crypto.FromECDSA(key))

	parsed, err := PrivateKeyFromHex(hexKey)
	require.NoError(t, err)
	assert.Equal(t, AddressOf(key), AddressOf(parsed))

	prefixed, err := PrivateKeyFromHex("0x" + hexKey)
	require.NoError(t, err)
	assert.Equal(t, AddressOf(key), AddressOf(prefixed))

	_, err = PrivateKeyFromHex("not a key")
	assert.ErrorIs(t, err, interfaces.ErrSigningFailure)
}
