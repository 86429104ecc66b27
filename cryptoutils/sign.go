// Package cryptoutils implements the digest, signing and signer-recovery
// primitives of the delegated registry protocol.
package cryptoutils

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ocn-tools/ocn-registry/interfaces"
)

// Digest computes the keccak256 hash over the concatenation of the given
// byte slices.
func Digest(data ...[]byte) common.Hash {
	return crypto.Keccak256Hash(data...)
}

// SignDigest produces a recoverable signature over the digest using the
// Ethereum signed-message envelope, matching the contract-side
// toEthSignedMessageHash + ecrecover verification path. The key is consumed
// for this call only and not retained.
func SignDigest(digest common.Hash, key *ecdsa.PrivateKey) (interfaces.Signature, error) {
	if key == nil || key.D == nil || key.D.Sign() == 0 {
		return interfaces.Signature{}, fmt.Errorf("missing or zero private key: %w", interfaces.ErrSigningFailure)
	}

	raw, err := crypto.Sign(accounts.TextHash(digest.Bytes()), key)
	if err != nil {
		return interfaces.Signature{}, fmt.Errorf("%v: %w", err, interfaces.ErrSigningFailure)
	}
	return SplitSignature(raw)
}

// SplitSignature converts a 65-byte [R || S || V] signature into its split
// form, normalizing V to the contract convention (27 or 28).
func SplitSignature(raw []byte) (interfaces.Signature, error) {
	if len(raw) != crypto.SignatureLength {
		return interfaces.Signature{}, fmt.Errorf("signature must be %d bytes, got %d: %w", crypto.SignatureLength, len(raw), interfaces.ErrInvalidArgument)
	}

	sig := interfaces.Signature{V: raw[64]}
	copy(sig.R[:], raw[:32])
	copy(sig.S[:], raw[32:64])
	if sig.V < 27 {
		sig.V += 27
	}
	if sig.V != 27 && sig.V != 28 {
		return interfaces.Signature{}, fmt.Errorf("invalid recovery id %d: %w", raw[64], interfaces.ErrInvalidArgument)
	}
	return sig, nil
}

// JoinSignature converts a split signature back into the 65-byte
// [R || S || V] form with the recovery id as 0 or 1, as expected by
// secp256k1 recovery.
func JoinSignature(sig interfaces.Signature) ([]byte, error) {
	v := sig.V
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return nil, fmt.Errorf("invalid recovery id %d: %w", sig.V, interfaces.ErrInvalidArgument)
	}

	raw := make([]byte, crypto.SignatureLength)
	copy(raw[:32], sig.R[:])
	copy(raw[32:64], sig.S[:])
	raw[64] = v
	return raw, nil
}

// RecoverSigner derives the address that produced the signature over the
// digest. It mirrors the contract's ecrecover call so the client can compute
// the signer argument submitted alongside raw transactions.
func RecoverSigner(digest common.Hash, sig interfaces.Signature) (common.Address, error) {
	raw, err := JoinSignature(sig)
	if err != nil {
		return common.Address{}, err
	}

	pubkey, err := crypto.SigToPub(accounts.TextHash(digest.Bytes()), raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("could not recover signer: %v: %w", err, interfaces.ErrInvalidArgument)
	}
	return crypto.PubkeyToAddress(*pubkey), nil
}

// VerifySigner recovers the signer of the digest and asserts it matches the
// claimed address, returning ErrSignatureMismatch otherwise.
func VerifySigner(digest common.Hash, sig interfaces.Signature, claimed common.Address) error {
	recovered, err := RecoverSigner(digest, sig)
	if err != nil {
		return err
	}
	if recovered != claimed {
		return fmt.Errorf("recovered %s, claimed %s: %w", recovered.Hex(), claimed.Hex(), interfaces.ErrSignatureMismatch)
	}
	return nil
}

// PrivateKeyFromHex parses a hex-encoded secp256k1 private key, with or
// without a 0x prefix.
func PrivateKeyFromHex(s string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, interfaces.ErrSigningFailure)
	}
	return key, nil
}

// AddressOf returns the Ethereum address of the key's public half.
func AddressOf(key *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(key.PublicKey)
}
