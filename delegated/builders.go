package delegated

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ocn-tools/ocn-registry/cryptoutils"
	"github.com/ocn-tools/ocn-registry/interfaces"
)

// SignedOperation is the common result of an operation builder: the
// authorizing party's address, the digest it signed, and the signature. The
// signer address is submitted alongside the raw transaction so the contract
// can independently re-derive and compare it.
type SignedOperation struct {
	Kind      Kind
	Signer    common.Address
	Digest    common.Hash
	Signature interfaces.Signature
}

// SetNodeOp is a signed setNode operation. URL carries the normalized
// origin that was encoded and must be submitted unchanged.
type SetNodeOp struct {
	SignedOperation
	URL string
}

// DeleteNodeOp is a signed deleteNode operation.
type DeleteNodeOp struct {
	SignedOperation
}

// SetPartyOp is a signed setParty operation. CountryCode and PartyID carry
// the upper-cased forms that were encoded.
type SetPartyOp struct {
	SignedOperation
	CountryCode string
	PartyID     string
	Roles       []interfaces.Role
	Operator    common.Address
}

// DeletePartyOp is a signed deleteParty operation.
type DeletePartyOp struct {
	SignedOperation
}

// SetPartyModulesOp is a signed setPartyModules operation.
type SetPartyModulesOp struct {
	SignedOperation
	Sender   []interfaces.Module
	Receiver []interfaces.Module
}

func signPayload(kind Kind, payload []byte, key *ecdsa.PrivateKey) (SignedOperation, error) {
	digest := cryptoutils.Digest(payload)
	sig, err := cryptoutils.SignDigest(digest, key)
	if err != nil {
		return SignedOperation{}, err
	}
	return SignedOperation{
		Kind:      kind,
		Signer:    cryptoutils.AddressOf(key),
		Digest:    digest,
		Signature: sig,
	}, nil
}

// BuildSetNode authorizes listing the signer's node under the given URL.
// The URL is reduced to its origin form before signing.
func BuildSetNode(rawURL string, key *ecdsa.PrivateKey) (*SetNodeOp, error) {
	payload, err := EncodeSetNode(rawURL)
	if err != nil {
		return nil, err
	}
	origin, err := interfaces.NormalizeOrigin(rawURL)
	if err != nil {
		return nil, err
	}

	op, err := signPayload(KindSetNode, payload, key)
	if err != nil {
		return nil, err
	}
	return &SetNodeOp{SignedOperation: op, URL: origin}, nil
}

// BuildDeleteNode authorizes removing the signer's node listing.
func BuildDeleteNode(key *ecdsa.PrivateKey) (*DeleteNodeOp, error) {
	op, err := signPayload(KindDeleteNode, EncodeDeleteNode(), key)
	if err != nil {
		return nil, err
	}
	return &DeleteNodeOp{SignedOperation: op}, nil
}

// BuildSetParty authorizes registering the signer as the party identified by
// the (countryCode, partyID) pair, linked to the node of the given operator.
func BuildSetParty(countryCode, partyID string, roles []interfaces.Role, operator common.Address, key *ecdsa.PrivateKey) (*SetPartyOp, error) {
	payload, err := EncodeSetParty(countryCode, partyID, roles, operator)
	if err != nil {
		return nil, err
	}

	op, err := signPayload(KindSetParty, payload, key)
	if err != nil {
		return nil, err
	}
	return &SetPartyOp{
		SignedOperation: op,
		CountryCode:     strings.ToUpper(countryCode),
		PartyID:         strings.ToUpper(partyID),
		Roles:           roles,
		Operator:        operator,
	}, nil
}

// BuildDeleteParty authorizes removing the signer's party listing.
func BuildDeleteParty(key *ecdsa.PrivateKey) (*DeletePartyOp, error) {
	op, err := signPayload(KindDeleteParty, EncodeDeleteParty(), key)
	if err != nil {
		return nil, err
	}
	return &DeletePartyOp{SignedOperation: op}, nil
}

// BuildSetPartyModules authorizes updating the signer party's sender and
// receiver module lists.
func BuildSetPartyModules(sender, receiver []interfaces.Module, key *ecdsa.PrivateKey) (*SetPartyModulesOp, error) {
	payload, err := EncodeSetPartyModules(sender, receiver)
	if err != nil {
		return nil, err
	}

	op, err := signPayload(KindSetPartyModules, payload, key)
	if err != nil {
		return nil, err
	}
	return &SetPartyModulesOp{SignedOperation: op, Sender: sender, Receiver: receiver}, nil
}
