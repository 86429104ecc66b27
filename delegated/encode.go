// Package delegated implements the delegated ("raw") operation protocol of
// the OCN registry: canonical encoding of operation arguments, digest
// computation, and the per-operation builders that produce the signed
// payloads a spender submits on the authorizing party's behalf.
package delegated

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ocn-tools/ocn-registry/interfaces"
)

// Kind identifies a delegated operation. Its byte value leads every
// canonical encoding so that no two operation kinds share an encoding
// prefix, preventing a signature for one operation from being replayed as
// another.
type Kind uint8

const (
	KindSetNode Kind = iota + 1
	KindDeleteNode
	KindSetParty
	KindDeleteParty
	KindSetPartyModules
)

var kindNames = map[Kind]string{
	KindSetNode:         "setNode",
	KindDeleteNode:      "deleteNode",
	KindSetParty:        "setParty",
	KindDeleteParty:     "deleteParty",
	KindSetPartyModules: "setPartyModules",
}

// String returns the contract method name of the operation kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// encodeFixedString upper-cases a fixed-width ASCII identifier and rejects
// any value that is not exactly width bytes long.
func encodeFixedString(s string, width int) ([]byte, error) {
	if len(s) != width {
		return nil, fmt.Errorf("%q must be exactly %d characters, got %d: %w", s, width, len(s), interfaces.ErrInvalidArgument)
	}
	return []byte(strings.ToUpper(s)), nil
}

// encodeRoles encodes a role list as a one-byte length followed by the
// uint8 role indices. The length byte disambiguates adjacent lists within
// one payload.
func encodeRoles(roles []interfaces.Role) ([]byte, error) {
	if len(roles) > 255 {
		return nil, fmt.Errorf("too many roles (%d): %w", len(roles), interfaces.ErrInvalidArgument)
	}
	out := make([]byte, 0, 1+len(roles))
	out = append(out, byte(len(roles)))
	for _, r := range roles {
		if _, err := interfaces.RoleFromIndex(uint8(r)); err != nil {
			return nil, err
		}
		out = append(out, byte(r))
	}
	return out, nil
}

func encodeModules(modules []interfaces.Module) ([]byte, error) {
	if len(modules) > 255 {
		return nil, fmt.Errorf("too many modules (%d): %w", len(modules), interfaces.ErrInvalidArgument)
	}
	out := make([]byte, 0, 1+len(modules))
	out = append(out, byte(len(modules)))
	for _, m := range modules {
		if _, err := interfaces.ModuleFromIndex(uint8(m)); err != nil {
			return nil, err
		}
		out = append(out, byte(m))
	}
	return out, nil
}

// EncodeSetNode builds the canonical payload for a setNode operation. The
// URL is normalized to its origin form before encoding.
func EncodeSetNode(rawURL string) ([]byte, error) {
	origin, err := interfaces.NormalizeOrigin(rawURL)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(KindSetNode)}, origin...), nil
}

// EncodeDeleteNode builds the canonical payload for a deleteNode operation.
// The operation has no arguments; the payload is the kind tag alone.
func EncodeDeleteNode() []byte {
	return []byte{byte(KindDeleteNode)}
}

// EncodeSetParty builds the canonical payload for a setParty operation:
// kind tag, upper-cased country code (2 bytes), upper-cased party id
// (3 bytes), role list, operator address (20 raw bytes).
func EncodeSetParty(countryCode, partyID string, roles []interfaces.Role, operator common.Address) ([]byte, error) {
	cc, err := encodeFixedString(countryCode, 2)
	if err != nil {
		return nil, fmt.Errorf("country code: %w", err)
	}
	pid, err := encodeFixedString(partyID, 3)
	if err != nil {
		return nil, fmt.Errorf("party id: %w", err)
	}
	encodedRoles, err := encodeRoles(roles)
	if err != nil {
		return nil, err
	}

	payload := []byte{byte(KindSetParty)}
	payload = append(payload, cc...)
	payload = append(payload, pid...)
	payload = append(payload, encodedRoles...)
	payload = append(payload, operator.Bytes()...)
	return payload, nil
}

// EncodeDeleteParty builds the canonical payload for a deleteParty
// operation.
func EncodeDeleteParty() []byte {
	return []byte{byte(KindDeleteParty)}
}

// EncodeSetPartyModules builds the canonical payload for a setPartyModules
// operation: kind tag, sender module list, receiver module list.
func EncodeSetPartyModules(sender, receiver []interfaces.Module) ([]byte, error) {
	encodedSender, err := encodeModules(sender)
	if err != nil {
		return nil, fmt.Errorf("sender modules: %w", err)
	}
	encodedReceiver, err := encodeModules(receiver)
	if err != nil {
		return nil, fmt.Errorf("receiver modules: %w", err)
	}

	payload := []byte{byte(KindSetPartyModules)}
	payload = append(payload, encodedSender...)
	payload = append(payload, encodedReceiver...)
	return payload, nil
}
