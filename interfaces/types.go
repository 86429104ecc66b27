// Package interfaces defines the core types and contracts for the OCN
// registry client. It provides the data model shared between the contract
// binding, the delegated-operation builders, and consumers of the client.
package interfaces

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Role is an OCPI party role, stored on-chain as a uint8 index.
type Role uint8

// The closed set of party roles known to the registry contract.
const (
	RoleCPO Role = iota
	RoleEMSP
	RoleHUB
	RoleNAP
	RoleNSP
	RoleOther
	RoleSCSP
)

var roleNames = [...]string{
	RoleCPO:   "CPO",
	RoleEMSP:  "EMSP",
	RoleHUB:   "HUB",
	RoleNAP:   "NAP",
	RoleNSP:   "NSP",
	RoleOther: "OTHER",
	RoleSCSP:  "SCSP",
}

// String returns the OCPI name of the role, or "UNKNOWN" for an
// out-of-range value.
func (r Role) String() string {
	if int(r) >= len(roleNames) {
		return "UNKNOWN"
	}
	return roleNames[r]
}

// RoleFromIndex converts a raw on-chain index into a Role.
func RoleFromIndex(index uint8) (Role, error) {
	if int(index) >= len(roleNames) {
		return 0, fmt.Errorf("role index %d out of range: %w", index, ErrInvalidArgument)
	}
	return Role(index), nil
}

// RoleFromName parses a role by its OCPI name, case-insensitively.
func RoleFromName(name string) (Role, error) {
	upper := strings.ToUpper(name)
	for i, n := range roleNames {
		if n == upper {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q: %w", name, ErrInvalidArgument)
}

// MarshalText renders the role by its OCPI name in JSON and text output.
func (r Role) MarshalText() ([]byte, error) {
	if int(r) >= len(roleNames) {
		return nil, fmt.Errorf("role index %d out of range: %w", r, ErrInvalidArgument)
	}
	return []byte(roleNames[r]), nil
}

// UnmarshalText parses a role from its OCPI name.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := RoleFromName(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Module is an OCPI interface module, stored on-chain as a uint8 index.
type Module uint8

// The closed set of OCPI modules known to the registry contract.
const (
	ModuleCdrs Module = iota
	ModuleChargingProfiles
	ModuleCommands
	ModuleLocations
	ModuleSessions
	ModuleTariffs
	ModuleTokens
)

var moduleNames = [...]string{
	ModuleCdrs:             "cdrs",
	ModuleChargingProfiles: "chargingprofiles",
	ModuleCommands:         "commands",
	ModuleLocations:        "locations",
	ModuleSessions:         "sessions",
	ModuleTariffs:          "tariffs",
	ModuleTokens:           "tokens",
}

// String returns the OCPI identifier of the module, or "unknown" for an
// out-of-range value.
func (m Module) String() string {
	if int(m) >= len(moduleNames) {
		return "unknown"
	}
	return moduleNames[m]
}

// ModuleFromIndex converts a raw on-chain index into a Module.
func ModuleFromIndex(index uint8) (Module, error) {
	if int(index) >= len(moduleNames) {
		return 0, fmt.Errorf("module index %d out of range: %w", index, ErrInvalidArgument)
	}
	return Module(index), nil
}

// ModuleFromName parses a module by its OCPI identifier, case-insensitively.
func ModuleFromName(name string) (Module, error) {
	lower := strings.ToLower(name)
	for i, n := range moduleNames {
		if n == lower {
			return Module(i), nil
		}
	}
	return 0, fmt.Errorf("unknown module %q: %w", name, ErrInvalidArgument)
}

// MarshalText renders the module by its OCPI identifier in JSON and text
// output.
func (m Module) MarshalText() ([]byte, error) {
	if int(m) >= len(moduleNames) {
		return nil, fmt.Errorf("module index %d out of range: %w", m, ErrInvalidArgument)
	}
	return []byte(moduleNames[m]), nil
}

// UnmarshalText parses a module from its OCPI identifier.
func (m *Module) UnmarshalText(text []byte) error {
	parsed, err := ModuleFromName(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Node is a service-endpoint listing owned by one operator address.
type Node struct {
	Operator common.Address `json:"operator"`
	URL      string         `json:"url"`
}

// PartyModules lists the OCPI modules a party implements in each direction.
type PartyModules struct {
	Sender   []Module `json:"sender"`
	Receiver []Module `json:"receiver"`
}

// PartyDetails is the registry listing of one OCPI party. A party is
// identified by its (CountryCode, PartyID) pair and linked to exactly one
// Node by the node operator's address.
type PartyDetails struct {
	CountryCode string         `json:"country_code"`
	PartyID     string         `json:"party_id"`
	Address     common.Address `json:"address"`
	Roles       []Role         `json:"roles"`
	Modules     PartyModules   `json:"modules"`
	Node        Node           `json:"node"`
}

// Signature is a recoverable secp256k1 signature in the split form the
// registry contract consumes. V follows the contract convention (27 or 28).
type Signature struct {
	V uint8    `json:"v"`
	R [32]byte `json:"r"`
	S [32]byte `json:"s"`
}

// ParseAddress parses a hex address, rejecting values that are not exactly
// 20 bytes of hex. Mixed-case input must carry a valid EIP-55 checksum;
// all-lowercase and all-uppercase forms are accepted as checksum-less.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%q is not a 20-byte hex address: %w", s, ErrInvalidArgument)
	}

	addr := common.HexToAddress(s)
	hexPart := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if hexPart != strings.ToLower(hexPart) && hexPart != strings.ToUpper(hexPart) {
		if "0x"+hexPart != addr.Hex() {
			return common.Address{}, fmt.Errorf("address %q fails checksum validation: %w", s, ErrInvalidArgument)
		}
	}
	return addr, nil
}

// NormalizeOrigin reduces a node URL to its origin form: an absolute http or
// https URL stripped of path, query, fragment and user info. The registry
// stores origins only.
func NormalizeOrigin(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("node url %q is not a valid URI: %w", raw, ErrInvalidArgument)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("node url %q must use http or https: %w", raw, ErrInvalidArgument)
	}
	if u.Host == "" {
		return "", fmt.Errorf("node url %q has no host: %w", raw, ErrInvalidArgument)
	}
	return u.Scheme + "://" + u.Host, nil
}
