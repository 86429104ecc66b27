// Package registry is a hand-written binding for the OCN registry contract.
// It wraps bind.BoundContract with typed accessors for the read methods and
// the direct and raw (delegated) write methods.
package registry

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// RegistryABI is the input ABI of the deployed registry contract.
const RegistryABI = `[
	{"type":"function","name":"getNode","stateMutability":"view","inputs":[{"name":"operator","type":"address"}],"outputs":[{"name":"url","type":"string"}]},
	{"type":"function","name":"getNodeOperators","stateMutability":"view","inputs":[],"outputs":[{"name":"operators","type":"address[]"}]},
	{"type":"function","name":"getParties","stateMutability":"view","inputs":[],"outputs":[{"name":"parties","type":"address[]"}]},
	{"type":"function","name":"getPartyDetailsByAddress","stateMutability":"view","inputs":[{"name":"partyAddress","type":"address"}],"outputs":[{"name":"countryCode","type":"bytes2"},{"name":"partyId","type":"bytes3"},{"name":"roles","type":"uint8[]"},{"name":"modulesSender","type":"uint8[]"},{"name":"modulesReceiver","type":"uint8[]"},{"name":"operatorAddress","type":"address"}]},
	{"type":"function","name":"getPartyDetailsByOcpi","stateMutability":"view","inputs":[{"name":"countryCode","type":"bytes2"},{"name":"partyId","type":"bytes3"}],"outputs":[{"name":"partyAddress","type":"address"},{"name":"roles","type":"uint8[]"},{"name":"modulesSender","type":"uint8[]"},{"name":"modulesReceiver","type":"uint8[]"},{"name":"operatorAddress","type":"address"}]},
	{"type":"function","name":"setNode","stateMutability":"nonpayable","inputs":[{"name":"url","type":"string"}],"outputs":[]},
	{"type":"function","name":"setNodeRaw","stateMutability":"nonpayable","inputs":[{"name":"operator","type":"address"},{"name":"url","type":"string"},{"name":"v","type":"uint8"},{"name":"r","type":"bytes32"},{"name":"s","type":"bytes32"}],"outputs":[]},
	{"type":"function","name":"deleteNode","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"deleteNodeRaw","stateMutability":"nonpayable","inputs":[{"name":"operator","type":"address"},{"name":"v","type":"uint8"},{"name":"r","type":"bytes32"},{"name":"s","type":"bytes32"}],"outputs":[]},
	{"type":"function","name":"setParty","stateMutability":"nonpayable","inputs":[{"name":"countryCode","type":"bytes2"},{"name":"partyId","type":"bytes3"},{"name":"roles","type":"uint8[]"},{"name":"operatorAddress","type":"address"}],"outputs":[]},
	{"type":"function","name":"setPartyRaw","stateMutability":"nonpayable","inputs":[{"name":"party","type":"address"},{"name":"countryCode","type":"bytes2"},{"name":"partyId","type":"bytes3"},{"name":"roles","type":"uint8[]"},{"name":"operatorAddress","type":"address"},{"name":"v","type":"uint8"},{"name":"r","type":"bytes32"},{"name":"s","type":"bytes32"}],"outputs":[]},
	{"type":"function","name":"deleteParty","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"deletePartyRaw","stateMutability":"nonpayable","inputs":[{"name":"party","type":"address"},{"name":"v","type":"uint8"},{"name":"r","type":"bytes32"},{"name":"s","type":"bytes32"}],"outputs":[]},
	{"type":"function","name":"setPartyModules","stateMutability":"nonpayable","inputs":[{"name":"senderModules","type":"uint8[]"},{"name":"receiverModules","type":"uint8[]"}],"outputs":[]},
	{"type":"function","name":"setPartyModulesRaw","stateMutability":"nonpayable","inputs":[{"name":"party","type":"address"},{"name":"senderModules","type":"uint8[]"},{"name":"receiverModules","type":"uint8[]"},{"name":"v","type":"uint8"},{"name":"r","type":"bytes32"},{"name":"s","type":"bytes32"}],"outputs":[]}
]`

// PartyDetails is the tuple returned by getPartyDetailsByAddress.
type PartyDetails struct {
	CountryCode     [2]byte
	PartyId         [3]byte
	Roles           []uint8
	ModulesSender   []uint8
	ModulesReceiver []uint8
	OperatorAddress common.Address
}

// PartyDetailsByOcpi is the tuple returned by getPartyDetailsByOcpi.
type PartyDetailsByOcpi struct {
	PartyAddress    common.Address
	Roles           []uint8
	ModulesSender   []uint8
	ModulesReceiver []uint8
	OperatorAddress common.Address
}

// Registry wraps the deployed registry contract.
type Registry struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewRegistry binds the registry contract at the given address to the
// backend.
func NewRegistry(address common.Address, backend bind.ContractBackend) (*Registry, error) {
	parsed, err := abi.JSON(strings.NewReader(RegistryABI))
	if err != nil {
		return nil, err
	}

	return &Registry{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// Address returns the bound contract address.
func (r *Registry) Address() common.Address {
	return r.address
}

// GetNode returns the node URL listed for the operator. An empty string
// means the operator has no listing.
func (r *Registry) GetNode(opts *bind.CallOpts, operator common.Address) (string, error) {
	var out []interface{}
	if err := r.contract.Call(opts, &out, "getNode", operator); err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

// GetNodeOperators returns the addresses of all listed node operators.
func (r *Registry) GetNodeOperators(opts *bind.CallOpts) ([]common.Address, error) {
	var out []interface{}
	if err := r.contract.Call(opts, &out, "getNodeOperators"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// GetParties returns the wallet addresses of all registered parties.
func (r *Registry) GetParties(opts *bind.CallOpts) ([]common.Address, error) {
	var out []interface{}
	if err := r.contract.Call(opts, &out, "getParties"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// GetPartyDetailsByAddress returns the raw party tuple for a wallet
// address. A zero operator address marks an absent listing.
func (r *Registry) GetPartyDetailsByAddress(opts *bind.CallOpts, party common.Address) (PartyDetails, error) {
	var out []interface{}
	if err := r.contract.Call(opts, &out, "getPartyDetailsByAddress", party); err != nil {
		return PartyDetails{}, err
	}

	return PartyDetails{
		CountryCode:     *abi.ConvertType(out[0], new([2]byte)).(*[2]byte),
		PartyId:         *abi.ConvertType(out[1], new([3]byte)).(*[3]byte),
		Roles:           *abi.ConvertType(out[2], new([]uint8)).(*[]uint8),
		ModulesSender:   *abi.ConvertType(out[3], new([]uint8)).(*[]uint8),
		ModulesReceiver: *abi.ConvertType(out[4], new([]uint8)).(*[]uint8),
		OperatorAddress: *abi.ConvertType(out[5], new(common.Address)).(*common.Address),
	}, nil
}

// GetPartyDetailsByOcpi returns the raw party tuple for an OCPI
// (countryCode, partyId) pair. A zero party address marks an absent listing.
func (r *Registry) GetPartyDetailsByOcpi(opts *bind.CallOpts, countryCode [2]byte, partyId [3]byte) (PartyDetailsByOcpi, error) {
	var out []interface{}
	if err := r.contract.Call(opts, &out, "getPartyDetailsByOcpi", countryCode, partyId); err != nil {
		return PartyDetailsByOcpi{}, err
	}

	return PartyDetailsByOcpi{
		PartyAddress:    *abi.ConvertType(out[0], new(common.Address)).(*common.Address),
		Roles:           *abi.ConvertType(out[1], new([]uint8)).(*[]uint8),
		ModulesSender:   *abi.ConvertType(out[2], new([]uint8)).(*[]uint8),
		ModulesReceiver: *abi.ConvertType(out[3], new([]uint8)).(*[]uint8),
		OperatorAddress: *abi.ConvertType(out[4], new(common.Address)).(*common.Address),
	}, nil
}

// SetNode lists the transactor's node under the given URL.
func (r *Registry) SetNode(opts *bind.TransactOpts, url string) (*types.Transaction, error) {
	return r.contract.Transact(opts, "setNode", url)
}

// SetNodeRaw lists a node on behalf of the operator who signed the
// operation.
func (r *Registry) SetNodeRaw(opts *bind.TransactOpts, operator common.Address, url string, v uint8, rSig [32]byte, sSig [32]byte) (*types.Transaction, error) {
	return r.contract.Transact(opts, "setNodeRaw", operator, url, v, rSig, sSig)
}

// DeleteNode removes the transactor's node listing.
func (r *Registry) DeleteNode(opts *bind.TransactOpts) (*types.Transaction, error) {
	return r.contract.Transact(opts, "deleteNode")
}

// DeleteNodeRaw removes a node listing on behalf of the operator who signed
// the operation.
func (r *Registry) DeleteNodeRaw(opts *bind.TransactOpts, operator common.Address, v uint8, rSig [32]byte, sSig [32]byte) (*types.Transaction, error) {
	return r.contract.Transact(opts, "deleteNodeRaw", operator, v, rSig, sSig)
}

// SetParty registers the transactor as an OCPI party.
func (r *Registry) SetParty(opts *bind.TransactOpts, countryCode [2]byte, partyId [3]byte, roles []uint8, operatorAddress common.Address) (*types.Transaction, error) {
	return r.contract.Transact(opts, "setParty", countryCode, partyId, roles, operatorAddress)
}

// SetPartyRaw registers a party on behalf of the address that signed the
// operation.
func (r *Registry) SetPartyRaw(opts *bind.TransactOpts, party common.Address, countryCode [2]byte, partyId [3]byte, roles []uint8, operatorAddress common.Address, v uint8, rSig [32]byte, sSig [32]byte) (*types.Transaction, error) {
	return r.contract.Transact(opts, "setPartyRaw", party, countryCode, partyId, roles, operatorAddress, v, rSig, sSig)
}

// DeleteParty removes the transactor's party listing.
func (r *Registry) DeleteParty(opts *bind.TransactOpts) (*types.Transaction, error) {
	return r.contract.Transact(opts, "deleteParty")
}

// DeletePartyRaw removes a party listing on behalf of the address that
// signed the operation.
func (r *Registry) DeletePartyRaw(opts *bind.TransactOpts, party common.Address, v uint8, rSig [32]byte, sSig [32]byte) (*types.Transaction, error) {
	return r.contract.Transact(opts, "deletePartyRaw", party, v, rSig, sSig)
}

// SetPartyModules updates the transactor party's module lists.
func (r *Registry) SetPartyModules(opts *bind.TransactOpts, senderModules, receiverModules []uint8) (*types.Transaction, error) {
	return r.contract.Transact(opts, "setPartyModules", senderModules, receiverModules)
}

// SetPartyModulesRaw updates module lists on behalf of the party that
// signed the operation.
func (r *Registry) SetPartyModulesRaw(opts *bind.TransactOpts, party common.Address, senderModules, receiverModules []uint8, v uint8, rSig [32]byte, sSig [32]byte) (*types.Transaction, error) {
	return r.contract.Transact(opts, "setPartyModulesRaw", party, senderModules, receiverModules, v, rSig, sSig)
}
