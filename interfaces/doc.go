// Package interfaces defines the data model and component contracts for the
// OCN registry client without implementation details.
//
// The registry maps operator addresses to node endpoints and OCPI parties
// (identified by a country code and party id) to their roles, modules and
// node. Types here mirror the on-chain representation: roles and modules are
// closed enums stored as uint8 indices, addresses are 20-byte values with
// EIP-55 checksummed text form, and a zero operator address marks an absent
// listing.
//
// The RegistryReader and RegistryWriter interfaces are the contract between
// the on-chain client in the registry package and its consumers (HTTP
// handlers, CLI tooling, tests).
package interfaces
