// Package registry provides the client for the OCN registry contract on
// Ethereum-compatible chains.
//
// The registry maps node operator addresses to service URLs and OCPI
// parties (country code + party id) to their roles, modules and node. The
// client exposes the read surface (nodes, parties, listings) and two write
// paths:
//
//   - Direct writes sign and submit with the client's own transactor key,
//     changing the listing owned by that key's address.
//   - Raw (delegated) writes take the authorizing party's private key,
//     build a signed operation via the delegated package, and submit it
//     with the client's transactor key. The transactor pays for gas; the
//     contract recovers the authorizing signer from the signature.
//
// Writes require transaction options. A client constructed without them is
// read-only, and any write attempt fails with interfaces.ErrNotWritable
// before touching the network.
//
// # Usage
//
//	env := registry.Environment{
//		Name:     "volta",
//		RPC:      "https://volta-rpc.energyweb.org",
//		ChainID:  73799,
//		Contract: contractAddr,
//	}
//	client, err := registry.Dial(ctx, env, spenderKey)
//	if err != nil {
//		return err
//	}
//
//	// Delegated write: partyKey authorizes, spenderKey pays.
//	tx, err := client.SetNodeRaw(ctx, "https://node.example.org", partyKey)
//	if err != nil {
//		return err
//	}
//	receipt, err := client.WaitMined(ctx, tx)
//
// The client performs no retries: a dropped submission must be rebuilt and
// resubmitted by the caller.
package registry
