// The registry-cli tool reads and updates OCN registry listings.
//
// Read commands need only the connection flags:
//
//	registry-cli --contract 0x... node list
//	registry-cli --contract 0x... party get-ocpi DE ABC
//
// Write commands take the authorizing key via --signer. With --spender set,
// the spender key submits and pays for the transaction while the signer key
// only authorizes the change off-chain (the delegated path):
//
//	registry-cli --contract 0x... node set https://node.example.org \
//	    --signer $PARTY_KEY --spender $SPENDER_KEY
package main
