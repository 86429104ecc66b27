// Package httpserver serves a read-only JSON API over the OCN registry.
//
// The server exposes the registry's node and party listings for consumers
// that cannot or should not talk to the chain directly:
//
//	GET /api/v1/nodes
//	GET /api/v1/nodes/{operator}
//	GET /api/v1/parties
//	GET /api/v1/parties/{address}
//	GET /api/v1/parties/ocpi/{countryCode}/{partyId}
//
// plus the usual health and drain endpoints (/livez, /readyz, /drain,
// /undrain) and an optional pprof mount. There are no write endpoints:
// state changes require key material and go through the registry client or
// the CLI.
package httpserver
