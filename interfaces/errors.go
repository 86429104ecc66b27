package interfaces

import "errors"

// Error kinds surfaced by the registry client. Validation errors are raised
// before any network interaction; transport errors from the underlying RPC
// backend are passed through unmodified.
var (
	// ErrInvalidArgument is returned when an address, OCPI identifier, URL,
	// role or module index fails validation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotWritable is returned when a state-modifying operation is
	// attempted on a client constructed without transaction options.
	ErrNotWritable = errors.New("registry client is read-only")

	// ErrSignatureMismatch is returned when the address recovered from a
	// signature does not match the claimed signer.
	ErrSignatureMismatch = errors.New("recovered signer does not match claimed address")

	// ErrSigningFailure is returned when signing fails due to malformed key
	// material.
	ErrSigningFailure = errors.New("signing failure")
)
