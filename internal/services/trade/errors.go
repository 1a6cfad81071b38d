package trade

import "errors"

// Service errors
var (
	// ErrNoQRCode means the gateway reported success but sent no qr_code.
	// A precreate without a code is unusable, so it counts as a failure.
	ErrNoQRCode = errors.New("gateway returned no qr_code")
)
