package sim

import "errors"

var (
	ErrNoIterations  = errors.New("iterations must be > 0")
	ErrMissingSeeds  = errors.New("server and client seeds are required")
	ErrNonceOverflow = errors.New("nonce range overflows uint64")
)
