package index

import "errors"

// ErrVectorLengthMismatch indicates two vectors have different dimensions.
var ErrVectorLengthMismatch = errors.New("vector length mismatch")

// ErrNoChunks indicates an ingest run produced zero chunks; nothing is written.
var ErrNoChunks = errors.New("no chunks produced from corpus")
