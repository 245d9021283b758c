package convert

import "errors"

var (
	// ErrUnknownFormat means the file extension maps to no decoder.
	ErrUnknownFormat = errors.New("unknown audio format")

	// ErrBadSource means the file could not be decoded as its extension
	// claims.
	ErrBadSource = errors.New("undecodable audio source")
)
