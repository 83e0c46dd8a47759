package mcp

import "errors"

// Error kinds surfaced by the dispatch layer. Each one terminates a single
// request; the session keeps accepting further requests afterwards.
var (
	ErrInvalidArguments  = errors.New("invalid arguments")
	ErrUnsupportedScheme = errors.New("unsupported URI scheme")
	ErrUnknownPrompt     = errors.New("unknown prompt")
)
