package websession

import "errors"

var (
	// ErrCredentials wraps a failure to obtain or apply stored
	// credentials. The request is aborted before dispatch because it
	// could not have been sent correctly.
	ErrCredentials = errors.New("websession: applying credentials failed")

	// ErrNoTokenSource is returned when token credentials were
	// configured without a token source.
	ErrNoTokenSource = errors.New("websession: no token source configured")

	// ErrNilRequest is returned by Do for a nil request.
	ErrNilRequest = errors.New("websession: nil request")

	// ErrParsingConfig is returned when environment variables cannot
	// be parsed into a Config.
	ErrParsingConfig = errors.New("websession: failed to parse config from environment")
)
