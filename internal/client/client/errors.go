package client

import "errors"

var (
	// ErrUnexpectedStatus is wrapped into failures of responses whose status
	// is not 2xx and whose body carries no message.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrMalformedResponse is wrapped into failures to decode a 2xx body.
	ErrMalformedResponse = errors.New("malformed response")
)
