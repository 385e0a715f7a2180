package transport

import (
	"context"

	"github.com/ValentinKolb/fbstore/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ReadHandleFunc is called by a server transport for a read request (GET).
// It returns the encoded response body.
type ReadHandleFunc func() (resp []byte)

// WriteHandleFunc is called by a server transport for a write request (POST).
// It takes the raw request body and returns the encoded response body.
type WriteHandleFunc func(req []byte) (resp []byte)

// IServerTransport is the interface for the server side transport layer
type IServerTransport interface {
	// RegisterHandler registers the handlers for the transport layer
	// They should be called when a request is received
	RegisterHandler(read ReadHandleFunc, write WriteHandleFunc)
	// Listen starts the transport layer and listens for incoming requests
	// It blocks until the listener fails
	Listen(config common.ServerConfig) error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IClientTransport is the interface for the client side transport layer
type IClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Get sends a read request and returns the response body
	Get(ctx context.Context) (resp []byte, err error)
	// Post sends a write request and returns the response body
	Post(ctx context.Context, req []byte) (resp []byte, err error)
	// Close closes the transport connection
	Close() error
}
