// Package transport defines the interfaces between the feedback service
// protocol and the medium that carries it.
//
// The client side (IClientTransport) knows two verbs: a read that returns the
// whole table and a write that posts one JSON body. The server side
// (IServerTransport) routes those two verbs to the handlers registered by the
// service. Bodies are opaque bytes here; encoding lives in rpc/common.
//
// Implementations:
//
//   - http: net/http client with round-robin endpoint selection, and a chi
//     based server with CORS and a /metrics endpoint.
package transport
