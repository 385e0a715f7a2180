// Package http implements the HTTP transport of the feedback service.
//
// Key Components:
//
//   - httpClientTransport: implements transport.IClientTransport. Requests go
//     to the configured endpoints round-robin. By default every request is
//     sent once; more attempts must be configured explicitly.
//
//   - httpServerTransport: implements transport.IServerTransport. NewRouter
//     wires GET and POST on the configured path to the registered handlers,
//     adds CORS headers (browsers call the service directly), exposes
//     Prometheus metrics on /metrics and records request timers that are
//     logged periodically.
//
// Thread Safety:
//
//	The client transport is safe for concurrent use after Connect. It uses
//	an atomic counter for the round-robin selection.
package http
