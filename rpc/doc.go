// Package rpc provides the communication layer between the local feedback
// store and the remote feedback service. The remote side is a table of rows
// reachable through a single HTTP endpoint; GET returns every row, POST
// carries an action (append or update_status).
//
// The package is organized into several subpackages:
//
//   - common: The wire protocol (Request, Response, RowPayload with lenient
//     number and string decoding), configuration structures, and logging.
//
//   - transport: Network communication abstractions with an HTTP
//     implementation for both the client and the server side.
//
//   - client: The remote client used by the local store to fetch all rows,
//     append an entry and update the status of an entry.
//
//   - server: The reference feedback service, an adapter that applies the
//     protocol actions to a row store (in memory or sqlite).
package rpc
