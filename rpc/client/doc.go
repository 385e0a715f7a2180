// Package client implements the client of the remote feedback service.
// It provides an implementation of IRemoteClient that talks to the service
// through a transport.IClientTransport.
//
// The package focuses on:
//   - Reading the complete feedback table and coercing loosely typed rows into entries
//   - Appending entries and updating their status
//   - Turning every failure (transport, malformed body, error status) into a Go error
//
// Key Components:
//
//   - IRemoteClient: FetchAll, AppendEntry and UpdateStatus, each with a context.
//
//   - NewRemoteClient: Factory function that connects the transport and returns
//     the client. Without a configured endpoint it returns common.ErrRemoteDisabled.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  Endpoints:     []string{"https://script.google.com/macros/s/.../exec"},
//	  TimeoutSecond: 10,
//	}
//
//	c, err := client.NewRemoteClient(config, http.NewHttpClientTransport())
//	if err != nil {
//	  log.Fatal(err)
//	}
//
//	entries, err := c.FetchAll(ctx)
//	id, err := c.AppendEntry(ctx, entry)
//	err = c.UpdateStatus(ctx, id, feedback.StatusResolved)
//	if errors.Is(err, common.ErrIDNotFound) { ... }
//
// Metrics:
//
//	Every call increments fbstore_remote_requests_total{op,result}
//	(VictoriaMetrics), where result is ok, error or not_found.
//
// Thread Safety:
//
//	The client is safe for concurrent use.
package client
