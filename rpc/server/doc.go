// Package server implements the reference feedback service.
// It serves the feedback table of a rowstore.IRowStore through the request
// protocol defined in rpc/common, so the feedback store client can be run
// against a self hosted backend instead of a spreadsheet.
//
// The package focuses on:
//   - Reading all rows (GET), coercing numeric cells and skipping rows without id
//   - Appending rows with defaults for every omitted field (POST)
//   - Updating the status cell of the first row with a matching id (POST, action update_status)
//
// Key Components:
//
//   - IRPCServerAdapter: Interface translating decoded requests into row store
//     operations. NewRowStoreServerAdapter returns the feedback implementation.
//
//   - NewRPCServer: Factory function creating a service on top of a transport
//     and a row store.
//
//   - NewRowStore: Creates the row store named in the configuration
//     (memory or sqlite).
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  Endpoint: "0.0.0.0:8080",
//	  Path:     "/feedback",
//	  RowStore: "sqlite",
//	  DataDir:  "./data",
//	  LogLevel: "info",
//	}
//
//	rows, err := server.NewRowStore(config)
//	if err != nil {
//	  log.Fatalf("Row store error: %v", err)
//	}
//	s := server.NewRPCServer(config, http.NewHttpServerTransport(), rows)
//	defer s.Close()
//
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Responses:
//
//	Every request is answered with HTTP 200. Success and failure are reported
//	in the status field of the body:
//
//	  {"status":"ok","data":[...]}            read
//	  {"status":"ok","id":"..."}              append
//	  {"status":"ok","updated":"..."}         update_status
//	  {"status":"error","message":"..."}      any failure, e.g. "ID not found"
//
// Thread Safety:
//
//	Requests are processed concurrently. Consistency of the table is provided
//	by the row store implementation.
package server
