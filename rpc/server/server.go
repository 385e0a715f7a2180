package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ValentinKolb/fbstore/lib/rowstore"
	"github.com/ValentinKolb/fbstore/lib/rowstore/mstore"
	"github.com/ValentinKolb/fbstore/lib/rowstore/sqlstore"
	"github.com/ValentinKolb/fbstore/rpc/common"
	"github.com/ValentinKolb/fbstore/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("server")

// NewRPCServer creates a new feedback service
// It takes a config, a transport and the row store holding the feedback table as parameters.
//
// Usage:
//
//	rows, err := server.NewRowStore(*config)
//	if err != nil {
//		panic(err)
//	}
//	s := server.NewRPCServer(*config, http.NewHttpServerTransport(), rows)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IServerTransport,
	rows rowstore.IRowStore,
) *RPCServer {
	Logger.Infof("Created feedback service")
	Logger.Infof("%s", config.String())

	return &RPCServer{
		config:    config,
		transport: transport,
		rows:      rows,
		adapter:   NewRowStoreServerAdapter(config.DefaultSource),
	}
}

// RPCServer serves the feedback table over a transport.
type RPCServer struct {
	config    common.ServerConfig
	transport transport.IServerTransport
	rows      rowstore.IRowStore
	adapter   IRPCServerAdapter
}

// HandleRead answers a read request with the encoded response.
func (s *RPCServer) HandleRead() []byte {
	return encode(s.adapter.HandleRead(s.rows))
}

// HandleWrite decodes a write request, applies it and returns the encoded response.
func (s *RPCServer) HandleWrite(body []byte) []byte {
	var req common.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return encode(common.NewErrorResponse(fmt.Sprintf("failed to deserialize request: %s", err)))
	}
	return encode(s.adapter.HandleWrite(&req, s.rows))
}

// Serve registers the handlers and starts the transport layer.
// It blocks until the transport stops.
func (s *RPCServer) Serve() error {
	s.transport.RegisterHandler(s.HandleRead, s.HandleWrite)
	return s.transport.Listen(s.config)
}

// Close releases the row store.
func (s *RPCServer) Close() error {
	return s.rows.Close()
}

// NewRowStore creates the row store selected in the configuration.
func NewRowStore(config common.ServerConfig) (rowstore.IRowStore, error) {
	switch config.RowStore {
	case "memory", "":
		Logger.Warningf("Using in memory row store, feedback is lost on restart")
		return mstore.NewMemoryStore(), nil
	case "sqlite":
		if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		return sqlstore.NewSQLiteStore(filepath.Join(config.DataDir, "feedback.db"))
	default:
		return nil, fmt.Errorf("invalid row store %s", config.RowStore)
	}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func encode(resp *common.Response) []byte {
	val, err := json.Marshal(resp)
	if err != nil {
		Logger.Errorf("Failed to serialize response: %v", err)
		val, _ = json.Marshal(common.NewErrorResponse(fmt.Sprintf("failed to serialize response: %s", err)))
	}
	return val
}
