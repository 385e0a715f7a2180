package server

import (
	"github.com/ValentinKolb/fbstore/lib/rowstore"
	"github.com/ValentinKolb/fbstore/rpc/common"
)

// IRPCServerAdapter translates decoded service requests into row store operations.
// Failures are reported inside the returned response, never as Go errors.
type IRPCServerAdapter interface {
	// HandleRead answers a GET request with all rows of the table.
	HandleRead(rows rowstore.IRowStore) (resp *common.Response)
	// HandleWrite answers a POST request (append or update_status).
	HandleWrite(req *common.Request, rows rowstore.IRowStore) (resp *common.Response)
}
