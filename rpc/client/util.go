package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ValentinKolb/fbstore/rpc/common"
	"github.com/ValentinKolb/fbstore/rpc/transport"
	vmetrics "github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("rpc")
)

// invokeRead sends a read request and decodes the response.
// It returns an error if the transport fails or the service reports one.
func invokeRead(ctx context.Context, t transport.IClientTransport) (*common.Response, error) {
	respBytes, err := t.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("feedback service unreachable: %w", err)
	}
	return decodeResponse(respBytes)
}

// invokeWrite serializes a write request, sends it and decodes the response.
// It returns an error if the transport fails or the service reports one.
func invokeWrite(ctx context.Context, t transport.IClientTransport, req *common.Request) (*common.Response, error) {
	reqBytes, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	respBytes, err := t.Post(ctx, reqBytes)
	if err != nil {
		return nil, fmt.Errorf("feedback service unreachable: %w", err)
	}
	return decodeResponse(respBytes)
}

func decodeResponse(b []byte) (*common.Response, error) {
	resp := &common.Response{}
	if err := json.Unmarshal(b, resp); err != nil {
		return nil, fmt.Errorf("invalid response from feedback service: %w", err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp, nil
}

// countRequest increments the request counter of op, labelled with the outcome.
func countRequest(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, common.ErrIDNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	if err != nil {
		Logger.Debugf("Remote %s failed: %v", op, err)
	}
	vmetrics.GetOrCreateCounter(fmt.Sprintf(`fbstore_remote_requests_total{op=%q,result=%q}`, op, result)).Inc()
}
