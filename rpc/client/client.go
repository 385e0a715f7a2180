package client

import (
	"context"

	"github.com/ValentinKolb/fbstore/lib/feedback"
	"github.com/ValentinKolb/fbstore/rpc/common"
	"github.com/ValentinKolb/fbstore/rpc/transport"
)

// NewRemoteClient creates a new client for the remote feedback service
// The function takes a config and a transport as parameters
// It returns common.ErrRemoteDisabled if the config names no endpoint.
func NewRemoteClient(
	config common.ClientConfig,
	transport transport.IClientTransport,
) (IRemoteClient, error) {

	// Connect the transport
	err := transport.Connect(config)
	if err != nil {
		return nil, err
	}

	return &remoteClient{
		config:    config,
		transport: transport,
	}, nil
}

type remoteClient struct {
	config    common.ClientConfig
	transport transport.IClientTransport
}

// --------------------------------------------------------------------------
// Interface Methods (docu see client.IRemoteClient)
// --------------------------------------------------------------------------

func (c *remoteClient) FetchAll(ctx context.Context) (entries []feedback.Entry, err error) {
	defer func() { countRequest("fetch", err) }()

	resp, err := invokeRead(ctx, c.transport)
	if err != nil {
		return nil, err
	}

	entries = make([]feedback.Entry, 0, len(resp.Data))
	for _, row := range resp.Data {
		if row.ID == "" {
			continue
		}
		entries = append(entries, row.ToEntry())
	}
	return entries, nil
}

func (c *remoteClient) AppendEntry(ctx context.Context, e feedback.Entry) (id string, err error) {
	defer func() { countRequest("append", err) }()

	resp, err := invokeWrite(ctx, c.transport, common.NewAppendRequest(e))
	if err != nil {
		return "", err
	}
	if resp.ID == "" {
		return e.ID, nil
	}
	return resp.ID, nil
}

func (c *remoteClient) UpdateStatus(ctx context.Context, id string, status feedback.Status) (err error) {
	defer func() { countRequest("update_status", err) }()

	_, err = invokeWrite(ctx, c.transport, common.NewUpdateStatusRequest(id, status))
	return err
}

func (c *remoteClient) Close() error {
	return c.transport.Close()
}
