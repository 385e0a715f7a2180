package client

import (
	"context"

	"github.com/ValentinKolb/fbstore/lib/feedback"
)

// IRemoteClient is the client of the remote feedback service.
// Every operation returns an error instead of panicking. Errors are plain
// values: an unreachable service, a non-ok response or common.ErrIDNotFound.
type IRemoteClient interface {
	// FetchAll returns all entries known to the service.
	FetchAll(ctx context.Context) (entries []feedback.Entry, err error)
	// AppendEntry stores a new entry and returns the id the service used for it.
	AppendEntry(ctx context.Context, e feedback.Entry) (id string, err error)
	// UpdateStatus changes the status of the entry with the given id.
	// It returns common.ErrIDNotFound if the service does not know the id.
	UpdateStatus(ctx context.Context, id string, status feedback.Status) (err error)
	// Close releases the transport.
	Close() (err error)
}
