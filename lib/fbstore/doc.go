/*
Package fbstore provides the feedback store used by dashboards: an offline first
collection of comments and ratings attached to pages and page elements.

# Overview

The Store composes three parts:

  - a local durable cache (lib/cache) that holds the whole collection and
    answers every read synchronously
  - a remote client (rpc/client) that talks to the feedback service
  - a sync cache (lib/syncache) that bounds how often the remote is asked for
    the full table

Reads never wait for the network. Writes are applied locally first and then
handed to a sync policy (lib/policy) that runs the remote write on a separate
goroutine. A failed remote write is logged and the change stays local. With
the default policy nothing is retried.

# Usage

	s, err := fbstore.FromConfig(config)
	if err != nil { ... }
	defer s.Close() // waits for background writes

	e, err := s.AddFeedback(feedback.Fields{PageID: "exec", Author: "Ana", Comment: "Great", Rating: 5})
	s.UpdateStatus(e.ID, feedback.StatusResolved)

	open := s.GetFeedback(fbstore.Filter{PageID: "exec", Status: feedback.StatusOpen})
	pageLevel := s.GetFeedback(fbstore.Filter{PageID: "exec", ElementID: fbstore.PageLevel()})

	if !s.SyncFromRemote(ctx) {
		// remote unreachable, keep working with the local collection
	}

	err = s.ExportFile("feedback.csv", fbstore.ExportCSV)

# Consistency

SyncFromRemote is a destructive pull: the local collection is replaced by the
remote one, so local entries whose background append failed are lost. Two
Store instances sharing one local backend can overwrite each other's writes.
*/
package fbstore
