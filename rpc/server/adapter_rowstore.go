package server

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ValentinKolb/fbstore/lib/feedback"
	"github.com/ValentinKolb/fbstore/lib/rowstore"
	"github.com/ValentinKolb/fbstore/rpc/common"
)

// NewRowStoreServerAdapter creates the adapter that serves feedback rows.
// defaultSource is written into appended rows that carry no source.
func NewRowStoreServerAdapter(defaultSource string) IRPCServerAdapter {
	if defaultSource == "" {
		defaultSource = feedback.DefaultSource
	}
	return &rowStoreServerAdapterImpl{
		defaultSource: defaultSource,
		now:           time.Now,
	}
}

type rowStoreServerAdapterImpl struct {
	defaultSource string
	now           func() time.Time
}

// --------------------------------------------------------------------------
// Interface Methods (docu see server.IRPCServerAdapter)
// --------------------------------------------------------------------------

func (a *rowStoreServerAdapterImpl) HandleRead(rows rowstore.IRowStore) *common.Response {
	if rows == nil {
		return common.NewErrorResponse("handler: row store is nil")
	}

	table, err := rows.Rows()
	if err != nil {
		return common.NewErrorResponse(err.Error())
	}

	data := make([]common.RowPayload, 0, len(table))
	for _, r := range table {
		data = append(data, rowToPayload(r))
	}
	return common.NewReadResponse(data)
}

func (a *rowStoreServerAdapterImpl) HandleWrite(req *common.Request, rows rowstore.IRowStore) *common.Response {
	if rows == nil {
		return common.NewErrorResponse("handler: row store is nil")
	}

	switch req.Action {
	case common.ActionUpdateStatus:
		return a.updateStatus(req, rows)
	default:
		// everything that is not a status update appends a row
		return a.append(req, rows)
	}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (a *rowStoreServerAdapterImpl) append(req *common.Request, rows rowstore.IRowStore) *common.Response {
	now := a.now()

	id := string(req.ID)
	if id == "" {
		id = feedback.NewIDAt(now)
	}
	status := req.Status
	if status == "" {
		status = feedback.StatusOpen
	}
	createdAt := req.CreatedAt
	if createdAt == "" {
		createdAt = feedback.FormatTime(now)
	}
	source := req.Source
	if source == "" {
		source = a.defaultSource
	}

	row := rowstore.NewRow()
	row[rowstore.ColID] = id
	row[rowstore.ColPageID] = req.PageID
	row[rowstore.ColElementID] = string(req.ElementID)
	row[rowstore.ColRound] = strconv.Itoa(req.Round.Or(feedback.DefaultRound))
	row[rowstore.ColAuthor] = req.Author
	row[rowstore.ColComment] = req.Comment
	row[rowstore.ColRating] = strconv.Itoa(req.Rating.Or(feedback.DefaultRating))
	row[rowstore.ColStatus] = string(status)
	row[rowstore.ColCreatedAt] = createdAt
	row[rowstore.ColSource] = source

	if err := rows.AppendRow(row); err != nil {
		Logger.Errorf("Failed to append row %s: %v", id, err)
		return common.NewErrorResponse(err.Error())
	}
	Logger.Debugf("Appended row %s (page %q)", id, req.PageID)
	return common.NewAppendResponse(id)
}

func (a *rowStoreServerAdapterImpl) updateStatus(req *common.Request, rows rowstore.IRowStore) *common.Response {
	id := string(req.ID)
	if !req.Status.Valid() {
		return common.NewErrorResponse(fmt.Sprintf("invalid status %q", req.Status))
	}

	updated, err := rows.UpdateCell(id, rowstore.ColStatus, string(req.Status))
	if err != nil {
		Logger.Errorf("Failed to update status of %s: %v", id, err)
		return common.NewErrorResponse(err.Error())
	}
	if !updated {
		return common.NewErrorResponse(common.ErrIDNotFound.Error())
	}
	Logger.Debugf("Updated status of %s to %s", id, req.Status)
	return common.NewUpdateResponse(id)
}

// rowToPayload converts a table row into its wire form. Numeric cells that can
// not be parsed are left out and get defaulted by the client.
func rowToPayload(r rowstore.Row) common.RowPayload {
	return common.RowPayload{
		ID:        common.FlexString(r.Get(rowstore.ColID)),
		PageID:    r.Get(rowstore.ColPageID),
		ElementID: feedback.NullString(r.Get(rowstore.ColElementID)),
		Round:     common.ParseFlexInt(r.Get(rowstore.ColRound)),
		Author:    r.Get(rowstore.ColAuthor),
		Comment:   r.Get(rowstore.ColComment),
		Rating:    common.ParseFlexInt(r.Get(rowstore.ColRating)),
		Status:    feedback.Status(r.Get(rowstore.ColStatus)),
		CreatedAt: r.Get(rowstore.ColCreatedAt),
		Source:    r.Get(rowstore.ColSource),
	}
}
