/*
Package rowstore defines the table abstraction behind the feedback service.

The service persists feedback as one flat table with a fixed column order:

	id | page_id | element_id | round | author | comment | rating | status | created_at | source

All cells are strings. Rows are only ever appended; the single mutation is
overwriting one cell of an existing row (the status column in practice).
Lookups by id act on the first matching row, ids are not guaranteed unique.
Rows with an empty id are ignored on read.

Implementations:

  - mstore:   in memory table (header row plus data rows) with a concurrent id index
  - sqlstore: SQLite table (modernc.org/sqlite), ordered by rowid, indexed on id

Errors returned by implementations are of type *rowstore.Error with a RetCode.
The shared conformance tests live in the testing sub package:

	func TestMyStore(t *testing.T) {
		rstesting.RunRowStoreTests(t, "MyStore", func() rowstore.IRowStore { return NewMyStore() })
	}
*/
package rowstore
