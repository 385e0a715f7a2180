/*
Package mstore provides an in memory implementation of rowstore.IRowStore.

The table is held as a slice of string rows with the header in row zero, the
same shape the feedback service sees in a spreadsheet. A concurrent map
(xsync.MapOf) indexes the position of the first row for every id, so lookups
and status updates do not scan the table.

Data is lost when the process exits. Use sqlstore for a persistent table.
*/
package mstore
