/*
Package sqlstore provides a persistent implementation of rowstore.IRowStore on
top of SQLite (modernc.org/sqlite, no cgo required).

All rows live in a single table named feedback with one TEXT column per
rowstore column. Insertion order is the SQLite rowid order, and an index on the
id column serves lookups. "First matching row" always means the matching row
with the lowest rowid.
*/
package sqlstore
