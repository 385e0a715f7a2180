/*
Package testing provides the conformance test suite for rowstore.IRowStore
implementations. Every implementation runs the same suite from its own tests:

	rstesting.RunRowStoreTests(t, "MemoryStore", func(t *testing.T) rowstore.IRowStore {
		return mstore.NewMemoryStore()
	})
*/
package testing
