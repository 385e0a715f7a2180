// Package serializer provides the encodings used to persist the feedback
// collection in the local durable cache. It defines a common interface and
// two implementations.
//
// Key Components:
//
//   - IEntrySerializer: Core interface that all serializer implementations must satisfy.
//
//   - jsonSerializerImpl: JSON encoding. This is the default, since the stored
//     array stays human readable and matches the layout of the remote protocol.
//
//   - gobSerializerImpl: Go's gob encoding, useful when the cache is only ever
//     read by Go processes.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	s := serializer.NewJSONSerializer()
//	data, err := s.Serialize(entries)
//	// ... store data ...
//	var loaded []feedback.Entry
//	err = s.Deserialize(data, &loaded)
package serializer
