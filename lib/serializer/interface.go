package serializer

import "github.com/ValentinKolb/fbstore/lib/feedback"

// IEntrySerializer is the interface for all encodings of the feedback collection
type IEntrySerializer interface {
	// Serialize serializes the whole collection into a byte array
	// It returns the serialized byte array and an error if any
	Serialize(entries []feedback.Entry) ([]byte, error)
	// Deserialize deserializes a byte array into a collection
	// It takes a byte array and a pointer to the target slice as parameters
	// It returns an error if any
	Deserialize(b []byte, entries *[]feedback.Entry) error
	// Name returns the name of the encoding (e.g. "json")
	Name() string
}
