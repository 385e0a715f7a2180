package serializer

import "fmt"

// ByName returns the serializer registered under name ("json" or "gob").
func ByName(name string) (IEntrySerializer, error) {
	switch name {
	case "json", "":
		return NewJSONSerializer(), nil
	case "gob":
		return NewGOBSerializer(), nil
	default:
		return nil, fmt.Errorf("invalid serializer %s", name)
	}
}
