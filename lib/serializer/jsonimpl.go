package serializer

import (
	"encoding/json"

	"github.com/ValentinKolb/fbstore/lib/feedback"
)

// NewJSONSerializer creates a new serializer using json encoding
func NewJSONSerializer() IEntrySerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the IEntrySerializer interface using json encoding
type jsonSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IEntrySerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) Serialize(entries []feedback.Entry) ([]byte, error) {
	if entries == nil {
		entries = []feedback.Entry{}
	}
	return json.Marshal(entries)
}

func (j jsonSerializerImpl) Deserialize(b []byte, entries *[]feedback.Entry) error {
	return json.Unmarshal(b, entries)
}

func (j jsonSerializerImpl) Name() string {
	return "json"
}
