package serializer

import (
	"bytes"
	"encoding/gob"

	"github.com/ValentinKolb/fbstore/lib/feedback"
)

// NewGOBSerializer creates a new serializer using Go's binary gob format
func NewGOBSerializer() IEntrySerializer {
	return &gobSerializerImpl{}
}

// gobSerializerImpl implements the IEntrySerializer interface using gob encoding
type gobSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IEntrySerializer)
// --------------------------------------------------------------------------

func (g gobSerializerImpl) Serialize(entries []feedback.Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobSerializerImpl) Deserialize(b []byte, entries *[]feedback.Entry) error {
	buf := bytes.NewBuffer(b)
	dec := gob.NewDecoder(buf)
	return dec.Decode(entries)
}

func (g gobSerializerImpl) Name() string {
	return "gob"
}
