package feedback

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	base36Digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	idSuffixLen  = 5
)

// NewID generates an entry id for the current time.
func NewID() string {
	return NewIDAt(time.Now())
}

// NewIDAt generates an entry id: the base-36 unix time in milliseconds followed
// by five random base-36 characters. Collisions are unlikely for a single client
// but nothing guarantees uniqueness across clients.
func NewIDAt(t time.Time) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(t.UnixMilli(), 36))
	for i := 0; i < idSuffixLen; i++ {
		sb.WriteByte(base36Digits[rand.IntN(len(base36Digits))])
	}
	return sb.String()
}
