package order

import (
	"fmt"
	"sync/atomic"
	"time"
)

var numberSeq atomic.Uint64

// NewNumber generates a process-wide-unique, human-readable order number:
// a millisecond timestamp followed by a four-digit rolling sequence. The
// sequence breaks ties between orders submitted within the same millisecond;
// the database's unique constraint on the column remains the final arbiter.
func NewNumber(now time.Time) string {
	seq := numberSeq.Add(1) % 10000
	return fmt.Sprintf("%d%04d", now.UnixMilli(), seq)
}
