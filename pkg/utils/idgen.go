package utils

import (
	"strconv"
	"sync"
	"time"
)

// Prefix identitas yang dibentuk dari timestamp (milidetik).
const (
	PrefixManualPrescription = "M"
	PrefixManualVisit        = "MV"
	PrefixManualPatient      = "MP"
	PrefixInvoice            = "INV"
	PrefixVisit              = "V"
	PrefixPrescription       = "RX"
)

// IDSource menghasilkan stempel waktu milidetik yang naik monoton dalam satu proses,
// sehingga dua panggilan pada milidetik yang sama tidak menghasilkan id yang sama.
// Antar proses tidak ada jaminan unik.
type IDSource struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewIDSource(now func() time.Time) *IDSource {
	if now == nil {
		now = time.Now
	}
	return &IDSource{now: now}
}

// Stamp returns the next strictly increasing unix-millisecond value.
func (s *IDSource) Stamp() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UnixMilli()
	if ts <= s.last {
		ts = s.last + 1
	}
	s.last = ts
	return ts
}

// Next returns prefix followed by a fresh stamp.
func (s *IDSource) Next(prefix string) string {
	return WithStamp(prefix, s.Stamp())
}

func (s *IDSource) VisitID() string        { return s.Next(PrefixVisit) }
func (s *IDSource) PrescriptionID() string { return s.Next(PrefixPrescription) }

func WithStamp(prefix string, stamp int64) string {
	return prefix + strconv.FormatInt(stamp, 10)
}
