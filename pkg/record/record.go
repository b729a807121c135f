// Package record decodes stabping's fixed-size binary probe log.
package record

import (
	"encoding/binary"
	"log/slog"
	"os"
)

// Size is the fixed on-disk size of one record: three little-endian int32s.
const Size = 12

// Sentinel values stored in the log in place of a real measurement. Both
// render as an empty cell on export, but they are distinct conditions and
// are kept distinct here.
const (
	// SentinelError means the probe was attempted and failed.
	SentinelError int32 = -2_100_000_000

	// SentinelNoData means no probe was attempted for this slot.
	SentinelNoData int32 = -2_000_000_000
)

// Record is a single probe sample from the binary log.
type Record struct {
	// Timestamp is the sample time in unix seconds (UTC).
	Timestamp int32

	// AddrIndex is the zero-based position of the probed target in the
	// address index file. Indices beyond the index file are still valid
	// records; resolution is deferred to export time.
	AddrIndex int32

	// Value is the measured round-trip time in microseconds, or one of
	// the sentinel codes.
	Value int32
}

// IsSentinel reports whether the record's value is a reserved sentinel
// code rather than a measurement.
func (r Record) IsSentinel() bool { return IsSentinel(r.Value) }

// IsSentinel reports whether v is one of the reserved sentinel codes.
func IsSentinel(v int32) bool {
	return v == SentinelError || v == SentinelNoData
}

// Decode interprets buf as consecutive Size-byte little-endian records and
// returns them in on-disk order. The buffer length does not have to be a
// multiple of Size: a trailing partial record is dropped with a warning on
// the diagnostic channel and everything before it still decodes.
func Decode(buf []byte) []Record {
	if rem := len(buf) % Size; rem != 0 {
		slog.Warn("data size is not a multiple of the record size, dropping trailing bytes",
			"size", len(buf),
			"record_size", Size,
			"trailing_bytes", rem)
	}

	n := len(buf) / Size
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		off := i * Size
		records = append(records, Record{
			Timestamp: int32(binary.LittleEndian.Uint32(buf[off:])),
			AddrIndex: int32(binary.LittleEndian.Uint32(buf[off+4:])),
			Value:     int32(binary.LittleEndian.Uint32(buf[off+8:])),
		})
	}
	return records
}

// DecodeFile reads path in full and decodes it. The file is expected to be
// a flat record log with no header or footer.
func DecodeFile(path string) ([]Record, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(buf), nil
}

// Append serializes r onto buf in the on-disk layout. It is the inverse of
// Decode for a single record and exists mainly to build test fixtures.
func Append(buf []byte, r Record) []byte {
	var cell [Size]byte
	binary.LittleEndian.PutUint32(cell[0:4], uint32(r.Timestamp))
	binary.LittleEndian.PutUint32(cell[4:8], uint32(r.AddrIndex))
	binary.LittleEndian.PutUint32(cell[8:12], uint32(r.Value))
	return append(buf, cell[:]...)
}
