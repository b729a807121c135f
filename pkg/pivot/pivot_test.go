package pivot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probekit/pingdump/pkg/record"
)

func TestBuildFiltersInclusive(t *testing.T) {
	records := []record.Record{
		{Timestamp: 99, AddrIndex: 0, Value: 1},
		{Timestamp: 100, AddrIndex: 0, Value: 2},
		{Timestamp: 150, AddrIndex: 0, Value: 3},
		{Timestamp: 200, AddrIndex: 0, Value: 4},
		{Timestamp: 201, AddrIndex: 0, Value: 5},
	}

	table := Build(records, Range{Start: 100, End: 200})

	// Both endpoints are closed.
	assert.Equal(t, []int32{100, 150, 200}, table.Timestamps())
	for _, ts := range table.Timestamps() {
		assert.True(t, ts >= 100 && ts <= 200)
	}
}

func TestBuildUnbounded(t *testing.T) {
	records := []record.Record{
		{Timestamp: 0, AddrIndex: 0, Value: 1},
		{Timestamp: math.MaxInt32, AddrIndex: 0, Value: 2},
	}

	table := Build(records, Unbounded())
	assert.Equal(t, 2, table.Rows())
}

func TestBuildLastWriteWins(t *testing.T) {
	records := []record.Record{
		{Timestamp: 1000, AddrIndex: 2, Value: 111},
		{Timestamp: 1000, AddrIndex: 3, Value: 900},
		{Timestamp: 1000, AddrIndex: 2, Value: 222},
	}

	table := Build(records, Unbounded())

	v, ok := table.Value(1000, 2)
	require.True(t, ok)
	assert.Equal(t, int32(222), v)

	// The unrelated cell is untouched.
	v, ok = table.Value(1000, 3)
	require.True(t, ok)
	assert.Equal(t, int32(900), v)
}

func TestBuildEmptyResult(t *testing.T) {
	records := []record.Record{
		{Timestamp: 1000, AddrIndex: 0, Value: 1},
		{Timestamp: 2000, AddrIndex: 0, Value: 2},
	}

	table := Build(records, Range{Start: 5000, End: 6000})
	assert.True(t, table.Empty())
	assert.Equal(t, 0, table.Rows())
	assert.Empty(t, table.Timestamps())
	assert.Empty(t, table.Columns())
}

func TestColumnsDerivedFromFilteredData(t *testing.T) {
	records := []record.Record{
		{Timestamp: 1000, AddrIndex: 4, Value: 1},
		{Timestamp: 1500, AddrIndex: 0, Value: 2},
		// Outside the range: its address must not become a column.
		{Timestamp: 9000, AddrIndex: 7, Value: 3},
	}

	table := Build(records, Range{Start: 0, End: 2000})
	assert.Equal(t, []int32{0, 4}, table.Columns())
}

func TestValueAbsent(t *testing.T) {
	table := Build([]record.Record{{Timestamp: 10, AddrIndex: 1, Value: 5}}, Unbounded())

	_, ok := table.Value(10, 2)
	assert.False(t, ok)
	_, ok = table.Value(11, 1)
	assert.False(t, ok)
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: 10, End: 20}
	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(20))
	assert.False(t, r.Contains(9))
	assert.False(t, r.Contains(21))
}
