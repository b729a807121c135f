// Package pivot reshapes the decoded record stream into a sparse
// timestamp×address table ready for tabular export.
package pivot

import (
	"math"
	"sort"

	"github.com/probekit/pingdump/pkg/record"
)

// Range is an inclusive timestamp filter in unix seconds. Both bounds are
// closed: a record is kept iff Start <= ts <= End.
type Range struct {
	Start int32
	End   int32
}

// Unbounded returns a range covering the whole 32-bit timestamp domain.
func Unbounded() Range {
	return Range{Start: 0, End: math.MaxInt32}
}

// Contains reports whether ts falls inside the range.
func (r Range) Contains(ts int32) bool {
	return ts >= r.Start && ts <= r.End
}

// Table is a sparse mapping from timestamp to per-address values. Only
// timestamps inside the build range appear, and the column set is derived
// from the data that survived filtering, not from the full address list.
type Table struct {
	cells map[int32]map[int32]int32
}

// Build filters records through rng and pivots them into a Table.
//
// When the same (timestamp, address) pair occurs more than once, the later
// record in decode order overwrites the earlier one. This matches the
// source log's tolerance for re-sent samples; see DESIGN.md for why the
// overwrite is kept rather than rejected.
func Build(records []record.Record, rng Range) *Table {
	cells := make(map[int32]map[int32]int32)
	for _, r := range records {
		if !rng.Contains(r.Timestamp) {
			continue
		}
		row, ok := cells[r.Timestamp]
		if !ok {
			row = make(map[int32]int32)
			cells[r.Timestamp] = row
		}
		row[r.AddrIndex] = r.Value
	}
	return &Table{cells: cells}
}

// Empty reports whether filtering left no rows at all. Callers are
// expected to report this to the user and skip serialization.
func (t *Table) Empty() bool {
	return len(t.cells) == 0
}

// Rows returns the number of distinct timestamps in the table.
func (t *Table) Rows() int {
	return len(t.cells)
}

// Timestamps returns every timestamp in the table in ascending order.
func (t *Table) Timestamps() []int32 {
	out := make([]int32, 0, len(t.cells))
	for ts := range t.cells {
		out = append(out, ts)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Columns returns the distinct address indices that occur anywhere in the
// table, in ascending order. This is the export column set.
func (t *Table) Columns() []int32 {
	seen := make(map[int32]struct{})
	for _, row := range t.cells {
		for idx := range row {
			seen[idx] = struct{}{}
		}
	}
	out := make([]int32, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Value returns the cell at (ts, addrIndex) and whether it is present.
func (t *Table) Value(ts, addrIndex int32) (int32, bool) {
	row, ok := t.cells[ts]
	if !ok {
		return 0, false
	}
	v, ok := row[addrIndex]
	return v, ok
}
