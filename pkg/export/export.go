package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/probekit/pingdump/pkg/index"
	"github.com/probekit/pingdump/pkg/pivot"
	"github.com/probekit/pingdump/pkg/record"
)

// Supported output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// datetimeLayout is the human-readable UTC form of a row timestamp.
const datetimeLayout = "2006-01-02 15:04:05"

// Exporter serializes pivoted tables, resolving column headers against a
// fixed address list.
type Exporter struct {
	addrs []string
}

// NewExporter creates an exporter over the given address list.
func NewExporter(addrs []string) *Exporter {
	return &Exporter{addrs: addrs}
}

// Result contains stats about one export.
type Result struct {
	RowsWritten int       `json:"rows_written"`
	Columns     int       `json:"columns"`
	Format      string    `json:"format"`
	ExportedAt  time.Time `json:"exported_at"`
}

// Write serializes table in the named format.
func (e *Exporter) Write(w io.Writer, table *pivot.Table, format string) (*Result, error) {
	switch format {
	case FormatCSV:
		return e.WriteCSV(w, table)
	case FormatJSON:
		return e.WriteJSON(w, table)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// WriteCSV writes table as CSV. The header is timestamp, datetime_utc,
// then one column per address index present in the table, in ascending
// index order; rows follow in ascending timestamp order. Both orderings
// are part of the output contract, so identical input reproduces the CSV
// byte for byte.
func (e *Exporter) WriteCSV(w io.Writer, table *pivot.Table) (*Result, error) {
	cols := table.Columns()

	writer := csv.NewWriter(w)
	header := make([]string, 0, 2+len(cols))
	header = append(header, "timestamp", "datetime_utc")
	for _, idx := range cols {
		header = append(header, index.Resolve(e.addrs, idx))
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	rows := 0
	for _, ts := range table.Timestamps() {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatInt(int64(ts), 10), formatUTC(ts))
		for _, idx := range cols {
			row = append(row, formatCell(table.Value(ts, idx)))
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
		rows++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}

	return &Result{
		RowsWritten: rows,
		Columns:     len(cols),
		Format:      FormatCSV,
		ExportedAt:  time.Now().UTC(),
	}, nil
}

// Document is the JSON export form: a metadata block followed by one
// entry per timestamp. Missing and sentinel cells are null.
type Document struct {
	Metadata Metadata `json:"metadata"`
	Rows     []Row    `json:"rows"`
}

// Metadata describes a JSON export.
type Metadata struct {
	ExportedAt time.Time `json:"exported_at"`
	Rows       int       `json:"rows"`
	Columns    int       `json:"columns"`
	Format     string    `json:"format"`
	Version    string    `json:"version"`
}

// Row is one timestamp's worth of samples keyed by resolved address name,
// in milliseconds.
type Row struct {
	Timestamp   int64               `json:"timestamp"`
	DatetimeUTC string              `json:"datetime_utc"`
	Values      map[string]*float64 `json:"values"`
}

// WriteJSON writes table as an indented JSON document. Unlike CSV this
// form is self-describing, but it is still export-only.
func (e *Exporter) WriteJSON(w io.Writer, table *pivot.Table) (*Result, error) {
	cols := table.Columns()
	timestamps := table.Timestamps()

	doc := Document{
		Metadata: Metadata{
			ExportedAt: time.Now().UTC(),
			Rows:       len(timestamps),
			Columns:    len(cols),
			Format:     FormatJSON,
			Version:    "1.0",
		},
		Rows: make([]Row, 0, len(timestamps)),
	}

	for _, ts := range timestamps {
		values := make(map[string]*float64, len(cols))
		for _, idx := range cols {
			name := index.Resolve(e.addrs, idx)
			if v, ok := table.Value(ts, idx); ok && !record.IsSentinel(v) {
				ms := float64(v) / 1000.0
				values[name] = &ms
			} else {
				values[name] = nil
			}
		}
		doc.Rows = append(doc.Rows, Row{
			Timestamp:   int64(ts),
			DatetimeUTC: formatUTC(ts),
			Values:      values,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}

	return &Result{
		RowsWritten: len(doc.Rows),
		Columns:     len(cols),
		Format:      FormatJSON,
		ExportedAt:  doc.Metadata.ExportedAt,
	}, nil
}

// formatCell applies the missing-value policy: absent cells and sentinel
// values render empty, everything else converts microseconds to
// milliseconds with exactly three decimals.
func formatCell(v int32, ok bool) string {
	if !ok || record.IsSentinel(v) {
		return ""
	}
	return strconv.FormatFloat(float64(v)/1000.0, 'f', 3, 64)
}

func formatUTC(ts int32) string {
	return time.Unix(int64(ts), 0).UTC().Format(datetimeLayout)
}
