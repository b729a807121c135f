// Package export serializes a pivoted probe table to CSV or JSON.
//
// # CSV format
//
// The header is `timestamp,datetime_utc` followed by one column per
// address index that actually occurs in the exported data, in ascending
// index order. Column names come from the address index file; an index
// beyond the file gets the placeholder `unknown_<i>`. Rows are emitted in
// ascending timestamp order, so the output is byte-for-byte reproducible
// for identical input.
//
// Cell values are round-trip times converted from microseconds to
// milliseconds with three decimals. A cell is empty when the address had
// no sample at that timestamp or when the stored value is one of the
// record sentinels (probe failed / no probe attempted).
//
//	timestamp,datetime_utc,host-a,host-b
//	1000,1970-01-01 00:16:40,5.000,
//	2000,1970-01-01 00:33:20,12.345,
//
// # JSON format
//
// The JSON form wraps the same rows in a metadata block and uses null for
// empty cells. It is export-only; there is no importer.
//
// # HTTP
//
// Handler serves GET /v1/export with the same format/start/end options as
// the CLI, plus ETag/If-None-Match revalidation so polling clients skip
// re-downloading an unchanged log.
package export
