package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/probekit/pingdump/pkg/datadir"
	"github.com/probekit/pingdump/pkg/export"
	"github.com/probekit/pingdump/pkg/index"
	"github.com/probekit/pingdump/pkg/pivot"
	"github.com/probekit/pingdump/pkg/record"
	"github.com/probekit/pingdump/pkg/timeparse"
)

var (
	flagStart  string
	flagEnd    string
	flagOutput string
	flagFormat string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the probe log to a file or stdout",
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&flagStart, "start", "", "start of the time range, inclusive (UTC datetime or unix seconds)")
	dumpCmd.Flags().StringVar(&flagEnd, "end", "", "end of the time range, inclusive (UTC datetime or unix seconds)")
	dumpCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default: stdout)")
	dumpCmd.Flags().StringVar(&flagFormat, "format", export.FormatCSV, "output format: csv or json")
}

func runDump(cmd *cobra.Command, args []string) error {
	dir, err := resolveDataDir()
	if err != nil {
		return err
	}

	addrs, err := index.Load(datadir.IndexPath(dir))
	if err != nil {
		return err
	}

	dataPath := datadir.DataPath(dir)
	records, err := record.DecodeFile(dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("data file not found: %s", dataPath)
		}
		return fmt.Errorf("reading data file: %w", err)
	}

	rng, err := parseRange(flagStart, flagEnd)
	if err != nil {
		return err
	}

	table := pivot.Build(records, rng)
	if table.Empty() {
		slog.Warn("no data found in the specified range")
		return nil
	}

	// The sink is only opened once there is something to write, so an
	// empty result never leaves an empty output file behind.
	if flagOutput == "" {
		return writeExport(os.Stdout, "stdout", addrs, table)
	}

	f, err := os.Create(flagOutput)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	werr := writeExport(f, flagOutput, addrs, table)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	return werr
}

func writeExport(w io.Writer, dest string, addrs []string, table *pivot.Table) error {
	result, err := export.NewExporter(addrs).Write(w, table, flagFormat)
	if err != nil {
		return err
	}
	slog.Info("export complete", "rows", result.RowsWritten, "columns", result.Columns, "dest", dest)
	return nil
}

// parseRange turns the optional --start/--end flags into an inclusive
// range, unbounded on whichever side is absent.
func parseRange(start, end string) (pivot.Range, error) {
	rng := pivot.Unbounded()
	if start != "" {
		ts, err := timeparse.ParseEpoch(start)
		if err != nil {
			return rng, err
		}
		rng.Start = ts
	}
	if end != "" {
		ts, err := timeparse.ParseEpoch(end)
		if err != nil {
			return rng, err
		}
		rng.End = ts
	}
	if rng.Start > rng.End {
		return rng, fmt.Errorf("start %d is after end %d", rng.Start, rng.End)
	}
	return rng, nil
}
