package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/mux"

	"github.com/probekit/pingdump/pkg/httpx"
	"github.com/probekit/pingdump/pkg/pivot"
	"github.com/probekit/pingdump/pkg/record"
	"github.com/probekit/pingdump/pkg/timeparse"
)

// Handler serves exports over HTTP. The data file is re-read on every
// request so a long-running serve process always reflects what the daemon
// has written since startup.
type Handler struct {
	dataPath string
	addrs    []string
}

// NewHandler creates an export handler reading the record log at dataPath
// and resolving columns against addrs.
func NewHandler(dataPath string, addrs []string) *Handler {
	return &Handler{dataPath: dataPath, addrs: addrs}
}

// RegisterRoutes attaches the export endpoints to r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/v1/export", h.HandleExport).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HandleHealth).Methods(http.MethodGet)
}

// HandleExport handles GET /v1/export.
// Query params:
//   - format: "csv" or "json" (default: csv)
//   - start: datetime or unix seconds, inclusive (default: unbounded)
//   - end: datetime or unix seconds, inclusive (default: unbounded)
//
// An empty filtered result is 204 No Content. Responses carry a strong
// ETag over the raw data file and query shape; a matching If-None-Match
// short-circuits to 304 before any decoding happens.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	format := query.Get("format")
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatJSON {
		httpx.RespondErrorString(w, http.StatusBadRequest, "invalid format: must be 'csv' or 'json'")
		return
	}

	rng := pivot.Unbounded()
	if s := query.Get("start"); s != "" {
		ts, err := timeparse.ParseEpoch(s)
		if err != nil {
			httpx.RespondError(w, http.StatusBadRequest, err)
			return
		}
		rng.Start = ts
	}
	if s := query.Get("end"); s != "" {
		ts, err := timeparse.ParseEpoch(s)
		if err != nil {
			httpx.RespondError(w, http.StatusBadRequest, err)
			return
		}
		rng.End = ts
	}
	if rng.Start > rng.End {
		httpx.RespondErrorString(w, http.StatusBadRequest, "start must not be after end")
		return
	}

	raw, err := os.ReadFile(h.dataPath)
	if err != nil {
		slog.Error("reading data file failed", "path", h.dataPath, "error", err)
		httpx.RespondErrorString(w, http.StatusInternalServerError, "data file unavailable")
		return
	}

	etag := exportETag(raw, format, rng)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	table := pivot.Build(record.Decode(raw), rng)
	if table.Empty() {
		slog.Warn("no data in the requested range", "start", rng.Start, "end", rng.End)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	stamp := time.Now().UTC().Format("20060102-150405")
	if format == FormatJSON {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=pingdump-%s.json", stamp))
	} else {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=pingdump-%s.csv", stamp))
	}

	result, err := NewExporter(h.addrs).Write(w, table, format)
	if err != nil {
		// Headers are out the door; all we can do is log.
		slog.Error("export failed mid-write", "error", err)
		return
	}
	slog.Info("export complete", "rows", result.RowsWritten, "columns", result.Columns, "format", result.Format)
}

// HandleHealth handles GET /healthz. It checks that the data file is
// still present so load balancers notice a removed or unmounted data dir.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(h.dataPath); err != nil {
		httpx.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "data file missing"})
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// exportETag derives a strong validator from the raw log bytes plus the
// parameters that shape the response.
func exportETag(raw []byte, format string, rng pivot.Range) string {
	d := xxhash.New()
	_, _ = d.Write(raw)
	_, _ = fmt.Fprintf(d, "|%s|%d|%d", format, rng.Start, rng.End)
	return fmt.Sprintf(`"%016x"`, d.Sum64())
}
