package internal

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultInspectLimit = 200

// InspectRow is one store entry as shown by /inspect and the inspect tool.
type InspectRow struct {
	Key       string `json:"key"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp,omitempty"`
	EntityID  string `json:"entity_id"`
	Detail    string `json:"detail"`
}

// NewDebugRouter exposes Prometheus metrics and a read-only view of the store.
// guard, when set, protects the store view.
func NewDebugRouter(db *badger.DB, log *slog.Logger, guard func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	inspect := r.With()
	if guard != nil {
		inspect = r.With(guard)
	}
	inspect.Get("/inspect", func(w http.ResponseWriter, req *http.Request) {
		prefix := req.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "user:"
		}
		limit := defaultInspectLimit
		if raw := req.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		rows, err := ScanRows(db, prefix, limit)
		if err != nil {
			log.Warn("Inspect scan failed", "prefix", prefix, "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rows)
	})
	return r
}

// ServeDebug runs handler on addr until ctx is done.
func ServeDebug(ctx context.Context, addr string, handler http.Handler, log *slog.Logger) error {
	server := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting debug server", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// ScanRows returns at most limit entries under prefix, in key order.
func ScanRows(db *badger.DB, prefix string, limit int) ([]InspectRow, error) {
	var rows []InspectRow
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix) && len(rows) < limit; it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				rows = append(rows, DescribeKey(string(item.Key()), val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return rows, err
}

// DescribeKey splits a store key into its record type, entity and time parts.
func DescribeKey(key string, val []byte) InspectRow {
	row := InspectRow{
		Key:      key,
		Type:     "raw",
		EntityID: "-",
		Detail:   "size: " + strconv.Itoa(len(val)) + " bytes",
	}

	parts := strings.Split(key, ":")
	if parts[0] == "idx" && len(parts) >= 3 {
		row.Type = "idx:" + parts[1]
		row.EntityID = strings.Join(parts[2:], ":")
		if len(val) > 0 {
			row.Detail = "-> " + string(val)
		}
		return row
	}

	row.Type = parts[0]
	switch {
	case row.Type == "msg" && len(parts) == 4:
		// msg:{chat}:{seq}:{id}
		row.EntityID = parts[3]
		seq, _ := strconv.Atoi(parts[2])
		row.Detail = "chat " + parts[1] + ", #" + strconv.Itoa(seq) + ", " + row.Detail
	case row.Type == "notif" && len(parts) == 4:
		// notif:{user}:{nano}:{id}
		row.Timestamp = formatNano(parts[2])
		row.EntityID = parts[3]
		row.Detail = "user " + parts[1] + ", " + row.Detail
	case row.Type == "auth" && len(parts) == 3:
		row.Timestamp = formatNano(parts[1])
		row.EntityID = parts[2]
	case len(parts) == 2:
		row.EntityID = parts[1]
	}
	return row
}

func formatNano(raw string) string {
	nano, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ""
	}
	return time.Unix(0, nano).UTC().Format(time.RFC3339)
}
