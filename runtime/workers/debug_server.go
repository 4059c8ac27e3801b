package workers

import (
	"context"
	"log/slog"
	"messenger/internal"
	"net/http"
)

// DebugServerWorker serves metrics and store inspection until its context ends.
type DebugServerWorker struct {
	log     *slog.Logger
	addr    string
	handler http.Handler
}

func NewDebugServerWorker(log *slog.Logger, addr string, handler http.Handler) *DebugServerWorker {
	return &DebugServerWorker{log: log, addr: addr, handler: handler}
}

func (w *DebugServerWorker) Run(ctx context.Context) error {
	return internal.ServeDebug(ctx, w.addr, w.handler, w.log)
}
