package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// DBPinger проверяет доступность базы данных.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// SchemaReadiness сообщает, завершилась ли инициализация схемы.
type SchemaReadiness interface {
	Ready() bool
}

// HealthChecker отвечает на /healthz состоянием базы и схемы.
type HealthChecker struct {
	db     DBPinger
	schema SchemaReadiness
	log    *slog.Logger
}

func NewHealthChecker(db DBPinger, schema SchemaReadiness, log *slog.Logger) *HealthChecker {
	return &HealthChecker{db: db, schema: schema, log: log}
}

func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.log.DebugContext(req.Context(), "Performing health checks...")

	status := make(map[string]string)
	overallStatus := http.StatusOK

	if err := h.db.Ping(req.Context()); err != nil {
		status["database"] = "unavailable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(req.Context(), "Health check failed: DB ping", "error", err)
	} else {
		status["database"] = "ok"
	}

	if h.schema.Ready() {
		status["schema"] = "ready"
	} else {
		status["schema"] = "pending"
		overallStatus = http.StatusServiceUnavailable
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if err := json.NewEncoder(writer).Encode(status); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write health check response", "error", err)
	}

	h.log.DebugContext(req.Context(), "Health checks completed", "status", overallStatus)
}
