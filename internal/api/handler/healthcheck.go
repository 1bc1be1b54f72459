package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/vikareta-analytics-api/pkg/log"
)

const pingTimeout = 2 * time.Second

// Pinger é satisfeito por *postgres.Connection
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		status, database, code := "ok", "ok", http.StatusOK
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				logger.WithError(err).Error("healthcheck: banco de dados indisponível")
				status, database, code = "degraded", "unavailable", http.StatusServiceUnavailable
			}
		}

		writeJSON(w, logger, code, map[string]any{
			"status":   status,
			"database": database,
			"time":     time.Now().Format(time.RFC3339),
		})
	})
}
