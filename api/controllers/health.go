package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/bakeria/bakeria-backend/api/responses"
	"github.com/bakeria/bakeria-backend/pkg/config"
	pkgerrors "github.com/bakeria/bakeria-backend/pkg/errors"
	"github.com/bakeria/bakeria-backend/pkg/logger"
)

const readyCheckTimeout = 2 * time.Second

// Pinger is anything the readiness probe can ask for a heartbeat.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Bakeria-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every registered dependency and reports 503 when any of
// them is unreachable.
func HealthReady(cfg *config.Config, checks map[string]Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Bakeria-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		status := map[string]string{}
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Ping(ctx); err != nil {
				status[name] = "down"
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, name+" unreachable").WithDetails(status))
				return
			}
			status[name] = "ok"
		}

		status["status"] = "ready"
		responses.WriteSuccess(w, status)
	}
}
