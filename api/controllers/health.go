package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/rchretien/fridge-app-backend/api/responses"
	"github.com/rchretien/fridge-app-backend/pkg/config"
	"github.com/rchretien/fridge-app-backend/pkg/db"
	pkgerrors "github.com/rchretien/fridge-app-backend/pkg/errors"
	"github.com/rchretien/fridge-app-backend/pkg/logger"
)

const readyCheckTimeout = 2 * time.Second

// Index handles GET /, reporting service identity.
func Index(cfg *config.Config, started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"title":       "fridge-app-backend",
			"environment": cfg.App.Env,
			"database":    cfg.DB.Driver,
			"started":     started.Format(time.RFC3339),
		})
	}
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Fridge-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Fridge-Env", cfg.App.Env)

		if dbP == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database not wired"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		if err := dbP.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
