package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/organics-storefront/api/responses"
	"github.com/angelmondragon/organics-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/organics-storefront/pkg/errors"
	"github.com/angelmondragon/organics-storefront/pkg/logger"
	"github.com/angelmondragon/organics-storefront/pkg/storage"
)

const (
	envHeader    = "X-Organics-Env"
	readyTimeout = 2 * time.Second
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the cart storage backend when it supports it.
func HealthReady(cfg *config.Config, logg *logger.Logger, pinger storage.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage not ready").
					WithDetails(map[string]any{"storage": cfg.Storage.NormalizedBackend()}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{
			"status":  "ready",
			"storage": cfg.Storage.NormalizedBackend(),
		})
	}
}
