package handlers

import (
	"context"
	"net/http"
	"time"
)

const rootMessage = "Visa Women's World Cup Infographic Generator API"

func (a *App) Root(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"message": rootMessage})
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	if err := a.Repo.Ping(ctx); err != nil {
		a.Logger.Warn().Err(err).Msg("health check failed")
		a.error(w, r, http.StatusServiceUnavailable, "unavailable", "store unreachable")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
