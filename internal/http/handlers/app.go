package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"infographic/internal/domain"
	"infographic/internal/middleware"
	"infographic/internal/providers/image"
)

type App struct {
	Logger   zerolog.Logger
	Repo     domain.InfographicRepository
	Producer image.Producer

	now   func() time.Time
	newID func() string
}

func NewApp(logger zerolog.Logger, repo domain.InfographicRepository, producer image.Producer) *App {
	return &App{
		Logger:   logger,
		Repo:     repo,
		Producer: producer,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

type errorResponse struct {
	Code      string `json:"code"`
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code, detail string) {
	a.json(w, status, errorResponse{
		Code:      code,
		Detail:    detail,
		RequestID: middleware.RequestIDFromContext(r.Context()),
	})
}
