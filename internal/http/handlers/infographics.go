package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"infographic/internal/domain"
	"infographic/internal/metrics"
	"infographic/internal/middleware"
	"infographic/internal/providers/image"
)

const (
	maxListLimit     = 100
	generatedMessage = "Infographic generated successfully"
)

// GenerateInfographic produces one poster, stores it and returns it.
func (a *App) GenerateInfographic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	producer := a.Producer.Name()
	logger := a.Logger.With().
		Str("request_id", middleware.RequestIDFromContext(ctx)).
		Str("producer", producer).
		Logger()
	start := time.Now()

	img, err := a.Producer.Produce(ctx)
	if err == nil && (img == nil || len(img.Data) == 0) {
		err = image.ErrNoImage
	}
	if err != nil {
		metrics.ObserveGeneration(producer, metrics.OutcomeProducerError, time.Since(start))
		logger.Error().Err(err).Msg("generate infographic failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "Error generating infographic: "+err.Error())
		return
	}

	item := &domain.Infographic{
		ID:          a.newID(),
		ImageBase64: image.EncodeDataURI(img),
		Prompt:      img.Prompt,
		Timestamp:   a.now(),
	}
	if err := a.Repo.Create(ctx, item); err != nil {
		metrics.ObserveGeneration(producer, metrics.OutcomeStoreError, time.Since(start))
		logger.Error().Err(err).Str("id", item.ID).Msg("store infographic failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "Error generating infographic: "+err.Error())
		return
	}

	took := time.Since(start)
	metrics.ObserveGeneration(producer, metrics.OutcomeSuccess, took)
	logger.Info().Str("id", item.ID).Int("bytes", len(img.Data)).Dur("took", took).Msg("infographic generated")
	a.json(w, http.StatusOK, domain.GenerateResult{
		ID:          item.ID,
		ImageBase64: item.ImageBase64,
		Message:     generatedMessage,
	})
}

func (a *App) ListInfographics(w http.ResponseWriter, r *http.Request) {
	items, err := a.Repo.List(r.Context(), listLimit(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("list infographics failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "Error fetching infographics: "+err.Error())
		return
	}
	if items == nil {
		items = []domain.Infographic{}
	}
	a.json(w, http.StatusOK, items)
}

func (a *App) GetInfographic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, err := a.Repo.GetByID(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, r, http.StatusNotFound, "not_found", "Infographic not found")
		return
	case err != nil:
		a.Logger.Error().Err(err).Str("id", id).Msg("get infographic failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "Error fetching infographic: "+err.Error())
		return
	}
	a.json(w, http.StatusOK, item)
}

// listLimit clamps ?limit to (0, maxListLimit].
func listLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 || n > maxListLimit {
		return maxListLimit
	}
	return n
}
