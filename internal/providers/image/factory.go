package image

import (
	"fmt"

	"github.com/rs/zerolog"

	"infographic/internal/infra"
)

// NewProducer builds the producer selected by IMAGE_PRODUCER.
func NewProducer(cfg *infra.Config, logger zerolog.Logger) (Producer, error) {
	switch cfg.ImageProducer {
	case infra.ProducerOpenAI:
		p, err := NewOpenAIProducer(OpenAIOptions{
			APIKey:       cfg.OpenAIAPIKey,
			BaseURL:      cfg.OpenAIBaseURL,
			Model:        cfg.OpenAIImageModel,
			Organization: cfg.OpenAIOrg,
			Timeout:      cfg.OpenAITimeout,
		})
		if err != nil {
			return nil, err
		}
		logger.Info().Str("producer", p.Name()).Str("model", p.Model()).Msg("image producer ready")
		return p, nil
	case infra.ProducerRender, "":
		r := NewPosterRenderer(cfg.PosterFontPath, logger)
		logger.Info().Str("producer", r.Name()).Bool("fallback_font", r.UsesFallbackFont()).Msg("image producer ready")
		return r, nil
	default:
		return nil, fmt.Errorf("unsupported image producer %q", cfg.ImageProducer)
	}
}
