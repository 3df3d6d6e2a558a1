package domain

import "time"

// Infographic is a generated poster together with the description of how it
// was produced. Records are created once and never modified.
type Infographic struct {
	ID          string    `json:"id"`
	ImageBase64 string    `json:"image_base64"`
	Prompt      string    `json:"prompt"`
	Timestamp   time.Time `json:"timestamp"`
}

// GenerateResult is returned to callers of the generate endpoint.
type GenerateResult struct {
	ID          string `json:"id"`
	ImageBase64 string `json:"image_base64"`
	Message     string `json:"message"`
}
