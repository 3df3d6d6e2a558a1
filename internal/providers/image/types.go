package image

import (
	"context"
	"errors"
)

// ErrNoImage is returned when a producer finishes without yielding an image.
var ErrNoImage = errors.New("no image was generated")

// Image is one produced infographic before it is encoded for storage.
type Image struct {
	Data   []byte
	Format string
	Width  int
	Height int
	// Prompt describes how the image was produced and is stored alongside it.
	Prompt string
}

// Producer yields the infographic image. Implementations must be safe for
// concurrent use.
type Producer interface {
	Name() string
	Produce(ctx context.Context) (*Image, error)
}
