package genai

import (
	"context"
	"errors"
)

// ImagePart is an inline image attached to a generation request.
type ImagePart struct {
	MimeType string
	Data     string // base64, no data-URL prefix
}

// Request is one opaque prompt-in/text-out call. No streaming.
type Request struct {
	Prompt string
	Image  *ImagePart

	// ApplySafetySettings turns on the medium-and-above harm blocking used
	// for poem generation.
	ApplySafetySettings bool
	// MaxOutputTokens caps the response length when > 0.
	MaxOutputTokens int
}

// Generator is the external generative text service.
type Generator interface {
	Generate(ctx context.Context, req *Request) (string, error)
}

// ErrMissingAPIKey reports that no generation credential is configured. The
// orchestrators fail fast on it without issuing a network call.
var ErrMissingAPIKey = errors.New("generation API key is not configured")
