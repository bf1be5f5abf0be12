// Package fetch retrieves per-verse recitation audio and verse text
// from their upstream services.
package fetch

import (
	"context"
	"fmt"
)

// AudioFetcher retrieves the recitation audio bytes for one verse.
type AudioFetcher interface {
	FetchAudio(ctx context.Context, reciterID string, surah, ayah int) ([]byte, error)
}

// TextFetcher retrieves the caption text for one verse.
type TextFetcher interface {
	FetchText(ctx context.Context, surah, ayah int) (string, error)
}

// Error wraps any retrieval failure. Fetch failures are fatal to a
// whole pipeline run: a missing verse would silently shift the output's
// content.
type Error struct {
	Resource string
	URL      string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s from %s: %v", e.Resource, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
