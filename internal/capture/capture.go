// Package capture defines the external text producers that feed the
// editor's insertion primitive: speech transcription and geolocation.
// A terminal has neither a microphone API nor a location service, so
// the stock implementations report the capability as unavailable; the
// interfaces exist so a platform that has them can plug in.
package capture

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupported means the capability does not exist in the current
// environment. Callers show a message and leave the feature out.
var ErrUnsupported = errors.New("not available in this environment")

// Transcriber streams completed utterances from a continuous
// speech-to-text capture. Each string on the channel is one finished
// utterance; the caller appends it to the document followed by a
// space.
type Transcriber interface {
	Start(ctx context.Context, lang string) (<-chan string, error)
	Stop()
}

// Position is one geolocation fix.
type Position struct {
	Lat float64
	Lon float64
}

// Locator produces a one-shot position lookup.
type Locator interface {
	Locate(ctx context.Context) (Position, error)
}

// MapsLink formats a position as the short text snippet inserted into
// a note.
func MapsLink(p Position) string {
	return fmt.Sprintf("📍 My location: https://maps.google.com/?q=%.6f,%.6f", p.Lat, p.Lon)
}

// Unsupported is the stock Transcriber and Locator for environments
// without capture hardware.
type Unsupported struct{}

func (Unsupported) Start(context.Context, string) (<-chan string, error) {
	return nil, ErrUnsupported
}

func (Unsupported) Stop() {}

func (Unsupported) Locate(context.Context) (Position, error) {
	return Position{}, ErrUnsupported
}
