package narrator

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/arcanaland/karuta/internal/card"
)

// Options are the playback controls chosen in the UI. They are forwarded to
// the narrator as-is.
type Options struct {
	Rate   float64 // Speech rate multiplier, 1.0 is normal speed
	Volume float64 // Volume from 0.0 to 1.0
}

// DefaultOptions returns normal speed at full volume
func DefaultOptions() Options {
	return Options{Rate: 1.0, Volume: 1.0}
}

// Narrator speaks text aloud. Narrate blocks until playback has finished.
type Narrator interface {
	Narrate(ctx context.Context, text string, opts Options) error
}

// NarrationError reports a failed synthesis or playback
type NarrationError struct {
	Text string
	Err  error
}

func (e *NarrationError) Error() string {
	return fmt.Sprintf("narration of %q failed: %v", e.Text, e.Err)
}

func (e *NarrationError) Unwrap() error {
	return e.Err
}

// Speak narrates a card as "{prompt}、{clue}"
func Speak(ctx context.Context, n Narrator, c card.Card, opts Options) error {
	return n.Narrate(ctx, c.Narration(), opts)
}

// Silent logs what would have been spoken. It is used with --mute or when
// no speech program is installed.
type Silent struct {
	logger *log.Logger
}

// NewSilent creates a Silent narrator
func NewSilent(logger *log.Logger) *Silent {
	return &Silent{logger: logger.WithPrefix("narrator")}
}

func (s *Silent) Narrate(ctx context.Context, text string, opts Options) error {
	s.logger.Info("Narration muted", "text", text, "rate", opts.Rate, "volume", opts.Volume)
	return nil
}
