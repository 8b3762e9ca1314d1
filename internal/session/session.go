// Package session implements a single player's karuta game: a deck drawn
// without replacement, the card currently on display, and the pending audio
// cue that tells the UI shell when to narrate.
//
// A Session is not safe for concurrent use. The shell must deliver one action
// at a time and consume the audio cue before delivering the next.
package session

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/arcanaland/karuta/internal/card"
	"github.com/arcanaland/karuta/internal/deck"
)

// Session is one user's game
type Session struct {
	ID string

	deck         *deck.Store
	current      *card.Card
	exhausted    bool
	audioPending bool
	logger       *log.Logger
}

// New creates a session with an empty deck. Call LoadDataset before drawing.
func New(store *deck.Store, logger *log.Logger) *Session {
	id := uuid.NewString()[:8]
	return &Session{
		ID:     id,
		deck:   store,
		logger: logger.WithPrefix("session").With("session_id", id),
	}
}

// LoadDataset replaces the deck with cards and returns the session to its
// initial state. A dataset that is empty or has a card with a missing field
// is rejected and the session is left as it was.
func (s *Session) LoadDataset(cards []card.Card) error {
	if len(cards) == 0 {
		return &deck.DatasetError{Reason: "no cards"}
	}
	for i, c := range cards {
		if !c.Valid() {
			return &deck.DatasetError{Reason: fmt.Sprintf("card %d is missing a prompt or clue", i+1)}
		}
	}

	s.deck.Reset(cards)
	s.clear()
	s.logger.Info("Dataset loaded", "cards", len(cards))
	return nil
}

// DrawNext draws a card and marks it for narration. Once the deck is
// exhausted it returns EndMarker and false on every call until Reset.
func (s *Session) DrawNext() (card.Card, bool) {
	c, ok := s.deck.DrawRandom()
	s.current = &c
	s.exhausted = !ok
	s.audioPending = true

	if ok {
		s.logger.Debug("Card drawn", "prompt", c.Prompt, "remaining", s.deck.Size())
	} else {
		s.logger.Debug("Deck exhausted")
	}
	return c, ok
}

// Replay asks for the current card to be narrated again. It does nothing
// before the first draw.
func (s *Session) Replay() {
	if s.current == nil {
		s.logger.Debug("Replay ignored, no card drawn")
		return
	}
	s.audioPending = true
}

// Reset puts every card back in the deck and clears the display
func (s *Session) Reset() {
	s.deck.Restore()
	s.clear()
	s.logger.Debug("Session reset", "cards", s.deck.Size())
}

// ConsumeAudioCue returns the card to narrate if a draw or replay is waiting
// for narration, and clears the request. Every later call returns false
// until the next DrawNext or Replay.
func (s *Session) ConsumeAudioCue() (card.Card, bool) {
	if !s.audioPending || s.current == nil {
		return card.Card{}, false
	}
	s.audioPending = false
	return *s.current, true
}

// Current returns the card on display, if any
func (s *Session) Current() (card.Card, bool) {
	if s.current == nil {
		return card.Card{}, false
	}
	return *s.current, true
}

// Exhausted reports whether the last draw found the deck empty
func (s *Session) Exhausted() bool {
	return s.exhausted
}

// AudioPending reports whether a narration request is waiting
func (s *Session) AudioPending() bool {
	return s.audioPending
}

// Size returns the number of cards left to draw
func (s *Session) Size() int {
	return s.deck.Size()
}

// Total returns the number of cards in the loaded dataset
func (s *Session) Total() int {
	return s.deck.Total()
}

func (s *Session) clear() {
	s.current = nil
	s.exhausted = false
	s.audioPending = false
}
