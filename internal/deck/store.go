package deck

import (
	rand "math/rand/v2"
	"slices"

	"github.com/arcanaland/karuta/internal/card"
	"github.com/arcanaland/karuta/internal/randutil"
)

// Store holds the cards that have not been drawn yet in the current cycle.
//
// The live sequence is always a subsequence of source: draws remove cards
// without reordering the rest, and only Reset or Restore put cards back.
type Store struct {
	source []card.Card
	live   []card.Card
	rng    *rand.Rand
}

// Option configures a Store
type Option func(*Store)

// WithRand sets the random source used to pick cards
func WithRand(rng *rand.Rand) Option {
	return func(s *Store) {
		s.rng = rng
	}
}

// NewStore creates an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = randutil.NewFromTime()
	}
	return s
}

// Reset replaces both the retained source and the live sequence with
// independent copies of cards.
func (s *Store) Reset(cards []card.Card) {
	s.source = slices.Clone(cards)
	s.Restore()
}

// Restore refills the live sequence from the retained source
func (s *Store) Restore() {
	s.live = make([]card.Card, len(s.source))
	copy(s.live, s.source)
}

// DrawRandom removes and returns a uniformly chosen card. When the deck is
// empty it returns EndMarker and false without touching the deck.
func (s *Store) DrawRandom() (card.Card, bool) {
	if len(s.live) == 0 {
		return card.EndMarker, false
	}

	i := s.rng.IntN(len(s.live))
	c := s.live[i]
	s.live = slices.Delete(s.live, i, i+1)
	return c, true
}

// Size returns the number of cards left to draw
func (s *Store) Size() int {
	return len(s.live)
}

// Total returns the number of cards in the retained source
func (s *Store) Total() int {
	return len(s.source)
}

// Remaining returns a copy of the undrawn cards in source order
func (s *Store) Remaining() []card.Card {
	return slices.Clone(s.live)
}
