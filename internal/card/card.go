package card

// Card represents one yomifuda: a hiragana key and the phrase read aloud with it
type Card struct {
	Prompt string // Hiragana key (e.g., あ)
	Clue   string // Phrase for the key (e.g., あおい空)
}

// EndMarker is shown and narrated once the deck has run out of cards
var EndMarker = Card{
	Prompt: "これで終わりです。",
	Clue:   "終了",
}

// Narration returns the text spoken for the card
func (c Card) Narration() string {
	return c.Prompt + "、" + c.Clue
}

// Valid reports whether both fields are present
func (c Card) Valid() bool {
	return c.Prompt != "" && c.Clue != ""
}
