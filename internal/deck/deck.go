package deck

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/arcanaland/karuta/internal/card"
)

// Column headers of a dataset file
const (
	PromptColumn = "ひらがな"
	ClueColumn   = "script"
)

// DefaultName is the display name of the bundled deck
const DefaultName = "default"

//go:embed data/default.csv
var defaultCSV []byte

// DatasetError reports a dataset that cannot be turned into cards
type DatasetError struct {
	Path   string
	Line   int
	Reason string
}

func (e *DatasetError) Error() string {
	var b strings.Builder
	b.WriteString("invalid dataset")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// Header locates the prompt and clue columns in a header row
type Header struct {
	Prompt int
	Clue   int
	Extra  []string
}

// ParseHeader finds the required columns. A UTF-8 BOM on the first field is ignored.
func ParseHeader(record []string) (Header, error) {
	h := Header{Prompt: -1, Clue: -1}
	for i, field := range record {
		name := Normalize(strings.TrimPrefix(field, "\ufeff"))
		switch name {
		case PromptColumn:
			h.Prompt = i
		case ClueColumn:
			h.Clue = i
		default:
			h.Extra = append(h.Extra, name)
		}
	}

	var missing []string
	if h.Prompt < 0 {
		missing = append(missing, PromptColumn)
	}
	if h.Clue < 0 {
		missing = append(missing, ClueColumn)
	}
	if len(missing) > 0 {
		return h, fmt.Errorf("missing column %s", strings.Join(missing, ", "))
	}
	return h, nil
}

// Card builds a card from a data row using the header's column positions
func (h Header) Card(record []string) card.Card {
	return card.Card{
		Prompt: field(record, h.Prompt),
		Clue:   field(record, h.Clue),
	}
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return Normalize(record[i])
}

// Normalize trims surrounding space and converts text to NFC so that
// decomposed kana (e.g. from macOS file names or editors) compare equal.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// NewReader returns a csv.Reader configured for dataset files
func NewReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// Parse reads a dataset. Every row must have both a prompt and a clue.
// name is only used in error messages.
func Parse(r io.Reader, name string) ([]card.Card, error) {
	cr := NewReader(r)

	record, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &DatasetError{Path: name, Reason: "file is empty"}
	}
	if err != nil {
		return nil, csvError(name, err)
	}

	header, err := ParseHeader(record)
	if err != nil {
		return nil, &DatasetError{Path: name, Line: 1, Reason: err.Error()}
	}

	var cards []card.Card
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(name, err)
		}

		line, _ := cr.FieldPos(0)
		c := header.Card(record)
		if c.Prompt == "" {
			return nil, &DatasetError{Path: name, Line: line, Reason: fmt.Sprintf("empty %s", PromptColumn)}
		}
		if c.Clue == "" {
			return nil, &DatasetError{Path: name, Line: line, Reason: fmt.Sprintf("empty %s", ClueColumn)}
		}
		cards = append(cards, c)
	}

	if len(cards) == 0 {
		return nil, &DatasetError{Path: name, Reason: "no cards"}
	}

	return cards, nil
}

func csvError(name string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &DatasetError{Path: name, Line: perr.Line, Reason: perr.Err.Error()}
	}
	return fmt.Errorf("error reading %s: %w", name, err)
}

// LoadFile loads a dataset from a CSV file
func LoadFile(path string) ([]card.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset: %w", err)
	}
	defer f.Close()

	return Parse(f, filepath.Base(path))
}

// Default returns the bundled deck
func Default() []card.Card {
	cards, err := Parse(bytes.NewReader(defaultCSV), DefaultName)
	if err != nil {
		panic(fmt.Sprintf("bundled deck is invalid: %v", err))
	}
	return cards
}

// DefaultCSV returns the raw bundled dataset, used to seed a new deck library
func DefaultCSV() []byte {
	return bytes.Clone(defaultCSV)
}
