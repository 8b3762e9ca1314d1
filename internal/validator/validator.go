package validator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/arcanaland/karuta/internal/deck"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
	Cards    int
}

type Validator struct {
	DatasetPath string
	Results     ValidationResults

	// first line each prompt was seen on
	prompts map[string]int
}

func NewValidator(datasetPath string) *Validator {
	return &Validator{
		DatasetPath: datasetPath,
		Results:     ValidationResults{},
		prompts:     make(map[string]int),
	}
}

// Validate reads the whole dataset and reports every problem found. An error
// is returned only when the file cannot be read at all.
func (v *Validator) Validate() (ValidationResults, error) {
	f, err := os.Open(v.DatasetPath)
	if err != nil {
		return ValidationResults{}, fmt.Errorf("error opening dataset: %w", err)
	}
	defer f.Close()

	return v.ValidateReader(f)
}

// ValidateReader validates dataset content from r
func (v *Validator) ValidateReader(r io.Reader) (ValidationResults, error) {
	v.Results = ValidationResults{}
	v.prompts = make(map[string]int)
	cr := deck.NewReader(r)

	record, err := cr.Read()
	if errors.Is(err, io.EOF) {
		v.Results.Errors = append(v.Results.Errors, "file is empty")
		return v.Results, nil
	}
	if err != nil {
		v.Results.Errors = append(v.Results.Errors, err.Error())
		return v.Results, nil
	}

	header, ok := v.validateHeader(record)
	if !ok {
		return v.Results, nil
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The reader cannot recover from malformed quoting
			v.Results.Errors = append(v.Results.Errors, err.Error())
			break
		}

		line, _ := cr.FieldPos(0)
		v.validateRow(header, record, line)
	}

	if v.Results.Cards == 0 && len(v.Results.Errors) == 0 {
		v.Results.Errors = append(v.Results.Errors, "no cards found")
	}

	return v.Results, nil
}

// validateHeader checks for the required columns
func (v *Validator) validateHeader(record []string) (deck.Header, bool) {
	header, err := deck.ParseHeader(record)
	if err != nil {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("line 1: %v", err))
		return header, false
	}

	if len(header.Extra) > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("line 1: extra columns are ignored: %s", strings.Join(header.Extra, ", ")))
	}

	return header, true
}

// validateRow checks a single card row
func (v *Validator) validateRow(header deck.Header, record []string, line int) {
	for _, i := range []int{header.Prompt, header.Clue} {
		if i < len(record) && !norm.NFC.IsNormalString(record[i]) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("line %d: %q is not NFC normalized", line, record[i]))
		}
	}

	c := header.Card(record)
	valid := true
	if c.Prompt == "" {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("line %d: %s is empty", line, deck.PromptColumn))
		valid = false
	}
	if c.Clue == "" {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("line %d: %s is empty", line, deck.ClueColumn))
		valid = false
	}
	if !valid {
		return
	}

	if first, ok := v.prompts[c.Prompt]; ok {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("line %d: duplicate %s %q (first on line %d)", line, deck.PromptColumn, c.Prompt, first))
	} else {
		v.prompts[c.Prompt] = line
	}

	v.Results.Cards++
}
