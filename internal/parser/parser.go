// Package parser reads plain-text verse lists into card specs.
//
// An entry starts with an "R:" reference line, may set a display label with
// "L:", and carries its text after "T:". Text may continue over following
// lines. A line of "---" ends the entry.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/conorfennell/versekeep/internal/bible"
	"github.com/conorfennell/versekeep/internal/domain"
)

const (
	referencePrefix = "R:"
	labelPrefix     = "L:"
	textPrefix      = "T:"
	separator       = "---"
)

type state int

const (
	seeking state = iota
	readingLabel
	readingText
	readingReference
)

// ParseError reports the entry that could not be read.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseFile reads a file from the given path and extracts all card specs.
func ParseFile(path string) ([]domain.CardSpec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

type entry struct {
	line      int
	reference string
	label     string
	text      []string
}

// Parse reads from an io.Reader and extracts all card specs. The first
// malformed entry stops parsing.
func Parse(r io.Reader) ([]domain.CardSpec, error) {
	scanner := bufio.NewScanner(r)
	var specs []domain.CardSpec
	var current *entry
	currentState := seeking
	lineNo := 0

	finishEntry := func() error {
		defer func() {
			current = nil
			currentState = seeking
		}()
		if current == nil {
			return nil
		}
		spec, err := current.spec()
		if err != nil {
			return &ParseError{Line: current.line, Err: err}
		}
		specs = append(specs, spec)
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.TrimSpace(line) == separator {
			if err := finishEntry(); err != nil {
				return nil, err
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, referencePrefix):
			if current != nil { // A new reference always starts a new entry
				if err := finishEntry(); err != nil {
					return nil, err
				}
			}
			current = &entry{line: lineNo, reference: strings.TrimSpace(line[len(referencePrefix):])}
			currentState = readingReference
		case current == nil:
			// Anything outside an entry is commentary.
		case strings.HasPrefix(line, labelPrefix):
			current.label = strings.TrimSpace(line[len(labelPrefix):])
			currentState = readingLabel
		case strings.HasPrefix(line, textPrefix):
			current.text = append(current.text, strings.TrimPrefix(line[len(textPrefix):], " "))
			currentState = readingText
		case currentState == readingText:
			current.text = append(current.text, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := finishEntry(); err != nil { // Finish the very last entry in the file
		return nil, err
	}

	return specs, nil
}

func (e *entry) spec() (domain.CardSpec, error) {
	ref, err := bible.ParseReference(e.reference)
	if err != nil {
		return domain.CardSpec{}, err
	}
	text := strings.TrimSpace(strings.Join(e.text, "\n"))
	if text == "" {
		return domain.CardSpec{}, fmt.Errorf("%s: missing text", e.reference)
	}
	label := e.label
	if label == "" {
		label = ref.Label()
	}
	return domain.CardSpec{
		BookID:         ref.BookID,
		Chapter:        ref.Chapter,
		VerseStart:     ref.VerseStart,
		VerseEnd:       ref.VerseEnd,
		ReferenceLabel: label,
		Text:           text,
	}, nil
}
