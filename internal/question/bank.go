// Package question provides the read-only bank of scenario questions.
package question

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/victornm/eqgame/internal/domain"
)

//go:embed questions.json
var builtin []byte

// Bank is an ordered, read-only sequence of scenarios.
type Bank struct {
	questions []domain.Question
}

// Default returns the built-in bank.
func Default() *Bank {
	b, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("question: built-in bank: %v", err))
	}
	return b
}

// Load reads a bank from a JSON file, or returns the built-in bank when file is empty.
func Load(file string) (*Bank, error) {
	if file == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("question: read %s: %w", file, err)
	}

	return Parse(data)
}

// Parse decodes and validates a JSON array of scenarios. Every scenario needs text and exactly one correct option.
func Parse(data []byte) (*Bank, error) {
	var qs []domain.Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("question: decode: %w", err)
	}

	for i, q := range qs {
		if q.Text == "" {
			return nil, fmt.Errorf("question: scenario %d has no text", i)
		}

		correct := 0
		for _, o := range q.Options {
			if o.Correct {
				correct++
			}
		}
		if correct != 1 {
			return nil, fmt.Errorf("question: scenario %d has %d correct options, want 1", i, correct)
		}
	}

	return &Bank{questions: qs}, nil
}

func (b *Bank) Len() int {
	return len(b.questions)
}

// At returns the scenario at index i; ok is false outside the bank.
func (b *Bank) At(i int) (q domain.Question, ok bool) {
	if i < 0 || i >= len(b.questions) {
		return domain.Question{}, false
	}
	return b.questions[i], true
}
