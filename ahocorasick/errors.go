package ahocorasick

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSymbol = errors.New("invalid symbol")
	ErrEmptyWord     = errors.New("empty word")
	ErrNilAlphabet   = errors.New("nil alphabet")
)

// InvalidSymbolError reports a symbol the alphabet doesn't support. Word is
// set when the symbol came from a dictionary entry, Offset is the byte
// offset within that word, or within the text (stream) otherwise.
type InvalidSymbolError struct {
	Word   string
	InWord bool
	Offset int
	Symbol byte

	err error
}

func (e *InvalidSymbolError) Error() string {
	cause := e.Unwrap()
	if e.InWord {
		return fmt.Sprintf("%s %q at offset %d of word %q", cause, e.Symbol, e.Offset, e.Word)
	}
	return fmt.Sprintf("%s %q at offset %d", cause, e.Symbol, e.Offset)
}

func (e *InvalidSymbolError) Unwrap() error {
	if e.err == nil {
		return ErrInvalidSymbol
	}
	return e.err
}
