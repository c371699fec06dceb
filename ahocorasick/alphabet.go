package ahocorasick

import "errors"

var (
	ErrEmptyAlphabet   = errors.New("empty alphabet")
	ErrDuplicateSymbol = errors.New("duplicate symbol")
)

// Alphabet maps byte symbols onto dense child table indexes.
type Alphabet interface {
	// Size is the number of supported symbols, indexes are [0, Size()).
	Size() int
	// Index returns the dense index of symbol, false if unsupported.
	Index(symbol byte) (int, bool)
}

var (
	// Lowercase supports 'a' through 'z' and is the default alphabet.
	Lowercase Alphabet = mustTable("abcdefghijklmnopqrstuvwxyz")
	// Bytes supports every byte value, no input is ever rejected.
	Bytes Alphabet = allBytes{}
)

// NewAlphabet declares an alphabet of exactly the bytes in symbols.
func NewAlphabet(symbols string) (Alphabet, error) {
	return newTable(symbols)
}

type table struct {
	// index holds dense index + 1, 0 means unsupported
	index [256]uint16
	size  int
}

func newTable(symbols string) (*table, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyAlphabet
	}
	t := &table{}
	for i := 0; i < len(symbols); i++ {
		symbol := symbols[i]
		if t.index[symbol] != 0 {
			return nil, &InvalidSymbolError{Offset: i, Symbol: symbol, err: ErrDuplicateSymbol}
		}
		t.size++
		t.index[symbol] = uint16(t.size)
	}
	return t, nil
}

func mustTable(symbols string) *table {
	t, err := newTable(symbols)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *table) Size() int {
	return t.size
}

func (t *table) Index(symbol byte) (int, bool) {
	index := t.index[symbol]
	if index == 0 {
		return 0, false
	}
	return int(index) - 1, true
}

type allBytes struct{}

func (allBytes) Size() int {
	return 256
}

func (allBytes) Index(symbol byte) (int, bool) {
	return int(symbol), true
}
