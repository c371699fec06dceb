package ahocorasick

import "sort"

// Matches is the set of dictionary words found in a text.
type Matches map[string]struct{}

func (m Matches) Has(word string) bool {
	_, ok := m[word]
	return ok
}

func (m Matches) Len() int {
	return len(m)
}

// Words returns the matched words sorted.
func (m Matches) Words() []string {
	words := make([]string, 0, len(m))
	for word := range m {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// Search builds an automaton from dictionary and scans text once with it.
func Search(dictionary []string, text string, options ...BuildOption) (Matches, error) {
	a, err := Build(dictionary, options...)
	if err != nil {
		return nil, err
	}
	return a.Search(text)
}

// Search returns every dictionary word occurring in text. A symbol outside
// the alphabet fails the whole scan, no partial result is returned.
func (a *Automaton) Search(text string) (Matches, error) {
	matches := Matches{}
	state := root
	for i := 0; i < len(text); i++ {
		index, ok := a.alphabet.Index(text[i])
		if !ok {
			return nil, &InvalidSymbolError{Offset: i, Symbol: text[i]}
		}
		state = a.step(state, index)
		a.collect(state, matches)
	}
	return matches, nil
}

// Contains reports whether any dictionary word occurs in text, stopping at
// the first one. Symbols after it are not checked.
func (a *Automaton) Contains(text string) (bool, error) {
	state := root
	for i := 0; i < len(text); i++ {
		index, ok := a.alphabet.Index(text[i])
		if !ok {
			return false, &InvalidSymbolError{Offset: i, Symbol: text[i]}
		}
		state = a.step(state, index)
		if a.nodes[state].terminal || a.nodes[state].out != root {
			return true, nil
		}
	}
	return false, nil
}

// collect adds the word ending at state and every word ending at one of
// its suffixes. Once a word is already present the rest of its out chain
// is too.
func (a *Automaton) collect(state int32, matches Matches) {
	if !a.nodes[state].terminal {
		state = a.nodes[state].out
	}
	for state != root {
		n := &a.nodes[state]
		if _, ok := matches[n.word]; ok {
			return
		}
		matches[n.word] = struct{}{}
		state = n.out
	}
}

// Scanner carries the scan state across writes, so words split between
// two chunks of a stream are still found. Not safe for concurrent use.
type Scanner struct {
	automaton *Automaton
	state     int32
	offset    int
	matches   Matches
}

func (a *Automaton) NewScanner() *Scanner {
	return &Scanner{
		automaton: a,
		state:     root,
		matches:   Matches{},
	}
}

// Write feeds p into the scan. On an unsupported symbol it returns the
// number of bytes consumed before it, the scanner stays usable.
func (s *Scanner) Write(p []byte) (int, error) {
	a := s.automaton
	for i, symbol := range p {
		index, ok := a.alphabet.Index(symbol)
		if !ok {
			return i, &InvalidSymbolError{Offset: s.offset, Symbol: symbol}
		}
		s.state = a.step(s.state, index)
		s.offset++
		a.collect(s.state, s.matches)
	}
	return len(p), nil
}

func (s *Scanner) WriteString(text string) (int, error) {
	return s.Write([]byte(text))
}

// Offset is the number of symbols consumed since creation or Reset.
func (s *Scanner) Offset() int {
	return s.offset
}

// Matches returns a copy of the words found so far.
func (s *Scanner) Matches() Matches {
	matches := make(Matches, len(s.matches))
	for word := range s.matches {
		matches[word] = struct{}{}
	}
	return matches
}

func (s *Scanner) Reset() {
	s.state = root
	s.offset = 0
	s.matches = Matches{}
}
