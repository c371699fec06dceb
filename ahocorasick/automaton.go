// Package ahocorasick finds which words of a fixed dictionary occur in a
// text, in a single pass over the text.
package ahocorasick

import (
	"github.com/jumboframes/acmatch/log"
)

const root int32 = 0

type node struct {
	// fail is the longest proper suffix state, out the nearest terminal
	// state along the fail chain, 0 (root) when none.
	fail     int32
	out      int32
	depth    int32
	terminal bool
	word     string
}

// Automaton is immutable once built and safe for concurrent use.
type Automaton struct {
	alphabet Alphabet
	size     int
	nodes    []node
	// next is the child table of every node, size entries per node,
	// 0 means absent since root is nobody's child.
	next  []int32
	words []string
}

type BuildOption func(*builder) error

type builder struct {
	alphabet    Alphabet
	rejectEmpty bool
}

// OptionAlphabet sets the alphabet words and texts are checked against,
// Lowercase by default.
func OptionAlphabet(alphabet Alphabet) BuildOption {
	return func(b *builder) error {
		if alphabet == nil || alphabet.Size() == 0 {
			return ErrNilAlphabet
		}
		b.alphabet = alphabet
		return nil
	}
}

// OptionRejectEmpty fails Build with ErrEmptyWord on an empty dictionary
// entry instead of skipping it.
func OptionRejectEmpty() BuildOption {
	return func(b *builder) error {
		b.rejectEmpty = true
		return nil
	}
}

// Build constructs the automaton for words. Duplicates collapse into one
// entry. Nothing is built if any word has a symbol outside the alphabet.
func Build(words []string, options ...BuildOption) (*Automaton, error) {
	b := &builder{alphabet: Lowercase}
	for _, option := range options {
		if err := option(b); err != nil {
			return nil, err
		}
	}
	for _, word := range words {
		if len(word) == 0 {
			if b.rejectEmpty {
				return nil, ErrEmptyWord
			}
			continue
		}
		for i := 0; i < len(word); i++ {
			if _, ok := b.alphabet.Index(word[i]); !ok {
				return nil, &InvalidSymbolError{Word: word, InWord: true, Offset: i, Symbol: word[i]}
			}
		}
	}

	a := &Automaton{
		alphabet: b.alphabet,
		size:     b.alphabet.Size(),
	}
	a.newNode(0)
	for _, word := range words {
		if len(word) != 0 {
			a.insert(word)
		}
	}
	a.link()
	log.Debugf("automaton built, words: %d, states: %d, alphabet: %d",
		len(a.words), len(a.nodes), a.size)
	return a, nil
}

func (a *Automaton) newNode(depth int32) int32 {
	a.nodes = append(a.nodes, node{depth: depth})
	a.next = append(a.next, make([]int32, a.size)...)
	return int32(len(a.nodes) - 1)
}

func (a *Automaton) child(state int32, index int) int32 {
	return a.next[int(state)*a.size+index]
}

// insert expects word to be validated already.
func (a *Automaton) insert(word string) {
	state := root
	for i := 0; i < len(word); i++ {
		index, _ := a.alphabet.Index(word[i])
		slot := int(state)*a.size + index
		next := a.next[slot]
		if next == 0 {
			next = a.newNode(a.nodes[state].depth + 1)
			a.next[slot] = next
		}
		state = next
	}
	n := &a.nodes[state]
	if !n.terminal {
		n.terminal = true
		n.word = word
		a.words = append(a.words, word)
	}
}

// link sets fail and out breadth first, so every shorter prefix is linked
// before the nodes below it need it.
func (a *Automaton) link() {
	queue := make([]int32, 0, len(a.nodes))
	for index := 0; index < a.size; index++ {
		if next := a.child(root, index); next != 0 {
			queue = append(queue, next)
		}
	}
	for head := 0; head < len(queue); head++ {
		state := queue[head]
		for index := 0; index < a.size; index++ {
			next := a.child(state, index)
			if next == 0 {
				continue
			}
			fail := a.nodes[state].fail
			for fail != root && a.child(fail, index) == 0 {
				fail = a.nodes[fail].fail
			}
			target := a.child(fail, index)
			n := &a.nodes[next]
			n.fail = target
			if a.nodes[target].terminal {
				n.out = target
			} else {
				n.out = a.nodes[target].out
			}
			queue = append(queue, next)
		}
	}
}

// step is one transition of the scan, following fail links until some
// state has a child on index or root is reached.
func (a *Automaton) step(state int32, index int) int32 {
	for {
		if next := a.child(state, index); next != 0 {
			return next
		}
		if state == root {
			return root
		}
		state = a.nodes[state].fail
	}
}

func (a *Automaton) Alphabet() Alphabet {
	return a.alphabet
}

// States counts the trie nodes including root.
func (a *Automaton) States() int {
	return len(a.nodes)
}

// Words lists the dictionary without duplicates, in first-seen order.
func (a *Automaton) Words() []string {
	words := make([]string, len(a.words))
	copy(words, a.words)
	return words
}

// Has reports whether word is in the dictionary.
func (a *Automaton) Has(word string) bool {
	state, ok := a.walk(word)
	return ok && a.nodes[state].terminal
}

// HasPrefix reports whether some dictionary word starts with prefix.
func (a *Automaton) HasPrefix(prefix string) bool {
	if len(prefix) == 0 {
		return len(a.words) != 0
	}
	_, ok := a.walk(prefix)
	return ok
}

func (a *Automaton) walk(prefix string) (int32, bool) {
	state := root
	for i := 0; i < len(prefix); i++ {
		index, ok := a.alphabet.Index(prefix[i])
		if !ok {
			return root, false
		}
		state = a.child(state, index)
		if state == 0 {
			return root, false
		}
	}
	return state, true
}
