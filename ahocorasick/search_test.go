package ahocorasick

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naive is the reference every scan is checked against.
func naive(dictionary []string, text string) Matches {
	matches := Matches{}
	for _, word := range dictionary {
		if len(word) != 0 && strings.Contains(text, word) {
			matches[word] = struct{}{}
		}
	}
	return matches
}

func randomWord(rnd *rand.Rand, symbols string, max int) string {
	length := rnd.Intn(max) + 1
	word := make([]byte, length)
	for i := range word {
		word[i] = symbols[rnd.Intn(len(symbols))]
	}
	return string(word)
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name       string
		dictionary []string
		text       string
		want       []string
	}{
		{"single", []string{"cat", "bat", "tiny", "phenom"}, "catatonic", []string{"cat"}},
		{"overlapping", []string{"acc", "atc", "cat", "gcg"}, "gcatcg", []string{"atc", "cat"}},
		{"adjacent", []string{"amster", "bambino", "cabam", "merger"}, "cabamerger", []string{"cabam", "merger"}},
		{"repeated", []string{"a"}, "aaa", []string{"a"}},
		{"none", []string{"xyz"}, "abc", []string{}},
		{"suffix of current state", []string{"abc", "b"}, "abc", []string{"abc", "b"}},
		{"suffix on fail chain", []string{"he", "she", "his", "hers"}, "ushers", []string{"he", "hers", "she"}},
		{"nested suffixes", []string{"abcd", "bcd", "cd", "d"}, "xabcdx", []string{"abcd", "bcd", "cd", "d"}},
		{"word equals text", []string{"abc"}, "abc", []string{"abc"}},
		{"prefix only", []string{"abc"}, "ab", []string{}},
		{"empty text", []string{"a", "b"}, "", []string{}},
		{"empty dictionary", nil, "abc", []string{}},
		{"only empty words", []string{"", ""}, "abc", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := Search(tt.dictionary, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matches.Words())
			assert.Equal(t, len(tt.want), matches.Len())
			for _, word := range tt.want {
				assert.True(t, matches.Has(word))
			}
		})
	}
}

func TestSearchInvalidSymbol(t *testing.T) {
	a, err := Build([]string{"cat"})
	require.NoError(t, err)

	matches, err := a.Search("the cat")
	assert.Nil(t, matches)
	require.ErrorIs(t, err, ErrInvalidSymbol)
	var symbolErr *InvalidSymbolError
	require.True(t, errors.As(err, &symbolErr))
	assert.False(t, symbolErr.InWord)
	assert.Equal(t, 3, symbolErr.Offset)
	assert.Equal(t, byte(' '), symbolErr.Symbol)
	assert.Equal(t, `invalid symbol ' ' at offset 3`, err.Error())

	// matched before the bad symbol, still no partial result
	matches, err = a.Search("catX")
	assert.Nil(t, matches)
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestSearchRandomized(t *testing.T) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for round := 0; round < 500; round++ {
		dictionary := make([]string, rnd.Intn(8))
		for i := range dictionary {
			dictionary[i] = randomWord(rnd, "abc", 5)
		}
		text := ""
		if n := rnd.Intn(40); n > 0 {
			text = randomWord(rnd, "abc", n)
		}

		a, err := Build(dictionary)
		require.NoError(t, err)
		matches, err := a.Search(text)
		require.NoError(t, err)
		require.Equal(t, naive(dictionary, text), matches, "dictionary: %v, text: %q", dictionary, text)

		found, err := a.Contains(text)
		require.NoError(t, err)
		assert.Equal(t, matches.Len() != 0, found)

		// order independence
		shuffled := append([]string(nil), dictionary...)
		rnd.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		again, err := Search(shuffled, text)
		require.NoError(t, err)
		assert.Equal(t, matches, again)
	}
}

func TestSearchReuse(t *testing.T) {
	a, err := Build([]string{"acc", "atc", "cat", "gcg"})
	require.NoError(t, err)

	texts := []string{"gcatcg", "acca", "", "gcgcat", "tttt"}
	want := make([]Matches, len(texts))
	for i, text := range texts {
		want[i] = naive(a.Words(), text)
	}

	// reversed order and repeats give the same answers
	for round := 0; round < 3; round++ {
		for i := len(texts) - 1; i >= 0; i-- {
			matches, err := a.Search(texts[i])
			require.NoError(t, err)
			assert.Equal(t, want[i], matches)
		}
	}

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				index := (g + i) % len(texts)
				matches, err := a.Search(texts[index])
				assert.NoError(t, err)
				assert.Equal(t, want[index], matches)
			}
		}(g)
	}
	wg.Wait()
}

func TestContains(t *testing.T) {
	a, err := Build([]string{"abc", "b"})
	require.NoError(t, err)

	tests := []struct {
		text  string
		found bool
		err   error
	}{
		{"", false, nil},
		{"aaa", false, nil},
		{"ab", true, nil},
		{"xb", true, nil},
		{"ccc", false, nil},
		{"aA", false, ErrInvalidSymbol},
		// stops at the first word, the rest is not checked
		{"bA", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			found, err := a.Contains(tt.text)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
		})
	}
}

func TestScanner(t *testing.T) {
	dictionary := []string{"amster", "bambino", "cabam", "merger"}
	a, err := Build(dictionary)
	require.NoError(t, err)

	text := "cabamergerbambinoxamster"
	want, err := a.Search(text)
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for round := 0; round < 100; round++ {
		scanner := a.NewScanner()
		rest := text
		for len(rest) > 0 {
			n := rnd.Intn(len(rest)) + 1
			written, err := scanner.WriteString(rest[:n])
			require.NoError(t, err)
			require.Equal(t, n, written)
			rest = rest[n:]
		}
		assert.Equal(t, want, scanner.Matches())
		assert.Equal(t, len(text), scanner.Offset())
	}
}

func TestScannerInvalidSymbol(t *testing.T) {
	a, err := Build([]string{"ab", "bc"})
	require.NoError(t, err)

	scanner := a.NewScanner()
	n, err := scanner.Write([]byte("xa"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = scanner.Write([]byte("b-c"))
	assert.Equal(t, 1, n)
	var symbolErr *InvalidSymbolError
	require.True(t, errors.As(err, &symbolErr))
	assert.Equal(t, 3, symbolErr.Offset)
	assert.Equal(t, byte('-'), symbolErr.Symbol)
	assert.Equal(t, []string{"ab"}, scanner.Matches().Words())

	// the state before the bad byte is kept
	_, err = scanner.WriteString("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "bc"}, scanner.Matches().Words())

	scanner.Reset()
	assert.Equal(t, 0, scanner.Offset())
	assert.Equal(t, 0, scanner.Matches().Len())
	_, err = scanner.WriteString("c")
	require.NoError(t, err)
	assert.Equal(t, 0, scanner.Matches().Len())
}

func TestScannerMatchesIsCopy(t *testing.T) {
	a, err := Build([]string{"ab"})
	require.NoError(t, err)
	scanner := a.NewScanner()
	_, err = scanner.WriteString("ab")
	require.NoError(t, err)

	matches := scanner.Matches()
	delete(matches, "ab")
	assert.True(t, scanner.Matches().Has("ab"))
}

func FuzzSearch(f *testing.F) {
	f.Add("cat,bat,tiny,phenom", "catatonic")
	f.Add("acc,atc,cat,gcg", "gcatcg")
	f.Add("he,she,his,hers", "ushers")
	f.Add("a,,aa", "aaa")
	f.Add("", "")

	f.Fuzz(func(t *testing.T, words, text string) {
		if len(words) > 256 || len(text) > 1024 {
			return
		}
		dictionary := strings.Split(words, ",")
		matches, err := Search(dictionary, text, OptionAlphabet(Bytes))
		if err != nil {
			t.Fatal(err)
		}
		if want := naive(dictionary, text); !assert.Equal(t, want, matches) {
			t.FailNow()
		}
	})
}

func BenchmarkBuild(b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	dictionary := make([]string, 1000)
	for i := range dictionary {
		dictionary[i] = randomWord(rnd, "abcdefghijklmnopqrstuvwxyz", 12)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(dictionary); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	dictionary := make([]string, 1000)
	for i := range dictionary {
		dictionary[i] = randomWord(rnd, "abcdefghijklmnopqrstuvwxyz", 12)
	}
	a, err := Build(dictionary)
	if err != nil {
		b.Fatal(err)
	}
	text := randomWord(rnd, "abcdefghijklmnopqrstuvwxyz", 1<<16)
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := a.Search(text); err != nil {
			b.Fatal(err)
		}
	}
}
