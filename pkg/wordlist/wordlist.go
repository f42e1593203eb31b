// Package wordlist holds the immutable 2048-entry dictionary that maps
// 11-bit indices to mnemonic words.
//
// A Wordlist is validated once when it is built: it must hold exactly 2048
// distinct lowercase words, and no two words may share their first four
// letters, accents ignored. Fuzzy decoding relies on that last property, so
// lists that break it are rejected instead of being trusted. Words are stored
// in NFKD form, the form the resolver normalizes tokens to.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/rawbytedev/b39geo/internal/common"
	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

// Size is the number of entries every list must have.
const Size = common.MaxWord + 1

// PrefixLen is the number of leading letters that must be unique per word.
// Combining marks do not count.
const PrefixLen = 4

var (
	ErrWrongSize       = errors.New("wordlist must contain exactly 2048 words")
	ErrInvalidWord     = errors.New("word must be non-empty lowercase without spaces")
	ErrDuplicateWord   = errors.New("duplicate word")
	ErrPrefixCollision = errors.New("words share a 4-letter prefix")
)

// ValidationError describes why a list was rejected.
type ValidationError struct {
	Index int    // position of the offending word, -1 for size errors
	Word  string // offending word
	Other string // conflicting earlier word, if any
	Err   error
}

func (e *ValidationError) Error() string {
	switch {
	case e.Index < 0:
		return e.Err.Error()
	case e.Other != "":
		return fmt.Sprintf("word %d %q: %v (conflicts with %q)", e.Index, e.Word, e.Err, e.Other)
	default:
		return fmt.Sprintf("word %d %q: %v", e.Index, e.Word, e.Err)
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Wordlist is safe for concurrent use; it is never modified after New.
type Wordlist struct {
	words []string
	index map[string]int
}

// New validates words and returns a Wordlist holding its own copy of them.
func New(words []string) (*Wordlist, error) {
	if len(words) != Size {
		return nil, &ValidationError{Index: -1, Err: fmt.Errorf("%w, got %d", ErrWrongSize, len(words))}
	}
	wl := &Wordlist{
		words: make([]string, Size),
		index: make(map[string]int, Size),
	}
	prefixes := make(map[string]int, Size)
	for i, w := range words {
		w = norm.NFKD.String(w)
		if !validWord(w) {
			return nil, &ValidationError{Index: i, Word: w, Err: ErrInvalidWord}
		}
		if j, ok := wl.index[w]; ok {
			return nil, &ValidationError{Index: i, Word: w, Other: wl.words[j], Err: ErrDuplicateWord}
		}
		p := prefix(w)
		if j, ok := prefixes[p]; ok {
			return nil, &ValidationError{Index: i, Word: w, Other: wl.words[j], Err: ErrPrefixCollision}
		}
		prefixes[p] = i
		wl.words[i] = w
		wl.index[w] = i
	}
	return wl, nil
}

func validWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if unicode.IsSpace(r) || unicode.IsUpper(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// prefix returns the first PrefixLen letters of w with combining marks
// dropped, so "aérer" and "aéronef" are told apart by "aere" and "aero".
func prefix(w string) string {
	var b strings.Builder
	n := 0
	for _, r := range w {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if n == PrefixLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

var english = sync.OnceValues(func() (*Wordlist, error) {
	return New(wordlists.English)
})

// English returns the BIP-39 English list. It is built on first use and
// shared afterwards.
func English() *Wordlist {
	wl, err := english()
	if err != nil {
		// the embedded list is fixed; failing here means a broken build
		panic(fmt.Errorf("bip39 english wordlist: %w", err))
	}
	return wl
}

// Read parses one word per line. Surrounding whitespace, blank lines and
// lines starting with '#' are ignored.
func Read(r io.Reader) (*Wordlist, error) {
	words := make([]string, 0, Size)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read wordlist: %w", err)
	}
	return New(words)
}

// Load reads a wordlist file from disk.
func Load(path string) (*Wordlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wordlist: %w", err)
	}
	defer f.Close()
	wl, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return wl, nil
}

func (w *Wordlist) Len() int { return len(w.words) }

// Word returns the entry at index i. It panics if i is out of range.
func (w *Wordlist) Word(i int) string { return w.words[i] }

// Index returns the position of word, which must match exactly in NFKD form.
func (w *Wordlist) Index(word string) (int, bool) {
	i, ok := w.index[word]
	return i, ok
}

// Words returns a copy of the entries in index order.
func (w *Wordlist) Words() []string {
	out := make([]string, len(w.words))
	copy(out, w.words)
	return out
}
