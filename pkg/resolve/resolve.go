// Package resolve maps a user-typed token onto exactly one dictionary word.
//
// Tokens are normalized (NFKD, lowercase) and then tried against the
// dictionary in order: exact match, unique prefix of at least four letters
// (accents ignored), and finally a unique entry within edit distance one.
// The first stage that yields a single candidate wins. If no stage is
// unambiguous the token is rejected; the resolver never picks between
// equally good candidates.
package resolve

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ErrUnknownOrAmbiguousWord = errors.New("unknown or ambiguous word")

// MinPrefix is the shortest token that is tried as a prefix.
const MinPrefix = 4

// MaxDistance is the largest edit distance accepted as a typo.
const MaxDistance = 1

// Lexicon is the read-only dictionary a Resolver searches.
type Lexicon interface {
	Len() int
	Word(i int) string
	Index(word string) (int, bool)
}

// Stage identifies which rule produced a match.
type Stage uint8

const (
	StageExact Stage = iota + 1
	StagePrefix
	StageEditDistance
)

func (s Stage) String() string {
	switch s {
	case StageExact:
		return "exact"
	case StagePrefix:
		return "prefix"
	case StageEditDistance:
		return "edit-distance"
	default:
		return "none"
	}
}

// Match is a resolved token.
type Match struct {
	Word  string
	Index int
	Stage Stage
}

// WordError is returned when a token resolves to zero or several words.
type WordError struct {
	Token      string
	Candidates []string // competing entries; empty when nothing was close
}

func (e *WordError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("%v: %q", ErrUnknownOrAmbiguousWord, e.Token)
	}
	return fmt.Sprintf("%v: %q (candidates: %s)", ErrUnknownOrAmbiguousWord, e.Token, strings.Join(e.Candidates, ", "))
}

func (e *WordError) Unwrap() error { return ErrUnknownOrAmbiguousWord }

// Resolver is immutable and safe for concurrent use.
type Resolver struct {
	lex    Lexicon
	runes  [][]rune
	folded []string
}

func New(lex Lexicon) *Resolver {
	n := lex.Len()
	r := &Resolver{lex: lex, runes: make([][]rune, n), folded: make([]string, n)}
	for i := range r.runes {
		w := lex.Word(i)
		r.runes[i] = []rune(w)
		r.folded[i] = Fold(w)
	}
	return r
}

// Normalize applies compatibility decomposition and lowercasing.
func Normalize(token string) string {
	// Casers carry state and must not be shared across goroutines.
	return cases.Lower(language.Und).String(norm.NFKD.String(token))
}

// Fold drops combining marks from an NFKD string, leaving base letters.
func Fold(s string) string {
	out, _, err := transform.String(runes.Remove(runes.In(unicode.Mn)), s)
	if err != nil {
		return s
	}
	return out
}

// Match resolves token and reports the stage that decided it.
func (r *Resolver) Match(token string) (Match, error) {
	w := Normalize(token)
	if i, ok := r.lex.Index(w); ok {
		return Match{Word: w, Index: i, Stage: StageExact}, nil
	}

	var prefixed []int
	if f := Fold(w); utf8.RuneCountInString(f) >= MinPrefix {
		prefixed = r.withPrefix(f)
		if len(prefixed) == 1 {
			return r.match(prefixed[0], StagePrefix), nil
		}
	}

	near := r.nearby([]rune(w))
	if len(near) == 1 {
		return r.match(near[0], StageEditDistance), nil
	}

	cands := near
	if len(cands) == 0 {
		cands = prefixed
	}
	return Match{}, &WordError{Token: token, Candidates: r.words(cands)}
}

// Resolve returns the canonical word for token.
func (r *Resolver) Resolve(token string) (string, error) {
	m, err := r.Match(token)
	return m.Word, err
}

// ResolveIndex returns the dictionary index for token.
func (r *Resolver) ResolveIndex(token string) (int, error) {
	m, err := r.Match(token)
	if err != nil {
		return -1, err
	}
	return m.Index, nil
}

func (r *Resolver) match(i int, s Stage) Match {
	return Match{Word: r.lex.Word(i), Index: i, Stage: s}
}

func (r *Resolver) words(idx []int) []string {
	if len(idx) == 0 {
		return nil
	}
	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = r.lex.Word(i)
	}
	return out
}

// withPrefix matches on folded forms, so accents neither help nor hurt.
func (r *Resolver) withPrefix(f string) []int {
	var out []int
	for i, w := range r.folded {
		if strings.HasPrefix(w, f) {
			out = append(out, i)
		}
	}
	return out
}

func (r *Resolver) nearby(a []rune) []int {
	// rows only need to cover words at most one rune longer than a
	prev := make([]int, len(a)+MaxDistance+1)
	curr := make([]int, len(a)+MaxDistance+1)
	var out []int
	for i, b := range r.runes {
		if Distance(a, b, MaxDistance, prev, curr) <= MaxDistance {
			out = append(out, i)
		}
	}
	return out
}

// Distance is the Levenshtein distance between a and b, giving up once it
// is certain to exceed bound; in that case bound+1 is returned. prev and
// curr are scratch rows of at least len(b)+1 entries, or nil.
func Distance(a, b []rune, bound int, prev, curr []int) int {
	if abs(len(a)-len(b)) > bound {
		return bound + 1
	}
	lb := len(b)
	if len(prev) < lb+1 || len(curr) < lb+1 {
		prev, curr = make([]int, lb+1), make([]int, lb+1)
	}
	prev, curr = prev[:lb+1], curr[:lb+1]
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		best := i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			v := min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			curr[j] = v
			if v < best {
				best = v
			}
		}
		if best > bound {
			return bound + 1
		}
		prev, curr = curr, prev
	}
	return min(prev[lb], bound+1)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
