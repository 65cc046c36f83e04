package domain

import (
	"math/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultWords is the built-in vocabulary, overridable from config.
var DefaultWords = []string{
	"house", "cat", "sun", "moon", "car", "plane", "flower", "tree",
}

// WordList picks round words uniformly at random from a fixed vocabulary.
type WordList struct {
	words []string
}

func NewWordList(words []string) *WordList {
	if len(words) == 0 {
		words = DefaultWords
	}
	return &WordList{words: words}
}

func (w *WordList) Pick() string {
	return w.words[rand.Intn(len(w.words))]
}

func (w *WordList) Len() int {
	return len(w.words)
}

// NormalizeGuess lowercases, trims and strips combining marks so that
// "Café " matches "cafe". Guess matching is equality after this transform.
func NormalizeGuess(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
