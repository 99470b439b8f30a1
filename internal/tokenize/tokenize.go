// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tokenize turns free text into the set of significant lowercase
// word tokens used by skill profiles and routing.
package tokenize

import (
	"sort"
	"strings"
)

// MinTokenLength is the shortest token kept by a Tokenizer.
const MinTokenLength = 2

// defaultStopwords are English function words plus filler that carries no
// routing signal in skill prompts.
var defaultStopwords = []string{
	"the", "and", "for", "with", "this", "that", "from", "into", "when",
	"does", "not", "use", "using", "write", "build", "create", "run", "set",
	"up", "all", "your", "you", "are", "how", "what", "our", "their", "will",
	"can", "new", "tier", "tiers",
}

// DefaultStopwords returns a copy of the built-in stopword list.
func DefaultStopwords() []string {
	out := make([]string, len(defaultStopwords))
	copy(out, defaultStopwords)
	return out
}

// Set is an unordered collection of tokens.
type Set map[string]struct{}

// NewSet builds a Set from the given tokens as-is.
func NewSet(tokens ...string) Set {
	s := make(Set, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether tok is a member of s.
func (s Set) Has(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Sorted returns the members of s in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Tokenizer extracts tokens using a fixed stopword set. The zero value has
// no stopwords; use Default for the standard configuration.
type Tokenizer struct {
	stopwords Set
}

// New returns a Tokenizer that discards the given stopwords. Stopwords are
// matched case-insensitively.
func New(stopwords []string) *Tokenizer {
	sw := make(Set, len(stopwords))
	for _, w := range stopwords {
		sw[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: sw}
}

// Default returns a Tokenizer configured with DefaultStopwords.
func Default() *Tokenizer {
	return New(defaultStopwords)
}

// IsStopword reports whether tok is discarded by t.
func (t *Tokenizer) IsStopword(tok string) bool {
	return t.stopwords.Has(tok)
}

// Tokenize returns the maximal runs of ASCII letters and digits in text,
// lowercased, minus short tokens and stopwords.
func (t *Tokenizer) Tokenize(text string) Set {
	out := make(Set)
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		tok := b.String()
		b.Reset()
		if len(tok) < MinTokenLength || t.stopwords.Has(tok) {
			return
		}
		out[tok] = struct{}{}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		default:
			flush()
		}
	}
	flush()

	return out
}
