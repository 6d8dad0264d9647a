// Package fallback provides a deterministic pseudo-embedding used when
// no native embedding model is available.
//
// The vectors are NOT semantically accurate. They are a best-effort
// lexical similarity signal that keeps the retrieval pipeline working
// in degraded mode: identical text always produces an identical
// vector, and texts sharing salient words land near each other.
// Callers should surface this as a degraded-quality mode.
package fallback

import (
	"context"
	"strings"
	"unicode"
)

// Dimensions is the fixed vector length of the fallback embedder.
const Dimensions = 384

// statSlots is the number of trailing slots reserved for coarse
// document statistics. Word hashes map into the remaining positions so
// the statistics are never clobbered.
const statSlots = 3

// spread is the number of positions each word hashes into.
const spread = 4

// stride spaces the hash positions; a prime keeps them from clustering.
const stride = 7919

// questionWords weigh higher as a crude proxy for informativeness.
var questionWords = map[string]struct{}{
	"what": {}, "why": {}, "how": {}, "when": {},
	"where": {}, "who": {}, "which": {}, "whose": {},
}

// Embedder produces deterministic fixed-length vectors from text.
// The zero value is ready to use.
type Embedder struct{}

// New creates a fallback embedder.
func New() *Embedder {
	return &Embedder{}
}

// Embed builds the pseudo-embedding. Each normalised word is hashed
// into four positions weighted by lexical salience; three reserved
// slots encode word count, question-mark presence, and sentence count.
// Never fails: the signature matches the native path for
// interchangeability.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, Dimensions)
	hashDim := Dimensions - statSlots

	words := tokenize(text)
	for _, word := range words {
		weight := salience(word)
		h := hash(word)
		for i := 0; i < spread; i++ {
			idx := (h + i*stride) % hashDim
			vec[idx] += weight
		}
	}

	// Coarse document statistics in the reserved slots.
	vec[Dimensions-3] = clamp(float32(len(words)) / 256)
	if strings.ContainsRune(text, '?') {
		vec[Dimensions-2] = 1
	}
	vec[Dimensions-1] = clamp(float32(sentenceCount(text)) / 64)

	return vec, nil
}

// Dimensions returns the fixed vector length.
func (e *Embedder) Dimensions() int {
	return Dimensions
}

// ModelName identifies the embedder.
func (e *Embedder) ModelName() string {
	return "fallback"
}

// tokenize lowercases the text and splits it into alphanumeric words.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// salience weights question words and long words higher.
func salience(word string) float32 {
	if _, ok := questionWords[word]; ok {
		return 3
	}
	if len(word) > 6 {
		return 2
	}
	return 1
}

// hash is a rolling polynomial hash over the word's bytes.
func hash(word string) int {
	h := 0
	for i := 0; i < len(word); i++ {
		h = (h*31 + int(word[i])) % (1 << 30)
	}
	return h
}

func sentenceCount(text string) int {
	count := 0
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			count++
		}
	}
	if count == 0 && strings.TrimSpace(text) != "" {
		count = 1
	}
	return count
}

func clamp(v float32) float32 {
	if v > 1 {
		return 1
	}
	return v
}
