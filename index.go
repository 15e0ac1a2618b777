// ═══════════════════════════════════════════════════════════════════════════════
// TOKEN INDEX: pruning the comparison set
// ═══════════════════════════════════════════════════════════════════════════════
// Two questions that share no token always score 0, which is below every
// threshold the engine accepts. An inverted index lets the retriever and the
// duplicate detector skip those pairs without changing any result.
//
// Example: Given these questions (ordinal → tokens):
//   0: [encrypt data rest]
//   1: [incident response plan]
//   2: [data retention policy]
//
// The index would look like:
//   "data"     → {0, 2}
//   "encrypt"  → {0}
//   "incident" → {1}
//   ...
//
// Candidates([data backup]) = {0, 2}: question 1 is never scored.
//
// Ordinals are positions in the slice being indexed, so iterating a bitmap in
// ascending order visits candidates in retrieval order.
// ═══════════════════════════════════════════════════════════════════════════════

package qsim

import (
	"github.com/RoaringBitmap/roaring"
)

// TokenIndex maps each token to the bitmap of document ordinals containing it.
//
// The engine builds one per call and discards it. Callers that keep a corpus in
// memory may hold a TokenIndex across calls; it is not safe for concurrent
// mutation.
type TokenIndex struct {
	DocBitmaps map[string]*roaring.Bitmap // Token → ordinals of documents containing it
	docs       *roaring.Bitmap
}

// NewTokenIndex creates an empty index.
func NewTokenIndex() *TokenIndex {
	return &TokenIndex{
		DocBitmaps: make(map[string]*roaring.Bitmap),
		docs:       roaring.NewBitmap(),
	}
}

// Add records the tokens of document doc. Repeated tokens are harmless.
func (idx *TokenIndex) Add(doc uint32, tokens []string) {
	idx.docs.Add(doc)
	for _, token := range tokens {
		bitmap, ok := idx.DocBitmaps[token]
		if !ok {
			bitmap = roaring.NewBitmap()
			idx.DocBitmaps[token] = bitmap
		}
		bitmap.Add(doc)
	}
}

// Candidates returns the ordinals of documents sharing at least one token
// with tokens. The returned bitmap is owned by the caller.
func (idx *TokenIndex) Candidates(tokens []string) *roaring.Bitmap {
	bitmaps := make([]*roaring.Bitmap, 0, len(tokens))
	for _, token := range tokens {
		if bitmap, ok := idx.DocBitmaps[token]; ok {
			bitmaps = append(bitmaps, bitmap)
		}
	}
	if len(bitmaps) == 0 {
		return roaring.NewBitmap()
	}
	return roaring.FastOr(bitmaps...)
}

// Len returns the number of indexed documents.
func (idx *TokenIndex) Len() int {
	return int(idx.docs.GetCardinality())
}

// DocumentFrequency returns how many indexed documents contain token.
func (idx *TokenIndex) DocumentFrequency(token string) int {
	bitmap, ok := idx.DocBitmaps[token]
	if !ok {
		return 0
	}
	return int(bitmap.GetCardinality())
}
