// ═══════════════════════════════════════════════════════════════════════════════
// TEXT ANALYSIS OVERVIEW
// ═══════════════════════════════════════════════════════════════════════════════
// Questionnaire questions are compared by the words they share. Before two
// questions can be compared, each is reduced to a sequence of tokens:
//
// ANALYSIS PIPELINE:
// ------------------
//  1. Normalization   → NFKC, so "ﬁrewall" and "firewall" read the same
//  2. Lowercasing     → "Encryption" → "encryption"
//  3. Splitting       → anything that is not a letter or digit separates words
//  4. Length filter   → drop tokens shorter than MinTokenLength (default 3)
//  5. Stop words      → drop articles, auxiliaries, pronouns and framing words
//  6. Stemming        → optional, off by default
//
// EXAMPLE TRANSFORMATION:
// -----------------------
// Input:  "Do you encrypt data at rest?"
// Step 3: ["do", "you", "encrypt", "data", "at", "rest"]
// Step 4: ["you", "encrypt", "data", "rest"]
// Step 5: ["encrypt", "data", "rest"]
//
// Order and repeated tokens are preserved here. Set semantics are applied by
// the scorer, not the tokenizer.
// ═══════════════════════════════════════════════════════════════════════════════

package qsim

import (
	"strings"
	"unicode"
	"unicode/utf8"

	snowballeng "github.com/kljensen/snowball/english"
	"golang.org/x/text/unicode/norm"
)

// AnalyzerConfig holds configuration options for text analysis
type AnalyzerConfig struct {
	MinTokenLength int      // Minimum token length in runes (default: 3)
	EnableStemming bool     // Apply the Snowball English stemmer (default: false)
	ExtraStopwords []string // Additional words to drop, on top of the built-in list
}

// DefaultAnalyzerConfig returns the analyzer configuration the documented
// scoring examples are computed with.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		MinTokenLength: 3,
		EnableStemming: false,
	}
}

// Analyzer turns raw question text into tokens. It is immutable after
// construction and safe for concurrent use.
type Analyzer struct {
	minLength int
	stemming  bool
	extra     map[string]struct{}
}

// NewAnalyzer creates an analyzer for the given configuration.
// A MinTokenLength below 1 is treated as 1.
func NewAnalyzer(config AnalyzerConfig) *Analyzer {
	a := &Analyzer{
		minLength: max(config.MinTokenLength, 1),
		stemming:  config.EnableStemming,
	}
	if len(config.ExtraStopwords) > 0 {
		a.extra = make(map[string]struct{}, len(config.ExtraStopwords))
		for _, w := range config.ExtraStopwords {
			a.extra[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
		}
	}
	return a
}

var defaultAnalyzer = NewAnalyzer(DefaultAnalyzerConfig())

// Tokenize analyzes text with the default configuration.
//
// Example:
//
//	Tokenize("Do you have a written information security policy?")
//	// Returns: ["written", "information", "security", "policy"]
func Tokenize(text string) []string {
	return defaultAnalyzer.Tokenize(text)
}

// Tokenize runs the analysis pipeline over text. Empty or whitespace-only
// input yields an empty, non-nil slice.
func (a *Analyzer) Tokenize(text string) []string {
	words := splitWords(strings.ToLower(norm.NFKC.String(text)))

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) < a.minLength {
			continue
		}
		if a.isStopword(word) {
			continue
		}
		if a.stemming {
			word = snowballeng.Stem(word, false)
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// splitWords treats every rune that is not a letter or a digit as whitespace
//
//	"penetration-test"  → ["penetration", "test"]
//	"SOC2/ISO 27001"    → ["soc2", "iso", "27001"]
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func (a *Analyzer) isStopword(token string) bool {
	if _, ok := questionStopwords[token]; ok {
		return true
	}
	_, ok := a.extra[token]
	return ok
}

// IsStopword reports whether token is on the built-in stop-word list.
func IsStopword(token string) bool {
	_, ok := questionStopwords[strings.ToLower(token)]
	return ok
}

// questionStopwords lists words that carry no topic in a due-diligence
// question. Besides articles, auxiliaries and pronouns it holds the phrasing
// questionnaires wrap around the actual subject ("Please describe...",
// "Provide details regarding...").
//
// Words of one or two letters are listed for completeness even though the
// length filter already removes them with the default configuration.
var questionStopwords = map[string]struct{}{
	// articles, conjunctions, prepositions
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "nor": {}, "but": {},
	"if": {}, "of": {}, "to": {}, "in": {}, "on": {}, "at": {}, "by": {},
	"for": {}, "from": {}, "with": {}, "into": {}, "onto": {}, "about": {},
	"as": {}, "than": {}, "then": {}, "also": {}, "such": {}, "via": {},
	"per": {},

	// auxiliary and modal verbs
	"is": {}, "am": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"being": {}, "do": {}, "does": {}, "did": {}, "doing": {}, "done": {},
	"have": {}, "has": {}, "had": {}, "having": {}, "will": {}, "would": {},
	"shall": {}, "should": {}, "can": {}, "could": {}, "may": {}, "might": {},
	"must": {},

	// pronouns and determiners
	"i": {}, "me": {}, "my": {}, "we": {}, "us": {}, "our": {}, "ours": {},
	"ourselves": {}, "you": {}, "your": {}, "yours": {}, "yourself": {},
	"yourselves": {}, "he": {}, "him": {}, "his": {}, "she": {}, "her": {},
	"hers": {}, "it": {}, "its": {}, "they": {}, "them": {}, "their": {},
	"theirs": {}, "this": {}, "that": {}, "these": {}, "those": {}, "any": {},
	"all": {}, "each": {}, "some": {}, "other": {}, "there": {}, "here": {},
	"not": {}, "no": {}, "yes": {},

	// interrogatives
	"what": {}, "which": {}, "who": {}, "whom": {}, "whose": {}, "when": {},
	"where": {}, "why": {}, "how": {},

	// question framing
	"please": {}, "describe": {}, "explain": {}, "provide": {}, "regarding": {},
	"detail": {}, "details": {}, "outline": {}, "specify": {}, "indicate": {},
	"confirm": {}, "list": {}, "share": {},
}
