// ═══════════════════════════════════════════════════════════════════════════════
// LEXICAL OVERLAP SCORING
// ═══════════════════════════════════════════════════════════════════════════════
// A score is an integer in [0, 100] built from two terms:
//
//   jaccard = |A ∩ B| / |A ∪ B| * 100
//   bonus   = min(3 * |A ∩ B|, 20)
//   score   = min(round(jaccard + bonus), 100)
//
// The bonus rewards the absolute number of shared terms. Short compliance
// questions often share only one or two very specific words ("encryption",
// "penetration") and the ratio alone undervalues them.
//
// WORKED EXAMPLE:
// ---------------
//   A = [written information security policy]
//   B = [maintain written information security policy]
//   |A ∩ B| = 4, |A ∪ B| = 5
//   jaccard = 80, bonus = 12, score = 92
// ═══════════════════════════════════════════════════════════════════════════════

package qsim

import "math"

const (
	// MaxScore is the upper bound of every similarity score.
	MaxScore = 100

	overlapBonusPerToken = 3
	overlapBonusCap      = 20
)

// TokenSet is the set view of a token sequence.
type TokenSet map[string]struct{}

// NewTokenSet collapses duplicate tokens.
func NewTokenSet(tokens []string) TokenSet {
	set := make(TokenSet, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Contains reports whether token is in the set.
func (s TokenSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// IntersectionSize counts the tokens present in both sets.
func (s TokenSet) IntersectionSize(other TokenSet) int {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	n := 0
	for t := range small {
		if large.Contains(t) {
			n++
		}
	}
	return n
}

// Breakdown exposes every intermediate term of a score so that it can be
// checked by hand.
type Breakdown struct {
	Intersection int
	Union        int
	Jaccard      float64
	Bonus        int
	Score        int
}

// Score computes the similarity of two token sequences.
func Score(a, b []string) int {
	return ScoreSets(NewTokenSet(a), NewTokenSet(b))
}

// ScoreSets computes the similarity of two token sets. It is symmetric and
// returns 0 when either set is empty.
func ScoreSets(a, b TokenSet) int {
	return breakdown(a, b).Score
}

// ScoreBreakdown returns the score of a and b along with its components.
func ScoreBreakdown(a, b []string) Breakdown {
	return breakdown(NewTokenSet(a), NewTokenSet(b))
}

func breakdown(a, b TokenSet) Breakdown {
	if len(a) == 0 || len(b) == 0 {
		return Breakdown{Union: len(a) + len(b)}
	}

	i := a.IntersectionSize(b)
	u := len(a) + len(b) - i

	jaccard := float64(i) / float64(u) * 100
	bonus := min(i*overlapBonusPerToken, overlapBonusCap)

	// math.Round rounds half away from zero; all terms are non-negative here
	score := min(int(math.Round(jaccard+float64(bonus))), MaxScore)

	return Breakdown{
		Intersection: i,
		Union:        u,
		Jaccard:      jaccard,
		Bonus:        bonus,
		Score:        score,
	}
}
