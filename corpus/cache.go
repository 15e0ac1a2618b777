package corpus

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	qsim "github.com/mewitt74/gigachad-grc-sub014"
)

type cacheKey struct {
	organizationID string
	excludeID      string
	limit          int
}

// Cached memoizes candidate snapshots of another corpus for a limited time.
// Failed fetches are not cached. The engine itself never caches; wrap the
// corpus in Cached when repeated queries against a slow store are expected.
type Cached struct {
	inner qsim.Corpus
	cache *expirable.LRU[cacheKey, []qsim.CandidateQuestion]
}

// NewCached keeps at most size snapshots, each for ttl.
func NewCached(inner qsim.Corpus, size int, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: expirable.NewLRU[cacheKey, []qsim.CandidateQuestion](size, nil, ttl),
	}
}

// FetchCandidates serves a cached snapshot or fetches and stores a new one.
func (c *Cached) FetchCandidates(ctx context.Context, filter qsim.CandidateFilter) ([]qsim.CandidateQuestion, error) {
	key := cacheKey{
		organizationID: filter.OrganizationID,
		excludeID:      filter.ExcludeID,
		limit:          filter.Limit,
	}
	if candidates, ok := c.cache.Get(key); ok {
		return cloneCandidates(candidates), nil
	}

	candidates, err := c.inner.FetchCandidates(ctx, filter)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, cloneCandidates(candidates))
	return candidates, nil
}

// Invalidate drops every cached snapshot of an organization.
func (c *Cached) Invalidate(organizationID string) {
	for _, key := range c.cache.Keys() {
		if key.organizationID == organizationID {
			c.cache.Remove(key)
		}
	}
}

// Len returns the number of cached snapshots.
func (c *Cached) Len() int {
	return c.cache.Len()
}

func cloneCandidates(candidates []qsim.CandidateQuestion) []qsim.CandidateQuestion {
	return append(make([]qsim.CandidateQuestion, 0, len(candidates)), candidates...)
}
