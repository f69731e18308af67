// Package cache holds previously generated answers keyed by a normalized
// form of the question, with fuzzy lookup so close rephrasings hit too.
//
// The cache is process-wide, in-memory only, and owned by whoever constructs
// it; it is injected into the answer flow rather than living as package
// state, so tests get isolated instances and eviction stays observable.
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// maxEntries is the capacity ceiling; exceeding it triggers eviction.
	maxEntries = 1000
	// evictBatch entries with the oldest last use are dropped per eviction.
	// Batch eviction amortizes the sort instead of evicting one-by-one.
	evictBatch = 100
	// fuzzyThreshold is the minimum Jaccard similarity for a fuzzy hit.
	fuzzyThreshold = 0.8
)

// Entry is a cached question/answer pair. Sources holds the serialized
// source-document ids exactly as stored.
type Entry struct {
	Question string
	Answer   string
	Sources  string
	Rating   int
	LastUsed time.Time
}

// AnswerCache is a bounded in-memory store of prior answers. All methods are
// safe for concurrent use; lookups and eviction mutate the same structure and
// are serialized behind one mutex.
type AnswerCache struct {
	mu      sync.Mutex
	entries map[string]*Entry
	now     func() time.Time
}

// NewAnswerCache creates an empty cache.
func NewAnswerCache() *AnswerCache {
	return &AnswerCache{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

var punctuationStripper = strings.NewReplacer(
	"؟", "", "?", "", "!", "", ".", "", "،", "", ",", "",
)

// Normalize canonicalizes a question for keying: case-folded, question/
// punctuation marks stripped, internal whitespace collapsed, trimmed.
func Normalize(question string) string {
	s := punctuationStripper.Replace(strings.ToLower(question))
	return strings.Join(strings.Fields(s), " ")
}

// JaccardSimilarity returns intersection-over-union of the whitespace token
// sets of a and b. Identical strings score exactly 1, strings with disjoint
// vocabularies exactly 0. Two empty strings score 0.
func JaccardSimilarity(a, b string) float64 {
	wordsA := tokenSet(a)
	wordsB := tokenSet(b)

	union := len(wordsA)
	intersection := 0
	for w := range wordsB {
		if _, ok := wordsA[w]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

// Lookup returns the cached entry for the question, trying an exact match on
// the normalized key first and then a fuzzy scan over all entries (best
// Jaccard similarity above the threshold wins). Any hit refreshes the
// entry's last-use time. The returned Entry is a copy.
func (c *AnswerCache) Lookup(question string) (Entry, bool) {
	normalized := Normalize(question)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[normalized]; ok {
		e.LastUsed = c.now()
		return *e, true
	}

	var best *Entry
	bestSim := fuzzyThreshold
	for key, e := range c.entries {
		if sim := JaccardSimilarity(normalized, key); sim > bestSim {
			best = e
			bestSim = sim
		}
	}
	if best == nil {
		return Entry{}, false
	}
	best.LastUsed = c.now()
	return *best, true
}

// Store upserts an answer keyed by the normalized question, then evicts the
// oldest batch if the cache has grown past its ceiling.
func (c *AnswerCache) Store(question, answer, sources string, rating int) {
	normalized := Normalize(question)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[normalized] = &Entry{
		Question: question,
		Answer:   answer,
		Sources:  sources,
		Rating:   rating,
		LastUsed: c.now(),
	}

	if len(c.entries) > maxEntries {
		c.evictOldest()
	}
}

// evictOldest removes the evictBatch entries with the oldest last use.
// Caller must hold the mutex.
func (c *AnswerCache) evictOldest() {
	type aged struct {
		key      string
		lastUsed time.Time
	}
	all := make([]aged, 0, len(c.entries))
	for key, e := range c.entries {
		all = append(all, aged{key: key, lastUsed: e.LastUsed})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].lastUsed.Before(all[j].lastUsed)
	})

	n := evictBatch
	if n > len(all) {
		n = len(all)
	}
	for _, a := range all[:n] {
		delete(c.entries, a.key)
	}
}

// UpdateRating overwrites the rating of the entry stored under the exact
// normalized key. Fuzzy matching is deliberately not used here: a rating
// must land on the precise question it was given for. Returns false when no
// entry exists.
func (c *AnswerCache) UpdateRating(question string, rating int) bool {
	normalized := Normalize(question)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[normalized]
	if !ok {
		return false
	}
	e.Rating = rating
	return true
}

// Stats summarizes the cache for the insights surface.
type Stats struct {
	Total     int `json:"total"`
	HighRated int `json:"high_rated"`
	LowRated  int `json:"low_rated"`
}

// Snapshot returns current cache statistics.
func (c *AnswerCache) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Total: len(c.entries)}
	for _, e := range c.entries {
		switch {
		case e.Rating > 0:
			s.HighRated++
		case e.Rating < 0:
			s.LowRated++
		}
	}
	return s
}

// Len returns the number of cached entries.
func (c *AnswerCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
