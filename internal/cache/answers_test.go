package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  ما هي شروط الوقف؟  ", "ما هي شروط الوقف"},
		{"Ma   Hiya\tShurut?!", "ma hiya shurut"},
		{"سؤال، مع علامات.", "سؤال مع علامات"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJaccardSimilarity(t *testing.T) {
	t.Run("identical strings", func(t *testing.T) {
		if got := JaccardSimilarity("ما هي شروط الوقف", "ما هي شروط الوقف"); got != 1 {
			t.Errorf("similarity = %v, want exactly 1", got)
		}
	})
	t.Run("disjoint vocabulary", func(t *testing.T) {
		if got := JaccardSimilarity("القدس", "الخليل"); got != 0 {
			t.Errorf("similarity = %v, want exactly 0", got)
		}
	})
	t.Run("partial overlap", func(t *testing.T) {
		got := JaccardSimilarity("ما هي شروط الوقف الصحيح", "ما هي شروط الوقف")
		if got <= 0.5 || got >= 1 {
			t.Errorf("similarity = %v, want in (0.5, 1)", got)
		}
	})
	t.Run("both empty", func(t *testing.T) {
		if got := JaccardSimilarity("", ""); got != 0 {
			t.Errorf("similarity = %v, want 0", got)
		}
	})
}

func TestAnswerCache_ExactAndVariantLookup(t *testing.T) {
	c := NewAnswerCache()
	c.Store("ما هي شروط الوقف؟", "الشروط هي...", `["1","2"]`, 0)

	tests := []string{
		"ما هي شروط الوقف؟",
		"ما هي شروط الوقف",
		"  ما   هي شروط الوقف؟!  ",
	}
	for _, q := range tests {
		e, ok := c.Lookup(q)
		if !ok {
			t.Fatalf("Lookup(%q) missed", q)
		}
		if e.Answer != "الشروط هي..." {
			t.Errorf("Lookup(%q) answer = %q", q, e.Answer)
		}
		if e.Sources != `["1","2"]` {
			t.Errorf("Lookup(%q) sources = %q", q, e.Sources)
		}
	}
}

func TestAnswerCache_FuzzyLookup(t *testing.T) {
	c := NewAnswerCache()
	c.Store("ما هي شروط صحة الوقف الخيري في فلسطين", "answer", "[]", 0)

	// One word dropped out of seven: Jaccard 6/7 > 0.8.
	if _, ok := c.Lookup("ما هي شروط صحة الوقف في فلسطين"); !ok {
		t.Error("near-identical question should fuzzy-hit")
	}

	// A distant question must miss.
	if _, ok := c.Lookup("تاريخ المساجد العثمانية"); ok {
		t.Error("unrelated question should miss")
	}
}

func TestAnswerCache_LookupRefreshesLastUsed(t *testing.T) {
	c := NewAnswerCache()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Store("first question here", "a", "[]", 0)
	clock = clock.Add(time.Hour)

	e, ok := c.Lookup("first question here")
	if !ok {
		t.Fatal("lookup missed")
	}
	if !e.LastUsed.Equal(clock) {
		t.Errorf("LastUsed = %v, want refreshed to %v", e.LastUsed, clock)
	}
}

func TestAnswerCache_BatchEviction(t *testing.T) {
	c := NewAnswerCache()
	clock := time.Unix(0, 0)
	c.now = func() time.Time { return clock }

	// Fill to the ceiling; each entry stored one second after the previous
	// so last-use order matches insertion order.
	for i := 0; i < 1000; i++ {
		clock = clock.Add(time.Second)
		c.Store(fmt.Sprintf("question number %d unique", i), "a", "[]", 0)
	}
	if got := c.Len(); got != 1000 {
		t.Fatalf("cache size = %d, want 1000", got)
	}

	// One more store crosses the ceiling and evicts the 100 oldest.
	clock = clock.Add(time.Second)
	c.Store("question number 1000 unique", "a", "[]", 0)

	if got := c.Len(); got != 901 {
		t.Fatalf("cache size after eviction = %d, want 901", got)
	}

	// The oldest 100 are gone; everything newer survived.
	if _, ok := c.Lookup("question number 0 unique"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.Lookup("question number 100 unique"); !ok {
		t.Error("entry 100 should have survived eviction")
	}
	if _, ok := c.Lookup("question number 1000 unique"); !ok {
		t.Error("newest entry should have survived eviction")
	}
}

func TestAnswerCache_UpdateRating(t *testing.T) {
	c := NewAnswerCache()
	c.Store("سؤال عن الوقف الخيري", "a", "[]", 0)

	if !c.UpdateRating("سؤال عن الوقف الخيري؟", 1) {
		t.Fatal("rating update on punctuation variant of the exact key failed")
	}
	e, _ := c.Lookup("سؤال عن الوقف الخيري")
	if e.Rating != 1 {
		t.Errorf("rating = %d, want 1", e.Rating)
	}

	if c.UpdateRating("سؤال غير موجود في الذاكرة", -1) {
		t.Error("rating update for absent question should report false")
	}
}

func TestAnswerCache_Snapshot(t *testing.T) {
	c := NewAnswerCache()
	c.Store("first question here", "a", "[]", 1)
	c.Store("second question here", "a", "[]", -1)
	c.Store("third question here", "a", "[]", 0)

	s := c.Snapshot()
	if s.Total != 3 || s.HighRated != 1 || s.LowRated != 1 {
		t.Errorf("snapshot = %+v, want total 3, high 1, low 1", s)
	}
}
