package deck

import (
	"os"
	"path/filepath"
	"testing"
)

func testSlides(n int) []Slide {
	s := make([]Slide, n)
	for i := range s {
		s[i] = Slide{ID: i + 1, Title: "slide", Kind: KindContent}
	}
	return s
}

func TestNewEmpty(t *testing.T) {
	if _, err := New(nil); err != ErrEmptyDeck {
		t.Errorf("expected ErrEmptyDeck, got %v", err)
	}
}

func TestAdvanceClamps(t *testing.T) {
	const n = 5
	for start := 0; start < n; start++ {
		d, err := New(testSlides(n))
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		d.index = start
		for i := 0; i < 2*n; i++ {
			d.Advance()
			if d.Index() > n-1 {
				t.Fatalf("start %d: index %d past last slide", start, d.Index())
			}
		}
		if !d.AtLast() {
			t.Errorf("start %d: expected to rest on last slide, got %d", start, d.Index())
		}
	}
}

func TestRetreatClamps(t *testing.T) {
	const n = 5
	for start := 0; start < n; start++ {
		d, _ := New(testSlides(n))
		d.index = start
		for i := 0; i < 2*n; i++ {
			d.Retreat()
			if d.Index() < 0 {
				t.Fatalf("start %d: index %d below zero", start, d.Index())
			}
		}
		if !d.AtFirst() {
			t.Errorf("start %d: expected to rest on first slide, got %d", start, d.Index())
		}
	}
}

func TestRoundTrip(t *testing.T) {
	const n = 6
	for start := 1; start < n-1; start++ {
		d, _ := New(testSlides(n))
		d.index = start
		if !d.Advance() {
			t.Fatalf("start %d: advance did not move", start)
		}
		if d.LastDirection() != Forward {
			t.Errorf("expected forward, got %s", d.LastDirection())
		}
		if !d.Retreat() {
			t.Fatalf("start %d: retreat did not move", start)
		}
		if d.LastDirection() != Backward {
			t.Errorf("expected backward, got %s", d.LastDirection())
		}
		if d.Index() != start {
			t.Errorf("round trip from %d ended at %d", start, d.Index())
		}
	}
}

func TestBoundaryNoOpKeepsDirection(t *testing.T) {
	d, _ := New(testSlides(2))
	d.Advance()
	if d.Advance() {
		t.Error("advance at last slide should be a no-op")
	}
	if d.LastDirection() != Forward {
		t.Error("direction changed on no-op")
	}
	d.Retreat()
	if d.Retreat() {
		t.Error("retreat at first slide should be a no-op")
	}
	if d.LastDirection() != Backward {
		t.Error("direction changed on no-op")
	}
}

func TestCurrentAndProgress(t *testing.T) {
	d, _ := New(testSlides(4))
	if d.Current().ID != 1 {
		t.Errorf("expected slide 1, got %d", d.Current().ID)
	}
	if d.Progress() != 0.25 {
		t.Errorf("expected progress 0.25, got %f", d.Progress())
	}
	d.Advance()
	d.Advance()
	if d.Current().ID != 3 {
		t.Errorf("expected slide 3, got %d", d.Current().ID)
	}
}

func TestNewCopiesSlides(t *testing.T) {
	src := testSlides(2)
	d, _ := New(src)
	src[0].Title = "changed"
	if d.Current().Title != "slide" {
		t.Error("deck shares backing array with caller")
	}
}

func TestBuiltin(t *testing.T) {
	slides, err := Builtin()
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	kinds := map[Kind]bool{}
	for _, s := range slides {
		kinds[s.Kind] = true
	}
	for _, k := range []Kind{KindIntro, KindContent, KindVisual, KindQA, KindSummary} {
		if !kinds[k] {
			t.Errorf("builtin deck has no %s slide", k)
		}
	}
	if slides[0].Kind != KindIntro {
		t.Errorf("expected deck to open with intro, got %s", slides[0].Kind)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	data := []byte("slides:\n  - id: 7\n    kind: summary\n    title: done\n    content: bye\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Len() != 1 || d.Current().Kind != KindSummary {
		t.Errorf("unexpected deck: %+v", d.Slides())
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	os.WriteFile(path, []byte("slides: []\n"), 0644)
	if _, err := Load(path); err != ErrEmptyDeck {
		t.Errorf("expected ErrEmptyDeck, got %v", err)
	}
}
