package main

import (
	"reflect"
	"testing"
)

func newTestDeckStore(t *testing.T) *DeckStoreService {
	t.Helper()
	return NewDeckStoreService(func(msg string) { t.Log(msg) })
}

// threeSlideDeck builds the canonical Intro/Problem/Solution deck used across tests
func threeSlideDeck() []Slide {
	return []Slide{
		{ID: 1, Type: SlideTypeTitle, Title: "Intro", Content: []string{}},
		{ID: 2, Type: SlideTypeBullets, Title: "Problem", Content: []string{"it is slow", "it is manual"}},
		{ID: 3, Type: SlideTypeBullets, Title: "Solution", Content: []string{"automate it"}},
	}
}

func TestDeckStore_InitialState(t *testing.T) {
	ds := newTestDeckStore(t)

	snap := ds.Snapshot()
	if len(snap.Slides) != 0 {
		t.Errorf("expected empty deck, got %d slides", len(snap.Slides))
	}
	if snap.CurrentSlideIndex != -1 {
		t.Errorf("expected index -1 for empty deck, got %d", snap.CurrentSlideIndex)
	}
	if snap.Theme.ID != DefaultThemeID {
		t.Errorf("expected default theme %q, got %q", DefaultThemeID, snap.Theme.ID)
	}
	if snap.TransitionEffect != TransitionFade {
		t.Errorf("expected fade transition, got %q", snap.TransitionEffect)
	}
	if !snap.ShowSpeakerNotes {
		t.Error("expected speaker notes visible by default")
	}
	if snap.IsGenerating {
		t.Error("expected isGenerating false initially")
	}
}

func TestDeckStore_SetSlides(t *testing.T) {
	ds := newTestDeckStore(t)

	ds.SetSlides(threeSlideDeck())

	if ds.SlideCount() != 3 {
		t.Fatalf("expected 3 slides, got %d", ds.SlideCount())
	}
	// Index moves from -1 into range on first population
	if ds.CurrentSlideIndex() != 0 {
		t.Errorf("expected index 0 after populating empty deck, got %d", ds.CurrentSlideIndex())
	}
}

func TestDeckStore_SetSlides_ClampsIndexToShorterDeck(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck())
	ds.SetCurrentSlideIndex(2)

	ds.SetSlides(threeSlideDeck()[:1])

	if got := ds.CurrentSlideIndex(); got != 0 {
		t.Errorf("expected index clamped to 0, got %d", got)
	}
}

func TestDeckStore_SetSlides_NormalizesNilContent(t *testing.T) {
	ds := newTestDeckStore(t)

	ds.SetSlides([]Slide{{ID: 1, Type: SlideTypeTitle, Title: "Opening", Content: nil}})

	slides := ds.Slides()
	if slides[0].Content == nil {
		t.Error("expected nil content to be normalized to empty slice")
	}
	if len(slides[0].Content) != 0 {
		t.Errorf("expected empty content, got %v", slides[0].Content)
	}
}

func TestDeckStore_AddSlide(t *testing.T) {
	ds := newTestDeckStore(t)

	ds.AddSlide(Slide{ID: ds.NextSlideID(), Type: SlideTypeTitle, Title: "Opening", Content: []string{}})

	if ds.SlideCount() != 1 {
		t.Fatalf("expected 1 slide, got %d", ds.SlideCount())
	}
	if ds.CurrentSlideIndex() != 0 {
		t.Errorf("expected index 0 after first add, got %d", ds.CurrentSlideIndex())
	}

	ds.AddSlide(Slide{ID: ds.NextSlideID(), Type: SlideTypeBullets, Title: "Agenda", Content: []string{"a", "b"}})

	slides := ds.Slides()
	if slides[1].Title != "Agenda" {
		t.Errorf("expected append at end, got %q at position 1", slides[1].Title)
	}
	if slides[0].ID == slides[1].ID {
		t.Error("expected distinct ids from NextSlideID")
	}
}

func TestDeckStore_NextSlideID(t *testing.T) {
	ds := newTestDeckStore(t)

	if got := ds.NextSlideID(); got != 1 {
		t.Errorf("expected NextSlideID=1 for empty deck, got %d", got)
	}

	ds.SetSlides(threeSlideDeck())
	if got := ds.NextSlideID(); got != 4 {
		t.Errorf("expected NextSlideID=4, got %d", got)
	}

	// Removing a slide must not free its id for reuse
	ds.RemoveSlide(3)
	if got := ds.NextSlideID(); got != 3 {
		t.Errorf("expected NextSlideID=3 after removing highest id, got %d", got)
	}
	ds.RemoveSlide(1)
	// ids 2 remains; next is 3, never 1 again
	if got := ds.NextSlideID(); got != 3 {
		t.Errorf("expected NextSlideID=3, got %d", got)
	}
}

func TestDeckStore_UpdateSlide_PartialMerge(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck())

	newTitle := "Revised Problem"
	ok := ds.UpdateSlide(2, SlidePatch{Title: &newTitle})
	if !ok {
		t.Fatal("expected UpdateSlide to find slide 2")
	}

	s, _ := ds.SlideByID(2)
	if s.Title != "Revised Problem" {
		t.Errorf("expected title updated, got %q", s.Title)
	}
	// Untouched fields survive the merge
	if !reflect.DeepEqual(s.Content, []string{"it is slow", "it is manual"}) {
		t.Errorf("expected content unchanged, got %v", s.Content)
	}
	if s.Type != SlideTypeBullets {
		t.Errorf("expected type unchanged, got %q", s.Type)
	}
	if s.ID != 2 {
		t.Errorf("expected id unchanged, got %d", s.ID)
	}
}

func TestDeckStore_UpdateSlide_MissingID(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck())
	before := ds.Snapshot()

	title := "ghost"
	ok := ds.UpdateSlide(99, SlidePatch{Title: &title})
	if ok {
		t.Error("expected UpdateSlide to report missing id")
	}

	after := ds.Snapshot()
	if !reflect.DeepEqual(before.Slides, after.Slides) {
		t.Error("expected deck unchanged after updating missing id")
	}
}

func TestDeckStore_RemoveSlide_MissingID(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck())
	ds.SetCurrentSlideIndex(1)
	before := ds.Snapshot()

	ok := ds.RemoveSlide(42)
	if ok {
		t.Error("expected RemoveSlide to report missing id")
	}

	after := ds.Snapshot()
	if !reflect.DeepEqual(before.Slides, after.Slides) {
		t.Error("expected slides unchanged after removing missing id")
	}
	if before.CurrentSlideIndex != after.CurrentSlideIndex {
		t.Errorf("expected index unchanged, got %d -> %d", before.CurrentSlideIndex, after.CurrentSlideIndex)
	}
}

func TestDeckStore_RemoveSlide_IndexFollowsSelection(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck())
	ds.SetCurrentSlideIndex(2) // Solution selected

	// Removing a slide before the selection keeps the same slide selected
	ds.RemoveSlide(1)
	if got := ds.CurrentSlideIndex(); got != 1 {
		t.Errorf("expected index 1 after removing earlier slide, got %d", got)
	}
	if s, _ := ds.CurrentSlide(); s.Title != "Solution" {
		t.Errorf("expected Solution still selected, got %q", s.Title)
	}
}

func TestDeckStore_RemoveSlide_ClampsAtEnd(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck())
	ds.SetCurrentSlideIndex(2)

	// Removing the selected last slide clamps the index to the new end
	ds.RemoveSlide(3)
	if got := ds.CurrentSlideIndex(); got != 1 {
		t.Errorf("expected index clamped to 1, got %d", got)
	}
}

func TestDeckStore_RemoveSlide_LastRemaining(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck()[:1])

	ds.RemoveSlide(1)

	if ds.SlideCount() != 0 {
		t.Fatalf("expected empty deck, got %d slides", ds.SlideCount())
	}
	if got := ds.CurrentSlideIndex(); got != -1 {
		t.Errorf("expected index -1 for emptied deck, got %d", got)
	}
}

func TestDeckStore_ReorderSlides_MoveFirstToLast(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck())

	ok := ds.ReorderSlides(0, 2)
	if !ok {
		t.Fatal("expected reorder to succeed")
	}

	titles := make([]string, 0, 3)
	for _, s := range ds.Slides() {
		titles = append(titles, s.Title)
	}
	expected := []string{"Problem", "Solution", "Intro"}
	if !reflect.DeepEqual(titles, expected) {
		t.Errorf("expected order %v, got %v", expected, titles)
	}

	// Ids travel with their slides
	ids := make([]int, 0, 3)
	for _, s := range ds.Slides() {
		ids = append(ids, s.ID)
	}
	if !reflect.DeepEqual(ids, []int{2, 3, 1}) {
		t.Errorf("expected ids [2 3 1], got %v", ids)
	}
}

func TestDeckStore_ReorderSlides_SameIndexNoOp(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck())
	before := ds.Snapshot()

	ok := ds.ReorderSlides(1, 1)
	if ok {
		t.Error("expected same-index reorder to report no change")
	}

	after := ds.Snapshot()
	if !reflect.DeepEqual(before.Slides, after.Slides) {
		t.Error("expected deck unchanged by same-index reorder")
	}
}

func TestDeckStore_ReorderSlides_OutOfRangeNoOp(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck())
	before := ds.Snapshot()

	cases := [][2]int{{-1, 1}, {0, 3}, {5, 0}, {0, -2}}
	for _, c := range cases {
		if ok := ds.ReorderSlides(c[0], c[1]); ok {
			t.Errorf("expected reorder(%d,%d) to be rejected", c[0], c[1])
		}
	}

	after := ds.Snapshot()
	if !reflect.DeepEqual(before.Slides, after.Slides) {
		t.Error("expected deck unchanged by out-of-range reorders")
	}
}

func TestDeckStore_ReorderSlides_SelectionFollowsSlide(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck())
	ds.SetCurrentSlideIndex(0) // Intro selected

	ds.ReorderSlides(0, 2)

	if got := ds.CurrentSlideIndex(); got != 2 {
		t.Errorf("expected selection to follow Intro to index 2, got %d", got)
	}
	if s, _ := ds.CurrentSlide(); s.Title != "Intro" {
		t.Errorf("expected Intro still selected, got %q", s.Title)
	}
}

func TestDeckStore_SetCurrentSlideIndex_Clamps(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck())

	ds.SetCurrentSlideIndex(10)
	if got := ds.CurrentSlideIndex(); got != 2 {
		t.Errorf("expected clamp to 2, got %d", got)
	}

	ds.SetCurrentSlideIndex(-5)
	if got := ds.CurrentSlideIndex(); got != 0 {
		t.Errorf("expected clamp to 0, got %d", got)
	}
}

func TestDeckStore_SetCurrentSlideIndex_EmptyDeck(t *testing.T) {
	ds := newTestDeckStore(t)

	ds.SetCurrentSlideIndex(3)

	if got := ds.CurrentSlideIndex(); got != -1 {
		t.Errorf("expected -1 on empty deck, got %d", got)
	}
}

func TestDeckStore_SetTransitionEffect(t *testing.T) {
	ds := newTestDeckStore(t)

	ds.SetTransitionEffect(TransitionZoom)
	if got := ds.GetTransitionEffect(); got != TransitionZoom {
		t.Errorf("expected zoom, got %q", got)
	}

	// Unknown effects are ignored
	ds.SetTransitionEffect(TransitionEffect("spin"))
	if got := ds.GetTransitionEffect(); got != TransitionZoom {
		t.Errorf("expected zoom preserved after invalid set, got %q", got)
	}
}

func TestDeckStore_SetCurrentTheme(t *testing.T) {
	ds := newTestDeckStore(t)

	coral, ok := ThemeByID("coral")
	if !ok {
		t.Fatal("coral theme missing from catalog")
	}
	ds.SetCurrentTheme(coral)

	if got := ds.CurrentTheme().ID; got != "coral" {
		t.Errorf("expected coral theme, got %q", got)
	}
}

func TestDeckStore_ClearSlides(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck())
	coral, _ := ThemeByID("coral")
	ds.SetCurrentTheme(coral)
	ds.SetCurrentSlideIndex(2)

	ds.ClearSlides()

	if ds.SlideCount() != 0 {
		t.Errorf("expected empty deck, got %d slides", ds.SlideCount())
	}
	if got := ds.CurrentSlideIndex(); got != -1 {
		t.Errorf("expected index -1, got %d", got)
	}
	// Theme survives a clear
	if got := ds.CurrentTheme().ID; got != "coral" {
		t.Errorf("expected theme preserved across clear, got %q", got)
	}
}

func TestDeckStore_Subscribe(t *testing.T) {
	ds := newTestDeckStore(t)

	var changes []DeckChange
	unsubscribe := ds.Subscribe(func(change DeckChange, snap DeckSnapshot) {
		changes = append(changes, change)
	})

	ds.SetSlides(threeSlideDeck())
	ds.SetCurrentSlideIndex(1)
	title := "New"
	ds.UpdateSlide(1, SlidePatch{Title: &title})
	ds.ReorderSlides(0, 1)
	ds.SetTransitionEffect(TransitionNone)

	expected := []string{"slides", "index", "slide", "order", "transition"}
	if len(changes) != len(expected) {
		t.Fatalf("expected %d changes, got %d: %+v", len(expected), len(changes), changes)
	}
	for i, kind := range expected {
		if changes[i].Kind != kind {
			t.Errorf("change %d: expected kind %q, got %q", i, kind, changes[i].Kind)
		}
	}

	unsubscribe()
	ds.SetCurrentSlideIndex(0)
	if len(changes) != len(expected) {
		t.Errorf("expected no notifications after unsubscribe, got %d", len(changes)-len(expected))
	}
}

func TestDeckStore_NoNotifyOnMissedOps(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck())

	count := 0
	ds.Subscribe(func(change DeckChange, snap DeckSnapshot) { count++ })

	title := "x"
	ds.UpdateSlide(99, SlidePatch{Title: &title}) // missing id
	ds.RemoveSlide(42)                            // missing id
	ds.ReorderSlides(1, 1)                        // same index
	ds.ReorderSlides(-1, 2)                       // out of range

	if count != 0 {
		t.Errorf("expected no notifications for no-op mutations, got %d", count)
	}
}

func TestDeckStore_SnapshotIsolation(t *testing.T) {
	ds := newTestDeckStore(t)
	ds.SetSlides(threeSlideDeck())

	snap := ds.Snapshot()
	snap.Slides[0].Title = "Hacked"
	snap.Slides[1].Content[0] = "hacked line"

	fresh := ds.Snapshot()
	if fresh.Slides[0].Title != "Intro" {
		t.Error("mutating a snapshot leaked into the store (title)")
	}
	if fresh.Slides[1].Content[0] != "it is slow" {
		t.Error("mutating a snapshot leaked into the store (content)")
	}
}

func TestDeckStore_CurrentSlide(t *testing.T) {
	ds := newTestDeckStore(t)

	if _, ok := ds.CurrentSlide(); ok {
		t.Error("expected no current slide on empty deck")
	}

	ds.SetSlides(threeSlideDeck())
	ds.SetCurrentSlideIndex(1)
	s, ok := ds.CurrentSlide()
	if !ok || s.Title != "Problem" {
		t.Errorf("expected Problem selected, got %q (ok=%v)", s.Title, ok)
	}
}

func TestDeckStore_ServiceInterface(t *testing.T) {
	// Verify DeckStoreService implements Service interface
	var _ Service = (*DeckStoreService)(nil)
}
