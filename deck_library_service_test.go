package main

import (
	"context"
	"testing"
	"time"
)

func newTestLibrary(t *testing.T) *DeckLibraryService {
	t.Helper()
	ls := NewDeckLibraryService(t.TempDir(), func(msg string) { t.Log(msg) })
	if err := ls.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { ls.Shutdown() })
	return ls
}

func librarySnapshot() DeckSnapshot {
	return DeckSnapshot{
		Slides: []Slide{
			{ID: 1, Type: SlideTypeTitle, Layout: LayoutShout, Title: "Acme Robotics", Content: []string{"Warehouse picking, automated"}},
			{ID: 2, Type: SlideTypeBullets, Layout: LayoutDefault, Title: "Problem", Content: []string{"Picking is manual"}, SpeakerNotes: "pause here"},
		},
		CurrentSlideIndex: 0,
		Theme:             DefaultTheme(),
		TransitionEffect:  TransitionFade,
		ShowSpeakerNotes:  true,
	}
}

func TestLibrary_SaveAndLoadRoundTrip(t *testing.T) {
	ls := newTestLibrary(t)

	id, err := ls.SaveDeck(librarySnapshot(), "Acme Pitch", "pat")
	if err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}
	if id == "" {
		t.Fatal("SaveDeck returned empty id")
	}

	result, err := ls.LoadDeck(id)
	if err != nil {
		t.Fatalf("LoadDeck: %v", err)
	}
	if len(result.Slides) != 2 {
		t.Fatalf("loaded %d slides, want 2", len(result.Slides))
	}
	if result.Slides[0].Title != "Acme Robotics" || result.Slides[1].SpeakerNotes != "pause here" {
		t.Errorf("loaded slides lost content: %+v", result.Slides)
	}
	if result.DeckTitle != "Acme Pitch" {
		t.Errorf("deck title = %q", result.DeckTitle)
	}
	if result.ShowSpeakerNotes == nil || !*result.ShowSpeakerNotes {
		t.Error("notes flag not restored")
	}
	if result.Transition != TransitionFade {
		t.Errorf("transition = %q", result.Transition)
	}
}

func TestLibrary_ListRecentOrdersNewestFirst(t *testing.T) {
	ls := newTestLibrary(t)

	snap := librarySnapshot()
	if _, err := ls.SaveDeck(snap, "First", ""); err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}
	// RFC3339 has second granularity; make the second save sort later
	time.Sleep(1100 * time.Millisecond)
	if _, err := ls.SaveDeck(snap, "Second", ""); err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}

	rows, err := ls.ListRecent(0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Title != "Second" || rows[1].Title != "First" {
		t.Errorf("rows not newest-first: %+v", rows)
	}
	if rows[0].SlideCount != 2 {
		t.Errorf("slide count = %d", rows[0].SlideCount)
	}
}

func TestLibrary_ListRecentLimit(t *testing.T) {
	ls := newTestLibrary(t)

	snap := librarySnapshot()
	for _, title := range []string{"a", "b", "c"} {
		if _, err := ls.SaveDeck(snap, title, ""); err != nil {
			t.Fatalf("SaveDeck: %v", err)
		}
	}

	rows, err := ls.ListRecent(2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("limit ignored: got %d rows", len(rows))
	}
}

func TestLibrary_AutosaveOverwritesOneRow(t *testing.T) {
	ls := newTestLibrary(t)

	snap := librarySnapshot()
	if err := ls.SaveAutosave(snap, "Working deck", ""); err != nil {
		t.Fatalf("SaveAutosave: %v", err)
	}
	snap.Slides = snap.Slides[:1]
	if err := ls.SaveAutosave(snap, "Working deck", ""); err != nil {
		t.Fatalf("second SaveAutosave: %v", err)
	}

	rows, err := ls.ListRecent(0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("autosave created %d rows, want 1", len(rows))
	}
	if rows[0].SlideCount != 1 {
		t.Errorf("autosave row not overwritten: %+v", rows[0])
	}

	result, err := ls.LoadDeck(autosaveDeckID)
	if err != nil {
		t.Fatalf("LoadDeck(autosave): %v", err)
	}
	if len(result.Slides) != 1 {
		t.Errorf("autosave payload has %d slides, want 1", len(result.Slides))
	}
}

func TestLibrary_DeleteDeck(t *testing.T) {
	ls := newTestLibrary(t)

	id, err := ls.SaveDeck(librarySnapshot(), "Doomed", "")
	if err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}
	if err := ls.DeleteDeck(id); err != nil {
		t.Fatalf("DeleteDeck: %v", err)
	}
	if _, err := ls.LoadDeck(id); err == nil {
		t.Error("expected error loading a deleted deck")
	}
	if err := ls.DeleteDeck(id); err == nil {
		t.Error("expected error deleting an already-deleted deck")
	}
}

func TestLibrary_LoadMissingDeck(t *testing.T) {
	ls := newTestLibrary(t)
	if _, err := ls.LoadDeck("no-such-id"); err == nil {
		t.Error("expected error for unknown library id")
	}
}

func TestLibrary_SaveEmptyDeckFails(t *testing.T) {
	ls := newTestLibrary(t)
	if _, err := ls.SaveDeck(DeckSnapshot{Slides: []Slide{}}, "Empty", ""); err == nil {
		t.Error("expected error saving an empty deck")
	}
}

func TestLibrary_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ls := NewDeckLibraryService(dir, nil)
	if err := ls.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	id, err := ls.SaveDeck(librarySnapshot(), "Durable", "")
	if err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}
	if err := ls.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	reopened := NewDeckLibraryService(dir, nil)
	if err := reopened.Initialize(context.Background()); err != nil {
		t.Fatalf("reopen Initialize: %v", err)
	}
	defer reopened.Shutdown()

	result, err := reopened.LoadDeck(id)
	if err != nil {
		t.Fatalf("LoadDeck after reopen: %v", err)
	}
	if result.DeckTitle != "Durable" {
		t.Errorf("deck title after reopen = %q", result.DeckTitle)
	}
}
