package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// DeckChange describes one store mutation for subscribers.
type DeckChange struct {
	Kind    string `json:"kind"`              // slides, slide, order, index, theme, transition, notes, generating
	SlideID int    `json:"slideId,omitempty"` // set for slide-scoped changes
}

// DeckStoreService holds the working deck: the ordered slide list, the active
// index, the theme, the transition effect and the busy/visibility flags. It is
// the single writer for deck state; every other component reads snapshots and
// issues mutations through it.
//
// The controller is the single logical writer, but Wails binding calls can
// arrive on different goroutines, so a mutex guards the fields.
type DeckStoreService struct {
	mu                sync.RWMutex
	slides            []Slide
	currentSlideIndex int // -1 when the deck is empty
	theme             Theme
	transitionEffect  TransitionEffect
	isGenerating      bool
	showSpeakerNotes  bool

	detailedLog bool
	logger      func(string)

	subscribers map[int]func(DeckChange, DeckSnapshot)
	nextSubID   int
}

// NewDeckStoreService creates an empty deck store
func NewDeckStoreService(logger func(string)) *DeckStoreService {
	return &DeckStoreService{
		slides:            []Slide{},
		currentSlideIndex: -1,
		theme:             DefaultTheme(),
		transitionEffect:  TransitionFade,
		showSpeakerNotes:  true,
		logger:            logger,
		subscribers:       make(map[int]func(DeckChange, DeckSnapshot)),
	}
}

// Name returns the service name
func (ds *DeckStoreService) Name() string {
	return "deck_store"
}

// Initialize prepares the deck store
func (ds *DeckStoreService) Initialize(ctx context.Context) error {
	ds.log("[DECK] Store initialized")
	return nil
}

// Shutdown releases deck store resources (no-op, state is in-memory)
func (ds *DeckStoreService) Shutdown() error {
	return nil
}

// SetDetailedLog toggles slide-level mutation logging
func (ds *DeckStoreService) SetDetailedLog(enabled bool) {
	ds.mu.Lock()
	ds.detailedLog = enabled
	ds.mu.Unlock()
}

// Subscribe registers a change callback and returns an unsubscribe function.
// Callbacks run outside the store lock, after the mutation is committed.
func (ds *DeckStoreService) Subscribe(fn func(DeckChange, DeckSnapshot)) func() {
	ds.mu.Lock()
	id := ds.nextSubID
	ds.nextSubID++
	ds.subscribers[id] = fn
	ds.mu.Unlock()

	return func() {
		ds.mu.Lock()
		delete(ds.subscribers, id)
		ds.mu.Unlock()
	}
}

// notify fans a committed change out to all subscribers
func (ds *DeckStoreService) notify(change DeckChange, snap DeckSnapshot) {
	ds.mu.RLock()
	subs := make([]func(DeckChange, DeckSnapshot), 0, len(ds.subscribers))
	for _, fn := range ds.subscribers {
		subs = append(subs, fn)
	}
	ds.mu.RUnlock()

	for _, fn := range subs {
		fn(change, snap)
	}
}

// normalizeSlide enforces slide invariants on data entering the store.
// Content must never be nil; an unknown layout falls back to default.
func normalizeSlide(s Slide) Slide {
	out := s.Clone()
	if out.Content == nil {
		out.Content = []string{}
	}
	if out.Layout != "" && !IsValidSlideLayout(out.Layout) {
		out.Layout = LayoutDefault
	}
	return out
}

// clampIndexLocked keeps the active index inside [0, len-1], or -1 for an
// empty deck. Caller must hold the write lock.
func (ds *DeckStoreService) clampIndexLocked() {
	n := len(ds.slides)
	if n == 0 {
		ds.currentSlideIndex = -1
		return
	}
	if ds.currentSlideIndex < 0 {
		ds.currentSlideIndex = 0
	}
	if ds.currentSlideIndex > n-1 {
		ds.currentSlideIndex = n - 1
	}
}

// snapshotLocked builds a deep-copied snapshot. Caller must hold a lock.
func (ds *DeckStoreService) snapshotLocked() DeckSnapshot {
	return DeckSnapshot{
		Slides:            CloneSlides(ds.slides),
		CurrentSlideIndex: ds.currentSlideIndex,
		Theme:             ds.theme,
		TransitionEffect:  ds.transitionEffect,
		IsGenerating:      ds.isGenerating,
		ShowSpeakerNotes:  ds.showSpeakerNotes,
	}
}

// Snapshot returns a deep copy of the current deck state
func (ds *DeckStoreService) Snapshot() DeckSnapshot {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.snapshotLocked()
}

// Slides returns a deep copy of the slide list
func (ds *DeckStoreService) Slides() []Slide {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return CloneSlides(ds.slides)
}

// SlideCount returns the number of slides in the deck
func (ds *DeckStoreService) SlideCount() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return len(ds.slides)
}

// SlideByID returns a copy of the slide with the given id
func (ds *DeckStoreService) SlideByID(id int) (Slide, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	for _, s := range ds.slides {
		if s.ID == id {
			return s.Clone(), true
		}
	}
	return Slide{}, false
}

// CurrentSlideIndex returns the active slide index, -1 for an empty deck
func (ds *DeckStoreService) CurrentSlideIndex() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.currentSlideIndex
}

// CurrentSlide returns a copy of the active slide
func (ds *DeckStoreService) CurrentSlide() (Slide, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	if ds.currentSlideIndex < 0 || ds.currentSlideIndex >= len(ds.slides) {
		return Slide{}, false
	}
	return ds.slides[ds.currentSlideIndex].Clone(), true
}

// CurrentTheme returns the active theme
func (ds *DeckStoreService) CurrentTheme() Theme {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.theme
}

// GetTransitionEffect returns the active transition effect
func (ds *DeckStoreService) GetTransitionEffect() TransitionEffect {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.transitionEffect
}

// IsGenerating reports whether a generation run is in flight
func (ds *DeckStoreService) IsGenerating() bool {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.isGenerating
}

// ShowSpeakerNotes reports whether speaker notes are visible
func (ds *DeckStoreService) ShowSpeakerNotes() bool {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.showSpeakerNotes
}

// NextSlideID returns the next free slide id: one past the highest id in the
// deck, never below 1. Removed ids are not reused.
func (ds *DeckStoreService) NextSlideID() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	max := 0
	for _, s := range ds.slides {
		if s.ID > max {
			max = s.ID
		}
	}
	return max + 1
}

// SetSlides replaces the whole deck atomically. The index is clamped into the
// new range; positioning it (usually to 0) is the caller's job.
func (ds *DeckStoreService) SetSlides(slides []Slide) {
	ds.mu.Lock()
	normalized := make([]Slide, 0, len(slides))
	for _, s := range slides {
		normalized = append(normalized, normalizeSlide(s))
	}
	ds.slides = normalized
	ds.clampIndexLocked()
	snap := ds.snapshotLocked()
	ds.mu.Unlock()

	ds.logf("[DECK] SetSlides: %d slides", len(snap.Slides))
	ds.notify(DeckChange{Kind: "slides"}, snap)
}

// AddSlide appends a slide. The caller pre-assigns a unique id (NextSlideID);
// duplicate ids are a caller error and are not de-duplicated here.
func (ds *DeckStoreService) AddSlide(slide Slide) {
	ds.mu.Lock()
	ds.slides = append(ds.slides, normalizeSlide(slide))
	ds.clampIndexLocked()
	snap := ds.snapshotLocked()
	detailed := ds.detailedLog
	ds.mu.Unlock()

	if detailed {
		ds.logf("[DECK] AddSlide: id=%d type=%s title=%q", slide.ID, slide.Type, slide.Title)
	} else {
		ds.logf("[DECK] AddSlide: id=%d", slide.ID)
	}
	ds.notify(DeckChange{Kind: "slides", SlideID: slide.ID}, snap)
}

// UpdateSlide merges the patch into the slide with the given id. Missing ids
// are a no-op; the id itself is never changed. Returns whether a slide matched.
func (ds *DeckStoreService) UpdateSlide(id int, patch SlidePatch) bool {
	ds.mu.Lock()
	found := false
	for i, s := range ds.slides {
		if s.ID == id {
			merged := patch.ApplyTo(s)
			merged.ID = s.ID
			ds.slides[i] = normalizeSlide(merged)
			found = true
			break
		}
	}
	if !found {
		ds.mu.Unlock()
		ds.logf("[DECK] UpdateSlide: id=%d not found, ignored", id)
		return false
	}
	snap := ds.snapshotLocked()
	detailed := ds.detailedLog
	ds.mu.Unlock()

	if detailed {
		ds.logf("[DECK] UpdateSlide: id=%d fields=[%s]", id, strings.Join(patchFields(patch), " "))
	} else {
		ds.logf("[DECK] UpdateSlide: id=%d", id)
	}
	ds.notify(DeckChange{Kind: "slide", SlideID: id}, snap)
	return true
}

// patchFields names the fields a patch carries, for detailed logging
func patchFields(p SlidePatch) []string {
	fields := make([]string, 0, 9)
	if p.Type != nil {
		fields = append(fields, "type")
	}
	if p.Layout != nil {
		fields = append(fields, "layout")
	}
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Content != nil {
		fields = append(fields, "content")
	}
	if p.ScriptSegment != nil {
		fields = append(fields, "scriptSegment")
	}
	if p.SpeakerNotes != nil {
		fields = append(fields, "speakerNotes")
	}
	if p.ImageKeyword != nil {
		fields = append(fields, "imageKeyword")
	}
	if p.GeneratedImageURL != nil {
		fields = append(fields, "generatedImageUrl")
	}
	if p.IsGeneratingImage != nil {
		fields = append(fields, "isGeneratingImage")
	}
	return fields
}

// RemoveSlide deletes the slide with the given id. Missing ids are a no-op.
// Surviving slides keep their ids; the active index is clamped so it stays
// valid, following the same slide when one before it is removed.
func (ds *DeckStoreService) RemoveSlide(id int) bool {
	ds.mu.Lock()
	pos := -1
	for i, s := range ds.slides {
		if s.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		ds.mu.Unlock()
		ds.logf("[DECK] RemoveSlide: id=%d not found, ignored", id)
		return false
	}

	ds.slides = append(ds.slides[:pos], ds.slides[pos+1:]...)
	if pos < ds.currentSlideIndex {
		ds.currentSlideIndex--
	}
	ds.clampIndexLocked()
	snap := ds.snapshotLocked()
	ds.mu.Unlock()

	ds.logf("[DECK] RemoveSlide: id=%d (%d slides remain)", id, len(snap.Slides))
	ds.notify(DeckChange{Kind: "slides", SlideID: id}, snap)
	return true
}

// ReorderSlides moves the slide at fromIndex to toIndex, shifting the slides
// between them. Equal or out-of-range indices are a no-op. Slide ids are
// unchanged and the selection follows the slide it was on.
func (ds *DeckStoreService) ReorderSlides(fromIndex, toIndex int) bool {
	ds.mu.Lock()
	n := len(ds.slides)
	if fromIndex == toIndex || fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		ds.mu.Unlock()
		if fromIndex != toIndex {
			ds.logf("[DECK] ReorderSlides: invalid move %d -> %d (len=%d), ignored", fromIndex, toIndex, n)
		}
		return false
	}

	selectedID := 0
	if ds.currentSlideIndex >= 0 && ds.currentSlideIndex < n {
		selectedID = ds.slides[ds.currentSlideIndex].ID
	}

	moved := ds.slides[fromIndex]
	rest := append(ds.slides[:fromIndex:fromIndex], ds.slides[fromIndex+1:]...)
	slides := make([]Slide, 0, n)
	slides = append(slides, rest[:toIndex]...)
	slides = append(slides, moved)
	slides = append(slides, rest[toIndex:]...)
	ds.slides = slides

	// Keep the same slide selected after the move
	if selectedID != 0 {
		for i, s := range ds.slides {
			if s.ID == selectedID {
				ds.currentSlideIndex = i
				break
			}
		}
	}
	ds.clampIndexLocked()
	snap := ds.snapshotLocked()
	ds.mu.Unlock()

	ds.logf("[DECK] ReorderSlides: %d -> %d", fromIndex, toIndex)
	ds.notify(DeckChange{Kind: "order"}, snap)
	return true
}

// SetCurrentSlideIndex moves the active index, clamped into the valid range
func (ds *DeckStoreService) SetCurrentSlideIndex(i int) {
	ds.mu.Lock()
	ds.currentSlideIndex = i
	ds.clampIndexLocked()
	snap := ds.snapshotLocked()
	ds.mu.Unlock()

	ds.notify(DeckChange{Kind: "index"}, snap)
}

// SetCurrentTheme replaces the deck-wide theme
func (ds *DeckStoreService) SetCurrentTheme(theme Theme) {
	ds.mu.Lock()
	ds.theme = theme
	snap := ds.snapshotLocked()
	ds.mu.Unlock()

	ds.logf("[DECK] SetCurrentTheme: %s", theme.ID)
	ds.notify(DeckChange{Kind: "theme"}, snap)
}

// SetTransitionEffect replaces the deck-wide transition. Unknown effects are
// ignored with a warning so a bad frontend value cannot corrupt the deck.
func (ds *DeckStoreService) SetTransitionEffect(effect TransitionEffect) {
	if !IsValidTransitionEffect(effect) {
		ds.logf("[DECK] SetTransitionEffect: unknown effect %q, ignored", effect)
		return
	}
	ds.mu.Lock()
	ds.transitionEffect = effect
	snap := ds.snapshotLocked()
	ds.mu.Unlock()

	ds.logf("[DECK] SetTransitionEffect: %s", effect)
	ds.notify(DeckChange{Kind: "transition"}, snap)
}

// SetShowSpeakerNotes toggles speaker notes visibility
func (ds *DeckStoreService) SetShowSpeakerNotes(visible bool) {
	ds.mu.Lock()
	ds.showSpeakerNotes = visible
	snap := ds.snapshotLocked()
	ds.mu.Unlock()

	ds.notify(DeckChange{Kind: "notes"}, snap)
}

// SetIsGenerating toggles the generation busy flag
func (ds *DeckStoreService) SetIsGenerating(generating bool) {
	ds.mu.Lock()
	ds.isGenerating = generating
	snap := ds.snapshotLocked()
	ds.mu.Unlock()

	ds.notify(DeckChange{Kind: "generating"}, snap)
}

// ClearSlides empties the deck and resets the index. Theme, transition and
// visibility settings survive a clear.
func (ds *DeckStoreService) ClearSlides() {
	ds.mu.Lock()
	ds.slides = []Slide{}
	ds.currentSlideIndex = -1
	snap := ds.snapshotLocked()
	ds.mu.Unlock()

	ds.log("[DECK] ClearSlides")
	ds.notify(DeckChange{Kind: "slides"}, snap)
}

// log writes through the injected logger
func (ds *DeckStoreService) log(msg string) {
	if ds.logger != nil {
		ds.logger(msg)
	}
}

// logf writes a formatted message through the injected logger
func (ds *DeckStoreService) logf(format string, args ...interface{}) {
	if ds.logger != nil {
		ds.logger(fmt.Sprintf(format, args...))
	}
}
