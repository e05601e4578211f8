package main

import "sync"

// SlideDraft is the in-progress edit buffer for one slide. Keystrokes land
// here, not in the store; the store sees a single patch on commit.
type SlideDraft struct {
	SlideID      int      `json:"slideId"`
	Title        string   `json:"title"`
	Content      []string `json:"content"`
	SpeakerNotes string   `json:"speakerNotes"`
}

// DraftManager owns the blur-commit editing cycle. At most one draft is open
// at a time; opening a draft for another slide discards the previous one.
type DraftManager struct {
	mu    sync.Mutex
	store *DeckStoreService

	draft    *SlideDraft
	original Slide // snapshot at BeginDraft, for change detection on commit
}

func NewDraftManager(store *DeckStoreService) *DraftManager {
	return &DraftManager{store: store}
}

// BeginDraft opens an edit buffer seeded from the slide's current state.
// Returns false when the slide does not exist.
func (dm *DraftManager) BeginDraft(slideID int) bool {
	slide, ok := dm.store.SlideByID(slideID)
	if !ok {
		return false
	}

	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.original = slide
	dm.draft = &SlideDraft{
		SlideID:      slideID,
		Title:        slide.Title,
		Content:      append([]string(nil), slide.Content...),
		SpeakerNotes: slide.SpeakerNotes,
	}
	return true
}

// ActiveDraft returns a copy of the open draft, or nil when none is open.
func (dm *DraftManager) ActiveDraft() *SlideDraft {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.draft == nil {
		return nil
	}
	c := *dm.draft
	c.Content = append([]string(nil), dm.draft.Content...)
	return &c
}

// UpdateDraftTitle buffers a title edit. No store write happens here.
func (dm *DraftManager) UpdateDraftTitle(title string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.draft != nil {
		dm.draft.Title = title
	}
}

// UpdateDraftContent buffers a content edit. No store write happens here.
func (dm *DraftManager) UpdateDraftContent(content []string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.draft != nil {
		dm.draft.Content = append([]string(nil), content...)
	}
}

// UpdateDraftNotes buffers a speaker-notes edit. No store write happens here.
func (dm *DraftManager) UpdateDraftNotes(notes string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if dm.draft != nil {
		dm.draft.SpeakerNotes = notes
	}
}

// CommitDraft closes the draft and writes the changed fields to the store as
// one patch. An unchanged draft writes nothing. Returns whether a store write
// happened.
func (dm *DraftManager) CommitDraft() bool {
	dm.mu.Lock()
	draft := dm.draft
	original := dm.original
	dm.draft = nil
	dm.mu.Unlock()

	if draft == nil {
		return false
	}

	patch := SlidePatch{}
	changed := false
	if draft.Title != original.Title {
		title := draft.Title
		patch.Title = &title
		changed = true
	}
	if !stringSlicesEqual(draft.Content, original.Content) {
		content := append([]string(nil), draft.Content...)
		patch.Content = &content
		changed = true
	}
	if draft.SpeakerNotes != original.SpeakerNotes {
		notes := draft.SpeakerNotes
		patch.SpeakerNotes = &notes
		changed = true
	}
	if !changed {
		return false
	}
	return dm.store.UpdateSlide(draft.SlideID, patch)
}

// DiscardDraft closes the draft without touching the store.
func (dm *DraftManager) DiscardDraft() {
	dm.mu.Lock()
	dm.draft = nil
	dm.mu.Unlock()
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
