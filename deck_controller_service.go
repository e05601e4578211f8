package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hotabics/pitchtimerai-sub001/config"
	"github.com/hotabics/pitchtimerai-sub001/i18n"
)

// DeckMode is the coarse UI state the controller reports to the frontend.
// Fullscreen is orthogonal and tracked separately.
type DeckMode string

const (
	ModeEmpty          DeckMode = "empty"
	ModeGenerating     DeckMode = "generating"
	ModeViewing        DeckMode = "viewing"
	ModeEditingSidebar DeckMode = "editing-sidebar"
	ModeEditingWysiwyg DeckMode = "editing-wysiwyg"
)

// DeckControllerService drives presentation flow: navigation, autoplay,
// editor modes, drag reorder, voice commands and the externally-driven sync
// mode. All deck mutations go through the store; the controller holds only
// flow state.
type DeckControllerService struct {
	mu     sync.Mutex
	store  *DeckStoreService
	cfg    ConfigProvider
	logger func(string)

	editorMode DeckMode // "" when no editor is open
	fullscreen bool

	autoplayOn       bool
	autoplayInterval time.Duration
	autoplayStop     chan struct{}

	externallyDriven bool

	dragFrom      int // -1 when no drag is active
	dropIndicator int

	voice  *VoiceNavigator
	drafts *DraftManager
}

// NewDeckControllerService wires a controller to the deck store.
func NewDeckControllerService(store *DeckStoreService, cfg ConfigProvider, logger func(string)) *DeckControllerService {
	dc := &DeckControllerService{
		store:            store,
		cfg:              cfg,
		logger:           logger,
		autoplayInterval: config.DefaultAutoplayIntervalMs * time.Millisecond,
		dragFrom:         -1,
		dropIndicator:    -1,
		drafts:           NewDraftManager(store),
	}
	dc.voice = NewVoiceNavigator(config.DefaultVoiceCooldownMs, dc.dispatchVoiceCommand)
	return dc
}

// Name returns the service name
func (dc *DeckControllerService) Name() string {
	return "deck_controller"
}

// Initialize loads timing settings from config
func (dc *DeckControllerService) Initialize(ctx context.Context) error {
	if dc.cfg != nil {
		if cfg, err := dc.cfg.GetConfig(); err == nil {
			dc.ApplyConfig(cfg)
		}
	}
	dc.log("[CTRL] Controller initialized")
	return nil
}

// Shutdown stops autoplay and voice listening
func (dc *DeckControllerService) Shutdown() error {
	dc.StopAutoplay()
	dc.voice.SetEnabled(false)
	return nil
}

// ApplyConfig picks up autoplay and voice timing changes at runtime.
func (dc *DeckControllerService) ApplyConfig(cfg config.Config) {
	dc.mu.Lock()
	if cfg.Autoplay.IntervalMs >= 1000 {
		dc.autoplayInterval = time.Duration(cfg.Autoplay.IntervalMs) * time.Millisecond
	}
	restart := dc.autoplayOn
	dc.mu.Unlock()

	dc.voice.SetCooldown(cfg.Voice.CooldownMs)

	// Restart a running autoplay loop so the new interval takes effect
	if restart {
		dc.StopAutoplay()
		_ = dc.StartAutoplay()
	}
}

// Drafts exposes the edit-buffer manager for the editor surfaces.
func (dc *DeckControllerService) Drafts() *DraftManager {
	return dc.drafts
}

// Voice exposes the voice navigator for transcript push and toggling.
func (dc *DeckControllerService) Voice() *VoiceNavigator {
	return dc.voice
}

// Mode derives the current UI mode. Generation and emptiness outrank an open
// editor; an editor can only be observed from a populated, idle deck.
func (dc *DeckControllerService) Mode() DeckMode {
	if dc.store.IsGenerating() {
		return ModeGenerating
	}
	if dc.store.SlideCount() == 0 {
		return ModeEmpty
	}
	dc.mu.Lock()
	defer dc.mu.Unlock()
	if dc.editorMode != "" {
		return dc.editorMode
	}
	return ModeViewing
}

// IsFullscreen reports the fullscreen flag, orthogonal to Mode.
func (dc *DeckControllerService) IsFullscreen() bool {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.fullscreen
}

// SetFullscreen toggles the fullscreen flag.
func (dc *DeckControllerService) SetFullscreen(on bool) {
	dc.mu.Lock()
	dc.fullscreen = on
	dc.mu.Unlock()
}

// OpenSidebarEditor enters the sidebar editing mode.
func (dc *DeckControllerService) OpenSidebarEditor() error {
	return dc.openEditor(ModeEditingSidebar)
}

// OpenWysiwygEditor enters on-canvas editing and opens a draft for the
// current slide.
func (dc *DeckControllerService) OpenWysiwygEditor() error {
	if err := dc.openEditor(ModeEditingWysiwyg); err != nil {
		return err
	}
	if slide, ok := dc.store.CurrentSlide(); ok {
		dc.drafts.BeginDraft(slide.ID)
	}
	return nil
}

func (dc *DeckControllerService) openEditor(mode DeckMode) error {
	if dc.store.SlideCount() == 0 {
		return errors.New(i18n.T("deck.empty"))
	}
	dc.mu.Lock()
	dc.editorMode = mode
	dc.mu.Unlock()
	dc.logf("[CTRL] Editor opened: %s", mode)
	return nil
}

// CloseEditor leaves editing mode, committing any open draft first so a
// blur-close never loses typed text.
func (dc *DeckControllerService) CloseEditor() {
	dc.drafts.CommitDraft()
	dc.mu.Lock()
	dc.editorMode = ""
	dc.mu.Unlock()
	dc.log("[CTRL] Editor closed")
}

// manualNavAllowed rejects user navigation while an external surface owns the
// slide position.
func (dc *DeckControllerService) manualNavAllowed() error {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	if dc.externallyDriven {
		return errors.New(i18n.T("deck.externally_driven"))
	}
	return nil
}

// NextSlide advances one slide, saturating at the last slide.
func (dc *DeckControllerService) NextSlide() error {
	if err := dc.manualNavAllowed(); err != nil {
		return err
	}
	n := dc.store.SlideCount()
	if n == 0 {
		return errors.New(i18n.T("deck.empty"))
	}
	i := dc.store.CurrentSlideIndex()
	if i < n-1 {
		dc.store.SetCurrentSlideIndex(i + 1)
	}
	return nil
}

// PreviousSlide moves one slide back, saturating at the first slide.
func (dc *DeckControllerService) PreviousSlide() error {
	if err := dc.manualNavAllowed(); err != nil {
		return err
	}
	if dc.store.SlideCount() == 0 {
		return errors.New(i18n.T("deck.empty"))
	}
	i := dc.store.CurrentSlideIndex()
	if i > 0 {
		dc.store.SetCurrentSlideIndex(i - 1)
	}
	return nil
}

// FirstSlide jumps to the first slide.
func (dc *DeckControllerService) FirstSlide() error {
	if err := dc.manualNavAllowed(); err != nil {
		return err
	}
	if dc.store.SlideCount() == 0 {
		return errors.New(i18n.T("deck.empty"))
	}
	dc.store.SetCurrentSlideIndex(0)
	return nil
}

// LastSlide jumps to the last slide.
func (dc *DeckControllerService) LastSlide() error {
	if err := dc.manualNavAllowed(); err != nil {
		return err
	}
	n := dc.store.SlideCount()
	if n == 0 {
		return errors.New(i18n.T("deck.empty"))
	}
	dc.store.SetCurrentSlideIndex(n - 1)
	return nil
}

// GotoSlide jumps to a 1-based slide number. Out-of-range numbers fail and
// leave the index untouched.
func (dc *DeckControllerService) GotoSlide(number int) error {
	if err := dc.manualNavAllowed(); err != nil {
		return err
	}
	n := dc.store.SlideCount()
	if n == 0 {
		return errors.New(i18n.T("deck.empty"))
	}
	if number < 1 || number > n {
		return errors.New(i18n.T("deck.index_out_of_range", number, n))
	}
	dc.store.SetCurrentSlideIndex(number - 1)
	return nil
}

// StartAutoplay begins the auto-advance loop. Unlike manual navigation,
// autoplay wraps from the last slide back to the first.
func (dc *DeckControllerService) StartAutoplay() error {
	if dc.store.SlideCount() == 0 {
		return errors.New(i18n.T("deck.empty"))
	}
	dc.mu.Lock()
	if dc.externallyDriven {
		dc.mu.Unlock()
		return errors.New(i18n.T("deck.externally_driven"))
	}
	if dc.autoplayOn {
		dc.mu.Unlock()
		return nil
	}
	dc.autoplayOn = true
	stop := make(chan struct{})
	dc.autoplayStop = stop
	interval := dc.autoplayInterval
	dc.mu.Unlock()

	go dc.autoplayLoop(interval, stop)
	dc.logf("[CTRL] Autoplay started (interval %v)", interval)
	return nil
}

func (dc *DeckControllerService) autoplayLoop(interval time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			dc.advanceWrapping()
		}
	}
}

// advanceWrapping moves to the next slide, wrapping at the end of the deck.
func (dc *DeckControllerService) advanceWrapping() {
	n := dc.store.SlideCount()
	if n == 0 {
		return
	}
	i := dc.store.CurrentSlideIndex()
	dc.store.SetCurrentSlideIndex((i + 1) % n)
}

// StopAutoplay ends the auto-advance loop. Safe to call when not running.
func (dc *DeckControllerService) StopAutoplay() {
	dc.mu.Lock()
	if !dc.autoplayOn {
		dc.mu.Unlock()
		return
	}
	dc.autoplayOn = false
	close(dc.autoplayStop)
	dc.autoplayStop = nil
	dc.mu.Unlock()
	dc.log("[CTRL] Autoplay stopped")
}

// IsAutoplayRunning reports whether the auto-advance loop is active.
func (dc *DeckControllerService) IsAutoplayRunning() bool {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.autoplayOn
}

// SetExternallyDriven hands slide position control to a synced external
// surface (or takes it back). Entering the mode stops autoplay; manual and
// voice navigation are rejected until it ends.
func (dc *DeckControllerService) SetExternallyDriven(on bool) {
	if on {
		dc.StopAutoplay()
	}
	dc.mu.Lock()
	dc.externallyDriven = on
	dc.mu.Unlock()
	dc.logf("[CTRL] Externally driven: %v", on)
}

// IsExternallyDriven reports whether an external surface owns navigation.
func (dc *DeckControllerService) IsExternallyDriven() bool {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.externallyDriven
}

// SyncProgress maps rehearsal progress (0..1) onto a slide index while the
// deck is externally driven. Out-of-range fractions are clamped, not errors.
func (dc *DeckControllerService) SyncProgress(fraction float64) error {
	dc.mu.Lock()
	driven := dc.externallyDriven
	dc.mu.Unlock()
	if !driven {
		return errors.New(i18n.T("deck.externally_driven"))
	}
	n := dc.store.SlideCount()
	if n == 0 {
		return errors.New(i18n.T("deck.empty"))
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	i := int(fraction * float64(n))
	if i > n-1 {
		i = n - 1
	}
	dc.store.SetCurrentSlideIndex(i)
	return nil
}

// BeginDrag starts a thumbnail drag from the given position.
func (dc *DeckControllerService) BeginDrag(fromIndex int) error {
	n := dc.store.SlideCount()
	if fromIndex < 0 || fromIndex >= n {
		return errors.New(i18n.T("deck.reorder_out_of_range"))
	}
	dc.mu.Lock()
	dc.dragFrom = fromIndex
	dc.dropIndicator = fromIndex
	dc.mu.Unlock()
	return nil
}

// DragOver moves the drop indicator. The deck itself is untouched until Drop.
func (dc *DeckControllerService) DragOver(overIndex int) {
	dc.mu.Lock()
	if dc.dragFrom >= 0 {
		dc.dropIndicator = overIndex
	}
	dc.mu.Unlock()
}

// DropIndicator returns the current indicator position, -1 outside a drag.
func (dc *DeckControllerService) DropIndicator() int {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	if dc.dragFrom < 0 {
		return -1
	}
	return dc.dropIndicator
}

// Drop completes the drag with exactly one reorder, or none when the slide
// was dropped where it started. Returns whether the deck changed.
func (dc *DeckControllerService) Drop(toIndex int) bool {
	dc.mu.Lock()
	from := dc.dragFrom
	dc.dragFrom = -1
	dc.dropIndicator = -1
	dc.mu.Unlock()

	if from < 0 || from == toIndex {
		return false
	}
	return dc.store.ReorderSlides(from, toIndex)
}

// CancelDrag abandons the drag, leaving the deck exactly as it was.
func (dc *DeckControllerService) CancelDrag() {
	dc.mu.Lock()
	dc.dragFrom = -1
	dc.dropIndicator = -1
	dc.mu.Unlock()
}

// dispatchVoiceCommand routes a recognized utterance to navigation. Errors
// (empty deck, out-of-range target, external drive) are logged, not surfaced;
// the speaker gets visual feedback from the deck not moving.
func (dc *DeckControllerService) dispatchVoiceCommand(cmd VoiceCommand) {
	var err error
	switch cmd.Action {
	case VoiceGoto:
		err = dc.GotoSlide(cmd.Target)
	case VoiceFirst:
		err = dc.FirstSlide()
	case VoiceLast:
		err = dc.LastSlide()
	case VoiceNext:
		err = dc.NextSlide()
	case VoicePrevious:
		err = dc.PreviousSlide()
	default:
		return
	}
	if err != nil {
		dc.logf("[CTRL] Voice command %s rejected: %v", cmd.Action, err)
	} else {
		dc.logf("[CTRL] Voice command %s applied", cmd.Action)
	}
}

// log writes through the injected logger
func (dc *DeckControllerService) log(msg string) {
	if dc.logger != nil {
		dc.logger(msg)
	}
}

// logf writes a formatted message through the injected logger
func (dc *DeckControllerService) logf(format string, args ...interface{}) {
	if dc.logger != nil {
		dc.logger(fmt.Sprintf(format, args...))
	}
}
