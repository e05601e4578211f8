package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hotabics/pitchtimerai-sub001/config"
	"github.com/hotabics/pitchtimerai-sub001/i18n"
	"github.com/hotabics/pitchtimerai-sub001/logger"
)

// mainDeckID is the event-aggregator session for the working deck. There is
// one working deck per app instance.
const mainDeckID = "deck"

// aiGenerateTimeout bounds one AI slide-generation round trip.
const aiGenerateTimeout = 120 * time.Second

// App is the Wails-bound facade: it owns the service registry, wires the
// store to the frontend event stream, and exposes the command surface the
// frontend calls.
type App struct {
	ctx      context.Context
	registry *ServiceRegistry
	logger   *logger.Logger

	configService   *ConfigService
	store           *DeckStoreService
	controller      *DeckControllerService
	exportFacade    *ExportFacadeService
	library         *DeckLibraryService
	metricSources   *MetricSourceService
	imageService    *ImageService
	eventAggregator *EventAggregator

	llmMu      sync.Mutex
	llmService *LLMService

	unsubscribeStore func()
}

// NewApp creates a new App application struct
func NewApp() *App {
	l := logger.NewLogger()
	return &App{
		logger:        l,
		configService: NewConfigService(l.Log),
		store:         NewDeckStoreService(l.Log),
	}
}

// Log writes a log entry through the application logger
func (a *App) Log(message string) {
	a.logger.Log(message)
}

// dataDir resolves the deck data directory from config, with the platform
// storage dir as fallback.
func (a *App) dataDir(cfg config.Config) string {
	if cfg.DataDir != "" {
		return cfg.DataDir
	}
	dir, err := a.configService.GetStorageDir()
	if err != nil {
		return "."
	}
	return dir
}

// startup is called when the app starts.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	runSystray(ctx)

	a.registry = NewServiceRegistry(ctx, a.Log)

	cfg, err := a.configService.GetConfig()
	if err != nil {
		fmt.Printf("Error loading config on startup: %v\n", err)
		cfg = config.Config{}
		cfg.Validate()
	}

	i18n.SyncLanguageFromConfig(&cfg)

	dataDir := a.dataDir(cfg)
	_ = os.MkdirAll(dataDir, 0755)
	if err := a.logger.Init(filepath.Join(dataDir, "logs")); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
	}
	a.logger.SetMaxSizeMB(cfg.LogMaxSizeMB)
	a.Log("[STARTUP] PitchDeck starting")

	a.eventAggregator = NewEventAggregator(ctx)
	a.eventAggregator.SetLogger(a.Log)

	a.controller = NewDeckControllerService(a.store, a.configService, a.Log)
	a.exportFacade = NewExportFacadeService(a.store, a.configService, a.Log)
	a.exportFacade.SetNotifier(a.eventAggregator, mainDeckID)
	a.library = NewDeckLibraryService(dataDir, a.Log)
	a.metricSources = NewMetricSourceService(dataDir, a.store, a.Log)
	a.imageService = NewImageService(a.store, a.configService, a.Log)
	a.imageService.SetNotifier(a.eventAggregator, mainDeckID)
	a.llmService = NewLLMService(cfg, a.Log)

	for _, reg := range []struct {
		svc      Service
		critical bool
	}{
		{a.configService, true},
		{a.store, true},
		{a.controller, true},
		{a.exportFacade, false},
		{a.library, false},
		{a.metricSources, false},
		{a.imageService, false},
	} {
		var regErr error
		if reg.critical {
			regErr = a.registry.RegisterCritical(reg.svc)
		} else {
			regErr = a.registry.Register(reg.svc)
		}
		if regErr != nil {
			a.Log(fmt.Sprintf("[STARTUP] Register %s failed: %v", reg.svc.Name(), regErr))
		}
	}

	if err := a.registry.InitializeAll(); err != nil {
		a.Log(fmt.Sprintf("[STARTUP] Service initialization failed: %v", err))
	}

	a.store.SetDetailedLog(cfg.DetailedLog)
	a.unsubscribeStore = a.store.Subscribe(a.forwardDeckChange)
	a.configService.OnConfigChanged(a.onConfigChanged)

	a.restoreAutosave(cfg)
	a.Log("[STARTUP] PitchDeck ready")
}

// restoreAutosave brings back the autosaved working deck, if any.
func (a *App) restoreAutosave(cfg config.Config) {
	if !cfg.AutosaveEnabled || a.store.SlideCount() > 0 {
		return
	}
	result, err := a.library.LoadDeck(autosaveDeckID)
	if err != nil {
		return // nothing autosaved yet
	}
	a.applyGenerated(result.Slides)
	if result.Theme != nil {
		a.store.SetCurrentTheme(*result.Theme)
	}
	if result.Transition != "" {
		a.store.SetTransitionEffect(result.Transition)
	}
	if result.ShowSpeakerNotes != nil {
		a.store.SetShowSpeakerNotes(*result.ShowSpeakerNotes)
	}
	a.Log(fmt.Sprintf("[STARTUP] Restored autosaved deck (%d slides)", len(result.Slides)))
}

// onBeforeClose is called when the application is about to close
func (a *App) onBeforeClose(ctx context.Context) (prevent bool) {
	// Give an in-flight export or import a moment to finish the file write
	if a.exportFacade != nil && a.exportFacade.Busy() {
		a.Log("[CLOSE] Waiting for a running export/import before closing...")
		for i := 0; i < 10 && a.exportFacade.Busy(); i++ {
			time.Sleep(200 * time.Millisecond)
		}
	}
	return false
}

// shutdown is called when the application is closing to clean up resources
func (a *App) shutdown(ctx context.Context) {
	if cfg, err := a.configService.GetConfig(); err == nil && cfg.AutosaveEnabled {
		snap := a.store.Snapshot()
		if len(snap.Slides) > 0 {
			if err := a.library.SaveAutosave(snap, a.projectTitle(), ""); err != nil {
				a.Log(fmt.Sprintf("[SHUTDOWN] %s", i18n.T("deck.autosave_failed", err.Error())))
			}
		}
	}

	if a.unsubscribeStore != nil {
		a.unsubscribeStore()
	}
	if a.eventAggregator != nil {
		a.eventAggregator.Clear(mainDeckID)
	}
	if a.registry != nil {
		a.registry.ShutdownAll()
	}
	// Close logger last - other services may need to log during shutdown
	a.logger.Close()
}

// onConfigChanged reapplies settings that services consume live.
func (a *App) onConfigChanged(cfg config.Config) {
	i18n.SyncLanguageFromConfig(&cfg)
	a.logger.SetMaxSizeMB(cfg.LogMaxSizeMB)
	a.store.SetDetailedLog(cfg.DetailedLog)
	a.controller.ApplyConfig(cfg)

	a.llmMu.Lock()
	a.llmService = NewLLMService(cfg, a.Log)
	a.llmMu.Unlock()

	a.Log("[CONFIG] Configuration change applied")
}

// llm returns the current LLM client.
func (a *App) llm() *LLMService {
	a.llmMu.Lock()
	defer a.llmMu.Unlock()
	return a.llmService
}

// forwardDeckChange translates store notifications into frontend events.
func (a *App) forwardDeckChange(change DeckChange, snap DeckSnapshot) {
	if a.eventAggregator == nil {
		return
	}
	switch change.Kind {
	case "slides":
		a.eventAggregator.AddSlides(mainDeckID, "", snap.Slides)
	case "slide":
		for _, s := range snap.Slides {
			if s.ID == change.SlideID {
				a.eventAggregator.AddSlide(mainDeckID, "", s)
				break
			}
		}
	case "order":
		ids := make([]int, len(snap.Slides))
		for i, s := range snap.Slides {
			ids[i] = s.ID
		}
		a.eventAggregator.AddOrder(mainDeckID, "", ids)
	case "index":
		a.eventAggregator.AddIndex(mainDeckID, "", snap.CurrentSlideIndex)
	case "theme":
		a.eventAggregator.AddTheme(mainDeckID, "", snap.Theme)
	case "transition":
		a.eventAggregator.AddTransition(mainDeckID, "", snap.TransitionEffect)
	case "notes":
		a.eventAggregator.AddNotesVisibility(mainDeckID, "", snap.ShowSpeakerNotes)
	case "generating":
		a.eventAggregator.AddGenerating(mainDeckID, "", snap.IsGenerating)
	}
}

// projectTitle returns the configured working title.
func (a *App) projectTitle() string {
	cfg, err := a.configService.GetConfig()
	if err != nil || cfg.ProjectTitle == "" {
		return "Untitled pitch"
	}
	return cfg.ProjectTitle
}

// --- Configuration ---

// GetConfig returns the current configuration
func (a *App) GetConfig() (config.Config, error) {
	return a.configService.GetConfig()
}

// SaveConfig validates and persists the configuration
func (a *App) SaveConfig(cfg config.Config) error {
	if err := a.configService.SaveConfig(cfg); err != nil {
		a.Log("[CONFIG] " + i18n.T("config.save_failed", err.Error()))
		return err
	}
	a.Log("[CONFIG] " + i18n.T("config.save_success"))
	return nil
}

// TestLLMConnection checks the configured model endpoint with a short probe.
func (a *App) TestLLMConnection() ConnectionResult {
	ctx, cancel := context.WithTimeout(a.appContext(), 30*time.Second)
	defer cancel()
	return a.llm().TestConnection(ctx)
}

// appContext returns the Wails context, or Background before startup.
func (a *App) appContext() context.Context {
	if a.ctx != nil {
		return a.ctx
	}
	return context.Background()
}

// --- Deck state ---

// GetDeckSnapshot returns the full working-deck state.
func (a *App) GetDeckSnapshot() DeckSnapshot {
	return a.store.Snapshot()
}

// GetMode returns the controller's derived mode.
func (a *App) GetMode() string {
	return string(a.controller.Mode())
}

// ListThemes returns the built-in theme catalog.
func (a *App) ListThemes() []Theme {
	return Themes()
}

// SetTheme switches the deck to a catalog theme.
func (a *App) SetTheme(themeID string) error {
	theme, ok := ThemeByID(themeID)
	if !ok {
		return fmt.Errorf("unknown theme %q", themeID)
	}
	a.store.SetCurrentTheme(theme)
	return nil
}

// SetTransition switches the deck-wide transition effect.
func (a *App) SetTransition(effect string) error {
	e := TransitionEffect(effect)
	if !IsValidTransitionEffect(e) {
		return fmt.Errorf("unknown transition %q", effect)
	}
	a.store.SetTransitionEffect(e)
	return nil
}

// SetSpeakerNotesVisible toggles the notes panel.
func (a *App) SetSpeakerNotesVisible(visible bool) {
	a.store.SetShowSpeakerNotes(visible)
}

// RemoveSlide deletes a slide by id.
func (a *App) RemoveSlide(slideID int) error {
	if !a.store.RemoveSlide(slideID) {
		return errors.New(i18n.T("deck.slide_not_found", slideID))
	}
	return nil
}

// UpdateSlide applies a field patch to one slide.
func (a *App) UpdateSlide(slideID int, patch SlidePatch) error {
	if !a.store.UpdateSlide(slideID, patch) {
		return errors.New(i18n.T("deck.slide_not_found", slideID))
	}
	return nil
}

// ClearDeck empties the working deck.
func (a *App) ClearDeck() {
	a.store.ClearSlides()
	a.Log("[DECK] " + i18n.T("deck.cleared"))
}

// --- Generation ---

// generationAllowed rejects a second generation while one is in flight.
func (a *App) generationAllowed() error {
	if a.store.IsGenerating() {
		return errors.New(i18n.T("deck.generation_in_flight"))
	}
	return nil
}

// applyGenerated installs a freshly built deck and rewinds to the first slide.
func (a *App) applyGenerated(slides []Slide) {
	a.store.SetSlides(slides)
	a.store.SetCurrentSlideIndex(0)
}

// QuickGenerate builds the deck deterministically from pasted script text.
func (a *App) QuickGenerate(script string) error {
	if err := a.generationAllowed(); err != nil {
		return err
	}
	blocks := ParseScriptText(script)
	if len(blocks) == 0 {
		return errors.New(i18n.T("gen.no_blocks"))
	}
	slides := GenerateSlidesFromBlocks(blocks, a.projectTitle())
	a.applyGenerated(slides)
	a.Log(fmt.Sprintf("[GEN] %s", i18n.T("gen.success", len(slides))))
	return nil
}

// GenerateWithAI builds the deck through the chat model, falling back to the
// deterministic generator when the model fails. Runs async; progress arrives
// through deck events.
func (a *App) GenerateWithAI(script string) error {
	if err := a.generationAllowed(); err != nil {
		return err
	}
	blocks := ParseScriptText(script)
	if len(blocks) == 0 {
		return errors.New(i18n.T("gen.no_blocks"))
	}

	cfg, err := a.configService.GetConfig()
	if err != nil {
		return WrapError("app", "GenerateWithAI", err)
	}
	if cfg.APIKey == "" {
		return errors.New(i18n.T("gen.model_not_ready"))
	}

	a.store.SetIsGenerating(true)
	a.eventAggregator.SetLoading(mainDeckID, true, "")

	go func() {
		defer func() {
			a.store.SetIsGenerating(false)
			a.eventAggregator.SetLoading(mainDeckID, false, "")
		}()

		ctx, cancel := context.WithTimeout(context.Background(), aiGenerateTimeout)
		defer cancel()

		title := a.projectTitle()
		slides, genErr := a.generateAISlides(ctx, cfg, blocks, title)
		if genErr != nil {
			a.Log(fmt.Sprintf("[GEN] AI generation failed, using local generator: %v", genErr))
			slides = GenerateSlidesFromBlocks(blocks, title)
			a.eventAggregator.EmitErrorWithCode(mainDeckID, "", ErrorCodeGenerationFailed, i18n.T("gen.ai_failed"))
		}
		a.applyGenerated(slides)
		a.Log(fmt.Sprintf("[GEN] %s", i18n.T("gen.success", len(slides))))
	}()
	return nil
}

// generateAISlides runs one model round trip.
func (a *App) generateAISlides(ctx context.Context, cfg config.Config, blocks []ScriptBlock, title string) ([]Slide, error) {
	completer, err := NewChatCompleter(cfg, a.Log)
	if err != nil {
		return nil, err
	}
	gen := NewAISlideGenerator(completer, a.Log)
	return gen.GenerateAISlides(ctx, blocks, title)
}

// ImportScriptFromFile builds the deck from a script file (md/txt/csv/xlsx/xls).
func (a *App) ImportScriptFromFile(path string) error {
	if err := a.generationAllowed(); err != nil {
		return err
	}
	blocks, err := ReadScriptBlocksFromFile(path)
	if err != nil {
		return err
	}
	slides := GenerateSlidesFromBlocks(blocks, a.projectTitle())
	a.applyGenerated(slides)
	a.Log(fmt.Sprintf("[GEN] Built %d slides from %s", len(slides), filepath.Base(path)))
	return nil
}

// FetchOutlineFromURL builds the deck from a web page outline and returns the
// page title as a suggested project title.
func (a *App) FetchOutlineFromURL(pageURL string) (string, error) {
	if err := a.generationAllowed(); err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(a.appContext(), outlineFetchTimeout)
	defer cancel()

	result, err := FetchOutline(ctx, pageURL)
	if err != nil {
		return "", err
	}
	slides := GenerateSlidesFromBlocks(result.Blocks, a.projectTitle())
	a.applyGenerated(slides)
	a.Log(fmt.Sprintf("[GEN] Built %d slides from %s", len(slides), pageURL))
	return result.PageTitle, nil
}

// CoachSpeakerNotes asks the model for a speaker-note suggestion, degrading
// to a canned tip when the model is unavailable.
func (a *App) CoachSpeakerNotes(slideID int) (string, error) {
	slide, ok := a.store.SlideByID(slideID)
	if !ok {
		return "", errors.New(i18n.T("deck.slide_not_found", slideID))
	}

	ctx, cancel := context.WithTimeout(a.appContext(), 30*time.Second)
	defer cancel()

	suggestion, err := a.llm().SuggestSpeakerNotes(ctx, slide)
	if err != nil {
		a.Log(fmt.Sprintf("[GEN] Coaching fell back for slide %d: %v", slideID, err))
		return CoachingFallback(slideID), nil
	}
	return suggestion, nil
}

// --- Navigation & control ---

// NextSlide advances one slide, saturating at the end.
func (a *App) NextSlide() error { return a.controller.NextSlide() }

// PreviousSlide steps back one slide, saturating at the start.
func (a *App) PreviousSlide() error { return a.controller.PreviousSlide() }

// FirstSlide jumps to the first slide.
func (a *App) FirstSlide() error { return a.controller.FirstSlide() }

// LastSlide jumps to the last slide.
func (a *App) LastSlide() error { return a.controller.LastSlide() }

// GotoSlide jumps to a 1-based slide number.
func (a *App) GotoSlide(number int) error { return a.controller.GotoSlide(number) }

// StartAutoplay begins interval-based advancement.
func (a *App) StartAutoplay() error { return a.controller.StartAutoplay() }

// StopAutoplay halts interval-based advancement.
func (a *App) StopAutoplay() { a.controller.StopAutoplay() }

// SetFullscreen toggles the distraction-free presentation surface.
func (a *App) SetFullscreen(on bool) { a.controller.SetFullscreen(on) }

// SetExternallyDriven hands navigation to the synced rehearsal surface.
func (a *App) SetExternallyDriven(on bool) { a.controller.SetExternallyDriven(on) }

// SyncProgress derives the slide index from an external progress fraction.
func (a *App) SyncProgress(fraction float64) error { return a.controller.SyncProgress(fraction) }

// BeginDrag starts a slide drag from the given position.
func (a *App) BeginDrag(fromIndex int) error { return a.controller.BeginDrag(fromIndex) }

// DragOver moves the drop indicator.
func (a *App) DragOver(overIndex int) { a.controller.DragOver(overIndex) }

// Drop commits the drag as a reorder.
func (a *App) Drop(toIndex int) bool { return a.controller.Drop(toIndex) }

// CancelDrag abandons the drag with the deck unchanged.
func (a *App) CancelDrag() { a.controller.CancelDrag() }

// --- Editing ---

// OpenSidebarEditor enters the sidebar editing mode.
func (a *App) OpenSidebarEditor() error { return a.controller.OpenSidebarEditor() }

// OpenWysiwygEditor enters in-place editing and opens a draft for the
// current slide.
func (a *App) OpenWysiwygEditor() error { return a.controller.OpenWysiwygEditor() }

// CloseEditor leaves editing, committing any open draft.
func (a *App) CloseEditor() { a.controller.CloseEditor() }

// UpdateDraftTitle mutates the open draft's title.
func (a *App) UpdateDraftTitle(title string) { a.controller.Drafts().UpdateDraftTitle(title) }

// UpdateDraftContent mutates the open draft's content lines.
func (a *App) UpdateDraftContent(content []string) { a.controller.Drafts().UpdateDraftContent(content) }

// UpdateDraftNotes mutates the open draft's speaker notes.
func (a *App) UpdateDraftNotes(notes string) { a.controller.Drafts().UpdateDraftNotes(notes) }

// CommitDraft writes the open draft to the store as one patch.
func (a *App) CommitDraft() bool { return a.controller.Drafts().CommitDraft() }

// DiscardDraft abandons the open draft.
func (a *App) DiscardDraft() { a.controller.Drafts().DiscardDraft() }

// --- Voice navigation ---

// EnableVoiceNav turns on voice command dispatch.
func (a *App) EnableVoiceNav() {
	a.controller.Voice().SetEnabled(true)
	a.Log("[VOICE] " + i18n.T("voice.enabled"))
}

// DisableVoiceNav turns off voice command dispatch.
func (a *App) DisableVoiceNav() {
	a.controller.Voice().SetEnabled(false)
	a.Log("[VOICE] " + i18n.T("voice.disabled"))
}

// IsVoiceNavEnabled reports the voice dispatch state.
func (a *App) IsVoiceNavEnabled() bool { return a.controller.Voice().Enabled() }

// PushVoiceTranscript feeds one recognition result from the frontend speech
// engine; final transcripts may fire a navigation command.
func (a *App) PushVoiceTranscript(text string, final bool) {
	a.controller.Voice().HandleUtterance(text, final)
}

// --- Rendering ---

// RenderedSlide pairs a render tree with the deck transition hint.
type RenderedSlide struct {
	Node       *RenderNode    `json:"node"`
	Transition TransitionSpec `json:"transition"`
}

// RenderSlideAt renders the slide at a 0-based index.
func (a *App) RenderSlideAt(index int, thumbnail bool) (*RenderedSlide, error) {
	snap := a.store.Snapshot()
	if index < 0 || index >= len(snap.Slides) {
		return nil, errors.New(i18n.T("deck.index_out_of_range", index+1, len(snap.Slides)))
	}
	node, err := RenderSlide(snap.Slides[index], snap.Theme, thumbnail)
	if err != nil {
		return nil, err
	}
	return &RenderedSlide{Node: node, Transition: SpecForTransition(snap.TransitionEffect)}, nil
}

// RenderCurrentSlide renders the active slide.
func (a *App) RenderCurrentSlide(thumbnail bool) (*RenderedSlide, error) {
	index := a.store.CurrentSlideIndex()
	if index < 0 {
		return nil, errors.New(i18n.T("deck.empty"))
	}
	return a.RenderSlideAt(index, thumbnail)
}

// --- Export & import ---

// ExportDeckJSON exports the interchange JSON via a save dialog.
func (a *App) ExportDeckJSON() error { return a.exportFacade.ExportDeckJSON() }

// ExportDeckPPTX exports the PowerPoint rendition via a save dialog.
func (a *App) ExportDeckPPTX() error { return a.exportFacade.ExportDeckPPTX() }

// ExportDeckPDF exports the handout PDF via a save dialog.
func (a *App) ExportDeckPDF() error { return a.exportFacade.ExportDeckPDF() }

// ExportDeckXLSX exports the outline workbook via a save dialog.
func (a *App) ExportDeckXLSX() error { return a.exportFacade.ExportDeckXLSX() }

// ExportDeckDOCX exports the rehearsal script via a save dialog.
func (a *App) ExportDeckDOCX() error { return a.exportFacade.ExportDeckDOCX() }

// ExportDeckPack exports the lossless pack, optionally password protected.
func (a *App) ExportDeckPack(password string) error {
	return a.exportFacade.ExportDeckPackFile(password)
}

// BuildDesignPrompt renders the deck as a design-tool prompt.
func (a *App) BuildDesignPrompt(style string) (string, error) {
	return a.exportFacade.BuildDesignPrompt(style)
}

// ListPromptStyles returns the available design-prompt styles.
func (a *App) ListPromptStyles() []string { return PromptStyles() }

// ImportDeck imports a deck file chosen in the file picker.
func (a *App) ImportDeck() (*ImportOutcome, error) { return a.exportFacade.ImportDeck() }

// ImportDeckFile imports a deck file dropped onto the window.
func (a *App) ImportDeckFile(path string) (*ImportOutcome, error) {
	return a.exportFacade.ImportDeckFile(path)
}

// ImportDeckPackWithPassword retries an encrypted pack import.
func (a *App) ImportDeckPackWithPassword(path, password string) (*ImportOutcome, error) {
	return a.exportFacade.ImportDeckPackWithPassword(path, password)
}

// ProbeDeckPackFile inspects a pack before import so the frontend can show
// metadata and decide whether to ask for a password.
func (a *App) ProbeDeckPackFile(path string) (*DeckPackInfo, error) {
	return ProbeDeckPack(path)
}

// --- Deck library ---

// SaveDeckToLibrary stores the working deck under a new library id.
func (a *App) SaveDeckToLibrary(title string) (string, error) {
	if err := ValidateProjectTitle(title); err != nil {
		return "", err
	}
	if title == "" {
		title = a.projectTitle()
	}
	return a.library.SaveDeck(a.store.Snapshot(), title, "")
}

// ListLibraryDecks lists saved decks, newest first.
func (a *App) ListLibraryDecks(limit int) ([]DeckSummary, error) {
	return a.library.ListRecent(limit)
}

// LoadDeckFromLibrary replaces the working deck with a saved one.
func (a *App) LoadDeckFromLibrary(id string) error {
	result, err := a.library.LoadDeck(id)
	if err != nil {
		return err
	}
	a.applyGenerated(result.Slides)
	if result.Theme != nil {
		a.store.SetCurrentTheme(*result.Theme)
	}
	if result.Transition != "" {
		a.store.SetTransitionEffect(result.Transition)
	}
	if result.ShowSpeakerNotes != nil {
		a.store.SetShowSpeakerNotes(*result.ShowSpeakerNotes)
	}
	return nil
}

// DeleteLibraryDeck removes a saved deck.
func (a *App) DeleteLibraryDeck(id string) error {
	return a.library.DeleteDeck(id)
}

// --- Metric sources ---

// AddMetricSource registers a read-only SQL source for big-number slides.
func (a *App) AddMetricSource(name, engine, dsn, query string) (MetricSource, error) {
	return a.metricSources.AddSource(name, engine, dsn, query)
}

// ListMetricSources lists the registered metric sources.
func (a *App) ListMetricSources() []MetricSource {
	return a.metricSources.ListSources()
}

// RemoveMetricSource unregisters a metric source.
func (a *App) RemoveMetricSource(id string) error {
	return a.metricSources.RemoveSource(id)
}

// TestMetricSource verifies a metric source is reachable.
func (a *App) TestMetricSource(id string) error {
	return a.metricSources.TestSource(id)
}

// ListMetricTables lists user tables in a metric source.
func (a *App) ListMetricTables(id string) ([]string, error) {
	return a.metricSources.ListTables(id)
}

// RefreshSlideMetric updates a big-number slide from its metric source.
func (a *App) RefreshSlideMetric(sourceID string, slideID int) error {
	return a.metricSources.RefreshSlideMetric(a.appContext(), sourceID, slideID)
}

// --- Images ---

// ResolveSlideImage starts async image resolution for a slide's keyword.
func (a *App) ResolveSlideImage(slideID int) error {
	return a.imageService.ResolveSlideImage(slideID)
}
