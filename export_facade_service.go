package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/hotabics/pitchtimerai-sub001/export"
	"github.com/hotabics/pitchtimerai-sub001/i18n"
)

// ImportOutcome tells the frontend what happened to an import attempt.
// NeedsPassword means the chosen pack is encrypted; the frontend prompts and
// retries via ImportDeckPackWithPassword with the echoed FilePath.
type ImportOutcome struct {
	Imported      bool   `json:"imported"`
	NeedsPassword bool   `json:"needsPassword"`
	FilePath      string `json:"filePath"`
	SlideCount    int    `json:"slideCount"`
	DeckTitle     string `json:"deckTitle"`
}

// ExportFacadeService owns every deck export and import path: file dialogs,
// busy-flag guarding, document building, and applying validated imports to
// the store. Dialog functions are injectable so tests run headless.
type ExportFacadeService struct {
	ctx    context.Context
	store  *DeckStoreService
	cfg    ConfigProvider
	logger func(string)

	mu          sync.Mutex
	isExporting bool
	isImporting bool

	aggregator *EventAggregator
	deckID     string

	// saveDialog returns the chosen path, or "" when the user cancels.
	saveDialog func(defaultFilename, displayName, pattern string) (string, error)
	// openDialog returns the chosen path, or "" when the user cancels.
	openDialog func(displayName, pattern string) (string, error)
}

// NewExportFacadeService creates the facade bound to the store and config.
func NewExportFacadeService(store *DeckStoreService, cfg ConfigProvider, logger func(string)) *ExportFacadeService {
	e := &ExportFacadeService{
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
	e.saveDialog = e.wailsSaveDialog
	e.openDialog = e.wailsOpenDialog
	return e
}

// Name returns the service name
func (e *ExportFacadeService) Name() string {
	return "export"
}

// Initialize stores the Wails context used by the file dialogs.
func (e *ExportFacadeService) Initialize(ctx context.Context) error {
	e.ctx = ctx
	return nil
}

// Shutdown closes the export facade service
func (e *ExportFacadeService) Shutdown() error {
	return nil
}

// SetNotifier wires the frontend event sink for loading and error events.
func (e *ExportFacadeService) SetNotifier(aggregator *EventAggregator, deckID string) {
	e.mu.Lock()
	e.aggregator = aggregator
	e.deckID = deckID
	e.mu.Unlock()
}

func (e *ExportFacadeService) wailsSaveDialog(defaultFilename, displayName, pattern string) (string, error) {
	return runtime.SaveFileDialog(e.ctx, runtime.SaveDialogOptions{
		Title:           i18n.T("export.save_title"),
		DefaultFilename: defaultFilename,
		Filters:         []runtime.FileFilter{{DisplayName: displayName, Pattern: pattern}},
	})
}

func (e *ExportFacadeService) wailsOpenDialog(displayName, pattern string) (string, error) {
	return runtime.OpenFileDialog(e.ctx, runtime.OpenDialogOptions{
		Title:   i18n.T("import.open_title"),
		Filters: []runtime.FileFilter{{DisplayName: displayName, Pattern: pattern}},
	})
}

// Busy reports whether an export or import is currently running.
func (e *ExportFacadeService) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isExporting || e.isImporting
}

// beginExport claims the export busy flag.
func (e *ExportFacadeService) beginExport() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isExporting {
		return errors.New(i18n.T("deck.export_in_flight"))
	}
	e.isExporting = true
	return nil
}

func (e *ExportFacadeService) endExport() {
	e.mu.Lock()
	e.isExporting = false
	e.mu.Unlock()
}

// beginImport claims the import busy flag.
func (e *ExportFacadeService) beginImport() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.isImporting {
		return errors.New(i18n.T("deck.import_in_flight"))
	}
	e.isImporting = true
	return nil
}

func (e *ExportFacadeService) endImport() {
	e.mu.Lock()
	e.isImporting = false
	e.mu.Unlock()
}

// projectTitle returns the configured working title, or a placeholder.
func (e *ExportFacadeService) projectTitle() string {
	if cfg, err := e.cfg.GetConfig(); err == nil && strings.TrimSpace(cfg.ProjectTitle) != "" {
		return cfg.ProjectTitle
	}
	return "Untitled pitch"
}

// buildDocument projects the live deck into the export-facing document shape.
func (e *ExportFacadeService) buildDocument() (export.DeckDocument, error) {
	snap := e.store.Snapshot()
	if len(snap.Slides) == 0 {
		return export.DeckDocument{}, errors.New(i18n.T("export.no_slides"))
	}

	doc := export.DeckDocument{
		Title: e.projectTitle(),
		Theme: export.DeckTheme{
			Name:        snap.Theme.Name,
			Primary:     snap.Theme.Primary,
			Secondary:   snap.Theme.Secondary,
			Background:  snap.Theme.Background,
			Text:        snap.Theme.Text,
			Accent:      snap.Theme.Accent,
			HeadingFont: snap.Theme.HeadingFont,
			BodyFont:    snap.Theme.BodyFont,
		},
		Slides: make([]export.DeckSlide, len(snap.Slides)),
	}
	for i, s := range snap.Slides {
		ds := export.DeckSlide{
			Number:        i + 1,
			Type:          string(s.Type),
			Layout:        string(s.EffectiveLayout()),
			Title:         s.Title,
			Content:       s.Content,
			SpeakerNotes:  s.SpeakerNotes,
			ScriptSegment: s.ScriptSegment,
			ImageKeyword:  s.ImageKeyword,
		}
		// Only locally cached images can be embedded into documents
		if strings.HasPrefix(s.GeneratedImageURL, "data:") {
			ds.ImageDataURL = s.GeneratedImageURL
		}
		doc.Slides[i] = ds
	}
	return doc, nil
}

// runExport drives one dialog-pick-render-write export cycle.
func (e *ExportFacadeService) runExport(ext, displayName string, render func(export.DeckDocument) ([]byte, error), failKey string) error {
	if err := e.beginExport(); err != nil {
		return err
	}
	defer e.endExport()

	doc, err := e.buildDocument()
	if err != nil {
		return err
	}

	defaultName := SanitizeFileName(doc.Title) + "." + ext
	savePath, err := e.saveDialog(defaultName, displayName, "*."+ext)
	if err != nil || savePath == "" {
		e.logf("[EXPORT] %s", i18n.T("export.cancelled"))
		return nil
	}

	data, err := render(doc)
	if err != nil {
		e.logf("[EXPORT] %s render failed: %v", ext, err)
		e.notifyError(i18n.T(failKey, err.Error()))
		return fmt.Errorf("%s", i18n.T(failKey, err.Error()))
	}

	if err := os.WriteFile(savePath, data, 0644); err != nil {
		e.notifyError(i18n.T("export.failed", err.Error()))
		return fmt.Errorf("%s", i18n.T("export.failed", err.Error()))
	}

	e.logf("[EXPORT] %s", i18n.T("export.success", savePath))
	return nil
}

// ExportDeckJSON writes the canonical interchange JSON.
func (e *ExportFacadeService) ExportDeckJSON() error {
	return e.runExport("json", "Deck JSON", func(doc export.DeckDocument) ([]byte, error) {
		snap := e.store.Snapshot()
		return ExportToJSON(snap.Slides, snap.Theme, doc.Title), nil
	}, "export.failed")
}

// ExportDeckPPTX writes a themed PowerPoint rendition.
func (e *ExportFacadeService) ExportDeckPPTX() error {
	svc := export.NewPPTDeckService()
	return e.runExport("pptx", "PowerPoint Presentation", svc.ExportDeckToPPT, "export.ppt_failed")
}

// ExportDeckPDF writes the printable handout.
func (e *ExportFacadeService) ExportDeckPDF() error {
	svc := export.NewPDFHandoutService()
	return e.runExport("pdf", "PDF Handout", svc.ExportDeckToPDF, "export.pdf_failed")
}

// ExportDeckXLSX writes the outline worksheet.
func (e *ExportFacadeService) ExportDeckXLSX() error {
	svc := export.NewOutlineExcelService()
	return e.runExport("xlsx", "Excel Outline", svc.ExportDeckOutline, "export.excel_failed")
}

// ExportDeckDOCX writes the rehearsal script document.
func (e *ExportFacadeService) ExportDeckDOCX() error {
	svc := export.NewScriptWordService()
	return e.runExport("docx", "Word Script", svc.ExportDeckScript, "export.word_failed")
}

// ExportDeckPackFile writes the lossless .deckpack container, encrypted when
// password is non-empty.
func (e *ExportFacadeService) ExportDeckPackFile(password string) error {
	if err := e.beginExport(); err != nil {
		return err
	}
	defer e.endExport()

	snap := e.store.Snapshot()
	if len(snap.Slides) == 0 {
		return errors.New(i18n.T("export.no_slides"))
	}

	title := e.projectTitle()
	defaultName := SanitizeFileName(title) + ".deckpack"
	savePath, err := e.saveDialog(defaultName, "Deck Pack", "*.deckpack")
	if err != nil || savePath == "" {
		return nil
	}

	pack := BuildDeckPack(snap.Slides, snap.Theme, snap.TransitionEffect, snap.ShowSpeakerNotes, title, "")
	if err := ExportDeckPack(pack, savePath, password); err != nil {
		e.notifyError(i18n.T("export.pack_failed", err.Error()))
		return fmt.Errorf("%s", i18n.T("export.pack_failed", err.Error()))
	}

	e.logf("[EXPORT] %s", i18n.T("export.success", savePath))
	return nil
}

// BuildDesignPrompt renders the deck as a design-tool prompt in the given
// style. The frontend puts the text on the clipboard.
func (e *ExportFacadeService) BuildDesignPrompt(style string) (string, error) {
	snap := e.store.Snapshot()
	if len(snap.Slides) == 0 {
		return "", errors.New(i18n.T("export.no_slides"))
	}
	return ExportToPromptText(snap.Slides, e.projectTitle(), style), nil
}

// ImportDeck opens the file picker and imports the chosen deck file.
func (e *ExportFacadeService) ImportDeck() (*ImportOutcome, error) {
	if err := e.beginImport(); err != nil {
		return nil, err
	}
	defer e.endImport()

	path, err := e.openDialog("Deck Files (*.json, *.pptx, *.deckpack)", "*.json;*.pptx;*.deckpack")
	if err != nil || path == "" {
		e.logf("[IMPORT] %s", i18n.T("import.cancelled"))
		return &ImportOutcome{}, nil
	}
	return e.importPath(path, "")
}

// ImportDeckFile imports a deck file arriving outside the picker (drag-drop).
func (e *ExportFacadeService) ImportDeckFile(path string) (*ImportOutcome, error) {
	if err := e.beginImport(); err != nil {
		return nil, err
	}
	defer e.endImport()
	return e.importPath(path, "")
}

// ImportDeckPackWithPassword retries an encrypted pack with the password the
// user entered.
func (e *ExportFacadeService) ImportDeckPackWithPassword(path, password string) (*ImportOutcome, error) {
	if err := e.beginImport(); err != nil {
		return nil, err
	}
	defer e.endImport()
	return e.importPath(path, password)
}

// importPath parses and applies one deck file. The store is only touched
// after the whole file validated; any failure leaves the previous deck.
func (e *ExportFacadeService) importPath(path, password string) (*ImportOutcome, error) {
	var result *ImportResult
	var err error
	if password != "" || strings.HasSuffix(strings.ToLower(path), ".deckpack") {
		result, err = ImportDeckPack(path, password)
	} else {
		result, err = ImportDeckFromFile(path)
	}

	if errors.Is(err, ErrPackEncrypted) {
		return &ImportOutcome{NeedsPassword: true, FilePath: path}, nil
	}
	if errors.Is(err, ErrPackBadPassword) {
		return nil, errors.New(i18n.T("import.pack_bad_password"))
	}
	if err != nil {
		e.logf("[IMPORT] %s failed: %v", path, err)
		e.notifyImportError(err)
		return nil, err
	}

	e.applyImportResult(result)
	e.logf("[IMPORT] %s (%s)", i18n.T("import.success", len(result.Slides)), path)
	return &ImportOutcome{
		Imported:   true,
		FilePath:   path,
		SlideCount: len(result.Slides),
		DeckTitle:  result.DeckTitle,
	}, nil
}

// applyImportResult replaces the working deck with the validated import.
func (e *ExportFacadeService) applyImportResult(result *ImportResult) {
	e.store.SetSlides(result.Slides)
	if result.Theme != nil {
		e.store.SetCurrentTheme(*result.Theme)
	}
	if result.Transition != "" {
		e.store.SetTransitionEffect(result.Transition)
	}
	if result.ShowSpeakerNotes != nil {
		e.store.SetShowSpeakerNotes(*result.ShowSpeakerNotes)
	}
	e.store.SetCurrentSlideIndex(0)
}

func (e *ExportFacadeService) notifyError(msg string) {
	e.mu.Lock()
	agg, deckID := e.aggregator, e.deckID
	e.mu.Unlock()
	if agg != nil {
		agg.EmitErrorWithCode(deckID, "", ErrorCodeExportFailed, msg)
	}
}

func (e *ExportFacadeService) notifyImportError(err error) {
	e.mu.Lock()
	agg, deckID := e.aggregator, e.deckID
	e.mu.Unlock()
	if agg == nil {
		return
	}
	var ie *ImportError
	if errors.As(err, &ie) {
		agg.EmitErrorWithCode(deckID, "", ErrorCodeImportInvalid, i18n.T("import.invalid_json", err.Error()))
		return
	}
	agg.EmitErrorWithCode(deckID, "", ErrorCodeImportUnsupported, i18n.T("import.pack_failed", err.Error()))
}

// logf writes a formatted message through the injected logger
func (e *ExportFacadeService) logf(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger(fmt.Sprintf(format, args...))
	}
}
