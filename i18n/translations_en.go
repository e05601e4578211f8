package i18n

var englishTranslations = map[string]string{
	// Deck store / controller
	"deck.empty":                "The deck is empty",
	"deck.slide_not_found":      "Slide %d not found",
	"deck.index_out_of_range":   "Slide number %d is out of range (1-%d)",
	"deck.reorder_out_of_range": "Cannot move slide: position out of range",
	"deck.externally_driven":    "Navigation is controlled by the synced rehearsal surface",
	"deck.generation_in_flight": "Slide generation is already running",
	"deck.export_in_flight":     "An export is already running",
	"deck.import_in_flight":     "An import is already running",
	"deck.cleared":              "Deck cleared",
	"deck.autosave_failed":      "Autosave failed: %s",

	// Generation
	"gen.no_blocks":       "The script has no usable sections",
	"gen.ai_failed":       "AI generation failed, built the deck locally instead",
	"gen.model_not_ready": "AI model is not configured; check Settings",
	"gen.success":         "Generated %d slides",

	// Import
	"import.open_title":        "Import deck",
	"import.success":           "Imported %d slides",
	"import.cancelled":         "Import cancelled",
	"import.invalid_json":      "Invalid deck file: %s",
	"import.pack_failed":       "Could not read the deck pack: %s",
	"import.pack_bad_password": "Wrong password for this deck pack",

	// Export
	"export.save_title":   "Export deck",
	"export.success":      "Exported to %s",
	"export.cancelled":    "Export cancelled",
	"export.failed":       "Export failed: %s",
	"export.no_slides":    "Nothing to export: the deck is empty",
	"export.ppt_failed":   "PowerPoint export failed: %s",
	"export.pdf_failed":   "PDF export failed: %s",
	"export.excel_failed": "Outline export failed: %s",
	"export.word_failed":  "Script export failed: %s",
	"export.pack_failed":  "Deck pack export failed: %s",

	// Voice navigation
	"voice.enabled":  "Voice navigation enabled",
	"voice.disabled": "Voice navigation disabled",

	// Image sourcing
	"image.failed":   "Could not find an image for %q",
	"image.disabled": "Image sourcing is disabled in Settings",
	"image.no_hint":  "Slide has no image keyword",
	"image.resolved": "Image ready for slide %d",

	// Metric sources
	"metric.not_found":          "Metric source not found",
	"metric.connection_failed":  "Could not connect to the metric source: %s",
	"metric.query_failed":       "Metric query failed: %s",
	"metric.refresh_success":    "Slide updated from %s",
	"metric.not_big_number":     "Only big-number slides can be refreshed from a metric source",
	"metric.added":              "Metric source %q added",
	"metric.removed":            "Metric source removed",
	"metric.unsupported_engine": "Unsupported metric engine %q",

	// Deck library
	"library.saved":       "Deck saved to library",
	"library.save_failed": "Could not save the deck: %s",
	"library.load_failed": "Could not load the deck: %s",
	"library.not_found":   "Deck not found in library",
	"library.deleted":     "Deck removed from library",

	// Content sources
	"source.fetch_failed":   "Could not fetch the page",
	"source.nothing_usable": "The source contains no usable outline",
	"source.read_failed":    "Could not read the source file",

	// Config
	"config.save_success": "Settings saved",
	"config.save_failed":  "Failed to save settings: %s",

	// Connection test
	"llm.test_success": "Connection OK",
	"llm.test_failed":  "Connection failed: %s",
}
