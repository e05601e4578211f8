package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// ValidUpdateKinds defines the list of valid deck update kinds
var ValidUpdateKinds = map[string]bool{
	"slides":     true, // full slide list replaced
	"slide":      true, // single slide changed
	"order":      true, // slides reordered
	"index":      true, // current slide index moved
	"theme":      true, // deck theme changed
	"transition": true, // transition effect changed
	"notes":      true, // speaker notes visibility toggled
	"generating": true, // generation busy flag toggled
	"image":      true, // slide image state changed
}

// Error code constants for common error types
// These codes help categorize errors and provide appropriate recovery suggestions
const (
	// Generation errors
	ErrorCodeGenerationFailed  = "GENERATION_FAILED"  // AI slide generation failed
	ErrorCodeGenerationTimeout = "GENERATION_TIMEOUT" // AI slide generation timed out

	// Import/export errors
	ErrorCodeImportInvalid     = "IMPORT_INVALID"     // Deck file failed validation
	ErrorCodeImportUnsupported = "IMPORT_UNSUPPORTED" // File format not supported
	ErrorCodeExportFailed      = "EXPORT_FAILED"      // Export encoding or write failed

	// Deck errors
	ErrorCodeDeckEmpty       = "DECK_EMPTY"         // Operation needs a non-empty deck
	ErrorCodeSlideNotFound   = "SLIDE_NOT_FOUND"    // Referenced slide id does not exist
	ErrorCodeIndexOutOfRange = "INDEX_OUT_OF_RANGE" // Requested slide number out of range

	// Connection errors
	ErrorCodeConnectionFailed  = "CONNECTION_FAILED"  // Connection to service failed
	ErrorCodeConnectionTimeout = "CONNECTION_TIMEOUT" // Connection timed out

	// Capability errors
	ErrorCodeVoiceUnavailable = "VOICE_UNAVAILABLE" // Speech recognition not available

	// Resource errors
	ErrorCodeResourceBusy  = "RESOURCE_BUSY"  // Another operation is in flight
	ErrorCodeFileNotFound  = "FILE_NOT_FOUND" // Requested file does not exist
)

// ErrorInfo contains detailed error information with recovery suggestions
type ErrorInfo struct {
	Code                string   `json:"code"`                // Error code
	Message             string   `json:"message"`             // User-friendly error message
	Details             string   `json:"details"`             // Technical details (optional)
	RecoverySuggestions []string `json:"recoverySuggestions"` // List of recovery suggestions
	Timestamp           int64    `json:"timestamp"`           // Error timestamp
}

// getRecoverySuggestions returns recovery suggestions based on error code
func getRecoverySuggestions(errorCode string) []string {
	suggestions := make([]string, 0)

	switch errorCode {
	case ErrorCodeGenerationFailed:
		suggestions = append(suggestions,
			"Check that your script blocks contain enough text",
			"The deterministic generator was used as a fallback",
			"Verify your AI provider settings and try again")

	case ErrorCodeGenerationTimeout:
		suggestions = append(suggestions,
			"The AI provider took too long to respond",
			"Check your network connection",
			"Try again in a moment, or shorten the script")

	case ErrorCodeImportInvalid:
		suggestions = append(suggestions,
			"The file must contain a \"slides\" array",
			"Export a deck from this app to see the expected shape",
			"Your current deck was left unchanged")

	case ErrorCodeImportUnsupported:
		suggestions = append(suggestions,
			"Supported formats: .json, .pptx, .deckpack",
			"Convert the file to one of the supported formats")

	case ErrorCodeExportFailed:
		suggestions = append(suggestions,
			"Check that the destination folder is writable",
			"Make sure the file is not open in another program",
			"Try exporting to a different location")

	case ErrorCodeDeckEmpty:
		suggestions = append(suggestions,
			"Generate or import slides first",
			"Use the script editor to create slide content")

	case ErrorCodeSlideNotFound:
		suggestions = append(suggestions,
			"The slide may have been removed",
			"Refresh the deck view and try again")

	case ErrorCodeIndexOutOfRange:
		suggestions = append(suggestions,
			"Say or enter a slide number within the deck",
			"Check the slide count in the thumbnail rail")

	case ErrorCodeConnectionFailed:
		suggestions = append(suggestions,
			"Check your network connection",
			"Verify the service URL in settings",
			"Try again later")

	case ErrorCodeConnectionTimeout:
		suggestions = append(suggestions,
			"The connection timed out, check your network",
			"The service may be busy, try again later")

	case ErrorCodeVoiceUnavailable:
		suggestions = append(suggestions,
			"Speech recognition is not available on this system",
			"Keyboard and pointer navigation remain fully functional",
			"Check microphone permissions in system settings")

	case ErrorCodeResourceBusy:
		suggestions = append(suggestions,
			"Another operation is still running",
			"Wait for it to finish and try again")

	case ErrorCodeFileNotFound:
		suggestions = append(suggestions,
			"Check that the file path is correct",
			"The file may have been moved or deleted")

	default:
		suggestions = append(suggestions,
			"Try again in a moment",
			"If the problem persists, check the log file")
	}

	return suggestions
}

// getUserFriendlyMessage returns a user-friendly message based on error code
func getUserFriendlyMessage(errorCode, originalMessage string) string {
	// Prefer the original message when the caller already localized it
	if originalMessage != "" {
		return originalMessage
	}

	switch errorCode {
	case ErrorCodeGenerationFailed:
		return "Slide generation failed"
	case ErrorCodeGenerationTimeout:
		return "Slide generation timed out"
	case ErrorCodeImportInvalid:
		return "The deck file is invalid"
	case ErrorCodeImportUnsupported:
		return "Unsupported file format"
	case ErrorCodeExportFailed:
		return "Export failed"
	case ErrorCodeDeckEmpty:
		return "The deck is empty"
	case ErrorCodeSlideNotFound:
		return "Slide not found"
	case ErrorCodeIndexOutOfRange:
		return "Slide number out of range"
	case ErrorCodeConnectionFailed:
		return "Connection failed, check your network"
	case ErrorCodeConnectionTimeout:
		return "Connection timed out"
	case ErrorCodeVoiceUnavailable:
		return "Voice control is unavailable"
	case ErrorCodeResourceBusy:
		return "Another operation is in progress"
	case ErrorCodeFileNotFound:
		return "File not found"
	default:
		return "An unknown error occurred"
	}
}

// createErrorInfo creates a detailed ErrorInfo with recovery suggestions
func createErrorInfo(errorCode, errorMessage, details string) ErrorInfo {
	return ErrorInfo{
		Code:                errorCode,
		Message:             getUserFriendlyMessage(errorCode, errorMessage),
		Details:             details,
		RecoverySuggestions: getRecoverySuggestions(errorCode),
		Timestamp:           time.Now().UnixMilli(),
	}
}

// ItemValidationResult represents the result of deck update item validation
type ItemValidationResult struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// DeckUpdateItem represents a single deck state change pushed to the frontend
type DeckUpdateItem struct {
	ID       string                 `json:"id"`
	Kind     string                 `json:"kind"` // slides, slide, order, index, theme, transition, notes, generating, image
	Data     interface{}            `json:"data"`
	Metadata map[string]interface{} `json:"metadata"`
	Source   string                 `json:"source"` // store, library, import
}

// DeckUpdateBatch represents a batch of deck updates flushed as one event
type DeckUpdateBatch struct {
	DeckID     string           `json:"deckId"`
	RequestID  string           `json:"requestId"`
	Items      []DeckUpdateItem `json:"items"`
	IsComplete bool             `json:"isComplete"`
	Timestamp  int64            `json:"timestamp"`
}

// EventAggregator coalesces rapid deck mutations into batched frontend events.
// Drag-reorder and WYSIWYG editing produce bursts of store changes; batching
// them under a short flush delay keeps the frontend from re-rendering per write.
type EventAggregator struct {
	ctx          context.Context
	pendingItems map[string]*pendingBatch // deckId -> pending batch
	mutex        sync.Mutex
	flushTimers  map[string]*time.Timer // deckId -> flush timer
	flushDelay   time.Duration          // delay before flushing (default 50ms)
	logger       func(string)           // optional logger function for debug logging
	emit         func(event string, payload interface{})
}

// pendingBatch holds items waiting to be flushed
type pendingBatch struct {
	deckID    string
	requestID string
	items     []DeckUpdateItem
}

// NewEventAggregator creates a new EventAggregator emitting through the Wails runtime
func NewEventAggregator(ctx context.Context) *EventAggregator {
	ea := &EventAggregator{
		ctx:          ctx,
		pendingItems: make(map[string]*pendingBatch),
		flushTimers:  make(map[string]*time.Timer),
		flushDelay:   50 * time.Millisecond,
		logger:       nil,
	}
	ea.emit = func(event string, payload interface{}) {
		runtime.EventsEmit(ea.ctx, event, payload)
	}
	return ea
}

// SetLogger sets the logger function for debug logging
func (ea *EventAggregator) SetLogger(logger func(string)) {
	ea.logger = logger
}

// SetEmitter replaces the event sink. Tests use this to capture payloads
// without a running frontend.
func (ea *EventAggregator) SetEmitter(emit func(event string, payload interface{})) {
	if emit != nil {
		ea.emit = emit
	}
}

// log writes a debug message if logger is set
func (ea *EventAggregator) log(message string) {
	if ea.logger != nil {
		ea.logger(message)
	}
}

// logf writes a formatted debug message if logger is set
func (ea *EventAggregator) logf(format string, args ...interface{}) {
	if ea.logger != nil {
		ea.logger(fmt.Sprintf(format, args...))
	}
}

// generateItemID generates a unique ID for an item
func generateItemID() string {
	return fmt.Sprintf("%s_%d", time.Now().Format("20060102150405.000000"), generateItemSeq())
}

// itemSeqCounter is an atomic counter for generating unique item IDs
var itemSeqCounter uint64

// generateItemSeq returns a monotonically increasing sequence number
func generateItemSeq() uint64 {
	return atomic.AddUint64(&itemSeqCounter, 1)
}

// IsValidUpdateKind checks if the given kind is a valid deck update kind
func IsValidUpdateKind(kind string) bool {
	return ValidUpdateKinds[kind]
}

// GetValidUpdateKinds returns a slice of all valid deck update kinds
func GetValidUpdateKinds() []string {
	kinds := make([]string, 0, len(ValidUpdateKinds))
	for k := range ValidUpdateKinds {
		kinds = append(kinds, k)
	}
	return kinds
}

// ValidateItem validates a deck update item and returns validation result
// This method can be used to check items before adding them
func (ea *EventAggregator) ValidateItem(deckID, requestID string, kind string, data interface{}) ItemValidationResult {
	result := ItemValidationResult{
		Valid:    true,
		Warnings: []string{},
		Errors:   []string{},
	}

	// Validate deckID (required)
	if deckID == "" {
		result.Warnings = append(result.Warnings, "deckID is empty")
		ea.log("[EVENT-AGG] Warning: deckID is empty for item validation")
	}

	// Validate update kind
	if kind == "" {
		result.Warnings = append(result.Warnings, "update kind is empty")
		ea.log("[EVENT-AGG] Warning: update kind is empty")
	} else if !IsValidUpdateKind(kind) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid update kind: %s (valid kinds: slides, slide, order, index, theme, transition, notes, generating, image)", kind))
		ea.logf("[EVENT-AGG] Warning: invalid update kind '%s'", kind)
	}

	// Validate data (required)
	if data == nil {
		result.Warnings = append(result.Warnings, "data is nil")
		ea.log("[EVENT-AGG] Warning: data is nil for item validation")
	}

	// Optional field warnings (not blocking)
	if requestID == "" {
		ea.log("[EVENT-AGG] Info: requestID is empty (optional field)")
	}

	return result
}

// validateAndLog validates item data and logs warnings, returns true if validation passes (graceful degradation)
func (ea *EventAggregator) validateAndLog(deckID, requestID string, kind string, data interface{}) bool {
	result := ea.ValidateItem(deckID, requestID, kind, data)

	// Log all warnings
	for _, warning := range result.Warnings {
		ea.logf("[EVENT-AGG] Validation warning: %s", warning)
	}

	// Always return true for graceful degradation - we log warnings but don't block
	return true
}

// AddItem adds an item to the pending batch for aggregation
func (ea *EventAggregator) AddItem(deckID, requestID string, kind string, data interface{}, metadata map[string]interface{}) {
	ea.mutex.Lock()
	defer ea.mutex.Unlock()

	ea.logf("[EVENT-AGG] AddItem: kind=%s, deckID=%s, requestID=%s", kind, deckID, requestID)

	// Validate the item data (graceful degradation - log warnings but don't block)
	ea.validateAndLog(deckID, requestID, kind, data)

	// Create item
	item := DeckUpdateItem{
		ID:       generateItemID(),
		Kind:     kind,
		Data:     data,
		Metadata: metadata,
		Source:   "store",
	}

	// Get or create pending batch
	batch, exists := ea.pendingItems[deckID]
	if !exists {
		batch = &pendingBatch{
			deckID:    deckID,
			requestID: requestID,
			items:     []DeckUpdateItem{},
		}
		ea.pendingItems[deckID] = batch
	}

	// Update requestID if provided
	if requestID != "" {
		batch.requestID = requestID
	}

	// Add item to batch
	batch.items = append(batch.items, item)

	// Reset flush timer
	if timer, exists := ea.flushTimers[deckID]; exists {
		timer.Stop()
	}
	ea.flushTimers[deckID] = time.AfterFunc(ea.flushDelay, func() {
		ea.logf("[EVENT-AGG] Timer flush triggered for deckID=%s", deckID)
		ea.flush(deckID, false)
	})
}

// AddSlides adds a full slide list replacement
func (ea *EventAggregator) AddSlides(deckID, requestID string, slides []Slide) {
	ea.AddItem(deckID, requestID, "slides", slides, map[string]interface{}{
		"deckId":    deckID,
		"count":     len(slides),
		"timestamp": time.Now().UnixMilli(),
	})
}

// AddSlide adds a single slide change
func (ea *EventAggregator) AddSlide(deckID, requestID string, slide Slide) {
	ea.AddItem(deckID, requestID, "slide", slide, map[string]interface{}{
		"deckId":    deckID,
		"slideId":   slide.ID,
		"timestamp": time.Now().UnixMilli(),
	})
}

// AddOrder adds a reorder notification carrying the new id sequence
func (ea *EventAggregator) AddOrder(deckID, requestID string, slideIDs []int) {
	ea.AddItem(deckID, requestID, "order", slideIDs, map[string]interface{}{
		"deckId":    deckID,
		"timestamp": time.Now().UnixMilli(),
	})
}

// AddIndex adds a current slide index change
func (ea *EventAggregator) AddIndex(deckID, requestID string, index int) {
	ea.AddItem(deckID, requestID, "index", index, map[string]interface{}{
		"deckId":    deckID,
		"timestamp": time.Now().UnixMilli(),
	})
}

// AddTheme adds a theme change
func (ea *EventAggregator) AddTheme(deckID, requestID string, theme Theme) {
	ea.AddItem(deckID, requestID, "theme", theme, map[string]interface{}{
		"deckId":    deckID,
		"themeId":   theme.ID,
		"timestamp": time.Now().UnixMilli(),
	})
}

// AddTransition adds a transition effect change
func (ea *EventAggregator) AddTransition(deckID, requestID string, effect TransitionEffect) {
	ea.AddItem(deckID, requestID, "transition", string(effect), map[string]interface{}{
		"deckId":    deckID,
		"timestamp": time.Now().UnixMilli(),
	})
}

// AddNotesVisibility adds a speaker notes visibility change
func (ea *EventAggregator) AddNotesVisibility(deckID, requestID string, visible bool) {
	ea.AddItem(deckID, requestID, "notes", visible, map[string]interface{}{
		"deckId":    deckID,
		"timestamp": time.Now().UnixMilli(),
	})
}

// AddGenerating adds a generation busy flag change
func (ea *EventAggregator) AddGenerating(deckID, requestID string, generating bool) {
	ea.AddItem(deckID, requestID, "generating", generating, map[string]interface{}{
		"deckId":    deckID,
		"timestamp": time.Now().UnixMilli(),
	})
}

// AddImageState adds a per-slide image generation state change
func (ea *EventAggregator) AddImageState(deckID, requestID string, slideID int, generating bool, imageURL string) {
	ea.AddItem(deckID, requestID, "image", map[string]interface{}{
		"slideId":    slideID,
		"generating": generating,
		"imageUrl":   imageURL,
	}, map[string]interface{}{
		"deckId":    deckID,
		"slideId":   slideID,
		"timestamp": time.Now().UnixMilli(),
	})
}

// GetPendingItemCount returns the number of items waiting to be flushed for a deck
func (ea *EventAggregator) GetPendingItemCount(deckID string) int {
	ea.mutex.Lock()
	defer ea.mutex.Unlock()
	if batch, exists := ea.pendingItems[deckID]; exists {
		return len(batch.items)
	}
	return 0
}

// FlushNow immediately flushes all pending items for a deck
// Returns the items that were flushed (for persistence)
func (ea *EventAggregator) FlushNow(deckID string, isComplete bool) []DeckUpdateItem {
	ea.logf("[EVENT-AGG] FlushNow called: deckID=%s, isComplete=%v", deckID, isComplete)

	ea.mutex.Lock()

	// Stop any pending timer
	if timer, exists := ea.flushTimers[deckID]; exists {
		timer.Stop()
		delete(ea.flushTimers, deckID)
	}

	ea.mutex.Unlock()

	// Flush with complete flag and return items
	return ea.flushAndReturn(deckID, isComplete)
}

// flushAndReturn sends the pending batch as an event and returns the items
func (ea *EventAggregator) flushAndReturn(deckID string, isComplete bool) []DeckUpdateItem {
	ea.mutex.Lock()

	batch, exists := ea.pendingItems[deckID]
	if !exists || len(batch.items) == 0 {
		ea.mutex.Unlock()
		ea.logf("[EVENT-AGG] Flush skipped: no pending items for deckID=%s", deckID)
		return nil
	}

	// Copy items for return
	items := make([]DeckUpdateItem, len(batch.items))
	copy(items, batch.items)

	ea.logf("[EVENT-AGG] Flushing %d items for deckID=%s, requestID=%s, isComplete=%v",
		len(items), batch.deckID, batch.requestID, isComplete)

	// Create the event payload
	payload := DeckUpdateBatch{
		DeckID:     batch.deckID,
		RequestID:  batch.requestID,
		Items:      batch.items,
		IsComplete: isComplete,
		Timestamp:  time.Now().UnixMilli(),
	}

	// Clear the pending batch
	delete(ea.pendingItems, deckID)
	delete(ea.flushTimers, deckID)

	ea.mutex.Unlock()

	// Emit the event
	ea.emit("deck-update", payload)

	ea.logf("[EVENT-AGG] Emitted 'deck-update' event with %d items", len(items))

	return items
}

// flush sends the pending batch as an event (used by timer)
func (ea *EventAggregator) flush(deckID string, isComplete bool) {
	ea.flushAndReturn(deckID, isComplete)
}

// Clear clears all pending items for a deck
func (ea *EventAggregator) Clear(deckID string) {
	ea.mutex.Lock()

	if timer, exists := ea.flushTimers[deckID]; exists {
		timer.Stop()
		delete(ea.flushTimers, deckID)
	}
	delete(ea.pendingItems, deckID)

	ea.mutex.Unlock()

	// Emit clear event
	ea.emit("deck-clear", map[string]interface{}{
		"deckId": deckID,
	})
}

// SetLoading emits a loading state event
func (ea *EventAggregator) SetLoading(deckID string, loading bool, requestID string) {
	ea.emit("deck-loading", map[string]interface{}{
		"deckId":    deckID,
		"loading":   loading,
		"requestId": requestID,
	})
}

// EmitError emits an error event with detailed error information and recovery suggestions
func (ea *EventAggregator) EmitError(deckID, requestID, errorMessage string) {
	ea.EmitErrorWithCode(deckID, requestID, ErrorCodeGenerationFailed, errorMessage)
}

// EmitErrorWithCode emits an error event with a specific error code and recovery suggestions
func (ea *EventAggregator) EmitErrorWithCode(deckID, requestID, errorCode, errorMessage string) {
	ea.EmitErrorWithDetails(deckID, requestID, errorCode, errorMessage, "")
}

// EmitErrorWithDetails emits an error event with detailed information including technical details
func (ea *EventAggregator) EmitErrorWithDetails(deckID, requestID, errorCode, errorMessage, details string) {
	// Create detailed error info with recovery suggestions
	errorInfo := createErrorInfo(errorCode, errorMessage, details)

	ea.logf("[EVENT-AGG] Emitting error: code=%s, message=%s, suggestions=%d",
		errorCode, errorInfo.Message, len(errorInfo.RecoverySuggestions))

	ea.emit("deck-error", map[string]interface{}{
		"deckId":              deckID,
		"requestId":           requestID,
		"code":                errorInfo.Code,
		"error":               errorInfo.Message,
		"message":             errorInfo.Message, // Also include message for compatibility
		"details":             errorInfo.Details,
		"recoverySuggestions": errorInfo.RecoverySuggestions,
		"timestamp":           errorInfo.Timestamp,
	})
}

// EmitTimeout emits a timeout error event with recovery suggestions
func (ea *EventAggregator) EmitTimeout(deckID, requestID string, duration time.Duration) {
	ea.EmitErrorWithDetails(deckID, requestID, ErrorCodeGenerationTimeout,
		fmt.Sprintf("Slide generation timed out after %v", duration.Round(time.Second)),
		fmt.Sprintf("AI generation exceeded %v", duration.Round(time.Second)))
}
