package main

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"testing/quick"
	"time"
)

// capturedEvent is one event recorded by the test emitter.
type capturedEvent struct {
	name    string
	payload interface{}
}

// eventCapture records emitted events instead of pushing them to a frontend.
type eventCapture struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (c *eventCapture) emit(name string, payload interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, capturedEvent{name: name, payload: payload})
}

func (c *eventCapture) byName(name string) []capturedEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]capturedEvent, 0)
	for _, ev := range c.events {
		if ev.name == name {
			out = append(out, ev)
		}
	}
	return out
}

// newCapturedAggregator builds an aggregator whose events are recorded in memory.
func newCapturedAggregator() (*EventAggregator, *eventCapture) {
	capture := &eventCapture{}
	ea := NewEventAggregator(context.Background())
	ea.SetEmitter(capture.emit)
	return ea, capture
}

// TestEventAggregator_Property_BatchAggregationCompleteness tests that all items added are included in flushed batch
func TestEventAggregator_Property_BatchAggregationCompleteness(t *testing.T) {
	// Property: For any set of items added to EventAggregator, after FlushNow is called,
	// all items should be included in the sent batch without any loss.
	property := func(numItems uint8) bool {
		// Constrain numItems to reasonable range (1-50)
		count := int(numItems)%50 + 1

		aggregator, _ := newCapturedAggregator()
		deckID := "test-deck"
		requestID := "test-request"

		// Track added items
		addedItems := make([]string, 0, count)

		// Add items
		validKinds := []string{"slides", "slide", "order", "index", "theme", "transition", "notes", "generating", "image"}
		for i := 0; i < count; i++ {
			kind := validKinds[i%len(validKinds)]
			itemData := fmt.Sprintf("data-%d", i)
			addedItems = append(addedItems, itemData)

			aggregator.AddItem(deckID, requestID, kind, itemData, map[string]interface{}{
				"index": i,
			})
		}

		// Flush and get items
		flushedItems := aggregator.FlushNow(deckID, true)

		// Property 1: Number of flushed items should equal number of added items
		if len(flushedItems) != count {
			t.Logf("Expected %d items, got %d", count, len(flushedItems))
			return false
		}

		// Property 2: All added data should be present in flushed items
		flushedDataSet := make(map[string]bool)
		for _, item := range flushedItems {
			if data, ok := item.Data.(string); ok {
				flushedDataSet[data] = true
			}
		}

		for _, addedData := range addedItems {
			if !flushedDataSet[addedData] {
				t.Logf("Added item '%s' not found in flushed items", addedData)
				return false
			}
		}

		return true
	}

	config := &quick.Config{
		MaxCount: 100,
	}

	if err := quick.Check(property, config); err != nil {
		t.Errorf("Property test failed: %v", err)
	}
}

// TestEventAggregator_Property_NoItemLoss tests that no items are lost during aggregation
func TestEventAggregator_Property_NoItemLoss(t *testing.T) {
	// Property: Items added to EventAggregator should never be lost
	property := func(seed uint32) bool {
		aggregator, _ := newCapturedAggregator()
		deckID := fmt.Sprintf("deck-%d", seed%100)
		requestID := fmt.Sprintf("request-%d", seed)

		// Generate random number of items (1-30)
		numItems := int(seed%30) + 1

		// Add items with unique identifiers
		expectedIDs := make(map[string]bool)
		for i := 0; i < numItems; i++ {
			itemID := fmt.Sprintf("item-%d-%d", seed, i)
			expectedIDs[itemID] = true

			validKinds := GetValidUpdateKinds()
			kind := validKinds[i%len(validKinds)]
			aggregator.AddItem(deckID, requestID, kind, itemID, nil)
		}

		// Verify pending count before flush
		pendingCount := aggregator.GetPendingItemCount(deckID)
		if pendingCount != numItems {
			t.Logf("Expected %d pending items, got %d", numItems, pendingCount)
			return false
		}

		// Flush
		flushedItems := aggregator.FlushNow(deckID, true)

		// Property: All expected items should be in flushed items
		for _, item := range flushedItems {
			if data, ok := item.Data.(string); ok {
				delete(expectedIDs, data)
			}
		}

		// Property: No items should be missing
		if len(expectedIDs) > 0 {
			t.Logf("Missing items after flush: %v", expectedIDs)
			return false
		}

		// Property: Pending count should be 0 after flush
		pendingAfterFlush := aggregator.GetPendingItemCount(deckID)
		if pendingAfterFlush != 0 {
			t.Logf("Expected 0 pending items after flush, got %d", pendingAfterFlush)
			return false
		}

		return true
	}

	config := &quick.Config{
		MaxCount: 100,
	}

	if err := quick.Check(property, config); err != nil {
		t.Errorf("Property test failed: %v", err)
	}
}

// TestEventAggregator_Property_MultipleDecksIsolation tests that items from different decks don't mix
func TestEventAggregator_Property_MultipleDecksIsolation(t *testing.T) {
	// Property: Items added to different decks should be isolated
	property := func(seed uint16) bool {
		aggregator, _ := newCapturedAggregator()

		// Create two different decks
		deck1 := fmt.Sprintf("deck-1-%d", seed)
		deck2 := fmt.Sprintf("deck-2-%d", seed)

		// Add items to deck 1
		numItems1 := int(seed%10) + 1
		for i := 0; i < numItems1; i++ {
			aggregator.AddItem(deck1, "req1", "slide", fmt.Sprintf("d1-item-%d", i), nil)
		}

		// Add items to deck 2
		numItems2 := int((seed/10)%10) + 1
		for i := 0; i < numItems2; i++ {
			aggregator.AddItem(deck2, "req2", "index", fmt.Sprintf("d2-item-%d", i), nil)
		}

		// Flush deck 1
		flushed1 := aggregator.FlushNow(deck1, true)

		// Property: Deck 1 should have exactly numItems1 items
		if len(flushed1) != numItems1 {
			t.Logf("Deck 1: expected %d items, got %d", numItems1, len(flushed1))
			return false
		}

		// Property: All deck 1 items should have d1 prefix
		for _, item := range flushed1 {
			if data, ok := item.Data.(string); ok {
				if len(data) < 2 || data[:2] != "d1" {
					t.Logf("Deck 1 contains non-d1 item: %s", data)
					return false
				}
			}
		}

		// Flush deck 2
		flushed2 := aggregator.FlushNow(deck2, true)

		// Property: Deck 2 should have exactly numItems2 items
		if len(flushed2) != numItems2 {
			t.Logf("Deck 2: expected %d items, got %d", numItems2, len(flushed2))
			return false
		}

		// Property: All deck 2 items should have d2 prefix
		for _, item := range flushed2 {
			if data, ok := item.Data.(string); ok {
				if len(data) < 2 || data[:2] != "d2" {
					t.Logf("Deck 2 contains non-d2 item: %s", data)
					return false
				}
			}
		}

		return true
	}

	config := &quick.Config{
		MaxCount: 100,
	}

	if err := quick.Check(property, config); err != nil {
		t.Errorf("Property test failed: %v", err)
	}
}

// TestEventAggregator_Property_FlushIdempotence tests that flushing an empty deck returns nil
func TestEventAggregator_Property_FlushIdempotence(t *testing.T) {
	// Property: Flushing an already flushed or empty deck should return nil
	property := func(seed uint16) bool {
		aggregator, _ := newCapturedAggregator()
		deckID := fmt.Sprintf("deck-%d", seed)

		// Add some items
		numItems := int(seed%20) + 1
		for i := 0; i < numItems; i++ {
			aggregator.AddItem(deckID, "req", "slide", fmt.Sprintf("item-%d", i), nil)
		}

		// First flush should return items
		firstFlush := aggregator.FlushNow(deckID, true)
		if len(firstFlush) != numItems {
			t.Logf("First flush: expected %d items, got %d", numItems, len(firstFlush))
			return false
		}

		// Second flush should return nil (no items)
		secondFlush := aggregator.FlushNow(deckID, true)
		if secondFlush != nil {
			t.Logf("Second flush: expected nil, got %d items", len(secondFlush))
			return false
		}

		// Flushing non-existent deck should return nil
		nonExistentFlush := aggregator.FlushNow("non-existent-deck", true)
		if nonExistentFlush != nil {
			t.Logf("Non-existent deck flush: expected nil, got %d items", len(nonExistentFlush))
			return false
		}

		return true
	}

	config := &quick.Config{
		MaxCount: 100,
	}

	if err := quick.Check(property, config); err != nil {
		t.Errorf("Property test failed: %v", err)
	}
}

// TestEventAggregator_Property_KindPreservation tests that update kinds are preserved during aggregation
func TestEventAggregator_Property_KindPreservation(t *testing.T) {
	// Property: Update kinds should be preserved during aggregation
	property := func(seed uint8) bool {
		aggregator, _ := newCapturedAggregator()
		deckID := "test-deck"

		validKinds := GetValidUpdateKinds()
		expectedKindCounts := make(map[string]int)

		// Add items of each kind
		for i, kind := range validKinds {
			// Add 1-3 items of each kind based on seed
			count := int(seed)%(i+1) + 1
			expectedKindCounts[kind] = count

			for j := 0; j < count; j++ {
				aggregator.AddItem(deckID, "req", kind, fmt.Sprintf("%s-data-%d", kind, j), nil)
			}
		}

		// Flush
		flushedItems := aggregator.FlushNow(deckID, true)

		// Count kinds in flushed items
		actualKindCounts := make(map[string]int)
		for _, item := range flushedItems {
			actualKindCounts[item.Kind]++
		}

		// Property: Kind counts should match
		for kind, expectedCount := range expectedKindCounts {
			if actualKindCounts[kind] != expectedCount {
				t.Logf("Kind %s: expected %d, got %d", kind, expectedCount, actualKindCounts[kind])
				return false
			}
		}

		return true
	}

	config := &quick.Config{
		MaxCount: 100,
	}

	if err := quick.Check(property, config); err != nil {
		t.Errorf("Property test failed: %v", err)
	}
}

// TestEventAggregator_Property_OrderPreservation tests that item order is preserved during aggregation
func TestEventAggregator_Property_OrderPreservation(t *testing.T) {
	// Property: Items should be flushed in the order they were added
	property := func(seed uint8) bool {
		aggregator, _ := newCapturedAggregator()
		deckID := "test-deck"

		numItems := int(seed%30) + 1
		expectedOrder := make([]string, 0, numItems)

		// Add items in order
		for i := 0; i < numItems; i++ {
			itemData := fmt.Sprintf("ordered-item-%d", i)
			expectedOrder = append(expectedOrder, itemData)
			aggregator.AddItem(deckID, "req", "slide", itemData, nil)
		}

		// Flush
		flushedItems := aggregator.FlushNow(deckID, true)

		// Property: Items should be in the same order
		if len(flushedItems) != len(expectedOrder) {
			t.Logf("Length mismatch: expected %d, got %d", len(expectedOrder), len(flushedItems))
			return false
		}

		for i, item := range flushedItems {
			data, ok := item.Data.(string)
			if !ok {
				t.Logf("Item %d: data is not string", i)
				return false
			}
			if data != expectedOrder[i] {
				t.Logf("Order mismatch at index %d: expected %s, got %s", i, expectedOrder[i], data)
				return false
			}
		}

		return true
	}

	config := &quick.Config{
		MaxCount: 100,
	}

	if err := quick.Check(property, config); err != nil {
		t.Errorf("Property test failed: %v", err)
	}
}

// TestEventAggregator_Property_EmittedBatchCompleteness tests that the emitted batch contains all items
func TestEventAggregator_Property_EmittedBatchCompleteness(t *testing.T) {
	// Property: The emitted deck-update batch should contain all items that were added,
	// with the correct deck and request IDs.
	property := func(seed uint16) bool {
		aggregator, capture := newCapturedAggregator()
		deckID := fmt.Sprintf("deck-%d", seed)
		requestID := fmt.Sprintf("request-%d", seed)

		numItems := int(seed%25) + 1
		addedData := make([]string, 0, numItems)

		// Add items
		for i := 0; i < numItems; i++ {
			data := fmt.Sprintf("batch-item-%d-%d", seed, i)
			addedData = append(addedData, data)
			aggregator.AddItem(deckID, requestID, "slide", data, nil)
		}

		// Flush
		aggregator.FlushNow(deckID, true)

		// Get emitted deck-update events
		updates := capture.byName("deck-update")

		// Property: Should have exactly one batch
		if len(updates) != 1 {
			t.Logf("Expected 1 deck-update event, got %d", len(updates))
			return false
		}

		batch, ok := updates[0].payload.(DeckUpdateBatch)
		if !ok {
			t.Logf("Payload is not a DeckUpdateBatch: %T", updates[0].payload)
			return false
		}

		// Property: Batch should have correct deck/request IDs
		if batch.DeckID != deckID {
			t.Logf("DeckID mismatch: expected %s, got %s", deckID, batch.DeckID)
			return false
		}
		if batch.RequestID != requestID {
			t.Logf("RequestID mismatch: expected %s, got %s", requestID, batch.RequestID)
			return false
		}
		if !batch.IsComplete {
			t.Log("Expected IsComplete=true on explicit flush")
			return false
		}

		// Property: Batch should contain all items
		if len(batch.Items) != numItems {
			t.Logf("Item count mismatch: expected %d, got %d", numItems, len(batch.Items))
			return false
		}

		// Property: All added data should be in batch
		batchDataSet := make(map[string]bool)
		for _, item := range batch.Items {
			if data, ok := item.Data.(string); ok {
				batchDataSet[data] = true
			}
		}

		for _, data := range addedData {
			if !batchDataSet[data] {
				t.Logf("Added data '%s' not found in batch", data)
				return false
			}
		}

		return true
	}

	config := &quick.Config{
		MaxCount: 100,
	}

	if err := quick.Check(property, config); err != nil {
		t.Errorf("Property test failed: %v", err)
	}
}

// TestEventAggregator_Property_GracefulDegradationOnEmptyIDs tests graceful handling of empty IDs
func TestEventAggregator_Property_GracefulDegradationOnEmptyIDs(t *testing.T) {
	// Property: For any data item with empty deckId or requestId, the EventAggregator
	// logs a warning but still processes the item without dropping it.
	property := func(seed uint8) bool {
		aggregator, _ := newCapturedAggregator()

		// Test cases with various empty ID combinations
		testCases := []struct {
			deckID    string
			requestID string
		}{
			{"", "req-1"},     // Empty deckID
			{"deck-1", ""},    // Empty requestID
			{"", ""},          // All empty
		}

		for i, tc := range testCases {
			// Use a non-empty deckID for storage key if deckID is empty
			storageKey := tc.deckID
			if storageKey == "" {
				storageKey = fmt.Sprintf("empty-deck-%d-%d", seed, i)
			}

			data := fmt.Sprintf("data-%d-%d", seed, i)

			// This should NOT panic or drop the item
			aggregator.AddItem(storageKey, tc.requestID, "slide", data, nil)

			// Verify item was added
			pendingCount := aggregator.GetPendingItemCount(storageKey)
			if pendingCount == 0 {
				t.Logf("Item was not added for test case %d", i)
				return false
			}

			// Flush and verify item is present
			flushedItems := aggregator.FlushNow(storageKey, true)
			if len(flushedItems) == 0 {
				t.Logf("No items flushed for test case %d", i)
				return false
			}

			// Verify data is correct
			found := false
			for _, item := range flushedItems {
				if itemData, ok := item.Data.(string); ok && itemData == data {
					found = true
					break
				}
			}
			if !found {
				t.Logf("Data not found in flushed items for test case %d", i)
				return false
			}
		}

		return true
	}

	config := &quick.Config{
		MaxCount: 100,
	}

	if err := quick.Check(property, config); err != nil {
		t.Errorf("Property test failed: %v", err)
	}
}

// TestEventAggregator_TimerFlush verifies the delayed flush fires on its own
func TestEventAggregator_TimerFlush(t *testing.T) {
	aggregator, capture := newCapturedAggregator()
	deckID := "timer-deck"

	aggregator.AddSlides(deckID, "req-timer", []Slide{
		{ID: 1, Type: SlideTypeTitle, Title: "Opening", Content: []string{}},
	})

	// The flush timer runs at 50ms; poll well past that
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(capture.byName("deck-update")) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	updates := capture.byName("deck-update")
	if len(updates) != 1 {
		t.Fatalf("Expected 1 deck-update event from timer flush, got %d", len(updates))
	}

	batch, ok := updates[0].payload.(DeckUpdateBatch)
	if !ok {
		t.Fatalf("Payload is not a DeckUpdateBatch: %T", updates[0].payload)
	}
	if batch.IsComplete {
		t.Error("Timer flush should emit IsComplete=false")
	}
	if len(batch.Items) != 1 || batch.Items[0].Kind != "slides" {
		t.Errorf("Unexpected batch items: %+v", batch.Items)
	}

	// Nothing left pending after the timer fired
	if count := aggregator.GetPendingItemCount(deckID); count != 0 {
		t.Errorf("Expected 0 pending items after timer flush, got %d", count)
	}
}

// TestEventAggregator_Clear verifies pending items are dropped and a clear event is emitted
func TestEventAggregator_Clear(t *testing.T) {
	aggregator, capture := newCapturedAggregator()
	deckID := "clear-deck"

	aggregator.AddIndex(deckID, "req", 2)
	aggregator.AddTheme(deckID, "req", DefaultTheme())

	if count := aggregator.GetPendingItemCount(deckID); count != 2 {
		t.Fatalf("Expected 2 pending items, got %d", count)
	}

	aggregator.Clear(deckID)

	if count := aggregator.GetPendingItemCount(deckID); count != 0 {
		t.Errorf("Expected 0 pending items after Clear, got %d", count)
	}

	clears := capture.byName("deck-clear")
	if len(clears) != 1 {
		t.Fatalf("Expected 1 deck-clear event, got %d", len(clears))
	}
	payload, ok := clears[0].payload.(map[string]interface{})
	if !ok || payload["deckId"] != deckID {
		t.Errorf("Unexpected deck-clear payload: %+v", clears[0].payload)
	}

	// Cleared items must not surface in a later flush
	if items := aggregator.FlushNow(deckID, true); items != nil {
		t.Errorf("Expected nil flush after Clear, got %d items", len(items))
	}
}

// TestEventAggregator_ErrorEvents verifies error payloads carry codes and recovery suggestions
func TestEventAggregator_ErrorEvents(t *testing.T) {
	testCases := []struct {
		name            string
		code            string
		message         string
		expectedMessage string
	}{
		{"explicit message", ErrorCodeImportInvalid, "missing slides array", "missing slides array"},
		{"default message", ErrorCodeExportFailed, "", "Export failed"},
		{"unknown code", "SOMETHING_ELSE", "", "An unknown error occurred"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			aggregator, capture := newCapturedAggregator()

			aggregator.EmitErrorWithCode("deck-1", "req-1", tc.code, tc.message)

			errs := capture.byName("deck-error")
			if len(errs) != 1 {
				t.Fatalf("Expected 1 deck-error event, got %d", len(errs))
			}

			payload, ok := errs[0].payload.(map[string]interface{})
			if !ok {
				t.Fatalf("Payload is not a map: %T", errs[0].payload)
			}
			if payload["code"] != tc.code {
				t.Errorf("Expected code %s, got %v", tc.code, payload["code"])
			}
			if payload["message"] != tc.expectedMessage {
				t.Errorf("Expected message %q, got %v", tc.expectedMessage, payload["message"])
			}
			suggestions, ok := payload["recoverySuggestions"].([]string)
			if !ok || len(suggestions) == 0 {
				t.Errorf("Expected non-empty recovery suggestions, got %v", payload["recoverySuggestions"])
			}
			if payload["deckId"] != "deck-1" || payload["requestId"] != "req-1" {
				t.Errorf("Expected deck/request ids to round-trip, got %v / %v", payload["deckId"], payload["requestId"])
			}
		})
	}
}

// TestEventAggregator_SetLoading verifies loading events carry the busy flag
func TestEventAggregator_SetLoading(t *testing.T) {
	aggregator, capture := newCapturedAggregator()

	aggregator.SetLoading("deck-1", true, "req-1")
	aggregator.SetLoading("deck-1", false, "req-1")

	loadings := capture.byName("deck-loading")
	if len(loadings) != 2 {
		t.Fatalf("Expected 2 deck-loading events, got %d", len(loadings))
	}

	first, _ := loadings[0].payload.(map[string]interface{})
	second, _ := loadings[1].payload.(map[string]interface{})
	if first["loading"] != true || second["loading"] != false {
		t.Errorf("Expected loading true then false, got %v then %v", first["loading"], second["loading"])
	}
}
