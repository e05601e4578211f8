package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/hotabics/pitchtimerai-sub001/i18n"
)

// ImageService resolves a slide's imageKeyword into a generatedImageUrl by
// querying the configured keyword-to-image endpoint. Resolution is async:
// the slide's isGeneratingImage flag is set immediately, the fetch runs on a
// goroutine, and the flag is cleared on completion or failure.
type ImageService struct {
	mu       sync.Mutex
	store    *DeckStoreService
	cfg      ConfigProvider
	logger   func(string)
	client   *http.Client
	inFlight map[int]bool

	aggregator *EventAggregator
	deckID     string
}

// NewImageService creates an image resolver bound to the deck store.
func NewImageService(store *DeckStoreService, cfg ConfigProvider, logger func(string)) *ImageService {
	return &ImageService{
		store:    store,
		cfg:      cfg,
		logger:   logger,
		client:   &http.Client{Timeout: 15 * time.Second},
		inFlight: make(map[int]bool),
	}
}

// Name returns the service name
func (is *ImageService) Name() string {
	return "image"
}

// Initialize prepares the image service
func (is *ImageService) Initialize(ctx context.Context) error {
	is.log("[IMAGE] Image service initialized")
	return nil
}

// Shutdown releases image service resources (in-flight fetches finish on their own)
func (is *ImageService) Shutdown() error {
	return nil
}

// SetNotifier wires the frontend event sink for image state changes.
func (is *ImageService) SetNotifier(aggregator *EventAggregator, deckID string) {
	is.mu.Lock()
	is.aggregator = aggregator
	is.deckID = deckID
	is.mu.Unlock()
}

// ResolveSlideImage starts an async image resolution for the slide. Fails
// synchronously when image sourcing is disabled, the slide is missing, has no
// keyword, or a fetch for it is already running.
func (is *ImageService) ResolveSlideImage(slideID int) error {
	cfg, err := is.cfg.GetConfig()
	if err != nil {
		return WrapError("image", "ResolveSlideImage", err)
	}
	if !cfg.ImageSource.Enabled {
		return errors.New(i18n.T("image.disabled"))
	}

	slide, ok := is.store.SlideByID(slideID)
	if !ok {
		return errors.New(i18n.T("deck.slide_not_found", slideID))
	}
	if slide.ImageKeyword == "" {
		return errors.New(i18n.T("image.no_hint"))
	}

	is.mu.Lock()
	if is.inFlight[slideID] {
		is.mu.Unlock()
		return errors.New(i18n.T("deck.generation_in_flight"))
	}
	is.inFlight[slideID] = true
	is.mu.Unlock()

	generating := true
	is.store.UpdateSlide(slideID, SlidePatch{IsGeneratingImage: &generating})
	is.notifyImageState(slideID, true, "")

	go is.resolve(slideID, slide.ImageKeyword, cfg.ImageSource.BaseURL)
	return nil
}

// resolve performs the fetch and writes the outcome back to the store.
func (is *ImageService) resolve(slideID int, keyword, baseURL string) {
	defer func() {
		is.mu.Lock()
		delete(is.inFlight, slideID)
		is.mu.Unlock()
	}()

	resolved, err := is.fetchImageURL(keyword, baseURL)

	done := false
	if err != nil {
		is.logf("[IMAGE] Resolve failed for slide %d (%q): %v", slideID, keyword, err)
		is.store.UpdateSlide(slideID, SlidePatch{IsGeneratingImage: &done})
		is.notifyImageState(slideID, false, "")
		is.notifyError(i18n.T("image.failed", keyword))
		return
	}

	is.logf("[IMAGE] %s: %s", i18n.T("image.resolved", slideID), resolved)
	is.store.UpdateSlide(slideID, SlidePatch{
		GeneratedImageURL: &resolved,
		IsGeneratingImage: &done,
	})
	is.notifyImageState(slideID, false, resolved)
}

// fetchImageURL builds the keyword URL and follows it to the final image
// location, which is what gets stored on the slide.
func (is *ImageService) fetchImageURL(keyword, baseURL string) (string, error) {
	target := fmt.Sprintf(baseURL, url.QueryEscape(keyword))

	resp, err := is.client.Get(target)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image endpoint returned HTTP %d", resp.StatusCode)
	}
	// Redirect-based sources resolve to a concrete image URL
	return resp.Request.URL.String(), nil
}

func (is *ImageService) notifyImageState(slideID int, generating bool, imageURL string) {
	is.mu.Lock()
	agg, deckID := is.aggregator, is.deckID
	is.mu.Unlock()
	if agg != nil {
		agg.AddImageState(deckID, "", slideID, generating, imageURL)
	}
}

func (is *ImageService) notifyError(msg string) {
	is.mu.Lock()
	agg, deckID := is.aggregator, is.deckID
	is.mu.Unlock()
	if agg != nil {
		agg.EmitErrorWithCode(deckID, "", ErrorCodeConnectionFailed, msg)
	}
}

// log writes through the injected logger
func (is *ImageService) log(msg string) {
	if is.logger != nil {
		is.logger(msg)
	}
}

// logf writes a formatted message through the injected logger
func (is *ImageService) logf(format string, args ...interface{}) {
	if is.logger != nil {
		is.logger(fmt.Sprintf(format, args...))
	}
}
