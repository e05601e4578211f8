package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hotabics/pitchtimerai-sub001/config"
)

// fakeConfigProvider serves a fixed config without touching disk
type fakeConfigProvider struct {
	cfg config.Config
}

func (f *fakeConfigProvider) GetConfig() (config.Config, error)          { return f.cfg, nil }
func (f *fakeConfigProvider) GetEffectiveConfig() (config.Config, error) { return f.cfg, nil }

func newImageFixture(t *testing.T, baseURL string, enabled bool) (*DeckStoreService, *ImageService) {
	t.Helper()
	ds := newTestDeckStore(t)
	ds.SetSlides([]Slide{
		{ID: 1, Type: SlideTypeImage, Title: "The team", Content: []string{}, ImageKeyword: "startup team"},
		{ID: 2, Type: SlideTypeBullets, Title: "Plain", Content: []string{"no image here"}},
	})

	provider := &fakeConfigProvider{cfg: config.Config{
		ImageSource: config.ImageSourceConfig{BaseURL: baseURL, Enabled: enabled},
	}}
	return ds, NewImageService(ds, provider, func(msg string) { t.Log(msg) })
}

func waitForSlide(t *testing.T, ds *DeckStoreService, id int, pred func(Slide) bool) Slide {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		slide, _ := ds.SlideByID(id)
		if pred(slide) {
			return slide
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for slide %d state, last: %+v", id, slide)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestImageService_ResolvesKeyword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ds, is := newImageFixture(t, srv.URL+"/img/%s", true)

	if err := is.ResolveSlideImage(1); err != nil {
		t.Fatalf("ResolveSlideImage: %v", err)
	}

	slide := waitForSlide(t, ds, 1, func(s Slide) bool { return s.GeneratedImageURL != "" })
	if slide.IsGeneratingImage {
		t.Error("isGeneratingImage still set after resolution")
	}
	if want := srv.URL + "/img/startup%20team"; slide.GeneratedImageURL != want {
		t.Errorf("resolved URL = %q, want %q", slide.GeneratedImageURL, want)
	}
}

func TestImageService_FailureClearsFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	ds, is := newImageFixture(t, srv.URL+"/img/%s", true)

	if err := is.ResolveSlideImage(1); err != nil {
		t.Fatalf("ResolveSlideImage: %v", err)
	}

	slide := waitForSlide(t, ds, 1, func(s Slide) bool { return !s.IsGeneratingImage })
	if slide.GeneratedImageURL != "" {
		t.Errorf("failed resolution stored a URL: %q", slide.GeneratedImageURL)
	}
}

func TestImageService_NoKeyword(t *testing.T) {
	_, is := newImageFixture(t, "http://127.0.0.1:1/%s", true)

	if err := is.ResolveSlideImage(2); err == nil {
		t.Error("expected error for a slide without an image keyword")
	}
}

func TestImageService_MissingSlide(t *testing.T) {
	_, is := newImageFixture(t, "http://127.0.0.1:1/%s", true)

	if err := is.ResolveSlideImage(99); err == nil {
		t.Error("expected error for a missing slide")
	}
}

func TestImageService_DisabledSource(t *testing.T) {
	_, is := newImageFixture(t, "http://127.0.0.1:1/%s", false)

	if err := is.ResolveSlideImage(1); err == nil {
		t.Error("expected error when image sourcing is disabled")
	}
}

func TestImageService_RejectsDuplicateInFlight(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	defer close(release)

	_, is := newImageFixture(t, srv.URL+"/img/%s", true)

	if err := is.ResolveSlideImage(1); err != nil {
		t.Fatalf("first ResolveSlideImage: %v", err)
	}
	if err := is.ResolveSlideImage(1); err == nil {
		t.Error("second resolve for the same slide should be rejected while in flight")
	}
}
