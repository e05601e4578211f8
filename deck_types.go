package main

// SlideType classifies what a slide says: a section opener, a bullet list,
// a single standout figure, a quotation, or an image-led page.
type SlideType string

const (
	SlideTypeTitle     SlideType = "title"
	SlideTypeBullets   SlideType = "bullets"
	SlideTypeBigNumber SlideType = "big_number"
	SlideTypeQuote     SlideType = "quote"
	SlideTypeImage     SlideType = "image"
)

// ValidSlideTypes defines the closed set of slide types accepted on import and generation.
var ValidSlideTypes = map[SlideType]bool{
	SlideTypeTitle:     true,
	SlideTypeBullets:   true,
	SlideTypeBigNumber: true,
	SlideTypeQuote:     true,
	SlideTypeImage:     true,
}

// IsValidSlideType checks if the given type is a valid slide type.
func IsValidSlideType(t SlideType) bool {
	return ValidSlideTypes[t]
}

// SlideLayout selects the visual arrangement of a slide independently of its type.
// The default layout dispatches on SlideType; the others are type-agnostic frames.
type SlideLayout string

const (
	LayoutDefault SlideLayout = "default"
	LayoutShout   SlideLayout = "shout"
	LayoutSplit   SlideLayout = "split"
	LayoutCard    SlideLayout = "card"
	LayoutGrid    SlideLayout = "grid"
)

// ValidSlideLayouts defines the closed set of slide layouts.
var ValidSlideLayouts = map[SlideLayout]bool{
	LayoutDefault: true,
	LayoutShout:   true,
	LayoutSplit:   true,
	LayoutCard:    true,
	LayoutGrid:    true,
}

// IsValidSlideLayout checks if the given layout is a valid slide layout.
func IsValidSlideLayout(l SlideLayout) bool {
	return ValidSlideLayouts[l]
}

// TransitionEffect is the deck-wide animation used when moving between slides.
type TransitionEffect string

const (
	TransitionFade  TransitionEffect = "fade"
	TransitionSlide TransitionEffect = "slide"
	TransitionZoom  TransitionEffect = "zoom"
	TransitionNone  TransitionEffect = "none"
)

// ValidTransitionEffects defines the closed set of transition effects.
var ValidTransitionEffects = map[TransitionEffect]bool{
	TransitionFade:  true,
	TransitionSlide: true,
	TransitionZoom:  true,
	TransitionNone:  true,
}

// IsValidTransitionEffect checks if the given effect is a valid transition effect.
func IsValidTransitionEffect(e TransitionEffect) bool {
	return ValidTransitionEffects[e]
}

// TransitionSpec pairs a transition effect with the motion variant and timing
// the frontend animation layer applies.
type TransitionSpec struct {
	Variant    string `json:"variant"`    // Motion variant name understood by the frontend
	DurationMs int    `json:"durationMs"` // Animation duration in milliseconds
}

// SpecForTransition returns the motion variant and timing for a transition effect.
// Unknown effects fall back to no animation.
func SpecForTransition(e TransitionEffect) TransitionSpec {
	switch e {
	case TransitionFade:
		return TransitionSpec{Variant: "fade", DurationMs: 300}
	case TransitionSlide:
		return TransitionSpec{Variant: "slide-left", DurationMs: 350}
	case TransitionZoom:
		return TransitionSpec{Variant: "scale-up", DurationMs: 300}
	default:
		return TransitionSpec{Variant: "none", DurationMs: 0}
	}
}

// Slide is a single page of the deck. Field names follow the canonical JSON
// export format, which is also the import round-trip format.
type Slide struct {
	ID                int         `json:"id"`                          // Unique within a deck, stable across edits and reorders
	Type              SlideType   `json:"type"`                        // title, bullets, big_number, quote, image
	Layout            SlideLayout `json:"layout,omitempty"`            // default, shout, split, card, grid; empty means default
	Title             string      `json:"title"`                       // Slide heading
	Content           []string    `json:"content"`                     // Body lines; never nil, empty slice allowed
	ScriptSegment     string      `json:"scriptSegment,omitempty"`     // Source script excerpt the slide was generated from
	SpeakerNotes      string      `json:"speakerNotes,omitempty"`      // Presenter-only notes
	ImageKeyword      string      `json:"imageKeyword,omitempty"`      // Hint for sourcing a background/illustrative image
	GeneratedImageURL string      `json:"generatedImageUrl,omitempty"` // Resolved image URL once fetched
	IsGeneratingImage bool        `json:"isGeneratingImage,omitempty"` // Transient flag while an image fetch is in flight
}

// EffectiveLayout returns the slide's layout, defaulting to LayoutDefault when unset.
func (s Slide) EffectiveLayout() SlideLayout {
	if s.Layout == "" {
		return LayoutDefault
	}
	return s.Layout
}

// Clone returns a deep copy of the slide. Content is copied so callers
// can mutate the clone without aliasing store state.
func (s Slide) Clone() Slide {
	c := s
	c.Content = make([]string, len(s.Content))
	copy(c.Content, s.Content)
	return c
}

// CloneSlides deep-copies a slide list. A nil input yields an empty, non-nil list.
func CloneSlides(slides []Slide) []Slide {
	out := make([]Slide, 0, len(slides))
	for _, s := range slides {
		out = append(out, s.Clone())
	}
	return out
}

// SlidePatch carries a partial slide update. Nil fields are left untouched
// by the merge; the slide id itself is never changed by a patch.
type SlidePatch struct {
	Type              *SlideType   `json:"type,omitempty"`
	Layout            *SlideLayout `json:"layout,omitempty"`
	Title             *string      `json:"title,omitempty"`
	Content           *[]string    `json:"content,omitempty"`
	ScriptSegment     *string      `json:"scriptSegment,omitempty"`
	SpeakerNotes      *string      `json:"speakerNotes,omitempty"`
	ImageKeyword      *string      `json:"imageKeyword,omitempty"`
	GeneratedImageURL *string      `json:"generatedImageUrl,omitempty"`
	IsGeneratingImage *bool        `json:"isGeneratingImage,omitempty"`
}

// ApplyTo merges the patch into a slide and returns the result.
func (p SlidePatch) ApplyTo(s Slide) Slide {
	out := s.Clone()
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Layout != nil {
		out.Layout = *p.Layout
	}
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Content != nil {
		content := make([]string, len(*p.Content))
		copy(content, *p.Content)
		out.Content = content
	}
	if p.ScriptSegment != nil {
		out.ScriptSegment = *p.ScriptSegment
	}
	if p.SpeakerNotes != nil {
		out.SpeakerNotes = *p.SpeakerNotes
	}
	if p.ImageKeyword != nil {
		out.ImageKeyword = *p.ImageKeyword
	}
	if p.GeneratedImageURL != nil {
		out.GeneratedImageURL = *p.GeneratedImageURL
	}
	if p.IsGeneratingImage != nil {
		out.IsGeneratingImage = *p.IsGeneratingImage
	}
	return out
}

// ScriptBlock is one titled section of the rehearsal script, the unit the
// slide generators consume.
type ScriptBlock struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Theme is an immutable color and typography bundle selected from the fixed
// catalog. Exactly one theme is active deck-wide at a time.
type Theme struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Primary       string   `json:"primary"`                 // Hex color for headings and emphasis
	Secondary     string   `json:"secondary"`               // Hex color for supporting elements
	Background    string   `json:"background"`              // Hex color for the slide canvas
	Text          string   `json:"text"`                    // Hex color for body text
	Accent        string   `json:"accent"`                  // Hex color for highlights and big numbers
	GradientStops []string `json:"gradientStops,omitempty"` // Optional background gradient, first to last stop
	HeadingFont   string   `json:"headingFont"`
	BodyFont      string   `json:"bodyFont"`
	CornerRadius  int      `json:"cornerRadius,omitempty"` // Card corner radius in px, 0 for square
}

// DefaultThemeID is the catalog entry used when no theme has been chosen.
const DefaultThemeID = "midnight"

// themeCatalog is the fixed set of selectable themes. Order matters for display.
var themeCatalog = []Theme{
	{
		ID: "midnight", Name: "Midnight",
		Primary: "#E2E8F0", Secondary: "#94A3B8", Background: "#0F172A", Text: "#CBD5E1", Accent: "#38BDF8",
		GradientStops: []string{"#0F172A", "#1E293B"},
		HeadingFont:   "Inter", BodyFont: "Inter", CornerRadius: 12,
	},
	{
		ID: "paper", Name: "Paper",
		Primary: "#1E293B", Secondary: "#475569", Background: "#FFFFFF", Text: "#334155", Accent: "#2563EB",
		HeadingFont: "Georgia", BodyFont: "Inter", CornerRadius: 4,
	},
	{
		ID: "coral", Name: "Coral",
		Primary: "#7C2D12", Secondary: "#9A3412", Background: "#FFF7ED", Text: "#431407", Accent: "#F97316",
		GradientStops: []string{"#FFF7ED", "#FFEDD5"},
		HeadingFont:   "Poppins", BodyFont: "Inter", CornerRadius: 16,
	},
	{
		ID: "forest", Name: "Forest",
		Primary: "#ECFDF5", Secondary: "#A7F3D0", Background: "#064E3B", Text: "#D1FAE5", Accent: "#34D399",
		HeadingFont: "Inter", BodyFont: "Inter", CornerRadius: 8,
	},
	{
		ID: "royal", Name: "Royal",
		Primary: "#F5F3FF", Secondary: "#C4B5FD", Background: "#2E1065", Text: "#EDE9FE", Accent: "#A78BFA",
		GradientStops: []string{"#2E1065", "#4C1D95"},
		HeadingFont:   "Poppins", BodyFont: "Inter", CornerRadius: 12,
	},
	{
		ID: "slate", Name: "Slate",
		Primary: "#F8FAFC", Secondary: "#CBD5E1", Background: "#334155", Text: "#E2E8F0", Accent: "#FBBF24",
		HeadingFont: "Inter", BodyFont: "Inter", CornerRadius: 0,
	},
}

// Themes returns the full theme catalog in display order.
func Themes() []Theme {
	out := make([]Theme, len(themeCatalog))
	copy(out, themeCatalog)
	return out
}

// ThemeByID looks up a catalog theme. The second return is false for unknown ids.
func ThemeByID(id string) (Theme, bool) {
	for _, t := range themeCatalog {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// DefaultTheme returns the catalog entry used for new decks.
func DefaultTheme() Theme {
	t, _ := ThemeByID(DefaultThemeID)
	return t
}

// DeckSnapshot is a point-in-time copy of the deck state handed to readers.
// Mutating a snapshot never affects the store.
type DeckSnapshot struct {
	Slides            []Slide          `json:"slides"`
	CurrentSlideIndex int              `json:"currentSlideIndex"` // -1 when the deck is empty
	Theme             Theme            `json:"theme"`
	TransitionEffect  TransitionEffect `json:"transitionEffect"`
	IsGenerating      bool             `json:"isGenerating"`
	ShowSpeakerNotes  bool             `json:"showSpeakerNotes"`
}
