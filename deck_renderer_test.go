package main

import (
	"strings"
	"testing"
)

func renderTestSlide() Slide {
	return Slide{
		ID:           1,
		Type:         SlideTypeBullets,
		Title:        "Traction",
		Content:      []string{"120 pilots", "30% monthly growth", "4 signed LOIs", "2 renewals", "NPS 62"},
		SpeakerNotes: "Pause on the growth figure.",
	}
}

// collectKinds flattens the tree into the set of node kinds it contains
func collectKinds(n *RenderNode, into map[RenderNodeKind]bool) {
	into[n.Kind] = true
	for _, c := range n.Children {
		collectKinds(c, into)
	}
}

func TestRenderSlide_EveryLayoutTypePairRenders(t *testing.T) {
	theme := DefaultTheme()
	for layout := range ValidSlideLayouts {
		for typ := range ValidSlideTypes {
			slide := renderTestSlide()
			slide.Type = typ
			slide.Layout = layout

			root, err := RenderSlide(slide, theme, false)
			if err != nil {
				t.Errorf("layout=%s type=%s: unexpected error: %v", layout, typ, err)
				continue
			}
			if root.Kind != NodeFrame {
				t.Errorf("layout=%s type=%s: root kind %s, want frame", layout, typ, root.Kind)
			}
			if len(root.Children) == 0 {
				t.Errorf("layout=%s type=%s: empty render tree", layout, typ)
			}
		}
	}
}

func TestRenderSlide_UnknownTypeErrors(t *testing.T) {
	slide := renderTestSlide()
	slide.Type = "hologram"

	_, err := RenderSlide(slide, DefaultTheme(), false)
	if err == nil {
		t.Fatal("expected error for unknown slide type")
	}
	if !strings.Contains(err.Error(), "hologram") {
		t.Errorf("error should name the bad type, got %q", err)
	}
}

func TestRenderSlide_UnknownLayoutErrors(t *testing.T) {
	slide := renderTestSlide()
	slide.Layout = "mosaic"

	_, err := RenderSlide(slide, DefaultTheme(), false)
	if err == nil {
		t.Fatal("expected error for unknown layout")
	}
}

func TestRenderSlide_EmptyLayoutMeansDefault(t *testing.T) {
	slide := renderTestSlide()
	slide.Layout = ""

	root, err := RenderSlide(slide, DefaultTheme(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kinds := map[RenderNodeKind]bool{}
	collectKinds(root, kinds)
	if !kinds[NodeBulletList] {
		t.Error("default layout for a bullets slide should contain a bulletList node")
	}
}

func TestRenderSlide_NotesNodeOnlyInFullRender(t *testing.T) {
	slide := renderTestSlide()
	theme := DefaultTheme()

	full, err := RenderSlide(slide, theme, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kinds := map[RenderNodeKind]bool{}
	collectKinds(full, kinds)
	if !kinds[NodeNotes] {
		t.Error("full render of a slide with speaker notes should include a notes node")
	}

	thumb, err := RenderSlide(slide, theme, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kinds = map[RenderNodeKind]bool{}
	collectKinds(thumb, kinds)
	if kinds[NodeNotes] {
		t.Error("thumbnail render must not include a notes node")
	}
}

func TestRenderSlide_NoNotesNodeWhenNotesEmpty(t *testing.T) {
	slide := renderTestSlide()
	slide.SpeakerNotes = ""

	root, err := RenderSlide(slide, DefaultTheme(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kinds := map[RenderNodeKind]bool{}
	collectKinds(root, kinds)
	if kinds[NodeNotes] {
		t.Error("slide without notes should not render a notes node")
	}
}

func TestRenderSlide_ThumbnailCapsBullets(t *testing.T) {
	slide := renderTestSlide() // 5 content lines

	root, err := RenderSlide(slide, DefaultTheme(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var list *RenderNode
	var find func(*RenderNode)
	find = func(n *RenderNode) {
		if n.Kind == NodeBulletList {
			list = n
		}
		for _, c := range n.Children {
			find(c)
		}
	}
	find(root)
	if list == nil {
		t.Fatal("expected a bulletList node in the thumbnail")
	}
	if len(list.Items) != thumbnailMaxItems {
		t.Errorf("thumbnail bullet list has %d items, want %d", len(list.Items), thumbnailMaxItems)
	}
}

func TestRenderSlide_ThemeColorsFlowIntoTree(t *testing.T) {
	theme, ok := ThemeByID("coral")
	if !ok {
		t.Fatal("coral theme missing from catalog")
	}
	slide := renderTestSlide()

	root, err := RenderSlide(slide, theme, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Style.Background != theme.Background {
		t.Errorf("root background %q, want theme background %q", root.Style.Background, theme.Background)
	}
	if len(root.Style.GradientStops) != len(theme.GradientStops) {
		t.Errorf("gradient stops not carried into root style")
	}
	if root.Children[0].Style.Color != theme.Primary {
		t.Errorf("heading color %q, want theme primary %q", root.Children[0].Style.Color, theme.Primary)
	}
}

func TestRenderSlide_BigNumberUsesFirstContentLine(t *testing.T) {
	slide := Slide{
		ID:      2,
		Type:    SlideTypeBigNumber,
		Title:   "ARR",
		Content: []string{"$1.2M", "up 3x year over year"},
	}

	root, err := RenderSlide(slide, DefaultTheme(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var figure *RenderNode
	for _, c := range root.Children {
		if c.Kind == NodeBigNumber {
			figure = c
		}
	}
	if figure == nil {
		t.Fatal("expected a bigNumber node")
	}
	if figure.Text != "$1.2M" {
		t.Errorf("figure text %q, want %q", figure.Text, "$1.2M")
	}
}

func TestRenderSlide_ImageSlideFallsBackToKeywordBadge(t *testing.T) {
	slide := Slide{
		ID:           3,
		Type:         SlideTypeImage,
		Title:        "The team",
		Content:      []string{},
		ImageKeyword: "startup team",
	}

	root, err := RenderSlide(slide, DefaultTheme(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kinds := map[RenderNodeKind]bool{}
	collectKinds(root, kinds)
	if kinds[NodeImage] {
		t.Error("unresolved image slide should not render an image node")
	}
	if !kinds[NodeBadge] {
		t.Error("unresolved image slide should render its keyword as a badge")
	}

	slide.GeneratedImageURL = "https://images.example/team.jpg"
	root, err = RenderSlide(slide, DefaultTheme(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kinds = map[RenderNodeKind]bool{}
	collectKinds(root, kinds)
	if !kinds[NodeImage] {
		t.Error("resolved image slide should render an image node")
	}
}

func TestRenderSlide_GridCapsCells(t *testing.T) {
	slide := renderTestSlide()
	slide.Layout = LayoutGrid
	slide.Content = []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	root, err := RenderSlide(slide, DefaultTheme(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	badges := 0
	var count func(*RenderNode)
	count = func(n *RenderNode) {
		if n.Kind == NodeBadge {
			badges++
		}
		for _, c := range n.Children {
			count(c)
		}
	}
	count(root)
	if badges != gridMaxItems {
		t.Errorf("grid rendered %d cells, want %d", badges, gridMaxItems)
	}
}
