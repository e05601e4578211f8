package main

import "fmt"

// RenderNodeKind enumerates the closed set of node kinds the frontend knows
// how to draw. Renderer output is a tree of these; nothing else ever appears.
type RenderNodeKind string

const (
	NodeFrame      RenderNodeKind = "frame"
	NodeHeading    RenderNodeKind = "heading"
	NodeText       RenderNodeKind = "text"
	NodeBulletList RenderNodeKind = "bulletList"
	NodeBigNumber  RenderNodeKind = "bigNumber"
	NodeQuote      RenderNodeKind = "quote"
	NodeImage      RenderNodeKind = "image"
	NodeBadge      RenderNodeKind = "badge"
	NodeNotes      RenderNodeKind = "notes"
)

// RenderStyle carries the theme-resolved visual attributes for one node.
// Colors are hex strings straight from the theme; the frontend applies them
// without further lookup.
type RenderStyle struct {
	Color         string   `json:"color,omitempty"`
	Background    string   `json:"background,omitempty"`
	GradientStops []string `json:"gradientStops,omitempty"`
	Font          string   `json:"font,omitempty"`
	Size          string   `json:"size,omitempty"` // xs, sm, md, lg, xl, display
	Bold          bool     `json:"bold,omitempty"`
	Italic        bool     `json:"italic,omitempty"`
	Align         string   `json:"align,omitempty"` // left, center, right
	CornerRadius  int      `json:"cornerRadius,omitempty"`
}

// RenderNode is one node of the slide render tree sent to the frontend.
type RenderNode struct {
	Kind     RenderNodeKind `json:"kind"`
	Text     string         `json:"text,omitempty"`
	Items    []string       `json:"items,omitempty"`
	URL      string         `json:"url,omitempty"`
	Style    RenderStyle    `json:"style"`
	Children []*RenderNode  `json:"children,omitempty"`
}

// thumbnail rendering caps list content so the rail stays readable.
const thumbnailMaxItems = 3

// RenderSlide maps a slide and the active theme into a render tree. Dispatch
// is layout-first; the default layout then branches on slide type. Unknown
// type or layout values are a validation error, never a silent fallback, so
// a bad import or model reply surfaces instead of drawing garbage.
func RenderSlide(slide Slide, theme Theme, thumbnail bool) (*RenderNode, error) {
	if !IsValidSlideType(slide.Type) {
		return nil, fmt.Errorf("cannot render slide %d: unknown type %q", slide.ID, slide.Type)
	}
	layout := slide.EffectiveLayout()
	if !IsValidSlideLayout(layout) {
		return nil, fmt.Errorf("cannot render slide %d: unknown layout %q", slide.ID, slide.Layout)
	}

	root := &RenderNode{
		Kind: NodeFrame,
		Style: RenderStyle{
			Background:    theme.Background,
			GradientStops: theme.GradientStops,
			Color:         theme.Text,
			Font:          theme.BodyFont,
			CornerRadius:  theme.CornerRadius,
		},
	}

	switch layout {
	case LayoutShout:
		root.Children = renderShout(slide, theme)
	case LayoutSplit:
		root.Children = renderSplit(slide, theme, thumbnail)
	case LayoutCard:
		root.Children = renderCard(slide, theme, thumbnail)
	case LayoutGrid:
		root.Children = renderGrid(slide, theme, thumbnail)
	case LayoutDefault:
		children, err := renderDefault(slide, theme, thumbnail)
		if err != nil {
			return nil, err
		}
		root.Children = children
	}

	if !thumbnail && slide.SpeakerNotes != "" {
		root.Children = append(root.Children, &RenderNode{
			Kind: NodeNotes,
			Text: slide.SpeakerNotes,
			Style: RenderStyle{
				Color: theme.Secondary,
				Font:  theme.BodyFont,
				Size:  "sm",
			},
		})
	}

	return root, nil
}

// renderDefault dispatches the default layout on slide type. The switch is
// exhaustive over the closed type set; RenderSlide already rejected anything
// outside it.
func renderDefault(slide Slide, theme Theme, thumbnail bool) ([]*RenderNode, error) {
	switch slide.Type {
	case SlideTypeTitle:
		return renderTitleSlide(slide, theme), nil
	case SlideTypeBullets:
		return renderBulletsSlide(slide, theme, thumbnail), nil
	case SlideTypeBigNumber:
		return renderBigNumberSlide(slide, theme), nil
	case SlideTypeQuote:
		return renderQuoteSlide(slide, theme), nil
	case SlideTypeImage:
		return renderImageSlide(slide, theme), nil
	default:
		return nil, fmt.Errorf("cannot render slide %d: unknown type %q", slide.ID, slide.Type)
	}
}

func heading(text string, theme Theme, size string) *RenderNode {
	return &RenderNode{
		Kind: NodeHeading,
		Text: text,
		Style: RenderStyle{
			Color: theme.Primary,
			Font:  theme.HeadingFont,
			Size:  size,
			Bold:  true,
		},
	}
}

func renderTitleSlide(slide Slide, theme Theme) []*RenderNode {
	nodes := []*RenderNode{heading(slide.Title, theme, "display")}
	// First two content entries act as headline/subtext
	for i, line := range slide.Content {
		if i == 2 {
			break
		}
		nodes = append(nodes, &RenderNode{
			Kind: NodeText,
			Text: line,
			Style: RenderStyle{
				Color: theme.Secondary,
				Font:  theme.BodyFont,
				Size:  "lg",
				Align: "center",
			},
		})
	}
	nodes[0].Style.Align = "center"
	return nodes
}

func renderBulletsSlide(slide Slide, theme Theme, thumbnail bool) []*RenderNode {
	items := slide.Content
	if thumbnail && len(items) > thumbnailMaxItems {
		items = items[:thumbnailMaxItems]
	}
	return []*RenderNode{
		heading(slide.Title, theme, "xl"),
		{
			Kind:  NodeBulletList,
			Items: items,
			Style: RenderStyle{
				Color: theme.Text,
				Font:  theme.BodyFont,
				Size:  "md",
			},
		},
	}
}

func renderBigNumberSlide(slide Slide, theme Theme) []*RenderNode {
	figure := ""
	support := ""
	if len(slide.Content) > 0 {
		figure = slide.Content[0]
	}
	if len(slide.Content) > 1 {
		support = slide.Content[1]
	}
	nodes := []*RenderNode{
		heading(slide.Title, theme, "lg"),
		{
			Kind: NodeBigNumber,
			Text: figure,
			Style: RenderStyle{
				Color: theme.Accent,
				Font:  theme.HeadingFont,
				Size:  "display",
				Bold:  true,
				Align: "center",
			},
		},
	}
	if support != "" {
		nodes = append(nodes, &RenderNode{
			Kind: NodeText,
			Text: support,
			Style: RenderStyle{
				Color: theme.Secondary,
				Font:  theme.BodyFont,
				Size:  "md",
				Align: "center",
			},
		})
	}
	return nodes
}

func renderQuoteSlide(slide Slide, theme Theme) []*RenderNode {
	quote := ""
	attribution := ""
	if len(slide.Content) > 0 {
		quote = slide.Content[0]
	}
	if len(slide.Content) > 1 {
		attribution = slide.Content[1]
	}
	nodes := []*RenderNode{
		{
			Kind: NodeQuote,
			Text: quote,
			Style: RenderStyle{
				Color:  theme.Primary,
				Font:   theme.HeadingFont,
				Size:   "xl",
				Italic: true,
				Align:  "center",
			},
		},
	}
	if attribution != "" {
		nodes = append(nodes, &RenderNode{
			Kind: NodeText,
			Text: "— " + attribution,
			Style: RenderStyle{
				Color: theme.Secondary,
				Font:  theme.BodyFont,
				Size:  "md",
				Align: "center",
			},
		})
	}
	return nodes
}

func renderImageSlide(slide Slide, theme Theme) []*RenderNode {
	nodes := []*RenderNode{heading(slide.Title, theme, "xl")}
	if slide.GeneratedImageURL != "" {
		nodes = append(nodes, &RenderNode{
			Kind: NodeImage,
			URL:  slide.GeneratedImageURL,
			Style: RenderStyle{
				CornerRadius: theme.CornerRadius,
			},
		})
	} else if slide.ImageKeyword != "" {
		// No resolved image yet; show the keyword as a placeholder badge
		nodes = append(nodes, &RenderNode{
			Kind: NodeBadge,
			Text: slide.ImageKeyword,
			Style: RenderStyle{
				Color:      theme.Background,
				Background: theme.Accent,
				Font:       theme.BodyFont,
				Size:       "sm",
			},
		})
	}
	for _, line := range slide.Content {
		nodes = append(nodes, &RenderNode{
			Kind: NodeText,
			Text: line,
			Style: RenderStyle{
				Color: theme.Text,
				Font:  theme.BodyFont,
				Size:  "md",
			},
		})
	}
	return nodes
}

// renderShout fills the slide with one oversized statement regardless of
// type: the title, or the first content line when the title is empty.
func renderShout(slide Slide, theme Theme) []*RenderNode {
	text := slide.Title
	if text == "" && len(slide.Content) > 0 {
		text = slide.Content[0]
	}
	return []*RenderNode{
		{
			Kind: NodeHeading,
			Text: text,
			Style: RenderStyle{
				Color: theme.Accent,
				Font:  theme.HeadingFont,
				Size:  "display",
				Bold:  true,
				Align: "center",
			},
		},
	}
}

// renderSplit puts the title in the left half and the content in the right.
func renderSplit(slide Slide, theme Theme, thumbnail bool) []*RenderNode {
	items := slide.Content
	if thumbnail && len(items) > thumbnailMaxItems {
		items = items[:thumbnailMaxItems]
	}
	left := &RenderNode{
		Kind:     NodeFrame,
		Style:    RenderStyle{Background: theme.Primary, CornerRadius: theme.CornerRadius},
		Children: []*RenderNode{heading(slide.Title, theme, "xl")},
	}
	left.Children[0].Style.Color = theme.Background
	right := &RenderNode{
		Kind: NodeFrame,
		Children: []*RenderNode{
			{
				Kind:  NodeBulletList,
				Items: items,
				Style: RenderStyle{Color: theme.Text, Font: theme.BodyFont, Size: "md"},
			},
		},
	}
	return []*RenderNode{left, right}
}

// renderCard wraps the default content in a raised card on the theme's
// secondary surface.
func renderCard(slide Slide, theme Theme, thumbnail bool) []*RenderNode {
	items := slide.Content
	if thumbnail && len(items) > thumbnailMaxItems {
		items = items[:thumbnailMaxItems]
	}
	card := &RenderNode{
		Kind: NodeFrame,
		Style: RenderStyle{
			Background:   theme.Secondary,
			CornerRadius: theme.CornerRadius,
		},
		Children: []*RenderNode{
			heading(slide.Title, theme, "lg"),
			{
				Kind:  NodeBulletList,
				Items: items,
				Style: RenderStyle{Color: theme.Background, Font: theme.BodyFont, Size: "md"},
			},
		},
	}
	card.Children[0].Style.Color = theme.Background
	return []*RenderNode{card}
}

// gridMaxItems caps grid cells per the content contract.
const gridMaxItems = 6

// renderGrid lays the first six content entries out as badge cells under the
// title.
func renderGrid(slide Slide, theme Theme, thumbnail bool) []*RenderNode {
	items := slide.Content
	if len(items) > gridMaxItems {
		items = items[:gridMaxItems]
	}
	if thumbnail && len(items) > thumbnailMaxItems {
		items = items[:thumbnailMaxItems]
	}
	cells := make([]*RenderNode, 0, len(items))
	for _, item := range items {
		cells = append(cells, &RenderNode{
			Kind: NodeBadge,
			Text: item,
			Style: RenderStyle{
				Color:        theme.Text,
				Background:   theme.Secondary,
				Font:         theme.BodyFont,
				Size:         "md",
				CornerRadius: theme.CornerRadius,
			},
		})
	}
	grid := &RenderNode{
		Kind:     NodeFrame,
		Children: cells,
	}
	return []*RenderNode{heading(slide.Title, theme, "xl"), grid}
}
