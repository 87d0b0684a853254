// Package blocks models the typed content blocks a CMS page is composed of.
//
// Block is a closed sum type: only the variants declared here implement it,
// so a type switch over Block covers every case the CMS can produce. Kinds
// that carry no structure of interest are decoded into Generic.
package blocks

// Kind is the discriminant stored in the "type" field of a CMS block.
type Kind string

const (
	KindPageHeader   Kind = "page_header"
	KindContainer    Kind = "container"
	KindFlexLayout   Kind = "flex_layout"
	KindGroup        Kind = "group"
	KindOrderedBlock Kind = "ordered_block"
	KindAccordion    Kind = "accordion"
	KindMarkdown     Kind = "markdown"
)

// Block is one node of a page's content tree.
type Block interface {
	Kind() Kind
	sealed()
}

// PageHeader is the hero area at the top of a page.
type PageHeader struct {
	Title       string
	Description string
	Fields      map[string]any
}

// Container groups child blocks without adding structure of its own.
type Container struct {
	Blocks []Block
}

// FlexLayout lays out child blocks; a non-empty Heading introduces a section.
type FlexLayout struct {
	Heading string
	Blocks  []Block
	Fields  map[string]any
}

// Group behaves like FlexLayout with a different presentation.
type Group struct {
	Heading string
	Blocks  []Block
	Fields  map[string]any
}

// OrderedBlock lists titled items that are presented in title order.
type OrderedBlock struct {
	Items []OrderedItem
}

// OrderedItem is a titled entry of an OrderedBlock.
type OrderedItem struct {
	Title  string
	Blocks []Block
}

// Accordion is a list of collapsible question/answer pairs. A nil Heading
// means the CMS sent null or omitted it.
type Accordion struct {
	Heading *string
	Items   []AccordionItem
}

// AccordionItem is a single collapsible entry.
type AccordionItem struct {
	Question string
	Answer   string
}

// Markdown carries a Markdown document in Body.
type Markdown struct {
	Body string
}

// Generic covers every other block kind. Title is non-nil when the payload
// had a "title" key; Heading is non-nil when "heading" was present and not null.
type Generic struct {
	Type    Kind
	Title   *string
	Heading *string
	Fields  map[string]any
}

func (PageHeader) Kind() Kind   { return KindPageHeader }
func (Container) Kind() Kind    { return KindContainer }
func (FlexLayout) Kind() Kind   { return KindFlexLayout }
func (Group) Kind() Kind        { return KindGroup }
func (OrderedBlock) Kind() Kind { return KindOrderedBlock }
func (Accordion) Kind() Kind    { return KindAccordion }
func (Markdown) Kind() Kind     { return KindMarkdown }
func (g Generic) Kind() Kind    { return g.Type }

func (PageHeader) sealed()   {}
func (Container) sealed()    {}
func (FlexLayout) sealed()   {}
func (Group) sealed()        {}
func (OrderedBlock) sealed() {}
func (Accordion) sealed()    {}
func (Markdown) sealed()     {}
func (Generic) sealed()      {}

// Children returns the nested blocks of container-like variants.
func Children(b Block) []Block {
	switch v := b.(type) {
	case Container:
		return v.Blocks
	case FlexLayout:
		return v.Blocks
	case Group:
		return v.Blocks
	default:
		return nil
	}
}

// String returns a pointer to s, for building Accordion and Generic literals.
func String(s string) *string {
	return &s
}
