package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Heading is a heading node found in a Markdown document. Depth is the
// markup level (1 for "#", 2 for "##", ...).
type Heading struct {
	Depth int
	Text  string
}

// headingParser is plain CommonMark; extensions do not add heading nodes.
var headingParser parser.Parser = goldmark.New().Parser()

// Headings lists every heading of source in document order. The text of a
// heading is its first run of plain text children, so inline markup before
// that run is skipped and markup after it ends the run. Headings without
// plain text yield an empty string.
func Headings(source []byte) []Heading {
	if len(source) == 0 {
		return nil
	}

	doc := headingParser.Parse(text.NewReader(source))

	var out []Heading
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		out = append(out, Heading{
			Depth: heading.Level,
			Text:  firstTextRun(heading, source),
		})
		return ast.WalkSkipChildren, nil
	})
	return out
}

func firstTextRun(heading *ast.Heading, source []byte) string {
	var b strings.Builder
	started := false
	for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
		value, ok := plainText(child, source)
		if !ok {
			if started {
				break
			}
			continue
		}
		started = true
		b.WriteString(value)
	}
	return b.String()
}

func plainText(node ast.Node, source []byte) (string, bool) {
	switch n := node.(type) {
	case *ast.Text:
		value := string(decodeText(n.Segment.Value(source)))
		if n.SoftLineBreak() || n.HardLineBreak() {
			value += "\n"
		}
		return value, true
	case *ast.String:
		return string(n.Value), true
	default:
		return "", false
	}
}

// decodeText resolves backslash escapes and character references the same
// way goldmark's HTML writer does for text segments.
func decodeText(raw []byte) []byte {
	value := util.UnescapePunctuations(raw)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}
