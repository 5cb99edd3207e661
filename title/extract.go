package title

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// DefaultSelector matches the document title element.
const DefaultSelector = "title"

// Extractor pulls the title text out of raw HTML.
// It is safe for concurrent use.
type Extractor struct {
	sel cascadia.Selector
}

// NewExtractor compiles selector once. An empty selector means DefaultSelector.
func NewExtractor(selector string) (*Extractor, error) {
	if selector == "" {
		selector = DefaultSelector
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("title: compile selector %q: %w", selector, err)
	}
	return &Extractor{sel: sel}, nil
}

// Extract returns the trimmed text of the first matching element, or "" when
// nothing matches or the HTML cannot be parsed.
func (x *Extractor) Extract(rawHTML string) string {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	doc := goquery.NewDocumentFromNode(root)
	return trimTitle(doc.FindMatcher(goquery.SingleMatcher(x.sel)).Text())
}

// trimTitle strips whitespace and byte order marks from both ends, the same
// set a browser's String.prototype.trim removes.
func trimTitle(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
