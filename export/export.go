// Package export renders generated schemas into a single downloadable
// document.
package export

import (
	"fmt"
	"strings"

	"github.com/use-agent/ldgen/models"
	"github.com/use-agent/ldgen/schema"
)

// Word document delivery constants.
const (
	WordFilename = "schemas_json_ld.doc"
	WordMIMEType = "application/msword"

	MarkdownFilename = "schemas_json_ld.md"
	MarkdownMIMEType = "text/markdown; charset=utf-8"
)

// ErrNothingToExport is returned when there are no items to export.
var ErrNothingToExport = models.NewSchemaError(
	models.ErrCodeNothingToExport, "no schemas to export", nil)

// Item is one exported schema. Snippet is always derivable from URL and
// Title with schema.Build.
type Item struct {
	Number  int
	URL     string
	Title   string
	Snippet string
}

// Rebuild creates an item for (number, url, title), regenerating the snippet
// so an edited title is reflected in alternateName.
func Rebuild(number int, pageURL, pageTitle string) Item {
	_, snippet := schema.Build(pageURL, pageTitle)
	return Item{Number: number, URL: pageURL, Title: pageTitle, Snippet: snippet}
}

// ItemsFromBatch returns the successful outcomes of b as export items, in
// order.
func ItemsFromBatch(b *models.Batch) []Item {
	if b == nil {
		return nil
	}
	items := make([]Item, 0, b.Generated)
	for _, o := range b.Outcomes {
		if !o.Succeeded() {
			continue
		}
		items = append(items, Item{Number: o.Number, URL: o.URL, Title: o.Title, Snippet: o.Snippet})
	}
	return items
}

const wordHeader = `<html xmlns:o="urn:schemas-microsoft-com:office:office" ` +
	`xmlns:w="urn:schemas-microsoft-com:office:word" ` +
	`xmlns="http://www.w3.org/TR/REC-html40">` +
	`<head><meta charset="utf-8"><title>Schemas JSON-LD</title></head>` +
	`<body>`

const wordFooter = `</body></html>`

// HTML renders items as the HTML body shared by every export format.
func HTML(items []Item) (string, error) {
	if len(items) == 0 {
		return "", ErrNothingToExport
	}

	var b strings.Builder
	b.WriteString(wordHeader)
	for _, it := range items {
		b.WriteString(`<div style="margin-bottom: 40px; page-break-inside: avoid;">`)
		fmt.Fprintf(&b, `<h2 style="color: #333;">Schema #%d</h2>`, it.Number)
		fmt.Fprintf(&b, `<p style="font-weight: bold;">URL: %s</p>`, escapeHTML(it.URL))
		fmt.Fprintf(&b, `<p>Título: %s</p>`, escapeHTML(it.Title))
		b.WriteString(`<pre style="background-color: #f5f5f5; padding: 10px; border: 1px solid #ddd; white-space: pre-wrap; font-family: Consolas, monospace;">`)
		b.WriteString(escapeHTML(it.Snippet))
		b.WriteString(`</pre>`)
		b.WriteString(`</div>`)
	}
	b.WriteString(wordFooter)
	return b.String(), nil
}

// Word renders items as an HTML document that word processors open as a
// .doc file. Serve it with WordMIMEType and WordFilename.
func Word(items []Item) ([]byte, error) {
	doc, err := HTML(items)
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// escapeHTML escapes the five HTML-significant characters.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
