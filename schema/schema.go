// Package schema builds the EducationalOrganization JSON-LD record attached to
// every generated page.
package schema

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Fixed record values. Only the title and URL vary between pages.
const (
	Context      = "https://schema.org"
	Type         = "EducationalOrganization"
	Organization = "Pregrado"
	LogoURL      = "https://pregrado.upc.edu.pe/static/img/logo1.png"

	// MIMEType is the script type of the serialized snippet.
	MIMEType = "application/ld+json"
)

const (
	snippetOpen  = `<script type="` + MIMEType + `">` + "\n"
	snippetClose = "\n</script>"
)

// ContactPoint is the nested contact block of a Record.
type ContactPoint struct {
	Type              string `json:"@type"`
	Telephone         string `json:"telephone"`
	ContactType       string `json:"contactType"`
	ContactOption     string `json:"contactOption"`
	AreaServed        string `json:"areaServed"`
	AvailableLanguage string `json:"availableLanguage"`
}

// Record is the structured-data record for one page. Field order matches
// the serialized output.
type Record struct {
	Context       string       `json:"@context"`
	Type          string       `json:"@type"`
	Name          string       `json:"name"`
	AlternateName string       `json:"alternateName"`
	URL           string       `json:"url"`
	Logo          string       `json:"logo"`
	ContactPoint  ContactPoint `json:"contactPoint"`
	SameAs        []string     `json:"sameAs"`
}

func sameAs() []string {
	return []string{
		"https://www.facebook.com/upcedu",
		"https://x.com/upcedu",
		"https://www.youtube.com/user/UPCedupe",
	}
}

// NewRecord fills the record template with a page URL and title. The URL is
// stored verbatim.
func NewRecord(pageURL, title string) Record {
	return Record{
		Context:       Context,
		Type:          Type,
		Name:          Organization,
		AlternateName: title,
		URL:           pageURL,
		Logo:          LogoURL,
		ContactPoint: ContactPoint{
			Type:              "ContactPoint",
			Telephone:         "(01)630-3333",
			ContactType:       "customer service",
			ContactOption:     "TollFree",
			AreaServed:        "PE",
			AvailableLanguage: "es",
		},
		SameAs: sameAs(),
	}
}

// Build returns the record for (pageURL, title) and its serialized snippet.
// It is deterministic and safe to call again with an edited title.
func Build(pageURL, title string) (Record, string) {
	rec := NewRecord(pageURL, title)
	return rec, Snippet(rec)
}

// Snippet renders rec as 2-space indented JSON wrapped in a ld+json script
// block. HTML characters are left unescaped so the output matches what a
// browser's JSON.stringify would produce.
func Snippet(rec Record) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	// Record holds only strings; encoding cannot fail.
	_ = enc.Encode(rec)

	body := strings.TrimSuffix(buf.String(), "\n")
	return snippetOpen + body + snippetClose
}

// Unwrap strips the script delimiters from a snippet and returns the JSON
// body. ok is false when s is not a snippet produced by Snippet.
func Unwrap(s string) (body string, ok bool) {
	if !strings.HasPrefix(s, snippetOpen) || !strings.HasSuffix(s, snippetClose) {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(s, snippetOpen), snippetClose), true
}
