package title

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/nlnwa/whatwg-url/url"
)

const (
	// Suffix ends every path-derived title.
	Suffix = "Pregrado UPC"

	// Generic is returned when a URL cannot be parsed at all.
	Generic = "Página de " + Suffix

	curriculumSegment = "malla-curricular"
)

// ErrInvalidURL is returned by ParseURL for strings that are not absolute URLs.
var ErrInvalidURL = errors.New("invalid URL")

// ParseURL parses raw as an absolute URL the way a browser's URL
// constructor does: a scheme is required, special schemes (http, https, ws,
// wss, ftp) need a host, and ports must fit in 16 bits. Inputs such as
// "http:example.com" are normalised rather than rejected.
func ParseURL(raw string) (*url.Url, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return u, nil
}

// Synthesize derives a title from the URL path. It is pure and never fails:
//
//   - no path segments:            "Página de {host}"
//   - ".../{career}/malla-curricular": "Malla curricular | {Career} | Pregrado UPC"
//   - otherwise:                   "{Seg 1} | {Seg 2} | ... | Pregrado UPC"
//
// Hyphens become spaces before each word's first letter is uppercased.
func Synthesize(rawURL string) string {
	u, err := ParseURL(rawURL)
	if err != nil {
		return Generic
	}

	segments := pathSegments(u)
	if len(segments) == 0 {
		// Only the first "www." is dropped, wherever it appears in the host.
		return "Página de " + strings.Replace(u.Hostname(), "www.", "", 1)
	}

	if strings.Contains(rawURL, curriculumSegment) {
		if i := indexOf(segments, curriculumSegment) - 1; i >= 0 {
			return "Malla curricular | " + formatSegment(segments[i]) + " | " + Suffix
		}
	}

	formatted := make([]string, len(segments))
	for i, s := range segments {
		formatted[i] = formatSegment(s)
	}
	return strings.Join(formatted, " | ") + " | " + Suffix
}

// pathSegments splits the serialized path on "/" and drops empty segments.
// Opaque paths (mailto:, data:) are split the same way.
func pathSegments(u *url.Url) []string {
	var segments []string
	for _, s := range strings.Split(u.Pathname(), "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func indexOf(segments []string, want string) int {
	for i, s := range segments {
		if s == want {
			return i
		}
	}
	return -1
}

func formatSegment(s string) string {
	return titleCase(strings.ReplaceAll(s, "-", " "))
}

// titleCase uppercases the first rune of every whitespace-delimited word and
// leaves the remaining runes untouched.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	wordStart := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			wordStart = true
			b.WriteRune(r)
			continue
		}
		if wordStart {
			r = unicode.ToUpper(r)
			wordStart = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
