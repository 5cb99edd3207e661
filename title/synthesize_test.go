package title

import (
	"errors"
	"testing"
)

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		// No path segments.
		{"bare host", "https://example.com", "Página de example.com"},
		{"root slash", "https://example.com/", "Página de example.com"},
		{"www stripped", "https://www.example.com", "Página de example.com"},
		{"www inside host", "https://sub.www.example.com", "Página de sub.example.com"},
		{"only first www", "https://www.www.example.com", "Página de www.example.com"},
		{"host lowercased", "https://Example.COM", "Página de example.com"},
		{"port dropped", "https://example.com:8443/", "Página de example.com"},
		{"query only", "https://example.com/?q=malla-curricular", "Página de example.com"},

		// Curriculum pages.
		{"curriculum", "https://pregrado.upc.edu.pe/ingenieria-de-software/malla-curricular",
			"Malla curricular | Ingenieria De Software | Pregrado UPC"},
		{"curriculum nested", "https://pregrado.upc.edu.pe/facultad/arquitectura/malla-curricular/",
			"Malla curricular | Arquitectura | Pregrado UPC"},
		{"curriculum first segment falls through", "https://pregrado.upc.edu.pe/malla-curricular/2024",
			"Malla Curricular | 2024 | Pregrado UPC"},
		{"curriculum only in query falls through", "https://example.com/carreras?from=malla-curricular",
			"Carreras | Pregrado UPC"},
		{"curriculum substring segment falls through", "https://example.com/a/malla-curricular-2024",
			"A | Malla Curricular 2024 | Pregrado UPC"},

		// Generic path titles.
		{"two segments", "https://example.com/foo-bar/baz-qux", "Foo Bar | Baz Qux | Pregrado UPC"},
		{"empty segments dropped", "https://example.com//foo//bar/", "Foo | Bar | Pregrado UPC"},
		{"casing preserved", "https://example.com/iOS-APP/eBook", "IOS APP | EBook | Pregrado UPC"},
		{"double hyphen keeps both spaces", "https://example.com/a--b", "A  B | Pregrado UPC"},
		{"percent encoding kept", "https://example.com/dise%C3%B1o-grafico", "Dise%C3%B1o Grafico | Pregrado UPC"},
		{"raw unicode is escaped", "https://example.com/diseño", "Dise%C3%B1o | Pregrado UPC"},
		{"opaque url", "mailto:someone@example.com", "Someone@example.com | Pregrado UPC"},
		{"extra slashes normalised", "https:///example.com/foo", "Foo | Pregrado UPC"},
		{"missing slashes normalised", "http:example.com", "Página de example.com"},
		{"idn host as punycode", "https://www.münchen.de", "Página de xn--mnchen-3ya.de"},

		// Unparseable input.
		{"empty", "", Generic},
		{"relative", "/foo/bar", Generic},
		{"garbage", "not a url", Generic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Synthesize(tt.url)
			if got != tt.want {
				t.Errorf("Synthesize(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	const u = "https://pregrado.upc.edu.pe/ingenieria-de-software/malla-curricular"
	first := Synthesize(u)
	for i := 0; i < 5; i++ {
		if got := Synthesize(u); got != first {
			t.Fatalf("call %d: Synthesize = %q, want %q", i, got, first)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ingenieria de software", "Ingenieria De Software"},
		{"already Upper CASE", "Already Upper CASE"},
		{"  leading spaces", "  Leading Spaces"},
		{"ñandú ávila", "Ñandú Ávila"},
		{"2024 admision", "2024 Admision"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseURL(t *testing.T) {
	valid := []string{
		"https://example.com",
		"http://localhost:8080/x?y=1",
		"https://pregrado.upc.edu.pe/ingenieria-de-software/malla-curricular",
		"mailto:someone@example.com",
		"file:///tmp/page.html",
		"https:///example.com",
		"http:example.com",
		"https://example.com:65535/",
		"https://www.münchen.de",
	}
	for _, raw := range valid {
		if _, err := ParseURL(raw); err != nil {
			t.Errorf("ParseURL(%q) error = %v, want nil", raw, err)
		}
	}

	invalid := []string{
		"",
		"example.com",
		"/relative/path",
		"https://",
		"http://exa mple.com",
		"http://example.com:port",
		"://missing-scheme",
		"https://example.com:99999/",
		"https://example.com:65536/",
		"http://[::1/",
	}
	for _, raw := range invalid {
		_, err := ParseURL(raw)
		if err == nil {
			t.Errorf("ParseURL(%q) error = nil, want ErrInvalidURL", raw)
			continue
		}
		if !errors.Is(err, ErrInvalidURL) {
			t.Errorf("ParseURL(%q) error = %v, want wrapping ErrInvalidURL", raw, err)
		}
	}
}
