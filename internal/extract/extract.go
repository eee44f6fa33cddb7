// Package extract turns rendered HTML into the structured facts consumed by
// the audit checks. Every extractor is a pure function over the document; no
// extractor performs I/O.
package extract

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Heading is one h1-h6 element with non-empty text.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Image is one img element that carries a src attribute.
type Image struct {
	Src    string `json:"src"`
	HasAlt bool   `json:"hasAlt"`
}

// Link is one anchor with an href, classified against the audited page's host.
type Link struct {
	Href     string `json:"href"`
	Internal bool   `json:"internal"`
	Nofollow bool   `json:"nofollow"`
}

// Facts bundles everything the rule evaluators need from the rendered page.
// Empty lists are meaningful input to evaluation, not errors.
type Facts struct {
	Title       string
	Description string
	Viewport    string
	HasViewport bool
	Headings    []Heading
	Images      []Image
	Links       []Link
	SchemaTypes []string
}

// Parse extracts all facts from rendered HTML. base is the audited page's
// validated URL, used to classify links as internal or external.
func Parse(html string, base *url.URL) (*Facts, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	facts := &Facts{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Description: metaContent(doc, "description"),
		Headings:    headings(doc),
		Images:      images(doc),
		Links:       links(doc, base),
		SchemaTypes: schemaTypes(doc),
	}

	if viewport := doc.Find(`meta[name="viewport"]`).First(); viewport.Length() > 0 {
		facts.HasViewport = true
		facts.Viewport, _ = viewport.Attr("content")
	}

	return facts, nil
}

func metaContent(doc *goquery.Document, name string) string {
	content, _ := doc.Find(fmt.Sprintf(`meta[name=%q]`, name)).First().Attr("content")
	return strings.TrimSpace(content)
}

func headings(doc *goquery.Document) []Heading {
	var out []Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		name := goquery.NodeName(s)
		out = append(out, Heading{Level: int(name[1] - '0'), Text: text})
	})
	return out
}

func images(doc *goquery.Document) []Image {
	var out []Image
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if src == "" {
			return
		}
		alt, ok := s.Attr("alt")
		out = append(out, Image{Src: src, HasAlt: ok && strings.TrimSpace(alt) != ""})
	})
	return out
}

func links(doc *goquery.Document, base *url.URL) []Link {
	var out []Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" {
			return
		}

		link := Link{Href: href, Internal: isInternal(href, base)}
		if rel, ok := s.Attr("rel"); ok {
			link.Nofollow = hasToken(rel, "nofollow")
		}
		out = append(out, link)
	})
	return out
}

// isInternal compares the link's resolved hostname against the audited page's
// hostname. If the href cannot be parsed, root-relative and fragment links
// still count as internal.
func isInternal(href string, base *url.URL) bool {
	linkURL, err := url.Parse(href)
	if err != nil {
		return strings.HasPrefix(href, "/") || strings.HasPrefix(href, "#")
	}
	resolved := base.ResolveReference(linkURL)
	return strings.EqualFold(resolved.Hostname(), base.Hostname())
}

func hasToken(attr, token string) bool {
	for _, field := range strings.Fields(attr) {
		if strings.EqualFold(field, token) {
			return true
		}
	}
	return false
}

// schemaTypes collects the @type of every JSON-LD block that parses as valid
// JSON. Malformed blocks are skipped; they contribute nothing rather than
// failing extraction.
func schemaTypes(doc *goquery.Document) []string {
	var out []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}
		out = append(out, typesFromValue(payload)...)
	})
	return out
}

// typesFromValue pulls @type strings from a decoded JSON-LD value. The top
// level may be a single object or an array of objects, and @type itself may
// be a string or an array of strings.
func typesFromValue(v any) []string {
	switch val := v.(type) {
	case map[string]any:
		return typeStrings(val["@type"])
	case []any:
		var out []string
		for _, item := range val {
			out = append(out, typesFromValue(item)...)
		}
		return out
	}
	return nil
}

func typeStrings(v any) []string {
	switch val := v.(type) {
	case string:
		if val != "" {
			return []string{val}
		}
	case []any:
		var out []string
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
