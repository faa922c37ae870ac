package scraper

import (
	"strings"

	"golang.org/x/net/html"
)

type SimpleNormalizer struct{}

func NewSimpleNormalizer() *SimpleNormalizer {
	return &SimpleNormalizer{}
}

// Normalize strips markup and entities from htmlContent and collapses
// whitespace runs to single spaces.
func (n *SimpleNormalizer) Normalize(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(ExtractText(doc)), " "), nil
}

// ExtractText concatenates the text nodes under n, skipping script and style.
func ExtractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return ""
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(ExtractText(c))
	}
	return sb.String()
}

var defaultNormalizer = NewSimpleNormalizer()

// cleanText returns nil for text that is empty once normalized.
func cleanText(s string) *string {
	text, err := defaultNormalizer.Normalize(s)
	if err != nil {
		text = strings.Join(strings.Fields(s), " ")
	}
	if text == "" {
		return nil
	}
	return &text
}
