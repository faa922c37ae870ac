package scraper

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// findRecipe returns the first schema.org Recipe object embedded in the
// document's JSON-LD blocks, in document order. Blocks that fail to decode
// are skipped.
func findRecipe(doc *goquery.Document) (json.RawMessage, bool) {
	var found json.RawMessage
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		payload, ok := decodeJSONLD(s.Text())
		if !ok {
			return true
		}
		obj := findRecipeObject(payload)
		if obj == nil {
			return true
		}
		raw, err := json.Marshal(obj)
		if err != nil {
			return true
		}
		found = raw
		return false
	})
	return found, found != nil
}

func decodeJSONLD(raw string) (any, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, false
	}
	return payload, true
}

func findRecipeObject(payload any) map[string]any {
	switch t := payload.(type) {
	case map[string]any:
		if isRecipeType(t["@type"]) {
			return t
		}
		if graph, ok := t["@graph"].([]any); ok {
			for _, item := range graph {
				if obj := findRecipeObject(item); obj != nil {
					return obj
				}
			}
		}
	case []any:
		for _, item := range t {
			if obj := findRecipeObject(item); obj != nil {
				return obj
			}
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}
