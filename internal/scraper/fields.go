package scraper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/sosodev/duration"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sd2k/recipes/internal/ingredient"
)

// parseMinutes converts an ISO-8601 duration to whole minutes, rounding up.
// An empty value is absent; a malformed one is an error.
func parseMinutes(field, value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := duration.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", field, value, err)
	}
	minutes := int(math.Ceil(d.ToTimeDuration().Minutes()))
	if minutes < 0 {
		return nil, fmt.Errorf("%s %q: negative duration", field, value)
	}
	return &minutes, nil
}

var yieldPattern = regexp.MustCompile(`\d+|\b(one|two|three|four|five|six|seven|eight|nine|ten)\b`)

var yieldWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// parseServings accepts a JSON number, a free-text yield such as "Serves 4"
// or "Makes two loaves", or an array of either.
func parseServings(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return servingsFromText(s)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		for _, item := range items {
			if n := parseServings(item); n != nil {
				return n
			}
		}
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil
		}
		v, err := n.Int64()
		if err != nil || v < 0 || v > math.MaxInt32 {
			return nil
		}
		out := int(v)
		return &out
	}
}

func servingsFromText(s string) *int {
	match := yieldPattern.FindString(s)
	if match == "" {
		return nil
	}
	if n, ok := yieldWords[match]; ok {
		return &n
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &n
}

// parseImage accepts an ImageObject, a bare URL string, or an array of
// either, taking the first usable entry.
func parseImage(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return nonEmpty(s)
	case '{':
		var obj struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil
		}
		return nonEmpty(obj.URL)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		for _, item := range items {
			if img := parseImage(item); img != nil {
				return img
			}
		}
	}
	return nil
}

func parseIngredients(lines []string) ([]ingredient.ScrapedIngredient, error) {
	out, err := ingredient.ParseLines(lines)
	if err != nil {
		return nil, fmt.Errorf("parsing ingredients: %w", err)
	}
	return out, nil
}

// titleFromPath turns the last path segment of a recipe URL into a title,
// e.g. /recipes/sausage-pasta-bake becomes "Sausage Pasta Bake".
func titleFromPath(u *url.URL) string {
	if u == nil {
		return ""
	}
	seg := path.Base(strings.TrimRight(u.Path, "/"))
	if seg == "." || seg == "/" || seg == "" {
		return ""
	}
	seg = strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	return cases.Title(language.English).String(strings.Join(strings.Fields(seg), " "))
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
