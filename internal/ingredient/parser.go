// Package ingredient turns free-text ingredient lines into structured
// amount/unit/name/instructions records and renders them back in canonical
// units.
package ingredient

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrNoMatch = errors.New("no pattern match")

// IngredientError is returned when a line does not match the ingredient
// pattern at all. Partial carries the record with only Raw set so callers
// can degrade to displaying the raw text.
type IngredientError struct {
	Partial ScrapedIngredient
}

func (e *IngredientError) Error() string {
	return fmt.Sprintf("ingredient %q: %v", e.Partial.Raw, ErrNoMatch)
}

func (e *IngredientError) Unwrap() error {
	return ErrNoMatch
}

// ScrapedIngredient is a best-effort parse of one ingredient line. Raw is the
// untouched input; every other field may be nil.
type ScrapedIngredient struct {
	Raw          string   `json:"raw"`
	Name         *string  `json:"name,omitempty"`
	Amount       *float64 `json:"amount,omitempty"`
	Unit         *Unit    `json:"unit,omitempty"`
	Instructions *string  `json:"instructions,omitempty"`
}

// space is Unicode White_Space; RE2's \s alone is ASCII only and scraped
// pages often carry non-breaking spaces.
const space = `[\s\v\x{85}\p{Z}]`

// linePattern is RE2, so matching is linear in the line length regardless of
// input. The unit list is deliberately narrower than ParseUnit's tables and
// each unit must be followed by an ASCII space.
var linePattern = regexp.MustCompile(
	`^(?P<amount>[0-9¼½¾⅓⅔⅛⅜⅝⅞⅙⅚⅕⅖⅗⅘./]*)?` + space + `*(x` + space + `*)?` +
		`((?P<unit>ml|millilitre|l|litre|tsp|teaspoon|tbsp|cup|kg|g|gram|oz|ounce|pinch of|pinch|handful of|handful|(small|large) pack) )?` +
		space + `?(?P<rest>(?P<ingredient>[^,\n]*)((,` + space + `*)(?P<instructions>.*))?)$`,
)

var (
	amountGroup       = linePattern.SubexpIndex("amount")
	unitGroup         = linePattern.SubexpIndex("unit")
	ingredientGroup   = linePattern.SubexpIndex("ingredient")
	instructionsGroup = linePattern.SubexpIndex("instructions")
)

// ParseLine tokenizes raw into amount, unit, name and instructions. Amount and
// unit sub-parse failures leave the field nil; only a line the pattern cannot
// match at all (one with an embedded newline) is an error.
func ParseLine(raw string) (ScrapedIngredient, error) {
	ing := ScrapedIngredient{Raw: raw}

	m := linePattern.FindStringSubmatchIndex(raw)
	if m == nil {
		return ing, &IngredientError{Partial: ing}
	}
	group := func(i int) (string, bool) {
		if m[2*i] < 0 {
			return "", false
		}
		return raw[m[2*i]:m[2*i+1]], true
	}

	if s, ok := group(amountGroup); ok && s != "" {
		if v, err := ParseAmount(s); err == nil {
			ing.Amount = &v
		}
	}
	if s, ok := group(unitGroup); ok {
		if u, err := ParseUnit(strings.TrimSpace(s)); err == nil {
			ing.Unit = &u
		}
	}
	if s, ok := group(ingredientGroup); ok {
		if name := strings.TrimSpace(s); name != "" {
			ing.Name = &name
		}
	}
	// A trailing comma still yields (empty) instructions.
	if s, ok := group(instructionsGroup); ok {
		ing.Instructions = &s
	}
	return ing, nil
}

// ParseLines parses every line, stopping at the first hard failure.
func ParseLines(lines []string) ([]ScrapedIngredient, error) {
	out := make([]ScrapedIngredient, 0, len(lines))
	for _, line := range lines {
		ing, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, nil
}

// Canonicalize converts the amount into the base unit of its family. It
// reports false unless both amount and unit are known.
func (i ScrapedIngredient) Canonicalize() (float64, Unit, bool) {
	if i.Amount == nil || i.Unit == nil {
		return 0, Unit{}, false
	}
	return *i.Amount * i.Unit.Factor(), i.Unit.Canonical(), true
}
