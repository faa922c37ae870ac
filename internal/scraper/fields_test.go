package scraper

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestParseMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  *int
	}{
		{"PT10M30S", intPtr(11)},
		{"PT30M", intPtr(30)},
		{"PT1H30M", intPtr(90)},
		{"PT45S", intPtr(1)},
		{"", nil},
		{"   ", nil},
	}
	for _, tc := range tests {
		got, err := parseMinutes("cookTime", tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}

	_, err := parseMinutes("cookTime", "ten minutes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cookTime")
}

func TestParseServings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want *int
	}{
		{"number", `4`, intPtr(4)},
		{"digits in text", `"Serves 4"`, intPtr(4)},
		{"range takes first", `"Serves 4-6"`, intPtr(4)},
		{"word", `"Makes two loaves"`, intPtr(2)},
		{"first of word and digit", `"Serves four to 6"`, intPtr(4)},
		{"word must stand alone", `"none"`, nil},
		{"case sensitive", `"Four"`, nil},
		{"no number", `"lots"`, nil},
		{"array", `["", "Serves 6"]`, intPtr(6)},
		{"fractional number", `4.5`, nil},
		{"null", `null`, nil},
		{"missing", ``, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, parseServings(json.RawMessage(tc.raw)))
		})
	}
}

func TestParseImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want *string
	}{
		{"object", `{"@type":"ImageObject","url":"https://img/a.jpg"}`, strPtr("https://img/a.jpg")},
		{"string", `"https://img/b.jpg"`, strPtr("https://img/b.jpg")},
		{"array", `["", {"url":"https://img/c.jpg"}]`, strPtr("https://img/c.jpg")},
		{"empty object", `{}`, nil},
		{"missing", ``, nil},
		{"number", `3`, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, parseImage(json.RawMessage(tc.raw)))
		})
	}
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, strPtr("Hello world"), cleanText("<p>Hello&nbsp; <b>world</b></p>"))
	assert.Equal(t, strPtr("Fish & chips"), cleanText("Fish &amp; chips"))
	assert.Equal(t, strPtr("A classic"), cleanText("  A\n\tclassic "))
	assert.Nil(t, cleanText("   "))
	assert.Nil(t, cleanText(""))
}

func TestTitleFromPath(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://example.com/recipes/sausage-pasta-bake/")
	require.NoError(t, err)
	assert.Equal(t, "Sausage Pasta Bake", titleFromPath(u))

	u, err = url.Parse("https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "", titleFromPath(u))
	assert.Equal(t, "", titleFromPath(nil))
}
