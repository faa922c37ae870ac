package scraper

import (
	"encoding/json"
	"errors"
	"net/url"
)

// Dummy is registered under the host "dummy" and always fails. It exists to
// exercise the adapter error path.
type Dummy struct{}

func (Dummy) Host() string {
	return "dummy"
}

func (Dummy) Adapt(*url.URL, json.RawMessage) (ScrapedRecipe, error) {
	return ScrapedRecipe{}, errors.New("dummy adapter")
}
