package scraper

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL       = errors.New("invalid url")
	ErrUnrecognisedHost = errors.New("unsupported host")
	ErrNetwork          = errors.New("network error")
	ErrHTML             = errors.New("html parse error")
	ErrNotARecipe       = errors.New("not a recipe")
	ErrAdapter          = errors.New("adapter error")
)

type Stage string

const (
	StageResolve  Stage = "resolve"
	StageDispatch Stage = "dispatch"
	StageFetch    Stage = "fetch"
	StageParse    Stage = "parse_html"
	StageLocate   Stage = "locate"
	StageAdapt    Stage = "adapt"
)

var stageSentinels = map[Stage]error{
	StageResolve:  ErrInvalidURL,
	StageDispatch: ErrUnrecognisedHost,
	StageFetch:    ErrNetwork,
	StageParse:    ErrHTML,
	StageLocate:   ErrNotARecipe,
	StageAdapt:    ErrAdapter,
}

var stageKinds = map[Stage]string{
	StageResolve:  "invalid_url",
	StageDispatch: "unsupported_host",
	StageFetch:    "network",
	StageParse:    "html",
	StageLocate:   "not_a_recipe",
	StageAdapt:    "adapter",
}

// ScrapeError reports the stage a scrape stopped at. It matches the stage's
// sentinel and the underlying cause with errors.Is.
type ScrapeError struct {
	Stage Stage
	Host  string
	Err   error
}

func (e *ScrapeError) Error() string {
	sentinel := stageSentinels[e.Stage]
	switch {
	case e.Err == nil && sentinel == nil:
		return fmt.Sprintf("scrape %s", e.Stage)
	case e.Err == nil:
		return fmt.Sprintf("%v: %s", sentinel, e.Host)
	default:
		return fmt.Sprintf("%v (%s): %v", sentinel, e.Host, e.Err)
	}
}

func (e *ScrapeError) Unwrap() []error {
	var errs []error
	if sentinel, ok := stageSentinels[e.Stage]; ok {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Kind is the stats label for the failed stage.
func (e *ScrapeError) Kind() string {
	return stageKinds[e.Stage]
}

// UserMessage maps a scrape failure to text fit for display.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidURL):
		return "that doesn't look like a valid recipe URL"
	case errors.Is(err, ErrUnrecognisedHost):
		return "this site is not supported yet"
	case errors.Is(err, ErrNetwork):
		return "couldn't reach the recipe page, try again later"
	case errors.Is(err, ErrHTML):
		return "the recipe page couldn't be read"
	case errors.Is(err, ErrNotARecipe):
		return "no recipe was found on that page"
	case errors.Is(err, ErrAdapter):
		return "the recipe on that page couldn't be understood"
	default:
		return "something went wrong while scraping"
	}
}
