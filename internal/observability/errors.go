package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/sd2k/recipes/internal/httpx"
)

const (
	ErrorNetwork     = "network"
	ErrorHTML        = "html"
	ErrorNotARecipe  = "not_a_recipe"
	ErrorUnsupported = "unsupported_host"
	ErrorAdapter     = "adapter"
	ErrorRateLimit   = "rate_limit"
	ErrorCanceled    = "canceled"
	ErrorInvalidURL  = "invalid_url"
	ErrorStore       = "store"
	ErrorUnknown     = "unknown"
)

// kinder is implemented by pipeline errors that already know their stage.
type kinder interface {
	Kind() string
}

func ClassifyFetchError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	if errors.Is(err, context.Canceled) {
		return ErrorCanceled
	}
	var fe *httpx.FetchError
	if errors.As(err, &fe) {
		if fe.Status == http.StatusTooManyRequests {
			return ErrorRateLimit
		}
		return ErrorNetwork
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorNetwork
	}
	return ErrorUnknown
}

func ClassifyScrapeError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	if errors.Is(err, context.Canceled) {
		return ErrorCanceled
	}
	var k kinder
	if errors.As(err, &k) {
		if kind := k.Kind(); kind != "" {
			return kind
		}
	}
	return ClassifyFetchError(err)
}
