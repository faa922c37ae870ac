package urlutil

import (
	"errors"
	"net/url"
	"path"
	"sort"
	"strings"
)

var ErrNoHost = errors.New("url has no host")

// Parse accepts an absolute URL or a bare "host/path", defaulting the scheme
// to https.
func Parse(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New("unsupported scheme " + u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, ErrNoHost
	}
	return u, nil
}

// HostKey is the key adapters are registered under: the lowercase hostname
// without port. www. is kept since publishers serve recipes from one exact host.
func HostKey(u *url.URL) string {
	if u == nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// Normalize returns a canonical form of raw suitable for de-duplicating
// recipes: lowercase host, cleaned path, no fragment, tracking parameters
// dropped and the rest sorted.
func Normalize(raw string) (string, string, error) {
	u, err := Parse(raw)
	if err != nil {
		return "", "", err
	}
	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	u.Path = normalizePath(u.Path)
	u.RawPath = ""
	u.RawQuery = normalizeQuery(u.RawQuery)
	return u.String(), u.Hostname(), nil
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	clean := path.Clean(p)
	if clean == "." {
		return "/"
	}
	return clean
}

func normalizeQuery(raw string) string {
	if raw == "" {
		return ""
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return ""
	}
	for key := range values {
		lk := strings.ToLower(key)
		if strings.HasPrefix(lk, "utm_") || lk == "gclid" || lk == "fbclid" || lk == "ref" {
			delete(values, key)
		}
	}
	if len(values) == 0 {
		return ""
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	normalized := url.Values{}
	for _, k := range keys {
		normalized[k] = values[k]
	}
	return normalized.Encode()
}
