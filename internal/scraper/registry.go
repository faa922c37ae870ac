package scraper

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Registry maps exact lowercase hostnames to adapters. It is immutable once
// built and safe for concurrent use.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) (*Registry, error) {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		if a == nil {
			return nil, errors.New("nil adapter")
		}
		host := strings.ToLower(strings.TrimSpace(a.Host()))
		if host == "" {
			return nil, errors.New("adapter with empty host")
		}
		if _, ok := r.adapters[host]; ok {
			return nil, fmt.Errorf("duplicate adapter for host %s", host)
		}
		r.adapters[host] = a
	}
	return r, nil
}

// DefaultRegistry holds the built-in adapters plus a generic schema.org
// adapter for each extra host.
func DefaultRegistry(extraHosts ...string) (*Registry, error) {
	adapters := []Adapter{BBCGoodFood{}, Dummy{}}
	for _, host := range extraHosts {
		adapters = append(adapters, NewSchemaOrg(host))
	}
	return NewRegistry(adapters...)
}

func (r *Registry) Lookup(host string) (Adapter, bool) {
	if r == nil {
		return nil, false
	}
	a, ok := r.adapters[host]
	return a, ok
}

func (r *Registry) Hosts() []string {
	if r == nil {
		return nil
	}
	hosts := make([]string, 0, len(r.adapters))
	for h := range r.adapters {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts
}
