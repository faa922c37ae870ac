package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	ScrapesStarted    uint64            `json:"scrapes_started"`
	ScrapesSucceeded  uint64            `json:"scrapes_succeeded"`
	ScrapesFailed     uint64            `json:"scrapes_failed"`
	IngredientsParsed uint64            `json:"ingredients_parsed"`
	IngredientsRaw    uint64            `json:"ingredients_raw"`
	FetchSecondsAvg   float64           `json:"fetch_seconds_avg"`
	ScrapesByHost     map[string]uint64 `json:"scrapes_by_host,omitempty"`
	ErrorsByType      map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	scrapesStarted    uint64
	scrapesSucceeded  uint64
	scrapesFailed     uint64
	ingredientsParsed uint64
	ingredientsRaw    uint64

	fetchCount uint64
	fetchNanos uint64

	statsMu           sync.Mutex
	scrapesByHost     = map[string]uint64{}
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncScrapeStarted(host string) {
	if host == "" {
		host = "unknown"
	}
	atomic.AddUint64(&scrapesStarted, 1)
	statsMu.Lock()
	scrapesByHost[host]++
	statsMu.Unlock()
}

func IncScrapeSucceeded() {
	atomic.AddUint64(&scrapesSucceeded, 1)
}

// IncScrapeFailed counts a failed scrape and records its kind under the
// "scraper" component.
func IncScrapeFailed(kind string) {
	atomic.AddUint64(&scrapesFailed, 1)
	IncError(kind, "scraper")
}

// IncIngredients records a batch of parsed lines; fallbacks are lines whose
// canonical rendering is the raw text.
func IncIngredients(parsed, fallbacks int) {
	if parsed > 0 {
		atomic.AddUint64(&ingredientsParsed, uint64(parsed))
	}
	if fallbacks > 0 {
		atomic.AddUint64(&ingredientsRaw, uint64(fallbacks))
	}
}

func ObserveFetchDuration(seconds float64) {
	if seconds <= 0 {
		return
	}
	atomic.AddUint64(&fetchCount, 1)
	atomic.AddUint64(&fetchNanos, uint64(seconds*1e9))
}

func IncError(errType, component string) {
	if errType == "" {
		errType = "unknown"
	}
	if component == "" {
		component = "unknown"
	}
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	hostCopy := copyMap(scrapesByHost)
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	count := atomic.LoadUint64(&fetchCount)
	avg := 0.0
	if count > 0 {
		avg = float64(atomic.LoadUint64(&fetchNanos)) / float64(count) / 1e9
	}

	return StatsSnapshot{
		ScrapesStarted:    atomic.LoadUint64(&scrapesStarted),
		ScrapesSucceeded:  atomic.LoadUint64(&scrapesSucceeded),
		ScrapesFailed:     atomic.LoadUint64(&scrapesFailed),
		IngredientsParsed: atomic.LoadUint64(&ingredientsParsed),
		IngredientsRaw:    atomic.LoadUint64(&ingredientsRaw),
		FetchSecondsAvg:   avg,
		ScrapesByHost:     hostCopy,
		ErrorsByType:      errorsTypeCopy,
		ErrorsByComponent: errorsComponentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
