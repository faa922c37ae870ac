package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds process settings read from the environment.
type Config struct {
	Port          string
	DatabaseURL   string
	SitesPath     string
	ScrapeTimeout time.Duration
	RespectRobots bool
	LogLevel      slog.Level
}

// AdapterSchemaOrg is the only adapter kind a site file may name.
const AdapterSchemaOrg = "schema_org"

// Site binds a host to a generic adapter.
type Site struct {
	Host    string `yaml:"host"`
	Adapter string `yaml:"adapter"`
}

type sitesFile struct {
	Sites []Site `yaml:"sites"`
}

// Load reads settings from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:          os.Getenv("PORT"),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SitesPath:     os.Getenv("SITES_PATH"),
		ScrapeTimeout: 10 * time.Second,
		LogLevel:      slog.LevelInfo,
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SitesPath == "" {
		cfg.SitesPath = "sites.yaml"
	}

	if v := os.Getenv("SCRAPE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid SCRAPE_TIMEOUT %q", v)
		}
		cfg.ScrapeTimeout = d
	}
	if v := os.Getenv("RESPECT_ROBOTS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RESPECT_ROBOTS %q: %w", v, err)
		}
		cfg.RespectRobots = b
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
	}
	return cfg, nil
}

// LoadSites reads the YAML site file. A missing file yields no sites.
func LoadSites(path string) ([]Site, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sites file at '%s': %w", path, err)
	}
	var file sitesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sites file: %w", err)
	}

	sites := make([]Site, 0, len(file.Sites))
	for i, s := range file.Sites {
		s.Host = strings.ToLower(strings.TrimSpace(s.Host))
		if s.Host == "" {
			return nil, fmt.Errorf("site %d: missing host", i)
		}
		if s.Adapter == "" {
			s.Adapter = AdapterSchemaOrg
		}
		if s.Adapter != AdapterSchemaOrg {
			return nil, fmt.Errorf("site %s: unknown adapter %q", s.Host, s.Adapter)
		}
		sites = append(sites, s)
	}
	return sites, nil
}

// Hosts returns the hostnames of sites, in file order.
func Hosts(sites []Site) []string {
	hosts := make([]string, 0, len(sites))
	for _, s := range sites {
		hosts = append(hosts, s.Host)
	}
	return hosts
}
