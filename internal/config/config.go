// Package config loads the site configuration from config.yaml, an optional
// .env file and a handful of well-known environment variables. A missing
// config file is not an error: every field has a usable default, matching a
// site that is configured purely through its environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root application configuration.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Build     BuildConfig     `yaml:"build"`
	Watch     WatchConfig     `yaml:"watch"`
	Events    EventsConfig    `yaml:"events"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Legal     LegalConfig     `yaml:"legal"`
}

// SiteConfig identifies the published site.
type SiteConfig struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// BuildConfig holds the directory layout and publishing switches.
type BuildConfig struct {
	PagesDir     string `yaml:"pages_dir"`
	TemplatesDir string `yaml:"templates_dir"`
	StaticDir    string `yaml:"static_dir"`
	OutputDir    string `yaml:"output_dir"`
	SearchLib    string `yaml:"search_lib"`

	Drafts bool `yaml:"drafts"`

	// Pointers so an absent key defaults to true instead of false.
	InjectNavbar *bool `yaml:"inject_navbar,omitempty"`
	InjectOGTags *bool `yaml:"inject_og_tags,omitempty"`
}

// NavbarEnabled reports whether navigation injection is on (default true).
func (b BuildConfig) NavbarEnabled() bool { return b.InjectNavbar == nil || *b.InjectNavbar }

// OGTagsEnabled reports whether SEO metadata injection is on (default true).
func (b BuildConfig) OGTagsEnabled() bool { return b.InjectOGTags == nil || *b.InjectOGTags }

// WatchConfig configures watch mode and its preview server.
type WatchConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"` // 0 disables the metrics endpoint
	DebounceMS  int `yaml:"debounce_ms"`
}

// EventsConfig enables optional build event publishing. Empty URL disables it.
type EventsConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// AnalyticsConfig carries the optional analytics token. Empty disables the
// analytics loader entirely.
type AnalyticsConfig struct {
	Token string `yaml:"token"`
}

// LegalConfig feeds the legal contact placeholders of the templated pages.
type LegalConfig struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Email   string `yaml:"email"`
}

// Load reads the configuration file, expands ${VAR} references, applies
// environment overrides and fills in defaults. A nonexistent path yields the
// default configuration.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only; the original site ran entirely from env.
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

// loadEnvFiles pulls in .env/.env.local without overriding the existing
// process environment.
func loadEnvFiles() {
	for _, p := range []string{".env", ".env.local"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

// applyEnvOverrides maps the well-known deployment variables onto the config.
// These take precedence over file values so CI can steer a build without
// touching config.yaml.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SITE_URL"); v != "" {
		cfg.Site.URL = v
	}
	if v := os.Getenv("CF_ANALYTICS_TOKEN"); v != "" {
		cfg.Analytics.Token = v
	}
	if strings.EqualFold(os.Getenv("BUILD_DRAFTS"), "true") {
		cfg.Build.Drafts = true
	}
	if v := os.Getenv("LEGAL_NAME"); v != "" {
		cfg.Legal.Name = v
	}
	if v := os.Getenv("LEGAL_ADDRESS"); v != "" {
		cfg.Legal.Address = v
	}
	if v := os.Getenv("LEGAL_EMAIL"); v != "" {
		cfg.Legal.Email = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Site.URL == "" {
		cfg.Site.URL = "https://wiki.deinedomain.de"
	}
	cfg.Site.URL = strings.TrimRight(cfg.Site.URL, "/")
	if cfg.Site.Name == "" {
		cfg.Site.Name = "Athlete Wiki"
	}

	if cfg.Build.PagesDir == "" {
		cfg.Build.PagesDir = "pages"
	}
	if cfg.Build.TemplatesDir == "" {
		cfg.Build.TemplatesDir = "templates"
	}
	if cfg.Build.StaticDir == "" {
		cfg.Build.StaticDir = "static"
	}
	if cfg.Build.OutputDir == "" {
		cfg.Build.OutputDir = "public"
	}
	if cfg.Build.SearchLib == "" {
		cfg.Build.SearchLib = "assets/fuse.min.js"
	}

	if cfg.Watch.Port == 0 {
		cfg.Watch.Port = 3000
	}
	if cfg.Watch.DebounceMS == 0 {
		cfg.Watch.DebounceMS = 200
	}

	if cfg.Events.Subject == "" {
		cfg.Events.Subject = "athletewiki.builds"
	}

	if cfg.Legal.Name == "" {
		cfg.Legal.Name = "[Name eintragen]"
	}
	if cfg.Legal.Address == "" {
		cfg.Legal.Address = "[Adresse eintragen]"
	}
	if cfg.Legal.Email == "" {
		cfg.Legal.Email = "[E-Mail eintragen]"
	}
}
