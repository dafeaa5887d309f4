package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given explicitly
const DefaultPath = "config.yaml"

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = eris.New("invalid config")

// Config holds all runtime settings of the scraper
type Config struct {
	BaseURL string        `yaml:"base_url"`
	Fetcher FetcherConfig `yaml:"fetcher"`
	Parser  ParserConfig  `yaml:"parser"`
	Scraper ScraperConfig `yaml:"scraper"`
	Output  OutputConfig  `yaml:"output"`
	Filters FilterConfig  `yaml:"filters"`
	Log     LogConfig     `yaml:"log"`
}

// FetcherConfig selects and tunes the page fetcher
type FetcherConfig struct {
	Engine    string        `yaml:"engine"`     // http or colly
	UserAgent string        `yaml:"user_agent"` // empty sends the client default
	Timeout   time.Duration `yaml:"timeout"`    // 0 means no timeout
}

// ParserConfig holds the CSS selectors and the missing element policy
type ParserConfig struct {
	QuoteSelector  string `yaml:"quote_selector"`
	TextSelector   string `yaml:"text_selector"`
	AuthorSelector string `yaml:"author_selector"`
	TagSelector    string `yaml:"tag_selector"`
	OnMissing      string `yaml:"on_missing"` // fail or skip
}

// ScraperConfig drives the pagination loop
type ScraperConfig struct {
	Delay             time.Duration `yaml:"delay"`
	MaxPages          int           `yaml:"max_pages"` // 0 means unbounded
	FailOnUnavailable bool          `yaml:"fail_on_unavailable"`
}

// OutputConfig describes the CSV file
type OutputConfig struct {
	Path       string `yaml:"path"`
	TagsFormat string `yaml:"tags_format"` // python, json or semicolon
	CRLF       bool   `yaml:"crlf"`
}

// FilterConfig represents the filter criteria applied before writing
type FilterConfig struct {
	Authors []string `yaml:"authors"`
	Tags    []string `yaml:"tags"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Accepted enum values
const (
	EngineHTTP  = "http"
	EngineColly = "colly"

	OnMissingFail = "fail"
	OnMissingSkip = "skip"

	TagsFormatPython    = "python"
	TagsFormatJSON      = "json"
	TagsFormatSemicolon = "semicolon"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *Config {
	return &Config{
		BaseURL: "https://quotes.toscrape.com/",
		Fetcher: FetcherConfig{
			Engine: EngineHTTP,
		},
		Parser: ParserConfig{
			QuoteSelector:  ".quote",
			TextSelector:   ".text",
			AuthorSelector: ".author",
			TagSelector:    ".tag",
			OnMissing:      OnMissingFail,
		},
		Scraper: ScraperConfig{
			Delay: time.Second,
		},
		Output: OutputConfig{
			Path:       "quotes.csv",
			TagsFormat: TagsFormatPython,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatText,
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
// A missing file is an error unless optional is set.
func LoadConfig(path string, optional bool) (*Config, error) {
	cfg := GetDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, eris.Wrapf(err, "failed to read config file %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrapf(err, "failed to parse config file %s", path)
	}

	return cfg, nil
}

// Load reads .env (if present), the YAML file and environment overrides, then validates
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, eris.Wrap(err, "failed to load .env file")
	}

	optional := path == "" || path == DefaultPath
	if path == "" {
		path = DefaultPath
	}

	cfg, err := LoadConfig(path, optional)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from QUOTES_* variables looked up with getenv
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("QUOTES_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := getenv("QUOTES_OUTPUT"); v != "" {
		c.Output.Path = v
	}
	if v := getenv("QUOTES_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return eris.Wrapf(ErrInvalidConfig, "QUOTES_DELAY %q: %v", v, err)
		}
		c.Scraper.Delay = d
	}
	if v := getenv("QUOTES_MAX_PAGES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return eris.Wrapf(ErrInvalidConfig, "QUOTES_MAX_PAGES %q: %v", v, err)
		}
		c.Scraper.MaxPages = n
	}
	if v := getenv("QUOTES_ENGINE"); v != "" {
		c.Fetcher.Engine = v
	}
	if v := getenv("QUOTES_USER_AGENT"); v != "" {
		c.Fetcher.UserAgent = v
	}
	if v := getenv("QUOTES_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("QUOTES_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := getenv("QUOTES_TAGS_FORMAT"); v != "" {
		c.Output.TagsFormat = v
	}
	return nil
}

// Validate checks the configuration for values the scraper cannot run with
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return eris.Wrapf(ErrInvalidConfig, "base_url %q must be an absolute URL", c.BaseURL)
	}
	if c.Output.Path == "" {
		return eris.Wrap(ErrInvalidConfig, "output path is empty")
	}
	if c.Scraper.Delay < 0 {
		return eris.Wrapf(ErrInvalidConfig, "delay %s is negative", c.Scraper.Delay)
	}
	if c.Scraper.MaxPages < 0 {
		return eris.Wrapf(ErrInvalidConfig, "max_pages %d is negative", c.Scraper.MaxPages)
	}
	if c.Fetcher.Timeout < 0 {
		return eris.Wrapf(ErrInvalidConfig, "fetcher timeout %s is negative", c.Fetcher.Timeout)
	}
	if err := oneOf("fetcher.engine", c.Fetcher.Engine, EngineHTTP, EngineColly); err != nil {
		return err
	}
	if err := oneOf("parser.on_missing", c.Parser.OnMissing, OnMissingFail, OnMissingSkip); err != nil {
		return err
	}
	if err := oneOf("output.tags_format", c.Output.TagsFormat, TagsFormatPython, TagsFormatJSON, TagsFormatSemicolon); err != nil {
		return err
	}
	if err := oneOf("log.format", c.Log.Format, LogFormatText, LogFormatJSON); err != nil {
		return err
	}
	for name, sel := range map[string]string{
		"quote_selector":  c.Parser.QuoteSelector,
		"text_selector":   c.Parser.TextSelector,
		"author_selector": c.Parser.AuthorSelector,
		"tag_selector":    c.Parser.TagSelector,
	} {
		if strings.TrimSpace(sel) == "" {
			return eris.Wrapf(ErrInvalidConfig, "parser.%s is empty", name)
		}
	}
	return nil
}

func oneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return eris.Wrapf(ErrInvalidConfig, "%s %q is not one of %s", field, value, strings.Join(allowed, ", "))
}
