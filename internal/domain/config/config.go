package config

import (
	"github.com/joho/godotenv"
	domainerr "github.com/thluiz/vox/internal/domain/errors"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	Content  ContentConfig  `yaml:"content"`
	Home     HomeConfig     `yaml:"home"`
	State    StateConfig    `yaml:"state"`
	Watch    WatchConfig    `yaml:"watch"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Log      LogConfig      `yaml:"log"`
}

type ContentConfig struct {
	Root      string `yaml:"root"`
	IndexFile string `yaml:"index_file"`
	Extension string `yaml:"extension"`
}

type HomeConfig struct {
	RecentCount     int    `yaml:"recent_count"`
	TopTags         int    `yaml:"top_tags"`
	TagWindowFactor int    `yaml:"tag_window_factor"`
	SectionHeading  string `yaml:"section_heading"`
	ItemTemplate    string `yaml:"item_template"`
}

type StateConfig struct {
	Path string `yaml:"path"`
	Keep int    `yaml:"keep"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

type ScheduleConfig struct {
	Spec     string `yaml:"spec"`
	TimeZone string `yaml:"time_zone"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	DefaultSectionHeading = "## Publicações Recentes"
	DefaultItemTemplate   = "- [[{{.Link}}|{{.Title}}]] — {{.Published}}"
)

func Default() Config {
	return Config{
		Content: ContentConfig{
			Root:      "/home/hermes/vox-content",
			IndexFile: "index.md",
			Extension: ".md",
		},
		Home: HomeConfig{
			RecentCount:     10,
			TopTags:         10,
			TagWindowFactor: 3,
			SectionHeading:  DefaultSectionHeading,
			ItemTemplate:    DefaultItemTemplate,
		},
		State: StateConfig{
			Keep: 100,
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
		Schedule: ScheduleConfig{
			Spec:     "@hourly",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// IndexPath resolves the index document; relative names live under the content root.
func (c Config) IndexPath() string {
	if filepath.IsAbs(c.Content.IndexFile) {
		return c.Content.IndexFile
	}
	return filepath.Join(c.Content.Root, c.Content.IndexFile)
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Content.Root) == "" {
		ve.Add("content.root", "must not be empty")
	}
	if strings.TrimSpace(c.Content.IndexFile) == "" {
		ve.Add("content.index_file", "must not be empty")
	}
	if !strings.HasPrefix(c.Content.Extension, ".") {
		ve.Add("content.extension", "must start with '.'")
	}

	if c.Home.RecentCount <= 0 {
		ve.Add("home.recent_count", "must be positive")
	}
	if c.Home.TopTags <= 0 {
		ve.Add("home.top_tags", "must be positive")
	}
	if c.Home.TagWindowFactor < 1 {
		ve.Add("home.tag_window_factor", "must be at least 1")
	}
	if h := c.Home.SectionHeading; strings.TrimSpace(h) == "" {
		ve.Add("home.section_heading", "must not be empty")
	} else if strings.ContainsAny(h, "\r\n") {
		ve.Add("home.section_heading", "must be a single line")
	}
	// list items are what the section scanner removes on the next run
	if !strings.HasPrefix(c.Home.ItemTemplate, "- ") {
		ve.Add("home.item_template", "must start with '- '")
	} else if strings.ContainsAny(c.Home.ItemTemplate, "\r\n") {
		ve.Add("home.item_template", "must be a single line")
	}

	if c.State.Path != "" && c.State.Keep < 0 {
		ve.Add("state.keep", "must not be negative")
	}
	if c.Watch.Debounce < 0 {
		ve.Add("watch.debounce", "must not be negative")
	}
	if _, err := time.LoadLocation(c.Schedule.TimeZone); err != nil {
		ve.Add("schedule.time_zone", "unknown time zone")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		ve.Add("log.level", "must be one of debug, info, warn, error")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		ve.Add("log.format", "must be 'console' or 'json'")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when path does not exist.
func LoadOrDefault(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv lets the process environment, or a .env file in the working
// directory, override file settings.
func applyEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := strings.TrimSpace(os.Getenv("VOX_CONTENT_DIR")); v != "" {
		cfg.Content.Root = v
	}
	if v := strings.TrimSpace(os.Getenv("VOX_INDEX_FILE")); v != "" {
		cfg.Content.IndexFile = v
	}
	if v := strings.TrimSpace(os.Getenv("VOX_STATE_PATH")); v != "" {
		cfg.State.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("VOX_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
}
