package internal

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/deroule/internal/models"
	"github.com/starford/deroule/internal/schedule"
)

// Log formats.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Course   CourseConfig      `yaml:"course"`
	Defaults DefaultsConfig    `yaml:"defaults"`
	History  HistoryConfig     `yaml:"history"`
	Watch    WatchConfig       `yaml:"watch"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Course.Validate(); err != nil {
		return err
	}
	if err := c.Defaults.Validate(); err != nil {
		return err
	}
	return c.Watch.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level"`
	LogFormat string     `yaml:"log_format"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if c.LogFormat == "" {
		c.LogFormat = LogFormatJSON
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.In(LogFormatJSON, LogFormatText)),
	)
}

// CourseConfig locates the course files. Path is the course root; every
// other path is relative to it.
type CourseConfig struct {
	Path         string `yaml:"path"`
	PlanFile     string `yaml:"plan_file"`
	SlidesDir    string `yaml:"slides_dir"`
	ManifestFile string `yaml:"manifest_file"`
	DataDir      string `yaml:"data_dir"`
	StagingFile  string `yaml:"staging_file"`
}

// Validate validates the course configuration. Path is checked by
// RequirePath since it usually arrives from the command line after loading.
func (c *CourseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.PlanFile, validation.Required),
		validation.Field(&c.SlidesDir, validation.Required),
		validation.Field(&c.ManifestFile, validation.Required),
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.StagingFile, validation.Required),
	)
}

// RequirePath validates that a course root was given.
func (c *CourseConfig) RequirePath() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// Layout returns the schedule layout described by the configuration.
func (c *CourseConfig) Layout() schedule.Layout {
	return schedule.Layout{
		PlanFile:     c.PlanFile,
		SlidesDir:    c.SlidesDir,
		ManifestFile: c.ManifestFile,
		DataDir:      c.DataDir,
		StagingFile:  c.StagingFile,
	}
}

// DefaultsConfig holds the values given to entries when a slide file's
// frontmatter does not override them.
type DefaultsConfig struct {
	Activity   string `yaml:"activity"`
	ActivityTP string `yaml:"activity_tp"`
	Tool       string `yaml:"tool"`
	Objective  string `yaml:"objective"`
	Duration   string `yaml:"duration"`
}

// Validate validates the defaults configuration.
func (c *DefaultsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Activity, validation.Required),
		validation.Field(&c.ActivityTP, validation.Required),
		validation.Field(&c.Tool, validation.Required),
		validation.Field(&c.Objective, validation.Required),
		validation.Field(&c.Duration, validation.Required, validation.By(estimateMarked)),
	)
}

// Models returns the defaults as domain values.
func (c *DefaultsConfig) Models() models.Defaults {
	return models.Defaults{
		Activity:   c.Activity,
		ActivityTP: c.ActivityTP,
		Tool:       c.Tool,
		Objective:  c.Objective,
		Duration:   c.Duration,
	}
}

func estimateMarked(value any) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, models.EstimateMarker) {
		return errors.New("must start with the estimate marker " + models.EstimateMarker)
	}
	return nil
}

// HistoryConfig holds the run history database settings. An empty Path
// disables history.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// Enabled returns true when runs should be recorded.
func (c *HistoryConfig) Enabled() bool {
	return c.Path != ""
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Validate validates the watch configuration.
func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Required, validation.Min(time.Millisecond)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	layout := schedule.DefaultLayout()
	d := models.DefaultDefaults()
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelInfo,
			LogFormat: LogFormatJSON,
		},
		Course: CourseConfig{
			PlanFile:     layout.PlanFile,
			SlidesDir:    layout.SlidesDir,
			ManifestFile: layout.ManifestFile,
			DataDir:      layout.DataDir,
			StagingFile:  layout.StagingFile,
		},
		Defaults: DefaultsConfig{
			Activity:   d.Activity,
			ActivityTP: d.ActivityTP,
			Tool:       d.Tool,
			Objective:  d.Objective,
			Duration:   d.Duration,
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
	}
}
