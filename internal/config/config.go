// Package config loads quizclient settings from defaults, an optional YAML
// file, an optional .env file and QUIZCLIENT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizclient/internal/view"
)

// EnvPrefix prefixes every environment variable the client reads.
const EnvPrefix = "QUIZCLIENT_"

// Config holds all client configuration.
type Config struct {
	// ServerURL is the base URL of the quiz server.
	ServerURL string `yaml:"server_url" validate:"required,url"`

	// QuizPath and GradePath are joined to ServerURL.
	QuizPath  string `yaml:"quiz_path" validate:"required,startswith=/"`
	GradePath string `yaml:"grade_path" validate:"required,startswith=/"`

	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`

	ShowStats    bool   `yaml:"show_stats"`
	KeywordMode  string `yaml:"keyword_mode" validate:"keyword_mode"`
	ResultDetail string `yaml:"result_detail" validate:"result_detail"`

	// ValidateQuiz checks GET /quiz bodies against the payload schema.
	ValidateQuiz bool `yaml:"validate_quiz"`

	LogFile   string `yaml:"log_file"`
	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`

	// ExportPath, when set, receives an .xlsx workbook after every grade.
	ExportPath string `yaml:"export_path" validate:"omitempty,endswith=.xlsx"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ServerURL:    "http://127.0.0.1:5000",
		QuizPath:     "/quiz",
		GradePath:    "/grade",
		ShowStats:    true,
		KeywordMode:  string(view.KeywordsPreserve),
		ResultDetail: string(view.DetailTable),
		ValidateQuiz: true,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// LoadOptions name the optional files Load reads.
type LoadOptions struct {
	// ConfigPath is a YAML file. Empty falls back to QUIZCLIENT_CONFIG.
	ConfigPath string
	// EnvFile is a dotenv file. A missing file is ignored.
	EnvFile string
}

// Load builds a Config from defaults, the YAML file, the .env file and the
// environment, in that order. Flags are applied by the caller before
// Validate.
func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	if opts.EnvFile != "" {
		if err := LoadDotEnv(opts.EnvFile); err != nil {
			return cfg, err
		}
	}

	path := opts.ConfigPath
	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := ApplyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile decodes a YAML file over cfg. Unknown keys are rejected.
func LoadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv exports the variables of a dotenv file. Variables already set
// in the environment win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with every set QUIZCLIENT_* variable.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) error {
		v := getenv(EnvPrefix + name)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("SERVER_URL", &cfg.ServerURL)
	str("QUIZ_PATH", &cfg.QuizPath)
	str("GRADE_PATH", &cfg.GradePath)
	str("KEYWORD_MODE", &cfg.KeywordMode)
	str("RESULT_DETAIL", &cfg.ResultDetail)
	str("LOG_FILE", &cfg.LogFile)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("EXPORT_PATH", &cfg.ExportPath)

	if err := boolean("SHOW_STATS", &cfg.ShowStats); err != nil {
		return err
	}
	if err := boolean("VALIDATE_QUIZ", &cfg.ValidateQuiz); err != nil {
		return err
	}

	if v := getenv(EnvPrefix + "TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Timeout = d
	}
	return nil
}

// Validate checks every field and reports the first problem by its YAML
// name.
func (c Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "url":
		return fmt.Errorf("%s must be an absolute URL, got %q", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "startswith":
		return fmt.Errorf("%s must start with %q, got %q", fe.Field(), fe.Param(), fe.Value())
	case "endswith":
		return fmt.Errorf("%s must end with %q, got %q", fe.Field(), fe.Param(), fe.Value())
	case "keyword_mode", "result_detail":
		return fmt.Errorf("%s: unknown value %q", fe.Field(), fe.Value())
	default:
		return fmt.Errorf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// ViewOptions returns the renderer options selected by c. Call after
// Validate.
func (c Config) ViewOptions() view.Options {
	opts := view.DefaultOptions()
	opts.ShowStats = c.ShowStats
	if m, err := view.ParseKeywordMode(c.KeywordMode); err == nil {
		opts.KeywordMode = m
	}
	if d, err := view.ParseResultDetail(c.ResultDetail); err == nil {
		opts.ResultDetail = d
	}
	return opts
}

// QuizURL is the full GET /quiz address.
func (c Config) QuizURL() string {
	return strings.TrimRight(c.ServerURL, "/") + c.QuizPath
}

// GradeURL is the full POST /grade address.
func (c Config) GradeURL() string {
	return strings.TrimRight(c.ServerURL, "/") + c.GradePath
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("keyword_mode", func(fl validator.FieldLevel) bool {
		_, err := view.ParseKeywordMode(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("result_detail", func(fl validator.FieldLevel) bool {
		_, err := view.ParseResultDetail(fl.Field().String())
		return err == nil
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
