// Package config loads formdiff settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"formdiff/internal/compare"
	"formdiff/internal/form"
	"formdiff/internal/header"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FORMDIFF_"

// DotenvFile is loaded, when present, before environment overrides are read.
const DotenvFile = ".env"

// Config holds every formdiff setting. Zero values are not defaults; start
// from Default.
type Config struct {
	Languages []string `yaml:"languages"` // Tesseract languages
	Workers   int      `yaml:"workers"`   // 0 means one per CPU

	IgnoreCase          bool    `yaml:"ignore_case"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	FocusTolerance      int     `yaml:"focus_tolerance"`
	FieldDiff           bool    `yaml:"field_diff"`
	FieldMatchDistance  float64 `yaml:"field_match_distance"`
	PerceptualHash      bool    `yaml:"perceptual_hash"`
	Verbose             bool    `yaml:"verbose"`

	HeaderFallback       float64 `yaml:"header_fallback_percentage"`
	HeaderColorTolerance float64 `yaml:"header_color_tolerance"`

	LineTolerance int `yaml:"line_tolerance"`
	MaxGap        int `yaml:"max_gap"`
}

// Default returns the built-in settings.
func Default() *Config {
	opts := compare.DefaultOptions()
	hp := header.DefaultParams()
	return &Config{
		Languages:            []string{"eng", "jpn"},
		Workers:              0,
		IgnoreCase:           opts.IgnoreCase,
		SimilarityThreshold:  opts.SimilarityThreshold,
		FocusTolerance:       opts.FocusTolerance,
		FieldDiff:            opts.FieldDiff,
		FieldMatchDistance:   opts.FieldMatchDistance,
		PerceptualHash:       opts.PerceptualHash,
		Verbose:              opts.Verbose,
		HeaderFallback:       hp.FallbackPercentage,
		HeaderColorTolerance: hp.ColorTolerance,
		LineTolerance:        opts.Group.LineTolerance,
		MaxGap:               opts.Group.MaxGap,
	}
}

// Load returns Default overlaid with the YAML file at path (skipped when path
// is empty), then with FORMDIFF_* environment variables. A .env file in the
// working directory is loaded first; it never overrides variables already set.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(DotenvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", DotenvFile, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is in range.
func (c *Config) Validate() error {
	switch {
	case c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1:
		return fmt.Errorf("similarity_threshold must be within [0,1], got %g", c.SimilarityThreshold)
	case c.FocusTolerance < 0:
		return fmt.Errorf("focus_tolerance must not be negative, got %d", c.FocusTolerance)
	case c.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	case c.HeaderFallback < 0 || c.HeaderFallback >= 1:
		return fmt.Errorf("header_fallback_percentage must be within [0,1), got %g", c.HeaderFallback)
	case c.FieldMatchDistance <= 0:
		return fmt.Errorf("field_match_distance must be positive, got %g", c.FieldMatchDistance)
	case len(c.Languages) == 0:
		return errors.New("at least one OCR language is required")
	}
	for _, l := range c.Languages {
		if strings.TrimSpace(l) == "" {
			return errors.New("OCR language names must not be empty")
		}
	}
	return nil
}

// CompareOptions converts the settings into comparator options.
func (c *Config) CompareOptions() compare.Options {
	opts := compare.DefaultOptions()
	opts.IgnoreCase = c.IgnoreCase
	opts.SimilarityThreshold = c.SimilarityThreshold
	opts.FocusTolerance = c.FocusTolerance
	opts.FieldDiff = c.FieldDiff
	opts.FieldMatchDistance = c.FieldMatchDistance
	opts.PerceptualHash = c.PerceptualHash
	opts.Verbose = c.Verbose
	opts.Group = form.GroupParams{LineTolerance: c.LineTolerance, MaxGap: c.MaxGap}
	return opts
}

// HeaderParams converts the settings into header cropper parameters.
func (c *Config) HeaderParams() header.Params {
	return header.DefaultParams().
		WithFallbackPercentage(c.HeaderFallback).
		WithColorTolerance(c.HeaderColorTolerance)
}

func (c *Config) applyEnv() error {
	setList("LANGUAGES", &c.Languages)
	return errors.Join(
		setInt("WORKERS", &c.Workers),
		setBool("IGNORE_CASE", &c.IgnoreCase),
		setFloat("SIMILARITY_THRESHOLD", &c.SimilarityThreshold),
		setInt("FOCUS_TOLERANCE", &c.FocusTolerance),
		setBool("FIELD_DIFF", &c.FieldDiff),
		setFloat("FIELD_MATCH_DISTANCE", &c.FieldMatchDistance),
		setBool("PERCEPTUAL_HASH", &c.PerceptualHash),
		setBool("VERBOSE", &c.Verbose),
		setFloat("HEADER_FALLBACK_PERCENTAGE", &c.HeaderFallback),
		setFloat("HEADER_COLOR_TOLERANCE", &c.HeaderColorTolerance),
	)
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func setInt(key string, dst *int) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	*dst = i
	return nil
}

func setFloat(key string, dst *float64) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	*dst = f
	return nil
}

func setBool(key string, dst *bool) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	*dst = b
	return nil
}

func setList(key string, dst *[]string) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	*dst = SplitList(v)
}

// SplitList splits a comma-separated list, trimming entries and dropping
// empty ones.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			result = append(result, t)
		}
	}
	return result
}
