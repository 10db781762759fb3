package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/iw2rmb/atmention/mention"
)

// settings is the demo configuration. Sources, lowest first: defaults, the
// YAML config file, ATMENTION_* environment, flags.
type settings struct {
	Text     string `mapstructure:"text"`
	Pool     string `mapstructure:"pool"`
	Trigger  string `mapstructure:"trigger"`
	Sentinel string `mapstructure:"sentinel"`
	Policy   string `mapstructure:"policy"`
	ReadOnly bool   `mapstructure:"read_only"`

	Suggestions suggestionSettings `mapstructure:"suggestions"`
	Log         logSettings        `mapstructure:"log"`
}

type suggestionSettings struct {
	MaxRows  int `mapstructure:"max_rows"`
	MaxWidth int `mapstructure:"max_width"`
}

type logSettings struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// engineSettings is settings parsed into engine types.
type engineSettings struct {
	Trigger  rune
	Sentinel rune
	Policy   mention.CommitPolicy
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "atmention")
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("trigger", string(mention.DefaultTrigger))
	v.SetDefault("sentinel", fmt.Sprintf("U+%04X", mention.DefaultSentinel))
	v.SetDefault("policy", mention.CommitSpan.String())
	v.SetDefault("read_only", false)
	v.SetDefault("suggestions.max_rows", 6)
	v.SetDefault("suggestions.max_width", 48)
	v.SetDefault("log.level", "info")
}

// loadSettings reads settings into v. An explicit path must exist; the
// default locations are optional.
func loadSettings(v *viper.Viper, path string) (settings, error) {
	v.SetEnvPrefix("ATMENTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	applyDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

func (s settings) engine() (engineSettings, error) {
	trigger, err := parseRune(s.Trigger)
	if err != nil {
		return engineSettings{}, fmt.Errorf("trigger: %w", err)
	}
	sentinel, err := parseRune(s.Sentinel)
	if err != nil {
		return engineSettings{}, fmt.Errorf("sentinel: %w", err)
	}
	policy, err := mention.ParseCommitPolicy(s.Policy)
	if err != nil {
		return engineSettings{}, err
	}

	cfg := mention.Config{Trigger: trigger, Sentinel: sentinel, CommitPolicy: policy}
	if err := cfg.Validate(); err != nil {
		return engineSettings{}, err
	}
	return engineSettings{Trigger: trigger, Sentinel: sentinel, Policy: policy}, nil
}

// parseRune accepts a single character or a U+XXXX code point.
func parseRune(s string) (rune, error) {
	if hex, ok := strings.CutPrefix(strings.ToUpper(s), "U+"); ok {
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return 0, fmt.Errorf("invalid code point %q", s)
		}
		return rune(n), nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("want one character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
