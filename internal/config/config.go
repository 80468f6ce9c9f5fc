package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Output   OutputConfig  `mapstructure:"output"`
	Fixture  FixtureConfig `mapstructure:"fixture"`
	Encoder  EncoderConfig `mapstructure:"encoder"`
	Presets  PresetsConfig `mapstructure:"presets"`
	LogLevel string        `mapstructure:"log_level"`
}

type OutputConfig struct {
	Dir  string `mapstructure:"dir"`
	Name string `mapstructure:"name"`
}

type FixtureConfig struct {
	SampleRate      int     `mapstructure:"sample_rate"`
	DurationSeconds float64 `mapstructure:"duration_seconds"`
	FrequencyHz     float64 `mapstructure:"frequency_hz"`
	AmplitudeScale  float64 `mapstructure:"amplitude_scale"`
	FadeSeconds     float64 `mapstructure:"fade_seconds"`
}

type EncoderConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Binary    string        `mapstructure:"binary"`
	Codec     string        `mapstructure:"codec"`
	Bitrate   string        `mapstructure:"bitrate"`
	Extension string        `mapstructure:"extension"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type PresetsConfig struct {
	File  string `mapstructure:"file"`
	Model string `mapstructure:"model"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Dir:  "test-audio",
			Name: "",
		},
		Fixture: FixtureConfig{
			SampleRate:      44100,
			DurationSeconds: 5.0,
			FrequencyHz:     440,
			AmplitudeScale:  0.3,
			FadeSeconds:     0.1,
		},
		Encoder: EncoderConfig{
			Enabled:   true,
			Binary:    "ffmpeg",
			Codec:     "libopus",
			Bitrate:   "128k",
			Extension: "",
			Timeout:   30 * time.Second,
		},
		Presets: PresetsConfig{
			File:  "",
			Model: "kotoba-tech/kotoba-whisper-v2.0-faster",
		},
		LogLevel: "info",
	}
}

// flagKeys maps config keys to their command-line flag names.
var flagKeys = []struct{ key, flag string }{
	{"output.dir", "output-dir"},
	{"output.name", "output-name"},
	{"fixture.sample_rate", "sample-rate"},
	{"fixture.duration_seconds", "duration"},
	{"fixture.frequency_hz", "frequency"},
	{"fixture.amplitude_scale", "amplitude"},
	{"fixture.fade_seconds", "fade"},
	{"encoder.enabled", "encode"},
	{"encoder.binary", "encoder-binary"},
	{"encoder.codec", "encoder-codec"},
	{"encoder.bitrate", "encoder-bitrate"},
	{"encoder.extension", "encoder-extension"},
	{"encoder.timeout", "encoder-timeout"},
	{"presets.file", "presets-file"},
	{"presets.model", "model"},
	{"log_level", "log-level"},
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("output-dir", defaults.Output.Dir, "Directory receiving generated fixtures")
	fs.String("output-name", defaults.Output.Name, "Fixture file name without extension (default derived from tone)")
	fs.Int("sample-rate", defaults.Fixture.SampleRate, "Sample rate in Hz")
	fs.Float64("duration", defaults.Fixture.DurationSeconds, "Tone duration in seconds")
	fs.Float64("frequency", defaults.Fixture.FrequencyHz, "Tone frequency in Hz")
	fs.Float64("amplitude", defaults.Fixture.AmplitudeScale, "Peak amplitude in (0, 1]")
	fs.Float64("fade", defaults.Fixture.FadeSeconds, "Linear fade-in/out length in seconds")
	fs.Bool("encode", defaults.Encoder.Enabled, "Transcode the WAV fixture with the external encoder")
	fs.String("encoder-binary", defaults.Encoder.Binary, "Encoder executable")
	fs.String("encoder-codec", defaults.Encoder.Codec, "Encoder audio codec")
	fs.String("encoder-bitrate", defaults.Encoder.Bitrate, "Encoder audio bitrate")
	fs.String("encoder-extension", defaults.Encoder.Extension, "Compressed file extension (default derived from codec)")
	fs.Duration("encoder-timeout", defaults.Encoder.Timeout, "Maximum encoder run time")
	fs.String("presets-file", defaults.Presets.File, "YAML preset catalog (built-in presets when empty)")
	fs.String("model", defaults.Presets.Model, "Model whose decoding presets are inspected")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("FIXTUREGEN")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("fixturegen")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// Validate rejects settings no command can run with. Tone parameters are
// checked by the synthesizer itself.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return errors.New("output.dir must not be empty")
	}
	if c.Encoder.Enabled && c.Encoder.Timeout <= 0 {
		return fmt.Errorf("encoder.timeout must be positive, got %v", c.Encoder.Timeout)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, fk := range flagKeys {
		f := fs.Lookup(fk.flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(fk.key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", fk.flag, err)
		}
	}

	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("output.dir", c.Output.Dir)
	v.SetDefault("output.name", c.Output.Name)
	v.SetDefault("fixture.sample_rate", c.Fixture.SampleRate)
	v.SetDefault("fixture.duration_seconds", c.Fixture.DurationSeconds)
	v.SetDefault("fixture.frequency_hz", c.Fixture.FrequencyHz)
	v.SetDefault("fixture.amplitude_scale", c.Fixture.AmplitudeScale)
	v.SetDefault("fixture.fade_seconds", c.Fixture.FadeSeconds)
	v.SetDefault("encoder.enabled", c.Encoder.Enabled)
	v.SetDefault("encoder.binary", c.Encoder.Binary)
	v.SetDefault("encoder.codec", c.Encoder.Codec)
	v.SetDefault("encoder.bitrate", c.Encoder.Bitrate)
	v.SetDefault("encoder.extension", c.Encoder.Extension)
	v.SetDefault("encoder.timeout", c.Encoder.Timeout)
	v.SetDefault("presets.file", c.Presets.File)
	v.SetDefault("presets.model", c.Presets.Model)
	v.SetDefault("log_level", c.LogLevel)
}
