package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Dicklesworthstone/srvmon/internal/logging"
	"github.com/Dicklesworthstone/srvmon/internal/platform"
)

// EnvPrefix namespaces environment overrides: --command-timeout is
// SRVMON_COMMAND_TIMEOUT.
const EnvPrefix = "SRVMON"

// Keys shared by flags, env and viper.
const (
	KeyInterval       = "interval"
	KeyGPU            = "gpu"
	KeyPlatform       = "platform"
	KeyMode           = "mode"
	KeyOnce           = "once"
	KeyNoColor        = "no-color"
	KeyCommandTimeout = "command-timeout"
	KeyCPUWindow      = "cpu-window"
	KeyLogFile        = "log-file"
	KeyLogLevel       = "log-level"
)

// Render modes.
const (
	ModeAuto  = "auto"
	ModeTUI   = "tui"
	ModePlain = "plain"
)

// MinInterval is the shortest refresh interval accepted.
const MinInterval = 100 * time.Millisecond

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config carries runtime options for srvmon.
type Config struct {
	Interval       time.Duration
	GPU            bool
	Platform       string
	Mode           string
	Once           bool
	NoColor        bool
	CommandTimeout time.Duration
	CPUWindow      time.Duration
	LogFile        string
	LogLevel       string
}

func Default() Config {
	return Config{
		Interval:       time.Second,
		GPU:            true,
		Platform:       "auto",
		Mode:           ModeAuto,
		CommandTimeout: 2 * time.Second,
		CPUWindow:      200 * time.Millisecond,
		LogLevel:       "info",
	}
}

// NewViper returns a viper instance carrying the defaults and reading
// SRVMON_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault(KeyInterval, d.Interval.String())
	v.SetDefault(KeyGPU, d.GPU)
	v.SetDefault(KeyPlatform, d.Platform)
	v.SetDefault(KeyMode, d.Mode)
	v.SetDefault(KeyOnce, d.Once)
	v.SetDefault(KeyNoColor, d.NoColor)
	v.SetDefault(KeyCommandTimeout, d.CommandTimeout.String())
	v.SetDefault(KeyCPUWindow, d.CPUWindow.String())
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	return v
}

// LoadDotEnv reads .env files into the process environment. Variables that
// are already set win, and a missing file is not an error.
func LoadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load resolves a Config from v (flags, then env, then defaults) and
// validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		GPU:      v.GetBool(KeyGPU),
		Platform: strings.ToLower(strings.TrimSpace(v.GetString(KeyPlatform))),
		Mode:     strings.ToLower(strings.TrimSpace(v.GetString(KeyMode))),
		Once:     v.GetBool(KeyOnce),
		NoColor:  v.GetBool(KeyNoColor),
		LogFile:  strings.TrimSpace(v.GetString(KeyLogFile)),
		LogLevel: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
	}

	var err error
	if cfg.Interval, err = durationKey(v, KeyInterval); err != nil {
		return Config{}, err
	}
	if cfg.CommandTimeout, err = durationKey(v, KeyCommandTimeout); err != nil {
		return Config{}, err
	}
	if cfg.CPUWindow, err = durationKey(v, KeyCPUWindow); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func durationKey(v *viper.Viper, key string) (time.Duration, error) {
	d, err := ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("%w: --%s: %v", ErrInvalid, key, err)
	}
	return d, nil
}

// ParseDuration accepts Go durations ("1.5s", "500ms") and bare seconds ("2").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	return time.ParseDuration(s + "s")
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.Interval < MinInterval {
		return fmt.Errorf("%w: interval %s is below %s", ErrInvalid, c.Interval, MinInterval)
	}
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("%w: command timeout must be positive", ErrInvalid)
	}
	if c.CPUWindow <= 0 {
		return fmt.Errorf("%w: cpu window must be positive", ErrInvalid)
	}
	switch c.Mode {
	case ModeAuto, ModeTUI, ModePlain:
	default:
		return fmt.Errorf("%w: mode %q (want auto, tui or plain)", ErrInvalid, c.Mode)
	}
	if _, _, err := platform.ParseKind(c.Platform); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// PlatformOverride returns the forced host class, or nil for detection.
func (c Config) PlatformOverride() *platform.Kind {
	k, ok, err := platform.ParseKind(c.Platform)
	if err != nil || !ok {
		return nil
	}
	return &k
}
