package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/dshills/gridedit/internal/config/loader"
	"github.com/dshills/gridedit/internal/engine/buffer"
	"github.com/dshills/gridedit/internal/renderer/core"
)

// AppName names the XDG subdirectories used for config, state and logs.
const AppName = "gridedit"

// configNames are searched in order under the XDG config directories.
var configNames = []string{"config.toml", "config.yaml", "config.yml"}

// EditorConfig holds [editor] settings.
type EditorConfig struct {
	// Tick is the render loop period.
	Tick time.Duration
	// BlinkPeriod is the duration of each caret blink phase.
	BlinkPeriod time.Duration
	// GutterWidth is the width of the line number column.
	GutterWidth int
	// TabWidth is the number of spaces a tab inserts.
	TabWidth int
	// Encoding is used to read and write files.
	Encoding buffer.Encoding
	// Recovery writes <file>.temp on SIGHUP/SIGTERM and prefers it on startup.
	Recovery bool
	// Watch reports changes made to the open file by other programs.
	Watch bool
}

// Theme holds [theme] colors.
type Theme struct {
	Text               core.Color
	Background         core.Color
	SelectedText       core.Color
	SelectedBackground core.Color
	CaretText          core.Color
	Caret              core.Color
	GutterText         core.Color
	GutterCurrent      core.Color
	GutterBackground   core.Color
	StatusText         core.Color
	StatusBackground   core.Color
	StatusError        core.Color
	FileNameText       core.Color
	FileNameBackground core.Color
}

// LogConfig holds [log] settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error or off.
	Level string
	// File is the log file. Empty means the XDG state directory.
	File string
}

// Config is the complete editor configuration.
type Config struct {
	Editor EditorConfig
	Theme  Theme
	Log    LogConfig

	// Path is the file the configuration was read from, or "" when only
	// defaults and the environment were used.
	Path string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Tick:        10 * time.Millisecond,
			BlinkPeriod: 500 * time.Millisecond,
			GutterWidth: 8,
			TabWidth:    4,
			Encoding:    buffer.EncodingUTF8,
			Recovery:    true,
			Watch:       true,
		},
		Theme: Theme{
			Text:               core.ColorBlack,
			Background:         core.ColorWhite,
			SelectedText:       core.ColorBlack,
			SelectedBackground: core.ColorLightGray,
			CaretText:          core.ColorWhite,
			Caret:              core.ColorLightBlue,
			GutterText:         core.ColorGray,
			GutterCurrent:      core.ColorLightBlue,
			GutterBackground:   core.ColorWhite,
			StatusText:         core.ColorWhite,
			StatusBackground:   core.ColorCyan,
			StatusError:        core.ColorLightRed,
			FileNameText:       core.ColorCyan,
			FileNameBackground: core.ColorWhite,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns where the user config file is expected.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, configNames[0])
}

// FindConfigFile returns the first existing config file in the XDG config
// directories, or "" when there is none.
func FindConfigFile() string {
	for _, name := range configNames {
		if path, err := xdg.SearchConfigFile(filepath.Join(AppName, name)); err == nil {
			return path
		}
	}
	return ""
}

// LogPath returns the log file path, creating its directory under the XDG
// state home when no file is configured.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return xdg.StateFile(filepath.Join(AppName, AppName+".log"))
}

// UntitledPath returns the name under which an unnamed buffer keeps its
// recovery file, creating its directory under the XDG state home.
func (c *Config) UntitledPath() (string, error) {
	return xdg.StateFile(filepath.Join(AppName, "untitled"))
}

// Load reads the configuration at path, or the first file found in the XDG
// config directories when path is empty, then applies GRIDEDIT_ environment
// variables.
//
// A missing file is not an error. On parse or validation errors the
// returned Config is still usable: rejected values keep their defaults and
// the error describes what was ignored.
func Load(path string) (*Config, error) {
	return LoadWith(loader.DefaultFS(), path, os.Environ())
}

// LoadWith is Load with an explicit file system and environment.
func LoadWith(fsys loader.FileSystem, path string, environ []string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = FindConfigFile()
	}

	var errs []error
	values := map[string]any{}
	if path != "" {
		l, err := loader.ForPath(fsys, path)
		if err != nil {
			return cfg, err
		}
		fileValues, err := l.Load()
		switch {
		case err != nil:
			errs = append(errs, err)
		case fileValues != nil:
			cfg.Path = path
			values = fileValues
		}
	}

	env, err := loader.NewEnvLoaderFrom(loader.EnvPrefix, environ).Load()
	if err != nil {
		errs = append(errs, err)
	}
	values = loader.DeepMerge(values, env)

	if err := cfg.Apply(values); err != nil {
		errs = append(errs, err)
	}
	return cfg, errors.Join(errs...)
}

// Apply overrides settings with values from a nested map. Unknown keys are
// ignored. Invalid values are skipped and reported together.
func (c *Config) Apply(values map[string]any) error {
	a := &applier{values: values}

	a.duration("editor.tick", &c.Editor.Tick)
	a.duration("editor.blinkPeriod", &c.Editor.BlinkPeriod)
	a.positiveInt("editor.gutterWidth", &c.Editor.GutterWidth)
	a.positiveInt("editor.tabWidth", &c.Editor.TabWidth)
	a.encoding("editor.encoding", &c.Editor.Encoding)
	a.setBool("editor.recovery", &c.Editor.Recovery)
	a.setBool("editor.watch", &c.Editor.Watch)

	t := &c.Theme
	for key, dst := range map[string]*core.Color{
		"text":               &t.Text,
		"background":         &t.Background,
		"selectedText":       &t.SelectedText,
		"selectedBackground": &t.SelectedBackground,
		"caretText":          &t.CaretText,
		"caret":              &t.Caret,
		"gutterText":         &t.GutterText,
		"gutterCurrent":      &t.GutterCurrent,
		"gutterBackground":   &t.GutterBackground,
		"statusText":         &t.StatusText,
		"statusBackground":   &t.StatusBackground,
		"statusError":        &t.StatusError,
		"fileNameText":       &t.FileNameText,
		"fileNameBackground": &t.FileNameBackground,
	} {
		a.color("theme."+key, dst)
	}

	a.logLevel("log.level", &c.Log.Level)
	a.setString("log.file", &c.Log.File)

	return errors.Join(a.errs...)
}

// applier reads typed values out of a nested map.
type applier struct {
	values map[string]any
	errs   []error
}

func (a *applier) lookup(path string) (any, bool) {
	section, key, _ := strings.Cut(path, ".")
	m, ok := a.values[section].(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

func (a *applier) fail(err error) {
	a.errs = append(a.errs, err)
}

func (a *applier) setString(path string, dst *string) {
	a.stringValue(path, dst)
}

func (a *applier) setBool(path string, dst *bool) {
	v, ok := a.lookup(path)
	if !ok {
		return
	}
	b, ok := v.(bool)
	if !ok {
		a.fail(typeError(path, v, "bool"))
		return
	}
	*dst = b
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func (a *applier) positiveInt(path string, dst *int) {
	v, ok := a.lookup(path)
	if !ok {
		return
	}
	n, ok := toInt(v)
	if !ok {
		a.fail(typeError(path, v, "integer"))
		return
	}
	if n <= 0 {
		a.fail(invalid(path, v, "must be positive"))
		return
	}
	*dst = n
}

// duration accepts Go duration strings ("10ms") or integer milliseconds.
func (a *applier) duration(path string, dst *time.Duration) {
	v, ok := a.lookup(path)
	if !ok {
		return
	}
	var d time.Duration
	switch x := v.(type) {
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			a.fail(invalid(path, v, "%v", err))
			return
		}
		d = parsed
	default:
		n, ok := toInt(v)
		if !ok {
			a.fail(typeError(path, v, "duration"))
			return
		}
		d = time.Duration(n) * time.Millisecond
	}
	if d <= 0 {
		a.fail(invalid(path, v, "must be positive"))
		return
	}
	*dst = d
}

func (a *applier) encoding(path string, dst *buffer.Encoding) {
	var s string
	if !a.stringValue(path, &s) {
		return
	}
	enc, err := buffer.ParseEncoding(s)
	if err != nil {
		a.fail(invalid(path, s, "%v", err))
		return
	}
	*dst = enc
}

func (a *applier) color(path string, dst *core.Color) {
	var s string
	if !a.stringValue(path, &s) {
		return
	}
	c, err := core.ParseColor(s)
	if err != nil {
		a.fail(invalid(path, s, "%v", err))
		return
	}
	*dst = c
}

var logLevels = []string{"debug", "info", "warn", "warning", "error", "off"}

func (a *applier) logLevel(path string, dst *string) {
	var s string
	if !a.stringValue(path, &s) {
		return
	}
	s = strings.ToLower(s)
	for _, l := range logLevels {
		if s == l {
			*dst = s
			return
		}
	}
	a.fail(invalid(path, s, "must be one of %s", strings.Join(logLevels, ", ")))
}

// stringValue reads a string setting, reporting a type error. It returns
// false when the setting is absent or not a string.
func (a *applier) stringValue(path string, dst *string) bool {
	v, ok := a.lookup(path)
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		a.fail(typeError(path, v, "string"))
		return false
	}
	*dst = s
	return true
}

// String summarizes the configuration for logging.
func (c *Config) String() string {
	src := c.Path
	if src == "" {
		src = "defaults"
	}
	return fmt.Sprintf("config(%s tick=%s blink=%s encoding=%s log=%s)",
		src, c.Editor.Tick, c.Editor.BlinkPeriod, c.Editor.Encoding, c.Log.Level)
}
