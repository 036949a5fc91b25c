package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/vimcore/internal/dispatcher"
	"github.com/dshills/vimcore/internal/logging"
)

// Config is the complete vimcore configuration.
type Config struct {
	Editor   EditorConfig   `toml:"editor" yaml:"editor"`
	Log      LogConfig      `toml:"log" yaml:"log"`
	Terminal TerminalConfig `toml:"terminal" yaml:"terminal"`
}

// EditorConfig holds the options the editing core reads.
type EditorConfig struct {
	TabStop        int  `toml:"tab_stop" yaml:"tab_stop"`
	ShiftWidth     int  `toml:"shift_width" yaml:"shift_width"`
	ExpandTab      bool `toml:"expand_tab" yaml:"expand_tab"`
	UndoLevels     int  `toml:"undo_levels" yaml:"undo_levels"`
	JumpListSize   int  `toml:"jump_list_size" yaml:"jump_list_size"`
	ChangeListSize int  `toml:"change_list_size" yaml:"change_list_size"`
	MaxMacroDepth  int  `toml:"max_macro_depth" yaml:"max_macro_depth"`
	ScrollOff      int  `toml:"scroll_off" yaml:"scroll_off"`
	TextWidth      int  `toml:"text_width" yaml:"text_width"`
	WrapScan       bool `toml:"wrap_scan" yaml:"wrap_scan"`
}

// LogConfig selects the log level, format and sink.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`
	// Format is text or json.
	Format string `toml:"format" yaml:"format"`
	// File is the log file. Empty means stderr for the CLI and no logging
	// for the full-screen host.
	File string `toml:"file" yaml:"file"`
}

// TerminalConfig holds settings of the full-screen host.
type TerminalConfig struct {
	// ShowMode displays "-- INSERT --" and friends on the last line.
	ShowMode bool `toml:"show_mode" yaml:"show_mode"`
	// LineNumbers draws a line number gutter.
	LineNumbers bool `toml:"line_numbers" yaml:"line_numbers"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	opts := dispatcher.DefaultOptions()
	return &Config{
		Editor: EditorConfig{
			TabStop:        opts.TabStop,
			ShiftWidth:     opts.ShiftWidth,
			ExpandTab:      opts.ExpandTab,
			UndoLevels:     opts.UndoLevels,
			JumpListSize:   opts.JumpListSize,
			ChangeListSize: opts.ChangeListSize,
			MaxMacroDepth:  opts.MaxMacroDepth,
			ScrollOff:      opts.ScrollOff,
			TextWidth:      opts.TextWidth,
			WrapScan:       opts.WrapScan,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
		Terminal: TerminalConfig{
			ShowMode: true,
		},
	}
}

// Options converts the editor section into dispatcher options.
func (e EditorConfig) Options() dispatcher.Options {
	return dispatcher.Options{
		TabStop:        e.TabStop,
		ShiftWidth:     e.ShiftWidth,
		ExpandTab:      e.ExpandTab,
		UndoLevels:     e.UndoLevels,
		JumpListSize:   e.JumpListSize,
		ChangeListSize: e.ChangeListSize,
		MaxMacroDepth:  e.MaxMacroDepth,
		ScrollOff:      e.ScrollOff,
		TextWidth:      e.TextWidth,
		WrapScan:       e.WrapScan,
	}
}

// LogLevel returns the parsed log level.
func (l LogConfig) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(l.Level)
	return level
}

type bound struct {
	field    string
	value    int
	min, max int
}

// Validate checks every field and returns all problems joined. Each
// problem matches ErrInvalidConfig with errors.Is.
func (c *Config) Validate() error {
	var errs []error

	e := c.Editor
	for _, b := range []bound{
		{"editor.tab_stop", e.TabStop, 1, 100},
		{"editor.shift_width", e.ShiftWidth, 0, 100},
		{"editor.undo_levels", e.UndoLevels, 1, 100000},
		{"editor.jump_list_size", e.JumpListSize, 1, 10000},
		{"editor.change_list_size", e.ChangeListSize, 1, 10000},
		{"editor.max_macro_depth", e.MaxMacroDepth, 1, 10000},
		{"editor.scroll_off", e.ScrollOff, 0, 999},
		{"editor.text_width", e.TextWidth, 0, 10000},
	} {
		if b.value < b.min || b.value > b.max {
			errs = append(errs, &ValidationError{
				Field:   b.field,
				Message: outOfRange(b.min, b.max),
				Value:   b.value,
			})
		}
	}

	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		errs = append(errs, &ValidationError{
			Field:   "log.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Log.Level,
		})
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, &ValidationError{
			Field:   "log.format",
			Message: "must be text or json",
			Value:   c.Log.Format,
		})
	}

	return errors.Join(errs...)
}

func outOfRange(lo, hi int) string {
	return fmt.Sprintf("must be between %d and %d", lo, hi)
}
