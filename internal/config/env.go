package config

import (
	"fmt"
	"strconv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VIMCORE_"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type envVar struct {
	name string
	set  func(c *Config, v string) error
}

func intVar(name string, field func(c *Config) *int) envVar {
	return envVar{name, func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}}
}

func boolVar(name string, field func(c *Config) *bool) envVar {
	return envVar{name, func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}}
}

func stringVar(name string, field func(c *Config) *string) envVar {
	return envVar{name, func(c *Config, v string) error {
		*field(c) = v
		return nil
	}}
}

var envVars = []envVar{
	intVar("TAB_STOP", func(c *Config) *int { return &c.Editor.TabStop }),
	intVar("SHIFT_WIDTH", func(c *Config) *int { return &c.Editor.ShiftWidth }),
	boolVar("EXPAND_TAB", func(c *Config) *bool { return &c.Editor.ExpandTab }),
	intVar("UNDO_LEVELS", func(c *Config) *int { return &c.Editor.UndoLevels }),
	intVar("SCROLL_OFF", func(c *Config) *int { return &c.Editor.ScrollOff }),
	intVar("TEXT_WIDTH", func(c *Config) *int { return &c.Editor.TextWidth }),
	boolVar("WRAP_SCAN", func(c *Config) *bool { return &c.Editor.WrapScan }),
	stringVar("LOG_LEVEL", func(c *Config) *string { return &c.Log.Level }),
	stringVar("LOG_FORMAT", func(c *Config) *string { return &c.Log.Format }),
	stringVar("LOG_FILE", func(c *Config) *string { return &c.Log.File }),
}

// ApplyEnv overrides cfg from VIMCORE_* variables, e.g. VIMCORE_TAB_STOP=4.
// Empty values are treated as set.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	for _, ev := range envVars {
		key := EnvPrefix + ev.name
		v, ok := lookup(key)
		if !ok {
			continue
		}
		if err := ev.set(cfg, v); err != nil {
			return &ValidationError{Field: key, Message: fmt.Sprintf("cannot parse: %v", err), Value: v}
		}
	}
	return nil
}
