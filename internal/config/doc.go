// Package config loads, validates and watches vimcore's configuration.
//
// A configuration file is TOML or YAML, chosen by extension:
//
//	# ~/.config/vimcore/config.toml
//	[editor]
//	tab_stop = 4
//	shift_width = 4
//	expand_tab = true
//
//	[log]
//	level = "debug"
//	file = "/tmp/vimcore.log"
//
//	[terminal]
//	line_numbers = true
//
// Keys missing from the file keep their defaults. Unknown keys are an
// error so that typos do not go unnoticed. After decoding, environment
// variables prefixed with VIMCORE_ override file values (see ApplyEnv), and
// Validate checks every field.
//
// Editor options can also be changed at runtime with the ":set" syntax
// (EditorConfig.Set), and a Watcher reloads the file when it changes on
// disk.
package config
