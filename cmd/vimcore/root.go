package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/vimcore/internal/config"
	"github.com/dshills/vimcore/internal/logging"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	logFile    string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	edit := &editOptions{}

	root := &cobra.Command{
		Use:   "vimcore [file]",
		Short: "A Vim-style modal editor",
		Long: `vimcore is a modal text editor core with Vim's grammar of counts,
operators, motions and text objects, registers, macros and undo.

Run without a command to edit a file full screen, or use "replay" to apply
keys to a file non-interactively.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, g, edit, args)
		},
	}
	edit.bindFlags(root)

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", os.Getenv("VIMCORE_CONFIG"), "configuration file (.toml or .yaml)")
	pf.StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")
	pf.StringVar(&g.logFile, "log-file", "", "write logs to this file; overrides the config file")
	pf.StringVar(&g.logFormat, "log-format", "", "log format (text, json); overrides the config file")

	root.AddCommand(
		newEditCmd(g),
		newReplayCmd(g),
		newConfigCmd(g),
		newVersionCmd(),
	)
	return root
}

// loadConfig loads the configuration file and applies the log flags.
func (g *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logFile != "" {
		cfg.Log.File = g.logFile
	}
	if g.logFormat != "" {
		cfg.Log.Format = g.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger creates the logger described by cfg. Without a log file,
// logs go to fallback; a nil fallback discards them. The returned
// function closes the log file.
func newLogger(cfg config.LogConfig, fallback io.Writer) (*logging.Logger, func(), error) {
	out := fallback
	closer := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closer = func() { _ = f.Close() }
	}
	if out == nil {
		return logging.Nop(), closer, nil
	}

	lc := logging.DefaultConfig()
	lc.Level = cfg.LogLevel()
	lc.Output = out
	if cfg.Format != "" {
		lc.Format = cfg.Format
	}
	return logging.New(lc), closer, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vimcore %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}
