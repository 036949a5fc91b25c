package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/vimcore/internal/app"
	"github.com/dshills/vimcore/internal/input/register"
)

type replayOptions struct {
	keys     string
	keysFile string
	diff     bool
	summary  bool
	readOnly bool
}

func newReplayCmd(g *globalOptions) *cobra.Command {
	o := &replayOptions{}
	cmd := &cobra.Command{
		Use:   "replay [file]",
		Short: "Apply keys to a file and print the result",
		Long: `replay feeds keys written in Vim notation to the editor and prints the
resulting buffer. The file is only changed when the keys write it, e.g.
with ":w<CR>".`,
		Example: `  vimcore replay notes.txt --keys 'ggdwA!<Esc>'
  vimcore replay main.go --keys ':%s/foo/bar/g<CR>' --diff
  vimcore replay --keys 'ihello<Esc>yyp' --summary`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, g, o, args)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.keys, "keys", "k", "", "keys to feed, in Vim notation")
	f.StringVar(&o.keysFile, "keys-file", "", "read the keys from a file")
	f.BoolVar(&o.diff, "diff", false, "print a line diff instead of the buffer")
	f.BoolVar(&o.summary, "summary", false, "print a YAML summary of the editor state after the buffer")
	f.BoolVarP(&o.readOnly, "readonly", "R", false, "refuse changes to the buffer")
	return cmd
}

func runReplay(cmd *cobra.Command, g *globalOptions, o *replayOptions, args []string) error {
	keys := o.keys
	if o.keysFile != "" {
		if keys != "" {
			return errors.New("--keys and --keys-file are mutually exclusive")
		}
		data, err := os.ReadFile(o.keysFile)
		if err != nil {
			return fmt.Errorf("reading keys: %w", err)
		}
		keys = trimNewline(string(data))
	}

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	editor, err := app.New(app.Options{
		Path:     path,
		Config:   cfg,
		Logger:   log,
		ReadOnly: o.readOnly,
	})
	if err != nil {
		return err
	}
	defer editor.Close()

	before := editor.Text()
	res, err := editor.Feed(keys)
	if err != nil {
		return err
	}
	if res.IsError() {
		log.Warn("last command failed: %v", res.Error)
	}

	out := cmd.OutOrStdout()
	if o.diff {
		fmt.Fprint(out, lineDiff(before, editor.Text()))
	} else {
		fmt.Fprintln(out, editor.Text())
	}
	if o.summary {
		return writeSummary(out, editor)
	}
	return nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// summary is the state printed by "replay --summary". Registers are
// keyed by name; yaml.v3 writes map keys sorted.
type summary struct {
	File      string            `yaml:"file,omitempty"`
	Mode      string            `yaml:"mode"`
	Cursor    cursorSummary     `yaml:"cursor"`
	Lines     int               `yaml:"lines"`
	Modified  bool              `yaml:"modified"`
	Message   string            `yaml:"message,omitempty"`
	Recording string            `yaml:"recording,omitempty"`
	Registers map[string]string `yaml:"registers,omitempty"`
}

type cursorSummary struct {
	Line int `yaml:"line"`
	Col  int `yaml:"col"`
}

func newSummary(e *app.Editor) summary {
	snap := e.Snapshot()
	s := summary{
		File:     e.Path(),
		Mode:     snap.Mode.Kind.String(),
		Cursor:   cursorSummary{Line: snap.Cursor.Line + 1, Col: snap.Cursor.Col + 1},
		Lines:    snap.LineCount,
		Modified: snap.Modified,
		Message:  snap.Message,
	}
	if snap.Recording != 0 {
		s.Recording = string(snap.Recording)
	}
	for _, entry := range e.State().Registers.List() {
		if entry.Name == register.Unnamed || entry.Register.Content == "" {
			continue
		}
		if s.Registers == nil {
			s.Registers = make(map[string]string)
		}
		s.Registers[string(entry.Name)] = entry.Register.Content
	}
	return s
}

func writeSummary(w io.Writer, e *app.Editor) error {
	fmt.Fprintln(w, "---")
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newSummary(e)); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	return enc.Close()
}
