package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/vimcore/internal/app"
	"github.com/dshills/vimcore/internal/config"
	"github.com/dshills/vimcore/internal/term"
)

type editOptions struct {
	readOnly bool
	noWatch  bool
}

func (o *editOptions) bindFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.readOnly, "readonly", "R", false, "open the file read-only")
	cmd.Flags().BoolVar(&o.noWatch, "no-watch", false, "do not reload the configuration file when it changes")
}

func newEditCmd(g *globalOptions) *cobra.Command {
	o := &editOptions{}
	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a file full screen",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, g, o, args)
		},
	}
	o.bindFlags(cmd)
	return cmd
}

func runEdit(cmd *cobra.Command, g *globalOptions, o *editOptions, args []string) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	// The screen belongs to the editor, so logs only go to a file.
	log, closeLog, err := newLogger(cfg.Log, nil)
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

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hostOpts := []term.Option{term.WithLogger(log)}
	if g.configPath != "" && !o.noWatch {
		w, err := config.NewWatcher(g.configPath, config.WithWatcherLogger(log))
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
		reloads, err := w.Start(ctx)
		if err != nil {
			return err
		}
		hostOpts = append(hostOpts, term.WithReloads(reloads))
	}

	screen, err := term.Open()
	if err != nil {
		return err
	}
	defer screen.Fini()

	err = term.New(screen, editor, hostOpts...).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
