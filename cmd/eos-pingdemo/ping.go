package main

import (
	"errors"

	"github.com/nspcc-dev/eos-pingdemo/pkg/widget"
	"github.com/spf13/cobra"
)

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Send a single ping and print its status",
		Long: `Send a single ping and print the label of every status change.
Exits with code 1 if the ping is unsuccessful, the failure details are logged.`,
		Args: cobra.NoArgs,
		RunE: runPing,
	}
}

func runPing(cmd *cobra.Command, _ []string) error {
	cfg, err := readConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()

	cli, err := newEOSClient(ctx, cfg, log)
	if err != nil {
		return err
	}

	w, err := widget.New(widget.Prm{
		Target:  pingTarget(cfg),
		Invoker: cli,
	}, widget.WithLogger(log), widget.WithContext(ctx))
	if err != nil {
		return err
	}
	defer w.Close()

	w.Subscribe(func(s widget.Status) {
		cmd.Println(widget.Render(s).Text)
	})

	w.Trigger()

	if err = w.Wait(ctx); err != nil {
		return err
	}

	if w.Status() != widget.Success {
		return exitErr{code: 1, cause: errors.New(widget.TextFailure)}
	}

	return nil
}
