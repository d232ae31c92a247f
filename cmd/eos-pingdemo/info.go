package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print state of the configured EOS chain",
		Args:  cobra.NoArgs,
		RunE:  runInfo,
	}
}

func runInfo(cmd *cobra.Command, _ []string) error {
	cfg, err := readConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cli, err := newEOSClient(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	info, err := cli.Info(cmd.Context())
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Parameter", "Value"})
	table.SetAutoWrapText(false)
	table.AppendBulk([][]string{
		{"Endpoint", cfg.EOS.Endpoint},
		{"Chain ID", info.ChainID},
		{"Server version", info.ServerVersion},
		{"Head block", strconv.FormatUint(uint64(info.HeadBlockNum), 10)},
		{"Last irreversible block", strconv.FormatUint(uint64(info.LIBNum), 10)},
		{"Contract", cfg.EOS.Contract},
		{"Actor", cfg.EOS.Actor},
	})
	table.Render()

	return nil
}
