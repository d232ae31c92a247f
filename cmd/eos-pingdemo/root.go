package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/nspcc-dev/eos-pingdemo/misc"
	"github.com/spf13/cobra"
)

const (
	configFlag  = "config"
	envFileFlag = "env-file"
	versionFlag = "version"

	defaultEnvFile = ".env"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "eos-pingdemo",
		Short: "EOS ping demo",
		Long: `EOS ping demo serves a page with a single button calling ping action
of the configured EOSIO contract and shows the result of the call.`,
		PersistentPreRunE: loadEnvFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			printVersion, _ := cmd.Flags().GetBool(versionFlag)
			if printVersion {
				cmd.Print(misc.BuildInfo("EOS ping demo"))
				return nil
			}

			return runServe(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// use stdout as default output for cmd.Print()
	root.SetOut(os.Stdout)

	root.PersistentFlags().StringP(configFlag, "c", "", "Path to the config file (YAML or JSON)")
	root.PersistentFlags().String(envFileFlag, "", "Path to the file with EOSPING_* variables (default .env if exists)")
	root.Flags().Bool(versionFlag, false, "Application version")

	root.AddCommand(
		newServeCmd(),
		newPingCmd(),
		newInfoCmd(),
		newConfigCmd(),
	)

	return root
}

func loadEnvFile(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString(envFileFlag)
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("could not load env file: %w", err)
		}

		return nil
	}

	err := godotenv.Load(defaultEnvFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not load %s: %w", defaultEnvFile, err)
	}

	return nil
}
