package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/nspcc-dev/eos-pingdemo/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	pathFlag     = "path"
	endpointFlag = "endpoint"
	contractFlag = "contract"
	actorFlag    = "actor"
)

type configTemplate struct {
	Endpoint string
	Contract string
	Actor    string
	Address  string
}

const configTxtTemplate = `logger:
  level: info
  encoding: console

eos:
  endpoint: {{ .Endpoint }}
  # WIF private key of the actor, can be set with EOSPING_EOS_KEY instead
  key: ""
  contract: {{ .Contract }}
  actor: {{ .Actor }}
  authorization:
    - {{ .Actor }}@active

web:
  address: {{ .Address }}
  shutdown_timeout: 30s

pprof:
  enabled: false

prometheus:
  enabled: false
`

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Section for the application config operations",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write initial config file",
		Args:  cobra.NoArgs,
		RunE:  initConfig,
	}

	initCmd.Flags().String(pathFlag, "config.yaml", "Path to the new config file")
	initCmd.Flags().String(endpointFlag, config.EOSEndpointDefault, "EOS chain API endpoint")
	initCmd.Flags().String(contractFlag, config.EOSContractDefault, "Contract account")
	initCmd.Flags().String(actorFlag, config.EOSActorDefault, "Account executing the contract")

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print effective config in YAML, private key is hidden",
		Args:  cobra.NoArgs,
		RunE:  dumpConfig,
	}

	cmd.AddCommand(initCmd, dumpCmd)

	return cmd
}

func initConfig(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString(pathFlag)

	var tmpl configTemplate

	tmpl.Endpoint, _ = cmd.Flags().GetString(endpointFlag)
	tmpl.Contract, _ = cmd.Flags().GetString(contractFlag)
	tmpl.Actor, _ = cmd.Flags().GetString(actorFlag)
	tmpl.Address = config.WebAddressDefault

	t, err := template.New("config").Parse(configTxtTemplate)
	if err != nil {
		return fmt.Errorf("can't parse config template: %w", err)
	}

	buf := bytes.NewBuffer(nil)

	if err = t.Execute(buf, tmpl); err != nil {
		return fmt.Errorf("can't generate config: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("create dir %s: %w", filepath.Dir(configPath), err)
	}

	if err = os.WriteFile(configPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing to %s: %w", configPath, err)
	}

	cmd.Printf("Initial config file saved to %s\n", configPath)

	return nil
}

func dumpConfig(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString(configFlag)

	cfg, err := config.New(path)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg.Redacted())
	if err != nil {
		return fmt.Errorf("can't encode config: %w", err)
	}

	cmd.Print(string(data))

	return nil
}
