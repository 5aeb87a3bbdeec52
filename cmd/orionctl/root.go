package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/mayur-samrutwar/orion/aptos"
	"github.com/mayur-samrutwar/orion/orion"
)

type globalFlags struct {
	deployment string
	address    string
	endpoint   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "orionctl",
		Short: "Orion payload and chain tool",
		Long: `orionctl encodes amounts, builds entry function payloads for the Orion
contract and reads balances and resources from a node.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.deployment, "deployment", orion.DeploymentOrion, "contract deployment (orion, xorion)")
	rootCmd.PersistentFlags().StringVar(&flags.address, "address", "", "override the module address")
	rootCmd.PersistentFlags().StringVar(&flags.endpoint, "endpoint", aptos.DefaultEndpoint, "node REST endpoint")

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newPayloadCmd(flags),
		newCoinCmd(flags),
		newBalanceCmd(flags),
		newPoolCmd(flags),
		newOracleCmd(flags),
	)
	return rootCmd
}

func (f *globalFlags) encoder() (*orion.Encoder, error) {
	d, err := orion.LookupDeployment(f.deployment)
	if err != nil {
		return nil, err
	}
	return orion.NewEncoder(d.WithAddress(f.address)), nil
}

func (f *globalFlags) reader() (*orion.Reader, error) {
	enc, err := f.encoder()
	if err != nil {
		return nil, err
	}
	client, err := aptos.NewClient(aptos.Config{Endpoint: f.endpoint})
	if err != nil {
		return nil, err
	}
	return orion.NewReader(enc, client, nil), nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
