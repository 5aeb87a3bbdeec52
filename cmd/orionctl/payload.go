package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mayur-samrutwar/orion/orion"
)

func newPayloadCmd(flags *globalFlags) *cobra.Command {
	payloadCmd := &cobra.Command{
		Use:   "payload",
		Short: "Build entry function payloads",
	}

	tradeCmd := func(use, short string, build func(e *orion.Encoder, t orion.Token, amount6 string) interface{}) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <token> <amount>",
			Short: short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				e, err := flags.encoder()
				if err != nil {
					return err
				}
				t, err := orion.ParseToken(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), build(e, t, orion.EncodeAmount(args[1])))
			},
		}
	}

	payloadCmd.AddCommand(
		tradeCmd("buy", "Buy metal tokens with USDC", func(e *orion.Encoder, t orion.Token, amount6 string) interface{} {
			return e.BuildBuyPayload(t, amount6)
		}),
		tradeCmd("sell", "Sell metal tokens for USDC", func(e *orion.Encoder, t orion.Token, amount6 string) interface{} {
			return e.BuildSellPayload(t, amount6)
		}),
		&cobra.Command{
			Use:   "mint <token> <recipient> <amount>",
			Short: "Mint metal tokens to a recipient",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				e, err := flags.encoder()
				if err != nil {
					return err
				}
				t, err := orion.ParseToken(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), e.BuildMintPayload(t, args[1], orion.EncodeAmount(args[2])))
			},
		},
		&cobra.Command{
			Use:   "register <token>",
			Short: "Build the USDC and token registration payloads, in submission order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				e, err := flags.encoder()
				if err != nil {
					return err
				}
				t, err := orion.ParseToken(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), e.BuildRegistrationPayloads(t))
			},
		},
	)
	return payloadCmd
}

func newCoinCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "coin <symbol>",
		Short: "Resolve a coin symbol to its fully qualified type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.encoder()
			if err != nil {
				return err
			}
			coinType, err := e.ResolveCoinTypeTag(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), coinType)
			return err
		},
	}
}
