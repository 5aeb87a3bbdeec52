package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mayur-samrutwar/orion/orion"
)

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <amount>",
		Short: "Encode a decimal amount to 6-decimal fixed point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), orion.EncodeAmount(args[0]))
			return err
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <raw>",
		Short: "Decode a 6-decimal fixed point integer to a decimal amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), orion.DecodeAmountDecimal(args[0]).String())
			return err
		},
	}
}
