package main

import (
	"github.com/spf13/cobra"

	"github.com/mayur-samrutwar/orion/orion"
	"github.com/mayur-samrutwar/orion/utils"
)

func newBalanceCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <owner> [symbol]",
		Short: "Read coin balances of an account",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := utils.ValidateAccount(args[0])
			if err != nil {
				return err
			}
			r, err := flags.reader()
			if err != nil {
				return err
			}
			if len(args) == 2 {
				b, err := r.Balance(cmd.Context(), owner, args[1])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), b)
			}
			balances, err := r.Balances(cmd.Context(), owner)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), balances)
		},
	}
}

func newPoolCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "pool <token>",
		Short: "Read the reserves of a liquidity pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := orion.ParseToken(args[0])
			if err != nil {
				return err
			}
			r, err := flags.reader()
			if err != nil {
				return err
			}
			pool, err := r.Pool(cmd.Context(), t)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), pool)
		},
	}
}

func newOracleCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "oracle",
		Short: "Read the oracle prices the contract trades at",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := flags.reader()
			if err != nil {
				return err
			}
			oracle, err := r.Oracle(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), oracle)
		},
	}
}
