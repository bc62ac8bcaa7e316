package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fd1az/usdt-bridge/business/bridge/domain"
)

func newIssueCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "issue <amount> <recipient>",
		Short: "Transfer amount USDT from the bridge account to recipient",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				_ = printOutcome(cmd.OutOrStdout(), opts, nil, err)
				return err
			}

			b, err := openBackend(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer b.Close()

			return execute(cmd, opts, b, fmt.Sprintf("Issuing %s USDT", amount),
				func(ctx context.Context) (*domain.BridgeResult, error) {
					return b.Issue(ctx, amount, args[1])
				})
		},
	}
}
