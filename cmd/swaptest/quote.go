package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fd1az/usdt-bridge/api/handlers"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/asset"
)

func newQuoteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "quote <amount>",
		Short: "Price a USD amount in USDT (no chain access)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			q, err := quote(cmd, opts, args[0])
			if err != nil {
				_ = printOutcome(out, opts, nil, err)
				return err
			}

			if opts.jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(q)
			}
			_, err = fmt.Fprintf(out, "%s USD → %s USDT (commission %s, %s)\n",
				q.AmountUSD, q.AmountUSDT, q.Commission, q.Rate)
			return err
		},
	}
}

// quote prices arg locally or on the server. Zero is a valid quote and
// negatives are left to the quoter to reject.
func quote(cmd *cobra.Command, opts *options, arg string) (handlers.QuoteResponse, error) {
	amount, err := asset.ParseDecimal(arg)
	if err != nil {
		return handlers.QuoteResponse{}, apperror.Validation(apperror.CodeInvalidAmount, err.Error())
	}
	if opts.server == "" {
		return localQuote(amount, opts.logger())
	}
	remote, err := newRemoteBackend(opts.server, opts)
	if err != nil {
		return handlers.QuoteResponse{}, err
	}
	return remote.Quote(cmd.Context(), amount)
}
