package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fd1az/usdt-bridge/api/handlers"
	"github.com/fd1az/usdt-bridge/internal/wsconn"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow transaction records stored by a running bridge server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.server == "" {
				return errors.New("watch needs --server")
			}
			endpoint, err := eventsURL(opts.server)
			if err != nil {
				return err
			}

			cfg := wsconn.DefaultConfig(endpoint, "bridge-events")
			cfg.Logger = opts.logger()
			client, err := wsconn.New(cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			client.OnMessage(func(_ context.Context, msg []byte) {
				if opts.jsonOut {
					fmt.Fprintln(out, string(msg))
					return
				}
				var ev handlers.RecordResponse
				if err := json.Unmarshal(msg, &ev); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "unreadable event: %v\n", err)
					return
				}
				fmt.Fprintln(out, formatEvent(ev))
			})
			client.OnStateChange(func(state wsconn.State, err error) {
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "connection %s: %v\n", state, err)
				}
			})

			if err := client.Connect(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (ctrl+c to stop)\n", endpoint)

			<-cmd.Context().Done()
			return nil
		},
	}
}

// eventsURL maps the server base URL onto the WebSocket events endpoint.
func eventsURL(server string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(server, "/"))
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server url %q", server)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http", "":
		u.Scheme = "ws"
	}
	return u.JoinPath("/api/uniswap/events").String(), nil
}

func formatEvent(ev handlers.RecordResponse) string {
	tx := ev.Transaction
	line := fmt.Sprintf("%s %-10s %-25s %s", tx.Timestamp.Format("15:04:05"), tx.Status, tx.Method, tx.Hash)
	if tx.BlockNumber > 0 {
		line += fmt.Sprintf(" block=%d fee=%s", tx.BlockNumber, tx.TransactionFee)
	}
	return line + " op=" + ev.OperationID
}
