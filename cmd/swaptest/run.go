package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	"github.com/fd1az/usdt-bridge/pkg/ui"
)

// operation is one bridge call bound to its arguments.
type operation func(ctx context.Context) (*domain.BridgeResult, error)

// openBackend picks the remote backend when --server is set.
func openBackend(ctx context.Context, opts *options) (backend, error) {
	if opts.server != "" {
		return newRemoteBackend(opts.server, opts)
	}
	return newLocalBackend(ctx, opts, opts.logger())
}

// execute runs op, showing the progress view unless output is plain, and
// prints the outcome. The returned error only sets the exit status.
func execute(cmd *cobra.Command, opts *options, b backend, title string, op operation) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	var (
		res *domain.BridgeResult
		err error
	)
	if opts.interactive() {
		res, err = runWithProgress(ctx, cancel, cmd.ErrOrStderr(), b, title, op)
	} else {
		res, err = op(ctx)
	}

	if perr := printOutcome(cmd.OutOrStdout(), opts, res, err); perr != nil {
		return perr
	}
	return err
}

func runWithProgress(ctx context.Context, cancel context.CancelFunc, out io.Writer, b backend, title string, op operation) (*domain.BridgeResult, error) {
	model := ui.NewProgress(title, func() (*domain.BridgeResult, error) {
		return op(ctx)
	}, cancel)
	program := tea.NewProgram(model, tea.WithOutput(out))

	records, unsubscribe := b.Records()
	defer unsubscribe()
	if records != nil {
		go func() {
			for rec := range records {
				program.Send(ui.RecordMsg{Record: rec})
			}
		}()
	}

	final, err := program.Run()
	if err != nil {
		// never rerun op here: it may already have submitted a transaction
		return nil, fmt.Errorf("progress view: %w", err)
	}
	return final.(ui.Model).Outcome()
}

func printOutcome(w io.Writer, opts *options, res *domain.BridgeResult, err error) error {
	switch {
	case opts.jsonOut:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if res != nil {
			return enc.Encode(res)
		}
		if err != nil {
			return enc.Encode(failureReport(err))
		}
		return nil
	case opts.plain:
		if res != nil {
			return ui.WritePlain(w, res)
		}
		if err != nil {
			return ui.WritePlainFailure(w, failureReport(err))
		}
		return nil
	default:
		if res != nil {
			_, werr := fmt.Fprintln(w, ui.RenderResult(res))
			return werr
		}
		if err != nil {
			_, werr := fmt.Fprintln(w, ui.RenderFailure(failureReport(err)))
			return werr
		}
		return nil
	}
}
