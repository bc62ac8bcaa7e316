package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fd1az/usdt-bridge/business/bridge/domain"
)

// Row is one label/value line of a result block.
type Row struct {
	Label string
	Value string
}

// ResultRows extracts the lines shown for res: method, amounts, rate, gas
// fee, hash and explorer link.
func ResultRows(res *domain.BridgeResult) []Row {
	rows := []Row{
		{"Operation", res.Type},
		{"Method", res.Transaction.Method},
		{"Status", string(res.Transaction.Status)},
	}

	c := res.Conversion
	if c.AmountInput != "" {
		rows = append(rows, Row{"Amount sent", strings.TrimSpace(c.AmountInput + " " + c.InputCurrency)})
	}
	received := c.AmountOutput
	if res.Balances != nil && res.Balances.RecipientReceived != "" {
		received = res.Balances.RecipientReceived
	}
	if received != "" {
		rows = append(rows, Row{"Amount received", strings.TrimSpace(received + " " + c.OutputCurrency)})
	}
	if c.Rate != "" {
		rows = append(rows, Row{"Rate", c.Rate})
	}
	if res.Swap != nil {
		rows = append(rows, Row{"Min output", res.Swap.MinAmountOut})
	}
	if res.Approval != nil {
		rows = append(rows, Row{"Approval fee", res.Approval.TransactionFee})
	}

	rows = append(rows,
		Row{"Gas price", res.Transaction.GasPrice},
		Row{"Gas fee", res.Transaction.TransactionFee},
		Row{"Block", fmt.Sprintf("%d", res.Transaction.BlockNumber)},
		Row{"Hash", res.Transaction.Hash},
		Row{"Explorer", res.Etherscan.Transaction},
	)

	if !res.Success {
		if res.Error != "" {
			rows = append(rows, Row{"Error", res.Error})
		}
		if res.SuggestedAction != "" {
			rows = append(rows, Row{"Suggested action", res.SuggestedAction})
		}
	}
	return rows
}

// RenderResult renders res as a styled block.
func RenderResult(res *domain.BridgeResult) string {
	var lines []string
	for _, row := range ResultRows(res) {
		value := ValueStyle.Render(row.Value)
		if row.Label == "Status" {
			value = statusStyle(domain.Status(row.Value)).Render(row.Value)
		}
		lines = append(lines, LabelStyle.Render(row.Label)+value)
	}

	title := TitleStyle.Render(res.Message)
	box := BoxStyle
	if !res.Success {
		box = FailureBoxStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, box.Render(strings.Join(lines, "\n")))
}

// RenderFailure renders an operation that produced no transaction.
func RenderFailure(report domain.FailureReport) string {
	lines := []string{
		LabelStyle.Render("Error") + StatusFailed.Render(report.Error),
	}
	if report.Code != "" {
		lines = append(lines, LabelStyle.Render("Code")+MutedValue.Render(report.Code))
	}
	if report.SuggestedAction != "" {
		lines = append(lines, LabelStyle.Render("Suggested action")+ValueStyle.Render(report.SuggestedAction))
	}
	return FailureBoxStyle.Render(strings.Join(lines, "\n"))
}

// WritePlain writes res without styling, one "label: value" per line.
func WritePlain(w io.Writer, res *domain.BridgeResult) error {
	if res.Message != "" {
		if _, err := fmt.Fprintln(w, res.Message); err != nil {
			return err
		}
	}
	for _, row := range ResultRows(res) {
		if _, err := fmt.Fprintf(w, "%s: %s\n", row.Label, row.Value); err != nil {
			return err
		}
	}
	return nil
}

// WritePlainFailure writes report without styling.
func WritePlainFailure(w io.Writer, report domain.FailureReport) error {
	_, err := fmt.Fprintf(w, "Error: %s\nCode: %s\nSuggested action: %s\n",
		report.Error, report.Code, report.SuggestedAction)
	return err
}

func statusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusConfirmed:
		return StatusConfirmed
	case domain.StatusFailed:
		return StatusFailed
	default:
		return StatusPending
	}
}
