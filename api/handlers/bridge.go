// Package handlers contains the HTTP handlers of the bridge API.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/fd1az/usdt-bridge/business/bridge/app"
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	pricingDomain "github.com/fd1az/usdt-bridge/business/pricing/domain"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/asset"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

//go:generate mockgen -source=bridge.go -destination=mock/bridge.go -package=mock_handlers

// Bridge is the part of the bridge service the handlers use.
type Bridge interface {
	IssueAsOwner(ctx context.Context, req app.IssueRequest) (*domain.BridgeResult, error)
	Quote(amountUSD decimal.Decimal) (pricingDomain.FiatQuote, error)
	Transaction(ctx context.Context, hash string) (*domain.TransactionRecord, error)
	History(ctx context.Context, hash string) ([]*domain.TransactionRecord, error)
}

// IssueBody is the issue-as-owner request.
type IssueBody struct {
	Amount           *decimal.Decimal `json:"amount"`
	RecipientAddress string           `json:"recipientAddress"`
}

// QuoteResponse is the fiat quote payload. Amounts are JSON numbers.
type QuoteResponse struct {
	AmountUSD  json.Number `json:"amountUSD"`
	AmountUSDT json.Number `json:"amountUSDT"`
	Commission json.Number `json:"commission"`
	Rate       string      `json:"rate"`
}

// NewQuoteResponse renders q for the wire.
func NewQuoteResponse(q pricingDomain.FiatQuote) QuoteResponse {
	return QuoteResponse{
		AmountUSD:  json.Number(q.AmountUSD.String()),
		AmountUSDT: json.Number(q.AmountUSDT.String()),
		Commission: json.Number(q.Commission.String()),
		Rate:       q.Rate,
	}
}

// RecordResponse is a stored transaction record.
type RecordResponse struct {
	OperationID string                 `json:"operationId"`
	Kind        domain.Kind            `json:"kind"`
	Transaction domain.TransactionView `json:"transaction"`
	Explorer    string                 `json:"explorer"`
}

type BridgeHandler struct {
	bridge   Bridge
	reporter *app.OutcomeReporter
	log      logger.LoggerInterface
}

func NewBridgeHandler(bridge Bridge, reporter *app.OutcomeReporter, log logger.LoggerInterface) *BridgeHandler {
	return &BridgeHandler{
		bridge:   bridge,
		reporter: reporter,
		log:      log,
	}
}

// HandleIssue transfers USDT to the recipient and returns the confirmed
// result. A reverted transfer still returns its result, with status 500.
func (h *BridgeHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	b := &IssueBody{}
	if err := json.NewDecoder(r.Body).Decode(b); err != nil {
		h.fail(w, apperror.Validation(apperror.CodeInvalidInput, fmt.Sprintf("invalid request body: %s", err)))
		return
	}
	if b.Amount == nil || b.RecipientAddress == "" {
		h.fail(w, apperror.Validation(apperror.CodeInvalidInput, "amount and recipientAddress are required"))
		return
	}

	res, err := h.bridge.IssueAsOwner(r.Context(), app.IssueRequest{
		Amount:    *b.Amount,
		Recipient: b.RecipientAddress,
	})
	if err != nil {
		h.log.Error(r.Context(), "issue as owner failed", "error", err, "code", apperror.GetCode(err))
		if res != nil {
			JSON(w, res, statusFor(err))
			return
		}
		h.fail(w, err)
		return
	}

	JSON(w, res, http.StatusOK)
}

// HandleQuote prices ?amount= in USDT. It never touches the chain.
func (h *BridgeHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	amount, err := asset.ParseDecimal(r.URL.Query().Get("amount"))
	if err != nil {
		h.fail(w, apperror.Validation(apperror.CodeInvalidAmount, "amount must be a number"))
		return
	}

	q, err := h.bridge.Quote(amount)
	if err != nil {
		h.fail(w, err)
		return
	}

	JSON(w, NewQuoteResponse(q), http.StatusOK)
}

// HandleTransaction returns the latest stored record for {hash}.
func (h *BridgeHandler) HandleTransaction(w http.ResponseWriter, r *http.Request) {
	rec, err := h.bridge.Transaction(r.Context(), mux.Vars(r)["hash"])
	if err != nil {
		h.fail(w, err)
		return
	}

	JSON(w, h.recordResponse(rec), http.StatusOK)
}

// HandleHistory returns every stored record for {hash}, oldest first.
func (h *BridgeHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.bridge.History(r.Context(), mux.Vars(r)["hash"])
	if err != nil {
		h.fail(w, err)
		return
	}

	out := make([]RecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, h.recordResponse(rec))
	}
	JSON(w, out, http.StatusOK)
}

func (h *BridgeHandler) recordResponse(rec *domain.TransactionRecord) RecordResponse {
	return RecordResponse{
		OperationID: rec.OperationID.String(),
		Kind:        rec.Kind,
		Transaction: h.reporter.View(rec),
		Explorer:    h.reporter.TxURL(rec.Hash),
	}
}

func (h *BridgeHandler) fail(w http.ResponseWriter, err error) {
	JSONError(w, h.reporter.BuildFailure(err), statusFor(err))
}
