package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/fd1az/usdt-bridge/business/bridge/app"
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

const (
	eventBuffer       = 32
	eventWriteTimeout = 5 * time.Second
)

// Feed is a source of record updates.
type Feed interface {
	Subscribe(buffer int) (<-chan *domain.TransactionRecord, func())
}

type EventsHandler struct {
	feed     Feed
	reporter *app.OutcomeReporter
	log      logger.LoggerInterface
	origins  []string
}

// NewEventsHandler streams record updates. origins lists the accepted
// Origin host patterns; empty means same-origin only.
func NewEventsHandler(feed Feed, reporter *app.OutcomeReporter, log logger.LoggerInterface, origins ...string) *EventsHandler {
	return &EventsHandler{
		feed:     feed,
		reporter: reporter,
		log:      log,
		origins:  origins,
	}
}

// HandleEvents upgrades to a WebSocket and writes one JSON message per
// stored record until either side goes away.
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		h.log.Warn(r.Context(), "websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	// the stream is write-only; CloseRead cancels ctx when the peer leaves
	ctx := conn.CloseRead(r.Context())

	records, cancel := h.feed.Subscribe(eventBuffer)
	defer cancel()

	h.log.Debug(ctx, "event subscriber connected", "remote", r.RemoteAddr)

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case rec, ok := <-records:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			if err := h.write(ctx, conn, rec); err != nil {
				if !errors.Is(err, context.Canceled) {
					h.log.Warn(ctx, "event write failed", "error", err)
				}
				return
			}
		}
	}
}

func (h *EventsHandler) write(ctx context.Context, conn *websocket.Conn, rec *domain.TransactionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, eventWriteTimeout)
	defer cancel()

	return wsjson.Write(ctx, conn, RecordResponse{
		OperationID: rec.OperationID.String(),
		Kind:        rec.Kind,
		Transaction: h.reporter.View(rec),
		Explorer:    h.reporter.TxURL(rec.Hash),
	})
}
