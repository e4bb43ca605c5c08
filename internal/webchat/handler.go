// Package webchat exposes the conversation pipeline over a websocket for the
// embedded site widget. Each frame carries one message; the reply comes back
// on the same connection.
package webchat

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/websocket"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/conversation"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

// Handler upgrades connections and relays messages to the processor.
type Handler struct {
	processor   *conversation.Processor
	transcripts *conversation.TranscriptStore
	logger      *logging.Logger
}

// NewHandler creates the websocket handler. transcripts may be nil; when set,
// the first message of a session triggers a history replay frame.
func NewHandler(processor *conversation.Processor, transcripts *conversation.TranscriptStore, logger *logging.Logger) *Handler {
	return &Handler{
		processor:   processor,
		transcripts: transcripts,
		logger:      logger.Named("webchat"),
	}
}

type inboundFrame struct {
	CompanyID string `json:"company_id"`
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

type outboundFrame struct {
	Intent  string                           `json:"intent,omitempty"`
	Reply   string                           `json:"reply,omitempty"`
	History []conversation.TranscriptMessage `json:"history,omitempty"`
	Error   string                           `json:"error,omitempty"`
}

// ServeHTTP upgrades the request to a websocket session.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(h.serve).ServeHTTP(w, r)
}

func (h *Handler) serve(conn *websocket.Conn) {
	defer conn.Close()

	replayed := false
	for {
		var frame inboundFrame
		if err := websocket.JSON.Receive(conn, &frame); err != nil {
			if !errors.Is(err, io.EOF) {
				h.logger.Debug("webchat receive ended", "error", err)
			}
			return
		}

		if !replayed {
			replayed = true
			if !h.replayHistory(conn, frame.CompanyID, frame.SessionID) {
				return
			}
		}

		if strings.TrimSpace(frame.Text) == "" {
			if err := websocket.JSON.Send(conn, outboundFrame{Error: "text is required"}); err != nil {
				return
			}
			continue
		}

		res := h.processor.ProcessMessage(conn.Request().Context(), conversation.Inbound{
			Text:      frame.Text,
			From:      frame.SessionID,
			Platform:  conversation.PlatformWeb,
			CompanyID: frame.CompanyID,
		})

		if err := websocket.JSON.Send(conn, outboundFrame{
			Intent: string(res.Intent),
			Reply:  res.Reply,
		}); err != nil {
			h.logger.Debug("webchat send failed", "error", err)
			return
		}
	}
}

// replayHistory sends the stored transcript for the session, if any. Returns
// false when the connection is no longer usable.
func (h *Handler) replayHistory(conn *websocket.Conn, companyID, sessionID string) bool {
	if h.transcripts == nil || sessionID == "" {
		return true
	}

	msgs, err := h.transcripts.List(conn.Request().Context(), companyID, sessionID)
	if err != nil {
		h.logger.Warn("webchat transcript replay failed", "error", err)
		return true
	}
	if len(msgs) == 0 {
		return true
	}

	if err := websocket.JSON.Send(conn, outboundFrame{History: msgs}); err != nil {
		h.logger.Debug("webchat history send failed", "error", err)
		return false
	}
	return true
}
