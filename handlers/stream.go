// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/livepoll/live"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/voting"
)

type StreamHandler struct {
	engine *live.Engine
}

func NewStreamHandler(engine *live.Engine) *StreamHandler {
	return &StreamHandler{engine: engine}
}

// Stream handles GET /polls/{id}/live
//
// Server-Sent Events: one immediate results event with the current snapshot,
// then a results event per accepted vote, with comment keep-alives in
// between. The subscription is torn down on client disconnect or on any
// write failure; both paths converge on the same deferred unsubscribe.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	sub, err := h.engine.Subscribe(r.Context(), pollID)
	if errors.Is(err, voting.ErrPollNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to subscribe", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to subscribe")
		return
	}
	defer h.engine.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	slog.Info("subscriber joined", "poll_id", pollID)

	for {
		select {
		case <-r.Context().Done():
			slog.Info("subscriber left", "poll_id", pollID)
			return
		case <-sub.Done():
			// Pruned from the producer side
			return
		case ev := <-sub.Events():
			if err := writeEvent(w, ev); err != nil {
				slog.Info("subscriber write failed", "poll_id", pollID, "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w io.Writer, ev live.Event) error {
	if ev.Type == live.EventKeepAlive {
		_, err := io.WriteString(w, ": keep-alive\n\n")
		return err
	}

	data, err := json.Marshal(ev.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = fmt.Fprintf(w, "event: results\ndata: %s\n\n", data)
	return err
}
